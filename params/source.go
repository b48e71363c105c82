package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/dealpipe/literal"
)

// parametersKey is the section experiment files keep their parameters under.
const parametersKey = "parameters"

// Source yields raw parameter values by name.
type Source interface {
	Load() (map[string]any, error)
}

// MapSource serves parameters from memory.
type MapSource map[string]any

func (m MapSource) Load() (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}

func (m MapSource) String() string { return "map" }

// EnvSource reads parameters from environment variables carrying Prefix.
// The remainder of the variable name, lower-cased, is the parameter name:
// with prefix DEALPIPE_, DEALPIPE_LGBM__MAX_DEPTH sets lgbm__max_depth.
// Values are always strings.
type EnvSource struct {
	Prefix string
	// Environ replaces os.Environ when set.
	Environ func() []string
}

func (s EnvSource) Load() (map[string]any, error) {
	environ := s.Environ
	if environ == nil {
		environ = os.Environ
	}

	out := map[string]any{}
	for _, kv := range environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, s.Prefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, s.Prefix))
		if name == "" {
			continue
		}
		out[name] = value
	}
	return out, nil
}

func (s EnvSource) String() string { return "env:" + s.Prefix }

// FileSource reads parameters from a YAML, TOML or JSON file, chosen by
// extension. When the document has a top-level "parameters" mapping only
// that mapping is used, matching the experiment file layout:
//
//	parameters:
//	  experiment_dir: /output/avito
//	  target_size: '[224, 224]'
type FileSource struct {
	Path string
}

func (s FileSource) Load() (map[string]any, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}

	doc := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(s.Path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&doc)
		if err == nil {
			doc = literal.Normalize(doc).(map[string]any)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse parameter file %s: %w", s.Path, err)
	}

	if section, ok := doc[parametersKey].(map[string]any); ok {
		return section, nil
	}
	return doc, nil
}

func (s FileSource) String() string { return "file:" + s.Path }
