package configsvc

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding for a configuration tree.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat resolves a format name, case-insensitively. "yml" is
// accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ToStruct converts a configuration tree into a protobuf Struct. Numbers
// are carried as doubles, as Struct has no integer kind.
func ToStruct(tree map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config tree: %w", err)
	}
	return s, nil
}

// Marshal encodes tree in the given format.
func Marshal(tree map[string]any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		s, err := ToStruct(tree)
		if err != nil {
			return nil, err
		}
		return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	case FormatYAML:
		return yaml.Marshal(tree)
	case FormatTOML:
		return toml.Marshal(tree)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
