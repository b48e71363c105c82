// Package params reads the experiment parameters the solution configuration
// is assembled from. Parameters arrive as raw values from one or more
// sources (a parameter file, the environment, an in-memory map) and are
// decoded on access, so "[224, 224]" from the environment and [224, 224]
// from a YAML file read the same way.
package params

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tailored-agentic-units/dealpipe/literal"
	"github.com/tailored-agentic-units/dealpipe/observability"
)

// Params is a read-only set of raw parameter values.
type Params struct {
	values map[string]any
}

// Read loads every source in order. A name set by a later source replaces
// the earlier value.
func Read(sources ...Source) (*Params, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	values := map[string]any{}
	for _, src := range sources {
		loaded, err := src.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", describe(src), err)
		}
		for k, v := range loaded {
			values[k] = v
		}
	}
	return &Params{values: values}, nil
}

// FromMap builds Params directly from values.
func FromMap(values map[string]any) *Params {
	p, _ := Read(MapSource(values))
	return p
}

// Len reports how many parameters are set.
func (p *Params) Len() int { return len(p.values) }

// Names returns the parameter names, sorted.
func (p *Params) Names() []string {
	names := make([]string, 0, len(p.values))
	for name := range p.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Raw returns the value exactly as its source produced it.
func (p *Params) Raw(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Require reports every name in names that is not set.
func (p *Params) Require(names ...string) error {
	var errs []error
	for _, name := range names {
		if _, ok := p.values[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissing, name))
		}
	}
	return errors.Join(errs...)
}

// Value returns the decoded value of name. String values must be valid
// literals.
func (p *Params) Value(name string) (any, error) {
	raw, err := p.raw(name)
	if err != nil {
		return nil, err
	}
	v, err := literal.Eval(raw)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", name, err)
	}
	return v, nil
}

// Lenient returns the decoded value of name, or the raw value when it is
// not a literal.
func (p *Params) Lenient(name string) (any, error) {
	raw, err := p.raw(name)
	if err != nil {
		return nil, err
	}
	return literal.Lenient(raw), nil
}

// String returns name as the source gave it, without literal decoding, so
// a path such as "2018" or "None" stays a path. Scalars from typed sources
// are formatted; lists and mappings are rejected.
func (p *Params) String(name string) (string, error) {
	raw, err := p.raw(name)
	if err != nil {
		return "", err
	}
	switch v := raw.(type) {
	case string:
		return v, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), nil
	}
	return as(name, raw, literal.AsString)
}

func (p *Params) Int(name string) (int, error) {
	v, err := p.Value(name)
	if err != nil {
		return 0, err
	}
	return as(name, v, literal.AsInt)
}

func (p *Params) Float(name string) (float64, error) {
	v, err := p.Value(name)
	if err != nil {
		return 0, err
	}
	return as(name, v, literal.AsFloat)
}

func (p *Params) Bool(name string) (bool, error) {
	v, err := p.Value(name)
	if err != nil {
		return false, err
	}
	return as(name, v, literal.AsBool)
}

// IntPair returns a two-element integer list such as an image size.
func (p *Params) IntPair(name string) ([2]int, error) {
	v, err := p.Value(name)
	if err != nil {
		return [2]int{}, err
	}
	return as(name, v, literal.AsIntPair)
}

func (p *Params) raw(name string) (any, error) {
	v, ok := p.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissing, name)
	}
	return v, nil
}

func as[T any](name string, v any, conv func(any) (T, error)) (T, error) {
	out, err := conv(v)
	if err != nil {
		return out, fmt.Errorf("parameter %s: %w", name, err)
	}
	return out, nil
}

func describe(src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}

// Option configures parameter loading in New.
type Option func(*loader)

type loader struct {
	observer observability.Observer
	extra    []Source
}

// WithObserver sets the observer receiving load events.
func WithObserver(o observability.Observer) Option {
	return func(l *loader) { l.observer = o }
}

// WithSources appends sources after the configured ones; they take
// precedence over the file and the environment.
func WithSources(sources ...Source) Option {
	return func(l *loader) { l.extra = append(l.extra, sources...) }
}

// New reads parameters from the sources cfg describes: the parameter file
// first, then the environment, then any WithSources additions.
func New(cfg *Config, opts ...Option) (*Params, error) {
	l := &loader{observer: observability.NoOpObserver{}}
	for _, opt := range opts {
		opt(l)
	}

	sources := cfg.Sources()
	sources = append(sources, l.extra...)

	ctx := context.Background()
	observability.Emit(ctx, l.observer, observability.Event{
		Type:   EventLoadStart,
		Level:  observability.LevelVerbose,
		Source: "params.New",
		Data:   map[string]any{"sources": len(sources)},
	})

	for _, src := range sources {
		observability.Emit(ctx, l.observer, observability.Event{
			Type:   EventSource,
			Level:  observability.LevelVerbose,
			Source: "params.New",
			Data:   map[string]any{"source": describe(src)},
		})
	}

	p, err := Read(sources...)
	if err != nil {
		observability.Emit(ctx, l.observer, observability.Event{
			Type:   EventError,
			Level:  observability.LevelError,
			Source: "params.New",
			Data:   map[string]any{"error": err.Error()},
		})
		return nil, err
	}

	observability.Emit(ctx, l.observer, observability.Event{
		Type:   EventLoadComplete,
		Level:  observability.LevelInfo,
		Source: "params.New",
		Data: map[string]any{
			"sources": len(sources),
			"params":  p.Len(),
		},
	})
	return p, nil
}
