// Package pipeline composes parameter ingestion, solution assembly and the
// config service into one build of the deal-probability pipeline
// configuration.
//
// A Pipeline is created from configuration via New. Functional options
// override the config-created pieces for tests:
//
//	p, err := pipeline.New(&cfg, pipeline.WithSources(params.MapSource{...}))
//	p.Solution().Loader.LoaderParams.Training.BatchSize
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tailored-agentic-units/dealpipe/configsvc"
	"github.com/tailored-agentic-units/dealpipe/observability"
	"github.com/tailored-agentic-units/dealpipe/params"
	"github.com/tailored-agentic-units/dealpipe/solution"
)

// Option configures a Pipeline before it is built.
type Option func(*options)

type options struct {
	observer observability.Observer
	sources  []params.Source
	buildID  string
}

// WithObserver overrides the config-selected observer.
func WithObserver(o observability.Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithSources adds parameter sources that take precedence over the
// configured file and environment.
func WithSources(sources ...params.Source) Option {
	return func(opts *options) { opts.sources = append(opts.sources, sources...) }
}

// WithBuildID replaces the generated build id.
func WithBuildID(id string) Option {
	return func(opts *options) { opts.buildID = id }
}

// Pipeline is one immutable build of the solution configuration.
type Pipeline struct {
	id       string
	params   *params.Params
	solution *solution.Config
	server   configsvc.ServerConfig
	observer observability.Observer
}

// New reads parameters and assembles the solution configuration. Any
// failure aborts the build; configuration is mandatory for every step.
func New(cfg *Config, opts ...Option) (*Pipeline, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.observer == nil {
		obs, err := observability.GetObserver(cfg.Observer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer: %w", err)
		}
		o.observer = obs
	}
	if o.buildID == "" {
		o.buildID = uuid.Must(uuid.NewV7()).String()
	}

	ctx := context.Background()
	observability.Emit(ctx, o.observer, observability.Event{
		Type:   EventBuildStart,
		Level:  observability.LevelInfo,
		Source: "pipeline.New",
		Data:   map[string]any{"build_id": o.buildID},
	})

	p, err := params.New(&cfg.Params,
		params.WithObserver(o.observer),
		params.WithSources(o.sources...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters: %w", err)
	}

	sol, err := solution.New(p, solution.WithObserver(o.observer))
	if err != nil {
		return nil, fmt.Errorf("failed to assemble solution config: %w", err)
	}

	observability.Emit(ctx, o.observer, observability.Event{
		Type:   EventBuildComplete,
		Level:  observability.LevelInfo,
		Source: "pipeline.New",
		Data: map[string]any{
			"build_id": o.buildID,
			"params":   p.Len(),
		},
	})

	return &Pipeline{
		id:       o.buildID,
		params:   p,
		solution: sol,
		server:   cfg.Server,
		observer: o.observer,
	}, nil
}

// BuildID identifies this build in logs and in served responses.
func (p *Pipeline) BuildID() string { return p.id }

// Params returns the parameters the build was assembled from.
func (p *Pipeline) Params() *params.Params { return p.params }

// Solution returns the assembled configuration.
func (p *Pipeline) Solution() *solution.Config { return p.solution }

// Service returns a config service serving this build.
func (p *Pipeline) Service() *configsvc.Service {
	return configsvc.NewService(p.solution,
		configsvc.WithBuildID(p.id),
		configsvc.WithObserver(p.observer),
	)
}

// Serve hosts the config service until ctx is cancelled.
func (p *Pipeline) Serve(ctx context.Context) error {
	return configsvc.NewServer(p.Service(), &p.server).Run(ctx)
}
