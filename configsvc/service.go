// Package configsvc distributes an assembled solution configuration to
// pipeline steps running in other processes. It serves the configuration
// tree over a Connect RPC service, hosts that service together with plain
// JSON endpoints on a gin router, and encodes trees as JSON, YAML or TOML.
package configsvc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tailored-agentic-units/dealpipe/observability"
	"github.com/tailored-agentic-units/dealpipe/solution"
)

// Connect procedure names.
const (
	ServiceName                = "dealpipe.v1.ConfigService"
	GetSolutionConfigProcedure = "/" + ServiceName + "/GetSolutionConfig"
	GetStepProcedure           = "/" + ServiceName + "/GetStep"
)

// BuildIDHeader carries the build id of the configuration being served.
const BuildIDHeader = "Dealpipe-Build-Id"

// Provider supplies configuration trees. *solution.Config implements it.
type Provider interface {
	Tree() (map[string]any, error)
	Step(name string) (map[string]any, error)
}

// Option configures a Service.
type Option func(*Service)

// WithObserver sets the observer receiving request events.
func WithObserver(o observability.Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithBuildID sets the build id returned in BuildIDHeader.
func WithBuildID(id string) Option {
	return func(s *Service) { s.buildID = id }
}

// Service implements the ConfigService procedures.
type Service struct {
	provider Provider
	buildID  string
	observer observability.Observer
}

// NewService creates a Service backed by provider.
func NewService(provider Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		observer: observability.NoOpObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSolutionConfig returns the whole configuration tree.
func (s *Service) GetSolutionConfig(
	ctx context.Context,
	req *connect.Request[emptypb.Empty],
) (*connect.Response[structpb.Struct], error) {
	tree, err := s.provider.Tree()
	if err != nil {
		return nil, s.fail(ctx, GetSolutionConfigProcedure, connect.NewError(connect.CodeInternal, err))
	}
	return s.respond(ctx, GetSolutionConfigProcedure, tree)
}

// GetStep returns the options of the named step.
func (s *Service) GetStep(
	ctx context.Context,
	req *connect.Request[wrapperspb.StringValue],
) (*connect.Response[structpb.Struct], error) {
	name := strings.TrimSpace(req.Msg.GetValue())
	if name == "" {
		return nil, s.fail(ctx, GetStepProcedure, connect.NewError(connect.CodeInvalidArgument, ErrEmptyStep))
	}

	step, err := s.provider.Step(name)
	if err != nil {
		code := connect.CodeInternal
		if errors.Is(err, solution.ErrUnknownStep) {
			code = connect.CodeNotFound
		}
		return nil, s.fail(ctx, GetStepProcedure, connect.NewError(code, err))
	}
	return s.respond(ctx, GetStepProcedure, step)
}

// Handler returns the path prefix and handler serving every procedure,
// ready to mount on a mux.
func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	getConfig := connect.NewUnaryHandler(GetSolutionConfigProcedure, s.GetSolutionConfig, opts...)
	getStep := connect.NewUnaryHandler(GetStepProcedure, s.GetStep, opts...)

	return "/" + ServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GetSolutionConfigProcedure:
			getConfig.ServeHTTP(w, r)
		case GetStepProcedure:
			getStep.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

func (s *Service) respond(ctx context.Context, procedure string, tree map[string]any) (*connect.Response[structpb.Struct], error) {
	msg, err := ToStruct(tree)
	if err != nil {
		return nil, s.fail(ctx, procedure, connect.NewError(connect.CodeInternal, err))
	}

	res := connect.NewResponse(msg)
	if s.buildID != "" {
		res.Header().Set(BuildIDHeader, s.buildID)
	}

	observability.Emit(ctx, s.observer, observability.Event{
		Type:   EventRequest,
		Level:  observability.LevelVerbose,
		Source: "configsvc.Service",
		Data: map[string]any{
			"procedure": procedure,
			"fields":    len(tree),
		},
	})
	return res, nil
}

func (s *Service) fail(ctx context.Context, procedure string, err *connect.Error) error {
	observability.Emit(ctx, s.observer, observability.Event{
		Type:   EventError,
		Level:  observability.LevelWarning,
		Source: "configsvc.Service",
		Data: map[string]any{
			"procedure": procedure,
			"code":      err.Code().String(),
			"error":     err.Message(),
		},
	})
	return err
}

// Client calls a remote ConfigService.
type Client struct {
	config *connect.Client[emptypb.Empty, structpb.Struct]
	step   *connect.Client[wrapperspb.StringValue, structpb.Struct]
}

// NewClient creates a Client for the service at baseURL, e.g.
// http://localhost:8080.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		config: connect.NewClient[emptypb.Empty, structpb.Struct](httpClient, baseURL+GetSolutionConfigProcedure, opts...),
		step:   connect.NewClient[wrapperspb.StringValue, structpb.Struct](httpClient, baseURL+GetStepProcedure, opts...),
	}
}

// SolutionConfig fetches the whole tree and the build id that produced it.
// Numbers arrive as float64.
func (c *Client) SolutionConfig(ctx context.Context) (map[string]any, string, error) {
	res, err := c.config.CallUnary(ctx, connect.NewRequest(&emptypb.Empty{}))
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch solution config: %w", err)
	}
	return res.Msg.AsMap(), res.Header().Get(BuildIDHeader), nil
}

// Step fetches a single step's options.
func (c *Client) Step(ctx context.Context, name string) (map[string]any, error) {
	res, err := c.step.CallUnary(ctx, connect.NewRequest(wrapperspb.String(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch step %s: %w", name, err)
	}
	return res.Msg.AsMap(), nil
}
