package configsvc_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"slices"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/tailored-agentic-units/dealpipe/configsvc"
	"github.com/tailored-agentic-units/dealpipe/observability"
)

func newTestServer(t *testing.T, rec *observability.Recorder) *httptest.Server {
	t.Helper()

	svc := configsvc.NewService(testConfig(t),
		configsvc.WithBuildID("build-1"),
		configsvc.WithObserver(rec),
	)
	cfg := configsvc.DefaultServerConfig()
	srv := httptest.NewServer(configsvc.NewServer(svc, &cfg).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SolutionConfig(t *testing.T) {
	rec := &observability.Recorder{}
	srv := newTestServer(t, rec)
	client := configsvc.NewClient(srv.Client(), srv.URL)

	tree, buildID, err := client.SolutionConfig(context.Background())
	if err != nil {
		t.Fatalf("SolutionConfig failed: %v", err)
	}
	if buildID != "build-1" {
		t.Errorf("got build id %q, want build-1", buildID)
	}

	training := tree["loader"].(map[string]any)["loader_params"].(map[string]any)["training"].(map[string]any)
	if training["batch_size"] != 32.0 {
		t.Errorf("got batch size %#v, want 32", training["batch_size"])
	}
	if want := []any{224.0, 224.0}; !reflect.DeepEqual(training["target_size"], want) {
		t.Errorf("got target size %#v, want %#v", training["target_size"], want)
	}

	if !slices.Contains(rec.Types(), configsvc.EventRequest) {
		t.Errorf("events %v do not include %s", rec.Types(), configsvc.EventRequest)
	}
}

func TestClient_Step(t *testing.T) {
	srv := newTestServer(t, &observability.Recorder{})
	client := configsvc.NewClient(srv.Client(), srv.URL+"/")

	step, err := client.Step(context.Background(), "clipper")
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if want := map[string]any{"min_val": 0.0, "max_val": 1.0}; !reflect.DeepEqual(step, want) {
		t.Errorf("got %v, want %v", step, want)
	}
}

func TestClient_StepErrors(t *testing.T) {
	rec := &observability.Recorder{}
	srv := newTestServer(t, rec)
	client := configsvc.NewClient(srv.Client(), srv.URL)

	tests := []struct {
		name string
		step string
		code connect.Code
	}{
		{name: "unknown", step: "xgboost", code: connect.CodeNotFound},
		{name: "empty", step: "  ", code: connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Step(context.Background(), tt.step)

			var connectErr *connect.Error
			if !errors.As(err, &connectErr) {
				t.Fatalf("got error %v, want a connect error", err)
			}
			if connectErr.Code() != tt.code {
				t.Errorf("got code %v, want %v", connectErr.Code(), tt.code)
			}
		})
	}

	if !slices.Contains(rec.Types(), configsvc.EventError) {
		t.Errorf("events %v do not include %s", rec.Types(), configsvc.EventError)
	}
}

func TestClient_JSONCodec(t *testing.T) {
	srv := newTestServer(t, &observability.Recorder{})
	client := configsvc.NewClient(srv.Client(), srv.URL, connect.WithProtoJSON())

	step, err := client.Step(context.Background(), "target_encoder")
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if step["n_splits"] != 10.0 {
		t.Errorf("got n_splits %#v, want 10", step["n_splits"])
	}
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, &observability.Recorder{})

	body := getJSON(t, srv.URL+"/healthz", http.StatusOK)
	if body["status"] != "ok" {
		t.Errorf("got status %v, want ok", body["status"])
	}
	if body["build_id"] != "build-1" {
		t.Errorf("got build id %v, want build-1", body["build_id"])
	}
}

func TestServer_Config(t *testing.T) {
	srv := newTestServer(t, &observability.Recorder{})

	body := getJSON(t, srv.URL+"/v1/config", http.StatusOK)
	if len(body) != 14 {
		t.Errorf("got %d steps, want 14", len(body))
	}

	step := getJSON(t, srv.URL+"/v1/config/label_encoder_image", http.StatusOK)
	if want := []any{"parent_category_name", "category_name"}; !reflect.DeepEqual(step["columns_to_encode"], want) {
		t.Errorf("got columns %v, want %v", step["columns_to_encode"], want)
	}

	missing := getJSON(t, srv.URL+"/v1/config/xgboost", http.StatusNotFound)
	if msg, _ := missing["error"].(string); !strings.Contains(msg, "xgboost") {
		t.Errorf("error %q does not name the step", msg)
	}
}

func TestServer_Columns(t *testing.T) {
	srv := newTestServer(t, &observability.Recorder{})

	body := getJSON(t, srv.URL+"/v1/columns", http.StatusOK)
	if features, _ := body["features"].([]any); len(features) != 16 {
		t.Errorf("got %d features, want 16", len(features))
	}
	types := body["types"].(map[string]any)
	if got := types["train"].(map[string]any)["deal_probability"]; got != "float32" {
		t.Errorf("got target type %v, want float32", got)
	}

	schema := getJSON(t, srv.URL+"/v1/columns?phase=inference", http.StatusOK)
	if schema["phase"] != "inference" {
		t.Errorf("got phase %v, want inference", schema["phase"])
	}
	if fields, _ := schema["fields"].([]any); len(fields) != 17 {
		t.Errorf("got %d fields, want 17", len(fields))
	}

	getJSON(t, srv.URL+"/v1/columns?phase=validation", http.StatusBadRequest)
}

func TestServer_UnknownProcedure(t *testing.T) {
	srv := newTestServer(t, &observability.Recorder{})

	res, err := srv.Client().Post(srv.URL+"/"+configsvc.ServiceName+"/Missing", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		t.Errorf("got status %d, want %d", res.StatusCode, http.StatusNotFound)
	}
}

func TestServerConfig_Merge(t *testing.T) {
	cfg := configsvc.DefaultServerConfig()
	if cfg.Addr != ":8080" {
		t.Errorf("got Addr %q, want :8080", cfg.Addr)
	}

	cfg.Merge(&configsvc.ServerConfig{})
	if cfg.Addr != ":8080" {
		t.Errorf("got Addr %q, want :8080 (preserved default)", cfg.Addr)
	}

	cfg.Merge(&configsvc.ServerConfig{Addr: "127.0.0.1:9000", DevMode: true})
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("got Addr %q, want 127.0.0.1:9000", cfg.Addr)
	}
	if !cfg.DevMode {
		t.Error("got DevMode false, want true")
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	svc := configsvc.NewService(testConfig(t))
	cfg := configsvc.ServerConfig{Addr: "127.0.0.1:0"}
	server := configsvc.NewServer(svc, &cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v, want nil", err)
	}
}

func getJSON(t *testing.T, url string, wantStatus int) map[string]any {
	t.Helper()

	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode != wantStatus {
		t.Fatalf("GET %s: got status %d, want %d", url, res.StatusCode, wantStatus)
	}

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("GET %s: invalid JSON body: %v", url, err)
	}
	return body
}
