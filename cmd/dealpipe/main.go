package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tailored-agentic-units/dealpipe/configsvc"
	"github.com/tailored-agentic-units/dealpipe/observability"
	"github.com/tailored-agentic-units/dealpipe/pipeline"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to pipeline config JSON file")
		paramsFile = flag.String("params", "", "Path to experiment parameter file, YAML, TOML or JSON (overrides config)")
		envPrefix  = flag.String("env-prefix", "", "Environment variable prefix for parameters (overrides config)")
		noEnv      = flag.Bool("no-env", false, "Ignore parameters from the environment")
		format     = flag.String("format", "json", "Output format: json, yaml or toml")
		step       = flag.String("step", "", "Print a single pipeline step")
		serve      = flag.Bool("serve", false, "Serve the configuration over HTTP instead of printing it")
		addr       = flag.String("addr", "", "Listen address for -serve (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	cfg := pipeline.DefaultConfig()
	if *configFile != "" {
		loaded, err := pipeline.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	if *paramsFile != "" {
		cfg.Params.File = *paramsFile
	}
	if *envPrefix != "" {
		cfg.Params.EnvPrefix = *envPrefix
	}
	if *noEnv {
		cfg.Params.NoEnv = true
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observability.RegisterObserver("slog", observability.NewSlogObserver(logger))

	outFormat, err := configsvc.ParseFormat(*format)
	if err != nil {
		log.Fatalf("Invalid -format: %v", err)
	}

	p, err := pipeline.New(&cfg)
	if err != nil {
		log.Fatalf("Failed to build solution config: %v", err)
	}

	if *serve {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := p.Serve(ctx); err != nil {
			log.Fatalf("Config server failed: %v", err)
		}
		return
	}

	var tree map[string]any
	if *step != "" {
		tree, err = p.Solution().Step(*step)
	} else {
		tree, err = p.Solution().Tree()
	}
	if err != nil {
		log.Fatalf("Failed to render config: %v", err)
	}

	out, err := configsvc.Marshal(tree, outFormat)
	if err != nil {
		log.Fatalf("Failed to encode config: %v", err)
	}
	fmt.Println(string(out))
}
