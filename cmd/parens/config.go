package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mgomes/parens/parens"
	"gopkg.in/yaml.v3"
)

// cliConfig is the optional YAML file shared by run and repl.
type cliConfig struct {
	DivisionPrecision uint32   `yaml:"division_precision"`
	RecursionLimit    int      `yaml:"recursion_limit"`
	Prelude           []string `yaml:"prelude"`
	Trace             bool     `yaml:"trace"`

	dir string
}

// loadConfig reads path, or returns an empty config when path is "". Prelude
// entries are resolved relative to the config file.
func loadConfig(path string) (*cliConfig, error) {
	if path == "" {
		return &cliConfig{}, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	cfg := &cliConfig{}
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("config: recursion_limit cannot be negative")
	}
	cfg.dir = filepath.Dir(absPath)
	return cfg, nil
}

func (c *cliConfig) preludePaths() []string {
	paths := make([]string, len(c.Prelude))
	for i, p := range c.Prelude {
		if filepath.IsAbs(p) || c.dir == "" {
			paths[i] = p
			continue
		}
		paths[i] = filepath.Join(c.dir, p)
	}
	return paths
}

func (c *cliConfig) newEngine(out io.Writer, trace bool) (*parens.Engine, error) {
	return parens.NewEngine(parens.Config{
		Output:            out,
		DivisionPrecision: c.DivisionPrecision,
		RecursionLimit:    c.RecursionLimit,
		Logger:            newLogger(trace || c.Trace),
	})
}

// newScope returns a top-level scope with every prelude file evaluated in
// order.
func (c *cliConfig) newScope(ctx context.Context, engine *parens.Engine) (*parens.Scope, error) {
	scope := engine.NewScope()
	for _, path := range c.preludePaths() {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read prelude: %w", err)
		}
		if _, err := engine.EvaluateSource(ctx, string(source), scope); err != nil {
			return nil, fmt.Errorf("prelude %s: %w", path, err)
		}
	}
	return scope, nil
}

func newLogger(trace bool) *slog.Logger {
	if !trace {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
