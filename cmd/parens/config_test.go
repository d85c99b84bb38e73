package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DivisionPrecision != 0 || len(cfg.Prelude) != 0 || cfg.Trace {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parens.yml")
	writeFile(t, path, "")
	if _, err := loadConfig(path); err != nil {
		t.Fatalf("empty config should load: %v", err)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parens.yml")
	writeFile(t, path, "precision: 5\n")
	_, err := loadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "config: parse") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigRejectsNegativeRecursionLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parens.yml")
	writeFile(t, path, "recursion_limit: -1\n")
	if _, err := loadConfig(path); err == nil {
		t.Fatalf("expected negative recursion limit error")
	}
}

func TestConfigBuildsEngineAndPrelude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.plc"), "(define base 10)")
	writeFile(t, filepath.Join(dir, "b.plc"), "(define (offset n) (+ base n))")
	path := filepath.Join(dir, "parens.yml")
	writeFile(t, path, "recursion_limit: 50\ntrace: false\nprelude: [a.plc, b.plc]\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	engine, err := cfg.newEngine(nil, false)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	if got := engine.ConfigSummary(); got != "division_precision=34 recursion=50" {
		t.Fatalf("unexpected summary %q", got)
	}
	scope, err := cfg.newScope(context.Background(), engine)
	if err != nil {
		t.Fatalf("newScope: %v", err)
	}
	if !scope.Has("base") || !scope.Has("offset") {
		t.Fatalf("prelude bindings missing: %v", scope.Names())
	}
}

func TestConfigPreludeErrorsNameTheFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.plc"), "(undefined-thing)")
	path := filepath.Join(dir, "parens.yml")
	writeFile(t, path, "prelude: [bad.plc]\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	engine, err := cfg.newEngine(nil, false)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	_, err = cfg.newScope(context.Background(), engine)
	if err == nil || !strings.Contains(err.Error(), "bad.plc") {
		t.Fatalf("expected prelude error naming the file, got %v", err)
	}
}
