package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const unformatted = "[define   (square n)\n   [* n n]]\n\n(print  (square 3))"
const formatted = "(define (square n) (* n n))\n(print (square 3))\n"

func TestFmtCommandRequiresPath(t *testing.T) {
	err := fmtCommand(nil)
	if err == nil || !strings.Contains(err.Error(), "path required") {
		t.Fatalf("expected path required error, got %v", err)
	}
}

func TestFmtCommandCheckDetectsUnformattedFiles(t *testing.T) {
	path := writeScript(t, unformatted)
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{"-check", path})
	})
	if err == nil || !strings.Contains(err.Error(), "need formatting") {
		t.Fatalf("expected formatting check failure, got %v", err)
	}
	if !strings.Contains(out, "script.plc") {
		t.Fatalf("check should list the file, got %q", out)
	}
}

func TestFmtCommandWriteFormatsFileInPlace(t *testing.T) {
	path := writeScript(t, unformatted)
	if err := fmtCommand([]string{"-w", path}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}
	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	if got := string(updated); got != formatted {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtCommandPrintsFormattedOutput(t *testing.T) {
	path := writeScript(t, unformatted)
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("fmt command failed: %v", err)
	}
	if out != formatted {
		t.Fatalf("unexpected stdout output: %q", out)
	}
}

func TestFmtCommandRejectsInvalidSource(t *testing.T) {
	path := writeScript(t, "(print")
	err := fmtCommand([]string{path})
	if err == nil || !strings.Contains(err.Error(), "unterminated term") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestFmtCommandFormatsDirectories(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "a.plc")
	second := filepath.Join(root, "nested", "b.plc")
	ignored := filepath.Join(root, "notes.txt")
	if err := os.MkdirAll(filepath.Dir(second), 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	writeFile(t, first, "(+  1 2)")
	writeFile(t, second, "[print \"x\"]")
	writeFile(t, ignored, "not (source")

	if err := fmtCommand([]string{"-w", root}); err != nil {
		t.Fatalf("fmt directory failed: %v", err)
	}
	if err := fmtCommand([]string{"-check", root}); err != nil {
		t.Fatalf("expected no formatting diffs after write, got %v", err)
	}
	got, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read nested file: %v", err)
	}
	if string(got) != "(print \"x\")\n" {
		t.Fatalf("unexpected nested output %q", got)
	}
}
