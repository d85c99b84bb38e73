package main

import (
	"strings"
	"testing"

	"github.com/mgomes/parens/parens"
)

func analyzeForTest(t *testing.T, source string) []lintWarning {
	t.Helper()
	warnings, err := analyzeSource(source, parens.MustNewEngine(parens.Config{}).Builtins())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return warnings
}

func TestAnalyzeCommandNoIssues(t *testing.T) {
	scriptPath := writeScript(t, `
(define total 0)
(define (add n) (set! total (+ total n)))
(for (x (range 0 3)) (add x))
(print total)`)

	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("analyzeCommand failed: %v", err)
	}
	if !strings.Contains(out, "No issues found") {
		t.Fatalf("unexpected analyze output: %q", out)
	}
}

func TestAnalyzeCommandReportsIssues(t *testing.T) {
	scriptPath := writeScript(t, "(define (square n) (* n n))\n(square 1 2)\n(print missing)")

	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{scriptPath})
	})
	if err == nil || !strings.Contains(err.Error(), "analysis found 2 issue(s)") {
		t.Fatalf("unexpected analyze error: %v", err)
	}
	if !strings.Contains(out, ":2:1: square expects 1 argument(s), got 2") {
		t.Fatalf("expected arity warning, got %q", out)
	}
	if !strings.Contains(out, `:3:8: unbound name "missing"`) {
		t.Fatalf("expected unbound name warning, got %q", out)
	}
}

func TestAnalyzeScopesParametersAndLoopVariables(t *testing.T) {
	warnings := analyzeForTest(t, `
(define (f a) (+ a b))
(for (item (list 1)) (print item))
(print item a)`)

	var messages []string
	for _, w := range warnings {
		messages = append(messages, w.Message)
	}
	want := []string{`unbound name "b"`, `unbound name "item"`, `unbound name "a"`}
	if strings.Join(messages, "|") != strings.Join(want, "|") {
		t.Fatalf("warnings mismatch: got %v want %v", messages, want)
	}
}

func TestAnalyzeAllowsForwardReferencesInBodies(t *testing.T) {
	warnings := analyzeForTest(t, "(define (f) (g 1))\n(define (g x) x)\n(f)")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings %+v", warnings)
	}
}

func TestAnalyzeSkipsArityForShadowedAndConflictingNames(t *testing.T) {
	warnings := analyzeForTest(t, `
(define (h x) x)
(define (h x y) x)
(h 1 2 3)
(define (k f) (f 1 2))
(define (f) 1)`)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings %+v", warnings)
	}
}

func TestAnalyzeCommandRequiresScriptPath(t *testing.T) {
	err := analyzeCommand(nil)
	if err == nil || !strings.Contains(err.Error(), "script path required") {
		t.Fatalf("expected script path error, got %v", err)
	}
}
