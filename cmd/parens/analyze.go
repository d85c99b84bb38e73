package main

import (
	"errors"
	"flag"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"

	"github.com/edwingeng/deque"
	"github.com/fatih/color"
	"github.com/mgomes/parens/parens"
)

var warningColor = color.New(color.FgYellow)

type lintWarning struct {
	Pos     parens.Position
	Message string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("parens analyze: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	engine := parens.MustNewEngine(parens.Config{})
	warnings, err := analyzeSource(string(input), engine.Builtins())
	if err != nil {
		return fmt.Errorf("analysis parse failed: %w", err)
	}
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		warningColor.Fprintf(os.Stdout, "%s:%d:%d: %s\n", scriptPath, warning.Pos.Line, warning.Pos.Column, warning.Message)
	}
	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

// analyzer checks a program without evaluating it. Names bound by define
// anywhere in the file count as bound everywhere, since function bodies are
// only resolved when called.
type analyzer struct {
	source   string
	library  map[string]parens.Value
	defined  map[string]struct{}
	arity    map[string]int
	warnings []lintWarning
}

func analyzeSource(source string, library map[string]parens.Value) ([]lintWarning, error) {
	program, err := parens.Parse(source)
	if err != nil {
		return nil, err
	}
	a := &analyzer{
		source:  source,
		library: library,
		defined: make(map[string]struct{}),
		arity:   make(map[string]int),
	}
	a.collect(program)
	for _, expr := range program.Args {
		a.visit(expr, nil)
	}

	sort.SliceStable(a.warnings, func(i, j int) bool {
		return a.warnings[i].Pos.Offset < a.warnings[j].Pos.Offset
	})
	return a.warnings, nil
}

// collect records every defined name and the parameter count of every
// function definition, walking the tree breadth-first. A name defined with
// conflicting shapes gets arity -1.
func (a *analyzer) collect(program *parens.Term) {
	pending := deque.NewDeque()
	pending.PushBack(program)
	for !pending.Empty() {
		term := pending.PopFront().(*parens.Term)
		if term.Name == "define" && len(term.Args) > 0 {
			a.recordDefinition(term.Args[0])
		}
		for _, arg := range term.Args {
			if child, ok := arg.(*parens.Term); ok {
				pending.PushBack(child)
			}
		}
	}
}

func (a *analyzer) recordDefinition(target parens.Node) {
	switch target := target.(type) {
	case *parens.Identifier:
		a.defined[target.Name] = struct{}{}
		a.arity[target.Name] = -1
	case *parens.Term:
		a.defined[target.Name] = struct{}{}
		if prev, seen := a.arity[target.Name]; seen && prev != len(target.Args) {
			a.arity[target.Name] = -1
		} else {
			a.arity[target.Name] = len(target.Args)
		}
	}
}

func (a *analyzer) visit(node parens.Node, locals map[string]struct{}) {
	switch n := node.(type) {
	case *parens.Identifier:
		a.checkBound(n.Name, n.Pos(), locals)
	case *parens.Term:
		a.visitTerm(n, locals)
	}
}

func (a *analyzer) visitTerm(term *parens.Term, locals map[string]struct{}) {
	switch term.Name {
	case "define":
		if len(term.Args) == 0 {
			return
		}
		if target, ok := term.Args[0].(*parens.Term); ok {
			params := make([]string, 0, len(target.Args))
			for _, param := range target.Args {
				if ident, ok := param.(*parens.Identifier); ok {
					params = append(params, ident.Name)
				}
			}
			a.visitAll(term.Args[1:], withLocals(locals, params...))
			return
		}
		if _, ok := term.Args[0].(*parens.Identifier); ok {
			a.visitAll(term.Args[1:], locals)
			return
		}
		a.visitAll(term.Args, locals)
		return
	case "for":
		if len(term.Args) > 0 {
			if header, ok := term.Args[0].(*parens.Term); ok && len(header.Args) == 1 {
				a.visit(header.Args[0], locals)
				a.visitAll(term.Args[1:], withLocals(locals, header.Name))
				return
			}
		}
	}

	a.checkBound(term.Name, term.Pos(), locals)
	if _, local := locals[term.Name]; !local {
		if want, ok := a.arity[term.Name]; ok && want >= 0 && want != len(term.Args) {
			a.warn(term.Pos(), fmt.Sprintf("%s expects %d argument(s), got %d", term.Name, want, len(term.Args)))
		}
	}
	a.visitAll(term.Args, locals)
}

func (a *analyzer) visitAll(nodes []parens.Node, locals map[string]struct{}) {
	for _, node := range nodes {
		a.visit(node, locals)
	}
}

func (a *analyzer) checkBound(name string, offset int, locals map[string]struct{}) {
	if _, ok := locals[name]; ok {
		return
	}
	if _, ok := a.defined[name]; ok {
		return
	}
	if _, ok := a.library[name]; ok {
		return
	}
	a.warn(offset, fmt.Sprintf("unbound name %q", name))
}

func (a *analyzer) warn(offset int, msg string) {
	a.warnings = append(a.warnings, lintWarning{Pos: parens.PositionAt(a.source, offset), Message: msg})
}

func withLocals(locals map[string]struct{}, names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(locals)+len(names))
	maps.Copy(out, locals)
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out
}
