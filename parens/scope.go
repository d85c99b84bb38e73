package parens

import (
	"maps"
	"sort"
)

// Scope is one link of the lexical environment chain.
type Scope struct {
	parent *Scope
	values map[string]Value
}

// NewScope returns an empty scope whose lookups fall back to parent, which
// may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, values: make(map[string]Value)}
}

func (s *Scope) Child() *Scope {
	return NewScope(s)
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

// Define binds name in this scope only, shadowing any ancestor binding.
func (s *Scope) Define(name string, val Value) {
	s.values[name] = val
}

// Lookup returns the nearest binding of name.
func (s *Scope) Lookup(name string) (Value, error) {
	for scope := s; scope != nil; scope = scope.parent {
		if val, ok := scope.values[name]; ok {
			return val, nil
		}
	}
	return NewVoid(), newEvalError(ErrName, "undefined name %q", name)
}

// Set replaces the nearest existing binding of name. It never creates one.
func (s *Scope) Set(name string, val Value) error {
	for scope := s; scope != nil; scope = scope.parent {
		if _, ok := scope.values[name]; ok {
			scope.values[name] = val
			return nil
		}
	}
	return newEvalError(ErrName, "cannot set undefined name %q", name)
}

func (s *Scope) Has(name string) bool {
	_, err := s.Lookup(name)
	return err == nil
}

// Names lists every name visible from this scope, sorted.
func (s *Scope) Names() []string {
	seen := make(map[string]struct{})
	for scope := s; scope != nil; scope = scope.parent {
		for name := range scope.values {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bindings returns a copy of the bindings held directly by this scope.
func (s *Scope) Bindings() map[string]Value {
	out := make(map[string]Value, len(s.values))
	maps.Copy(out, s.values)
	return out
}
