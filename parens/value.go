package parens

import "github.com/cockroachdb/apd/v3"

type ValueKind int

const (
	KindVoid ValueKind = iota
	KindNumber
	KindString
	KindBool
	KindList
	KindCallable
)

// Value is the dynamically typed result of evaluation. The zero Value is Void.
type Value struct {
	kind ValueKind
	data any
}

// CallableFunc receives the unevaluated argument trees of a term and decides
// for itself which of them to evaluate, how often and in what order.
type CallableFunc func(exec *Execution, args []Node) (Value, error)

// Callable is a builtin or a user-defined function. Scope is the defining
// scope for closures and nil for builtins.
type Callable struct {
	Name   string
	Fn     CallableFunc
	Params []string
	Scope  *Scope
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsVoid() bool { return v.kind == KindVoid }

func (v Value) Number() *apd.Decimal {
	if v.kind != KindNumber {
		return nil
	}
	return v.data.(*apd.Decimal)
}

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) List() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.data.([]Value)
}

func (v Value) Callable() *Callable {
	if v.kind != KindCallable {
		return nil
	}
	return v.data.(*Callable)
}
