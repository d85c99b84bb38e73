package parens

import "github.com/cockroachdb/apd/v3"

func NewVoid() Value                 { return Value{kind: KindVoid} }
func NewNumber(d *apd.Decimal) Value { return Value{kind: KindNumber, data: d} }
func NewInt(i int64) Value           { return NewNumber(apd.New(i, 0)) }
func NewString(s string) Value       { return Value{kind: KindString, data: s} }
func NewBool(b bool) Value           { return Value{kind: KindBool, data: b} }
func NewList(items []Value) Value    { return Value{kind: KindList, data: items} }

// NewBuiltin wraps fn as a callable value without a closure scope.
func NewBuiltin(name string, fn CallableFunc) Value {
	return Value{kind: KindCallable, data: &Callable{Name: name, Fn: fn}}
}

func newClosure(name string, params []string, scope *Scope, fn CallableFunc) Value {
	return Value{kind: KindCallable, data: &Callable{Name: name, Fn: fn, Params: params, Scope: scope}}
}
