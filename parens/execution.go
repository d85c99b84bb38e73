package parens

import (
	"context"
	"io"

	"github.com/cockroachdb/apd/v3"
)

type callFrame struct {
	Function string
	Offset   int
}

// Execution is the evaluation context threaded through every callable. It
// owns the current scope; constructs that replace the scope restore it on
// every exit path.
type Execution struct {
	engine       *Engine
	ctx          context.Context
	scope        *Scope
	out          io.Writer
	source       string
	callStack    []callFrame
	recursionCap int
}

// Scope returns the current scope.
func (exec *Execution) Scope() *Scope { return exec.scope }

// Output is the writer that print and source write to.
func (exec *Execution) Output() io.Writer { return exec.out }

// Eval evaluates node in the current scope.
func (exec *Execution) Eval(node Node) (Value, error) {
	switch n := node.(type) {
	case *NumberLiteral:
		return NewNumber(n.Value), nil
	case *StringLiteral:
		return NewString(n.Value), nil
	case *Identifier:
		val, err := exec.scope.Lookup(n.Name)
		if err != nil {
			return NewVoid(), exec.annotate(err, n)
		}
		return val, nil
	case *Term:
		return exec.evalTerm(n)
	default:
		return NewVoid(), newEvalError(ErrType, "cannot evaluate %T", node)
	}
}

func (exec *Execution) evalTerm(term *Term) (Value, error) {
	callee, err := exec.scope.Lookup(term.Name)
	if err != nil {
		return NewVoid(), exec.annotate(err, term)
	}
	fn := callee.Callable()
	if fn == nil {
		return NewVoid(), exec.annotate(newEvalError(ErrType, "%q is bound to a %s, not a callable", term.Name, callee.Kind()), term)
	}
	if fn.Scope != nil {
		if err := exec.pushFrame(fn.Name, term.Pos()); err != nil {
			return NewVoid(), exec.annotate(err, term)
		}
		defer exec.popFrame()
	}
	result, err := fn.Fn(exec, term.Args)
	if err != nil {
		return NewVoid(), exec.annotate(err, term)
	}
	return result, nil
}

// withScope runs fn with scope installed as the current scope and restores
// the previous one afterwards, including when fn fails.
func (exec *Execution) withScope(scope *Scope, fn func() (Value, error)) (Value, error) {
	prev := exec.scope
	exec.scope = scope
	defer func() { exec.scope = prev }()
	return fn()
}

func (exec *Execution) evalAll(args []Node) ([]Value, error) {
	values := make([]Value, len(args))
	for i, arg := range args {
		val, err := exec.Eval(arg)
		if err != nil {
			return nil, err
		}
		values[i] = val
	}
	return values, nil
}

func (exec *Execution) evalNumber(name string, arg Node) (*apd.Decimal, error) {
	val, err := exec.Eval(arg)
	if err != nil {
		return nil, err
	}
	if val.Kind() != KindNumber {
		return nil, typeError(name, KindNumber, val)
	}
	return val.Number(), nil
}

func (exec *Execution) evalNumbers(name string, args []Node) ([]*apd.Decimal, error) {
	numbers := make([]*apd.Decimal, len(args))
	for i, arg := range args {
		n, err := exec.evalNumber(name, arg)
		if err != nil {
			return nil, err
		}
		numbers[i] = n
	}
	return numbers, nil
}

func (exec *Execution) evalBool(name string, arg Node) (bool, error) {
	val, err := exec.Eval(arg)
	if err != nil {
		return false, err
	}
	if val.Kind() != KindBool {
		return false, typeError(name, KindBool, val)
	}
	return val.Bool(), nil
}

func (exec *Execution) pushFrame(function string, offset int) error {
	if err := exec.checkInterrupt(); err != nil {
		return err
	}
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return newEvalError(ErrRecursion, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{Function: function, Offset: offset})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

// checkInterrupt reports a cancelled host context.
func (exec *Execution) checkInterrupt() error {
	if exec.ctx == nil {
		return nil
	}
	select {
	case <-exec.ctx.Done():
		return wrapEvalError(ErrInterrupted, exec.ctx.Err(), "evaluation interrupted: %v", exec.ctx.Err())
	default:
		return nil
	}
}
