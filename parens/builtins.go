package parens

import (
	"fmt"
	"io"
	"strings"
)

func registerStandardLibrary(e *Engine) {
	e.RegisterValue("true", NewBool(true))
	e.RegisterValue("false", NewBool(false))

	e.RegisterBuiltin(SourceTermName, builtinSource)
	e.RegisterBuiltin("print", builtinPrint)

	e.RegisterBuiltin("+", builtinAdd)
	e.RegisterBuiltin("-", builtinSubtract)
	e.RegisterBuiltin("*", builtinMultiply)
	e.RegisterBuiltin("/", builtinDivide)

	e.RegisterBuiltin("equals?", builtinEquals)
	e.RegisterBuiltin("not", builtinNot)
	e.RegisterBuiltin("and", builtinAnd)
	e.RegisterBuiltin("or", builtinOr)
	e.RegisterBuiltin("<", comparator("<", func(c int) bool { return c < 0 }))
	e.RegisterBuiltin("<=", comparator("<=", func(c int) bool { return c <= 0 }))
	e.RegisterBuiltin(">", comparator(">", func(c int) bool { return c > 0 }))
	e.RegisterBuiltin(">=", comparator(">=", func(c int) bool { return c >= 0 }))

	e.RegisterBuiltin("list", builtinList)
	e.RegisterBuiltin("range", builtinRange)

	e.RegisterBuiltin("define", builtinDefine)
	e.RegisterBuiltin("set!", builtinSet)
	e.RegisterBuiltin("do", builtinDo)
	e.RegisterBuiltin("while", builtinWhile)
	e.RegisterBuiltin("for", builtinFor)

	e.logger.Debug("standard library registered", "names", len(e.builtins))
}

// builtinSource evaluates top-level expressions in order and writes every
// non-void result on its own line.
func builtinSource(exec *Execution, args []Node) (Value, error) {
	for _, arg := range args {
		val, err := exec.Eval(arg)
		if err != nil {
			return NewVoid(), err
		}
		if val.IsVoid() {
			continue
		}
		if _, err := fmt.Fprintln(exec.out, val.String()); err != nil {
			return NewVoid(), wrapEvalError(ErrOutput, err, "write result: %v", err)
		}
	}
	return NewVoid(), nil
}

func builtinPrint(exec *Execution, args []Node) (Value, error) {
	values, err := exec.evalAll(args)
	if err != nil {
		return NewVoid(), err
	}
	var b strings.Builder
	for _, val := range values {
		b.WriteString(val.String())
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(exec.out, b.String()); err != nil {
		return NewVoid(), wrapEvalError(ErrOutput, err, "print: %v", err)
	}
	return NewVoid(), nil
}

func builtinEquals(exec *Execution, args []Node) (Value, error) {
	if len(args) != 2 {
		return NewVoid(), arityError("equals?", "2 arguments", len(args))
	}
	left, err := exec.Eval(args[0])
	if err != nil {
		return NewVoid(), err
	}
	right, err := exec.Eval(args[1])
	if err != nil {
		return NewVoid(), err
	}
	return NewBool(left.Equal(right)), nil
}

func builtinNot(exec *Execution, args []Node) (Value, error) {
	if len(args) != 1 {
		return NewVoid(), arityError("not", "1 argument", len(args))
	}
	b, err := exec.evalBool("not", args[0])
	if err != nil {
		return NewVoid(), err
	}
	return NewBool(!b), nil
}

// builtinAnd stops at the first false argument; later arguments are neither
// evaluated nor type checked.
func builtinAnd(exec *Execution, args []Node) (Value, error) {
	for _, arg := range args {
		b, err := exec.evalBool("and", arg)
		if err != nil {
			return NewVoid(), err
		}
		if !b {
			return NewBool(false), nil
		}
	}
	return NewBool(true), nil
}

func builtinOr(exec *Execution, args []Node) (Value, error) {
	for _, arg := range args {
		b, err := exec.evalBool("or", arg)
		if err != nil {
			return NewVoid(), err
		}
		if b {
			return NewBool(true), nil
		}
	}
	return NewBool(false), nil
}

// comparator builds an ordering predicate over consecutive argument pairs.
// Every pair is checked for comparability even after the result is known.
func comparator(name string, holds func(int) bool) CallableFunc {
	return func(exec *Execution, args []Node) (Value, error) {
		values, err := exec.evalAll(args)
		if err != nil {
			return NewVoid(), err
		}
		for _, val := range values {
			if !isComparable(val) {
				return NewVoid(), newEvalError(ErrType, "%s cannot compare %s %s", name, val.Kind(), describeValue(val))
			}
		}
		result := true
		for i := 0; i+1 < len(values); i++ {
			c, err := compareValues(values[i], values[i+1])
			if err != nil {
				return NewVoid(), newEvalError(ErrType, "%s: %v", name, err)
			}
			if !holds(c) {
				result = false
			}
		}
		return NewBool(result), nil
	}
}

func isComparable(v Value) bool {
	switch v.Kind() {
	case KindNumber, KindString, KindBool:
		return true
	default:
		return false
	}
}

func compareValues(a, b Value) (int, error) {
	if a.Kind() != b.Kind() {
		return 0, fmt.Errorf("%s and %s are not comparable", a.Kind(), b.Kind())
	}
	switch a.Kind() {
	case KindNumber:
		return a.Number().Cmp(b.Number()), nil
	case KindString:
		return strings.Compare(a.String(), b.String()), nil
	case KindBool:
		switch {
		case a.Bool() == b.Bool():
			return 0, nil
		case a.Bool():
			return 1, nil
		default:
			return -1, nil
		}
	default:
		return 0, fmt.Errorf("%s values are not comparable", a.Kind())
	}
}

func builtinList(exec *Execution, args []Node) (Value, error) {
	values, err := exec.evalAll(args)
	if err != nil {
		return NewVoid(), err
	}
	return NewList(values), nil
}
