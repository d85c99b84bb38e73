package parens

import "fmt"

// builtinDefine binds a variable or, when the first argument is a term, a
// function closing over the defining scope.
func builtinDefine(exec *Execution, args []Node) (Value, error) {
	if len(args) != 2 {
		return NewVoid(), arityError("define", "2 arguments", len(args))
	}
	switch target := args[0].(type) {
	case *Identifier:
		val, err := exec.Eval(args[1])
		if err != nil {
			return NewVoid(), err
		}
		exec.scope.Define(target.Name, val)
	case *Term:
		params := make([]string, len(target.Args))
		for i, param := range target.Args {
			ident, ok := param.(*Identifier)
			if !ok {
				return NewVoid(), newEvalError(ErrForm, "define %s: parameter %d must be an identifier", target.Name, i+1)
			}
			params[i] = ident.Name
		}
		exec.scope.Define(target.Name, newUserFunction(target.Name, params, args[1], exec.scope))
		exec.engine.logger.Debug("function defined", "name", target.Name, "params", params)
	default:
		return NewVoid(), newEvalError(ErrForm, "define expects an identifier or a (name params...) term as its first argument")
	}
	return NewVoid(), nil
}

// newUserFunction builds the callable for (define (name params...) body).
// Each call evaluates its arguments in the caller's scope, then evaluates
// body once in a fresh child of the defining scope.
func newUserFunction(name string, params []string, body Node, defining *Scope) Value {
	return newClosure(name, params, defining, func(exec *Execution, args []Node) (Value, error) {
		if len(args) != len(params) {
			return NewVoid(), arityError(name, pluralArgs(len(params)), len(args))
		}
		values, err := exec.evalAll(args)
		if err != nil {
			return NewVoid(), err
		}
		local := defining.Child()
		for i, param := range params {
			local.Define(param, values[i])
		}
		return exec.withScope(local, func() (Value, error) {
			return exec.Eval(body)
		})
	})
}

func builtinSet(exec *Execution, args []Node) (Value, error) {
	if len(args) != 2 {
		return NewVoid(), arityError("set!", "2 arguments", len(args))
	}
	target, ok := args[0].(*Identifier)
	if !ok {
		return NewVoid(), newEvalError(ErrForm, "set! expects an identifier as its first argument")
	}
	val, err := exec.Eval(args[1])
	if err != nil {
		return NewVoid(), err
	}
	if err := exec.scope.Set(target.Name, val); err != nil {
		return NewVoid(), err
	}
	return NewVoid(), nil
}

func builtinDo(exec *Execution, args []Node) (Value, error) {
	return exec.withScope(exec.scope.Child(), func() (Value, error) {
		result := NewVoid()
		for _, arg := range args {
			val, err := exec.Eval(arg)
			if err != nil {
				return NewVoid(), err
			}
			result = val
		}
		return result, nil
	})
}

// builtinWhile runs condition and body inside one child scope that lives for
// the whole loop.
func builtinWhile(exec *Execution, args []Node) (Value, error) {
	if len(args) != 2 {
		return NewVoid(), arityError("while", "2 arguments", len(args))
	}
	return exec.withScope(exec.scope.Child(), func() (Value, error) {
		for {
			if err := exec.checkInterrupt(); err != nil {
				return NewVoid(), err
			}
			ok, err := exec.evalBool("while", args[0])
			if err != nil {
				return NewVoid(), err
			}
			if !ok {
				return NewVoid(), nil
			}
			if _, err := exec.Eval(args[1]); err != nil {
				return NewVoid(), err
			}
		}
	})
}

// builtinFor iterates (for (name list-expr) body). The loop variable lives in
// a child scope and is reassigned with Set before each body evaluation.
func builtinFor(exec *Execution, args []Node) (Value, error) {
	if len(args) != 2 {
		return NewVoid(), arityError("for", "2 arguments", len(args))
	}
	header, ok := args[0].(*Term)
	if !ok {
		return NewVoid(), newEvalError(ErrForm, "for expects a (name list) term as its first argument")
	}
	if len(header.Args) != 1 {
		return NewVoid(), newEvalError(ErrForm, "for header (%s ...) expects 1 argument, got %d", header.Name, len(header.Args))
	}
	iterable, err := exec.Eval(header.Args[0])
	if err != nil {
		return NewVoid(), err
	}
	if iterable.Kind() != KindList {
		return NewVoid(), typeError("for", KindList, iterable)
	}
	items := iterable.List()
	if len(items) == 0 {
		return NewVoid(), nil
	}
	return exec.withScope(exec.scope.Child(), func() (Value, error) {
		exec.scope.Define(header.Name, NewVoid())
		for _, item := range items {
			if err := exec.checkInterrupt(); err != nil {
				return NewVoid(), err
			}
			if err := exec.scope.Set(header.Name, item); err != nil {
				return NewVoid(), err
			}
			if _, err := exec.Eval(args[1]); err != nil {
				return NewVoid(), err
			}
		}
		return NewVoid(), nil
	})
}

func pluralArgs(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", n)
}
