package parens

import "github.com/cockroachdb/apd/v3"

func builtinAdd(exec *Execution, args []Node) (Value, error) {
	numbers, err := exec.evalNumbers("+", args)
	if err != nil {
		return NewVoid(), err
	}
	sum := apd.New(0, 0)
	for _, n := range numbers {
		if sum, err = addNumbers(sum, n); err != nil {
			return NewVoid(), err
		}
	}
	return NewNumber(sum), nil
}

func builtinMultiply(exec *Execution, args []Node) (Value, error) {
	numbers, err := exec.evalNumbers("*", args)
	if err != nil {
		return NewVoid(), err
	}
	product := apd.New(1, 0)
	for _, n := range numbers {
		if product, err = mulNumbers(product, n); err != nil {
			return NewVoid(), err
		}
	}
	return NewNumber(product), nil
}

func builtinSubtract(exec *Execution, args []Node) (Value, error) {
	numbers, err := exec.evalNumbers("-", args)
	if err != nil {
		return NewVoid(), err
	}
	switch len(numbers) {
	case 0:
		return NewVoid(), arityError("-", "at least 1 argument", 0)
	case 1:
		neg, err := negNumber(numbers[0])
		if err != nil {
			return NewVoid(), err
		}
		return NewNumber(neg), nil
	}
	result := numbers[0]
	for _, n := range numbers[1:] {
		if result, err = subNumbers(result, n); err != nil {
			return NewVoid(), err
		}
	}
	return NewNumber(result), nil
}

// builtinDivide divides the first argument by the product of the rest, or
// takes the reciprocal of a single argument. Inexact quotients are rounded
// half-even to the engine's division precision.
func builtinDivide(exec *Execution, args []Node) (Value, error) {
	numbers, err := exec.evalNumbers("/", args)
	if err != nil {
		return NewVoid(), err
	}
	if len(numbers) == 0 {
		return NewVoid(), arityError("/", "at least 1 argument", 0)
	}
	dividend := apd.New(1, 0)
	divisors := numbers
	if len(numbers) > 1 {
		dividend = numbers[0]
		divisors = numbers[1:]
	}
	divisor := apd.New(1, 0)
	for _, n := range divisors {
		if divisor, err = mulNumbers(divisor, n); err != nil {
			return NewVoid(), err
		}
	}
	quotient, err := quoNumbers(exec.engine.division, dividend, divisor)
	if err != nil {
		return NewVoid(), err
	}
	return NewNumber(quotient), nil
}

// builtinRange builds the integers [start, end). Equal bounds give an empty
// list before the bounds are checked for integrality.
func builtinRange(exec *Execution, args []Node) (Value, error) {
	if len(args) != 2 {
		return NewVoid(), arityError("range", "2 arguments", len(args))
	}
	bounds, err := exec.evalNumbers("range", args)
	if err != nil {
		return NewVoid(), err
	}
	if bounds[0].Cmp(bounds[1]) == 0 {
		return NewList([]Value{}), nil
	}
	if !isIntegral(bounds[0]) || !isIntegral(bounds[1]) {
		return NewVoid(), newEvalError(ErrType, "range expects integer bounds, got %s and %s", formatNumber(bounds[0]), formatNumber(bounds[1]))
	}
	start, okStart := integerValue(bounds[0])
	end, okEnd := integerValue(bounds[1])
	if !okStart || !okEnd {
		return NewVoid(), newEvalError(ErrArgument, "range bounds %s and %s exceed the 64-bit integer range", formatNumber(bounds[0]), formatNumber(bounds[1]))
	}
	if start > end {
		return NewVoid(), newEvalError(ErrArgument, "range start %d is greater than end %d", start, end)
	}
	items := make([]Value, 0, min(end-start, 1024))
	for i := start; i < end; i++ {
		items = append(items, NewInt(i))
	}
	return NewList(items), nil
}
