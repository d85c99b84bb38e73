package parens

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// exactContext performs addition, subtraction, multiplication and negation
// without rounding.
var exactContext = apd.BaseContext

func newDivisionContext(precision uint32) *apd.Context {
	ctx := apd.BaseContext.WithPrecision(precision)
	ctx.Rounding = apd.RoundHalfEven
	return ctx
}

func formatNumber(d *apd.Decimal) string {
	if d == nil {
		return "0"
	}
	return d.Text('f')
}

// normalizeZero clears the sign of a zero result so that negating 0 prints 0.
func normalizeZero(d *apd.Decimal) *apd.Decimal {
	if d.IsZero() {
		d.Negative = false
	}
	return d
}

func addNumbers(a, b *apd.Decimal) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	if _, err := exactContext.Add(out, a, b); err != nil {
		return nil, err
	}
	return normalizeZero(out), nil
}

func subNumbers(a, b *apd.Decimal) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	if _, err := exactContext.Sub(out, a, b); err != nil {
		return nil, err
	}
	return normalizeZero(out), nil
}

func mulNumbers(a, b *apd.Decimal) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	if _, err := exactContext.Mul(out, a, b); err != nil {
		return nil, err
	}
	return normalizeZero(out), nil
}

func negNumber(a *apd.Decimal) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	if _, err := exactContext.Neg(out, a); err != nil {
		return nil, err
	}
	return normalizeZero(out), nil
}

func quoNumbers(ctx *apd.Context, a, b *apd.Decimal) (*apd.Decimal, error) {
	if b.IsZero() {
		return nil, newEvalError(ErrDivision, "division by zero")
	}
	out := new(apd.Decimal)
	cond, err := ctx.Quo(out, a, b)
	if err != nil {
		return nil, err
	}
	if !cond.Inexact() {
		trimExact(out)
	}
	return normalizeZero(out), nil
}

// trimExact drops the trailing zeros Quo pads an exact quotient with, keeping
// the exponent at or below zero so 20 does not become 2E+1.
func trimExact(d *apd.Decimal) {
	d.Reduce(d)
	if d.Exponent <= 0 {
		return
	}
	var scale apd.BigInt
	scale.Exp(apd.NewBigInt(10), apd.NewBigInt(int64(d.Exponent)), nil)
	d.Coeff.Mul(&d.Coeff, &scale)
	d.Exponent = 0
}

func isIntegral(d *apd.Decimal) bool {
	var reduced apd.Decimal
	reduced.Reduce(d)
	return reduced.Exponent >= 0
}

// integerValue returns d as an int64 when it has no fractional part and fits.
func integerValue(d *apd.Decimal) (int64, bool) {
	if !isIntegral(d) {
		return 0, false
	}
	var reduced apd.Decimal
	reduced.Reduce(d)
	n, err := reduced.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseNumber converts decimal text, with an optional sign, into a Number value.
func ParseNumber(text string) (Value, error) {
	d, err := parseDecimal(strings.TrimSpace(text))
	if err != nil {
		return NewVoid(), fmt.Errorf("invalid number %q: %w", text, err)
	}
	return NewNumber(d), nil
}
