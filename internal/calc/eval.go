package calc

import (
	"fmt"
	"math"
)

// Evaluate walks the AST and returns its value. Division by zero follows
// IEEE 754 and yields an infinity or NaN rather than an error.
func Evaluate(e Expr) (float64, error) {
	switch n := e.(type) {
	case *NumberExpr:
		return n.Value, nil
	case *UnaryExpr:
		v, err := Evaluate(n.Operand)
		if err != nil {
			return 0, err
		}
		if n.Op == TokenMinus {
			return -v, nil
		}
		return v, nil
	case *BinaryExpr:
		left, err := Evaluate(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case TokenPlus:
			return left + right, nil
		case TokenMinus:
			return left - right, nil
		case TokenStar:
			return left * right, nil
		case TokenSlash:
			return left / right, nil
		case TokenPow:
			return pow(left, right), nil
		}
		return 0, fmt.Errorf("calc: unknown operator %s", n.Op)
	case nil:
		return 0, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	return 0, fmt.Errorf("calc: unknown node %T", e)
}

// pow differs from math.Pow only for a base of magnitude one raised to an
// infinite power, which is NaN in ECMAScript arithmetic.
func pow(x, y float64) float64 {
	if math.IsInf(y, 0) && math.Abs(x) == 1 {
		return math.NaN()
	}
	return math.Pow(x, y)
}

// Eval parses and evaluates an expression. A NaN or infinite value is
// reported as ErrNotFinite together with the raw value.
func Eval(expression string) (float64, error) {
	ast, err := Parse(expression)
	if err != nil {
		return 0, err
	}
	v, err := Evaluate(ast)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, ErrNotFinite
	}
	return v, nil
}

// Calculate sanitizes expression, evaluates it and renders the result in
// canonical decimal form.
func Calculate(expression string) (string, error) {
	v, err := Eval(Sanitize(expression))
	if err != nil {
		return "", err
	}
	return FormatNumber(v), nil
}
