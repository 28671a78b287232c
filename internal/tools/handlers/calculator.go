package handlers

import (
	"context"
	"errors"
	"strings"

	"toolchat/internal/calc"
	"toolchat/internal/tools"
)

const (
	calcInvalidExpression  = "Error: Invalid expression"
	calcInvalidCalculation = "Error: Invalid calculation"
)

// CalculatorHandler evaluates arithmetic. Args are concatenated without a
// separator, so "[calc: 1,000 + 1]" evaluates "1000 + 1".
type CalculatorHandler struct{}

func (CalculatorHandler) Name() string         { return "calculator" }
func (CalculatorHandler) Kind() tools.ToolKind { return tools.ToolCalculator }
func (CalculatorHandler) Aliases() []string    { return []string{"calc"} }

func (CalculatorHandler) Handle(_ context.Context, inv tools.Invocation) string {
	return Calculate(strings.Join(inv.Args, ""))
}

// Calculate renders the value of expression or the matching error text.
func Calculate(expression string) string {
	out, err := calc.Calculate(expression)
	switch {
	case err == nil:
		return out
	case errors.Is(err, calc.ErrNotFinite):
		return calcInvalidCalculation
	default:
		return calcInvalidExpression
	}
}
