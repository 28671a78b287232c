package handlers

import (
	"context"
	"strings"
	"testing"

	"toolchat/internal/tools"
)

func TestCalculate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2+2", "4"},
		{"2/0", "Error: Invalid calculation"},
		{"2**8", "256"},
		{"abc", "Error: Invalid expression"},
		{"(1+2", "Error: Invalid expression"},
		{"0/0", "Error: Invalid calculation"},
		{"7 / 2", "3.5"},
		{strings.Repeat("9", 310), "Error: Invalid calculation"},
	}
	for _, tc := range cases {
		if got := Calculate(tc.in); got != tc.want {
			t.Fatalf("Calculate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCalculatorHandlerJoinsArgsWithoutSeparator(t *testing.T) {
	inv := tools.Parse("[calc: 1,000 + 1]").Tools[0]
	if got := (CalculatorHandler{}).Handle(context.Background(), inv); got != "1001" {
		t.Fatalf("Handle() = %q, want 1001", got)
	}
}
