package router

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "addition", input: "2+2", want: 4},
		{name: "precedence", input: "10 + 5 * 2", want: 20},
		{name: "parentheses", input: "(10 + 5) * 2", want: 30},
		{name: "division", input: "7 / 2", want: 3.5},
		{name: "modulo", input: "10 % 3", want: 1},
		{name: "unary minus", input: "-3 + 5", want: 2},
		{name: "double unary", input: "--4", want: 4},
		{name: "nested parens", input: "((1 + 2) * (3 + 4))", want: 21},
		{name: "decimals", input: "0.5 * 4", want: 2},
		{name: "sqrt", input: "sqrt 16", want: 4},
		{name: "sqrt of expression", input: "sqrt (9 + 16)", want: 5},
		{name: "letters stripped", input: "2 + abc2", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.input)
			if err != nil {
				t.Fatalf("Evaluate(%q): %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluateMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "only letters", input: "hello"},
		{name: "unclosed paren", input: "2 + ("},
		{name: "missing operand", input: "2 +"},
		{name: "trailing operand", input: "2 3"},
		{name: "division by zero", input: "1 / 0"},
		{name: "modulo by zero", input: "1 % 0"},
		{name: "sqrt of negative", input: "sqrt -4"},
		{name: "lone operator", input: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.input)
			if !errors.Is(err, ErrMalformedExpression) {
				t.Errorf("Evaluate(%q) error = %v, want ErrMalformedExpression", tt.input, err)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 4, want: "4"},
		{in: 20, want: "20"},
		{in: 3.5, want: "3.5"},
		{in: -2, want: "-2"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
