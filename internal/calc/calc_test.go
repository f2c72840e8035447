package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Valid(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1+2", 3},
		{"2*3+4", 10},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10/4", 2.5},
		{"10//4", 2},
		{"-10//4", -3},
		{"7%3", 1},
		{"-7%3", 2}, // modulo takes the sign of the divisor
		{"2**10", 1024},
		{"2**3**2", 512}, // right-associative
		{"-2**2", -4},
		{"2**-2", 0.25},
		{"-5", -5},
		{"+5", 5},
		{"--5", 5},
		{"sqrt(16)", 4},
		{"sqrt(2)*sqrt(2)", 2.0000000000000004},
		{"abs(-3.5)", 3.5},
		{"pow(2, 8)", 256},
		{"round(2.5)", 2}, // banker's rounding
		{"round(3.14159, 2)", 3.14},
		{"pi", math.Pi},
		{"e", math.E},
		{"tau", 2 * math.Pi},
		{"cos(0)", 1},
		{"log(e)", 1},
		{"log(8, 2)", 3},
		{"log10(1000)", 3},
		{"hypot(3, 4)", 5},
		{"atan2(0, 1)", 0},
		{"degrees(pi)", 180},
		{"radians(180)", math.Pi},
		{"floor(2.7)", 2},
		{"ceil(2.1)", 3},
		{"1.5e3", 1500},
		{".5 + .5", 1},
		{" 1 +\t2 ", 3},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		msg  string
	}{
		{"division by zero", "1/0", "division by zero"},
		{"floor division by zero", "1//0", "division by zero"},
		{"modulo by zero", "1%0", "modulo by zero"},
		{"domain error", "sqrt(-1)", "math domain error"},
		{"log domain error", "log(-1)", "math domain error"},
		{"undefined name", "foo + 1", "name 'foo' is not defined"},
		{"undefined function", "frob(1)", "name 'frob' is not defined"},
		{"constant called", "pi(2)", "'pi' is not callable"},
		{"empty expression", "", "invalid syntax"},
		{"trailing operator", "1+", "invalid syntax"},
		{"unbalanced paren", "(1+2", "invalid syntax"},
		{"double number", "1 2", "invalid syntax"},
		{"bad character", "1 $ 2", "unexpected character '$'"},
		{"bad number", "1.2.3", "invalid number '1.2.3'"},
		{"wrong arity", "pow(2)", "pow() takes 2 argument(s), got 1"},
		{"too many args", "sqrt(1, 2)", "sqrt() takes 1 argument(s), got 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.expr)
			require.Error(t, err)

			var evalErr *EvaluationError
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, tt.msg, evalErr.Message)
		})
	}
}

func TestEvaluate_NoAssignmentsOrAttributes(t *testing.T) {
	// Only expressions over the allowed symbol table are reachable.
	for _, expr := range []string{"x = 1", "math.sqrt(4)", "__import__('os')"} {
		_, err := Evaluate(expr)
		assert.Error(t, err, expr)
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4, "4.0"},
		{-4, "-4.0"},
		{0, "0.0"},
		{2.5, "2.5"},
		{1.0 / 3.0, "0.3333333333333333"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
		{1e20, "1e+20"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatResult(tt.in))
	}
}
