// Package calc evaluates arithmetic expressions against a fixed symbol
// table: the usual math functions and constants plus abs, round and pow.
// Expressions are parsed with a small recursive-descent parser, so only
// numeric literals, the allowed names and standard operators are reachable.
package calc

import (
	"fmt"
	"math"
	"strconv"
)

// EvaluationError is the single failure type for the evaluator. Syntax
// errors, unknown names, bad arity and runtime errors (division by zero,
// domain errors) all surface as this type with a descriptive message.
type EvaluationError struct {
	Message string
}

func (e *EvaluationError) Error() string {
	return e.Message
}

func evalErrorf(format string, args ...any) *EvaluationError {
	return &EvaluationError{Message: fmt.Sprintf(format, args...)}
}

// constants are the allowed named values.
var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
	"inf": math.Inf(1),
	"nan": math.NaN(),
}

type function struct {
	minArgs int
	maxArgs int
	apply   func(args []float64) (float64, error)
}

func unaryFn(f func(float64) float64) function {
	return function{
		minArgs: 1,
		maxArgs: 1,
		apply: func(args []float64) (float64, error) {
			v := f(args[0])
			if math.IsNaN(v) && !math.IsNaN(args[0]) {
				return 0, evalErrorf("math domain error")
			}
			return v, nil
		},
	}
}

func binaryFn(f func(a, b float64) float64) function {
	return function{
		minArgs: 2,
		maxArgs: 2,
		apply: func(args []float64) (float64, error) {
			v := f(args[0], args[1])
			if math.IsNaN(v) && !math.IsNaN(args[0]) && !math.IsNaN(args[1]) {
				return 0, evalErrorf("math domain error")
			}
			return v, nil
		},
	}
}

var functions = map[string]function{
	"sqrt":     unaryFn(math.Sqrt),
	"cbrt":     unaryFn(math.Cbrt),
	"sin":      unaryFn(math.Sin),
	"cos":      unaryFn(math.Cos),
	"tan":      unaryFn(math.Tan),
	"asin":     unaryFn(math.Asin),
	"acos":     unaryFn(math.Acos),
	"atan":     unaryFn(math.Atan),
	"sinh":     unaryFn(math.Sinh),
	"cosh":     unaryFn(math.Cosh),
	"tanh":     unaryFn(math.Tanh),
	"asinh":    unaryFn(math.Asinh),
	"acosh":    unaryFn(math.Acosh),
	"atanh":    unaryFn(math.Atanh),
	"exp":      unaryFn(math.Exp),
	"expm1":    unaryFn(math.Expm1),
	"log2":     unaryFn(math.Log2),
	"log10":    unaryFn(math.Log10),
	"log1p":    unaryFn(math.Log1p),
	"abs":      unaryFn(math.Abs),
	"fabs":     unaryFn(math.Abs),
	"floor":    unaryFn(math.Floor),
	"ceil":     unaryFn(math.Ceil),
	"trunc":    unaryFn(math.Trunc),
	"gamma":    unaryFn(math.Gamma),
	"erf":      unaryFn(math.Erf),
	"erfc":     unaryFn(math.Erfc),
	"degrees":  unaryFn(func(x float64) float64 { return x * 180 / math.Pi }),
	"radians":  unaryFn(func(x float64) float64 { return x * math.Pi / 180 }),
	"pow":      binaryFn(math.Pow),
	"atan2":    binaryFn(math.Atan2),
	"fmod":     binaryFn(math.Mod),
	"hypot":    binaryFn(math.Hypot),
	"copysign": binaryFn(math.Copysign),
	"log": {
		minArgs: 1,
		maxArgs: 2,
		apply: func(args []float64) (float64, error) {
			var v float64
			if len(args) == 1 {
				v = math.Log(args[0])
			} else {
				v = math.Log(args[0]) / math.Log(args[1])
			}
			if math.IsNaN(v) && !math.IsNaN(args[0]) {
				return 0, evalErrorf("math domain error")
			}
			return v, nil
		},
	},
	"round": {
		minArgs: 1,
		maxArgs: 2,
		apply: func(args []float64) (float64, error) {
			if len(args) == 1 {
				return math.RoundToEven(args[0]), nil
			}
			shift := math.Pow(10, math.Trunc(args[1]))
			return math.RoundToEven(args[0]*shift) / shift, nil
		},
	},
}

// Evaluate parses and evaluates expr. Any failure is an *EvaluationError.
func Evaluate(expr string) (float64, error) {
	p := newParser(expr)
	v, err := p.parse()
	if err != nil {
		return 0, err
	}
	return v, nil
}

// FormatResult renders v the way the calculation history displays numbers:
// integral values keep a trailing ".0", everything else uses the shortest
// exact representation.
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == math.Trunc(v) && math.Abs(v) < 1e16:
		return strconv.FormatFloat(v, 'f', 1, 64)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
