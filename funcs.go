package calc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// extPrec is the mantissa size used for functions computed with extended
// precision before rounding to float64.
const extPrec = 64

// function is a function of one real argument.
type function struct {
	f func(float64) float64
	// trig indicates that the argument is an angle in the context's unit.
	trig bool
}

func (fn function) call(x float64, mode AngleMode) float64 {
	if fn.trig && mode == Degrees {
		x = x * math.Pi / 180
	}
	return fn.f(x)
}

// globalfuncs is the dispatch table for every identifier that is not a
// constant.
var globalfuncs = map[string]function{
	"sin":  {math.Sin, true},
	"cos":  {math.Cos, true},
	"tan":  {math.Tan, true},
	"ln":   {extended(bigfloat.Log, math.Log, positive), false},
	"log":  {extended(log10, math.Log10, positive), false},
	"sqrt": {math.Sqrt, false},
	"abs":  {math.Abs, false},
	// Past ±709.79, exp overflows float64 or rounds to a subnormal, which
	// math.Exp already gets right.
	"exp": {extended(bigfloat.Exp, math.Exp, func(x float64) bool { return math.Abs(x) < 709 }), false},
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// extended evaluates f at extPrec bits and rounds the result to float64. For
// arguments where ok is false, it uses ieee instead, which is how infinities
// and NaNs arise for out-of-domain arguments.
func extended(f func(z, x *big.Float) *big.Float, ieee func(float64) float64, ok func(float64) bool) func(float64) float64 {
	return func(x float64) float64 {
		if !ok(x) {
			return ieee(x)
		}
		in := new(big.Float).SetPrec(extPrec).SetFloat64(x)
		out := new(big.Float).SetPrec(extPrec)
		r, _ := f(out, in).Float64()
		return r
	}
}

func log10(z, x *big.Float) *big.Float {
	bigfloat.Log(z, x)
	ten := new(big.Float).SetPrec(z.Prec()).SetInt64(10)
	bigfloat.Log(ten, ten)
	return z.Quo(z, ten)
}

// factorialTolerance is how far from an integer the operand of ! may be.
const factorialTolerance = 1e-10

// factorial computes x! for non-negative integers x. col is the position of
// the operator for errors.
func factorial(x float64, col int) (float64, error) {
	if math.IsNaN(x) {
		return x, nil
	}
	if x < 0 {
		return 0, &DomainError{Col: col, X: x, Func: "!", Msg: "factorial of negative number"}
	}
	n := math.Round(x)
	if math.Abs(x-n) > factorialTolerance {
		return 0, &DomainError{Col: col, X: x, Func: "!", Msg: "factorial requires integer"}
	}
	r := 1.0
	// Stop at overflow so that 1e300! doesn't spin.
	for i := 2.0; i <= n && !math.IsInf(r, 1); i++ {
		r *= i
	}
	return r, nil
}

// DomainError is an error returned when an operator or function cannot be
// applied to its operand, or when a function name is unknown. It implements
// InputError.
type DomainError struct {
	// Col is the position of the operator or function name.
	Col int
	// X is the out-of-domain argument. It is zero for unknown functions.
	X float64
	// Func is the operator or function name.
	Func string
	// Msg describes the error.
	Msg string
}

const msgUnknown = "unknown function"

func (err *DomainError) Error() string {
	var r string
	if err.Msg == msgUnknown {
		r = msgUnknown + " " + strconv.Quote(err.Func)
	} else {
		r = err.Msg + ": " + strconv.FormatFloat(err.X, 'g', -1, 64) + err.Func
	}
	if err.Col > 0 {
		r = errpos(err.Col, r)
	}
	return r
}

func (err *DomainError) Pos() int {
	return err.Col
}
