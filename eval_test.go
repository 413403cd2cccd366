package calc_test

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []calc.Option
		r    float64
	}{
		{"num", "1", nil, 1},
		{"separators", "1_000+1", nil, 1001},
		{"fraction", ".5+1.5", nil, 2},
		{"add", "4+5+6", nil, 4 + 5 + 6},
		{"sub", "4-5-6", nil, 4 - 5 - 6},
		{"mul", "4*5*6", nil, 4 * 5 * 6},
		{"div", "4/5/6", nil, 4.0 / 5.0 / 6.0},
		{"prec", "2+3*4", nil, 14},
		{"parens", "(2+3)*4", nil, 20},
		{"scenario", "7+3*2", nil, 13},
		{"pow", "2^3^2", nil, 512},
		{"neg-pow", "-2^2", nil, -4},
		{"group-neg-pow", "(-2)^2", nil, 4},
		{"pow-neg", "2^-2", nil, 0.25},
		{"neg-neg", "--3", nil, 3},
		{"mod", "10 mod 3", nil, 1},
		{"mod-neg", "-10 mod 3", nil, -1},
		{"mod-neg-divisor", "10 mod -3", nil, 1},
		{"mod-frac", "5.5 mod 2", nil, 1.5},
		{"mod-ans", "Ans mod 2", []calc.Option{calc.Ans(7)}, 1},
		{"mod-var", "x mod 3", []calc.Option{calc.SetConst("x", 10)}, 1},
		{"mod-var-var", "x mod y", []calc.Option{calc.SetConsts(map[string]float64{"x": 10, "y": 4})}, 2},
		{"fact", "5!", nil, 120},
		{"fact-zero", "0!", nil, 1},
		{"fact-group", "(2+3)!", nil, 120},
		{"fact-scenario", "(5+5)!", nil, 3628800},
		{"fact-fact", "3!!", nil, 720},
		{"fact-near-int", "((0.1+0.2)*10)!", nil, 6},
		{"neg-fact", "-3!", nil, -6},
		{"pi", "pi", nil, math.Pi},
		{"pi-glyph", "π", nil, math.Pi},
		{"e", "e", nil, math.E},
		{"ans-default", "Ans", nil, 0},
		{"ans", "Ans*2", []calc.Option{calc.Ans(21)}, 42},
		{"sin-deg", "sin(0)", []calc.Option{calc.Angle(calc.Degrees)}, 0},
		{"sin-deg-default", "sin(90)", nil, 1},
		{"sin-rad", "sin(pi/2)", []calc.Option{calc.Angle(calc.Radians)}, 1},
		{"cos-rad", "cos(0)", []calc.Option{calc.Angle(calc.Radians)}, 1},
		{"tan-deg", "tan(0)", nil, 0},
		{"sqrt", "sqrt(16)", nil, 4},
		{"sqrt-glyph", "√(16)", nil, 4},
		{"abs", "abs(-3)", nil, 3},
		{"log", "log(1000)", nil, 3},
		{"nested", "sqrt(abs(-16))+1", nil, 5},
		{"glyphs", "2×3÷4−1", nil, 0.5},
		{"upper-x", "2X3", nil, 6},
		{"fullwidth", "（１＋２）×３", nil, 9},
		{"var", "x^2", []calc.Option{calc.SetConst("x", 3)}, 9},
		{"var-func", "sin(x)", []calc.Option{calc.SetConst("x", 90)}, 1},
		{"vars", "a*b", []calc.Option{calc.SetConsts(map[string]float64{"a": 6, "b": 7})}, 42},
		{"override", "pi", []calc.Option{calc.SetConst("pi", 3)}, 3},
		{"last-wins", "x", []calc.Option{calc.SetConst("x", 1), calc.SetConst("x", 2)}, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src, c.opts...)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("wrong result for %q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalApprox(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []calc.Option
		r    float64
	}{
		{"cos-deg", "cos(60)", nil, 0.5},
		{"tan-deg", "tan(45)", nil, 1},
		{"sin-rad", "sin(1)", []calc.Option{calc.Angle(calc.Radians)}, math.Sin(1)},
		{"ln-e", "ln(e)", nil, 1},
		{"ln-one", "ln(1)", nil, 0},
		{"exp-zero", "exp(0)", nil, 1},
		{"exp", "exp(1)", nil, math.E},
		{"exp-neg", "exp(-2)", nil, math.Exp(-2)},
		{"log-frac", "log(0.001)", nil, -3},
		{"ln", "ln(10)", nil, math.Ln10},
		{"mod-pi", "pi mod 2", nil, math.Pi - 2},
		{"mod-e", "e mod 1", nil, math.E - 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src, c.opts...)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if math.Abs(r-c.r) > 1e-12 {
				t.Errorf("wrong result for %q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalSyntaxError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		msg  string
	}{
		{"unclosed", "(2+3", "mismatched parentheses"},
		{"unopened", "2+3)", "mismatched parentheses"},
		{"empty", "", "empty expression"},
		{"empty-group", "()", "invalid expression"},
		{"lone-op", "+", "insufficient values"},
		{"trailing-op", "2*", "insufficient values"},
		{"unary-plus", "+2", "insufficient values"},
		{"lone-fact", "!", "insufficient values"},
		{"bare-func", "sin", "insufficient values"},
		{"adjacent", "(2)(3)", "invalid expression"},
		{"implicit-mul", "2pi", "invalid expression"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src)
			if err == nil {
				t.Fatalf("evaluating %q gave %g with no error", c.src, r)
			}
			var se *calc.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error was %#v, not SyntaxError", err)
			}
			if !strings.Contains(err.Error(), c.msg) {
				t.Errorf("%q doesn't mention %q", err.Error(), c.msg)
			}
		})
	}
}

func TestEvalDomainError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		fn   string
		msg  string
	}{
		{"fact-frac", "2.5!", "!", "requires integer"},
		{"fact-neg", "(-3)!", "!", "negative"},
		{"unknown", "foo(2)", "foo", "unknown function"},
		{"unknown-var", "2*y", "y", "unknown function"},
		{"exponent", "1e5", "e5", "unknown function"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src)
			if err == nil {
				t.Fatalf("evaluating %q gave %g with no error", c.src, r)
			}
			var de *calc.DomainError
			if !errors.As(err, &de) {
				t.Fatalf("error was %#v, not DomainError", err)
			}
			if de.Func != c.fn {
				t.Errorf("wrong function: want %q, got %q", c.fn, de.Func)
			}
			if !strings.Contains(err.Error(), c.msg) {
				t.Errorf("%q doesn't mention %q", err.Error(), c.msg)
			}
			if de.Pos() <= 0 {
				t.Errorf("%v has no position", err)
			}
		})
	}
}

func TestEvalNumericError(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"div-zero", "1/0"},
		{"div-zero-neg", "-1/0"},
		{"zero-div-zero", "0/0"},
		{"mod-zero", "1 mod 0"},
		{"sqrt-neg", "sqrt(-1)"},
		{"ln-zero", "ln(0)"},
		{"log-neg", "log(-1)"},
		{"pow-neg-frac", "(-8)^(1/3)"},
		{"overflow", "10^400"},
		{"exp-overflow", "exp(1000)"},
		{"fact-overflow", "171!"},
		{"fact-huge", "(10^300)!"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src)
			if err == nil {
				t.Fatalf("evaluating %q gave %g with no error", c.src, r)
			}
			var ne *calc.NumericError
			if !errors.As(err, &ne) {
				t.Fatalf("error was %#v, not NumericError", err)
			}
			if !math.IsNaN(ne.Value) && !math.IsInf(ne.Value, 0) {
				t.Errorf("NumericError for finite value %g", ne.Value)
			}
			if !strings.Contains(err.Error(), "invalid math operation") {
				t.Errorf("%q doesn't mention invalid math operation", err.Error())
			}
		})
	}
}

func TestEvalLexError(t *testing.T) {
	_, err := calc.Evaluate("2$")
	var le *calc.LexError
	if !errors.As(err, &le) {
		t.Fatalf("error was %#v, not LexError", err)
	}
	if le.Col != 2 || le.Text != "$" {
		t.Errorf("wrong error: %v", err)
	}
	var ie calc.InputError
	if !errors.As(err, &ie) || ie.Pos() != 2 {
		t.Errorf("%v is not an InputError at 2", err)
	}
}

func TestEvalUnboundVar(t *testing.T) {
	// Parsed without x, x is a function and ^ has nothing on its left.
	a, err := calc.Parse("x^2")
	if err != nil {
		t.Fatal(err)
	}
	_, err = a.Eval(calc.SetConst("x", 3))
	if !errors.As(err, new(*calc.SyntaxError)) {
		t.Errorf("want SyntaxError, got %#v", err)
	}
}

func TestEvalIdempotent(t *testing.T) {
	srcs := []string{"7+3*2", "sin(45)", "2^0.5", "10 mod 3", "(5+5)!"}
	for _, src := range srcs {
		r1, err1 := calc.Evaluate(src)
		if _, err := calc.Evaluate("(1+"); err == nil {
			t.Fatal("(1+ evaluated without error")
		}
		r2, err2 := calc.Evaluate(src)
		if err1 != nil || err2 != nil {
			t.Errorf("evaluating %q: %v, %v", src, err1, err2)
			continue
		}
		if r1 != r2 {
			t.Errorf("%q gave %g then %g", src, r1, r2)
		}
	}
}

func TestEvalConcurrent(t *testing.T) {
	a, err := calc.Parse("x^2+1", calc.SetConst("x", 0))
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := float64(i)
			for k := 0; k < 100; k++ {
				r, err := a.Eval(calc.SetConst("x", x), calc.Angle(calc.Radians))
				if err != nil {
					t.Errorf("x=%g: %v", x, err)
					return
				}
				if r != x*x+1 {
					t.Errorf("x=%g: want %g, got %g", x, x*x+1, r)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
