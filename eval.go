package calc

import (
	"math"
	"strconv"
)

// machine is the state of a single evaluation.
type machine struct {
	stack []float64
	cfg   config
}

// push pushes a value onto the stack.
func (m *machine) push(v float64) {
	m.stack = append(m.stack, v)
}

// pop removes the top from the stack and returns it. The caller must have
// checked the stack depth with need.
func (m *machine) pop() float64 {
	r := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return r
}

// top is a shortcut to get a pointer to the top element of the stack.
func (m *machine) top() *float64 {
	return &m.stack[len(m.stack)-1]
}

// need checks that the stack holds at least n values for tok.
func (m *machine) need(n int, tok lexToken) error {
	if len(m.stack) < n {
		return &SyntaxError{Col: tok.pos, Msg: msgOperand + " for " + strconv.Quote(tok.text)}
	}
	return nil
}

// Eval evaluates the expression. Constants and the angle mode come from opts.
// The result is always finite; a non-finite result is reported as a
// NumericError.
func (e *Expr) Eval(opts ...Option) (float64, error) {
	m := machine{
		stack: make([]float64, 0, len(e.prog)),
		cfg:   configure(opts),
	}
	for _, tok := range e.prog {
		if err := m.step(tok); err != nil {
			return 0, err
		}
	}
	if len(m.stack) != 1 {
		return 0, &SyntaxError{Msg: msgInvalid}
	}
	r := m.stack[0]
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, &NumericError{Value: r}
	}
	return r, nil
}

// step applies one token to the stack.
func (m *machine) step(tok lexToken) error {
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !isRange(err) {
			// The lexer only produces valid decimals.
			panic("calc: invalid number: " + tok.text + " (" + err.Error() + ")")
		}
		// Out of range literals parse to ±Inf and fail at the end.
		m.push(v)
	case tokenIdent:
		if v, ok := m.cfg.consts[tok.text]; ok {
			m.push(v)
			return nil
		}
		if err := m.need(1, tok); err != nil {
			return err
		}
		fn, ok := globalfuncs[tok.text]
		if !ok {
			return &DomainError{Col: tok.pos, Func: tok.text, Msg: msgUnknown}
		}
		v := m.top()
		*v = fn.call(*v, m.cfg.angle)
	case tokenOp:
		if tok.text == unaryMinus {
			if err := m.need(1, tok); err != nil {
				return err
			}
			v := m.top()
			*v = -*v
			return nil
		}
		if err := m.need(2, tok); err != nil {
			return err
		}
		b := m.pop()
		a := m.top()
		switch tok.text {
		case "+":
			*a += b
		case "-":
			*a -= b
		case "*":
			*a *= b
		case "/":
			*a /= b
		case "^":
			*a = math.Pow(*a, b)
		case "mod":
			// Truncated remainder; the sign follows the dividend.
			*a = math.Mod(*a, b)
		default:
			panic("calc: unknown operator " + tok.text)
		}
	case tokenPostfix:
		if err := m.need(1, tok); err != nil {
			return err
		}
		v := m.top()
		r, err := factorial(*v, tok.pos)
		if err != nil {
			return err
		}
		*v = r
	default:
		panic("calc: invalid token in program: " + tok.String())
	}
	return nil
}

func isRange(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// Evaluate is a shortcut to parse and evaluate an expression with the same
// options.
func Evaluate(src string, opts ...Option) (float64, error) {
	e, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return e.Eval(opts...)
}

// NumericError is an error indicating that an expression evaluated to an
// infinity or NaN, e.g. by dividing by zero or overflowing.
type NumericError struct {
	// Value is the non-finite result.
	Value float64
}

func (err *NumericError) Error() string {
	return "invalid math operation: result is " + strconv.FormatFloat(err.Value, 'g', -1, 64)
}
