package calc

import "strings"

// Expr is a parsed expression in reverse Polish notation. An Expr is never
// modified after parsing, so it may be evaluated concurrently.
type Expr struct {
	// prog is the token sequence in evaluation order.
	prog []lexToken
}

// Parse normalizes and parses an expression. Identifiers that name constants
// are placed as values; every other identifier becomes a pending function
// call. The constants are pi, e, Ans, and whatever opts bind, so opts should
// name the same constants that will be supplied to Eval.
func Parse(src string, opts ...Option) (*Expr, error) {
	cfg := configure(opts)
	toks, err := lex(Normalize(src), cfg.consts)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, &SyntaxError{Col: 1, Msg: msgEmpty}
	}
	return shunt(toks, cfg.consts)
}

// shunt reorders tokens into reverse Polish notation.
func shunt(toks []lexToken, consts map[string]float64) (*Expr, error) {
	out := make([]lexToken, 0, len(toks))
	stack := make([]lexToken, 0, len(toks))
	pop := func() lexToken {
		tok := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return tok
	}
	for _, tok := range toks {
		switch tok.kind {
		case tokenNum:
			out = append(out, tok)
		case tokenIdent:
			if _, ok := consts[tok.text]; ok {
				out = append(out, tok)
			} else {
				stack = append(stack, tok)
			}
		case tokenPostfix, tokenOpen:
			stack = append(stack, tok)
		case tokenOp:
			cur := binop(tok.text)
			// A prefix operator has no left operand, so nothing before it can
			// be complete yet. 2^-2 -> 2 2 u- ^
			for tok.text != unaryMinus && len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind == tokenPostfix {
					out = append(out, pop())
					continue
				}
				if top.kind != tokenOp || !binop(top.text).before(cur) {
					break
				}
				out = append(out, pop())
			}
			stack = append(stack, tok)
		case tokenClose:
			for {
				if len(stack) == 0 {
					return nil, &SyntaxError{Col: tok.pos, Msg: msgParens}
				}
				top := pop()
				if top.kind == tokenOpen {
					break
				}
				out = append(out, top)
			}
			if len(stack) > 0 && stack[len(stack)-1].kind == tokenIdent {
				// The group was the argument list of a function.
				out = append(out, pop())
			}
			for len(stack) > 0 && stack[len(stack)-1].kind == tokenPostfix {
				// (expr)!
				out = append(out, pop())
			}
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
	for len(stack) > 0 {
		top := pop()
		if top.kind == tokenOpen || top.kind == tokenClose {
			return nil, &SyntaxError{Col: top.pos, Msg: msgParens}
		}
		out = append(out, top)
	}
	return &Expr{prog: out}, nil
}

// Names returns the identifiers the expression uses, sorted and without
// duplicates.
func (e *Expr) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, tok := range e.prog {
		if tok.kind == tokenIdent && !seen[tok.text] {
			seen[tok.text] = true
			names = append(names, tok.text)
		}
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// String formats the expression in reverse Polish notation, with tokens
// separated by spaces and unary minus written as u-.
func (e *Expr) String() string {
	var b strings.Builder
	for i, tok := range e.prog {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.text)
	}
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// before returns whether an operator already on the stack must be applied
// before pushing next.
func (p operator) before(next operator) bool {
	if p.right {
		return p.prec > next.prec
	}
	return p.prec >= next.prec
}

// binop gets the operator for a token string. Panics if there is no such
// operator, since the lexer produces only known operators.
func binop(text string) operator {
	switch text {
	case "!":
		return operator{5, false}
	case "^":
		return operator{4, true}
	case unaryMinus:
		return operator{3, true}
	case "*", "/", "mod":
		return operator{2, false}
	case "+", "-":
		return operator{1, false}
	default:
		panic("calc: unknown operator " + text)
	}
}
