package calc

import "strconv"

// SyntaxError is an error indicating an expression that does not have the
// shape of a calculation: mismatched parentheses, an operator or function
// missing operands, or values left over with no operator to combine them. It
// implements InputError.
type SyntaxError struct {
	// Col is the position of the token that revealed the error, or 0 if the
	// error concerns the expression as a whole.
	Col int
	// Msg describes the error.
	Msg string
}

const (
	msgParens  = "mismatched parentheses"
	msgEmpty   = "empty expression"
	msgOperand = "insufficient values"
	msgInvalid = "invalid expression"
)

func (err *SyntaxError) Error() string {
	if err.Col <= 0 {
		return err.Msg
	}
	return errpos(err.Col, err.Msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Errors resulting from
// malformed input implement InputError. Positions count runes of the
// normalized expression, starting at 1.
type InputError interface {
	error
	// Pos returns the position of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*DomainError)(nil)
)
