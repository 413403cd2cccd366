// Package calc implements the expression engine of a pocket calculator.
//
// Expressions are written the way they appear on a calculator display:
// "7+3×2", "2^3^2", "-2^2", "(5+5)!", "10 mod 3", "sin(30)". Evaluation goes
// through a fixed pipeline. The source is normalized to ASCII, split into
// tokens, reordered into reverse Polish notation with the shunting-yard
// algorithm, and run on a stack of float64 values.
//
// "-2^2" is the same as "-(2^2)", since unary minus binds looser than
// exponentiation but tighter than multiplication. Exponentiation is
// right-associative, so "2^3^2" is "2^(3^2)".
//
// Identifiers are either constants or functions. The constants pi, e, and Ans
// are always defined; callers may add more with SetConst, e.g. to bind x while
// plotting. Any other identifier is called as a function of one argument.
//
// Nothing is retained between calls, so Evaluate and Expr.Eval are safe for
// concurrent use.
package calc
