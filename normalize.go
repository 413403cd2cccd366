package calc

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// glyphs maps alternate spellings of operators to their ASCII forms.
var glyphs = map[rune]rune{
	'×': '*',
	'X': '*',
	'÷': '/',
	'‐': '-', // hyphen
	'‑': '-', // non-breaking hyphen
	'‒': '-', // figure dash
	'–': '-', // en dash
	'—': '-', // em dash
	'―': '-', // horizontal bar
	'−': '-', // minus sign
	'﹣': '-', // small hyphen-minus
}

// words expands glyphs that stand for whole identifiers.
var words = strings.NewReplacer("π", "pi", "√", "sqrt")

// Normalize rewrites an expression into the ASCII forms the lexer accepts.
// Fullwidth characters are folded to ASCII, whitespace is removed, × and X
// become *, ÷ becomes /, dashes become -, π becomes pi, and √ becomes sqrt.
// Lowercase x is left alone so that it can name a variable.
func Normalize(src string) string {
	// Chains carry buffers, so each call builds its own.
	t := transform.Chain(
		width.Fold,
		runes.Remove(runes.Predicate(unicode.IsSpace)),
		runes.Map(func(r rune) rune {
			if g, ok := glyphs[r]; ok {
				return g
			}
			return r
		}),
	)
	s, _, err := transform.String(t, src)
	if err != nil {
		// None of the transformers reject input, so this is a short buffer
		// bug in the chain rather than anything the caller did.
		panic("calc: normalizing " + src + ": " + err.Error())
	}
	return words.Replace(s)
}
