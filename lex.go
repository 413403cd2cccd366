package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNum is a decimal number with separators removed.
	tokenNum
	// tokenOp is a prefix or infix operator. Unary minus is "u-".
	tokenOp
	// tokenIdent is a constant or function name.
	tokenIdent
	// tokenOpen is (.
	tokenOpen
	// tokenClose is ).
	tokenClose
	// tokenPostfix is the factorial operator !.
	tokenPostfix
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token

// Operators contains the runes which are lexed as operators. The word mod is
// also an operator.
const Operators = "+-*/^"

// unaryMinus is the token text of prefix negation.
const unaryMinus = "u-"

type lexer struct {
	s    string
	src  *strings.Reader
	buf  strings.Builder
	rune int
	// last is the kind of the previous token, or tokenNone at the start.
	last tokenKind
	// consts is the set of constant names, which end an identifier when mod
	// follows them.
	consts map[string]float64
}

// lex scans all tokens from a normalized expression. consts may be nil.
func lex(src string, consts map[string]float64) ([]lexToken, error) {
	l := lexer{s: src, src: strings.NewReader(src), consts: consts}
	var toks []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// rest returns the unread input.
func (l *lexer) rest() string {
	return l.s[len(l.s)-l.src.Len():]
}

// skip discards n ASCII runes.
func (l *lexer) skip(n int) {
	for i := 0; i < n; i++ {
		l.readRune()
	}
}

// next scans the next token from the input. At the end of the input, the
// result is an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	defer l.buf.Reset()
	r, err := l.readRune()
	if err != nil {
		return lexToken{}, err
	}
	tok := lexToken{pos: l.rune}
	switch {
	case isDigit(r), r == '.':
		l.unreadRune()
		if err := l.scanNum(); err != nil {
			return lexToken{}, err
		}
		tok.text = l.buf.String()
		tok.kind = tokenNum
	case isLetter(r):
		l.unreadRune()
		// Whitespace is gone by now, so mod has to be recognized where it
		// starts a word: 10mod3 -> 10 mod 3
		if strings.HasPrefix(l.rest(), "mod") {
			l.skip(len("mod"))
			tok.text = "mod"
			tok.kind = tokenOp
			break
		}
		l.scanIdent()
		tok.text = l.buf.String()
		tok.kind = tokenIdent
	case r == '(':
		tok.text = "("
		tok.kind = tokenOpen
	case r == ')':
		tok.text = ")"
		tok.kind = tokenClose
	case r == '!':
		tok.text = "!"
		tok.kind = tokenPostfix
	case r == '-':
		tok.text = "-"
		tok.kind = tokenOp
		switch l.last {
		case tokenNone, tokenOp, tokenOpen:
			tok.text = unaryMinus
		}
	case strings.ContainsRune(Operators, r):
		tok.text = string(r)
		tok.kind = tokenOp
	default:
		// Write the rune so that it shows up in the error message.
		l.buf.WriteRune(r)
		return lexToken{}, l.error(tok.pos, "")
	}
	l.last = tok.kind
	return tok, nil
}

// scanNum scans digits with an optional fraction. Underscores separate digit
// groups and are dropped from the token text.
func (l *lexer) scanNum() error {
	start := l.rune + 1
	var dig, dot bool
	var text []byte
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '_' {
			l.buf.WriteRune(r)
			continue
		}
		if r == '.' {
			l.buf.WriteRune(r)
			if dot {
				return l.error(start, "number")
			}
			dot = true
			text = append(text, '.')
			continue
		}
		if !isDigit(r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		dig = true
		text = append(text, byte(r))
	}
	if !dig {
		return l.error(start, "number")
	}
	l.buf.Reset()
	l.buf.Write(text)
	return nil
}

// scanIdent scans letters, digits, and underscores. next has already checked
// that the first rune is a letter. A constant name followed by mod ends the
// identifier: pimod2 -> pi mod 2
func (l *lexer) scanIdent() {
	for {
		if l.buf.Len() > 0 && strings.HasPrefix(l.rest(), "mod") {
			if _, ok := l.consts[l.buf.String()]; ok {
				return
			}
		}
		r, err := l.readRune()
		if err != nil {
			return
		}
		if !isLetter(r) && !isDigit(r) && r != '_' {
			l.unreadRune()
			return
		}
		l.buf.WriteRune(r)
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func (l *lexer) error(col int, kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  col,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the text the lexer had scanned when it found the error. For an
	// unexpected character, it is that character.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the 1-based rune column of the start of the invalid token in the
	// normalized expression.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "unexpected character at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
