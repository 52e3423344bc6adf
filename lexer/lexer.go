// Package lexer implements the byte-level lexical primitives of the deck
// grammar: whitespace/comment skipping, integers, Fortran-style floats,
// quoted and bare string literals, the repeat-star and default-star
// markers, and the record terminator.
//
// It keeps the reader shape familiar from a hand-written lexer — an input
// buffer plus a position/line/column cursor, advanced one byte at a time,
// with save/restore snapshots standing in for backtracking — but, unlike a
// tokenizer that hands back one generic Token per call, it exposes narrow
// Scan* primitives that the item grammar composes: a one-byte lookahead
// picks which primitive to try, and the result is then checked against the
// keyword's declared shape class, so a record of integers never attempts a
// string parse.
package lexer

import (
	"strconv"
	"strings"

	"github.com/opm-go/deckparser/deckerr"
)

// Lexer scans a single flattened byte buffer (the output of concat.Concatenate).
type Lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// New returns a Lexer positioned at the start of input.
func New(input string) *Lexer {
	return &Lexer{input: input, pos: 0, line: 1, col: 1}
}

// Mark is a cheap snapshot of lexer position, used for lookahead that may
// need to be undone.
type Mark struct {
	pos, line, col int
}

// Mark snapshots the current position.
func (l *Lexer) Mark() Mark { return Mark{l.pos, l.line, l.col} }

// Reset restores a previously taken Mark.
func (l *Lexer) Reset(m Mark) { l.pos, l.line, l.col = m.pos, m.line, m.col }

// AtEnd reports whether the lexer has consumed the whole buffer.
func (l *Lexer) AtEnd() bool { return l.pos >= len(l.input) }

// Pos returns the current byte offset and 1-based line and column.
func (l *Lexer) Pos() (offset, line, col int) { return l.pos, l.line, l.col }

func (l *Lexer) byteAt(i int) byte {
	if i < 0 || i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

// Peek returns the current byte without consuming it, or 0 at end of input.
func (l *Lexer) Peek() byte { return l.byteAt(l.pos) }

func (l *Lexer) peekAt(n int) byte { return l.byteAt(l.pos + n) }

// readChar advances the cursor by one byte, tracking line and column the
// way a rune-at-a-time scanner would, just over raw bytes: the grammar
// never needs to decode UTF-8, since every lexically significant byte in
// the deck format is ASCII.
func (l *Lexer) readChar() {
	if l.byteAt(l.pos) == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		l.readChar()
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
func isAlnum(c byte) bool { return isLetter(c) || isDigit(c) }
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// SkipSpaceAndComments consumes ASCII whitespace and "--" line comments. It
// never consumes a record terminator '/', which is lexically significant
// and left for the item grammar to handle explicitly.
func (l *Lexer) SkipSpaceAndComments() {
	for {
		for isSpace(l.Peek()) {
			l.readChar()
		}
		if l.Peek() == '-' && l.peekAt(1) == '-' {
			for !l.AtEnd() && l.Peek() != '\n' {
				l.readChar()
			}
			continue
		}
		return
	}
}

// AtSlash reports whether the next byte is the record terminator.
func (l *Lexer) AtSlash() bool { return l.Peek() == '/' }

// ConsumeRecordTerminator consumes the '/' and the remainder of its line,
// up to and including the newline (a '/' with the remainder of its line
// ignored). It panics if the cursor isn't at a '/'; callers must check
// AtSlash first.
func (l *Lexer) ConsumeRecordTerminator() {
	if !l.AtSlash() {
		panic("lexer: ConsumeRecordTerminator called without a leading '/'")
	}
	l.readChar()
	for !l.AtEnd() && l.Peek() != '\n' {
		l.readChar()
	}
	if l.Peek() == '\n' {
		l.readChar()
	}
}

// TryScanRepeatCount recognizes the "N*" prefix of a repeat-star item: a run
// of digits (no sign) immediately followed by '*', with no intervening
// whitespace. On success it consumes exactly that prefix and returns N; on
// failure it consumes nothing. N==0 never matches — a literal "0*" is left
// for the caller to reject as an ordinary integer item followed by a stray
// '*', since the grammar requires N to be a positive integer.
func (l *Lexer) TryScanRepeatCount() (n int, ok bool) {
	mark := l.Mark()
	start := l.pos
	for isDigit(l.Peek()) {
		l.readChar()
	}
	if l.pos == start || l.Peek() != '*' {
		l.Reset(mark)
		return 0, false
	}
	digits := l.input[start:l.pos]
	v, err := strconv.Atoi(digits)
	if err != nil || v == 0 {
		l.Reset(mark)
		return 0, false
	}
	l.readChar() // consume '*'
	return v, true
}

// TryConsumeStar consumes a lone default-star '*', reporting whether one was
// present. Callers must try TryScanRepeatCount first, since "N*" takes
// priority over a bare '*'.
func (l *Lexer) TryConsumeStar() bool {
	if l.Peek() != '*' {
		return false
	}
	l.readChar()
	return true
}

// ScanNumber scans a number at the current position, disambiguating integer
// from float: digits not immediately followed by '.' or an
// exponent indicator are an integer; a leading '.', a fractional part, or an
// eE/dD exponent make it a float, with the exponent letter normalized to
// 'e' before being handed to strconv.
func (l *Lexer) ScanNumber() (isFloat bool, ival int64, fval float64, err error) {
	start := l.pos
	i := l.pos

	if c := l.byteAt(i); c == '+' || c == '-' {
		i++
	}
	digitsBefore := 0
	for isDigit(l.byteAt(i)) {
		i++
		digitsBefore++
	}

	float := false
	if l.byteAt(i) == '.' {
		float = true
		i++
		for isDigit(l.byteAt(i)) {
			i++
		}
	}
	if digitsBefore == 0 && !float {
		return false, 0, 0, deckerr.New(deckerr.TypeMismatch, "not a number").WithPos(l.line, l.col)
	}

	if c := l.byteAt(i); c == 'e' || c == 'E' || c == 'd' || c == 'D' {
		float = true
		i++
		if c2 := l.byteAt(i); c2 == '+' || c2 == '-' {
			i++
		}
		for isDigit(l.byteAt(i)) {
			i++
		}
	}

	raw := l.input[start:i]
	l.advance(i - start)

	if float {
		norm := strings.Map(func(r rune) rune {
			if r == 'd' || r == 'D' {
				return 'e'
			}
			return r
		}, raw)
		f, perr := strconv.ParseFloat(norm, 64)
		if perr != nil {
			return false, 0, 0, deckerr.New(deckerr.TypeMismatch, "malformed float %q", raw).WithPos(l.line, l.col)
		}
		return true, 0, f, nil
	}

	n, perr := strconv.ParseInt(raw, 10, 64)
	if perr != nil {
		return false, 0, 0, deckerr.New(deckerr.TypeMismatch, "malformed integer %q", raw).WithPos(l.line, l.col)
	}
	return false, n, 0, nil
}

// PeekIsNumberStart reports whether the current byte could begin a number,
// without consuming anything — used by the grammar to choose a parse
// branch before committing to ScanNumber.
func (l *Lexer) PeekIsNumberStart() bool {
	c := l.Peek()
	if isDigit(c) {
		return true
	}
	if (c == '+' || c == '-') && isDigit(l.peekAt(1)) {
		return true
	}
	if c == '.' && isDigit(l.peekAt(1)) {
		return true
	}
	return false
}

// ScanString scans either a quoted ('...' or "...") or a bare
// [A-Za-z][A-Za-z0-9]* identifier, returning the literal with quotes
// stripped. Bare identifiers stop at whitespace and at '/' even with no
// preceding whitespace, which falls out of the identifier's own character
// class.
func (l *Lexer) ScanString() (string, error) {
	if q := l.Peek(); q == '\'' || q == '"' {
		return l.scanQuoted(q)
	}
	if !isLetter(l.Peek()) {
		return "", deckerr.New(deckerr.TypeMismatch, "expected a string, got %q", string(l.Peek())).WithPos(l.line, l.col)
	}
	start := l.pos
	l.readChar()
	for isAlnum(l.Peek()) {
		l.readChar()
	}
	return l.input[start:l.pos], nil
}

func (l *Lexer) scanQuoted(quote byte) (string, error) {
	startLine, startCol := l.line, l.col
	l.readChar() // opening quote
	start := l.pos
	for {
		if l.AtEnd() {
			return "", deckerr.New(deckerr.MalformedDirective, "unterminated quoted string").WithPos(startLine, startCol)
		}
		if l.Peek() == quote {
			break
		}
		l.readChar()
	}
	s := l.input[start:l.pos]
	l.readChar() // closing quote
	return s, nil
}

// ScanBareWord scans a whole-word identifier ([A-Za-z][A-Za-z0-9]*) without
// whitespace skipping, used to read keyword names. It returns false if the
// current byte cannot start an identifier.
func (l *Lexer) ScanBareWord() (string, bool) {
	if !isLetter(l.Peek()) {
		return "", false
	}
	start := l.pos
	l.readChar()
	for isAlnum(l.Peek()) {
		l.readChar()
	}
	return l.input[start:l.pos], true
}

