// Package parser implements the item/record grammar and the keyword
// registry dispatch: a small recursive-descent parser that drives
// lexer's byte-level primitives against a registry.Table to build an
// ast.AST.
//
// There is no operator precedence and no expressions here, just a flat
// section/keyword/record/item structure, so this parser drives lexer's
// Scan* primitives directly off the byte buffer the way concat does,
// dispatching on a keyword's registered shape class rather than a token
// type.
package parser

import (
	"github.com/opm-go/deckparser/ast"
	"github.com/opm-go/deckparser/deckerr"
	"github.com/opm-go/deckparser/item"
	"github.com/opm-go/deckparser/lexer"
	"github.com/opm-go/deckparser/registry"
)

// sectionOrder is the fixed top-level grammar: an optional
// RUNSPEC section followed by an optional GRID section, then end-of-input.
var sectionOrder = []string{"RUNSPEC", "GRID"}

// Parse builds an ast.AST from a flattened deck buffer (the output of
// concat.Concatenate) against reg. It fails the whole call at the first
// error.
func Parse(input string, reg *registry.Table) (*ast.AST, error) {
	l := lexer.New(input)
	b := ast.NewBuilder()

	for _, section := range sectionOrder {
		l.SkipSpaceAndComments()
		mark := l.Mark()
		name, ok := l.ScanBareWord()
		if !ok || name != section {
			l.Reset(mark)
			continue
		}
		b.BeginSection(section)
		if err := parseSectionBody(l, reg, b, section); err != nil {
			return nil, err
		}
	}

	l.SkipSpaceAndComments()
	if !l.AtEnd() {
		_, line, col := l.Pos()
		word, _ := l.ScanBareWord()
		return nil, deckerr.New(deckerr.UnknownKeyword,
			"unexpected %q at top level: only RUNSPEC and GRID sections are recognised, in that order", word).
			WithPos(line, col)
	}

	return b.Build(), nil
}

// parseSectionBody consumes keywords until end-of-input or the start of the
// next section in sectionOrder: "within a section, the
// parser loops: consume a keyword name ... look it up in the registry, and
// dispatch to the declared rule."
func parseSectionBody(l *lexer.Lexer, reg *registry.Table, b *ast.Builder, section string) error {
	for {
		l.SkipSpaceAndComments()
		if l.AtEnd() {
			return nil
		}

		mark := l.Mark()
		_, line, col := l.Pos()
		name, ok := l.ScanBareWord()
		if !ok {
			return deckerr.New(deckerr.UnknownKeyword, "expected a keyword name, found %q", string(l.Peek())).
				WithPos(line, col)
		}
		if isSectionName(name) && name != section {
			l.Reset(mark)
			return nil
		}

		rule, ok := reg.Lookup(section, name)
		if !ok {
			return deckerr.New(deckerr.UnknownKeyword, "%s is not a recognised keyword in section %s", name, section).
				WithPos(line, col)
		}

		b.AddKeyword(name)
		for i := 0; i < rule.Records; i++ {
			if err := parseRecord(l, b, rule.Class); err != nil {
				return err
			}
		}
	}
}

func isSectionName(name string) bool {
	for _, s := range sectionOrder {
		if s == name {
			return true
		}
	}
	return false
}

// parseRecord consumes one /-terminated record: a (possibly
// empty) sequence of items, followed by '/' with the rest of its line
// discarded.
func parseRecord(l *lexer.Lexer, b *ast.Builder, class registry.Class) error {
	for {
		l.SkipSpaceAndComments()
		if l.AtSlash() {
			l.ConsumeRecordTerminator()
			b.EndRecord()
			return nil
		}
		if l.AtEnd() {
			_, line, col := l.Pos()
			return deckerr.New(deckerr.RecordCountMismatch, "unterminated record: reached end of input before '/'").
				WithPos(line, col)
		}

		it, err := parseItem(l, class)
		if err != nil {
			return err
		}
		b.AddItem(it)
	}
}

// parseItem consumes one item, one of four forms: N*value,
// a bare value (repeat 1), N* (N defaults), or * (a single default).
func parseItem(l *lexer.Lexer, class registry.Class) (item.Item, error) {
	if n, ok := l.TryScanRepeatCount(); ok {
		if valueStarts(l) {
			it, kind, err := scanValue(l)
			if err != nil {
				return item.Item{}, err
			}
			if !class.Allows(kind) {
				_, line, col := l.Pos()
				return item.Item{}, deckerr.New(deckerr.TypeMismatch,
					"%s value not allowed for a %s keyword", kind, class).WithPos(line, col)
			}
			it.Repeat = n
			return it, nil
		}
		return item.NewDefault(n), nil
	}

	if l.TryConsumeStar() {
		return item.NewDefault(1), nil
	}

	_, line, col := l.Pos()
	it, kind, err := scanValue(l)
	if err != nil {
		return item.Item{}, err
	}
	if kind == item.Int && l.Peek() == '*' {
		// "0*" (or a signed count): TryScanRepeatCount refused it, since
		// a repeat count must be a positive integer.
		return item.Item{}, deckerr.New(deckerr.TypeMismatch,
			"repeat count must be a positive integer").WithPos(line, col)
	}
	if !class.Allows(kind) {
		return item.Item{}, deckerr.New(deckerr.TypeMismatch,
			"%s value not allowed for a %s keyword", kind, class).WithPos(line, col)
	}
	return it, nil
}

// valueStarts reports whether the lexer is positioned at something that can
// start a value (number or string), as opposed to whitespace, '/', or
// end-of-input — which after an "N*" prefix means N defaults rather than a
// repeated value.
func valueStarts(l *lexer.Lexer) bool {
	if l.PeekIsNumberStart() {
		return true
	}
	c := l.Peek()
	return c == '\'' || c == '"' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// scanValue scans a single number-or-string value and reports its kind, so
// the caller can validate it against the keyword's shape class. The class
// restriction is applied by the caller, not here: a record may legitimately
// mix kinds across positions (GRIDOPTS's first item is a string, its second
// an int), so the decision of what to scan is made per item from a one-byte
// lookahead, not from the class alone.
func scanValue(l *lexer.Lexer) (item.Item, item.Kind, error) {
	if l.PeekIsNumberStart() {
		isFloat, ival, fval, err := l.ScanNumber()
		if err != nil {
			return item.Item{}, 0, err
		}
		if isFloat {
			return item.NewFloat(fval, 1), item.Float, nil
		}
		return item.NewInt(ival, 1), item.Int, nil
	}
	s, err := l.ScanString()
	if err != nil {
		return item.Item{}, 0, err
	}
	return item.NewStr(s, 1), item.Str, nil
}
