// Package deckparser provides a parser for Eclipse-format reservoir
// simulation decks.
//
// This package resolves $ALIAS references and INCLUDE/PATHS directives
// across a tree of files, then parses the flattened byte stream into an
// AST navigable with a Cursor.
//
// Example usage:
//
//	res, err := deckparser.Concatenate("root.data", deckparser.MappedOpener{}, deckparser.UnixNormalizer{})
//	if err != nil {
//	    // handle error
//	}
//	tree, err := deckparser.Parse(string(res.Bytes), deckparser.NewRegistry())
//	if err != nil {
//	    // handle error
//	}
//	c, ok := deckparser.NewCursor(tree)
package deckparser

import (
	"github.com/opm-go/deckparser/ast"
	"github.com/opm-go/deckparser/concat"
	"github.com/opm-go/deckparser/cursor"
	"github.com/opm-go/deckparser/parser"
	"github.com/opm-go/deckparser/registry"
	"github.com/opm-go/deckparser/source"
)

// Parse parses a flattened deck buffer against reg.
func Parse(input string, reg *registry.Table) (*ast.AST, error) {
	return parser.Parse(input, reg)
}

// Concatenate flattens the include tree rooted at rootPath.
func Concatenate(rootPath string, opener source.Opener, norm source.PathNormalizer) (concat.Result, error) {
	return concat.Concatenate(rootPath, opener, norm)
}

// NewRegistry returns the baseline RUNSPEC/GRID keyword table.
func NewRegistry() *registry.Table { return registry.New() }

// NewCursor returns a cursor positioned at the first keyword of tree.
func NewCursor(tree *ast.AST) (Cursor, bool) { return cursor.New(tree) }

// Re-export commonly used types for convenience, so a caller can depend on
// this package alone for the common path. Item/item.Kind are left to the
// item package itself: nothing here needs to construct or inspect one
// directly, only to pass ast.AST/Record values around.
type (
	AST            = ast.AST
	Section        = ast.Section
	Keyword        = ast.Keyword
	Record         = ast.Record
	Cursor         = cursor.Cursor
	Axis           = cursor.Axis
	Result         = concat.Result
	Registry       = registry.Table
	Class          = registry.Class
	Rule           = registry.Rule
	Region         = source.Region
	Opener         = source.Opener
	PathNormalizer = source.PathNormalizer
	MappedOpener   = source.MappedOpener
	UnixNormalizer = source.UnixNormalizer
)

// Cursor axis re-exports, matching the cursor package's own names.
const (
	Kw   = cursor.Kw
	Rec  = cursor.Rec
	Item = cursor.Item
)
