// Package cursor implements AST navigation: a small value
// type addressing a single item within a single keyword, advanced along
// one of three axes (keyword, record, item) with the out-of-range
// semantics described below. A Cursor is a cheap value copy over a borrowed
// *ast.AST: a (kw, pos) pair plus a reference to the tree it doesn't own.
package cursor

import (
	"github.com/opm-go/deckparser/ast"
	"github.com/opm-go/deckparser/item"
)

// Axis names which index Advance moves along.
type Axis int

const (
	// Kw advances to a different keyword within the enclosing section.
	Kw Axis = iota
	// Rec advances to a different record within the current keyword.
	Rec
	// Item advances to a different item within the current record.
	Item
)

// Cursor addresses one item within one keyword of an AST. The zero value is
// not meaningful; construct one with New.
type Cursor struct {
	tree *ast.AST
	kw   int
	idx  int // absolute offset into tree's flat item storage
}

// New returns a cursor positioned at the first keyword of the deck's first
// section. It reports false if the AST has no keywords at all, in which
// case there is no valid position to start from.
func New(tree *ast.AST) (Cursor, bool) {
	if tree.NumKeywords() == 0 {
		return Cursor{}, false
	}
	start, _ := tree.KeywordItemRange(0)
	return Cursor{tree: tree, kw: 0, idx: start}, true
}

// Next moves the cursor one step forward along axis; equivalent to
// Advance(axis, 1).
func (c *Cursor) Next(axis Axis) bool { return c.Advance(axis, 1) }

// Prev moves the cursor one step backward along axis; equivalent to
// Advance(axis, -1).
func (c *Cursor) Prev(axis Axis) bool { return c.Advance(axis, -1) }

// Advance moves the cursor steps positions along axis, per the semantics in
// the rules below. It reports whether the move succeeded; on failure the cursor
// is left unchanged (out-of-range is a defined terminal signal, not an
// error). Advance(axis, 0) always succeeds.
func (c *Cursor) Advance(axis Axis, steps int) bool {
	if steps == 0 {
		return true
	}
	switch axis {
	case Kw:
		return c.advanceKw(steps)
	case Rec:
		return c.advanceRec(steps)
	case Item:
		return c.advanceItem(steps)
	default:
		return false
	}
}

func (c *Cursor) advanceKw(steps int) bool {
	secFrom, secTo := c.tree.SectionKeywordRange(c.tree.KeywordSection(c.kw))
	newKw := c.kw + steps
	if newKw < secFrom || newKw >= secTo {
		return false
	}
	start, _ := c.tree.KeywordItemRange(newKw)
	c.kw = newKw
	c.idx = start
	return true
}

// recordStarts returns the absolute offsets where each record of the
// current keyword begins. A toggle, or a keyword with zero records, yields
// an empty slice.
func (c *Cursor) recordStarts() []int {
	start, end := c.tree.KeywordItemRange(c.kw)
	if start == end {
		return nil
	}
	starts := []int{start}
	for i := start; i < end; i++ {
		if c.tree.Item(i).Kind == item.EndRec && i+1 < end {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (c *Cursor) currentRecordIndex(starts []int) int {
	ri := 0
	for i, s := range starts {
		if s <= c.idx {
			ri = i
		} else {
			break
		}
	}
	return ri
}

func (c *Cursor) advanceRec(steps int) bool {
	starts := c.recordStarts()
	if len(starts) == 0 {
		return false
	}
	ri := c.currentRecordIndex(starts)
	newRi := ri + steps
	if newRi < 0 || newRi >= len(starts) {
		return false
	}
	c.idx = starts[newRi]
	return true
}

// currentRecordBounds returns the [start, endExclusive) of the record idx
// currently sits in, where endExclusive is the absolute offset of that
// record's EndRec sentinel (or the keyword's end, for a malformed/empty
// range — which cannot occur in a Builder-constructed AST but is handled
// defensively).
func (c *Cursor) currentRecordBounds() (start, endExclusive int) {
	_, kwEnd := c.tree.KeywordItemRange(c.kw)
	starts := c.recordStarts()
	ri := c.currentRecordIndex(starts)
	start = starts[ri]
	endExclusive = kwEnd
	for i := start; i < kwEnd; i++ {
		if c.tree.Item(i).Kind == item.EndRec {
			endExclusive = i
			break
		}
	}
	return start, endExclusive
}

func (c *Cursor) advanceItem(steps int) bool {
	starts := c.recordStarts()
	if len(starts) == 0 {
		return false
	}
	start, endExclusive := c.currentRecordBounds()
	newIdx := c.idx + steps
	if newIdx < start || newIdx >= endExclusive {
		return false
	}
	c.idx = newIdx
	return true
}

// Name returns the current keyword's name.
func (c *Cursor) Name() string { return c.tree.KeywordName(c.kw) }

// Records returns the number of records in the current keyword (0 for a
// toggle).
func (c *Cursor) Records() int { return len(c.recordStarts()) }

// addressable reports whether idx currently sits on a real item rather
// than an EndRec sentinel or an empty keyword/record's anchor position.
func (c *Cursor) addressable() bool {
	_, end := c.tree.KeywordItemRange(c.kw)
	return c.idx < end && c.tree.Item(c.idx).Kind != item.EndRec
}

// Repeats returns the repeat count of the item at the cursor's current
// position, or -1 when no item is addressable (a toggle, or the anchor
// position of an empty record).
func (c *Cursor) Repeats() int {
	if !c.addressable() {
		return -1
	}
	return c.tree.Item(c.idx).Repeat
}

// Type returns the variant tag of the item at the cursor's current
// position, or item.EndRec (stringified "End") when no item is
// addressable.
func (c *Cursor) Type() item.Kind {
	if !c.addressable() {
		return item.EndRec
	}
	return c.tree.Item(c.idx).Kind
}

// Item returns the full item at the cursor's current position, including
// its payload, for callers (dump/graphviz front-ends, cmd/deckinfo) that
// need the value itself rather than just its type and repeat count. It
// returns the EndRec sentinel when no item is addressable.
func (c *Cursor) Item() item.Item {
	if !c.addressable() {
		return item.NewEndRec()
	}
	return c.tree.Item(c.idx)
}
