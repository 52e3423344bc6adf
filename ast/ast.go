// Package ast implements the parsed deck's storage: a flat slice of items
// with EndRec sentinels between records, plus a keyword-position index
// giving each keyword's start offset. Sections() projects the same storage
// into the nested Section→Keyword→Record→Item view for callers who don't
// want to drive a cursor.
package ast

import "github.com/opm-go/deckparser/item"

// AST is the parsed, flattened deck. Build one with a Builder; once built
// it is immutable and safe to share across cursors, which hold only small
// integer indices into it.
type AST struct {
	items []item.Item

	kwNames   []string
	kwSection []int
	kwStart   []int

	sectionNames  []string
	sectionKwFrom []int
}

// NumKeywords returns the total number of keywords across every section.
func (a *AST) NumKeywords() int { return len(a.kwNames) }

// KeywordName returns the name of keyword k.
func (a *AST) KeywordName(k int) string { return a.kwNames[k] }

// KeywordSection returns the section index keyword k belongs to.
func (a *AST) KeywordSection(k int) int { return a.kwSection[k] }

// KeywordItemRange returns the [start, end) range of a.items occupied by
// keyword k's items (including its EndRec sentinels). A toggle has
// start == end.
func (a *AST) KeywordItemRange(k int) (start, end int) {
	start = a.kwStart[k]
	if k+1 < len(a.kwStart) {
		end = a.kwStart[k+1]
	} else {
		end = len(a.items)
	}
	return start, end
}

// Item returns the item at absolute flat offset i.
func (a *AST) Item(i int) item.Item { return a.items[i] }

// NumSections returns the number of sections in the deck.
func (a *AST) NumSections() int { return len(a.sectionNames) }

// SectionName returns the name of section s.
func (a *AST) SectionName(s int) string { return a.sectionNames[s] }

// SectionKeywordRange returns the [start, end) range of keyword indices
// belonging to section s.
func (a *AST) SectionKeywordRange(s int) (start, end int) {
	start = a.sectionKwFrom[s]
	if s+1 < len(a.sectionKwFrom) {
		end = a.sectionKwFrom[s+1]
	} else {
		end = len(a.kwNames)
	}
	return start, end
}

// Record is an explicit sequence of items belonging to one occurrence of a
// keyword, with no EndRec sentinel (the structured view's record shape).
type Record struct {
	Items []item.Item
}

// Keyword is the structured view of one keyword occurrence.
type Keyword struct {
	Name    string
	Records []Record
}

// Section is the structured view of one section.
type Section struct {
	Name     string
	Keywords []Keyword
}

// Sections materializes the nested Section→Keyword→Record→Item view on
// demand. Both this view and the flat accessors above read the same
// underlying storage, so they are trivially consistent with each other and
// with what a Cursor observes.
func (a *AST) Sections() []Section {
	sections := make([]Section, 0, len(a.sectionNames))
	for s := range a.sectionNames {
		kwFrom, kwTo := a.SectionKeywordRange(s)
		keywords := make([]Keyword, 0, kwTo-kwFrom)
		for k := kwFrom; k < kwTo; k++ {
			start, end := a.KeywordItemRange(k)
			keywords = append(keywords, Keyword{
				Name:    a.kwNames[k],
				Records: splitRecords(a.items[start:end]),
			})
		}
		sections = append(sections, Section{Name: a.sectionNames[s], Keywords: keywords})
	}
	return sections
}

func splitRecords(items []item.Item) []Record {
	var records []Record
	var cur []item.Item
	for _, it := range items {
		if it.Kind == item.EndRec {
			records = append(records, Record{Items: cur})
			cur = nil
			continue
		}
		cur = append(cur, it)
	}
	return records
}

// Builder incrementally constructs an AST in source order: BeginSection,
// then for each keyword AddKeyword followed by zero or more records (each
// built from AddItem calls terminated by EndRecord), then EndSection.
type Builder struct {
	ast AST
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// BeginSection opens a new section named name.
func (b *Builder) BeginSection(name string) {
	b.ast.sectionNames = append(b.ast.sectionNames, name)
	b.ast.sectionKwFrom = append(b.ast.sectionKwFrom, len(b.ast.kwNames))
}

// AddKeyword opens a new keyword occurrence within the current section.
func (b *Builder) AddKeyword(name string) {
	b.ast.kwNames = append(b.ast.kwNames, name)
	b.ast.kwSection = append(b.ast.kwSection, len(b.ast.sectionNames)-1)
	b.ast.kwStart = append(b.ast.kwStart, len(b.ast.items))
}

// AddItem appends an item to the current keyword's current record.
func (b *Builder) AddItem(it item.Item) {
	b.ast.items = append(b.ast.items, it)
}

// EndRecord closes the current record with an EndRec sentinel.
func (b *Builder) EndRecord() {
	b.ast.items = append(b.ast.items, item.NewEndRec())
}

// Build finalizes and returns the constructed AST. The Builder must not be
// reused afterward.
func (b *Builder) Build() *AST {
	a := b.ast
	return &a
}
