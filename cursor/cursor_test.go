package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opm-go/deckparser/ast"
	"github.com/opm-go/deckparser/item"
)

func buildSample() *ast.AST {
	b := ast.NewBuilder()
	b.BeginSection("RUNSPEC")
	b.AddKeyword("OIL")
	b.AddKeyword("DIMENS")
	b.AddItem(item.NewInt(10, 1))
	b.AddItem(item.NewInt(20, 1))
	b.AddItem(item.NewInt(30, 1))
	b.EndRecord()
	b.AddKeyword("EQLDIMS")
	b.AddItem(item.NewInt(5, 3))
	b.EndRecord()
	b.AddItem(item.NewInt(7, 1))
	b.EndRecord()
	b.BeginSection("GRID")
	b.AddKeyword("NEWTRAN")
	return b.Build()
}

func TestNewPositionsAtFirstKeyword(t *testing.T) {
	tree := buildSample()
	c, ok := New(tree)
	require.True(t, ok)
	require.Equal(t, "OIL", c.Name())
	require.Equal(t, 0, c.Records())
	require.Equal(t, -1, c.Repeats())
	require.Equal(t, item.EndRec, c.Type())
}

func TestAdvanceZeroAlwaysOk(t *testing.T) {
	tree := buildSample()
	c, _ := New(tree)
	require.True(t, c.Advance(Kw, 0))
	require.True(t, c.Advance(Rec, 0))
	require.True(t, c.Advance(Item, 0))
	require.Equal(t, "OIL", c.Name())
}

func TestKwAdvanceWithinSection(t *testing.T) {
	tree := buildSample()
	c, _ := New(tree)
	require.True(t, c.Next(Kw))
	require.Equal(t, "DIMENS", c.Name())
	require.Equal(t, item.Int, c.Type())
	require.Equal(t, 1, int(c.Repeats()))
}

func TestKwAdvanceCannotCrossSectionBoundary(t *testing.T) {
	tree := buildSample()
	c, _ := New(tree)
	require.True(t, c.Next(Kw)) // DIMENS
	require.True(t, c.Next(Kw)) // EQLDIMS
	require.False(t, c.Next(Kw))
	require.Equal(t, "EQLDIMS", c.Name(), "cursor unchanged after out-of-range advance")
}

func TestKwAdvanceOutOfRangeAtStart(t *testing.T) {
	tree := buildSample()
	c, _ := New(tree)
	require.False(t, c.Prev(Kw))
	require.Equal(t, "OIL", c.Name())
}

func TestItemAdvanceWithinRecord(t *testing.T) {
	tree := buildSample()
	c, _ := New(tree)
	c.Next(Kw) // DIMENS
	require.Equal(t, item.NewInt(10, 1), c.Item())
	require.True(t, c.Next(Item))
	require.Equal(t, item.NewInt(20, 1), c.Item())
	require.True(t, c.Next(Item))
	require.Equal(t, item.NewInt(30, 1), c.Item())
	require.False(t, c.Next(Item), "must not cross the EndRec into the next record")
}

func TestRecAdvanceMovesToNextRecordFirstItem(t *testing.T) {
	tree := buildSample()
	c, _ := New(tree)
	c.Next(Kw) // DIMENS
	c.Next(Kw) // EQLDIMS: two records [Int(5,3)] and [Int(7,1)]
	require.Equal(t, "EQLDIMS", c.Name())
	require.Equal(t, 2, c.Records())
	require.Equal(t, item.NewInt(5, 3), c.Item())

	require.True(t, c.Next(Rec))
	require.Equal(t, item.NewInt(7, 1), c.Item())

	require.False(t, c.Next(Rec), "only two records in EQLDIMS")
}

func TestRecAdvanceCannotCrossKeywordBoundary(t *testing.T) {
	tree := buildSample()
	c, _ := New(tree)
	c.Next(Kw) // DIMENS: single record
	require.False(t, c.Next(Rec))
	require.Equal(t, "DIMENS", c.Name())
}

func TestNextThenPrevRoundTrips(t *testing.T) {
	tree := buildSample()
	c, _ := New(tree)
	c.Next(Kw) // DIMENS
	before := c
	require.True(t, c.Next(Item))
	require.True(t, c.Prev(Item))
	require.Equal(t, before, c)
}

func TestToggleHasNoAddressableItem(t *testing.T) {
	tree := buildSample()
	c, _ := New(tree)
	require.Equal(t, "OIL", c.Name())
	require.False(t, c.Next(Item))
	require.False(t, c.Next(Rec))
}
