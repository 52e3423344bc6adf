package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opm-go/deckparser/deckerr"
	"github.com/opm-go/deckparser/item"
)

func TestLookupBaselineToggle(t *testing.T) {
	tbl := New()
	rule, ok := tbl.Lookup("RUNSPEC", "OIL")
	require.True(t, ok)
	require.Equal(t, Toggle, rule.Class)
	require.Equal(t, 0, rule.Records)
}

func TestLookupBaselineIntStringClass(t *testing.T) {
	tbl := New()
	rule, ok := tbl.Lookup("RUNSPEC", "GRIDOPTS")
	require.True(t, ok)
	require.Equal(t, IntStringClass, rule.Class)
	require.Equal(t, 1, rule.Records)
}

func TestLookupUnknownKeyword(t *testing.T) {
	tbl := New()
	_, ok := tbl.Lookup("RUNSPEC", "NOPE")
	require.False(t, ok)
}

func TestLookupWrongSection(t *testing.T) {
	tbl := New()
	_, ok := tbl.Lookup("GRID", "OIL")
	require.False(t, ok)
}

func TestClassAllows(t *testing.T) {
	require.True(t, IntClass.Allows(item.Int))
	require.True(t, IntClass.Allows(item.Default))
	require.False(t, IntClass.Allows(item.Float))
	require.True(t, AnyClass.Allows(item.Str))
	require.False(t, Toggle.Allows(item.Int))
}

func TestRegisterNewKeyword(t *testing.T) {
	tbl := New()
	err := tbl.Register("GRID", "PERMX", Rule{Class: FloatClass, Records: 1})
	require.NoError(t, err)
	rule, ok := tbl.Lookup("GRID", "PERMX")
	require.True(t, ok)
	require.Equal(t, FloatClass, rule.Class)
}

func TestRegisterConflictRaisesDuplicateKeywordArity(t *testing.T) {
	tbl := New()
	err := tbl.Register("RUNSPEC", "OIL", Rule{Class: IntClass, Records: 1})
	require.Error(t, err)
	var de *deckerr.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, deckerr.DuplicateKeywordArity, de.Kind)
}

func TestRegisterIdenticalRedeclarationIsNoop(t *testing.T) {
	tbl := New()
	err := tbl.Register("RUNSPEC", "OIL", Rule{Class: Toggle, Records: 0})
	require.NoError(t, err)
}

func TestLoadYAMLAddsKeyword(t *testing.T) {
	tbl := New()
	doc := `
keywords:
  - section: GRID
    name: PERMX
    class: float
    records: 1
  - section: GRID
    name: ACTNUM
    class: toggle
`
	require.NoError(t, tbl.LoadYAML(strings.NewReader(doc)))

	rule, ok := tbl.Lookup("GRID", "PERMX")
	require.True(t, ok)
	require.Equal(t, FloatClass, rule.Class)

	rule, ok = tbl.Lookup("GRID", "ACTNUM")
	require.True(t, ok)
	require.Equal(t, Toggle, rule.Class)
	require.Equal(t, 0, rule.Records)
}

func TestLoadYAMLUnknownClass(t *testing.T) {
	tbl := New()
	doc := `
keywords:
  - section: GRID
    name: PERMX
    class: nonsense
`
	require.Error(t, tbl.LoadYAML(strings.NewReader(doc)))
}

func TestLoadYAMLConflictPropagatesDuplicateKeywordArity(t *testing.T) {
	tbl := New()
	doc := `
keywords:
  - section: RUNSPEC
    name: OIL
    class: int
    records: 1
`
	err := tbl.LoadYAML(strings.NewReader(doc))
	require.Error(t, err)
	var de *deckerr.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, deckerr.DuplicateKeywordArity, de.Kind)
}
