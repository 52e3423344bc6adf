// Package pathalias implements the alias table behind a deck's PATHS
// directive: an insertion-ordered, newest-wins mapping from $ALIAS names to
// path fragments, and the left-to-right $ expansion algorithm that consumes
// it.
package pathalias

import (
	"strings"

	"github.com/opm-go/deckparser/deckerr"
)

// Pair is one (name, expansion) entry, as parsed from a single line of a
// PATHS block ('name' 'expansion' /).
type Pair struct {
	Name      string
	Expansion string
}

type entry struct {
	name, expansion string
}

// Table is an ordered, insertion-order-preserving alias table. Duplicate
// names are allowed; the most recently inserted entry shadows earlier ones.
type Table struct {
	entries []entry
}

// New returns an empty alias table.
func New() *Table {
	return &Table{}
}

// Insert appends pairs to the table, preserving their relative order. Later
// calls to Insert, and later pairs within one call, shadow earlier ones
// with the same name.
func (t *Table) Insert(pairs ...Pair) {
	for _, p := range pairs {
		t.entries = append(t.entries, entry{name: p.Name, expansion: p.Expansion})
	}
}

// Resolve expands every $-prefixed alias in input. It scans left to right,
// copying verbatim until a '$', then reads the alias name up to (but not
// including) the first '/', '\', or '$', and looks it up from the end of
// the table (newest-first, so the first hit wins). Aliases may themselves
// contain any characters, including further '/' or '\': no recursive
// expansion is performed. A '$' with no matching alias raises UnknownAlias,
// including a '$' at end of string (whose name is empty and never
// matches). Input with no '$' is returned unchanged.
func (t *Table) Resolve(input string) (string, error) {
	if !strings.ContainsRune(input, '$') {
		return input, nil
	}

	var out strings.Builder
	rest := input
	for {
		i := strings.IndexByte(rest, '$')
		if i < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:i])
		rest = rest[i+1:]

		end := strings.IndexAny(rest, "/\\$")
		var name string
		if end < 0 {
			name = rest
			rest = ""
		} else {
			name = rest[:end]
			rest = rest[end:]
		}

		expansion, ok := t.lookup(name)
		if !ok {
			return "", deckerr.New(deckerr.UnknownAlias, "no alias named %q", name)
		}
		out.WriteString(expansion)
	}
	return out.String(), nil
}

// lookup searches the table from the end, newest-first; the empty name
// never matches, so a bare trailing '$' always raises UnknownAlias.
func (t *Table) lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].name == name {
			return t.entries[i].expansion, true
		}
	}
	return "", false
}

// Len reports the number of entries inserted so far, duplicates included.
func (t *Table) Len() int { return len(t.entries) }
