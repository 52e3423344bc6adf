// Package registry implements the keyword table: the mapping from a
// section/keyword name to a shape class, a baseline RUNSPEC/GRID table, and
// a YAML-based mechanism for registering more keywords at runtime.
package registry

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/opm-go/deckparser/deckerr"
	"github.com/opm-go/deckparser/item"
)

// Class is a keyword's shape class: which item kinds its records may hold,
// or Toggle for a presence-only keyword with no records at all.
type Class int

const (
	// Toggle keywords carry no records; presence alone is their value.
	Toggle Class = iota
	// IntClass records hold Int or Default items.
	IntClass
	// FloatClass records hold Float or Default items.
	FloatClass
	// StringClass records hold Str or Default items.
	StringClass
	// IntFloatClass records hold Int, Float, or Default items.
	IntFloatClass
	// IntStringClass records hold Int, Str, or Default items.
	IntStringClass
	// AnyClass records hold Int, Float, Str, or Default items.
	AnyClass
)

var classNames = map[Class]string{
	Toggle:         "toggle",
	IntClass:       "int",
	FloatClass:     "float",
	StringClass:    "string",
	IntFloatClass:  "int+float",
	IntStringClass: "int+string",
	AnyClass:       "any",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

var classByName = func() map[string]Class {
	m := make(map[string]Class, len(classNames))
	for c, name := range classNames {
		m[name] = c
	}
	return m
}()

// Allows reports whether k is a permitted item kind for the class. Default
// is allowed in every non-toggle class.
func (c Class) Allows(k item.Kind) bool {
	switch c {
	case Toggle:
		return false
	case IntClass:
		return k == item.Int || k == item.Default
	case FloatClass:
		return k == item.Float || k == item.Default
	case StringClass:
		return k == item.Str || k == item.Default
	case IntFloatClass:
		return k == item.Int || k == item.Float || k == item.Default
	case IntStringClass:
		return k == item.Int || k == item.Str || k == item.Default
	case AnyClass:
		return k == item.Int || k == item.Float || k == item.Str || k == item.Default
	default:
		return false
	}
}

// Rule is one keyword's registered shape: its class and the exact number of
// /-terminated records it expects (0 for a toggle).
type Rule struct {
	Class   Class
	Records int
}

// Table is a section-scoped keyword registry.
type Table struct {
	sections map[string]map[string]Rule
}

// New returns the baseline RUNSPEC/GRID keyword table.
func New() *Table {
	t := &Table{sections: map[string]map[string]Rule{
		"RUNSPEC": {},
		"GRID":    {},
	}}

	for _, name := range []string{
		"OIL", "WATER", "GAS", "DISGAS", "VAPOIL", "METRIC", "FIELD", "LAB",
		"NOSIM", "UNIFIN", "UNIFOUT",
	} {
		t.sections["RUNSPEC"][name] = Rule{Class: Toggle, Records: 0}
	}
	for _, name := range []string{
		"DIMENS", "EQLDIMS", "REGDIMS", "WELLDIMS", "VFPIDIMS", "VFPPDIMS",
		"FAULTDIM", "PIMTDIMS", "NSTACK", "OPTIONS",
	} {
		t.sections["RUNSPEC"][name] = Rule{Class: IntClass, Records: 1}
	}
	for _, name := range []string{"EQLOPTS", "SATOPTS"} {
		t.sections["RUNSPEC"][name] = Rule{Class: StringClass, Records: 1}
	}
	for _, name := range []string{"ENDSCALE", "GRIDOPTS", "START", "TABDIMS"} {
		t.sections["RUNSPEC"][name] = Rule{Class: IntStringClass, Records: 1}
	}
	t.sections["RUNSPEC"]["TRACERS"] = Rule{Class: AnyClass, Records: 1}

	t.sections["GRID"]["NEWTRAN"] = Rule{Class: Toggle, Records: 0}
	t.sections["GRID"]["GRIDFILE"] = Rule{Class: IntClass, Records: 1}
	t.sections["GRID"]["MAPAXES"] = Rule{Class: FloatClass, Records: 1}

	return t
}

// Lookup returns the rule for name within section, and whether it exists.
func (t *Table) Lookup(section, name string) (Rule, bool) {
	sec, ok := t.sections[section]
	if !ok {
		return Rule{}, false
	}
	r, ok := sec[name]
	return r, ok
}

// Register adds the rule for name within section. A name
// re-declared within the same section with an incompatible shape class (a
// different Class or Records count) raises DuplicateKeywordArity; an
// identical re-declaration is a harmless no-op.
func (t *Table) Register(section, name string, rule Rule) error {
	sec, ok := t.sections[section]
	if !ok {
		sec = map[string]Rule{}
		t.sections[section] = sec
	}
	if existing, ok := sec[name]; ok && existing != rule {
		return deckerr.New(deckerr.DuplicateKeywordArity,
			"keyword %s/%s already registered as %s/%d records, cannot redeclare as %s/%d records",
			section, name, existing.Class, existing.Records, rule.Class, rule.Records)
	}
	sec[name] = rule
	return nil
}

// yamlKeyword is the wire shape of one entry in a LoadYAML document.
type yamlKeyword struct {
	Section string `yaml:"section"`
	Name    string `yaml:"name"`
	Class   string `yaml:"class"`
	Records int    `yaml:"records"`
}

type yamlDoc struct {
	Keywords []yamlKeyword `yaml:"keywords"`
}

// LoadYAML registers additional keywords described by a document shaped
// like:
//
//	keywords:
//	  - section: GRID
//	    name: PERMX
//	    class: float
//	    records: 1
//
// Each entry is registered the same way Register is, so a conflicting
// redeclaration still raises DuplicateKeywordArity.
func (t *Table) LoadYAML(r io.Reader) error {
	var doc yamlDoc
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("registry: decode YAML: %w", err)
	}

	for _, kw := range doc.Keywords {
		class, ok := classByName[kw.Class]
		if !ok {
			return fmt.Errorf("registry: unknown class %q for keyword %s/%s", kw.Class, kw.Section, kw.Name)
		}
		records := kw.Records
		if class == Toggle {
			records = 0
		}
		if err := t.Register(kw.Section, kw.Name, Rule{Class: class, Records: records}); err != nil {
			return err
		}
	}
	return nil
}
