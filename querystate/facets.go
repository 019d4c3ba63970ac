package querystate

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Cardinality says how a facet reacts to a selection.
type Cardinality string

const (
	// Single facets replace the previous selection.
	Single Cardinality = "single"
	// Multi facets toggle values in and out of the selection (OR semantics).
	Multi Cardinality = "multi"
)

type FacetOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// FacetDefinition is the static description of one filterable attribute.
type FacetDefinition struct {
	Key         string        `yaml:"key" json:"key"`
	Label       string        `yaml:"label" json:"label"`
	Cardinality Cardinality   `yaml:"cardinality" json:"cardinality"`
	Options     []FacetOption `yaml:"options" json:"options"`
}

// Allows reports whether value is one of the facet's options. A facet without
// options accepts anything.
func (d FacetDefinition) Allows(value string) bool {
	if len(d.Options) == 0 {
		return true
	}
	return slices.ContainsFunc(d.Options, func(o FacetOption) bool { return o.Value == value })
}

// Facets is an ordered, read-only facet table.
type Facets struct {
	defs  []FacetDefinition
	index map[string]int
}

var (
	ErrDuplicateFacet   = errors.New("duplicate facet key")
	ErrReservedFacet    = errors.New("facet key is reserved")
	ErrInvalidFacet     = errors.New("invalid facet definition")
	errEmptyFacetsTable = errors.New("facet table is empty")
)

//go:embed facets.yaml
var defaultFacetsYAML []byte

// DefaultFacets returns the embedded gender/size/color table.
func DefaultFacets() Facets {
	f, err := LoadFacets(bytes.NewReader(defaultFacetsYAML))
	if err != nil {
		panic(fmt.Sprintf("querystate: embedded facets.yaml: %v", err))
	}
	return f
}

// NewFacets validates defs and builds a table in the given order.
func NewFacets(defs ...FacetDefinition) (Facets, error) {
	f := Facets{
		defs:  make([]FacetDefinition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if d.Key == "" {
			return Facets{}, fmt.Errorf("%w: missing key", ErrInvalidFacet)
		}
		if d.Key == KeyPage || d.Key == KeyOrdering {
			return Facets{}, fmt.Errorf("%w: %q", ErrReservedFacet, d.Key)
		}
		switch d.Cardinality {
		case Single, Multi:
		case "":
			d.Cardinality = Multi
		default:
			return Facets{}, fmt.Errorf("%w: %q has cardinality %q", ErrInvalidFacet, d.Key, d.Cardinality)
		}
		if _, dup := f.index[d.Key]; dup {
			return Facets{}, fmt.Errorf("%w: %q", ErrDuplicateFacet, d.Key)
		}
		if d.Label == "" {
			d.Label = d.Key
		}
		d.Options = slices.Clone(d.Options)
		f.index[d.Key] = len(f.defs)
		f.defs = append(f.defs, d)
	}
	return f, nil
}

// LoadFacets reads a YAML facet table:
//
//	facets:
//	  - key: size
//	    cardinality: multi
//	    options: [{value: S, label: S}]
func LoadFacets(r io.Reader) (Facets, error) {
	var doc struct {
		Facets []FacetDefinition `yaml:"facets"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Facets{}, errEmptyFacetsTable
		}
		return Facets{}, fmt.Errorf("decode facets: %w", err)
	}
	if len(doc.Facets) == 0 {
		return Facets{}, errEmptyFacetsTable
	}
	return NewFacets(doc.Facets...)
}

func (f Facets) Lookup(key string) (FacetDefinition, bool) {
	i, ok := f.index[key]
	if !ok {
		return FacetDefinition{}, false
	}
	return f.defs[i], true
}

// Definitions returns a copy of the table in declaration order.
func (f Facets) Definitions() []FacetDefinition {
	return slices.Clone(f.defs)
}

func (f Facets) Keys() []string {
	keys := make([]string, len(f.defs))
	for i, d := range f.defs {
		keys[i] = d.Key
	}
	return keys
}

func (f Facets) IsMulti(key string) bool {
	d, ok := f.Lookup(key)
	return ok && d.Cardinality == Multi
}

// IsSingle reports whether key only ever carries one value. The reserved keys
// count as single.
func (f Facets) IsSingle(key string) bool {
	if key == KeyPage || key == KeyOrdering {
		return true
	}
	d, ok := f.Lookup(key)
	return ok && d.Cardinality == Single
}

// Allows reports whether value is acceptable for key. Unknown keys accept anything.
func (f Facets) Allows(key, value string) bool {
	d, ok := f.Lookup(key)
	if !ok {
		return true
	}
	return d.Allows(value)
}
