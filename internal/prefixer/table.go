package prefixer

import (
	"slices"
	"sort"
)

// PrefixTable maps a property, or a property and value, to the ordered list of
// spellings a declaration expands to. The last element of every list is the
// canonical unprefixed form.
//
// A table may be layered over a parent: lookups check the table's own entries
// first and fall back to the parent. Tables are never modified after they are
// built, so one table can serve any number of goroutines.
type PrefixTable struct {
	properties map[string][]string
	values     map[string]map[string][]string
	parent     *PrefixTable
}

// Value-keyed defaults: the value is prefixed, the property stays.
var defaultValues = map[string]map[string][]string{
	"display": {
		"flex":        {"-webkit-flex", "-ms-flexbox", "flex"},
		"inline-flex": {"-webkit-inline-box", "-ms-inline-flexbox", "inline-flex"},
	},
}

// Property-keyed defaults: the property is prefixed, the value stays.
var defaultProperties = map[string][]string{
	"flex":                  {"-webkit-flex", "-ms-flex", "flex"},
	"flex-wrap":             {"-webkit-flex-wrap", "-ms-flex-wrap", "flex-wrap"},
	"justify-content":       {"-webkit-justify-content", "-ms-flex-pack", "justify-content"},
	"flex-direction":        {"-webkit-flex-direction", "-ms-flex-direction", "flex-direction"},
	"flex-grow":             {"-webkit-flex-grow", "-ms-flex-positive", "flex-grow"},
	"flex-shrink":           {"-webkit-flex-shrink", "-ms-flex-negative", "flex-shrink"},
	"flex-basis":            {"-webkit-flex-basis", "-ms-flex-preferred-size", "flex-basis"},
	"order":                 {"-webkit-order", "-ms-flex-order", "order"},
	"transition":            {"-webkit-transition", "-o-transition", "transition"},
	"box-sizing":            {"-webkit-box-sizing", "box-sizing"},
	"column-count":          {"-webkit-column-count", "column-count"},
	"column-gap":            {"-webkit-column-gap", "column-gap"},
	"column-width":          {"-webkit-column-width", "column-width"},
	"column-rule":           {"-webkit-column-rule", "column-rule"},
	"user-select":           {"-webkit-user-select", "-moz-user-select", "-ms-user-select", "user-select"},
	"transform":             {"-webkit-transform", "-ms-transform", "transform"},
	"appearance":            {"-webkit-appearance", "-moz-appearance", "appearance"},
	"filter":                {"-webkit-filter", "filter"},
	"grid-template-columns": {"-ms-grid-columns", "grid-template-columns"},
	"grid-template-rows":    {"-ms-grid-rows", "grid-template-rows"},
	"grid-row-start":        {"-ms-grid-row", "grid-row-start"},
	"grid-column-start":     {"-ms-grid-column", "grid-column-start"},
	"justify-self":          {"-ms-grid-row-align", "justify-self"},
}

var defaultTable = &PrefixTable{
	properties: defaultProperties,
	values:     defaultValues,
}

// DefaultTable returns the built-in table.
func DefaultTable() *PrefixTable {
	return defaultTable
}

// LookupByProperty returns the property spellings for property.
func (t *PrefixTable) LookupByProperty(property string) ([]string, bool) {
	for tbl := t; tbl != nil; tbl = tbl.parent {
		if list, ok := tbl.properties[property]; ok {
			return slices.Clone(list), true
		}
	}
	return nil, false
}

// LookupByValue returns the value spellings for property: value.
func (t *PrefixTable) LookupByValue(property, value string) ([]string, bool) {
	for tbl := t; tbl != nil; tbl = tbl.parent {
		if list, ok := tbl.values[property][value]; ok {
			return slices.Clone(list), true
		}
	}
	return nil, false
}

// TableSnapshot is a flattened copy of a layered table, used for dumping the
// effective configuration.
type TableSnapshot struct {
	Properties map[string][]string            `json:"properties" yaml:"properties"`
	Values     map[string]map[string][]string `json:"values" yaml:"values"`
}

// Snapshot flattens the table and its parents into plain maps.
func (t *PrefixTable) Snapshot() TableSnapshot {
	snap := TableSnapshot{
		Properties: make(map[string][]string),
		Values:     make(map[string]map[string][]string),
	}

	// Walk from the root so nearer layers win.
	var chain []*PrefixTable
	for tbl := t; tbl != nil; tbl = tbl.parent {
		chain = append(chain, tbl)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for prop, list := range chain[i].properties {
			snap.Properties[prop] = slices.Clone(list)
		}
		for prop, byValue := range chain[i].values {
			if snap.Values[prop] == nil {
				snap.Values[prop] = make(map[string][]string)
			}
			for value, list := range byValue {
				snap.Values[prop][value] = slices.Clone(list)
			}
		}
	}
	return snap
}

// PropertyNames returns every property-keyed entry name, sorted.
func (s TableSnapshot) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
