package prefixer

import "strings"

// Pair is one output declaration before it is rendered.
type Pair struct {
	Property string
	Value    string
	Bang     string
}

// Zip lines up properties with values. When one side is shorter its last
// element is repeated, so a single property can carry many values and the
// other way round. bang is copied onto every pair. Zip returns nil if either
// side is empty.
func Zip(properties, values []string, bang string) []Pair {
	if len(properties) == 0 || len(values) == 0 {
		return nil
	}
	n := max(len(properties), len(values))
	pairs := make([]Pair, n)
	for i := 0; i < n; i++ {
		pairs[i] = Pair{
			Property: properties[min(i, len(properties)-1)],
			Value:    values[min(i, len(values)-1)],
			Bang:     bang,
		}
	}
	return pairs
}

// expander identifies a property that needs more than a name swap.
type expander int

const (
	expandFlex expander = iota + 1
	expandFlexWrap
	expandJustifyContent
	expandAlignItems
	expandAlignSelf
	expandAlignContent
)

var customExpanders = map[string]expander{
	"flex":            expandFlex,
	"flex-wrap":       expandFlexWrap,
	"justify-content": expandJustifyContent,
	"align-items":     expandAlignItems,
	"align-self":      expandAlignSelf,
	"align-content":   expandAlignContent,
}

// Used when the table has no entry for the property.
var expanderFallbacks = map[expander][]string{
	expandFlex:           {"-webkit-flex", "-ms-flex", "flex"},
	expandFlexWrap:       {"-webkit-flex-wrap", "-ms-flex-wrap", "flex-wrap"},
	expandJustifyContent: {"-webkit-justify-content", "-ms-flex-pack", "justify-content"},
	expandAlignItems:     {"-webkit-align-items", "-ms-flex-align", "align-items"},
	expandAlignSelf:      {"-webkit-align-self", "-ms-flex-item-align", "align-self"},
	expandAlignContent:   {"-webkit-align-content", "-ms-flex-line-pack", "align-content"},
}

// Keyword vocabulary of the 2012 IE flexbox draft.
var (
	msAlignValues = map[string]string{
		"flex-start": "start",
		"flex-end":   "end",
	}
	msJustifyValues = map[string]string{
		"flex-start":    "start",
		"flex-end":      "end",
		"space-between": "justify",
		"space-around":  "distribute",
	}
	msWrapValues = map[string]string{
		"nowrap": "none",
	}
)

const msGridRowAlign = "-ms-grid-row-align"

// Expand returns the declarations d should be replaced with, or nil when d
// needs no prefixes. Every result shares d's formatting.
func Expand(table *PrefixTable, d *Declaration) []*Declaration {
	if table == nil {
		table = DefaultTable()
	}
	pairs := expandPairs(table, d)
	if len(pairs) == 0 {
		return nil
	}
	out := make([]*Declaration, len(pairs))
	for i, p := range pairs {
		out[i] = d.Derive(p.Property, p.Value, p.Bang)
	}
	return out
}

func expandPairs(table *PrefixTable, d *Declaration) []Pair {
	property := strings.ToLower(d.Property)

	if e, ok := customExpanders[property]; ok {
		return e.expand(table, property, d.Value, d.Bang)
	}
	if values, ok := table.LookupByValue(property, strings.ToLower(d.Value)); ok {
		return Zip([]string{d.Property}, values, d.Bang)
	}
	if properties, ok := table.LookupByProperty(property); ok {
		return Zip(properties, []string{d.Value}, d.Bang)
	}
	return nil
}

func (e expander) expand(table *PrefixTable, property, value, bang string) []Pair {
	properties, ok := table.LookupByProperty(property)
	if !ok || len(properties) == 0 {
		properties = expanderFallbacks[e]
	}

	var remap map[string]string
	switch e {
	case expandFlex:
		value = fixFlexBasis(value)
	case expandFlexWrap:
		remap = msWrapValues
	case expandJustifyContent:
		remap = msJustifyValues
	case expandAlignItems, expandAlignSelf, expandAlignContent:
		remap = msAlignValues
	}

	last := len(properties) - 1
	gridAlign := e == expandAlignItems || e == expandAlignSelf
	pairs := make([]Pair, 0, len(properties)+1)
	for i, prop := range properties {
		v := value
		if i < last && strings.HasPrefix(prop, "-ms-") {
			if mapped, ok := remap[strings.ToLower(value)]; ok {
				v = mapped
			}
			pairs = append(pairs, Pair{Property: prop, Value: v, Bang: bang})
			if gridAlign && prop != msGridRowAlign && v != "start" && v != "end" {
				pairs = append(pairs, Pair{Property: msGridRowAlign, Value: "center", Bang: bang})
				gridAlign = false
			}
			continue
		}
		pairs = append(pairs, Pair{Property: prop, Value: v, Bang: bang})
	}
	return pairs
}

// fixFlexBasis rewrites a zero basis in a three-part flex shorthand to 0%.
// Legacy engines ignore a unitless basis, and minifiers strip "px" from 0px.
func fixFlexBasis(value string) string {
	parts := strings.Fields(value)
	if len(parts) != 3 || (parts[2] != "0" && parts[2] != "0px") {
		return value
	}
	parts[2] = "0%"
	return strings.Join(parts, " ")
}
