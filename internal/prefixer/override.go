package prefixer

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Overrides replaces built-in prefix lists with user-chosen ones.
//
// Each token is either a literal spelling or a wildcard ending in "*", which
// keeps every built-in spelling starting with the text before the "*":
//
//	properties:
//	  user-select: ["-webkit-*"]        # -webkit-user-select, user-select
//	values:
//	  display:
//	    flex: ["-webkit-flex"]          # -webkit-flex, flex
//
// With PreconfiguredOnly set, literal tokens are only accepted when the
// built-in list for the same key already contains them.
type Overrides struct {
	Properties        map[string][]string            `koanf:"properties" yaml:"properties,omitempty" json:"properties,omitempty"`
	Values            map[string]map[string][]string `koanf:"values" yaml:"values,omitempty" json:"values,omitempty"`
	PreconfiguredOnly bool                           `koanf:"preconfigured-only" yaml:"preconfigured-only" json:"preconfigured_only"`
}

// Empty reports whether no override is configured.
func (o Overrides) Empty() bool {
	return len(o.Properties) == 0 && len(o.Values) == 0
}

// ApplyOverrides layers o over defaults. Keys whose tokens resolve to nothing
// keep their default list; every such key, and every literal token rejected by
// PreconfiguredOnly, is reported in the returned warnings.
func ApplyOverrides(o Overrides, defaults *PrefixTable) (*PrefixTable, []string) {
	if defaults == nil {
		defaults = DefaultTable()
	}
	if o.Empty() {
		return defaults, nil
	}

	table := &PrefixTable{
		properties: make(map[string][]string),
		values:     make(map[string]map[string][]string),
		parent:     defaults,
	}
	var warnings []string

	for _, prop := range sortedKeys(o.Properties) {
		known, _ := defaults.LookupByProperty(prop)
		list, rejected := resolveTokens(o.Properties[prop], known, prop, o.PreconfiguredOnly)
		warnings = append(warnings, rejectedWarnings(prop, rejected)...)
		if len(list) == 0 {
			if len(o.Properties[prop]) > 0 {
				warnings = append(warnings, fmt.Sprintf("override for %q accepted no prefixes, keeping defaults", prop))
			}
			continue
		}
		table.properties[prop] = list
	}

	for _, prop := range sortedKeys(o.Values) {
		for _, value := range sortedKeys(o.Values[prop]) {
			key := prop + ": " + value
			tokens := o.Values[prop][value]
			known, _ := defaults.LookupByValue(prop, value)
			list, rejected := resolveTokens(tokens, known, value, o.PreconfiguredOnly)
			warnings = append(warnings, rejectedWarnings(key, rejected)...)
			if len(list) == 0 {
				if len(tokens) > 0 {
					warnings = append(warnings, fmt.Sprintf("override for %q accepted no prefixes, keeping defaults", key))
				}
				continue
			}
			if table.values[prop] == nil {
				table.values[prop] = make(map[string][]string)
			}
			table.values[prop][value] = list
		}
	}

	return table, warnings
}

// resolveTokens turns override tokens into a prefix list ending in canonical.
// It returns nil when no token was accepted.
func resolveTokens(tokens, known []string, canonical string, preconfiguredOnly bool) (list, rejected []string) {
	add := func(s string) {
		if !slices.Contains(list, s) {
			list = append(list, s)
		}
	}

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if stem, ok := strings.CutSuffix(tok, "*"); ok {
			for _, k := range known {
				if strings.HasPrefix(k, stem) {
					add(k)
				}
			}
			continue
		}
		if preconfiguredOnly && !slices.Contains(known, tok) {
			rejected = append(rejected, tok)
			continue
		}
		add(tok)
	}

	if len(list) == 0 {
		return nil, rejected
	}
	list = slices.DeleteFunc(list, func(s string) bool { return s == canonical })
	return append(list, canonical), rejected
}

func rejectedWarnings(key string, rejected []string) []string {
	out := make([]string, 0, len(rejected))
	for _, tok := range rejected {
		out = append(out, fmt.Sprintf("override for %q: %q is not a preconfigured prefix, ignored", key, tok))
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
