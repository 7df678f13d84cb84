package prefixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides Overrides
		property  string
		value     string // Empty for property-keyed lookups
		expected  []string
		warnings  int
	}{
		{
			name:      "wildcard keeps matching defaults",
			overrides: Overrides{Properties: map[string][]string{"user-select": {"-webkit-*"}}},
			property:  "user-select",
			expected:  []string{"-webkit-user-select", "user-select"},
		},
		{
			name:      "several wildcards keep override order",
			overrides: Overrides{Properties: map[string][]string{"user-select": {"-ms-*", "-moz-*"}}},
			property:  "user-select",
			expected:  []string{"-ms-user-select", "-moz-user-select", "user-select"},
		},
		{
			name:      "literal accepted verbatim",
			overrides: Overrides{Properties: map[string][]string{"transform": {"-o-transform"}}},
			property:  "transform",
			expected:  []string{"-o-transform", "transform"},
		},
		{
			name:      "canonical moved to the end",
			overrides: Overrides{Properties: map[string][]string{"transform": {"transform", "-webkit-transform"}}},
			property:  "transform",
			expected:  []string{"-webkit-transform", "transform"},
		},
		{
			name:      "duplicates collapse",
			overrides: Overrides{Properties: map[string][]string{"order": {"-webkit-order", "-webkit-*"}}},
			property:  "order",
			expected:  []string{"-webkit-order", "order"},
		},
		{
			name: "preconfigured only drops unknown prefixes",
			overrides: Overrides{
				Properties:        map[string][]string{"transform": {"-ms-transform", "-o-transform"}},
				PreconfiguredOnly: true,
			},
			property: "transform",
			expected: []string{"-ms-transform", "transform"},
			warnings: 1,
		},
		{
			name: "preconfigured only with nothing left keeps defaults",
			overrides: Overrides{
				Properties:        map[string][]string{"transform": {"-o-transform"}},
				PreconfiguredOnly: true,
			},
			property: "transform",
			expected: []string{"-webkit-transform", "-ms-transform", "transform"},
			warnings: 2,
		},
		{
			name:      "wildcard matching nothing keeps defaults",
			overrides: Overrides{Properties: map[string][]string{"box-sizing": {"-moz-*"}}},
			property:  "box-sizing",
			expected:  []string{"-webkit-box-sizing", "box-sizing"},
			warnings:  1,
		},
		{
			name:      "new property",
			overrides: Overrides{Properties: map[string][]string{"hyphens": {"-webkit-hyphens"}}},
			property:  "hyphens",
			expected:  []string{"-webkit-hyphens", "hyphens"},
		},
		{
			name: "value override",
			overrides: Overrides{Values: map[string]map[string][]string{
				"display": {"flex": {"-webkit-*"}},
			}},
			property: "display",
			value:    "flex",
			expected: []string{"-webkit-flex", "flex"},
		},
		{
			name: "value override preconfigured only",
			overrides: Overrides{
				Values: map[string]map[string][]string{
					"display": {"inline-flex": {"-moz-inline-box"}},
				},
				PreconfiguredOnly: true,
			},
			property: "display",
			value:    "inline-flex",
			expected: []string{"-webkit-inline-box", "-ms-inline-flexbox", "inline-flex"},
			warnings: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, warnings := ApplyOverrides(tt.overrides, DefaultTable())
			assert.Len(t, warnings, tt.warnings)

			var (
				list []string
				ok   bool
			)
			if tt.value == "" {
				list, ok = table.LookupByProperty(tt.property)
			} else {
				list, ok = table.LookupByValue(tt.property, tt.value)
			}
			require.True(t, ok)
			assert.Equal(t, tt.expected, list)
		})
	}
}

func TestApplyOverridesUnknownPreconfigured(t *testing.T) {
	table, warnings := ApplyOverrides(Overrides{
		Properties:        map[string][]string{"hyphens": {"-webkit-hyphens"}},
		PreconfiguredOnly: true,
	}, DefaultTable())

	assert.Len(t, warnings, 2)
	_, ok := table.LookupByProperty("hyphens")
	assert.False(t, ok)
}

func TestApplyOverridesLeavesDefaultsAlone(t *testing.T) {
	_, _ = ApplyOverrides(Overrides{
		Properties: map[string][]string{"user-select": {"-webkit-*"}},
		Values:     map[string]map[string][]string{"display": {"flex": {"-ms-*"}}},
	}, DefaultTable())

	list, _ := DefaultTable().LookupByProperty("user-select")
	assert.Len(t, list, 4)
	list, _ = DefaultTable().LookupByValue("display", "flex")
	assert.Len(t, list, 3)
}

func TestApplyOverridesEmpty(t *testing.T) {
	table, warnings := ApplyOverrides(Overrides{}, DefaultTable())
	assert.Same(t, DefaultTable(), table)
	assert.Empty(t, warnings)

	table, _ = ApplyOverrides(Overrides{}, nil)
	assert.Same(t, DefaultTable(), table)
}
