package prefixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZip(t *testing.T) {
	tests := []struct {
		name       string
		properties []string
		values     []string
		expected   []Pair
	}{
		{
			name:       "one property many values",
			properties: []string{"display"},
			values:     []string{"-webkit-flex", "flex"},
			expected:   []Pair{{"display", "-webkit-flex", "!x"}, {"display", "flex", "!x"}},
		},
		{
			name:       "many properties one value",
			properties: []string{"-webkit-order", "order"},
			values:     []string{"1"},
			expected:   []Pair{{"-webkit-order", "1", "!x"}, {"order", "1", "!x"}},
		},
		{
			name:       "shorter list pads with its last element",
			properties: []string{"a", "b", "c"},
			values:     []string{"1", "2"},
			expected:   []Pair{{"a", "1", "!x"}, {"b", "2", "!x"}, {"c", "2", "!x"}},
		},
		{
			name:       "empty side",
			properties: nil,
			values:     []string{"1"},
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Zip(tt.properties, tt.values, "!x"))
		})
	}
}

func render(decls []*Declaration) []string {
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = d.Render()
	}
	return out
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:  "value keyed display flex",
			input: "display: flex;",
			expected: []string{
				"display: -webkit-flex;",
				"display: -ms-flexbox;",
				"display: flex;",
			},
		},
		{
			name:  "flex shorthand zero basis",
			input: "  flex: 1 1 0;",
			expected: []string{
				"  -webkit-flex: 1 1 0%;",
				"  -ms-flex: 1 1 0%;",
				"  flex: 1 1 0%;",
			},
		},
		{
			name:  "flex shorthand 0px basis",
			input: "flex: 2 0 0px;",
			expected: []string{
				"-webkit-flex: 2 0 0%;",
				"-ms-flex: 2 0 0%;",
				"flex: 2 0 0%;",
			},
		},
		{
			name:  "flex single value untouched",
			input: "flex: 1;",
			expected: []string{
				"-webkit-flex: 1;",
				"-ms-flex: 1;",
				"flex: 1;",
			},
		},
		{
			name:  "justify content with bang",
			input: "justify-content: space-between !important;",
			expected: []string{
				"-webkit-justify-content: space-between !important;",
				"-ms-flex-pack: justify !important;",
				"justify-content: space-between !important;",
			},
		},
		{
			name:  "justify content space around",
			input: "justify-content: space-around;",
			expected: []string{
				"-webkit-justify-content: space-around;",
				"-ms-flex-pack: distribute;",
				"justify-content: space-around;",
			},
		},
		{
			name:  "flex wrap nowrap",
			input: "flex-wrap: nowrap;",
			expected: []string{
				"-webkit-flex-wrap: nowrap;",
				"-ms-flex-wrap: none;",
				"flex-wrap: nowrap;",
			},
		},
		{
			name:  "align items center adds grid alignment",
			input: "align-items: center;",
			expected: []string{
				"-webkit-align-items: center;",
				"-ms-flex-align: center;",
				"-ms-grid-row-align: center;",
				"align-items: center;",
			},
		},
		{
			name:  "align items flex start",
			input: "align-items: flex-start;",
			expected: []string{
				"-webkit-align-items: flex-start;",
				"-ms-flex-align: start;",
				"align-items: flex-start;",
			},
		},
		{
			name:  "align self flex end",
			input: "\talign-self: flex-end;",
			expected: []string{
				"\t-webkit-align-self: flex-end;",
				"\t-ms-flex-item-align: end;",
				"\talign-self: flex-end;",
			},
		},
		{
			name:  "align self stretch",
			input: "align-self: stretch;",
			expected: []string{
				"-webkit-align-self: stretch;",
				"-ms-flex-item-align: stretch;",
				"-ms-grid-row-align: center;",
				"align-self: stretch;",
			},
		},
		{
			name:  "align content keeps space between",
			input: "align-content: space-between;",
			expected: []string{
				"-webkit-align-content: space-between;",
				"-ms-flex-line-pack: space-between;",
				"align-content: space-between;",
			},
		},
		{
			name:  "property keyed",
			input: "    transition: opacity .2s;",
			expected: []string{
				"    -webkit-transition: opacity .2s;",
				"    -o-transition: opacity .2s;",
				"    transition: opacity .2s;",
			},
		},
		{
			name:  "uppercase property",
			input: "BOX-SIZING: border-box;",
			expected: []string{
				"-webkit-box-sizing: border-box;",
				"box-sizing: border-box;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseDeclaration(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.expected, render(Expand(DefaultTable(), d)))
		})
	}
}

func TestExpandNoMatch(t *testing.T) {
	for _, input := range []string{"color: red;", "display: block;", "$flex: 1;"} {
		d, ok := ParseDeclaration(input)
		require.True(t, ok)
		assert.Empty(t, Expand(DefaultTable(), d), input)
	}
}

func TestExpandCanonicalLast(t *testing.T) {
	for _, input := range []string{"display: flex;", "flex: 1;", "align-items: center;", "order: 2;"} {
		d, ok := ParseDeclaration(input)
		require.True(t, ok)

		out := Expand(nil, d)
		require.NotEmpty(t, out)
		last := out[len(out)-1]
		assert.Equal(t, input, last.Render())
	}
}

func TestExpandUsesOverrides(t *testing.T) {
	table, _ := ApplyOverrides(Overrides{
		Properties: map[string][]string{
			"flex":        {"-webkit-*"},
			"align-items": {"-ms-flex-align"},
		},
	}, DefaultTable())

	d, ok := ParseDeclaration("flex: 1 1 0;")
	require.True(t, ok)
	assert.Equal(t, []string{"-webkit-flex: 1 1 0%;", "flex: 1 1 0%;"}, render(Expand(table, d)))

	d, ok = ParseDeclaration("align-items: baseline;")
	require.True(t, ok)
	assert.Equal(t, []string{
		"-ms-flex-align: baseline;",
		"-ms-grid-row-align: center;",
		"align-items: baseline;",
	}, render(Expand(table, d)))
}

func TestFixFlexBasis(t *testing.T) {
	assert.Equal(t, "1 1 0%", fixFlexBasis("1 1 0"))
	assert.Equal(t, "1 1 0%", fixFlexBasis("1 1 0px"))
	assert.Equal(t, "1 1 10px", fixFlexBasis("1 1 10px"))
	assert.Equal(t, "1  1", fixFlexBasis("1  1"))
	assert.Equal(t, "none", fixFlexBasis("none"))
}
