package prefixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeclaration(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		whitespace string
		property   string
		value      string
		bang       string
		terminated bool
	}{
		{
			name:       "plain",
			input:      "display: flex;",
			property:   "display",
			value:      "flex",
			terminated: true,
		},
		{
			name:       "indented without space after colon",
			input:      "  display:flex;",
			whitespace: "  ",
			property:   "display",
			value:      "flex",
			terminated: true,
		},
		{
			name:       "bang with irregular spacing",
			input:      "\tcolor :  red  !important;",
			whitespace: "\t",
			property:   "color",
			value:      "red",
			bang:       "!important",
			terminated: true,
		},
		{
			name:       "scss variable default",
			input:      "  $gutter: 10px !default;",
			whitespace: "  ",
			property:   "$gutter",
			value:      "10px",
			bang:       "!default",
			terminated: true,
		},
		{
			name:     "unterminated",
			input:    "margin: 0 auto",
			property: "margin",
			value:    "0 auto",
		},
		{
			name:       "semicolon inside quotes",
			input:      "content: 'a;b';",
			property:   "content",
			value:      "'a;b'",
			terminated: true,
		},
		{
			name:       "semicolon inside url",
			input:      "background: url(data:image/png;base64,AAAA);",
			property:   "background",
			value:      "url(data:image/png;base64,AAAA)",
			terminated: true,
		},
		{
			name:       "empty value",
			input:      "color:;",
			property:   "color",
			terminated: true,
		},
		{
			name:       "value repeats the property",
			input:      "flex: flex;",
			property:   "flex",
			value:      "flex",
			terminated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseDeclaration(tt.input)
			require.True(t, ok)

			assert.Equal(t, tt.whitespace, d.LeadingWhitespace)
			assert.Equal(t, len(tt.whitespace), d.Indent())
			assert.Equal(t, tt.property, d.Property)
			assert.Equal(t, tt.value, d.Value)
			assert.Equal(t, tt.bang, d.Bang)
			assert.Equal(t, tt.input, d.Raw)
			assert.Equal(t, tt.terminated, d.Terminated())
		})
	}
}

func TestParseDeclarationRejects(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"color red;",
		": red;",
		"  : red;",
		".a{color: red",
		"}",
	}

	for _, input := range inputs {
		_, ok := ParseDeclaration(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestDeclarationRoundTrip(t *testing.T) {
	inputs := []string{
		"display: flex;",
		"  display:flex;",
		"\t\tflex : 1 1 0 ;",
		"    justify-content: space-between !important;",
		"  $x: 1px!default;",
		"transition: opacity .2s ease-in-out,transform .2s;",
		"font-family: \"Helvetica Neue\", Arial;",
		"color:;",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			d, ok := ParseDeclaration(input)
			require.True(t, ok)
			assert.Equal(t, input, d.Render())
			assert.Equal(t, input, d.RenderWith(d.Property, d.Value, d.Bang))
		})
	}

	t.Run("unterminated gains terminator", func(t *testing.T) {
		d, ok := ParseDeclaration("  color: red")
		require.True(t, ok)
		assert.Equal(t, "  color: red;", d.Render())
	})
}

func TestDeclarationRenderWith(t *testing.T) {
	d, ok := ParseDeclaration("    display:flex;")
	require.True(t, ok)

	assert.Equal(t, "    display:-webkit-flex;", d.RenderWith("display", "-webkit-flex", ""))
	assert.Equal(t, "    -ms-flex:1;", d.RenderWith("-ms-flex", "1", ""))
	assert.Equal(t, "    display:flex !important;", d.RenderWith("display", "flex", "!important"))

	d, ok = ParseDeclaration("  color: red  !important;")
	require.True(t, ok)
	assert.Equal(t, "  color: blue  !important;", d.RenderWith("color", "blue", "!important"))
	assert.Equal(t, "  color: blue  ;", d.RenderWith("color", "blue", ""))
}

func TestDeclarationDerive(t *testing.T) {
	d, ok := ParseDeclaration("\tflex: 1;")
	require.True(t, ok)

	derived := d.Derive("-webkit-flex", "1", "")
	assert.Equal(t, "\t", derived.LeadingWhitespace)
	assert.Equal(t, "-webkit-flex", derived.Property)
	assert.Empty(t, derived.Raw)
	assert.Equal(t, "\t-webkit-flex: 1;", derived.Render())

	// The source declaration is unchanged.
	assert.Equal(t, "\tflex: 1;", d.Render())
}

func TestNewDeclaration(t *testing.T) {
	assert.Equal(t, "display: flex;", NewDeclaration("display", "flex", "").Render())
	assert.Equal(t, "color: red !important;", NewDeclaration("color", "red", "!important").Render())
}

func TestSplitStatements(t *testing.T) {
	assert.Equal(t, []string{" a: b;", " c: d;", " "}, splitStatements(" a: b; c: d; "))
	assert.Equal(t, []string{"content: ';';"}, splitStatements("content: ';';"))
	assert.Equal(t, []string{"color: red"}, splitStatements("color: red"))
	assert.Nil(t, splitStatements(""))
}
