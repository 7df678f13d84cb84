package prefixer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func properties(decls []*Declaration) []string {
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = d.Property
	}
	return out
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		css      string
		expected []string
	}{
		{
			name:     "leaf block",
			css:      ".a {\n  display: flex;\n  color: red;\n}",
			expected: []string{"display", "color"},
		},
		{
			name:     "several declarations on one line",
			css:      ".a { display: flex; color: red; }",
			expected: []string{"display", "color"},
		},
		{
			name:     "nested scss block keeps source order",
			css:      ".a {\n  color: red;\n  .b {\n    display: flex;\n  }\n  margin: 0;\n}",
			expected: []string{"color", "display", "margin"},
		},
		{
			name:     "pseudo selector is not a declaration",
			css:      ".a {\n  &:hover {\n    color: red;\n  }\n}",
			expected: []string{"color"},
		},
		{
			name:     "media query",
			css:      "@media (min-width: 10px) {\n  .a { order: 1; }\n}",
			expected: []string{"order"},
		},
		{
			name:     "unclosed brace does not swallow the rest",
			css:      "a { color: red;\nb { display: flex; }",
			expected: []string{"display"},
		},
		{
			name:     "crlf line endings",
			css:      ".a {\r\n  color: red;\r\n}\r\n",
			expected: []string{"color"},
		},
		{
			name:     "multi-line value is one declaration",
			css:      "a {\n  transition: opacity 1s,\n    transform 2s;\n  color: red;\n}",
			expected: []string{"transition", "color"},
		},
		{
			name:     "comment line does not join the next declaration",
			css:      "a {\n  /* layout */\n  display: flex;\n}",
			expected: []string{"display"},
		},
		{
			name:     "declarations outside blocks are ignored",
			css:      "color: red;\n$x: 1px;",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, properties(Extract(tt.css)))
		})
	}
}

func TestExtractDeduplicatesByRaw(t *testing.T) {
	css := ".a { color: red; }\n.b { color: red; }\n.c {\n  color: red;\n}"

	decls := Extract(css)
	require.Len(t, decls, 2)
	assert.Equal(t, " color: red;", decls[0].Raw)
	assert.Equal(t, "  color: red;", decls[1].Raw)
}

func TestExtractorDepthLimit(t *testing.T) {
	css := strings.Repeat("a{", 70) + "color:red;" + strings.Repeat("}", 70)

	ex := NewExtractor(64, nil).Extract(css)
	assert.True(t, ex.DepthExceeded)
	assert.Empty(t, ex.Declarations)
	assert.Equal(t, 64, ex.Blocks)

	ex = NewExtractor(100, nil).Extract(css)
	assert.False(t, ex.DepthExceeded)
	require.Len(t, ex.Declarations, 1)
	assert.Equal(t, "color", ex.Declarations[0].Property)
	assert.Equal(t, 70, ex.Blocks)
}

func TestNewExtractorDefaults(t *testing.T) {
	x := NewExtractor(0, nil)
	assert.Equal(t, DefaultMaxDepth, x.maxDepth)
	assert.NotNil(t, x.log)
}

func TestFindBlocks(t *testing.T) {
	text := "a{b{c}} d{e}"
	blocks := findBlocks(text)
	require.Len(t, blocks, 2)
	assert.Equal(t, "b{c}", text[blocks[0].start:blocks[0].end])
	assert.Equal(t, "e", text[blocks[1].start:blocks[1].end])

	assert.Nil(t, findBlocks("no braces"))

	blocks = findBlocks("{{}")
	require.Len(t, blocks, 1)
	assert.Equal(t, span{2, 2}, blocks[0])

	blocks = findBlocks("} a{x} }")
	require.Len(t, blocks, 1)
	assert.Equal(t, span{4, 5}, blocks[0])
}

func TestExtractMultiLineValue(t *testing.T) {
	css := "a {\n  transition: opacity 1s,\n    transform 2s;\n}"

	decls := Extract(css)
	require.Len(t, decls, 1)
	assert.Equal(t, "opacity 1s,\n    transform 2s", decls[0].Value)
	assert.Equal(t, "  transition: opacity 1s,\n    transform 2s;", decls[0].Raw)
	assert.True(t, decls[0].Terminated())
}

func TestExtractManyUnclosedBraces(t *testing.T) {
	css := strings.Repeat("a {\n", 200000) + ".b { display: flex; }"

	decls := Extract(css)
	require.Len(t, decls, 1)
	assert.Equal(t, "display", decls[0].Property)
}

func TestExtractManyUnterminatedLines(t *testing.T) {
	css := "a {\n" + strings.Repeat("  b: c\n", 100000) + "  display: flex;\n}"

	decls := Extract(css)
	require.Len(t, decls, 1)
	assert.Equal(t, "b", decls[0].Property)
	assert.True(t, decls[0].Terminated())
}
