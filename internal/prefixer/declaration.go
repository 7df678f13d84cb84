package prefixer

import "strings"

// span is a half-open byte range [start, end) inside a template's text.
type span struct {
	start, end int
}

// template regenerates a declaration's original formatting. text is the matched
// declaration followed by a ";" terminator; the three spans mark where the
// property, value and bang were found in it.
type template struct {
	text     string
	property span
	value    span
	bang     span
}

// defaultTemplate is used by declarations that were not parsed from source.
var defaultTemplate = template{
	text:     ": ;",
	property: span{0, 0},
	value:    span{2, 2},
	bang:     span{2, 2},
}

func (t template) fill(property, value, bang string) string {
	var b strings.Builder
	b.Grow(len(t.text) + len(property) + len(value) + len(bang) + 1)

	b.WriteString(t.text[:t.property.start])
	b.WriteString(property)
	b.WriteString(t.text[t.property.end:t.value.start])
	b.WriteString(value)

	gap := t.text[t.value.end:t.bang.start]
	b.WriteString(gap)
	if bang != "" && gap == "" && value != "" && t.bang.start == t.bang.end {
		b.WriteByte(' ')
	}
	b.WriteString(bang)
	b.WriteString(t.text[t.bang.end:])

	return b.String()
}

// Declaration is a single `property: value[ !bang];` statement.
//
// Declarations parsed from source keep enough information to render themselves
// back byte-for-byte; declarations derived from them during expansion reuse the
// same template so they match the source's indentation and spacing.
type Declaration struct {
	LeadingWhitespace string // Exact whitespace before the property
	Property          string // Trimmed property name
	Value             string // Trimmed value, may be empty
	Bang              string // "!important", "!default", "!global" or ""
	Raw               string // Source text the declaration was parsed from

	terminated bool
	tmpl       template
}

// NewDeclaration builds a declaration that renders as "property: value[ bang];".
func NewDeclaration(property, value, bang string) *Declaration {
	return &Declaration{
		Property:   property,
		Value:      value,
		Bang:       bang,
		terminated: true,
		tmpl:       defaultTemplate,
	}
}

// ParseDeclaration parses one statement. It returns false when the text has no
// `property:value` structure.
//
// The statement ends at the first ";" outside quotes and parentheses. Anything
// after it is kept in Raw but is not part of the rendered form.
func ParseDeclaration(text string) (*Declaration, bool) {
	body := strings.Trim(text, "\r\n")

	start := 0
	for start < len(body) && isSpace(body[start]) {
		start++
	}

	end := indexTopLevel(body, start, ';')
	if end < 0 {
		end = len(body)
	}

	colon := strings.IndexByte(body[start:end], ':')
	if colon < 0 {
		return nil, false
	}
	colon += start

	property := strings.TrimRightFunc(body[start:colon], isSpaceRune)
	if property == "" || strings.ContainsAny(property, "{}") {
		return nil, false
	}

	region := body[colon+1 : end]
	valueRegion, bangRegion := region, ""
	if bang := indexTopLevel(region, 0, '!'); bang >= 0 {
		valueRegion, bangRegion = region[:bang], region[bang:]
	}

	value := strings.TrimFunc(valueRegion, isSpaceRune)
	valueStart := colon + 1 + (len(valueRegion) - len(strings.TrimLeftFunc(valueRegion, isSpaceRune)))
	if value == "" {
		valueStart = colon + 1 + len(valueRegion)
	}

	bang := strings.TrimRightFunc(bangRegion, isSpaceRune)
	bangStart := end
	if bang != "" {
		bangStart = colon + 1 + len(valueRegion)
	}

	return &Declaration{
		LeadingWhitespace: body[:start],
		Property:          property,
		Value:             value,
		Bang:              bang,
		Raw:               text,
		terminated:        end < len(body),
		tmpl: template{
			text:     body[:end] + ";",
			property: span{start, start + len(property)},
			value:    span{valueStart, valueStart + len(value)},
			bang:     span{bangStart, bangStart + len(bang)},
		},
	}, true
}

// Indent is the length of the leading whitespace.
func (d *Declaration) Indent() int {
	return len(d.LeadingWhitespace)
}

// Terminated reports whether the source statement ended with ";".
func (d *Declaration) Terminated() bool {
	return d.terminated
}

// Render fills the template with the current property, value and bang. For a
// parsed declaration this reproduces the source text plus its terminator.
func (d *Declaration) Render() string {
	return d.tmpl.fill(d.Property, d.Value, d.Bang)
}

// RenderWith renders other values using this declaration's formatting.
func (d *Declaration) RenderWith(property, value, bang string) string {
	return d.tmpl.fill(property, value, bang)
}

// Derive returns a new declaration that shares d's template.
func (d *Declaration) Derive(property, value, bang string) *Declaration {
	return &Declaration{
		LeadingWhitespace: d.LeadingWhitespace,
		Property:          property,
		Value:             value,
		Bang:              bang,
		terminated:        true,
		tmpl:              d.tmpl,
	}
}

// indexTopLevel returns the index of the first c at or after from that is not
// inside a quoted string or parentheses, or -1.
func indexTopLevel(s string, from int, c byte) int {
	var quote byte
	depth := 0
	for i := from; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(':
			depth++
		case ch == ')':
			if depth > 0 {
				depth--
			}
		case ch == c && depth == 0:
			return i
		}
	}
	return -1
}

// splitStatements cuts a line after every top-level ";". The pieces keep their
// surrounding whitespace so each can be found verbatim in the source.
func splitStatements(line string) []string {
	var out []string
	for line != "" {
		i := indexTopLevel(line, 0, ';')
		if i < 0 {
			out = append(out, line)
			break
		}
		out = append(out, line[:i+1])
		line = line[i+1:]
	}
	return out
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isSpaceRune(r rune) bool {
	return r < 0x80 && isSpace(byte(r))
}
