package prefixer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Comments mentioning any of these survive minification.
var keepComment = regexp.MustCompile(`(?i)copyright|license|author|preserve|credit|http|^/\*!`)

// Length units that can be dropped from a zero.
var zeroUnits = map[string]bool{
	"px": true, "em": true, "rem": true, "ex": true, "ch": true,
	"cm": true, "mm": true, "in": true, "pt": true, "pc": true,
	"vw": true, "vh": true, "vmin": true, "vmax": true,
}

type token struct {
	tt   css.TokenType
	text string
}

// Minify compresses a stylesheet. lineComments enables LESS and SCSS "//"
// comments.
//
// Whitespace is collapsed and removed around punctuation, the last ";" of a
// block is dropped, six digit hex colors are shortened where possible, zero
// lengths lose their unit and fractions lose their leading zero. Comments are
// removed unless they carry a license marker, in which case they are kept as
// "/*! ... */" on a line of their own.
func Minify(content string, lineComments bool) (string, error) {
	tokens, err := lex(content)
	if err != nil {
		return "", err
	}

	m := &minifier{}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if lineComments && isDelim(tok, '/') && i+1 < len(tokens) && isDelim(tokens[i+1], '/') {
			for i < len(tokens) && !(tokens[i].tt == css.WhitespaceToken && strings.Contains(tokens[i].text, "\n")) {
				i++
			}
			m.space = true
			continue
		}

		switch tok.tt {
		case css.WhitespaceToken:
			m.space = true
		case css.CommentToken:
			m.comment(tok.text)
		case css.SemicolonToken:
			m.semicolon = true
			m.space = false
			m.inValue = false
		default:
			m.emit(tok)
		}
	}
	if m.semicolon {
		m.b.WriteByte(';')
	}
	return strings.TrimSpace(m.b.String()), nil
}

func lex(content string) ([]token, error) {
	l := css.NewLexer(parse.NewInputString(content))
	var tokens []token
	for {
		tt, text := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenize: %w", err)
			}
			return tokens, nil
		}
		tokens = append(tokens, token{tt: tt, text: string(text)})
	}
}

type minifier struct {
	b         strings.Builder
	last      token
	space     bool // Whitespace seen since the last emitted token
	semicolon bool // A ";" waits for the next token
	braces    int
	parens    int
	inValue   bool
}

func (m *minifier) comment(text string) {
	if !keepComment.MatchString(text) {
		return
	}
	if !strings.HasPrefix(text, "/*!") {
		text = "/*!" + strings.TrimPrefix(text, "/*")
	}
	if m.semicolon {
		m.b.WriteByte(';')
		m.semicolon = false
	}
	if m.b.Len() > 0 && !strings.HasSuffix(m.b.String(), "\n") {
		m.b.WriteByte('\n')
	}
	m.b.WriteString(text)
	m.b.WriteByte('\n')
	m.last = token{tt: css.CommentToken}
	m.space = false
}

func (m *minifier) emit(tok token) {
	if m.semicolon {
		if tok.tt != css.RightBraceToken {
			m.b.WriteByte(';')
			m.last = token{tt: css.SemicolonToken, text: ";"}
		}
		m.semicolon = false
	}
	if m.space && m.b.Len() > 0 && m.needsSpace(tok) {
		m.b.WriteByte(' ')
	}
	m.space = false

	text := tok.text
	switch tok.tt {
	case css.LeftBraceToken:
		m.braces++
		m.inValue = false
	case css.RightBraceToken:
		if m.braces > 0 {
			m.braces--
		}
		m.inValue = false
	case css.LeftParenthesisToken, css.FunctionToken:
		m.parens++
	case css.RightParenthesisToken:
		if m.parens > 0 {
			m.parens--
		}
	case css.ColonToken:
		if m.braces > 0 && m.parens == 0 {
			m.inValue = true
		}
	case css.HashToken:
		if m.inValue {
			text = shortenHex(text)
		}
	case css.DimensionToken:
		text = trimLeadingZero(text)
		if m.inValue && m.parens == 0 {
			text = dropZeroUnit(text)
		}
	case css.NumberToken, css.PercentageToken:
		text = trimLeadingZero(text)
	}

	m.b.WriteString(text)
	m.last = tok
}

func (m *minifier) needsSpace(next token) bool {
	switch m.last.tt {
	case css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken, css.CommaToken,
		css.LeftParenthesisToken, css.LeftBracketToken, css.ColonToken,
		css.FunctionToken, css.CommentToken:
		return false
	case css.DelimToken:
		if isDelim(m.last, '>') || isDelim(m.last, '~') {
			return false
		}
	}

	switch next.tt {
	case css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken, css.CommaToken,
		css.RightParenthesisToken, css.RightBracketToken:
		return false
	case css.ColonToken:
		return m.braces == 0
	case css.DelimToken:
		if isDelim(next, '>') || isDelim(next, '~') || isDelim(next, '!') {
			return false
		}
	}
	return true
}

func isDelim(tok token, c byte) bool {
	return tok.tt == css.DelimToken && len(tok.text) == 1 && tok.text[0] == c
}

// shortenHex turns #aabbcc into #abc.
func shortenHex(text string) string {
	if len(text) != 7 {
		return text
	}
	h := strings.ToLower(text[1:])
	for i := 0; i < len(h); i++ {
		if !isHexDigit(h[i]) {
			return text
		}
	}
	if h[0] != h[1] || h[2] != h[3] || h[4] != h[5] {
		return text
	}
	return "#" + text[1:2] + text[3:4] + text[5:6]
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f')
}

// trimLeadingZero turns 0.5 into .5 and -0.5em into -.5em.
func trimLeadingZero(text string) string {
	sign := ""
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		sign, text = text[:1], text[1:]
	}
	if len(text) > 2 && text[0] == '0' && text[1] == '.' {
		text = text[1:]
	}
	return sign + text
}

// dropZeroUnit turns 0px or -0.0em into 0. Percentages and non-length units
// are left alone.
func dropZeroUnit(text string) string {
	i := 0
	for i < len(text) && strings.IndexByte("+-.0123456789", text[i]) >= 0 {
		i++
	}
	number, unit := text[:i], strings.ToLower(text[i:])
	if !zeroUnits[unit] || strings.Trim(number, "+-.0") != "" || !strings.ContainsRune(number, '0') {
		return text
	}
	return "0"
}

// MinifyFilter minifies CSS and LESS assets when they are dumped.
type MinifyFilter struct{}

func (MinifyFilter) Name() string { return "minify" }

func (MinifyFilter) Load(context.Context, *Asset) error { return nil }

func (MinifyFilter) Dump(_ context.Context, asset *Asset) error {
	ext := asset.Ext()
	if ext != "css" && ext != "less" {
		return nil
	}
	out, err := Minify(asset.Content, ext == "less")
	if err != nil {
		return err
	}
	asset.Content = out
	return nil
}
