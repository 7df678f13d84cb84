package prefixer

import (
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Options configures an Engine.
type Options struct {
	Overrides Overrides
	MaxDepth  int         // Zero means DefaultMaxDepth
	Logger    *zap.Logger // Optional
}

// Engine rewrites stylesheets, expanding declarations that need vendor
// prefixes. An Engine is read-only after NewEngine returns and may be shared
// between goroutines.
type Engine struct {
	table     *PrefixTable
	extractor *Extractor
	warnings  []string
	log       *zap.Logger
}

// Report summarizes one rewrite.
type Report struct {
	Declarations  int      `json:"declarations"`         // Distinct declarations found
	Expanded      int      `json:"expanded"`             // Declarations replaced by an expansion
	Emitted       int      `json:"emitted"`              // Declarations written in their place
	Properties    []string `json:"properties,omitempty"` // Expanded property names, sorted
	DepthExceeded bool     `json:"depth_exceeded,omitempty"`
}

// NewEngine resolves opts.Overrides against the built-in table and returns a
// ready engine. Override problems are logged and kept in Warnings.
func NewEngine(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	table, warnings := ApplyOverrides(opts.Overrides, DefaultTable())
	for _, w := range warnings {
		log.Warn(w)
	}

	return &Engine{
		table:     table,
		extractor: NewExtractor(opts.MaxDepth, log),
		warnings:  warnings,
		log:       log.Named("engine"),
	}
}

// Table returns the effective prefix table.
func (e *Engine) Table() *PrefixTable {
	return e.table
}

// Warnings returns the problems found while applying overrides.
func (e *Engine) Warnings() []string {
	return slices.Clone(e.warnings)
}

// Expand expands a single declaration with the engine's table.
func (e *Engine) Expand(d *Declaration) []*Declaration {
	return Expand(e.table, d)
}

// Rewrite returns text with every recognized declaration expanded in place.
func (e *Engine) Rewrite(text string) string {
	out, _ := e.RewriteWithReport(text)
	return out
}

// RewriteWithReport is Rewrite plus a summary of what changed.
func (e *Engine) RewriteWithReport(text string) (string, Report) {
	ex := e.extractor.Extract(text)
	report := Report{
		Declarations:  len(ex.Declarations),
		DepthExceeded: ex.DepthExceeded,
	}

	newline := "\n"
	if strings.Contains(text, "\r\n") {
		newline = "\r\n"
	}

	// Occurrences are located in the source text only, so expanded output is
	// never matched again by a later declaration.
	var edits []edit
	replaced := make(map[string]struct{}, len(ex.Declarations))
	for _, d := range ex.Declarations {
		if _, done := replaced[d.Raw]; done {
			continue
		}
		at := indexAllWhole(text, d.Raw)
		if len(at) == 0 {
			e.log.Debug("Declaration not found in source, skipping", zap.String("raw", d.Raw))
			continue
		}

		expanded := e.Expand(d)
		if len(expanded) == 0 {
			continue
		}

		lines := make([]string, len(expanded))
		for i, x := range expanded {
			lines[i] = x.Render()
		}

		anchor := d.Render()
		if !d.Terminated() {
			anchor = strings.TrimSuffix(anchor, ";")
		}
		updated := strings.Replace(d.Raw, anchor, strings.Join(lines, newline), 1)
		for _, i := range at {
			edits = append(edits, edit{start: i, end: i + len(d.Raw), text: updated})
		}
		replaced[d.Raw] = struct{}{}

		report.Expanded++
		report.Emitted += len(expanded)
		if p := strings.ToLower(d.Property); !slices.Contains(report.Properties, p) {
			report.Properties = append(report.Properties, p)
		}
		e.log.Debug("Expanded declaration",
			zap.String("property", d.Property),
			zap.String("value", d.Value),
			zap.Int("count", len(expanded)))
	}

	slices.Sort(report.Properties)
	return applyEdits(text, edits), report
}

// RewriteAsset rewrites text when sourcePath names a stylesheet and returns it
// unchanged otherwise.
func (e *Engine) RewriteAsset(text, sourcePath string) string {
	if !Supports(sourcePath) {
		return text
	}
	return e.Rewrite(text)
}

// Supports reports whether path has a stylesheet extension the engine handles.
func Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css", ".scss", ".less":
		return true
	}
	return false
}

// indexWhole finds old in s at or after from, ignoring occurrences that are
// glued to a longer token: a match must not follow an indent or identifier
// byte, and a match ending in an identifier byte must not be followed by one.
// This keeps "  flex: 1;" from matching inside "    flex: 1;" or
// "-webkit-flex: 1;".
func indexWhole(s, old string, from int) int {
	if old == "" {
		return -1
	}
	for from <= len(s)-len(old) {
		i := strings.Index(s[from:], old)
		if i < 0 {
			return -1
		}
		i += from
		end := i + len(old)
		before := i == 0 || !isGlue(s[i-1])
		after := end == len(s) || !isIdent(old[len(old)-1]) || !isIdent(s[end])
		if before && after {
			return i
		}
		from = i + 1
	}
	return -1
}

// indexAllWhole returns the start of every occurrence indexWhole accepts.
func indexAllWhole(s, old string) []int {
	var at []int
	for i := indexWhole(s, old, 0); i >= 0; i = indexWhole(s, old, i+len(old)) {
		at = append(at, i)
	}
	return at
}

// edit replaces s[start:end] with text.
type edit struct {
	start, end int
	text       string
}

// applyEdits applies edits to s in one pass. An edit overlapping one that
// starts earlier is dropped.
func applyEdits(s string, edits []edit) string {
	if len(edits) == 0 {
		return s
	}
	slices.SortStableFunc(edits, func(a, b edit) int { return a.start - b.start })

	var b strings.Builder
	last := 0
	for _, e := range edits {
		if e.start < last {
			continue
		}
		b.WriteString(s[last:e.start])
		b.WriteString(e.text)
		last = e.end
	}
	b.WriteString(s[last:])
	return b.String()
}

func isGlue(c byte) bool {
	return c == ' ' || c == '\t' || isIdent(c)
}

func isIdent(c byte) bool {
	return c == '-' || c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
