package prefixer

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxDepth bounds how deeply nested blocks are followed.
const DefaultMaxDepth = 64

// Extraction is the result of scanning a buffer for declarations.
type Extraction struct {
	Declarations  []*Declaration // Source order, unique by Raw
	Blocks        int            // Balanced blocks visited
	DepthExceeded bool           // A block was skipped because of MaxDepth
}

// Extractor finds the declarations inside every `{ ... }` block of a buffer,
// following nested blocks the way SCSS and LESS write them.
type Extractor struct {
	maxDepth int
	log      *zap.Logger
}

// NewExtractor creates an extractor. A maxDepth of zero or less means
// DefaultMaxDepth.
func NewExtractor(maxDepth int, log *zap.Logger) *Extractor {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{maxDepth: maxDepth, log: log.Named("extract")}
}

// Extract is a convenience wrapper using the default depth limit.
func Extract(text string) []*Declaration {
	return NewExtractor(0, nil).Extract(text).Declarations
}

// extractState collects declarations during one Extract call.
type extractState struct {
	result Extraction
	seen   map[string]struct{}
}

// Extract scans text and returns its declarations.
func (x *Extractor) Extract(text string) Extraction {
	st := &extractState{seen: make(map[string]struct{})}
	for _, b := range findBlocks(text) {
		x.block(text[b.start:b.end], 1, st)
	}
	return st.result
}

// block handles the interior of one balanced block. A leaf interior is parsed
// line by line. An interior with nested blocks is walked in source order: the
// text between child blocks is parsed (terminated statements only, so selector
// text is never taken for a declaration) and each child is visited in turn.
func (x *Extractor) block(interior string, depth int, st *extractState) {
	if depth > x.maxDepth {
		if !st.result.DepthExceeded {
			x.log.Warn("Block nesting exceeds limit, skipping", zap.Int("max_depth", x.maxDepth))
		}
		st.result.DepthExceeded = true
		return
	}
	st.result.Blocks++

	if strings.IndexByte(interior, '{') < 0 {
		st.statements(interior, false)
		return
	}

	pos := 0
	for _, child := range findBlocks(interior) {
		st.statements(interior[pos:child.start-1], true)
		x.block(interior[child.start:child.end], depth+1, st)
		pos = child.end + 1
	}
	st.statements(interior[pos:], true)
}

// statements parses the declarations in text. A line whose last statement is
// not terminated opens a declaration that runs on to the first top-level ";"
// of a following line, so multi-line values stay whole. A declaration still
// open at the end of text is the block's final unterminated one.
func (st *extractState) statements(text string, terminatedOnly bool) {
	open := -1 // Start of the open declaration in text
	for pos := 0; pos <= len(text); {
		end := strings.IndexByte(text[pos:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += pos
		}
		start := pos
		pos = end + 1

		if open >= 0 {
			i := indexTopLevel(text[start:end], 0, ';')
			if i < 0 {
				continue
			}
			st.add(text[open:start+i+1], terminatedOnly)
			open = -1
			start += i + 1
		}
		if strings.TrimSpace(text[start:end]) == "" {
			continue
		}

		stmts := splitStatements(text[start:end])
		for n, stmt := range stmts {
			if n == len(stmts)-1 && !strings.HasSuffix(stmt, ";") && continues(stmt) {
				open = start
				break
			}
			st.add(stmt, terminatedOnly)
			start += len(stmt)
		}
	}
	if open >= 0 {
		st.add(strings.TrimRightFunc(text[open:], isSpaceRune), terminatedOnly)
	}
}

func (st *extractState) add(stmt string, terminatedOnly bool) {
	d, ok := ParseDeclaration(stmt)
	if !ok || (terminatedOnly && !d.Terminated()) {
		return
	}
	if _, dup := st.seen[d.Raw]; dup {
		return
	}
	st.seen[d.Raw] = struct{}{}
	st.result.Declarations = append(st.result.Declarations, d)
}

// continues reports whether an unterminated statement starts a declaration
// that may go on in the next line. Comments and blank text do not.
func continues(stmt string) bool {
	d, ok := ParseDeclaration(stmt)
	return ok && !strings.ContainsFunc(d.Property, isSpaceRune) && !strings.Contains(d.Property, "/*")
}

// findBlocks returns the interiors of the outermost balanced blocks in text,
// in source order. Braces are paired in a single pass; an opening brace that
// is never closed is treated as plain text.
func findBlocks(text string) []span {
	var (
		opens  []int
		blocks []span
	)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			opens = append(opens, i)
		case '}':
			if len(opens) == 0 {
				continue
			}
			open := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			// Blocks closed earlier that start after open are nested in it.
			for len(blocks) > 0 && blocks[len(blocks)-1].start > open {
				blocks = blocks[:len(blocks)-1]
			}
			blocks = append(blocks, span{open + 1, i})
		}
	}
	return blocks
}
