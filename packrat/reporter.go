package packrat

import (
	"strings"

	"github.com/dekarrin/rosed"
)

// locate converts a byte offset into 1-indexed (line, col) plus the full
// text of the line it falls on, in the style of the line/pos bookkeeping a
// hand-written tokenizer keeps alongside each lexeme.
func locate(text string, offset int) (line, col int, sourceLine string) {
	if len(text) == 0 {
		return 0, 0, ""
	}
	if offset > len(text) {
		offset = len(text)
	}

	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	lineEnd := strings.IndexByte(text[lineStart:], '\n')
	if lineEnd == -1 {
		sourceLine = text[lineStart:]
	} else {
		sourceLine = text[lineStart : lineStart+lineEnd]
	}

	col = offset - lineStart + 1
	return line, col, sourceLine
}

// newParseFailure builds a ParseFailure diagnosing a failed parse whose
// furthest-reached offset was extent.
func newParseFailure(text string, extent int) *ParseFailure {
	line, col, srcLine := locate(text, extent)
	return &ParseFailure{Offset: extent, Line: line, Col: col, SourceLine: srcLine}
}

// frameFailure renders pf as the offending source line with a cursor
// pointing at the failure column directly beneath it, followed by the
// one-line diagnosis — the same two-part shape tunascript's SyntaxError uses
// for FullMessage, wrapped to a reasonable terminal width via rosed.
func frameFailure(pf *ParseFailure) string {
	if pf.Line == 0 {
		return pf.Error()
	}

	cursor := strings.Repeat(" ", pf.Col-1) + "^"
	framed := pf.SourceLine + "\n" + cursor + "\n" + pf.Error()

	return rosed.Edit(framed).Wrap(100).String()
}
