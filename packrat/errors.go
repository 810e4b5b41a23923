package packrat

import "fmt"

// ParseFailure reports that the start rule did not match the input. It
// carries the furthest offset any rule successfully reached as the best
// available diagnosis of where things went wrong.
type ParseFailure struct {
	// Offset is the furthest byte offset into the source any operator
	// successfully matched to.
	Offset int

	// Line and Col locate Offset within the source, both 1-indexed. Both
	// are zero if the source was empty.
	Line, Col int

	// SourceLine is the full text of the line Offset falls on, or empty if
	// the source was empty.
	SourceLine string
}

func (pf *ParseFailure) Error() string {
	if pf.Line == 0 {
		return "parse error: no input matched"
	}
	return fmt.Sprintf("parse error: at line %d, char %d: start rule did not match", pf.Line, pf.Col)
}

// FullMessage renders the same diagnosis as Error, framed with the offending
// source line and a cursor pointing at the failure column, in the manner of
// a compiler error listing.
func (pf *ParseFailure) FullMessage() string {
	return frameFailure(pf)
}
