// Package position provides unified source code position tracking for the
// Picto compiler. Every token and parse tree node carries a span so that
// diagnostics can point at the offending source text.
package position

import (
	"fmt"
	"path/filepath"
)

// Position represents a single point in source code.
type Position struct {
	Filename string // Source file name
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Offset   int    // 0-based byte offset in source
}

// IsValid returns true if the position is valid.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns a string representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before returns true if this position comes before other in the same file.
func (p Position) Before(other Position) bool {
	if p.Filename != other.Filename {
		return p.Filename < other.Filename
	}
	return p.Offset < other.Offset
}

// Span represents a range of source code between two positions.
type Span struct {
	Start Position // Starting position (inclusive)
	End   Position // Ending position (exclusive)
}

// IsValid returns true if the span is valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() &&
		s.Start.Filename == s.End.Filename &&
		s.Start.Offset <= s.End.Offset
}

// String returns a string representation of the span.
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s-%d", s.Start, s.End.Column)
	}
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
}

// Contains returns true if the span contains the given position.
func (s Span) Contains(pos Position) bool {
	if !s.IsValid() || !pos.IsValid() || s.Start.Filename != pos.Filename {
		return false
	}
	return s.Start.Offset <= pos.Offset && pos.Offset < s.End.Offset
}

// Union returns a span that encompasses both this span and other.
func (s Span) Union(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() || s.Start.Filename != other.Start.Filename {
		return s
	}
	out := s
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if out.End.Before(other.End) {
		out.End = other.End
	}
	return out
}
