// Package blank implements the mutable "blank string" abstraction: a text
// buffer, built from the original source, that overwrites byte ranges with
// whitespace while preserving total length and newline positions.
package blank

import "github.com/t14raptor/ts-erase/ast"

// String owns the original source buffer and a parallel mutable output
// buffer, initialized as a byte-for-byte copy of the input.
//
// Invariants, maintained by every method:
//   - len(out) == len(src) always.
//   - For every newline byte in src, the same position in out is a newline.
//   - A blanked position is an ASCII space, or a preserved newline.
type String struct {
	src []byte
	out []byte
}

// New builds a String over src.
func New(src string) *String {
	out := make([]byte, len(src))
	copy(out, src)
	return &String{src: []byte(src), out: out}
}

// Len returns the length of the buffer, shared by src and out.
func (s *String) Len() int { return len(s.src) }

// Byte returns the original source byte at i.
func (s *String) Byte(i ast.Idx) byte { return s.src[int(i)] }

func (s *String) blankRange(start, end ast.Idx) {
	for i := int(start); i < int(end); i++ {
		if s.src[i] != '\n' {
			s.out[i] = ' '
		}
	}
}

// Blank overwrites out[start:end] with spaces, preserving any newlines.
func (s *String) Blank(start, end ast.Idx) {
	s.blankRange(start, end)
}

// BlankButStartWithSemi blanks [start, end) like Blank, except out[start]
// becomes ';'. Callers must ensure start < end and that src[start] is not a
// newline (blanking across a statement that starts with a blanked newline
// would need the semicolon to land elsewhere; the engine never calls this on
// such a span).
func (s *String) BlankButStartWithSemi(start, end ast.Idx) {
	s.blankRange(start, end)
	s.out[int(start)] = ';'
}

// BlankButEndWithCloseParen blanks [start, end) like Blank, except
// out[end-1] becomes ')'. Callers must ensure start < end and that
// src[end-1] is not a newline: substituting ')' for a preserved newline
// would shift every following line's number, which this package guarantees
// never happens.
func (s *String) BlankButEndWithCloseParen(start, end ast.Idx) {
	s.blankRange(start, end)
	if s.src[int(end)-1] == '\n' {
		panic("blank: BlankButEndWithCloseParen end-1 is a newline")
	}
	s.out[int(end)-1] = ')'
}

// String returns a snapshot of the output buffer.
func (s *String) String() string { return string(s.out) }
