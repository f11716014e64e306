// Package scanner implements the raw lexical scanner shared by the parser
// and by the erasure engine's scanner adapter (which uses it to locate
// tokens, like a generic list's closing '>', that the parse tree does not
// expose directly).
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/token"
)

// Token is one lexical token: its kind and half-open byte range.
type Token struct {
	Kind  token.Token
	Start ast.Idx
	End   ast.Idx
	Lit   string // source text, for identifiers, keywords and private names; empty otherwise
}

// Checkpoint is an opaque scanner position, cheap to save and restore, used
// by the parser for speculative (backtracking) parses.
type Checkpoint struct {
	pos int
}

// Scanner tokenizes a source string, addressing everything by byte offset
// (no line/column table is kept: every downstream consumer in this module
// addresses source purely by byte offset).
type Scanner struct {
	src  string
	pos  int
	end  int // SetRange upper bound; len(src) by default
}

// New creates a Scanner over the full source string.
func New(src string) *Scanner {
	return &Scanner{src: src, pos: 0, end: len(src)}
}

// SetRange restricts scanning to [start, end) and positions the scanner at
// start. Used by the scanner adapter to hunt for a token within a specific
// span without disturbing a parser's own scanner state.
func (s *Scanner) SetRange(start, end int) {
	s.pos = start
	s.end = end
}

// Offset returns the scanner's current byte position.
func (s *Scanner) Offset() ast.Idx { return ast.Idx(s.pos) }

// Checkpoint captures the current position.
func (s *Scanner) Checkpoint() Checkpoint { return Checkpoint{pos: s.pos} }

// Rewind restores a previously captured position.
func (s *Scanner) Rewind(c Checkpoint) { s.pos = c.pos }

func (s *Scanner) peekByte() byte {
	if s.pos >= s.end {
		return 0
	}
	return s.src[s.pos]
}

func (s *Scanner) peekByteAt(off int) byte {
	if s.pos+off >= s.end {
		return 0
	}
	return s.src[s.pos+off]
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || unicode.IsLetter(rune(b)) || b >= utf8.RuneSelf
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// skipTrivia consumes whitespace and comments, never surfacing them as
// tokens.
func (s *Scanner) skipTrivia() {
	for s.pos < s.end {
		b := s.src[s.pos]
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f':
			s.pos++
		case b == '/' && s.peekByteAt(1) == '/':
			for s.pos < s.end && s.src[s.pos] != '\n' {
				s.pos++
			}
		case b == '/' && s.peekByteAt(1) == '*':
			s.pos += 2
			for s.pos < s.end && !(s.src[s.pos] == '*' && s.peekByteAt(1) == '/') {
				s.pos++
			}
			if s.pos < s.end {
				s.pos += 2
			}
		default:
			return
		}
	}
}

// Next scans and returns the next token, skipping leading trivia.
//
// regexAllowed tells the scanner whether a leading '/' should be scanned as
// the start of a regular-expression literal (true after most operators and
// at statement start) or as the division/assign-division operator (false
// after an identifier, literal, or closing bracket).
func (s *Scanner) Next(regexAllowed bool) Token {
	s.skipTrivia()
	start := s.pos
	if s.pos >= s.end {
		return Token{Kind: token.Eof, Start: ast.Idx(start), End: ast.Idx(start)}
	}

	b := s.src[s.pos]
	switch {
	case isIdentStart(b):
		return s.scanIdentifier(start)
	case isDigit(b) || (b == '.' && isDigit(s.peekByteAt(1))):
		return s.scanNumber(start)
	case b == '"' || b == '\'':
		return s.scanString(start, b)
	case b == '`':
		return s.scanTemplate(start)
	case b == '/' && regexAllowed:
		return s.scanRegex(start)
	case b == '#':
		return s.scanPrivateName(start)
	default:
		return s.scanPunct(start)
	}
}

// scanPrivateName scans a `#name` private class-member reference as a single
// token.
func (s *Scanner) scanPrivateName(start int) Token {
	s.pos++
	for s.pos < s.end && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	return Token{Kind: token.PrivateName, Start: ast.Idx(start), End: ast.Idx(s.pos), Lit: s.src[start:s.pos]}
}

func (s *Scanner) scanIdentifier(start int) Token {
	s.pos++
	for s.pos < s.end && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	lit := s.src[start:s.pos]
	kind := token.Identifier
	if _, ok := token.Lookup(lit); ok {
		kind = token.Keyword
	}
	return Token{Kind: kind, Start: ast.Idx(start), End: ast.Idx(s.pos), Lit: lit}
}

func (s *Scanner) scanNumber(start int) Token {
	if s.src[s.pos] == '0' && (s.peekByteAt(1) == 'x' || s.peekByteAt(1) == 'X' ||
		s.peekByteAt(1) == 'b' || s.peekByteAt(1) == 'B' || s.peekByteAt(1) == 'o' || s.peekByteAt(1) == 'O') {
		s.pos += 2
		for s.pos < s.end && (isIdentPart(s.src[s.pos])) {
			s.pos++
		}
		return Token{Kind: token.Number, Start: ast.Idx(start), End: ast.Idx(s.pos)}
	}
	for s.pos < s.end && (isDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
		s.pos++
	}
	if s.pos < s.end && s.src[s.pos] == '.' {
		s.pos++
		for s.pos < s.end && (isDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
			s.pos++
		}
	}
	if s.pos < s.end && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		s.pos++
		if s.pos < s.end && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
			s.pos++
		}
		for s.pos < s.end && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	if s.pos < s.end && s.src[s.pos] == 'n' { // BigInt suffix
		s.pos++
	}
	return Token{Kind: token.Number, Start: ast.Idx(start), End: ast.Idx(s.pos)}
}

func (s *Scanner) scanString(start int, quote byte) Token {
	s.pos++
	for s.pos < s.end {
		b := s.src[s.pos]
		if b == '\\' {
			s.pos += 2
			continue
		}
		if b == quote {
			s.pos++
			break
		}
		s.pos++
	}
	return Token{Kind: token.String, Start: ast.Idx(start), End: ast.Idx(s.pos)}
}

// scanTemplate scans an entire template literal, including nested
// `${ ... }` substitutions, as a single token. Position tracking elsewhere in
// this module never needs to look inside a template literal's quasis.
func (s *Scanner) scanTemplate(start int) Token {
	s.pos++
	depth := 0
	for s.pos < s.end {
		b := s.src[s.pos]
		switch {
		case b == '\\':
			s.pos += 2
			continue
		case b == '`' && depth == 0:
			s.pos++
			return Token{Kind: token.Template, Start: ast.Idx(start), End: ast.Idx(s.pos)}
		case b == '$' && s.peekByteAt(1) == '{':
			depth++
			s.pos += 2
			// Skip the substitution expression by brace-matching. Strings
			// and nested templates inside it are skipped as whole tokens;
			// comments are not recognized here, so a brace inside a comment
			// in a substitution is counted.
			braceDepth := 1
			for s.pos < s.end && braceDepth > 0 {
				switch s.src[s.pos] {
				case '{':
					braceDepth++
				case '}':
					braceDepth--
				case '"', '\'':
					tmp := s.scanString(s.pos, s.src[s.pos])
					s.pos = int(tmp.End)
					continue
				case '`':
					tmp := s.scanTemplate(s.pos)
					s.pos = int(tmp.End)
					continue
				}
				s.pos++
			}
			depth--
			continue
		default:
			s.pos++
		}
	}
	return Token{Kind: token.Template, Start: ast.Idx(start), End: ast.Idx(s.pos)}
}

func (s *Scanner) scanRegex(start int) Token {
	s.pos++
	inClass := false
	for s.pos < s.end {
		b := s.src[s.pos]
		if b == '\\' {
			s.pos += 2
			continue
		}
		if b == '[' {
			inClass = true
		} else if b == ']' {
			inClass = false
		} else if b == '/' && !inClass {
			s.pos++
			break
		} else if b == '\n' {
			break
		}
		s.pos++
	}
	for s.pos < s.end && isIdentPart(s.src[s.pos]) { // flags
		s.pos++
	}
	return Token{Kind: token.Regex, Start: ast.Idx(start), End: ast.Idx(s.pos)}
}

// puncts is ordered longest-match-first.
var puncts = []struct {
	lit  string
	kind token.Token
}{
	{">>>=", token.UShiftRightAssign},
	{"...", token.Ellipsis},
	{"===", token.StrictEqual},
	{"!==", token.StrictNotEqual},
	{"**=", token.ExponentAssign},
	{"<<=", token.ShiftLeftAssign},
	{">>=", token.ShiftRightAssign},
	{">>>", token.UShiftRight},
	{"&&=", token.LogicalAndAssign},
	{"||=", token.LogicalOrAssign},
	{"??=", token.CoalesceAssign},
	{"=>", token.Arrow},
	{"==", token.Equal},
	{"!=", token.NotEqual},
	{"<=", token.LessOrEqual},
	{">=", token.GreaterOrEqual},
	{"&&", token.LogicalAnd},
	{"||", token.LogicalOr},
	{"??", token.Coalesce},
	{"?.", token.QuestionDot},
	{"++", token.Increment},
	{"--", token.Decrement},
	{"**", token.Exponent},
	{"<<", token.ShiftLeft},
	{">>", token.ShiftRight},
	{"+=", token.AddAssign},
	{"-=", token.SubtractAssign},
	{"*=", token.MultiplyAssign},
	{"/=", token.QuotientAssign},
	{"%=", token.RemainderAssign},
	{"&=", token.AndAssign},
	{"|=", token.OrAssign},
	{"^=", token.ExclusiveOrAssign},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Multiply},
	{"/", token.Slash},
	{"%", token.Remainder},
	{"&", token.And},
	{"|", token.Or},
	{"^", token.ExclusiveOr},
	{"~", token.BitwiseNot},
	{"!", token.Not},
	{"<", token.Less},
	{">", token.Greater},
	{"=", token.Assign},
	{"(", token.LeftParenthesis},
	{")", token.RightParenthesis},
	{"[", token.LeftBracket},
	{"]", token.RightBracket},
	{"{", token.LeftBrace},
	{"}", token.RightBrace},
	{",", token.Comma},
	{".", token.Period},
	{";", token.Semicolon},
	{":", token.Colon},
	{"?", token.QuestionMark},
	{"@", token.At},
}

func (s *Scanner) scanPunct(start int) Token {
	rest := s.src[s.pos:s.end]
	for _, p := range puncts {
		if strings.HasPrefix(rest, p.lit) {
			s.pos += len(p.lit)
			return Token{Kind: p.kind, Start: ast.Idx(start), End: ast.Idx(s.pos)}
		}
	}
	s.pos++
	return Token{Kind: token.Illegal, Start: ast.Idx(start), End: ast.Idx(s.pos)}
}
