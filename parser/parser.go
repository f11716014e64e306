// Package parser implements the recursive-descent parser that produces the
// ast.Program the erasure engine consumes. See SPEC_FULL.md §10.
package parser

import (
	"fmt"
	"strings"

	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/parser/scanner"
	"github.com/t14raptor/ts-erase/token"
)

// SyntaxError is one parse failure, with its byte offset for diagnostics.
type SyntaxError struct {
	Pos     ast.Idx
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", e.Pos, e.Message)
}

type parser struct {
	src string
	sc  *scanner.Scanner

	cur            scanner.Token
	newlineBefore  bool // true if a newline appears between the previous token and cur
	prevEnd        int

	errors []error

	recover struct {
		depth int
	}
}

// Parse parses src as a TypeScript-syntax superset of JavaScript and returns
// the resulting syntax tree. A non-nil error aggregates every syntax error
// encountered; the parser resynchronizes after each one and keeps going, so
// a best-effort tree is still returned alongside the error.
func Parse(src string) (*ast.Program, error) {
	p := &parser{src: src, sc: scanner.New(src)}
	p.advance()
	body := p.parseStatementList(token.Eof)
	prog := &ast.Program{Body: body}
	if len(p.errors) > 0 {
		msgs := make([]string, len(p.errors))
		for i, e := range p.errors {
			msgs[i] = e.Error()
		}
		return prog, fmt.Errorf("parse errors:\n%s", strings.Join(msgs, "\n"))
	}
	return prog, nil
}

// regexAllowedAfter reports whether a '/' following this token kind should be
// scanned as the start of a regex literal rather than a division operator.
func regexAllowedAfter(k token.Token) bool {
	switch k {
	case token.Identifier, token.Number, token.String, token.Template, token.Regex,
		token.RightParenthesis, token.RightBracket, token.RightBrace:
		return false
	}
	return true
}

func (p *parser) advance() {
	prevEnd := int(p.cur.End)
	regexAllowed := regexAllowedAfter(p.cur.Kind)
	p.cur = p.sc.Next(regexAllowed)
	p.newlineBefore = strings.ContainsRune(p.src[min(prevEnd, int(p.cur.Start)):p.cur.Start], '\n')
	p.prevEnd = prevEnd
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (p *parser) is(lit string) bool {
	return (p.cur.Kind == token.Keyword || p.cur.Kind == token.Identifier) && p.cur.Lit == lit
}

func (p *parser) isKind(k token.Token) bool { return p.cur.Kind == k }

func (p *parser) errorAt(pos ast.Idx, format string, args ...any) {
	p.errors = append(p.errors, &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// expect consumes the current token if it has kind k, else records an error
// and resynchronizes (panic-mode: skip to the next ';' or '}' at the current
// nesting depth, mirroring the reference parser's recover bookkeeping).
func (p *parser) expect(k token.Token) scanner.Token {
	tok := p.cur
	if tok.Kind != k {
		p.errorAt(tok.Start, "expected %s, got %s", k, tok.Kind)
		p.resync()
		return tok
	}
	p.advance()
	return tok
}

func (p *parser) resync() {
	depth := 0
	for p.cur.Kind != token.Eof {
		switch p.cur.Kind {
		case token.LeftBrace, token.LeftParenthesis, token.LeftBracket:
			depth++
		case token.RightBrace, token.RightParenthesis, token.RightBracket:
			if depth == 0 {
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// checkpoint/restore let callers speculatively parse ahead (generics vs.
// comparison, arrow-function vs. parenthesized expression) and back out.
type checkpoint struct {
	sc            scanner.Checkpoint
	cur           scanner.Token
	newlineBefore bool
	prevEnd       int
	nerrs         int
}

func (p *parser) mark() checkpoint {
	return checkpoint{sc: p.sc.Checkpoint(), cur: p.cur, newlineBefore: p.newlineBefore, prevEnd: p.prevEnd, nerrs: len(p.errors)}
}

func (p *parser) restore(c checkpoint) {
	p.sc.Rewind(c.sc)
	p.cur = c.cur
	p.newlineBefore = c.newlineBefore
	p.prevEnd = c.prevEnd
	p.errors = p.errors[:c.nerrs]
}

// consumeSemicolon implements ASI: an explicit ';' is consumed if present;
// otherwise a line break, '}', or EOF terminates the statement implicitly.
func (p *parser) consumeSemicolon() (hasSemi bool) {
	if p.cur.Kind == token.Semicolon {
		p.advance()
		return true
	}
	if p.cur.Kind == token.RightBrace || p.cur.Kind == token.Eof || p.newlineBefore {
		return false
	}
	p.errorAt(p.cur.Start, "expected ';'")
	return false
}
