package parser

import (
	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/token"
)

// Type syntax is parsed shallowly, never semantically: these helpers only
// need to find a type expression's byte span (the engine always blanks a
// type span wholesale), so there is no type-expression tree to build. See
// SPEC_FULL.md §10.

// eatOneGreater consumes exactly one '>' character, even when the scanner
// lexed it as part of a longer token ('>>' , '>>>', '>='). This is the
// classic generics-closing trick: re-lex from one byte past the '>' we just
// conceptually consumed, so a run of adjacent '>' characters unwinds one
// nesting level at a time regardless of how they were grouped.
func (p *parser) eatOneGreater() {
	switch p.cur.Kind {
	case token.Greater, token.ShiftRight, token.UShiftRight, token.GreaterOrEqual:
	default:
		p.errorAt(p.cur.Start, "expected '>'")
		return
	}
	p.prevEnd = int(p.cur.Start) + 1
	pos := int(p.cur.Start) + 1
	p.sc.SetRange(pos, len(p.src))
	p.cur = p.sc.Next(false)
	p.newlineBefore = false
}

// skipBalanced consumes a bracketed span starting at the current token (one
// of '(', '[', '{', '<'), counting every opening/closing bracket including
// generic angle brackets, until the matching close.
func (p *parser) skipBalanced() {
	depth := 1
	p.advance()
	for depth > 0 && p.cur.Kind != token.Eof {
		switch p.cur.Kind {
		case token.LeftParenthesis, token.LeftBracket, token.LeftBrace, token.Less:
			depth++
			p.advance()
		case token.RightParenthesis, token.RightBracket, token.RightBrace:
			depth--
			p.advance()
		case token.Greater, token.ShiftRight, token.UShiftRight, token.GreaterOrEqual:
			depth--
			p.eatOneGreater()
		default:
			p.advance()
		}
	}
}

// skipTypeAtomOrPrefix consumes one primary type (an identifier/qualified
// name with optional type arguments, a parenthesized or function type, an
// object/tuple type literal, a literal type, or a prefixed type like
// `keyof T`).
//
// A parenthesized type immediately followed by '=>' is a function type: its
// own arrow is consumed here (recursing into its return type), which is what
// lets a caller further up distinguish it from the arrow of an *enclosing*
// arrow function — the enclosing arrow's '=>' is never directly preceded by
// a paren group this function itself just closed.
func (p *parser) skipTypeAtomOrPrefix() {
	switch {
	case p.isKind(token.LeftParenthesis):
		p.skipBalanced()
		if p.isKind(token.Arrow) {
			p.advance()
			p.skipType()
		}
	case p.isKind(token.LeftBrace), p.isKind(token.LeftBracket):
		p.skipBalanced()
	case p.isKind(token.Template):
		p.advance()
	case p.isKind(token.String), p.isKind(token.Number):
		p.advance()
	case p.is("typeof"), p.is("keyof"), p.is("readonly"), p.is("infer"), p.is("unique"):
		p.advance()
		p.skipTypeAtomOrPrefix()
	case p.is("new"):
		p.advance()
		if p.isKind(token.Less) {
			p.skipBalanced()
		}
		if p.isKind(token.LeftParenthesis) {
			p.skipBalanced()
		}
		if p.isKind(token.Arrow) {
			p.advance()
			p.skipType()
		}
	case p.isKind(token.Identifier) || p.isKind(token.Keyword):
		p.advance()
		for p.isKind(token.Period) {
			p.advance()
			if p.isKind(token.Identifier) || p.isKind(token.Keyword) {
				p.advance()
			}
		}
		if p.isKind(token.Less) {
			p.skipBalanced()
		}
	default:
		if !p.isKind(token.Eof) {
			p.advance()
		}
	}
}

// skipType consumes a complete type expression: a primary type followed by
// any array suffix, indexed-access, union/intersection chain, or
// conditional-type tail.
func (p *parser) skipType() {
	p.skipTypeAtomOrPrefix()
	for {
		switch {
		case p.isKind(token.LeftBracket):
			p.skipBalanced()
		case p.isKind(token.Or), p.isKind(token.And):
			p.advance()
			p.skipTypeAtomOrPrefix()
		case p.is("extends"):
			p.advance()
			p.skipTypeAtomOrPrefix()
			if p.isKind(token.QuestionMark) {
				p.advance()
				p.skipType()
				if p.isKind(token.Colon) {
					p.advance()
					p.skipType()
				}
			}
		default:
			return
		}
	}
}

// parseTypeAnnotation parses `: T` starting at the ':'.
func (p *parser) parseTypeAnnotation() *ast.TypeAnnotation {
	colon := p.cur.Start
	p.advance()
	p.skipType()
	return &ast.TypeAnnotation{Colon: colon, To: ast.Idx(p.prevEnd)}
}

// parseTypeParams parses a `<T extends U = D, ...>` type-parameter list, if
// present. Deliberately records only the opening '<' and the element-list
// span — never the closing '>' — so that the engine must locate it with the
// scanner adapter, matching the external-parser contract of SPEC_FULL.md §6.
func (p *parser) parseTypeParams() *ast.AngleList {
	if !p.isKind(token.Less) {
		return nil
	}
	lessThan := p.cur.Start
	p.advance()
	first := p.cur.Start
	last := first
	for !p.isKind(token.Eof) {
		if p.is("in") || p.is("out") || p.is("const") {
			p.advance()
		}
		if p.isKind(token.Identifier) || p.isKind(token.Keyword) {
			p.advance()
			last = ast.Idx(p.prevEnd)
		}
		if p.is("extends") {
			p.advance()
			p.skipType()
			last = ast.Idx(p.prevEnd)
		}
		if p.isKind(token.Assign) {
			p.advance()
			p.skipType()
			last = ast.Idx(p.prevEnd)
		}
		if p.isKind(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.eatOneGreater()
	return &ast.AngleList{LessThan: lessThan, FirstElemStart: first, LastElemEnd: last}
}

// parseTypeArgs parses a `<T, U>` type-argument list the same way.
func (p *parser) parseTypeArgs() *ast.AngleList {
	lessThan := p.cur.Start
	p.advance()
	first := p.cur.Start
	last := first
	for !p.isKind(token.Eof) && !p.isKind(token.Greater) {
		p.skipType()
		last = ast.Idx(p.prevEnd)
		if p.isKind(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.eatOneGreater()
	return &ast.AngleList{LessThan: lessThan, FirstElemStart: first, LastElemEnd: last}
}

// tryParseTypeArgs speculatively parses a `<...>` type-argument list and
// rolls back unless the token immediately following is consistent with
// accept, resolving the classic '<' ambiguity with the less-than operator.
func (p *parser) tryParseTypeArgs(accept func(token.Token) bool) *ast.AngleList {
	if !p.isKind(token.Less) {
		return nil
	}
	cp := p.mark()
	nerrsBefore := len(p.errors)
	args := p.parseTypeArgs()
	if len(p.errors) > nerrsBefore || !accept(p.cur.Kind) {
		p.restore(cp)
		return nil
	}
	return args
}
