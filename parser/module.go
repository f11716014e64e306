package parser

import (
	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/token"
)

func (p *parser) parseImportDeclaration() ast.Node {
	from := p.cur.Start
	p.advance() // 'import'

	if p.isKind(token.String) { // import "side-effect-only";
		p.advance()
		p.consumeSemicolon()
		return &ast.ImportDeclaration{From: from, To: ast.Idx(p.prevEnd)}
	}

	if p.isNameToken() { // import x = require("mod"); / import x = A.B;
		cp := p.mark()
		p.advance()
		if p.isKind(token.Assign) {
			p.advance()
			p.parseAssignExpr()
			p.consumeSemicolon()
			return &ast.ImportEqualsDeclaration{From: from, To: ast.Idx(p.prevEnd)}
		}
		p.restore(cp)
	}

	typeOnly := false
	if p.is("type") {
		cp := p.mark()
		p.advance()
		if p.isKind(token.LeftBrace) || p.isKind(token.Multiply) || (p.isNameToken() && !p.is("from")) {
			typeOnly = true
		} else {
			p.restore(cp)
		}
	}

	var specifiers []ast.ImportSpecifier
	if p.isNameToken() { // default import
		specStart := p.cur.Start
		p.advance()
		specTo := ast.Idx(p.prevEnd)
		var trailing *ast.Idx
		if p.isKind(token.Comma) {
			c := ast.Idx(p.cur.End)
			trailing = &c
			p.advance()
		}
		specifiers = append(specifiers, ast.ImportSpecifier{From: specStart, To: specTo, TrailingComma: trailing})
	}
	if p.isKind(token.Multiply) { // namespace import
		specStart := p.cur.Start
		p.advance()
		if p.is("as") {
			p.advance()
		}
		if p.isNameToken() {
			p.advance()
		}
		specifiers = append(specifiers, ast.ImportSpecifier{From: specStart, To: ast.Idx(p.prevEnd)})
	} else if p.isKind(token.LeftBrace) {
		p.advance()
		for !p.isKind(token.RightBrace) && !p.isKind(token.Eof) {
			specifiers = append(specifiers, p.parseImportSpecifier())
		}
		p.expect(token.RightBrace)
	}
	if p.is("from") {
		p.advance()
		if p.isKind(token.String) {
			p.advance()
		}
	}
	if p.is("with") || p.is("assert") {
		p.advance()
		if p.isKind(token.LeftBrace) {
			p.skipBalanced()
		}
	}
	p.consumeSemicolon()
	return &ast.ImportDeclaration{From: from, To: ast.Idx(p.prevEnd), TypeOnly: typeOnly, Specifiers: specifiers}
}

func (p *parser) parseImportSpecifier() ast.ImportSpecifier {
	from := p.cur.Start
	typeOnly := false
	if p.is("type") {
		cp := p.mark()
		p.advance()
		if !p.isKind(token.Comma) && !p.isKind(token.RightBrace) && !p.is("as") {
			typeOnly = true
		} else {
			p.restore(cp)
		}
	}
	if p.isNameToken() || p.isKind(token.String) {
		p.advance()
	}
	if p.is("as") {
		p.advance()
		if p.isNameToken() {
			p.advance()
		}
	}
	to := ast.Idx(p.prevEnd)
	var trailing *ast.Idx
	if p.isKind(token.Comma) {
		c := ast.Idx(p.cur.End)
		trailing = &c
		p.advance()
	}
	return ast.ImportSpecifier{From: from, To: to, TypeOnly: typeOnly, TrailingComma: trailing}
}

func (p *parser) parseExportDeclaration() ast.Node {
	from := p.cur.Start
	p.advance() // 'export'

	if p.isKind(token.Assign) { // export = expr;
		p.advance()
		expr := p.parseAssignExpr()
		p.consumeSemicolon()
		return &ast.ExportAssignment{From: from, To: ast.Idx(p.prevEnd), IsEquals: true, Expression: expr}
	}

	if p.is("default") {
		p.advance()
		if p.is("function") {
			return wrapFrom(p.parseFunctionDeclaration(false), from)
		}
		if p.is("async") && p.peekIsAsyncFunctionDecl() {
			p.advance()
			return wrapFrom(p.parseFunctionDeclaration(true), from)
		}
		if p.is("class") {
			return wrapFrom(p.parseClassLiteral(false, nil, nil), from)
		}
		expr := p.parseAssignExpr()
		p.consumeSemicolon()
		return &ast.ExportAssignment{From: from, To: ast.Idx(p.prevEnd), Expression: expr}
	}

	if p.isKind(token.Multiply) {
		p.advance()
		if p.is("as") {
			p.advance()
			if p.isNameToken() {
				p.advance()
			}
		}
		if p.is("from") {
			p.advance()
			if p.isKind(token.String) {
				p.advance()
			}
		}
		p.consumeSemicolon()
		return &ast.ExportDeclaration{From: from, To: ast.Idx(p.prevEnd)}
	}

	typeOnly := false
	if p.is("type") {
		cp := p.mark()
		p.advance()
		if p.isKind(token.LeftBrace) || p.isKind(token.Multiply) {
			typeOnly = true
		} else {
			p.restore(cp)
		}
	}

	if p.isKind(token.LeftBrace) {
		p.advance()
		var specs []ast.ExportSpecifier
		for !p.isKind(token.RightBrace) && !p.isKind(token.Eof) {
			specs = append(specs, p.parseExportSpecifier())
		}
		p.expect(token.RightBrace)
		if p.is("from") {
			p.advance()
			if p.isKind(token.String) {
				p.advance()
			}
		}
		p.consumeSemicolon()
		return &ast.ExportDeclaration{From: from, To: ast.Idx(p.prevEnd), TypeOnly: typeOnly, Specifiers: specs}
	}

	mods := ast.Modifiers{{Kind: ast.ModExport, From: from, To: from + 6}}
	switch {
	case p.is("var") || p.is("let") || p.is("const"):
		if p.is("const") {
			cp := p.mark()
			constIdx := p.cur.Start
			p.advance()
			if p.is("enum") {
				return p.parseEnumDeclaration(constIdx, mods)
			}
			p.restore(cp)
		}
		return p.parseVariableStatement(mods)
	case p.is("function"):
		fn := p.parseFunctionDeclaration(false).(*ast.FunctionDeclaration)
		fn.Modifiers = mods
		fn.From = from
		return fn
	case p.is("async") && p.peekIsAsyncFunctionDecl():
		p.advance()
		fn := p.parseFunctionDeclaration(true).(*ast.FunctionDeclaration)
		fn.Modifiers = mods
		fn.From = from
		return fn
	case p.is("class"):
		return p.parseClassLiteral(false, mods, nil)
	case p.is("abstract"):
		amods := p.parseModifiers()
		return p.parseClassLiteral(false, append(mods, amods...), nil)
	case p.is("interface"):
		return p.parseInterfaceDeclaration(mods)
	case p.is("type"):
		return p.parseTypeAliasDeclaration(mods)
	case p.is("enum"):
		return p.parseEnumDeclaration(0, mods)
	case p.is("namespace") || p.is("module"):
		return p.parseModuleDeclaration(from, mods)
	case p.is("declare"):
		return wrapFrom(p.parseDeclareStatement(), from)
	default:
		p.errorAt(p.cur.Start, "unexpected token after 'export'")
		return &ast.Generic{Kind: "EmptyStatement", From: from, To: ast.Idx(p.prevEnd)}
	}
}

func (p *parser) parseExportSpecifier() ast.ExportSpecifier {
	from := p.cur.Start
	typeOnly := false
	if p.is("type") {
		cp := p.mark()
		p.advance()
		if !p.isKind(token.Comma) && !p.isKind(token.RightBrace) && !p.is("as") {
			typeOnly = true
		} else {
			p.restore(cp)
		}
	}
	if p.isNameToken() || p.isKind(token.String) {
		p.advance()
	}
	if p.is("as") {
		p.advance()
		if p.isNameToken() || p.isKind(token.String) {
			p.advance()
		}
	}
	to := ast.Idx(p.prevEnd)
	var trailing *ast.Idx
	if p.isKind(token.Comma) {
		c := ast.Idx(p.cur.End)
		trailing = &c
		p.advance()
	}
	return ast.ExportSpecifier{From: from, To: to, TypeOnly: typeOnly, TrailingComma: trailing}
}

// wrapFrom extends a declaration's recorded start back to cover a preceding
// `export` keyword.
func wrapFrom(n ast.Node, from ast.Idx) ast.Node {
	switch v := n.(type) {
	case *ast.FunctionDeclaration:
		v.From = from
		return v
	case *ast.ClassDeclaration:
		v.Class = from
		return v
	case *ast.Generic:
		v.From = from
		return v
	default:
		return n
	}
}
