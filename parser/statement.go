package parser

import (
	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/token"
)

func (p *parser) parseStatementList(stop token.Token) []ast.Node {
	var list []ast.Node
	for !p.isKind(stop) && !p.isKind(token.Eof) {
		list = append(list, p.parseStatement())
	}
	return list
}

// parseBlock parses a `{ ... }` block as a generic statement-list container;
// blocks have no erasure rule of their own.
func (p *parser) parseBlock() ast.Node {
	from := p.cur.Start
	p.expect(token.LeftBrace)
	body := p.parseStatementList(token.RightBrace)
	to := ast.Idx(p.cur.End)
	p.expect(token.RightBrace)
	return &ast.Generic{Kind: "BlockStatement", From: from, To: to, Kids: body}
}

func (p *parser) parseDecorator() *ast.Decorator {
	at := p.cur.Start
	p.advance()
	expr := p.parsePostfix()
	// A decorator's expression may itself be a call: `@foo(a, b)`. parsePostfix
	// already folds call/member chains, so nothing further is needed here.
	return &ast.Decorator{At: at, To: expr.End(), Expr: expr}
}

var modifierWords = map[string]ast.ModifierKind{
	"public": ast.ModPublic, "private": ast.ModPrivate, "protected": ast.ModProtected,
	"abstract": ast.ModAbstract, "override": ast.ModOverride, "declare": ast.ModDeclare,
	"readonly": ast.ModReadonly, "static": ast.ModStatic, "async": ast.ModAsync,
	"accessor": ast.ModAccessor,
}

// peekIsMemberBoundary reports whether the token after the current one looks
// like the end of a member's name (so the current modifier-looking word is
// actually the member name itself, e.g. `class C { static() {} }`).
func (p *parser) peekIsMemberBoundary() bool {
	cp := p.mark()
	p.advance()
	boundary := p.isKind(token.LeftParenthesis) || p.isKind(token.Colon) || p.isKind(token.Assign) ||
		p.isKind(token.Semicolon) || p.isKind(token.RightBrace) || p.isKind(token.QuestionMark) ||
		p.isKind(token.Not) || p.isKind(token.Less)
	p.restore(cp)
	return boundary
}

// parseModifiers consumes a run of modifier keywords, in class-member or
// parameter position, stopping before the member/parameter name.
func (p *parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	for {
		if !(p.cur.Kind == token.Keyword || p.cur.Kind == token.Identifier) {
			return mods
		}
		kind, ok := modifierWords[p.cur.Lit]
		if !ok || p.peekIsMemberBoundary() {
			return mods
		}
		mods = append(mods, ast.Modifier{Kind: kind, From: p.cur.Start, To: p.cur.End})
		p.advance()
	}
}

func (p *parser) parseParameter() *ast.Parameter {
	from := p.cur.Start
	var decorators []*ast.Decorator
	for p.isKind(token.At) {
		decorators = append(decorators, p.parseDecorator())
	}
	mods := p.parseModifiers()
	if p.isKind(token.Ellipsis) {
		p.advance()
	}
	isThis := p.is("this")
	name := p.parseBindingTarget()
	var optional *ast.Idx
	if p.isKind(token.QuestionMark) {
		pos := p.cur.Start
		optional = &pos
		p.advance()
	}
	var typeAnn *ast.TypeAnnotation
	if p.isKind(token.Colon) {
		typeAnn = p.parseTypeAnnotation()
	}
	var init ast.Node
	if p.isKind(token.Assign) {
		p.advance()
		init = p.parseAssignExpr()
	}
	to := ast.Idx(p.prevEnd)
	return &ast.Parameter{
		From: from, To: to, IsThisParam: isThis, Modifiers: mods,
		Decorators: decorators, Name: name, Optional: optional,
		TypeAnnotation: typeAnn, Initializer: init,
	}
}

func (p *parser) parseParameterList() ast.ParameterList {
	open := p.cur.Start
	p.expect(token.LeftParenthesis)
	var list []*ast.Parameter
	for !p.isKind(token.RightParenthesis) && !p.isKind(token.Eof) {
		param := p.parseParameter()
		if p.isKind(token.Comma) {
			commaEnd := ast.Idx(p.cur.End)
			param.TrailingComma = &commaEnd
			p.advance()
			list = append(list, param)
			continue
		}
		list = append(list, param)
		break
	}
	closing := p.cur.Start
	p.expect(token.RightParenthesis)
	return ast.ParameterList{Opening: open, Closing: closing, List: list}
}

func (p *parser) parseBindingTarget() ast.Node {
	switch {
	case p.isKind(token.LeftBracket):
		from := p.cur.Start
		p.advance()
		var kids []ast.Node
		for !p.isKind(token.RightBracket) && !p.isKind(token.Eof) {
			if p.isKind(token.Comma) {
				p.advance()
				continue
			}
			if p.isKind(token.Ellipsis) {
				p.advance()
			}
			el := p.parseBindingTarget()
			if p.isKind(token.Colon) { // type annotation inside a nested pattern position is rare; tolerate it
				el = &ast.Generic{Kind: "TypedBinding", From: el.Start(), To: p.parseTypeAnnotation().End(), Kids: []ast.Node{el}}
			}
			if p.isKind(token.Assign) {
				p.advance()
				def := p.parseAssignExpr()
				el = &ast.Generic{Kind: "AssignmentPattern", From: el.Start(), To: def.End(), Kids: []ast.Node{el, def}}
			}
			kids = append(kids, el)
			if p.isKind(token.Comma) {
				p.advance()
			}
		}
		to := ast.Idx(p.cur.End)
		p.expect(token.RightBracket)
		return &ast.Generic{Kind: "ArrayPattern", From: from, To: to, Kids: kids}
	case p.isKind(token.LeftBrace):
		from := p.cur.Start
		p.advance()
		var kids []ast.Node
		for !p.isKind(token.RightBrace) && !p.isKind(token.Eof) {
			if p.isKind(token.Ellipsis) {
				p.advance()
			}
			var key ast.Node
			if p.isKind(token.LeftBracket) {
				p.advance()
				key = p.parseAssignExpr()
				p.expect(token.RightBracket)
			} else {
				keyStart := p.cur.Start
				lit := p.cur.Lit
				p.advance()
				key = &ast.Identifier{NameStart: keyStart, Name: lit}
			}
			val := key
			if p.isKind(token.Colon) {
				p.advance()
				val = p.parseBindingTarget()
			}
			if p.isKind(token.Assign) {
				p.advance()
				def := p.parseAssignExpr()
				val = &ast.Generic{Kind: "AssignmentPattern", From: val.Start(), To: def.End(), Kids: []ast.Node{val, def}}
			}
			kids = append(kids, val)
			if p.isKind(token.Comma) {
				p.advance()
			}
		}
		to := ast.Idx(p.cur.End)
		p.expect(token.RightBrace)
		return &ast.Generic{Kind: "ObjectPattern", From: from, To: to, Kids: kids}
	default:
		nameStart := p.cur.Start
		lit := p.cur.Lit
		if p.isNameToken() {
			p.advance()
		} else {
			p.errorAt(p.cur.Start, "expected a binding name")
		}
		return &ast.Identifier{NameStart: nameStart, Name: lit}
	}
}

// parseStatement dispatches on the current token to the right statement
// form. Constructs with no erasure rule of their own are parsed into a
// Generic node, recursing only as needed to find nested expressions; the few
// constructs the engine treats specially get their own concrete type.
func (p *parser) parseStatement() ast.Node {
	var decorators []*ast.Decorator
	for p.isKind(token.At) {
		decorators = append(decorators, p.parseDecorator())
	}
	if len(decorators) > 0 {
		if p.is("export") || p.is("class") {
			return p.parseClassOrExportWithDecorators(decorators)
		}
		// Decorators can only precede a class (or export) in standard syntax;
		// recover by dropping them and parsing the statement that follows.
		return p.parseStatement()
	}

	switch {
	case p.isKind(token.LeftBrace):
		return p.parseBlock()
	case p.is("var") || p.is("let") || p.is("const"):
		return p.parseVariableStatementMaybeEnum()
	case p.is("function"):
		return p.parseFunctionDeclaration(false)
	case p.is("async"):
		if p.peekIsAsyncFunctionDecl() {
			p.advance()
			return p.parseFunctionDeclaration(true)
		}
		return p.parseExpressionStatement()
	case p.is("class"):
		return p.parseClassLiteral(false, nil, nil)
	case p.is("abstract"):
		mods := p.parseModifiers()
		return p.parseClassLiteral(false, mods, nil)
	case p.is("interface"):
		return p.parseInterfaceDeclaration(nil)
	case p.is("type") && p.peekIsTypeAliasStart():
		return p.parseTypeAliasDeclaration(nil)
	case p.is("enum"):
		return p.parseEnumDeclaration(0, nil)
	case (p.is("namespace") || p.is("module")) && p.peekIsModuleStart():
		return p.parseModuleDeclaration(0, nil)
	case p.is("declare"):
		return p.parseDeclareStatement()
	case p.is("import"):
		return p.parseImportDeclaration()
	case p.is("export"):
		return p.parseExportDeclaration()
	case p.is("if"):
		return p.parseIfStatement()
	case p.is("for"):
		return p.parseForStatement()
	case p.is("while"):
		return p.parseWhileStatement()
	case p.is("do"):
		return p.parseDoWhileStatement()
	case p.is("switch"):
		return p.parseSwitchStatement()
	case p.is("try"):
		return p.parseTryStatement()
	case p.is("throw"):
		return p.parseThrowStatement()
	case p.is("return"):
		return p.parseReturnStatement()
	case p.is("break"):
		return p.parseBreakContinue("BreakStatement")
	case p.is("continue"):
		return p.parseBreakContinue("ContinueStatement")
	case p.is("debugger"):
		from := p.cur.Start
		p.advance()
		p.consumeSemicolon()
		return &ast.Generic{Kind: "DebuggerStatement", From: from, To: ast.Idx(p.prevEnd)}
	case p.is("with"):
		return p.parseWithStatement()
	case p.isKind(token.Semicolon):
		from := p.cur.Start
		p.advance()
		return &ast.Generic{Kind: "EmptyStatement", From: from, To: ast.Idx(p.prevEnd)}
	default:
		if p.isNameToken() {
			if n, ok := p.tryParseLabelledStatement(); ok {
				return n
			}
		}
		return p.parseExpressionStatement()
	}
}

func (p *parser) peekIsAsyncFunctionDecl() bool {
	cp := p.mark()
	p.advance()
	ok := !p.newlineBefore && p.is("function")
	p.restore(cp)
	return ok
}

func (p *parser) peekIsTypeAliasStart() bool {
	cp := p.mark()
	p.advance()
	ok := p.isNameToken()
	p.restore(cp)
	return ok
}

func (p *parser) peekIsModuleStart() bool {
	cp := p.mark()
	p.advance()
	ok := p.isNameToken() || p.isKind(token.String)
	p.restore(cp)
	return ok
}

func (p *parser) tryParseLabelledStatement() (ast.Node, bool) {
	cp := p.mark()
	from := p.cur.Start
	p.advance()
	if !p.isKind(token.Colon) {
		p.restore(cp)
		return nil, false
	}
	p.advance()
	body := p.parseStatement()
	return &ast.Generic{Kind: "LabeledStatement", From: from, To: body.End(), Kids: []ast.Node{body}}, true
}

func (p *parser) parseExpressionStatement() ast.Node {
	expr := p.parseExpression()
	hasSemi := p.consumeSemicolon()
	to := expr.End()
	if hasSemi {
		to = ast.Idx(p.prevEnd)
	}
	return &ast.ExpressionStatement{Expression: expr, To: to, HasSemi: hasSemi}
}

// parseVariableStatementMaybeEnum handles the `const enum X {}` surface form,
// which starts with the `const` keyword but is an EnumDeclaration, not a
// VariableStatement.
func (p *parser) parseVariableStatementMaybeEnum() ast.Node {
	if p.is("const") {
		cp := p.mark()
		constIdx := p.cur.Start
		p.advance()
		if p.is("enum") {
			return p.parseEnumDeclaration(constIdx, nil)
		}
		p.restore(cp)
	}
	return p.parseVariableStatement(nil)
}

var declToken = map[string]token.Token{"var": token.Var, "let": token.Let, "const": token.Const}

func (p *parser) parseVariableStatement(mods ast.Modifiers) ast.Node {
	from := p.cur.Start
	if len(mods) > 0 {
		from = mods[0].From
	}
	tk := declToken[p.cur.Lit]
	p.advance()
	var list []*ast.VariableDeclarator
	for {
		list = append(list, p.parseVariableDeclarator())
		if p.isKind(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.consumeSemicolon()
	return &ast.VariableStatement{From: from, To: ast.Idx(p.prevEnd), Token: tk, Modifiers: mods, List: list}
}

func (p *parser) parseVariableDeclarator() *ast.VariableDeclarator {
	target := p.parseBindingTarget()
	var excl *ast.Idx
	if p.isKind(token.Not) {
		pos := p.cur.Start
		excl = &pos
		p.advance()
	}
	var typeAnn *ast.TypeAnnotation
	if p.isKind(token.Colon) {
		typeAnn = p.parseTypeAnnotation()
	}
	var init ast.Node
	if p.isKind(token.Assign) {
		p.advance()
		init = p.parseAssignExpr()
	}
	return &ast.VariableDeclarator{Target: target, Exclamation: excl, TypeAnnotation: typeAnn, Initializer: init}
}

func (p *parser) parseIfStatement() ast.Node {
	from := p.cur.Start
	p.advance()
	p.expect(token.LeftParenthesis)
	cond := p.parseExpression()
	p.expect(token.RightParenthesis)
	then := p.parseStatement()
	kids := []ast.Node{cond, then}
	to := then.End()
	if p.is("else") {
		p.advance()
		els := p.parseStatement()
		kids = append(kids, els)
		to = els.End()
	}
	return &ast.Generic{Kind: "IfStatement", From: from, To: to, Kids: kids}
}

func (p *parser) parseForStatement() ast.Node {
	from := p.cur.Start
	p.advance()
	p.expect(token.LeftParenthesis)
	var kids []ast.Node
	if !p.isKind(token.Semicolon) {
		if p.is("var") || p.is("let") || p.is("const") {
			tk := declToken[p.cur.Lit]
			declFrom := p.cur.Start
			p.advance()
			first := p.parseBindingTarget()
			var firstTypeAnn *ast.TypeAnnotation
			if p.isKind(token.Colon) {
				firstTypeAnn = p.parseTypeAnnotation()
			}
			if p.is("in") || p.is("of") {
				decl := &ast.VariableDeclarator{Target: first, TypeAnnotation: firstTypeAnn}
				kids = append(kids, &ast.VariableStatement{From: declFrom, To: first.End(), Token: tk, List: []*ast.VariableDeclarator{decl}})
				p.advance()
				right := p.parseAssignExpr()
				kids = append(kids, right)
				p.expect(token.RightParenthesis)
				body := p.parseStatement()
				kids = append(kids, body)
				return &ast.Generic{Kind: "ForInOfStatement", From: from, To: body.End(), Kids: kids}
			}
			var init ast.Node
			if p.isKind(token.Assign) {
				p.advance()
				init = p.parseAssignExpr()
			}
			decls := []*ast.VariableDeclarator{{Target: first, TypeAnnotation: firstTypeAnn, Initializer: init}}
			for p.isKind(token.Comma) {
				p.advance()
				decls = append(decls, p.parseVariableDeclarator())
			}
			kids = append(kids, &ast.VariableStatement{From: declFrom, To: ast.Idx(p.prevEnd), Token: tk, List: decls})
		} else {
			first := p.parseExpression()
			if p.is("in") || p.is("of") {
				kids = append(kids, first)
				p.advance()
				right := p.parseAssignExpr()
				kids = append(kids, right)
				p.expect(token.RightParenthesis)
				body := p.parseStatement()
				kids = append(kids, body)
				return &ast.Generic{Kind: "ForInOfStatement", From: from, To: body.End(), Kids: kids}
			}
			kids = append(kids, first)
		}
	}
	p.expect(token.Semicolon)
	if !p.isKind(token.Semicolon) {
		kids = append(kids, p.parseExpression())
	}
	p.expect(token.Semicolon)
	if !p.isKind(token.RightParenthesis) {
		kids = append(kids, p.parseExpression())
	}
	p.expect(token.RightParenthesis)
	body := p.parseStatement()
	kids = append(kids, body)
	return &ast.Generic{Kind: "ForStatement", From: from, To: body.End(), Kids: kids}
}

func (p *parser) parseWhileStatement() ast.Node {
	from := p.cur.Start
	p.advance()
	p.expect(token.LeftParenthesis)
	cond := p.parseExpression()
	p.expect(token.RightParenthesis)
	body := p.parseStatement()
	return &ast.Generic{Kind: "WhileStatement", From: from, To: body.End(), Kids: []ast.Node{cond, body}}
}

func (p *parser) parseDoWhileStatement() ast.Node {
	from := p.cur.Start
	p.advance()
	body := p.parseStatement()
	if !p.is("while") {
		p.errorAt(p.cur.Start, "expected 'while'")
	} else {
		p.advance()
	}
	p.expect(token.LeftParenthesis)
	cond := p.parseExpression()
	p.expect(token.RightParenthesis)
	p.consumeSemicolon()
	return &ast.Generic{Kind: "DoWhileStatement", From: from, To: ast.Idx(p.prevEnd), Kids: []ast.Node{body, cond}}
}

func (p *parser) parseSwitchStatement() ast.Node {
	from := p.cur.Start
	p.advance()
	p.expect(token.LeftParenthesis)
	disc := p.parseExpression()
	p.expect(token.RightParenthesis)
	p.expect(token.LeftBrace)
	kids := []ast.Node{disc}
	for !p.isKind(token.RightBrace) && !p.isKind(token.Eof) {
		caseFrom := p.cur.Start
		var test ast.Node
		if p.is("case") {
			p.advance()
			test = p.parseExpression()
		} else {
			p.advance() // 'default'
		}
		p.expect(token.Colon)
		var body []ast.Node
		for !p.is("case") && !p.is("default") && !p.isKind(token.RightBrace) && !p.isKind(token.Eof) {
			body = append(body, p.parseStatement())
		}
		caseKids := body
		if test != nil {
			caseKids = append([]ast.Node{test}, body...)
		}
		to := ast.Idx(p.prevEnd)
		kids = append(kids, &ast.Generic{Kind: "SwitchCase", From: caseFrom, To: to, Kids: caseKids})
	}
	to := ast.Idx(p.cur.End)
	p.expect(token.RightBrace)
	return &ast.Generic{Kind: "SwitchStatement", From: from, To: to, Kids: kids}
}

func (p *parser) parseTryStatement() ast.Node {
	from := p.cur.Start
	p.advance()
	block := p.parseBlock()
	kids := []ast.Node{block}
	to := block.End()
	if p.is("catch") {
		p.advance()
		var param ast.Node
		if p.isKind(token.LeftParenthesis) {
			p.advance()
			param = p.parseBindingTarget()
			if p.isKind(token.Colon) {
				typeAnn := p.parseTypeAnnotation()
				param = &ast.Generic{Kind: "TypedBinding", From: param.Start(), To: typeAnn.End(), Kids: []ast.Node{param}}
			}
			p.expect(token.RightParenthesis)
		}
		handlerBody := p.parseBlock()
		if param != nil {
			kids = append(kids, param)
		}
		kids = append(kids, handlerBody)
		to = handlerBody.End()
	}
	if p.is("finally") {
		p.advance()
		fin := p.parseBlock()
		kids = append(kids, fin)
		to = fin.End()
	}
	return &ast.Generic{Kind: "TryStatement", From: from, To: to, Kids: kids}
}

func (p *parser) parseThrowStatement() ast.Node {
	from := p.cur.Start
	p.advance()
	expr := p.parseExpression()
	p.consumeSemicolon()
	return &ast.Generic{Kind: "ThrowStatement", From: from, To: ast.Idx(p.prevEnd), Kids: []ast.Node{expr}}
}

func (p *parser) parseReturnStatement() ast.Node {
	from := p.cur.Start
	p.advance()
	var kids []ast.Node
	if !p.isKind(token.Semicolon) && !p.isKind(token.RightBrace) && !p.isKind(token.Eof) && !p.newlineBefore {
		kids = append(kids, p.parseExpression())
	}
	p.consumeSemicolon()
	return &ast.Generic{Kind: "ReturnStatement", From: from, To: ast.Idx(p.prevEnd), Kids: kids}
}

func (p *parser) parseBreakContinue(kind string) ast.Node {
	from := p.cur.Start
	p.advance()
	if !p.newlineBefore && p.isNameToken() {
		p.advance()
	}
	p.consumeSemicolon()
	return &ast.Generic{Kind: kind, From: from, To: ast.Idx(p.prevEnd)}
}

func (p *parser) parseWithStatement() ast.Node {
	from := p.cur.Start
	p.advance()
	p.expect(token.LeftParenthesis)
	obj := p.parseExpression()
	p.expect(token.RightParenthesis)
	body := p.parseStatement()
	return &ast.Generic{Kind: "WithStatement", From: from, To: body.End(), Kids: []ast.Node{obj, body}}
}
