package parser

import (
	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/token"
)

func (p *parser) parseFunctionDeclaration(isAsync bool) ast.Node {
	from := p.cur.Start
	p.advance() // 'function'
	generator := false
	if p.isKind(token.Multiply) {
		generator = true
		p.advance()
	}
	var name *ast.Identifier
	if p.isNameToken() {
		name = &ast.Identifier{NameStart: p.cur.Start, Name: p.cur.Lit}
		p.advance()
	}
	typeParams := p.parseTypeParams()
	params := p.parseParameterList()
	var retType *ast.TypeAnnotation
	if p.isKind(token.Colon) {
		retType = p.parseTypeAnnotation()
	}
	var body ast.Node
	hasBody := p.isKind(token.LeftBrace)
	if hasBody {
		body = p.parseBlock()
	} else {
		p.consumeSemicolon()
	}
	fl := &ast.FunctionLike{
		Kind: ast.FuncDeclaration, From: from, To: ast.Idx(p.prevEnd),
		Name: name, TypeParams: typeParams, Params: params, ReturnType: retType,
		Async: isAsync, Generator: generator, HasBody: hasBody, Body: body,
	}
	return &ast.FunctionDeclaration{FunctionLike: fl}
}

func (p *parser) parseFunctionExpression(isAsync bool) ast.Node {
	from := p.cur.Start
	p.advance() // 'function'
	generator := false
	if p.isKind(token.Multiply) {
		generator = true
		p.advance()
	}
	var name *ast.Identifier
	if p.isNameToken() {
		name = &ast.Identifier{NameStart: p.cur.Start, Name: p.cur.Lit}
		p.advance()
	}
	typeParams := p.parseTypeParams()
	params := p.parseParameterList()
	var retType *ast.TypeAnnotation
	if p.isKind(token.Colon) {
		retType = p.parseTypeAnnotation()
	}
	body := p.parseBlock()
	fl := &ast.FunctionLike{
		Kind: ast.FuncExpression, From: from, To: body.End(),
		Name: name, TypeParams: typeParams, Params: params, ReturnType: retType,
		Async: isAsync, Generator: generator, HasBody: true, Body: body,
	}
	return &ast.FunctionExpression{FunctionLike: fl}
}

func (p *parser) parseClassOrExportWithDecorators(decorators []*ast.Decorator) ast.Node {
	if p.is("export") {
		from := p.cur.Start
		p.advance()
		if p.is("default") {
			p.advance()
		}
		mods := p.parseModifiers()
		cl := p.parseClassLiteral(false, mods, decorators).(*ast.ClassDeclaration)
		cl.Class = from // extend span to cover `export`
		return cl
	}
	mods := p.parseModifiers()
	return p.parseClassLiteral(false, mods, decorators)
}

// parseClassLiteral parses a class declaration or expression body, shared by
// both surface positions per SPEC_FULL.md §10.
func (p *parser) parseClassLiteral(isExpr bool, leadingMods ast.Modifiers, decorators []*ast.Decorator) ast.Node {
	from := p.cur.Start
	if len(leadingMods) > 0 {
		from = leadingMods[0].From
	}
	if len(decorators) > 0 {
		from = decorators[0].At
	}
	mods := append(ast.Modifiers{}, leadingMods...)
	p.advance() // 'class'
	var name *ast.Identifier
	if p.isNameToken() && !p.is("extends") && !p.is("implements") {
		name = &ast.Identifier{NameStart: p.cur.Start, Name: p.cur.Lit}
		p.advance()
	}
	typeParams := p.parseTypeParams()
	var heritage []*ast.HeritageClause
	for p.is("extends") || p.is("implements") {
		heritage = append(heritage, p.parseHeritageClause())
	}
	body, rbrace := p.parseClassBody()
	cl := &ast.ClassLiteral{
		Class: from, RightBrace: rbrace, Modifiers: mods, Decorators: decorators,
		Name: name, TypeParams: typeParams, Heritage: heritage, Body: body,
	}
	if isExpr {
		return &ast.ClassExpression{ClassLiteral: cl}
	}
	return &ast.ClassDeclaration{ClassLiteral: cl}
}

func (p *parser) parseHeritageClause() *ast.HeritageClause {
	from := p.cur.Start
	kind := ast.HeritageExtends
	if p.is("implements") {
		kind = ast.HeritageImplements
	}
	p.advance()
	var list []ast.Node
	for {
		list = append(list, p.parseHeritageMember())
		if p.isKind(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	to := list[len(list)-1].End()
	return &ast.HeritageClause{Kind: kind, From: from, To: to, List: list}
}

func (p *parser) parseHeritageMember() ast.Node {
	expr := p.parsePostfixNoTypeArgsCall()
	if p.isKind(token.Less) {
		targs := p.tryParseTypeArgs(func(k token.Token) bool {
			return k == token.Comma || k == token.LeftBrace || k == token.Keyword || k == token.Identifier
		})
		if targs != nil {
			return &ast.ExpressionWithTypeArguments{Expression: expr, TypeArgs: targs, To: ast.Idx(p.prevEnd)}
		}
	}
	return &ast.ExpressionWithTypeArguments{Expression: expr, To: expr.End()}
}

// parsePostfixNoTypeArgsCall parses a member-expression chain (no call),
// used for heritage clause entries where the type-argument list is handled
// by the caller rather than being folded into a call.
func (p *parser) parsePostfixNoTypeArgsCall() ast.Node {
	e := p.parsePrimary()
	for p.isKind(token.Period) {
		p.advance()
		if p.isNameToken() {
			p.advance()
		}
		e = &ast.Generic{Kind: "MemberExpression", From: e.Start(), To: ast.Idx(p.prevEnd), Kids: []ast.Node{e}}
	}
	return e
}

func (p *parser) parseClassBody() ([]ast.Node, ast.Idx) {
	p.expect(token.LeftBrace)
	var body []ast.Node
	for !p.isKind(token.RightBrace) && !p.isKind(token.Eof) {
		if p.isKind(token.Semicolon) {
			p.advance()
			continue
		}
		body = append(body, p.parseClassMember())
	}
	rbrace := p.cur.Start
	p.expect(token.RightBrace)
	return body, rbrace
}

func (p *parser) parseClassMember() ast.Node {
	from := p.cur.Start
	var decorators []*ast.Decorator
	for p.isKind(token.At) {
		decorators = append(decorators, p.parseDecorator())
	}
	if p.is("static") && p.peekIsStaticBlock() {
		p.advance()
		block := p.parseBlock()
		return &ast.ClassStaticBlock{Static: from, Block: block.(*ast.Generic)}
	}
	mods := p.parseModifiers()
	if p.isKind(token.LeftBracket) { // index signature: `[key: K]: T;`
		cp := p.mark()
		p.advance()
		p.advance()
		isIndex := p.isKind(token.Colon)
		p.restore(cp)
		if isIndex {
			p.skipBalanced()
			if p.isKind(token.Colon) {
				p.parseTypeAnnotation()
			}
			p.consumeSemicolon()
			return &ast.IndexSignature{From: from, To: ast.Idx(p.prevEnd)}
		}
	}
	kind := ast.MethodOrdinary
	generator := false
	async := false
	if p.is("async") && !p.peekIsMemberBoundary() {
		async = true
		p.advance()
	}
	if p.isKind(token.Multiply) {
		generator = true
		p.advance()
	}
	if p.is("get") && !p.peekIsMemberBoundary() {
		kind = ast.MethodGet
		p.advance()
	} else if p.is("set") && !p.peekIsMemberBoundary() {
		kind = ast.MethodSet
		p.advance()
	}

	computed := false
	var name ast.Node
	if p.isKind(token.LeftBracket) {
		computed = true
		p.advance()
		name = p.parseAssignExpr()
		p.expect(token.RightBracket)
	} else if p.isKind(token.PrivateName) {
		nf, nt := p.cur.Start, p.cur.End
		p.advance()
		name = &ast.Generic{Kind: "PrivateIdentifier", From: nf, To: nt}
	} else if p.isKind(token.String) || p.isKind(token.Number) {
		nf, nt := p.cur.Start, p.cur.End
		p.advance()
		name = &ast.Generic{Kind: "Literal", From: nf, To: nt}
	} else {
		nameStart := p.cur.Start
		lit := p.cur.Lit
		p.advance()
		name = &ast.Identifier{NameStart: nameStart, Name: lit}
	}

	if name != nil {
		if id, ok := name.(*ast.Identifier); ok && id.Name == "constructor" && kind == ast.MethodOrdinary {
			kind = ast.MethodConstructor
		}
	}

	var optional *ast.Idx
	if p.isKind(token.QuestionMark) {
		pos := p.cur.Start
		optional = &pos
		p.advance()
	}
	if p.isKind(token.LeftParenthesis) || p.isKind(token.Less) {
		fn := p.parseMethodTail(from, async, generator)
		fn.Optional = optional
		return &ast.MethodDefinition{Idx: from, Decorators: decorators, Modifiers: mods, Name: name, Computed: computed, Kind: kind, Fn: fn}
	}

	// property declaration
	var excl *ast.Idx
	if optional == nil && p.isKind(token.Not) {
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
	p.consumeSemicolon()
	return &ast.PropertyDeclaration{
		Idx: from, To: ast.Idx(p.prevEnd), Decorators: decorators, Modifiers: mods,
		Name: name, Computed: computed, Optional: optional, Exclamation: excl,
		TypeAnnotation: typeAnn, Initializer: init,
	}
}

func (p *parser) peekIsStaticBlock() bool {
	cp := p.mark()
	p.advance()
	ok := p.isKind(token.LeftBrace)
	p.restore(cp)
	return ok
}

// parseInterfaceDeclaration records the span of the whole construct, which
// the engine blanks wholesale (§4.3 of SPEC_FULL.md): an interface has no
// runtime representation at all.
func (p *parser) parseInterfaceDeclaration(leadingMods ast.Modifiers) ast.Node {
	from := p.cur.Start
	if len(leadingMods) > 0 {
		from = leadingMods[0].From
	}
	p.advance() // 'interface'
	if p.isNameToken() {
		p.advance()
	}
	if p.isKind(token.Less) {
		p.skipBalanced()
	}
	for p.is("extends") {
		p.advance()
		p.skipType()
		for p.isKind(token.Comma) {
			p.advance()
			p.skipType()
		}
	}
	p.skipBalanced() // the `{ ... }` body
	return &ast.InterfaceDeclaration{From: from, To: ast.Idx(p.prevEnd)}
}

func (p *parser) parseTypeAliasDeclaration(leadingMods ast.Modifiers) ast.Node {
	from := p.cur.Start
	if len(leadingMods) > 0 {
		from = leadingMods[0].From
	}
	p.advance() // 'type'
	if p.isNameToken() {
		p.advance()
	}
	if p.isKind(token.Less) {
		p.skipBalanced()
	}
	p.expect(token.Assign)
	p.skipType()
	p.consumeSemicolon()
	return &ast.TypeAliasDeclaration{From: from, To: ast.Idx(p.prevEnd)}
}

func (p *parser) parseEnumDeclaration(constIdx ast.Idx, leadingMods ast.Modifiers) ast.Node {
	from := p.cur.Start
	if constIdx != 0 {
		from = constIdx
	}
	if len(leadingMods) > 0 {
		from = leadingMods[0].From
	}
	p.advance() // 'enum'
	if p.isNameToken() {
		p.advance()
	}
	p.skipBalanced() // body
	return &ast.EnumDeclaration{From: from, To: ast.Idx(p.prevEnd), Modifiers: leadingMods}
}

func (p *parser) parseModuleDeclaration(from ast.Idx, leadingMods ast.Modifiers) ast.Node {
	start := p.cur.Start
	if from != 0 {
		start = from
	}
	if len(leadingMods) > 0 {
		start = leadingMods[0].From
	}
	p.advance() // 'namespace' | 'module' | 'global'
	if p.isNameToken() {
		p.advance()
	}
	for p.isKind(token.Period) {
		p.advance()
		if p.isNameToken() {
			p.advance()
		}
	}
	if p.isKind(token.String) {
		p.advance()
	}
	if p.isKind(token.LeftBrace) {
		p.skipBalanced()
	} else {
		p.consumeSemicolon()
	}
	return &ast.ModuleDeclaration{From: start, To: ast.Idx(p.prevEnd), Modifiers: leadingMods}
}

// parseDeclareStatement handles every `declare ...` ambient form.
func (p *parser) parseDeclareStatement() ast.Node {
	mods := p.parseModifiers() // consumes 'declare' and any following modifiers
	switch {
	case p.is("function"):
		fn := p.parseFunctionDeclaration(false).(*ast.FunctionDeclaration)
		fn.Modifiers = mods
		fn.From = mods[0].From
		return fn
	case p.is("class"):
		return p.parseClassLiteral(false, mods, nil)
	case p.is("interface"):
		return p.parseInterfaceDeclaration(mods)
	case p.is("type"):
		return p.parseTypeAliasDeclaration(mods)
	case p.is("enum"):
		return p.parseEnumDeclaration(0, mods)
	case p.is("namespace") || p.is("module") || p.is("global"):
		return p.parseModuleDeclaration(mods[0].From, mods)
	case p.is("const"):
		cp := p.mark()
		constIdx := p.cur.Start
		p.advance()
		if p.is("enum") {
			decl := p.parseEnumDeclaration(constIdx, nil).(*ast.EnumDeclaration)
			decl.Modifiers = mods
			decl.From = mods[0].From
			return decl
		}
		p.restore(cp)
		return p.parseVariableStatement(mods)
	case p.is("var") || p.is("let"):
		return p.parseVariableStatement(mods)
	default:
		p.errorAt(p.cur.Start, "unexpected token after 'declare'")
		return &ast.Generic{Kind: "EmptyStatement", From: mods[0].From, To: mods[0].To}
	}
}
