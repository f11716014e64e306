package parser

import (
	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/token"
)

// isNameToken reports whether the current token can serve as a binding or
// property name: either a plain identifier, or a contextual keyword
// ("as", "type", "of", "async", "get", "set", ...) used outside its special
// grammar position.
func (p *parser) isNameToken() bool {
	return p.isKind(token.Identifier) || p.isKind(token.Keyword)
}

func (p *parser) parseExpression() ast.Node {
	e := p.parseAssignExpr()
	if !p.isKind(token.Comma) {
		return e
	}
	from := e.Start()
	kids := []ast.Node{e}
	for p.isKind(token.Comma) {
		p.advance()
		kids = append(kids, p.parseAssignExpr())
	}
	return &ast.Generic{Kind: "SequenceExpression", From: from, To: ast.Idx(p.prevEnd), Kids: kids}
}

var assignOps = map[token.Token]bool{
	token.Assign: true, token.AddAssign: true, token.SubtractAssign: true,
	token.MultiplyAssign: true, token.QuotientAssign: true, token.RemainderAssign: true,
	token.ExponentAssign: true, token.ShiftLeftAssign: true, token.ShiftRightAssign: true,
	token.UShiftRightAssign: true, token.AndAssign: true, token.OrAssign: true,
	token.ExclusiveOrAssign: true, token.LogicalAndAssign: true, token.LogicalOrAssign: true,
	token.CoalesceAssign: true,
}

func (p *parser) parseAssignExpr() ast.Node {
	left := p.parseConditional()
	if assignOps[p.cur.Kind] {
		p.advance()
		right := p.parseAssignExpr()
		return &ast.Generic{Kind: "AssignmentExpression", From: left.Start(), To: right.End(), Kids: []ast.Node{left, right}}
	}
	return left
}

func (p *parser) parseConditional() ast.Node {
	cond := p.parseAsChain()
	if p.isKind(token.QuestionMark) {
		p.advance()
		then := p.parseAssignExpr()
		p.expect(token.Colon)
		els := p.parseAssignExpr()
		return &ast.Generic{Kind: "ConditionalExpression", From: cond.Start(), To: els.End(), Kids: []ast.Node{cond, then, els}}
	}
	return cond
}

// parseAsChain wraps a binary expression in zero or more AsExpression layers
// for trailing `as T` / `satisfies T`.
func (p *parser) parseAsChain() ast.Node {
	e := p.parseBinary(0)
	for !p.newlineBefore && (p.is("as") || p.is("satisfies")) {
		kw := p.cur.Lit
		kwIdx := p.cur.Start
		p.advance()
		kind := ast.AssertAs
		if kw == "satisfies" {
			kind = ast.AssertSatisfies
		}
		if p.is("const") {
			p.advance()
		} else {
			p.skipType()
		}
		e = &ast.AsExpression{Expression: e, Keyword: kind, KeywordIdx: kwIdx, To: ast.Idx(p.prevEnd)}
	}
	return e
}

// binaryPrec gives every binary operator's precedence level; higher binds
// tighter. Exact placement of `instanceof`/`in` relative to TypeScript's own
// `as` isn't load-bearing here (erasure only needs to find type spans and
// statement boundaries, not reconstruct a precedence-correct tree).
var binaryPrec = map[token.Token]int{
	token.Coalesce: 1, token.LogicalOr: 1,
	token.LogicalAnd: 2,
	token.Or:         3, token.ExclusiveOr: 4, token.And: 5,
	token.Equal: 6, token.NotEqual: 6, token.StrictEqual: 6, token.StrictNotEqual: 6,
	token.Less: 7, token.Greater: 7, token.LessOrEqual: 7, token.GreaterOrEqual: 7,
	token.ShiftLeft: 9, token.ShiftRight: 9, token.UShiftRight: 9,
	token.Plus: 10, token.Minus: 10,
	token.Multiply: 11, token.Slash: 11, token.Remainder: 11,
	token.Exponent: 12,
}

func (p *parser) binaryOpHere() (token.Token, int, bool) {
	if prec, ok := binaryPrec[p.cur.Kind]; ok {
		return p.cur.Kind, prec, true
	}
	if p.is("instanceof") || p.is("in") {
		return token.Keyword, 7, true
	}
	return 0, 0, false
}

func (p *parser) parseBinary(minPrec int) ast.Node {
	left := p.parseUnary()
	for {
		// A '<' here might be the start of a legacy type assertion's closing
		// half in a different statement, or start a generic argument list on
		// what turns out to be a call target — but parseUnary/parsePostfix
		// already consumed those. At this point a '<' is only ever a
		// comparison.
		_, prec, ok := p.binaryOpHere()
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.Generic{Kind: "BinaryExpression", From: left.Start(), To: right.End(), Kids: []ast.Node{left, right}}
	}
}

var unaryOps = map[token.Token]bool{
	token.Plus: true, token.Minus: true, token.BitwiseNot: true, token.Not: true,
	token.Increment: true, token.Decrement: true,
}

func (p *parser) parseUnary() ast.Node {
	if unaryOps[p.cur.Kind] || p.is("typeof") || p.is("void") || p.is("delete") || p.is("await") {
		from := p.cur.Start
		p.advance()
		operand := p.parseUnary()
		return &ast.Generic{Kind: "UnaryExpression", From: from, To: operand.End(), Kids: []ast.Node{operand}}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() ast.Node {
	e := p.parsePrimary()
	for {
		switch {
		case p.isKind(token.Period), p.isKind(token.QuestionDot):
			p.advance()
			if p.isNameToken() || p.isKind(token.PrivateName) {
				p.advance()
			}
			e = &ast.Generic{Kind: "MemberExpression", From: e.Start(), To: ast.Idx(p.prevEnd), Kids: []ast.Node{e}}
		case p.isKind(token.LeftBracket):
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RightBracket)
			e = &ast.Generic{Kind: "MemberExpression", From: e.Start(), To: ast.Idx(p.prevEnd), Kids: []ast.Node{e, idx}}
		case p.isKind(token.LeftParenthesis):
			args, lp, rp := p.parseArguments()
			e = &ast.CallExpression{Callee: e, LeftParen: lp, Arguments: args, RightParen: rp}
		case p.isKind(token.Template):
			quasi := p.parseTemplateLiteral()
			e = &ast.TaggedTemplateExpression{Tag: e, Quasi: quasi}
		case p.isKind(token.Less):
			targs := p.tryParseTypeArgs(func(k token.Token) bool {
				return k == token.LeftParenthesis || k == token.Template
			})
			if targs == nil {
				return e
			}
			if p.isKind(token.Template) {
				quasi := p.parseTemplateLiteral()
				e = &ast.TaggedTemplateExpression{Tag: e, TypeArgs: targs, Quasi: quasi}
			} else {
				args, lp, rp := p.parseArguments()
				e = &ast.CallExpression{Callee: e, TypeArgs: targs, LeftParen: lp, Arguments: args, RightParen: rp}
			}
		case p.isKind(token.Not) && !p.newlineBefore:
			p.advance()
			e = &ast.NonNullExpression{Expression: e, To: ast.Idx(p.prevEnd)}
		case (p.isKind(token.Increment) || p.isKind(token.Decrement)) && !p.newlineBefore:
			p.advance()
			e = &ast.Generic{Kind: "UpdateExpression", From: e.Start(), To: ast.Idx(p.prevEnd), Kids: []ast.Node{e}}
		default:
			return e
		}
	}
}

func (p *parser) parseArguments() ([]ast.Node, ast.Idx, ast.Idx) {
	lp := p.cur.Start
	p.advance()
	var args []ast.Node
	for !p.isKind(token.RightParenthesis) && !p.isKind(token.Eof) {
		if p.isKind(token.Ellipsis) {
			start := p.cur.Start
			p.advance()
			e := p.parseAssignExpr()
			args = append(args, &ast.Generic{Kind: "SpreadElement", From: start, To: e.End(), Kids: []ast.Node{e}})
		} else {
			args = append(args, p.parseAssignExpr())
		}
		if p.isKind(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	rp := p.cur.Start
	p.expect(token.RightParenthesis)
	return args, lp, rp
}

func (p *parser) parseTemplateLiteral() ast.Node {
	from := p.cur.Start
	to := p.cur.End
	p.advance()
	return &ast.Generic{Kind: "TemplateLiteral", From: from, To: to}
}

func (p *parser) parsePrimary() ast.Node {
	switch {
	case p.isKind(token.Number), p.isKind(token.String), p.isKind(token.Regex):
		from, to := p.cur.Start, p.cur.End
		p.advance()
		return &ast.Generic{Kind: "Literal", From: from, To: to}
	case p.isKind(token.Template):
		return p.parseTemplateLiteral()
	case p.isKind(token.PrivateName):
		from, to := p.cur.Start, p.cur.End
		p.advance()
		return &ast.Generic{Kind: "PrivateIdentifier", From: from, To: to}
	case p.isKind(token.LeftParenthesis):
		return p.parseParenOrArrow(false, 0)
	case p.isKind(token.LeftBracket):
		return p.parseArrayLiteral()
	case p.isKind(token.LeftBrace):
		return p.parseObjectLiteral()
	case p.is("function"):
		return p.parseFunctionExpression(false)
	case p.is("class"):
		return p.parseClassLiteral(true, nil, nil)
	case p.is("new"):
		return p.parseNewExpression()
	case p.isKind(token.Less):
		return p.parseLegacyTypeAssertion()
	case p.is("async"):
		return p.parseAsyncPrimary()
	case p.isNameToken():
		nameStart := p.cur.Start
		name := p.cur.Lit
		p.advance()
		if p.isKind(token.Arrow) && !p.newlineBefore {
			return p.finishArrowFunction(nameStart, false, singleIdentParam(nameStart, name), nil)
		}
		return &ast.Identifier{NameStart: nameStart, Name: name}
	default:
		from := p.cur.Start
		if !p.isKind(token.Eof) {
			p.advance()
		}
		return &ast.Generic{Kind: "Unknown", From: from, To: ast.Idx(p.prevEnd)}
	}
}

func (p *parser) parseAsyncPrimary() ast.Node {
	asyncStart := p.cur.Start
	cp := p.mark()
	p.advance()
	if !p.newlineBefore && p.is("function") {
		return p.parseFunctionExpression(true)
	}
	if !p.newlineBefore && p.isKind(token.LeftParenthesis) {
		if n := p.parseParenOrArrow(true, asyncStart); n != nil {
			return n
		}
		p.restore(cp)
	} else if !p.newlineBefore && p.isNameToken() {
		nameStart := p.cur.Start
		name := p.cur.Lit
		p.advance()
		if p.isKind(token.Arrow) && !p.newlineBefore {
			return p.finishArrowFunction(asyncStart, true, singleIdentParam(nameStart, name), nil)
		}
		p.restore(cp)
	} else {
		p.restore(cp)
	}
	// Not an async function/arrow after all: "async" is a plain identifier.
	p.advance()
	return &ast.Identifier{NameStart: asyncStart, Name: "async"}
}

func singleIdentParam(nameStart ast.Idx, name string) ast.ParameterList {
	id := &ast.Identifier{NameStart: nameStart, Name: name}
	return ast.ParameterList{
		Opening: nameStart, Closing: id.End(),
		List: []*ast.Parameter{{From: nameStart, To: id.End(), Name: id}},
	}
}

// parseParenOrArrow handles every expression starting with '(': an arrow
// function's parameter list, or an ordinary parenthesized expression. It
// speculatively attempts the arrow-head parse first and rolls back on
// failure, resolving the ambiguity without a separate lookahead grammar.
func (p *parser) parseParenOrArrow(isAsync bool, asyncStart ast.Idx) ast.Node {
	from := p.cur.Start
	if isAsync {
		from = asyncStart
	}
	cp := p.mark()
	nerrs := len(p.errors)
	params := p.parseParameterList()
	var retType *ast.TypeAnnotation
	if p.isKind(token.Colon) {
		retType = p.parseTypeAnnotation()
	}
	if len(p.errors) == nerrs && p.isKind(token.Arrow) {
		return p.finishArrowFunction(from, isAsync, params, retType)
	}
	p.restore(cp)
	if isAsync {
		return nil
	}
	lparen := p.cur.Start
	p.advance()
	inner := p.parseExpression()
	p.expect(token.RightParenthesis)
	return &ast.Generic{Kind: "ParenthesizedExpression", From: lparen, To: ast.Idx(p.prevEnd), Kids: []ast.Node{inner}}
}

func (p *parser) finishArrowFunction(from ast.Idx, isAsync bool, params ast.ParameterList, retType *ast.TypeAnnotation) ast.Node {
	arrowPos := p.cur.Start
	p.advance() // consume '=>'
	var body ast.Node
	if p.isKind(token.LeftBrace) {
		body = p.parseBlock()
	} else {
		body = p.parseAssignExpr()
	}
	fl := &ast.FunctionLike{
		Kind: ast.FuncArrow, From: from, To: body.End(),
		Params: params, ReturnType: retType, ArrowToken: arrowPos,
		Async: isAsync, HasBody: true, Body: body,
	}
	return &ast.FunctionExpression{FunctionLike: fl}
}

func (p *parser) parseArrayLiteral() ast.Node {
	from := p.cur.Start
	p.advance()
	var kids []ast.Node
	for !p.isKind(token.RightBracket) && !p.isKind(token.Eof) {
		if p.isKind(token.Comma) {
			p.advance()
			continue
		}
		if p.isKind(token.Ellipsis) {
			start := p.cur.Start
			p.advance()
			e := p.parseAssignExpr()
			kids = append(kids, &ast.Generic{Kind: "SpreadElement", From: start, To: e.End(), Kids: []ast.Node{e}})
		} else {
			kids = append(kids, p.parseAssignExpr())
		}
		if p.isKind(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RightBracket)
	return &ast.Generic{Kind: "ArrayLiteral", From: from, To: ast.Idx(p.prevEnd), Kids: kids}
}

func (p *parser) parseObjectLiteral() ast.Node {
	from := p.cur.Start
	p.advance()
	var kids []ast.Node
	for !p.isKind(token.RightBrace) && !p.isKind(token.Eof) {
		kids = append(kids, p.parseObjectMember())
		if p.isKind(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RightBrace)
	return &ast.Generic{Kind: "ObjectLiteral", From: from, To: ast.Idx(p.prevEnd), Kids: kids}
}

func (p *parser) parseObjectMember() ast.Node {
	from := p.cur.Start
	if p.isKind(token.Ellipsis) {
		p.advance()
		e := p.parseAssignExpr()
		return &ast.Generic{Kind: "SpreadElement", From: from, To: e.End(), Kids: []ast.Node{e}}
	}

	async := false
	generator := false
	kind := ast.MethodOrdinary
	isAccessor := false
	if p.is("async") {
		cp := p.mark()
		p.advance()
		if !p.newlineBefore && !p.isKind(token.Colon) && !p.isKind(token.LeftParenthesis) && !p.isKind(token.Comma) && !p.isKind(token.RightBrace) {
			async = true
		} else {
			p.restore(cp)
		}
	}
	if p.isKind(token.Multiply) {
		generator = true
		p.advance()
	}
	if (p.is("get") || p.is("set")) && !isAccessor {
		cp := p.mark()
		isGet := p.is("get")
		p.advance()
		if !p.isKind(token.Colon) && !p.isKind(token.LeftParenthesis) && !p.isKind(token.Comma) && !p.isKind(token.RightBrace) {
			if isGet {
				kind = ast.MethodGet
			} else {
				kind = ast.MethodSet
			}
		} else {
			p.restore(cp)
		}
	}

	var key ast.Node
	computed := false
	_ = computed
	if p.isKind(token.LeftBracket) {
		computed = true
		p.advance()
		key = p.parseAssignExpr()
		p.expect(token.RightBracket)
	} else if p.isKind(token.String) || p.isKind(token.Number) {
		kf, kt := p.cur.Start, p.cur.End
		p.advance()
		key = &ast.Generic{Kind: "Literal", From: kf, To: kt}
	} else {
		keyStart := p.cur.Start
		lit := p.cur.Lit
		p.advance()
		key = &ast.Identifier{NameStart: keyStart, Name: lit}
	}

	switch {
	case p.isKind(token.LeftParenthesis) || p.isKind(token.Less):
		fn := p.parseMethodTail(from, async, generator)
		propKind := "Property"
		switch kind {
		case ast.MethodGet:
			propKind = "GetProperty"
		case ast.MethodSet:
			propKind = "SetProperty"
		}
		return &ast.Generic{Kind: propKind, From: from, To: fn.End(), Kids: []ast.Node{key, fn}}
	case p.isKind(token.Colon):
		p.advance()
		val := p.parseAssignExpr()
		return &ast.Generic{Kind: "Property", From: from, To: val.End(), Kids: []ast.Node{key, val}}
	case p.isKind(token.Assign): // object pattern default, in destructuring-as-expression contexts
		p.advance()
		def := p.parseAssignExpr()
		return &ast.Generic{Kind: "Property", From: from, To: def.End(), Kids: []ast.Node{key, def}}
	default:
		return &ast.Generic{Kind: "Property", From: from, To: key.End(), Kids: []ast.Node{key}}
	}
}

// parseMethodTail parses `<T>(params): R { body }` for a method shorthand
// appearing inside an object or class literal. The caller is responsible for
// recording any get/set/constructor distinction; this only builds the
// function shape shared by every method form.
func (p *parser) parseMethodTail(from ast.Idx, async, generator bool) *ast.FunctionLike {
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
	to := ast.Idx(p.prevEnd)
	fl := &ast.FunctionLike{
		Kind: ast.FuncMethod, From: from, To: to,
		TypeParams: typeParams, Params: params, ReturnType: retType,
		Async: async, Generator: generator, HasBody: hasBody, Body: body,
	}
	return fl
}

func (p *parser) parseNewExpression() ast.Node {
	newPos := p.cur.Start
	p.advance()
	if p.isKind(token.Period) { // new.target
		p.advance()
		if p.isNameToken() {
			p.advance()
		}
		return &ast.Generic{Kind: "MetaProperty", From: newPos, To: ast.Idx(p.prevEnd)}
	}
	callee := p.parseNewCallee()
	var typeArgs *ast.AngleList
	if p.isKind(token.Less) {
		typeArgs = p.tryParseTypeArgs(func(k token.Token) bool {
			return k == token.LeftParenthesis
		})
	}
	if p.isKind(token.LeftParenthesis) {
		args, lp, rp := p.parseArguments()
		return &ast.NewExpression{New: newPos, Callee: callee, TypeArgs: typeArgs, HasArgs: true, LeftParen: lp, Arguments: args, RightParen: rp}
	}
	return &ast.NewExpression{New: newPos, Callee: callee, TypeArgs: typeArgs, HasArgs: false}
}

// parseNewCallee parses the member-expression callee of a `new` expression,
// stopping before an argument list (calls bind to the `new`, not the callee).
func (p *parser) parseNewCallee() ast.Node {
	var e ast.Node
	if p.is("new") {
		e = p.parseNewExpression()
	} else {
		e = p.parsePrimary()
	}
	for {
		switch {
		case p.isKind(token.Period):
			p.advance()
			if p.isNameToken() || p.isKind(token.PrivateName) {
				p.advance()
			}
			e = &ast.Generic{Kind: "MemberExpression", From: e.Start(), To: ast.Idx(p.prevEnd), Kids: []ast.Node{e}}
		case p.isKind(token.LeftBracket):
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RightBracket)
			e = &ast.Generic{Kind: "MemberExpression", From: e.Start(), To: ast.Idx(p.prevEnd), Kids: []ast.Node{e, idx}}
		default:
			return e
		}
	}
}

// parseLegacyTypeAssertion parses the `<T>expr` cast form. Always reported as
// an error: it's ambiguous with JSX and the one assertion form this module
// does not support erasing.
func (p *parser) parseLegacyTypeAssertion() ast.Node {
	lt := p.cur.Start
	p.advance()
	p.skipType()
	p.eatOneGreater()
	expr := p.parseUnary()
	return &ast.TypeAssertionExpression{LessThan: lt, Expression: expr}
}
