package erase

import (
	"strings"

	"github.com/t14raptor/ts-erase/ast"
)

// visitStatementList walks a statement sequence (a Program body or a block's
// statements), threading seenJS across the whole list so each statement's
// blanking decision sees whatever runtime JS preceded it. topLevel selects
// between the module-level dispatch (which understands import/export) and
// the plain one used inside function/block bodies, where those forms cannot
// appear.
func (ctx *context) visitStatementList(stmts []ast.Node, topLevel bool) bool {
	any := false
	for _, s := range stmts {
		var emitted bool
		if topLevel {
			emitted = ctx.visitTopLevel(s)
		} else {
			emitted = ctx.visit(s)
		}
		if emitted {
			ctx.seenJS = true
			any = true
		}
	}
	return any
}

// visitTopLevel dispatches the module-boundary forms (§4.3.1-§4.3.3) before
// falling through to the general visitor.
func (ctx *context) visitTopLevel(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.ImportDeclaration:
		return ctx.visitImport(v)
	case *ast.ExportDeclaration:
		return ctx.visitExportDecl(v)
	case *ast.ExportAssignment:
		return ctx.visitExportAssignment(v)
	case *ast.ImportEqualsDeclaration:
		ctx.report(v, "'import =' declarations are not supported")
		return true
	default:
		return ctx.visit(n)
	}
}

// visit is the general per-kind dispatcher (§4.3's rule table). Its bool
// result reports whether the visited subtree contains surviving runtime JS,
// consumed by visitStatementList to update seenJS.
func (ctx *context) visit(n ast.Node) bool {
	if n == nil {
		return false
	}
	switch v := n.(type) {
	case *ast.Identifier:
		return true

	case *ast.TypeAliasDeclaration:
		ctx.blankStatement(v, v.From, v.To)
		return false
	case *ast.InterfaceDeclaration:
		ctx.blankStatement(v, v.From, v.To)
		return false
	case *ast.IndexSignature:
		ctx.out.Blank(v.From, v.To)
		return false

	case *ast.VariableStatement:
		if v.Modifiers.Has(ast.ModDeclare) {
			ctx.blankStatement(v, v.From, v.To)
			return false
		}
		for _, d := range v.List {
			ctx.visitVariableDeclarator(d)
		}
		return true

	case *ast.CallExpression:
		ctx.visit(v.Callee)
		if v.TypeArgs != nil {
			ctx.blankAngleList(v, v.TypeArgs)
		}
		for _, a := range v.Arguments {
			ctx.visit(a)
		}
		return true
	case *ast.NewExpression:
		ctx.visit(v.Callee)
		if v.TypeArgs != nil {
			ctx.blankAngleList(v, v.TypeArgs)
		}
		for _, a := range v.Arguments {
			ctx.visit(a)
		}
		return true
	case *ast.TaggedTemplateExpression:
		ctx.visit(v.Tag)
		if v.TypeArgs != nil {
			ctx.blankAngleList(v, v.TypeArgs)
		}
		ctx.visit(v.Quasi)
		return true
	case *ast.ExpressionWithTypeArguments:
		ctx.visit(v.Expression)
		if v.TypeArgs != nil {
			ctx.blankAngleList(v, v.TypeArgs)
		}
		return true

	case *ast.ClassDeclaration:
		return ctx.visitClassLike(v.ClassLiteral)
	case *ast.ClassExpression:
		return ctx.visitClassLike(v.ClassLiteral)
	case *ast.PropertyDeclaration:
		return ctx.visitProperty(v)
	case *ast.MethodDefinition:
		return ctx.visitMethod(v)
	case *ast.ClassStaticBlock:
		for _, stmt := range v.Block.Kids {
			ctx.visit(stmt)
		}
		return true

	case *ast.NonNullExpression:
		ctx.visit(v.Expression)
		ctx.out.Blank(v.To-1, v.To)
		return true
	case *ast.AsExpression:
		return ctx.visitAsExpression(v)
	case *ast.TypeAssertionExpression:
		ctx.report(v, "legacy type assertion syntax '<T>expr' is not supported")
		ctx.visit(v.Expression)
		return true

	case *ast.FunctionDeclaration:
		return ctx.visitFunctionLikeFull(v.FunctionLike)
	case *ast.FunctionExpression:
		return ctx.visitFunctionLikeFull(v.FunctionLike)
	case *ast.FunctionLike: // bare: an object-literal method shorthand
		return ctx.visitFunctionLikeFull(v)

	case *ast.EnumDeclaration:
		if v.Modifiers.Has(ast.ModDeclare) {
			ctx.blankStatement(v, v.From, v.To)
			return false
		}
		ctx.report(v, "non-ambient 'enum' declarations are not supported")
		return true
	case *ast.ModuleDeclaration:
		if v.Modifiers.Has(ast.ModDeclare) {
			ctx.blankStatement(v, v.From, v.To)
			return false
		}
		ctx.report(v, "non-ambient 'namespace'/'module' declarations are not supported")
		return true

	case *ast.ExpressionStatement:
		if !v.HasSemi {
			ctx.missingSemiPos = v.To
		}
		ctx.visit(v.Expression)
		return true

	case *ast.ImportDeclaration:
		return ctx.visitImport(v)
	case *ast.ExportDeclaration:
		return ctx.visitExportDecl(v)
	case *ast.ExportAssignment:
		return ctx.visitExportAssignment(v)
	case *ast.ImportEqualsDeclaration:
		ctx.report(v, "'import =' declarations are not supported")
		return true

	case *ast.Generic:
		if v.Kind == "BlockStatement" {
			return ctx.visitStatementList(v.Kids, false)
		}
		if v.Kind == "TypedBinding" {
			// Kids[0] is the wrapped binding target; everything from its end
			// to v.To is the trailing ": Type" annotation, which has no node
			// of its own and must be blanked here.
			ctx.visit(v.Kids[0])
			ctx.out.Blank(v.Kids[0].End(), v.To)
			return true
		}
		emitted := false
		for _, k := range v.Kids {
			if ctx.visit(k) {
				emitted = true
			}
		}
		return emitted

	case *ast.Parameter:
		ctx.visit(v.Name)
		if v.Initializer != nil {
			ctx.visit(v.Initializer)
		}
		return true

	default:
		return true
	}
}

func (ctx *context) visitVariableDeclarator(d *ast.VariableDeclarator) {
	ctx.visit(d.Target)
	if d.Exclamation != nil {
		ctx.out.Blank(*d.Exclamation, *d.Exclamation+1)
	}
	if d.TypeAnnotation != nil {
		ctx.out.Blank(d.TypeAnnotation.Colon, d.TypeAnnotation.To)
	}
	if d.Initializer != nil {
		ctx.visit(d.Initializer)
	}
}

// visitImport implements §4.3.1.
func (ctx *context) visitImport(v *ast.ImportDeclaration) bool {
	if v.TypeOnly {
		ctx.blankStatement(v, v.From, v.To)
		return false
	}
	for _, s := range v.Specifiers {
		if s.TypeOnly {
			end := s.To
			if s.TrailingComma != nil {
				end = *s.TrailingComma
			}
			ctx.out.Blank(s.From, end)
		}
	}
	return true
}

// visitExportDecl implements §4.3.2.
func (ctx *context) visitExportDecl(v *ast.ExportDeclaration) bool {
	if v.TypeOnly {
		ctx.blankStatement(v, v.From, v.To)
		return false
	}
	for _, s := range v.Specifiers {
		if s.TypeOnly {
			end := s.To
			if s.TrailingComma != nil {
				end = *s.TrailingComma
			}
			ctx.out.Blank(s.From, end)
		}
	}
	return true
}

// visitExportAssignment implements §4.3.3.
func (ctx *context) visitExportAssignment(v *ast.ExportAssignment) bool {
	if v.IsEquals {
		ctx.report(v, "'export =' assignments are not supported")
		return true
	}
	if v.Expression != nil {
		ctx.visit(v.Expression)
	}
	return true
}

// visitClassLike implements §4.3.6.
func (ctx *context) visitClassLike(cl *ast.ClassLiteral) bool {
	if cl.Modifiers.Has(ast.ModDeclare) {
		ctx.blankStatement(cl, cl.Class, cl.RightBrace+1)
		return false
	}
	ctx.blankModifiers(cl.Modifiers)
	for _, d := range cl.Decorators {
		ctx.visit(d.Expr)
	}
	if cl.TypeParams != nil {
		ctx.blankAngleList(cl, cl.TypeParams)
	}
	for _, h := range cl.Heritage {
		if h.Kind == ast.HeritageImplements {
			ctx.out.Blank(h.From, h.To)
			continue
		}
		for _, member := range h.List {
			ctx.visit(member)
		}
	}
	for _, m := range cl.Body {
		ctx.visit(m)
	}
	return true
}

// visitProperty implements §4.3.7.
func (ctx *context) visitProperty(pd *ast.PropertyDeclaration) bool {
	if pd.Modifiers.Has(ast.ModAbstract) || pd.Modifiers.Has(ast.ModDeclare) {
		ctx.out.Blank(pd.Idx, pd.To)
		return false
	}
	ctx.blankModifiers(pd.Modifiers)
	for _, d := range pd.Decorators {
		ctx.visit(d.Expr)
	}
	if pd.Computed {
		ctx.visit(pd.Name)
	}
	if pd.Exclamation != nil {
		ctx.out.Blank(*pd.Exclamation, *pd.Exclamation+1)
	}
	if pd.Optional != nil {
		ctx.out.Blank(*pd.Optional, *pd.Optional+1)
	}
	if pd.TypeAnnotation != nil {
		ctx.out.Blank(pd.TypeAnnotation.Colon, pd.TypeAnnotation.To)
	}
	if pd.Initializer != nil {
		ctx.visit(pd.Initializer)
	}
	return true
}

// visitMethod handles a class member's modifiers/decorators/name (which live
// on MethodDefinition, not on its nested FunctionLike) before delegating the
// shared parameter/type-parameter/return-type/body logic.
func (ctx *context) visitMethod(m *ast.MethodDefinition) bool {
	if !m.Fn.HasBody {
		if m.Modifiers.Has(ast.ModDeclare) {
			ctx.blankStatement(m, m.Idx, m.Fn.To)
		} else {
			ctx.out.Blank(m.Idx, m.Fn.To)
		}
		return false
	}
	ctx.blankModifiers(m.Modifiers)
	for _, d := range m.Decorators {
		ctx.visit(d.Expr)
	}
	if m.Computed {
		ctx.visit(m.Name)
	}
	return ctx.visitFunctionLikeCore(m.Fn)
}

// visitFunctionLikeFull implements §4.3.9 for a FunctionDeclaration,
// FunctionExpression, or bare object-literal method FunctionLike.
func (ctx *context) visitFunctionLikeFull(fl *ast.FunctionLike) bool {
	if !fl.HasBody {
		if fl.Modifiers.Has(ast.ModDeclare) {
			ctx.blankStatement(fl, fl.From, fl.To)
		} else {
			ctx.out.Blank(fl.From, fl.To)
		}
		return false
	}
	ctx.blankModifiers(fl.Modifiers)
	return ctx.visitFunctionLikeCore(fl)
}

// visitFunctionLikeCore handles the part of §4.3.9 shared by every
// function-like kind once modifiers/decorators/name have been dealt with by
// the caller: type parameters, parameters, return type, and body.
func (ctx *context) visitFunctionLikeCore(fl *ast.FunctionLike) bool {
	if fl.TypeParams != nil {
		ctx.blankAngleList(fl, fl.TypeParams)
	}
	if fl.Optional != nil {
		ctx.out.Blank(*fl.Optional, *fl.Optional+1)
	}
	for i, param := range fl.Params.List {
		ctx.visitParameter(param, i)
	}
	if fl.ReturnType != nil {
		ctx.blankReturnType(fl)
	}
	if block, ok := fl.Body.(*ast.Generic); ok && block.Kind == "BlockStatement" {
		saved := ctx.seenJS
		ctx.seenJS = false
		ctx.visitStatementList(block.Kids, false)
		ctx.seenJS = saved
	} else if fl.Body != nil {
		ctx.visit(fl.Body)
	}
	return true
}

// visitParameter implements the parameter rules of §4.3.9, including the
// special-case `this` parameter (never present at runtime, so it and its
// trailing comma are blanked wholesale) and parameter-property modifiers
// (reported, never erased, since removing them would require rewriting the
// constructor body to assign the corresponding field).
func (ctx *context) visitParameter(param *ast.Parameter, index int) {
	if index == 0 && param.IsThisParam {
		end := param.To
		if param.TrailingComma != nil {
			end = *param.TrailingComma
		}
		ctx.out.Blank(param.From, end)
		return
	}
	for _, d := range param.Decorators {
		ctx.visit(d.Expr)
	}
	for _, m := range param.Modifiers {
		switch m.Kind {
		case ast.ModPublic, ast.ModPrivate, ast.ModProtected, ast.ModReadonly:
			ctx.report(param, "parameter property modifiers cannot be erased without rewriting the constructor body")
		}
	}
	ctx.visit(param.Name)
	if param.Optional != nil {
		ctx.out.Blank(*param.Optional, *param.Optional+1)
	}
	if param.TypeAnnotation != nil {
		ctx.out.Blank(param.TypeAnnotation.Colon, param.TypeAnnotation.To)
	}
	if param.Initializer != nil {
		ctx.visit(param.Initializer)
	}
}

// blankReturnType implements the arrow-function hazard mitigation: if the
// return type sits on its own line, a plain blank would leave the `)` and
// `=>` separated by a line terminator, which ASI treats as a syntax error
// (arrow functions forbid a newline before `=>`). Shifting a substitute `)`
// to land immediately before `=>` keeps them adjacent regardless of how much
// of the return type's own span trails behind it on an earlier line.
func (ctx *context) blankReturnType(fl *ast.FunctionLike) {
	rt := fl.ReturnType
	if fl.Kind != ast.FuncArrow {
		ctx.out.Blank(rt.Colon, rt.To)
		return
	}
	parenEnd := int(fl.Params.Closing) + 1
	if parenEnd > len(ctx.src) {
		parenEnd = len(ctx.src)
	}
	arrowStart := int(fl.ArrowToken)
	if arrowStart < parenEnd || !strings.Contains(ctx.src[parenEnd:arrowStart], "\n") {
		ctx.out.Blank(rt.Colon, rt.To)
		return
	}
	if arrowStart == 0 || ctx.src[arrowStart-1] == '\n' {
		// '=>' is the first byte of its line: there is no non-newline byte
		// on that line to carry a substitute ')', so the mitigation below
		// would have to swallow a preserved newline. Leave the hazard in
		// place rather than corrupt line numbering or crash; this construct
		// is rare enough (an arrow's return type on its own line, with '=>'
		// at column zero) that callers are better served by a diagnostic
		// than by an aborted transform.
		ctx.report(fl, "arrow function return type spans a line break with '=>' at column zero; erased output may not preserve ASI safety here")
		ctx.out.Blank(rt.Colon, rt.To)
		return
	}
	ctx.out.BlankButEndWithCloseParen(fl.Params.Closing, fl.ArrowToken)
}

// visitAsExpression implements §4.3.8, including the missingSemiPos special
// case: when the assertion ends a semicolon-less expression statement, a
// plain blank would let the next line's leading token fuse with
// whatever precedes it, so a leading `;` is substituted in instead.
func (ctx *context) visitAsExpression(v *ast.AsExpression) bool {
	ctx.visit(v.Expression)
	exprEnd := v.Expression.End()
	if ctx.missingSemiPos == v.To {
		ctx.out.BlankButStartWithSemi(exprEnd, v.To)
	} else {
		ctx.out.Blank(exprEnd, v.To)
	}
	return true
}
