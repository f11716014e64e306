package parser_test

import (
	"testing"

	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/parser"
)

// mustParse parses src and fails the test if there's an error.
func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Failed to parse:\n%s\nError: %v", src, err)
	}
	return p
}

func firstStmt(p *ast.Program, i int) ast.Node {
	return p.Body[i]
}

func TestParsesPlainJS(t *testing.T) {
	p := mustParse(t, "function add(a, b) {\n  return a + b;\n}\nconsole.log(add(1, 2));\n")
	if len(p.Body) != 2 {
		t.Fatalf("expected 2 top-level statements, got %d", len(p.Body))
	}
	if _, ok := firstStmt(p, 0).(*ast.FunctionDeclaration); !ok {
		t.Fatalf("expected a FunctionDeclaration, got %T", firstStmt(p, 0))
	}
}

func TestVariableDeclaratorWithTypeAndNonNull(t *testing.T) {
	p := mustParse(t, "let x: number = 1!;")
	stmt, ok := firstStmt(p, 0).(*ast.VariableStatement)
	if !ok {
		t.Fatalf("expected a VariableStatement, got %T", firstStmt(p, 0))
	}
	if len(stmt.List) != 1 {
		t.Fatalf("expected 1 declarator, got %d", len(stmt.List))
	}
	d := stmt.List[0]
	if d.TypeAnnotation == nil {
		t.Fatalf("expected a type annotation to be recorded")
	}
	if d.Initializer == nil {
		t.Fatalf("expected an initializer")
	}
}

func TestArrowVsParenthesizedExpression(t *testing.T) {
	p := mustParse(t, "const f = (a, b) => a + b;\nconst g = (a + b);")
	fStmt := firstStmt(p, 0).(*ast.VariableStatement)
	fn, ok := fStmt.List[0].Initializer.(*ast.FunctionExpression)
	if !ok {
		t.Fatalf("expected an arrow FunctionExpression, got %T", fStmt.List[0].Initializer)
	}
	if fn.Kind != ast.FuncArrow {
		t.Fatalf("expected FuncArrow, got %v", fn.Kind)
	}
	if len(fn.Params.List) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params.List))
	}

	gStmt := firstStmt(p, 1).(*ast.VariableStatement)
	if _, ok := gStmt.List[0].Initializer.(*ast.FunctionExpression); ok {
		t.Fatalf("expected a parenthesized expression, not an arrow function")
	}
}

func TestArrowWithTypedParamsAndReturnType(t *testing.T) {
	p := mustParse(t, "const f = (a: number, b?: string): void => {};")
	stmt := firstStmt(p, 0).(*ast.VariableStatement)
	fn := stmt.List[0].Initializer.(*ast.FunctionExpression)
	if fn.ReturnType == nil {
		t.Fatalf("expected a return type annotation")
	}
	if len(fn.Params.List) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params.List))
	}
	if fn.Params.List[1].Optional == nil {
		t.Fatalf("expected second param to be marked optional")
	}
}

func TestGenericCallVsComparisonChain(t *testing.T) {
	p := mustParse(t, "f<T>(x);\na < b > c;")
	call, ok := firstStmt(p, 0).(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected an ExpressionStatement, got %T", firstStmt(p, 0))
	}
	ce, ok := call.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected a CallExpression with type arguments, got %T", call.Expression)
	}
	if ce.TypeArgs == nil {
		t.Fatalf("expected type arguments to be recorded on the call")
	}

	cmp, ok := firstStmt(p, 1).(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected an ExpressionStatement, got %T", firstStmt(p, 1))
	}
	if _, ok := cmp.Expression.(*ast.CallExpression); ok {
		t.Fatalf("expected a comparison chain, not a call expression")
	}
}

func TestNestedGenericClosingAngles(t *testing.T) {
	p := mustParse(t, "const x: Foo<Bar<Baz>> = y;")
	stmt := firstStmt(p, 0).(*ast.VariableStatement)
	d := stmt.List[0]
	if d.TypeAnnotation == nil {
		t.Fatalf("expected a type annotation")
	}
	if d.Initializer == nil {
		t.Fatalf("expected an initializer to survive after the nested generic")
	}
}

func TestClassWithGenericsAndHeritage(t *testing.T) {
	p := mustParse(t, "class C<T> extends B<T> implements I, J { m<U>(a?: string): void {} }")
	cd, ok := firstStmt(p, 0).(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("expected a ClassDeclaration, got %T", firstStmt(p, 0))
	}
	if cd.TypeParams == nil {
		t.Fatalf("expected type parameters to be recorded")
	}
	if len(cd.Heritage) != 2 {
		t.Fatalf("expected 2 heritage clauses (extends, implements), got %d", len(cd.Heritage))
	}
	if cd.Heritage[0].Kind != ast.HeritageExtends {
		t.Fatalf("expected the first heritage clause to be 'extends'")
	}
	if cd.Heritage[1].Kind != ast.HeritageImplements {
		t.Fatalf("expected the second heritage clause to be 'implements'")
	}
	if len(cd.Heritage[1].List) != 2 {
		t.Fatalf("expected 2 implemented interfaces, got %d", len(cd.Heritage[1].List))
	}
	if len(cd.Body) != 1 {
		t.Fatalf("expected 1 class member, got %d", len(cd.Body))
	}
	md, ok := cd.Body[0].(*ast.MethodDefinition)
	if !ok {
		t.Fatalf("expected a MethodDefinition, got %T", cd.Body[0])
	}
	if md.Fn.TypeParams == nil {
		t.Fatalf("expected the method's own type parameters to be recorded")
	}
}

func TestThisParameterRecorded(t *testing.T) {
	p := mustParse(t, "function f(this: T, x: number): void {}")
	fd := firstStmt(p, 0).(*ast.FunctionDeclaration)
	if len(fd.Params.List) != 2 {
		t.Fatalf("expected 2 parameters (this, x), got %d", len(fd.Params.List))
	}
	if !fd.Params.List[0].IsThisParam {
		t.Fatalf("expected the first parameter to be marked as a 'this' parameter")
	}
}

func TestInterfaceAndTypeAliasParsed(t *testing.T) {
	p := mustParse(t, "interface I { x: number }\ntype T = string | number;\nconsole.log(1);")
	if _, ok := firstStmt(p, 0).(*ast.InterfaceDeclaration); !ok {
		t.Fatalf("expected an InterfaceDeclaration, got %T", firstStmt(p, 0))
	}
	if _, ok := firstStmt(p, 1).(*ast.TypeAliasDeclaration); !ok {
		t.Fatalf("expected a TypeAliasDeclaration, got %T", firstStmt(p, 1))
	}
	if _, ok := firstStmt(p, 2).(*ast.ExpressionStatement); !ok {
		t.Fatalf("expected the trailing call to parse as an ExpressionStatement")
	}
}

func TestEnumAndConstEnum(t *testing.T) {
	p := mustParse(t, "enum A { X, Y }\nconst enum B { X, Y }")
	if _, ok := firstStmt(p, 0).(*ast.EnumDeclaration); !ok {
		t.Fatalf("expected an EnumDeclaration, got %T", firstStmt(p, 0))
	}
	if _, ok := firstStmt(p, 1).(*ast.EnumDeclaration); !ok {
		t.Fatalf("expected 'const enum' to parse as an EnumDeclaration, got %T", firstStmt(p, 1))
	}
}

func TestDeclareConstEnum(t *testing.T) {
	p := mustParse(t, "declare const enum Color { Red, Green }")
	ed, ok := firstStmt(p, 0).(*ast.EnumDeclaration)
	if !ok {
		t.Fatalf("expected 'declare const enum' to parse as an EnumDeclaration, got %T", firstStmt(p, 0))
	}
	if !ed.Modifiers.Has(ast.ModDeclare) {
		t.Fatalf("expected the 'declare' modifier to be recorded")
	}
}

func TestTypeOnlyImportAndExport(t *testing.T) {
	p := mustParse(t, `import type T from "x";
import { type A, B } from "y";
export type { T };
`)
	imp1 := firstStmt(p, 0).(*ast.ImportDeclaration)
	if !imp1.TypeOnly {
		t.Fatalf("expected a whole-declaration type-only import")
	}
	imp2 := firstStmt(p, 1).(*ast.ImportDeclaration)
	if imp2.TypeOnly {
		t.Fatalf("expected a mixed import to not be marked whole-declaration type-only")
	}
	if len(imp2.Specifiers) != 2 || !imp2.Specifiers[0].TypeOnly || imp2.Specifiers[1].TypeOnly {
		t.Fatalf("expected only the first specifier to be marked type-only, got %+v", imp2.Specifiers)
	}
	exp := firstStmt(p, 2).(*ast.ExportDeclaration)
	if !exp.TypeOnly {
		t.Fatalf("expected a whole-declaration type-only export")
	}
}

func TestImportEqualsAndExportEquals(t *testing.T) {
	p := mustParse(t, `import x = require("mod");
export = x;
`)
	if _, ok := firstStmt(p, 0).(*ast.ImportEqualsDeclaration); !ok {
		t.Fatalf("expected an ImportEqualsDeclaration, got %T", firstStmt(p, 0))
	}
	ea, ok := firstStmt(p, 1).(*ast.ExportAssignment)
	if !ok {
		t.Fatalf("expected an ExportAssignment, got %T", firstStmt(p, 1))
	}
	if !ea.IsEquals {
		t.Fatalf("expected IsEquals to be true for 'export = x;'")
	}
}

func TestExportDefaultIsNotEquals(t *testing.T) {
	p := mustParse(t, "export default 1;")
	ea, ok := firstStmt(p, 0).(*ast.ExportAssignment)
	if !ok {
		t.Fatalf("expected an ExportAssignment, got %T", firstStmt(p, 0))
	}
	if ea.IsEquals {
		t.Fatalf("expected IsEquals to be false for 'export default'")
	}
}

func TestLegacyTypeAssertionParsesWithoutHardError(t *testing.T) {
	p := mustParse(t, "const x = <number>y;")
	stmt := firstStmt(p, 0).(*ast.VariableStatement)
	if _, ok := stmt.List[0].Initializer.(*ast.TypeAssertionExpression); !ok {
		t.Fatalf("expected a TypeAssertionExpression, got %T", stmt.List[0].Initializer)
	}
}

func TestAsAndSatisfiesChain(t *testing.T) {
	p := mustParse(t, "const x = y as T satisfies U;")
	stmt := firstStmt(p, 0).(*ast.VariableStatement)
	outer, ok := stmt.List[0].Initializer.(*ast.AsExpression)
	if !ok {
		t.Fatalf("expected an outer AsExpression, got %T", stmt.List[0].Initializer)
	}
	if outer.Keyword != ast.AssertSatisfies {
		t.Fatalf("expected the outer layer to be 'satisfies'")
	}
	inner, ok := outer.Expression.(*ast.AsExpression)
	if !ok {
		t.Fatalf("expected an inner AsExpression, got %T", outer.Expression)
	}
	if inner.Keyword != ast.AssertAs {
		t.Fatalf("expected the inner layer to be 'as'")
	}
}

func TestParameterPropertyModifierRecorded(t *testing.T) {
	p := mustParse(t, "class C { constructor(private x: number) {} }")
	cd := firstStmt(p, 0).(*ast.ClassDeclaration)
	md := cd.Body[0].(*ast.MethodDefinition)
	if md.Kind != ast.MethodConstructor {
		t.Fatalf("expected a constructor method, got %v", md.Kind)
	}
	if len(md.Fn.Params.List) != 1 {
		t.Fatalf("expected 1 parameter, got %d", len(md.Fn.Params.List))
	}
	if !md.Fn.Params.List[0].Modifiers.Has(ast.ModPrivate) {
		t.Fatalf("expected the parameter's 'private' modifier to be recorded")
	}
}

func TestPrivateClassMember(t *testing.T) {
	p := mustParse(t, "class C { #x = 1; getX() { return this.#x; } }")
	cd := firstStmt(p, 0).(*ast.ClassDeclaration)
	if len(cd.Body) != 2 {
		t.Fatalf("expected 2 class members, got %d", len(cd.Body))
	}
	if _, ok := cd.Body[0].(*ast.PropertyDeclaration); !ok {
		t.Fatalf("expected a PropertyDeclaration for the private field, got %T", cd.Body[0])
	}
}

func TestAmbientDeclarationsRecordDeclareModifier(t *testing.T) {
	p := mustParse(t, "declare function f(x: number): void;\ndeclare class C {}\n")
	fd, ok := firstStmt(p, 0).(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected a FunctionDeclaration, got %T", firstStmt(p, 0))
	}
	if !fd.Modifiers.Has(ast.ModDeclare) {
		t.Fatalf("expected the 'declare' modifier to be recorded on the function")
	}
	if fd.HasBody {
		t.Fatalf("expected an ambient function declaration to have no body")
	}
	cd, ok := firstStmt(p, 1).(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("expected a ClassDeclaration, got %T", firstStmt(p, 1))
	}
	if !cd.Modifiers.Has(ast.ModDeclare) {
		t.Fatalf("expected the 'declare' modifier to be recorded on the class")
	}
}

func TestNamespaceDeclaration(t *testing.T) {
	p := mustParse(t, "namespace NS { export const x = 1; }\nconsole.log(1);")
	if _, ok := firstStmt(p, 0).(*ast.ModuleDeclaration); !ok {
		t.Fatalf("expected a ModuleDeclaration, got %T", firstStmt(p, 0))
	}
}

func TestSyntaxErrorIsReported(t *testing.T) {
	_, err := parser.Parse("const = ;")
	if err == nil {
		t.Fatalf("expected a syntax error for a malformed declaration")
	}
}

func TestCatchClauseTypeAnnotationIsAttached(t *testing.T) {
	p := mustParse(t, "try { f(); } catch (e: unknown) { console.log(e); }")
	tryStmt, ok := firstStmt(p, 0).(*ast.Generic)
	if !ok || tryStmt.Kind != "TryStatement" {
		t.Fatalf("expected a TryStatement, got %#v", firstStmt(p, 0))
	}
	var param *ast.Generic
	for _, k := range tryStmt.Kids {
		if g, ok := k.(*ast.Generic); ok && g.Kind == "TypedBinding" {
			param = g
		}
	}
	if param == nil {
		t.Fatalf("expected the catch parameter's type annotation to be wrapped in a TypedBinding node, got %#v", tryStmt.Kids)
	}
	if len(param.Kids) != 1 {
		t.Fatalf("expected TypedBinding to wrap exactly the binding target, got %#v", param.Kids)
	}
	if _, ok := param.Kids[0].(*ast.Identifier); !ok {
		t.Fatalf("expected the wrapped binding target to be an Identifier, got %T", param.Kids[0])
	}
}

func TestForOfAndForInLoops(t *testing.T) {
	p := mustParse(t, "for (const x of xs) { console.log(x); }\nfor (const k in obj) { console.log(k); }")
	if g, ok := firstStmt(p, 0).(*ast.Generic); !ok || g.Kind != "ForInOfStatement" {
		t.Fatalf("expected a ForInOfStatement, got %#v", firstStmt(p, 0))
	}
	if g, ok := firstStmt(p, 1).(*ast.Generic); !ok || g.Kind != "ForInOfStatement" {
		t.Fatalf("expected a ForInOfStatement, got %#v", firstStmt(p, 1))
	}
}
