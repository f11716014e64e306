package erase_test

import (
	"strings"
	"testing"

	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/erase"
)

// mustTransform runs Transform and fails the test on a parse error, also
// collecting every onError diagnostic fired along the way.
func mustTransform(t *testing.T, src string) (string, []string) {
	t.Helper()
	var diags []string
	out, err := erase.Transform(src, func(n ast.Node, msg string) {
		diags = append(diags, msg)
	})
	if err != nil {
		t.Fatalf("Transform(%q) returned parse error: %v", src, err)
	}
	return out, diags
}

func assertSameLengthAndNewlines(t *testing.T, src, out string) {
	t.Helper()
	if len(out) != len(src) {
		t.Fatalf("length changed: got %d, want %d\n got: %q\nwant: %q", len(out), len(src), out, src)
	}
	for i := range src {
		if (src[i] == '\n') != (out[i] == '\n') {
			t.Fatalf("newline mismatch at byte %d: src=%q out=%q", i, src, out)
		}
	}
}

func assertOnlyBlankedWith(t *testing.T, src, out string, allowed string) {
	t.Helper()
	for i := range src {
		if src[i] != out[i] && !strings.ContainsRune(allowed, rune(out[i])) {
			t.Fatalf("byte %d changed from %q to %q, not in allowed set %q", i, src[i], out[i], allowed)
		}
	}
}

func TestVariableAnnotationAndNonNullBlanked(t *testing.T) {
	src := "let x: number = 1!;"
	out, _ := mustTransform(t, src)
	assertSameLengthAndNewlines(t, src, out)
	assertOnlyBlankedWith(t, src, out, " ;")

	if !strings.HasPrefix(out, "let x") {
		t.Fatalf("expected identifier to survive, got %q", out)
	}
	if !strings.Contains(out, "= 1") {
		t.Fatalf("expected initializer to survive, got %q", out)
	}
	if strings.Contains(out, "number") || strings.Contains(out, ":") {
		t.Fatalf("expected type annotation erased, got %q", out)
	}
	if strings.Contains(out, "!") {
		t.Fatalf("expected non-null assertion erased, got %q", out)
	}
	if !strings.HasSuffix(out, ";") {
		t.Fatalf("expected trailing ';' preserved, got %q", out)
	}
}

func TestAsSatisfiesChainBlanked(t *testing.T) {
	src := "[] as [] satisfies [];"
	out, _ := mustTransform(t, src)
	assertSameLengthAndNewlines(t, src, out)
	assertOnlyBlankedWith(t, src, out, " ;")

	if !strings.HasPrefix(out, "[]") {
		t.Fatalf("expected array literal to survive, got %q", out)
	}
	if !strings.HasSuffix(out, ";") {
		t.Fatalf("expected original trailing ';' preserved, got %q", out)
	}
	if strings.Contains(out, "as") || strings.Contains(out, "satisfies") {
		t.Fatalf("expected 'as'/'satisfies' erased, got %q", out)
	}
}

func TestTypeOnlyImportBlankedWithLeadingSemi(t *testing.T) {
	src := `let z = 1;
import type T from "x"; a();`
	out, _ := mustTransform(t, src)
	assertSameLengthAndNewlines(t, src, out)
	assertOnlyBlankedWith(t, src, out, " ;")

	lines := strings.SplitN(out, "\n", 2)
	if lines[0] != "let z = 1;" {
		t.Fatalf("expected first line untouched, got %q", lines[0])
	}
	secondLine := lines[1]
	if secondLine[0] != ';' {
		t.Fatalf("expected blanked import to start with ';' since runtime JS already emitted, got %q", secondLine)
	}
	if !strings.HasSuffix(secondLine, "a();") {
		t.Fatalf("expected trailing call expression to survive, got %q", secondLine)
	}
	if strings.Contains(secondLine, "import") {
		t.Fatalf("expected 'import' keyword erased, got %q", secondLine)
	}
}

func TestClassGenericsAndHeritageBlanked(t *testing.T) {
	src := "class C<T> extends B<T> implements I { m<U>(a?: string): void {} }"
	out, _ := mustTransform(t, src)
	assertSameLengthAndNewlines(t, src, out)
	assertOnlyBlankedWith(t, src, out, " ")

	if !strings.HasPrefix(out, "class C") {
		t.Fatalf("expected class name to survive, got %q", out)
	}
	if !strings.Contains(out, "extends B") {
		t.Fatalf("expected extends clause base to survive, got %q", out)
	}
	if strings.Contains(out, "implements") {
		t.Fatalf("expected implements clause erased, got %q", out)
	}
	if strings.Contains(out, "<T>") || strings.Contains(out, "<U>") {
		t.Fatalf("expected type parameter/argument lists erased, got %q", out)
	}
	if !strings.Contains(out, "m") || !strings.Contains(out, "(a") {
		t.Fatalf("expected method name and parameter name to survive, got %q", out)
	}
	if strings.Contains(out, "string") || strings.Contains(out, "void") {
		t.Fatalf("expected parameter and return types erased, got %q", out)
	}
	if !strings.Contains(out, "{}") {
		t.Fatalf("expected empty method body to survive, got %q", out)
	}
}

func TestThisParameterBlanked(t *testing.T) {
	src := "function f(this: T, x: number): void { return; }"
	out, _ := mustTransform(t, src)
	assertSameLengthAndNewlines(t, src, out)
	assertOnlyBlankedWith(t, src, out, " ")

	if !strings.HasPrefix(out, "function f(") {
		t.Fatalf("expected function signature prefix to survive, got %q", out)
	}
	if strings.Contains(out, "this") {
		t.Fatalf("expected 'this' parameter erased, got %q", out)
	}
	if !strings.Contains(out, "x") {
		t.Fatalf("expected parameter name 'x' to survive, got %q", out)
	}
	if strings.Contains(out, "number") || strings.Contains(out, "void") {
		t.Fatalf("expected parameter and return type annotations erased, got %q", out)
	}
	if !strings.Contains(out, ") ") || !strings.HasSuffix(strings.TrimRight(out, "\n"), "return; }") {
		t.Fatalf("expected body to survive intact, got %q", out)
	}
}

func TestArrowMultilineReturnTypeKeepsCloseParenBeforeArrow(t *testing.T) {
	src := "const f = (a: number)\n  : number\n  => a;"
	out, _ := mustTransform(t, src)
	assertSameLengthAndNewlines(t, src, out)

	arrow := strings.Index(out, "=>")
	if arrow <= 0 {
		t.Fatalf("expected '=>' to survive erasure, got %q", out)
	}
	// The substitute ')' must sit directly adjacent to '=>', with nothing
	// (in particular no newline) between them: that is what keeps the
	// arrow function's head on one logical line for ASI purposes. Since
	// erasure preserves length and newline positions, out[arrow-1] can
	// only be ')' if it is on the same source line as '=>'.
	if out[arrow-1] != ')' {
		t.Fatalf("expected ')' immediately before '=>', got %q before arrow in %q", out[arrow-1], out)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[2], "=> a;") {
		t.Fatalf("expected arrow and body to survive on the third line, got %q", lines[2])
	}
}

func TestArrowMultilineReturnTypeColumnZeroDoesNotPanic(t *testing.T) {
	src := "const f = (a: number)\n:number\n=>a;"
	var diags []string
	out, err := erase.Transform(src, func(n ast.Node, msg string) {
		diags = append(diags, msg)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSameLengthAndNewlines(t, src, out)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic about the unresolved ASI hazard, got none")
	}
}

func TestIdempotenceOnPlainJS(t *testing.T) {
	src := "function add(a, b) {\n  return a + b;\n}\nconsole.log(add(1, 2));\n"
	out, _ := mustTransform(t, src)
	if out != src {
		t.Fatalf("expected plain JS to survive unchanged,\n got: %q\nwant: %q", out, src)
	}
}

func TestErrorFreeSubsetClosure(t *testing.T) {
	src := "class C<T> { private x: number = 1; }"
	out, diags := mustTransform(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	out2, _ := mustTransform(t, out)
	if out2 != out {
		t.Fatalf("expected transform(transform(s)) == transform(s),\n first:  %q\nsecond: %q", out, out2)
	}
}

func TestImportEqualsReportsError(t *testing.T) {
	_, diags := mustTransform(t, `import x = require("mod"); x();`)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for 'import =' declaration")
	}
}

func TestExportEqualsReportsError(t *testing.T) {
	_, diags := mustTransform(t, `const x = 1; export = x;`)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for 'export =' assignment")
	}
}

func TestNonAmbientEnumReportsError(t *testing.T) {
	_, diags := mustTransform(t, `enum Color { Red, Green }`)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for non-ambient enum")
	}
}

func TestDeclareEnumBlankedWithoutError(t *testing.T) {
	src := "declare enum Color { Red, Green }\nconsole.log(1);"
	out, diags := mustTransform(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics for ambient enum, got %v", diags)
	}
	assertSameLengthAndNewlines(t, src, out)
	if strings.Contains(out, "enum") {
		t.Fatalf("expected ambient enum erased, got %q", out)
	}
}

func TestLegacyTypeAssertionReportsErrorButKeepsSyntax(t *testing.T) {
	src := "const x = <number>y;"
	out, diags := mustTransform(t, src)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for legacy type assertion")
	}
	if out != src {
		t.Fatalf("expected legacy assertion syntax left verbatim, got %q", out)
	}
}

func TestCatchClauseTypeAnnotationIsErased(t *testing.T) {
	src := "try {\n  f();\n} catch (e: unknown) {\n  console.log(e);\n}\n"
	out, _ := mustTransform(t, src)
	assertSameLengthAndNewlines(t, src, out)
	if strings.Contains(out, "unknown") {
		t.Fatalf("expected the catch clause's type annotation to be blanked, got %q", out)
	}
	if !strings.Contains(out, "catch (e") {
		t.Fatalf("expected the catch binding itself to survive, got %q", out)
	}
}

func TestParameterPropertyReportsError(t *testing.T) {
	_, diags := mustTransform(t, `class C { constructor(private x: number) {} }`)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for parameter property modifier")
	}
}

func TestTypeAliasAndInterfaceBlanked(t *testing.T) {
	src := "type T = string;\ninterface I { x: number }\nconsole.log(1);"
	out, _ := mustTransform(t, src)
	assertSameLengthAndNewlines(t, src, out)
	if strings.Contains(out, "type T") || strings.Contains(out, "interface I") {
		t.Fatalf("expected type alias and interface erased, got %q", out)
	}
	if !strings.Contains(out, "console.log(1);") {
		t.Fatalf("expected trailing statement to survive, got %q", out)
	}
}
