// Package erase implements the syntax-directed erasure engine: a traversal
// over the ast.Program the parser produces that decides, per construct,
// which byte ranges to blank, how to preserve ASI across blanked regions,
// and which constructs are unsupported and must be reported through the
// error callback. See SPEC_FULL.md §4 for the per-kind rule table this
// package realizes.
package erase

import (
	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/blank"
	"github.com/t14raptor/ts-erase/parser"
	"github.com/t14raptor/ts-erase/parser/scanner"
	"github.com/t14raptor/ts-erase/token"
)

// context carries all cross-cutting state through a single Transform call,
// passed explicitly to every visit so the engine has no package-level
// mutable state and is safe to run concurrently across separate calls.
type context struct {
	src string
	out *blank.String
	sc  *scanner.Scanner

	// seenJS is true once any runtime (non-blanked) JavaScript has been
	// emitted earlier in the enclosing function body, or earlier in the
	// program outside any function. A function body starts with it false and
	// restores the outer value on exit; other nested blocks share it with the
	// statements around them.
	seenJS bool

	// missingSemiPos holds the end offset of the most recently visited
	// expression statement that lacked an explicit trailing ';', or -1.
	// Single-slot: only an ExpressionStatement visit updates it, and only
	// when that statement itself has no semicolon (see DESIGN.md for the
	// Open Question this resolves).
	missingSemiPos ast.Idx

	onError func(ast.Node, string)
}

// Transform erases type-only syntax from src, returning a plain-JavaScript
// string of identical length with newlines preserved position-for-position.
// The returned error reports a parse failure only; unsupported-but-parseable
// constructs are reported exclusively through onError and never fail the
// call.
func Transform(src string, onError func(ast.Node, string)) (string, error) {
	prog, err := parser.Parse(src)
	out := blank.New(src)
	ctx := &context{src: src, out: out, sc: scanner.New(src), missingSemiPos: -1, onError: onError}
	if prog != nil {
		ctx.visitStatementList(prog.Body, true)
	}
	return out.String(), err
}

func (ctx *context) report(n ast.Node, msg string) {
	if ctx.onError != nil {
		ctx.onError(n, msg)
	}
}

// blankStatement implements §4.3.4: a plain blank if no runtime JS has been
// emitted yet in the enclosing function body (or program), else a
// semicolon-first blank so a
// same-line predecessor can't fuse with whatever follows the blanked span.
func (ctx *context) blankStatement(_ ast.Node, from, to ast.Idx) {
	if !ctx.seenJS {
		ctx.out.Blank(from, to)
		return
	}
	ctx.out.BlankButStartWithSemi(from, to)
}

// blankModifiers blanks every erasable modifier keyword (private, protected,
// public, abstract, override, declare, readonly) and leaves the rest intact.
func (ctx *context) blankModifiers(mods ast.Modifiers) {
	for _, m := range mods {
		if m.Erasable() {
			ctx.out.Blank(m.From, m.To)
		}
	}
}

// scanForGreater locates the end of a single '>' character in [from, to),
// splitting it out of a longer token ('>>', '>>>', '>=') exactly as the
// parser's own eatOneGreater does, but using the engine's own scanner
// instance: the parser's scanner is long gone by the time the engine runs.
// Returns from, unchanged, if no such token starts there (§4.2's
// scanForToken contract).
func (ctx *context) scanForGreater(from, to ast.Idx) ast.Idx {
	if from >= to {
		return from
	}
	ctx.sc.SetRange(int(from), int(to))
	tok := ctx.sc.Next(false)
	switch tok.Kind {
	case token.Greater, token.ShiftRight, token.UShiftRight, token.GreaterOrEqual:
		return tok.Start + 1
	default:
		return from
	}
}

// blankAngleList implements §4.3.5: the opening '<' sits one byte before the
// list's first element; the closing '>' is found by scanning forward from
// the last element's end to the enclosing node's end.
func (ctx *context) blankAngleList(node ast.Node, al *ast.AngleList) {
	closeEnd := ctx.scanForGreater(al.LastElemEnd, node.End())
	if closeEnd == al.LastElemEnd {
		return
	}
	ctx.out.Blank(al.LessThan, closeEnd)
}
