package blank_test

import (
	"testing"

	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/blank"
)

func TestBlankPreservesLengthAndNewlines(t *testing.T) {
	src := "let x: number\n= 1;\n"
	b := blank.New(src)
	b.Blank(5, 13)
	got := b.String()

	if len(got) != len(src) {
		t.Fatalf("length changed: got %d, want %d", len(got), len(src))
	}
	for i := range src {
		if (src[i] == '\n') != (got[i] == '\n') {
			t.Fatalf("newline mismatch at %d: %q vs %q", i, src[i], got[i])
		}
	}
	if got != "let x        \n= 1;\n" {
		t.Fatalf("unexpected blank result: %q", got)
	}
}

func TestBlankButStartWithSemi(t *testing.T) {
	b := blank.New("type T = string; a();")
	b.BlankButStartWithSemi(0, 16)
	got := b.String()
	want := ";                a();"
	if got[:16] != want[:16] {
		t.Fatalf("got %q, want prefix %q", got, want)
	}
	if got[0] != ';' {
		t.Fatalf("expected leading ';', got %q", got[0])
	}
}

func TestBlankButEndWithCloseParen(t *testing.T) {
	b := blank.New("(a: number)")
	b.BlankButEndWithCloseParen(1, 11)
	got := b.String()
	if got[len(got)-1] != ')' {
		t.Fatalf("expected trailing ')', got %q", got)
	}
	if len(got) != len("(a: number)") {
		t.Fatalf("length changed: %q", got)
	}
}

func TestByteReturnsOriginal(t *testing.T) {
	b := blank.New("abc")
	b.Blank(0, 3)
	if b.Byte(ast.Idx(0)) != 'a' {
		t.Fatalf("Byte should return original source, got %q", b.Byte(ast.Idx(0)))
	}
	if b.String() != "   " {
		t.Fatalf("expected fully blanked output, got %q", b.String())
	}
}

func TestLen(t *testing.T) {
	b := blank.New("hello")
	if b.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", b.Len())
	}
}
