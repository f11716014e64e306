package ast

// TypeAnnotation is an opaque, unparsed type-syntax span: `: T`. The engine
// never inspects what's inside — per the erasure model, a type annotation is
// always blanked wholesale, including its leading colon.
type TypeAnnotation struct {
	Colon Idx // position of ':'
	To    Idx // end of the type expression
}

func (t *TypeAnnotation) Start() Idx { return t.Colon }
func (t *TypeAnnotation) End() Idx   { return t.To }

// AngleList is a type-parameter list (`<T, U>`) or type-argument list
// (`<string, number>`). The parser records only the opening `<` and the
// span of the element list; the closing `>` is not exposed directly (it is
// ambiguous with `>>`/`>>>`/`>=` at the lexical level), so the engine locates
// it with the scanner adapter from LastElemEnd to the enclosing node's end,
// exactly as the distilled spec's §4.3.5 describes.
type AngleList struct {
	LessThan       Idx // position of '<'
	FirstElemStart Idx
	LastElemEnd    Idx
}
