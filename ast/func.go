package ast

// FuncKind distinguishes the surface forms a FunctionLike can take; all of
// them share the same erasure rule (§4.3.9 of the specification).
type FuncKind int

const (
	FuncDeclaration FuncKind = iota
	FuncExpression
	FuncMethod
	FuncArrow
)

// Parameter is one entry in a parameter list.
type Parameter struct {
	From, To Idx

	// IsThisParam is true for a leading `this: T` pseudo-parameter, which
	// exists purely for type checking and is erased in full, trailing comma
	// included.
	IsThisParam bool

	// Modifiers other than IsThisParam: `public`/`private`/`protected`/
	// `readonly` on a constructor parameter make it a parameter property,
	// which the engine cannot erase without rewriting the constructor body,
	// and therefore reports as an error per modifier.
	Modifiers Modifiers

	Decorators     []*Decorator
	Name           Node // Identifier or destructuring pattern
	Optional       *Idx // position of `?`
	TypeAnnotation *TypeAnnotation
	Initializer    Node
	TrailingComma  *Idx
}

func (p *Parameter) Start() Idx { return p.From }
func (p *Parameter) End() Idx   { return p.To }
func (p *Parameter) Children() []Node {
	kids := make([]Node, 0, len(p.Decorators)+2)
	for _, d := range p.Decorators {
		kids = append(kids, d)
	}
	kids = append(kids, p.Name)
	if p.Initializer != nil {
		kids = append(kids, p.Initializer)
	}
	return kids
}

// ParameterList is the `(...)` span of a function-like.
type ParameterList struct {
	Opening Idx
	Closing Idx
	List    []*Parameter
}

func (n *ParameterList) Start() Idx { return n.Opening }
func (n *ParameterList) End() Idx   { return n.Closing + 1 }

// FunctionLike unifies function declarations/expressions, class methods,
// constructors, accessors, and arrow functions: every surface form shares the
// erasure rule in §4.3.9.
type FunctionLike struct {
	Kind FuncKind

	From Idx // `function` keyword, member start (decorators and modifiers included), or arrow start (`async` or the parameter list)
	To   Idx

	Modifiers  Modifiers // `declare` on ambient function declarations
	Name       *Identifier
	TypeParams *AngleList
	Optional   *Idx // `?` after a method name (ambient optional method)
	Params     ParameterList
	ReturnType *TypeAnnotation

	// ArrowToken is the position of `=>`, only set for FuncArrow.
	ArrowToken Idx

	Async, Generator bool

	// HasBody is false for an overload signature or ambient declaration: the
	// whole node is then a type-only construct with no runtime presence.
	HasBody bool
	// Body is a BlockStatement-shaped *Generic for a block body, or any
	// expression node for an arrow function's concise body.
	Body Node
}

func (n *FunctionLike) Start() Idx { return n.From }
func (n *FunctionLike) End() Idx   { return n.To }
func (n *FunctionLike) Children() []Node {
	kids := make([]Node, 0, len(n.Params.List)+2)
	if n.Name != nil {
		kids = append(kids, n.Name)
	}
	for _, p := range n.Params.List {
		kids = append(kids, p)
	}
	if n.Body != nil {
		kids = append(kids, n.Body)
	}
	return kids
}

// FunctionDeclaration is a function-like used as a top-level statement.
type FunctionDeclaration struct{ *FunctionLike }

// FunctionExpression is a function-like used as an expression (including
// arrow functions).
type FunctionExpression struct{ *FunctionLike }
