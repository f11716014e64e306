package ast

// HeritageKind distinguishes `extends` from `implements`.
type HeritageKind int

const (
	HeritageExtends HeritageKind = iota
	HeritageImplements
)

// HeritageClause is one `extends ...` or `implements ...` clause of a class.
type HeritageClause struct {
	Kind     HeritageKind
	From, To Idx
	List     []Node // ExpressionWithTypeArguments or plain expressions
}

func (n *HeritageClause) Start() Idx { return n.From }
func (n *HeritageClause) End() Idx   { return n.To }
func (n *HeritageClause) Children() []Node { return n.List }

// ClassLiteral is the shared shape of a class declaration and class
// expression; Declaration/Expression wrap it to carry statement-vs-expression
// position.
type ClassLiteral struct {
	Class      Idx // start of the declaration: the `class` keyword, or the first decorator, modifier or `export` before it
	RightBrace Idx
	Modifiers  Modifiers
	Decorators []*Decorator
	Name       *Identifier // nil for anonymous class expressions
	TypeParams *AngleList
	Heritage   []*HeritageClause
	Body       []Node // *PropertyDeclaration, *MethodDefinition, *ClassStaticBlock, *IndexSignature
}

func (n *ClassLiteral) Start() Idx { return n.Class }
func (n *ClassLiteral) End() Idx   { return n.RightBrace + 1 }
func (n *ClassLiteral) Children() []Node {
	kids := make([]Node, 0, len(n.Decorators)+len(n.Heritage)+len(n.Body))
	for _, d := range n.Decorators {
		kids = append(kids, d)
	}
	for _, h := range n.Heritage {
		kids = append(kids, h)
	}
	kids = append(kids, n.Body...)
	return kids
}

// ClassDeclaration is `class Name ... {}` used as a statement.
type ClassDeclaration struct{ *ClassLiteral }

// ClassExpression is `class Name ... {}` used as an expression.
type ClassExpression struct{ *ClassLiteral }

// PropertyDeclaration is a class field: `[modifiers] name[?|!][: T] [= init];`.
type PropertyDeclaration struct {
	Idx            Idx
	To             Idx
	Decorators     []*Decorator
	Modifiers      Modifiers
	Name           Node // Identifier, PrivateIdentifier, or computed expression
	Computed       bool
	Optional       *Idx // position of `?`
	Exclamation    *Idx // position of `!`
	TypeAnnotation *TypeAnnotation
	Initializer    Node
}

func (n *PropertyDeclaration) Start() Idx { return n.Idx }
func (n *PropertyDeclaration) End() Idx   { return n.To }
func (n *PropertyDeclaration) Children() []Node {
	kids := make([]Node, 0, len(n.Decorators)+2)
	for _, d := range n.Decorators {
		kids = append(kids, d)
	}
	kids = append(kids, n.Name)
	if n.Initializer != nil {
		kids = append(kids, n.Initializer)
	}
	return kids
}

// MethodKind distinguishes ordinary methods from accessors and constructors.
type MethodKind int

const (
	MethodOrdinary MethodKind = iota
	MethodGet
	MethodSet
	MethodConstructor
)

// MethodDefinition is a class method, accessor, or constructor; its body is
// modeled as a *FunctionLike.
type MethodDefinition struct {
	Idx        Idx
	Decorators []*Decorator
	Modifiers  Modifiers
	Name       Node
	Computed   bool
	Kind       MethodKind
	Fn         *FunctionLike
}

func (n *MethodDefinition) Start() Idx { return n.Idx }
func (n *MethodDefinition) End() Idx   { return n.Fn.End() }
func (n *MethodDefinition) Children() []Node {
	kids := make([]Node, 0, len(n.Decorators)+2)
	for _, d := range n.Decorators {
		kids = append(kids, d)
	}
	kids = append(kids, n.Name, n.Fn)
	return kids
}

// ClassStaticBlock is `static { ... }`.
type ClassStaticBlock struct {
	Static Idx
	Block  *Generic // a BlockStatement-shaped Generic
}

func (n *ClassStaticBlock) Start() Idx { return n.Static }
func (n *ClassStaticBlock) End() Idx   { return n.Block.End() }
func (n *ClassStaticBlock) Children() []Node { return []Node{n.Block} }
