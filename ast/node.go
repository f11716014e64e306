// Package ast defines the syntax tree produced by the parser and consumed by
// the erasure engine.
//
// Unlike a typical all-purpose JavaScript AST, most constructs with no
// erasure rule of their own (ordinary control flow, most expressions) are not
// given a dedicated Go type. They are represented by [Generic], which just
// holds an ordered list of children for pure recursion. Only the constructs
// the engine treats specially get a concrete type: that type is itself the
// node's "kind" tag, consumed via a Go type switch.
package ast

// Idx is a byte offset into the original source.
type Idx int

// Node is implemented by every syntax tree node.
type Node interface {
	// Start returns the offset of the first byte belonging to the node.
	Start() Idx
	// End returns the offset one past the last byte belonging to the node.
	End() Idx
}

// Parent is implemented by any node the engine may need to recurse into
// generically (i.e. with no erasure rule of its own).
type Parent interface {
	Node
	Children() []Node
}

// Generic is a construct with no erasure rule of its own. The engine
// recurses into Kids to find nested constructs (calls, assertions, etc.)
// that do have a rule.
type Generic struct {
	Kind     string // a short label for diagnostics only, e.g. "BinaryExpression"
	From, To Idx
	Kids     []Node
}

func (n *Generic) Start() Idx        { return n.From }
func (n *Generic) End() Idx          { return n.To }
func (n *Generic) Children() []Node  { return n.Kids }

// Program is the root of the tree.
type Program struct {
	Body []Node
}

func (n *Program) Start() Idx {
	if len(n.Body) == 0 {
		return 0
	}
	return n.Body[0].Start()
}

func (n *Program) End() Idx {
	if len(n.Body) == 0 {
		return 0
	}
	return n.Body[len(n.Body)-1].End()
}

func (n *Program) Children() []Node { return n.Body }

// Identifier is a bare name reference or binding.
type Identifier struct {
	NameStart Idx
	Name      string
}

func (n *Identifier) Start() Idx { return n.NameStart }
func (n *Identifier) End() Idx   { return n.NameStart + Idx(len(n.Name)) }
