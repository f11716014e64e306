package ast

import "github.com/t14raptor/ts-erase/token"

// VariableStatement is `var|let|const x = ..., y = ...;`.
type VariableStatement struct {
	From, To  Idx
	Token     token.Token // Var, Let or Const
	Modifiers Modifiers   // only `declare` is meaningful here
	List      []*VariableDeclarator
}

func (n *VariableStatement) Start() Idx { return n.From }
func (n *VariableStatement) End() Idx   { return n.To }
func (n *VariableStatement) Children() []Node {
	kids := make([]Node, len(n.List))
	for i, d := range n.List {
		kids[i] = d
	}
	return kids
}

// VariableDeclarator is one `name: T = init` binding within a VariableStatement.
type VariableDeclarator struct {
	Target         Node // Identifier or a destructuring pattern (Generic)
	Exclamation    *Idx // position of a definite-assignment `!`, if present
	TypeAnnotation *TypeAnnotation
	Initializer    Node
}

func (n *VariableDeclarator) Start() Idx { return n.Target.Start() }
func (n *VariableDeclarator) End() Idx {
	if n.Initializer != nil {
		return n.Initializer.End()
	}
	if n.TypeAnnotation != nil {
		return n.TypeAnnotation.End()
	}
	if n.Exclamation != nil {
		return *n.Exclamation + 1
	}
	return n.Target.End()
}
func (n *VariableDeclarator) Children() []Node {
	kids := []Node{n.Target}
	if n.Initializer != nil {
		kids = append(kids, n.Initializer)
	}
	return kids
}

// TypeAliasDeclaration is `type Name<...> = T;`. Blanked wholesale.
type TypeAliasDeclaration struct{ From, To Idx }

func (n *TypeAliasDeclaration) Start() Idx { return n.From }
func (n *TypeAliasDeclaration) End() Idx   { return n.To }

// InterfaceDeclaration is `interface Name<...> extends ... { ... }`. Blanked
// wholesale.
type InterfaceDeclaration struct{ From, To Idx }

func (n *InterfaceDeclaration) Start() Idx { return n.From }
func (n *InterfaceDeclaration) End() Idx   { return n.To }

// IndexSignature is `[key: string]: T;`, found inside class bodies (and,
// shallowly, interface/type-literal bodies which are blanked wholesale
// anyway). Blanked wholesale.
type IndexSignature struct{ From, To Idx }

func (n *IndexSignature) Start() Idx { return n.From }
func (n *IndexSignature) End() Idx   { return n.To }

// EnumDeclaration is `[const] enum Name { ... }`.
type EnumDeclaration struct {
	From, To  Idx
	Modifiers Modifiers
}

func (n *EnumDeclaration) Start() Idx { return n.From }
func (n *EnumDeclaration) End() Idx   { return n.To }

// ModuleDeclaration is `namespace|module Name { ... }`.
type ModuleDeclaration struct {
	From, To  Idx
	Modifiers Modifiers
}

func (n *ModuleDeclaration) Start() Idx { return n.From }
func (n *ModuleDeclaration) End() Idx   { return n.To }

// ImportSpecifier is one named binding within an import clause's `{ ... }`.
type ImportSpecifier struct {
	From, To      Idx
	TypeOnly      bool
	TrailingComma *Idx // end of a trailing comma following this specifier, if any
}

// ImportDeclaration is `import ... from "...";`.
type ImportDeclaration struct {
	From, To    Idx
	TypeOnly    bool
	Specifiers  []ImportSpecifier
}

func (n *ImportDeclaration) Start() Idx { return n.From }
func (n *ImportDeclaration) End() Idx   { return n.To }

// ImportEqualsDeclaration is `import x = require("...")` or `import x = A.B`.
// Unsupported: reported as an error and left intact.
type ImportEqualsDeclaration struct{ From, To Idx }

func (n *ImportEqualsDeclaration) Start() Idx { return n.From }
func (n *ImportEqualsDeclaration) End() Idx   { return n.To }

// ExportSpecifier is one named binding within an export clause's `{ ... }`.
type ExportSpecifier struct {
	From, To      Idx
	TypeOnly      bool
	TrailingComma *Idx
}

// ExportDeclaration is `export { ... } [from "..."];` or `export type {...}`
// or a re-export.
type ExportDeclaration struct {
	From, To   Idx
	TypeOnly   bool
	Specifiers []ExportSpecifier
}

func (n *ExportDeclaration) Start() Idx { return n.From }
func (n *ExportDeclaration) End() Idx   { return n.To }

// ExportAssignment is `export = expr;` (IsEquals) or `export default expr;`.
type ExportAssignment struct {
	From, To  Idx
	IsEquals  bool
	Expression Node
}

func (n *ExportAssignment) Start() Idx { return n.From }
func (n *ExportAssignment) End() Idx   { return n.To }
func (n *ExportAssignment) Children() []Node {
	if n.Expression == nil {
		return nil
	}
	return []Node{n.Expression}
}
