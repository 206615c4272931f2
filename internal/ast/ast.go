// Package ast defines the raw parse tree for the Picto language: the
// untyped node shapes the parser produces and the semantic analyzer
// consumes. The closed set of node types is the kind discriminator; each
// pass dispatches with a type switch over it. Nodes carry no resolved type
// information; that belongs to the core IR built by the analyzer.
package ast

import (
	"strings"

	"github.com/picto-lang/picto/internal/position"
)

// Node is the base interface for all parse tree nodes. Every node records
// the source span it covers for error reporting.
type Node interface {
	GetSpan() position.Span
	String() string
}

// Statement represents all statement nodes in the parse tree.
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes in the parse tree.
type Expression interface {
	Node
	expressionNode()
}

// TypeNode represents all type annotation nodes in the parse tree.
type TypeNode interface {
	Node
	typeNode()
}

// ===== Program structure =====

// Program is the root of the parse tree: a complete Picto source file.
type Program struct {
	Span       position.Span
	Statements []Statement
}

func (p *Program) GetSpan() position.Span { return p.Span }
func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}

// ===== Statements =====

// VarDecl is a variable declaration: 📦 name [: Type] = init, or 🔒 for an
// immutable binding.
type VarDecl struct {
	Span    position.Span
	Name    string
	Mutable bool
	Type    TypeNode // nil when the type is inferred from the initializer
	Init    Expression
}

func (s *VarDecl) GetSpan() position.Span { return s.Span }
func (s *VarDecl) String() string {
	kw := "🔒"
	if s.Mutable {
		kw = "📦"
	}
	return kw + " " + s.Name + " = " + s.Init.String()
}
func (s *VarDecl) statementNode() {}

// Param is a single function parameter with its declared type.
type Param struct {
	Span position.Span
	Name string
	Type TypeNode
}

// Field is a single struct field with its declared type.
type Field struct {
	Span position.Span
	Name string
	Type TypeNode
}

// FuncDecl is a function declaration: ⚙️ name(params) [: Return] { body }.
type FuncDecl struct {
	Span       position.Span
	Name       string
	Params     []Param
	ReturnType TypeNode // nil means void
	Body       []Statement
}

func (s *FuncDecl) GetSpan() position.Span { return s.Span }
func (s *FuncDecl) String() string         { return "⚙️ " + s.Name }
func (s *FuncDecl) statementNode()         {}

// ClassDecl is a class declaration: 🏛 Name { methods }. Only function
// declarations inside the body become methods.
type ClassDecl struct {
	Span position.Span
	Name string
	Body []Statement
}

func (s *ClassDecl) GetSpan() position.Span { return s.Span }
func (s *ClassDecl) String() string         { return "🏛 " + s.Name }
func (s *ClassDecl) statementNode()         {}

// StructDecl is a struct declaration: 📐 Name { field: Type, ... }.
type StructDecl struct {
	Span   position.Span
	Name   string
	Fields []Field
}

func (s *StructDecl) GetSpan() position.Span { return s.Span }
func (s *StructDecl) String() string         { return "📐 " + s.Name }
func (s *StructDecl) statementNode()         {}

// Assign is a plain assignment: target = value. The target is a plain
// identifier or a dotted member access.
type Assign struct {
	Span   position.Span
	Target Expression
	Value  Expression
}

func (s *Assign) GetSpan() position.Span { return s.Span }
func (s *Assign) String() string         { return s.Target.String() + " = " + s.Value.String() }
func (s *Assign) statementNode()         {}

// AddAssign is a compound assignment: target += value.
type AddAssign struct {
	Span   position.Span
	Target Expression
	Value  Expression
}

func (s *AddAssign) GetSpan() position.Span { return s.Span }
func (s *AddAssign) String() string         { return s.Target.String() + " += " + s.Value.String() }
func (s *AddAssign) statementNode()         {}

// Increment is target++.
type Increment struct {
	Span   position.Span
	Target Expression
}

func (s *Increment) GetSpan() position.Span { return s.Span }
func (s *Increment) String() string         { return s.Target.String() + "++" }
func (s *Increment) statementNode()         {}

// Decrement is target--.
type Decrement struct {
	Span   position.Span
	Target Expression
}

func (s *Decrement) GetSpan() position.Span { return s.Span }
func (s *Decrement) String() string         { return s.Target.String() + "--" }
func (s *Decrement) statementNode()         {}

// If is a conditional: ❓ test { consequent } with an optional alternate.
// The alternate is exactly one of ElseIf (a nested If forming an else-if
// chain) or Else (a flat statement list); the parser right-folds multiple
// ❗❓ clauses so the last chain link carries the final ❗ block.
type If struct {
	Span       position.Span
	Test       Expression
	Consequent []Statement
	ElseIf     *If
	Else       []Statement
}

func (s *If) GetSpan() position.Span { return s.Span }
func (s *If) String() string         { return "❓ " + s.Test.String() }
func (s *If) statementNode()         {}

// While is a loop: 🔁 test { body }.
type While struct {
	Span position.Span
	Test Expression
	Body []Statement
}

func (s *While) GetSpan() position.Span { return s.Span }
func (s *While) String() string         { return "🔁 " + s.Test.String() }
func (s *While) statementNode()         {}

// ForRange iterates a numeric range: 🔂 i in low ... high { body }.
// Op is "..." for a closed range or "..<" for a half-open one.
type ForRange struct {
	Span     position.Span
	Iterator string
	Low      Expression
	Op       string
	High     Expression
	Body     []Statement
}

func (s *ForRange) GetSpan() position.Span { return s.Span }
func (s *ForRange) String() string {
	return "🔂 " + s.Iterator + " in " + s.Low.String() + " " + s.Op + " " + s.High.String()
}
func (s *ForRange) statementNode() {}

// ForEach iterates a collection: 🔂 x in xs { body } for arrays, or
// 🔂 k, v in d { body } for dictionaries.
type ForEach struct {
	Span       position.Span
	Iterators  []string
	Collection Expression
	Body       []Statement
}

func (s *ForEach) GetSpan() position.Span { return s.Span }
func (s *ForEach) String() string {
	return "🔂 " + strings.Join(s.Iterators, ", ") + " in " + s.Collection.String()
}
func (s *ForEach) statementNode() {}

// Return is ↩️ with an optional value.
type Return struct {
	Span  position.Span
	Value Expression // nil for a bare return
}

func (s *Return) GetSpan() position.Span { return s.Span }
func (s *Return) String() string {
	if s.Value == nil {
		return "↩️"
	}
	return "↩️ " + s.Value.String()
}
func (s *Return) statementNode() {}

// Break is 🛑.
type Break struct {
	Span position.Span
}

func (s *Break) GetSpan() position.Span { return s.Span }
func (s *Break) String() string         { return "🛑" }
func (s *Break) statementNode()         {}

// Print is 🖨 expr, expr, ....
type Print struct {
	Span   position.Span
	Values []Expression
}

func (s *Print) GetSpan() position.Span { return s.Span }
func (s *Print) String() string {
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		parts[i] = v.String()
	}
	return "🖨 " + strings.Join(parts, ", ")
}
func (s *Print) statementNode() {}

// ExprStatement wraps an expression used in statement position (a call).
type ExprStatement struct {
	Span position.Span
	Expr Expression
}

func (s *ExprStatement) GetSpan() position.Span { return s.Span }
func (s *ExprStatement) String() string         { return s.Expr.String() }
func (s *ExprStatement) statementNode()         {}

// ===== Expressions =====

// IntLit is an integer literal.
type IntLit struct {
	Span  position.Span
	Value int64
	Raw   string
}

func (e *IntLit) GetSpan() position.Span { return e.Span }
func (e *IntLit) String() string         { return e.Raw }
func (e *IntLit) expressionNode()        {}

// FloatLit is a floating point literal.
type FloatLit struct {
	Span  position.Span
	Value float64
	Raw   string
}

func (e *FloatLit) GetSpan() position.Span { return e.Span }
func (e *FloatLit) String() string         { return e.Raw }
func (e *FloatLit) expressionNode()        {}

// StringLit is a string literal with escapes already resolved.
type StringLit struct {
	Span  position.Span
	Value string
}

func (e *StringLit) GetSpan() position.Span { return e.Span }
func (e *StringLit) String() string         { return "\"" + e.Value + "\"" }
func (e *StringLit) expressionNode()        {}

// BoolLit is ✅ or ❌.
type BoolLit struct {
	Span  position.Span
	Value bool
}

func (e *BoolLit) GetSpan() position.Span { return e.Span }
func (e *BoolLit) String() string {
	if e.Value {
		return "✅"
	}
	return "❌"
}
func (e *BoolLit) expressionNode() {}

// NoneLit is 🚫, the empty optional sentinel.
type NoneLit struct {
	Span position.Span
}

func (e *NoneLit) GetSpan() position.Span { return e.Span }
func (e *NoneLit) String() string         { return "🚫" }
func (e *NoneLit) expressionNode()        {}

// Identifier references a declared entity by name.
type Identifier struct {
	Span position.Span
	Name string
}

func (e *Identifier) GetSpan() position.Span { return e.Span }
func (e *Identifier) String() string         { return e.Name }
func (e *Identifier) expressionNode()        {}

// Binary is a binary operation: left op right.
type Binary struct {
	Span  position.Span
	Op    string
	Left  Expression
	Right Expression
}

func (e *Binary) GetSpan() position.Span { return e.Span }
func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}
func (e *Binary) expressionNode() {}

// Unary is a prefix operation: op operand.
type Unary struct {
	Span    position.Span
	Op      string
	Operand Expression
}

func (e *Unary) GetSpan() position.Span { return e.Span }
func (e *Unary) String() string         { return "(" + e.Op + e.Operand.String() + ")" }
func (e *Unary) expressionNode()        {}

// Call is a function or constructor invocation: callee(args).
type Call struct {
	Span   position.Span
	Callee Expression
	Args   []Expression
}

func (e *Call) GetSpan() position.Span { return e.Span }
func (e *Call) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}
func (e *Call) expressionNode() {}

// Member is a dotted field access: object.field, or object?.field through
// an optional.
type Member struct {
	Span   position.Span
	Object Expression
	Op     string // "." or "?."
	Field  string
}

func (e *Member) GetSpan() position.Span { return e.Span }
func (e *Member) String() string         { return e.Object.String() + e.Op + e.Field }
func (e *Member) expressionNode()        {}

// ArrayLit is [e1, e2, ...]; an empty literal becomes the typed empty
// array sentinel during analysis.
type ArrayLit struct {
	Span     position.Span
	Elements []Expression
}

func (e *ArrayLit) GetSpan() position.Span { return e.Span }
func (e *ArrayLit) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (e *ArrayLit) expressionNode() {}

// TupleLit is a parenthesized expression list: (e1, e2, ...).
type TupleLit struct {
	Span     position.Span
	Elements []Expression
}

func (e *TupleLit) GetSpan() position.Span { return e.Span }
func (e *TupleLit) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (e *TupleLit) expressionNode() {}

// DictLit is {k1: v1, k2: v2, ...}.
type DictLit struct {
	Span   position.Span
	Keys   []Expression
	Values []Expression
}

func (e *DictLit) GetSpan() position.Span { return e.Span }
func (e *DictLit) String() string {
	parts := make([]string, len(e.Keys))
	for i := range e.Keys {
		parts[i] = e.Keys[i].String() + ": " + e.Values[i].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (e *DictLit) expressionNode() {}

// ===== Type annotations =====

// NamedType is a simple type name: Int, Float, Bool, String, Void, Any, or
// a declared struct or class name.
type NamedType struct {
	Span position.Span
	Name string
}

func (t *NamedType) GetSpan() position.Span { return t.Span }
func (t *NamedType) String() string         { return t.Name }
func (t *NamedType) typeNode()              {}

// ArrayType is [Element].
type ArrayType struct {
	Span    position.Span
	Element TypeNode
}

func (t *ArrayType) GetSpan() position.Span { return t.Span }
func (t *ArrayType) String() string         { return "[" + t.Element.String() + "]" }
func (t *ArrayType) typeNode()              {}

// DictType is {Key: Value}.
type DictType struct {
	Span  position.Span
	Key   TypeNode
	Value TypeNode
}

func (t *DictType) GetSpan() position.Span { return t.Span }
func (t *DictType) String() string         { return "{" + t.Key.String() + ": " + t.Value.String() + "}" }
func (t *DictType) typeNode()              {}

// FuncType is (P1, P2, ...) -> R.
type FuncType struct {
	Span   position.Span
	Params []TypeNode
	Return TypeNode // nil means void
}

func (t *FuncType) GetSpan() position.Span { return t.Span }
func (t *FuncType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	ret := "Void"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + ret
}
func (t *FuncType) typeNode() {}

// OptionalType is Base?.
type OptionalType struct {
	Span position.Span
	Base TypeNode
}

func (t *OptionalType) GetSpan() position.Span { return t.Span }
func (t *OptionalType) String() string         { return t.Base.String() + "?" }
func (t *OptionalType) typeNode()              {}
