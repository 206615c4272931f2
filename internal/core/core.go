// Package core defines the typed intermediate representation of the Picto
// compiler: the tree produced by semantic analysis, rewritten in place by
// the optimizer, and read by the generator. Nodes form a closed set of
// tagged variants; every expression carries its resolved type.
//
// Declared entities (Variable, Parameter, Function, Class) are themselves
// expression nodes: after analysis every use site references the entity by
// identity, so renaming or shadowing cannot retroactively corrupt an
// already-resolved reference.
package core

// Statement is the closed set of IR statement variants.
type Statement interface {
	stmtVariant()
}

// Expression is the closed set of IR expression variants. Every expression
// knows its resolved type after analysis.
type Expression interface {
	exprVariant()
	TypeOf() Type
}

// Program is the root of the IR: an ordered sequence of top-level
// statements. It owns everything transitively.
type Program struct {
	Statements []Statement
}

// ===== Entities =====

// Variable is a declared binding. It is created once by the analyzer and
// referenced by identity from all use sites.
type Variable struct {
	Name    string
	Mutable bool
	Type    Type
}

func (v *Variable) exprVariant() {}

// TypeOf returns the variable's declared or inferred type.
func (v *Variable) TypeOf() Type { return v.Type }

// Parameter is a function parameter; it scopes identically to a Variable
// within the function body.
type Parameter struct {
	Name string
	Type Type
}

func (p *Parameter) exprVariant() {}

// TypeOf returns the parameter's declared type.
func (p *Parameter) TypeOf() Type { return p.Type }

// Function is a declared function or method.
type Function struct {
	Name   string
	Params []*Parameter
	Body   []Statement
	Type   *FunctionType
}

func (f *Function) exprVariant() {}

// TypeOf returns the function's (paramTypes -> returnType) type.
func (f *Function) TypeOf() Type { return f.Type }

// Class is a declared class: an ordered list of methods. Methods may
// reference the implicit receiver binding of the enclosing class.
type Class struct {
	Name    string
	Methods []*Function
	// Instance is the struct type given to constructed instances; method
	// lookup on a member access falls back to it through MethodNamed.
	Instance *StructType
	// Self is the implicit receiver binding visible inside method bodies.
	Self *Variable
}

func (c *Class) exprVariant() {}

// TypeOf returns the type of a constructed instance.
func (c *Class) TypeOf() Type { return c.Instance }

// MethodNamed returns the method with the given name, or nil.
func (c *Class) MethodNamed(name string) *Function {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ===== Statements =====

// VarDecl declares a variable with its initializer.
type VarDecl struct {
	Variable *Variable
	Init     Expression
}

func (s *VarDecl) stmtVariant() {}

// FuncDecl declares a function.
type FuncDecl struct {
	Fun *Function
}

func (s *FuncDecl) stmtVariant() {}

// ClassDecl declares a class.
type ClassDecl struct {
	Class *Class
}

func (s *ClassDecl) stmtVariant() {}

// StructDecl declares a struct type.
type StructDecl struct {
	Struct *StructType
}

func (s *StructDecl) stmtVariant() {}

// Assign stores Source into Target.
type Assign struct {
	Target Expression
	Source Expression
}

func (s *Assign) stmtVariant() {}

// AddAssign is target += source.
type AddAssign struct {
	Target Expression
	Source Expression
}

func (s *AddAssign) stmtVariant() {}

// Increment is target++.
type Increment struct {
	Target Expression
}

func (s *Increment) stmtVariant() {}

// Decrement is target--.
type Decrement struct {
	Target Expression
}

func (s *Decrement) stmtVariant() {}

// If is a conditional. The alternate is exactly one of ElseIf (a nested If
// forming an else-if chain) or Else (a flat, possibly empty statement
// list). The chain shape is established during analysis and must be
// preserved by the optimizer: the generator's else-if formatting depends
// on it.
type If struct {
	Test       Expression
	Consequent []Statement
	ElseIf     *If
	Else       []Statement
}

func (s *If) stmtVariant() {}

// While loops while Test holds.
type While struct {
	Test Expression
	Body []Statement
}

func (s *While) stmtVariant() {}

// ForRange iterates Iterator over the numeric range Low..High; Op is "..."
// for a closed range and "..<" for a half-open one.
type ForRange struct {
	Iterator *Variable
	Low      Expression
	Op       string
	High     Expression
	Body     []Statement
}

func (s *ForRange) stmtVariant() {}

// ForEach iterates over a collection: one iterator for arrays, two
// (key, value) for dictionaries.
type ForEach struct {
	Iterators  []*Variable
	Collection Expression
	Body       []Statement
}

func (s *ForEach) stmtVariant() {}

// Return exits the enclosing function, optionally with a value.
type Return struct {
	Value Expression // nil for a bare return
}

func (s *Return) stmtVariant() {}

// Break exits the enclosing loop.
type Break struct{}

func (s *Break) stmtVariant() {}

// Print writes its expressions to the output.
type Print struct {
	Values []Expression
}

func (s *Print) stmtVariant() {}

// CallStatement is a call expression in statement position.
type CallStatement struct {
	Call Expression
}

func (s *CallStatement) stmtVariant() {}

// ===== Expressions =====

// IntLiteral is an integer constant. The type tag lives on the node; raw
// host values never carry type metadata.
type IntLiteral struct {
	Value int64
}

func (e *IntLiteral) exprVariant() {}

// TypeOf returns Int.
func (e *IntLiteral) TypeOf() Type { return IntType }

// FloatLiteral is a floating point constant.
type FloatLiteral struct {
	Value float64
}

func (e *FloatLiteral) exprVariant() {}

// TypeOf returns Float.
func (e *FloatLiteral) TypeOf() Type { return FloatType }

// StringLiteral is a string constant.
type StringLiteral struct {
	Value string
}

func (e *StringLiteral) exprVariant() {}

// TypeOf returns String.
func (e *StringLiteral) TypeOf() Type { return StringType }

// BoolLiteral is a boolean constant.
type BoolLiteral struct {
	Value bool
}

func (e *BoolLiteral) exprVariant() {}

// TypeOf returns Bool.
func (e *BoolLiteral) TypeOf() Type { return BoolType }

// Binary is op applied to two operands, with the resolved result type.
type Binary struct {
	Op    string
	Left  Expression
	Right Expression
	Type  Type
}

func (e *Binary) exprVariant() {}

// TypeOf returns the resolved result type.
func (e *Binary) TypeOf() Type { return e.Type }

// Unary is a prefix operation.
type Unary struct {
	Op      string
	Operand Expression
	Type    Type
}

func (e *Unary) exprVariant() {}

// TypeOf returns the resolved result type.
func (e *Unary) TypeOf() Type { return e.Type }

// Call invokes a callee whose type is a function type.
type Call struct {
	Callee Expression
	Args   []Expression
	Type   Type
}

func (e *Call) exprVariant() {}

// TypeOf returns the callee's return type.
func (e *Call) TypeOf() Type { return e.Type }

// ConstructorCall instantiates a struct with one argument per field.
type ConstructorCall struct {
	Struct *StructType
	Args   []Expression
}

func (e *ConstructorCall) exprVariant() {}

// TypeOf returns the constructed struct type.
func (e *ConstructorCall) TypeOf() Type { return e.Struct }

// Member is a field access on a struct (optionally through ?.) or the
// .items view of a dictionary.
type Member struct {
	Object Expression
	Op     string // "." or "?."
	Field  string
	Type   Type
}

func (e *Member) exprVariant() {}

// TypeOf returns the accessed field's type.
func (e *Member) TypeOf() Type { return e.Type }

// ArrayExpression is a non-empty array literal.
type ArrayExpression struct {
	Elements []Expression
	Type     Type
}

func (e *ArrayExpression) exprVariant() {}

// TypeOf returns the array type.
func (e *ArrayExpression) TypeOf() Type { return e.Type }

// TupleExpression is an ordered expression list.
type TupleExpression struct {
	Elements []Expression
	Type     Type
}

func (e *TupleExpression) exprVariant() {}

// TypeOf returns the tuple's resolved type.
func (e *TupleExpression) TypeOf() Type { return e.Type }

// DictExpression is a non-empty dictionary literal.
type DictExpression struct {
	Keys   []Expression
	Values []Expression
	Type   Type
}

func (e *DictExpression) exprVariant() {}

// TypeOf returns the dictionary type.
func (e *DictExpression) TypeOf() Type { return e.Type }

// EmptyArray is the typed empty array sentinel.
type EmptyArray struct {
	Type Type // always an *ArrayType
}

func (e *EmptyArray) exprVariant() {}

// TypeOf returns the sentinel's array type.
func (e *EmptyArray) TypeOf() Type { return e.Type }

// EmptyOptional is the typed empty optional sentinel (🚫).
type EmptyOptional struct {
	Type Type // always an *OptionalType
}

func (e *EmptyOptional) exprVariant() {}

// TypeOf returns the sentinel's optional type.
func (e *EmptyOptional) TypeOf() Type { return e.Type }
