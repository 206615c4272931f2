// Package generator emits JavaScript from the optimized IR. The walk is
// purely syntax-directed: the tree is read-only, all semantic checks have
// already happened, and the only state is the private renaming table that
// assigns each declared entity a collision-free target identifier.
package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/picto-lang/picto/internal/core"
	"github.com/picto-lang/picto/internal/stdlib"
)

type generator struct {
	// names maps declared entities, by identity, to their emitted
	// identifiers. The counter is shared across all entity kinds so every
	// suffix is unique in the output.
	names   map[any]string
	counter int
	lines   []string
}

// Generate emits the program as JavaScript source, one statement per
// line. The renaming table lives for exactly one call.
func Generate(prog *core.Program) string {
	g := &generator{names: make(map[any]string)}
	g.statements(prog.Statements)
	return strings.Join(g.lines, "\n")
}

// name returns the emitted identifier for an entity, assigning the next
// numeric suffix on first encounter. Standard library entities keep their
// fixed target spellings.
func (g *generator) name(entity any, base string) string {
	if js, ok := stdlib.JSName(entity); ok {
		return js
	}
	if assigned, ok := g.names[entity]; ok {
		return assigned
	}
	g.counter++
	assigned := base + "_" + strconv.Itoa(g.counter)
	g.names[entity] = assigned
	return assigned
}

func (g *generator) emit(line string) {
	g.lines = append(g.lines, line)
}

func (g *generator) statements(list []core.Statement) {
	for _, stmt := range list {
		g.statement(stmt)
	}
}

func (g *generator) statement(stmt core.Statement) {
	switch n := stmt.(type) {
	case *core.VarDecl:
		g.emit("let " + g.name(n.Variable, n.Variable.Name) + " = " + g.expression(n.Init) + ";")
	case *core.FuncDecl:
		g.emit("function " + g.name(n.Fun, n.Fun.Name) + "(" + g.parameters(n.Fun.Params) + ") {")
		g.statements(n.Fun.Body)
		g.emit("}")
	case *core.StructDecl:
		g.structDecl(n.Struct)
	case *core.ClassDecl:
		g.classDecl(n.Class)
	case *core.Assign:
		g.emit(g.expression(n.Target) + " = " + g.expression(n.Source) + ";")
	case *core.AddAssign:
		g.emit(g.expression(n.Target) + " += " + g.expression(n.Source) + ";")
	case *core.Increment:
		g.emit(g.expression(n.Target) + "++;")
	case *core.Decrement:
		g.emit(g.expression(n.Target) + "--;")
	case *core.If:
		g.ifStatement(n)
	case *core.While:
		g.emit("while (" + g.expression(n.Test) + ") {")
		g.statements(n.Body)
		g.emit("}")
	case *core.ForRange:
		g.forRange(n)
	case *core.ForEach:
		g.forEach(n)
	case *core.Return:
		if n.Value == nil {
			g.emit("return;")
		} else {
			g.emit("return " + g.expression(n.Value) + ";")
		}
	case *core.Break:
		g.emit("break;")
	case *core.Print:
		args := make([]string, len(n.Values))
		for i, v := range n.Values {
			args[i] = g.expression(v)
		}
		g.emit("console.log(" + strings.Join(args, ", ") + ");")
	case *core.CallStatement:
		g.emit(g.expression(n.Call) + ";")
	default:
		panic(fmt.Sprintf("generator: unhandled statement %T", stmt))
	}
}

// ifStatement formats an else-if chain flat: the nested If in the
// alternate is emitted immediately after "} else ", so its own "if"
// header becomes the "} else if" line and its closing brace closes the
// whole chain.
func (g *generator) ifStatement(n *core.If) {
	g.emit("if (" + g.expression(n.Test) + ") {")
	g.statements(n.Consequent)
	switch {
	case n.ElseIf != nil:
		mark := len(g.lines)
		g.ifStatement(n.ElseIf)
		g.lines[mark] = "} else " + g.lines[mark]
	case n.Else != nil:
		g.emit("} else {")
		g.statements(n.Else)
		g.emit("}")
	default:
		g.emit("}")
	}
}

func (g *generator) forRange(n *core.ForRange) {
	iter := g.name(n.Iterator, n.Iterator.Name)
	cmp := " <= "
	if n.Op == "..<" {
		cmp = " < "
	}
	g.emit("for (let " + iter + " = " + g.expression(n.Low) + "; " +
		iter + cmp + g.expression(n.High) + "; " + iter + "++) {")
	g.statements(n.Body)
	g.emit("}")
}

func (g *generator) forEach(n *core.ForEach) {
	collection := g.expression(n.Collection)
	if len(n.Iterators) == 2 {
		key := g.name(n.Iterators[0], n.Iterators[0].Name)
		value := g.name(n.Iterators[1], n.Iterators[1].Name)
		g.emit("for (const [" + key + ", " + value + "] of Object.entries(" + collection + ")) {")
	} else {
		g.emit("for (let " + g.name(n.Iterators[0], n.Iterators[0].Name) + " of " + collection + ") {")
	}
	g.statements(n.Body)
	g.emit("}")
}

// structDecl emits a struct as a class with a field-for-field constructor,
// matching the constructor-call arity checked during analysis.
func (g *generator) structDecl(st *core.StructType) {
	g.emit("class " + g.name(st, st.Name) + " {")
	params := make([]string, len(st.Fields))
	for i, f := range st.Fields {
		params[i] = f.Name
	}
	g.emit("constructor(" + strings.Join(params, ", ") + ") {")
	for _, f := range st.Fields {
		g.emit("this." + f.Name + " = " + f.Name + ";")
	}
	g.emit("}")
	g.emit("}")
}

// classDecl emits a class. Methods keep their source names so member
// access works without consulting the renaming table; the implicit
// receiver and sibling-method references both resolve to `this`.
func (g *generator) classDecl(cls *core.Class) {
	g.names[cls.Self] = "this"
	for _, m := range cls.Methods {
		g.names[m] = "this." + m.Name
	}
	g.emit("class " + g.name(cls.Instance, cls.Name) + " {")
	for _, m := range cls.Methods {
		g.emit(m.Name + "(" + g.parameters(m.Params) + ") {")
		g.statements(m.Body)
		g.emit("}")
	}
	g.emit("}")
}

func (g *generator) parameters(params []*core.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = g.name(p, p.Name)
	}
	return strings.Join(parts, ", ")
}

// operators maps source operators onto their target spellings; anything
// absent passes through unchanged.
var operators = map[string]string{
	"==": "===",
	"!=": "!==",
}

func (g *generator) expression(expr core.Expression) string {
	switch n := expr.(type) {
	case *core.IntLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *core.FloatLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *core.StringLiteral:
		return strconv.Quote(n.Value)
	case *core.BoolLiteral:
		return strconv.FormatBool(n.Value)
	case *core.EmptyArray:
		return "[]"
	case *core.EmptyOptional:
		return "null"
	case *core.Variable:
		return g.name(n, n.Name)
	case *core.Parameter:
		return g.name(n, n.Name)
	case *core.Function:
		return g.name(n, n.Name)
	case *core.Binary:
		op := n.Op
		if mapped, ok := operators[op]; ok {
			op = mapped
		}
		return "(" + g.expression(n.Left) + " " + op + " " + g.expression(n.Right) + ")"
	case *core.Unary:
		return "(" + n.Op + g.expression(n.Operand) + ")"
	case *core.Call:
		return g.expression(n.Callee) + "(" + g.expressionList(n.Args) + ")"
	case *core.ConstructorCall:
		return "new " + g.name(n.Struct, n.Struct.Name) + "(" + g.expressionList(n.Args) + ")"
	case *core.Member:
		return g.member(n)
	case *core.ArrayExpression:
		return "[" + g.expressionList(n.Elements) + "]"
	case *core.TupleExpression:
		return "[" + g.expressionList(n.Elements) + "]"
	case *core.DictExpression:
		parts := make([]string, len(n.Keys))
		for i := range n.Keys {
			parts[i] = g.expression(n.Keys[i]) + ": " + g.expression(n.Values[i])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		panic(fmt.Sprintf("generator: unhandled expression %T", expr))
	}
}

func (g *generator) member(n *core.Member) string {
	object := g.expression(n.Object)
	// The .items view of a dictionary is the dictionary itself; the
	// enclosing foreach already iterates entries.
	if n.Op == "." && n.Field == "items" {
		if _, dict := n.Object.TypeOf().(*core.DictType); dict {
			return object
		}
	}
	return object + n.Op + n.Field
}

func (g *generator) expressionList(list []core.Expression) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = g.expression(e)
	}
	return strings.Join(parts, ", ")
}
