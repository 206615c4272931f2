// Package optimizer rewrites the typed IR in place. Every rewrite is a
// semantics-preserving simplification: constant folding, dead branch and
// dead loop removal, and algebraic identities. Node kinds the optimizer
// does not list pass through unchanged, object identity included, so a
// run over an already-optimal tree is the identity function.
package optimizer

import (
	"math"

	"github.com/picto-lang/picto/internal/core"
)

// Optimize rewrites prog in place and returns it.
func Optimize(prog *core.Program) *core.Program {
	prog.Statements = Statements(prog.Statements)
	return prog
}

// Statements optimizes a statement list. A single statement may optimize
// to zero, one, or several statements; the results are flattened one
// level into the enclosing list.
func Statements(list []core.Statement) []core.Statement {
	out := make([]core.Statement, 0, len(list))
	for _, stmt := range list {
		out = append(out, Statement(stmt)...)
	}
	return out
}

// Statement optimizes a single statement, returning its replacement
// sequence. An empty result deletes the statement.
func Statement(stmt core.Statement) []core.Statement {
	switch n := stmt.(type) {
	case *core.VarDecl:
		n.Init = Expression(n.Init)
	case *core.FuncDecl:
		n.Fun.Body = Statements(n.Fun.Body)
	case *core.ClassDecl:
		for _, m := range n.Class.Methods {
			m.Body = Statements(m.Body)
		}
	case *core.Assign:
		n.Target = Expression(n.Target)
		n.Source = Expression(n.Source)
		// Assigning an entity to itself is a no-op.
		if n.Target == n.Source {
			return nil
		}
	case *core.AddAssign:
		n.Target = Expression(n.Target)
		n.Source = Expression(n.Source)
	case *core.Increment:
		n.Target = Expression(n.Target)
	case *core.Decrement:
		n.Target = Expression(n.Target)
	case *core.If:
		return ifStatement(n)
	case *core.While:
		n.Test = Expression(n.Test)
		// A loop that can never run disappears before its body is visited.
		if test, ok := n.Test.(*core.BoolLiteral); ok && !test.Value {
			return nil
		}
		n.Body = Statements(n.Body)
	case *core.ForRange:
		n.Low = Expression(n.Low)
		n.High = Expression(n.High)
		if low, lok := numericConstant(n.Low); lok {
			if high, hok := numericConstant(n.High); hok && low > high {
				return nil
			}
		}
		n.Body = Statements(n.Body)
	case *core.ForEach:
		n.Collection = Expression(n.Collection)
		if _, empty := n.Collection.(*core.EmptyArray); empty {
			return nil
		}
		n.Body = Statements(n.Body)
	case *core.Return:
		if n.Value != nil {
			n.Value = Expression(n.Value)
		}
	case *core.Print:
		for i, v := range n.Values {
			n.Values[i] = Expression(v)
		}
	case *core.CallStatement:
		n.Call = Expression(n.Call)
	}
	return []core.Statement{stmt}
}

// ifStatement collapses an If whose test has folded to a constant: a true
// test yields the consequent, a false one the alternate. The else-if
// chain is walked structurally so an inner collapse rewrites only its own
// link.
func ifStatement(n *core.If) []core.Statement {
	n.Test = Expression(n.Test)
	n.Consequent = Statements(n.Consequent)
	switch {
	case n.ElseIf != nil:
		replaced := ifStatement(n.ElseIf)
		if len(replaced) == 1 {
			if inner, ok := replaced[0].(*core.If); ok {
				n.ElseIf = inner
				break
			}
		}
		// The nested link collapsed to a plain statement list.
		n.ElseIf = nil
		if len(replaced) > 0 {
			n.Else = replaced
		}
	case n.Else != nil:
		n.Else = Statements(n.Else)
	}
	if test, ok := n.Test.(*core.BoolLiteral); ok {
		if test.Value {
			return n.Consequent
		}
		if n.ElseIf != nil {
			return []core.Statement{n.ElseIf}
		}
		return n.Else
	}
	return []core.Statement{n}
}

// Expression optimizes a single expression, returning its replacement.
func Expression(expr core.Expression) core.Expression {
	switch n := expr.(type) {
	case *core.Binary:
		return binary(n)
	case *core.Unary:
		n.Operand = Expression(n.Operand)
		if n.Op == "-" {
			switch operand := n.Operand.(type) {
			case *core.IntLiteral:
				return &core.IntLiteral{Value: -operand.Value}
			case *core.FloatLiteral:
				return &core.FloatLiteral{Value: -operand.Value}
			}
		}
	case *core.Call:
		for i, a := range n.Args {
			n.Args[i] = Expression(a)
		}
	case *core.ConstructorCall:
		for i, a := range n.Args {
			n.Args[i] = Expression(a)
		}
	case *core.ArrayExpression:
		for i, e := range n.Elements {
			n.Elements[i] = Expression(e)
		}
	case *core.TupleExpression:
		for i, e := range n.Elements {
			n.Elements[i] = Expression(e)
		}
	case *core.Member:
		n.Object = Expression(n.Object)
	}
	return expr
}

func binary(n *core.Binary) core.Expression {
	n.Left = Expression(n.Left)
	n.Right = Expression(n.Right)

	switch n.Op {
	case "??":
		if _, empty := n.Left.(*core.EmptyOptional); empty {
			return n.Right
		}
		return n
	case "&&":
		if lit, ok := n.Left.(*core.BoolLiteral); ok && lit.Value {
			return n.Right
		}
		if lit, ok := n.Right.(*core.BoolLiteral); ok && lit.Value {
			return n.Left
		}
		return n
	case "||":
		if lit, ok := n.Left.(*core.BoolLiteral); ok && !lit.Value {
			return n.Right
		}
		if lit, ok := n.Right.(*core.BoolLiteral); ok && !lit.Value {
			return n.Left
		}
		return n
	}

	left, lok := numericConstant(n.Left)
	right, rok := numericConstant(n.Right)
	if lok && rok {
		return fold(n)
	}
	if lok {
		switch {
		case left == 0 && n.Op == "+":
			return n.Right
		case left == 1 && n.Op == "*":
			return n.Right
		case left == 0 && n.Op == "-":
			return &core.Unary{Op: "-", Operand: n.Right, Type: n.Type}
		case left == 1 && n.Op == "**":
			return n.Left
		case left == 0 && (n.Op == "*" || n.Op == "/"):
			return n.Left
		}
	}
	if rok {
		switch {
		case right == 0 && (n.Op == "+" || n.Op == "-"):
			return n.Left
		case right == 1 && (n.Op == "*" || n.Op == "/"):
			return n.Left
		case right == 0 && n.Op == "*":
			return n.Right
		case right == 0 && n.Op == "**":
			return oneLiteral(n.Type)
		}
	}
	return n
}

// fold evaluates an operator over two numeric constants. Arithmetic on
// two Int operands stays integral except for division, which produces a
// Float whenever the quotient is fractional, matching the target's
// number semantics.
func fold(n *core.Binary) core.Expression {
	lv, _ := numericConstant(n.Left)
	rv, _ := numericConstant(n.Right)

	var value float64
	switch n.Op {
	case "+":
		value = lv + rv
	case "-":
		value = lv - rv
	case "*":
		value = lv * rv
	case "/":
		value = lv / rv
	case "**":
		value = math.Pow(lv, rv)
	case "<":
		return &core.BoolLiteral{Value: lv < rv}
	case "<=":
		return &core.BoolLiteral{Value: lv <= rv}
	case ">":
		return &core.BoolLiteral{Value: lv > rv}
	case ">=":
		return &core.BoolLiteral{Value: lv >= rv}
	case "==":
		return &core.BoolLiteral{Value: lv == rv}
	case "!=":
		return &core.BoolLiteral{Value: lv != rv}
	default:
		return n
	}

	// A non-finite result has no literal spelling in the output; leave
	// the expression for the target to evaluate.
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return n
	}

	_, lint := n.Left.(*core.IntLiteral)
	_, rint := n.Right.(*core.IntLiteral)
	if lint && rint && value == math.Trunc(value) && math.Abs(value) < 1<<53 {
		return &core.IntLiteral{Value: int64(value)}
	}
	return &core.FloatLiteral{Value: value}
}

// numericConstant reports the host value of an Int or Float literal.
func numericConstant(expr core.Expression) (float64, bool) {
	switch n := expr.(type) {
	case *core.IntLiteral:
		return float64(n.Value), true
	case *core.FloatLiteral:
		return n.Value, true
	}
	return 0, false
}

func oneLiteral(t core.Type) core.Expression {
	if t == core.FloatType {
		return &core.FloatLiteral{Value: 1}
	}
	return &core.IntLiteral{Value: 1}
}
