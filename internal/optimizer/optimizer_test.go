package optimizer

import (
	"math"
	"testing"

	"github.com/picto-lang/picto/internal/analyzer"
	"github.com/picto-lang/picto/internal/core"
	"github.com/picto-lang/picto/internal/parser"
)

func optimized(t *testing.T, src string) *core.Program {
	t.Helper()
	raw, err := parser.Parse("test.picto", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	prog, err := analyzer.Analyze(raw)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	return Optimize(prog)
}

func intBinary(op string, left, right core.Expression) *core.Binary {
	t := core.Type(core.IntType)
	switch op {
	case "<", "<=", ">", ">=", "==", "!=":
		t = core.BoolType
	}
	return &core.Binary{Op: op, Left: left, Right: right, Type: t}
}

func TestConstantFolding(t *testing.T) {
	tests := []struct {
		name string
		expr *core.Binary
		want core.Expression
	}{
		{"int addition", intBinary("+", &core.IntLiteral{Value: 2}, &core.IntLiteral{Value: 3}), &core.IntLiteral{Value: 5}},
		{"int subtraction", intBinary("-", &core.IntLiteral{Value: 2}, &core.IntLiteral{Value: 3}), &core.IntLiteral{Value: -1}},
		{"int multiplication", intBinary("*", &core.IntLiteral{Value: 4}, &core.IntLiteral{Value: 5}), &core.IntLiteral{Value: 20}},
		{"integral division stays int", intBinary("/", &core.IntLiteral{Value: 10}, &core.IntLiteral{Value: 2}), &core.IntLiteral{Value: 5}},
		{"fractional division becomes float", intBinary("/", &core.IntLiteral{Value: 5}, &core.IntLiteral{Value: 8}), &core.FloatLiteral{Value: 0.625}},
		{"int power", intBinary("**", &core.IntLiteral{Value: 2}, &core.IntLiteral{Value: 10}), &core.IntLiteral{Value: 1024}},
		{"float arithmetic", &core.Binary{Op: "+", Left: &core.FloatLiteral{Value: 0.5}, Right: &core.FloatLiteral{Value: 0.25}, Type: core.FloatType}, &core.FloatLiteral{Value: 0.75}},
		{"mixed operands become float", &core.Binary{Op: "*", Left: &core.IntLiteral{Value: 3}, Right: &core.FloatLiteral{Value: 0.5}, Type: core.FloatType}, &core.FloatLiteral{Value: 1.5}},
		{"less than", intBinary("<", &core.IntLiteral{Value: 1}, &core.IntLiteral{Value: 2}), &core.BoolLiteral{Value: true}},
		{"equality", intBinary("==", &core.IntLiteral{Value: 1}, &core.IntLiteral{Value: 2}), &core.BoolLiteral{Value: false}},
		{"inequality", intBinary("!=", &core.IntLiteral{Value: 1}, &core.IntLiteral{Value: 2}), &core.BoolLiteral{Value: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expression(tt.expr)
			assertLiteral(t, got, tt.want)
		})
	}
}

func TestNonFiniteQuotientsAreNotFolded(t *testing.T) {
	tests := []struct {
		name string
		expr *core.Binary
	}{
		{"one over zero", intBinary("/", &core.IntLiteral{Value: 1}, &core.IntLiteral{})},
		{"zero over zero", intBinary("/", &core.IntLiteral{}, &core.IntLiteral{})},
		{"float one over float zero", &core.Binary{Op: "/", Left: &core.FloatLiteral{Value: 1}, Right: &core.FloatLiteral{}, Type: core.FloatType}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expression(tt.expr); got != core.Expression(tt.expr) {
				t.Errorf("got %#v, want the division left for the target", got)
			}
		})
	}
}

func TestLargePowerFoldsToFloat(t *testing.T) {
	got := Expression(intBinary("**", &core.IntLiteral{Value: 2}, &core.IntLiteral{Value: 63}))
	lit, ok := got.(*core.FloatLiteral)
	if !ok {
		t.Fatalf("got %#v, want a float literal beyond the exact integer range", got)
	}
	if lit.Value != math.Pow(2, 63) {
		t.Errorf("got %g, want 2**63", lit.Value)
	}
}

func assertLiteral(t *testing.T, got, want core.Expression) {
	t.Helper()
	switch w := want.(type) {
	case *core.IntLiteral:
		g, ok := got.(*core.IntLiteral)
		if !ok || g.Value != w.Value {
			t.Errorf("got %#v, want IntLiteral %d", got, w.Value)
		}
	case *core.FloatLiteral:
		g, ok := got.(*core.FloatLiteral)
		if !ok || g.Value != w.Value {
			t.Errorf("got %#v, want FloatLiteral %g", got, w.Value)
		}
	case *core.BoolLiteral:
		g, ok := got.(*core.BoolLiteral)
		if !ok || g.Value != w.Value {
			t.Errorf("got %#v, want BoolLiteral %t", got, w.Value)
		}
	}
}

func TestAlgebraicIdentities(t *testing.T) {
	x := &core.Variable{Name: "x", Mutable: true, Type: core.IntType}

	tests := []struct {
		name string
		expr *core.Binary
		want core.Expression
	}{
		{"zero plus x", intBinary("+", &core.IntLiteral{}, x), x},
		{"x plus zero", intBinary("+", x, &core.IntLiteral{}), x},
		{"x minus zero", intBinary("-", x, &core.IntLiteral{}), x},
		{"one times x", intBinary("*", &core.IntLiteral{Value: 1}, x), x},
		{"x times one", intBinary("*", x, &core.IntLiteral{Value: 1}), x},
		{"x over one", intBinary("/", x, &core.IntLiteral{Value: 1}), x},
		{"float zero plus x", &core.Binary{Op: "+", Left: &core.FloatLiteral{}, Right: x, Type: core.FloatType}, x},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expression(tt.expr); got != tt.want {
				t.Errorf("got %#v, want the variable operand itself", got)
			}
		})
	}

	t.Run("zero minus x negates", func(t *testing.T) {
		got := Expression(intBinary("-", &core.IntLiteral{}, x))
		neg, ok := got.(*core.Unary)
		if !ok || neg.Op != "-" || neg.Operand != core.Expression(x) {
			t.Errorf("got %#v, want -x", got)
		}
	})
	t.Run("zero times x is zero", func(t *testing.T) {
		got := Expression(intBinary("*", &core.IntLiteral{}, x))
		if lit, ok := got.(*core.IntLiteral); !ok || lit.Value != 0 {
			t.Errorf("got %#v, want 0", got)
		}
	})
	t.Run("x to the zeroth power is one", func(t *testing.T) {
		got := Expression(intBinary("**", x, &core.IntLiteral{}))
		if lit, ok := got.(*core.IntLiteral); !ok || lit.Value != 1 {
			t.Errorf("got %#v, want 1", got)
		}
	})
	t.Run("one to any power is one", func(t *testing.T) {
		got := Expression(intBinary("**", &core.IntLiteral{Value: 1}, x))
		if lit, ok := got.(*core.IntLiteral); !ok || lit.Value != 1 {
			t.Errorf("got %#v, want 1", got)
		}
	})
}

func TestShortCircuits(t *testing.T) {
	b := &core.Variable{Name: "b", Mutable: true, Type: core.BoolType}
	boolBinary := func(op string, left, right core.Expression) *core.Binary {
		return &core.Binary{Op: op, Left: left, Right: right, Type: core.BoolType}
	}

	t.Run("true and x", func(t *testing.T) {
		if got := Expression(boolBinary("&&", &core.BoolLiteral{Value: true}, b)); got != core.Expression(b) {
			t.Errorf("got %#v, want the right operand", got)
		}
	})
	t.Run("x and true", func(t *testing.T) {
		if got := Expression(boolBinary("&&", b, &core.BoolLiteral{Value: true})); got != core.Expression(b) {
			t.Errorf("got %#v, want the left operand", got)
		}
	})
	t.Run("false or x", func(t *testing.T) {
		if got := Expression(boolBinary("||", &core.BoolLiteral{}, b)); got != core.Expression(b) {
			t.Errorf("got %#v, want the right operand", got)
		}
	})
	t.Run("x or false", func(t *testing.T) {
		if got := Expression(boolBinary("||", b, &core.BoolLiteral{})); got != core.Expression(b) {
			t.Errorf("got %#v, want the left operand", got)
		}
	})
	t.Run("false and x is outside the identity set", func(t *testing.T) {
		expr := boolBinary("&&", &core.BoolLiteral{}, b)
		if got := Expression(expr); got != core.Expression(expr) {
			t.Errorf("got %#v, want the expression untouched", got)
		}
	})
	t.Run("coalesce of empty optional", func(t *testing.T) {
		fallback := &core.IntLiteral{Value: 7}
		expr := &core.Binary{
			Op:    "??",
			Left:  &core.EmptyOptional{Type: &core.OptionalType{Base: core.IntType}},
			Right: fallback,
			Type:  core.IntType,
		}
		if got := Expression(expr); got != core.Expression(fallback) {
			t.Errorf("got %#v, want the fallback", got)
		}
	})
}

func TestNestedFolding(t *testing.T) {
	// (2 + 3) * 4 folds bottom-up to 20.
	expr := intBinary("*",
		intBinary("+", &core.IntLiteral{Value: 2}, &core.IntLiteral{Value: 3}),
		&core.IntLiteral{Value: 4})
	got, ok := Expression(expr).(*core.IntLiteral)
	if !ok || got.Value != 20 {
		t.Errorf("got %#v, want 20", got)
	}
}

func TestDeadBranchElimination(t *testing.T) {
	t.Run("true branch replaces the if", func(t *testing.T) {
		prog := optimized(t, "❓ ✅ { 🖨 1 } ❗ { 🖨 2 }")
		if len(prog.Statements) != 1 {
			t.Fatalf("got %d statements, want 1", len(prog.Statements))
		}
		if _, ok := prog.Statements[0].(*core.Print); !ok {
			t.Errorf("got %#v, want the consequent print", prog.Statements[0])
		}
	})
	t.Run("false branch yields the else", func(t *testing.T) {
		prog := optimized(t, "❓ ❌ { 🖨 1 } ❗ { 🖨 2 }")
		if len(prog.Statements) != 1 {
			t.Fatalf("got %d statements, want 1", len(prog.Statements))
		}
		if _, ok := prog.Statements[0].(*core.Print); !ok {
			t.Errorf("got %#v, want the else print", prog.Statements[0])
		}
	})
	t.Run("false without else disappears", func(t *testing.T) {
		prog := optimized(t, "❓ ❌ { 🖨 1 }")
		if len(prog.Statements) != 0 {
			t.Errorf("got %d statements, want 0", len(prog.Statements))
		}
	})
	t.Run("false test promotes the chain tail", func(t *testing.T) {
		prog := optimized(t, "📦 x = 1\n❓ ❌ { 🖨 1 } ❗❓ x < 2 { 🖨 2 } ❗ { 🖨 3 }")
		node, ok := prog.Statements[1].(*core.If)
		if !ok {
			t.Fatalf("got %#v, want the promoted else-if", prog.Statements[1])
		}
		if node.ElseIf != nil || node.Else == nil {
			t.Error("promoted link must keep its own else block")
		}
	})
	t.Run("dynamic test is preserved", func(t *testing.T) {
		prog := optimized(t, "📦 b = ✅\nb = ❌\n❓ b { 🖨 1 }")
		if _, ok := prog.Statements[2].(*core.If); !ok {
			t.Errorf("got %#v, want the if kept", prog.Statements[2])
		}
	})
}

func TestDeadLoopElimination(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"while false", "🔁 ❌ { 🖨 1 }", 0},
		{"while of folded false test", "🔁 1 > 2 { 🖨 1 }", 0},
		{"empty closed range", "🔂 i in 5 ... 1 { 🖨 i }", 0},
		{"live closed range", "🔂 i in 1 ... 5 { 🖨 i }", 1},
		{"equal bounds stay live", "🔂 i in 3 ... 3 { 🖨 i }", 1},
		{"foreach over typed empty array", "📦 xs: [Int] = []\n🔂 x in xs { 🖨 x }", 2},
		{"foreach over empty literal collection", "🔂 x in [] { 🖨 x }", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := optimized(t, tt.src)
			if len(prog.Statements) != tt.want {
				t.Errorf("got %d statements, want %d", len(prog.Statements), tt.want)
			}
		})
	}
}

func TestSelfAssignmentElimination(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"middle", "📦 x = 1\nx = x\n🖨 x"},
		{"end", "📦 x = 1\n🖨 x\nx = x"},
		{"repeated", "📦 x = 1\nx = x\nx = x\n🖨 x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := optimized(t, tt.src)
			if len(prog.Statements) != 2 {
				t.Fatalf("got %d statements, want the self-assignment removed", len(prog.Statements))
			}
			for _, stmt := range prog.Statements {
				if _, ok := stmt.(*core.Assign); ok {
					t.Errorf("a self-assignment survived: %#v", stmt)
				}
			}
		})
	}
}

func TestOptimizeInsideFunctionBodies(t *testing.T) {
	prog := optimized(t, "⚙️ f(): Int { ❓ ❌ { ↩️ 1 }\n↩️ 2 + 3 }")
	fn := prog.Statements[0].(*core.FuncDecl).Fun
	if len(fn.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(fn.Body))
	}
	ret := fn.Body[0].(*core.Return)
	if lit, ok := ret.Value.(*core.IntLiteral); !ok || lit.Value != 5 {
		t.Errorf("got %#v, want the folded return value 5", ret.Value)
	}
}

func TestIdentityForUnhandledNodes(t *testing.T) {
	brk := &core.Break{}
	out := Statement(brk)
	if len(out) != 1 || out[0] != core.Statement(brk) {
		t.Error("an unhandled statement must pass through by identity")
	}

	s := &core.StringLiteral{Value: "hi"}
	if got := Expression(s); got != core.Expression(s) {
		t.Error("a literal must pass through by identity")
	}
}

func TestOptimizeIsIdempotent(t *testing.T) {
	prog := optimized(t, "📦 x = 1\n📦 y = 0 - x\n🖨 y + 0")
	before := len(prog.Statements)
	again := Optimize(prog)
	if len(again.Statements) != before {
		t.Error("a second run must not change the statement count")
	}
	decl := again.Statements[1].(*core.VarDecl)
	if neg, ok := decl.Init.(*core.Unary); !ok || neg.Op != "-" {
		t.Errorf("got %#v, want the negation preserved on the second run", decl.Init)
	}
}
