package analyzer

import (
	"testing"

	"github.com/picto-lang/picto/internal/core"
	"github.com/picto-lang/picto/internal/errors"
	"github.com/picto-lang/picto/internal/parser"
)

func analyze(t *testing.T, src string) (*core.Program, error) {
	t.Helper()
	prog, err := parser.Parse("test.picto", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return Analyze(prog)
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"variable declaration and print", "📦 x = 42\n🖨 x"},
		{"constant with annotation", "🔒 half: Float = 0.5"},
		{"typed empty array", "📦 xs: [Int] = []"},
		{"function with return", "⚙️ add(a: Int, b: Int): Int { ↩️ a + b }"},
		{"direct recursion", "⚙️ f(n: Int): Int { ↩️ f(n) }"},
		{"void function bare return", "⚙️ f() { ↩️ }"},
		{"call with matching arguments", "⚙️ add(a: Int, b: Int): Int { ↩️ a + b }\n🖨 add(1, 2)"},
		{"builtin math call", "🖨 sqrt(2.0), π"},
		{"while with break", "🔁 ✅ { 🛑 }"},
		{"closed range loop", "🔂 i in 1 ... 5 { 🖨 i }"},
		{"foreach over array", "📦 xs = [1, 2, 3]\n🔂 x in xs { 🖨 x }"},
		{"foreach over dict", `📦 d = {"a": 1}` + "\n🔂 k, v in d { 🖨 k, v }"},
		{"foreach over dict items view", `📦 d = {"a": 1}` + "\n🔂 k, v in d.items { 🖨 k, v }"},
		{"struct constructor and field", "📐 P { x: Int, y: Int }\n📦 p = P(1, 2)\n🖨 p.x"},
		{"optional coalescing", "📦 m: Int? = 🚫\n🖨 m ?? 0"},
		{"class with method and receiver", "🏛 C { ⚙️ id(): C { ↩️ self } }"},
		{"else-if chain", "📦 x = 1\n❓ x < 1 { 🖨 1 } ❗❓ x < 2 { 🖨 2 } ❗ { 🖨 3 }"},
		{"shadowing in nested scope", "📦 x = 1\n❓ ✅ { 📦 x = 2\n🖨 x }"},
		{"add assignment", "📦 x = 1\nx += 2"},
		{"increment", "📦 x = 1\nx++"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := analyze(t, tt.src); err != nil {
				t.Errorf("analyze(%q) failed: %v", tt.src, err)
			}
		})
	}
}

func TestRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind errors.Kind
	}{
		{"redeclaration in same scope", "📦 x = 1\n📦 x = 2", errors.DuplicateDeclaration},
		{"duplicate parameter", "⚙️ f(a: Int, a: Int) { }", errors.DuplicateDeclaration},
		{"undeclared identifier", "🖨 y", errors.UndeclaredIdentifier},
		{"top level return", "↩️ 1", errors.IllegalReturn},
		{"break outside loop", "🛑", errors.IllegalBreak},
		{"break in function outside loop", "🔁 ✅ { ⚙️ f() { 🛑 } }", errors.IllegalBreak},
		{"bare return from non-void", "⚙️ f(): Int { ↩️ }", errors.MustReturnValue},
		{"value returned from void", "⚙️ f() { ↩️ 1 }", errors.MustReturnValue},
		{"non-boolean if test", "❓ 1 { }", errors.TypeError},
		{"non-boolean while test", "🔁 1 { }", errors.TypeError},
		{"increment of string", `📦 s = "hi"` + "\ns++", errors.TypeError},
		{"assign string to int", "📦 x = 1\nx = \"no\"", errors.TypeMismatch},
		{"assign to constant", "🔒 x = 1\nx = 2", errors.TypeError},
		{"initializer annotation mismatch", "📦 x: Int = \"no\"", errors.TypeMismatch},
		{"wrong argument count", "⚙️ f(a: Int) { }\nf(1, 2)", errors.ArityMismatch},
		{"wrong constructor arity", "📐 P { x: Int }\n📦 p = P()", errors.ArityMismatch},
		{"wrong argument type", "⚙️ f(a: Int) { }\nf(\"no\")", errors.TypeMismatch},
		{"call of non-function", "📦 x = 1\nx()", errors.TypeError},
		{"unknown field", "📐 P { x: Int }\n📦 p = P(1)\n🖨 p.y", errors.UnknownField},
		{"member of non-struct", "📦 x = 1\n🖨 x.y", errors.TypeError},
		{"foreach over scalar", "🔂 x in 1 { }", errors.TypeError},
		{"dict iterator arity", `📦 d = {"a": 1}` + "\n🔂 k in d { }", errors.TypeError},
		{"non-numeric range bound", `🔂 i in "a" ... "z" { }`, errors.TypeError},
		{"mixed array elements", "📦 xs = [1, \"two\"]", errors.TypeError},
		{"coalesce of non-optional", "📦 x = 1\n🖨 x ?? 2", errors.TypeError},
		{"relational on booleans", "🖨 ✅ < ❌", errors.TypeError},
		{"equality across types", "🖨 1 == \"1\"", errors.TypeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyze(t, tt.src)
			if err == nil {
				t.Fatalf("analyze(%q) unexpectedly succeeded", tt.src)
			}
			if got := errors.KindOf(err); got != tt.kind {
				t.Errorf("analyze(%q) error kind = %q (%v), want %q", tt.src, got, err, tt.kind)
			}
		})
	}
}

func TestUseSitesShareEntityIdentity(t *testing.T) {
	prog, err := analyze(t, "📦 x = 1\n🖨 x")
	if err != nil {
		t.Fatal(err)
	}
	decl := prog.Statements[0].(*core.VarDecl)
	print := prog.Statements[1].(*core.Print)
	if print.Values[0] != core.Expression(decl.Variable) {
		t.Error("a variable reference must be the declared entity itself")
	}
}

func TestElseIfChainShapePreserved(t *testing.T) {
	prog, err := analyze(t, "📦 x = 1\n❓ x < 1 { } ❗❓ x < 2 { } ❗ { }")
	if err != nil {
		t.Fatal(err)
	}
	node := prog.Statements[1].(*core.If)
	if node.ElseIf == nil || node.Else != nil {
		t.Fatal("first link must carry a nested If alternate")
	}
	last := node.ElseIf
	if last.ElseIf != nil || last.Else == nil {
		t.Fatal("last link must carry the final else block")
	}
	if len(last.Else) != 0 {
		t.Errorf("empty else block must analyze to an empty list, got %d statements", len(last.Else))
	}
}

func TestInferredTypes(t *testing.T) {
	prog, err := analyze(t, "📦 x = 42\n📦 y = 1.5\n📦 s = \"hi\"\n📦 b = ✅")
	if err != nil {
		t.Fatal(err)
	}
	want := []core.Type{core.IntType, core.FloatType, core.StringType, core.BoolType}
	for i, w := range want {
		v := prog.Statements[i].(*core.VarDecl).Variable
		if v.Type != w {
			t.Errorf("statement %d inferred %s, want %s", i, v.Type, w)
		}
	}
}

func TestFunctionTypeShape(t *testing.T) {
	prog, err := analyze(t, "⚙️ add(a: Int, b: Int): Int { ↩️ a + b }")
	if err != nil {
		t.Fatal(err)
	}
	fn := prog.Statements[0].(*core.FuncDecl).Fun
	if len(fn.Type.Params) != 2 || fn.Type.Return != core.IntType {
		t.Errorf("function type = %s, want (Int, Int) -> Int", fn.Type)
	}
}
