package stdlib

import (
	"testing"

	"github.com/picto-lang/picto/internal/core"
)

func TestEntitiesCoverEveryBuiltin(t *testing.T) {
	entities := Entities()
	for _, name := range []string{"π", "e", "sqrt", "sin", "cos", "exp", "ln", "hypot", "print"} {
		entity, ok := entities[name]
		if !ok {
			t.Errorf("builtin %s missing from the root scope bindings", name)
			continue
		}
		if _, ok := JSName(entity); !ok {
			t.Errorf("builtin %s has no target spelling", name)
		}
	}
}

func TestJSNameIgnoresUserEntities(t *testing.T) {
	v := &core.Variable{Name: "sqrt", Type: core.FloatType}
	if _, ok := JSName(v); ok {
		t.Error("a user entity must not borrow a builtin spelling")
	}
}

func TestBuiltinShapes(t *testing.T) {
	if len(Hypot.Params) != 2 {
		t.Errorf("hypot arity = %d, want 2", len(Hypot.Params))
	}
	if Sqrt.Type.Return != core.FloatType {
		t.Errorf("sqrt return = %s, want Float", Sqrt.Type.Return)
	}
	if Print.Type.Return != core.VoidType {
		t.Errorf("print return = %s, want Void", Print.Type.Return)
	}
}
