// Package stdlib defines the entities pre-populated into the analyzer's
// root scope: numeric constants, math intrinsics, and print. The generator
// maps the same entities, by identity, to their JavaScript spellings.
package stdlib

import "github.com/picto-lang/picto/internal/core"

func mathFn(name string, arity int) *core.Function {
	params := make([]*core.Parameter, arity)
	types := make([]core.Type, arity)
	for i := range params {
		params[i] = &core.Parameter{Name: "x", Type: core.FloatType}
		types[i] = core.FloatType
	}
	return &core.Function{
		Name:   name,
		Params: params,
		Type:   &core.FunctionType{Params: types, Return: core.FloatType},
	}
}

// The standard library entities. Each is a singleton referenced by
// identity from analyzed programs.
var (
	Pi = &core.Variable{Name: "π", Mutable: false, Type: core.FloatType}
	E  = &core.Variable{Name: "e", Mutable: false, Type: core.FloatType}

	Sqrt  = mathFn("sqrt", 1)
	Sin   = mathFn("sin", 1)
	Cos   = mathFn("cos", 1)
	Exp   = mathFn("exp", 1)
	Ln    = mathFn("ln", 1)
	Hypot = mathFn("hypot", 2)

	Print = &core.Function{
		Name:   "print",
		Params: []*core.Parameter{{Name: "value", Type: core.AnyType}},
		Type:   &core.FunctionType{Params: []core.Type{core.AnyType}, Return: core.VoidType},
	}
)

// Entities returns the root scope bindings, keyed by source name.
func Entities() map[string]any {
	return map[string]any{
		"π":     Pi,
		"e":     E,
		"sqrt":  Sqrt,
		"sin":   Sin,
		"cos":   Cos,
		"exp":   Exp,
		"ln":    Ln,
		"hypot": Hypot,
		"print": Print,
	}
}

// jsNames maps standard library entities to their target spellings.
var jsNames = map[any]string{
	Pi:    "Math.PI",
	E:     "Math.E",
	Sqrt:  "Math.sqrt",
	Sin:   "Math.sin",
	Cos:   "Math.cos",
	Exp:   "Math.exp",
	Ln:    "Math.log",
	Hypot: "Math.hypot",
	Print: "console.log",
}

// JSName returns the JavaScript spelling for a standard library entity.
// The second result is false for user-declared entities.
func JSName(entity any) (string, bool) {
	name, ok := jsNames[entity]
	return name, ok
}
