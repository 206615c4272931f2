// Package analyzer implements Picto's semantic analysis: it walks the raw
// parse tree, maintains the chain of lexical scopes, enforces declaration
// and typing rules, and produces the typed core IR. Analysis is fail-fast:
// the first violated rule returns a CompileError and nothing else runs.
package analyzer

import (
	"github.com/picto-lang/picto/internal/ast"
	"github.com/picto-lang/picto/internal/core"
	"github.com/picto-lang/picto/internal/errors"
	"github.com/picto-lang/picto/internal/position"
	"github.com/picto-lang/picto/internal/stdlib"
)

type analyzer struct {
	// classOf links a class's instance struct type back to the class so
	// member access on instances can resolve methods.
	classOf map[*core.StructType]*core.Class
}

// Analyze transforms a parse tree into the typed IR, rejecting programs
// that violate the static semantic rules.
func Analyze(prog *ast.Program) (*core.Program, error) {
	a := &analyzer{classOf: make(map[*core.StructType]*core.Class)}
	root := newRootScope(stdlib.Entities())
	stmts, err := a.statements(prog.Statements, root)
	if err != nil {
		return nil, err
	}
	return &core.Program{Statements: stmts}, nil
}

func (a *analyzer) statements(list []ast.Statement, s *Scope) ([]core.Statement, error) {
	if list == nil {
		return nil, nil
	}
	out := make([]core.Statement, 0, len(list))
	for _, stmt := range list {
		analyzed, err := a.statement(stmt, s)
		if err != nil {
			return nil, err
		}
		out = append(out, analyzed)
	}
	return out, nil
}

func (a *analyzer) statement(stmt ast.Statement, s *Scope) (core.Statement, error) {
	switch n := stmt.(type) {
	case *ast.VarDecl:
		return a.varDecl(n, s)
	case *ast.FuncDecl:
		fn, err := a.function(n, s)
		if err != nil {
			return nil, err
		}
		return &core.FuncDecl{Fun: fn}, nil
	case *ast.ClassDecl:
		return a.classDecl(n, s)
	case *ast.StructDecl:
		return a.structDecl(n, s)
	case *ast.Assign:
		return a.assign(n, s)
	case *ast.AddAssign:
		return a.addAssign(n, s)
	case *ast.Increment:
		target, err := a.numericTarget(n.Target, s)
		if err != nil {
			return nil, err
		}
		return &core.Increment{Target: target}, nil
	case *ast.Decrement:
		target, err := a.numericTarget(n.Target, s)
		if err != nil {
			return nil, err
		}
		return &core.Decrement{Target: target}, nil
	case *ast.If:
		return a.ifStmt(n, s)
	case *ast.While:
		return a.whileStmt(n, s)
	case *ast.ForRange:
		return a.forRange(n, s)
	case *ast.ForEach:
		return a.forEach(n, s)
	case *ast.Return:
		return a.returnStmt(n, s)
	case *ast.Break:
		if !s.inLoop {
			return nil, errors.New(errors.IllegalBreak, n.Span.Start, "Break can only appear in a loop")
		}
		return &core.Break{}, nil
	case *ast.Print:
		values := make([]core.Expression, 0, len(n.Values))
		for _, v := range n.Values {
			expr, err := a.expression(v, s)
			if err != nil {
				return nil, err
			}
			values = append(values, expr)
		}
		return &core.Print{Values: values}, nil
	case *ast.ExprStatement:
		call, err := a.expression(n.Expr, s)
		if err != nil {
			return nil, err
		}
		return &core.CallStatement{Call: call}, nil
	}
	return nil, errors.New(errors.UnsupportedConstruct, stmt.GetSpan().Start,
		"no analyzer rule for %T", stmt)
}

// ===== Declarations =====

func (a *analyzer) varDecl(n *ast.VarDecl, s *Scope) (core.Statement, error) {
	var declared core.Type
	if n.Type != nil {
		t, err := a.resolveType(n.Type, s)
		if err != nil {
			return nil, err
		}
		declared = t
	}
	init, err := a.expressionWithType(n.Init, declared, s)
	if err != nil {
		return nil, err
	}
	if declared != nil && !core.Assignable(init.TypeOf(), declared) {
		return nil, errors.New(errors.TypeMismatch, n.Init.GetSpan().Start,
			"Cannot assign a %s to a %s", init.TypeOf(), declared)
	}
	t := declared
	if t == nil {
		t = init.TypeOf()
	}
	v := &core.Variable{Name: n.Name, Mutable: n.Mutable, Type: t}
	if err := s.declare(n.Name, v, n.Span.Start); err != nil {
		return nil, err
	}
	return &core.VarDecl{Variable: v, Init: init}, nil
}

// function analyzes a function declaration. The function is declared in the
// current scope before its body is entered, permitting direct recursion.
func (a *analyzer) function(n *ast.FuncDecl, s *Scope) (*core.Function, error) {
	fn := &core.Function{Name: n.Name}
	if err := s.declare(n.Name, fn, n.Span.Start); err != nil {
		return nil, err
	}
	body := s.childFunction(fn)
	paramTypes := make([]core.Type, 0, len(n.Params))
	for _, p := range n.Params {
		t, err := a.resolveType(p.Type, s)
		if err != nil {
			return nil, err
		}
		param := &core.Parameter{Name: p.Name, Type: t}
		if err := body.declare(p.Name, param, p.Span.Start); err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)
		paramTypes = append(paramTypes, t)
	}
	returnType := core.Type(core.VoidType)
	if n.ReturnType != nil {
		t, err := a.resolveType(n.ReturnType, s)
		if err != nil {
			return nil, err
		}
		returnType = t
	}
	fn.Type = &core.FunctionType{Params: paramTypes, Return: returnType}
	stmts, err := a.statements(n.Body, body)
	if err != nil {
		return nil, err
	}
	fn.Body = stmts
	return fn, nil
}

// classDecl analyzes a class declaration. Only function declarations in the
// body become methods; anything else is ignored for the method list. The
// implicit receiver `self` is bound in the class scope with the instance
// type, so method bodies can reference it.
func (a *analyzer) classDecl(n *ast.ClassDecl, s *Scope) (core.Statement, error) {
	cls := &core.Class{Name: n.Name, Instance: &core.StructType{Name: n.Name}}
	cls.Self = &core.Variable{Name: "self", Type: cls.Instance}
	a.classOf[cls.Instance] = cls
	if err := s.declare(n.Name, cls, n.Span.Start); err != nil {
		return nil, err
	}
	body := s.childClass(cls)
	if err := body.declare("self", cls.Self, n.Span.Start); err != nil {
		return nil, err
	}
	for _, stmt := range n.Body {
		decl, ok := stmt.(*ast.FuncDecl)
		if !ok {
			continue
		}
		method, err := a.function(decl, body)
		if err != nil {
			return nil, err
		}
		cls.Methods = append(cls.Methods, method)
	}
	return &core.ClassDecl{Class: cls}, nil
}

// structDecl analyzes a struct declaration. The type is declared before its
// fields resolve so a field may reference the struct through an optional.
func (a *analyzer) structDecl(n *ast.StructDecl, s *Scope) (core.Statement, error) {
	st := &core.StructType{Name: n.Name}
	if err := s.declare(n.Name, st, n.Span.Start); err != nil {
		return nil, err
	}
	for _, f := range n.Fields {
		if st.FieldNamed(f.Name) != nil {
			return nil, errors.New(errors.DuplicateDeclaration, f.Span.Start,
				"Field %s already declared", f.Name)
		}
		t, err := a.resolveType(f.Type, s)
		if err != nil {
			return nil, err
		}
		st.Fields = append(st.Fields, core.StructField{Name: f.Name, Type: t})
	}
	return &core.StructDecl{Struct: st}, nil
}

// ===== Assignment forms =====

func (a *analyzer) assignTarget(e ast.Expression, s *Scope) (core.Expression, error) {
	target, err := a.expression(e, s)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *core.Variable:
		if !t.Mutable {
			return nil, errors.New(errors.TypeError, e.GetSpan().Start,
				"Cannot assign to constant %s", t.Name)
		}
	case *core.Parameter, *core.Member:
		// assignable locations
	default:
		return nil, errors.New(errors.TypeError, e.GetSpan().Start, "Cannot assign to this expression")
	}
	return target, nil
}

// checkAssignable enforces the directional compatibility rule, reporting
// an arity mismatch when two function types differ only in parameter count.
func checkAssignable(from, to core.Type, pos position.Position) error {
	if core.Assignable(from, to) {
		return nil
	}
	ff, ok1 := from.(*core.FunctionType)
	tf, ok2 := to.(*core.FunctionType)
	if ok1 && ok2 && len(ff.Params) != len(tf.Params) {
		return errors.New(errors.ArityMismatch, pos,
			"%d parameter(s) required but %d passed", len(tf.Params), len(ff.Params))
	}
	return errors.New(errors.TypeMismatch, pos, "Cannot assign a %s to a %s", from, to)
}

func (a *analyzer) assign(n *ast.Assign, s *Scope) (core.Statement, error) {
	target, err := a.assignTarget(n.Target, s)
	if err != nil {
		return nil, err
	}
	source, err := a.expressionWithType(n.Value, target.TypeOf(), s)
	if err != nil {
		return nil, err
	}
	if err := checkAssignable(source.TypeOf(), target.TypeOf(), n.Value.GetSpan().Start); err != nil {
		return nil, err
	}
	return &core.Assign{Target: target, Source: source}, nil
}

func (a *analyzer) addAssign(n *ast.AddAssign, s *Scope) (core.Statement, error) {
	target, err := a.assignTarget(n.Target, s)
	if err != nil {
		return nil, err
	}
	source, err := a.expression(n.Value, s)
	if err != nil {
		return nil, err
	}
	tt, st := target.TypeOf(), source.TypeOf()
	numeric := core.IsNumeric(tt) && core.IsNumeric(st)
	strings := tt == core.StringType && st == core.StringType
	if !(numeric || strings) || !core.Equivalent(tt, st) {
		return nil, errors.New(errors.TypeMismatch, n.Value.GetSpan().Start,
			"Cannot add a %s to a %s", st, tt)
	}
	return &core.AddAssign{Target: target, Source: source}, nil
}

func (a *analyzer) numericTarget(e ast.Expression, s *Scope) (core.Expression, error) {
	target, err := a.expression(e, s)
	if err != nil {
		return nil, err
	}
	if !core.IsNumeric(target.TypeOf()) {
		return nil, errors.New(errors.TypeError, e.GetSpan().Start, "Expected a number")
	}
	return target, nil
}

// ===== Control flow =====

func (a *analyzer) condition(e ast.Expression, s *Scope) (core.Expression, error) {
	test, err := a.expression(e, s)
	if err != nil {
		return nil, err
	}
	if test.TypeOf() != core.BoolType {
		return nil, errors.New(errors.TypeError, e.GetSpan().Start, "Expected a boolean")
	}
	return test, nil
}

// ifStmt analyzes a conditional, preserving the right-folded else-if chain
// shape: the alternate of each link is either a nested If or the final
// else block (nil when absent). The generator's formatting depends on this
// exact structure.
func (a *analyzer) ifStmt(n *ast.If, s *Scope) (*core.If, error) {
	test, err := a.condition(n.Test, s)
	if err != nil {
		return nil, err
	}
	consequent, err := a.statements(n.Consequent, s.child())
	if err != nil {
		return nil, err
	}
	node := &core.If{Test: test, Consequent: consequent}
	if n.ElseIf != nil {
		elseIf, err := a.ifStmt(n.ElseIf, s)
		if err != nil {
			return nil, err
		}
		node.ElseIf = elseIf
	} else if n.Else != nil {
		alt, err := a.statements(n.Else, s.child())
		if err != nil {
			return nil, err
		}
		if alt == nil {
			alt = []core.Statement{}
		}
		node.Else = alt
	}
	return node, nil
}

func (a *analyzer) whileStmt(n *ast.While, s *Scope) (core.Statement, error) {
	test, err := a.condition(n.Test, s)
	if err != nil {
		return nil, err
	}
	body, err := a.statements(n.Body, s.childLoop())
	if err != nil {
		return nil, err
	}
	return &core.While{Test: test, Body: body}, nil
}

func (a *analyzer) forRange(n *ast.ForRange, s *Scope) (core.Statement, error) {
	low, err := a.expression(n.Low, s)
	if err != nil {
		return nil, err
	}
	high, err := a.expression(n.High, s)
	if err != nil {
		return nil, err
	}
	if !core.IsNumeric(low.TypeOf()) || !core.IsNumeric(high.TypeOf()) {
		return nil, errors.New(errors.TypeError, n.Low.GetSpan().Start, "Expected a number")
	}
	iterType := core.Type(core.IntType)
	if low.TypeOf() == core.FloatType || high.TypeOf() == core.FloatType {
		iterType = core.FloatType
	}
	iter := &core.Variable{Name: n.Iterator, Type: iterType}
	body := s.childLoop()
	if err := body.declare(n.Iterator, iter, n.Span.Start); err != nil {
		return nil, err
	}
	stmts, err := a.statements(n.Body, body)
	if err != nil {
		return nil, err
	}
	return &core.ForRange{Iterator: iter, Low: low, Op: n.Op, High: high, Body: stmts}, nil
}

// forEach analyzes a collection loop. The iterator arity must match what
// the collection's type supports: one variable for arrays, two (key,
// value) for dictionaries.
func (a *analyzer) forEach(n *ast.ForEach, s *Scope) (core.Statement, error) {
	collection, err := a.expression(n.Collection, s)
	if err != nil {
		return nil, err
	}
	var iterTypes []core.Type
	switch t := collection.TypeOf().(type) {
	case *core.ArrayType:
		iterTypes = []core.Type{t.Element}
	case *core.DictType:
		iterTypes = []core.Type{t.Key, t.Value}
	default:
		return nil, errors.New(errors.TypeError, n.Collection.GetSpan().Start,
			"Expected an array or dict")
	}
	if len(n.Iterators) != len(iterTypes) {
		return nil, errors.New(errors.TypeError, n.Span.Start,
			"Expected %d iterator variable(s) but got %d", len(iterTypes), len(n.Iterators))
	}
	body := s.childLoop()
	iterators := make([]*core.Variable, len(n.Iterators))
	for i, name := range n.Iterators {
		v := &core.Variable{Name: name, Type: iterTypes[i]}
		if err := body.declare(name, v, n.Span.Start); err != nil {
			return nil, err
		}
		iterators[i] = v
	}
	stmts, err := a.statements(n.Body, body)
	if err != nil {
		return nil, err
	}
	return &core.ForEach{Iterators: iterators, Collection: collection, Body: stmts}, nil
}

func (a *analyzer) returnStmt(n *ast.Return, s *Scope) (core.Statement, error) {
	fn := s.function
	if fn == nil {
		return nil, errors.New(errors.IllegalReturn, n.Span.Start,
			"Return can only appear in a function")
	}
	if n.Value == nil {
		if fn.Type.Return != core.VoidType {
			return nil, errors.New(errors.MustReturnValue, n.Span.Start,
				"Something should be returned")
		}
		return &core.Return{}, nil
	}
	if fn.Type.Return == core.VoidType {
		return nil, errors.New(errors.MustReturnValue, n.Span.Start,
			"Cannot return a value from a void function")
	}
	value, err := a.expressionWithType(n.Value, fn.Type.Return, s)
	if err != nil {
		return nil, err
	}
	if err := checkAssignable(value.TypeOf(), fn.Type.Return, n.Value.GetSpan().Start); err != nil {
		return nil, err
	}
	return &core.Return{Value: value}, nil
}
