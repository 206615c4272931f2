package analyzer

import (
	"github.com/picto-lang/picto/internal/ast"
	"github.com/picto-lang/picto/internal/core"
	"github.com/picto-lang/picto/internal/errors"
	"github.com/picto-lang/picto/internal/position"
)

// expressionWithType analyzes an expression in a context with an expected
// type. The expected type only matters for the typed empty sentinels: a
// bare [] or 🚫 adopts the context's array or optional type instead of the
// Any-based default. Compatibility itself is still the caller's check.
func (a *analyzer) expressionWithType(e ast.Expression, expected core.Type, s *Scope) (core.Expression, error) {
	if expected != nil {
		switch n := e.(type) {
		case *ast.ArrayLit:
			if len(n.Elements) == 0 {
				if at, ok := expected.(*core.ArrayType); ok {
					return &core.EmptyArray{Type: at}, nil
				}
			}
		case *ast.NoneLit:
			if ot, ok := expected.(*core.OptionalType); ok {
				return &core.EmptyOptional{Type: ot}, nil
			}
		case *ast.DictLit:
			if len(n.Keys) == 0 {
				if dt, ok := expected.(*core.DictType); ok {
					return &core.DictExpression{Type: dt}, nil
				}
			}
		}
	}
	return a.expression(e, s)
}

func (a *analyzer) expression(e ast.Expression, s *Scope) (core.Expression, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return &core.IntLiteral{Value: n.Value}, nil
	case *ast.FloatLit:
		return &core.FloatLiteral{Value: n.Value}, nil
	case *ast.StringLit:
		return &core.StringLiteral{Value: n.Value}, nil
	case *ast.BoolLit:
		return &core.BoolLiteral{Value: n.Value}, nil
	case *ast.NoneLit:
		return &core.EmptyOptional{Type: &core.OptionalType{Base: core.AnyType}}, nil
	case *ast.Identifier:
		return a.identifier(n, s)
	case *ast.Binary:
		return a.binary(n, s)
	case *ast.Unary:
		return a.unary(n, s)
	case *ast.Call:
		return a.call(n, s)
	case *ast.Member:
		return a.member(n, s)
	case *ast.ArrayLit:
		return a.arrayLit(n, s)
	case *ast.TupleLit:
		return a.tupleLit(n, s)
	case *ast.DictLit:
		return a.dictLit(n, s)
	}
	return nil, errors.New(errors.UnsupportedConstruct, e.GetSpan().Start,
		"no analyzer rule for %T", e)
}

// identifier resolves a name through the scope chain to its declared
// entity. The entity itself is the IR expression: all use sites share it
// by identity.
func (a *analyzer) identifier(n *ast.Identifier, s *Scope) (core.Expression, error) {
	entity, ok := s.lookup(n.Name)
	if !ok {
		return nil, errors.New(errors.UndeclaredIdentifier, n.Span.Start,
			"Identifier %s not declared", n.Name)
	}
	if expr, ok := entity.(core.Expression); ok {
		return expr, nil
	}
	return nil, errors.New(errors.TypeError, n.Span.Start,
		"%s is a type, not a value", n.Name)
}

func (a *analyzer) binary(n *ast.Binary, s *Scope) (core.Expression, error) {
	left, err := a.expression(n.Left, s)
	if err != nil {
		return nil, err
	}
	right, err := a.expression(n.Right, s)
	if err != nil {
		return nil, err
	}
	lt, rt := left.TypeOf(), right.TypeOf()
	pos := n.Span.Start

	var result core.Type
	switch n.Op {
	case "??":
		ot, ok := lt.(*core.OptionalType)
		if !ok {
			return nil, errors.New(errors.TypeError, pos, "Expected an optional")
		}
		if !core.Assignable(rt, ot.Base) {
			return nil, errors.New(errors.TypeMismatch, pos, "Cannot assign a %s to a %s", rt, ot.Base)
		}
		result = ot.Base
	case "&&", "||":
		if lt != core.BoolType || rt != core.BoolType {
			return nil, errors.New(errors.TypeError, pos, "Expected a boolean")
		}
		result = core.BoolType
	case "==", "!=":
		if !core.Equivalent(lt, rt) {
			return nil, errors.New(errors.TypeError, pos, "Operands do not have the same type")
		}
		result = core.BoolType
	case "<", "<=", ">", ">=":
		if !comparable(lt) || !core.Equivalent(lt, rt) {
			return nil, errors.New(errors.TypeError, pos, "Expected a number or string")
		}
		result = core.BoolType
	case "+":
		numeric := core.IsNumeric(lt) && core.IsNumeric(rt)
		strings := lt == core.StringType && rt == core.StringType
		if !(numeric || strings) || !core.Equivalent(lt, rt) {
			return nil, errors.New(errors.TypeError, pos, "Expected a number or string")
		}
		result = lt
	case "-", "*", "/", "**":
		if !core.IsNumeric(lt) || !core.IsNumeric(rt) || !core.Equivalent(lt, rt) {
			return nil, errors.New(errors.TypeError, pos, "Expected a number")
		}
		result = lt
	default:
		return nil, errors.New(errors.UnsupportedConstruct, pos, "no analyzer rule for operator %q", n.Op)
	}
	return &core.Binary{Op: n.Op, Left: left, Right: right, Type: result}, nil
}

// comparable reports whether relational operators accept operands of t.
func comparable(t core.Type) bool {
	return core.IsNumeric(t) || t == core.StringType
}

func (a *analyzer) unary(n *ast.Unary, s *Scope) (core.Expression, error) {
	operand, err := a.expression(n.Operand, s)
	if err != nil {
		return nil, err
	}
	pos := n.Span.Start
	switch n.Op {
	case "-":
		if !core.IsNumeric(operand.TypeOf()) {
			return nil, errors.New(errors.TypeError, pos, "Expected a number")
		}
		return &core.Unary{Op: "-", Operand: operand, Type: operand.TypeOf()}, nil
	case "!":
		if operand.TypeOf() != core.BoolType {
			return nil, errors.New(errors.TypeError, pos, "Expected a boolean")
		}
		return &core.Unary{Op: "!", Operand: operand, Type: core.BoolType}, nil
	}
	return nil, errors.New(errors.UnsupportedConstruct, pos, "no analyzer rule for operator %q", n.Op)
}

// call analyzes function and constructor calls. The callee must be
// callable: a struct or class name (constructor; one argument per field)
// or an entity of function type. Argument count must match, and each
// argument must be assignable to the corresponding parameter or field
// type.
func (a *analyzer) call(n *ast.Call, s *Scope) (core.Expression, error) {
	if id, ok := n.Callee.(*ast.Identifier); ok {
		if entity, found := s.lookup(id.Name); found {
			switch t := entity.(type) {
			case *core.StructType:
				return a.constructorCall(t, n, s)
			case *core.Class:
				return a.constructorCall(t.Instance, n, s)
			}
		}
	}
	callee, err := a.expression(n.Callee, s)
	if err != nil {
		return nil, err
	}
	ft, ok := callee.TypeOf().(*core.FunctionType)
	if !ok {
		return nil, errors.New(errors.TypeError, n.Span.Start, "Call of non-function")
	}
	if len(n.Args) != len(ft.Params) {
		return nil, errors.New(errors.ArityMismatch, n.Span.Start,
			"%d argument(s) required but %d passed", len(ft.Params), len(n.Args))
	}
	args := make([]core.Expression, len(n.Args))
	for i, arg := range n.Args {
		analyzed, err := a.expressionWithType(arg, ft.Params[i], s)
		if err != nil {
			return nil, err
		}
		if err := checkAssignable(analyzed.TypeOf(), ft.Params[i], arg.GetSpan().Start); err != nil {
			return nil, err
		}
		args[i] = analyzed
	}
	return &core.Call{Callee: callee, Args: args, Type: ft.Return}, nil
}

func (a *analyzer) constructorCall(st *core.StructType, n *ast.Call, s *Scope) (core.Expression, error) {
	if len(n.Args) != len(st.Fields) {
		return nil, errors.New(errors.ArityMismatch, n.Span.Start,
			"%d argument(s) required but %d passed", len(st.Fields), len(n.Args))
	}
	args := make([]core.Expression, len(n.Args))
	for i, arg := range n.Args {
		analyzed, err := a.expressionWithType(arg, st.Fields[i].Type, s)
		if err != nil {
			return nil, err
		}
		if err := checkAssignable(analyzed.TypeOf(), st.Fields[i].Type, arg.GetSpan().Start); err != nil {
			return nil, err
		}
		args[i] = analyzed
	}
	return &core.ConstructorCall{Struct: st, Args: args}, nil
}

// member analyzes a dotted access. A dictionary recognizes the .items
// pseudo-field as its (key, value) iterable view; otherwise the object
// must be a struct (optionally reached through ?. on an Optional<Struct>)
// and the field must exist, or be a method of the struct's class.
func (a *analyzer) member(n *ast.Member, s *Scope) (core.Expression, error) {
	object, err := a.expression(n.Object, s)
	if err != nil {
		return nil, err
	}
	pos := n.Span.Start

	if n.Op == "?." {
		ot, ok := object.TypeOf().(*core.OptionalType)
		if !ok {
			return nil, errors.New(errors.TypeError, pos, "Expected an optional")
		}
		st, ok := ot.Base.(*core.StructType)
		if !ok {
			return nil, errors.New(errors.TypeError, pos, "Expected an optional struct")
		}
		t, err := a.fieldType(st, n.Field, pos)
		if err != nil {
			return nil, err
		}
		return &core.Member{Object: object, Op: "?.", Field: n.Field, Type: &core.OptionalType{Base: t}}, nil
	}

	switch t := object.TypeOf().(type) {
	case *core.DictType:
		if n.Field == "items" {
			return &core.Member{Object: object, Op: ".", Field: "items", Type: t}, nil
		}
		return nil, errors.New(errors.TypeError, pos, "Expected a struct")
	case *core.StructType:
		ft, err := a.fieldType(t, n.Field, pos)
		if err != nil {
			return nil, err
		}
		return &core.Member{Object: object, Op: ".", Field: n.Field, Type: ft}, nil
	}
	return nil, errors.New(errors.TypeError, pos, "Expected a struct")
}

// fieldType resolves a field, or a method when the struct is the instance
// type of a class.
func (a *analyzer) fieldType(st *core.StructType, name string, pos position.Position) (core.Type, error) {
	if f := st.FieldNamed(name); f != nil {
		return f.Type, nil
	}
	if cls, ok := a.classOf[st]; ok {
		if m := cls.MethodNamed(name); m != nil {
			return m.Type, nil
		}
	}
	return nil, errors.New(errors.UnknownField, pos, "No field %s in %s", name, st.Name)
}

func (a *analyzer) arrayLit(n *ast.ArrayLit, s *Scope) (core.Expression, error) {
	if len(n.Elements) == 0 {
		return &core.EmptyArray{Type: &core.ArrayType{Element: core.AnyType}}, nil
	}
	elements := make([]core.Expression, len(n.Elements))
	for i, el := range n.Elements {
		analyzed, err := a.expression(el, s)
		if err != nil {
			return nil, err
		}
		elements[i] = analyzed
	}
	elem := elements[0].TypeOf()
	for _, el := range elements[1:] {
		if !core.Equivalent(el.TypeOf(), elem) {
			return nil, errors.New(errors.TypeError, n.Span.Start,
				"Not all elements have the same type")
		}
	}
	return &core.ArrayExpression{Elements: elements, Type: &core.ArrayType{Element: elem}}, nil
}

func (a *analyzer) tupleLit(n *ast.TupleLit, s *Scope) (core.Expression, error) {
	elements := make([]core.Expression, len(n.Elements))
	elem := core.Type(core.AnyType)
	uniform := true
	for i, el := range n.Elements {
		analyzed, err := a.expression(el, s)
		if err != nil {
			return nil, err
		}
		elements[i] = analyzed
		if i == 0 {
			elem = analyzed.TypeOf()
		} else if !core.Equivalent(analyzed.TypeOf(), elem) {
			uniform = false
		}
	}
	if !uniform {
		elem = core.AnyType
	}
	return &core.TupleExpression{Elements: elements, Type: &core.ArrayType{Element: elem}}, nil
}

func (a *analyzer) dictLit(n *ast.DictLit, s *Scope) (core.Expression, error) {
	if len(n.Keys) == 0 {
		return nil, errors.New(errors.TypeError, n.Span.Start,
			"Cannot infer the type of an empty dict")
	}
	keys := make([]core.Expression, len(n.Keys))
	values := make([]core.Expression, len(n.Values))
	for i := range n.Keys {
		k, err := a.expression(n.Keys[i], s)
		if err != nil {
			return nil, err
		}
		v, err := a.expression(n.Values[i], s)
		if err != nil {
			return nil, err
		}
		keys[i] = k
		values[i] = v
	}
	kt, vt := keys[0].TypeOf(), values[0].TypeOf()
	for i := 1; i < len(keys); i++ {
		if !core.Equivalent(keys[i].TypeOf(), kt) || !core.Equivalent(values[i].TypeOf(), vt) {
			return nil, errors.New(errors.TypeError, n.Span.Start,
				"Not all entries have the same type")
		}
	}
	return &core.DictExpression{Keys: keys, Values: values, Type: &core.DictType{Key: kt, Value: vt}}, nil
}

// resolveType lowers a type annotation to a core type. A name that is not
// a primitive must resolve to a declared struct or class.
func (a *analyzer) resolveType(t ast.TypeNode, s *Scope) (core.Type, error) {
	switch n := t.(type) {
	case *ast.NamedType:
		switch n.Name {
		case "Int":
			return core.IntType, nil
		case "Float":
			return core.FloatType, nil
		case "Bool":
			return core.BoolType, nil
		case "String":
			return core.StringType, nil
		case "Void":
			return core.VoidType, nil
		case "Any":
			return core.AnyType, nil
		}
		entity, ok := s.lookup(n.Name)
		if !ok {
			return nil, errors.New(errors.UndeclaredIdentifier, n.Span.Start,
				"Identifier %s not declared", n.Name)
		}
		switch e := entity.(type) {
		case *core.StructType:
			return e, nil
		case *core.Class:
			return e.Instance, nil
		}
		return nil, errors.New(errors.TypeError, n.Span.Start, "%s is not a type", n.Name)
	case *ast.ArrayType:
		elem, err := a.resolveType(n.Element, s)
		if err != nil {
			return nil, err
		}
		return &core.ArrayType{Element: elem}, nil
	case *ast.DictType:
		key, err := a.resolveType(n.Key, s)
		if err != nil {
			return nil, err
		}
		value, err := a.resolveType(n.Value, s)
		if err != nil {
			return nil, err
		}
		return &core.DictType{Key: key, Value: value}, nil
	case *ast.FuncType:
		params := make([]core.Type, len(n.Params))
		for i, p := range n.Params {
			pt, err := a.resolveType(p, s)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		ret := core.Type(core.VoidType)
		if n.Return != nil {
			r, err := a.resolveType(n.Return, s)
			if err != nil {
				return nil, err
			}
			ret = r
		}
		return &core.FunctionType{Params: params, Return: ret}, nil
	case *ast.OptionalType:
		base, err := a.resolveType(n.Base, s)
		if err != nil {
			return nil, err
		}
		return &core.OptionalType{Base: base}, nil
	}
	return nil, errors.New(errors.UnsupportedConstruct, t.GetSpan().Start,
		"no analyzer rule for type %T", t)
}
