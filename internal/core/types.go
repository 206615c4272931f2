package core

import "strings"

// Type is the closed set of Picto types. Types are compared structurally:
// two Array(Int) values are equivalent regardless of identity. Struct types
// are the one nominal exception: a struct is declared exactly once and is
// equivalent only to itself.
type Type interface {
	typeVariant()
	String() string
}

// PrimitiveType is one of the built-in scalar types. The package-level
// singletons below are the only instances.
type PrimitiveType struct {
	name string
}

func (t *PrimitiveType) typeVariant()   {}
func (t *PrimitiveType) String() string { return t.name }

// The primitive type singletons.
var (
	BoolType   = &PrimitiveType{"Bool"}
	IntType    = &PrimitiveType{"Int"}
	FloatType  = &PrimitiveType{"Float"}
	StringType = &PrimitiveType{"String"}
	VoidType   = &PrimitiveType{"Void"}
	AnyType    = &PrimitiveType{"Any"}
)

// ArrayType is [Element].
type ArrayType struct {
	Element Type
}

func (t *ArrayType) typeVariant()   {}
func (t *ArrayType) String() string { return "[" + t.Element.String() + "]" }

// DictType is {Key: Value}.
type DictType struct {
	Key   Type
	Value Type
}

func (t *DictType) typeVariant() {}
func (t *DictType) String() string {
	return "{" + t.Key.String() + ": " + t.Value.String() + "}"
}

// FunctionType is (Params...) -> Return.
type FunctionType struct {
	Params []Type
	Return Type
}

func (t *FunctionType) typeVariant() {}
func (t *FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Return.String()
}

// OptionalType is Base?.
type OptionalType struct {
	Base Type
}

func (t *OptionalType) typeVariant()   {}
func (t *OptionalType) String() string { return t.Base.String() + "?" }

// StructField is a named field of a struct type.
type StructField struct {
	Name string
	Type Type
}

// StructType is a declared aggregate with ordered fields. A constructor
// call takes one argument per field, in declaration order.
type StructType struct {
	Name   string
	Fields []StructField
}

func (t *StructType) typeVariant()   {}
func (t *StructType) String() string { return t.Name }

// FieldNamed returns the field with the given name, or nil.
func (t *StructType) FieldNamed(name string) *StructField {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// IsNumeric reports whether t is Int or Float.
func IsNumeric(t Type) bool {
	return t == IntType || t == FloatType
}

// Equivalent is the symmetric structural equality relation over types.
// Optional and Array types are equivalent when their base types are;
// function types when return types and parameter sequences are pairwise
// equivalent; struct types only when identical.
func Equivalent(a, b Type) bool {
	switch at := a.(type) {
	case *PrimitiveType:
		return a == b
	case *ArrayType:
		bt, ok := b.(*ArrayType)
		return ok && Equivalent(at.Element, bt.Element)
	case *DictType:
		bt, ok := b.(*DictType)
		return ok && Equivalent(at.Key, bt.Key) && Equivalent(at.Value, bt.Value)
	case *OptionalType:
		bt, ok := b.(*OptionalType)
		return ok && Equivalent(at.Base, bt.Base)
	case *FunctionType:
		bt, ok := b.(*FunctionType)
		if !ok || len(at.Params) != len(bt.Params) || !Equivalent(at.Return, bt.Return) {
			return false
		}
		for i := range at.Params {
			if !Equivalent(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return true
	case *StructType:
		return a == b
	}
	return false
}

// Assignable is the directional compatibility relation: a value of type
// `from` may be stored into a location of type `to`. Anything is assignable
// to Any; otherwise the types must be equivalent, or both function types
// with a covariant return, contravariant parameters, and equal parameter
// counts.
func Assignable(from, to Type) bool {
	if to == AnyType {
		return true
	}
	if Equivalent(from, to) {
		return true
	}
	ff, ok1 := from.(*FunctionType)
	tf, ok2 := to.(*FunctionType)
	if !ok1 || !ok2 || len(ff.Params) != len(tf.Params) {
		return false
	}
	if !Assignable(ff.Return, tf.Return) {
		return false
	}
	for i := range tf.Params {
		if !Assignable(tf.Params[i], ff.Params[i]) {
			return false
		}
	}
	return true
}
