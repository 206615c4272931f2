package core

import "testing"

func TestEquivalentStructural(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same primitive", IntType, IntType, true},
		{"different primitives", IntType, FloatType, false},
		{"array of same element", &ArrayType{IntType}, &ArrayType{IntType}, true},
		{"array of different element", &ArrayType{IntType}, &ArrayType{FloatType}, false},
		{"optional of same base", &OptionalType{StringType}, &OptionalType{StringType}, true},
		{"dict same", &DictType{StringType, IntType}, &DictType{StringType, IntType}, true},
		{"dict different value", &DictType{StringType, IntType}, &DictType{StringType, FloatType}, false},
		{
			"function same shape",
			&FunctionType{Params: []Type{IntType, IntType}, Return: IntType},
			&FunctionType{Params: []Type{IntType, IntType}, Return: IntType},
			true,
		},
		{
			"function different arity",
			&FunctionType{Params: []Type{IntType}, Return: IntType},
			&FunctionType{Params: []Type{IntType, IntType}, Return: IntType},
			false,
		},
		{"array vs primitive", &ArrayType{IntType}, IntType, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equivalent(tt.a, tt.b); got != tt.want {
				t.Errorf("Equivalent(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Equivalent(tt.b, tt.a); got != tt.want {
				t.Errorf("Equivalent(%s, %s) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestStructTypesAreNominal(t *testing.T) {
	a := &StructType{Name: "P", Fields: []StructField{{"x", IntType}}}
	b := &StructType{Name: "P", Fields: []StructField{{"x", IntType}}}
	if Equivalent(a, b) {
		t.Error("distinct struct declarations must not be equivalent")
	}
	if !Equivalent(a, a) {
		t.Error("a struct type must be equivalent to itself")
	}
}

func TestAssignable(t *testing.T) {
	intToInt := &FunctionType{Params: []Type{IntType}, Return: IntType}
	anyToInt := &FunctionType{Params: []Type{AnyType}, Return: IntType}

	tests := []struct {
		name     string
		from, to Type
		want     bool
	}{
		{"anything to Any", &ArrayType{IntType}, AnyType, true},
		{"equivalent types", IntType, IntType, true},
		{"int to float", IntType, FloatType, false},
		{"contravariant params", intToInt, anyToInt, false},
		{"contravariant params ok", anyToInt, intToInt, true},
		{
			"covariant return",
			&FunctionType{Params: []Type{IntType}, Return: IntType},
			&FunctionType{Params: []Type{IntType}, Return: AnyType},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assignable(tt.from, tt.to); got != tt.want {
				t.Errorf("Assignable(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric(IntType) || !IsNumeric(FloatType) {
		t.Error("Int and Float are numeric")
	}
	if IsNumeric(StringType) || IsNumeric(BoolType) {
		t.Error("String and Bool are not numeric")
	}
}
