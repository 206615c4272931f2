// Package errors provides the standardized diagnostic error type for the
// Picto compiler. Analysis fails fast: the first violated rule produces a
// CompileError and unwinds the whole pipeline, so a caller only ever sees a
// single diagnostic per run.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/picto-lang/picto/internal/position"
)

// Kind classifies a compile error. The set is closed; every diagnostic the
// analyzer or generator can produce carries exactly one of these.
type Kind string

const (
	// DuplicateDeclaration: identifier re-declared in the same lexical scope.
	DuplicateDeclaration Kind = "DuplicateDeclaration"
	// UndeclaredIdentifier: identifier referenced before or without declaration.
	UndeclaredIdentifier Kind = "UndeclaredIdentifier"
	// TypeMismatch: assignment, initializer or return value not assignable to
	// the target's type.
	TypeMismatch Kind = "TypeMismatch"
	// TypeError: operand violates the typing rule for its construct
	// (numeric required, boolean required, array-or-dict required, ...).
	TypeError Kind = "TypeError"
	// ArityMismatch: call or constructor argument count does not match the
	// parameter or field count.
	ArityMismatch Kind = "ArityMismatch"
	// IllegalReturn: return statement outside any function.
	IllegalReturn Kind = "IllegalReturn"
	// IllegalBreak: break statement outside any loop.
	IllegalBreak Kind = "IllegalBreak"
	// MustReturnValue: bare return from a non-void function, or a value
	// returned from a void function.
	MustReturnValue Kind = "MustReturnValue"
	// UnknownField: member access names a field not present on the struct.
	UnknownField Kind = "UnknownField"
	// UnsupportedConstruct: a parse tree node kind with no analyzer or
	// generator rule. Indicates a grammar/compiler mismatch, not user error.
	UnsupportedConstruct Kind = "UnsupportedConstruct"
	// SyntaxError: lexical or grammatical violation reported by the frontend.
	SyntaxError Kind = "SyntaxError"
)

// CompileError is the single error shape produced by every compiler stage.
type CompileError struct {
	Kind    Kind
	Message string
	Pos     position.Position
}

// Error implements the error interface. When a source position is known the
// message is prefixed with "line:column:" so editors can jump to it.
func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

// New creates a CompileError of the given kind at the given position.
func New(kind Kind, pos position.Position, format string, args ...any) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// KindOf extracts the Kind from err, or "" if err is not a CompileError.
func KindOf(err error) Kind {
	var ce *CompileError
	if stderrors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
