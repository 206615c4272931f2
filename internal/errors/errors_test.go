package errors

import (
	"fmt"
	"testing"

	"github.com/picto-lang/picto/internal/position"
)

func TestErrorStringWithPosition(t *testing.T) {
	err := New(TypeError, position.Position{Filename: "t.picto", Line: 3, Column: 7, Offset: 20}, "Expected a number")
	if got, want := err.Error(), "3:7: Expected a number"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorStringWithoutPosition(t *testing.T) {
	err := New(IllegalBreak, position.Position{}, "Break can only appear in a loop")
	if got, want := err.Error(), "Break can only appear in a loop"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestKindOf(t *testing.T) {
	err := New(DuplicateDeclaration, position.Position{}, "Identifier x already declared")
	if got := KindOf(err); got != DuplicateDeclaration {
		t.Errorf("KindOf() = %q, want %q", got, DuplicateDeclaration)
	}
	wrapped := fmt.Errorf("analyze: %w", err)
	if got := KindOf(wrapped); got != DuplicateDeclaration {
		t.Errorf("KindOf(wrapped) = %q, want %q", got, DuplicateDeclaration)
	}
	if got := KindOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}
