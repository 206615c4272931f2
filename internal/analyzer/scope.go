package analyzer

import (
	"github.com/picto-lang/picto/internal/core"
	"github.com/picto-lang/picto/internal/errors"
	"github.com/picto-lang/picto/internal/position"
)

// Scope is a lexical region with its own identifier-to-entity mapping and a
// parent link for outward lookup. The loop flag and the enclosing function
// and class are inherited from the parent unless a child overrides them.
type Scope struct {
	parent   *Scope
	entities map[string]any

	inLoop   bool
	function *core.Function
	class    *core.Class
}

// newRootScope builds the global scope, pre-populated with the standard
// library bindings.
func newRootScope(builtins map[string]any) *Scope {
	s := &Scope{entities: make(map[string]any, len(builtins))}
	for name, entity := range builtins {
		s.entities[name] = entity
	}
	return s
}

// child opens a nested scope inheriting the parent's context flags.
func (s *Scope) child() *Scope {
	return &Scope{
		parent:   s,
		entities: make(map[string]any),
		inLoop:   s.inLoop,
		function: s.function,
		class:    s.class,
	}
}

// childLoop opens a nested scope marked as lexically inside a loop.
func (s *Scope) childLoop() *Scope {
	c := s.child()
	c.inLoop = true
	return c
}

// childFunction opens the body scope of fn. Loop context does not cross a
// function boundary.
func (s *Scope) childFunction(fn *core.Function) *Scope {
	c := s.child()
	c.function = fn
	c.inLoop = false
	return c
}

// childClass opens the body scope of cls.
func (s *Scope) childClass(cls *core.Class) *Scope {
	c := s.child()
	c.class = cls
	return c
}

// lookup walks from the innermost scope outward; the first match wins.
func (s *Scope) lookup(name string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if entity, ok := cur.entities[name]; ok {
			return entity, true
		}
	}
	return nil, false
}

// declare inserts into the current scope only. Redeclaring a name already
// present in this scope is a semantic error.
func (s *Scope) declare(name string, entity any, pos position.Position) error {
	if _, exists := s.entities[name]; exists {
		return errors.New(errors.DuplicateDeclaration, pos, "Identifier %s already declared", name)
	}
	s.entities[name] = entity
	return nil
}
