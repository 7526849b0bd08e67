// Package registry resolves type names to shared builders while a schema is
// being parsed, so that a type can be referenced before it is declared.
package registry

import (
	"fmt"

	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/tidwall/btree"
)

// BuiltinScalars are registered as Scalar by New.
var BuiltinScalars = []string{"Int", "Float", "String", "Boolean", "ID"}

// KindCollisionError is returned when a name is declared with a kind other
// than the one it already has.
type KindCollisionError struct {
	Name      string
	Existing  ast.TypeKind
	Requested ast.TypeKind
}

func (e *KindCollisionError) Error() string {
	return fmt.Sprintf("type %q is already declared as %s, cannot redeclare it as %s", e.Name, e.Existing, e.Requested)
}

// NotInterfaceError is returned by ReconcilePossibleTypes when an object
// implements a type that is not an interface.
type NotInterfaceError struct {
	Object string
	Name   string
	Kind   ast.TypeKind
}

func (e *NotInterfaceError) Error() string {
	if e.Kind == ast.KindUnset {
		return fmt.Sprintf("type %q implements %q which is never declared", e.Object, e.Name)
	}
	return fmt.Sprintf("type %q implements %q which is %s, not INTERFACE", e.Object, e.Name, e.Kind)
}

type entry struct {
	builder  *ast.TypeBuilder
	declared bool
	builtin  bool
}

// Registry is an arena of named type builders. Ids are assigned in first
// registration order and never change. A Registry belongs to a single parse
// and is not safe for concurrent use.
type Registry struct {
	entries  []entry
	byName   btree.Map[string, int]
	declared []int // ids in first declaration order
}

// New returns a registry seeded with the builtin scalars.
func New() *Registry {
	r := &Registry{}
	for _, name := range BuiltinScalars {
		id := r.intern(name)
		r.entries[id].builder.SetKind(ast.KindScalar)
		r.entries[id].builtin = true
	}
	return r
}

func (r *Registry) intern(name string) int {
	if id, ok := r.byName.Get(name); ok {
		return id
	}
	id := len(r.entries)
	r.entries = append(r.entries, entry{builder: ast.NewTypeBuilder(name)})
	r.byName.Set(name, id)
	return id
}

// RegisterUsage returns the builder for name, creating one with only the
// name set when the name is new.
func (r *Registry) RegisterUsage(name string) *ast.TypeBuilder {
	return r.entries[r.intern(name)].builder
}

// RegisterDeclaration returns the builder for name and sets its kind. It
// fails if the name already has a different kind.
func (r *Registry) RegisterDeclaration(name string, kind ast.TypeKind) (*ast.TypeBuilder, error) {
	id := r.intern(name)
	e := &r.entries[id]
	if k := e.builder.Kind(); k != ast.KindUnset && k != kind {
		return nil, &KindCollisionError{Name: name, Existing: k, Requested: kind}
	}
	if e.builder.Kind() == ast.KindUnset {
		e.builder.SetKind(kind)
	}
	if !e.declared {
		e.declared = true
		r.declared = append(r.declared, id)
	}
	return e.builder, nil
}

// ReconcilePossibleTypes adds every object type to the possible types of
// each interface it implements, in declaration order of the objects.
// Calling it again adds nothing.
func (r *Registry) ReconcilePossibleTypes() error {
	for _, id := range r.declared {
		obj := r.entries[id].builder
		if obj.Kind() != ast.KindObject {
			continue
		}
		for _, iface := range obj.Interfaces() {
			if iface.Kind() != ast.KindInterface {
				return &NotInterfaceError{Object: obj.Name(), Name: iface.Name(), Kind: iface.Kind()}
			}
			if !iface.HasPossibleType(obj) {
				iface.AddPossibleType(obj)
			}
		}
	}
	return nil
}

// Lookup returns the builder registered under name.
func (r *Registry) Lookup(name string) (*ast.TypeBuilder, bool) {
	id, ok := r.byName.Get(name)
	if !ok {
		return nil, false
	}
	return r.entries[id].builder, true
}

// ID returns the arena id of name.
func (r *Registry) ID(name string) (int, bool) {
	return r.byName.Get(name)
}

// At returns the builder with the given id.
func (r *Registry) At(id int) *ast.TypeBuilder {
	return r.entries[id].builder
}

// IsBuiltin reports whether name is one of the seeded scalars.
func (r *Registry) IsBuiltin(name string) bool {
	id, ok := r.byName.Get(name)
	return ok && r.entries[id].builtin
}

// IsDeclared reports whether RegisterDeclaration was called for name.
func (r *Registry) IsDeclared(name string) bool {
	id, ok := r.byName.Get(name)
	return ok && r.entries[id].declared
}

// Len returns the number of registered names, builtins included.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	return r.byName.Keys()
}

// Each calls fn for every builder in id order until fn returns false.
func (r *Registry) Each(fn func(id int, b *ast.TypeBuilder) bool) {
	for id, e := range r.entries {
		if !fn(id, e.builder) {
			return
		}
	}
}

// Unresolved returns the builders that were referenced but never given a
// kind, in id order.
func (r *Registry) Unresolved() []*ast.TypeBuilder {
	var out []*ast.TypeBuilder
	for _, e := range r.entries {
		if e.builder.Kind() == ast.KindUnset {
			out = append(out, e.builder)
		}
	}
	return out
}
