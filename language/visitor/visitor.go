// Package visitor walks schema and query ASTs and provides the level and
// index tracking Context that the parser and printer share.
package visitor

import (
	"github.com/sprucehealth/gqlast/language/ast"
)

const (
	ActionNoChange = ""
	ActionSkip     = "SKIP"
	ActionBreak    = "BREAK"
)

// VisitFuncParams describes the node being visited. Key names the field of
// Parent holding the node and Index is its position in that list, or -1 for
// single children and the root.
type VisitFuncParams struct {
	Node    ast.Node
	Key     string
	Index   int
	Parent  ast.Node
	Context *Context
}

// VisitFunc returns one of the Action constants. ActionSkip from Enter
// skips the children and the Leave call of the node.
type VisitFunc func(p VisitFuncParams) string

// ListParams describes a child list about to be visited.
type ListParams struct {
	Parent  ast.Node
	Key     string
	Len     int
	Context *Context
}

type VisitorOptions struct {
	Enter VisitFunc
	Leave VisitFunc
	// Punctuate returns the hooks for a child list. It is called for every
	// list, empty ones included.
	Punctuate func(p ListParams) Hooks
}

type walker struct {
	opts *VisitorOptions
	ctx  *Context
}

// Visit walks root depth first. Named type references (field types, union
// members, implemented interfaces) are visited as leaves; their declarations
// are visited once, from the schema's type list. Visit returns false if a
// callback returned ActionBreak.
func Visit(root ast.Node, opts *VisitorOptions) bool {
	if root == nil || opts == nil {
		return true
	}
	w := &walker{opts: opts, ctx: &Context{}}
	return w.node(root, nil, "", -1, false)
}

func (w *walker) node(n, parent ast.Node, key string, index int, leaf bool) bool {
	p := VisitFuncParams{Node: n, Key: key, Index: index, Parent: parent, Context: w.ctx}
	if w.opts.Enter != nil {
		switch w.opts.Enter(p) {
		case ActionBreak:
			return false
		case ActionSkip:
			return true
		}
	}
	if !leaf && !w.children(n) {
		return false
	}
	if w.opts.Leave != nil && w.opts.Leave(p) == ActionBreak {
		return false
	}
	return true
}

func (w *walker) single(n, parent ast.Node, key string) bool {
	return w.node(n, parent, key, -1, false)
}

func (w *walker) value(v *ast.Value, parent ast.Node, key string) bool {
	if v == nil {
		return true
	}
	return w.single(v, parent, key)
}

// typeRef visits a type reference: modifiers are descended, the named type
// at the bottom is a leaf.
func (w *walker) typeRef(t ast.Type, parent ast.Node, key string, index int) bool {
	if t == nil {
		return true
	}
	return w.node(t, parent, key, index, ast.IsNamed(t))
}

func walkList[T ast.Node](w *walker, parent ast.Node, key string, items []T) bool {
	return walkListAs(w, parent, key, items, false)
}

func walkRefs[T ast.Type](w *walker, parent ast.Node, key string, items []T) bool {
	return walkListAs(w, parent, key, items, true)
}

func walkListAs[T ast.Node](w *walker, parent ast.Node, key string, items []T, refs bool) bool {
	var h Hooks
	if w.opts.Punctuate != nil {
		h = w.opts.Punctuate(ListParams{Parent: parent, Key: key, Len: len(items), Context: w.ctx})
	}
	return Sequence(w.ctx, items, h, func(i int, item T) bool {
		if refs {
			return w.typeRef(any(item).(ast.Type), parent, key, i)
		}
		return w.node(item, parent, key, i, false)
	})
}

func (w *walker) children(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Schema:
		return walkList(w, n, "Types", n.Types) &&
			walkList(w, n, "Directives", n.Directives)
	case *ast.ScalarType:
		return walkList(w, n, "Directives", n.Directives)
	case *ast.ObjectType:
		return walkRefs(w, n, "Interfaces", n.Interfaces) &&
			walkList(w, n, "Directives", n.Directives) &&
			walkList(w, n, "Fields", n.Fields)
	case *ast.InterfaceType:
		return walkList(w, n, "Directives", n.Directives) &&
			walkList(w, n, "Fields", n.Fields)
	case *ast.UnionType:
		return walkList(w, n, "Directives", n.Directives) &&
			walkRefs(w, n, "PossibleTypes", n.PossibleTypes)
	case *ast.EnumType:
		return walkList(w, n, "Directives", n.Directives) &&
			walkList(w, n, "Values", n.Values)
	case *ast.InputObjectType:
		return walkList(w, n, "Directives", n.Directives) &&
			walkList(w, n, "Fields", n.Fields)
	case *ast.ListType:
		return w.typeRef(n.OfType, n, "OfType", -1)
	case *ast.NonNullType:
		return w.typeRef(n.OfType, n, "OfType", -1)
	case *ast.FieldDefinition:
		return walkList(w, n, "Arguments", n.Arguments) &&
			w.typeRef(n.Type, n, "Type", -1) &&
			walkList(w, n, "Directives", n.Directives)
	case *ast.InputValue:
		return w.typeRef(n.Type, n, "Type", -1) &&
			w.value(n.DefaultValue, n, "DefaultValue") &&
			walkList(w, n, "Directives", n.Directives)
	case *ast.EnumValue:
		return walkList(w, n, "Directives", n.Directives)
	case *ast.DirectiveDefinition:
		return walkList(w, n, "Arguments", n.Arguments)
	case *ast.Directive:
		return walkList(w, n, "Arguments", n.Arguments)
	case *ast.Argument:
		return w.value(n.Value, n, "Value")
	case *ast.Document:
		return walkList(w, n, "Operations", n.Operations) &&
			walkList(w, n, "Fragments", n.Fragments)
	case *ast.OperationDefinition:
		return walkList(w, n, "VariableDefinitions", n.VariableDefinitions) &&
			walkList(w, n, "Directives", n.Directives) &&
			walkList(w, n, "SelectionSet", n.SelectionSet)
	case *ast.VariableDefinition:
		return w.value(n.DefaultValue, n, "DefaultValue")
	case *ast.FragmentDefinition:
		return walkList(w, n, "Directives", n.Directives) &&
			walkList(w, n, "SelectionSet", n.SelectionSet)
	case *ast.Field:
		return walkList(w, n, "Arguments", n.Arguments) &&
			walkList(w, n, "Directives", n.Directives) &&
			walkList(w, n, "SelectionSet", n.SelectionSet)
	case *ast.FragmentSpread:
		return walkList(w, n, "Directives", n.Directives)
	case *ast.InlineFragment:
		return walkList(w, n, "Directives", n.Directives) &&
			walkList(w, n, "SelectionSet", n.SelectionSet)
	}
	return true
}
