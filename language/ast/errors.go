package ast

import "fmt"

// BuilderError is the panic value raised when a builder is used against its
// contract: building without a kind, data that does not fit the kind, or
// mutating after Build.
type BuilderError struct {
	Node    string
	Name    string
	Problem string
}

func (e *BuilderError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("ast: %s: %s", e.Node, e.Problem)
	}
	return fmt.Sprintf("ast: %s %q: %s", e.Node, e.Name, e.Problem)
}

func precondition(ok bool, node, name, format string, args ...any) {
	if !ok {
		panic(&BuilderError{Node: node, Name: name, Problem: fmt.Sprintf(format, args...)})
	}
}
