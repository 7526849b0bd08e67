// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kr/pretty"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/sprucehealth/gqlast/language/ast"
)

// Diff lists the differences between a and b, one per line.
func Diff(a, b any) []string {
	return pretty.Diff(a, b)
}

// UnifiedDiff returns a unified diff from want to got, or "" when they are
// equal.
func UnifiedDiff(want, got string) string {
	if want == got {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// ASTOptions compares AST nodes by structure. Source positions are ignored.
func ASTOptions() []cmp.Option {
	return []cmp.Option{cmpopts.IgnoreTypes(ast.Location{})}
}

// EqualAST fails the test when want and got differ in anything but their
// source positions.
func EqualAST(t testing.TB, want, got any, msgAndArgs ...any) bool {
	t.Helper()
	diff := cmp.Diff(want, got, ASTOptions()...)
	if diff == "" {
		return true
	}
	var prefix string
	if len(msgAndArgs) == 1 {
		prefix = fmt.Sprintf("%v: ", msgAndArgs[0])
	} else if len(msgAndArgs) > 1 {
		prefix = fmt.Sprintf(msgAndArgs[0].(string)+": ", msgAndArgs[1:]...)
	}
	t.Errorf("%sAST mismatch (-want +got):\n%v", prefix, diff)
	return false
}
