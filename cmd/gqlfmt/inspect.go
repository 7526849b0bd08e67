package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/parser"
	"github.com/sprucehealth/gqlast/language/source"
	"github.com/sprucehealth/gqlast/language/visitor"
)

// typeSummary is one row of the inspect listing.
type typeSummary struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"`
	Related []string `yaml:"related,omitempty"`
	Members int      `yaml:"members"`
}

type schemaSummary struct {
	Roots      map[string]string `yaml:"roots,omitempty"`
	Types      []typeSummary     `yaml:"types"`
	Directives []string          `yaml:"directives,omitempty"`
	Counts     map[string]int    `yaml:"counts"`
}

func newInspectCmd(cfg *Config) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "inspect [schema]",
		Short: "Summarize the types of a schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "<stdin>"
			var body []byte
			var err error
			if len(args) == 1 {
				name = args[0]
				body, err = os.ReadFile(name)
			} else {
				body, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			schema, err := parser.ParseSchema(parser.ParseParams{
				Source: source.New(name, string(body)),
				Options: parser.ParseOptions{
					MaxDepth: cfg.MaxDepth,
					Logger:   log.WithField("file", name),
				},
			})
			if err != nil {
				return err
			}
			summary := summarize(schema)
			if asYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(summary); err != nil {
					return err
				}
				return enc.Close()
			}
			return writeSummary(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the summary as YAML")
	return cmd
}

// summarize lists the declared types sorted by name. Related holds the
// implemented interfaces of objects and the possible types of interfaces
// and unions; Members counts fields, values or input fields.
func summarize(schema *ast.Schema) schemaSummary {
	s := schemaSummary{Counts: map[string]int{}}
	for op, t := range map[ast.OperationType]ast.Type{
		ast.OperationQuery:        schema.QueryType,
		ast.OperationMutation:     schema.MutationType,
		ast.OperationSubscription: schema.SubscriptionType,
	} {
		if t != nil {
			if s.Roots == nil {
				s.Roots = map[string]string{}
			}
			s.Roots[string(op)] = t.TypeName()
		}
	}
	for _, t := range schema.Types {
		ts := typeSummary{Name: t.TypeName(), Kind: t.Kind().String()}
		switch t := t.(type) {
		case *ast.ObjectType:
			ts.Related = t.InterfaceNames()
			ts.Members = len(t.Fields)
		case *ast.InterfaceType:
			for _, o := range t.PossibleTypes {
				ts.Related = append(ts.Related, o.Name)
			}
			ts.Members = len(t.Fields)
		case *ast.UnionType:
			for _, m := range t.PossibleTypes {
				ts.Related = append(ts.Related, m.TypeName())
			}
			ts.Members = len(t.PossibleTypes)
		case *ast.EnumType:
			ts.Members = len(t.Values)
		case *ast.InputObjectType:
			ts.Members = len(t.Fields)
		}
		s.Types = append(s.Types, ts)
	}
	slices.SortFunc(s.Types, func(a, b typeSummary) int { return strings.Compare(a.Name, b.Name) })
	for _, d := range schema.Directives {
		s.Directives = append(s.Directives, "@"+d.Name)
	}

	visitor.Visit(schema, &visitor.VisitorOptions{
		Enter: func(p visitor.VisitFuncParams) string {
			switch p.Node.(type) {
			case *ast.FieldDefinition:
				s.Counts["fields"]++
			case *ast.InputValue:
				s.Counts["input values"]++
			case *ast.EnumValue:
				s.Counts["enum values"]++
			case *ast.Directive:
				s.Counts["directive usages"]++
			case ast.Type:
				// Type references are leaves; only declarations are counted.
				if p.Key == "Types" {
					s.Counts["types"]++
				}
			}
			return visitor.ActionNoChange
		},
	})
	return s
}

func writeSummary(w io.Writer, s schemaSummary) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tMEMBERS\tRELATED")
	for _, t := range s.Types {
		sep := ", "
		if t.Kind == ast.KindUnion.String() {
			sep = " | "
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", t.Name, t.Kind, t.Members, strings.Join(t.Related, sep))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, op := range []ast.OperationType{ast.OperationQuery, ast.OperationMutation, ast.OperationSubscription} {
		if name, ok := s.Roots[string(op)]; ok {
			fmt.Fprintf(w, "%s root: %s\n", op, name)
		}
	}
	if len(s.Directives) != 0 {
		fmt.Fprintf(w, "directives: %s\n", strings.Join(s.Directives, " "))
	}
	keys := make([]string, 0, len(s.Counts))
	for k := range s.Counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	counts := make([]string, 0, len(keys))
	for _, k := range keys {
		counts = append(counts, fmt.Sprintf("%d %s", s.Counts[k], k))
	}
	_, err := fmt.Fprintln(w, strings.Join(counts, ", "))
	return err
}
