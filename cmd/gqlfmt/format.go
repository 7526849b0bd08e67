package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sprucehealth/gqlast/language/ast"
	"github.com/sprucehealth/gqlast/language/parser"
	"github.com/sprucehealth/gqlast/language/printer"
	"github.com/sprucehealth/gqlast/language/source"
)

type fmtFlags struct {
	write   bool
	list    bool
	diff    bool
	compact bool
	indent  string
	mode    string
	jobs    int
}

func newFmtCmd(cfg *Config) *cobra.Command {
	var flags fmtFlags
	cmd := &cobra.Command{
		Use:   "fmt [path...]",
		Short: "Reformat GraphQL documents",
		Long: `Reformat GraphQL schema and query documents in canonical layout.

Without paths the document is read from standard input and written to
standard output. Directories are searched with the include and exclude globs
of the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFmtFlags(cmd, cfg, flags)
			if err := cfg.validate(); err != nil {
				return err
			}
			if len(args) == 0 {
				return formatStdin(cmd.InOrStdin(), cmd.OutOrStdout(), *cfg)
			}
			files, err := expandPaths(args, *cfg)
			if err != nil {
				return err
			}
			return formatFiles(cmd.Context(), cmd.OutOrStdout(), files, *cfg, flags)
		},
	}
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result to the source file instead of standard output")
	cmd.Flags().BoolVarP(&flags.list, "list", "l", false, "list files whose formatting differs")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "display diffs instead of rewriting files")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "print without optional whitespace")
	cmd.Flags().StringVar(&flags.indent, "indent", "", "indentation unit (default two spaces)")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "document kind: auto, schema or query")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of files formatted in parallel")
	return cmd
}

// applyFmtFlags copies the flags given on the command line over cfg.
func applyFmtFlags(cmd *cobra.Command, cfg *Config, flags fmtFlags) {
	changed := cmd.Flags().Changed
	if changed("compact") {
		cfg.Compact = flags.compact
	}
	if changed("indent") {
		cfg.Indent = flags.indent
	}
	if changed("mode") {
		cfg.Mode = flags.mode
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
}

// formatSource parses body as the document kind selected by cfg.Mode and
// prints it back. In auto mode .graphqls files are schemas and anything
// else is told apart by its first definition.
func formatSource(name string, body []byte, cfg Config) (string, error) {
	params := parser.ParseParams{
		Source: source.New(name, string(body)),
		Options: parser.ParseOptions{
			MaxDepth: cfg.MaxDepth,
			Logger:   log.WithField("file", name),
		},
	}
	mode := cfg.Mode
	if mode == modeAuto && strings.EqualFold(filepath.Ext(name), ".graphqls") {
		mode = modeSchema
	}
	var (
		node ast.Node
		err  error
	)
	switch mode {
	case modeSchema:
		node, err = parser.ParseSchema(params)
	case modeQuery:
		node, err = parser.ParseQuery(params)
	default:
		node, err = parser.ParseDocument(params)
	}
	if err != nil {
		return "", err
	}
	return printer.Print(node, cfg.Options), nil
}

func formatStdin(r io.Reader, w io.Writer, cfg Config) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading standard input: %w", err)
	}
	out, err := formatSource("<stdin>", body, cfg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// expandPaths returns the files named by paths. Files are taken as given;
// directories contribute the files matching an include glob and no exclude
// glob, relative to the directory.
func expandPaths(paths []string, cfg Config) ([]string, error) {
	var files []string
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			files = append(files, path)
			continue
		}
		fsys := os.DirFS(path)
		for _, pattern := range cfg.Include {
			matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expanding %s in %s: %w", pattern, path, err)
			}
			for _, m := range matches {
				if excluded(m, cfg.Exclude) {
					log.WithField("file", m).Debug("Excluded")
					continue
				}
				files = append(files, filepath.Join(path, filepath.FromSlash(m)))
			}
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

type fileResult struct {
	original  string
	formatted string
	changed   bool
	err       error
}

// formatFiles formats files on cfg.Jobs workers and reports the results in
// file order. Parse failures are logged and counted; I/O failures stop the
// run.
func formatFiles(ctx context.Context, out io.Writer, files []string, cfg Config, flags fmtFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return formatFile(name, cfg, flags, &results[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failed int
	for i, name := range files {
		r := results[i]
		entry := log.WithField("file", name)
		switch {
		case r.err != nil:
			failed++
			entry.Error(r.err)
			continue
		case flags.list:
			if r.changed {
				fmt.Fprintln(out, name)
			}
		case !flags.write && !flags.diff:
			io.WriteString(out, r.formatted)
		}
		if flags.diff && r.changed {
			io.WriteString(out, unifiedDiff(name, r.original, r.formatted))
		}
		entry.WithField("changed", r.changed).Debug("Formatted")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be formatted", failed, len(files))
	}
	return nil
}

func formatFile(name string, cfg Config, flags fmtFlags, r *fileResult) error {
	body, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	r.original = string(body)
	r.formatted, r.err = formatSource(name, body, cfg)
	if r.err != nil {
		return nil
	}
	r.changed = r.formatted != r.original
	if flags.write && r.changed && !flags.diff {
		fi, err := os.Stat(name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(name, []byte(r.formatted), fi.Mode().Perm()); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"file": name, "bytes": len(r.formatted)}).Info("Rewrote")
	}
	return nil
}

func unifiedDiff(name, before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name + ".orig",
		ToFile:   name,
		Context:  3,
	})
	if err != nil {
		return err.Error() + "\n"
	}
	return diff
}
