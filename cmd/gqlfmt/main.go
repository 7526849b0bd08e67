// Command gqlfmt formats GraphQL schema and query documents and summarizes
// schemas.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

type rootFlags struct {
	configPath string
	verbose    int
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cfg := defaultConfig()
	rootCmd := &cobra.Command{
		Use:           "gqlfmt",
		Short:         "Format and inspect GraphQL documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			switch {
			case flags.verbose >= 2:
				log.SetLevel(logrus.TraceLevel)
			case flags.verbose == 1:
				log.SetLevel(logrus.DebugLevel)
			default:
				log.SetLevel(logrus.WarnLevel)
			}
			loaded, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default "+configFileName+" when present)")
	rootCmd.PersistentFlags().CountVarP(&flags.verbose, "verbose", "v", "log progress; repeat to trace the parser")
	rootCmd.AddCommand(newFmtCmd(cfg), newInspectCmd(cfg))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
