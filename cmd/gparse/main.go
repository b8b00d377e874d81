package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var (
		verbosity  int
		logFile    string
		configPath string
	)
	cfg := defaultConfig()

	rootCmd := &cobra.Command{
		Use:           "gparse",
		Short:         "Parse Groovy sources into concrete syntax trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logFile != "" {
				commonlog.Configure(verbosity, &logFile)
			} else {
				commonlog.Configure(verbosity, nil)
			}
			loaded, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			*cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+defaultConfigFile+" if present)")

	rootCmd.AddCommand(newParseCmd(cfg))
	rootCmd.AddCommand(newCheckCmd(cfg))
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newGrammarCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
