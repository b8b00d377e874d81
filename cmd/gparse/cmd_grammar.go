package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dhamidi/gparse/groovy"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF description of the accepted language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := groovy.Grammar()
			if err != nil {
				return err
			}
			if !list {
				fmt.Fprint(os.Stdout, groovy.GrammarSource())
				return nil
			}
			names := make([]string, 0, len(g))
			for name := range g {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list production names only")

	return cmd
}
