package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dhamidi/gparse/groovy"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the tokens of a Groovy file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, tok := range groovy.Tokenize(src, args[0]) {
				fmt.Fprintf(w, "%d:%d\t%s\t%s\n", tok.Span.Start.Line, tok.Span.Start.Column, groovy.Lang.TokenName(tok.Kind),
					strings.ReplaceAll(tok.Literal, "\n", `\n`))
			}
			return w.Flush()
		},
	}
}
