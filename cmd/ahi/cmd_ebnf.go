package main

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/dhamidi/gparse/groovy"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ebnf",
		Short: "Tools for the reference grammar",
		Long: `Tools for the reference grammar. Without a file argument the grammar
embedded in the groovy package is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfTerminalsCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify a grammar",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, grammar, err := readGrammar(args)
			if err != nil {
				return err
			}
			if start == "" {
				fmt.Printf("%s: %d productions\n", name, len(grammar))
				return nil
			}
			if err := ebnf.Verify(grammar, start); err != nil {
				printErrors(err)
				return fmt.Errorf("%s: grammar does not verify from %s", name, start)
			}
			fmt.Printf("%s: %d productions reachable from %s\n", name, len(grammar), start)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "File", "start production for verification (empty only checks syntax)")

	return cmd
}

func newEbnfTerminalsCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "terminals [file]",
		Short: "Check that every terminal is a single lexer token",
		Long: `Check that every quoted terminal of the syntactic (upper-case)
productions is read back by the Groovy lexer as exactly one token.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, grammar, err := readGrammar(args)
			if err != nil {
				return err
			}
			if list {
				for _, t := range groovy.Terminals(grammar) {
					fmt.Println(t)
				}
			}
			if err := groovy.CheckTerminals(grammar); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return fmt.Errorf("%s: terminals do not match the lexer", name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "print the terminals")

	return cmd
}

// readGrammar parses the file named in args, or the embedded grammar.
func readGrammar(args []string) (string, ebnf.Grammar, error) {
	name := "grammar.ebnf"
	var src io.Reader = strings.NewReader(groovy.GrammarSource())
	if len(args) == 1 {
		name = args[0]
		f, err := os.Open(name)
		if err != nil {
			return "", nil, fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		src = f
	}

	grammar, err := ebnf.Parse(name, src)
	if err != nil {
		printErrors(err)
		return "", nil, fmt.Errorf("%s: invalid grammar", name)
	}
	return name, grammar, nil
}

// printErrors prints each error of the list ebnf returns on its own line.
func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Slice {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	for i := 0; i < v.Len(); i++ {
		fmt.Fprintln(os.Stderr, v.Index(i).Interface())
	}
}
