package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/gparse/format"
	"github.com/dhamidi/gparse/groovy"
	"github.com/dhamidi/gparse/parse"
	"github.com/spf13/cobra"
)

func newParseCmd(cfg *Config) *cobra.Command {
	var (
		positions  bool
		expand     bool
		expression bool
	)

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a Groovy file and print its syntax tree",
		Long: `Parse a Groovy file and print its syntax tree to stdout. Syntax errors
are printed to stderr; the tree is printed regardless.

Use - to read from stdin, or --expression to parse the argument itself
as a single expression.`,
		Args: cobra.ExactArgs(1),
	}
	over := cfg.bindFlags(cmd.Flags())
	cmd.Flags().StringVarP(&over.Format, "format", "f", cfg.Format, "output format (tree, json, lines, shape)")
	cmd.Flags().BoolVar(&positions, "positions", false, "include positions in tree and json output")
	cmd.Flags().BoolVar(&expand, "expand", false, "expand lazy blocks before printing")
	cmd.Flags().BoolVarP(&expression, "expression", "e", false, "parse the argument as an expression")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c := *cfg
		c.merge(cmd.Flags(), over)
		if err := c.validate(); err != nil {
			return err
		}

		var (
			tree *parse.Tree
			src  []byte
		)
		if expression {
			src = []byte(args[0])
			tree = groovy.ParseExpression(args[0], c.options("")...)
		} else {
			name := args[0]
			data, err := readSource(name)
			if err != nil {
				return err
			}
			src = data
			tree = groovy.ParseFile(name, src, c.options(name)...)
		}
		if expand {
			tree.ExpandAll()
		}

		if err := printTree(os.Stdout, tree, c.Format, positions); err != nil {
			return fmt.Errorf("encode %s: %w", c.Format, err)
		}
		return format.NewDiagnosticEncoder(os.Stderr, src).Encode(tree)
	}

	return cmd
}

func readSource(name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return data, nil
}

func printTree(w io.Writer, tree *parse.Tree, outputFormat string, positions bool) error {
	switch outputFormat {
	case "json":
		return format.NewJSONEncoder(w, positions).Encode(tree)
	case "lines":
		return format.NewLineEncoder(w).Encode(tree)
	case "shape":
		_, err := io.WriteString(w, tree.Root.Shape())
		return err
	case "tree":
		text := tree.Root.String()
		if positions {
			text = tree.Root.StringWithPositions()
		}
		_, err := io.WriteString(w, text)
		return err
	}
	return fmt.Errorf("unknown format: %s", outputFormat)
}
