// Command ahi holds developer tools for working on the Groovy grammar.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "ahi",
		Short: "Grammar development tools for gparse",
	}
	root.AddCommand(newEbnfCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
