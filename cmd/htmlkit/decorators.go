package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlkit/pkg/decorator"
	"github.com/vango-dev/htmlkit/pkg/form"
)

func decoratorsCmd() *cobra.Command {
	var elements bool

	cmd := &cobra.Command{
		Use:   "decorators",
		Short: "List the available decorators",
		Long: `List the decorators a definition can name, in lookup order.

With --elements the registered element types are listed instead.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if elements {
				for _, typ := range form.DefaultRegistry().Types() {
					fmt.Fprintln(out, typ)
				}
				return
			}
			for _, name := range decorator.DefaultLoader().Names() {
				fmt.Fprintln(out, name)
			}
		},
	}

	cmd.Flags().BoolVar(&elements, "elements", false, "List element types instead")

	return cmd
}
