package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlkit/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template string
		name     string
		port     int
		metrics  bool
		list     bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create htmlkit.yaml and example form definitions",
		Long: `Create htmlkit.yaml and example form definitions.

Examples:
  htmlkit init
  htmlkit init support --template contact --metrics
  htmlkit init --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, n := range templates.List() {
					t, _ := templates.Get(n)
					fmt.Fprintf(out, "%-10s %s\n", n, t.Description)
				}
				return nil
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if name == "" {
				name = filepath.Base(abs)
			}

			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}
			if err := tmpl.Create(dir, templates.Config{ProjectName: name, Port: port, Metrics: metrics}); err != nil {
				return err
			}

			success(out, "Created %s project in %s", tmpl.Name, dir)
			info(out, "cd %s && htmlkit serve", dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Template to use")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (default: directory name)")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Server port")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Enable /metrics")
	cmd.Flags().BoolVar(&list, "list", false, "List the available templates")

	return cmd
}
