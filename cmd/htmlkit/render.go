package main

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlkit/internal/config"
	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/formdef"
	"github.com/vango-dev/htmlkit/pkg/html"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		formName string
		pretty   bool
		set      []string
		validate bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "render [file|dir...]",
		Short: "Render a form definition to HTML",
		Long: `Render a form definition to HTML.

Definitions are read from the given files and directories, or from
the forms listed in htmlkit.yaml. With more than one definition,
--form selects the one to render.

Examples:
  htmlkit render forms/contact.yaml
  htmlkit render forms --form signup --pretty
  htmlkit render contact.yaml --set email=ada@example.com --validate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Render.Pretty = pretty
			}

			def, err := selectDefinition(cfg, args, formName)
			if err != nil {
				return err
			}
			f, err := def.Build()
			if err != nil {
				return err
			}
			if len(set) > 0 {
				values, err := parseAssignments(set)
				if err != nil {
					return err
				}
				if err := f.PopulateURLValues(values); err != nil {
					return err
				}
			}
			if validate && !f.Validate() {
				fmt.Fprintln(cmd.ErrOrStderr(), "form is invalid")
			}

			out, err := html.Render(f,
				html.WithPretty(cfg.Render.Pretty),
				html.WithStackTrace(cfg.Render.ShowStackTrace),
			)
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, []byte(out+"\n"), 0644); err != nil {
					return err
				}
				success(cmd.ErrOrStderr(), "Wrote %s", output)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formName, "form", "f", "", "Name of the form to render")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Separate block elements with newlines")
	cmd.Flags().StringArrayVar(&set, "set", nil, "Populate a value, name=value (repeatable)")
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate after populating")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

// selectDefinition loads the definitions and picks the named one, or the
// only one.
func selectDefinition(cfg *config.Config, paths []string, name string) (*formdef.Definition, error) {
	defs, err := loadDefinitions(cfg, paths)
	if err != nil {
		return nil, err
	}
	if name != "" {
		def, ok := defs[name]
		if !ok {
			return nil, herrors.New("X001").
				WithDetailf("%q", name).
				WithSuggestion("Known forms: " + strings.Join(sortedNames(defs), ", "))
		}
		return def, nil
	}
	switch len(defs) {
	case 0:
		return nil, herrors.New("X001").WithDetail("no form definitions found")
	case 1:
		for _, def := range defs {
			return def, nil
		}
	}
	return nil, herrors.New("X001").
		WithDetailf("%d forms defined, choose one with --form", len(defs)).
		WithSuggestion("Known forms: " + strings.Join(sortedNames(defs), ", "))
}

func loadDefinitions(cfg *config.Config, paths []string) (map[string]*formdef.Definition, error) {
	if len(paths) == 0 {
		paths = cfg.FormPaths()
	}
	return formdef.LoadAll(paths...)
}

func sortedNames(defs map[string]*formdef.Definition) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseAssignments turns name=value pairs into form values.
func parseAssignments(pairs []string) (url.Values, error) {
	values := url.Values{}
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, herrors.New("F003").WithDetailf("--set %q is not name=value", p)
		}
		values.Add(name, value)
	}
	return values, nil
}
