package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlkit/internal/config"
	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		herrors.Formatter{Color: isTerminal(os.Stderr)}.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "htmlkit",
		Short: "Render and serve declarative HTML forms",
		Long: `htmlkit builds HTML forms from YAML definitions.

Definitions describe the elements, validators and decorators of a
form. htmlkit renders them to HTML, serves them over HTTP and
validates submissions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to htmlkit.yaml (default: ./htmlkit.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		initCmd(),
		renderCmd(flags),
		serveCmd(flags),
		decoratorsCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the configuration selected by the flags and installs the
// logger it describes. A missing default config file is not an error.
func loadConfig(flags *globalFlags, stderr io.Writer) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load(".")
		var he *herrors.Error
		if err != nil && errors.As(err, &he) && he.Code == "C001" {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Install(logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Output: stderr,
		JSON:   cfg.Log.Format == "json",
	}))
	return cfg, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
