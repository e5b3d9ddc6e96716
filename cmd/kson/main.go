// Command kson is a CLI wrapper over the kson library: parsing,
// formatting, transcoding, and schema validation of KSON documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kson-lang/kson/log"
	"github.com/kson-lang/kson/profile"
	"github.com/kson-lang/kson/version"
)

// exitCodeError lets a subcommand request a specific process exit code
// (spec.md §6: 0 success, 1 parse/validation error, 2 usage error)
// without main having to inspect error text.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

// invalidErr wraps err as an exit-1 (parse/validation) failure.
func invalidErr(err error) error {
	return &exitCodeError{code: 1, err: err}
}

// usageErr wraps err as an exit-2 (usage) failure.
func usageErr(err error) error {
	return &exitCodeError{code: 2, err: err}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run builds and executes the root command, returning the process exit
// code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		logLevel  string
		logFormat string
	)

	profCfg := profile.NewConfig()
	prof := profCfg.NewProfiler()

	root := &cobra.Command{
		Use:           "kson",
		Short:         "Work with KSON documents: parse, format, transcode, validate",
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			handler, err := log.NewHandlerFromStrings(stderr, logLevel, logFormat)
			if err != nil {
				return usageErr(err)
			}

			slog.SetDefault(slog.New(handler))

			return prof.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return prof.Stop()
		},
	}

	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	flags := root.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "info", fmt.Sprintf("log level %v", log.GetAllLevelStrings()))
	flags.StringVar(&logFormat, "log-format", "logfmt", fmt.Sprintf("log format %v", log.GetAllFormatStrings()))
	profCfg.RegisterFlags(flags)

	if err := profCfg.RegisterCompletions(root); err != nil {
		fmt.Fprintf(stderr, "register completions: %v\n", err)
	}

	root.AddCommand(
		newParseCommand(),
		newFormatCommand(),
		newToJSONCommand(),
		newToYAMLCommand(),
		newValidateCommand(),
		newAnalyzeCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)

		var ece *exitCodeError
		if errors.As(err, &ece) {
			return ece.code
		}

		return 2
	}

	return 0
}

// readInput reads path's contents, or stdin if path is "" or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	return os.ReadFile(path) //nolint:gosec // path comes from a CLI argument, as intended.
}
