package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kson-lang/kson/kson"
	"github.com/kson-lang/kson/message"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a KSON document and report any diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			src, err := readInput(cmd, path)
			if err != nil {
				return usageErr(fmt.Errorf("read input: %w", err))
			}

			res := kson.Parse(string(src))

			return reportMessages(cmd, res.Messages)
		},
	}
}

// reportMessages prints every message to stderr and converts the result
// into an exit-1 error if any is Severity Error.
func reportMessages(cmd *cobra.Command, msgs []message.Message) error {
	hasError := false

	for _, m := range msgs {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n", m.Severity, m.Location, message.Render(m))

		if m.Severity == message.Error {
			hasError = true
		}
	}

	if hasError {
		return invalidErr(fmt.Errorf("document has %d diagnostic(s)", len(msgs)))
	}

	return nil
}
