package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kson-lang/kson/kson"
)

func newAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Parse a KSON document and report lexer, parser, and indent diagnostics",
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

			res := kson.Analyze(string(src))

			return reportMessages(cmd, res.Errors)
		},
	}
}
