package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kson-lang/kson/kson"
)

func newValidateCommand() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a KSON document against a Draft-07 schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if schemaPath == "" {
				return usageErr(fmt.Errorf("--schema is required"))
			}

			schemaSrc, err := os.ReadFile(schemaPath) //nolint:gosec // path comes from a CLI flag, as intended.
			if err != nil {
				return usageErr(fmt.Errorf("read schema: %w", err))
			}

			validator, msgs := kson.ParseSchema(string(schemaSrc))
			if err := reportMessages(cmd, msgs); err != nil {
				return err
			}

			if validator == nil {
				return invalidErr(fmt.Errorf("schema %s has no value", schemaPath))
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			docSrc, err := readInput(cmd, path)
			if err != nil {
				return usageErr(fmt.Errorf("read input: %w", err))
			}

			return reportMessages(cmd, validator.Validate(string(docSrc)))
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a KSON schema document (Draft-07)")

	return cmd
}
