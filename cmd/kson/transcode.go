package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kson-lang/kson/kson"
)

func newToJSONCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tojson [file]",
		Short: "Transcode a KSON document to JSON",
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

			out, msgs := kson.ToJSON(string(src))
			if err := reportMessages(cmd, msgs); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}
}

func newToYAMLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toyaml [file]",
		Short: "Transcode a KSON document to YAML",
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

			out, msgs := kson.ToYAML(string(src))
			if err := reportMessages(cmd, msgs); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}
}
