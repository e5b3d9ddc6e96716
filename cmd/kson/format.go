package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kson-lang/kson/format"
	"github.com/kson-lang/kson/kson"
)

func newFormatCommand() *cobra.Command {
	var (
		style       string
		indentKind  string
		indentWidth int
	)

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Reformat a KSON document in the requested style",
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

			opts, err := parseFormatOptions(style, indentKind, indentWidth)
			if err != nil {
				return usageErr(err)
			}

			out, msgs := kson.Format(string(src), opts)
			if err := reportMessages(cmd, msgs); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&style, "style", "plain", "output style (plain|delimited|compact)")
	flags.StringVar(&indentKind, "indent", "spaces", "indent kind (spaces|tabs)")
	flags.IntVar(&indentWidth, "indent-width", 2, "spaces per indent level (ignored for tabs)")

	return cmd
}

func parseFormatOptions(style, indentKind string, indentWidth int) (format.Options, error) {
	var opts format.Options

	switch style {
	case "plain":
		opts.Style = format.Plain
	case "delimited":
		opts.Style = format.Delimited
	case "compact":
		opts.Style = format.Compact
	default:
		return opts, fmt.Errorf("unknown style %q: want plain, delimited, or compact", style)
	}

	switch indentKind {
	case "spaces":
		opts.Indent = format.SpacesIndent(indentWidth)
	case "tabs":
		opts.Indent = format.TabsIndent()
	default:
		return opts, fmt.Errorf("unknown indent kind %q: want spaces or tabs", indentKind)
	}

	return opts, nil
}
