package main

import (
	"io"
	"strings"

	"github.com/dhamidi/cmdtree/format"
	"github.com/dhamidi/cmdtree/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd(a *app) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "tokens <command...>",
		Short: "Parse one command and print its tokens",
		Long: `Parse one command and print its token sequence, or the error and
the ranked suggestions at the failure point.

Arguments are joined with single spaces. The exit status is 1 if the
command does not parse.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parser()
			if err != nil {
				return err
			}
			return encodeResult(cmd.OutOrStdout(), formatName, p.Parse(strings.Join(args, " ")))
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "output format: json, line or pretty")

	return cmd
}

// encodeResult writes a single parse of a command-line argument.
func encodeResult(w io.Writer, formatName string, r *parser.Result) error {
	enc, err := format.NewEncoder(formatName, w)
	if err != nil {
		return err
	}
	if err := enc.Encode(format.Entry{Result: r}); err != nil {
		return err
	}
	if !r.OK() {
		return errFailed
	}
	return nil
}
