package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/dhamidi/cmdtree/bedrock"
	"github.com/dhamidi/cmdtree/grammar"
	"github.com/spf13/cobra"
)

func newEbnfCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "ebnf",
		Short: "Print the command grammar as EBNF",
		Long: `Print the command grammar in the EBNF dialect of golang.org/x/exp/ebnf.

With --verify the output is parsed back and checked for undefined or
unreachable productions starting at "` + grammar.StartProduction + `".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := bedrock.Commands()
			out := cmd.OutOrStdout()

			if err := g.WriteEBNF(out); err != nil {
				return fmt.Errorf("write ebnf: %w", err)
			}
			if !verify {
				return nil
			}
			if _, err := g.VerifyEBNF(); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "verify the exported grammar")

	return cmd
}

func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
