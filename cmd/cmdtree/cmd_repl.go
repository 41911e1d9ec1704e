package main

import (
	"github.com/dhamidi/cmdtree/repl"
	"github.com/spf13/cobra"
)

func newREPLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Type commands with live validation and completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parser()
			if err != nil {
				return err
			}
			return repl.Run(p)
		},
	}
}
