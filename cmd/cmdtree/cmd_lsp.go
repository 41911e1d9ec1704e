package main

import (
	"github.com/dhamidi/cmdtree/workspace"
	"github.com/spf13/cobra"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parser()
			if err != nil {
				return err
			}
			server := workspace.NewLSPServer(version, p, a.workspaceOptions()...)
			return server.RunStdio()
		},
	}
}
