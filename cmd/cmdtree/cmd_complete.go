package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCompleteCmd(a *app) *cobra.Command {
	var (
		offset  int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "complete <command...>",
		Short: "Print completions for the word under the cursor",
		Long: `Print the ranked completions for the word at --offset (default: the
end of the command), one per line, followed by its hint.

Arguments are joined with single spaces; quote the command to keep
trailing separators.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parser()
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if offset < 0 {
				offset = len(text)
			}
			c := p.Complete(text, offset)

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(c)
			}
			for _, s := range c.Suggestions {
				if s.Hint != "" {
					fmt.Fprintf(out, "%s\t%s\n", s.Text, s.Hint)
				} else {
					fmt.Fprintln(out, s.Text)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&offset, "offset", "o", -1, "byte offset of the cursor")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the replacement span and suggestions as JSON")

	return cmd
}
