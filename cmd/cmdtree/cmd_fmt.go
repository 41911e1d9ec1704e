package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/cmdtree/format"
	"github.com/spf13/cobra"
)

func newFmtCmd(a *app) *cobra.Command {
	var (
		fmtOverwrite bool
		fmtDiff      bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Rewrite command files with canonical spacing",
		Long: `Rewrite commands so that tokens are separated by exactly one separator.

Tokens that were adjacent stay adjacent, leading and trailing separators
are dropped, and blank lines, comments and commands that do not parse are
left as they are.

Without files, reads commands from stdin and writes to stdout.
Use -w to overwrite files in place or -d to print a unified diff.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtOverwrite && fmtDiff {
				return fmt.Errorf("-w and -d are mutually exclusive")
			}
			p, err := a.parser()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				if fmtOverwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				output := format.NormalizeText(p, string(source), a.config.CommentPrefix)
				if fmtDiff {
					diff, err := format.Diff("stdin", string(source), output)
					if err != nil {
						return fmt.Errorf("diff: %w", err)
					}
					_, err = io.WriteString(out, diff)
					return err
				}
				_, err = io.WriteString(out, output)
				return err
			}

			for _, filename := range args {
				source, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				output := format.NormalizeText(p, string(source), a.config.CommentPrefix)

				switch {
				case fmtOverwrite:
					if output == string(source) {
						continue
					}
					if err := os.WriteFile(filename, []byte(output), 0644); err != nil {
						return fmt.Errorf("write file: %w", err)
					}
					log.Infof("formatted %s", filename)
				case fmtDiff:
					diff, err := format.Diff(filename, string(source), output)
					if err != nil {
						return fmt.Errorf("diff: %w", err)
					}
					if _, err := io.WriteString(out, diff); err != nil {
						return err
					}
				default:
					if _, err := io.WriteString(out, output); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite files in place")
	cmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "print a unified diff instead of the result")

	return cmd
}
