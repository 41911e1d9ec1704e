package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/dhamidi/cmdtree/format"
	"github.com/dhamidi/cmdtree/workspace"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		formatName string
		all        bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Validate every command in command files",
		Long: `Validate every non-blank, non-comment line of command files.

Directories are searched for files matching the configured include
patterns (default **/*.mcfunction). Files given by name are always
checked. Without arguments the current directory is checked.

The exit status is 1 if any command fails to parse.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parser()
			if err != nil {
				return err
			}
			enc, err := format.NewEncoder(formatName, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"."}
			}

			var workspaces []*workspace.Workspace
			var files []*workspace.FileInfo
			for _, path := range args {
				info, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("check: %w", err)
				}
				if info.IsDir() {
					ws := workspace.New(path, p, a.workspaceOptions()...)
					if err := ws.ScanAll(); err != nil {
						return fmt.Errorf("scan %s: %w", path, err)
					}
					workspaces = append(workspaces, ws)
					files = append(files, ws.Files()...)
					continue
				}
				ws := workspace.New(filepath.Dir(path), p, a.workspaceOptions()...)
				if err := ws.ScanFile(path); err != nil {
					return fmt.Errorf("check: %w", err)
				}
				files = append(files, ws.GetFile(path))
			}

			failures := 0
			for _, f := range files {
				n, err := report(enc, f, all)
				if err != nil {
					return err
				}
				failures += n
			}

			if watch {
				return watchWorkspaces(cmd.Context(), enc, workspaces, all)
			}
			if failures > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d invalid commands in %d files\n", failures, len(files))
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "line", "output format: line, json or pretty")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "report valid commands too")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and re-check files as they change")

	return cmd
}

// report encodes the lines of f, only failures unless all is set, and
// returns the number of failures.
func report(enc format.Encoder, f *workspace.FileInfo, all bool) (int, error) {
	failures := 0
	for _, l := range f.Lines {
		if l.Result.OK() && !all {
			continue
		}
		if !l.Result.OK() {
			failures++
		}
		if err := enc.Encode(format.Entry{File: f.Path, Line: l.Number, Result: l.Result}); err != nil {
			return failures, err
		}
	}
	return failures, nil
}

func watchWorkspaces(ctx context.Context, enc format.Encoder, workspaces []*workspace.Workspace, all bool) error {
	if len(workspaces) == 0 {
		return fmt.Errorf("--watch needs at least one directory")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var mu sync.Mutex
	for _, ws := range workspaces {
		w := workspace.NewWatcher(ws, func(path string, f *workspace.FileInfo) {
			if f == nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if _, err := report(enc, f, all); err != nil {
				log.Errorf("report %s: %s", path, err)
			}
		})
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	<-ctx.Done()
	return nil
}
