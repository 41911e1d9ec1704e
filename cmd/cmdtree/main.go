package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dhamidi/cmdtree/bedrock"
	"github.com/dhamidi/cmdtree/config"
	"github.com/dhamidi/cmdtree/parser"
	"github.com/dhamidi/cmdtree/workspace"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var version = "0.1.0"

var log = commonlog.GetLogger("cmdtree")

// errFailed reports that a command ran but found invalid input. main
// exits with status 1 without printing it again.
var errFailed = errors.New("failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "cmdtree:", err)
		}
		os.Exit(1)
	}
}

type app struct {
	verbose    int
	logFile    string
	configPath string
	config     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:               "cmdtree",
		Short:             "Check, complete and format Bedrock commands",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.load() },
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default: discover .cmdtree.toml or .cmdtree.yaml)")

	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newCompleteCmd(a))
	rootCmd.AddCommand(newFmtCmd(a))
	rootCmd.AddCommand(newEbnfCmd())
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newREPLCmd(a))

	return rootCmd
}

// load reads .env, the config file and CMDTREE_* overrides, then sets up
// logging.
func (a *app) load() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	path := a.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	var err error
	if path != "" {
		a.config, err = config.Load(path)
	} else {
		a.config, err = config.Discover(".")
	}
	if err != nil {
		return err
	}
	if err := a.config.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	verbosity := a.config.Verbosity()
	if a.verbose > 0 {
		verbosity = a.verbose
	}
	var logPath *string
	if a.logFile != "" {
		logPath = &a.logFile
	}
	commonlog.Configure(verbosity, logPath)
	return nil
}

func (a *app) parser() (*parser.Parser, error) {
	p, err := parser.New(bedrock.Commands(), a.config.ParserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("build grammar: %w", err)
	}
	return p, nil
}

func (a *app) workspaceOptions() []workspace.Option {
	return []workspace.Option{
		workspace.WithInclude(a.config.Include...),
		workspace.WithExclude(a.config.Exclude...),
		workspace.WithCommentPrefix(a.config.CommentPrefix),
	}
}
