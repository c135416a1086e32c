package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filestory/cmd/ui"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	repo       string
	configPath string
	logLevel   string
	logFormat  string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Red("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "filestory",
		Short: "filestory - per-file history, snapshots and rollback for git repositories",
		Long: `filestory browses the git history of individual files, extracts
read-only snapshots of past versions, restores a file (and its companion
metadata file) to an earlier commit, and compares structured scene graphs
between versions.`,
		Version:       fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.repo, "repo", "C", "", "Repository root (default: discovered from the working directory)")
	flags.StringVar(&opts.configPath, "config", "", "User configuration file (default: ~/.config/filestory/config.json)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")

	rootCmd.AddCommand(
		newLogCmd(opts),
		newShowCmd(opts),
		newRollbackCmd(opts),
		newResetCmd(opts),
		newStatusCmd(opts),
		newDiffCmd(opts),
		newIgnoreScratchCmd(opts),
		newCleanCmd(opts),
		newConfigCmd(opts),
	)

	return rootCmd
}
