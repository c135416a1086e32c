package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filestory/cmd/ui"
	"github.com/utkarsh5026/filestory/pkg/rollback"
)

func newRollbackCmd(opts *globalOptions) *cobra.Command {
	var companions []string
	var noCompanion bool

	cmd := &cobra.Command{
		Use:   "rollback <file> <commit>",
		Short: "Restore a file and its companion to their content at a commit",
		Long: `Overwrite the working copy of a file with its content at a commit.
The companion metadata file (file + companion suffix) is restored from the
same commit; a companion missing at that commit is skipped with a warning.
Nothing is staged or committed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				id, err := rollback.NewFileIdentity(args[0], companions...)
				if err != nil {
					return err
				}
				if !noCompanion {
					id = id.WithCompanionSuffix(s.typed.CompanionSuffix())
				}

				report, err := rollback.NewEngine(s.repo).RollbackIdentity(args[1], id)
				printReport(cmd.OutOrStdout(), "Restored", report)
				return err
			})
		},
	}

	cmd.Flags().StringSliceVar(&companions, "companion", nil, "Additional companion file to restore from the same commit")
	cmd.Flags().BoolVar(&noCompanion, "no-companion", false, "Do not restore the default companion file")

	return cmd
}

func newResetCmd(opts *globalOptions) *cobra.Command {
	var noCompanion bool

	cmd := &cobra.Command{
		Use:   "reset <file>",
		Short: "Restore a file and its companion to HEAD and stage them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				var companions []string
				if suffix := s.typed.CompanionSuffix(); !noCompanion && suffix != "" {
					companions = append(companions, args[0]+suffix)
				}

				report, err := rollback.NewEngine(s.repo).ResetToHead(args[0], companions...)
				printReport(cmd.OutOrStdout(), "Reset", report)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&noCompanion, "no-companion", false, "Do not reset the companion file")

	return cmd
}

func printReport(out io.Writer, verb string, report *rollback.Report) {
	if report == nil {
		return
	}
	for _, p := range report.Written {
		fmt.Fprintln(out, ui.SuccessMessage(verb, p.String(), ui.Gray("@ "+shortHash(report.Commit))))
	}
	for _, p := range report.Skipped {
		fmt.Fprintln(out, ui.WarningMessage("Skipped "+p.String()+" (not present at that commit)"))
	}
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
