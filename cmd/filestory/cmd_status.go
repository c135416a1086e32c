package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filestory/cmd/ui"
	"github.com/utkarsh5026/filestory/pkg/status"
)

func newStatusCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [file]",
		Short: "Show how a file differs from HEAD and the index",
		Long: `With a file argument, classify that file as unmodified, modified, new,
renamed, deleted or nonexistent. Without one, list every changed file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				inspector := status.NewInspector(s.repo)
				out := cmd.OutOrStdout()

				branch, err := inspector.Branch()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Header(" Repository Status "))
				fmt.Fprintf(out, "%s\n\n", ui.BranchInfo(branch))

				if len(args) == 1 {
					state, err := inspector.Inspect(args[0])
					if err != nil {
						return err
					}
					fmt.Fprintln(out, ui.FormatFileState(state.Classify(), state.Path.String()))
					return nil
				}

				changes, err := inspector.Changes()
				if err != nil {
					return err
				}
				if len(changes) == 0 {
					fmt.Fprintln(out, ui.Green(fmt.Sprintf("  %s  Working tree clean", ui.IconCheck)))
					return nil
				}
				fmt.Fprintln(out, ui.Section("Changed files:"))
				for _, state := range changes {
					fmt.Fprintln(out, ui.FormatFileState(state.Classify(), state.Path.String()))
				}
				return nil
			})
		},
	}

	return cmd
}
