package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filestory/cmd/ui"
	"github.com/utkarsh5026/filestory/pkg/history"
)

func newLogCmd(opts *globalOptions) *cobra.Command {
	var limit int
	var useTable bool

	cmd := &cobra.Command{
		Use:   "log <file>",
		Short: "Show the commits that changed a file",
		Long: `Show the commits in which the content of a file changed, newest first.
A merge commit is listed only when the file differs from every parent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				records, err := history.NewResolver(s.repo).CommitsAffecting(args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, ui.Yellow("📝 No commits touch "+args[0]))
					return nil
				}
				if limit > 0 && len(records) > limit {
					records = records[:limit]
				}

				fmt.Fprintln(out, ui.Header(" History of "+args[0]+" "))
				if useTable {
					return ui.RenderHistoryTable(out, records)
				}
				for i, r := range records {
					fmt.Fprintln(out, ui.FormatCommitDetailed(r))
					if i < len(records)-1 {
						fmt.Fprintln(out, ui.FormatCommitSeparator())
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit the number of commits to show (0 shows all)")
	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display commits in table format")

	return cmd
}
