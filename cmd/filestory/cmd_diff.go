package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filestory/cmd/ui"
	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"github.com/utkarsh5026/filestory/pkg/graph"
	"github.com/utkarsh5026/filestory/pkg/repository/gitpath"
	"github.com/utkarsh5026/filestory/pkg/snapshot"
)

func newDiffCmd(opts *globalOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "diff <file> <commitA> [commitB]",
		Short: "Compare the object graph stored in a file between two versions",
		Long: `Load the YAML object graph stored in a file at commitA and compare it
with the graph at commitB, or with the working copy when commitB is omitted.
Components and children are matched by position.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkComparable(args[0]); err != nil {
				return err
			}
			return withSession(cmd, opts, func(s *session) error {
				ex := snapshot.NewExtractor(s.repo, s.typed.ScratchDir())

				a, err := graphAt(ex, args[0], args[1])
				if err != nil {
					return err
				}

				var b *graph.Object
				if len(args) == 3 {
					b, err = graphAt(ex, args[0], args[2])
				} else {
					b, err = workingGraph(s, args[0])
				}
				if err != nil {
					return err
				}

				results := graph.Compare(a, b)
				out := cmd.OutOrStdout()
				if len(results) == 0 {
					fmt.Fprintln(out, ui.SuccessMessage("Graphs are identical"))
					return nil
				}
				if plain {
					for _, r := range results {
						fmt.Fprintln(out, r.String())
					}
					return nil
				}
				return ui.RenderComparisonTable(out, results)
			})
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print one line per difference instead of a table")

	return cmd
}

// checkComparable rejects files whose asset type has no object graph.
func checkComparable(file string) error {
	t := snapshot.Classify(file)
	if support := t.Support(); !support.CanCompare() {
		return scerr.New("cli", scerr.CodeInvalidInput, "diff",
			fmt.Sprintf("%s assets cannot be compared (%s)", t, support), nil).
			WithContext("path", file)
	}
	return nil
}

func graphAt(ex *snapshot.Extractor, file, commit string) (*graph.Object, error) {
	blob, err := ex.Read(file, commit)
	if err != nil {
		return nil, err
	}
	return graph.Parse(blob.Data)
}

func workingGraph(s *session, file string) (*graph.Object, error) {
	rel, err := gitpath.New(file)
	if err != nil {
		return nil, err
	}
	abs, err := s.repo.AbsPath(rel)
	if err != nil {
		return nil, err
	}
	return graph.Load(abs)
}
