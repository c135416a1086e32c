package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filestory/cmd/ui"
	"github.com/utkarsh5026/filestory/pkg/snapshot"
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	var remap, noRemap, toStdout bool
	var name string

	cmd := &cobra.Command{
		Use:   "show <file> <commit>",
		Short: "Extract a file as it was at a commit into the scratch directory",
		Long: `Extract the content of a file at a commit into the scratch directory
and print the path of the snapshot. The working copy is never touched.

Script-like files are written with the configured remap extension so the
snapshot is not picked up by tooling that watches the original extension.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				ex := snapshot.NewExtractor(s.repo, s.typed.ScratchDir())
				out := cmd.OutOrStdout()

				if toStdout {
					blob, err := ex.Read(args[0], args[1])
					if err != nil {
						return err
					}
					_, err = out.Write(blob.Data)
					return err
				}

				var extractOpts []snapshot.ExtractOption
				if name != "" {
					extractOpts = append(extractOpts, snapshot.WithName(name))
				}
				if !noRemap && (remap || snapshot.Classify(args[0]).RequiresRemap()) {
					extractOpts = append(extractOpts, snapshot.WithRemapExtension(s.typed.RemapExtension()))
				}

				dest, err := ex.ExtractAt(args[0], args[1], extractOpts...)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.SuccessMessage("Snapshot written", dest))
				if t := snapshot.Classify(args[0]); !t.Support().CanPreview() {
					fmt.Fprintln(out, ui.WarningMessage(fmt.Sprintf("%s assets have no preview; the snapshot is raw content", t)))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&remap, "remap", false, "Always replace the extension with the remap extension")
	cmd.Flags().BoolVar(&noRemap, "no-remap", false, "Keep the original extension")
	cmd.Flags().StringVar(&name, "name", "", "File name for the snapshot")
	cmd.Flags().BoolVarP(&toStdout, "print", "p", false, "Write the content to stdout instead of the scratch directory")
	cmd.MarkFlagsMutuallyExclusive("remap", "no-remap")

	return cmd
}
