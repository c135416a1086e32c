package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filestory/cmd/ui"
	"github.com/utkarsh5026/filestory/pkg/repository/ignore"
	"github.com/utkarsh5026/filestory/pkg/snapshot"
)

func newIgnoreScratchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ignore-scratch",
		Short: "Add the scratch directory to the ignore file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				list := ignore.NewList(s.repo.Root(), s.typed.IgnoreFile(), s.log)
				scratch := snapshot.NewExtractor(s.repo, s.typed.ScratchDir()).ScratchDir()

				added, err := list.EnsureDir(scratch)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if added {
					fmt.Fprintln(out, ui.SuccessMessage("Scratch directory ignored in", list.Path()))
				} else {
					fmt.Fprintln(out, ui.Gray("Scratch directory already ignored in "+list.Path()))
				}
				return nil
			})
		},
	}
}

func newCleanCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove every snapshot from the scratch directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				n, err := snapshot.NewExtractor(s.repo, s.typed.ScratchDir()).Purge()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMessage(fmt.Sprintf("Removed %d snapshot entries", n)))
				return nil
			})
		},
	}
}
