package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filestory/cmd/ui"
	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"github.com/utkarsh5026/filestory/pkg/config"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set filestory options",
		Long: `Read and write layered configuration. Values are resolved from
command-line flags, then <repo>/.filestory.json, then the user file, then
builtin defaults.`,
	}

	cmd.AddCommand(newConfigGetCmd(opts), newConfigSetCmd(opts), newConfigUnsetCmd(opts), newConfigListCmd(opts))
	return cmd
}

func newConfigGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := configManager(cmd, opts)
			if err != nil {
				return err
			}
			entry := mgr.Get(args[0])
			if entry == nil {
				return config.NewNotFoundError(args[0], "")
			}
			fmt.Fprintln(cmd.OutOrStdout(), entry.Value)
			return nil
		},
	}
}

func newConfigSetCmd(opts *globalOptions) *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a value at the repository or user level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := config.ParseLevel(level)
			if err != nil {
				return err
			}
			mgr, err := configManager(cmd, opts)
			if err != nil {
				return err
			}
			if err := mgr.Set(args[0], args[1], lvl); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMessage("Set", args[0]+" = "+args[1], ui.Gray("("+lvl.String()+")")))
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "repository", "Level to write (repository, user)")
	return cmd
}

func newConfigUnsetCmd(opts *globalOptions) *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a value from the repository or user level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := config.ParseLevel(level)
			if err != nil {
				return err
			}
			mgr, err := configManager(cmd, opts)
			if err != nil {
				return err
			}
			if err := mgr.Unset(args[0], lvl); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMessage("Unset", args[0], ui.Gray("("+lvl.String()+")")))
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "repository", "Level to modify (repository, user)")
	return cmd
}

func newConfigListCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every effective value and where it comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := configManager(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				s, err := mgr.ExportJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
				return nil
			}
			for _, e := range mgr.List() {
				fmt.Fprintf(out, "%s=%s %s\n", ui.Cyan(e.Key), e.Value, ui.Gray("["+e.Level.String()+"]"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the effective configuration as JSON")
	return cmd
}

// configManager loads configuration for the current repository. Outside a
// repository only the user and builtin levels are available.
func configManager(cmd *cobra.Command, opts *globalOptions) (*config.Manager, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	bootstrap, err := loadConfig(ctx, cmd, opts, "", nil)
	if err != nil {
		return nil, err
	}
	log := newLogger(config.NewTypedConfig(bootstrap))

	repo, err := openRepository(bootstrap, log)
	if scerr.IsCode(err, scerr.CodeNotFound) {
		log.Debug("no repository, repository level disabled", "error", err)
		return bootstrap, nil
	}
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	return loadConfig(ctx, cmd, opts, repo.Root().String(), log)
}
