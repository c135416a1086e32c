package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filestory/pkg/common/logger"
	"github.com/utkarsh5026/filestory/pkg/config"
	"github.com/utkarsh5026/filestory/pkg/repository/gitrepo"
)

// session is what a command works with: an open repository, the layered
// configuration for it and a logger configured from both.
type session struct {
	repo   *gitrepo.Handle
	config *config.Manager
	typed  *config.TypedConfig
	log    *slog.Logger
}

// withSession opens the repository, runs fn and closes the repository on
// every path out of fn.
func withSession(cmd *cobra.Command, opts *globalOptions, fn func(*session) error) (err error) {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.repo.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

func openSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// The user level may name the repository, so it is read before the
	// repository level can be located.
	bootstrap, err := loadConfig(ctx, cmd, opts, "", nil)
	if err != nil {
		return nil, err
	}
	log := newLogger(config.NewTypedConfig(bootstrap))

	repo, err := openRepository(bootstrap, log)
	if err != nil {
		return nil, err
	}

	mgr, err := loadConfig(ctx, cmd, opts, repo.Root().String(), log)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	typed := config.NewTypedConfig(mgr)

	return &session{
		repo:   repo,
		config: mgr,
		typed:  typed,
		log:    newLogger(typed),
	}, nil
}

// openRepository opens the configured repository root, or discovers one from
// the working directory when none is configured
func openRepository(mgr *config.Manager, log *slog.Logger) (*gitrepo.Handle, error) {
	if root := config.NewTypedConfig(mgr).RepositoryRoot(); root != "" {
		return gitrepo.Open(root, gitrepo.WithLogger(log))
	}
	return gitrepo.Discover("", gitrepo.WithLogger(log))
}

// loadConfig builds a manager for repoRoot and applies the flags that were
// set explicitly as command-line overrides
func loadConfig(ctx context.Context, cmd *cobra.Command, opts *globalOptions, repoRoot string, log *slog.Logger) (*config.Manager, error) {
	var mopts []config.Option
	if opts.configPath != "" {
		mopts = append(mopts, config.WithUserConfigPath(opts.configPath))
	}
	if log != nil {
		mopts = append(mopts, config.WithLogger(log))
	}

	mgr := config.NewManager(repoRoot, mopts...)
	if err := mgr.Load(ctx); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if opts.repo != "" {
		mgr.SetCommandLine(config.KeyRepositoryRoot, opts.repo)
	}
	if flags.Changed("log-level") {
		mgr.SetCommandLine(config.KeyLogLevel, opts.logLevel)
	}
	if flags.Changed("log-format") {
		mgr.SetCommandLine(config.KeyLogFormat, opts.logFormat)
	}
	if opts.verbose {
		mgr.SetCommandLine(config.KeyLogLevel, "debug")
	}
	return mgr, nil
}

func newLogger(tc *config.TypedConfig) *slog.Logger {
	l := logger.New(logger.Config{
		Level:  logger.ParseLevel(tc.LogLevel()),
		Format: logger.ParseFormat(tc.LogFormat()),
		Output: os.Stderr,
	})
	logger.Default = l
	return l
}
