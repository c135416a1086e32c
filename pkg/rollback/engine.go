package rollback

import (
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"github.com/utkarsh5026/filestory/pkg/common/fileops"
	"github.com/utkarsh5026/filestory/pkg/repository/gitpath"
	"github.com/utkarsh5026/filestory/pkg/repository/gitrepo"
)

const pkgName = "rollback"

// Engine overwrites working tree files with their content at a past commit.
//
// Each file is written through a temp file and a rename, so a destination
// holds either its old bytes or the historical bytes. A multi-file rollback
// is not transactional: when a later write fails, earlier writes stay.
// Callers serialize rollbacks that target the same path.
type Engine struct {
	repo   *gitrepo.Handle
	logger *slog.Logger
}

// NewEngine creates an Engine over an open handle.
func NewEngine(repo *gitrepo.Handle) *Engine {
	return &Engine{
		repo:   repo,
		logger: repo.Logger().With("component", pkgName),
	}
}

// Rollback restores primary and companions to their content at commitHash.
func (e *Engine) Rollback(commitHash, primary string, companions ...string) (*Report, error) {
	id, err := NewFileIdentity(primary, companions...)
	if err != nil {
		return nil, err
	}
	return e.RollbackIdentity(commitHash, id)
}

// RollbackIdentity restores every path of id from the same commit.
//
// The primary must exist as a regular file at the commit, otherwise nothing
// is written. A companion that is absent or not a regular file is skipped
// with a warning.
func (e *Engine) RollbackIdentity(commitHash string, id FileIdentity) (*Report, error) {
	commit, err := e.repo.ResolveCommit(commitHash)
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "rollback")
	}
	return e.rollbackCommit(commit, id)
}

func (e *Engine) rollbackCommit(commit *object.Commit, id FileIdentity) (*Report, error) {
	report := &Report{Commit: commit.Hash.String()}

	primary, err := e.repo.LookupEntry(commit, id.Primary)
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "rollback")
	}

	entries := []*object.TreeEntry{primary}
	paths := []gitpath.RelativePath{id.Primary}
	for _, c := range id.Companions {
		entry, err := e.repo.LookupEntry(commit, c)
		if err != nil {
			if scerr.IsCode(err, scerr.CodeNotFound) {
				e.logger.Warn("companion not present at commit, skipping",
					"path", c.String(),
					"commit", report.Commit)
				report.Skipped = append(report.Skipped, c)
				continue
			}
			return nil, scerr.Wrap(err, pkgName, "rollback")
		}
		entries = append(entries, entry)
		paths = append(paths, c)
	}

	for i, entry := range entries {
		if err := e.restore(paths[i], entry); err != nil {
			return report, err
		}
		report.Written = append(report.Written, paths[i])
	}

	e.logger.Info("rollback complete",
		"commit", report.Commit,
		"written", len(report.Written),
		"skipped", len(report.Skipped))
	return report, nil
}

// restore buffers the whole blob before replacing the destination.
func (e *Engine) restore(p gitpath.RelativePath, entry *object.TreeEntry) error {
	data, err := e.repo.ReadBlob(entry)
	if err != nil {
		return scerr.Wrap(err, pkgName, "restore")
	}

	dest, err := e.repo.AbsPath(p)
	if err != nil {
		return scerr.Wrap(err, pkgName, "restore")
	}
	if err := fileops.EnsureParentDir(dest); err != nil {
		return scerr.New(pkgName, scerr.CodeIOFailure, "restore", "cannot create parent directory", err).
			WithContext("path", p.String())
	}

	if err := fileops.AtomicWrite(dest, data, modeFor(entry.Mode)); err != nil {
		return scerr.New(pkgName, scerr.CodeIOFailure, "restore", "failed to write file", err).
			WithContext("path", p.String())
	}

	e.logger.Debug("restored", "path", p.String(), "bytes", len(data))
	return nil
}

// ResetToHead restores primary and companions to the tip of the current
// branch and stages every written file.
func (e *Engine) ResetToHead(primary string, companions ...string) (*Report, error) {
	id, err := NewFileIdentity(primary, companions...)
	if err != nil {
		return nil, err
	}

	head, err := e.repo.Head()
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "reset")
	}

	report, err := e.rollbackCommit(head, id)
	if err != nil {
		return report, err
	}
	for _, p := range report.Written {
		if err := e.repo.Stage(p); err != nil {
			return report, scerr.Wrap(err, pkgName, "reset")
		}
	}
	return report, nil
}

// Stage records the working tree content of filePath in the index.
func (e *Engine) Stage(filePath string) error {
	p, err := gitpath.New(filePath)
	if err != nil {
		return scerr.New(pkgName, scerr.CodeInvalidInput, "stage", "invalid file path", err)
	}
	if err := e.repo.Stage(p); err != nil {
		return scerr.Wrap(err, pkgName, "stage")
	}
	return nil
}

func modeFor(m filemode.FileMode) os.FileMode {
	if m == filemode.Executable {
		return 0o755
	}
	return 0o644
}
