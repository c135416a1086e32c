package history

import (
	"errors"
	"log/slog"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"github.com/utkarsh5026/filestory/pkg/repository/gitpath"
	"github.com/utkarsh5026/filestory/pkg/repository/gitrepo"
)

const pkgName = "history"

// Resolver finds the commits that changed a file.
//
// History is walked from the current branch tip, newest committer time
// first. A commit counts as changing a file when the file exists in it and
// every parent either lacks the file or holds a different blob:
//
//	A ── B ── M        M keeps B's version of f:   M is skipped
//	 \       /
//	  └── C ─┘         M differs from both B and C: M is reported
//
// A root commit that contains the file is always reported.
type Resolver struct {
	repo   *gitrepo.Handle
	logger *slog.Logger
}

// NewResolver creates a Resolver over an open handle.
func NewResolver(repo *gitrepo.Handle) *Resolver {
	return &Resolver{
		repo:   repo,
		logger: repo.Logger().With("component", pkgName),
	}
}

// CommitsAffecting returns the commits that changed filePath, newest first.
// An empty result is valid: the file never existed or the branch has no commits.
func (r *Resolver) CommitsAffecting(filePath string) ([]CommitRecord, error) {
	p, err := gitpath.New(filePath)
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "commits_affecting", "invalid file path", err)
	}

	head, err := r.repo.Head()
	if err != nil {
		if scerr.IsCode(err, scerr.CodeNotFound) {
			return []CommitRecord{}, nil
		}
		return nil, scerr.Wrap(err, pkgName, "commits_affecting")
	}

	iter, err := r.repo.Log(head.Hash)
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "commits_affecting")
	}
	defer iter.Close()

	records := []CommitRecord{}
	visited := 0
	err = iter.ForEach(func(c *object.Commit) error {
		visited++
		changed, err := r.changedIn(c, p)
		if err != nil {
			return err
		}
		if changed {
			records = append(records, newRecord(c))
		}
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, scerr.Wrap(err, pkgName, "commits_affecting")
	}

	r.logger.Debug("history resolved",
		"path", p.String(),
		"visited", visited,
		"matched", len(records))
	return records, nil
}

// Latest returns the newest commit that changed filePath.
func (r *Resolver) Latest(filePath string) (CommitRecord, error) {
	records, err := r.CommitsAffecting(filePath)
	if err != nil {
		return CommitRecord{}, err
	}
	if len(records) == 0 {
		return CommitRecord{}, scerr.New(pkgName, scerr.CodeNotFound, "latest", "no commits change this file", nil).
			WithContext("path", filePath)
	}
	return records[0], nil
}

// changedIn applies the all-parents rule to a single commit.
func (r *Resolver) changedIn(c *object.Commit, p gitpath.RelativePath) (bool, error) {
	entry, ok, err := r.repo.FindEntry(c, p)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	parents := c.Parents()
	defer parents.Close()

	changed := true
	err = parents.ForEach(func(parent *object.Commit) error {
		prev, found, err := r.repo.FindEntry(parent, p)
		if err != nil {
			return err
		}
		if found && prev.Hash == entry.Hash {
			changed = false
			return storer.ErrStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return false, err
	}
	return changed, nil
}
