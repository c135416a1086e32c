package status

import (
	"log/slog"
	"sort"

	"github.com/go-git/go-git/v5"
	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"github.com/utkarsh5026/filestory/pkg/common/fileops"
	"github.com/utkarsh5026/filestory/pkg/repository/gitpath"
	"github.com/utkarsh5026/filestory/pkg/repository/gitrepo"
)

const pkgName = "status"

// Inspector reports the working tree state of files through one open handle.
type Inspector struct {
	repo   *gitrepo.Handle
	logger *slog.Logger
}

// NewInspector creates an Inspector over an open handle.
func NewInspector(repo *gitrepo.Handle) *Inspector {
	return &Inspector{
		repo:   repo,
		logger: repo.Logger().With("component", pkgName),
	}
}

// Inspect returns the state of filePath.
func (i *Inspector) Inspect(filePath string) (FileState, error) {
	p, err := gitpath.New(filePath)
	if err != nil {
		return FileState{}, scerr.New(pkgName, scerr.CodeInvalidInput, "inspect", "invalid file path", err)
	}

	st, err := i.repo.Status()
	if err != nil {
		return FileState{}, scerr.Wrap(err, pkgName, "inspect")
	}
	return i.stateOf(p, st)
}

// Changes returns the state of every path with a pending change, sorted by path.
func (i *Inspector) Changes() ([]FileState, error) {
	st, err := i.repo.Status()
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "changes")
	}

	paths := make([]string, 0, len(st))
	for p := range st {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	states := make([]FileState, 0, len(paths))
	for _, raw := range paths {
		p, err := gitpath.New(raw)
		if err != nil {
			i.logger.Debug("skipping unusable status path", "path", raw, "error", err)
			continue
		}
		s, err := i.stateOf(p, st)
		if err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, nil
}

// Branch returns the checked out branch name.
func (i *Inspector) Branch() (string, error) {
	return i.repo.Branch()
}

func (i *Inspector) stateOf(p gitpath.RelativePath, st git.Status) (FileState, error) {
	state := FileState{
		Path:     p,
		Staging:  git.Unmodified,
		Worktree: git.Unmodified,
	}

	// Indexing the map directly; st.File would insert an untracked entry.
	if fs, ok := st[p.String()]; ok {
		state.Staging = fs.Staging
		state.Worktree = fs.Worktree
	}

	_, tracked, err := i.repo.IndexEntry(p)
	if err != nil {
		return FileState{}, scerr.Wrap(err, pkgName, "inspect")
	}
	state.Tracked = tracked

	abs, err := i.repo.AbsPath(p)
	if err != nil {
		return FileState{}, scerr.Wrap(err, pkgName, "inspect")
	}
	onDisk, err := fileops.IsFile(abs)
	if err != nil {
		return FileState{}, scerr.New(pkgName, scerr.CodeIOFailure, "inspect", "cannot stat file", err).
			WithContext("path", p.String())
	}
	state.OnDisk = onDisk

	return state, nil
}
