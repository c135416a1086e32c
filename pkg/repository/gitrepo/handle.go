package gitrepo

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"github.com/utkarsh5026/filestory/pkg/common/logger"
	"github.com/utkarsh5026/filestory/pkg/repository/gitpath"
)

const pkgName = "gitrepo"

// Handle owns one open connection to a git repository.
//
// A Handle is opened explicitly with Open or Discover and must be released
// with Close, usually via defer. Several handles may be open on the same
// root at once; they share nothing and do not assume exclusive access.
// A Handle is meant for one caller at a time.
//
// ┌─ <root>/              ← working tree, Root()
// │ ├─ .git/              ← objects, refs, index (read through go-git)
// │ ├─ Assets/Player.prefab
// │ └─ Assets/Player.prefab.meta
type Handle struct {
	root   gitpath.RepositoryRoot
	repo   *git.Repository
	log    *slog.Logger
	closed bool
}

// Option configures a Handle.
type Option func(*Handle)

// WithLogger sets the logger used by the handle.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handle) {
		h.log = l
	}
}

// Open opens the repository whose working tree root is root. A path to the
// .git directory itself is accepted too. Fails with NOT_FOUND when root is
// not a repository, so invalid roots are reported here and not per call.
func Open(root string, opts ...Option) (*Handle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "open", "repository root is empty", nil)
	}
	if filepath.Base(filepath.Clean(root)) == git.GitDirName {
		root = filepath.Dir(filepath.Clean(root))
	}
	return open(root, false, opts)
}

// Discover walks up from start until it finds a repository and opens it.
// This is how the default repository root is located when none is configured.
func Discover(start string, opts ...Option) (*Handle, error) {
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, scerr.New(pkgName, scerr.CodeIOFailure, "discover", "cannot determine working directory", err)
		}
		start = cwd
	}
	return open(start, true, opts)
}

func open(path string, detect bool, opts []Option) (*Handle, error) {
	op := "open"
	if detect {
		op = "discover"
	}

	abs, err := gitpath.NewRepositoryRoot(path)
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, op, "invalid repository path", err)
	}
	if info, statErr := os.Stat(abs.String()); statErr != nil || !info.IsDir() {
		return nil, scerr.New(pkgName, scerr.CodeNotFound, op, "repository root does not exist", statErr).
			WithContext("root", abs.String())
	}

	repo, err := git.PlainOpenWithOptions(abs.String(), &git.PlainOpenOptions{DetectDotGit: detect})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, scerr.New(pkgName, scerr.CodeNotFound, op, "not a git repository", err).
				WithContext("root", abs.String())
		}
		return nil, scerr.New(pkgName, scerr.CodeInternal, op, "failed to open repository", err)
	}

	h := &Handle{root: abs, repo: repo}
	for _, opt := range opts {
		opt(h)
	}
	h.log = logger.OrDefault(h.log)

	if wt, wtErr := repo.Worktree(); wtErr == nil {
		h.root = gitpath.RepositoryRoot(wt.Filesystem.Root())
	}

	h.log.Debug("repository opened", "root", h.root.String())
	return h, nil
}

// With opens a throwaway handle on root, runs fn and closes the handle on
// every path out of fn.
func With(root string, fn func(*Handle) error) (err error) {
	h, err := Open(root)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := h.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(h)
}

// Close releases the repository storage. Calling Close more than once is a no-op.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	if c, ok := h.repo.Storer.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return scerr.New(pkgName, scerr.CodeIOFailure, "close", "failed to release repository", err)
		}
	}
	h.log.Debug("repository closed", "root", h.root.String())
	return nil
}

// Root returns the working tree root.
func (h *Handle) Root() gitpath.RepositoryRoot {
	return h.root
}

// Logger returns the handle's logger so higher layers log with the same sink.
func (h *Handle) Logger() *slog.Logger {
	return h.log
}

func (h *Handle) ensureOpen(op string) error {
	if h == nil || h.closed {
		return scerr.New(pkgName, scerr.CodeInvalidInput, op, "repository handle is closed", nil)
	}
	return nil
}

// Head returns the commit at the tip of the current branch.
func (h *Handle) Head() (*object.Commit, error) {
	if err := h.ensureOpen("head"); err != nil {
		return nil, err
	}

	ref, err := h.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, scerr.New(pkgName, scerr.CodeNotFound, "head", "repository has no commits", err)
		}
		return nil, scerr.New(pkgName, scerr.CodeInternal, "head", "failed to read HEAD", err)
	}

	c, err := h.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeNotFound, "head", "HEAD commit not found", err)
	}
	return c, nil
}

// Branch returns the short name of the checked out branch, or "HEAD" when detached.
func (h *Handle) Branch() (string, error) {
	if err := h.ensureOpen("branch"); err != nil {
		return "", err
	}

	ref, err := h.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			sym, symErr := h.repo.Storer.Reference(plumbing.HEAD)
			if symErr == nil && sym.Type() == plumbing.SymbolicReference {
				return sym.Target().Short(), nil
			}
		}
		return "", scerr.New(pkgName, scerr.CodeNotFound, "branch", "cannot resolve HEAD", err)
	}
	if ref.Name().IsBranch() {
		return ref.Name().Short(), nil
	}
	return plumbing.HEAD.String(), nil
}

// Log returns every commit reachable from the given commit, newest committer
// time first.
func (h *Handle) Log(from plumbing.Hash) (object.CommitIter, error) {
	if err := h.ensureOpen("log"); err != nil {
		return nil, err
	}

	iter, err := h.repo.Log(&git.LogOptions{From: from, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeInternal, "log", "failed to walk history", err)
	}
	return iter, nil
}

// ResolveCommit finds the commit named by a full hash or an unambiguous
// prefix of one. No match is NOT_FOUND ("commit not found"); a prefix that
// matches several commits is AMBIGUOUS.
func (h *Handle) ResolveCommit(ref string) (*object.Commit, error) {
	if err := h.ensureOpen("resolve_commit"); err != nil {
		return nil, err
	}

	prefix := strings.ToLower(strings.TrimSpace(ref))
	if prefix == "" {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "resolve_commit", "commit hash is empty", nil)
	}
	if len(prefix) > 40 || !isHex(prefix) {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "resolve_commit",
			fmt.Sprintf("invalid commit hash %q", ref), nil)
	}

	if len(prefix) == 40 {
		c, err := h.repo.CommitObject(plumbing.NewHash(prefix))
		if err != nil {
			return nil, scerr.New(pkgName, scerr.CodeNotFound, "resolve_commit", "commit not found", err).
				WithContext("hash", ref)
		}
		return c, nil
	}

	iter, err := h.repo.CommitObjects()
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeInternal, "resolve_commit", "failed to list commits", err)
	}
	defer iter.Close()

	var matches []*object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if strings.HasPrefix(c.Hash.String(), prefix) {
			matches = append(matches, c)
		}
		return nil
	})
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeInternal, "resolve_commit", "failed to list commits", err)
	}

	switch len(matches) {
	case 0:
		return nil, scerr.New(pkgName, scerr.CodeNotFound, "resolve_commit", "commit not found", nil).
			WithContext("hash", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, scerr.New(pkgName, scerr.CodeAmbiguous, "resolve_commit",
			fmt.Sprintf("commit not found: prefix %q matches %d commits", ref, len(matches)), nil)
	}
}

// FindEntry looks up the tree entry at p in commit c. ok is false when the
// path does not exist at that commit; that is not an error.
func (h *Handle) FindEntry(c *object.Commit, p gitpath.RelativePath) (entry *object.TreeEntry, ok bool, err error) {
	if err := h.ensureOpen("find_entry"); err != nil {
		return nil, false, err
	}

	tree, err := c.Tree()
	if err != nil {
		return nil, false, scerr.New(pkgName, scerr.CodeInternal, "find_entry", "failed to read commit tree", err).
			WithContext("commit", c.Hash.String())
	}

	entry, err = tree.FindEntry(p.String())
	if err != nil {
		if isMissingEntry(err) {
			return nil, false, nil
		}
		return nil, false, scerr.New(pkgName, scerr.CodeInternal, "find_entry", "failed to read tree entry", err)
	}
	return entry, true, nil
}

// LookupEntry returns the tree entry for p in c and requires it to be a
// regular file. Absent paths and non-file entries (subtrees, submodules,
// symlinks) fail with NOT_FOUND "entry not found".
func (h *Handle) LookupEntry(c *object.Commit, p gitpath.RelativePath) (*object.TreeEntry, error) {
	entry, ok, err := h.FindEntry(c, p)
	if err != nil {
		return nil, err
	}
	if !ok || !IsRegularFile(entry.Mode) {
		return nil, scerr.New(pkgName, scerr.CodeNotFound, "lookup_entry", "entry not found", nil).
			WithContext("path", p.String()).
			WithContext("commit", c.Hash.String())
	}
	return entry, nil
}

// OpenBlob opens the content stream of a blob entry. The caller closes it.
func (h *Handle) OpenBlob(entry *object.TreeEntry) (io.ReadCloser, error) {
	if err := h.ensureOpen("open_blob"); err != nil {
		return nil, err
	}

	blob, err := h.repo.BlobObject(entry.Hash)
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeNotFound, "open_blob", "blob not found", err).
			WithContext("blob", entry.Hash.String())
	}
	r, err := blob.Reader()
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeIOFailure, "open_blob", "failed to read blob", err)
	}
	return r, nil
}

// ReadBlob returns the complete content of a blob entry.
func (h *Handle) ReadBlob(entry *object.TreeEntry) ([]byte, error) {
	r, err := h.OpenBlob(entry)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeIOFailure, "read_blob", "failed to read blob", err)
	}
	return data, nil
}

// Status returns the working tree status against the index and HEAD.
// Only paths with changes appear in the result.
func (h *Handle) Status() (git.Status, error) {
	wt, err := h.worktree("status")
	if err != nil {
		return nil, err
	}
	st, err := wt.Status()
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeInternal, "status", "failed to compute status", err)
	}
	return st, nil
}

// IndexEntry returns the index record for p; ok is false when p is not staged.
func (h *Handle) IndexEntry(p gitpath.RelativePath) (entry *index.Entry, ok bool, err error) {
	if err := h.ensureOpen("index_entry"); err != nil {
		return nil, false, err
	}

	idx, err := h.repo.Storer.Index()
	if err != nil {
		return nil, false, scerr.New(pkgName, scerr.CodeInternal, "index_entry", "failed to read index", err)
	}
	entry, err = idx.Entry(p.String())
	if err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return nil, false, nil
		}
		return nil, false, scerr.New(pkgName, scerr.CodeInternal, "index_entry", "failed to read index entry", err)
	}
	return entry, true, nil
}

// Stage records the working tree content of p in the index.
func (h *Handle) Stage(p gitpath.RelativePath) error {
	wt, err := h.worktree("stage")
	if err != nil {
		return err
	}
	if _, err := wt.Add(p.String()); err != nil {
		return scerr.New(pkgName, scerr.CodeIOFailure, "stage", "failed to stage file", err).
			WithContext("path", p.String())
	}
	h.log.Debug("staged", "path", p.String())
	return nil
}

// AbsPath resolves p against the working tree root.
func (h *Handle) AbsPath(p gitpath.RelativePath) (string, error) {
	abs, err := h.root.Join(p)
	if err != nil {
		return "", scerr.New(pkgName, scerr.CodeInvalidInput, "abs_path", "path outside repository", err)
	}
	return abs, nil
}

func (h *Handle) worktree(op string) (*git.Worktree, error) {
	if err := h.ensureOpen(op); err != nil {
		return nil, err
	}
	wt, err := h.repo.Worktree()
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, op, "repository has no working tree", err)
	}
	return wt, nil
}

// IsRegularFile reports whether a tree entry mode denotes file content that
// can be written back to disk.
func IsRegularFile(m filemode.FileMode) bool {
	return m == filemode.Regular || m == filemode.Executable || m == filemode.Deprecated
}

func isMissingEntry(err error) bool {
	return errors.Is(err, object.ErrEntryNotFound) ||
		errors.Is(err, object.ErrDirectoryNotFound) ||
		errors.Is(err, plumbing.ErrObjectNotFound)
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}
