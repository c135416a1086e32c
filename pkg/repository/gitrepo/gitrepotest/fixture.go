// Package gitrepotest builds throwaway git repositories for tests.
package gitrepotest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/filestory/pkg/repository/gitrepo"
)

// Fixture is a repository in a temp directory with a deterministic clock:
// every commit is one minute newer than the previous one.
type Fixture struct {
	t     testing.TB
	Dir   string
	Repo  *git.Repository
	clock time.Time
}

// New initializes an empty non-bare repository under t.TempDir().
func New(t testing.TB) *Fixture {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return &Fixture{
		t:     t,
		Dir:   dir,
		Repo:  repo,
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the absolute path of a slash-separated relative path.
func (f *Fixture) Path(rel string) string {
	return filepath.Join(f.Dir, filepath.FromSlash(rel))
}

// Write creates or replaces a working tree file without staging it.
func (f *Fixture) Write(rel, content string) {
	f.t.Helper()
	p := f.Path(rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(f.t, os.WriteFile(p, []byte(content), 0o644))
}

// Read returns the working tree content of rel.
func (f *Fixture) Read(rel string) string {
	f.t.Helper()
	data, err := os.ReadFile(f.Path(rel))
	require.NoError(f.t, err)
	return string(data)
}

// Add stages rel.
func (f *Fixture) Add(rel string) {
	f.t.Helper()
	wt, err := f.Repo.Worktree()
	require.NoError(f.t, err)
	_, err = wt.Add(rel)
	require.NoError(f.t, err)
}

// Remove deletes rel from the working tree and the index.
func (f *Fixture) Remove(rel string) {
	f.t.Helper()
	wt, err := f.Repo.Worktree()
	require.NoError(f.t, err)
	_, err = wt.Remove(rel)
	require.NoError(f.t, err)
}

// Commit writes and stages files, then commits on top of HEAD.
func (f *Fixture) Commit(msg string, files map[string]string) plumbing.Hash {
	f.t.Helper()
	return f.CommitWithParents(msg, files)
}

// CommitWithParents writes and stages files, then commits with the given
// parents. With no parents the commit goes on top of HEAD. Empty commits
// are allowed so merges can keep a tree unchanged.
func (f *Fixture) CommitWithParents(msg string, files map[string]string, parents ...plumbing.Hash) plumbing.Hash {
	f.t.Helper()

	for rel, content := range files {
		f.Write(rel, content)
		f.Add(rel)
	}

	wt, err := f.Repo.Worktree()
	require.NoError(f.t, err)

	f.clock = f.clock.Add(time.Minute)
	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "author@example.com",
			When:  f.clock,
		},
		Parents:           parents,
		AllowEmptyCommits: true,
	})
	require.NoError(f.t, err)
	return hash
}

// Open opens a handle on the fixture and closes it when the test ends.
func (f *Fixture) Open() *gitrepo.Handle {
	f.t.Helper()
	h, err := gitrepo.Open(f.Dir)
	require.NoError(f.t, err)
	f.t.Cleanup(func() { _ = h.Close() })
	return h
}
