package gitrepo_test

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"github.com/utkarsh5026/filestory/pkg/repository/gitpath"
	"github.com/utkarsh5026/filestory/pkg/repository/gitrepo"
	"github.com/utkarsh5026/filestory/pkg/repository/gitrepo/gitrepotest"
)

func rel(t *testing.T, p string) gitpath.RelativePath {
	t.Helper()
	rp, err := gitpath.New(p)
	require.NoError(t, err)
	return rp
}

func TestOpen(t *testing.T) {
	t.Run("opens working tree root", func(t *testing.T) {
		fx := gitrepotest.New(t)
		h, err := gitrepo.Open(fx.Dir)
		require.NoError(t, err)
		defer h.Close()

		assert.Equal(t, fx.Dir, h.Root().String())
	})

	t.Run("accepts the .git directory", func(t *testing.T) {
		fx := gitrepotest.New(t)
		h, err := gitrepo.Open(filepath.Join(fx.Dir, ".git"))
		require.NoError(t, err)
		defer h.Close()

		assert.Equal(t, fx.Dir, h.Root().String())
	})

	t.Run("plain directory is NOT_FOUND", func(t *testing.T) {
		_, err := gitrepo.Open(t.TempDir())
		require.Error(t, err)
		assert.True(t, scerr.IsCode(err, scerr.CodeNotFound))
	})

	t.Run("missing directory is NOT_FOUND", func(t *testing.T) {
		_, err := gitrepo.Open(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.True(t, scerr.IsCode(err, scerr.CodeNotFound))
	})

	t.Run("empty root is INVALID_INPUT", func(t *testing.T) {
		_, err := gitrepo.Open("  ")
		require.Error(t, err)
		assert.True(t, scerr.IsCode(err, scerr.CodeInvalidInput))
	})
}

func TestDiscover(t *testing.T) {
	fx := gitrepotest.New(t)
	fx.Write("Assets/Scenes/main.unity", "scene")
	nested := fx.Path("Assets/Scenes")

	h, err := gitrepo.Discover(nested)
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, fx.Dir, h.Root().String())
}

func TestClose(t *testing.T) {
	fx := gitrepotest.New(t)
	fx.Commit("init", map[string]string{"a.txt": "a"})

	h, err := gitrepo.Open(fx.Dir)
	require.NoError(t, err)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close(), "second close is a no-op")

	_, err = h.Head()
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeInvalidInput))
}

func TestWith(t *testing.T) {
	fx := gitrepotest.New(t)
	first := fx.Commit("init", map[string]string{"a.txt": "a"})

	var seen string
	err := gitrepo.With(fx.Dir, func(h *gitrepo.Handle) error {
		c, err := h.Head()
		if err != nil {
			return err
		}
		seen = c.Hash.String()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, first.String(), seen)

	sentinel := fmt.Errorf("boom")
	err = gitrepo.With(fx.Dir, func(*gitrepo.Handle) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestHeadAndBranch(t *testing.T) {
	fx := gitrepotest.New(t)
	h := fx.Open()

	_, err := h.Head()
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeNotFound), "empty repository has no HEAD commit")

	branch, err := h.Branch()
	require.NoError(t, err)
	assert.Equal(t, "master", branch)

	hash := fx.Commit("init", map[string]string{"a.txt": "a"})
	c, err := h.Head()
	require.NoError(t, err)
	assert.Equal(t, hash, c.Hash)
	assert.Equal(t, "init", c.Message)
}

func TestResolveCommit(t *testing.T) {
	fx := gitrepotest.New(t)
	first := fx.Commit("one", map[string]string{"a.txt": "1"})
	second := fx.Commit("two", map[string]string{"a.txt": "2"})
	h := fx.Open()

	t.Run("full hash", func(t *testing.T) {
		c, err := h.ResolveCommit(first.String())
		require.NoError(t, err)
		assert.Equal(t, first, c.Hash)
	})

	t.Run("unique prefix", func(t *testing.T) {
		c, err := h.ResolveCommit(second.String()[:12])
		require.NoError(t, err)
		assert.Equal(t, second, c.Hash)
	})

	t.Run("upper case prefix", func(t *testing.T) {
		c, err := h.ResolveCommit(fmt.Sprintf("%X", second[:6]))
		require.NoError(t, err)
		assert.Equal(t, second, c.Hash)
	})

	t.Run("unknown full hash", func(t *testing.T) {
		_, err := h.ResolveCommit("0123456789012345678901234567890123456789")
		require.Error(t, err)
		assert.True(t, scerr.IsCode(err, scerr.CodeNotFound))
		assert.Contains(t, err.Error(), "commit not found")
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, in := range []string{"", "xyz", "abc def"} {
			_, err := h.ResolveCommit(in)
			require.Error(t, err, in)
			assert.True(t, scerr.IsCode(err, scerr.CodeInvalidInput), in)
		}
	})
}

func TestResolveCommitAmbiguousPrefix(t *testing.T) {
	fx := gitrepotest.New(t)
	// 17 commits guarantee two share a first hex digit.
	byDigit := map[byte]int{}
	for i := 0; i < 17; i++ {
		hash := fx.Commit(fmt.Sprintf("c%d", i), map[string]string{"a.txt": fmt.Sprint(i)})
		byDigit[hash.String()[0]]++
	}
	h := fx.Open()

	var shared byte
	for d, n := range byDigit {
		if n > 1 {
			shared = d
			break
		}
	}
	require.NotZero(t, shared)

	_, err := h.ResolveCommit(string(shared))
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeAmbiguous))
}

func TestFindAndLookup(t *testing.T) {
	fx := gitrepotest.New(t)
	hash := fx.Commit("init", map[string]string{
		"Assets/Player.prefab":      "prefab",
		"Assets/Player.prefab.meta": "meta",
	})
	h := fx.Open()
	c, err := h.ResolveCommit(hash.String())
	require.NoError(t, err)

	t.Run("file", func(t *testing.T) {
		entry, err := h.LookupEntry(c, rel(t, "Assets/Player.prefab"))
		require.NoError(t, err)

		data, err := h.ReadBlob(entry)
		require.NoError(t, err)
		assert.Equal(t, "prefab", string(data))

		r, err := h.OpenBlob(entry)
		require.NoError(t, err)
		defer r.Close()
		streamed, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, data, streamed)
	})

	t.Run("directory is not a file", func(t *testing.T) {
		entry, ok, err := h.FindEntry(c, rel(t, "Assets"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, gitrepo.IsRegularFile(entry.Mode))

		_, err = h.LookupEntry(c, rel(t, "Assets"))
		require.Error(t, err)
		assert.True(t, scerr.IsCode(err, scerr.CodeNotFound))
		assert.Contains(t, err.Error(), "entry not found")
	})

	t.Run("missing paths", func(t *testing.T) {
		for _, p := range []string{"nope.txt", "Missing/dir/file.txt", "Assets/Player.prefab/child"} {
			_, ok, err := h.FindEntry(c, rel(t, p))
			require.NoError(t, err, p)
			assert.False(t, ok, p)
		}
	})
}

func TestIndexAndStage(t *testing.T) {
	fx := gitrepotest.New(t)
	fx.Commit("init", map[string]string{"a.txt": "a"})
	h := fx.Open()

	entry, ok, err := h.IndexEntry(rel(t, "a.txt"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, entry.Hash.IsZero())

	_, ok, err = h.IndexEntry(rel(t, "b.txt"))
	require.NoError(t, err)
	assert.False(t, ok)

	fx.Write("b.txt", "b")
	require.NoError(t, h.Stage(rel(t, "b.txt")))

	_, ok, err = h.IndexEntry(rel(t, "b.txt"))
	require.NoError(t, err)
	assert.True(t, ok)

	st, err := h.Status()
	require.NoError(t, err)
	require.Contains(t, st, "b.txt")
	assert.Equal(t, git.Added, st["b.txt"].Staging)
}

func TestAbsPath(t *testing.T) {
	fx := gitrepotest.New(t)
	h := fx.Open()

	abs, err := h.AbsPath(rel(t, "Assets/a.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.Dir, "Assets", "a.txt"), abs)

	_, err = h.AbsPath(gitpath.RelativePath("../escape"))
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeInvalidInput))
}

func TestOpenBareRepositoryHasNoWorktree(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, true)
	require.NoError(t, err)

	h, err := gitrepo.Open(dir)
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Status()
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeInvalidInput))
}
