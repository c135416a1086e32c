package snapshot

import (
	"log/slog"
	"path/filepath"
	"strings"

	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"github.com/utkarsh5026/filestory/pkg/common/fileops"
	"github.com/utkarsh5026/filestory/pkg/repository/gitpath"
	"github.com/utkarsh5026/filestory/pkg/repository/gitrepo"
)

const (
	pkgName = "snapshot"

	// DefaultRemapExtension replaces the extension of remapped snapshots.
	DefaultRemapExtension = ".txt"
)

// BlobContent is a file's bytes at one commit plus the asset type that
// decides whether the bytes need a remapped extension on disk.
type BlobContent struct {
	Path   gitpath.RelativePath
	Commit string
	Type   AssetType
	Data   []byte
}

// RequiresRemap reports whether the content should be written with a
// neutral extension.
func (b *BlobContent) RequiresRemap() bool {
	return b.Type.RequiresRemap()
}

// Extractor materializes historical file content into a scratch directory.
//
// The scratch directory belongs to the extractor: it is created on demand,
// files in it are overwritten without warning, and Purge empties it. Nothing
// outside the scratch directory is written.
type Extractor struct {
	repo       *gitrepo.Handle
	scratchDir string
	logger     *slog.Logger
}

// NewExtractor creates an Extractor writing into scratchDir. A relative
// scratchDir is resolved against the repository root.
func NewExtractor(repo *gitrepo.Handle, scratchDir string) *Extractor {
	return &Extractor{
		repo:       repo,
		scratchDir: repo.Root().Resolve(scratchDir),
		logger:     repo.Logger().With("component", pkgName),
	}
}

// ScratchDir returns the absolute scratch directory.
func (e *Extractor) ScratchDir() string {
	return e.scratchDir
}

type extractOptions struct {
	remap    bool
	remapExt string
	name     string
}

// ExtractOption adjusts a single ExtractAt call.
type ExtractOption func(*extractOptions)

// WithRemap replaces the destination extension with DefaultRemapExtension.
func WithRemap() ExtractOption {
	return WithRemapExtension(DefaultRemapExtension)
}

// WithRemapExtension replaces the destination extension with ext.
func WithRemapExtension(ext string) ExtractOption {
	return func(o *extractOptions) {
		o.remap = true
		o.remapExt = ext
	}
}

// WithName writes the snapshot under name instead of the source file name.
// The name is used as given; no remapping is applied to it.
func WithName(name string) ExtractOption {
	return func(o *extractOptions) {
		o.name = name
	}
}

// ExtractAt writes the content of filePath at commitHash into the scratch
// directory and returns the destination path.
//
// commitHash may be a unique prefix. Paths that are absent at the commit or
// are not regular files fail with NOT_FOUND. An existing destination file
// is replaced.
func (e *Extractor) ExtractAt(filePath, commitHash string, opts ...ExtractOption) (string, error) {
	var o extractOptions
	for _, opt := range opts {
		opt(&o)
	}

	p, err := gitpath.New(filePath)
	if err != nil {
		return "", scerr.New(pkgName, scerr.CodeInvalidInput, "extract", "invalid file path", err)
	}

	name, err := destinationName(p, o)
	if err != nil {
		return "", err
	}

	commit, err := e.repo.ResolveCommit(commitHash)
	if err != nil {
		return "", scerr.Wrap(err, pkgName, "extract")
	}
	entry, err := e.repo.LookupEntry(commit, p)
	if err != nil {
		return "", scerr.Wrap(err, pkgName, "extract")
	}

	if err := fileops.EnsureDir(e.scratchDir); err != nil {
		return "", scerr.New(pkgName, scerr.CodeIOFailure, "extract", "cannot create scratch directory", err).
			WithContext("dir", e.scratchDir)
	}

	blob, err := e.repo.OpenBlob(entry)
	if err != nil {
		return "", scerr.Wrap(err, pkgName, "extract")
	}
	defer blob.Close()

	dest := filepath.Join(e.scratchDir, name)
	if err := fileops.AtomicWriteFrom(dest, blob, 0o644); err != nil {
		return "", scerr.New(pkgName, scerr.CodeIOFailure, "extract", "failed to write snapshot", err).
			WithContext("dest", dest)
	}

	e.logger.Debug("snapshot extracted",
		"path", p.String(),
		"commit", commit.Hash.String(),
		"dest", dest)
	return dest, nil
}

// Read returns the content of filePath at commitHash without touching disk.
func (e *Extractor) Read(filePath, commitHash string) (*BlobContent, error) {
	p, err := gitpath.New(filePath)
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "read", "invalid file path", err)
	}

	commit, err := e.repo.ResolveCommit(commitHash)
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "read")
	}
	entry, err := e.repo.LookupEntry(commit, p)
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "read")
	}
	data, err := e.repo.ReadBlob(entry)
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "read")
	}

	return &BlobContent{
		Path:   p,
		Commit: commit.Hash.String(),
		Type:   Classify(p.String()),
		Data:   data,
	}, nil
}

// Purge removes everything in the scratch directory and returns the number
// of removed entries. A missing scratch directory is not an error.
func (e *Extractor) Purge() (int, error) {
	n, err := fileops.RemoveContents(e.scratchDir)
	if err != nil {
		return n, scerr.New(pkgName, scerr.CodeIOFailure, "purge", "failed to clean scratch directory", err).
			WithContext("dir", e.scratchDir)
	}
	e.logger.Debug("scratch purged", "dir", e.scratchDir, "removed", n)
	return n, nil
}

func destinationName(p gitpath.RelativePath, o extractOptions) (string, error) {
	if o.name != "" {
		if o.name == "." || o.name == ".." || strings.ContainsAny(o.name, `/\`) {
			return "", scerr.New(pkgName, scerr.CodeInvalidInput, "extract", "snapshot name must be a plain file name", nil).
				WithContext("name", o.name)
		}
		return o.name, nil
	}

	name := p.Base()
	if o.remap {
		ext := o.remapExt
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ext
	}
	return name, nil
}
