// Package ignore maintains the repository ignore file.
//
// Writing is limited to an idempotent line add: a line is appended only when
// no existing line matches it after trimming whitespace. Matching uses the
// gitignore rules implemented by go-git, reading every .gitignore in the
// working tree plus the configured ignore file.
package ignore

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"github.com/utkarsh5026/filestory/pkg/common/fileops"
	"github.com/utkarsh5026/filestory/pkg/common/logger"
	"github.com/utkarsh5026/filestory/pkg/repository/gitpath"
)

const (
	pkgName = "ignore"

	// DefaultFile is the ignore file used when none is configured.
	DefaultFile = ".gitignore"

	commentPrefix = "#"
)

// List is the ignore file of one repository.
type List struct {
	root   gitpath.RepositoryRoot
	path   string
	logger *slog.Logger
}

// NewList returns the ignore list stored in file. A relative file is
// resolved against root; an empty one means DefaultFile.
func NewList(root gitpath.RepositoryRoot, file string, log *slog.Logger) *List {
	if file == "" {
		file = DefaultFile
	}
	return &List{
		root:   root,
		path:   root.Resolve(file),
		logger: logger.OrDefault(log).With("component", pkgName),
	}
}

// Path returns the absolute path of the ignore file.
func (l *List) Path() string {
	return l.path
}

// Ensure adds line to the ignore file unless it is already present.
func (l *List) Ensure(line string) (bool, error) {
	added, err := EnsureLine(l.path, line)
	if err != nil {
		return false, err
	}
	if added {
		l.logger.Info("ignore entry added", "file", l.path, "line", strings.TrimSpace(line))
	}
	return added, nil
}

// EnsureDir adds an entry ignoring dir, which must lie inside the repository
// and below the ignore file's directory. The entry is written relative to
// the ignore file.
func (l *List) EnsureDir(dir string) (bool, error) {
	rel, err := l.root.Rel(l.root.Resolve(dir))
	if err != nil {
		return false, scerr.New(pkgName, scerr.CodeInvalidInput, "ensure_dir", "directory is outside the repository", err).
			WithContext("dir", dir)
	}

	entry := rel.String()
	if base := strings.Join(l.domain(), "/"); base != "" {
		if !strings.HasPrefix(entry, base+"/") {
			return false, scerr.New(pkgName, scerr.CodeInvalidInput, "ensure_dir", "directory is outside the ignore file's directory", nil).
				WithContext("dir", dir).
				WithContext("file", l.path)
		}
		entry = strings.TrimPrefix(entry, base+"/")
	}
	return l.Ensure(entry + "/")
}

// domain returns the ignore file's directory relative to the root, as path
// components. A file at the root or outside the repository has no domain.
func (l *List) domain() []string {
	rel, err := filepath.Rel(l.root.String(), filepath.Dir(l.path))
	if err != nil {
		return nil
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return nil
	}
	return strings.Split(rel, "/")
}

// IsIgnored reports whether rel is ignored by any .gitignore in the working
// tree or by this list's file.
func (l *List) IsIgnored(rel gitpath.RelativePath, isDir bool) (bool, error) {
	patterns, err := gitignore.ReadPatterns(osfs.New(l.root.String()), nil)
	if err != nil {
		return false, scerr.New(pkgName, scerr.CodeIOFailure, "is_ignored", "failed to read ignore files", err)
	}

	if filepath.Base(l.path) != DefaultFile || filepath.Dir(l.path) != l.root.String() {
		extra, err := readPatterns(l.path, l.domain())
		if err != nil {
			return false, err
		}
		patterns = append(patterns, extra...)
	}

	return gitignore.NewMatcher(patterns).Match(rel.Components(), isDir), nil
}

// EnsureLine appends line to the file at path unless an identical trimmed
// line exists. The file and its parent directories are created when absent.
// It reports whether the line was added.
func EnsureLine(path, line string) (bool, error) {
	want := strings.TrimSpace(line)
	if want == "" {
		return false, scerr.New(pkgName, scerr.CodeInvalidInput, "ensure_line", "ignore line is empty", nil)
	}

	lines, err := fileops.ReadLines(path)
	if err != nil {
		return false, scerr.New(pkgName, scerr.CodeIOFailure, "ensure_line", "failed to read ignore file", err)
	}
	for _, existing := range lines {
		if strings.TrimSpace(existing) == want {
			return false, nil
		}
	}

	if err := fileops.EnsureParentDir(path); err != nil {
		return false, scerr.New(pkgName, scerr.CodeIOFailure, "ensure_line", "cannot create ignore file directory", err)
	}
	if err := fileops.AppendLine(path, want); err != nil {
		return false, scerr.New(pkgName, scerr.CodeIOFailure, "ensure_line", "failed to update ignore file", err).
			WithContext("path", path)
	}
	return true, nil
}

func readPatterns(path string, domain []string) ([]gitignore.Pattern, error) {
	lines, err := fileops.ReadLines(path)
	if err != nil {
		return nil, scerr.New(pkgName, scerr.CodeIOFailure, "is_ignored", "failed to read ignore file", err)
	}

	var patterns []gitignore.Pattern
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, commentPrefix) {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(s, domain))
	}
	return patterns, nil
}
