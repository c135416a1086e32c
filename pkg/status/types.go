package status

import (
	"github.com/go-git/go-git/v5"
	"github.com/utkarsh5026/filestory/pkg/repository/gitpath"
)

// Kind is a single label for a file's state, for callers that do not want
// to combine the predicates themselves.
type Kind int

const (
	Unmodified Kind = iota
	Modified
	New
	Renamed
	Deleted
	Nonexistent
)

func (k Kind) String() string {
	switch k {
	case Unmodified:
		return "unmodified"
	case Modified:
		return "modified"
	case New:
		return "new"
	case Renamed:
		return "renamed"
	case Deleted:
		return "deleted"
	case Nonexistent:
		return "nonexistent"
	default:
		return "unknown"
	}
}

// FileState is the state of one path in the index and the working tree.
// Several predicates may hold at once, e.g. a file staged as new and then
// edited again is both new and modified.
type FileState struct {
	// Path is the repository-relative path that was inspected
	Path gitpath.RelativePath
	// Staging is the index state relative to HEAD
	Staging git.StatusCode
	// Worktree is the working tree state relative to the index
	Worktree git.StatusCode
	// Tracked is true when the path has an index entry
	Tracked bool
	// OnDisk is true when the path exists in the working tree
	OnDisk bool
}

// IsModified reports a content change in the index or the working tree.
func (s FileState) IsModified() bool {
	return s.Staging == git.Modified || s.Worktree == git.Modified
}

// IsNew reports a file added to the index or untracked in the working tree.
func (s FileState) IsNew() bool {
	return s.Staging == git.Added || s.Staging == git.Untracked || s.Worktree == git.Untracked
}

// IsRenamed reports a rename in the index or the working tree.
func (s FileState) IsRenamed() bool {
	return s.Staging == git.Renamed || s.Worktree == git.Renamed
}

// IsDeleted reports a deletion from the index or the working tree.
func (s FileState) IsDeleted() bool {
	return s.Staging == git.Deleted || s.Worktree == git.Deleted
}

// IsConflicted reports an unmerged path.
func (s FileState) IsConflicted() bool {
	return s.Staging == git.UpdatedButUnmerged || s.Worktree == git.UpdatedButUnmerged
}

// Exists is false for deleted paths and for paths the repository has never
// seen in HEAD, the index or the working tree.
func (s FileState) Exists() bool {
	return !s.nonexistent() && !s.IsDeleted()
}

func (s FileState) nonexistent() bool {
	return !s.Tracked && !s.OnDisk && s.Staging == git.Unmodified && s.Worktree == git.Unmodified
}

// Classify collapses the predicates into one Kind. Deletion wins over
// rename, rename over new, and new over modified.
func (s FileState) Classify() Kind {
	switch {
	case s.nonexistent():
		return Nonexistent
	case s.IsDeleted():
		return Deleted
	case s.IsRenamed():
		return Renamed
	case s.IsNew():
		return New
	case s.IsModified():
		return Modified
	default:
		return Unmodified
	}
}
