package rollback

import (
	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"github.com/utkarsh5026/filestory/pkg/repository/gitpath"
)

// DefaultCompanionSuffix names the metadata file that travels with an asset.
const DefaultCompanionSuffix = ".meta"

// FileIdentity is a tracked file plus the companion files that must be
// restored from the same commit.
type FileIdentity struct {
	Primary    gitpath.RelativePath
	Companions []gitpath.RelativePath
}

// NewFileIdentity validates primary and companions.
func NewFileIdentity(primary string, companions ...string) (FileIdentity, error) {
	p, err := gitpath.New(primary)
	if err != nil {
		return FileIdentity{}, scerr.New(pkgName, scerr.CodeInvalidInput, "identity", "invalid primary path", err)
	}

	id := FileIdentity{Primary: p}
	for _, c := range companions {
		cp, err := gitpath.New(c)
		if err != nil {
			return FileIdentity{}, scerr.New(pkgName, scerr.CodeInvalidInput, "identity", "invalid companion path", err).
				WithContext("companion", c)
		}
		id.Companions = append(id.Companions, cp)
	}
	return id, nil
}

// WithCompanionSuffix returns a copy of id with primary+suffix added as a
// companion, e.g. "Player.prefab" gains "Player.prefab.meta".
func (id FileIdentity) WithCompanionSuffix(suffix string) FileIdentity {
	if suffix == "" {
		return id
	}
	companion := id.Primary.WithSuffix(suffix)
	for _, c := range id.Companions {
		if c == companion {
			return id
		}
	}

	out := FileIdentity{Primary: id.Primary}
	out.Companions = append(append(out.Companions, id.Companions...), companion)
	return out
}

// Paths returns the primary followed by the companions.
func (id FileIdentity) Paths() []gitpath.RelativePath {
	return append([]gitpath.RelativePath{id.Primary}, id.Companions...)
}

// Report lists what a rollback wrote and what it skipped.
type Report struct {
	Commit  string
	Written []gitpath.RelativePath
	Skipped []gitpath.RelativePath
}
