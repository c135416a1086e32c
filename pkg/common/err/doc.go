// Package err provides the error type shared across filestory.
//
// Every failure surfaced by the core carries one of three classes:
//
//   - CodeNotFound: commit hash does not resolve, the file is absent at that
//     commit, or the repository root is invalid.
//   - CodeIOFailure: a disk read or write failed while streaming a blob.
//   - CodeInvalidInput: empty path, closed handle; CodeAmbiguous refines it
//     for commit prefixes that match more than one commit.
//
// Packages define a pkgName constant and build errors with New or
// WrapWithCode:
//
//	return err.New(pkgName, err.CodeNotFound, "resolve_commit", "commit not found", nil)
//
// Callers branch on the class with IsCode:
//
//	if err.IsCode(e, err.CodeNotFound) {
//	    // show "nothing to restore"
//	}
//
// IsCode walks nested *Error values, so a NOT_FOUND raised in gitrepo is
// still visible after rollback wraps it with its own operation.
package err
