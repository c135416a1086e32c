package err

import (
	"errors"
	"strings"
)

// Error is the base error type shared by every filestory package.
//
// Package-specific constructors fill Package and Op; Code carries one of the
// codes below so callers can branch on the failure class without string
// matching. Errors wrap their cause and work with errors.Is/As.
type Error struct {
	// Package identifies the originating package (e.g., "gitrepo", "rollback")
	Package string

	// Code is a machine-readable category, one of the Code* constants.
	Code string

	// Op is the operation being performed (e.g., "resolve_commit", "write").
	Op string

	// Message is a short human-readable description.
	Message string

	// Err is the wrapped cause. Can be nil for leaf errors.
	Err error

	// Context holds optional structured metadata, allocated on first use.
	Context map[string]any
}

// Error implements the error interface.
// Format: [package][code] operation: message: wrapped_error
func (e *Error) Error() string {
	var parts []string

	var prefix strings.Builder
	if e.Package != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Package)
		prefix.WriteString("]")
	}
	if e.Code != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Code)
		prefix.WriteString("]")
	}
	if prefix.Len() > 0 {
		parts = append(parts, prefix.String())
	}

	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, ": ")
	if e.Err != nil {
		if result != "" {
			result += ": " + e.Err.Error()
		} else {
			result = e.Err.Error()
		}
	}
	return result
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same non-empty code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds a key-value pair to the error's context.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves a value from the error's context.
func (e *Error) GetContext(key string) any {
	if e.Context == nil {
		return nil
	}
	return e.Context[key]
}

// New creates a new base error with the specified fields.
func New(pkg, code, op, message string, err error) *Error {
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with package and operation context.
// Returns nil if err is nil.
func Wrap(err error, pkg, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Package: pkg, Op: op, Err: err}
}

// WrapWithCode wraps an error with package, operation, and code.
// Returns nil if err is nil.
func WrapWithCode(err error, pkg, code, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Package: pkg, Code: code, Op: op, Err: err}
}

const (
	// CodeNotFound: a commit, tree entry or repository could not be resolved.
	CodeNotFound = "NOT_FOUND"

	// CodeIOFailure: reading a blob or writing a destination file failed.
	CodeIOFailure = "IO_FAILURE"

	// CodeInvalidInput: empty path, closed handle, malformed argument.
	CodeInvalidInput = "INVALID_INPUT"

	// CodeAmbiguous: a commit prefix matched more than one commit.
	CodeAmbiguous = "AMBIGUOUS"

	// CodeInvalidFormat: a document or config file could not be decoded.
	CodeInvalidFormat = "INVALID_FORMAT"

	// CodeReadOnly: an attempt to write a read-only configuration level.
	CodeReadOnly = "READ_ONLY"

	// CodeInternal: unexpected failure inside the underlying git library.
	CodeInternal = "INTERNAL"
)

// IsCode checks if an error (or anything it wraps) has a specific code.
func IsCode(err error, code string) bool {
	var e *Error
	for err != nil {
		if errors.As(err, &e) {
			if e.Code == code {
				return true
			}
			err = e.Err
			continue
		}
		return false
	}
	return false
}

// GetCode extracts the outermost error code from an error.
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetOp extracts the operation from an error.
func GetOp(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}
