package config

import (
	"fmt"

	"github.com/utkarsh5026/filestory/pkg/common/err"
)

const (
	pkgName = "config"

	CodeNotFoundErr      = err.CodeNotFound
	CodeInvalidFormatErr = err.CodeInvalidFormat
	CodeInvalidValueErr  = err.CodeInvalidInput
	CodeReadOnlyErr      = err.CodeReadOnly
	CodeIOErr            = err.CodeIOFailure
	CodeConversionErr    = "CONVERSION_FAILED"
	CodeInvalidLevelErr  = "INVALID_LEVEL"
)

// ConfigError is a configuration failure with the key, file and level involved
type ConfigError struct {
	base  *err.Error
	Path  string // file path if applicable
	Key   string // config key if applicable
	Level string // config level if applicable
}

// NewConfigError creates a new ConfigError
func NewConfigError(op, code, key, path, level string, underlying error) *ConfigError {
	return &ConfigError{
		base:  err.New(pkgName, code, op, "", underlying),
		Path:  path,
		Key:   key,
		Level: level,
	}
}

// NewInvalidFormatError reports a config file or document that cannot be parsed
func NewInvalidFormatError(op, path string, underlying error) *ConfigError {
	return NewConfigError(op, CodeInvalidFormatErr, "", path, "", underlying)
}

// NewInvalidValueError reports a value rejected by the Validator
func NewInvalidValueError(key string, underlying error) *ConfigError {
	return NewConfigError("validate", CodeInvalidValueErr, key, "", "", underlying)
}

// NewNotFoundError reports a key with no value at any level
func NewNotFoundError(key, path string) *ConfigError {
	return NewConfigError("get", CodeNotFoundErr, key, path, "", ErrNotFound)
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := e.base.Error()
	if e.Key != "" {
		msg += fmt.Sprintf(" [key=%s]", e.Key)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" [path=%s]", e.Path)
	}
	if e.Level != "" {
		msg += fmt.Sprintf(" [level=%s]", e.Level)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.base
}

var (
	ErrNotFound      = err.New(pkgName, CodeNotFoundErr, "", "configuration key not found", nil)
	ErrInvalidFormat = err.New(pkgName, CodeInvalidFormatErr, "", "invalid configuration format", nil)
	ErrInvalidLevel  = err.New(pkgName, CodeInvalidLevelErr, "", "invalid configuration level", nil)
	ErrReadOnly      = err.New(pkgName, CodeReadOnlyErr, "", "configuration level is read-only", nil)
	ErrConversion    = err.New(pkgName, CodeConversionErr, "", "configuration value conversion failed", nil)
)

// IsNotFound reports whether e carries CodeNotFoundErr
func IsNotFound(e error) bool {
	return err.IsCode(e, CodeNotFoundErr)
}

// IsInvalidFormat reports whether e carries CodeInvalidFormatErr
func IsInvalidFormat(e error) bool {
	return err.IsCode(e, CodeInvalidFormatErr)
}

// IsInvalidValue reports whether e carries CodeInvalidValueErr
func IsInvalidValue(e error) bool {
	return err.IsCode(e, CodeInvalidValueErr)
}

// IsReadOnly reports whether e carries CodeReadOnlyErr
func IsReadOnly(e error) bool {
	return err.IsCode(e, CodeReadOnlyErr)
}

// IsConversion reports whether e carries CodeConversionErr
func IsConversion(e error) bool {
	return err.IsCode(e, CodeConversionErr)
}
