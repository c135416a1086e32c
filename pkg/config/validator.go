package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Validator checks values for the history.* and log.* sections. Keys in
// other sections are accepted as-is.
type Validator struct{}

// ValidateKeyValue returns an INVALID_INPUT error describing the first
// problem with key or value
func (v *Validator) ValidateKeyValue(key, value string) error {
	section, name, ok := strings.Cut(key, ".")
	if !ok || section == "" || name == "" {
		return NewInvalidValueError(key, fmt.Errorf("configuration key must have at least section.name format"))
	}

	switch section {
	case "history":
		return v.validateHistory(key, name, value)
	case "log":
		return v.validateLog(key, name, value)
	default:
		return nil
	}
}

func (v *Validator) validateHistory(key, name, value string) error {
	switch name {
	case "companionsuffix", "remapextension":
		return v.validateExtension(key, value)
	case "scratchdir", "ignorefile":
		if strings.TrimSpace(value) == "" {
			return NewInvalidValueError(key, fmt.Errorf("path cannot be empty"))
		}
		if !filepath.IsAbs(value) && slices.Contains(strings.Split(filepath.ToSlash(value), "/"), "..") {
			return NewInvalidValueError(key, fmt.Errorf("relative path must stay inside the repository"))
		}
		return nil
	case "repositoryroot":
		return nil
	default:
		return NewInvalidValueError(key, fmt.Errorf("unknown history key"))
	}
}

func (v *Validator) validateLog(key, name, value string) error {
	lower := strings.ToLower(strings.TrimSpace(value))
	switch name {
	case "level":
		if slices.Contains([]string{"debug", "info", "warn", "error"}, lower) {
			return nil
		}
		return NewInvalidValueError(key, fmt.Errorf("must be one of: debug, info, warn, error"))
	case "format":
		if slices.Contains([]string{"text", "json"}, lower) {
			return nil
		}
		return NewInvalidValueError(key, fmt.Errorf("must be one of: text, json"))
	default:
		return NewInvalidValueError(key, fmt.Errorf("unknown log key"))
	}
}

func (v *Validator) validateExtension(key, value string) error {
	if len(value) < 2 || value[0] != '.' {
		return NewInvalidValueError(key, fmt.Errorf("must start with '.' followed by a name"))
	}
	if strings.ContainsAny(value, `/\`) || strings.Contains(value, "..") {
		return NewInvalidValueError(key, fmt.Errorf("must not contain path separators or '..'"))
	}
	return nil
}
