package config

// TypedConfig gives typed access to the filestory keys. Every accessor
// falls back to the builtin default when a value is absent or unusable.
type TypedConfig struct {
	manager *Manager
}

func NewTypedConfig(manager *Manager) *TypedConfig {
	return &TypedConfig{manager: manager}
}

// RepositoryRoot returns the configured root, or "" to discover it from the
// working directory
func (tc *TypedConfig) RepositoryRoot() string {
	return tc.stringOr(KeyRepositoryRoot, "")
}

// ScratchDir returns the snapshot directory; relative values resolve against
// the repository root
func (tc *TypedConfig) ScratchDir() string {
	return tc.stringOr(KeyScratchDir, ".filestory/scratch")
}

func (tc *TypedConfig) IgnoreFile() string {
	return tc.stringOr(KeyIgnoreFile, ".gitignore")
}

func (tc *TypedConfig) CompanionSuffix() string {
	return tc.stringOr(KeyCompanionSuffix, ".meta")
}

func (tc *TypedConfig) RemapExtension() string {
	return tc.stringOr(KeyRemapExtension, ".txt")
}

func (tc *TypedConfig) LogLevel() string {
	return tc.stringOr(KeyLogLevel, "info")
}

func (tc *TypedConfig) LogFormat() string {
	return tc.stringOr(KeyLogFormat, "text")
}

// GetString returns the raw value, or "" when unset
func (tc *TypedConfig) GetString(key string) string {
	return tc.stringOr(key, "")
}

// GetBool returns a NOT_FOUND error when key is unset
func (tc *TypedConfig) GetBool(key string) (bool, error) {
	entry := tc.manager.Get(key)
	if entry == nil {
		return false, NewNotFoundError(key, "")
	}
	return entry.AsBoolean()
}

// GetList returns the comma-separated items of key, or nil when unset
func (tc *TypedConfig) GetList(key string) []string {
	entry := tc.manager.Get(key)
	if entry == nil {
		return nil
	}
	return entry.AsList()
}

func (tc *TypedConfig) stringOr(key, fallback string) string {
	entry := tc.manager.Get(key)
	if entry == nil || entry.Value == "" {
		return fallback
	}
	return entry.Value
}
