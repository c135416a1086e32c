package config

// ConfigLevel is where a configuration entry comes from, ordered by
// precedence from highest to lowest.
type ConfigLevel int

const (
	// CommandLineLevel holds values from flags such as --repo (highest precedence)
	CommandLineLevel ConfigLevel = iota

	// RepositoryLevel is <root>/.filestory.json
	RepositoryLevel

	// UserLevel is ~/.config/filestory/config.json
	UserLevel

	// BuiltinLevel holds compiled-in defaults (lowest precedence)
	BuiltinLevel
)

// String returns the name used on the command line for the level
func (l ConfigLevel) String() string {
	switch l {
	case CommandLineLevel:
		return "command-line"
	case RepositoryLevel:
		return "repository"
	case UserLevel:
		return "user"
	case BuiltinLevel:
		return "builtin"
	default:
		return "unknown"
	}
}

// IsValid reports whether l is a known level
func (l ConfigLevel) IsValid() bool {
	return l >= CommandLineLevel && l <= BuiltinLevel
}

// CanWrite reports whether the level is backed by a file
func (l ConfigLevel) CanWrite() bool {
	return l == RepositoryLevel || l == UserLevel
}

// ParseLevel converts a level name to a ConfigLevel
func ParseLevel(s string) (ConfigLevel, error) {
	switch s {
	case "command-line":
		return CommandLineLevel, nil
	case "repository", "repo":
		return RepositoryLevel, nil
	case "user", "global":
		return UserLevel, nil
	case "builtin":
		return BuiltinLevel, nil
	default:
		return 0, NewConfigError("parse", CodeInvalidLevelErr, "", "", s, ErrInvalidLevel)
	}
}
