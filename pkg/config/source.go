package config

// ConfigSource records where an entry was read from: a file path or one of
// the two special sources.
type ConfigSource string

const (
	CommandLineSource ConfigSource = "command-line"
	BuiltinSource     ConfigSource = "builtin"
)

// NewFileSource returns the source for a config file
func NewFileSource(path string) ConfigSource {
	return ConfigSource(path)
}

func (s ConfigSource) String() string {
	return string(s)
}

// IsFile reports whether the entry came from a config file
func (s ConfigSource) IsFile() bool {
	return s != "" && s != CommandLineSource && s != BuiltinSource
}
