package config

import (
	"strconv"
	"strings"
)

// ConfigEntry is one configuration value and where it came from
type ConfigEntry struct {
	Key    string       // Dotted key, e.g. "history.scratchdir"
	Value  string       // Raw string value
	Level  ConfigLevel  // Level the value was found at
	Source ConfigSource // File path, command-line or builtin
}

// NewEntry creates an entry read from a file
func NewEntry(key, value string, level ConfigLevel, source ConfigSource) *ConfigEntry {
	return &ConfigEntry{Key: key, Value: value, Level: level, Source: source}
}

func NewCommandLineEntry(key, value string) *ConfigEntry {
	return NewEntry(key, value, CommandLineLevel, CommandLineSource)
}

func NewBuiltinEntry(key, value string) *ConfigEntry {
	return NewEntry(key, value, BuiltinLevel, BuiltinSource)
}

// AsString returns the raw value
func (e *ConfigEntry) AsString() string {
	return e.Value
}

// AsInt converts the value to an int
func (e *ConfigEntry) AsInt() (int, error) {
	val, err := strconv.Atoi(strings.TrimSpace(e.Value))
	if err != nil {
		return 0, NewConfigError("convert", CodeConversionErr, e.Key, "", "", err)
	}
	return val, nil
}

// AsBoolean accepts true/yes/1/on and false/no/0/off, case-insensitively
func (e *ConfigEntry) AsBoolean() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(e.Value)) {
	case "true", "yes", "1", "on":
		return true, nil
	case "false", "no", "0", "off":
		return false, nil
	default:
		return false, NewConfigError("convert", CodeConversionErr, e.Key, "", "", ErrConversion)
	}
}

// AsList splits the value on commas, trimming and dropping empty items
func (e *ConfigEntry) AsList() []string {
	result := []string{}
	for _, part := range strings.Split(e.Value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Clone returns a copy of the entry
func (e *ConfigEntry) Clone() *ConfigEntry {
	c := *e
	return &c
}
