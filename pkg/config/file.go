package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ConfigFileStructure is the nested JSON layout of a config file. Dotted keys
// map onto nested objects:
//
//	{
//	  "history": {
//	    "scratchdir": ".filestory/scratch",
//	    "companionsuffix": ".meta"
//	  },
//	  "log": {"level": "debug"}
//	}
type ConfigFileStructure struct {
	data map[string]any
}

// NewConfigFileStructure creates an empty structure
func NewConfigFileStructure() *ConfigFileStructure {
	return &ConfigFileStructure{data: make(map[string]any)}
}

func (c *ConfigFileStructure) UnmarshalJSON(data []byte) error {
	c.data = make(map[string]any)
	return json.Unmarshal(data, &c.data)
}

func (c *ConfigFileStructure) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.data)
}

// Range calls fn for each top-level key until fn returns an error
func (c *ConfigFileStructure) Range(fn func(key string, value any) error) error {
	for key, value := range c.data {
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetNestedValue stores value under a dotted key, creating intermediate
// objects. An existing value at the key is replaced unless it is an object.
func (c *ConfigFileStructure) SetNestedValue(keyPath, value string) error {
	segments := strings.Split(keyPath, ".")
	for _, s := range segments {
		if s == "" {
			return NewInvalidValueError(keyPath, fmt.Errorf("empty segment in key path"))
		}
	}

	target := c.data
	for _, segment := range segments[:len(segments)-1] {
		next, ok := target[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			target[segment] = next
		}
		target = next
	}

	last := segments[len(segments)-1]
	if _, isObject := target[last].(map[string]any); isObject {
		return NewInvalidValueError(keyPath, fmt.Errorf("key names a section, not a value"))
	}
	target[last] = value
	return nil
}
