package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Parser converts between nested JSON config files and flat dotted-key entries
type Parser struct{}

// ValidationResult contains validation results
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Parse flattens JSON content into entries keyed by dotted name. Empty content
// yields no entries. Non-string scalars are stored in their %v form and arrays
// are joined with commas so ConfigEntry.AsList can split them again.
func (p *Parser) Parse(content string, source ConfigSource, level ConfigLevel) (map[string]*ConfigEntry, error) {
	result := make(map[string]*ConfigEntry)
	if strings.TrimSpace(content) == "" {
		return result, nil
	}

	data := NewConfigFileStructure()
	if err := json.Unmarshal([]byte(content), data); err != nil {
		return nil, NewInvalidFormatError("parse", source.String(), fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}

	p.flatten(data.data, "", func(key, value string) {
		result[key] = NewEntry(key, value, level, source)
	})
	return result, nil
}

// Serialize renders entries as indented nested JSON
func (p *Parser) Serialize(entries map[string]*ConfigEntry) (string, error) {
	data := NewConfigFileStructure()

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := data.SetNestedValue(k, entries[k].Value); err != nil {
			return "", err
		}
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", NewInvalidFormatError("serialize", "", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	return string(out), nil
}

// Validate checks that content is a JSON object whose leaves are scalars or
// arrays of scalars
func (p *Parser) Validate(content string) ValidationResult {
	var errors []string

	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return ValidationResult{Errors: []string{fmt.Sprintf("Invalid JSON: %v", err)}}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return ValidationResult{Errors: []string{"Configuration must be a JSON object"}}
	}

	p.validateSection(obj, "", &errors)
	return ValidationResult{Valid: len(errors) == 0, Errors: errors}
}

func (p *Parser) flatten(section map[string]any, prefix string, emit func(key, value string)) {
	for k, v := range section {
		key := buildFullKey(prefix, k)
		switch val := v.(type) {
		case map[string]any:
			p.flatten(val, key, emit)
		case []any:
			items := make([]string, len(val))
			for i, item := range val {
				items[i] = fmt.Sprintf("%v", item)
			}
			emit(key, strings.Join(items, ","))
		case string:
			emit(key, val)
		case nil:
			emit(key, "")
		default:
			emit(key, fmt.Sprintf("%v", val))
		}
	}
}

func (p *Parser) validateSection(section map[string]any, path string, errors *[]string) {
	for k, v := range section {
		key := buildFullKey(path, k)
		switch val := v.(type) {
		case map[string]any:
			p.validateSection(val, key, errors)
		case []any:
			for _, item := range val {
				switch item.(type) {
				case map[string]any, []any:
					*errors = append(*errors, fmt.Sprintf("Configuration array at '%s' must contain only scalars", key))
				}
			}
		}
	}
}

func buildFullKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
