package config

import (
	"encoding/json"
	"testing"
)

func TestParser_Parse(t *testing.T) {
	parser := &Parser{}

	tests := []struct {
		name       string
		content    string
		wantValues map[string]string
		wantErr    bool
	}{
		{
			name:       "empty content",
			content:    "  \n",
			wantValues: map[string]string{},
		},
		{
			name: "simple key-value",
			content: `{
				"history": {
					"scratchdir": "snapshots",
					"companionsuffix": ".meta"
				}
			}`,
			wantValues: map[string]string{
				"history.scratchdir":      "snapshots",
				"history.companionsuffix": ".meta",
			},
		},
		{
			name:    "nested sections",
			content: `{"log": {"sink": {"format": "json"}}}`,
			wantValues: map[string]string{
				"log.sink.format": "json",
			},
		},
		{
			name:    "non-string scalars",
			content: `{"ui": {"color": true, "width": 80, "theme": null}}`,
			wantValues: map[string]string{
				"ui.color": "true",
				"ui.width": "80",
				"ui.theme": "",
			},
		},
		{
			name:    "array values",
			content: `{"history": {"companions": [".meta", ".import"]}}`,
			wantValues: map[string]string{
				"history.companions": ".meta,.import",
			},
		},
		{
			name:    "invalid JSON",
			content: `{invalid json}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.Parse(tt.content, "test.json", UserLevel)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsInvalidFormat(err) {
					t.Errorf("Parse() error = %v, want invalid format", err)
				}
				return
			}

			if len(result) != len(tt.wantValues) {
				t.Errorf("Parse() returned %d keys, want %d", len(result), len(tt.wantValues))
			}
			for key, want := range tt.wantValues {
				entry, ok := result[key]
				if !ok {
					t.Errorf("Parse() missing key %q", key)
					continue
				}
				if entry.Value != want {
					t.Errorf("Parse() key %q = %q, want %q", key, entry.Value, want)
				}
				if entry.Level != UserLevel || entry.Source != "test.json" {
					t.Errorf("Parse() key %q level/source = %v/%q", key, entry.Level, entry.Source)
				}
			}
		})
	}
}

func TestParser_Serialize(t *testing.T) {
	parser := &Parser{}

	entries := map[string]*ConfigEntry{
		"history.scratchdir": NewEntry("history.scratchdir", "snapshots", UserLevel, "test"),
		"log.level":          NewEntry("log.level", "debug", UserLevel, "test"),
	}

	result, err := parser.Serialize(entries)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var parsed map[string]map[string]string
	if err := json.Unmarshal([]byte(result), &parsed); err != nil {
		t.Fatalf("Serialize() produced invalid JSON: %v", err)
	}
	if parsed["history"]["scratchdir"] != "snapshots" {
		t.Errorf("history.scratchdir = %q, want snapshots", parsed["history"]["scratchdir"])
	}
	if parsed["log"]["level"] != "debug" {
		t.Errorf("log.level = %q, want debug", parsed["log"]["level"])
	}
}

func TestConfigFileStructure_SetNestedValue(t *testing.T) {
	structure := NewConfigFileStructure()
	if err := structure.SetNestedValue("log.level", "debug"); err != nil {
		t.Fatalf("SetNestedValue() error = %v", err)
	}
	if err := structure.SetNestedValue("log", "on"); !IsInvalidValue(err) {
		t.Errorf("SetNestedValue(section) error = %v, want invalid value", err)
	}
	if err := structure.SetNestedValue("log..level", "x"); !IsInvalidValue(err) {
		t.Errorf("SetNestedValue(empty segment) error = %v, want invalid value", err)
	}
}

func TestParser_Validate(t *testing.T) {
	parser := &Parser{}

	tests := []struct {
		name      string
		content   string
		wantValid bool
	}{
		{"valid simple config", `{"history": {"scratchdir": "snapshots"}}`, true},
		{"valid nested config", `{"log": {"sink": {"format": "json"}}}`, true},
		{"valid array config", `{"history": {"companions": [".meta"]}}`, true},
		{"invalid JSON syntax", `{invalid}`, false},
		{"non-object root", `["array"]`, false},
		{"array with objects", `{"history": {"companions": [{"suffix": ".meta"}]}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.Validate(tt.content)
			if result.Valid != tt.wantValid {
				t.Errorf("Validate() valid = %v, want %v. Errors: %v", result.Valid, tt.wantValid, result.Errors)
			}
		})
	}
}

func TestParser_RoundTrip(t *testing.T) {
	parser := &Parser{}

	original := map[string]*ConfigEntry{
		"history.scratchdir":      NewEntry("history.scratchdir", "snapshots", UserLevel, "test"),
		"history.companionsuffix": NewEntry("history.companionsuffix", ".meta", UserLevel, "test"),
		"log.format":              NewEntry("log.format", "json", UserLevel, "test"),
	}

	serialized, err := parser.Serialize(original)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	parsed, err := parser.Parse(serialized, "test.json", UserLevel)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(parsed) != len(original) {
		t.Errorf("round trip has %d keys, want %d", len(parsed), len(original))
	}
	for key, want := range original {
		got, ok := parsed[key]
		if !ok {
			t.Errorf("round trip lost key %q", key)
			continue
		}
		if got.Value != want.Value {
			t.Errorf("round trip key %q = %q, want %q", key, got.Value, want.Value)
		}
	}
}
