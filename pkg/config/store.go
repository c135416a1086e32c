package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/utkarsh5026/filestory/pkg/common/fileops"
	"github.com/utkarsh5026/filestory/pkg/common/logger"
)

// Store is one JSON config file at a single level
type Store struct {
	path    string
	level   ConfigLevel
	entries map[string]*ConfigEntry
	parser  *Parser
	log     *slog.Logger
}

// NewStore creates a store for the file at path. Nothing is read until Load.
func NewStore(path string, level ConfigLevel, log *slog.Logger) *Store {
	return &Store{
		path:    path,
		level:   level,
		entries: make(map[string]*ConfigEntry),
		parser:  &Parser{},
		log:     logger.OrDefault(log),
	}
}

// Load reads the file. A missing file is an empty config. A file with an
// invalid layout is logged and ignored; unparseable JSON is an error.
func (s *Store) Load() error {
	exists, err := fileops.Exists(s.path)
	if err != nil {
		return NewConfigError("load", CodeIOErr, "", s.path, s.level.String(), err)
	}
	if !exists {
		s.entries = make(map[string]*ConfigEntry)
		return nil
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		return NewConfigError("load", CodeIOErr, "", s.path, s.level.String(), err)
	}

	if validation := s.parser.Validate(string(content)); !validation.Valid {
		s.log.Warn("ignoring invalid configuration file",
			"path", s.path,
			"level", s.level.String(),
			"errors", validation.Errors)
		s.entries = make(map[string]*ConfigEntry)
		return nil
	}

	entries, err := s.parser.Parse(string(content), NewFileSource(s.path), s.level)
	if err != nil {
		return err
	}
	s.entries = entries
	return nil
}

// Save writes the store atomically, creating the parent directory
func (s *Store) Save() error {
	content, err := s.parser.Serialize(s.entries)
	if err != nil {
		return err
	}

	if err := fileops.EnsureParentDir(s.path); err != nil {
		return NewConfigError("save", CodeIOErr, "", s.path, s.level.String(), fmt.Errorf("create directory: %w", err))
	}
	mode := fileops.FileMode(s.path, 0o644)
	if err := fileops.AtomicWrite(s.path, []byte(content+"\n"), mode); err != nil {
		return NewConfigError("save", CodeIOErr, "", s.path, s.level.String(), err)
	}
	return nil
}

// Entry returns a copy of the entry for key, or nil
func (s *Store) Entry(key string) *ConfigEntry {
	if e, ok := s.entries[key]; ok {
		return e.Clone()
	}
	return nil
}

// Entries returns copies of all entries
func (s *Store) Entries() map[string]*ConfigEntry {
	out := make(map[string]*ConfigEntry, len(s.entries))
	for k, e := range s.entries {
		out[k] = e.Clone()
	}
	return out
}

func (s *Store) Set(key, value string) {
	s.entries[key] = NewEntry(key, value, s.level, NewFileSource(s.path))
}

func (s *Store) Unset(key string) {
	delete(s.entries, key)
}

// ToJSON renders the store's entries as nested JSON
func (s *Store) ToJSON() (string, error) {
	return s.parser.Serialize(s.entries)
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Level() ConfigLevel {
	return s.level
}

func (s *Store) HasKey(key string) bool {
	_, ok := s.entries[key]
	return ok
}
