package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/utkarsh5026/filestory/pkg/common/logger"
	"golang.org/x/sync/errgroup"
)

const (
	// RepositoryConfigFile is the repository-level file, relative to the root
	RepositoryConfigFile = ".filestory.json"
	// ConfigFileName is the user-level file name under ~/.config/filestory
	ConfigFileName = "config.json"
)

// Keys understood by filestory
const (
	KeyRepositoryRoot  = "history.repositoryroot"
	KeyScratchDir      = "history.scratchdir"
	KeyIgnoreFile      = "history.ignorefile"
	KeyCompanionSuffix = "history.companionsuffix"
	KeyRemapExtension  = "history.remapextension"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
)

// Manager resolves keys across the configuration levels. It is safe for
// concurrent use.
type Manager struct {
	mu              sync.RWMutex
	stores          map[ConfigLevel]*Store
	commandLine     map[string]string
	builtinDefaults map[string]string
	parser          *Parser
	validator       *Validator
	log             *slog.Logger
}

type managerOptions struct {
	userPath string
	log      *slog.Logger
}

// Option configures a Manager
type Option func(*managerOptions)

// WithUserConfigPath replaces ~/.config/filestory/config.json
func WithUserConfigPath(path string) Option {
	return func(o *managerOptions) { o.userPath = path }
}

// WithLogger sets the logger used for load warnings
func WithLogger(l *slog.Logger) Option {
	return func(o *managerOptions) { o.log = l }
}

// NewManager creates a manager. An empty repoRoot disables the repository
// level.
func NewManager(repoRoot string, opts ...Option) *Manager {
	o := managerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.userPath == "" {
		o.userPath = DefaultUserConfigPath()
	}

	m := &Manager{
		stores:          make(map[ConfigLevel]*Store),
		commandLine:     make(map[string]string),
		builtinDefaults: builtinDefaults(),
		parser:          &Parser{},
		validator:       &Validator{},
		log:             logger.OrDefault(o.log).With("component", pkgName),
	}

	m.stores[UserLevel] = NewStore(o.userPath, UserLevel, m.log)
	if repoRoot != "" {
		m.stores[RepositoryLevel] = NewStore(filepath.Join(repoRoot, RepositoryConfigFile), RepositoryLevel, m.log)
	}
	return m
}

// DefaultUserConfigPath returns ~/.config/filestory/config.json, falling back
// to the working directory when the home directory is unknown.
func DefaultUserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "filestory", ConfigFileName)
}

// Load reads every file-backed level
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, _ := errgroup.WithContext(ctx)
	for _, store := range m.stores {
		s := store
		g.Go(s.Load)
	}
	return g.Wait()
}

// Get returns the highest precedence entry for key, or nil
func (m *Manager) Get(key string) *ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getUnsafe(key)
}

// Set validates value and writes it at level
func (m *Manager) Set(key, value string, level ConfigLevel) error {
	if err := m.validator.ValidateKeyValue(key, value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.writableStore("set", key, level)
	if err != nil {
		return err
	}
	store.Set(key, value)
	return store.Save()
}

// Unset removes key at level
func (m *Manager) Unset(key string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.writableStore("unset", key, level)
	if err != nil {
		return err
	}
	if !store.HasKey(key) {
		return NewNotFoundError(key, store.Path())
	}
	store.Unset(key)
	return store.Save()
}

func (m *Manager) writableStore(op, key string, level ConfigLevel) (*Store, error) {
	if !level.CanWrite() {
		return nil, NewConfigError(op, CodeReadOnlyErr, key, "", level.String(), ErrReadOnly)
	}
	store, ok := m.stores[level]
	if !ok {
		return nil, NewConfigError(op, CodeNotFoundErr, key, "", level.String(), fmt.Errorf("no store for level"))
	}
	return store, nil
}

// SetCommandLine sets a value that overrides every file
func (m *Manager) SetCommandLine(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandLine[key] = value
}

// List returns the effective entry for every known key, sorted by key
func (m *Manager) List() []*ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make(map[string]struct{})
	for k := range m.commandLine {
		keys[k] = struct{}{}
	}
	for _, s := range m.stores {
		for k := range s.entries {
			keys[k] = struct{}{}
		}
	}
	for k := range m.builtinDefaults {
		keys[k] = struct{}{}
	}

	entries := make([]*ConfigEntry, 0, len(keys))
	for k := range keys {
		if e := m.getUnsafe(k); e != nil {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// ExportJSON renders the effective configuration as nested JSON
func (m *Manager) ExportJSON() (string, error) {
	entries := make(map[string]*ConfigEntry)
	for _, e := range m.List() {
		entries[e.Key] = e
	}
	return m.parser.Serialize(entries)
}

// GetStore returns the store for level, or nil
func (m *Manager) GetStore(level ConfigLevel) *Store {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stores[level]
}

func builtinDefaults() map[string]string {
	return map[string]string{
		KeyRepositoryRoot:  "",
		KeyScratchDir:      ".filestory/scratch",
		KeyIgnoreFile:      ".gitignore",
		KeyCompanionSuffix: ".meta",
		KeyRemapExtension:  ".txt",
		KeyLogLevel:        "info",
		KeyLogFormat:       "text",
	}
}

// caller holds at least the read lock
func (m *Manager) getUnsafe(key string) *ConfigEntry {
	if v, ok := m.commandLine[key]; ok {
		return NewCommandLineEntry(key, v)
	}
	for _, level := range []ConfigLevel{RepositoryLevel, UserLevel} {
		if s, ok := m.stores[level]; ok {
			if e := s.Entry(key); e != nil {
				return e
			}
		}
	}
	if v, ok := m.builtinDefaults[key]; ok {
		return NewBuiltinEntry(key, v)
	}
	return nil
}
