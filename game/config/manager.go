package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/reversi/game/engine"
	"github.com/wricardo/reversi/game/service"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultName is the theme used when no other is requested
const DefaultName = "classic"

// extensions are tried in this order when a theme is loaded by name
var extensions = []string{".json", ".yaml", ".yml"}

// Manager handles theme loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	logger        *zap.Logger
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager. A missing directory is not
// an error: only the built-in classic theme is available then.
func NewManager(configDir string, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if info, err := os.Stat(configDir); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config directory: %w", err)
		}
		logger.Warn("config directory does not exist, using built-in themes", zap.String("dir", configDir))
	} else if !info.IsDir() {
		return nil, fmt.Errorf("config path is not a directory: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
		logger:    logger,
	}

	m.loadDefaultConfig()

	return m, nil
}

// LoadConfig loads a theme by name, with or without a file extension
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}
	key := strings.TrimSuffix(name, filepath.Ext(name))

	m.mu.RLock()
	if config, exists := m.configs[key]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[key]; exists {
		return config, nil
	}

	config, err := m.readConfig(name)
	if errors.Is(err, ErrConfigNotFound) && key == DefaultName {
		config, err = engine.DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	m.configs[key] = config
	return config, nil
}

// validName accepts plain file names only, so lookups stay inside the config directory
func validName(name string) bool {
	if name == "" || name == "." || strings.Contains(name, "..") {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

// readConfig finds the theme file and decodes it by extension
func (m *Manager) readConfig(name string) (*engine.GameConfig, error) {
	candidates := []string{name}
	if ext := filepath.Ext(name); !isConfigExt(ext) {
		candidates = candidates[:0]
		for _, ext := range extensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, filename := range candidates {
		path := filepath.Join(m.configDir, filename)

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		config, err := decode(filename, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filename, err)
		}
		if err := engine.ValidateGameConfig(config); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filename, err)
		}

		m.logger.Debug("loaded theme", zap.String("file", path), zap.String("name", config.Name))
		return config, nil
	}

	return nil, ErrConfigNotFound
}

// decode parses JSON or YAML depending on the file extension
func decode(filename string, data []byte) (*engine.GameConfig, error) {
	var config engine.GameConfig

	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	}

	return &config, nil
}

func isConfigExt(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ListConfigs returns information about all available themes
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !isConfigExt(filepath.Ext(entry.Name())) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if seen[id] {
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			m.logger.Warn("skipping invalid theme", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		seen[id] = true

		configs = append(configs, configInfo(entry.Name(), id, config))
	}

	if !seen[DefaultName] {
		configs = append(configs, configInfo("", DefaultName, engine.DefaultConfig()))
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].ConfigID < configs[j].ConfigID })
	return configs, nil
}

func configInfo(filename, id string, config *engine.GameConfig) *service.ConfigInfo {
	return &service.ConfigInfo{
		Filename:    filename,
		ConfigID:    id,
		Name:        config.Name,
		Description: config.Description,
		FirstPlayer: config.FirstPlayer,
	}
}

// GetDefault returns the default theme
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default theme by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached theme so files are read again
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	m.loadDefaultConfig()
}

// loadDefaultConfig loads classic from disk, falling back to the built-in theme
func (m *Manager) loadDefaultConfig() {
	config, err := m.LoadConfig(DefaultName)
	if err != nil {
		m.logger.Warn("failed to load default theme, using built-in", zap.Error(err))
		config = engine.DefaultConfig()
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}
