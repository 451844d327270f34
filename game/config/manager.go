package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sudokuarena/server/game/engine"
)

var (
	ErrRulesNotFound = errors.New("rules preset not found")
	ErrInvalidRules  = errors.New("invalid rules preset")
)

// PresetInfo describes one available rules preset.
type PresetInfo struct {
	PresetID     string `json:"preset_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SeedCells    int    `json:"seed_cells"`
	RemovedCells int    `json:"removed_cells"`
}

// Manager handles rules preset loading and caching.
type Manager struct {
	configDir    string
	defaultRules *engine.Rules
	presets      map[string]*engine.Rules
	mu           sync.RWMutex
}

// NewManager creates a preset manager rooted at configDir. The directory may
// be absent; the built-in default preset is always available.
func NewManager(configDir string) (*Manager, error) {
	m := &Manager{
		configDir:    configDir,
		defaultRules: engine.DefaultRules(),
		presets:      make(map[string]*engine.Rules),
	}
	return m, nil
}

// Default returns the built-in classic ruleset.
func (m *Manager) Default() *engine.Rules {
	return m.defaultRules
}

// Load returns the preset with the given id, reading and caching it from
// disk on first use. The empty id resolves to the default preset.
func (m *Manager) Load(id string) (*engine.Rules, error) {
	if id == "" || id == "default" {
		return m.defaultRules, nil
	}

	m.mu.RLock()
	if rules, ok := m.presets[id]; ok {
		m.mu.RUnlock()
		return rules, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check after acquiring the write lock.
	if rules, ok := m.presets[id]; ok {
		return rules, nil
	}

	filename := id
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRulesNotFound
		}
		return nil, fmt.Errorf("failed to read preset %s: %w", id, err)
	}

	var rules engine.Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRules, id, err)
	}
	if err := engine.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRules, id, err)
	}

	m.presets[id] = &rules
	return &rules, nil
}

// List returns the built-in default plus every preset file in the directory.
// Unreadable or invalid files are skipped rather than failing the listing.
func (m *Manager) List() ([]PresetInfo, error) {
	result := []PresetInfo{presetInfo("default", m.defaultRules)}

	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		rules, err := m.Load(id)
		if err != nil {
			continue
		}
		result = append(result, presetInfo(id, rules))
	}

	return result, nil
}

func presetInfo(id string, rules *engine.Rules) PresetInfo {
	return PresetInfo{
		PresetID:     id,
		Name:         rules.Name,
		Description:  rules.Description,
		SeedCells:    rules.SeedCells,
		RemovedCells: rules.RemovedCells,
	}
}
