// Package config provides configuration management for the ecc CLI tool:
// named code profiles, defaults, and UI settings, persisted as JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fieldlab/ecc/pkg/galois"
)

// Config is the main configuration structure.
type Config struct {
	Version  string             `json:"version"`
	Defaults DefaultSettings    `json:"defaults"`
	Profiles map[string]Profile `json:"profiles,omitempty"`
	UI       UIConfig           `json:"ui"`
}

// DefaultSettings contains default values for common operations.
type DefaultSettings struct {
	Profile string `json:"profile"` // Default: rs-255-223
}

// UIConfig contains user interface settings.
type UIConfig struct {
	UseColor  bool   `json:"use_color"` // Enable colored output
	Verbosity string `json:"verbosity"` // quiet, normal, verbose
}

// Profile names a fully parametrized code. For BCH codes N and K are
// derived from M and T; for Reed-Solomon codes N, K and M are all
// required and T is derived. PrimitivePoly of 0 means the standard
// polynomial for M.
type Profile struct {
	Code          string `json:"code"` // bch or rs
	N             int    `json:"n,omitempty"`
	K             int    `json:"k,omitempty"`
	M             int    `json:"m"`
	T             int    `json:"t,omitempty"`
	PrimitivePoly uint32 `json:"primitive_poly,omitempty"`
	Description   string `json:"description,omitempty"`
}

// Validate checks a profile for internal consistency. Field-level code
// constraints (e.g. primitivity of the polynomial) are checked by the
// codec constructors.
func (p Profile) Validate() error {
	switch p.Code {
	case "bch":
		if p.T < 1 {
			return fmt.Errorf("bch profile needs t >= 1, got %d", p.T)
		}
	case "rs":
		if p.N < 3 || p.K < 1 || p.K >= p.N {
			return fmt.Errorf("rs profile needs 0 < k < n, got n=%d k=%d", p.N, p.K)
		}
	default:
		return fmt.Errorf("unknown code type %q (want bch or rs)", p.Code)
	}
	if p.M < galois.MinOrder || p.M > galois.MaxOrder {
		return fmt.Errorf("field order m=%d out of range [%d, %d]", p.M, galois.MinOrder, galois.MaxOrder)
	}
	return nil
}

// BuiltinProfiles returns the profiles available without any config file.
func BuiltinProfiles() map[string]Profile {
	return map[string]Profile{
		"bch-7-1": {
			Code: "bch", M: 3, T: 1,
			Description: "BCH(7,4), single-error-correcting",
		},
		"bch-15-2": {
			Code: "bch", M: 4, T: 2,
			Description: "BCH(15,7), double-error-correcting",
		},
		"bch-31-3": {
			Code: "bch", M: 5, T: 3,
			Description: "BCH(31,16), triple-error-correcting",
		},
		"rs-15-11": {
			Code: "rs", N: 15, K: 11, M: 4,
			Description: "RS(15,11) over GF(16), corrects 2 symbols",
		},
		"rs-255-223": {
			Code: "rs", N: 255, K: 223, M: 8,
			Description: "RS(255,223) over GF(256), corrects 16 symbols",
		},
		"rs-255-239": {
			Code: "rs", N: 255, K: 239, M: 8,
			Description: "RS(255,239) over GF(256), corrects 8 symbols",
		},
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			Profile: "rs-255-223",
		},
		UI: UIConfig{
			UseColor:  true,
			Verbosity: "normal",
		},
	}
}

// Manager handles configuration loading and saving.
type Manager struct {
	config     *Config
	configPath string
}

// NewManager creates a configuration manager rooted at the given path.
// An empty path selects ~/.ecc/config.json. A missing file yields the
// default configuration without touching the disk.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate home directory: %w", err)
		}
		path = filepath.Join(home, ".ecc", "config.json")
	}

	m := &Manager{configPath: path}
	if err := m.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		m.config = DefaultConfig()
	}
	return m, nil
}

// Load reads the configuration from disk.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	for name, profile := range config.Profiles {
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}

	m.config = config
	return nil
}

// Save writes the configuration to disk, creating the directory if needed.
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Config returns the current configuration.
func (m *Manager) Config() *Config {
	return m.config
}

// Profile looks up a named profile, searching the user configuration
// first and the built-in set second.
func (m *Manager) Profile(name string) (Profile, error) {
	if p, ok := m.config.Profiles[name]; ok {
		return p, nil
	}
	if p, ok := BuiltinProfiles()[name]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("unknown profile %q", name)
}

// SetProfile adds or replaces a named profile in the user configuration.
func (m *Manager) SetProfile(name string, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if m.config.Profiles == nil {
		m.config.Profiles = make(map[string]Profile)
	}
	m.config.Profiles[name] = p
	return nil
}
