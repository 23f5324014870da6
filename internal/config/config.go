// Package config loads vida's configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/vida/config.yaml
//   - Data:   ~/.local/share/vida/ (store files)
//
// Environment variables override the file: VIDA_CONFIG, VIDA_DATA_DIR,
// VIDA_STORE.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"vida/internal/model"
)

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// DefaultTheme is the glamour style markdown views render with when the
// config does not pick one.
const DefaultTheme = "dark"

// Config is the top-level configuration.
type Config struct {
	DataDir string              `yaml:"data_dir,omitempty" env:"VIDA_DATA_DIR"`
	Store   string              `yaml:"store,omitempty" env:"VIDA_STORE"` // json|sqlite
	Theme   string              `yaml:"theme,omitempty" env:"VIDA_THEME"` // glamour style for markdown views
	Seeds   map[string][]string `yaml:"seeds,omitempty" env:"-"`          // area -> default goal texts
}

// DefaultConfig returns the built-in configuration, including the
// category-specific seed lists a fresh store falls back to.
func DefaultConfig() Config {
	return Config{
		Store: StoreJSON,
		Theme: DefaultTheme,
		Seeds: map[string][]string{
			string(model.AreaPhysical): {
				"Caminar 30 minutos",
				"Beber 2 litros de agua",
				"Dormir 8 horas",
			},
			string(model.AreaFinancial): {
				"Revisar los gastos de la semana",
				"Ahorrar el 10% del ingreso",
			},
			string(model.AreaFamily): {
				"Llamar a mamá",
				"Cena en familia sin pantallas",
			},
		},
	}
}

// ConfigDir returns the XDG config directory for vida.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "vida")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vida")
}

// DataDir returns the XDG data directory for vida.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "vida")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "vida")
}

// Load reads config.yaml (VIDA_CONFIG overrides the path), fills gaps with
// defaults and applies environment overrides. A missing file is not an
// error.
func Load() (Config, error) {
	path := os.Getenv("VIDA_CONFIG")
	if path == "" {
		if dir := ConfigDir(); dir != "" {
			path = filepath.Join(dir, "config.yaml")
		}
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom reads config from a specific path, merging over the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Store == "" {
		cfg.Store = StoreJSON
	}
	if cfg.Store != StoreJSON && cfg.Store != StoreSQLite {
		return Config{}, fmt.Errorf("unknown store backend %q (want json or sqlite)", cfg.Store)
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.Seeds == nil {
		cfg.Seeds = DefaultConfig().Seeds
	}
	return cfg, nil
}

// ResolvedDataDir returns the configured data dir, or the XDG default.
func (c Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DataDir()
}

// SeedItems builds the default item set for an area, each call with fresh
// ids so loaded collections never share entries with the template.
func (c Config) SeedItems(area model.Area) []model.Item {
	texts := c.Seeds[string(area)]
	items := make([]model.Item, 0, len(texts))
	for _, text := range texts {
		items = append(items, model.Item{ID: uuid.NewString(), Text: text})
	}
	return items
}
