package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/jot"
	configFile = "config.json"
)

// Environment overrides, applied after the config file.
const (
	EnvDir          = "JOT_DIR"
	EnvBackend      = "JOT_BACKEND"
	EnvSQLiteDriver = "JOT_SQLITE_DRIVER"
	EnvMongoURI     = "JOT_MONGO_URI"
	EnvMongoDB      = "JOT_MONGO_DB"
	EnvTheme        = "JOT_THEME"
)

// rawConfig is the unmarshaling intermediary. Pointer fields distinguish
// "unset" from the zero value.
type rawConfig struct {
	Store  rawStoreConfig `json:"store" yaml:"store"`
	UI     rawUIConfig    `json:"ui" yaml:"ui"`
	Keymap KeymapConfig   `json:"keymap" yaml:"keymap"`
}

type rawStoreConfig struct {
	Backend       string `json:"backend" yaml:"backend"`
	Dir           string `json:"dir" yaml:"dir"`
	Key           string `json:"key" yaml:"key"`
	SQLiteDriver  string `json:"sqliteDriver" yaml:"sqliteDriver"`
	MongoURI      string `json:"mongoURI" yaml:"mongoURI"`
	MongoDatabase string `json:"mongoDatabase" yaml:"mongoDatabase"`
	Timeout       string `json:"timeout" yaml:"timeout"`
}

type rawUIConfig struct {
	Theme       string            `json:"theme" yaml:"theme"`
	ShowPreview *bool             `json:"showPreview" yaml:"showPreview"`
	Watch       *bool             `json:"watch" yaml:"watch"`
	DateFormat  string            `json:"dateFormat" yaml:"dateFormat"`
	Colors      map[string]string `json:"colors" yaml:"colors"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/jot/config.json, or config.yaml next to it.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfig()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var raw rawConfig
			if err := unmarshal(path, data, &raw); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			if err := mergeConfig(cfg, &raw); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults if no config file
		default:
			return nil, err
		}
	}

	applyEnv(cfg)

	cfg.Store.Dir = ExpandPath(cfg.Store.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func unmarshal(path string, data []byte, raw *rawConfig) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, raw)
	}
	return json.Unmarshal(data, raw)
}

// findConfig returns the first existing default config file, or the JSON
// path when none exists.
func findConfig() string {
	def := ConfigPath()
	if def == "" {
		return ""
	}
	dir := filepath.Dir(def)
	for _, name := range []string{configFile, "config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return def
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) error {
	// Store
	if raw.Store.Backend != "" {
		cfg.Store.Backend = strings.ToLower(raw.Store.Backend)
	}
	if raw.Store.Dir != "" {
		cfg.Store.Dir = raw.Store.Dir
	}
	if raw.Store.Key != "" {
		cfg.Store.Key = raw.Store.Key
	}
	if raw.Store.SQLiteDriver != "" {
		cfg.Store.SQLiteDriver = raw.Store.SQLiteDriver
	}
	if raw.Store.MongoURI != "" {
		cfg.Store.MongoURI = raw.Store.MongoURI
	}
	if raw.Store.MongoDatabase != "" {
		cfg.Store.MongoDatabase = raw.Store.MongoDatabase
	}
	if raw.Store.Timeout != "" {
		d, err := time.ParseDuration(raw.Store.Timeout)
		if err != nil {
			return &InvalidError{Field: "store.timeout", Value: raw.Store.Timeout}
		}
		cfg.Store.Timeout = d
	}

	// UI
	if raw.UI.Theme != "" {
		cfg.UI.Theme = strings.ToLower(raw.UI.Theme)
	}
	if raw.UI.ShowPreview != nil {
		cfg.UI.ShowPreview = *raw.UI.ShowPreview
	}
	if raw.UI.Watch != nil {
		cfg.UI.Watch = *raw.UI.Watch
	}
	if raw.UI.DateFormat != "" {
		cfg.UI.DateFormat = raw.UI.DateFormat
	}
	if raw.UI.Colors != nil {
		if cfg.UI.Colors == nil {
			cfg.UI.Colors = make(map[string]string, len(raw.UI.Colors))
		}
		for k, v := range raw.UI.Colors {
			cfg.UI.Colors[k] = v
		}
	}

	// Keymap
	if raw.Keymap.Overrides != nil {
		for k, v := range raw.Keymap.Overrides {
			cfg.Keymap.Overrides[k] = v
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDir); v != "" {
		cfg.Store.Dir = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Store.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvSQLiteDriver); v != "" {
		cfg.Store.SQLiteDriver = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		cfg.Store.MongoURI = v
	}
	if v := os.Getenv(EnvMongoDB); v != "" {
		cfg.Store.MongoDatabase = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.UI.Theme = strings.ToLower(v)
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the default JSON config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
