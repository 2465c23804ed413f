package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// saveConfig is the marshaling intermediary that uses string durations.
type saveConfig struct {
	Store  saveStoreConfig `json:"store" yaml:"store"`
	UI     UIConfig        `json:"ui" yaml:"ui"`
	Keymap KeymapConfig    `json:"keymap" yaml:"keymap"`
}

type saveStoreConfig struct {
	Backend       string `json:"backend" yaml:"backend"`
	Dir           string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Key           string `json:"key,omitempty" yaml:"key,omitempty"`
	SQLiteDriver  string `json:"sqliteDriver,omitempty" yaml:"sqliteDriver,omitempty"`
	MongoURI      string `json:"mongoURI,omitempty" yaml:"mongoURI,omitempty"`
	MongoDatabase string `json:"mongoDatabase,omitempty" yaml:"mongoDatabase,omitempty"`
	Timeout       string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// toSaveConfig converts Config to the serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Store: saveStoreConfig{
			Backend:       cfg.Store.Backend,
			Dir:           cfg.Store.Dir,
			Key:           cfg.Store.Key,
			SQLiteDriver:  cfg.Store.SQLiteDriver,
			MongoURI:      cfg.Store.MongoURI,
			MongoDatabase: cfg.Store.MongoDatabase,
			Timeout:       cfg.Store.Timeout.String(),
		},
		UI:     cfg.UI,
		Keymap: cfg.Keymap,
	}
}

// Save writes the config to path, as YAML for .yaml/.yml paths and JSON
// otherwise. If path is empty, uses ~/.config/jot/config.json.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	sc := toSaveConfig(cfg)
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(sc)
	} else {
		data, err = json.MarshalIndent(sc, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
