package config

import "time"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Theme modes accepted by UIConfig.Theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const (
	defaultKey           = "notes"
	defaultSQLiteDriver  = "sqlite"
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDatabase = "jot"
	defaultTimeout       = 5 * time.Second
	defaultDateFormat    = "Jan 2, 2006, 03:04 PM"
	defaultDataDir       = "~/.local/share/jot"
)

// Config is the root configuration structure.
type Config struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	UI     UIConfig     `json:"ui" yaml:"ui"`
	Keymap KeymapConfig `json:"keymap" yaml:"keymap"`
}

// KeymapConfig holds key binding overrides (command -> comma-separated keys).
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides" yaml:"overrides"`
}

// StoreConfig selects and configures the key-value backend.
type StoreConfig struct {
	Backend       string        `json:"backend" yaml:"backend"`             // file, sqlite or mongo
	Dir           string        `json:"dir" yaml:"dir"`                     // data directory (supports ~ expansion)
	Key           string        `json:"key" yaml:"key"`                     // key holding the note sequence
	SQLiteDriver  string        `json:"sqliteDriver" yaml:"sqliteDriver"`   // "sqlite" (pure Go) or "sqlite3" (cgo)
	MongoURI      string        `json:"mongoURI" yaml:"mongoURI"`           // mongo backend connection string
	MongoDatabase string        `json:"mongoDatabase" yaml:"mongoDatabase"` // mongo backend database
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`             // per-operation backend timeout
}

// UIConfig configures the interactive view.
type UIConfig struct {
	Theme       string `json:"theme" yaml:"theme"`             // auto, light or dark
	ShowPreview bool   `json:"showPreview" yaml:"showPreview"` // preview pane on wide terminals
	Watch       bool   `json:"watch" yaml:"watch"`             // reload on external changes (file backend)
	DateFormat  string `json:"dateFormat" yaml:"dateFormat"`   // Go time layout for list timestamps

	// Colors overrides palette entries by name (e.g. "primary": "#FF0000")
	Colors map[string]string `json:"colors,omitempty" yaml:"colors,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:       BackendFile,
			Dir:           ExpandPath(defaultDataDir),
			Key:           defaultKey,
			SQLiteDriver:  defaultSQLiteDriver,
			MongoURI:      defaultMongoURI,
			MongoDatabase: defaultMongoDatabase,
			Timeout:       defaultTimeout,
		},
		UI: UIConfig{
			Theme:       ThemeAuto,
			ShowPreview: true,
			Watch:       true,
			DateFormat:  defaultDateFormat,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
	}
}

// Validate checks the configuration for errors.
// Recoverable values are reset to their defaults.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite, BackendMongo:
	default:
		return &InvalidError{Field: "store.backend", Value: c.Store.Backend}
	}
	switch c.Store.SQLiteDriver {
	case "sqlite", "sqlite3":
	default:
		return &InvalidError{Field: "store.sqliteDriver", Value: c.Store.SQLiteDriver}
	}
	if c.Store.Key == "" {
		c.Store.Key = defaultKey
	}
	if c.Store.Timeout <= 0 {
		c.Store.Timeout = defaultTimeout
	}
	switch c.UI.Theme {
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		c.UI.Theme = ThemeAuto
	}
	if c.UI.DateFormat == "" {
		c.UI.DateFormat = defaultDateFormat
	}
	return nil
}

// InvalidError reports a config value that cannot be used.
type InvalidError struct {
	Field string
	Value string
}

func (e *InvalidError) Error() string {
	return "invalid " + e.Field + ": " + `"` + e.Value + `"`
}
