package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Store.Backend != BackendFile {
		t.Errorf("got backend %q, want 'file'", cfg.Store.Backend)
	}
	if cfg.Store.Key != "notes" {
		t.Errorf("got key %q, want 'notes'", cfg.Store.Key)
	}
	if cfg.Store.Timeout != 5*time.Second {
		t.Errorf("got timeout %v, want 5s", cfg.Store.Timeout)
	}
	if cfg.UI.Theme != ThemeAuto {
		t.Errorf("got theme %q, want 'auto'", cfg.UI.Theme)
	}
	if !cfg.UI.ShowPreview {
		t.Error("preview should be shown by default")
	}
	if !cfg.UI.Watch {
		t.Error("watch should be enabled by default")
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".local/share/jot"); cfg.Store.Dir != want {
		t.Errorf("got dir %q, want %q", cfg.Store.Dir, want)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Error("should return default config")
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{
		"store": {
			"backend": "SQLite",
			"dir": "` + dir + `",
			"timeout": "2s"
		},
		"ui": {
			"showPreview": false,
			"theme": "light",
			"colors": {"primary": "#FF0000"}
		},
		"keymap": {
			"overrides": {"new": "a"}
		}
	}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("got backend %q, want 'sqlite'", cfg.Store.Backend)
	}
	if cfg.Store.Dir != dir {
		t.Errorf("got dir %q, want %q", cfg.Store.Dir, dir)
	}
	if cfg.Store.Timeout != 2*time.Second {
		t.Errorf("got timeout %v, want 2s", cfg.Store.Timeout)
	}
	if cfg.UI.ShowPreview {
		t.Error("showPreview should be false")
	}
	if cfg.UI.Theme != ThemeLight {
		t.Errorf("got theme %q, want 'light'", cfg.UI.Theme)
	}
	// Default values should still be present
	if !cfg.UI.Watch {
		t.Error("watch should still be enabled (default)")
	}
	if cfg.Store.Key != "notes" {
		t.Errorf("got key %q, want default 'notes'", cfg.Store.Key)
	}
	if cfg.UI.Colors["primary"] != "#FF0000" {
		t.Errorf("got colors %v, want primary override", cfg.UI.Colors)
	}
	if cfg.Keymap.Overrides["new"] != "a" {
		t.Errorf("got overrides %v, want new=a", cfg.Keymap.Overrides)
	}
}

func TestLoadFrom_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`store:
  backend: mongo
  mongoURI: mongodb://db:27017
  mongoDatabase: notesdb
ui:
  watch: false
  dateFormat: "2006-01-02"
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Store.Backend != BackendMongo {
		t.Errorf("got backend %q, want 'mongo'", cfg.Store.Backend)
	}
	if cfg.Store.MongoURI != "mongodb://db:27017" {
		t.Errorf("got uri %q", cfg.Store.MongoURI)
	}
	if cfg.Store.MongoDatabase != "notesdb" {
		t.Errorf("got database %q, want 'notesdb'", cfg.Store.MongoDatabase)
	}
	if cfg.UI.Watch {
		t.Error("watch should be false")
	}
	if cfg.UI.DateFormat != "2006-01-02" {
		t.Errorf("got date format %q", cfg.UI.DateFormat)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{invalid`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("should error on invalid JSON")
	}
}

func TestLoadFrom_UnknownBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{"store":{"backend":"redis"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	var invalid *InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidError", err)
	}
	if invalid.Field != "store.backend" {
		t.Errorf("got field %q, want 'store.backend'", invalid.Field)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"store":{"backend":"file"},"ui":{"theme":"light"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvBackend, "sqlite")
	t.Setenv(EnvDir, dir)
	t.Setenv(EnvTheme, "DARK")
	t.Setenv(EnvSQLiteDriver, "sqlite3")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("got backend %q, want env 'sqlite'", cfg.Store.Backend)
	}
	if cfg.Store.Dir != dir {
		t.Errorf("got dir %q, want %q", cfg.Store.Dir, dir)
	}
	if cfg.UI.Theme != ThemeDark {
		t.Errorf("got theme %q, want 'dark'", cfg.UI.Theme)
	}
	if cfg.Store.SQLiteDriver != "sqlite3" {
		t.Errorf("got driver %q, want 'sqlite3'", cfg.Store.SQLiteDriver)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("JOT_MONGO_DB=fromdotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvMongoDB, "")
	os.Unsetenv(EnvMongoDB)

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
	if got := os.Getenv(EnvMongoDB); got != "fromdotenv" {
		t.Errorf("got %q, want 'fromdotenv'", got)
	}

	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing file should not error: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input  string
		expect string
	}{
		{"~/.local/share/jot", filepath.Join(home, ".local/share/jot")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tc := range tests {
		got := ExpandPath(tc.input)
		if got != tc.expect {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.expect)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Timeout = -1
	cfg.Store.Key = ""
	cfg.UI.Theme = "sepia"
	cfg.UI.DateFormat = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	if cfg.Store.Timeout != 5*time.Second {
		t.Errorf("got %v, want 5s after validation", cfg.Store.Timeout)
	}
	if cfg.Store.Key != "notes" {
		t.Errorf("got key %q, want 'notes'", cfg.Store.Key)
	}
	if cfg.UI.Theme != ThemeAuto {
		t.Errorf("got theme %q, want 'auto'", cfg.UI.Theme)
	}
	if cfg.UI.DateFormat == "" {
		t.Error("date format should be reset")
	}
}

func TestValidate_BadDriver(t *testing.T) {
	cfg := Default()
	cfg.Store.SQLiteDriver = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Error("should reject unknown sqlite driver")
	}
}

func TestLoadFrom_BadTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"store": {"timeout": "soon"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	var invalid *InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want *InvalidError", err)
	}
	if invalid.Field != "store.timeout" || invalid.Value != "soon" {
		t.Errorf("got %+v", invalid)
	}
}
