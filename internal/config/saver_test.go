package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSave_JSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := Default()
	cfg.Store.Backend = BackendSQLite
	cfg.Store.Dir = dir
	cfg.Store.Timeout = 3 * time.Second
	cfg.UI.ShowPreview = false

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}
	if _, ok := raw["store"]; !ok {
		t.Error("Save() did not write 'store' key")
	}
	if _, ok := raw["ui"]; !ok {
		t.Error("Save() did not write 'ui' key")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Store.Backend != BackendSQLite {
		t.Errorf("got backend %q, want 'sqlite'", loaded.Store.Backend)
	}
	if loaded.Store.Timeout != 3*time.Second {
		t.Errorf("got timeout %v, want 3s", loaded.Store.Timeout)
	}
	if loaded.UI.ShowPreview {
		t.Error("showPreview should survive as false")
	}
}

func TestSave_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := Default()
	cfg.UI.Theme = ThemeDark
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.UI.Theme != ThemeDark {
		t.Errorf("got theme %q, want 'dark'", loaded.UI.Theme)
	}
}
