// Package state persists small view preferences between runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent view preferences. Notes themselves live in the
// configured store, never here.
type State struct {
	SelectedNote string `json:"selectedNote,omitempty"` // id of the note under the cursor
	HidePreview  bool   `json:"hidePreview,omitempty"`  // preview pane toggled off
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// InitWithDir loads state from dir/state.json.
func InitWithDir(dir string) error {
	mu.Lock()
	path = filepath.Join(dir, "state.json")
	mu.Unlock()
	return Load()
}

// Path returns the state file path, empty before InitWithDir.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return path
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk. It is a no-op before InitWithDir.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetSelectedNote returns the id of the last selected note.
func GetSelectedNote() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.SelectedNote
}

// SetSelectedNote saves the selected note id.
func SetSelectedNote(id string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	if current.SelectedNote == id {
		mu.Unlock()
		return nil
	}
	current.SelectedNote = id
	mu.Unlock()
	return Save()
}

// GetHidePreview reports whether the preview pane was toggled off.
func GetHidePreview() bool {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return false
	}
	return current.HidePreview
}

// SetHidePreview saves the preview pane toggle.
func SetHidePreview(hide bool) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.HidePreview = hide
	mu.Unlock()
	return Save()
}
