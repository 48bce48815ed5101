package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSaveDir is used when no save directory is configured.
const DefaultSaveDir = ".saves"

const inventoryFileName = "inventory.yaml"

var (
	// ErrNoSave is returned when a named save does not exist.
	ErrNoSave = errors.New("save not found")
	// ErrBadSaveName is returned for names that are not a single plain
	// path element inside the save directory.
	ErrBadSaveName = errors.New("invalid save name")
)

// checkSaveName accepts one local path element that does not start with a dot.
func checkSaveName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) ||
		!filepath.IsLocal(name) || filepath.Base(name) != name {
		return fmt.Errorf("%q: %w", name, ErrBadSaveName)
	}
	return nil
}

// SaveInventory writes inv to <dir>/<name>/inventory.yaml.
func SaveInventory(dir, name string, inv InventoryFile) error {
	if err := checkSaveName(name); err != nil {
		return err
	}
	slot := filepath.Join(dir, name)
	if err := os.MkdirAll(slot, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(inv)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(slot, inventoryFileName), data, 0644)
}

// LoadInventory reads the inventory saved under name.
func LoadInventory(dir, name string) (InventoryFile, error) {
	if err := checkSaveName(name); err != nil {
		return InventoryFile{}, err
	}
	data, err := os.ReadFile(filepath.Join(dir, name, inventoryFileName))
	if errors.Is(err, os.ErrNotExist) {
		return InventoryFile{}, fmt.Errorf("%s: %w", name, ErrNoSave)
	}
	if err != nil {
		return InventoryFile{}, err
	}

	var inv InventoryFile
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return InventoryFile{}, fmt.Errorf("failed to parse save %s: %w", name, err)
	}
	if inv.Items == nil {
		inv.Items = map[string]int{}
	}
	return inv, nil
}

// ListSaves returns the names of the saves under dir.
func ListSaves(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var saves []string
	for _, entry := range entries {
		if entry.IsDir() {
			// inventory.yaml marks a valid save
			p := filepath.Join(dir, entry.Name(), inventoryFileName)
			if _, err := os.Stat(p); err == nil {
				saves = append(saves, entry.Name())
			}
		}
	}
	return saves, nil
}
