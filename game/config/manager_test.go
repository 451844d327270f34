package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writePreset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write preset fixture: %v", err)
	}
}

func TestLoadDefault(t *testing.T) {
	m, err := NewManager("nonexistent-dir")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	for _, id := range []string{"", "default"} {
		rules, err := m.Load(id)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", id, err)
		}
		if rules.SeedCells != 15 || rules.RemovedCells != 40 {
			t.Errorf("Load(%q) returned unexpected defaults: %+v", id, rules)
		}
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "blitz.json", `{
		"name": "Blitz",
		"description": "Fewer blanks for a faster race",
		"seed_cells": 15,
		"removed_cells": 25,
		"correct_points": 10,
		"wrong_penalty": 2,
		"finish_bonus": 100
	}`)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	rules, err := m.Load("blitz")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rules.Name != "Blitz" {
		t.Errorf("expected name Blitz, got %s", rules.Name)
	}
	if rules.RemovedCells != 25 {
		t.Errorf("expected 25 removed cells, got %d", rules.RemovedCells)
	}

	// Second load should hit the cache and return the same pointer.
	again, err := m.Load("blitz")
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if again != rules {
		t.Error("expected cached Load to return the same rules instance")
	}
}

func TestLoadNotFound(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	_, err = m.Load("no-such-preset")
	if !errors.Is(err, ErrRulesNotFound) {
		t.Errorf("expected ErrRulesNotFound, got %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "broken.json", `{"name": ""}`)
	writePreset(t, dir, "garbage.json", `not json at all`)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	for _, id := range []string{"broken", "garbage"} {
		_, err := m.Load(id)
		if !errors.Is(err, ErrInvalidRules) {
			t.Errorf("Load(%q): expected ErrInvalidRules, got %v", id, err)
		}
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "blitz.json", `{
		"name": "Blitz",
		"description": "Fewer blanks for a faster race",
		"seed_cells": 15,
		"removed_cells": 25,
		"correct_points": 10,
		"wrong_penalty": 2,
		"finish_bonus": 100
	}`)
	writePreset(t, dir, "broken.json", `{"name": ""}`)
	writePreset(t, dir, "notes.txt", `ignored`)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	presets, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	ids := make(map[string]bool)
	for _, p := range presets {
		ids[p.PresetID] = true
	}
	if !ids["default"] {
		t.Error("expected default preset in listing")
	}
	if !ids["blitz"] {
		t.Error("expected blitz preset in listing")
	}
	if ids["broken"] {
		t.Error("invalid preset should be skipped from listing")
	}
	if len(presets) != 2 {
		t.Errorf("expected 2 presets, got %d", len(presets))
	}
}

func TestListMissingDir(t *testing.T) {
	m, err := NewManager("nonexistent-dir")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	presets, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(presets) != 1 || presets[0].PresetID != "default" {
		t.Errorf("expected only the default preset, got %+v", presets)
	}
}
