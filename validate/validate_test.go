package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sudokuarena/server/game/engine"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), "preset_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write preset: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func hasError(result ValidationResult, substr string) bool {
	for _, err := range result.Errors {
		if strings.Contains(err, substr) {
			return true
		}
	}
	return false
}

func TestValidatePreset_ValidPreset(t *testing.T) {
	validPreset := `{
		"name": "Test Preset",
		"description": "Test ruleset",
		"seed_cells": 15,
		"removed_cells": 40,
		"correct_points": 10,
		"wrong_penalty": 2,
		"finish_bonus": 100
	}`

	path := writePreset(t, validPreset)

	result := validatePreset(path)
	if !result.Valid {
		t.Errorf("Expected valid preset, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}

	if !hasError(result, "41 givens") {
		t.Errorf("Expected givens summary in info lines, got: %v", result.Errors)
	}
}

func TestValidatePreset_InvalidJSON(t *testing.T) {
	path := writePreset(t, `{"name": "test", invalid json}`)

	result := validatePreset(path)
	if result.Valid {
		t.Error("Expected invalid preset due to bad JSON")
	}
	if !hasError(result, "Invalid JSON") {
		t.Error("Expected 'Invalid JSON' error")
	}
}

func TestValidatePreset_MissingFile(t *testing.T) {
	result := validatePreset("/non/existent/preset.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !hasError(result, "Failed to read file") {
		t.Error("Expected 'Failed to read file' error")
	}
}

func TestValidatePreset_MissingName(t *testing.T) {
	path := writePreset(t, `{
		"seed_cells": 15,
		"removed_cells": 40,
		"correct_points": 10,
		"wrong_penalty": 2,
		"finish_bonus": 100
	}`)

	result := validatePreset(path)
	if result.Valid {
		t.Error("Expected invalid preset without a name")
	}
	if !hasError(result, "Invalid rules") {
		t.Errorf("Expected 'Invalid rules' error, got: %v", result.Errors)
	}
}

func TestValidatePreset_BadSeedCells(t *testing.T) {
	path := writePreset(t, `{
		"name": "Bad Seeds",
		"seed_cells": 0,
		"removed_cells": 40,
		"correct_points": 10,
		"wrong_penalty": 2,
		"finish_bonus": 100
	}`)

	result := validatePreset(path)
	if result.Valid {
		t.Error("Expected invalid preset with zero seed cells")
	}
	if !hasError(result, "Invalid rules") {
		t.Errorf("Expected 'Invalid rules' error, got: %v", result.Errors)
	}
}

func TestValidatePreset_BadRemovedCells(t *testing.T) {
	path := writePreset(t, `{
		"name": "Too Many Blanks",
		"seed_cells": 15,
		"removed_cells": 81,
		"correct_points": 10,
		"wrong_penalty": 2,
		"finish_bonus": 100
	}`)

	result := validatePreset(path)
	if result.Valid {
		t.Error("Expected invalid preset that removes every cell")
	}
	if !hasError(result, "Invalid rules") {
		t.Errorf("Expected 'Invalid rules' error, got: %v", result.Errors)
	}
}

func TestValidatePreset_NegativeScoring(t *testing.T) {
	path := writePreset(t, `{
		"name": "Negative",
		"seed_cells": 15,
		"removed_cells": 40,
		"correct_points": -10,
		"wrong_penalty": 2,
		"finish_bonus": 100
	}`)

	result := validatePreset(path)
	if result.Valid {
		t.Error("Expected invalid preset with negative scoring")
	}
	if !hasError(result, "Invalid rules") {
		t.Errorf("Expected 'Invalid rules' error, got: %v", result.Errors)
	}
}

func TestMaxScore(t *testing.T) {
	rules := engine.DefaultRules()
	if got := maxScore(rules); got != 500 {
		t.Errorf("Expected max score 500 for default rules, got %d", got)
	}

	rules.RemovedCells = 2
	rules.FinishBonus = 50
	if got := maxScore(rules); got != 70 {
		t.Errorf("Expected max score 70, got %d", got)
	}
}
