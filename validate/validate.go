// Command validate provides a small CLI that validates ruleset preset JSON
// files in the configs directory. It checks:
//   - JSON structure and required fields
//   - Seed and removed cell counts against board capacity
//   - Scoring values (no negative points, penalties, or bonuses)
//   - Playability: the generator can actually produce a puzzle under the rules
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sudokuarena/server/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validatePreset loads and validates a single ruleset preset file.
// It performs structural checks, range checks, and a generation dry run.
func validatePreset(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var rules engine.Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateRules(&rules); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid rules: %v", err))
		return result
	}

	// Playability dry run. A structurally valid ruleset can still ask the
	// generator for something it cannot deliver within its step budget.
	puzzle, err := engine.Generate(&rules)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Generation dry run failed: %v", err))
		return result
	}

	givens := puzzle.Board.FilledCells()
	expectedGivens := engine.CellCount - rules.RemovedCells
	if givens != expectedGivens {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Generated board has %d givens, expected %d", givens, expectedGivens))
		return result
	}

	// Add informational data
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", rules.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Seed cells: %d", rules.SeedCells))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Removed cells: %d (%d givens)", rules.RemovedCells, expectedGivens))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Scoring: +%d correct, -%d wrong, +%d finish bonus", rules.CorrectPoints, rules.WrongPenalty, rules.FinishBonus))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Max score: %d", maxScore(&rules)))

	return result
}

// maxScore is the best possible score under a ruleset: every blank filled
// correctly on the first try plus the finish bonus.
func maxScore(rules *engine.Rules) int {
	return rules.RemovedCells*rules.CorrectPoints + rules.FinishBonus
}

// main scans the configs directory (or the directory given as the first
// argument) for *.json files and validates each one, printing a concise
// report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding preset files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No preset files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validatePreset(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All presets are valid!")
	} else {
		fmt.Println("❌ Some presets have errors")
		os.Exit(1)
	}
}
