// Command analyze prints quick, human-readable heuristics about ruleset
// preset files in the project's configs directory. For each preset it
// generates a handful of sample puzzles and summarizes givens per row,
// column, and box, digit frequency, and highlights boards that leave an
// entire box blank.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sudokuarena/server/game/engine"
)

// sampleCount is how many puzzles to generate per preset when gathering stats.
const sampleCount = 5

// BoardStats aggregates structural heuristics over one generated board.
type BoardStats struct {
	Givens      int
	DigitCounts [engine.GridSize + 1]int
	EmptyBoxes  int
	MinBoxGiven int
	MaxBoxGiven int
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No preset files found in %s\n", configDir)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzePreset(file)
	}
}

func analyzePreset(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var rules engine.Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	if err := engine.ValidateRules(&rules); err != nil {
		fmt.Printf("Invalid rules: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", rules.Name)
	fmt.Printf("Seed Cells: %d\n", rules.SeedCells)
	fmt.Printf("Removed Cells: %d (%d givens)\n", rules.RemovedCells, engine.CellCount-rules.RemovedCells)
	fmt.Printf("Scoring: +%d correct, -%d wrong, +%d finish bonus\n", rules.CorrectPoints, rules.WrongPenalty, rules.FinishBonus)

	emptyBoxBoards := 0
	minGivensInBox := engine.GridSize
	for i := 0; i < sampleCount; i++ {
		puzzle, err := engine.Generate(&rules)
		if err != nil {
			fmt.Printf("⚠️  WARNING: sample generation %d failed: %v\n", i+1, err)
			continue
		}

		stats := boardStats(&puzzle.Board)
		if stats.EmptyBoxes > 0 {
			emptyBoxBoards++
		}
		if stats.MinBoxGiven < minGivensInBox {
			minGivensInBox = stats.MinBoxGiven
		}
	}

	fmt.Printf("Samples generated: %d\n", sampleCount)
	fmt.Printf("Fewest givens seen in any box: %d\n", minGivensInBox)

	if emptyBoxBoards > 0 {
		fmt.Printf("⚠️  WARNING: %d/%d sample boards leave at least one box entirely blank\n", emptyBoxBoards, sampleCount)
		fmt.Printf("   Players start those boxes with no anchors; consider lowering removed_cells\n")
	} else {
		fmt.Printf("✅ Every sampled board keeps at least one given in each box\n")
	}
}

// boardStats computes structural heuristics for a single board.
func boardStats(g *engine.Grid) BoardStats {
	stats := BoardStats{MinBoxGiven: engine.GridSize * engine.GridSize}

	var boxGivens [engine.GridSize]int
	for r := 0; r < engine.GridSize; r++ {
		for c := 0; c < engine.GridSize; c++ {
			digit := g[r][c]
			if digit == 0 {
				continue
			}
			stats.Givens++
			stats.DigitCounts[digit]++
			boxGivens[boxIndex(r, c)]++
		}
	}

	for _, n := range boxGivens {
		if n == 0 {
			stats.EmptyBoxes++
		}
		if n < stats.MinBoxGiven {
			stats.MinBoxGiven = n
		}
		if n > stats.MaxBoxGiven {
			stats.MaxBoxGiven = n
		}
	}

	return stats
}

// boxIndex maps a cell to its 3x3 box, numbered 0-8 left to right, top to bottom.
func boxIndex(row, col int) int {
	return (row/engine.BoxSize)*engine.BoxSize + col/engine.BoxSize
}
