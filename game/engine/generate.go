package engine

import "math/rand"

const (
	// generateAttempts bounds how many times generation restarts with a
	// fresh seed. A random 15-cell seed is occasionally unsolvable.
	generateAttempts = 20

	// seedPlacementRetries bounds random (cell, digit) picks per seed cell.
	seedPlacementRetries = 50
)

// Generate produces a fresh puzzle under the given rules: it seeds
// rules.SeedCells random constraint-consistent cells, completes the grid with
// the backtracking solver, then removes rules.RemovedCells filled cells
// uniformly at random to form the playable board.
//
// It returns ErrGenerationFailed if no seeding attempt could be solved within
// the step budget; the caller never sees a board inconsistent with its
// solution.
func Generate(rules *Rules) (*Puzzle, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < generateAttempts; attempt++ {
		var grid Grid
		if !seedGrid(&grid, rules.SeedCells) {
			continue
		}

		steps := solveStepBudget
		if !solve(&grid, &steps) {
			continue
		}

		puz := &Puzzle{Board: grid, Solution: grid}
		removeCells(&puz.Board, rules.RemovedCells)
		return puz, nil
	}

	return nil, ErrGenerationFailed
}

// seedGrid places count random digits that respect the row/column/box
// constraints. Each placement gets a bounded number of random retries;
// seeding fails (returns false) if a slot cannot be found, and the caller
// restarts with an empty grid.
func seedGrid(g *Grid, count int) bool {
	for placed := 0; placed < count; placed++ {
		ok := false
		for retry := 0; retry < seedPlacementRetries; retry++ {
			row, col := rand.Intn(GridSize), rand.Intn(GridSize)
			if g[row][col] != 0 {
				continue
			}
			digit := rand.Intn(GridSize) + 1
			if IsValidPlacement(g, row, col, digit) {
				g[row][col] = digit
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// removeCells blanks count filled cells chosen uniformly at random.
func removeCells(g *Grid, count int) {
	positions := rand.Perm(CellCount)
	removed := 0
	for _, pos := range positions {
		if removed == count {
			return
		}
		r, c := pos/GridSize, pos%GridSize
		if g[r][c] != 0 {
			g[r][c] = 0
			removed++
		}
	}
}
