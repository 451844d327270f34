package engine

import "errors"

var (
	ErrNilRules        = errors.New("rules cannot be nil")
	ErrUnnamedRules    = errors.New("rules must have a name")
	ErrBadSeedCells    = errors.New("seed cell count out of range")
	ErrBadRemovedCells = errors.New("removed cell count out of range")
	ErrNegativeScoring = errors.New("scoring values must not be negative")

	// ErrGenerationFailed is returned when the solver cannot complete a
	// seeded grid within its budget. Callers never observe a partial or
	// invalid solution.
	ErrGenerationFailed = errors.New("puzzle generation failed")
)

// solveStepBudget bounds the backtracking search. A full 81-cell grid from a
// valid partial seed solves in a few thousand steps; the budget only guards
// against pathological seeds.
const solveStepBudget = 1_000_000

// IsValidPlacement reports whether digit is absent from the row, column, and
// 3x3 box containing (row, col). Pure fixed-size check, 27 cell comparisons.
func IsValidPlacement(g *Grid, row, col, digit int) bool {
	for i := 0; i < GridSize; i++ {
		if g[row][i] == digit || g[i][col] == digit {
			return false
		}
	}
	boxRow, boxCol := (row/BoxSize)*BoxSize, (col/BoxSize)*BoxSize
	for r := boxRow; r < boxRow+BoxSize; r++ {
		for c := boxCol; c < boxCol+BoxSize; c++ {
			if g[r][c] == digit {
				return false
			}
		}
	}
	return true
}

// solve fills every empty cell of g in place via exhaustive backtracking,
// decrementing *steps per candidate tried. It returns false when the grid is
// unsolvable or the budget runs out; g is left unchanged in that case.
// Generation-time only; gameplay validation compares against the known
// solution instead.
func solve(g *Grid, steps *int) bool {
	row, col, ok := findEmpty(g)
	if !ok {
		return true
	}
	for digit := 1; digit <= GridSize; digit++ {
		*steps--
		if *steps <= 0 {
			return false
		}
		if IsValidPlacement(g, row, col, digit) {
			g[row][col] = digit
			if solve(g, steps) {
				return true
			}
			g[row][col] = 0
		}
	}
	return false
}

// findEmpty returns the first empty cell in row-major order.
func findEmpty(g *Grid) (int, int, bool) {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g[r][c] == 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
