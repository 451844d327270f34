package engine

// Board geometry. The engine only deals in classic 9x9 sudoku.
const (
	GridSize  = 9
	BoxSize   = 3
	CellCount = GridSize * GridSize
)

// Default generation and scoring parameters.
const (
	DefaultSeedCells     = 15
	DefaultRemovedCells  = 40
	DefaultCorrectPoints = 10
	DefaultWrongPenalty  = 2
	DefaultFinishBonus   = 100
)

// Grid is a 9x9 sudoku grid. Zero marks an empty cell; filled cells hold 1-9.
type Grid [GridSize][GridSize]int

// Puzzle pairs a playable board with its solution. Board starts as a copy of
// Solution with RemovedCells blanks; Solution is authoritative for scoring
// and never mutated after generation.
type Puzzle struct {
	Board    Grid `json:"board"`
	Solution Grid `json:"solution"`
}

// Rules holds the tunable generation and scoring parameters for one game.
type Rules struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	SeedCells     int    `json:"seed_cells"`
	RemovedCells  int    `json:"removed_cells"`
	CorrectPoints int    `json:"correct_points"`
	WrongPenalty  int    `json:"wrong_penalty"`
	FinishBonus   int    `json:"finish_bonus"`
}

// DefaultRules returns the standard ruleset: 15 seed cells, 40 blanks,
// +10 per correct placement, -2 per wrong placement, +100 finish bonus.
func DefaultRules() *Rules {
	return &Rules{
		Name:          "Classic",
		Description:   "Standard 4-player race rules",
		SeedCells:     DefaultSeedCells,
		RemovedCells:  DefaultRemovedCells,
		CorrectPoints: DefaultCorrectPoints,
		WrongPenalty:  DefaultWrongPenalty,
		FinishBonus:   DefaultFinishBonus,
	}
}

// ValidateRules checks that a ruleset is internally consistent.
func ValidateRules(r *Rules) error {
	if r == nil {
		return ErrNilRules
	}
	if r.Name == "" {
		return ErrUnnamedRules
	}
	if r.SeedCells < 1 || r.SeedCells > CellCount {
		return ErrBadSeedCells
	}
	if r.RemovedCells < 0 || r.RemovedCells >= CellCount {
		return ErrBadRemovedCells
	}
	if r.CorrectPoints < 0 || r.WrongPenalty < 0 || r.FinishBonus < 0 {
		return ErrNegativeScoring
	}
	return nil
}

// InBounds reports whether (row, col) addresses a cell on the grid.
func InBounds(row, col int) bool {
	return row >= 0 && row < GridSize && col >= 0 && col < GridSize
}

// Copy returns a deep copy of the grid. Grid is an array type so plain
// assignment already copies; this exists for call sites that read better
// with an explicit copy.
func (g Grid) Copy() Grid {
	return g
}

// FilledCells returns the number of non-zero cells in the grid.
func (g *Grid) FilledCells() int {
	n := 0
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}
