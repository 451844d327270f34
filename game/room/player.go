package room

import (
	"time"

	"github.com/sudokuarena/server/game/engine"
)

// Player is one participant's gameplay state within a room. It is owned
// exclusively by its Room; all mutation goes through Room methods.
type Player struct {
	RoomID         string
	Number         int
	Name           string
	Score          int
	CompletedCells int
	Finished       bool
	FinishSeconds  *float64
	Board          engine.Grid
	Solution       engine.Grid
	JoinedAt       time.Time
}

// PublicPlayer is the redacted cross-player view: progress and score only,
// never the board or solution.
type PublicPlayer struct {
	Number        int      `json:"playerNumber"`
	Name          string   `json:"name"`
	Score         int      `json:"score"`
	Completed     int      `json:"completed"`
	Finished      bool     `json:"finished"`
	FinishSeconds *float64 `json:"finishTime,omitempty"`
}

// Public returns the redacted view of the player.
func (p *Player) Public() PublicPlayer {
	return PublicPlayer{
		Number:        p.Number,
		Name:          p.Name,
		Score:         p.Score,
		Completed:     p.CompletedCells,
		Finished:      p.Finished,
		FinishSeconds: p.FinishSeconds,
	}
}

// place writes digit at (row, col) with overwrite semantics and applies the
// scoring rules. Correctness is a direct comparison against the solution; no
// legality-of-move check happens here. The completed-cell count is a full
// recount so repeated overwrites of the same cell stay accurate.
func (p *Player) place(row, col, digit int, rules *engine.Rules, startedAt time.Time) bool {
	p.Board[row][col] = digit

	correct := digit == p.Solution[row][col]
	if correct {
		p.Score += rules.CorrectPoints
	} else {
		p.Score -= rules.WrongPenalty
		if p.Score < 0 {
			p.Score = 0
		}
	}

	p.recount()

	if p.CompletedCells == engine.CellCount && !p.Finished {
		p.Finished = true
		elapsed := time.Since(startedAt).Seconds()
		p.FinishSeconds = &elapsed
		p.Score += rules.FinishBonus
	}

	return correct
}

// clear empties the cell and recounts, so a cleared correct cell immediately
// stops counting as completed.
func (p *Player) clear(row, col int) {
	p.Board[row][col] = 0
	p.recount()
}

// recount recomputes CompletedCells as the number of non-empty board cells
// matching the solution.
func (p *Player) recount() {
	n := 0
	for r := 0; r < engine.GridSize; r++ {
		for c := 0; c < engine.GridSize; c++ {
			if p.Board[r][c] != 0 && p.Board[r][c] == p.Solution[r][c] {
				n++
			}
		}
	}
	p.CompletedCells = n
}
