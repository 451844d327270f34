package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudokuarena/server/game/engine"
)

// testPuzzle builds a deterministic puzzle from the shifted-row base pattern
// with the given cells blanked on the board.
func testPuzzle(blanks ...[2]int) *engine.Puzzle {
	var solution engine.Grid
	for r := 0; r < engine.GridSize; r++ {
		for c := 0; c < engine.GridSize; c++ {
			solution[r][c] = (r*engine.BoxSize+r/engine.BoxSize+c)%engine.GridSize + 1
		}
	}
	board := solution
	for _, b := range blanks {
		board[b[0]][b[1]] = 0
	}
	return &engine.Puzzle{Board: board, Solution: solution}
}

func TestJoinStartsRoom(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	require.Equal(t, StatusWaiting, rm.Status)
	require.True(t, rm.StartedAt.IsZero())

	p, err := rm.Join(1, "Player 1", testPuzzle())
	require.NoError(t, err)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 0, p.Score)
	assert.False(t, p.Finished)
	assert.Equal(t, StatusPlaying, rm.Status)
	assert.False(t, rm.StartedAt.IsZero())
}

func TestJoinInvariants(t *testing.T) {
	rm := New("R1", engine.DefaultRules())

	_, err := rm.Join(2, "Player 2", testPuzzle())
	require.NoError(t, err)

	_, err = rm.Join(2, "Imposter", testPuzzle())
	assert.ErrorIs(t, err, ErrSlotTaken)

	_, err = rm.Join(0, "Out of range", testPuzzle())
	assert.ErrorIs(t, err, ErrInvalidSlot)
	_, err = rm.Join(5, "Out of range", testPuzzle())
	assert.ErrorIs(t, err, ErrInvalidSlot)

	for _, n := range []int{1, 3, 4} {
		_, err = rm.Join(n, "Player", testPuzzle())
		require.NoError(t, err)
	}

	assert.Len(t, rm.Players, MaxPlayers)

	// With four players the room-full check wins over the slot check, so a
	// fifth join reports full rather than taken.
	_, err = rm.Join(3, "Fifth", testPuzzle())
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestPlaceScoring(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	puz := testPuzzle([2]int{0, 0}, [2]int{0, 1})
	_, err := rm.Join(1, "Player 1", puz)
	require.NoError(t, err)

	correct := puz.Solution[0][0]

	pl, ok, completed := rm.Place(1, 0, 0, correct)
	require.True(t, ok)
	assert.False(t, completed)
	assert.True(t, pl.Correct)
	assert.Equal(t, 10, pl.Score)
	assert.Equal(t, 80, pl.Completed)

	pl, ok, _ = rm.Place(1, 0, 1, wrongDigit(puz, 0, 1))
	require.True(t, ok)
	assert.False(t, pl.Correct)
	assert.Equal(t, 8, pl.Score)
	assert.Equal(t, 80, pl.Completed)
}

func TestPlaceScoreFloorsAtZero(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	puz := testPuzzle([2]int{0, 0})
	_, err := rm.Join(1, "Player 1", puz)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		pl, ok, _ := rm.Place(1, 0, 0, wrongDigit(puz, 0, 0))
		require.True(t, ok)
		assert.Equal(t, 0, pl.Score, "score must never go negative")
	}
}

func TestPlaceOverwriteIdempotence(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	puz := testPuzzle([2]int{0, 0}, [2]int{0, 1})
	_, err := rm.Join(1, "Player 1", puz)
	require.NoError(t, err)

	correct := puz.Solution[0][0]
	first, ok, _ := rm.Place(1, 0, 0, correct)
	require.True(t, ok)
	second, ok, _ := rm.Place(1, 0, 0, correct)
	require.True(t, ok)

	// Score keeps accruing per the recount rule, but the completed count
	// must not double count the same cell.
	assert.Equal(t, first.Completed, second.Completed)
	assert.Equal(t, first.Score+10, second.Score)
}

func TestPlaceSilentNoOps(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	puz := testPuzzle([2]int{0, 0})
	_, err := rm.Join(1, "Player 1", puz)
	require.NoError(t, err)

	_, ok, _ := rm.Place(2, 0, 0, 1)
	assert.False(t, ok, "unknown player must be ignored")

	_, ok, _ = rm.Place(1, 9, 0, 1)
	assert.False(t, ok, "out-of-range row must be ignored")
	_, ok, _ = rm.Place(1, 0, -1, 1)
	assert.False(t, ok, "out-of-range col must be ignored")
	_, ok, _ = rm.Place(1, 0, 0, 10)
	assert.False(t, ok, "out-of-range digit must be ignored")
}

func TestCompletionFlow(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	puz := testPuzzle([2]int{0, 0})
	p, err := rm.Join(1, "Player 1", puz)
	require.NoError(t, err)

	pl, ok, completedNow := rm.Place(1, 0, 0, puz.Solution[0][0])
	require.True(t, ok)
	assert.True(t, pl.Finished)
	assert.Equal(t, engine.CellCount, pl.Completed)
	assert.Equal(t, 10+100, pl.Score, "finish bonus applied once")
	require.NotNil(t, pl.FinishSeconds)
	assert.True(t, completedNow, "sole player finishing completes the room")
	assert.Equal(t, StatusCompleted, rm.Status)

	// Re-entrant placement after finishing is a no-op.
	_, ok, _ = rm.Place(1, 0, 0, puz.Solution[0][0])
	assert.False(t, ok)
	assert.Equal(t, 110, p.Score)
}

func TestRoomCompletesOnlyWhenAllFinished(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	puz1 := testPuzzle([2]int{0, 0})
	puz2 := testPuzzle([2]int{1, 1})
	_, err := rm.Join(1, "Player 1", puz1)
	require.NoError(t, err)
	_, err = rm.Join(2, "Player 2", puz2)
	require.NoError(t, err)

	_, ok, completedNow := rm.Place(1, 0, 0, puz1.Solution[0][0])
	require.True(t, ok)
	assert.False(t, completedNow)
	assert.Equal(t, StatusPlaying, rm.Status)

	_, ok, completedNow = rm.Place(2, 1, 1, puz2.Solution[1][1])
	require.True(t, ok)
	assert.True(t, completedNow)
	assert.Equal(t, StatusCompleted, rm.Status)
}

func TestJoinAfterCompletionRejected(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	puz := testPuzzle([2]int{0, 0})
	_, err := rm.Join(1, "Player 1", puz)
	require.NoError(t, err)
	_, _, _ = rm.Place(1, 0, 0, puz.Solution[0][0])
	require.Equal(t, StatusCompleted, rm.Status)

	_, err = rm.Join(2, "Latecomer", testPuzzle())
	assert.ErrorIs(t, err, ErrRoomCompleted)
}

func TestClearRecountsCompleted(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	puz := testPuzzle([2]int{0, 0}, [2]int{0, 1})
	_, err := rm.Join(1, "Player 1", puz)
	require.NoError(t, err)

	pl, ok, _ := rm.Place(1, 0, 0, puz.Solution[0][0])
	require.True(t, ok)
	require.Equal(t, 80, pl.Completed)

	require.True(t, rm.Clear(1, 0, 0))
	assert.Equal(t, 79, rm.Players[1].CompletedCells,
		"a cleared correct cell no longer counts as completed")
	assert.Equal(t, 10, rm.Players[1].Score, "clearing does not touch the score")

	assert.False(t, rm.Clear(1, 9, 9), "out-of-range clear must be ignored")
	assert.False(t, rm.Clear(7, 0, 0), "unknown player clear must be ignored")
}

func TestWinnerSelection(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	_, err := rm.Join(1, "A", testPuzzle())
	require.NoError(t, err)
	_, err = rm.Join(2, "B", testPuzzle())
	require.NoError(t, err)

	tA, tB := 300.0, 250.0

	// Score tie: lowest finish time wins.
	rm.Players[1].Score, rm.Players[1].FinishSeconds = 500, &tA
	rm.Players[2].Score, rm.Players[2].FinishSeconds = 500, &tB
	assert.Equal(t, 2, rm.Winner())

	// Higher score wins regardless of time.
	rm.Players[1].Score = 600
	assert.Equal(t, 1, rm.Winner())
}

func TestRemoveAndEmpty(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	_, err := rm.Join(1, "Player 1", testPuzzle())
	require.NoError(t, err)

	assert.False(t, rm.Remove(2), "removing an absent player reports false")
	assert.True(t, rm.Remove(1))
	assert.True(t, rm.Empty())
	assert.False(t, rm.Remove(1))
}

func TestPublicSnapshot(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	_, err := rm.Join(3, "C", testPuzzle())
	require.NoError(t, err)
	_, err = rm.Join(1, "A", testPuzzle())
	require.NoError(t, err)

	state := rm.Public()
	assert.Equal(t, "R1", state.RoomID)
	assert.Equal(t, StatusPlaying, state.Status)
	require.NotNil(t, state.StartedAt)
	require.Len(t, state.Players, 2)
	assert.Equal(t, 1, state.Players[0].Number, "players sorted by number")
	assert.Equal(t, 3, state.Players[1].Number)
}

func TestStartedAtSharedClock(t *testing.T) {
	rm := New("R1", engine.DefaultRules())
	_, err := rm.Join(1, "Player 1", testPuzzle())
	require.NoError(t, err)
	started := rm.StartedAt

	time.Sleep(5 * time.Millisecond)
	_, err = rm.Join(2, "Player 2", testPuzzle())
	require.NoError(t, err)

	assert.Equal(t, started, rm.StartedAt, "later joins must not move the clock origin")
}

// wrongDigit returns a digit that differs from the solution at (row, col).
func wrongDigit(puz *engine.Puzzle, row, col int) int {
	return puz.Solution[row][col]%9 + 1
}
