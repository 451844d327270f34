package room

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sudokuarena/server/game/engine"
)

// MaxPlayers bounds how many players a room accepts.
const MaxPlayers = 4

var (
	ErrRoomFull      = errors.New("room is full")
	ErrSlotTaken     = errors.New("player number already taken")
	ErrInvalidSlot   = fmt.Errorf("player number must be between 1 and %d", MaxPlayers)
	ErrRoomCompleted = errors.New("game already completed")
	ErrRoomNotFound  = errors.New("room not found")
)

// Status is the room lifecycle state. Transitions only move forward:
// waiting -> playing -> completed.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
)

// Room groups up to four players racing the same puzzle difficulty. Not safe
// for concurrent use; the owning coordinator serializes access.
type Room struct {
	ID        string
	Rules     *engine.Rules
	Players   map[int]*Player
	Status    Status
	CreatedAt time.Time
	StartedAt time.Time // zero until the first successful join
}

// PublicState is the broadcast-safe snapshot of a room: players are redacted
// and sorted by number.
type PublicState struct {
	RoomID    string         `json:"roomId"`
	Status    Status         `json:"status"`
	StartedAt *time.Time     `json:"startedAt,omitempty"`
	Players   []PublicPlayer `json:"players"`
}

// New creates an empty waiting room.
func New(id string, rules *engine.Rules) *Room {
	return &Room{
		ID:        id,
		Rules:     rules,
		Players:   make(map[int]*Player),
		Status:    StatusWaiting,
		CreatedAt: time.Now(),
	}
}

// CanJoin consolidates every join-time invariant check in one place. Join
// runs it internally; the coordinator also calls it up front to reject a
// join before paying for puzzle generation.
func (r *Room) CanJoin(number int) error {
	if number < 1 || number > MaxPlayers {
		return ErrInvalidSlot
	}
	if r.Status == StatusCompleted {
		return ErrRoomCompleted
	}
	if len(r.Players) >= MaxPlayers {
		return ErrRoomFull
	}
	if _, taken := r.Players[number]; taken {
		return ErrSlotTaken
	}
	return nil
}

// Join adds a player with a freshly generated puzzle. The first successful
// join advances the room to playing and pins StartedAt as the shared clock
// origin for finish times.
func (r *Room) Join(number int, name string, puz *engine.Puzzle) (*Player, error) {
	if err := r.CanJoin(number); err != nil {
		return nil, err
	}

	p := &Player{
		RoomID:   r.ID,
		Number:   number,
		Name:     name,
		Board:    puz.Board,
		Solution: puz.Solution,
		JoinedAt: time.Now(),
	}
	r.Players[number] = p

	if r.Status == StatusWaiting {
		r.Status = StatusPlaying
		r.StartedAt = time.Now()
	}

	return p, nil
}

// Placement describes the outcome of one digit placement for broadcasting.
type Placement struct {
	Number        int      `json:"playerNumber"`
	Row           int      `json:"row"`
	Col           int      `json:"col"`
	Digit         int      `json:"-"`
	Correct       bool     `json:"isCorrect"`
	Score         int      `json:"score"`
	Completed     int      `json:"completed"`
	Finished      bool     `json:"finished"`
	FinishSeconds *float64 `json:"finishTime,omitempty"`
}

// Place applies a digit placement for the given player. It returns false for
// anything that must be silently ignored: unknown player, finished player,
// completed room, or out-of-range coordinates from a stale or garbled event.
// The returned bool also reports whether the room completed on this call.
func (r *Room) Place(number, row, col, digit int) (*Placement, bool, bool) {
	p, ok := r.Players[number]
	if !ok || p.Finished || r.Status == StatusCompleted {
		return nil, false, false
	}
	if !engine.InBounds(row, col) || digit < 1 || digit > engine.GridSize {
		return nil, false, false
	}

	correct := p.place(row, col, digit, r.Rules, r.StartedAt)

	completedNow := false
	if r.Status == StatusPlaying && r.allFinished() {
		r.Status = StatusCompleted
		completedNow = true
	}

	return &Placement{
		Number:        p.Number,
		Row:           row,
		Col:           col,
		Digit:         digit,
		Correct:       correct,
		Score:         p.Score,
		Completed:     p.CompletedCells,
		Finished:      p.Finished,
		FinishSeconds: p.FinishSeconds,
	}, true, completedNow
}

// Clear empties a board cell. Same silent no-op rules as Place. The completed
// count is recounted immediately, symmetric with placement.
func (r *Room) Clear(number, row, col int) bool {
	p, ok := r.Players[number]
	if !ok || p.Finished || r.Status == StatusCompleted {
		return false
	}
	if !engine.InBounds(row, col) {
		return false
	}
	p.clear(row, col)
	return true
}

// Remove deletes the player and reports whether they were present. The caller
// destroys the room when Empty becomes true.
func (r *Room) Remove(number int) bool {
	if _, ok := r.Players[number]; !ok {
		return false
	}
	delete(r.Players, number)
	return true
}

// Empty reports whether the room has no players left.
func (r *Room) Empty() bool {
	return len(r.Players) == 0
}

// allFinished reports whether every current player has finished. An empty
// room never counts as finished.
func (r *Room) allFinished() bool {
	if len(r.Players) == 0 {
		return false
	}
	for _, p := range r.Players {
		if !p.Finished {
			return false
		}
	}
	return true
}

// Winner selects the winning player number: highest score first, ties broken
// by the lowest finish time. Returns 0 for an empty room.
func (r *Room) Winner() int {
	winner := 0
	var best *Player
	for _, p := range r.Players {
		if best == nil || beats(p, best) {
			best = p
			winner = p.Number
		}
	}
	return winner
}

// beats reports whether a outranks b under the score-then-time ordering.
func beats(a, b *Player) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	af, bf := a.FinishSeconds, b.FinishSeconds
	switch {
	case af != nil && bf != nil:
		return *af < *bf
	case af != nil:
		return true
	default:
		return false
	}
}

// Public returns the redacted room snapshot used for broadcasts, the REST
// surface, and history records.
func (r *Room) Public() PublicState {
	players := make([]PublicPlayer, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p.Public())
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Number < players[j].Number })

	state := PublicState{
		RoomID:  r.ID,
		Status:  r.Status,
		Players: players,
	}
	if !r.StartedAt.IsZero() {
		started := r.StartedAt
		state.StartedAt = &started
	}
	return state
}
