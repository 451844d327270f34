package service

import (
	"context"

	"github.com/sudokuarena/server/game/engine"
	"github.com/sudokuarena/server/game/room"
	"github.com/sudokuarena/server/game/store"
)

// GameService defines all game-related operations.
//
// PlaceDigit, ClearCell, and LeaveRoom follow the silent no-op contract: when
// the room or player is unknown, or the operation does not apply, they return
// false and no state changes. Stale events from disconnected clients are
// expected traffic, not errors.
type GameService interface {
	// Gameplay
	JoinRoom(ctx context.Context, roomID string, playerNumber int, playerName, presetID string) (*JoinResult, error)
	PlaceDigit(ctx context.Context, roomID string, playerNumber, row, col, digit int) (*PlaceResult, bool)
	ClearCell(ctx context.Context, roomID string, playerNumber, row, col int) (*ClearResult, bool)
	LeaveRoom(ctx context.Context, roomID string, playerNumber int) (*LeaveResult, bool)

	// Read surface
	RoomState(ctx context.Context, roomID string) (*room.PublicState, error)
	ListOpenRooms(ctx context.Context) ([]RoomSummary, error)
	Leaderboard(ctx context.Context, limit int) ([]store.LeaderboardEntry, error)

	// CleanupStale removes persisted rooms left behind by a previous process
	// run. Called once at startup.
	CleanupStale(ctx context.Context) error

	// Flush blocks until every in-flight persistence write has drained.
	Flush()
}

// RulesLoader supplies ruleset presets. The empty id resolves to the default.
type RulesLoader interface {
	Load(id string) (*engine.Rules, error)
	Default() *engine.Rules
}
