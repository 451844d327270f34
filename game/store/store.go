package store

import (
	"context"
	"time"
)

// RoomRecord mirrors one row of the game_rooms table.
type RoomRecord struct {
	RoomID    string    `json:"room_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerRecord mirrors one row of the players table. Board and Solution hold
// marshaled JSON grids.
type PlayerRecord struct {
	RoomID        string    `json:"room_id"`
	Number        int       `json:"player_number"`
	Score         int       `json:"score"`
	Board         []byte    `json:"board"`
	Solution      []byte    `json:"solution"`
	Finished      bool      `json:"finished"`
	FinishSeconds *float64  `json:"finish_time,omitempty"`
	JoinedAt      time.Time `json:"joined_at"`
}

// HistoryRecord mirrors one row of the game_history table. GameData is the
// redacted final room snapshot as JSON.
type HistoryRecord struct {
	RoomID       string    `json:"room_id"`
	WinnerNumber int       `json:"winner_number"`
	GameData     []byte    `json:"game_data"`
	CompletedAt  time.Time `json:"completed_at"`
}

// LeaderboardEntry aggregates completed-game history per player number.
type LeaderboardEntry struct {
	PlayerNumber  int `json:"playerNumber"`
	TotalScore    int `json:"totalScore"`
	GamesFinished int `json:"gamesFinished"`
}

// Store is the persistence gateway contract.
type Store interface {
	// SaveRoom upserts a room row.
	SaveRoom(ctx context.Context, rec RoomRecord) error

	// SavePlayer upserts a player row keyed by (room_id, player_number).
	SavePlayer(ctx context.Context, rec PlayerRecord) error

	// DeletePlayer removes one player row.
	DeletePlayer(ctx context.Context, roomID string, number int) error

	// DeleteRoom removes a room row and all of its player rows.
	DeleteRoom(ctx context.Context, roomID string) error

	// SaveHistory inserts one completed-game record.
	SaveHistory(ctx context.Context, rec HistoryRecord) error

	// WaitingRooms lists rooms currently persisted with status waiting.
	WaitingRooms(ctx context.Context) ([]RoomRecord, error)

	// Leaderboard aggregates history across games: per player number, the
	// sum of scores and the count of finished games, ordered by total
	// score descending, at most limit entries.
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// Close releases the underlying resources.
	Close()
}
