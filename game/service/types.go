package service

import (
	"time"

	"github.com/sudokuarena/server/game/engine"
	"github.com/sudokuarena/server/game/room"
)

// JoinResult is returned to the joining player. Board is the joiner's own
// puzzle; other players appear only through the redacted room snapshot.
type JoinResult struct {
	RoomID       string           `json:"roomId"`
	PlayerNumber int              `json:"playerNumber"`
	PlayerName   string           `json:"playerName"`
	Board        engine.Grid      `json:"board"`
	Room         room.PublicState `json:"room"`
}

// PlaceResult describes the outcome of a digit placement. FinalState and
// Winner are set only when this placement completed the game.
type PlaceResult struct {
	Placement     *room.Placement   `json:"placement"`
	RoomCompleted bool              `json:"roomCompleted"`
	Winner        int               `json:"winner,omitempty"`
	FinalState    *room.PublicState `json:"finalState,omitempty"`
}

// ClearResult describes the outcome of clearing a cell.
type ClearResult struct {
	PlayerNumber int `json:"playerNumber"`
	Row          int `json:"row"`
	Col          int `json:"col"`
	Score        int `json:"score"`
	Completed    int `json:"completed"`
}

// LeaveResult describes the outcome of a player leaving. State carries the
// remaining room snapshot when the room survives the departure.
type LeaveResult struct {
	RoomDestroyed bool              `json:"roomDestroyed"`
	State         *room.PublicState `json:"state,omitempty"`
}

// RoomSummary is the REST listing view of a joinable room.
type RoomSummary struct {
	RoomID      string      `json:"roomId"`
	Status      room.Status `json:"status"`
	PlayerCount int         `json:"playerCount"`
	MaxPlayers  int         `json:"maxPlayers"`
	CreatedAt   time.Time   `json:"createdAt"`
}
