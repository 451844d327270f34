package websocket

import (
	"encoding/json"

	"github.com/sudokuarena/server/game/room"
)

// Inbound event names.
const (
	EventJoinRoom    = "joinRoom"
	EventPlaceNumber = "placeNumber"
	EventClearCell   = "clearCell"
	EventLeaveRoom   = "leaveRoom"
)

// Outbound event names.
const (
	EventJoinedRoom    = "joinedRoom"
	EventPlayerJoined  = "playerJoined"
	EventPlayerUpdate  = "playerUpdate"
	EventCellCleared   = "cellCleared"
	EventPlayerLeft    = "playerLeft"
	EventGameCompleted = "gameCompleted"
	EventError         = "error"
)

// Envelope is the wire frame for every event in both directions.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type joinRoomPayload struct {
	RoomID       string `json:"roomId"`
	PlayerNumber int    `json:"playerNumber"`
	PlayerName   string `json:"playerName,omitempty"`
	Preset       string `json:"preset,omitempty"`
}

type placeNumberPayload struct {
	RoomID       string `json:"roomId"`
	PlayerNumber int    `json:"playerNumber"`
	Row          int    `json:"row"`
	Col          int    `json:"col"`
	Num          int    `json:"num"`
}

type clearCellPayload struct {
	RoomID       string `json:"roomId"`
	PlayerNumber int    `json:"playerNumber"`
	Row          int    `json:"row"`
	Col          int    `json:"col"`
}

type leaveRoomPayload struct {
	RoomID       string `json:"roomId"`
	PlayerNumber int    `json:"playerNumber"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type playerJoinedPayload struct {
	Player room.PublicPlayer `json:"player"`
	Room   room.PublicState  `json:"room"`
}

type playerLeftPayload struct {
	PlayerNumber int               `json:"playerNumber"`
	Room         *room.PublicState `json:"room,omitempty"`
}

type gameCompletedPayload struct {
	Winner int              `json:"winner"`
	Room   room.PublicState `json:"room"`
}

// encodeEvent marshals an envelope with the given payload.
func encodeEvent(event string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Payload: raw})
}
