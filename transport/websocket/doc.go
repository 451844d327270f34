// Package websocket provides the real-time transport for the sudoku race.
//
// The websocket package implements:
//   - Room-aware bidirectional event messaging
//   - Connection lifecycle management with disconnect-as-leave semantics
//   - Broadcasting of gameplay updates to room members
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub owns the mapping
// of room id to connected clients. Room membership changes and broadcasts
// flow through the hub's channels and are applied by its single Run loop, so
// the membership maps need no locking. Each client connection runs a read
// pump and a write pump goroutine; the read pump is the only goroutine that
// touches the client's room identity.
//
// Message Protocol:
//
// Every frame is a JSON envelope {event, payload}:
//   - Incoming: {event: "placeNumber", payload: {roomId, playerNumber, row, col, num}}
//   - Outgoing: {event: "playerUpdate", payload: {playerNumber, score, completed, ...}}
//
// Connection Lifecycle:
//
// 1. Client connects to /ws
// 2. Client sends joinRoom and receives joinedRoom with its own board
// 3. Gameplay events flow both ways; room-wide updates are broadcast
// 4. leaveRoom detaches the client from the room but keeps the connection
// 5. Disconnection is treated as leaving the room
package websocket
