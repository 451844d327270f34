// Package room provides the multiplayer room data model for Sudoku Arena.
//
// The room package implements:
//   - Player: one participant's mutable gameplay state (board, score,
//     completion progress)
//   - Room: a bounded group of up to four players sharing a lifecycle
//   - Registry: thread-safe storage of active rooms by identifier
//
// Lifecycle:
//
// A Room moves waiting -> playing -> completed and never backward. The first
// successful join flips it to playing and pins StartedAt, which is the single
// clock origin for every player's finish time. The room completes when at
// least one player is present and every player has finished; it is destroyed
// when its player set empties.
//
// Concurrency:
//
// Registry guards its map internally and is safe for concurrent use. Room and
// Player carry no locks: they are owned by the coordinating service, which
// serializes all mutations of a room.
//
// Usage:
//
//	reg := room.NewRegistry()
//	rm, _ := reg.GetOrCreate("R1", engine.DefaultRules())
//	player, err := rm.Join(1, "Player 1", puzzle)
package room
