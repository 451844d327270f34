// Package service provides the coordination layer for the sudoku race.
//
// The service package implements:
//   - Room join and leave lifecycle, including room teardown
//   - Digit placement and cell clearing with scoring
//   - Winner selection and completed-game history recording
//   - Background persistence that never blocks gameplay
//
// Core Interfaces:
//
// GameService is the main coordinator interface used by every transport.
// RulesLoader supplies ruleset presets by id.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the room state, serializing all room mutations behind a single mutex. Room
// and player structs carry no locking of their own; the coordinator is their
// sole writer. Persistence writes run on background goroutines with a bounded
// timeout; a failed write is logged and dropped rather than surfaced to the
// player.
package service
