// Package mcp provides a Model Context Protocol interface for the sudoku
// race server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Read-only tool definitions proxied to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_rooms: List rooms that still accept players
//   - room_state: Get the redacted snapshot of one room
//   - leaderboard: Aggregate scores across completed games
//   - game_instructions: Get the game rules and event protocol
//
// Gameplay itself happens over the WebSocket event protocol; the MCP surface
// mirrors the read-only REST endpoints and is meant for observing rooms and
// results, not for playing.
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: Streamable HTTP endpoint for remote MCP integration
package mcp
