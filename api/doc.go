// Package api provides the HTTP read surface for the sudoku race server.
//
// The api package implements:
//   - Read-only REST endpoints for rooms, leaderboard, and presets
//   - WebSocket upgrade handling for the gameplay transport
//   - Static file serving for the bundled client
//
// Endpoints:
//
// Rooms:
//   - GET /api/rooms - List rooms that still accept players
//   - GET /api/rooms/{id} - Redacted snapshot of one live room
//
// Leaderboard:
//   - GET /api/leaderboard?limit=N - Aggregate scores across completed games
//
// Presets:
//   - GET /api/presets - List available rulesets
//
// Misc:
//   - GET /api/health - Liveness probe
//   - GET /ws - WebSocket upgrade; all gameplay flows over this connection
//
// All mutation happens over the WebSocket event protocol; the REST surface is
// deliberately read-only.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
