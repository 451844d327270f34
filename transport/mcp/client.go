package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sudokuarena/server/game/room"
	"github.com/sudokuarena/server/game/service"
	"github.com/sudokuarena/server/game/store"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Sudoku Arena",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Sudoku Arena - MCP Interface

This is a thin client that proxies read-only requests to the REST API server.

GAME OVERVIEW:
Up to 4 players race to complete their own copy of a sudoku puzzle in a shared
room. Correct placements score +10, wrong placements cost 2 (score never goes
below 0), and finishing the board awards a +100 bonus. The winner has the
highest score, ties broken by the earliest finish.

AVAILABLE TOOLS:
- list_rooms: List rooms that still accept players
- room_state: Get the live state of one room
- leaderboard: Aggregate scores across completed games
- game_instructions: Get the full rules and event protocol

Gameplay itself happens over the WebSocket connection at /ws; these tools are
for observing rooms and results.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List rooms that still accept players",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRooms)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "room_state",
		Description: "Get the live state of a room: status and every player's score and progress",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID to inspect",
				},
			},
			Required: []string{"room_id"},
		},
	}, c.handleRoomState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "leaderboard",
		Description: "Get the aggregate leaderboard across completed games",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of entries (default 10)",
				},
			},
		},
	}, c.handleLeaderboard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the game rules and the WebSocket event protocol",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                   `json:"count"`
		Rooms []service.RoomSummary `json:"rooms"`
	}

	err := c.apiCall("GET", "/api/rooms", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No open rooms."), nil
	}

	result := fmt.Sprintf("Open Rooms (%d):\n\n", response.Count)
	for _, rm := range response.Rooms {
		result += fmt.Sprintf("- %s (%s, %d/%d players, created %s)\n",
			rm.RoomID, rm.Status, rm.PlayerCount, rm.MaxPlayers, rm.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRoomState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)

	var state room.PublicState
	err := c.apiCall("GET", fmt.Sprintf("/api/rooms/%s", roomID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoomState(&state)), nil
}

func (c *Client) handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	path := "/api/leaderboard"
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, int(limit))
	}

	var response struct {
		Count       int                      `json:"count"`
		Leaderboard []store.LeaderboardEntry `json:"leaderboard"`
	}
	err := c.apiCall("GET", path, nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No completed games yet."), nil
	}

	result := fmt.Sprintf("Leaderboard (%d entries):\n\n", response.Count)
	for i, entry := range response.Leaderboard {
		result += fmt.Sprintf("%d. Player %d - %d points over %d finished games\n",
			i+1, entry.PlayerNumber, entry.TotalScore, entry.GamesFinished)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

// formatRoomState renders a room snapshot as readable text.
func formatRoomState(state *room.PublicState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Room %s (%s)\n", state.RoomID, state.Status)
	if state.StartedAt != nil {
		fmt.Fprintf(&b, "Started: %s\n", state.StartedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "Players (%d):\n", len(state.Players))
	for _, p := range state.Players {
		line := fmt.Sprintf("  %d. %s - score %d, %d/81 cells", p.Number, p.Name, p.Score, p.Completed)
		if p.Finished && p.FinishSeconds != nil {
			line += fmt.Sprintf(", finished in %.1fs", *p.FinishSeconds)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

const gameInstructions = `Sudoku Arena - Game Rules

ROOMS:
- A room holds up to 4 players identified by player numbers 1-4.
- Joining an unknown room id creates the room; the first join starts the game.
- Every player races their own copy of a freshly generated 9x9 sudoku.
- The room completes when every current player has finished their board.
- A room is destroyed when its last player leaves or disconnects.

SCORING:
- Correct placement: +10 points.
- Wrong placement: -2 points, score never drops below 0.
- Finishing all 81 cells: +100 bonus, finish time recorded from game start.
- Winner: highest score; ties broken by the earliest finish time.

EVENT PROTOCOL (WebSocket /ws, JSON envelopes {event, payload}):
- joinRoom {roomId, playerNumber, playerName} -> joinedRoom with your board
- placeNumber {roomId, playerNumber, row, col, num} -> playerUpdate broadcast
- clearCell {roomId, playerNumber, row, col} -> cellCleared broadcast
- leaveRoom {roomId, playerNumber} -> playerLeft broadcast
- gameCompleted is broadcast with the winner when the last player finishes

Other players' boards are never visible; only scores and progress counts are
shared between players.`
