package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotJSON(t *testing.T, players []snapshotPlayer) []byte {
	t.Helper()
	data, err := json.Marshal(snapshotData{Players: players})
	require.NoError(t, err)
	return data
}

func TestMemoryRoomLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.SaveRoom(ctx, RoomRecord{RoomID: "R1", Status: "playing", CreatedAt: time.Now()}))
	require.NoError(t, m.SavePlayer(ctx, PlayerRecord{RoomID: "R1", Number: 1, Score: 10}))
	require.NoError(t, m.SavePlayer(ctx, PlayerRecord{RoomID: "R1", Number: 2, Score: 20}))

	assert.True(t, m.HasRoom("R1"))
	assert.True(t, m.HasPlayer("R1", 1))

	// Upsert keeps a single row per (room, number).
	require.NoError(t, m.SavePlayer(ctx, PlayerRecord{RoomID: "R1", Number: 1, Score: 30}))

	require.NoError(t, m.DeletePlayer(ctx, "R1", 1))
	assert.False(t, m.HasPlayer("R1", 1))
	assert.True(t, m.HasPlayer("R1", 2))

	require.NoError(t, m.DeleteRoom(ctx, "R1"))
	assert.False(t, m.HasRoom("R1"))
	assert.False(t, m.HasPlayer("R1", 2), "deleting a room cascades to its players")
}

func TestMemoryWaitingRooms(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.SaveRoom(ctx, RoomRecord{RoomID: "B", Status: "waiting"}))
	require.NoError(t, m.SaveRoom(ctx, RoomRecord{RoomID: "A", Status: "waiting"}))
	require.NoError(t, m.SaveRoom(ctx, RoomRecord{RoomID: "C", Status: "playing"}))

	rooms, err := m.WaitingRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "A", rooms[0].RoomID)
	assert.Equal(t, "B", rooms[1].RoomID)
}

func TestMemoryLeaderboard(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.SaveHistory(ctx, HistoryRecord{
		RoomID:       "R1",
		WinnerNumber: 2,
		GameData: snapshotJSON(t, []snapshotPlayer{
			{Number: 1, Score: 500, Finished: true},
			{Number: 2, Score: 700, Finished: true},
		}),
		CompletedAt: time.Now(),
	}))
	require.NoError(t, m.SaveHistory(ctx, HistoryRecord{
		RoomID:       "R2",
		WinnerNumber: 1,
		GameData: snapshotJSON(t, []snapshotPlayer{
			{Number: 1, Score: 400, Finished: true},
			{Number: 3, Score: 100, Finished: false},
		}),
		CompletedAt: time.Now(),
	}))

	entries, err := m.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, LeaderboardEntry{PlayerNumber: 1, TotalScore: 900, GamesFinished: 2}, entries[0])
	assert.Equal(t, LeaderboardEntry{PlayerNumber: 2, TotalScore: 700, GamesFinished: 1}, entries[1])
	assert.Equal(t, LeaderboardEntry{PlayerNumber: 3, TotalScore: 100, GamesFinished: 0}, entries[2])
}

func TestMemoryLeaderboardLimit(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	players := make([]snapshotPlayer, 0, 4)
	for n := 1; n <= 4; n++ {
		players = append(players, snapshotPlayer{Number: n, Score: n * 10, Finished: true})
	}
	require.NoError(t, m.SaveHistory(ctx, HistoryRecord{RoomID: "R1", GameData: snapshotJSON(t, players)}))

	entries, err := m.Leaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 4, entries[0].PlayerNumber, "ordered by total score descending")
}

func TestMemoryLeaderboardCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.SaveHistory(ctx, HistoryRecord{RoomID: "R1", GameData: []byte("not json")}))

	_, err := m.Leaderboard(ctx, 10)
	assert.Error(t, err)
}
