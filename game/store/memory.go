package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

type playerKey struct {
	roomID string
	number int
}

// Memory is a map-backed Store used by tests and storeless development runs.
type Memory struct {
	mu      sync.RWMutex
	rooms   map[string]RoomRecord
	players map[playerKey]PlayerRecord
	history []HistoryRecord
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		rooms:   make(map[string]RoomRecord),
		players: make(map[playerKey]PlayerRecord),
	}
}

// SaveRoom upserts a room record.
func (m *Memory) SaveRoom(ctx context.Context, rec RoomRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[rec.RoomID] = rec
	return nil
}

// SavePlayer upserts a player record.
func (m *Memory) SavePlayer(ctx context.Context, rec PlayerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[playerKey{rec.RoomID, rec.Number}] = rec
	return nil
}

// DeletePlayer removes one player record.
func (m *Memory) DeletePlayer(ctx context.Context, roomID string, number int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, playerKey{roomID, number})
	return nil
}

// DeleteRoom removes the room and all of its players.
func (m *Memory) DeleteRoom(ctx context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.rooms, roomID)
	for k := range m.players {
		if k.roomID == roomID {
			delete(m.players, k)
		}
	}
	return nil
}

// SaveHistory appends a completed-game record.
func (m *Memory) SaveHistory(ctx context.Context, rec HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, rec)
	return nil
}

// WaitingRooms lists rooms persisted with status waiting.
func (m *Memory) WaitingRooms(ctx context.Context) ([]RoomRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]RoomRecord, 0)
	for _, rec := range m.rooms {
		if rec.Status == "waiting" {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RoomID < result[j].RoomID })
	return result, nil
}

// snapshotPlayer is the subset of a history snapshot's player entries needed
// for leaderboard aggregation.
type snapshotPlayer struct {
	Number   int  `json:"playerNumber"`
	Score    int  `json:"score"`
	Finished bool `json:"finished"`
}

type snapshotData struct {
	Players []snapshotPlayer `json:"players"`
}

// Leaderboard aggregates history snapshots per player number.
func (m *Memory) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals := make(map[int]*LeaderboardEntry)
	for _, rec := range m.history {
		var snap snapshotData
		if err := json.Unmarshal(rec.GameData, &snap); err != nil {
			return nil, fmt.Errorf("corrupt history snapshot for room %s: %w", rec.RoomID, err)
		}
		for _, p := range snap.Players {
			entry, ok := totals[p.Number]
			if !ok {
				entry = &LeaderboardEntry{PlayerNumber: p.Number}
				totals[p.Number] = entry
			}
			entry.TotalScore += p.Score
			if p.Finished {
				entry.GamesFinished++
			}
		}
	}

	result := make([]LeaderboardEntry, 0, len(totals))
	for _, entry := range totals {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalScore != result[j].TotalScore {
			return result[i].TotalScore > result[j].TotalScore
		}
		return result[i].PlayerNumber < result[j].PlayerNumber
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() {}

// HistoryCount reports how many history records have been written. Test
// helper; not part of the Store interface.
func (m *Memory) HistoryCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.history)
}

// HasRoom reports whether a room row is currently persisted. Test helper.
func (m *Memory) HasRoom(roomID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rooms[roomID]
	return ok
}

// HasPlayer reports whether a player row is currently persisted. Test helper.
func (m *Memory) HasPlayer(roomID string, number int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.players[playerKey{roomID, number}]
	return ok
}
