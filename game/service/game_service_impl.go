package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/sudokuarena/server/game/engine"
	"github.com/sudokuarena/server/game/room"
	"github.com/sudokuarena/server/game/store"
)

// persistTimeout bounds every background persistence write.
const persistTimeout = 2 * time.Second

// gameServiceImpl implements the GameService interface.
type gameServiceImpl struct {
	registry *room.Registry
	rules    RulesLoader
	store    store.Store

	// mu serializes every room mutation. Rooms and players carry no locks
	// of their own.
	mu sync.Mutex

	// persistWG tracks in-flight background writes so Flush can drain them.
	persistWG sync.WaitGroup
}

// NewGameService creates a new game coordinator.
func NewGameService(registry *room.Registry, rules RulesLoader, st store.Store) GameService {
	return &gameServiceImpl{
		registry: registry,
		rules:    rules,
		store:    st,
	}
}

// JoinRoom places the player into their requested slot, creating the room on
// first join. Every player receives a freshly generated puzzle of the same
// ruleset.
func (s *gameServiceImpl) JoinRoom(ctx context.Context, roomID string, playerNumber int, playerName, presetID string) (*JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := s.rules.Load(presetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ruleset %q: %w", presetID, err)
	}

	rm, created := s.registry.GetOrCreate(roomID, rules)

	// Check join invariants before paying for puzzle generation.
	if err := rm.CanJoin(playerNumber); err != nil {
		if created && rm.Empty() {
			s.registry.Delete(roomID)
		}
		return nil, err
	}

	puz, err := engine.Generate(rm.Rules)
	if err != nil {
		if created && rm.Empty() {
			s.registry.Delete(roomID)
		}
		return nil, fmt.Errorf("failed to generate puzzle: %w", err)
	}

	p, err := rm.Join(playerNumber, playerName, puz)
	if err != nil {
		if created && rm.Empty() {
			s.registry.Delete(roomID)
		}
		return nil, err
	}

	log.Printf("Player %d (%s) joined room %s (%d/%d players)", p.Number, p.Name, roomID, len(rm.Players), room.MaxPlayers)

	roomRec := roomRecord(rm)
	playerRec := playerRecord(p)
	s.persist("room "+roomID, func(ctx context.Context) error {
		if err := s.store.SaveRoom(ctx, roomRec); err != nil {
			return err
		}
		return s.store.SavePlayer(ctx, playerRec)
	})

	return &JoinResult{
		RoomID:       roomID,
		PlayerNumber: p.Number,
		PlayerName:   p.Name,
		Board:        p.Board,
		Room:         rm.Public(),
	}, nil
}

// PlaceDigit applies one digit placement. The second result is false when the
// event must be silently ignored.
func (s *gameServiceImpl) PlaceDigit(ctx context.Context, roomID string, playerNumber, row, col, digit int) (*PlaceResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.registry.Get(roomID)
	if !ok {
		return nil, false
	}

	placement, applied, completedNow := rm.Place(playerNumber, row, col, digit)
	if !applied {
		return nil, false
	}

	playerRec := playerRecord(rm.Players[playerNumber])
	s.persist(fmt.Sprintf("player %d in room %s", playerNumber, roomID), func(ctx context.Context) error {
		return s.store.SavePlayer(ctx, playerRec)
	})

	result := &PlaceResult{Placement: placement}
	if completedNow {
		result.RoomCompleted = true
		result.Winner = rm.Winner()
		log.Printf("Room %s completed, winner: player %d", roomID, result.Winner)
		state := rm.Public()
		result.FinalState = &state
		s.recordHistory(rm, result.Winner, state)
	}
	return result, true
}

// ClearCell empties one board cell. The second result is false when the event
// must be silently ignored.
func (s *gameServiceImpl) ClearCell(ctx context.Context, roomID string, playerNumber, row, col int) (*ClearResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.registry.Get(roomID)
	if !ok {
		return nil, false
	}
	if !rm.Clear(playerNumber, row, col) {
		return nil, false
	}

	p := rm.Players[playerNumber]
	playerRec := playerRecord(p)
	s.persist(fmt.Sprintf("player %d in room %s", playerNumber, roomID), func(ctx context.Context) error {
		return s.store.SavePlayer(ctx, playerRec)
	})

	return &ClearResult{
		PlayerNumber: playerNumber,
		Row:          row,
		Col:          col,
		Score:        p.Score,
		Completed:    p.CompletedCells,
	}, true
}

// LeaveRoom removes the player and tears the room down when it empties.
// Disconnects route through here as well. The second result is false when the
// room or player is unknown.
func (s *gameServiceImpl) LeaveRoom(ctx context.Context, roomID string, playerNumber int) (*LeaveResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.registry.Get(roomID)
	if !ok {
		return nil, false
	}
	if !rm.Remove(playerNumber) {
		return nil, false
	}

	if rm.Empty() {
		s.registry.Delete(roomID)
		s.persist("room "+roomID, func(ctx context.Context) error {
			return s.store.DeleteRoom(ctx, roomID)
		})
		return &LeaveResult{RoomDestroyed: true}, true
	}

	s.persist(fmt.Sprintf("player %d in room %s", playerNumber, roomID), func(ctx context.Context) error {
		return s.store.DeletePlayer(ctx, roomID, playerNumber)
	})
	state := rm.Public()
	return &LeaveResult{State: &state}, true
}

// RoomState returns the redacted snapshot of a live room.
func (s *gameServiceImpl) RoomState(ctx context.Context, roomID string) (*room.PublicState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.registry.Get(roomID)
	if !ok {
		return nil, room.ErrRoomNotFound
	}
	state := rm.Public()
	return &state, nil
}

// ListOpenRooms lists live rooms that still accept players, oldest first.
func (s *gameServiceImpl) ListOpenRooms(ctx context.Context) ([]RoomSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]RoomSummary, 0)
	for _, rm := range s.registry.List() {
		if rm.Status == room.StatusCompleted || len(rm.Players) >= room.MaxPlayers {
			continue
		}
		result = append(result, RoomSummary{
			RoomID:      rm.ID,
			Status:      rm.Status,
			PlayerCount: len(rm.Players),
			MaxPlayers:  room.MaxPlayers,
			CreatedAt:   rm.CreatedAt,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].RoomID < result[j].RoomID
	})
	return result, nil
}

// Leaderboard returns the top entries aggregated from completed-game history.
func (s *gameServiceImpl) Leaderboard(ctx context.Context, limit int) ([]store.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.Leaderboard(ctx, limit)
}

// CleanupStale deletes persisted waiting rooms whose live state did not
// survive a restart. History records are untouched.
func (s *gameServiceImpl) CleanupStale(ctx context.Context) error {
	stale, err := s.store.WaitingRooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stale rooms: %w", err)
	}
	for _, rec := range stale {
		if _, live := s.registry.Get(rec.RoomID); live {
			continue
		}
		if err := s.store.DeleteRoom(ctx, rec.RoomID); err != nil {
			return fmt.Errorf("failed to delete stale room %s: %w", rec.RoomID, err)
		}
	}
	return nil
}

// Flush blocks until every in-flight persistence write has drained.
func (s *gameServiceImpl) Flush() {
	s.persistWG.Wait()
}

// recordHistory persists the completed room status and exactly one history
// record for the finished game. Called with the mutex held; the write itself
// runs in the background.
func (s *gameServiceImpl) recordHistory(rm *room.Room, winner int, state room.PublicState) {
	roomRec := roomRecord(rm)

	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("Warning: failed to marshal history snapshot for room %s: %v", rm.ID, err)
		return
	}
	historyRec := store.HistoryRecord{
		RoomID:       rm.ID,
		WinnerNumber: winner,
		GameData:     data,
		CompletedAt:  time.Now(),
	}

	s.persist("history for room "+rm.ID, func(ctx context.Context) error {
		if err := s.store.SaveRoom(ctx, roomRec); err != nil {
			return err
		}
		return s.store.SaveHistory(ctx, historyRec)
	})
}

// persist runs fn on a background goroutine with a bounded timeout. Failures
// are logged and dropped; gameplay never waits on the store.
func (s *gameServiceImpl) persist(what string, fn func(ctx context.Context) error) {
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Printf("Warning: failed to persist %s: %v", what, err)
		}
	}()
}

// roomRecord and playerRecord snapshot live state into store records. Both
// must be called with the mutex held so the records are internally consistent
// by the time the background write reads them.
func roomRecord(rm *room.Room) store.RoomRecord {
	return store.RoomRecord{
		RoomID:    rm.ID,
		Status:    string(rm.Status),
		CreatedAt: rm.CreatedAt,
	}
}

func playerRecord(p *room.Player) store.PlayerRecord {
	board, _ := json.Marshal(p.Board)
	solution, _ := json.Marshal(p.Solution)
	return store.PlayerRecord{
		RoomID:        p.RoomID,
		Number:        p.Number,
		Score:         p.Score,
		Board:         board,
		Solution:      solution,
		Finished:      p.Finished,
		FinishSeconds: p.FinishSeconds,
		JoinedAt:      p.JoinedAt,
	}
}
