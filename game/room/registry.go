package room

import (
	"sync"

	"github.com/sudokuarena/server/game/engine"
)

// Registry owns the mapping of room identifier to Room. It is injected into
// the coordinator rather than held as process-global state so tests can run
// against isolated instances.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room with the given id, creating it lazily with the
// provided rules. The second result reports whether the room was created by
// this call.
func (reg *Registry) GetOrCreate(id string, rules *engine.Rules) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if rm, ok := reg.rooms[id]; ok {
		return rm, false
	}
	rm := New(id, rules)
	reg.rooms[id] = rm
	return rm, true
}

// Get returns the room with the given id, if present.
func (reg *Registry) Get(id string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rm, ok := reg.rooms[id]
	return rm, ok
}

// Delete removes a room from the registry.
func (reg *Registry) Delete(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	delete(reg.rooms, id)
}

// List returns all active rooms.
func (reg *Registry) List() []*Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	result := make([]*Room, 0, len(reg.rooms))
	for _, rm := range reg.rooms {
		result = append(result, rm)
	}
	return result
}

// Count returns the number of active rooms.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
