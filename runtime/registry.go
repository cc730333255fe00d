package runtime

import (
	"room-lab/domain"
	"sort"
	"sync"
)

// Binding records which room a connection joined, and under which name.
// Locked is only meaningful for password protected text rooms.
type Binding struct {
	RoomID      domain.RoomID
	Participant domain.Participant
	Locked      bool
}

type entry[R any] struct {
	mu      sync.Mutex
	room    R
	deleted bool
}

// Registry owns the live rooms of one policy and the connection index.
// Every room has its own lock so operations on different rooms never
// serialize. The registry lock is never held while waiting on a room lock.
type Registry[R any] struct {
	mu          sync.RWMutex
	rooms       map[domain.RoomID]*entry[R]
	connMu      sync.RWMutex
	connections map[domain.ConnectionID]Binding
}

func NewRegistry[R any]() *Registry[R] {
	return &Registry[R]{
		rooms:       make(map[domain.RoomID]*entry[R]),
		connections: make(map[domain.ConnectionID]Binding),
	}
}

func (r *Registry[R]) lookup(id domain.RoomID) (*entry[R], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rooms[id]
	return e, ok
}

func (r *Registry[R]) lookupOrInsert(id domain.RoomID, factory func() R) (*entry[R], bool) {
	if e, ok := r.lookup(id); ok {
		return e, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rooms[id]; ok {
		return e, false
	}
	e := &entry[R]{room: factory()}
	r.rooms[id] = e
	return e, true
}

// evictLocked must be called with e.mu held.
func (r *Registry[R]) evictLocked(id domain.RoomID, e *entry[R]) {
	e.deleted = true
	r.mu.Lock()
	if r.rooms[id] == e {
		delete(r.rooms, id)
	}
	r.mu.Unlock()
}

// View runs fn with the room locked. It returns false when the room is unknown.
func (r *Registry[R]) View(id domain.RoomID, fn func(room R)) bool {
	return r.Update(id, func(room R) bool {
		fn(room)
		return false
	})
}

// Update runs fn with the room locked and evicts the room when fn returns true.
func (r *Registry[R]) Update(id domain.RoomID, fn func(room R) (evict bool)) bool {
	e, ok := r.lookup(id)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return false
	}
	if fn(e.room) {
		r.evictLocked(id, e)
	}
	return true
}

// UpdateOrCreate is Update with the room created by factory when missing.
// A room evicted concurrently is transparently recreated.
func (r *Registry[R]) UpdateOrCreate(id domain.RoomID, factory func() R, fn func(room R, created bool) (evict bool)) {
	for {
		e, created := r.lookupOrInsert(id, factory)
		e.mu.Lock()
		if e.deleted {
			e.mu.Unlock()
			continue
		}
		if fn(e.room, created) {
			r.evictLocked(id, e)
		}
		e.mu.Unlock()
		return
	}
}

// Store replaces the room value, creating the entry when needed.
func (r *Registry[R]) Store(id domain.RoomID, room R) {
	for {
		e, created := r.lookupOrInsert(id, func() R { return room })
		e.mu.Lock()
		if e.deleted {
			e.mu.Unlock()
			continue
		}
		if !created {
			e.room = room
		}
		e.mu.Unlock()
		return
	}
}

func (r *Registry[R]) Delete(id domain.RoomID) bool {
	return r.Update(id, func(R) bool { return true })
}

// Each visits every room in id order, one lock at a time.
func (r *Registry[R]) Each(fn func(id domain.RoomID, room R) (evict bool)) {
	r.mu.RLock()
	ids := make([]domain.RoomID, 0, len(r.rooms))
	entries := make(map[domain.RoomID]*entry[R], len(r.rooms))
	for id, e := range r.rooms {
		ids = append(ids, id)
		entries[id] = e
	}
	r.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		e := entries[id]
		e.mu.Lock()
		if !e.deleted && fn(id, e.room) {
			r.evictLocked(id, e)
		}
		e.mu.Unlock()
	}
}

func (r *Registry[R]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Bind attaches a connection to a room and returns the previous binding.
func (r *Registry[R]) Bind(connID domain.ConnectionID, b Binding) (Binding, bool) {
	r.connMu.Lock()
	defer r.connMu.Unlock()
	prev, ok := r.connections[connID]
	r.connections[connID] = b
	return prev, ok
}

func (r *Registry[R]) Unbind(connID domain.ConnectionID) (Binding, bool) {
	r.connMu.Lock()
	defer r.connMu.Unlock()
	b, ok := r.connections[connID]
	delete(r.connections, connID)
	return b, ok
}

func (r *Registry[R]) Binding(connID domain.ConnectionID) (Binding, bool) {
	r.connMu.RLock()
	defer r.connMu.RUnlock()
	b, ok := r.connections[connID]
	return b, ok
}

// SetLocked flips the lock flag only if the connection is still bound to roomID.
func (r *Registry[R]) SetLocked(connID domain.ConnectionID, roomID domain.RoomID, locked bool) bool {
	r.connMu.Lock()
	defer r.connMu.Unlock()
	b, ok := r.connections[connID]
	if !ok || b.RoomID != roomID {
		return false
	}
	b.Locked = locked
	r.connections[connID] = b
	return true
}

// LockRoom locks every connection bound to roomID and returns them.
func (r *Registry[R]) LockRoom(roomID domain.RoomID) []domain.ConnectionID {
	r.connMu.Lock()
	defer r.connMu.Unlock()
	var locked []domain.ConnectionID
	for connID, b := range r.connections {
		if b.RoomID != roomID || b.Locked {
			continue
		}
		b.Locked = true
		r.connections[connID] = b
		locked = append(locked, connID)
	}
	sort.Slice(locked, func(i, j int) bool { return locked[i] < locked[j] })
	return locked
}

func (r *Registry[R]) Connections() int {
	r.connMu.RLock()
	defer r.connMu.RUnlock()
	return len(r.connections)
}
