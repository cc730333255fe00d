package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"room-lab/auth"
	"room-lab/contract"
	"room-lab/domain"
	"room-lab/domain/corpse"
	"room-lab/domain/event"
	"room-lab/errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"
)

type CorpseConfig struct {
	MasterPassword string
	// EnforceLock rejects appends from connections that didn't unlock
	// a password protected room.
	EnforceLock bool
	SearchLimit int
	// PasswordChecks caps concurrent argon2 runs, each one allocating
	// auth.Memory KiB.
	PasswordChecks int
}

// CorpseCoordinator applies text room operations. Every operation that
// reads or writes the store runs under storeMu so load/modify/save cycles
// never interleave and no append is lost.
type CorpseCoordinator struct {
	log         *slog.Logger
	storeMu     sync.Mutex
	loaded      bool
	rooms       *Registry[*corpse.Room]
	repository  contract.ITextRoomRepository
	index       contract.ISearchIndex
	moderator   contract.IModerator
	broadcaster contract.Broadcaster
	clock       contract.Clock
	hashing     *semaphore.Weighted
	cfg         CorpseConfig
}

// NewCorpseCoordinator accepts a nil index or moderator to disable them.
func NewCorpseCoordinator(log *slog.Logger, repository contract.ITextRoomRepository, index contract.ISearchIndex,
	moderator contract.IModerator, broadcaster contract.Broadcaster, clock contract.Clock, cfg CorpseConfig) *CorpseCoordinator {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 20
	}
	if cfg.PasswordChecks <= 0 {
		cfg.PasswordChecks = 4
	}
	return &CorpseCoordinator{
		log:         log,
		rooms:       NewRegistry[*corpse.Room](),
		repository:  repository,
		index:       index,
		moderator:   moderator,
		broadcaster: broadcaster,
		clock:       clock,
		hashing:     semaphore.NewWeighted(int64(cfg.PasswordChecks)),
		cfg:         cfg,
	}
}

// Load reads the store into memory and indexes public rooms.
func (c *CorpseCoordinator) Load(ctx context.Context) error {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	return c.ensureLoadedLocked(ctx)
}

func (c *CorpseCoordinator) ensureLoadedLocked(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	data, err := c.repository.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrStoreUnavailable, err)
	}
	for id, d := range data {
		room := corpse.FromData(id, d)
		c.rooms.Store(id, room)
		c.indexLocked(ctx, room)
	}
	c.loaded = true
	c.log.Info("Text rooms loaded", "count", len(data))
	return nil
}

// room returns a copy of the cached room.
func (c *CorpseCoordinator) room(id domain.RoomID) (*corpse.Room, bool) {
	var copied *corpse.Room
	ok := c.rooms.View(id, func(room *corpse.Room) {
		r := *room
		copied = &r
	})
	return copied, ok
}

func (c *CorpseCoordinator) snapshotLocked() map[domain.RoomID]corpse.RoomData {
	data := make(map[domain.RoomID]corpse.RoomData, c.rooms.Len())
	c.rooms.Each(func(id domain.RoomID, room *corpse.Room) bool {
		data[id] = room.RoomData
		return false
	})
	return data
}

// commitLocked persists the mapping with next applied, then updates the cache.
// The cache is left untouched when the store refuses the write.
func (c *CorpseCoordinator) commitLocked(ctx context.Context, next *corpse.Room) error {
	data := c.snapshotLocked()
	data[next.ID] = next.RoomData
	if err := c.repository.Save(ctx, data); err != nil {
		return fmt.Errorf("%w: save room %s: %w", errors.ErrStoreUnavailable, next.ID, err)
	}
	c.rooms.Store(next.ID, next)
	c.indexLocked(ctx, next)
	return nil
}

// indexLocked keeps only public rooms searchable. Index failures are logged,
// the store stays the source of truth.
func (c *CorpseCoordinator) indexLocked(ctx context.Context, room *corpse.Room) {
	if c.index == nil {
		return
	}
	var err error
	if room.IsPublic {
		err = c.index.Index(ctx, room.ID, room.Text)
	} else {
		err = c.index.Remove(ctx, room.ID)
	}
	if err != nil {
		c.log.Warn("Search index update failed", "room", room.ID, "error", err)
	}
}

// CreateRoom fails when the id is taken. The password is stored hashed.
func (c *CorpseCoordinator) CreateRoom(ctx context.Context, roomID domain.RoomID, password string, isPublic bool) error {
	if roomID.IsBlank() {
		return fmt.Errorf("%w: room id is required", errors.ErrValidation)
	}
	if err := auth.ValidateRoomPassword(password); err != nil {
		return err
	}
	var hash string
	if password != "" {
		if err := c.hashing.Acquire(ctx, 1); err != nil {
			return err
		}
		h, err := auth.HashPassword(password)
		c.hashing.Release(1)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}

	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	if _, exists := c.room(roomID); exists {
		return fmt.Errorf("%w: %s", errors.ErrRoomAlreadyExists, roomID)
	}
	room := corpse.NewRoom(roomID, c.clock.Now())
	room.Password = hash
	room.IsPublic = isPublic
	if err := c.commitLocked(ctx, room); err != nil {
		return err
	}
	c.log.Info("Text room created", "room", roomID, "public", isPublic, "protected", hash != "")
	if hash != "" {
		// connections that joined the id before it existed never presented the password
		for _, connID := range c.rooms.LockRoom(roomID) {
			c.broadcaster.EmitToClient(connID, event.NewRoomData(corpse.JoinResult{RoomID: roomID, IsLocked: true}))
		}
	}
	if isPublic {
		c.broadcaster.EmitToAll(event.NewPublicRooms(c.publicRoomsLocked()))
	}
	return nil
}

// Join never fails on a wrong password: the connection is bound in
// locked state and receives the room text along with the lock flag.
func (c *CorpseCoordinator) Join(ctx context.Context, connID domain.ConnectionID, roomID domain.RoomID, password string) (corpse.JoinResult, error) {
	if roomID.IsBlank() {
		return corpse.JoinResult{}, fmt.Errorf("%w: room id is required", errors.ErrValidation)
	}
	room, err := c.lookup(ctx, roomID)
	if err != nil {
		return corpse.JoinResult{}, err
	}

	locked := false
	if room != nil {
		// argon2 runs outside the store lock
		ok, err := c.checkPassword(ctx, room.Password, password)
		if err != nil {
			return corpse.JoinResult{}, err
		}
		locked = !ok
	}

	c.storeMu.Lock()
	text := ""
	if current, exists := c.room(roomID); exists {
		text = current.Text
		if room == nil && current.HasPassword() {
			locked = true
		}
	}
	prev, hadPrev := c.rooms.Bind(connID, Binding{RoomID: roomID, Locked: locked})
	c.storeMu.Unlock()
	if hadPrev && prev.RoomID != roomID {
		c.broadcaster.Unsubscribe(connID, prev.RoomID)
	}
	c.broadcaster.Subscribe(connID, roomID)

	result := corpse.JoinResult{RoomID: roomID, Text: text, IsLocked: locked}
	c.broadcaster.EmitToClient(connID, event.NewRoomData(result))
	c.log.Debug("Connection joined text room", "conn", connID, "room", roomID, "locked", locked)
	return result, nil
}

// lookup returns a copy of the room, or nil when it doesn't exist.
func (c *CorpseCoordinator) lookup(ctx context.Context, roomID domain.RoomID) (*corpse.Room, error) {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	room, ok := c.room(roomID)
	if !ok {
		return nil, nil
	}
	return room, nil
}

// Unlock succeeds for a missing room or a room without password.
func (c *CorpseCoordinator) Unlock(ctx context.Context, connID domain.ConnectionID, roomID domain.RoomID, password string) error {
	if roomID.IsBlank() {
		return fmt.Errorf("%w: room id is required", errors.ErrValidation)
	}
	room, err := c.lookup(ctx, roomID)
	if err != nil {
		return err
	}
	if room != nil {
		ok, err := c.checkPassword(ctx, room.Password, password)
		if err != nil {
			return err
		}
		if !ok {
			c.log.Debug("Wrong room password", "conn", connID, "room", roomID)
			return fmt.Errorf("%w: room %s", errors.ErrInvalidPassword, roomID)
		}
	}

	c.storeMu.Lock()
	if current, exists := c.room(roomID); room == nil && exists && current.HasPassword() {
		c.storeMu.Unlock()
		return fmt.Errorf("%w: room %s", errors.ErrInvalidPassword, roomID)
	}
	c.rooms.SetLocked(connID, roomID, false)
	c.storeMu.Unlock()
	c.broadcaster.EmitToClient(connID, event.NewRoomUnlocked(roomID))
	return nil
}

// checkPassword bounds the number of concurrent argon2 verifications.
// Cheap checks (no password, master, legacy plaintext) skip the queue.
func (c *CorpseCoordinator) checkPassword(ctx context.Context, stored, presented string) (bool, error) {
	if auth.IsHashed(stored) && presented != "" && !auth.MatchesMaster(presented, c.cfg.MasterPassword) {
		if err := c.hashing.Acquire(ctx, 1); err != nil {
			return false, err
		}
		defer c.hashing.Release(1)
	}
	return auth.VerifyRoomPassword(stored, presented, c.cfg.MasterPassword), nil
}

func (c *CorpseCoordinator) unlockedFor(connID domain.ConnectionID, room *corpse.Room) bool {
	if !room.HasPassword() {
		return true
	}
	b, ok := c.rooms.Binding(connID)
	return ok && b.RoomID == room.ID && !b.Locked
}

// Append adds text at the end of the room, creating a public room when
// missing, then broadcasts the full text to the room.
func (c *CorpseCoordinator) Append(ctx context.Context, connID domain.ConnectionID, roomID domain.RoomID, text string) (string, error) {
	if roomID.IsBlank() || strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: room id and text are required", errors.ErrValidation)
	}
	if c.moderator != nil {
		censored, words := c.moderator.Censor(text)
		if len(words) > 0 {
			c.log.Debug("Censored words in append", "room", roomID, "count", len(words))
		}
		text = censored
	}

	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return "", err
	}
	now := c.clock.Now()
	current, ok := c.room(roomID)
	if !ok {
		current = corpse.NewRoom(roomID, now)
	}
	if c.cfg.EnforceLock && !c.unlockedFor(connID, current) {
		return "", fmt.Errorf("%w: %s", errors.ErrRoomLocked, roomID)
	}
	next, changed := current.Append(text, now)
	if !changed {
		return "", fmt.Errorf("%w: blank text", errors.ErrValidation)
	}
	if err := c.commitLocked(ctx, next); err != nil {
		return "", err
	}
	c.broadcaster.EmitToRoom(roomID, event.NewTextUpdated(roomID, next.Text))
	if !ok {
		c.broadcaster.EmitToAll(event.NewPublicRooms(c.publicRoomsLocked()))
	}
	return next.Text, nil
}

// SetText replaces the room text verbatim. It is an administrative path
// guarded by the master password at the transport layer.
func (c *CorpseCoordinator) SetText(ctx context.Context, roomID domain.RoomID, text string) error {
	if roomID.IsBlank() {
		return fmt.Errorf("%w: room id is required", errors.ErrValidation)
	}
	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	now := c.clock.Now()
	current, ok := c.room(roomID)
	if !ok {
		current = corpse.NewRoom(roomID, now)
	}
	next := current.WithText(text, now)
	if err := c.commitLocked(ctx, next); err != nil {
		return err
	}
	c.log.Info("Text room overwritten", "room", roomID)
	c.broadcaster.EmitToRoom(roomID, event.NewTextUpdated(roomID, next.Text))
	if !ok {
		c.broadcaster.EmitToAll(event.NewPublicRooms(c.publicRoomsLocked()))
	}
	return nil
}

// GetRoomData returns "" for an unknown room.
func (c *CorpseCoordinator) GetRoomData(ctx context.Context, roomID domain.RoomID) (string, error) {
	room, err := c.lookup(ctx, roomID)
	if err != nil || room == nil {
		return "", err
	}
	return room.Text, nil
}

func (c *CorpseCoordinator) SendRoomData(ctx context.Context, connID domain.ConnectionID, roomID domain.RoomID) error {
	text, err := c.GetRoomData(ctx, roomID)
	if err != nil {
		return err
	}
	locked := false
	if b, ok := c.rooms.Binding(connID); ok && b.RoomID == roomID {
		locked = b.Locked
	}
	c.broadcaster.EmitToClient(connID, event.NewRoomData(corpse.JoinResult{RoomID: roomID, Text: text, IsLocked: locked}))
	return nil
}

func (c *CorpseCoordinator) ListPublicRooms(ctx context.Context) ([]domain.RoomID, error) {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return c.publicRoomsLocked(), nil
}

func (c *CorpseCoordinator) publicRoomsLocked() []domain.RoomID {
	ids := []domain.RoomID{}
	c.rooms.Each(func(id domain.RoomID, room *corpse.Room) bool {
		if room.IsPublic {
			ids = append(ids, id)
		}
		return false
	})
	return ids
}

func (c *CorpseCoordinator) SendPublicRooms(ctx context.Context, connID domain.ConnectionID) error {
	ids, err := c.ListPublicRooms(ctx)
	if err != nil {
		return err
	}
	c.broadcaster.EmitToClient(connID, event.NewPublicRooms(ids))
	return nil
}

// Backup returns every room, private ones included.
func (c *CorpseCoordinator) Backup(ctx context.Context) (map[domain.RoomID]corpse.RoomData, error) {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return c.snapshotLocked(), nil
}

// Search only ever returns public rooms since private ones are not indexed.
func (c *CorpseCoordinator) Search(ctx context.Context, query string, limit int) ([]corpse.SearchHit, error) {
	if c.index == nil {
		return []corpse.SearchHit{}, nil
	}
	if limit <= 0 || limit > c.cfg.SearchLimit {
		limit = c.cfg.SearchLimit
	}
	hits, err := c.index.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	return hits, nil
}

func (c *CorpseCoordinator) VerifyMaster(password string) bool {
	return auth.MatchesMaster(password, c.cfg.MasterPassword)
}

func (c *CorpseCoordinator) Leave(ctx context.Context, connID domain.ConnectionID) {
	if b, ok := c.rooms.Unbind(connID); ok {
		c.broadcaster.Unsubscribe(connID, b.RoomID)
	}
}

// Stats reports the number of cached rooms and bound connections.
func (c *CorpseCoordinator) Stats() (rooms int, connections int) {
	return c.rooms.Len(), c.rooms.Connections()
}
