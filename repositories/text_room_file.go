package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"room-lab/contract"
	"room-lab/domain"
	"room-lab/domain/corpse"
	"sync"
)

// TextRoomFileRepository keeps every text room in a single JSON document
// keyed by room id. It reads files written by earlier deployments.
type TextRoomFileRepository struct {
	mu    sync.Mutex
	path  string
	log   *slog.Logger
	clock contract.Clock
}

func NewTextRoomFileRepository(path string, log *slog.Logger, clock contract.Clock) *TextRoomFileRepository {
	return &TextRoomFileRepository{path: path, log: log, clock: clock}
}

// Load creates an empty document on first use.
func (r *TextRoomFileRepository) Load(ctx context.Context) (map[domain.RoomID]corpse.RoomData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		r.log.Info("Text room file missing, creating it", "path", r.path)
		empty := map[domain.RoomID]corpse.RoomData{}
		return empty, r.writeLocked(empty)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	var document map[string]json.RawMessage
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}

	now := r.clock.Now()
	rooms := make(map[domain.RoomID]corpse.RoomData, len(document))
	migrated := false
	for key, value := range document {
		res, err := DecodeRoom(value, now)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", key, err)
		}
		if res.Skipped {
			r.log.Warn("Skipping malformed text room", "room", key)
			migrated = true
			continue
		}
		rooms[domain.RoomID(key)] = res.Data
		migrated = migrated || res.Migrated
	}

	if migrated {
		r.log.Info("Migrating legacy text room file", "path", r.path, "rooms", len(rooms))
		if err := r.writeLocked(rooms); err != nil {
			return nil, fmt.Errorf("persist migrated rooms: %w", err)
		}
	}
	return rooms, nil
}

func (r *TextRoomFileRepository) Save(ctx context.Context, rooms map[domain.RoomID]corpse.RoomData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(rooms)
}

// writeLocked replaces the file atomically through a temp file and rename.
func (r *TextRoomFileRepository) writeLocked(rooms map[domain.RoomID]corpse.RoomData) error {
	bytes, err := json.MarshalIndent(rooms, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(bytes); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}
