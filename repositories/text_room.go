package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"room-lab/contract"
	"room-lab/domain"
	"room-lab/domain/corpse"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const TextRoomPrefix = "corpse:room:"

// TextRoomRepository keeps one Badger key per text room:
// "corpse:room:{room_id}" -> JSON record.
type TextRoomRepository struct {
	db    *badger.DB
	log   *slog.Logger
	clock contract.Clock
}

func NewTextRoomRepository(db *badger.DB, log *slog.Logger, clock contract.Clock) *TextRoomRepository {
	return &TextRoomRepository{db: db, log: log, clock: clock}
}

func textRoomKey(id domain.RoomID) []byte {
	return []byte(TextRoomPrefix + string(id))
}

// Load scans every text room. Legacy records are upgraded and written
// back in the same call so the migration only happens once.
func (r *TextRoomRepository) Load(ctx context.Context) (map[domain.RoomID]corpse.RoomData, error) {
	rooms := make(map[domain.RoomID]corpse.RoomData)
	migrated := make(map[domain.RoomID]corpse.RoomData)
	now := r.clock.Now()

	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(TextRoomPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			id := domain.RoomID(strings.TrimPrefix(string(item.Key()), TextRoomPrefix))
			err := item.Value(func(value []byte) error {
				res, err := DecodeRoom(value, now)
				if err != nil {
					return fmt.Errorf("room %s: %w", id, err)
				}
				if res.Skipped {
					r.log.Warn("Skipping malformed text room", "room", id)
					return nil
				}
				rooms[id] = res.Data
				if res.Migrated {
					migrated[id] = res.Data
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(migrated) > 0 {
		r.log.Info("Migrating legacy text rooms", "count", len(migrated))
		if err := r.write(migrated, nil); err != nil {
			return nil, fmt.Errorf("persist migrated rooms: %w", err)
		}
	}
	return rooms, nil
}

// Save replaces the whole mapping: rooms missing from it are deleted.
func (r *TextRoomRepository) Save(ctx context.Context, rooms map[domain.RoomID]corpse.RoomData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var stale []domain.RoomID
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(TextRoomPrefix)
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := domain.RoomID(strings.TrimPrefix(string(it.Item().Key()), TextRoomPrefix))
			if _, ok := rooms[id]; !ok {
				stale = append(stale, id)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.write(rooms, stale)
}

// write uses a WriteBatch so large mappings don't hit the transaction size limit.
func (r *TextRoomRepository) write(rooms map[domain.RoomID]corpse.RoomData, stale []domain.RoomID) error {
	wb := r.db.NewWriteBatch()
	defer wb.Cancel()

	for id, data := range rooms {
		bytes, err := EncodeRoom(data)
		if err != nil {
			return err
		}
		if err := wb.Set(textRoomKey(id), bytes); err != nil {
			return err
		}
	}
	for _, id := range stale {
		if err := wb.Delete(textRoomKey(id)); err != nil {
			return err
		}
	}
	return wb.Flush()
}
