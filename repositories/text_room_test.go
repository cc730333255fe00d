package repositories

import (
	"context"
	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"log/slog"
	"room-lab/domain"
	"room-lab/domain/corpse"
	"testing"
	"time"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func openBadger(t *testing.T) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTextRoomRepository_SaveAndLoad(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewTextRoomRepository(openBadger(t), slog.Default(), fixedClock{now})

	// Given an empty store
	rooms, err := repository.Load(ctx)
	req.NoError(err)
	req.Empty(rooms)

	// When two rooms are saved
	saved := map[domain.RoomID]corpse.RoomData{
		"story": {Text: "Once", CreatedAt: now, UpdatedAt: now, IsPublic: true},
		"diary": {Text: "Secret", CreatedAt: now, UpdatedAt: now, Password: "hash", IsPublic: false},
	}
	req.NoError(repository.Save(ctx, saved))

	// Then they are loaded back identically
	rooms, err = repository.Load(ctx)
	req.NoError(err)
	req.Len(rooms, 2)
	req.Equal(saved["diary"].Password, rooms["diary"].Password)
	req.True(saved["story"].CreatedAt.Equal(rooms["story"].CreatedAt))
	req.False(rooms["diary"].IsPublic)
}

func TestTextRoomRepository_Save_DeletesMissingRooms(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewTextRoomRepository(openBadger(t), slog.Default(), fixedClock{now})

	req.NoError(repository.Save(ctx, map[domain.RoomID]corpse.RoomData{
		"a": {Text: "a", IsPublic: true},
		"b": {Text: "b", IsPublic: true},
	}))
	req.NoError(repository.Save(ctx, map[domain.RoomID]corpse.RoomData{
		"b": {Text: "bb", IsPublic: true},
	}))

	rooms, err := repository.Load(ctx)
	req.NoError(err)
	req.Len(rooms, 1)
	req.Equal("bb", rooms["b"].Text)
}

func TestTextRoomRepository_Load_MigratesLegacyOnce(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	db := openBadger(t)

	// Given a room saved as a bare string
	err := db.Update(func(txn *badger.Txn) error {
		return txn.Set(textRoomKey("old"), []byte(`"legacy text"`))
	})
	req.NoError(err)

	// When loading
	repository := NewTextRoomRepository(db, slog.Default(), fixedClock{now})
	rooms, err := repository.Load(ctx)
	req.NoError(err)

	// Then the room is upgraded and public
	req.Equal("legacy text", rooms["old"].Text)
	req.True(rooms["old"].IsPublic)

	// And the store now holds the structured form
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(textRoomKey("old"))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			res, err := DecodeRoom(value, now.Add(time.Hour))
			req.NoError(err)
			req.False(res.Migrated)
			req.True(res.Data.CreatedAt.Equal(now))
			return nil
		})
	})
	req.NoError(err)
}

func TestTextRoomRepository_Load_IgnoresOtherPrefixes(t *testing.T) {
	req := require.New(t)
	db := openBadger(t)
	err := db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("other:key"), []byte(`"not a room"`))
	})
	req.NoError(err)

	rooms, err := NewTextRoomRepository(db, slog.Default(), fixedClock{now}).Load(context.Background())

	req.NoError(err)
	req.Empty(rooms)
}
