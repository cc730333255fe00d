//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=../mocks/mock_repository.go -package=mocks
package contract

import (
	"context"
	"room-lab/domain"
	"room-lab/domain/corpse"
)

// ITextRoomRepository loads and saves the whole text room mapping at once.
// Load upgrades legacy records and persists the upgrade before returning.
type ITextRoomRepository interface {
	Load(ctx context.Context) (map[domain.RoomID]corpse.RoomData, error)
	Save(ctx context.Context, rooms map[domain.RoomID]corpse.RoomData) error
}

type ISearchIndex interface {
	Index(ctx context.Context, roomID domain.RoomID, text string) error
	Remove(ctx context.Context, roomID domain.RoomID) error
	Search(ctx context.Context, query string, limit int) ([]corpse.SearchHit, error)
}

type IModerator interface {
	Censor(input string) (string, []string)
}
