//go:generate go run go.uber.org/mock/mockgen -source=coordinator.go -destination=../mocks/mock_coordinator.go -package=mocks
package contract

import (
	"context"
	"room-lab/domain"
	"room-lab/domain/corpse"
	"room-lab/domain/lunch"
)

type ILunchCoordinator interface {
	Join(ctx context.Context, connID domain.ConnectionID, roomID domain.RoomID, participant domain.Participant) (lunch.Snapshot, error)
	Propose(ctx context.Context, roomID domain.RoomID, participant domain.Participant, text string) error
	Vote(ctx context.Context, roomID domain.RoomID, participant domain.Participant, suggestionID lunch.SuggestionID) error
	Leave(ctx context.Context, connID domain.ConnectionID)
	SendActiveRooms(ctx context.Context, connID domain.ConnectionID)
	ActiveRooms() []lunch.Summary
	Room(roomID domain.RoomID) (lunch.Snapshot, bool)
}

type ICorpseCoordinator interface {
	CreateRoom(ctx context.Context, roomID domain.RoomID, password string, isPublic bool) error
	Join(ctx context.Context, connID domain.ConnectionID, roomID domain.RoomID, password string) (corpse.JoinResult, error)
	Unlock(ctx context.Context, connID domain.ConnectionID, roomID domain.RoomID, password string) error
	Append(ctx context.Context, connID domain.ConnectionID, roomID domain.RoomID, text string) (string, error)
	SetText(ctx context.Context, roomID domain.RoomID, text string) error
	GetRoomData(ctx context.Context, roomID domain.RoomID) (string, error)
	SendRoomData(ctx context.Context, connID domain.ConnectionID, roomID domain.RoomID) error
	ListPublicRooms(ctx context.Context) ([]domain.RoomID, error)
	SendPublicRooms(ctx context.Context, connID domain.ConnectionID) error
	Backup(ctx context.Context) (map[domain.RoomID]corpse.RoomData, error)
	Search(ctx context.Context, query string, limit int) ([]corpse.SearchHit, error)
	VerifyMaster(password string) bool
	Leave(ctx context.Context, connID domain.ConnectionID)
}
