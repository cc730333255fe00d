package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"room-lab/contract"
	"room-lab/domain"
	"room-lab/errors"
)

const (
	EventCreateRoom  = "createRoom"
	EventUnlockRoom  = "unlockRoom"
	EventAppendText  = "appendText"
	EventGetRoomData = "getRoomData"
)

type CreateTextRoomRequest struct {
	RoomID   domain.RoomID `json:"roomId" validate:"required,max=128"`
	Password string        `json:"password" validate:"max=72"`
	IsPublic *bool         `json:"isPublic"`
}

type JoinTextRoomRequest struct {
	RoomID   domain.RoomID `json:"roomId" validate:"required,max=128"`
	Password string        `json:"password" validate:"max=72"`
}

type AppendTextRequest struct {
	RoomID domain.RoomID `json:"roomId" validate:"required,max=128"`
	Text   string        `json:"text" validate:"required,max=4096"`
}

type RoomRequest struct {
	RoomID domain.RoomID `json:"roomId" validate:"required,max=128"`
}

// CorpseService decodes text room events and forwards them to the coordinator.
type CorpseService struct {
	log         *slog.Logger
	coordinator contract.ICorpseCoordinator
	broadcaster contract.Broadcaster
}

func NewCorpseService(log *slog.Logger, coordinator contract.ICorpseCoordinator, broadcaster contract.Broadcaster) *CorpseService {
	return &CorpseService{log: log, coordinator: coordinator, broadcaster: broadcaster}
}

func (s *CorpseService) Connect(ctx context.Context, connID domain.ConnectionID) {
	reply(s.log, s.broadcaster, connID, "connect", s.coordinator.SendPublicRooms(ctx, connID))
}

func (s *CorpseService) Disconnect(ctx context.Context, connID domain.ConnectionID) {
	s.coordinator.Leave(ctx, connID)
}

func (s *CorpseService) Handle(ctx context.Context, connID domain.ConnectionID, name string, data json.RawMessage) {
	var err error
	switch name {
	case EventCreateRoom:
		var req CreateTextRoomRequest
		if err = decode(data, &req); err == nil {
			isPublic := req.IsPublic == nil || *req.IsPublic
			err = s.coordinator.CreateRoom(ctx, req.RoomID, req.Password, isPublic)
		}
	case EventJoinRoom:
		var req JoinTextRoomRequest
		if err = decode(data, &req); err == nil {
			_, err = s.coordinator.Join(ctx, connID, req.RoomID, req.Password)
		}
	case EventUnlockRoom:
		var req JoinTextRoomRequest
		if err = decode(data, &req); err == nil {
			err = s.coordinator.Unlock(ctx, connID, req.RoomID, req.Password)
		}
	case EventAppendText:
		var req AppendTextRequest
		if err = decode(data, &req); err == nil {
			_, err = s.coordinator.Append(ctx, connID, req.RoomID, req.Text)
		}
	case EventGetRoomData:
		var req RoomRequest
		if err = decode(data, &req); err == nil {
			err = s.coordinator.SendRoomData(ctx, connID, req.RoomID)
		}
	case EventGetRooms:
		err = s.coordinator.SendPublicRooms(ctx, connID)
	default:
		err = errors.ErrUnknownEvent
	}
	reply(s.log, s.broadcaster, connID, name, err)
}
