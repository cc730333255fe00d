package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"room-lab/contract"
	"room-lab/domain"
	"room-lab/domain/lunch"
	"room-lab/errors"
)

const (
	EventJoinRoom      = "joinRoom"
	EventAddSuggestion = "addSuggestion"
	EventVote          = "vote"
	EventGetRooms      = "getRooms"
)

type JoinLunchRequest struct {
	RoomID      domain.RoomID      `json:"roomId" validate:"required,max=128"`
	Participant domain.Participant `json:"participant" validate:"required,max=64"`
}

type SuggestionRequest struct {
	Text       string             `json:"text" validate:"required,max=280"`
	ProposedBy domain.Participant `json:"proposedBy" validate:"max=64"`
}

type AddSuggestionRequest struct {
	RoomID     domain.RoomID     `json:"roomId" validate:"required,max=128"`
	Suggestion SuggestionRequest `json:"suggestion"`
}

type VoteRequest struct {
	RoomID       domain.RoomID      `json:"roomId" validate:"required,max=128"`
	SuggestionID lunch.SuggestionID `json:"suggestionId" validate:"required"`
	Participant  domain.Participant `json:"participant" validate:"required,max=64"`
}

// LunchService decodes voting room events and forwards them to the coordinator.
type LunchService struct {
	log         *slog.Logger
	coordinator contract.ILunchCoordinator
	broadcaster contract.Broadcaster
}

func NewLunchService(log *slog.Logger, coordinator contract.ILunchCoordinator, broadcaster contract.Broadcaster) *LunchService {
	return &LunchService{log: log, coordinator: coordinator, broadcaster: broadcaster}
}

func (s *LunchService) Connect(ctx context.Context, connID domain.ConnectionID) {
	s.coordinator.SendActiveRooms(ctx, connID)
}

func (s *LunchService) Disconnect(ctx context.Context, connID domain.ConnectionID) {
	s.coordinator.Leave(ctx, connID)
}

func (s *LunchService) Handle(ctx context.Context, connID domain.ConnectionID, name string, data json.RawMessage) {
	var err error
	switch name {
	case EventJoinRoom:
		var req JoinLunchRequest
		if err = decode(data, &req); err == nil {
			_, err = s.coordinator.Join(ctx, connID, req.RoomID, req.Participant)
		}
	case EventAddSuggestion:
		var req AddSuggestionRequest
		if err = decode(data, &req); err == nil {
			err = s.coordinator.Propose(ctx, req.RoomID, req.Suggestion.ProposedBy, req.Suggestion.Text)
		}
	case EventVote:
		var req VoteRequest
		if err = decode(data, &req); err == nil {
			err = s.coordinator.Vote(ctx, req.RoomID, req.Participant, req.SuggestionID)
		}
	case EventGetRooms:
		s.coordinator.SendActiveRooms(ctx, connID)
	default:
		err = errors.ErrUnknownEvent
	}
	reply(s.log, s.broadcaster, connID, name, err)
}
