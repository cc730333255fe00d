// Package event lists the outbound events pushed to clients.
// Every event travels as {"event": <Type>, "data": <Payload>}.
package event

import (
	"time"

	"room-lab/domain"
	"room-lab/domain/corpse"
	"room-lab/domain/lunch"
)

type Type string

const (
	RoomState    Type = "roomState"
	ActiveRooms  Type = "activeRooms"
	RoomComplete Type = "roomComplete"
	TimeUpdate   Type = "timeUpdate"
	RoomData     Type = "roomData"
	TextUpdated  Type = "textUpdated"
	RoomUnlocked Type = "roomUnlocked"
	Error        Type = "error"
)

type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

type RoomCompleted struct {
	RoomID domain.RoomID         `json:"roomId"`
	Winner *lunch.SuggestionView `json:"winner"`
}

type TimeLeft struct {
	RoomID      domain.RoomID `json:"roomId"`
	SecondsLeft int           `json:"secondsLeft"`
}

type TextChanged struct {
	RoomID domain.RoomID `json:"roomId"`
	Text   string        `json:"text"`
}

type Unlocked struct {
	RoomID domain.RoomID `json:"roomId"`
}

type PublicRoom struct {
	ID domain.RoomID `json:"id"`
}

// ClientError is only sent to the connection that caused it.
type ClientError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newEvent(t Type, payload any) Event {
	return Event{Type: t, CreatedAt: time.Now(), Payload: payload}
}

func NewRoomState(snapshot lunch.Snapshot) Event {
	return newEvent(RoomState, snapshot)
}

func NewLunchRooms(rooms []lunch.Summary) Event {
	if rooms == nil {
		rooms = []lunch.Summary{}
	}
	return newEvent(ActiveRooms, rooms)
}

func NewRoomComplete(roomID domain.RoomID, winner *lunch.Suggestion) Event {
	payload := RoomCompleted{RoomID: roomID}
	if winner != nil {
		view := winner.View()
		payload.Winner = &view
	}
	return newEvent(RoomComplete, payload)
}

func NewTimeUpdate(roomID domain.RoomID, secondsLeft int) Event {
	return newEvent(TimeUpdate, TimeLeft{RoomID: roomID, SecondsLeft: secondsLeft})
}

func NewRoomData(result corpse.JoinResult) Event {
	return newEvent(RoomData, result)
}

func NewTextUpdated(roomID domain.RoomID, text string) Event {
	return newEvent(TextUpdated, TextChanged{RoomID: roomID, Text: text})
}

func NewRoomUnlocked(roomID domain.RoomID) Event {
	return newEvent(RoomUnlocked, Unlocked{RoomID: roomID})
}

func NewPublicRooms(ids []domain.RoomID) Event {
	rooms := make([]PublicRoom, 0, len(ids))
	for _, id := range ids {
		rooms = append(rooms, PublicRoom{ID: id})
	}
	return newEvent(ActiveRooms, rooms)
}

func NewError(code, message string) Event {
	return newEvent(Error, ClientError{Code: code, Message: message})
}
