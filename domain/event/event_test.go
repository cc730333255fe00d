package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"room-lab/domain"
	"room-lab/domain/lunch"
)

func TestNewRoomComplete_WithoutWinner(t *testing.T) {
	req := require.New(t)

	evt := NewRoomComplete("r1", nil)

	req.Equal(RoomComplete, evt.Type)
	payload, ok := evt.Payload.(RoomCompleted)
	req.True(ok)
	req.Equal(domain.RoomID("r1"), payload.RoomID)
	req.Nil(payload.Winner)
}

func TestNewRoomComplete_WithWinner(t *testing.T) {
	req := require.New(t)
	room := lunch.NewRoom("r1", time.Now())
	winner, _ := room.Propose("s1", "Pizza", "alice", time.Now())
	room.Vote("alice", "s1")

	evt := NewRoomComplete("r1", winner)

	payload := evt.Payload.(RoomCompleted)
	req.NotNil(payload.Winner)
	req.Equal("Pizza", payload.Winner.Text)
	req.Equal([]domain.Participant{"alice"}, payload.Winner.Votes)
}

func TestNewLunchRooms_NeverNil(t *testing.T) {
	req := require.New(t)

	evt := NewLunchRooms(nil)

	req.Equal(ActiveRooms, evt.Type)
	req.NotNil(evt.Payload)
	req.Empty(evt.Payload)
}

func TestNewPublicRooms(t *testing.T) {
	req := require.New(t)

	evt := NewPublicRooms([]domain.RoomID{"a", "b"})

	req.Equal([]PublicRoom{{ID: "a"}, {ID: "b"}}, evt.Payload)
}
