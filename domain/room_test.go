package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoomID_IsBlank(t *testing.T) {
	req := require.New(t)

	req.True(RoomID("").IsBlank())
	req.True(RoomID("   ").IsBlank())
	req.False(RoomID("lunch-42").IsBlank())
}

func TestParticipant_IsBlank(t *testing.T) {
	req := require.New(t)

	req.True(Participant("\t").IsBlank())
	req.False(Participant("alice").IsBlank())
}
