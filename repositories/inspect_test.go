package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInspectMapper(t *testing.T) {
	req := require.New(t)

	current := InspectMapper(TextRoomPrefix+"alpha",
		[]byte(`{"text":"Hello","createdAt":"2024-01-01T10:00:00Z","updatedAt":"2024-01-01T11:00:00Z","password":"h","isPublic":false}`))
	req.Equal("alpha", current.RoomID)
	req.Equal("false", current.Public)
	req.Equal("true", current.Protected)
	req.Equal("2024-01-01 11:00:00", current.Updated)
	req.Equal("5 chars", current.Detail)

	legacy := InspectMapper(TextRoomPrefix+"beta", []byte(`"Bonjour"`))
	req.Equal("true", legacy.Public)
	req.Equal("7 chars, legacy", legacy.Detail)

	broken := InspectMapper(TextRoomPrefix+"gamma", []byte(`{broken`))
	req.Contains(broken.Detail, "undecodable")
}
