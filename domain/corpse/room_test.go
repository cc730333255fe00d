package corpse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConcat(t *testing.T) {
	cases := []struct {
		name     string
		existing string
		addition string
		want     string
		ok       bool
	}{
		{name: "empty room", existing: "", addition: "  Once upon ", want: "Once upon", ok: true},
		{name: "inserts one space", existing: "Once upon", addition: "a time", want: "Once upon a time", ok: true},
		{name: "trims both sides", existing: "  Once upon  ", addition: "  a time  ", want: "Once upon a time", ok: true},
		{name: "blank addition", existing: "Once", addition: " \n\t", want: "Once", ok: false},
		{name: "unicode boundary", existing: "Il était", addition: "ÿ", want: "Il était ÿ", ok: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			got, ok := Concat(tc.existing, tc.addition)
			req.Equal(tc.ok, ok)
			req.Equal(tc.want, got)
		})
	}
}

func TestRoom_Append_LeavesReceiverUntouched(t *testing.T) {
	req := require.New(t)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Minute)

	// Given a fresh public room
	room := NewRoom("story", created)
	req.True(room.IsPublic)
	req.False(room.HasPassword())

	// When appending
	next, ok := room.Append("Hello", later)

	// Then only the copy changes
	req.True(ok)
	req.Equal("Hello", next.Text)
	req.Equal(later, next.UpdatedAt)
	req.Equal(created, next.CreatedAt)
	req.Empty(room.Text)
	req.Equal(created, room.UpdatedAt)
}

func TestRoom_Append_Blank(t *testing.T) {
	req := require.New(t)
	room := NewRoom("story", time.Now())

	next, ok := room.Append("   ", time.Now())

	req.False(ok)
	req.Same(room, next)
}

func TestRoom_WithText(t *testing.T) {
	req := require.New(t)
	room := FromData("story", RoomData{Text: "old", Password: "hash"})

	next := room.WithText("  new  ", time.Now())

	req.Equal("  new  ", next.Text)
	req.Equal("hash", next.Password)
	req.Equal("old", room.Text)
}
