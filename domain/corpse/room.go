// Package corpse holds the append-only text room model. A room keeps a
// single body of text that every writer extends at the end.
package corpse

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"room-lab/domain"
)

// RoomData is the persisted record of a text room.
type RoomData struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Password  string    `json:"password,omitempty"`
	IsPublic  bool      `json:"isPublic"`
}

type Room struct {
	ID domain.RoomID
	RoomData
}

// JoinResult is what a connection learns when it enters a text room.
type JoinResult struct {
	RoomID   domain.RoomID `json:"roomId"`
	Text     string        `json:"text"`
	IsLocked bool          `json:"isLocked"`
}

// SearchHit is one public room matching a full text query.
type SearchHit struct {
	RoomID domain.RoomID `json:"roomId"`
	Lang   string        `json:"lang,omitempty"`
	Score  float64       `json:"score"`
}

// NewRoom returns an empty public room without password.
func NewRoom(id domain.RoomID, now time.Time) *Room {
	return &Room{
		ID: id,
		RoomData: RoomData{
			CreatedAt: now,
			UpdatedAt: now,
			IsPublic:  true,
		},
	}
}

func FromData(id domain.RoomID, data RoomData) *Room {
	return &Room{ID: id, RoomData: data}
}

func (r *Room) HasPassword() bool {
	return r.Password != ""
}

// Append returns a copy of the room with addition joined to the end of
// its text. The receiver is left untouched so callers can persist first.
func (r *Room) Append(addition string, now time.Time) (*Room, bool) {
	text, ok := Concat(r.Text, addition)
	if !ok {
		return r, false
	}
	next := *r
	next.Text = text
	next.UpdatedAt = now
	return &next, true
}

// WithText returns a copy of the room whose text is replaced verbatim.
func (r *Room) WithText(text string, now time.Time) *Room {
	next := *r
	next.Text = text
	next.UpdatedAt = now
	return &next
}

// Concat trims both sides and joins them with a single space when the
// boundary runes are not whitespace. A blank addition is rejected.
func Concat(existing, addition string) (string, bool) {
	add := strings.TrimSpace(addition)
	if add == "" {
		return existing, false
	}
	current := strings.TrimSpace(existing)
	if current == "" {
		return add, true
	}
	last, _ := utf8.DecodeLastRuneInString(current)
	first, _ := utf8.DecodeRuneInString(add)
	if !unicode.IsSpace(last) && !unicode.IsSpace(first) {
		return current + " " + add, true
	}
	return current + add, true
}
