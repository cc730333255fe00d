package repositories

import (
	"encoding/json"
	"fmt"
	"room-lab/domain/corpse"
	"strconv"
	"strings"
	"time"
)

// storedRoom accepts every shape a text room was ever saved with.
// Public is the pre-rename visibility flag, stored as bool or "true".
type storedRoom struct {
	Text      string          `json:"text"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
	Password  string          `json:"password,omitempty"`
	IsPublic  *bool           `json:"isPublic,omitempty"`
	Public    json.RawMessage `json:"public,omitempty"`
}

// DecodedRoom tells the caller whether a record must be rewritten.
type DecodedRoom struct {
	Data     corpse.RoomData
	Migrated bool
	Skipped  bool
}

// DecodeRoom turns one persisted value into a room record.
// A bare JSON string is a legacy room holding only its text.
// An object without a text field is skipped.
func DecodeRoom(raw []byte, now time.Time) (DecodedRoom, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return DecodedRoom{}, fmt.Errorf("decode legacy room: %w", err)
		}
		return DecodedRoom{
			Data: corpse.RoomData{
				Text:      text,
				CreatedAt: now,
				UpdatedAt: now,
				IsPublic:  true,
			},
			Migrated: true,
		}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		if !json.Valid(raw) {
			return DecodedRoom{}, fmt.Errorf("decode room: %w", err)
		}
		return DecodedRoom{Skipped: true}, nil
	}
	if _, ok := fields["text"]; !ok {
		return DecodedRoom{Skipped: true}, nil
	}

	var stored storedRoom
	if err := json.Unmarshal(raw, &stored); err != nil {
		return DecodedRoom{}, fmt.Errorf("decode room: %w", err)
	}

	res := DecodedRoom{Data: corpse.RoomData{
		Text:     stored.Text,
		Password: stored.Password,
		IsPublic: true,
	}}
	switch {
	case stored.IsPublic != nil:
		res.Data.IsPublic = *stored.IsPublic
		// a leftover legacy flag is dropped on next save
		res.Migrated = len(stored.Public) > 0
	case len(stored.Public) > 0:
		res.Data.IsPublic = legacyPublic(stored.Public)
		res.Migrated = true
	default:
		res.Migrated = true
	}
	if stored.CreatedAt != nil {
		res.Data.CreatedAt = *stored.CreatedAt
	} else {
		res.Data.CreatedAt = now
		res.Migrated = true
	}
	if stored.UpdatedAt != nil {
		res.Data.UpdatedAt = *stored.UpdatedAt
	} else {
		res.Data.UpdatedAt = res.Data.CreatedAt
		res.Migrated = true
	}
	return res, nil
}

func legacyPublic(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		parsed, err := strconv.ParseBool(strings.TrimSpace(s))
		return err == nil && parsed
	}
	return false
}

// EncodeRoom always writes the current shape with an explicit visibility.
func EncodeRoom(data corpse.RoomData) ([]byte, error) {
	return json.Marshal(data)
}
