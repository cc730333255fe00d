package repositories

import (
	"room-lab/internal"
	"strconv"
	"strings"
	"time"
)

// InspectMapper renders a text room record for the debug inspector.
// Legacy values are shown as they would look once migrated.
func InspectMapper(key string, val []byte) internal.InspectRow {
	row := internal.DefaultMapper(key, val)
	row.RoomID = strings.TrimPrefix(key, TextRoomPrefix)

	decoded, err := DecodeRoom(val, time.Time{})
	switch {
	case err != nil:
		row.Detail = "undecodable: " + err.Error()
	case decoded.Skipped:
		row.Detail = "skipped (no text)"
	default:
		row.Public = strconv.FormatBool(decoded.Data.IsPublic)
		row.Protected = strconv.FormatBool(decoded.Data.Password != "")
		if !decoded.Data.UpdatedAt.IsZero() {
			row.Updated = decoded.Data.UpdatedAt.Format(time.DateTime)
		}
		row.Detail = strconv.Itoa(len([]rune(decoded.Data.Text))) + " chars"
		if decoded.Migrated {
			row.Detail += ", legacy"
		}
	}
	return row
}
