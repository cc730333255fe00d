package errors

import "fmt"

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrOnlyCensoredFiles = fmt.Errorf("censored directory contains directories")
	ErrEmptyWords        = fmt.Errorf("no words have been found")

	// Room coordination
	ErrRoomNotFound      = fmt.Errorf("room not found")
	ErrRoomResolved      = fmt.Errorf("room is already resolved")
	ErrSuggestionUnknown = fmt.Errorf("suggestion not found")
	ErrRoomAlreadyExists = fmt.Errorf("room already exists")
	ErrInvalidPassword   = fmt.Errorf("invalid password")
	ErrRoomLocked        = fmt.Errorf("room is locked for this connection")
	ErrValidation        = fmt.Errorf("validation failed")
	ErrUnknownEvent      = fmt.Errorf("unknown event")
	ErrInvalidPayload    = fmt.Errorf("invalid payload")
	ErrStoreUnavailable  = fmt.Errorf("room store unavailable")
	ErrUnauthorized      = fmt.Errorf("unauthorized")
)

// Code returns the short identifier sent to clients inside error events.
// Only errors that are surfaced to a connection have a code.
func Code(err error) (string, bool) {
	switch {
	case Is(err, ErrInvalidPassword):
		return "invalid_password", true
	case Is(err, ErrRoomAlreadyExists):
		return "room_exists", true
	case Is(err, ErrRoomLocked):
		return "room_locked", true
	case Is(err, ErrStoreUnavailable):
		return "store_unavailable", true
	default:
		return "", false
	}
}
