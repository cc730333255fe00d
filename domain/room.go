// Package domain contains the core concepts shared by every room policy.
// No runtime, network, or storage logic should be added here.
package domain

import "strings"

// RoomID is the caller-chosen identifier of a room, unique per policy.
type RoomID string

// ConnectionID identifies one live client connection on the gateway.
type ConnectionID string

// Participant is the display name a client joins a voting room with.
type Participant string

func (id RoomID) IsBlank() bool {
	return strings.TrimSpace(string(id)) == ""
}

func (p Participant) IsBlank() bool {
	return strings.TrimSpace(string(p)) == ""
}
