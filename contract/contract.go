//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"room-lab/domain"
	"room-lab/domain/event"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes, avoiding the need
// for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Broadcaster pushes events to connections.
// Implementations must never block the caller on a slow client.
type Broadcaster interface {
	EmitToRoom(roomID domain.RoomID, evt event.Event)
	EmitToAll(evt event.Event)
	EmitToClient(connID domain.ConnectionID, evt event.Event)
	Subscribe(connID domain.ConnectionID, roomID domain.RoomID)
	Unsubscribe(connID domain.ConnectionID, roomID domain.RoomID)
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sweeper resolves expired rooms and evicts stale ones.
type Sweeper interface {
	Sweep(ctx context.Context)
}

// Announcer tells every active room how long it has left.
type Announcer interface {
	AnnounceTime(ctx context.Context)
}
