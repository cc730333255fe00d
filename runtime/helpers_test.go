package runtime

import (
	"room-lab/domain"
	"room-lab/domain/event"
	"room-lab/mocks"
	"sync"
	"time"

	"go.uber.org/mock/gomock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type fixedPicker int

func (f fixedPicker) IntN(n int) int {
	return int(f) % n
}

type emitted struct {
	target string
	roomID domain.RoomID
	connID domain.ConnectionID
	evt    event.Event
}

// outbox records every call made on a gomock broadcaster.
type outbox struct {
	mu     sync.Mutex
	events []emitted
	subs   map[domain.ConnectionID]domain.RoomID
}

func (o *outbox) add(e emitted) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *outbox) ofType(t event.Type) []emitted {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []emitted
	for _, e := range o.events {
		if e.evt.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (o *outbox) last(t event.Type) (emitted, bool) {
	all := o.ofType(t)
	if len(all) == 0 {
		return emitted{}, false
	}
	return all[len(all)-1], true
}

func (o *outbox) reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = nil
}

func (o *outbox) subscription(connID domain.ConnectionID) (domain.RoomID, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id, ok := o.subs[connID]
	return id, ok
}

func newRecordingBroadcaster(ctrl *gomock.Controller) (*mocks.MockBroadcaster, *outbox) {
	box := &outbox{subs: make(map[domain.ConnectionID]domain.RoomID)}
	b := mocks.NewMockBroadcaster(ctrl)
	b.EXPECT().EmitToRoom(gomock.Any(), gomock.Any()).
		Do(func(roomID domain.RoomID, evt event.Event) {
			box.add(emitted{target: "room", roomID: roomID, evt: evt})
		}).AnyTimes()
	b.EXPECT().EmitToAll(gomock.Any()).
		Do(func(evt event.Event) {
			box.add(emitted{target: "all", evt: evt})
		}).AnyTimes()
	b.EXPECT().EmitToClient(gomock.Any(), gomock.Any()).
		Do(func(connID domain.ConnectionID, evt event.Event) {
			box.add(emitted{target: "client", connID: connID, evt: evt})
		}).AnyTimes()
	b.EXPECT().Subscribe(gomock.Any(), gomock.Any()).
		Do(func(connID domain.ConnectionID, roomID domain.RoomID) {
			box.mu.Lock()
			box.subs[connID] = roomID
			box.mu.Unlock()
		}).AnyTimes()
	b.EXPECT().Unsubscribe(gomock.Any(), gomock.Any()).
		Do(func(connID domain.ConnectionID, roomID domain.RoomID) {
			box.mu.Lock()
			if box.subs[connID] == roomID {
				delete(box.subs, connID)
			}
			box.mu.Unlock()
		}).AnyTimes()
	return b, box
}
