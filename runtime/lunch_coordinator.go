// Package runtime owns the live rooms of each policy and applies client
// operations to them. It holds no transport or storage code.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"room-lab/contract"
	"room-lab/domain"
	"room-lab/domain/event"
	"room-lab/domain/lunch"
	"room-lab/errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type LunchConfig struct {
	Duration time.Duration
	// ResolvedRetention is how long a resolved room stays visible before
	// eviction. Zero keeps resolved rooms forever.
	ResolvedRetention time.Duration
}

// lockedPicker serializes access to a *rand.Rand shared by the sweep
// and announce workers.
type lockedPicker struct {
	mu  sync.Mutex
	rnd lunch.Picker
}

func (p *lockedPicker) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.IntN(n)
}

// LunchCoordinator applies voting room operations and time-driven resolution.
type LunchCoordinator struct {
	log         *slog.Logger
	rooms       *Registry[*lunch.Room]
	broadcaster contract.Broadcaster
	clock       contract.Clock
	picker      lunch.Picker
	cfg         LunchConfig
	// lobbyMu orders activeRooms broadcasts so the last one sent is never stale.
	lobbyMu sync.Mutex
}

func NewLunchCoordinator(log *slog.Logger, broadcaster contract.Broadcaster, clock contract.Clock, picker lunch.Picker, cfg LunchConfig) *LunchCoordinator {
	if cfg.Duration <= 0 {
		cfg.Duration = lunch.DefaultDuration
	}
	if picker == nil {
		picker = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return &LunchCoordinator{
		log:         log,
		rooms:       NewRegistry[*lunch.Room](),
		broadcaster: broadcaster,
		clock:       clock,
		picker:      &lockedPicker{rnd: picker},
		cfg:         cfg,
	}
}

// Join binds the connection to the room, creating the room on first use.
// A connection already bound elsewhere leaves its previous room first.
func (c *LunchCoordinator) Join(ctx context.Context, connID domain.ConnectionID, roomID domain.RoomID,
	participant domain.Participant) (lunch.Snapshot, error) {
	if roomID.IsBlank() || participant.IsBlank() {
		return lunch.Snapshot{}, fmt.Errorf("%w: room id and participant are required", errors.ErrValidation)
	}
	now := c.clock.Now()

	prev, hadPrev := c.rooms.Bind(connID, Binding{RoomID: roomID, Participant: participant})
	if hadPrev && prev.RoomID != roomID {
		c.leaveRoom(connID, prev)
	}
	c.broadcaster.Subscribe(connID, roomID)

	var snapshot lunch.Snapshot
	factory := func() *lunch.Room { return lunch.NewRoom(roomID, now) }
	c.rooms.UpdateOrCreate(roomID, factory, func(room *lunch.Room, created bool) bool {
		if created {
			c.log.Info("Lunch room created", "room", roomID, "by", participant)
		}
		if hadPrev && prev.RoomID == roomID && prev.Participant != participant {
			room.RemoveMember(prev.Participant)
		}
		if room.IsActive {
			room.AddMember(participant)
		}
		snapshot = room.Snapshot()
		c.broadcaster.EmitToRoom(roomID, event.NewRoomState(snapshot))
		if room.IsActive {
			c.broadcaster.EmitToClient(connID, event.NewTimeUpdate(roomID, room.SecondsLeft(now, c.cfg.Duration)))
		}
		return false
	})

	c.broadcastActiveRooms()
	return snapshot, nil
}

// Propose adds a suggestion to an active room.
func (c *LunchCoordinator) Propose(ctx context.Context, roomID domain.RoomID, participant domain.Participant, text string) error {
	text = strings.TrimSpace(text)
	if roomID.IsBlank() || text == "" {
		return fmt.Errorf("%w: room id and suggestion text are required", errors.ErrValidation)
	}
	now := c.clock.Now()
	var err error
	found := c.rooms.Update(roomID, func(room *lunch.Room) bool {
		suggestion, ok := room.Propose(lunch.SuggestionID(uuid.NewString()), text, participant, now)
		if !ok {
			err = errors.ErrRoomResolved
			return false
		}
		c.log.Debug("Suggestion added", "room", roomID, "suggestion", suggestion.ID, "by", participant)
		c.broadcaster.EmitToRoom(roomID, event.NewRoomState(room.Snapshot()))
		return false
	})
	if !found {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomID)
	}
	if err != nil {
		return err
	}
	c.broadcastActiveRooms()
	return nil
}

// Vote moves the participant's vote onto the suggestion.
func (c *LunchCoordinator) Vote(ctx context.Context, roomID domain.RoomID, participant domain.Participant,
	suggestionID lunch.SuggestionID) error {
	if roomID.IsBlank() || participant.IsBlank() || suggestionID == "" {
		return fmt.Errorf("%w: room id, participant and suggestion are required", errors.ErrValidation)
	}
	var err error
	found := c.rooms.Update(roomID, func(room *lunch.Room) bool {
		previous, hadVote := room.VoteOf(participant)
		switch {
		case !room.IsActive:
			err = errors.ErrRoomResolved
		case !room.Vote(participant, suggestionID):
			err = fmt.Errorf("%w: %s", errors.ErrSuggestionUnknown, suggestionID)
		default:
			if hadVote && previous != suggestionID {
				c.log.Debug("Vote moved", "room", roomID, "by", participant, "from", previous, "to", suggestionID)
			}
			c.broadcaster.EmitToRoom(roomID, event.NewRoomState(room.Snapshot()))
		}
		return false
	})
	if !found {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomID)
	}
	return err
}

// Leave drops the connection. An emptied room is removed.
func (c *LunchCoordinator) Leave(ctx context.Context, connID domain.ConnectionID) {
	if b, ok := c.rooms.Unbind(connID); ok {
		c.leaveRoom(connID, b)
	}
	c.broadcastActiveRooms()
}

func (c *LunchCoordinator) leaveRoom(connID domain.ConnectionID, b Binding) {
	c.broadcaster.Unsubscribe(connID, b.RoomID)
	c.rooms.Update(b.RoomID, func(room *lunch.Room) bool {
		room.RemoveMember(b.Participant)
		if room.IsEmpty() {
			c.log.Info("Lunch room emptied, removing it", "room", b.RoomID)
			return true
		}
		c.broadcaster.EmitToRoom(b.RoomID, event.NewRoomState(room.Snapshot()))
		return false
	})
}

// Sweep resolves every expired room and evicts resolved rooms past retention.
func (c *LunchCoordinator) Sweep(ctx context.Context) {
	now := c.clock.Now()
	changed := false
	c.rooms.Each(func(id domain.RoomID, room *lunch.Room) bool {
		if room.IsActive && room.Expired(now, c.cfg.Duration) {
			c.resolve(room, now)
			changed = true
			return false
		}
		if !room.IsActive && c.cfg.ResolvedRetention > 0 && now.Sub(room.ResolvedAt) >= c.cfg.ResolvedRetention {
			c.log.Debug("Resolved lunch room evicted", "room", id)
			return true
		}
		return false
	})
	if changed {
		c.broadcastActiveRooms()
	}
}

// AnnounceTime pushes the remaining seconds to every active room.
func (c *LunchCoordinator) AnnounceTime(ctx context.Context) {
	now := c.clock.Now()
	changed := false
	c.rooms.Each(func(id domain.RoomID, room *lunch.Room) bool {
		if !room.IsActive {
			return false
		}
		left := room.SecondsLeft(now, c.cfg.Duration)
		if left <= 0 {
			c.resolve(room, now)
			changed = true
			return false
		}
		c.broadcaster.EmitToRoom(id, event.NewTimeUpdate(id, left))
		return false
	})
	if changed {
		c.broadcastActiveRooms()
	}
}

// resolve must be called with the room locked.
func (c *LunchCoordinator) resolve(room *lunch.Room, now time.Time) {
	winner := room.Resolve(now, c.picker)
	if winner != nil {
		c.log.Info("Lunch room resolved", "room", room.ID, "winner", winner.Text, "votes", len(winner.Votes))
	} else {
		c.log.Info("Lunch room resolved without winner", "room", room.ID)
	}
	c.broadcaster.EmitToRoom(room.ID, event.NewRoomComplete(room.ID, winner))
}

// ActiveRooms lists the rooms still accepting votes, ordered by id.
func (c *LunchCoordinator) ActiveRooms() []lunch.Summary {
	var summaries []lunch.Summary
	c.rooms.Each(func(_ domain.RoomID, room *lunch.Room) bool {
		if room.IsActive {
			summaries = append(summaries, room.Summary())
		}
		return false
	})
	lunch.SortSummaries(summaries)
	return lo.Ternary(summaries == nil, []lunch.Summary{}, summaries)
}

func (c *LunchCoordinator) SendActiveRooms(ctx context.Context, connID domain.ConnectionID) {
	c.broadcaster.EmitToClient(connID, event.NewLunchRooms(c.ActiveRooms()))
}

func (c *LunchCoordinator) Room(roomID domain.RoomID) (lunch.Snapshot, bool) {
	var snapshot lunch.Snapshot
	ok := c.rooms.View(roomID, func(room *lunch.Room) {
		snapshot = room.Snapshot()
	})
	return snapshot, ok
}

// Stats reports the number of live rooms and bound connections.
func (c *LunchCoordinator) Stats() (rooms int, connections int) {
	return c.rooms.Len(), c.rooms.Connections()
}

// broadcastActiveRooms must never be called with a room lock held.
func (c *LunchCoordinator) broadcastActiveRooms() {
	c.lobbyMu.Lock()
	defer c.lobbyMu.Unlock()
	c.broadcaster.EmitToAll(event.NewLunchRooms(c.ActiveRooms()))
}
