package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"room-lab/domain"
	"room-lab/domain/event"
	"room-lab/domain/lunch"
	"room-lab/errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newLunchFixture(t *testing.T) (*LunchCoordinator, *outbox, *fakeClock) {
	ctrl := gomock.NewController(t)
	broadcaster, box := newRecordingBroadcaster(ctrl)
	clock := newFakeClock()
	c := NewLunchCoordinator(slog.Default(), broadcaster, clock, fixedPicker(0), LunchConfig{
		Duration:          lunch.DefaultDuration,
		ResolvedRetention: time.Hour,
	})
	return c, box, clock
}

func TestLunchCoordinator_Join_CreatesRoom(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, box, clock := newLunchFixture(t)

	// When alice joins a room that doesn't exist
	snap, err := c.Join(ctx, "conn-a", "r1", "alice")

	// Then the room is created with her as single member
	req.NoError(err)
	req.Equal(domain.RoomID("r1"), snap.ID)
	req.Equal([]domain.Participant{"alice"}, snap.Members)
	req.True(snap.IsActive)
	req.Equal(clock.Now().UnixMilli(), snap.StartTime)

	// And the room, the joiner and the lobby are notified
	state, ok := box.last(event.RoomState)
	req.True(ok)
	req.Equal("room", state.target)
	timeUpdate, ok := box.last(event.TimeUpdate)
	req.True(ok)
	req.Equal(domain.ConnectionID("conn-a"), timeUpdate.connID)
	req.Equal(1200, timeUpdate.evt.Payload.(event.TimeLeft).SecondsLeft)
	rooms, ok := box.last(event.ActiveRooms)
	req.True(ok)
	req.Equal("all", rooms.target)
	req.Equal([]lunch.Summary{{ID: "r1", UserCount: 1}}, rooms.evt.Payload)

	subscribed, ok := box.subscription("conn-a")
	req.True(ok)
	req.Equal(domain.RoomID("r1"), subscribed)
}

func TestLunchCoordinator_Join_IsIdempotentPerParticipant(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, _, _ := newLunchFixture(t)

	_, err := c.Join(ctx, "conn-a", "r1", "alice")
	req.NoError(err)
	snap, err := c.Join(ctx, "conn-a", "r1", "alice")
	req.NoError(err)
	_, err = c.Join(ctx, "conn-b", "r1", "bob")
	req.NoError(err)

	final, ok := c.Room("r1")
	req.True(ok)
	req.Len(snap.Members, 1)
	req.Equal([]domain.Participant{"alice", "bob"}, final.Members)
}

func TestLunchCoordinator_Join_Validation(t *testing.T) {
	req := require.New(t)
	c, _, _ := newLunchFixture(t)

	_, err := c.Join(context.Background(), "conn-a", " ", "alice")
	req.ErrorIs(err, errors.ErrValidation)
	_, err = c.Join(context.Background(), "conn-a", "r1", "")
	req.ErrorIs(err, errors.ErrValidation)
	req.Empty(c.ActiveRooms())
}

func TestLunchCoordinator_Join_SwitchingRoomLeavesPrevious(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, box, _ := newLunchFixture(t)

	// Given alice alone in r1
	_, err := c.Join(ctx, "conn-a", "r1", "alice")
	req.NoError(err)

	// When the same connection joins r2
	_, err = c.Join(ctx, "conn-a", "r2", "alice")
	req.NoError(err)

	// Then r1 is gone because it emptied
	_, ok := c.Room("r1")
	req.False(ok)
	req.Equal([]lunch.Summary{{ID: "r2", UserCount: 1}}, c.ActiveRooms())
	subscribed, _ := box.subscription("conn-a")
	req.Equal(domain.RoomID("r2"), subscribed)
}

func TestLunchCoordinator_ProposeAndVote(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, box, _ := newLunchFixture(t)
	_, _ = c.Join(ctx, "conn-a", "r1", "alice")
	_, _ = c.Join(ctx, "conn-b", "r1", "bob")

	// When alice proposes a place
	req.NoError(c.Propose(ctx, "r1", "alice", "  Pizza  "))

	// Then the room sees a trimmed suggestion without votes
	snap, _ := c.Room("r1")
	req.Len(snap.Suggestions, 1)
	suggestion := snap.Suggestions[0]
	req.Equal("Pizza", suggestion.Text)
	req.Equal(domain.Participant("alice"), suggestion.ProposedBy)
	req.Empty(suggestion.Votes)
	req.NotEmpty(suggestion.ID)

	// When both vote for it, bob twice
	req.NoError(c.Vote(ctx, "r1", "alice", suggestion.ID))
	req.NoError(c.Vote(ctx, "r1", "bob", suggestion.ID))
	req.NoError(c.Vote(ctx, "r1", "bob", suggestion.ID))

	// Then each vote counts once
	state, _ := box.last(event.RoomState)
	req.Equal([]domain.Participant{"alice", "bob"}, state.evt.Payload.(lunch.Snapshot).Suggestions[0].Votes)
}

func TestLunchCoordinator_Propose_Rejections(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, _, clock := newLunchFixture(t)

	req.ErrorIs(c.Propose(ctx, "missing", "alice", "Pizza"), errors.ErrRoomNotFound)
	_, _ = c.Join(ctx, "conn-a", "r1", "alice")
	req.ErrorIs(c.Propose(ctx, "r1", "alice", "   "), errors.ErrValidation)

	clock.Advance(lunch.DefaultDuration)
	c.Sweep(ctx)
	req.ErrorIs(c.Propose(ctx, "r1", "alice", "Pizza"), errors.ErrRoomResolved)
}

func TestLunchCoordinator_Vote_UnknownSuggestion(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, _, _ := newLunchFixture(t)
	_, _ = c.Join(ctx, "conn-a", "r1", "alice")

	req.ErrorIs(c.Vote(ctx, "r1", "alice", "nope"), errors.ErrSuggestionUnknown)
	req.ErrorIs(c.Vote(ctx, "missing", "alice", "nope"), errors.ErrRoomNotFound)
}

func TestLunchCoordinator_Sweep_ResolvesWithWinner(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, box, clock := newLunchFixture(t)
	_, _ = c.Join(ctx, "conn-a", "r1", "alice")
	_ = c.Propose(ctx, "r1", "alice", "Pizza")
	snap, _ := c.Room("r1")
	_ = c.Vote(ctx, "r1", "alice", snap.Suggestions[0].ID)

	// Given the room is not expired yet
	clock.Advance(lunch.DefaultDuration - time.Second)
	c.Sweep(ctx)
	_, ok := box.last(event.RoomComplete)
	req.False(ok)

	// When the deadline passes
	clock.Advance(time.Second)
	c.Sweep(ctx)

	// Then the room completes with its only voted suggestion
	completed, ok := box.last(event.RoomComplete)
	req.True(ok)
	payload := completed.evt.Payload.(event.RoomCompleted)
	req.NotNil(payload.Winner)
	req.Equal("Pizza", payload.Winner.Text)
	req.Empty(c.ActiveRooms())

	// And sweeping again doesn't resolve twice
	c.Sweep(ctx)
	req.Len(box.ofType(event.RoomComplete), 1)
}

func TestLunchCoordinator_Sweep_NoVotesNoWinner(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, box, clock := newLunchFixture(t)
	_, _ = c.Join(ctx, "conn-a", "r1", "alice")
	_ = c.Propose(ctx, "r1", "alice", "Pizza")

	clock.Advance(lunch.DefaultDuration)
	c.Sweep(ctx)

	completed, ok := box.last(event.RoomComplete)
	req.True(ok)
	req.Nil(completed.evt.Payload.(event.RoomCompleted).Winner)
}

func TestLunchCoordinator_Sweep_EvictsAfterRetention(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, _, clock := newLunchFixture(t)
	_, _ = c.Join(ctx, "conn-a", "r1", "alice")

	clock.Advance(lunch.DefaultDuration)
	c.Sweep(ctx)
	snap, ok := c.Room("r1")
	req.True(ok)
	req.False(snap.IsActive)

	clock.Advance(time.Hour)
	c.Sweep(ctx)
	_, ok = c.Room("r1")
	req.False(ok)
}

func TestLunchCoordinator_AnnounceTime(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, box, clock := newLunchFixture(t)
	_, _ = c.Join(ctx, "conn-a", "r1", "alice")
	box.reset()

	clock.Advance(5 * time.Minute)
	c.AnnounceTime(ctx)

	update, ok := box.last(event.TimeUpdate)
	req.True(ok)
	req.Equal("room", update.target)
	req.Equal(domain.RoomID("r1"), update.roomID)
	req.Equal(900, update.evt.Payload.(event.TimeLeft).SecondsLeft)

	// An expired room is resolved instead of announced
	box.reset()
	clock.Advance(15 * time.Minute)
	c.AnnounceTime(ctx)
	req.Empty(box.ofType(event.TimeUpdate))
	req.Len(box.ofType(event.RoomComplete), 1)
}

func TestLunchCoordinator_Leave_RemovesEmptyRoom(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, box, _ := newLunchFixture(t)
	_, _ = c.Join(ctx, "conn-a", "r1", "alice")
	_, _ = c.Join(ctx, "conn-b", "r1", "bob")

	// When bob leaves, the room survives
	c.Leave(ctx, "conn-b")
	snap, ok := c.Room("r1")
	req.True(ok)
	req.Equal([]domain.Participant{"alice"}, snap.Members)

	// When alice leaves, the room is gone
	c.Leave(ctx, "conn-a")
	_, ok = c.Room("r1")
	req.False(ok)
	rooms, _ := box.last(event.ActiveRooms)
	req.Equal([]lunch.Summary{}, rooms.evt.Payload)

	// Leaving twice is harmless
	c.Leave(ctx, "conn-a")
	roomCount, connections := c.Stats()
	req.Equal(0, roomCount)
	req.Equal(0, connections)
}

func TestLunchCoordinator_SendActiveRooms(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, box, _ := newLunchFixture(t)
	_, _ = c.Join(ctx, "conn-a", "r1", "alice")
	box.reset()

	c.SendActiveRooms(ctx, "conn-z")

	sent, ok := box.last(event.ActiveRooms)
	req.True(ok)
	req.Equal("client", sent.target)
	req.Equal(domain.ConnectionID("conn-z"), sent.connID)
}

func TestLunchCoordinator_ConcurrentJoins(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, _, _ := newLunchFixture(t)

	errs := make(chan error, 50)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			connID := domain.ConnectionID(fmt.Sprintf("conn-%d", i))
			participant := domain.Participant(fmt.Sprintf("user-%d", i))
			_, err := c.Join(ctx, connID, "r1", participant)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		req.NoError(err)
	}

	snap, ok := c.Room("r1")
	req.True(ok)
	req.Len(snap.Members, 50)
}

func TestLunchCoordinator_ConcurrentJoins_LastListingIsCurrent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, box, _ := newLunchFixture(t)

	// When many connections open distinct rooms at once
	var wg sync.WaitGroup
	for i := range 30 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			connID := domain.ConnectionID(fmt.Sprintf("conn-%d", i))
			roomID := domain.RoomID(fmt.Sprintf("room-%02d", i))
			_, _ = c.Join(ctx, connID, roomID, "user")
		}(i)
	}
	wg.Wait()

	// Then the last lobby listing sent holds every room, sorted by id
	rooms, ok := box.last(event.ActiveRooms)
	req.True(ok)
	listing := rooms.evt.Payload.([]lunch.Summary)
	req.Len(listing, 30)
	req.Equal(c.ActiveRooms(), listing)
	req.Equal(domain.RoomID("room-00"), listing[0].ID)
}
