package lunch

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"room-lab/domain"
)

type fixedPicker int

func (f fixedPicker) IntN(n int) int {
	return int(f) % n
}

var start = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func TestRoom_AddMember_IsIdempotent(t *testing.T) {
	req := require.New(t)
	room := NewRoom("r1", start)

	req.True(room.AddMember("alice"))
	req.False(room.AddMember("alice"))
	req.True(room.AddMember("bob"))

	req.Equal([]domain.Participant{"alice", "bob"}, room.Members)
}

func TestRoom_RemoveMember(t *testing.T) {
	req := require.New(t)
	room := NewRoom("r1", start)
	room.AddMember("alice")

	req.False(room.RemoveMember("bob"))
	req.True(room.RemoveMember("alice"))
	req.True(room.IsEmpty())
}

func TestRoom_Vote_KeepsOneVotePerParticipant(t *testing.T) {
	req := require.New(t)

	// Given a room with two suggestions
	room := NewRoom("r1", start)
	room.AddMember("alice")
	_, ok := room.Propose("s1", "Pizza", "alice", start)
	req.True(ok)
	_, ok = room.Propose("s2", "Sushi", "alice", start)
	req.True(ok)

	// When alice votes twice for s1 then switches to s2
	req.True(room.Vote("alice", "s1"))
	req.True(room.Vote("alice", "s1"))
	req.Len(room.Suggestions[0].Votes, 1)
	req.True(room.Vote("alice", "s2"))

	// Then only s2 holds her vote
	req.Empty(room.Suggestions[0].Votes)
	req.Equal([]domain.Participant{"alice"}, room.Suggestions[1].Votes)
	id, ok := room.VoteOf("alice")
	req.True(ok)
	req.Equal(SuggestionID("s2"), id)
}

func TestRoom_Vote_UnknownSuggestion(t *testing.T) {
	req := require.New(t)
	room := NewRoom("r1", start)

	req.False(room.Vote("alice", "missing"))
	_, ok := room.VoteOf("alice")
	req.False(ok)
}

func TestRoom_Resolve_PicksMostVoted(t *testing.T) {
	req := require.New(t)
	room := NewRoom("r1", start)
	room.Propose("s1", "Pizza", "alice", start)
	room.Propose("s2", "Sushi", "bob", start)
	room.Vote("alice", "s2")
	room.Vote("bob", "s2")
	room.Vote("carol", "s1")

	winner := room.Resolve(start.Add(DefaultDuration), fixedPicker(0))

	req.NotNil(winner)
	req.Equal(SuggestionID("s2"), winner.ID)
	req.False(room.IsActive)
	req.Equal(start.Add(DefaultDuration), room.ResolvedAt)
}

func TestRoom_Resolve_TieUsesPicker(t *testing.T) {
	req := require.New(t)
	room := NewRoom("r1", start)
	room.Propose("s1", "Pizza", "alice", start)
	room.Propose("s2", "Sushi", "bob", start)
	room.Vote("alice", "s1")
	room.Vote("bob", "s2")

	winner := room.Resolve(start, fixedPicker(1))

	req.Equal(SuggestionID("s2"), winner.ID)
}

func TestRoom_Resolve_SeededTieBreakReachesEveryLeader(t *testing.T) {
	req := require.New(t)
	picker := rand.New(rand.NewPCG(42, 1024))
	wins := map[SuggestionID]int{}

	for range 200 {
		// Given A and B tied at two votes each and C behind with one
		room := NewRoom("r1", start)
		room.Propose("A", "Pizza", "alice", start)
		room.Propose("B", "Sushi", "bob", start)
		room.Propose("C", "Tacos", "carol", start)
		room.Vote("alice", "A")
		room.Vote("bob", "A")
		room.Vote("carol", "B")
		room.Vote("dave", "B")
		room.Vote("erin", "C")

		winner := room.Resolve(start.Add(DefaultDuration), picker)
		req.NotNil(winner)
		wins[winner.ID]++
	}

	// Then both leaders win at least once and the trailing suggestion never does
	req.Positive(wins["A"])
	req.Positive(wins["B"])
	req.Zero(wins["C"])
	req.Equal(200, wins["A"]+wins["B"])
}

func TestRoom_Resolve_NoVotesMeansNoWinner(t *testing.T) {
	req := require.New(t)
	room := NewRoom("r1", start)
	room.Propose("s1", "Pizza", "alice", start)

	req.Nil(room.Resolve(start, fixedPicker(0)))
	req.False(room.IsActive)
}

func TestRoom_Resolve_IsFinal(t *testing.T) {
	req := require.New(t)
	room := NewRoom("r1", start)
	room.Propose("s1", "Pizza", "alice", start)
	room.Vote("alice", "s1")
	first := room.Resolve(start, fixedPicker(0))

	// A resolved room refuses new input and keeps its winner
	_, ok := room.Propose("s2", "Tacos", "bob", start)
	req.False(ok)
	req.False(room.Vote("bob", "s1"))
	req.Same(first, room.Resolve(start.Add(time.Hour), fixedPicker(0)))
}

func TestRoom_SecondsLeft(t *testing.T) {
	req := require.New(t)
	room := NewRoom("r1", start)

	req.Equal(1200, room.SecondsLeft(start, DefaultDuration))
	req.Equal(1, room.SecondsLeft(start.Add(DefaultDuration-200*time.Millisecond), DefaultDuration))
	req.Equal(0, room.SecondsLeft(start.Add(DefaultDuration), DefaultDuration))
	req.True(room.Expired(start.Add(DefaultDuration), DefaultDuration))
	req.False(room.Expired(start.Add(DefaultDuration-time.Nanosecond), DefaultDuration))
}

func TestRoom_Snapshot_IsDetached(t *testing.T) {
	req := require.New(t)
	room := NewRoom("r1", start)
	room.AddMember("alice")
	room.Propose("s1", "Pizza", "alice", start)
	room.Vote("alice", "s1")

	snap := room.Snapshot()
	room.AddMember("bob")
	room.Vote("bob", "s1")

	req.Equal([]domain.Participant{"alice"}, snap.Members)
	req.Equal([]domain.Participant{"alice"}, snap.Suggestions[0].Votes)
	req.Equal(start.UnixMilli(), snap.StartTime)
	req.True(snap.IsActive)
}

func TestSortSummaries(t *testing.T) {
	req := require.New(t)
	summaries := []Summary{{ID: "b"}, {ID: "a"}, {ID: "c"}}

	SortSummaries(summaries)

	req.Equal(domain.RoomID("a"), summaries[0].ID)
	req.Equal(domain.RoomID("c"), summaries[2].ID)
}
