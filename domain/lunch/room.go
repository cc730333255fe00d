// Package lunch holds the voting room model: members propose places,
// each member backs at most one suggestion, and the room resolves to a
// winner once its timer runs out.
package lunch

import (
	"slices"
	"sort"
	"time"

	"room-lab/domain"
)

// DefaultDuration is how long a voting room stays open after creation.
const DefaultDuration = 20 * time.Minute

type SuggestionID string

// Picker chooses an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Picker interface {
	IntN(n int) int
}

type Suggestion struct {
	ID         SuggestionID
	Text       string
	ProposedBy domain.Participant
	CreatedAt  time.Time
	// Votes is ordered by vote time and never holds a participant twice.
	Votes []domain.Participant
}

type Room struct {
	ID          domain.RoomID
	StartTime   time.Time
	IsActive    bool
	Members     []domain.Participant
	Suggestions []*Suggestion
	Winner      *Suggestion
	ResolvedAt  time.Time
}

func NewRoom(id domain.RoomID, now time.Time) *Room {
	return &Room{
		ID:        id,
		StartTime: now,
		IsActive:  true,
	}
}

// AddMember is idempotent and returns false when the participant was already in.
func (r *Room) AddMember(p domain.Participant) bool {
	if slices.Contains(r.Members, p) {
		return false
	}
	r.Members = append(r.Members, p)
	return true
}

func (r *Room) RemoveMember(p domain.Participant) bool {
	idx := slices.Index(r.Members, p)
	if idx < 0 {
		return false
	}
	r.Members = slices.Delete(r.Members, idx, idx+1)
	return true
}

func (r *Room) IsEmpty() bool {
	return len(r.Members) == 0
}

// Propose adds a suggestion with no votes. It refuses once the room is resolved.
func (r *Room) Propose(id SuggestionID, text string, by domain.Participant, now time.Time) (*Suggestion, bool) {
	if !r.IsActive {
		return nil, false
	}
	s := &Suggestion{
		ID:         id,
		Text:       text,
		ProposedBy: by,
		CreatedAt:  now,
	}
	r.Suggestions = append(r.Suggestions, s)
	return s, true
}

func (r *Room) suggestion(id SuggestionID) *Suggestion {
	for _, s := range r.Suggestions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Vote moves the participant's single vote onto the target suggestion.
// Voting again for the same suggestion is a no-op.
func (r *Room) Vote(p domain.Participant, id SuggestionID) bool {
	if !r.IsActive {
		return false
	}
	target := r.suggestion(id)
	if target == nil {
		return false
	}
	if slices.Contains(target.Votes, p) {
		return true
	}
	for _, s := range r.Suggestions {
		if idx := slices.Index(s.Votes, p); idx >= 0 {
			s.Votes = slices.Delete(s.Votes, idx, idx+1)
		}
	}
	target.Votes = append(target.Votes, p)
	return true
}

// VoteOf returns the suggestion the participant currently backs.
func (r *Room) VoteOf(p domain.Participant) (SuggestionID, bool) {
	for _, s := range r.Suggestions {
		if slices.Contains(s.Votes, p) {
			return s.ID, true
		}
	}
	return "", false
}

func (r *Room) Deadline(duration time.Duration) time.Time {
	return r.StartTime.Add(duration)
}

func (r *Room) Expired(now time.Time, duration time.Duration) bool {
	return !now.Before(r.Deadline(duration))
}

// SecondsLeft rounds up so a room with 200ms left still reports 1 second.
func (r *Room) SecondsLeft(now time.Time, duration time.Duration) int {
	left := r.Deadline(duration).Sub(now)
	if left <= 0 {
		return 0
	}
	secs := int(left / time.Second)
	if left%time.Second != 0 {
		secs++
	}
	return secs
}

// Resolve closes the room and picks a winner among the most voted
// suggestions. When no suggestion has a vote the winner stays nil.
// Resolving twice returns the first outcome.
func (r *Room) Resolve(now time.Time, picker Picker) *Suggestion {
	if !r.IsActive {
		return r.Winner
	}
	r.IsActive = false
	r.ResolvedAt = now

	best := 0
	for _, s := range r.Suggestions {
		best = max(best, len(s.Votes))
	}
	if best == 0 {
		return nil
	}
	var leaders []*Suggestion
	for _, s := range r.Suggestions {
		if len(s.Votes) == best {
			leaders = append(leaders, s)
		}
	}
	r.Winner = leaders[0]
	if len(leaders) > 1 && picker != nil {
		r.Winner = leaders[picker.IntN(len(leaders))]
	}
	return r.Winner
}

type SuggestionView struct {
	ID         SuggestionID         `json:"id"`
	Text       string               `json:"text"`
	ProposedBy domain.Participant   `json:"proposedBy"`
	Votes      []domain.Participant `json:"votes"`
}

// Snapshot is the full room state clients render on every change.
type Snapshot struct {
	ID          domain.RoomID        `json:"id"`
	Members     []domain.Participant `json:"members"`
	Suggestions []SuggestionView     `json:"suggestions"`
	StartTime   int64                `json:"startTime"`
	IsActive    bool                 `json:"isActive"`
}

// Summary is the lobby listing entry for an active room.
type Summary struct {
	ID              domain.RoomID `json:"id"`
	UserCount       int           `json:"userCount"`
	SuggestionCount int           `json:"suggestionCount"`
}

func (s *Suggestion) View() SuggestionView {
	return SuggestionView{
		ID:         s.ID,
		Text:       s.Text,
		ProposedBy: s.ProposedBy,
		Votes:      append([]domain.Participant{}, s.Votes...),
	}
}

func (r *Room) Snapshot() Snapshot {
	views := make([]SuggestionView, 0, len(r.Suggestions))
	for _, s := range r.Suggestions {
		views = append(views, s.View())
	}
	return Snapshot{
		ID:          r.ID,
		Members:     append([]domain.Participant{}, r.Members...),
		Suggestions: views,
		StartTime:   r.StartTime.UnixMilli(),
		IsActive:    r.IsActive,
	}
}

func (r *Room) Summary() Summary {
	return Summary{
		ID:              r.ID,
		UserCount:       len(r.Members),
		SuggestionCount: len(r.Suggestions),
	}
}

// SortSummaries orders the lobby listing by room id.
func SortSummaries(summaries []Summary) {
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ID < summaries[j].ID
	})
}
