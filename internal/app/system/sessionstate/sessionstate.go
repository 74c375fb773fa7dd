// Package sessionstate keeps the per-session view state of the dashboard:
// filters, sort, current pages, expanded rows, and the single-flight
// marker for agent status changes.
package sessionstate

import (
	"context"
	"errors"
	"time"

	"github.com/hostelhub/hostelhub/internal/app/system/listing"
)

// DefaultTTL is how long idle session state is kept.
const DefaultTTL = 12 * time.Hour

// DefaultToggleTTL bounds how long a crashed toggle can block its session.
const DefaultToggleTTL = 30 * time.Second

// ErrNoSession is returned for an empty session id.
var ErrNoSession = errors.New("sessionstate: empty session id")

// State is everything the dashboard remembers between requests.
type State struct {
	AgentFilter   listing.AgentFilter `json:"agentFilter"`
	AgentSort     listing.SortState   `json:"agentSort"`
	AgentPage     int                 `json:"agentPage"`
	Expanded      map[string]bool     `json:"expanded"`
	RoomFilter    listing.RoomFilter  `json:"roomFilter"`
	RoomPage      int                 `json:"roomPage"`
	BookingStatus string              `json:"bookingStatus"`
	BookingPage   int                 `json:"bookingPage"`

	// ProcessingAgentID is the agent whose status change is in flight,
	// or "" when none is.
	ProcessingAgentID string `json:"processingAgentId,omitempty"`
}

// Default is the state of a session that has never been saved.
func Default() State {
	return State{
		AgentSort:     listing.DefaultAgentSort,
		AgentPage:     1,
		Expanded:      map[string]bool{},
		RoomFilter:    listing.RoomsAll,
		RoomPage:      1,
		BookingStatus: listing.AllStatuses,
		BookingPage:   1,
	}
}

// ToggleExpanded flips the expanded flag of one agent row.
func (s *State) ToggleExpanded(agentID string) bool {
	if s.Expanded == nil {
		s.Expanded = map[string]bool{}
	}
	if s.Expanded[agentID] {
		delete(s.Expanded, agentID)
		return false
	}
	s.Expanded[agentID] = true
	return true
}

// Store persists State per session id.
type Store interface {
	// Load returns the saved state, or Default when there is none.
	Load(ctx context.Context, sessionID string) (State, error)
	Save(ctx context.Context, sessionID string, st State) error
	// AcquireToggle sets the session's processing marker to agentID. It
	// reports false without changing anything when a marker is already
	// set, whichever agent it names.
	AcquireToggle(ctx context.Context, sessionID, agentID string) (bool, error)
	// ReleaseToggle clears the marker if it still names agentID.
	ReleaseToggle(ctx context.Context, sessionID, agentID string) error
	// Processing returns the agent id named by the marker, or "".
	Processing(ctx context.Context, sessionID string) (string, error)
}

func normalize(st State) State {
	d := Default()
	if st.AgentSort.Criteria == "" {
		st.AgentSort = d.AgentSort
	}
	if st.AgentSort.Direction == "" {
		st.AgentSort.Direction = listing.Desc
	}
	if st.Expanded == nil {
		st.Expanded = map[string]bool{}
	}
	if st.RoomFilter == "" {
		st.RoomFilter = d.RoomFilter
	}
	if st.BookingStatus == "" {
		st.BookingStatus = d.BookingStatus
	}
	for _, p := range []*int{&st.AgentPage, &st.RoomPage, &st.BookingPage} {
		if *p < 1 {
			*p = 1
		}
	}
	return st
}
