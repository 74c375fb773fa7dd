package listing

import (
	"github.com/hostelhub/hostelhub/internal/domain/commission"
)

// Agent sort criteria.
const (
	AgentByName              = "name"
	AgentByTotalCommission   = "totalCommission"
	AgentByPaidCommission    = "paidCommission"
	AgentByPendingCommission = "pendingCommission"
	AgentByBookings          = "bookingsCount"
	AgentByLastBooking       = "lastBookingDate"
	AgentByStatus            = "status"
	AgentByVerified          = "verified"
)

// DefaultAgentSort lists the highest earners first.
var DefaultAgentSort = SortState{Criteria: AgentByTotalCommission, Direction: Desc}

// AgentComparators compare agent summaries in ascending order. For the
// status criteria active sorts after inactive ascending, so descending
// puts active agents first.
var AgentComparators = Comparators[commission.AgentSummary]{
	AgentByName: byName(func(s commission.AgentSummary) string {
		return s.AgentName
	}),
	AgentByTotalCommission: fixed(func(a, b commission.AgentSummary) int {
		return compareNumber(a.TotalCommission, b.TotalCommission)
	}),
	AgentByPaidCommission: fixed(func(a, b commission.AgentSummary) int {
		return compareNumber(a.PaidCommission, b.PaidCommission)
	}),
	AgentByPendingCommission: fixed(func(a, b commission.AgentSummary) int {
		return compareNumber(a.PendingCommission, b.PendingCommission)
	}),
	AgentByBookings: fixed(func(a, b commission.AgentSummary) int {
		return compareNumber(a.BookingsCount, b.BookingsCount)
	}),
	AgentByLastBooking: fixed(func(a, b commission.AgentSummary) int {
		return compareNumber(lastBookingKey(a), lastBookingKey(b))
	}),
	AgentByStatus: fixed(func(a, b commission.AgentSummary) int {
		return compareBool(a.Active.Enabled(), b.Active.Enabled())
	}),
	AgentByVerified: fixed(func(a, b commission.AgentSummary) int {
		return compareBool(a.Verified.Enabled(), b.Verified.Enabled())
	}),
}

// lastBookingKey sorts agents without bookings before any real date.
func lastBookingKey(s commission.AgentSummary) string {
	if s.LastBookingDate == commission.NoBookings {
		return ""
	}
	return s.LastBookingDate
}

// AgentFilter relaxes the default restrictions on the agent list. Each
// toggle lifts only its own restriction; agents whose flag is unset are
// always included.
type AgentFilter struct {
	IncludeInactive   bool `json:"includeInactive"`
	IncludeUnverified bool `json:"includeUnverified"`
}

// Keep reports whether s passes the filter.
func (f AgentFilter) Keep(s commission.AgentSummary) bool {
	if !f.IncludeInactive && s.Active.IsFalse() {
		return false
	}
	if !f.IncludeUnverified && s.Verified.IsFalse() {
		return false
	}
	return true
}

// FilterAgents applies f to summaries.
func FilterAgents(summaries []commission.AgentSummary, f AgentFilter) []commission.AgentSummary {
	return Filter(summaries, f.Keep)
}

// SortAgents sorts summaries by state.
func SortAgents(summaries []commission.AgentSummary, state SortState) []commission.AgentSummary {
	return Sort(summaries, state, AgentComparators)
}
