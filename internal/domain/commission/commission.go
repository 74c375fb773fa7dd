// Package commission derives agent commission summaries from bookings.
//
// Nothing here is stored: every figure is recomputed from booking-level
// detail each time, so a summary can never drift from the bookings it
// was built from.
package commission

import (
	"sort"

	"github.com/hostelhub/hostelhub/internal/app/system/money"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoBookings is the LastBookingDate of an agent without bookings.
const NoBookings = "N/A"

// AgentSummary is an agent enriched with commission aggregates and the
// bookings they were computed from.
type AgentSummary struct {
	AgentID           primitive.ObjectID `json:"agentId"`
	AgentName         string             `json:"agentName"`
	Email             string             `json:"email,omitempty"`
	ProfileImage      string             `json:"profileImage,omitempty"`
	Active            models.Flag        `json:"active"`
	Verified          models.Flag        `json:"verified"`
	TotalCommission   float64            `json:"totalCommission"`
	PaidCommission    float64            `json:"paidCommission"`
	PendingCommission float64            `json:"pendingCommission"`
	BookingsCount     int                `json:"bookingsCount"`
	LastBookingDate   string             `json:"lastBookingDate"`
	Bookings          []models.Booking   `json:"bookings"`
	Hostels           []HostelRollup     `json:"hostels"`
}

// Summarize folds the agent's bookings into an AgentSummary.
//
// Only bookings that name both this agent and businessID are attributed;
// anything else in bookings is ignored, so an agent who serves several
// businesses never leaks another business's commissions.
func Summarize(agent models.Agent, businessID primitive.ObjectID, bookings []models.Booking) AgentSummary {
	s := AgentSummary{
		AgentID:         agent.ID,
		AgentName:       agent.DisplayName,
		Email:           agent.Email,
		ProfileImage:    agent.ProfileImage,
		Active:          agent.Active,
		Verified:        agent.Verified,
		LastBookingDate: NoBookings,
		Bookings:        []models.Booking{},
	}

	var paid, pending int64
	for _, b := range bookings {
		if !Attributed(b, agent.ID, businessID) {
			continue
		}
		s.Bookings = append(s.Bookings, b)
		c := money.Cents(b.CommissionAmount)
		if b.CommissionPaidOut() {
			paid += c
		} else {
			pending += c
		}
		// Dates are zero-padded YYYY-MM-DD, so string order is date order.
		if s.LastBookingDate == NoBookings || b.BookingDate > s.LastBookingDate {
			s.LastBookingDate = b.BookingDate
		}
	}

	s.PaidCommission = money.FromCents(paid)
	s.PendingCommission = money.FromCents(pending)
	s.TotalCommission = money.FromCents(paid + pending)
	s.BookingsCount = len(s.Bookings)
	s.Hostels = Rollups(s.Bookings)
	return s
}

// Attributed reports whether a booking counts towards agentID's
// commissions within businessID.
func Attributed(b models.Booking, agentID, businessID primitive.ObjectID) bool {
	return b.AgentID != nil && *b.AgentID == agentID && b.BusinessID == businessID
}

// HostelRollup groups an agent's bookings by hostel.
type HostelRollup struct {
	HostelID      *primitive.ObjectID `json:"hostelId,omitempty"`
	HostelName    string              `json:"hostelName"`
	RoomsReferred int                 `json:"roomsReferred"`
	Commission    float64             `json:"commission"`
}

// Rollups groups bookings by hostel id. Bookings without a hostel id fall
// back to grouping by the denormalized hostel name, which cannot tell apart
// two hostels that share a name. Output is ordered by name, then id.
func Rollups(bookings []models.Booking) []HostelRollup {
	type acc struct {
		rollup HostelRollup
		cents  int64
	}
	groups := make(map[string]*acc)
	keys := make([]string, 0)

	for _, b := range bookings {
		key := "name:" + b.HostelName
		if b.HostelID != nil {
			key = "id:" + b.HostelID.Hex()
		}
		g, ok := groups[key]
		if !ok {
			g = &acc{rollup: HostelRollup{HostelID: b.HostelID, HostelName: b.HostelName}}
			groups[key] = g
			keys = append(keys, key)
		}
		g.rollup.RoomsReferred++
		g.cents += money.Cents(b.CommissionAmount)
	}

	out := make([]HostelRollup, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		g.rollup.Commission = money.FromCents(g.cents)
		out = append(out, g.rollup)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].HostelName != out[j].HostelName {
			return out[i].HostelName < out[j].HostelName
		}
		return rollupKey(out[i]) < rollupKey(out[j])
	})
	return out
}

func rollupKey(r HostelRollup) string {
	if r.HostelID == nil {
		return ""
	}
	return r.HostelID.Hex()
}

// Totals is the business-wide view over a set of agent summaries.
type Totals struct {
	Agents            int     `json:"agents"`
	ActiveAgents      int     `json:"activeAgents"`
	Bookings          int     `json:"bookings"`
	TotalCommission   float64 `json:"totalCommission"`
	PaidCommission    float64 `json:"paidCommission"`
	PendingCommission float64 `json:"pendingCommission"`
}

// Sum aggregates a set of agent summaries.
func Sum(summaries []AgentSummary) Totals {
	var t Totals
	var paid, pending int64
	for _, s := range summaries {
		t.Agents++
		if s.Active.Enabled() {
			t.ActiveAgents++
		}
		t.Bookings += s.BookingsCount
		paid += money.Cents(s.PaidCommission)
		pending += money.Cents(s.PendingCommission)
	}
	t.PaidCommission = money.FromCents(paid)
	t.PendingCommission = money.FromCents(pending)
	t.TotalCommission = money.FromCents(paid + pending)
	return t
}
