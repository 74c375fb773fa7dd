// Package occupancy derives per-room occupancy from room and occupant rows.
package occupancy

import (
	"time"

	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultExpiryWindowDays is how many days ahead a lease end counts as
// expiring soon.
const DefaultExpiryWindowDays = 30

const dateLayout = "2006-01-02"

// Status classifies a room by how many of its beds are taken.
type Status string

const (
	Vacant  Status = "vacant"
	Partial Status = "partial"
	Full    Status = "full"
)

// Classify returns the status for a room with the given counts. A room
// holding more occupants than its capacity reports as full.
func Classify(occupied, capacity int) Status {
	switch {
	case occupied == 0:
		return Vacant
	case occupied >= capacity:
		return Full
	default:
		return Partial
	}
}

// OccupantView is an occupant with its lease-expiry classification.
type OccupantView struct {
	models.Occupant
	DaysLeft     *int `json:"daysLeft,omitempty"`
	ExpiringSoon bool `json:"expiringSoon"`
}

// RoomOccupancy is a room with its occupants and derived counts.
type RoomOccupancy struct {
	RoomID        primitive.ObjectID `json:"roomId"`
	HostelID      primitive.ObjectID `json:"hostelId"`
	RoomNumber    string             `json:"roomNumber"`
	RoomType      string             `json:"roomType"`
	Capacity      int                `json:"capacity"`
	OccupiedCount int                `json:"occupiedCount"`
	Status        Status             `json:"status"`
	Occupants     []OccupantView     `json:"occupants"`
}

// HasExpiringLease reports whether any occupant's lease is expiring soon.
func (r RoomOccupancy) HasExpiringLease() bool {
	for _, o := range r.Occupants {
		if o.ExpiringSoon {
			return true
		}
	}
	return false
}

// Project builds the occupancy view for one room. Only occupants whose
// RoomID matches the room are counted; OccupiedCount is always the length
// of that list.
func Project(room models.Room, occupants []models.Occupant, today time.Time, windowDays int) RoomOccupancy {
	if windowDays <= 0 {
		windowDays = DefaultExpiryWindowDays
	}
	r := RoomOccupancy{
		RoomID:     room.ID,
		HostelID:   room.HostelID,
		RoomNumber: room.RoomNumber,
		RoomType:   room.RoomType,
		Capacity:   room.Capacity,
		Occupants:  []OccupantView{},
	}
	for _, o := range occupants {
		if o.RoomID != room.ID {
			continue
		}
		v := OccupantView{Occupant: o}
		if days, ok := DaysUntil(o.LeaseEnd, today); ok {
			d := days
			v.DaysLeft = &d
			v.ExpiringSoon = days >= 0 && days <= windowDays
		}
		r.Occupants = append(r.Occupants, v)
	}
	r.OccupiedCount = len(r.Occupants)
	r.Status = Classify(r.OccupiedCount, r.Capacity)
	return r
}

// DaysUntil returns the number of calendar days from today until the
// YYYY-MM-DD date. It is negative for past dates and false when date does
// not parse.
func DaysUntil(date string, today time.Time) (int, bool) {
	end, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, false
	}
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24), true
}

// ExpiringSoon reports whether a lease ending on date is within windowDays
// of today, both ends inclusive. Expired leases are not expiring.
func ExpiringSoon(date string, today time.Time, windowDays int) bool {
	days, ok := DaysUntil(date, today)
	return ok && days >= 0 && days <= windowDays
}

// Summary counts rooms and beds across a hostel.
type Summary struct {
	Rooms         int `json:"rooms"`
	VacantRooms   int `json:"vacantRooms"`
	PartialRooms  int `json:"partialRooms"`
	FullRooms     int `json:"fullRooms"`
	Beds          int `json:"beds"`
	OccupiedBeds  int `json:"occupiedBeds"`
	ExpiringLease int `json:"expiringLeases"`
}

// Summarize totals a set of room occupancies.
func Summarize(rooms []RoomOccupancy) Summary {
	var s Summary
	for _, r := range rooms {
		s.Rooms++
		s.Beds += r.Capacity
		s.OccupiedBeds += r.OccupiedCount
		switch r.Status {
		case Vacant:
			s.VacantRooms++
		case Partial:
			s.PartialRooms++
		case Full:
			s.FullRooms++
		}
		for _, o := range r.Occupants {
			if o.ExpiringSoon {
				s.ExpiringLease++
			}
		}
	}
	return s
}
