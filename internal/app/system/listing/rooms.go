package listing

import (
	"github.com/hostelhub/hostelhub/internal/domain/occupancy"
)

// RoomFilter selects rooms by occupancy.
type RoomFilter string

const (
	RoomsAll      RoomFilter = "all"
	RoomsVacant   RoomFilter = "vacant"
	RoomsOccupied RoomFilter = "occupied"
	RoomsExpiring RoomFilter = "expiring"
)

// ParseRoomFilter maps unknown values to RoomsAll.
func ParseRoomFilter(s string) RoomFilter {
	switch RoomFilter(s) {
	case RoomsVacant, RoomsOccupied, RoomsExpiring:
		return RoomFilter(s)
	default:
		return RoomsAll
	}
}

// Keep reports whether the room passes the filter. Expiring needs at
// least one occupant whose lease is expiring soon.
func (f RoomFilter) Keep(r occupancy.RoomOccupancy) bool {
	switch f {
	case RoomsVacant:
		return r.OccupiedCount == 0
	case RoomsOccupied:
		return r.OccupiedCount > 0
	case RoomsExpiring:
		return r.HasExpiringLease()
	default:
		return true
	}
}

// FilterRooms applies f to rooms.
func FilterRooms(rooms []occupancy.RoomOccupancy, f RoomFilter) []occupancy.RoomOccupancy {
	return Filter(rooms, f.Keep)
}

// Room sort criteria.
const (
	RoomByNumber    = "roomNumber"
	RoomByOccupancy = "occupiedCount"
	RoomByCapacity  = "capacity"
)

// RoomComparators compare rooms in ascending order.
var RoomComparators = Comparators[occupancy.RoomOccupancy]{
	RoomByNumber: byName(func(r occupancy.RoomOccupancy) string {
		return r.RoomNumber
	}),
	RoomByOccupancy: fixed(func(a, b occupancy.RoomOccupancy) int {
		return compareNumber(a.OccupiedCount, b.OccupiedCount)
	}),
	RoomByCapacity: fixed(func(a, b occupancy.RoomOccupancy) int {
		return compareNumber(a.Capacity, b.Capacity)
	}),
}
