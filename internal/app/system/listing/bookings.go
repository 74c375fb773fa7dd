package listing

import (
	"github.com/hostelhub/hostelhub/internal/domain/models"
)

// AllStatuses disables the booking status filter.
const AllStatuses = "all"

// FilterBookings keeps bookings whose status equals status. "all" and ""
// pass everything through.
func FilterBookings(bookings []models.Booking, status string) []models.Booking {
	if status == "" || status == AllStatuses {
		return Filter(bookings, func(models.Booking) bool { return true })
	}
	return Filter(bookings, func(b models.Booking) bool { return b.Status == status })
}

// Booking sort criteria.
const (
	BookingByDate       = "bookingDate"
	BookingByAmount     = "amount"
	BookingByCommission = "commissionAmount"
	BookingByStudent    = "studentName"
	BookingByHostel     = "hostelName"
)

// BookingComparators compare bookings in ascending order.
var BookingComparators = Comparators[models.Booking]{
	BookingByDate: fixed(func(a, b models.Booking) int {
		return compareNumber(a.BookingDate, b.BookingDate)
	}),
	BookingByAmount: fixed(func(a, b models.Booking) int {
		return compareNumber(a.Amount, b.Amount)
	}),
	BookingByCommission: fixed(func(a, b models.Booking) int {
		return compareNumber(a.CommissionAmount, b.CommissionAmount)
	}),
	BookingByStudent: byName(func(b models.Booking) string {
		return b.StudentName
	}),
	BookingByHostel: byName(func(b models.Booking) string {
		return b.HostelName
	}),
}
