// internal/domain/models/booking.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Commission statuses. Anything other than CommissionPaid counts as pending.
const (
	CommissionPaid    = "paid"
	CommissionPending = "pending"
)

// Booking is a student's reservation at a hostel.
//
// HostelName and StudentName are denormalized copies; older bookings carry
// only the hostel name, so HostelID is optional.
type Booking struct {
	ID               primitive.ObjectID  `bson:"_id" json:"id"`
	BusinessID       primitive.ObjectID  `bson:"business_id" json:"businessId"`
	HostelID         *primitive.ObjectID `bson:"hostel_id,omitempty" json:"hostelId,omitempty"`
	HostelName       string              `bson:"hostel_name" json:"hostelName"`
	StudentName      string              `bson:"student_name" json:"studentName"`
	AgentID          *primitive.ObjectID `bson:"agent_id,omitempty" json:"agentId,omitempty"`
	Amount           float64             `bson:"amount" json:"amount"`
	BookingDate      string              `bson:"booking_date" json:"bookingDate"` // YYYY-MM-DD
	Status           string              `bson:"status" json:"status"`
	CommissionAmount float64             `bson:"commission_amount" json:"commissionAmount"`
	CommissionStatus string              `bson:"commission_status" json:"commissionStatus"`
	CreatedAt        time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updated_at" json:"updatedAt"`
}

// CommissionPaidOut reports whether the booking's commission has been paid.
func (b Booking) CommissionPaidOut() bool {
	return b.CommissionStatus == CommissionPaid
}
