// internal/domain/models/room.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Room belongs to a hostel. The number of occupants is never stored;
// it is derived from the occupants collection.
type Room struct {
	ID         primitive.ObjectID `bson:"_id" json:"roomId"`
	HostelID   primitive.ObjectID `bson:"hostel_id" json:"hostelId"`
	RoomNumber string             `bson:"room_number" json:"roomNumber"`
	RoomType   string             `bson:"room_type" json:"roomType"`
	Capacity   int                `bson:"capacity" json:"capacity"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Occupant payment statuses.
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentOverdue = "overdue"
)

// Occupant is a student living in a room.
type Occupant struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	RoomID        primitive.ObjectID `bson:"room_id" json:"roomId"`
	HostelID      primitive.ObjectID `bson:"hostel_id" json:"hostelId"`
	Name          string             `bson:"name" json:"name"`
	LeaseEnd      string             `bson:"lease_end" json:"leaseEnd"` // YYYY-MM-DD
	PaymentStatus string             `bson:"payment_status" json:"paymentStatus"`
	AgentAssisted bool               `bson:"agent_assisted,omitempty" json:"agentAssisted,omitempty"`
	AgentName     string             `bson:"agent_name,omitempty" json:"agentName,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
