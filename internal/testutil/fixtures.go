package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert into %s: %v", coll, err)
	}
}

// CreateBusiness creates a test business with the given name.
func (f *Fixtures) CreateBusiness(ctx context.Context, name string) models.Business {
	f.t.Helper()

	now := time.Now().UTC()
	b := models.Business{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     "owner@" + text.Fold(name) + ".test",
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "businesses", b)
	return b
}

// CreateHostel creates a hostel owned by businessID.
func (f *Fixtures) CreateHostel(ctx context.Context, businessID primitive.ObjectID, name string) models.Hostel {
	f.t.Helper()

	now := time.Now().UTC()
	h := models.Hostel{
		ID:             primitive.NewObjectID(),
		BusinessID:     businessID,
		Name:           name,
		NameCI:         text.Fold(name),
		Location:       models.Location{City: "Ibadan", State: "Oyo", Country: "Nigeria"},
		PricePerYear:   250000,
		AvailableRooms: 4,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "hostels", h)
	return h
}

// CreateRoom creates a room in hostelID.
func (f *Fixtures) CreateRoom(ctx context.Context, hostelID primitive.ObjectID, number string, capacity int) models.Room {
	f.t.Helper()

	now := time.Now().UTC()
	r := models.Room{
		ID:         primitive.NewObjectID(),
		HostelID:   hostelID,
		RoomNumber: number,
		RoomType:   "shared",
		Capacity:   capacity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "rooms", r)
	return r
}

// CreateOccupant places an occupant in room with the given lease end.
func (f *Fixtures) CreateOccupant(ctx context.Context, room models.Room, name, leaseEnd string) models.Occupant {
	f.t.Helper()

	o := models.Occupant{
		ID:            primitive.NewObjectID(),
		RoomID:        room.ID,
		HostelID:      room.HostelID,
		Name:          name,
		LeaseEnd:      leaseEnd,
		PaymentStatus: models.PaymentPaid,
		CreatedAt:     time.Now().UTC(),
	}
	f.insert(ctx, "occupants", o)
	return o
}

// CreateAgent creates an agent linked to the given businesses with the
// given flags. Unset flags are not stored.
func (f *Fixtures) CreateAgent(ctx context.Context, name string, active, verified models.Flag, businessIDs ...primitive.ObjectID) models.Agent {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Agent{
		ID:          primitive.NewObjectID(),
		BusinessIDs: businessIDs,
		DisplayName: name,
		NameCI:      text.Fold(name),
		Email:       text.Fold(name) + "@agents.test",
		Active:      active,
		Verified:    verified,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "agents", a)
	return a
}

// CreateBooking records a booking. A zero agentID leaves it unattributed.
func (f *Fixtures) CreateBooking(ctx context.Context, businessID, agentID primitive.ObjectID, hostel *models.Hostel, date string, commission float64, commissionStatus string) models.Booking {
	f.t.Helper()

	now := time.Now().UTC()
	b := models.Booking{
		ID:               primitive.NewObjectID(),
		BusinessID:       businessID,
		StudentName:      "Student " + date,
		Amount:           commission * 10,
		BookingDate:      date,
		Status:           models.BookingConfirmed,
		CommissionAmount: commission,
		CommissionStatus: commissionStatus,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if !agentID.IsZero() {
		id := agentID
		b.AgentID = &id
	}
	if hostel != nil {
		id := hostel.ID
		b.HostelID = &id
		b.HostelName = hostel.Name
	}
	f.insert(ctx, "bookings", b)
	return b
}
