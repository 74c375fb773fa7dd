// internal/app/store/bookings/bookingstore.go
package bookingstore

import (
	"context"
	"errors"
	"time"

	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bookings")}
}

var newestFirst = bson.D{{Key: "booking_date", Value: -1}, {Key: "_id", Value: -1}}

// Create inserts a booking for businessID. Status and commission status
// default to pending.
func (s *Store) Create(ctx context.Context, businessID primitive.ObjectID, b models.Booking) (models.Booking, error) {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.BusinessID = businessID
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	if b.CommissionStatus == "" {
		b.CommissionStatus = models.CommissionPending
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Booking{}, apperr.PersistFailure("create booking", err)
	}
	return b, nil
}

// GetForBusiness loads one booking owned by businessID.
func (s *Store) GetForBusiness(ctx context.Context, businessID, id primitive.ObjectID) (models.Booking, error) {
	var b models.Booking
	err := s.c.FindOne(ctx, bson.M{"_id": id, "business_id": businessID}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Booking{}, apperr.NotFound("booking")
	}
	if err != nil {
		return models.Booking{}, apperr.ReadFailure("get booking", err)
	}
	return b, nil
}

// ListByAgent returns the bookings an agent made for one business.
// Bookings the same agent made for other businesses are excluded.
func (s *Store) ListByAgent(ctx context.Context, businessID, agentID primitive.ObjectID) ([]models.Booking, error) {
	return s.find(ctx, bson.M{"business_id": businessID, "agent_id": agentID})
}

// ListByBusiness returns every booking of a business, newest first.
func (s *Store) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]models.Booking, error) {
	return s.find(ctx, bson.M{"business_id": businessID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// SetCommissionStatus marks the commission of a booking paid or pending.
func (s *Store) SetCommissionStatus(ctx context.Context, businessID, id primitive.ObjectID, status string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "business_id": businessID},
		bson.M{"$set": bson.M{"commission_status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return apperr.PersistFailure("set commission status", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("booking")
	}
	return nil
}

// CountByHostel reports how many bookings reference hostelID.
func (s *Store) CountByHostel(ctx context.Context, hostelID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"hostel_id": hostelID})
}
