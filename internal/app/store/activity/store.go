// internal/app/store/activity/store.go
package activity

import (
	"context"
	"time"

	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Event types for command auditing.
const (
	EventUserLogin           = "user_login"
	EventHostelCreated       = "hostel_created"
	EventHostelUpdated       = "hostel_updated"
	EventHostelDeleted       = "hostel_deleted"
	EventRoomCreated         = "room_created"
	EventOccupantAdded       = "occupant_added"
	EventOccupantRemoved     = "occupant_removed"
	EventAgentCreated        = "agent_created"
	EventAgentUpdated        = "agent_updated"
	EventAgentUnlinked       = "agent_unlinked"
	EventAgentStatusChanged  = "agent_status_changed"
	EventBookingCreated      = "booking_created"
	EventCommissionStatusSet = "commission_status_set"
)

// EventTypes lists every event type in a stable order.
var EventTypes = []string{
	EventUserLogin,
	EventHostelCreated,
	EventHostelUpdated,
	EventHostelDeleted,
	EventRoomCreated,
	EventOccupantAdded,
	EventOccupantRemoved,
	EventAgentCreated,
	EventAgentUpdated,
	EventAgentUnlinked,
	EventAgentStatusChanged,
	EventBookingCreated,
	EventCommissionStatusSet,
}

// Store manages activity events.
type Store struct {
	c   *mongo.Collection
	log *zap.Logger
}

// New creates a new activity Store. A nil logger disables failure logging.
func New(db *mongo.Database, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{c: db.Collection("activity_events"), log: log}
}

// Create records a new activity event.
func (s *Store) Create(ctx context.Context, event models.ActivityEvent) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// Record stores an event and only logs a failure. Auditing never fails
// the command that triggered it.
func (s *Store) Record(ctx context.Context, businessID, userID primitive.ObjectID, eventType string, subject *primitive.ObjectID, summary string, details map[string]any) {
	err := s.Create(ctx, models.ActivityEvent{
		BusinessID: businessID,
		UserID:     userID,
		EventType:  eventType,
		SubjectID:  subject,
		Summary:    summary,
		Details:    details,
	})
	if err != nil {
		s.log.Warn("activity record failed",
			zap.String("event_type", eventType),
			zap.String("business_id", businessID.Hex()),
			zap.Error(err))
	}
}

// GetByBusiness retrieves the most recent events of a business.
func (s *Store) GetByBusiness(ctx context.Context, businessID primitive.ObjectID, limit int64) ([]models.ActivityEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"business_id": businessID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []models.ActivityEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetBySubject retrieves the events about one entity, oldest first.
func (s *Store) GetBySubject(ctx context.Context, businessID, subjectID primitive.ObjectID) ([]models.ActivityEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"business_id": businessID, "subject_id": subjectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []models.ActivityEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByBusinessInTimeRange retrieves a business's events with
// start <= timestamp < end, oldest first.
func (s *Store) GetByBusinessInTimeRange(ctx context.Context, businessID primitive.ObjectID, start, end time.Time) ([]models.ActivityEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{
		"business_id": businessID,
		"timestamp":   bson.M{"$gte": start, "$lt": end},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []models.ActivityEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CountByBusinessInTimeRange counts events of one type with
// start <= timestamp < end.
func (s *Store) CountByBusinessInTimeRange(ctx context.Context, businessID primitive.ObjectID, eventType string, start, end time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"business_id": businessID,
		"event_type":  eventType,
		"timestamp": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	})
}
