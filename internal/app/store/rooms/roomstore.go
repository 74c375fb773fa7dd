// internal/app/store/rooms/roomstore.go
package roomstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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

var ErrDuplicateRoom = apperr.Conflict("a room with this number already exists in the hostel")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("rooms")}
}

func (s *Store) Create(ctx context.Context, r models.Room) (models.Room, error) {
	if r.Capacity < 1 {
		return models.Room{}, apperr.Invalid("capacity must be at least 1", nil)
	}
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = now
	r.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Room{}, ErrDuplicateRoom
		}
		return models.Room{}, apperr.PersistFailure("create room", err)
	}
	return r, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Room, error) {
	var r models.Room
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Room{}, apperr.NotFound("room")
	}
	if err != nil {
		return models.Room{}, apperr.ReadFailure("get room", err)
	}
	return r, nil
}

// ListByHostel returns at most limit rooms of a hostel ordered by room
// number. A limit of zero means no limit.
func (s *Store) ListByHostel(ctx context.Context, hostelID primitive.ObjectID, limit int) ([]models.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "room_number", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.c.Find(ctx, bson.M{"hostel_id": hostelID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rooms := []models.Room{}
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// DeleteByHostel removes every room of a hostel.
func (s *Store) DeleteByHostel(ctx context.Context, hostelID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"hostel_id": hostelID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
