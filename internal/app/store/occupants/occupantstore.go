// internal/app/store/occupants/occupantstore.go
package occupantstore

import (
	"context"
	"time"

	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/txn"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	db    *mongo.Database
	c     *mongo.Collection
	rooms *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("occupants"), rooms: db.Collection("rooms")}
}

// Add inserts an occupant into room unless the room is already at
// capacity.
//
// The add runs in a transaction that first bumps the room's
// occupants_rev, so concurrent adds to one room conflict and retry rather
// than both reading the same count. The occupant is also recounted after
// the insert and withdrawn if the room went over capacity, which keeps
// the limit on servers without transactions.
func (s *Store) Add(ctx context.Context, room models.Room, o models.Occupant) (models.Occupant, error) {
	o.RoomID = room.ID
	o.HostelID = room.HostelID
	if o.PaymentStatus == "" {
		o.PaymentStatus = models.PaymentPending
	}

	err := txn.Run(ctx, s.db, nil, func(ctx context.Context) error {
		o.ID = primitive.NewObjectID()
		o.CreatedAt = time.Now().UTC()
		return s.addWithinCapacity(ctx, room, o)
	})
	if err != nil {
		return models.Occupant{}, err
	}
	return o, nil
}

func (s *Store) addWithinCapacity(ctx context.Context, room models.Room, o models.Occupant) error {
	res, err := s.rooms.UpdateOne(ctx, bson.M{"_id": room.ID}, bson.M{"$inc": bson.M{"occupants_rev": 1}})
	if err != nil {
		return apperr.PersistFailure("lock room", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("room")
	}

	n, err := s.CountByRoom(ctx, room.ID)
	if err != nil {
		return apperr.ReadFailure("count occupants", err)
	}
	if n >= int64(room.Capacity) {
		return apperr.Conflict("room is full")
	}
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return apperr.PersistFailure("add occupant", err)
	}

	if n, err = s.CountByRoom(ctx, room.ID); err != nil {
		return apperr.ReadFailure("count occupants", err)
	}
	if n > int64(room.Capacity) {
		// a concurrent add took the last bed first
		if _, err := s.c.DeleteOne(context.WithoutCancel(ctx), bson.M{"_id": o.ID}); err != nil {
			return apperr.PersistFailure("withdraw occupant", err)
		}
		return apperr.Conflict("room is full")
	}
	return nil
}

// Remove deletes an occupant that lives in one of hostelIDs.
func (s *Store) Remove(ctx context.Context, hostelIDs []primitive.ObjectID, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "hostel_id": bson.M{"$in": hostelIDs}})
	if err != nil {
		return apperr.PersistFailure("remove occupant", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("occupant")
	}
	return nil
}

// ListByRoom returns the occupants of one room ordered by lease end.
func (s *Store) ListByRoom(ctx context.Context, roomID primitive.ObjectID) ([]models.Occupant, error) {
	return s.find(ctx, bson.M{"room_id": roomID})
}

// ListByRooms returns the occupants of several rooms in one query.
func (s *Store) ListByRooms(ctx context.Context, roomIDs []primitive.ObjectID) ([]models.Occupant, error) {
	if len(roomIDs) == 0 {
		return []models.Occupant{}, nil
	}
	return s.find(ctx, bson.M{"room_id": bson.M{"$in": roomIDs}})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Occupant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lease_end", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	occupants := []models.Occupant{}
	if err := cur.All(ctx, &occupants); err != nil {
		return nil, err
	}
	return occupants, nil
}

func (s *Store) CountByRoom(ctx context.Context, roomID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"room_id": roomID})
}

// DeleteByHostel removes every occupant of a hostel.
func (s *Store) DeleteByHostel(ctx context.Context, hostelID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"hostel_id": hostelID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
