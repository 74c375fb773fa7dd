// internal/app/store/hostels/hostelstore.go
package hostelstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/htmlsanitize"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateHostel = apperr.Conflict("a hostel with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("hostels")}
}

func clean(h *models.Hostel) {
	h.NameCI = text.Fold(h.Name)
	h.Description = htmlsanitize.Sanitize(h.Description)
	h.Rules = htmlsanitize.PlainText(h.Rules)
	if h.ImageURLs == nil {
		h.ImageURLs = []string{}
	}
}

func (s *Store) Create(ctx context.Context, businessID primitive.ObjectID, h models.Hostel) (models.Hostel, error) {
	now := time.Now().UTC()
	h.ID = primitive.NewObjectID()
	h.BusinessID = businessID
	clean(&h)
	h.CreatedAt = now
	h.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, h); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Hostel{}, ErrDuplicateHostel
		}
		return models.Hostel{}, apperr.PersistFailure("create hostel", err)
	}
	return h, nil
}

// GetByID loads a hostel regardless of owner.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Hostel, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetForBusiness loads a hostel owned by businessID.
func (s *Store) GetForBusiness(ctx context.Context, businessID, id primitive.ObjectID) (models.Hostel, error) {
	return s.findOne(ctx, bson.M{"_id": id, "business_id": businessID})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.Hostel, error) {
	var h models.Hostel
	err := s.c.FindOne(ctx, filter).Decode(&h)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Hostel{}, apperr.NotFound("hostel")
	}
	if err != nil {
		return models.Hostel{}, apperr.ReadFailure("get hostel", err)
	}
	return h, nil
}

// ListByBusiness returns a business's hostels ordered by name.
func (s *Store) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]models.Hostel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"business_id": businessID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	hostels := []models.Hostel{}
	if err := cur.All(ctx, &hostels); err != nil {
		return nil, err
	}
	return hostels, nil
}

// Update replaces the editable fields of a hostel owned by businessID.
func (s *Store) Update(ctx context.Context, businessID, id primitive.ObjectID, h models.Hostel) (models.Hostel, error) {
	clean(&h)
	set := bson.M{
		"name":            h.Name,
		"name_ci":         h.NameCI,
		"description":     h.Description,
		"location":        h.Location,
		"price_per_year":  h.PricePerYear,
		"room_types":      h.RoomTypes,
		"available_rooms": h.AvailableRooms,
		"amenities":       h.Amenities,
		"contact":         h.Contact,
		"rules":           h.Rules,
		"image_urls":      h.ImageURLs,
		"geo":             h.Geo,
		"updated_at":      time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "business_id": businessID}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Hostel{}, ErrDuplicateHostel
		}
		return models.Hostel{}, apperr.PersistFailure("update hostel", err)
	}
	if res.MatchedCount == 0 {
		return models.Hostel{}, apperr.NotFound("hostel")
	}
	return s.GetForBusiness(ctx, businessID, id)
}

// Delete removes a hostel owned by businessID and returns the deleted
// document so callers can clean up its images.
func (s *Store) Delete(ctx context.Context, businessID, id primitive.ObjectID) (models.Hostel, error) {
	var h models.Hostel
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id, "business_id": businessID}).Decode(&h)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Hostel{}, apperr.NotFound("hostel")
	}
	if err != nil {
		return models.Hostel{}, apperr.PersistFailure("delete hostel", err)
	}
	return h, nil
}
