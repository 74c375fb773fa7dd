// Package businesshostels lists the hostels of a business in the compact
// form used by pickers and dashboards.
package businesshostels

import (
	"context"

	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Item is one hostel. Optional fields are omitted when the hostel has no
// value for them.
type Item struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	Location       string             `json:"location,omitempty"`
	ImageURL       string             `json:"imageUrl,omitempty"`
	AvailableRooms *int               `json:"availableRooms,omitempty"`
}

// FromHostel maps a hostel document onto an Item. The first image is the
// cover image. A zero room count is a fully booked hostel and is kept.
func FromHostel(h models.Hostel) Item {
	n := h.AvailableRooms
	return newItem(h.ID, h.Name, h.Location, h.ImageURLs, &n)
}

func newItem(id primitive.ObjectID, name string, loc models.Location, imageURLs []string, availableRooms *int) Item {
	it := Item{ID: id, Name: name, Location: loc.String(), AvailableRooms: availableRooms}
	if len(imageURLs) > 0 {
		it.ImageURL = imageURLs[0]
	}
	return it
}

// row is the projected hostel. AvailableRooms is nil when the document
// has no available_rooms field.
type row struct {
	ID             primitive.ObjectID `bson:"_id"`
	Name           string             `bson:"name"`
	Location       models.Location    `bson:"location"`
	ImageURLs      []string           `bson:"image_urls"`
	AvailableRooms *int               `bson:"available_rooms"`
}

// List returns every hostel of businessID ordered by name.
func List(ctx context.Context, db *mongo.Database, businessID primitive.ObjectID) ([]Item, error) {
	if businessID.IsZero() {
		return nil, apperr.Unauthenticated()
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"name": 1, "location": 1, "image_urls": bson.M{"$slice": 1}, "available_rooms": 1})

	cur, err := db.Collection("hostels").Find(ctx, bson.M{"business_id": businessID}, opts)
	if err != nil {
		return nil, apperr.ReadFailure("list hostels", err)
	}
	defer cur.Close(ctx)

	var rows []row
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.ReadFailure("decode hostels", err)
	}
	items := make([]Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, newItem(r.ID, r.Name, r.Location, r.ImageURLs, r.AvailableRooms))
	}
	return items, nil
}
