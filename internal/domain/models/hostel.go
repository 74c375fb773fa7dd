// internal/domain/models/hostel.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Hostel is a property listed by a business.
type Hostel struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	BusinessID     primitive.ObjectID `bson:"business_id" json:"businessId"`
	Name           string             `bson:"name" json:"name"`
	NameCI         string             `bson:"name_ci" json:"-"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Location       Location           `bson:"location" json:"location"`
	PricePerYear   float64            `bson:"price_per_year" json:"pricePerYear"`
	RoomTypes      []string           `bson:"room_types,omitempty" json:"roomTypes,omitempty"`
	AvailableRooms int                `bson:"available_rooms" json:"availableRooms"`
	Amenities      []string           `bson:"amenities,omitempty" json:"amenities,omitempty"`
	Contact        Contact            `bson:"contact" json:"contact"`
	Rules          string             `bson:"rules,omitempty" json:"rules,omitempty"`
	ImageURLs      []string           `bson:"image_urls,omitempty" json:"imageUrls,omitempty"`
	Geo            *GeoPoint          `bson:"geo,omitempty" json:"geo,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Contact holds the hostel's public contact details.
type Contact struct {
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// GeoPoint is an optional map position.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Location is the structured hostel address. Older documents store the
// address as one flattened string; both decode into this form.
type Location struct {
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// String renders the flattened "address, city, state, country" form,
// skipping empty parts.
func (l Location) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{l.Address, l.City, l.State, l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// IsZero reports whether no part of the location is set.
func (l Location) IsZero() bool {
	return l.Address == "" && l.City == "" && l.State == "" && l.Country == ""
}

// ParseLocation splits a flattened location string. Four comma-separated
// parts map onto address, city, state and country; three onto city, state
// and country; anything else is kept whole as the address.
func ParseLocation(s string) Location {
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return Location{}
	case 3:
		return Location{City: parts[0], State: parts[1], Country: parts[2]}
	case 4:
		return Location{Address: parts[0], City: parts[1], State: parts[2], Country: parts[3]}
	default:
		return Location{Address: strings.Join(parts, ", ")}
	}
}

// locationDoc avoids recursing into Location's own decoders.
type locationDoc Location

func (l *Location) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*l = Location{}
		return nil
	case bsontype.String:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("location: malformed string")
		}
		*l = ParseLocation(s)
		return nil
	case bsontype.EmbeddedDocument:
		var doc locationDoc
		if err := bson.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("location: %w", err)
		}
		*l = Location(doc)
		return nil
	default:
		return fmt.Errorf("location: cannot decode bson type %s", t)
	}
}

func (l *Location) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = ParseLocation(s)
		return nil
	}
	var doc locationDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*l = Location(doc)
	return nil
}
