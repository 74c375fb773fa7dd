// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/hostelhub/hostelhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("businesses", businessesSchema())
	ensure("business_users", businessUsersSchema())
	ensure("hostels", hostelsSchema())
	ensure("rooms", roomsSchema())
	ensure("occupants", occupantsSchema())
	ensure("bookings", bookingsSchema())

	// Agent flags come in several legacy shapes, so agents get no schema.
	ensure("agents", nil)
	ensure("activity_events", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func businessesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "name_ci"},
			"properties": bson.M{
				"name":    nonBlank,
				"name_ci": nonBlank,
				"email":   bson.M{"bsonType": "string"},
				"phone":   bson.M{"bsonType": "string"},
			},
		},
	}
}

func businessUsersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"business_id", "email", "email_ci", "password_hash", "status"},
			"properties": bson.M{
				"business_id":   bson.M{"bsonType": "objectId"},
				"full_name":     bson.M{"bsonType": "string"},
				"email":         nonBlank,
				"email_ci":      nonBlank,
				"password_hash": nonBlank,
				"status":        bson.M{"enum": bson.A{"active", "disabled"}},
			},
		},
	}
}

func hostelsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"business_id", "name", "name_ci"},
			"properties": bson.M{
				"business_id":     bson.M{"bsonType": "objectId"},
				"name":            nonBlank,
				"name_ci":         nonBlank,
				"price_per_year":  bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0},
				"available_rooms": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"image_urls":      bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
			},
		},
	}
}

func roomsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"hostel_id", "room_number", "capacity"},
			"properties": bson.M{
				"hostel_id":   bson.M{"bsonType": "objectId"},
				"room_number": nonBlank,
				"room_type":   bson.M{"bsonType": "string"},
				"capacity":    bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1},
			},
		},
	}
}

func occupantsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"room_id", "hostel_id", "name"},
			"properties": bson.M{
				"room_id":        bson.M{"bsonType": "objectId"},
				"hostel_id":      bson.M{"bsonType": "objectId"},
				"name":           nonBlank,
				"lease_end":      bson.M{"bsonType": "string"},
				"payment_status": bson.M{"enum": bson.A{models.PaymentPaid, models.PaymentPending, models.PaymentOverdue}},
			},
		},
	}
}

func bookingsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"business_id", "hostel_name", "booking_date"},
			"properties": bson.M{
				"business_id":       bson.M{"bsonType": "objectId"},
				"hostel_id":         bson.M{"bsonType": "objectId"},
				"agent_id":          bson.M{"bsonType": "objectId"},
				"hostel_name":       bson.M{"bsonType": "string"},
				"student_name":      bson.M{"bsonType": "string"},
				"booking_date":      bson.M{"bsonType": "string"},
				"amount":            bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}},
				"commission_amount": bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}},
				"status":            bson.M{"enum": bson.A{models.BookingPending, models.BookingConfirmed, models.BookingCancelled}},
			},
		},
	}
}
