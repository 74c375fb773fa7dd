package validators_test

import (
	"testing"

	"github.com/hostelhub/hostelhub/internal/app/system/validators"
	"github.com/hostelhub/hostelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}

	for _, expected := range []string{
		"businesses", "business_users", "hostels", "rooms",
		"occupants", "bookings", "agents", "activity_events",
	} {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func TestHostelsValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// missing business_id
	if _, err := db.Collection("hostels").InsertOne(ctx, bson.M{"name": "Unity Lodge", "name_ci": "unity lodge"}); err == nil {
		t.Error("expected validation error for hostel without business_id")
	}

	// blank name
	if _, err := db.Collection("hostels").InsertOne(ctx, bson.M{
		"business_id": primitive.NewObjectID(),
		"name":        "   ",
		"name_ci":     "   ",
	}); err == nil {
		t.Error("expected validation error for blank hostel name")
	}

	if _, err := db.Collection("hostels").InsertOne(ctx, bson.M{
		"business_id":     primitive.NewObjectID(),
		"name":            "Unity Lodge",
		"name_ci":         "unity lodge",
		"price_per_year":  250000.0,
		"available_rooms": 4,
	}); err != nil {
		t.Errorf("Insert valid hostel failed: %v", err)
	}
}

func TestRoomsValidator_Capacity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := db.Collection("rooms").InsertOne(ctx, bson.M{
		"hostel_id":   primitive.NewObjectID(),
		"room_number": "A1",
		"capacity":    0,
	}); err == nil {
		t.Error("expected validation error for zero capacity")
	}

	if _, err := db.Collection("rooms").InsertOne(ctx, bson.M{
		"hostel_id":   primitive.NewObjectID(),
		"room_number": "A1",
		"capacity":    2,
	}); err != nil {
		t.Errorf("Insert valid room failed: %v", err)
	}
}

func TestOccupantsValidator_PaymentStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := db.Collection("occupants").InsertOne(ctx, bson.M{
		"room_id":        primitive.NewObjectID(),
		"hostel_id":      primitive.NewObjectID(),
		"name":           "Tola",
		"payment_status": "maybe",
	})
	if err == nil {
		t.Error("expected validation error for unknown payment_status")
	}
}

func TestBusinessUsersValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := db.Collection("business_users").InsertOne(ctx, bson.M{"email": "owner@example.com"})
	if err == nil {
		t.Error("expected validation error for business user without password_hash")
	}
}
