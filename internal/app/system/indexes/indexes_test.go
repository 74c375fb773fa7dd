package indexes_test

import (
	"context"
	"testing"

	"github.com/hostelhub/hostelhub/internal/app/system/indexes"
	"github.com/hostelhub/hostelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func indexNames(t *testing.T, ctx context.Context, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes on %s failed: %v", coll, err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	expected := map[string][]string{
		"businesses":      {"uniq_businesses_nameci"},
		"business_users":  {"uniq_business_users_emailci", "idx_business_users_business"},
		"hostels":         {"uniq_hostels_business_nameci"},
		"rooms":           {"uniq_rooms_hostel_number"},
		"occupants":       {"idx_occupants_room_leaseend", "idx_occupants_hostel"},
		"bookings":        {"idx_bookings_business_agent_date_id", "idx_bookings_business_date_id", "idx_bookings_hostel"},
		"agents":          {"idx_agents_businesses_id"},
		"activity_events": {"idx_activity_business_ts", "idx_activity_subject_ts"},
	}
	for coll, want := range expected {
		names := indexNames(t, ctx, db, coll)
		for _, name := range want {
			if !names[name] {
				t.Errorf("expected index %q to exist on %s", name, coll)
			}
		}
	}
}

func TestEnsureAll_RenamesIndexWithSameKeys(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("rooms").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "hostel_id", Value: 1}, {Key: "room_number", Value: 1}},
		Options: options.Index().SetName("legacy_rooms"),
	})
	if err != nil {
		t.Fatalf("create legacy index: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNames(t, ctx, db, "rooms")
	if names["legacy_rooms"] {
		t.Error("legacy index should have been replaced")
	}
	if !names["uniq_rooms_hostel_number"] {
		t.Error("expected uniq_rooms_hostel_number after reconcile")
	}
}

func TestEnsureAll_ReportsDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	biz := primitive.NewObjectID()
	for i := 0; i < 2; i++ {
		_, err := db.Collection("hostels").InsertOne(ctx, bson.M{
			"business_id": biz,
			"name":        "Unity Lodge",
			"name_ci":     "unity lodge",
		})
		if err != nil {
			t.Fatalf("seed hostel: %v", err)
		}
	}

	if err := indexes.EnsureAll(ctx, db); err == nil {
		t.Fatal("expected EnsureAll to fail when duplicates block a unique index")
	}
}

func TestUniqueHostelNamePerBusiness(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	coll := db.Collection("hostels")
	if _, err := coll.InsertOne(ctx, bson.M{"business_id": a, "name_ci": "unity lodge"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := coll.InsertOne(ctx, bson.M{"business_id": b, "name_ci": "unity lodge"}); err != nil {
		t.Fatalf("same name in another business should be allowed: %v", err)
	}
	if _, err := coll.InsertOne(ctx, bson.M{"business_id": a, "name_ci": "unity lodge"}); err == nil {
		t.Fatal("expected duplicate key error for same name in the same business")
	}
}
