package roomstore_test

import (
	"errors"
	"testing"

	roomstore "github.com/hostelhub/hostelhub/internal/app/store/rooms"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/indexes"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/hostelhub/hostelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hostelID := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Room{HostelID: hostelID, RoomNumber: "A1", RoomType: "shared", Capacity: 4})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Capacity != 4 || got.RoomNumber != "A1" {
		t.Errorf("unexpected room: %+v", got)
	}
}

func TestStore_Create_RejectsZeroCapacity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Room{HostelID: primitive.NewObjectID(), RoomNumber: "A1", Capacity: 0})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("expected invalid, got %v", err)
	}
}

func TestStore_Create_DuplicateNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	hostelID := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.Room{HostelID: hostelID, RoomNumber: "A1", Capacity: 2}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Room{HostelID: hostelID, RoomNumber: "A1", Capacity: 2}); err != roomstore.ErrDuplicateRoom {
		t.Errorf("expected ErrDuplicateRoom, got %v", err)
	}
}

func TestStore_ListByHostel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hostelID := primitive.NewObjectID()
	fixtures.CreateRoom(ctx, hostelID, "B2", 2)
	fixtures.CreateRoom(ctx, hostelID, "A1", 1)
	fixtures.CreateRoom(ctx, hostelID, "C3", 3)
	fixtures.CreateRoom(ctx, primitive.NewObjectID(), "A0", 1)

	rooms, err := store.ListByHostel(ctx, hostelID, 0)
	if err != nil {
		t.Fatalf("ListByHostel failed: %v", err)
	}
	if len(rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(rooms))
	}
	if rooms[0].RoomNumber != "A1" || rooms[2].RoomNumber != "C3" {
		t.Errorf("expected rooms ordered by number, got %s..%s", rooms[0].RoomNumber, rooms[2].RoomNumber)
	}

	limited, err := store.ListByHostel(ctx, hostelID, 2)
	if err != nil {
		t.Fatalf("ListByHostel failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 rooms with limit, got %d", len(limited))
	}
}

func TestStore_DeleteByHostel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hostelID := primitive.NewObjectID()
	fixtures.CreateRoom(ctx, hostelID, "A1", 1)
	fixtures.CreateRoom(ctx, hostelID, "A2", 1)
	keep := fixtures.CreateRoom(ctx, primitive.NewObjectID(), "A1", 1)

	n, err := store.DeleteByHostel(ctx, hostelID)
	if err != nil {
		t.Fatalf("DeleteByHostel failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}
	if _, err := store.GetByID(ctx, keep.ID); err != nil {
		t.Errorf("room of other hostel should survive: %v", err)
	}
}
