package occupantstore_test

import (
	"errors"
	"sync"
	"testing"

	occupantstore "github.com/hostelhub/hostelhub/internal/app/store/occupants"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/hostelhub/hostelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Add_DefaultsAndCapacity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := occupantstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room := fixtures.CreateRoom(ctx, primitive.NewObjectID(), "A1", 2)

	first, err := store.Add(ctx, room, models.Occupant{Name: "Tola", LeaseEnd: "2027-06-30"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if first.PaymentStatus != models.PaymentPending {
		t.Errorf("PaymentStatus: got %q, want pending", first.PaymentStatus)
	}
	if first.RoomID != room.ID || first.HostelID != room.HostelID {
		t.Error("expected room and hostel ids copied from the room")
	}

	if _, err := store.Add(ctx, room, models.Occupant{Name: "Kemi", PaymentStatus: models.PaymentPaid}); err != nil {
		t.Fatalf("second Add failed: %v", err)
	}

	_, err = store.Add(ctx, room, models.Occupant{Name: "Ife"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict for a full room, got %v", err)
	}

	n, err := store.CountByRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("CountByRoom failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 occupants, got %d", n)
	}
}

func TestStore_ListByRooms_OrderedByLeaseEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := occupantstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hostelID := primitive.NewObjectID()
	r1 := fixtures.CreateRoom(ctx, hostelID, "A1", 3)
	r2 := fixtures.CreateRoom(ctx, hostelID, "A2", 3)
	r3 := fixtures.CreateRoom(ctx, hostelID, "A3", 3)
	fixtures.CreateOccupant(ctx, r1, "Late", "2027-12-31")
	fixtures.CreateOccupant(ctx, r2, "Early", "2026-11-01")
	fixtures.CreateOccupant(ctx, r3, "Elsewhere", "2026-01-01")

	got, err := store.ListByRooms(ctx, []primitive.ObjectID{r1.ID, r2.ID})
	if err != nil {
		t.Fatalf("ListByRooms failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 occupants, got %d", len(got))
	}
	if got[0].Name != "Early" || got[1].Name != "Late" {
		t.Errorf("expected lease-end order, got %s, %s", got[0].Name, got[1].Name)
	}

	empty, err := store.ListByRooms(ctx, nil)
	if err != nil {
		t.Fatalf("ListByRooms(nil) failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty slice, got %#v", empty)
	}

	one, err := store.ListByRoom(ctx, r3.ID)
	if err != nil {
		t.Fatalf("ListByRoom failed: %v", err)
	}
	if len(one) != 1 || one[0].Name != "Elsewhere" {
		t.Errorf("unexpected ListByRoom result: %+v", one)
	}
}

func TestStore_Remove_ScopedToHostels(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := occupantstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room := fixtures.CreateRoom(ctx, primitive.NewObjectID(), "A1", 2)
	o := fixtures.CreateOccupant(ctx, room, "Tola", "2027-01-01")

	err := store.Remove(ctx, []primitive.ObjectID{primitive.NewObjectID()}, o.ID)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found outside the owner's hostels, got %v", err)
	}
	if err := store.Remove(ctx, []primitive.ObjectID{room.HostelID}, o.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if n, _ := store.CountByRoom(ctx, room.ID); n != 0 {
		t.Errorf("expected room to be empty, got %d", n)
	}
}

func TestStore_DeleteByHostel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := occupantstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hostelID := primitive.NewObjectID()
	room := fixtures.CreateRoom(ctx, hostelID, "A1", 3)
	fixtures.CreateOccupant(ctx, room, "A", "2027-01-01")
	fixtures.CreateOccupant(ctx, room, "B", "2027-01-01")

	n, err := store.DeleteByHostel(ctx, hostelID)
	if err != nil {
		t.Fatalf("DeleteByHostel failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}
}

func TestStore_Add_ConcurrentAddsRespectCapacity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := occupantstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room := fixtures.CreateRoom(ctx, primitive.NewObjectID(), "B4", 2)

	const attempts = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Add(ctx, room, models.Occupant{Name: "Student", LeaseEnd: "2027-06-30"})
			switch {
			case err == nil:
				mu.Lock()
				added++
				mu.Unlock()
			case !errors.Is(err, apperr.ErrConflict):
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	n, err := store.CountByRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("CountByRoom failed: %v", err)
	}
	if n > 2 {
		t.Fatalf("room over capacity: %d occupants for 2 beds", n)
	}
	if int64(added) != n {
		t.Errorf("successful adds = %d, stored occupants = %d", added, n)
	}
}

func TestStore_Add_MissingRoom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := occupantstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ghost := models.Room{ID: primitive.NewObjectID(), HostelID: primitive.NewObjectID(), Capacity: 3}
	_, err := store.Add(ctx, ghost, models.Occupant{Name: "Nobody"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for a missing room, got %v", err)
	}
	n, err := store.CountByRoom(ctx, ghost.ID)
	if err != nil || n != 0 {
		t.Errorf("no occupant should be stored: n=%d err=%v", n, err)
	}
}
