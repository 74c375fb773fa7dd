package bookingstore_test

import (
	"errors"
	"testing"

	bookingstore "github.com/hostelhub/hostelhub/internal/app/store/bookings"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/hostelhub/hostelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bookingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	biz := primitive.NewObjectID()
	created, err := store.Create(ctx, biz, models.Booking{
		HostelName:       "Unity Lodge",
		StudentName:      "Tola",
		Amount:           250000,
		BookingDate:      "2026-09-01",
		CommissionAmount: 25000,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != models.BookingPending {
		t.Errorf("Status: got %q, want pending", created.Status)
	}
	if created.CommissionStatus != models.CommissionPending {
		t.Errorf("CommissionStatus: got %q, want pending", created.CommissionStatus)
	}

	got, err := store.GetForBusiness(ctx, biz, created.ID)
	if err != nil {
		t.Fatalf("GetForBusiness failed: %v", err)
	}
	if got.StudentName != "Tola" {
		t.Errorf("StudentName: got %q", got.StudentName)
	}

	if _, err := store.GetForBusiness(ctx, primitive.NewObjectID(), created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for other business, got %v", err)
	}
}

func TestStore_ListByAgent_ScopedAndNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bookingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	biz := primitive.NewObjectID()
	other := primitive.NewObjectID()
	agent := primitive.NewObjectID()
	hostel := fixtures.CreateHostel(ctx, biz, "Unity Lodge")

	fixtures.CreateBooking(ctx, biz, agent, &hostel, "2026-01-10", 100, models.CommissionPaid)
	fixtures.CreateBooking(ctx, biz, agent, &hostel, "2026-03-05", 200, models.CommissionPending)
	fixtures.CreateBooking(ctx, other, agent, nil, "2026-04-01", 300, models.CommissionPaid)
	fixtures.CreateBooking(ctx, biz, primitive.NewObjectID(), &hostel, "2026-05-01", 400, models.CommissionPaid)

	bookings, err := store.ListByAgent(ctx, biz, agent)
	if err != nil {
		t.Fatalf("ListByAgent failed: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	if bookings[0].BookingDate != "2026-03-05" || bookings[1].BookingDate != "2026-01-10" {
		t.Errorf("expected newest first, got %s, %s", bookings[0].BookingDate, bookings[1].BookingDate)
	}

	all, err := store.ListByBusiness(ctx, biz)
	if err != nil {
		t.Fatalf("ListByBusiness failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 business bookings, got %d", len(all))
	}
}

func TestStore_SetCommissionStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bookingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	biz := primitive.NewObjectID()
	b := fixtures.CreateBooking(ctx, biz, primitive.NewObjectID(), nil, "2026-02-02", 150, models.CommissionPending)

	if err := store.SetCommissionStatus(ctx, biz, b.ID, models.CommissionPaid); err != nil {
		t.Fatalf("SetCommissionStatus failed: %v", err)
	}
	got, err := store.GetForBusiness(ctx, biz, b.ID)
	if err != nil {
		t.Fatalf("GetForBusiness failed: %v", err)
	}
	if got.CommissionStatus != models.CommissionPaid {
		t.Errorf("CommissionStatus: got %q, want paid", got.CommissionStatus)
	}

	err = store.SetCommissionStatus(ctx, primitive.NewObjectID(), b.ID, models.CommissionPaid)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for other business, got %v", err)
	}
}

func TestStore_CountByHostel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bookingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	biz := primitive.NewObjectID()
	h := fixtures.CreateHostel(ctx, biz, "Sunrise Hall")
	fixtures.CreateBooking(ctx, biz, primitive.NilObjectID, &h, "2026-01-01", 10, models.CommissionPaid)
	fixtures.CreateBooking(ctx, biz, primitive.NilObjectID, &h, "2026-01-02", 10, models.CommissionPaid)
	fixtures.CreateBooking(ctx, biz, primitive.NilObjectID, nil, "2026-01-03", 10, models.CommissionPaid)

	n, err := store.CountByHostel(ctx, h.ID)
	if err != nil {
		t.Fatalf("CountByHostel failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}
