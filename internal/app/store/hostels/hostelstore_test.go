package hostelstore_test

import (
	"errors"
	"strings"
	"testing"

	hostelstore "github.com/hostelhub/hostelhub/internal/app/store/hostels"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/indexes"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/hostelhub/hostelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_CleansFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := hostelstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	biz := primitive.NewObjectID()
	created, err := store.Create(ctx, biz, models.Hostel{
		Name:        "Unity Lodge",
		Description: `<p>Close to <strong>campus</strong></p><script>alert(1)</script>`,
		Rules:       "<b>No</b> parties",
		Location:    models.Location{City: "Ibadan", State: "Oyo"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.BusinessID != biz {
		t.Errorf("BusinessID: got %v, want %v", created.BusinessID, biz)
	}
	if created.NameCI != "unity lodge" {
		t.Errorf("NameCI: got %q", created.NameCI)
	}
	if strings.Contains(created.Description, "script") {
		t.Errorf("script should be stripped: %q", created.Description)
	}
	if !strings.Contains(created.Description, "<strong>campus</strong>") {
		t.Errorf("allowed markup should survive: %q", created.Description)
	}
	if created.Rules != "No parties" {
		t.Errorf("Rules: got %q, want plain text", created.Rules)
	}
}

func TestStore_Create_DuplicateNameInSameBusiness(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := hostelstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	biz := primitive.NewObjectID()
	if _, err := store.Create(ctx, biz, models.Hostel{Name: "Unity Lodge"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, biz, models.Hostel{Name: "UNITY lodge"})
	if err != hostelstore.ErrDuplicateHostel {
		t.Errorf("expected ErrDuplicateHostel, got %v", err)
	}

	// same name under another business is fine
	if _, err := store.Create(ctx, primitive.NewObjectID(), models.Hostel{Name: "Unity Lodge"}); err != nil {
		t.Errorf("Create in other business failed: %v", err)
	}
}

func TestStore_GetForBusiness(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := hostelstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	biz := primitive.NewObjectID()
	h := fixtures.CreateHostel(ctx, biz, "Sunrise Hall")

	if _, err := store.GetForBusiness(ctx, biz, h.ID); err != nil {
		t.Fatalf("GetForBusiness failed: %v", err)
	}
	if _, err := store.GetForBusiness(ctx, primitive.NewObjectID(), h.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for other business, got %v", err)
	}
	if _, err := store.GetByID(ctx, h.ID); err != nil {
		t.Errorf("GetByID failed: %v", err)
	}
	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for unknown id, got %v", err)
	}
}

func TestStore_ListByBusiness_SortedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := hostelstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	biz := primitive.NewObjectID()
	fixtures.CreateHostel(ctx, biz, "Unity Lodge")
	fixtures.CreateHostel(ctx, biz, "annex court")
	fixtures.CreateHostel(ctx, biz, "Sunrise Hall")
	fixtures.CreateHostel(ctx, primitive.NewObjectID(), "Elsewhere")

	hostels, err := store.ListByBusiness(ctx, biz)
	if err != nil {
		t.Fatalf("ListByBusiness failed: %v", err)
	}
	var names []string
	for _, h := range hostels {
		names = append(names, h.Name)
	}
	want := []string{"annex court", "Sunrise Hall", "Unity Lodge"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("names: got %v, want %v", names, want)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := hostelstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	biz := primitive.NewObjectID()
	h := fixtures.CreateHostel(ctx, biz, "Unity Lodge")

	h.Name = "Unity Lodge Annex"
	h.PricePerYear = 300000
	h.Amenities = []string{"WiFi", "Water"}
	updated, err := store.Update(ctx, biz, h.ID, h)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.NameCI != "unity lodge annex" {
		t.Errorf("NameCI: got %q", updated.NameCI)
	}
	if updated.PricePerYear != 300000 {
		t.Errorf("PricePerYear: got %v", updated.PricePerYear)
	}
	if len(updated.Amenities) != 2 {
		t.Errorf("Amenities: got %v", updated.Amenities)
	}

	if _, err := store.Update(ctx, primitive.NewObjectID(), h.ID, h); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for other business, got %v", err)
	}
}

func TestStore_Delete_ReturnsDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := hostelstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	biz := primitive.NewObjectID()
	h := fixtures.CreateHostel(ctx, biz, "Unity Lodge")

	if _, err := store.Delete(ctx, primitive.NewObjectID(), h.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("delete from other business should be not found, got %v", err)
	}

	deleted, err := store.Delete(ctx, biz, h.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted.Name != "Unity Lodge" {
		t.Errorf("deleted Name: got %q", deleted.Name)
	}
	if _, err := store.GetByID(ctx, h.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("hostel should be gone, got %v", err)
	}
}
