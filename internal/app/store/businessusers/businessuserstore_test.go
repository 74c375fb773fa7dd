package businessuserstore_test

import (
	"testing"

	businessuserstore "github.com/hostelhub/hostelhub/internal/app/store/businessusers"
	"github.com/hostelhub/hostelhub/internal/app/system/indexes"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/hostelhub/hostelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_HashesPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := businessuserstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.BusinessUser{
		BusinessID: primitive.NewObjectID(),
		FullName:   "  Ada   Obi ",
		Email:      " Ada@Example.COM ",
	}, "correct-horse")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.FullName != "Ada Obi" {
		t.Errorf("FullName: got %q", u.FullName)
	}
	if u.Email != "ada@example.com" {
		t.Errorf("Email: got %q", u.Email)
	}
	if u.Status != businessuserstore.StatusActive {
		t.Errorf("Status: got %q", u.Status)
	}
	if u.PasswordHash == "" || u.PasswordHash == "correct-horse" {
		t.Error("expected password to be hashed")
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := businessuserstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.BusinessUser{Email: "a@b.co"}, "long-enough"); err == nil {
		t.Error("expected error without business id")
	}
	if _, err := store.Create(ctx, models.BusinessUser{BusinessID: primitive.NewObjectID(), Email: "a@b.co"}, "short"); err == nil {
		t.Error("expected error for short password")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := businessuserstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	u := models.BusinessUser{BusinessID: primitive.NewObjectID(), Email: "owner@example.com"}
	if _, err := store.Create(ctx, u, "password1"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	u.Email = "OWNER@example.com"
	if _, err := store.Create(ctx, u, "password1"); err != businessuserstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Authenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := businessuserstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.BusinessUser{
		BusinessID: primitive.NewObjectID(),
		Email:      "owner@example.com",
	}, "password1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Authenticate(ctx, "Owner@Example.com", "password1")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("authenticated wrong user")
	}

	if _, err := store.Authenticate(ctx, "owner@example.com", "wrong"); err != businessuserstore.ErrBadCredentials {
		t.Errorf("wrong password: expected ErrBadCredentials, got %v", err)
	}
	if _, err := store.Authenticate(ctx, "nobody@example.com", "password1"); err != businessuserstore.ErrBadCredentials {
		t.Errorf("unknown email: expected ErrBadCredentials, got %v", err)
	}

	if _, err := db.Collection("business_users").UpdateOne(ctx,
		bson.M{"_id": created.ID},
		bson.M{"$set": bson.M{"status": businessuserstore.StatusDisabled}}); err != nil {
		t.Fatalf("disable user: %v", err)
	}
	if _, err := store.Authenticate(ctx, "owner@example.com", "password1"); err != businessuserstore.ErrBadCredentials {
		t.Errorf("disabled user: expected ErrBadCredentials, got %v", err)
	}
}
