package login_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/hostelhub/hostelhub/internal/app/features/login"
	businessuserstore "github.com/hostelhub/hostelhub/internal/app/store/businessusers"
	"github.com/hostelhub/hostelhub/internal/app/system/auth"
	"github.com/hostelhub/hostelhub/internal/app/system/ratelimit"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/hostelhub/hostelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, limiter *ratelimit.LoginLimiter) (*login.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only-0123", "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return login.NewHandler(db, sessionMgr, limiter, logger), db
}

func createOwner(t *testing.T, db *mongo.Database, status string) models.BusinessUser {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	biz := testutil.NewFixtures(t, db).CreateBusiness(ctx, "Campus Stays")
	u, err := businessuserstore.New(db).Create(ctx, models.BusinessUser{
		BusinessID: biz.ID,
		FullName:   "Ada Owner",
		Email:      "ada@campus.test",
		Status:     status,
	}, "correct-horse")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return u
}

func post(body any) *http.Request {
	req := testutil.NewJSONRequest("POST", "/login", body, testutil.TestUser{})
	req.RemoteAddr = "10.0.0.1:5555"
	return req
}

func TestHandleLogin_Success(t *testing.T) {
	handler, db := newTestHandler(t, nil)
	owner := createOwner(t, db, businessuserstore.StatusActive)

	rec := testutil.NewRecorder()
	handler.HandleLogin(rec, post(map[string]string{"email": "ADA@campus.test", "password": "correct-horse"}))

	rec.AssertStatus(t, http.StatusOK)
	var resp struct {
		UserID     string `json:"userId"`
		BusinessID string `json:"businessId"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.UserID != owner.ID.Hex() || resp.BusinessID != owner.BusinessID.Hex() {
		t.Errorf("unexpected identity: %+v", resp)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	n, err := db.Collection("activity_events").CountDocuments(ctx, bson.M{"event_type": "user_login", "user_id": owner.ID})
	if err != nil {
		t.Fatalf("count activity: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 login event, got %d", n)
	}
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	handler, db := newTestHandler(t, nil)
	createOwner(t, db, businessuserstore.StatusActive)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"wrong password", map[string]string{"email": "ada@campus.test", "password": "nope"}},
		{"unknown email", map[string]string{"email": "ghost@campus.test", "password": "correct-horse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			handler.HandleLogin(rec, post(tt.body))
			rec.AssertStatus(t, http.StatusUnauthorized)
			rec.AssertContains(t, "invalid email or password")
			if len(rec.Result().Cookies()) != 0 {
				t.Error("no cookie expected on failure")
			}
		})
	}
}

func TestHandleLogin_DisabledUser(t *testing.T) {
	handler, db := newTestHandler(t, nil)
	createOwner(t, db, businessuserstore.StatusDisabled)

	rec := testutil.NewRecorder()
	handler.HandleLogin(rec, post(map[string]string{"email": "ada@campus.test", "password": "correct-horse"}))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleLogin_InvalidBody(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := testutil.NewRecorder()
	handler.HandleLogin(rec, post(map[string]string{"email": "not-an-email", "password": "x"}))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "email must be a valid email address")

	rec = testutil.NewRecorder()
	handler.HandleLogin(rec, post(`{"email":`))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleLogin_Throttled(t *testing.T) {
	limiter := ratelimit.NewLoginLimiter(ratelimit.New(100, time.Minute), ratelimit.New(2, time.Minute))
	handler, db := newTestHandler(t, limiter)
	createOwner(t, db, businessuserstore.StatusActive)

	for i := 0; i < 2; i++ {
		rec := testutil.NewRecorder()
		handler.HandleLogin(rec, post(map[string]string{"email": "ada@campus.test", "password": "wrong"}))
		rec.AssertStatus(t, http.StatusUnauthorized)
	}

	// the correct password no longer helps once the email is throttled
	rec := testutil.NewRecorder()
	handler.HandleLogin(rec, post(map[string]string{"email": "ada@campus.test", "password": "correct-horse"}))
	rec.AssertStatus(t, http.StatusTooManyRequests)
	rec.AssertContains(t, "RATE_LIMITED")
}
