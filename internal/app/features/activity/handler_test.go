package activity

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	activitystore "github.com/hostelhub/hostelhub/internal/app/store/activity"
	"github.com/hostelhub/hostelhub/internal/app/system/auth"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/hostelhub/hostelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type env struct {
	store  *activitystore.Store
	router http.Handler
	biz    primitive.ObjectID
	owner  testutil.TestUser
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-0123", "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := NewHandler(db, logger)
	biz := primitive.NewObjectID()
	return &env{store: h.Activity, router: Routes(h, sm), biz: biz, owner: testutil.OwnerUser(biz)}
}

func (e *env) seed(t *testing.T, businessID primitive.ObjectID, eventType, summary string, ts time.Time) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := e.store.Create(ctx, models.ActivityEvent{
		BusinessID: businessID,
		EventType:  eventType,
		Summary:    summary,
		Timestamp:  ts,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
}

func (e *env) get(target string) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	e.router.ServeHTTP(rec, testutil.NewAuthenticatedRequest("GET", target, e.owner))
	return rec
}

func TestServeRecent(t *testing.T) {
	e := newEnv(t)
	now := time.Now().UTC()
	e.seed(t, e.biz, activitystore.EventHostelCreated, "old", now.Add(-2*time.Hour))
	e.seed(t, e.biz, activitystore.EventBookingCreated, "new", now.Add(-time.Hour))
	e.seed(t, primitive.NewObjectID(), activitystore.EventBookingCreated, "foreign", now)

	var resp struct {
		Items []struct {
			Summary string `json:"summary"`
		} `json:"items"`
		Degraded bool `json:"degraded"`
	}
	rec := e.get("/")
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &resp)
	if len(resp.Items) != 2 || resp.Items[0].Summary != "new" || resp.Items[1].Summary != "old" {
		t.Errorf("unexpected items: %+v", resp.Items)
	}

	resp.Items = nil
	e.get("/?limit=1").DecodeJSON(t, &resp)
	if len(resp.Items) != 1 {
		t.Errorf("limit=1: got %d items", len(resp.Items))
	}

	e.get("/?limit=zero").AssertStatus(t, http.StatusBadRequest)
}

func TestServeSummary(t *testing.T) {
	e := newEnv(t)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	e.seed(t, e.biz, activitystore.EventBookingCreated, "", monday.Add(time.Hour))
	e.seed(t, e.biz, activitystore.EventBookingCreated, "", monday.AddDate(0, 0, 6))
	e.seed(t, e.biz, activitystore.EventAgentCreated, "", monday.AddDate(0, 0, 3))
	e.seed(t, e.biz, activitystore.EventAgentCreated, "", monday.AddDate(0, 0, 7))

	var resp struct {
		WeekStart string `json:"weekStart"`
		WeekEnd   string `json:"weekEnd"`
		Total     int64  `json:"total"`
		Counts    []struct {
			EventType string `json:"eventType"`
			Count     int64  `json:"count"`
		} `json:"counts"`
	}
	rec := e.get("/summary?week=2026-03-04")
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &resp)
	if resp.WeekStart != "2026-03-02" || resp.WeekEnd != "2026-03-08" {
		t.Errorf("week: %s..%s", resp.WeekStart, resp.WeekEnd)
	}
	if resp.Total != 3 {
		t.Errorf("total: got %d, want 3", resp.Total)
	}
	got := map[string]int64{}
	for _, c := range resp.Counts {
		got[c.EventType] = c.Count
	}
	if got[activitystore.EventBookingCreated] != 2 || got[activitystore.EventAgentCreated] != 1 {
		t.Errorf("counts: %v", got)
	}

	e.get("/summary?week=last").AssertStatus(t, http.StatusBadRequest)
}

func TestServeEventsCSV(t *testing.T) {
	e := newEnv(t)
	day := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	e.seed(t, e.biz, activitystore.EventHostelCreated, "=HYPERLINK(\"x\")", day)
	e.seed(t, e.biz, activitystore.EventHostelUpdated, "outside", day.AddDate(0, 0, 5))

	rec := e.get("/events.csv?start=2026-03-01&end=2026-03-02")
	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type: %q", ct)
	}
	body := strings.TrimPrefix(rec.Body.String(), "\xEF\xBB\xBF")
	lines := strings.Split(strings.TrimSpace(body), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines: %q", len(lines), body)
	}
	if !strings.HasPrefix(lines[0], "timestamp,event_type") {
		t.Errorf("header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "'=HYPERLINK") {
		t.Errorf("formula not neutralized: %q", lines[1])
	}

	e.get("/events.csv?start=2026-03-05&end=2026-03-01").AssertStatus(t, http.StatusBadRequest)
}

func TestGetWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC), "2026-03-02"}, // Monday
		{time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), "2026-03-02"},
		{time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC), "2026-03-02"}, // Sunday
		{time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), "2026-03-09"},
	}
	for _, tt := range tests {
		if got := getWeekStart(tt.in).Format(dateLayout); got != tt.want {
			t.Errorf("getWeekStart(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseDateRange_Default(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	start, end, err := parseDateRange(httptest.NewRequest("GET", "/", nil), now)
	if err != nil {
		t.Fatalf("parseDateRange: %v", err)
	}
	if end.Format(dateLayout) != "2026-04-01" || start.Format(dateLayout) != "2026-03-02" {
		t.Errorf("range: %v .. %v", start, end)
	}
}
