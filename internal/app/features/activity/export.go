// internal/app/features/activity/export.go
package activity

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeEventsCSV handles GET /api/activity/events.csv?start=&end=.
// Both dates are inclusive; the range defaults to the last 30 days.
func (h *Handler) ServeEventsCSV(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	startDate, endDate, err := parseDateRange(r, time.Now().UTC())
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "activity.export")
	defer cancel()

	events, err := h.Activity.GetByBusinessInTimeRange(ctx, caller.BusinessID, startDate, endDate)
	if err != nil {
		respond.Error(w, h.Log, apperr.ReadFailure("export activity", err))
		return
	}

	filename := fmt.Sprintf("activity_events_%s_%s.csv", startDate.Format("20060102"), endDate.AddDate(0, 0, -1).Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	// UTF-8 BOM for Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		h.Log.Error("CSV write failed (BOM)", zap.Error(err))
		return
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	defer cw.Flush()

	if err := cw.Write([]string{"timestamp", "event_type", "user_id", "subject_id", "summary", "details"}); err != nil {
		h.Log.Error("CSV write failed (header)", zap.Error(err))
		return
	}
	for _, e := range events {
		subject := ""
		if e.SubjectID != nil {
			subject = e.SubjectID.Hex()
		}
		detailsJSON := ""
		if len(e.Details) > 0 {
			if b, err := json.Marshal(e.Details); err == nil {
				detailsJSON = string(b)
			}
		}
		if err := cw.Write([]string{
			e.Timestamp.Format(time.RFC3339),
			e.EventType,
			e.UserID.Hex(),
			subject,
			sanitizeCSVField(e.Summary),
			detailsJSON,
		}); err != nil {
			h.Log.Error("CSV write failed (row)", zap.Error(err))
			return
		}
	}

	h.Log.Info("activity CSV exported",
		zap.String("business_id", caller.BusinessID.Hex()),
		zap.Int("rows", len(events)))
}

// parseDateRange reads start and end (YYYY-MM-DD, inclusive) and returns
// the half-open range [start, end+1day).
func parseDateRange(r *http.Request, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	endDate := today.AddDate(0, 0, 1)
	startDate := endDate.AddDate(0, 0, -30)

	if s := r.URL.Query().Get("start"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, apperr.Invalid("start must be a YYYY-MM-DD date", err)
		}
		startDate = t
	}
	if e := r.URL.Query().Get("end"); e != "" {
		t, err := time.Parse(dateLayout, e)
		if err != nil {
			return time.Time{}, time.Time{}, apperr.Invalid("end must be a YYYY-MM-DD date", err)
		}
		endDate = t.AddDate(0, 0, 1)
	}
	if !startDate.Before(endDate) {
		return time.Time{}, time.Time{}, apperr.Invalid("start must not be after end", nil)
	}
	return startDate, endDate, nil
}

// sanitizeCSVField prevents CSV formula injection.
func sanitizeCSVField(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}
