// internal/app/features/activity/summary.go
package activity

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	activitystore "github.com/hostelhub/hostelhub/internal/app/store/activity"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ServeRecent handles GET /api/activity?limit=N: the newest events first.
func (h *Handler) ServeRecent(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	limit := defaultRecentLimit
	if raw := query.Get(r, "limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respond.Error(w, h.Log, apperr.Invalid("limit must be a positive number", err))
			return
		}
		limit = min(n, maxRecentLimit)
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "activity.recent")
	defer cancel()

	events, err := h.Activity.GetByBusiness(ctx, caller.BusinessID, int64(limit))
	if err != nil {
		h.Log.Warn("activity list degraded",
			zap.String("business_id", caller.BusinessID.Hex()),
			zap.Error(err))
		err = apperr.ReadFailure("list activity", err)
	}
	respond.JSON(w, http.StatusOK, shared.NewCollection[models.ActivityEvent](events, err))
}

type typeCount struct {
	EventType string `json:"eventType"`
	Count     int64  `json:"count"`
}

type weekSummary struct {
	WeekStart string      `json:"weekStart"`
	WeekEnd   string      `json:"weekEnd"`
	Total     int64       `json:"total"`
	Counts    []typeCount `json:"counts"`
}

// ServeSummary handles GET /api/activity/summary?week=YYYY-MM-DD. The week
// runs Monday to Sunday and defaults to the current one.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	weekStart := getWeekStart(time.Now().UTC())
	if raw := query.Get(r, "week"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			respond.Error(w, h.Log, apperr.Invalid("week must be a YYYY-MM-DD date", err))
			return
		}
		weekStart = getWeekStart(parsed)
	}
	weekEnd := weekStart.AddDate(0, 0, 7)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "activity.summary")
	defer cancel()

	out := weekSummary{
		WeekStart: weekStart.Format(dateLayout),
		WeekEnd:   weekEnd.AddDate(0, 0, -1).Format(dateLayout),
		Counts:    make([]typeCount, 0, len(activitystore.EventTypes)),
	}
	for _, et := range activitystore.EventTypes {
		n, err := h.Activity.CountByBusinessInTimeRange(ctx, caller.BusinessID, et, weekStart, weekEnd)
		if err != nil {
			respond.Error(w, h.Log, apperr.ReadFailure("count activity", err))
			return
		}
		if n == 0 {
			continue
		}
		out.Total += n
		out.Counts = append(out.Counts, typeCount{EventType: et, Count: n})
	}
	respond.JSON(w, http.StatusOK, out)
}

// getWeekStart returns the Monday of t's week at midnight UTC.
func getWeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}
