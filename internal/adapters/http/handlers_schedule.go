package web

import (
	"net/http"
	"time"

	"gymhall/internal/application/projections"
)

// parseDateParam reads a ?date=YYYY-MM-DD query parameter, defaulting
// to today (UTC) when absent or malformed.
func parseDateParam(r *http.Request) time.Time {
	if raw := r.URL.Query().Get("date"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			return d
		}
	}
	return timeNow().UTC()
}

// handleHome renders the landing page with the selectable plans.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	plans, err := stores.PlanStore.ListActive(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "index.html", map[string]any{"Plans": plans})
}

// handleScheduleDay renders one day of the class schedule.
func handleScheduleDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetDaySchedule(r.Context(), projections.GetDayScheduleQuery{
		Date: parseDateParam(r),
	}, projections.GetDayScheduleDeps{ClassSessionStore: stores.ClassSessionStore})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "schedule_day.html", map[string]any{
			"Date":    result.Date,
			"Entries": result.Entries,
			"Prev":    result.Date.AddDate(0, 0, -1),
			"Next":    result.Date.AddDate(0, 0, 1),
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleScheduleWeek renders the Monday-to-Sunday week view.
func handleScheduleWeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetWeekSchedule(r.Context(), projections.GetWeekScheduleQuery{
		Date: parseDateParam(r),
	}, projections.GetWeekScheduleDeps{ClassSessionStore: stores.ClassSessionStore})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "schedule_week.html", map[string]any{
			"WeekStart": result.WeekStart,
			"Days":      result.Days,
			"Prev":      result.WeekStart.AddDate(0, 0, -7),
			"Next":      result.WeekStart.AddDate(0, 0, 7),
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleAPISessions returns scheduled class sessions in a time range.
// Both bounds are optional; the default window is the next seven days.
func handleAPISessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	now := timeNow().UTC()
	from := now.Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)
	if raw := r.URL.Query().Get("from"); raw != "" {
		d, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "from must be RFC3339", http.StatusBadRequest)
			return
		}
		from = d
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		d, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "to must be RFC3339", http.StatusBadRequest)
			return
		}
		to = d
	}
	if !to.After(from) {
		http.Error(w, "to must be after from", http.StatusBadRequest)
		return
	}

	entries, err := stores.ClassSessionStore.ListBetween(r.Context(), from, to)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": entries})
}
