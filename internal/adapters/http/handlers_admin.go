package web

import (
	"net/http"
	"time"

	"gymhall/internal/application/orchestrators"
)

// handleRunRenewals triggers a renewal sweep on demand. The background
// worker runs the same sweep on a timer; this endpoint exists for
// operations and tests.
func handleRunRenewals(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := orchestrators.ExecuteRenewSubscriptions(r.Context(), orchestrators.RenewSubscriptionsInput{
		Now: timeNow(),
	}, orchestrators.RenewSubscriptionsDeps{
		SubscriptionStore: stores.SubscriptionStore,
		PlanStore:         stores.PlanStore,
		GenerateID:        generateID,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"renewed": result.Renewed,
		"skipped": result.Skipped,
	})
}

// handlePerfDashboard returns aggregated request and query timings for
// the last hour.
func handlePerfDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(timeNow().Add(-time.Hour), 20))
}
