package web

import (
	"errors"
	"net/http"
	"net/url"

	"gymhall/internal/application/orchestrators"
)

// handleTrainerPage renders the trainer roster with the booking form.
func handleTrainerPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profiles, err := stores.TrainerStore.ListProfiles(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "trainer.html", map[string]any{
			"Trainers": profiles,
			"Msg":      r.URL.Query().Get("msg"),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trainers": profiles})
}

// handleBookTrainer requests a personal-training slot for the
// logged-in member. Accepts a JSON body or the trainer page form.
func handleBookTrainer(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_, memberID, ok := sessionMember(w, r)
	if !ok {
		return
	}

	input := orchestrators.BookTrainerInput{MemberID: memberID}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.TrainerID = r.FormValue("TrainerID")
		input.StartTime = r.FormValue("StartTime")
	} else {
		var body struct {
			TrainerID string `json:"trainer_id"`
			StartTime string `json:"start_time"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.TrainerID = body.TrainerID
		input.StartTime = body.StartTime
	}

	result, err := orchestrators.ExecuteBookTrainer(r.Context(), input, orchestrators.BookTrainerDeps{
		TrainerStore:   stores.TrainerStore,
		PTSessionStore: stores.PTSessionStore,
		GenerateID:     generateID,
		Now:            timeNow,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrMissingTrainerID), errors.Is(err, orchestrators.ErrInvalidStartTime):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, orchestrators.ErrTrainerNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			internalError(w, err)
		}
		return
	}

	if isFormRequest(r) {
		http.Redirect(w, r, "/trainer?msg="+url.QueryEscape(result.Message), http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    result.Message,
		"session_id": result.SessionID,
		"start_at":   result.StartAt,
	})
}
