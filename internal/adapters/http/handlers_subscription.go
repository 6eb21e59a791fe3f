package web

import (
	"errors"
	"net/http"

	"gymhall/internal/adapters/http/middleware"
	"gymhall/internal/application/orchestrators"
	"gymhall/internal/application/projections"
)

// handleChangePlan activates a subscription or schedules a deferred
// plan change for the logged-in member. Accepts a JSON body or a form
// post from the subscription page.
func handleChangePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_, memberID, ok := sessionMember(w, r)
	if !ok {
		return
	}

	planID := ""
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		planID = r.FormValue("PlanID")
	} else {
		var body struct {
			PlanID string `json:"plan_id"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		planID = body.PlanID
	}

	result, err := orchestrators.ExecuteChangePlan(r.Context(), orchestrators.ChangePlanInput{
		MemberID: memberID,
		PlanID:   planID,
	}, orchestrators.ChangePlanDeps{
		PlanStore:         stores.PlanStore,
		SubscriptionStore: stores.SubscriptionStore,
		MemberStore:       stores.MemberStore,
		Sender:            emailSender,
		GenerateID:        generateID,
		Now:               timeNow,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrMissingPlanID):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, orchestrators.ErrPlanNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			internalError(w, err)
		}
		return
	}

	if isFormRequest(r) {
		http.Redirect(w, r, "/profile/subscription?msg="+result.Outcome, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"outcome":         result.Outcome,
		"message":         result.Message,
		"subscription_id": result.SubscriptionID,
	})
}

// handleCancelSubscription cancels the member's active subscription.
func handleCancelSubscription(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_, memberID, ok := sessionMember(w, r)
	if !ok {
		return
	}

	result, err := orchestrators.ExecuteCancelSubscription(r.Context(), orchestrators.CancelSubscriptionInput{
		MemberID: memberID,
	}, orchestrators.CancelSubscriptionDeps{
		SubscriptionStore: stores.SubscriptionStore,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrNoActiveSubscription) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}

	if isFormRequest(r) {
		http.Redirect(w, r, "/profile/subscription?msg=canceled", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":         result.Message,
		"subscription_id": result.SubscriptionID,
	})
}

// handleSubscriptionPage renders the membership management page: the
// current membership plus every selectable plan.
func handleSubscriptionPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_, memberID, ok := sessionMember(w, r)
	if !ok {
		return
	}

	profile, err := projections.QueryGetMemberProfile(r.Context(), projections.GetMemberProfileQuery{
		MemberID: memberID,
		Now:      timeNow(),
	}, profileDeps())
	if err != nil {
		internalError(w, err)
		return
	}

	plans, err := stores.PlanStore.ListActive(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "subscription.html", map[string]any{
		"Profile": profile,
		"Plans":   plans,
		"Msg":     flashMessage(r.URL.Query().Get("msg")),
	})
}

// handleProfilePage renders the member's profile with membership,
// billing history, and upcoming bookings.
func handleProfilePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_, memberID, ok := sessionMember(w, r)
	if !ok {
		return
	}

	profile, err := projections.QueryGetMemberProfile(r.Context(), projections.GetMemberProfileQuery{
		MemberID: memberID,
		Now:      timeNow(),
	}, profileDeps())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "profile.html", profile)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func profileDeps() projections.GetMemberProfileDeps {
	return projections.GetMemberProfileDeps{
		MemberStore:       stores.MemberStore,
		SubscriptionStore: stores.SubscriptionStore,
		PlanStore:         stores.PlanStore,
		PaymentStore:      stores.PaymentStore,
		PTSessionStore:    stores.PTSessionStore,
	}
}

// sessionMember resolves the member identity for the logged-in session.
// Accounts without a member profile (bare admin accounts) get a 403.
func sessionMember(w http.ResponseWriter, r *http.Request) (middleware.Session, string, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return middleware.Session{}, "", false
	}
	if sess.MemberID == "" {
		http.Error(w, "No member profile for this account", http.StatusForbidden)
		return sess, "", false
	}
	return sess, sess.MemberID, true
}

func flashMessage(code string) string {
	switch code {
	case orchestrators.OutcomeActivated:
		return orchestrators.MsgActivated
	case orchestrators.OutcomeDeferredChange:
		return orchestrators.MsgDeferredChange
	case orchestrators.OutcomeAlreadyOnPlan:
		return orchestrators.MsgAlreadyOnPlan
	case "canceled":
		return orchestrators.MsgCanceled
	}
	return ""
}
