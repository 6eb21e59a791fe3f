package web

import (
	"errors"
	"net/http"

	"gymhall/internal/adapters/http/middleware"
	"gymhall/internal/application/orchestrators"
)

// handleLoginPage serves the login form and processes form logins.
func handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "login.html", map[string]any{"Email": ""})
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	_, err := loginAndCreateSession(w, r, orchestrators.LoginInput{
		Email:    r.FormValue("Email"),
		Password: r.FormValue("Password"),
	})
	if err != nil {
		msg := "Invalid email or password."
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			msg = "Account locked. Try again in 15 minutes."
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"Error": msg,
			"Email": r.FormValue("Email"),
		})
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// handleRegisterPage serves the registration form and processes form signups.
func handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "register.html", map[string]any{})
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.RegisterMemberInput{
		Email:     r.FormValue("Email"),
		Username:  r.FormValue("Username"),
		FirstName: r.FormValue("FirstName"),
		LastName:  r.FormValue("LastName"),
		Phone:     r.FormValue("Phone"),
		Password:  r.FormValue("Password"),
	}

	if _, err := registerMember(r, input); err != nil {
		renderTemplate(w, r, "register.html", map[string]any{
			"Error": registrationErrorMessage(err),
			"Form":  input,
		})
		return
	}

	// Log the fresh account straight in.
	if _, err := loginAndCreateSession(w, r, orchestrators.LoginInput{Email: input.Email, Password: input.Password}); err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout clears the session for both form and API callers.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	if isHTMLRequest(r) || isFormRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleAPIRegister creates an account and member from a JSON body.
func handleAPIRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input orchestrators.RegisterMemberInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := registerMember(r, input)
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrEmailTaken), errors.Is(err, orchestrators.ErrUsernameTaken):
			writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
		case errors.Is(err, orchestrators.ErrMissingFields):
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		default:
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": registrationErrorMessage(err)})
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"account_id": result.AccountID,
		"member_id":  result.MemberID,
	})
}

// handleAPILogin validates JSON credentials and sets the session cookie.
func handleAPILogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input orchestrators.LoginInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := loginAndCreateSession(w, r, input)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			status = http.StatusTooManyRequests
		}
		writeJSON(w, status, map[string]any{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"account_id": result.AccountID,
		"email":      result.Email,
		"role":       result.Role,
	})
}

// handleAPIMe returns the authenticated identity.
func handleAPIMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"account_id": sess.AccountID,
		"member_id":  sess.MemberID,
		"email":      sess.Email,
		"role":       sess.Role,
	})
}

func registerMember(r *http.Request, input orchestrators.RegisterMemberInput) (orchestrators.RegisterMemberResult, error) {
	return orchestrators.ExecuteRegisterMember(r.Context(), input, orchestrators.RegisterMemberDeps{
		AccountStore: stores.AccountStore,
		MemberStore:  stores.MemberStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
}

// loginAndCreateSession runs the login use case, resolves the member
// identity, and sets the session cookie.
func loginAndCreateSession(w http.ResponseWriter, r *http.Request, input orchestrators.LoginInput) (orchestrators.LoginResult, error) {
	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		return orchestrators.LoginResult{}, err
	}

	memberID := ""
	if m, err := stores.MemberStore.GetByAccountID(r.Context(), result.AccountID); err == nil {
		memberID = m.ID
	}

	token, err := sessions.Create(result.AccountID, memberID, result.Email, result.Role)
	if err != nil {
		return orchestrators.LoginResult{}, err
	}
	middleware.SetSessionCookie(w, token)
	return result, nil
}

func registrationErrorMessage(err error) string {
	switch {
	case errors.Is(err, orchestrators.ErrEmailTaken):
		return "That email is already registered."
	case errors.Is(err, orchestrators.ErrUsernameTaken):
		return "That username is already taken."
	case errors.Is(err, orchestrators.ErrMissingFields):
		return "Please fill in every required field."
	default:
		return err.Error()
	}
}
