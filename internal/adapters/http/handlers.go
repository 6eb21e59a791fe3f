package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"gymhall/internal/adapters/http/middleware"
	accountDomain "gymhall/internal/domain/account"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func isFormRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	email := ""
	if ok {
		role = sess.Role
		email = sess.Email
	}

	funcMap := template.FuncMap{
		"currentRole":  func() string { return role },
		"currentEmail": func() string { return email },
		"isLoggedIn":   func() bool { return role != "" },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"fmtDay":    func(t time.Time) string { return t.Format("Mon 2 Jan") },
		"fmtTime":   func(t time.Time) string { return t.Format("15:04") },
		"fmtDate":   func(t time.Time) string { return t.Format("2 January 2006") },
		"dateParam": func(t time.Time) string { return t.Format("2006-01-02") },
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// registerRoutes wires all pages and API endpoints onto the mux.
func registerRoutes(mux *http.ServeMux) {
	requireAuth := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}
	requireAdmin := middleware.RequireRole(accountDomain.RoleAdmin)

	// Pages
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/login", handleLoginPage)
	mux.HandleFunc("/register", handleRegisterPage)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/schedule/day", handleScheduleDay)
	mux.HandleFunc("/schedule/week", handleScheduleWeek)
	mux.HandleFunc("/trainer", handleTrainerPage)
	mux.Handle("/trainer/book", requireAuth(handleBookTrainer))
	mux.Handle("/profile", requireAuth(handleProfilePage))
	mux.Handle("/profile/subscription", requireAuth(handleSubscriptionPage))
	mux.Handle("/profile/subscription/change", requireAuth(handleChangePlan))
	mux.Handle("/profile/subscription/cancel", requireAuth(handleCancelSubscription))

	// JSON API
	mux.HandleFunc("/api/register", handleAPIRegister)
	mux.HandleFunc("/api/login", handleAPILogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.Handle("/api/me", requireAuth(handleAPIMe))
	mux.HandleFunc("/api/sessions", handleAPISessions)
	mux.Handle("/api/pt/book", requireAuth(handleBookTrainer))
	mux.Handle("/api/subscription/change", requireAuth(handleChangePlan))
	mux.Handle("/api/subscription/cancel", requireAuth(handleCancelSubscription))

	// Admin
	mux.Handle("/api/admin/renewals/run", requireAdmin(http.HandlerFunc(handleRunRenewals)))
	mux.Handle("/admin/perf", requireAdmin(http.HandlerFunc(handlePerfDashboard)))
}
