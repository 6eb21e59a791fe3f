package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"gymhall/internal/adapters/email"
	"gymhall/internal/adapters/http/middleware"
	"gymhall/internal/adapters/http/perf"
	accountStore "gymhall/internal/adapters/storage/account"
	classSessionStore "gymhall/internal/adapters/storage/classsession"
	classTypeStore "gymhall/internal/adapters/storage/classtype"
	locationStore "gymhall/internal/adapters/storage/location"
	memberStore "gymhall/internal/adapters/storage/member"
	paymentStore "gymhall/internal/adapters/storage/payment"
	planStore "gymhall/internal/adapters/storage/plan"
	ptSessionStore "gymhall/internal/adapters/storage/ptsession"
	subscriptionStore "gymhall/internal/adapters/storage/subscription"
	trainerStore "gymhall/internal/adapters/storage/trainer"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	MemberStore       memberStore.Store
	PlanStore         planStore.Store
	SubscriptionStore subscriptionStore.Store
	PaymentStore      paymentStore.Store
	TrainerStore      trainerStore.Store
	ClassTypeStore    classTypeStore.Store
	LocationStore     locationStore.Store
	ClassSessionStore classSessionStore.Store
	PTSessionStore    ptSessionStore.Store
}

// loadCSRFKey reads the CSRF secret from GYMHALL_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("GYMHALL_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("GYMHALL_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("GYMHALL_ENV") == "production" {
		log.Fatal("GYMHALL_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set GYMHALL_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("GYMHALL_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
