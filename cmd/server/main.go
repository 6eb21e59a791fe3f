package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "gymhall/internal/adapters/email"
	web "gymhall/internal/adapters/http"
	"gymhall/internal/adapters/http/perf"
	"gymhall/internal/adapters/storage"
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
	"gymhall/internal/application/orchestrators"

	"github.com/google/uuid"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("GYMHALL_DB", "gymhall.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Run database migrations
	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	// Create store instances (using timed DB for query instrumentation)
	stores := &web.Stores{
		AccountStore:      accountStore.NewSQLiteStore(timedDB),
		MemberStore:       memberStore.NewSQLiteStore(timedDB),
		PlanStore:         planStore.NewSQLiteStore(timedDB),
		SubscriptionStore: subscriptionStore.NewSQLiteStore(timedDB),
		PaymentStore:      paymentStore.NewSQLiteStore(timedDB),
		TrainerStore:      trainerStore.NewSQLiteStore(timedDB),
		ClassTypeStore:    classTypeStore.NewSQLiteStore(timedDB),
		LocationStore:     locationStore.NewSQLiteStore(timedDB),
		ClassSessionStore: classSessionStore.NewSQLiteStore(timedDB),
		PTSessionStore:    ptSessionStore.NewSQLiteStore(timedDB),
	}

	// Seed the starter catalog (plans, class types, rooms, a demo
	// trainer and member, and a week of sessions). Idempotent.
	seedDeps := orchestrators.SeedDemoDeps{
		Stores: orchestrators.SeedStores{
			AccountStore:      stores.AccountStore,
			MemberStore:       stores.MemberStore,
			PlanStore:         stores.PlanStore,
			ClassTypeStore:    stores.ClassTypeStore,
			LocationStore:     stores.LocationStore,
			TrainerStore:      stores.TrainerStore,
			ClassSessionStore: stores.ClassSessionStore,
		},
		Now: time.Now,
	}
	if err := orchestrators.ExecuteSeedDemoData(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed demo data: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("GYMHALL_RESEND_KEY")
	emailFrom := envOrDefault("GYMHALL_RESEND_FROM", "GymHall <noreply@gymhall.example>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if os.Getenv("GYMHALL_ENV") == "production" {
			log.Println("WARNING: GYMHALL_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set GYMHALL_RESEND_KEY for real delivery)")
		}
	}

	// Start the renewal worker: rolls over due subscriptions in the
	// background until shutdown.
	renewStopCh := make(chan struct{})
	orchestrators.StartRenewalWorker(orchestrators.RenewSubscriptionsDeps{
		SubscriptionStore: stores.SubscriptionStore,
		PlanStore:         stores.PlanStore,
		GenerateID:        uuid.NewString,
	}, renewalInterval(), renewStopCh)
	defer close(renewStopCh)

	// Create HTTP handler with middleware (pass collector for timing + dashboard)
	mux := web.NewMux("static", stores, collector)

	// Start server
	addr := envOrDefault("GYMHALL_ADDR", ":8080")
	log.Printf("GymHall %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("GYMHALL_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func renewalInterval() time.Duration {
	if v := os.Getenv("GYMHALL_RENEW_INTERVAL_MIN"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil && mins > 0 {
			return time.Duration(mins) * time.Minute
		}
	}
	return time.Hour
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
