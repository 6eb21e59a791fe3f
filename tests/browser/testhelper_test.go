package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	web "gymhall/internal/adapters/http"
	"gymhall/internal/adapters/http/middleware"
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
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
	tmpDir  string
}

// newTestApp creates a fully wired app with a temp SQLite DB and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	// Create temp directory for the database
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Run migrations
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	// Create stores
	stores := &web.Stores{
		AccountStore:      accountStore.NewSQLiteStore(db),
		MemberStore:       memberStore.NewSQLiteStore(db),
		PlanStore:         planStore.NewSQLiteStore(db),
		SubscriptionStore: subscriptionStore.NewSQLiteStore(db),
		PaymentStore:      paymentStore.NewSQLiteStore(db),
		TrainerStore:      trainerStore.NewSQLiteStore(db),
		ClassTypeStore:    classTypeStore.NewSQLiteStore(db),
		LocationStore:     locationStore.NewSQLiteStore(db),
		ClassSessionStore: classSessionStore.NewSQLiteStore(db),
		PTSessionStore:    ptSessionStore.NewSQLiteStore(db),
	}

	// Seed the starter catalog so pages have plans, trainers, and classes
	ctx := context.Background()
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
	if err := orchestrators.ExecuteSeedDemoData(ctx, seedDeps); err != nil {
		t.Fatalf("failed to seed demo data: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	// Start HTTP server
	mux := web.NewMux("static", stores, perf.NewCollector(perf.DefaultRingSize))
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	// Start Playwright
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
		tmpDir:  tmpDir,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// register signs up a fresh member through the registration form and
// lands on the home page logged in.
func (a *testApp) register(t *testing.T, page playwright.Page, email, username, password string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/register"); err != nil {
		t.Fatalf("failed to navigate to register: %v", err)
	}
	fields := map[string]string{
		"Email":     email,
		"Username":  username,
		"FirstName": "Test",
		"LastName":  "Member",
		"Phone":     "040 123 4567",
		"Password":  password,
	}
	for name, value := range fields {
		if err := page.Locator(fmt.Sprintf("input[name=%s]", name)).Fill(value); err != nil {
			t.Fatalf("failed to fill %s: %v", name, err)
		}
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit registration: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("registration did not redirect home: %v", err)
	}
}

// login navigates to the login page and logs in with the given credentials.
func (a *testApp) login(t *testing.T, page playwright.Page, email, password string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=Email]").Fill(email); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill(password); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/profile", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to profile: %v", err)
	}
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
