package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	classsessionStore "gymhall/internal/adapters/storage/classsession"
	classtypeStore "gymhall/internal/adapters/storage/classtype"
	locationStore "gymhall/internal/adapters/storage/location"
	planStore "gymhall/internal/adapters/storage/plan"
	trainerStore "gymhall/internal/adapters/storage/trainer"
	accountDomain "gymhall/internal/domain/account"
	classsessionDomain "gymhall/internal/domain/classsession"
	classtypeDomain "gymhall/internal/domain/classtype"
	locationDomain "gymhall/internal/domain/location"
	memberDomain "gymhall/internal/domain/member"
	planDomain "gymhall/internal/domain/plan"
	trainerDomain "gymhall/internal/domain/trainer"
)

// SeedStores bundles every store the demo seed writes to.
type SeedStores struct {
	AccountStore      AccountStoreForRegister
	MemberStore       MemberStoreForRegister
	PlanStore         planStore.Store
	ClassTypeStore    classtypeStore.Store
	LocationStore     locationStore.Store
	TrainerStore      trainerStore.Store
	ClassSessionStore classsessionStore.Store
}

// SeedDemoDeps holds dependencies for SeedDemoData.
type SeedDemoDeps struct {
	Stores SeedStores
	Now    func() time.Time
}

// ExecuteSeedDemoData loads the starter catalog: three monthly plans
// and one yearly, two class types, two rooms, a demo trainer, a demo
// member, and a week of upcoming class sessions. The seed is a no-op
// when plans already exist, so restarts leave the database alone.
// IDs are fixed strings so a partial seed heals itself on the next run.
func ExecuteSeedDemoData(ctx context.Context, deps SeedDemoDeps) error {
	existing, err := deps.Stores.PlanStore.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list plans: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	plans := []planDomain.Plan{
		{ID: "plan-basic", Name: "Basic", Price: decimal.RequireFromString("29.00"), BillingPeriod: planDomain.PeriodMonthly, Perks: []string{"Gym floor access", "Locker"}, Active: true},
		{ID: "plan-standard", Name: "Standard", Price: decimal.RequireFromString("49.00"), BillingPeriod: planDomain.PeriodMonthly, Perks: []string{"Gym floor access", "All group classes", "Locker"}, Active: true},
		{ID: "plan-premium", Name: "Premium", Price: decimal.RequireFromString("55.00"), BillingPeriod: planDomain.PeriodMonthly, Perks: []string{"Gym floor access", "All group classes", "Sauna", "1 PT session per month"}, Active: true},
		{ID: "plan-premium-year", Name: "Premium Yearly", Price: decimal.RequireFromString("550.00"), BillingPeriod: planDomain.PeriodYearly, Perks: []string{"Everything in Premium", "Two months free"}, Active: true},
	}
	for _, p := range plans {
		if err := deps.Stores.PlanStore.Save(ctx, p); err != nil {
			return fmt.Errorf("seed: save plan %s: %w", p.ID, err)
		}
	}

	classTypes := []classtypeDomain.ClassType{
		{
			ID:   "ct-hiit",
			Name: "HIIT Blast",
			Description: "High-intensity interval training.\n\n" +
				"- 45 minutes of work/rest cycles\n" +
				"- All levels welcome, scale as needed\n" +
				"- Bring a towel, **you will need it**",
			DefaultDurationMin: 45,
		},
		{
			ID:   "ct-yoga",
			Name: "Yoga Flow",
			Description: "A steady vinyasa flow to close out the day.\n\n" +
				"- 60 minutes\n" +
				"- Mats provided",
			DefaultDurationMin: 60,
		},
	}
	for _, ct := range classTypes {
		if err := deps.Stores.ClassTypeStore.Save(ctx, ct); err != nil {
			return fmt.Errorf("seed: save class type %s: %w", ct.ID, err)
		}
	}

	locations := []locationDomain.Location{
		{ID: "loc-main", Name: "Main Hall", Capacity: 30},
		{ID: "loc-studio", Name: "Studio 2", Capacity: 16},
	}
	for _, l := range locations {
		if err := deps.Stores.LocationStore.Save(ctx, l); err != nil {
			return fmt.Errorf("seed: save location %s: %w", l.ID, err)
		}
	}

	trainerMemberID, err := seedPerson(ctx, deps, seedPersonInput{
		accountID: "acct-trainer-demo",
		memberID:  "member-trainer-demo",
		email:     "alex.trainer@gymhall.example",
		username:  "alexcoach",
		first:     "Alex",
		last:      "Koivu",
		role:      accountDomain.RoleTrainer,
	})
	if err != nil {
		return err
	}
	demoTrainer := trainerDomain.Trainer{
		ID:       "trainer-demo",
		MemberID: trainerMemberID,
		Bio:      "Strength and conditioning coach. Ten years on the gym floor, CSCS certified.",
	}
	if err := deps.Stores.TrainerStore.Save(ctx, demoTrainer); err != nil {
		return fmt.Errorf("seed: save trainer: %w", err)
	}

	if _, err := seedPerson(ctx, deps, seedPersonInput{
		accountID: "acct-member-demo",
		memberID:  "member-demo",
		email:     "demo@gymhall.example",
		username:  "demo",
		first:     "Demo",
		last:      "Member",
		role:      accountDomain.RoleMember,
	}); err != nil {
		return err
	}

	// A week of sessions starting tomorrow: HIIT mornings in the main
	// hall, yoga evenings in the studio.
	day := deps.Now().UTC().Truncate(24 * time.Hour)
	for i := 1; i <= 7; i++ {
		d := day.AddDate(0, 0, i)
		sessions := []classsessionDomain.ClassSession{
			{
				ID:          fmt.Sprintf("cs-hiit-%s", d.Format("2006-01-02")),
				ClassTypeID: "ct-hiit",
				CoachID:     demoTrainer.ID,
				LocationID:  "loc-main",
				StartAt:     d.Add(7 * time.Hour),
				DurationMin: 45,
				Status:      classsessionDomain.StatusScheduled,
			},
			{
				ID:          fmt.Sprintf("cs-yoga-%s", d.Format("2006-01-02")),
				ClassTypeID: "ct-yoga",
				CoachID:     demoTrainer.ID,
				LocationID:  "loc-studio",
				StartAt:     d.Add(18 * time.Hour),
				DurationMin: 60,
				Status:      classsessionDomain.StatusScheduled,
			},
		}
		for _, s := range sessions {
			if err := deps.Stores.ClassSessionStore.Save(ctx, s); err != nil {
				return fmt.Errorf("seed: save class session %s: %w", s.ID, err)
			}
		}
	}

	slog.Info("seed_event", "event", "demo_data_loaded", "plans", len(plans), "class_types", len(classTypes))
	return nil
}

type seedPersonInput struct {
	accountID string
	memberID  string
	email     string
	username  string
	first     string
	last      string
	role      string
}

func seedPerson(ctx context.Context, deps SeedDemoDeps, in seedPersonInput) (string, error) {
	acct := accountDomain.Account{
		ID:        in.accountID,
		Email:     in.email,
		Role:      in.role,
		CreatedAt: deps.Now(),
	}
	if err := acct.SetPassword("gymhall-demo-pass"); err != nil {
		return "", fmt.Errorf("seed: password for %s: %w", in.email, err)
	}
	if err := deps.Stores.AccountStore.Save(ctx, acct); err != nil {
		return "", fmt.Errorf("seed: save account %s: %w", in.accountID, err)
	}

	m := memberDomain.Member{
		ID:        in.memberID,
		AccountID: in.accountID,
		Email:     in.email,
		Username:  in.username,
		FirstName: in.first,
		LastName:  in.last,
		Active:    true,
	}
	if err := deps.Stores.MemberStore.Save(ctx, m); err != nil {
		return "", fmt.Errorf("seed: save member %s: %w", in.memberID, err)
	}
	return m.ID, nil
}
