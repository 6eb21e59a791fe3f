package projections

import (
	"context"
	"testing"
	"time"

	"gymhall/internal/adapters/storage/classsession"
)

type mockClassSessionStore struct {
	entries []classsession.Entry
}

func (s *mockClassSessionStore) ListBetween(_ context.Context, from, to time.Time) ([]classsession.Entry, error) {
	var out []classsession.Entry
	for _, e := range s.entries {
		if !e.StartAt.Before(from) && e.StartAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func entryAt(id string, at time.Time) classsession.Entry {
	return classsession.Entry{ID: id, StartAt: at, DurationMin: 60, Title: "Yoga Flow", Trainer: "Alex Koivu", Location: "Studio 2"}
}

func TestGetDaySchedule_FiltersToOneDay(t *testing.T) {
	store := &mockClassSessionStore{entries: []classsession.Entry{
		entryAt("cs-1", time.Date(2024, 6, 17, 7, 0, 0, 0, time.UTC)),
		entryAt("cs-2", time.Date(2024, 6, 17, 18, 0, 0, 0, time.UTC)),
		entryAt("cs-3", time.Date(2024, 6, 18, 7, 0, 0, 0, time.UTC)),
	}}

	result, err := QueryGetDaySchedule(context.Background(), GetDayScheduleQuery{
		Date: time.Date(2024, 6, 17, 13, 45, 0, 0, time.UTC),
	}, GetDayScheduleDeps{ClassSessionStore: store})
	if err != nil {
		t.Fatalf("QueryGetDaySchedule failed: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if want := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC); !result.Date.Equal(want) {
		t.Errorf("date = %v, want %v", result.Date, want)
	}
}

func TestGetWeekSchedule_BucketsMondayToSunday(t *testing.T) {
	// 2024-06-17 is a Monday.
	store := &mockClassSessionStore{entries: []classsession.Entry{
		entryAt("cs-mon", time.Date(2024, 6, 17, 7, 0, 0, 0, time.UTC)),
		entryAt("cs-wed", time.Date(2024, 6, 19, 18, 0, 0, 0, time.UTC)),
		entryAt("cs-sun", time.Date(2024, 6, 23, 10, 0, 0, 0, time.UTC)),
		entryAt("cs-next", time.Date(2024, 6, 24, 7, 0, 0, 0, time.UTC)),
	}}

	// Query from mid-week; the week should still start on Monday.
	result, err := QueryGetWeekSchedule(context.Background(), GetWeekScheduleQuery{
		Date: time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC),
	}, GetWeekScheduleDeps{ClassSessionStore: store})
	if err != nil {
		t.Fatalf("QueryGetWeekSchedule failed: %v", err)
	}

	if want := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC); !result.WeekStart.Equal(want) {
		t.Fatalf("week start = %v, want %v", result.WeekStart, want)
	}
	if len(result.Days[0].Entries) != 1 || result.Days[0].Entries[0].ID != "cs-mon" {
		t.Error("Monday bucket wrong")
	}
	if len(result.Days[2].Entries) != 1 || result.Days[2].Entries[0].ID != "cs-wed" {
		t.Error("Wednesday bucket wrong")
	}
	if len(result.Days[6].Entries) != 1 || result.Days[6].Entries[0].ID != "cs-sun" {
		t.Error("Sunday bucket wrong")
	}
	for i, d := range result.Days {
		for _, e := range d.Entries {
			if e.ID == "cs-next" {
				t.Errorf("next week's session leaked into day %d", i)
			}
		}
	}
}

func TestGetWeekSchedule_SundayQueryStaysInSameWeek(t *testing.T) {
	store := &mockClassSessionStore{}

	result, err := QueryGetWeekSchedule(context.Background(), GetWeekScheduleQuery{
		Date: time.Date(2024, 6, 23, 9, 0, 0, 0, time.UTC), // Sunday
	}, GetWeekScheduleDeps{ClassSessionStore: store})
	if err != nil {
		t.Fatalf("QueryGetWeekSchedule failed: %v", err)
	}
	if want := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC); !result.WeekStart.Equal(want) {
		t.Errorf("week start = %v, want %v", result.WeekStart, want)
	}
}
