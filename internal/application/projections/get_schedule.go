package projections

import (
	"context"
	"time"

	"gymhall/internal/adapters/storage/classsession"
)

// GetDayScheduleQuery carries query parameters.
type GetDayScheduleQuery struct {
	Date time.Time // any instant on the wanted day, UTC
}

// GetDayScheduleResult carries one day of scheduled classes in start
// order.
type GetDayScheduleResult struct {
	Date    time.Time
	Entries []classsession.Entry
}

// GetDayScheduleDeps holds dependencies for GetDaySchedule.
type GetDayScheduleDeps struct {
	ClassSessionStore ClassSessionStore
}

// QueryGetDaySchedule retrieves the class schedule for a single day.
// PRE: Query date is set
// POST: Returns scheduled sessions from midnight to midnight UTC
func QueryGetDaySchedule(ctx context.Context, query GetDayScheduleQuery, deps GetDayScheduleDeps) (GetDayScheduleResult, error) {
	day := query.Date.UTC().Truncate(24 * time.Hour)
	entries, err := deps.ClassSessionStore.ListBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return GetDayScheduleResult{}, err
	}
	return GetDayScheduleResult{Date: day, Entries: entries}, nil
}

// GetWeekScheduleQuery carries query parameters.
type GetWeekScheduleQuery struct {
	Date time.Time // any instant in the wanted week, UTC
}

// WeekDay is one day's bucket in the week view.
type WeekDay struct {
	Date    time.Time
	Entries []classsession.Entry
}

// GetWeekScheduleResult carries a Monday-to-Sunday week of classes.
type GetWeekScheduleResult struct {
	WeekStart time.Time
	Days      [7]WeekDay
}

// GetWeekScheduleDeps holds dependencies for GetWeekSchedule.
type GetWeekScheduleDeps struct {
	ClassSessionStore ClassSessionStore
}

// QueryGetWeekSchedule retrieves the class schedule for the week
// containing the query date, bucketed per day starting Monday.
// PRE: Query date is set
// POST: Returns seven day buckets covering Monday through Sunday
func QueryGetWeekSchedule(ctx context.Context, query GetWeekScheduleQuery, deps GetWeekScheduleDeps) (GetWeekScheduleResult, error) {
	day := query.Date.UTC().Truncate(24 * time.Hour)
	weekStart := day.AddDate(0, 0, -mondayOffset(day.Weekday()))

	entries, err := deps.ClassSessionStore.ListBetween(ctx, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return GetWeekScheduleResult{}, err
	}

	result := GetWeekScheduleResult{WeekStart: weekStart}
	for i := range result.Days {
		result.Days[i].Date = weekStart.AddDate(0, 0, i)
	}
	for _, e := range entries {
		i := int(e.StartAt.UTC().Sub(weekStart).Hours() / 24)
		if i < 0 || i > 6 {
			continue
		}
		result.Days[i].Entries = append(result.Days[i].Entries, e)
	}
	return result, nil
}

func mondayOffset(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}
