package stats

import (
	"reflect"
	"testing"
	"time"

	"progresstracker/model"
)

func goal(id string, category model.Category, current, target int, completed bool) model.Goal {
	return model.Goal{
		ID:           id,
		Title:        "Goal " + id,
		Category:     category,
		TargetValue:  target,
		CurrentValue: current,
		Unit:         "%",
		IsCompleted:  completed,
	}
}

func TestProgressFractionBoundsAndGuards(t *testing.T) {
	cases := []struct {
		name    string
		current int
		target  int
		want    float64
	}{
		{"halfway", 50, 100, 0.5},
		{"at target", 100, 100, 1},
		{"over target clamps", 150, 100, 1},
		{"negative clamps", -10, 100, 0},
		{"zero target", 50, 0, 0},
		{"negative target", 50, -5, 0},
	}
	for _, tc := range cases {
		g := goal("g", model.CategoryPersonal, tc.current, tc.target, false)
		if got := ProgressFraction(g); got != tc.want {
			t.Fatalf("%s: want %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestProgressFractionMonotonic(t *testing.T) {
	prev := 0.0
	for current := 0; current <= 120; current += 10 {
		g := goal("g", model.CategoryPersonal, current, 100, false)
		f := ProgressFraction(g)
		if f < prev {
			t.Fatalf("fraction decreased at current=%d: %v < %v", current, f, prev)
		}
		prev = f
	}
}

func TestProgressPercentTruncates(t *testing.T) {
	g := goal("g", model.CategoryPersonal, 1, 3, false)
	if got := ProgressPercent(g); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
}

func TestCategoryAggregate(t *testing.T) {
	goals := []model.Goal{
		goal("a", model.CategoryHealth, 50, 100, false),
		goal("b", model.CategoryHealth, 100, 100, true),
		goal("c", model.CategoryCareer, 10, 100, false),
	}

	agg := CategoryAggregate(goals, model.CategoryHealth)
	if agg.Count != 2 || agg.Completed != 1 {
		t.Fatalf("unexpected counts: %+v", agg)
	}
	if agg.AvgFraction != 0.75 {
		t.Fatalf("expected avg fraction 0.75, got %v", agg.AvgFraction)
	}

	empty := CategoryAggregate(goals, model.CategoryFinance)
	if empty.Count != 0 || empty.Completed != 0 || empty.AvgFraction != 0 {
		t.Fatalf("empty category must aggregate to zero: %+v", empty)
	}
}

func TestCategoryBreakdownSkipsEmptyCategories(t *testing.T) {
	goals := []model.Goal{
		goal("a", model.CategoryFitness, 25, 100, false),
		goal("b", model.CategoryPersonal, 75, 100, false),
	}
	rows := CategoryBreakdown(goals)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	// Display order, not insertion order.
	if rows[0].Category != model.CategoryPersonal || rows[1].Category != model.CategoryFitness {
		t.Fatalf("expected display order, got %+v", rows)
	}
}

func TestOverallAverageProgress(t *testing.T) {
	if got := OverallAverageProgress(nil); got != 0 {
		t.Fatalf("expected 0 for no goals, got %d", got)
	}

	goals := []model.Goal{
		goal("a", model.CategoryPersonal, 50, 100, false),
		goal("b", model.CategoryPersonal, 150, 100, false), // clamps to 100
		goal("c", model.CategoryPersonal, 0, 0, false),     // zero target guards to 0
	}
	if got := OverallAverageProgress(goals); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func habitCompletedOn(days ...time.Time) model.Habit {
	dates := make([]int64, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.UnixMilli())
	}
	return model.Habit{
		ID:             model.NewID(),
		Title:          "Habit",
		Frequency:      model.FrequencyDaily,
		CompletedDates: dates,
	}
}

func TestWeeklyCompletionSeries(t *testing.T) {
	ref := time.Date(2024, 1, 2, 18, 0, 0, 0, time.Local)
	a := habitCompletedOn(time.Date(2024, 1, 2, 7, 30, 0, 0, time.Local))
	b := habitCompletedOn()

	series := WeeklyCompletionSeries([]model.Habit{a, b}, ref)
	if len(series) != 7 {
		t.Fatalf("expected 7 days, got %d", len(series))
	}
	if series[0].Day != "2023-12-27" || series[6].Day != "2024-01-02" {
		t.Fatalf("expected oldest-first window ending at ref, got %+v", series)
	}
	for i, dc := range series {
		want := 0
		if dc.Day == "2024-01-02" {
			want = 1
		}
		if dc.Count != want {
			t.Fatalf("day %d (%s): want count %d, got %d", i, dc.Day, want, dc.Count)
		}
	}
}

func TestIsCompletedOnDateMatchesByLocalDay(t *testing.T) {
	h := habitCompletedOn(time.Date(2024, 1, 2, 23, 59, 0, 0, time.Local))
	if !IsCompletedOnDate(h, time.Date(2024, 1, 2, 0, 1, 0, 0, time.Local)) {
		t.Fatal("same local day should match regardless of time-of-day")
	}
	if IsCompletedOnDate(h, time.Date(2024, 1, 3, 0, 1, 0, 0, time.Local)) {
		t.Fatal("different day should not match")
	}
}

func TestRecentActivitySortsJoinsAndSkipsOrphans(t *testing.T) {
	goals := []model.Goal{goal("g1", model.CategoryPersonal, 10, 100, false)}
	logs := []model.DailyLog{
		{ID: "l1", GoalID: "g1", Date: 1000, Value: 1},
		{ID: "l2", GoalID: "X", Date: 3000, Value: 2}, // orphan
		{ID: "l3", GoalID: "g1", Date: 2000, Value: 3},
	}

	got := RecentActivity(logs, goals, 10)
	if len(got) != 2 {
		t.Fatalf("expected orphan skipped, got %+v", got)
	}
	if got[0].Log.ID != "l3" || got[1].Log.ID != "l1" {
		t.Fatalf("expected newest first, got %+v", got)
	}
	if got[0].Goal.ID != "g1" {
		t.Fatalf("expected join to goal, got %+v", got[0])
	}
}

func TestRecentActivityHonorsLimitAndDefault(t *testing.T) {
	goals := []model.Goal{goal("g1", model.CategoryPersonal, 10, 100, false)}
	logs := make([]model.DailyLog, 0, 15)
	for i := 0; i < 15; i++ {
		logs = append(logs, model.DailyLog{ID: model.NewID(), GoalID: "g1", Date: int64(i), Value: 1})
	}

	if got := RecentActivity(logs, goals, 3); len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got := RecentActivity(logs, goals, 0); len(got) != 10 {
		t.Fatalf("expected default limit 10, got %d", len(got))
	}
}

func TestRecentActivityOrphanInsideWindowShrinksResult(t *testing.T) {
	goals := []model.Goal{goal("g1", model.CategoryPersonal, 10, 100, false)}
	logs := make([]model.DailyLog, 0, 11)
	for i := 0; i < 10; i++ {
		logs = append(logs, model.DailyLog{ID: model.NewID(), GoalID: "g1", Date: int64(i), Value: 1})
	}
	// The single newest log is orphaned: the 10-entry window is taken
	// first, then the orphan drops out of it.
	logs = append(logs, model.DailyLog{ID: "orphan", GoalID: "X", Date: 100, Value: 1})

	got := RecentActivity(logs, goals, 10)
	if len(got) != 9 {
		t.Fatalf("expected 9 entries (orphan consumed a window slot), got %d", len(got))
	}
	if got[0].Log.Date != 9 {
		t.Fatalf("expected newest surviving log first, got %+v", got[0].Log)
	}
	for _, a := range got {
		if a.Log.ID == "orphan" {
			t.Fatalf("orphan must not be joined: %+v", got)
		}
	}
}

func TestStreakToggleScenario(t *testing.T) {
	today := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	h := habitCompletedOn(today)
	h.Streak = 3
	h.LongestStreak = 5

	off := StreakToggle(h, today)
	if off.Streak != 2 || off.LongestStreak != 5 {
		t.Fatalf("toggle off: want streak 2 longest 5, got %+v", off)
	}
	if len(off.CompletedDates) != 0 {
		t.Fatalf("toggle off should drop today's entry, got %+v", off.CompletedDates)
	}

	on := StreakToggle(off, today)
	if on.Streak != 3 || on.LongestStreak != 5 {
		t.Fatalf("toggle on: want streak 3 longest 5 (no new max), got %+v", on)
	}
	if len(on.CompletedDates) != 1 || !model.SameDay(on.CompletedDates[0], today) {
		t.Fatalf("toggle on should append today, got %+v", on.CompletedDates)
	}
}

func TestStreakToggleRaisesLongestStreak(t *testing.T) {
	today := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	h := habitCompletedOn()
	h.Streak = 5
	h.LongestStreak = 5

	on := StreakToggle(h, today)
	if on.Streak != 6 || on.LongestStreak != 6 {
		t.Fatalf("expected new longest streak 6, got %+v", on)
	}
}

func TestStreakToggleFloorsAtZero(t *testing.T) {
	today := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	h := habitCompletedOn(today)
	h.Streak = 0
	h.LongestStreak = 4

	off := StreakToggle(h, today)
	if off.Streak != 0 {
		t.Fatalf("streak must not go negative, got %d", off.Streak)
	}
	if off.LongestStreak != 4 {
		t.Fatalf("longest streak must never decrease, got %d", off.LongestStreak)
	}
}

func TestStreakToggleOffRemovesDuplicateSameDayEntries(t *testing.T) {
	today := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	h := habitCompletedOn(today, today.Add(2*time.Hour))
	h.Streak = 2

	off := StreakToggle(h, today)
	if len(off.CompletedDates) != 0 {
		t.Fatalf("every same-day entry should be removed, got %+v", off.CompletedDates)
	}
}

func TestStreakToggleDoesNotMutateInput(t *testing.T) {
	today := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	h := habitCompletedOn()
	h.Streak = 1
	before := h.CompletedDates

	_ = StreakToggle(h, today)
	if h.Streak != 1 || len(h.CompletedDates) != len(before) {
		t.Fatalf("input habit was mutated: %+v", h)
	}
}

func TestStreakInvariantAfterToggleSequence(t *testing.T) {
	today := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	h := habitCompletedOn()
	for i := 0; i < 9; i++ {
		h = StreakToggle(h, today)
		if h.Streak < 0 {
			t.Fatalf("streak went negative at step %d: %+v", i, h)
		}
		if h.Streak > h.LongestStreak {
			t.Fatalf("streak exceeded longest streak at step %d: %+v", i, h)
		}
	}
}

func TestDerivedFunctionsAreIdempotent(t *testing.T) {
	goals := []model.Goal{
		goal("a", model.CategoryHealth, 30, 100, false),
		goal("b", model.CategoryCareer, 90, 100, true),
	}
	logs := []model.DailyLog{{ID: "l1", GoalID: "a", Date: 1000, Value: 1}}
	habits := []model.Habit{habitCompletedOn(time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local))}
	ref := time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local)

	if OverallAverageProgress(goals) != OverallAverageProgress(goals) {
		t.Fatal("OverallAverageProgress not idempotent")
	}
	if !reflect.DeepEqual(CategoryBreakdown(goals), CategoryBreakdown(goals)) {
		t.Fatal("CategoryBreakdown not idempotent")
	}
	if !reflect.DeepEqual(WeeklyCompletionSeries(habits, ref), WeeklyCompletionSeries(habits, ref)) {
		t.Fatal("WeeklyCompletionSeries not idempotent")
	}
	if !reflect.DeepEqual(RecentActivity(logs, goals, 10), RecentActivity(logs, goals, 10)) {
		t.Fatal("RecentActivity not idempotent")
	}
}

func TestDashboardCounters(t *testing.T) {
	goals := []model.Goal{
		goal("a", model.CategoryHealth, 30, 100, false),
		goal("b", model.CategoryCareer, 100, 100, true),
		goal("c", model.CategoryCareer, 10, 100, false),
	}
	if CountActive(goals) != 2 || CountCompleted(goals) != 1 {
		t.Fatalf("unexpected goal counts: active=%d completed=%d", CountActive(goals), CountCompleted(goals))
	}

	habits := []model.Habit{
		{ID: "h1", Streak: 2, LongestStreak: 9},
		{ID: "h2", Streak: 7, LongestStreak: 7},
	}
	if BestCurrentStreak(habits) != 7 {
		t.Fatalf("expected best current streak 7, got %d", BestCurrentStreak(habits))
	}
	if BestLongestStreak(habits) != 9 {
		t.Fatalf("expected best longest streak 9, got %d", BestLongestStreak(habits))
	}
	if TotalStreak(habits) != 9 {
		t.Fatalf("expected total streak 9, got %d", TotalStreak(habits))
	}

	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local)
	logs := []model.DailyLog{
		{ID: "l1", Date: now.Add(-2 * time.Hour).UnixMilli()},
		{ID: "l2", Date: now.AddDate(0, 0, -1).UnixMilli()},
	}
	if got := LogsOnDate(logs, now); len(got) != 1 || got[0].ID != "l1" {
		t.Fatalf("expected only today's log, got %+v", got)
	}
}
