// Package stats computes every derived view of the tracker collections.
// All functions are pure reads over a snapshot except StreakToggle, which
// returns the next habit value without mutating its input. Divisions are
// guarded: an empty collection or zero target always yields zero, never a
// fault.
package stats

import (
	"sort"
	"time"

	"progresstracker/model"
)

// ProgressFraction returns a goal's progress as a ratio clamped to [0, 1].
// Goals without a positive target report zero.
func ProgressFraction(g model.Goal) float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	f := float64(g.CurrentValue) / float64(g.TargetValue)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ProgressPercent returns the fraction as a truncated integer percentage.
func ProgressPercent(g model.Goal) int {
	return int(ProgressFraction(g) * 100)
}

// CategorySummary aggregates the goals of one category.
type CategorySummary struct {
	Category    model.Category
	Count       int
	Completed   int
	AvgFraction float64
}

// CategoryAggregate summarizes the goals in one category. An empty
// category reports zero counts and zero average.
func CategoryAggregate(goals []model.Goal, c model.Category) CategorySummary {
	out := CategorySummary{Category: c}
	sum := 0.0
	for _, g := range goals {
		if g.Category != c {
			continue
		}
		out.Count++
		if g.IsCompleted {
			out.Completed++
		}
		sum += ProgressFraction(g)
	}
	if out.Count > 0 {
		out.AvgFraction = sum / float64(out.Count)
	}
	return out
}

// CategoryBreakdown returns the aggregate for every category that has at
// least one goal, in display order.
func CategoryBreakdown(goals []model.Goal) []CategorySummary {
	out := make([]CategorySummary, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		agg := CategoryAggregate(goals, c)
		if agg.Count > 0 {
			out = append(out, agg)
		}
	}
	return out
}

// OverallAverageProgress returns the mean of per-goal clamped percentages,
// truncated to an integer. Zero when there are no goals.
func OverallAverageProgress(goals []model.Goal) int {
	if len(goals) == 0 {
		return 0
	}
	sum := 0.0
	for _, g := range goals {
		sum += ProgressFraction(g) * 100
	}
	return int(sum / float64(len(goals)))
}

// DayCount pairs a local calendar day with the number of habits completed
// on it.
type DayCount struct {
	Day   string // local yyyy-mm-dd
	Count int
}

// WeeklyCompletionSeries reports, for each of the 7 local calendar days
// ending at ref (oldest first), how many habits were completed that day.
func WeeklyCompletionSeries(habits []model.Habit, ref time.Time) []DayCount {
	out := make([]DayCount, 0, 7)
	for daysAgo := 6; daysAgo >= 0; daysAgo-- {
		day := ref.AddDate(0, 0, -daysAgo)
		count := 0
		for _, h := range habits {
			if IsCompletedOnDate(h, day) {
				count++
			}
		}
		out = append(out, DayCount{
			Day:   day.Local().Format("2006-01-02"),
			Count: count,
		})
	}
	return out
}

// IsCompletedOnDate reports whether any completion entry of the habit
// falls on the same local calendar day as date.
func IsCompletedOnDate(h model.Habit, date time.Time) bool {
	for _, ms := range h.CompletedDates {
		if model.SameDay(ms, date) {
			return true
		}
	}
	return false
}

// Activity is a progress entry joined to the goal it belongs to.
type Activity struct {
	Log  model.DailyLog
	Goal model.Goal
}

// RecentActivity takes the limit newest logs and joins each to its goal.
// Entries inside that window whose goal no longer exists are skipped, so
// fewer than limit entries may come back. A limit of zero or less means 10.
func RecentActivity(logs []model.DailyLog, goals []model.Goal, limit int) []Activity {
	if limit <= 0 {
		limit = 10
	}
	sorted := make([]model.DailyLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]Activity, 0, len(sorted))
	for _, l := range sorted {
		goal, ok := findGoal(goals, l.GoalID)
		if !ok {
			continue
		}
		out = append(out, Activity{Log: l, Goal: goal})
	}
	return out
}

// StreakToggle returns the habit after toggling completion for today's
// local calendar day. Off: every entry on that day is dropped and the
// streak decrements, floored at zero. On: today is appended, the streak
// increments and the longest streak rises to match if passed.
//
// The streak is a count of toggle-on actions since the last reset to zero,
// not a consecutive-day audit; yesterday is never consulted.
func StreakToggle(h model.Habit, today time.Time) model.Habit {
	next := h
	if IsCompletedOnDate(h, today) {
		kept := make([]int64, 0, len(h.CompletedDates))
		for _, ms := range h.CompletedDates {
			if !model.SameDay(ms, today) {
				kept = append(kept, ms)
			}
		}
		next.CompletedDates = kept
		next.Streak = h.Streak - 1
		if next.Streak < 0 {
			next.Streak = 0
		}
		return next
	}

	next.CompletedDates = make([]int64, 0, len(h.CompletedDates)+1)
	next.CompletedDates = append(next.CompletedDates, h.CompletedDates...)
	next.CompletedDates = append(next.CompletedDates, today.UnixMilli())
	next.Streak = h.Streak + 1
	if next.Streak > next.LongestStreak {
		next.LongestStreak = next.Streak
	}
	return next
}

// CountActive returns the number of goals not marked completed.
func CountActive(goals []model.Goal) int {
	n := 0
	for _, g := range goals {
		if !g.IsCompleted {
			n++
		}
	}
	return n
}

// CountCompleted returns the number of goals marked completed.
func CountCompleted(goals []model.Goal) int {
	return len(goals) - CountActive(goals)
}

// LogsOnDate returns the entries dated on the same local calendar day as t.
func LogsOnDate(logs []model.DailyLog, t time.Time) []model.DailyLog {
	out := make([]model.DailyLog, 0)
	for _, l := range logs {
		if model.SameDay(l.Date, t) {
			out = append(out, l)
		}
	}
	return out
}

// BestCurrentStreak returns the highest current streak across habits.
func BestCurrentStreak(habits []model.Habit) int {
	best := 0
	for _, h := range habits {
		if h.Streak > best {
			best = h.Streak
		}
	}
	return best
}

// BestLongestStreak returns the highest longest-streak across habits.
func BestLongestStreak(habits []model.Habit) int {
	best := 0
	for _, h := range habits {
		if h.LongestStreak > best {
			best = h.LongestStreak
		}
	}
	return best
}

// TotalStreak returns the sum of current streaks across habits.
func TotalStreak(habits []model.Habit) int {
	total := 0
	for _, h := range habits {
		total += h.Streak
	}
	return total
}

func findGoal(goals []model.Goal, id string) (model.Goal, bool) {
	for _, g := range goals {
		if g.ID == id {
			return g, true
		}
	}
	return model.Goal{}, false
}
