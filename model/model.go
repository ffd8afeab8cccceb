package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a goal. Values are the symbolic names used in the
// persisted files; DisplayName gives the human form.
type Category string

const (
	CategoryPersonal Category = "PERSONAL"
	CategoryHealth   Category = "HEALTH"
	CategoryCareer   Category = "CAREER"
	CategoryLearning Category = "LEARNING"
	CategoryFinance  Category = "FINANCE"
	CategoryFitness  Category = "FITNESS"
	CategoryCreative Category = "CREATIVE"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryPersonal,
		CategoryHealth,
		CategoryCareer,
		CategoryLearning,
		CategoryFinance,
		CategoryFitness,
		CategoryCreative,
	}
}

func (c Category) DisplayName() string {
	switch c {
	case CategoryPersonal:
		return "Personal"
	case CategoryHealth:
		return "Health"
	case CategoryCareer:
		return "Career"
	case CategoryLearning:
		return "Learning"
	case CategoryFinance:
		return "Finance"
	case CategoryFitness:
		return "Fitness"
	case CategoryCreative:
		return "Creative"
	}
	return string(c)
}

// Frequency describes how often a habit is meant to recur. Informational
// only: no calculation gates on it besides display.
type Frequency string

const (
	FrequencyDaily    Frequency = "DAILY"
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyWeekdays Frequency = "WEEKDAYS"
	FrequencyWeekends Frequency = "WEEKENDS"
)

// Frequencies returns every frequency in display order.
func Frequencies() []Frequency {
	return []Frequency{
		FrequencyDaily,
		FrequencyWeekly,
		FrequencyWeekdays,
		FrequencyWeekends,
	}
}

func (f Frequency) DisplayName() string {
	switch f {
	case FrequencyDaily:
		return "Daily"
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyWeekdays:
		return "Weekdays"
	case FrequencyWeekends:
		return "Weekends"
	}
	return string(f)
}

// Goal is a user-defined numeric target with current progress.
// Timestamps are Unix milliseconds to match the on-disk encoding.
type Goal struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     Category    `json:"category"`
	TargetValue  int         `json:"targetValue"`
	CurrentValue int         `json:"currentValue"`
	Unit         string      `json:"unit"`
	CreatedAt    int64       `json:"createdAt"`
	Deadline     *int64      `json:"deadline,omitempty"`
	IsCompleted  bool        `json:"isCompleted"`
	Milestones   []Milestone `json:"milestones"`
}

// Milestone is a named sub-target of a goal. Pure data: persisted but not
// read by any current view.
type Milestone struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	TargetValue int    `json:"targetValue"`
	IsCompleted bool   `json:"isCompleted"`
	CompletedAt *int64 `json:"completedAt,omitempty"`
}

// DailyLog is an immutable record of one progress increment applied to a
// goal. Logs are only ever appended; deletion is not exposed.
type DailyLog struct {
	ID     string `json:"id"`
	GoalID string `json:"goalId"`
	Date   int64  `json:"date"`
	Value  int    `json:"value"`
	Notes  string `json:"notes"`
}

// Habit is a recurring commitment tracked by calendar-day completion.
// Streak counts toggle-on actions since the counter last hit zero; it is
// stored and incrementally updated, never recomputed from CompletedDates.
type Habit struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Frequency      Frequency `json:"frequency"`
	TargetDays     int       `json:"targetDays"`
	CompletedDates []int64   `json:"completedDates"`
	CreatedAt      int64     `json:"createdAt"`
	Streak         int       `json:"streak"`
	LongestStreak  int       `json:"longestStreak"`
}

// NewGoal creates a goal with a generated id and the standard defaults.
func NewGoal(title, description string, category Category, targetValue int, unit string) Goal {
	if unit == "" {
		unit = "%"
	}
	if category == "" {
		category = CategoryPersonal
	}
	return Goal{
		ID:          NewID(),
		Title:       title,
		Description: description,
		Category:    category,
		TargetValue: targetValue,
		Unit:        unit,
		CreatedAt:   NowMillis(),
		Milestones:  []Milestone{},
	}
}

// NewHabit creates a habit with a generated id and the standard defaults.
func NewHabit(title, description string, frequency Frequency, targetDays int) Habit {
	if frequency == "" {
		frequency = FrequencyDaily
	}
	if targetDays <= 0 {
		targetDays = 30
	}
	return Habit{
		ID:             NewID(),
		Title:          title,
		Description:    description,
		Frequency:      frequency,
		TargetDays:     targetDays,
		CompletedDates: []int64{},
		CreatedAt:      NowMillis(),
	}
}

// NewLog creates a progress entry dated now.
func NewLog(goalID string, value int, notes string) DailyLog {
	return DailyLog{
		ID:     NewID(),
		GoalID: goalID,
		Date:   NowMillis(),
		Value:  value,
		Notes:  notes,
	}
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// NowMillis returns the current time in Unix milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// TimeOf converts a millisecond timestamp back to a time.Time.
func TimeOf(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// DayKey reduces a millisecond timestamp to its local calendar day.
// Two timestamps on the same local day compare equal regardless of
// time-of-day.
func DayKey(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02")
}

// SameDay reports whether a millisecond timestamp falls on the same local
// calendar day as t.
func SameDay(ms int64, t time.Time) bool {
	return DayKey(ms) == t.Local().Format("2006-01-02")
}
