package app

import (
	"time"

	"progresstracker/model"
	"progresstracker/stats"
	"progresstracker/store"
)

// Service owns the in-memory collections and is the single writer behind
// them. Every mutation rewrites the affected collection's file before
// returning; reads hand out copies so callers only ever hold snapshots.
//
// The service performs no input validation: rejecting blank titles or
// non-positive targets is the caller's job before it gets here.
type Service struct {
	store  *store.Store
	goals  []model.Goal
	habits []model.Habit
	logs   []model.DailyLog
}

// NewService loads all three collections from st. Load failures surface as
// empty collections, so the app always starts.
func NewService(st *store.Store) *Service {
	return &Service{
		store:  st,
		goals:  st.LoadGoals(),
		habits: st.LoadHabits(),
		logs:   st.LoadLogs(),
	}
}

// DataDir returns the directory holding the persisted collections.
func (s *Service) DataDir() string {
	return s.store.Dir()
}

// Goals returns all goals in insertion order as a copy.
func (s *Service) Goals() []model.Goal {
	out := make([]model.Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

// Habits returns all habits in insertion order as a copy.
func (s *Service) Habits() []model.Habit {
	out := make([]model.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

// Logs returns all progress entries in insertion order as a copy.
func (s *Service) Logs() []model.DailyLog {
	out := make([]model.DailyLog, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *Service) AddGoal(g model.Goal) error {
	s.goals = append(s.goals, g)
	return s.store.SaveGoals(s.goals)
}

// UpdateGoal replaces the stored goal with the same id. Full-record
// overwrite; no-op when the id is absent.
func (s *Service) UpdateGoal(g model.Goal) error {
	for i := range s.goals {
		if s.goals[i].ID == g.ID {
			s.goals[i] = g
			break
		}
	}
	return s.store.SaveGoals(s.goals)
}

// DeleteGoal removes a goal by id. Logs referencing it are kept and become
// orphans, which the views skip.
func (s *Service) DeleteGoal(id string) error {
	kept := make([]model.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.goals = kept
	return s.store.SaveGoals(s.goals)
}

func (s *Service) AddHabit(h model.Habit) error {
	s.habits = append(s.habits, h)
	return s.store.SaveHabits(s.habits)
}

// UpdateHabit replaces the stored habit with the same id. No-op when the
// id is absent.
func (s *Service) UpdateHabit(h model.Habit) error {
	for i := range s.habits {
		if s.habits[i].ID == h.ID {
			s.habits[i] = h
			break
		}
	}
	return s.store.SaveHabits(s.habits)
}

func (s *Service) DeleteHabit(id string) error {
	kept := make([]model.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	s.habits = kept
	return s.store.SaveHabits(s.habits)
}

// AddLog appends a progress entry without touching any goal.
func (s *Service) AddLog(l model.DailyLog) error {
	s.logs = append(s.logs, l)
	return s.store.SaveLogs(s.logs)
}

// LogProgress appends the entry and applies its value to the referenced
// goal, clamped at the goal's target. Both collections are persisted. The
// log is kept even when no goal matches its goalId.
func (s *Service) LogProgress(l model.DailyLog) error {
	s.logs = append(s.logs, l)
	if err := s.store.SaveLogs(s.logs); err != nil {
		return err
	}
	for i := range s.goals {
		if s.goals[i].ID == l.GoalID {
			next := s.goals[i].CurrentValue + l.Value
			if next > s.goals[i].TargetValue {
				next = s.goals[i].TargetValue
			}
			s.goals[i].CurrentValue = next
			break
		}
	}
	return s.store.SaveGoals(s.goals)
}

// ToggleHabitToday returns the habit after toggling today's completion.
// Nothing is stored; the caller persists the result via UpdateHabit.
func (s *Service) ToggleHabitToday(h model.Habit) model.Habit {
	return stats.StreakToggle(h, time.Now())
}

// ClearAll empties and persists all three collections.
func (s *Service) ClearAll() error {
	s.goals = []model.Goal{}
	s.habits = []model.Habit{}
	s.logs = []model.DailyLog{}
	if err := s.store.SaveGoals(s.goals); err != nil {
		return err
	}
	if err := s.store.SaveHabits(s.habits); err != nil {
		return err
	}
	return s.store.SaveLogs(s.logs)
}
