package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"progresstracker/model"
)

const (
	goalsFile  = "goals.json"
	habitsFile = "habits.json"
	logsFile   = "daily_logs.json"
)

// Store persists each collection as an independent JSON document inside a
// single directory. Loads never fail on bad data: a missing or unparseable
// file reads as an empty collection and the file on disk is left alone.
// Saves are plain full-file overwrites; one local writer is assumed.
type Store struct {
	dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir resolves the per-user data directory (~/.progresstracker).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".progresstracker"), nil
}

// Dir returns the directory backing this store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) LoadGoals() []model.Goal {
	goals := []model.Goal{}
	loadCollection(filepath.Join(s.dir, goalsFile), &goals)
	return goals
}

func (s *Store) SaveGoals(goals []model.Goal) error {
	return s.saveCollection(goalsFile, goals)
}

func (s *Store) LoadHabits() []model.Habit {
	habits := []model.Habit{}
	loadCollection(filepath.Join(s.dir, habitsFile), &habits)
	return habits
}

func (s *Store) SaveHabits(habits []model.Habit) error {
	return s.saveCollection(habitsFile, habits)
}

func (s *Store) LoadLogs() []model.DailyLog {
	logs := []model.DailyLog{}
	loadCollection(filepath.Join(s.dir, logsFile), &logs)
	return logs
}

func (s *Store) SaveLogs(logs []model.DailyLog) error {
	return s.saveCollection(logsFile, logs)
}

// loadCollection fills dst from the file at path. Missing files and
// malformed content both leave dst as the empty collection; the caller
// never sees the failure.
func loadCollection(path string, dst any) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// Corrupt file stays on disk untouched; start from empty.
		resetSlice(dst)
	}
}

// resetSlice restores dst to an empty collection after a partial decode.
func resetSlice(dst any) {
	switch v := dst.(type) {
	case *[]model.Goal:
		*v = []model.Goal{}
	case *[]model.Habit:
		*v = []model.Habit{}
	case *[]model.DailyLog:
		*v = []model.DailyLog{}
	}
}

func (s *Store) saveCollection(name string, items any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}
