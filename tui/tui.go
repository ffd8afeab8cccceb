package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"progresstracker/app"
	"progresstracker/model"
)

type screen int

const (
	screenDashboard screen = iota
	screenGoals
	screenHabits
	screenAnalytics
	screenSettings
)

func (s screen) String() string {
	switch s {
	case screenGoals:
		return "Goals"
	case screenHabits:
		return "Habits"
	case screenAnalytics:
		return "Analytics"
	case screenSettings:
		return "Settings"
	}
	return "Dashboard"
}

var screens = []screen{screenDashboard, screenGoals, screenHabits, screenAnalytics, screenSettings}

type uiMode int

const (
	modeNormal uiMode = iota

	// Staged add-goal prompt: title, description, target, unit, then
	// category pick.
	modeGoalTitle
	modeGoalDesc
	modeGoalTarget
	modeGoalUnit
	modeGoalCategory

	// Staged add-habit prompt: title, description, then frequency pick.
	modeHabitTitle
	modeHabitDesc
	modeHabitFrequency

	// Staged log-progress prompt: value, then optional notes.
	modeLogValue
	modeLogNotes

	modeConfirmDelete
	modeConfirmClear
)

type deleteKind int

const (
	deleteNone deleteKind = iota
	deleteGoal
	deleteHabit
)

// Model is the whole TUI: one state machine over the five screens, with
// every mutation routed through the app service so state is persisted
// before the next render.
type Model struct {
	svc *app.Service

	screen screen
	mode   uiMode

	goalCursor  int
	habitCursor int

	input string

	// Accumulated across the staged prompts.
	draftTitle  string
	draftDesc   string
	draftTarget int
	draftUnit   string
	draftValue  int
	draftGoalID string

	confirmKind deleteKind
	confirmID   string
	confirmName string

	status    string
	statusErr bool

	width  int
	height int
}

// NewModel builds the TUI over an already-loaded service.
func NewModel(svc *app.Service) *Model {
	return &Model{
		svc:    svc,
		screen: screenDashboard,
		mode:   modeNormal,
		status: "Ready",
	}
}

// Run opens the program in the alternate screen and blocks until quit.
func Run(svc *app.Service) error {
	_, err := tea.NewProgram(NewModel(svc), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch m.mode {
		case modeGoalTitle, modeGoalDesc, modeGoalTarget, modeGoalUnit, modeHabitTitle, modeHabitDesc, modeLogValue, modeLogNotes:
			m.updateTextMode(msg)
		case modeGoalCategory, modeHabitFrequency:
			m.updatePickMode(msg)
		case modeConfirmDelete, modeConfirmClear:
			m.updateConfirmMode(msg)
		default:
			if quit := m.updateNormalMode(msg); quit {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		return true
	case "1", "2", "3", "4", "5":
		idx := int(msg.String()[0] - '1')
		m.switchScreen(screens[idx])
	case "tab":
		m.switchScreen(screens[(int(m.screen)+1)%len(screens)])
	case "shift+tab":
		m.switchScreen(screens[(int(m.screen)+len(screens)-1)%len(screens)])
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "a":
		m.startAdd()
	case "l":
		m.startLogProgress()
	case "x", " ", "space":
		m.toggleSelectedHabit()
	case "c":
		m.toggleSelectedGoalCompleted()
	case "d":
		m.startDeleteConfirm()
	case "D":
		if m.screen == screenSettings {
			m.mode = modeConfirmClear
		}
	}
	m.ensureSelection()
	return false
}

func (m *Model) updateTextMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.resetPrompt()
		m.setStatus("Cancelled", false)
		return
	case "enter":
		m.applyText()
		return
	}

	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.input = trimLastRune(m.input)
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
}

func (m *Model) updatePickMode(msg tea.KeyMsg) {
	key := msg.String()
	if key == "ctrl+c" || key == "esc" {
		m.resetPrompt()
		m.setStatus("Cancelled", false)
		return
	}

	if m.mode == modeGoalCategory {
		cats := model.Categories()
		if idx := pickIndex(key, len(cats)); idx >= 0 {
			m.finishAddGoal(cats[idx])
		}
		return
	}

	freqs := model.Frequencies()
	if idx := pickIndex(key, len(freqs)); idx >= 0 {
		m.finishAddHabit(freqs[idx])
	}
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) {
	switch strings.ToLower(msg.String()) {
	case "y":
		if m.mode == modeConfirmClear {
			m.confirmClear()
			return
		}
		m.confirmDelete()
	case "n", "esc", "enter":
		m.confirmKind = deleteNone
		m.confirmID = ""
		m.confirmName = ""
		m.mode = modeNormal
		m.setStatus("Action cancelled", false)
	}
}

func (m *Model) applyText() {
	text := strings.TrimSpace(m.input)
	switch m.mode {
	case modeGoalTitle:
		if text == "" {
			m.setStatus("Goal title must not be empty", true)
			return
		}
		m.draftTitle = text
		m.mode = modeGoalDesc
		m.input = ""
	case modeGoalDesc:
		m.draftDesc = text
		m.mode = modeGoalTarget
		m.input = ""
	case modeGoalTarget:
		target := 100
		if text != "" {
			v, err := strconv.Atoi(text)
			if err != nil || v <= 0 {
				m.setStatus("Target must be a positive number", true)
				return
			}
			target = v
		}
		m.draftTarget = target
		m.mode = modeGoalUnit
		m.input = ""
	case modeGoalUnit:
		m.draftUnit = text // empty falls back to "%" in the constructor
		m.mode = modeGoalCategory
		m.input = ""
	case modeHabitTitle:
		if text == "" {
			m.setStatus("Habit title must not be empty", true)
			return
		}
		m.draftTitle = text
		m.mode = modeHabitDesc
		m.input = ""
	case modeHabitDesc:
		m.draftDesc = text
		m.mode = modeHabitFrequency
		m.input = ""
	case modeLogValue:
		v, err := strconv.Atoi(text)
		if err != nil || v <= 0 {
			m.setStatus("Progress value must be a positive number", true)
			return
		}
		m.draftValue = v
		m.mode = modeLogNotes
		m.input = ""
	case modeLogNotes:
		m.finishLogProgress(text)
	}
}

func (m *Model) startAdd() {
	switch m.screen {
	case screenGoals:
		m.mode = modeGoalTitle
		m.input = ""
		m.setStatus("Creating a goal", false)
	case screenHabits:
		m.mode = modeHabitTitle
		m.input = ""
		m.setStatus("Creating a habit", false)
	default:
		m.setStatus("Switch to Goals or Habits to add", false)
	}
}

func (m *Model) startLogProgress() {
	if m.screen != screenGoals {
		return
	}
	goal, ok := m.selectedGoal()
	if !ok {
		m.setStatus("No goal selected", true)
		return
	}
	m.draftGoalID = goal.ID
	m.mode = modeLogValue
	m.input = ""
	m.setStatus(fmt.Sprintf("Logging progress for %q", goal.Title), false)
}

func (m *Model) finishAddGoal(category model.Category) {
	g := model.NewGoal(m.draftTitle, m.draftDesc, category, m.draftTarget, m.draftUnit)
	if err := m.svc.AddGoal(g); err != nil {
		m.setStatus("Could not save goal: "+err.Error(), true)
		m.resetPrompt()
		return
	}
	m.resetPrompt()
	m.goalCursor = len(m.svc.Goals()) - 1
	m.setStatus("Goal created", false)
}

func (m *Model) finishAddHabit(frequency model.Frequency) {
	h := model.NewHabit(m.draftTitle, m.draftDesc, frequency, 0)
	if err := m.svc.AddHabit(h); err != nil {
		m.setStatus("Could not save habit: "+err.Error(), true)
		m.resetPrompt()
		return
	}
	m.resetPrompt()
	m.habitCursor = len(m.svc.Habits()) - 1
	m.setStatus("Habit created", false)
}

func (m *Model) finishLogProgress(notes string) {
	l := model.NewLog(m.draftGoalID, m.draftValue, notes)
	if err := m.svc.LogProgress(l); err != nil {
		m.setStatus("Could not save progress: "+err.Error(), true)
		m.resetPrompt()
		return
	}
	m.resetPrompt()
	m.setStatus(fmt.Sprintf("Progress logged (+%d)", l.Value), false)
}

func (m *Model) toggleSelectedHabit() {
	if m.screen != screenHabits && m.screen != screenDashboard {
		return
	}
	habit, ok := m.selectedHabit()
	if !ok {
		m.setStatus("No habit selected", true)
		return
	}
	next := m.svc.ToggleHabitToday(habit)
	if err := m.svc.UpdateHabit(next); err != nil {
		m.setStatus("Could not save habit: "+err.Error(), true)
		return
	}
	if next.Streak > habit.Streak {
		m.setStatus(fmt.Sprintf("%s done today — streak %d", next.Title, next.Streak), false)
	} else {
		m.setStatus(fmt.Sprintf("%s unmarked for today — streak %d", next.Title, next.Streak), false)
	}
}

func (m *Model) toggleSelectedGoalCompleted() {
	if m.screen != screenGoals {
		return
	}
	goal, ok := m.selectedGoal()
	if !ok {
		m.setStatus("No goal selected", true)
		return
	}
	goal.IsCompleted = !goal.IsCompleted
	if err := m.svc.UpdateGoal(goal); err != nil {
		m.setStatus("Could not save goal: "+err.Error(), true)
		return
	}
	if goal.IsCompleted {
		m.setStatus(fmt.Sprintf("%q marked completed", goal.Title), false)
	} else {
		m.setStatus(fmt.Sprintf("%q reopened", goal.Title), false)
	}
}

func (m *Model) startDeleteConfirm() {
	switch m.screen {
	case screenGoals:
		goal, ok := m.selectedGoal()
		if !ok {
			m.setStatus("No goal selected", true)
			return
		}
		m.confirmKind = deleteGoal
		m.confirmID = goal.ID
		m.confirmName = goal.Title
		m.mode = modeConfirmDelete
	case screenHabits:
		habit, ok := m.selectedHabit()
		if !ok {
			m.setStatus("No habit selected", true)
			return
		}
		m.confirmKind = deleteHabit
		m.confirmID = habit.ID
		m.confirmName = habit.Title
		m.mode = modeConfirmDelete
	}
}

func (m *Model) confirmDelete() {
	var err error
	switch m.confirmKind {
	case deleteGoal:
		err = m.svc.DeleteGoal(m.confirmID)
	case deleteHabit:
		err = m.svc.DeleteHabit(m.confirmID)
	}
	name := m.confirmName
	m.confirmKind = deleteNone
	m.confirmID = ""
	m.confirmName = ""
	m.mode = modeNormal
	if err != nil {
		m.setStatus("Delete failed: "+err.Error(), true)
		return
	}
	m.ensureSelection()
	m.setStatus(fmt.Sprintf("%q deleted", name), false)
}

func (m *Model) confirmClear() {
	m.mode = modeNormal
	if err := m.svc.ClearAll(); err != nil {
		m.setStatus("Clear failed: "+err.Error(), true)
		return
	}
	m.goalCursor = 0
	m.habitCursor = 0
	m.setStatus("All data cleared", false)
}

func (m *Model) resetPrompt() {
	m.mode = modeNormal
	m.input = ""
	m.draftTitle = ""
	m.draftDesc = ""
	m.draftTarget = 0
	m.draftUnit = ""
	m.draftValue = 0
	m.draftGoalID = ""
}

func (m *Model) switchScreen(s screen) {
	m.screen = s
	m.setStatus(s.String(), false)
}

func (m *Model) moveCursor(delta int) {
	switch m.screen {
	case screenGoals:
		goals := m.svc.Goals()
		if len(goals) == 0 {
			return
		}
		m.goalCursor = clamp(m.goalCursor+delta, 0, len(goals)-1)
	case screenHabits, screenDashboard:
		habits := m.svc.Habits()
		if len(habits) == 0 {
			return
		}
		m.habitCursor = clamp(m.habitCursor+delta, 0, len(habits)-1)
	}
}

func (m *Model) ensureSelection() {
	if n := len(m.svc.Goals()); n == 0 {
		m.goalCursor = 0
	} else {
		m.goalCursor = clamp(m.goalCursor, 0, n-1)
	}
	if n := len(m.svc.Habits()); n == 0 {
		m.habitCursor = 0
	} else {
		m.habitCursor = clamp(m.habitCursor, 0, n-1)
	}
}

func (m *Model) selectedGoal() (model.Goal, bool) {
	goals := m.svc.Goals()
	if len(goals) == 0 {
		return model.Goal{}, false
	}
	if m.goalCursor < 0 || m.goalCursor >= len(goals) {
		m.goalCursor = 0
	}
	return goals[m.goalCursor], true
}

func (m *Model) selectedHabit() (model.Habit, bool) {
	habits := m.svc.Habits()
	if len(habits) == 0 {
		return model.Habit{}, false
	}
	if m.habitCursor < 0 || m.habitCursor >= len(habits) {
		m.habitCursor = 0
	}
	return habits[m.habitCursor], true
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// pickIndex maps a digit key to a zero-based option index, or -1.
func pickIndex(key string, options int) int {
	if len(key) != 1 || key[0] < '1' {
		return -1
	}
	idx := int(key[0] - '1')
	if idx >= options {
		return -1
	}
	return idx
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}

func today() time.Time {
	return time.Now()
}
