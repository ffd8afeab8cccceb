package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"progresstracker/model"
	"progresstracker/stats"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	tabActive     = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	flameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	barFillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	barRestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	viewW := m.viewportWidth()

	var body string
	switch m.screen {
	case screenGoals:
		body = m.renderGoals(viewW)
	case screenHabits:
		body = m.renderHabits(viewW)
	case screenAnalytics:
		body = m.renderAnalytics(viewW)
	case screenSettings:
		body = m.renderSettings(viewW)
	default:
		body = m.renderDashboard(viewW)
	}

	parts := []string{m.renderHeader(viewW), body, m.renderFooter(viewW)}
	if prompt := m.renderPrompt(viewW); prompt != "" {
		parts = append(parts, prompt)
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderHeader(width int) string {
	tabs := make([]string, 0, len(screens))
	for i, s := range screens {
		label := fmt.Sprintf("%d %s", i+1, s.String())
		if s == m.screen {
			tabs = append(tabs, tabActive.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render("progress"),
		"  ",
		strings.Join(tabs, dimStyle.Render("│")),
	)
	return lipgloss.NewStyle().Width(width).Render(line)
}

func (m *Model) renderDashboard(width int) string {
	goals := m.svc.Goals()
	habits := m.svc.Habits()
	logs := m.svc.Logs()
	now := today()

	greeting := titleStyle.Render("Welcome back!")
	date := dimStyle.Render(now.Format("Monday, January 2"))

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Active Goals", fmt.Sprintf("%d", stats.CountActive(goals))),
		" ",
		statCard("Completed", fmt.Sprintf("%d", stats.CountCompleted(goals))),
		" ",
		statCard("Logs Today", fmt.Sprintf("%d", len(stats.LogsOnDate(logs, now)))),
		" ",
		statCard("Best Streak", fmt.Sprintf("%d", stats.BestCurrentStreak(habits))),
	)

	lines := []string{greeting, date, "", cards, ""}

	lines = append(lines, titleStyle.Render("Today's Habits"))
	if len(habits) == 0 {
		lines = append(lines, dimStyle.Render("No habits yet. Press 3 and 'a' to create one."))
	} else {
		for i, h := range habits {
			cursor := " "
			if i == m.habitCursor {
				cursor = "▸"
			}
			check := "[ ]"
			if stats.IsCompletedOnDate(h, now) {
				check = "[x]"
			}
			line := fmt.Sprintf("%s %s %s", cursor, check, h.Title)
			if h.Streak > 0 {
				line += flameStyle.Render(fmt.Sprintf("  %d day streak", h.Streak))
			}
			if i == m.habitCursor {
				line = selectedStyle.Render(line)
			}
			lines = append(lines, line)
		}
	}

	lines = append(lines, "", titleStyle.Render("Active Goals"))
	shown := 0
	for _, g := range goals {
		if g.IsCompleted {
			continue
		}
		bar := progressBar(24, stats.ProgressFraction(g))
		lines = append(lines, fmt.Sprintf("  %s %s %d%%", padRight(g.Title, 24), bar, stats.ProgressPercent(g)))
		shown++
		if shown == 5 {
			break
		}
	}
	if shown == 0 {
		lines = append(lines, dimStyle.Render("No active goals. Press 2 and 'a' to create one."))
	}

	return m.framedBody(width, lines)
}

func (m *Model) renderGoals(width int) string {
	goals := m.svc.Goals()

	lines := []string{titleStyle.Render("Goals")}
	if len(goals) == 0 {
		lines = append(lines,
			dimStyle.Render("No goals yet."),
			dimStyle.Render("Create your first goal to start tracking your progress — press 'a'."),
		)
	}
	for i, g := range goals {
		cursor := " "
		if i == m.goalCursor {
			cursor = "▸"
		}
		state := "○"
		if g.IsCompleted {
			state = okStyle.Render("✓")
		}
		header := fmt.Sprintf("%s %s %s %s", cursor, state, g.Title, dimStyle.Render("["+g.Category.DisplayName()+"]"))
		if i == m.goalCursor {
			header = selectedStyle.Render(fmt.Sprintf("%s %s %s", cursor, state, g.Title)) +
				" " + dimStyle.Render("["+g.Category.DisplayName()+"]")
		}
		lines = append(lines, header)

		if g.Description != "" {
			lines = append(lines, dimStyle.Render("    "+g.Description))
		}
		bar := progressBar(30, stats.ProgressFraction(g))
		detail := fmt.Sprintf("    %s %d / %d %s (%d%%)",
			bar, g.CurrentValue, g.TargetValue, g.Unit, stats.ProgressPercent(g))
		lines = append(lines, detail)
		if g.Deadline != nil {
			lines = append(lines, dimStyle.Render("    deadline "+model.TimeOf(*g.Deadline).Format("Jan 2, 2006")))
		}
	}

	return m.framedBody(width, lines)
}

func (m *Model) renderHabits(width int) string {
	habits := m.svc.Habits()
	now := today()

	lines := []string{titleStyle.Render("Habits")}
	if len(habits) == 0 {
		lines = append(lines,
			dimStyle.Render("No habits yet."),
			dimStyle.Render("Build a routine — press 'a' to add your first habit."),
		)
	}
	for i, h := range habits {
		cursor := " "
		if i == m.habitCursor {
			cursor = "▸"
		}
		check := "[ ]"
		if stats.IsCompletedOnDate(h, now) {
			check = okStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s %s %s", cursor, check, h.Title, dimStyle.Render("("+h.Frequency.DisplayName()+")"))
		if i == m.habitCursor {
			line = selectedStyle.Render(fmt.Sprintf("%s %s %s", cursor, check, h.Title)) +
				" " + dimStyle.Render("("+h.Frequency.DisplayName()+")")
		}
		lines = append(lines, line)
		if h.Description != "" {
			lines = append(lines, dimStyle.Render("    "+h.Description))
		}
		streakLine := fmt.Sprintf("    %s  best %d  •  %d days done",
			flameStyle.Render(fmt.Sprintf("streak %d", h.Streak)), h.LongestStreak, len(h.CompletedDates))
		lines = append(lines, dimStyle.Render(streakLine))
	}

	return m.framedBody(width, lines)
}

func (m *Model) renderAnalytics(width int) string {
	goals := m.svc.Goals()
	habits := m.svc.Habits()
	logs := m.svc.Logs()

	lines := []string{titleStyle.Render("Analytics"), ""}

	overview := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Goals", fmt.Sprintf("%d", len(goals))),
		" ",
		statCard("Completed", fmt.Sprintf("%d", stats.CountCompleted(goals))),
		" ",
		statCard("Avg Progress", fmt.Sprintf("%d%%", stats.OverallAverageProgress(goals))),
		" ",
		statCard("Total Streak", fmt.Sprintf("%d", stats.TotalStreak(habits))),
		" ",
		statCard("Best Streak", fmt.Sprintf("%d", stats.BestLongestStreak(habits))),
	)
	lines = append(lines, overview, "")

	lines = append(lines, titleStyle.Render("Goals by Category"))
	breakdown := stats.CategoryBreakdown(goals)
	if len(breakdown) == 0 {
		lines = append(lines, dimStyle.Render("No goals to summarize."))
	}
	for _, row := range breakdown {
		bar := progressBar(20, row.AvgFraction)
		lines = append(lines, fmt.Sprintf("  %s %s %3d%%  %s",
			padRight(row.Category.DisplayName(), 10),
			bar,
			int(row.AvgFraction*100),
			dimStyle.Render(fmt.Sprintf("%d goals, %d done", row.Count, row.Completed)),
		))
	}

	lines = append(lines, "", titleStyle.Render("Weekly Habit Completion"))
	series := stats.WeeklyCompletionSeries(habits, today())
	todayKey := model.DayKey(model.NowMillis())
	for _, dc := range series {
		label := weekdayLabel(dc.Day)
		if dc.Day == todayKey {
			label = accentStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		bar := strings.Repeat("█", dc.Count)
		if bar == "" {
			bar = dimStyle.Render("·")
		} else {
			bar = barFillStyle.Render(bar)
		}
		lines = append(lines, fmt.Sprintf("  %s %s %d", label, bar, dc.Count))
	}

	lines = append(lines, "", titleStyle.Render("Recent Activity"))
	activity := stats.RecentActivity(logs, goals, 10)
	if len(activity) == 0 {
		lines = append(lines, dimStyle.Render("No activity yet. Log progress on a goal to see it here."))
	}
	for _, a := range activity {
		when := model.TimeOf(a.Log.Date).Format("Jan 2, 2006 15:04")
		line := fmt.Sprintf("  +%d %s %s %s",
			a.Log.Value, a.Goal.Unit, accentStyle.Render(a.Goal.Title), dimStyle.Render(when))
		if a.Log.Notes != "" {
			line += dimStyle.Render(" — " + a.Log.Notes)
		}
		lines = append(lines, line)
	}

	return m.framedBody(width, lines)
}

func (m *Model) renderSettings(width int) string {
	lines := []string{
		titleStyle.Render("Settings"),
		"",
		"Storage",
		dimStyle.Render("  location: " + m.svc.DataDir()),
		dimStyle.Render("  goals:  " + fmt.Sprintf("%d records", len(m.svc.Goals()))),
		dimStyle.Render("  habits: " + fmt.Sprintf("%d records", len(m.svc.Habits()))),
		dimStyle.Render("  logs:   " + fmt.Sprintf("%d records", len(m.svc.Logs()))),
		"",
		"Danger Zone",
		errStyle.Render("  D  clear all data (goals, habits, logs)"),
	}
	return m.framedBody(width, lines)
}

func (m *Model) framedBody(width int, lines []string) string {
	bodyH := m.height - 4
	if bodyH < 6 {
		bodyH = 6
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(width - 2).
		Height(bodyH).
		Padding(0, 1)
	if len(lines) > bodyH {
		lines = lines[:bodyH]
	}
	return frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter(width int) string {
	statusText := m.status
	if statusText == "" {
		statusText = "Ready"
	}
	style := okStyle
	if m.statusErr {
		style = errStyle
	}

	left := statusText
	right := m.contextualHelp()

	leftW := utf8.RuneCountInString(left)
	rightW := utf8.RuneCountInString(right)
	if leftW+rightW+1 > width {
		maxLeft := width - rightW - 1
		if maxLeft < 8 {
			maxLeft = 8
		}
		left = truncateRunes(left, maxLeft)
		leftW = utf8.RuneCountInString(left)
	}
	padding := width - leftW - rightW
	if padding < 1 {
		padding = 1
	}
	line := style.Render(left) + strings.Repeat(" ", padding) + dimStyle.Render(right)
	return lipgloss.NewStyle().Width(width).Render(line)
}

func (m *Model) renderPrompt(width int) string {
	var prompt string
	switch m.mode {
	case modeGoalTitle:
		prompt = "Goal title: " + m.input + "▌"
	case modeGoalDesc:
		prompt = "Description (optional): " + m.input + "▌"
	case modeGoalTarget:
		prompt = "Target value (Enter for 100): " + m.input + "▌"
	case modeGoalUnit:
		prompt = "Unit (Enter for %): " + m.input + "▌"
	case modeGoalCategory:
		prompt = "Category: " + optionList(categoryOptions())
	case modeHabitTitle:
		prompt = "Habit title: " + m.input + "▌"
	case modeHabitDesc:
		prompt = "Description (optional): " + m.input + "▌"
	case modeHabitFrequency:
		prompt = "Frequency: " + optionList(frequencyOptions())
	case modeLogValue:
		prompt = "Progress amount: " + m.input + "▌"
	case modeLogNotes:
		prompt = "Notes (optional): " + m.input + "▌"
	case modeConfirmDelete:
		target := "goal"
		if m.confirmKind == deleteHabit {
			target = "habit"
		}
		prompt = fmt.Sprintf("Delete %s %q? [y/N]", target, m.confirmName)
	case modeConfirmClear:
		prompt = "Clear ALL goals, habits and logs? [y/N]"
	}
	if prompt == "" {
		return ""
	}
	return promptStyle.Width(width).Render(prompt)
}

func (m *Model) contextualHelp() string {
	switch m.mode {
	case modeGoalTitle, modeGoalDesc, modeGoalTarget, modeGoalUnit, modeHabitTitle, modeHabitDesc, modeLogValue, modeLogNotes:
		return "type • Enter next • Esc cancel"
	case modeGoalCategory, modeHabitFrequency:
		return "pick a number • Esc cancel"
	case modeConfirmDelete, modeConfirmClear:
		return "y confirm • n/Esc cancel"
	}

	switch m.screen {
	case screenGoals:
		return "a add • l log • c complete • d delete • j/k move • 1-5 screens • q quit"
	case screenHabits:
		return "a add • x toggle today • d delete • j/k move • 1-5 screens • q quit"
	case screenSettings:
		return "D clear all • 1-5 screens • q quit"
	case screenAnalytics:
		return "1-5 screens • q quit"
	}
	return "x toggle habit • j/k move • 1-5 screens • q quit"
}

func (m *Model) viewportWidth() int {
	if m.width <= 1 {
		return 1
	}
	// One spare column avoids clipping on terminals that wrap the last cell.
	return m.width - 1
}

func statCard(label, value string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(value),
		dimStyle.Render(label),
	)
	return cardStyle.Render(content)
}

// progressBar renders a fixed-width bar for a 0-1 fraction.
func progressBar(width int, fraction float64) string {
	if width <= 0 {
		width = 10
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return barFillStyle.Render(strings.Repeat("█", filled)) +
		barRestStyle.Render(strings.Repeat("░", width-filled))
}

func categoryOptions() []string {
	cats := model.Categories()
	out := make([]string, 0, len(cats))
	for i, c := range cats {
		out = append(out, fmt.Sprintf("%d %s", i+1, c.DisplayName()))
	}
	return out
}

func frequencyOptions() []string {
	freqs := model.Frequencies()
	out := make([]string, 0, len(freqs))
	for i, f := range freqs {
		out = append(out, fmt.Sprintf("%d %s", i+1, f.DisplayName()))
	}
	return out
}

func optionList(options []string) string {
	return strings.Join(options, "  ")
}

// weekdayLabel turns a yyyy-mm-dd day key into a short weekday name.
func weekdayLabel(day string) string {
	t, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		return day
	}
	return t.Format("Mon")
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return truncateRunes(s, width)
	}
	return s + strings.Repeat(" ", width-n)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
