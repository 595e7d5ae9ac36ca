package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roydza27/MindEaseLite-sub000/internal/client"
	"github.com/roydza27/MindEaseLite-sub000/internal/service"
)

const statsWindowDays = 30

type statsLoadedMsg struct {
	timers *service.TimerStats
	moods  *service.MoodStats
	err    error
}

type statsModel struct {
	api     *client.Client
	timers  *service.TimerStats
	moods   *service.MoodStats
	loading bool
	err     error
}

func newStatsModel(api *client.Client) statsModel {
	return statsModel{api: api}
}

func (m statsModel) load() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		timers, err := api.TimerStats(ctx, statsWindowDays)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		moods, err := api.MoodStats(ctx, statsWindowDays)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		return statsLoadedMsg{timers: timers, moods: moods}
	}
}

func (m statsModel) Update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		m.timers = msg.timers
		m.moods = msg.moods
		m.err = msg.err
		m.loading = false
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.load()
		case "esc", "q":
			return m, navTo(ScreenDashboard)
		}
	}
	return m, nil
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func weekdayBars(counts map[string]int) string {
	var b strings.Builder
	for _, day := range weekdays {
		n := counts[day]
		b.WriteString(fmt.Sprintf("  %-9s %s %d\n", day[:3], strings.Repeat("▇", n), n))
	}
	return b.String()
}

func (m statsModel) View(width int) string {
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	heading := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)

	var b strings.Builder
	switch {
	case m.loading:
		b.WriteString(sub.Render("Loading..."))
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("Could not load stats: " + m.err.Error()))
	case m.timers == nil || m.moods == nil:
		b.WriteString(sub.Render("Loading..."))
	default:
		b.WriteString(heading.Render(fmt.Sprintf("Focus · last %d days", statsWindowDays)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  sessions: %d (%d completed, %.2f%%)\n",
			m.timers.TotalSessions, m.timers.CompletedSessions, m.timers.CompletionRate))
		b.WriteString(fmt.Sprintf("  focused:  %d min total, %.2f min average\n",
			m.timers.TotalDuration, m.timers.AverageDuration))
		b.WriteString(weekdayBars(m.timers.SessionsByDay))
		b.WriteString("\n")
		b.WriteString(heading.Render(fmt.Sprintf("Mood · last %d days", statsWindowDays)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  check-ins: %d\n", m.moods.TotalEntries))
		b.WriteString(fmt.Sprintf("  mood %.2f/5 · stress %.2f/5\n", m.moods.AverageMood, m.moods.AverageStress))
		for _, level := range []string{"calm", "fine", "tense", "anxious", "overwhelmed"} {
			if n := m.moods.AnxietyBreakdown[level]; n > 0 {
				b.WriteString(fmt.Sprintf("  %-12s %s %d\n", level, strings.Repeat("▇", n), n))
			}
		}
	}

	return b.String() + "\n" + helpBar(width, "r refresh · esc back")
}
