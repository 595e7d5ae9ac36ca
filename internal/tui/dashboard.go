package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/client"
	"github.com/roydza27/MindEaseLite-sub000/internal/timer"
)

type dashboardLoadedMsg struct {
	moods  []internal.MoodEntry
	timers []internal.TimerSession
	err    error
}

type dashboardModel struct {
	api    *client.Client
	cursor int
	moods  []internal.MoodEntry
	timers []internal.TimerSession
	err    error
}

var dashboardItems = []Screen{ScreenMoodWizard, ScreenFocusTimer, ScreenStats, ScreenSettings}

func newDashboardModel(api *client.Client) dashboardModel {
	return dashboardModel{api: api}
}

func (m dashboardModel) load() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		moods, _, err := api.ListMoodEntries(ctx, 1, 3)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		timers, _, err := api.ListTimerSessions(ctx, 1, 3)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{moods: moods, timers: timers}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.moods = msg.moods
		m.timers = msg.timers
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(dashboardItems)-1 {
				m.cursor++
			}
		case "enter":
			return m, navTo(dashboardItems[m.cursor])
		case "1", "2", "3", "4":
			idx := int(msg.String()[0] - '1')
			return m, navTo(dashboardItems[idx])
		}
	}
	return m, nil
}

func (m dashboardModel) View(width int) string {
	var b strings.Builder

	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))

	for i, item := range dashboardItems {
		prefix := "  "
		style := normalStyle
		if i == m.cursor {
			prefix = "❯ "
			style = selectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d. %s", prefix, i+1, item.Title())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("Could not load recent activity: " + m.err.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(sub.Render("Recent check-ins"))
		b.WriteString("\n")
		if len(m.moods) == 0 {
			b.WriteString(sub.Render("  none yet"))
			b.WriteString("\n")
		}
		for _, e := range m.moods {
			b.WriteString(fmt.Sprintf("  %s  mood %d/5, stress %d/5, %s\n",
				e.CreatedAt.Format("Jan 02 15:04"), e.Mood, e.Stress, e.Anxiety))
		}
		b.WriteString("\n")
		b.WriteString(sub.Render("Recent focus sessions"))
		b.WriteString("\n")
		if len(m.timers) == 0 {
			b.WriteString(sub.Render("  none yet"))
			b.WriteString("\n")
		}
		for _, s := range m.timers {
			state := "in progress"
			if s.Completed {
				state = "completed"
			}
			b.WriteString(fmt.Sprintf("  %s  %s planned, %s\n",
				s.StartTime.Format("Jan 02 15:04"), timer.FormatSeconds(s.Duration*60), state))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpBar(width, "↑/↓ move · enter open · 1-4 jump · q quit"))
	return b.String()
}
