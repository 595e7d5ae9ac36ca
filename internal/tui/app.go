// Package tui renders the MindEase companion screens: dashboard, mood
// check-in, focus timer, stats and settings. Navigation is an exhaustive
// Screen enum; every screen model gets its collaborators injected.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/client"
)

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenMoodWizard
	ScreenFocusTimer
	ScreenStats
	ScreenSettings
)

func (s Screen) Title() string {
	switch s {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenMoodWizard:
		return "Mood Check-in"
	case ScreenFocusTimer:
		return "Focus Timer"
	case ScreenStats:
		return "Stats"
	case ScreenSettings:
		return "Settings"
	}
	return ""
}

// PostSubmitPolicy controls what the wizard screen does after submitting
// a check-in.
type PostSubmitPolicy int

const (
	// PostSubmitCompletion shows a completion screen until dismissed.
	PostSubmitCompletion PostSubmitPolicy = iota
	// PostSubmitReset returns straight to the dashboard.
	PostSubmitReset
)

// navMsg switches the active screen.
type navMsg struct {
	to Screen
}

// statusMsg sets the transient status line shown under the header.
type statusMsg struct {
	text  string
	isErr bool
}

func navTo(s Screen) tea.Cmd {
	return func() tea.Msg { return navMsg{to: s} }
}

type App struct {
	api    *client.Client
	user   *internal.User
	screen Screen
	width  int
	height int
	status string
	isErr  bool

	dashboard dashboardModel
	wizard    wizardModel
	timer     timerModel
	stats     statsModel
	settings  settingsModel
}

func NewApp(api *client.Client, user *internal.User, policy PostSubmitPolicy) App {
	return App{
		api:       api,
		user:      user,
		screen:    ScreenDashboard,
		dashboard: newDashboardModel(api),
		wizard:    newWizardModel(api, policy),
		timer:     newTimerModel(api),
		stats:     newStatsModel(api),
		settings:  newSettingsModel(api, user.Settings, policy),
	}
}

func (a App) Init() tea.Cmd {
	return a.dashboard.load()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case navMsg:
		a.screen = msg.to
		a.status = ""
		switch a.screen {
		case ScreenDashboard:
			return a, a.dashboard.load()
		case ScreenStats:
			return a, a.stats.load()
		}
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.isErr = msg.isErr
		return a, nil

	case settingsSavedMsg:
		if msg.err == nil && msg.user != nil {
			a.user = msg.user
			a.wizard.policy = a.settings.policy
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.screen == ScreenDashboard && (msg.String() == "q" || msg.String() == "esc") {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case ScreenMoodWizard:
		a.wizard, cmd = a.wizard.Update(msg)
	case ScreenFocusTimer:
		a.timer, cmd = a.timer.Update(msg)
	case ScreenStats:
		a.stats, cmd = a.stats.Update(msg)
	case ScreenSettings:
		a.settings, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render(fmt.Sprintf("🌿 MindEase · %s · %s", a.screen.Title(), a.user.Name))

	var status string
	if a.status != "" {
		color := ColorSuccess
		if a.isErr {
			color = ColorError
		}
		status = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(a.status)
	}

	var body string
	switch a.screen {
	case ScreenDashboard:
		body = a.dashboard.View(a.width)
	case ScreenMoodWizard:
		body = a.wizard.View(a.width)
	case ScreenFocusTimer:
		body = a.timer.View(a.width)
	case ScreenStats:
		body = a.stats.View(a.width)
	case ScreenSettings:
		body = a.settings.View(a.width)
	}

	parts := []string{header}
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, body)
	return strings.Join(parts, "\n\n") + "\n"
}

// Run starts the TUI.
func Run(api *client.Client, user *internal.User, policy PostSubmitPolicy) error {
	p := tea.NewProgram(NewApp(api, user, policy), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func helpBar(width int, text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Width(width).
		Render(text)
}
