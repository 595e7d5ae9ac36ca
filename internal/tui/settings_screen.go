package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/client"
	"github.com/roydza27/MindEaseLite-sub000/internal/service"
)

type settingsSavedMsg struct {
	user *internal.User
	err  error
}

const (
	settingTheme = iota
	settingLanguage
	settingNotifications
	settingPostSubmit
	settingCount
)

type settingsModel struct {
	api      *client.Client
	settings internal.Settings
	policy   PostSubmitPolicy
	cursor   int
	language textinput.Model
	typing   bool
	saving   bool
	status   string
	isErr    bool
}

func newSettingsModel(api *client.Client, settings internal.Settings, policy PostSubmitPolicy) settingsModel {
	language := textinput.New()
	language.CharLimit = 8
	language.SetValue(settings.Language)
	return settingsModel{api: api, settings: settings, policy: policy, language: language}
}

func (m settingsModel) save() tea.Cmd {
	api := m.api
	req := service.SettingsRequest{
		Theme:         &m.settings.Theme,
		Language:      &m.settings.Language,
		Notifications: &m.settings.Notifications,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		user, err := api.UpdateSettings(ctx, req)
		return settingsSavedMsg{user: user, err: err}
	}
}

func (m settingsModel) toggle() settingsModel {
	switch m.cursor {
	case settingTheme:
		if m.settings.Theme == "light" {
			m.settings.Theme = "dark"
		} else {
			m.settings.Theme = "light"
		}
	case settingNotifications:
		m.settings.Notifications = !m.settings.Notifications
	case settingPostSubmit:
		if m.policy == PostSubmitCompletion {
			m.policy = PostSubmitReset
		} else {
			m.policy = PostSubmitCompletion
		}
	}
	return m
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			m.isErr = true
		} else {
			m.status = "Settings saved"
			m.isErr = false
			m.settings = msg.user.Settings
		}
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			switch msg.String() {
			case "enter", "esc":
				m.typing = false
				m.language.Blur()
				m.settings.Language = strings.TrimSpace(m.language.Value())
				return m, nil
			}
			var cmd tea.Cmd
			m.language, cmd = m.language.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < settingCount-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.cursor == settingLanguage {
				m.typing = true
				m.language.Focus()
				return m, textinput.Blink
			}
			m = m.toggle()
		case "w":
			if !m.saving {
				m.saving = true
				m.status = ""
				return m, m.save()
			}
		case "esc", "q":
			return m, navTo(ScreenDashboard)
		}
	}
	return m, nil
}

func (m settingsModel) View(width int) string {
	selected := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	normal := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))

	policy := "completion screen"
	if m.policy == PostSubmitReset {
		policy = "return to dashboard"
	}
	notif := "off"
	if m.settings.Notifications {
		notif = "on"
	}

	languageView := m.settings.Language
	if m.typing {
		languageView = m.language.View()
	}

	rows := []string{
		fmt.Sprintf("Theme           %s", m.settings.Theme),
		fmt.Sprintf("Language        %s", languageView),
		fmt.Sprintf("Notifications   %s", notif),
		fmt.Sprintf("After check-in  %s", policy),
	}

	var b strings.Builder
	for i, row := range rows {
		prefix := "  "
		style := normal
		if i == m.cursor {
			prefix = "❯ "
			style = selected
		}
		b.WriteString(style.Render(prefix + row))
		b.WriteString("\n")
	}

	if m.saving {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("Saving..."))
	} else if m.status != "" {
		color := ColorSuccess
		if m.isErr {
			color = ColorError
		}
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.status))
	}

	return b.String() + "\n\n" + helpBar(width, "↑/↓ move · enter/space change · w save · esc back")
}
