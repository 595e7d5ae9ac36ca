package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roydza27/MindEaseLite-sub000/internal/client"
	"github.com/roydza27/MindEaseLite-sub000/internal/timer"
)

// timerTickMsg is sent every second while a countdown runs. It carries the
// countdown generation so ticks scheduled by a replaced countdown are
// dropped instead of double-decrementing.
type timerTickMsg struct {
	generation int
}

type timerStartedMsg struct {
	err error
}

var timerPresets = []int{5, 10, 15, 20, 25, 30, 45, 60, 90, 120}

type timerModel struct {
	machine   *timer.Countdown
	presetIdx int
	progress  progress.Model
	starting  bool
	err       string
	done      string
}

func newTimerModel(api *client.Client) timerModel {
	m := timerModel{
		machine:  timer.New(api),
		progress: progress.New(progress.WithDefaultGradient()),
	}
	for i, p := range timerPresets {
		if p == timer.DefaultDurationMinutes {
			m.presetIdx = i
		}
	}
	return m
}

func tickCmd(generation int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{generation: generation}
	})
}

func (m timerModel) Update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case timerStartedMsg:
		m.starting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		return m, tickCmd(m.machine.Generation())

	case timerTickMsg:
		if msg.generation != m.machine.Generation() {
			return m, nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		done, err := m.machine.Tick(ctx)
		cancel()
		if err != nil {
			m.err = "session saved locally, update failed: " + err.Error()
		}
		if done {
			m.done = "Session complete. Well done!"
			return m, nil
		}
		if m.machine.State() == timer.StateRunning {
			return m, tickCmd(msg.generation)
		}
		return m, nil

	case tea.KeyMsg:
		if m.starting {
			return m, nil
		}
		switch msg.String() {
		case "left", "h":
			if m.machine.State() == timer.StateIdle && m.presetIdx > 0 {
				m.presetIdx--
				m.err = ""
				if err := m.machine.Configure(timerPresets[m.presetIdx]); err != nil {
					m.err = err.Error()
				}
			}
		case "right", "l":
			if m.machine.State() == timer.StateIdle && m.presetIdx < len(timerPresets)-1 {
				m.presetIdx++
				m.err = ""
				if err := m.machine.Configure(timerPresets[m.presetIdx]); err != nil {
					m.err = err.Error()
				}
			}
		case "enter":
			if m.machine.State() != timer.StateIdle {
				return m, nil
			}
			m.starting = true
			m.err = ""
			m.done = ""
			machine := m.machine
			return m, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return timerStartedMsg{err: machine.Start(ctx)}
			}
		case "s":
			if m.machine.State() != timer.StateRunning {
				return m, nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := m.machine.Stop(ctx)
			cancel()
			if err != nil {
				m.err = "stopped locally, update failed: " + err.Error()
			}
			m.done = "Session stopped early."
		case "esc", "q":
			if m.machine.State() == timer.StateRunning {
				m.err = "stop the timer first (s)"
				return m, nil
			}
			return m, navTo(ScreenDashboard)
		}
	}
	return m, nil
}

func (m timerModel) View(width int) string {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	clock := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)

	var body string
	switch {
	case m.starting:
		body = sub.Render("Starting session...")
	case m.machine.State() == timer.StateRunning:
		total := m.machine.Minutes() * 60
		ratio := 1 - float64(m.machine.Remaining())/float64(total)
		body = fmt.Sprintf("%s\n\n%s\n\n%s",
			title.Render(fmt.Sprintf("Focusing for %d minutes", m.machine.Minutes())),
			clock.Render("  "+m.machine.FormatRemaining()),
			m.progress.ViewAs(ratio))
	default:
		body = fmt.Sprintf("%s\n\n%s\n\n%s",
			title.Render("Pick a duration"),
			clock.Render(fmt.Sprintf("  ◀ %3d min ▶", timerPresets[m.presetIdx])),
			sub.Render("A focus session is recorded when you start."))
	}

	if m.done != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(m.done)
	}
	if m.err != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render(m.err)
	}

	help := "◀/▶ duration · enter start · esc back"
	if m.machine.State() == timer.StateRunning {
		help = "s stop & save · countdown running"
	}
	return body + "\n\n" + helpBar(width, help)
}
