package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agencyops/timeclock/internal/domain"
)

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fe8019"))
	watchWorkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	watchBreakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	watchDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	watchErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
)

type watchTickMsg time.Time

type watchSessionMsg struct {
	session *domain.Session
	err     error
}

// watchModel renders a worker's live session, refreshed once a second.
type watchModel struct {
	app      *App
	workerID string

	session *domain.Session
	err     error
	loaded  bool

	spin     spinner.Model
	quitting bool
}

func newWatchModel(app *App, workerID string) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = watchDimStyle

	return watchModel{
		app:      app,
		workerID: workerID,
		spin:     sp,
	}
}

func (m watchModel) fetchSession() tea.Msg {
	sess, err := m.app.Timeclock.GetActiveSession(context.Background(), m.workerID)
	return watchSessionMsg{session: sess, err: err}
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.fetchSession, m.spin.Tick, watchTick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case watchTickMsg:
		return m, tea.Batch(m.fetchSession, watchTick())

	case watchSessionMsg:
		m.loaded = true
		m.session = msg.session
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.loaded {
		return fmt.Sprintf("%s loading...\n", m.spin.View())
	}
	if m.err != nil {
		return watchErrStyle.Render("error: "+m.err.Error()) + "\n"
	}
	if m.session == nil {
		return fmt.Sprintf("%s %s\n\n%s\n",
			m.spin.View(),
			watchDimStyle.Render("waiting for "+m.workerID+" to clock in"),
			watchDimStyle.Render("q to quit"))
	}

	now := m.app.Clock.Now()
	state := watchWorkStyle.Render("working")
	if m.session.OpenBreak() != nil {
		state = watchBreakStyle.Render("on break")
	}

	return fmt.Sprintf("%s  %s\n\n  %s %s\n  %s %s\n\n%s\n",
		watchTitleStyle.Render("timeclock"), state,
		watchDimStyle.Render("worked"), watchWorkStyle.Render(formatSeconds(m.session.WorkSeconds(now))),
		watchDimStyle.Render("breaks"), watchBreakStyle.Render(formatSeconds(m.session.BreakSeconds(now))),
		watchDimStyle.Render("q to quit"))
}
