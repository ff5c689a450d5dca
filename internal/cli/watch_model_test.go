package cli

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencyops/timeclock/internal/clock"
	"github.com/agencyops/timeclock/internal/domain"
)

func watchFixture(t *testing.T, now time.Time) (watchModel, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(now)
	app := &App{Clock: clk}
	return newWatchModel(app, "w1"), clk
}

func TestWatchModel_ShowsLoadingBeforeFirstFetch(t *testing.T) {
	m, _ := watchFixture(t, time.Now().UTC())

	assert.Contains(t, m.View(), "loading")
}

func TestWatchModel_ShowsIdleWhenNoSession(t *testing.T) {
	m, _ := watchFixture(t, time.Now().UTC())

	updated, _ := m.Update(watchSessionMsg{session: nil})
	view := updated.(watchModel).View()

	assert.Contains(t, view, "waiting for w1 to clock in")
}

func TestWatchModel_RendersLiveTotals(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	m, clk := watchFixture(t, now)

	sess := &domain.Session{
		ID:       "s1",
		WorkerID: "w1",
		ClockIn:  now,
		Status:   domain.SessionActive,
	}
	clk.Advance(90 * time.Minute)

	updated, _ := m.Update(watchSessionMsg{session: sess})
	view := updated.(watchModel).View()

	assert.Contains(t, view, "working")
	assert.Contains(t, view, "01:30:00")
}

func TestWatchModel_ShowsOnBreakState(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	m, clk := watchFixture(t, now)

	sess := &domain.Session{
		ID:       "s1",
		WorkerID: "w1",
		ClockIn:  now,
		Status:   domain.SessionActive,
		Breaks: []*domain.Break{
			{ID: "b1", SessionID: "s1", Start: now.Add(30 * time.Minute)},
		},
	}
	clk.Advance(45 * time.Minute)

	updated, _ := m.Update(watchSessionMsg{session: sess})
	view := updated.(watchModel).View()

	assert.Contains(t, view, "on break")
}

func TestWatchModel_RendersFetchError(t *testing.T) {
	m, _ := watchFixture(t, time.Now().UTC())

	updated, _ := m.Update(watchSessionMsg{err: errors.New("db gone")})
	view := updated.(watchModel).View()

	assert.Contains(t, view, "db gone")
}

func TestWatchModel_QuitsOnQ(t *testing.T) {
	m, _ := watchFixture(t, time.Now().UTC())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.True(t, updated.(watchModel).quitting)
	assert.Empty(t, updated.(watchModel).View())
}

func TestWatchModel_TickSchedulesRefetch(t *testing.T) {
	m, _ := watchFixture(t, time.Now().UTC())

	_, cmd := m.Update(watchTickMsg(time.Now()))

	require.NotNil(t, cmd)
}
