package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	events []Event
	idx    int
}

func (s *sliceSource) Next() (Event, bool) {
	if s.idx >= len(s.events) {
		return Event{}, false
	}
	ev := s.events[s.idx]
	s.idx++
	return ev, true
}

func TestDashboardCountsEventsByLevel(t *testing.T) {
	source := &sliceSource{events: []Event{
		{Path: "a.pgn", Level: "info", Message: "row written"},
		{Path: "a.pgn", Level: "warn", GameIndex: 3, Message: "illegal move"},
		{Path: "b.pgn", Level: "error", Message: "open failed"},
	}}

	m := New(source)

	for i := 0; i < len(source.events); i++ {
		next, ok := source.Next()
		require.True(t, ok)
		updated, _ := m.Update(eventMsg(next))
		m = updated.(Model)
	}

	assert.Equal(t, 1, m.imported)
	assert.Equal(t, 1, m.warnings)
	assert.Equal(t, 1, m.errors)
	assert.Len(t, m.log, 3)
	assert.Contains(t, m.log[1], "game 3")
}

func TestDashboardQuitsOnQ(t *testing.T) {
	m := New(&sliceSource{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
}

func TestDashboardDoneState(t *testing.T) {
	m := New(&sliceSource{})
	updated, _ := m.Update(doneMsg{})
	m = updated.(Model)
	assert.True(t, m.done)
}
