package tui

import (
	"testing"

	"github.com/Makepad-fr/stock/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typed(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, runes(string(r)))
	}
	return out
}

func demoSession() *session.Session {
	return session.New([]string{"chleb", "bułka", "kiełbasa", "ketchup"})
}

func TestAdd(t *testing.T) {
	s := demoSession()
	m := New(s, Options{})

	m = send(t, m, runes("a"))
	m = send(t, m, typed("chleb")...)
	m = send(t, m, enter)

	assert.Equal(t, 5, s.Inventory().Len())
	assert.Equal(t, 2, s.Inventory().Summarize()["chleb"])
	assert.Len(t, m.list.Items(), 5)
	assert.Equal(t, browsing, m.mode)
	msg, isErr := m.Status()
	assert.Equal(t, "added chleb", msg)
	assert.False(t, isErr)
}

func TestAdd_EmptyStaysInInputMode(t *testing.T) {
	s := demoSession()
	m := New(s, Options{})

	m = send(t, m, runes("a"), runes(" "), enter)

	assert.Equal(t, 4, s.Inventory().Len())
	assert.Equal(t, adding, m.mode)
	msg, isErr := m.Status()
	assert.True(t, isErr)
	assert.Equal(t, "Item name cannot be empty", msg)
	assert.Contains(t, m.View(), "Item name cannot be empty")

	m = send(t, m, esc)
	assert.Equal(t, browsing, m.mode)
}

func TestRemoveSelected(t *testing.T) {
	s := demoSession()
	m := New(s, Options{})

	m = send(t, m, down, runes("d"))

	assert.Equal(t, []string{"chleb", "kiełbasa", "ketchup"}, s.Inventory().Items())
	assert.Len(t, m.list.Items(), 3)
	msg, _ := m.Status()
	assert.Equal(t, "removed bułka", msg)
}

func TestRemoveSelected_LastItemKeepsCursorInRange(t *testing.T) {
	s := session.New([]string{"chleb", "ketchup"})
	m := New(s, Options{})

	m = send(t, m, down, runes("x"))
	assert.Equal(t, []string{"chleb"}, s.Inventory().Items())
	assert.Equal(t, 0, m.list.Index())

	m = send(t, m, runes("x"), runes("x"))
	assert.Zero(t, s.Inventory().Len())
	msg, isErr := m.Status()
	assert.True(t, isErr)
	assert.Equal(t, "nothing to remove", msg)
}

func TestRemoveByName(t *testing.T) {
	s := session.New([]string{"chleb", "ketchup", "chleb"})
	m := New(s, Options{})

	m = send(t, m, runes("r"))
	assert.Equal(t, "chleb", m.ti.Value(), "prefilled with the selected name")
	m = send(t, m, enter)

	assert.Equal(t, []string{"ketchup", "chleb"}, s.Inventory().Items())
	assert.Equal(t, browsing, m.mode)
}

func TestRemoveByName_NotFound(t *testing.T) {
	s := demoSession()
	m := New(s, Options{})

	m = send(t, m, runes("r"))
	m.ti.SetValue("masło")
	m = send(t, m, enter)

	assert.Equal(t, 4, s.Inventory().Len())
	assert.Equal(t, removing, m.mode)
	msg, isErr := m.Status()
	assert.True(t, isErr)
	assert.Contains(t, msg, "masło")
}

func TestToggleSummary(t *testing.T) {
	m := New(demoSession(), Options{})
	assert.Contains(t, m.View(), "Summary")

	m = send(t, m, runes("s"))
	assert.False(t, m.showSummary)
	assert.NotContains(t, m.View(), "Summary")
}

func TestQuit(t *testing.T) {
	m := New(demoSession(), Options{})
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowSize(t *testing.T) {
	m := New(demoSession(), Options{})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}
