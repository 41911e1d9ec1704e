package repl

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dhamidi/cmdtree/bedrock"
	"github.com/dhamidi/cmdtree/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) Model {
	t.Helper()
	p, err := parser.New(bedrock.Commands())
	require.NoError(t, err)
	return New(p)
}

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

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func suggestionTexts(m Model) []string {
	var out []string
	for _, s := range m.Completion().Suggestions {
		out = append(out, s.Text)
	}
	return out
}

func TestTypingParses(t *testing.T) {
	m := send(t, newModel(t), typed("ability @a m"))
	assert.Equal(t, "ability @a m", m.Value())
	assert.False(t, m.Result().OK())
	assert.Equal(t, []string{"mayfly", "mute"}, suggestionTexts(m))
	assert.Contains(t, m.View(), "no alternative matches")
}

func TestTabAcceptsSelected(t *testing.T) {
	m := send(t, newModel(t), typed("ability @a m"), tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Selected())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "ability @a mute", m.Value())
	assert.True(t, m.Result().OK())
	assert.Equal(t, 0, m.Selected())
}

func TestSelectionWraps(t *testing.T) {
	m := send(t, newModel(t), typed("ability @a m"), tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.Selected())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.Selected())
}

func TestEnter(t *testing.T) {
	m := send(t, newModel(t), typed("ability @a m"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.History())
	assert.Equal(t, "ability @a m", m.Value())

	m = send(t, m, typed("ute"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"ability @a mute"}, m.History())
	assert.Equal(t, "", m.Value())
	assert.Contains(t, m.View(), "ability @a mute")
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestEmptyInputOffersCommands(t *testing.T) {
	m := newModel(t)
	texts := suggestionTexts(m)
	require.NotEmpty(t, texts)
	assert.Equal(t, "ability", texts[0])
	assert.Contains(t, m.View(), "more")
}
