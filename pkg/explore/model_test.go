package explore

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+r":
			msg = tea.KeyMsg{Type: tea.KeyCtrlR}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_Navigation(t *testing.T) {
	m := New(sampleResults())
	require.NotNil(t, m.Selected())
	assert.Equal(t, "FLAG{one}", m.Selected().Flag)

	m = press(t, m, "j", "j")
	assert.Equal(t, "FLAG{three}", m.Selected().Flag)

	m = press(t, m, "G")
	assert.Equal(t, "FLAG{four}", m.Selected().Flag)

	// cursor stops at the last row
	m = press(t, m, "j")
	assert.Equal(t, "FLAG{four}", m.Selected().Flag)

	m = press(t, m, "g")
	assert.Equal(t, "FLAG{one}", m.Selected().Flag)
}

func TestModel_Sort(t *testing.T) {
	m := New(sampleResults())

	m = press(t, m, "s") // by flag
	assert.Equal(t, "FLAG{four}", m.Selected().Flag)

	m = press(t, m, "s") // by encoding
	assert.Equal(t, "ASCII", m.Selected().Encoding)

	m = press(t, m, "s", "s") // by source, then back to found order
	assert.Equal(t, "FLAG{one}", m.Selected().Flag)
}

func TestModel_Filter(t *testing.T) {
	m := New(sampleResults())

	// focus filters; the cursor starts on the first encoding value (ASCII)
	m = press(t, m, "tab", "x", "tab")
	require.Len(t, m.results.rows, 1)
	assert.Equal(t, "FLAG{two}", m.Selected().Flag)

	m = press(t, m, "tab", "ctrl+r", "tab")
	assert.Len(t, m.results.rows, 4)
}

func TestModel_FilterToNothing(t *testing.T) {
	m := New(sampleResults())

	// ASCII and an unrelated source leave no result
	m = press(t, m, "tab", "x", "G", "x")
	assert.Empty(t, m.results.rows)
	assert.Nil(t, m.Selected())
}

func TestModel_QuitAndHelp(t *testing.T) {
	m := New(sampleResults())

	m = press(t, m, "?")
	assert.True(t, m.showHelp)
	m = press(t, m, "q") // closes help without quitting
	assert.False(t, m.showHelp)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	m := New(sampleResults())
	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Results (4/4)")
	assert.Contains(t, view, "FLAG{one}")
	assert.Contains(t, view, "Encoding")
}

func TestModel_Empty(t *testing.T) {
	m := New(nil)
	assert.Nil(t, m.Selected())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	assert.Contains(t, next.(Model).View(), "No result selected")
}
