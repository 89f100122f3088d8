package ui

import (
	"context"
	"testing"

	"github.com/Mshel/sshcandy/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntroCyclesAndSubmits(t *testing.T) {
	m := press(NewIntroModel(80, 24), "right", "right")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, IntroSubmitMsg(introLeaderboard), cmd())

	m = press(m, "right")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, IntroSubmitMsg(introPlay), cmd())
}

func TestSetupSubmitsNameAndPreset(t *testing.T) {
	m := press(NewInitialSetupModel(80, 24), "ann", "tab", "right", "tab")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SetupSubmitMsg{Name: "ann", Preset: game.BoardPresets[1]}, cmd())
}

func TestControllerStartsAndEndsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pm := newTestPlayerManager(t)
	controller := NewControllerModel(ctx, pm, nil, nil, 120, 40)

	updated, _ := controller.Update(SetupSubmitMsg{Name: "ann", Preset: game.BoardPresets[0]})
	c := updated.(ControllerModel)
	require.Equal(t, GameScreen, c.CurrentScreen)
	require.NotNil(t, c.GameModel)
	require.NotNil(t, c.stopSession)
	assert.NotContains(t, c.View(), "Game Loading")

	updated, _ = c.Update(QuitGameMsg{})
	c = updated.(ControllerModel)
	assert.Equal(t, IntroScreen, c.CurrentScreen)
	assert.Nil(t, c.GameModel)
	assert.Nil(t, c.stopSession)
}

func TestControllerQKeyQuitsOutsideSetup(t *testing.T) {
	controller := NewControllerModel(context.Background(), nil, nil, nil, 80, 24)

	_, cmd := controller.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	updated, _ := controller.Update(IntroSubmitMsg(introPlay))
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	c := updated.(ControllerModel)
	assert.Equal(t, SetupScreen, c.CurrentScreen)
	assert.Equal(t, "q", c.SetupModel.(SetupModel).nameInput.Value())
}
