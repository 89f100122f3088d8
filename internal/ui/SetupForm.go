package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/sshcandy/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	presetStyle         = lipgloss.NewStyle().Padding(0, 1)
	selectedPresetStyle = presetStyle.Background(focusedColor).Foreground(lipgloss.Color("0"))

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

const (
	focusName = iota
	focusPreset
	focusSubmit
)

type SetupModel struct {
	nameInput   textinput.Model
	presetIndex int
	focusIndex  int
	width       int
	height      int
}

func NewInitialSetupModel(w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your Candy Name"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput:  ti,
		focusIndex: focusName,
		width:      w,
		height:     h,
	}
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		if s == "enter" || s == "tab" || s == "shift+tab" {
			if s == "enter" && m.focusIndex == focusSubmit {
				submit := SetupSubmitMsg{
					Name:   strings.TrimSpace(m.nameInput.Value()),
					Preset: game.BoardPresets[m.presetIndex],
				}
				return m, func() tea.Msg { return submit }
			}
			if s == "shift+tab" {
				m.focusIndex = (m.focusIndex + 2) % 3
			} else {
				m.focusIndex = (m.focusIndex + 1) % 3
			}
			if m.focusIndex == focusName {
				m.nameInput.Focus()
			} else {
				m.nameInput.Blur()
			}
			return m, nil
		}

		if m.focusIndex == focusPreset {
			switch s {
			case "left", "up":
				m.presetIndex = (m.presetIndex - 1 + len(game.BoardPresets)) % len(game.BoardPresets)
			case "right", "down":
				m.presetIndex = (m.presetIndex + 1) % len(game.BoardPresets)
			}
			return m, nil
		}

		if m.focusIndex == focusName {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	boardPrompt := "Pick a board (use arrows)"
	if m.focusIndex == focusPreset {
		b.WriteString(center(focusedStyle.Render(boardPrompt)))
	} else {
		b.WriteString(center(blurredStyle.Render(boardPrompt)))
	}
	b.WriteString("\n")

	var presets []string
	for i, preset := range game.BoardPresets {
		label := fmt.Sprintf("%s %dx%d", preset.Name, preset.Width, preset.Height)
		if i == m.presetIndex {
			presets = append(presets, selectedPresetStyle.Render(label))
		} else {
			presets = append(presets, presetStyle.Render(label))
		}
	}
	b.WriteString(center(lipgloss.JoinHorizontal(lipgloss.Center, presets...)))
	b.WriteString("\n\n")

	submitText := "Play"
	if m.focusIndex == focusSubmit {
		b.WriteString(center(submitButtonStyle.Render(submitText)))
	} else {
		b.WriteString(center(blurredButtonStyle.Render(submitText)))
	}
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(tab/shift+tab to navigate, arrows to pick a board, enter to confirm, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
