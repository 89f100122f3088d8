package ui

import (
	"strings"

	"github.com/Mshel/sshcandy/internal/board"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	introPlay = iota
	introWatchBot
	introLeaderboard
)

var introButtons = []string{"Play", "Watch Bot", "Leaderboard"}

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: introPlay, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.selected = (m.selected - 1 + len(introButtons)) % len(introButtons)
		case "right", "l", "tab":
			m.selected = (m.selected + 1) % len(introButtons)
		case "enter":
			selected := m.selected
			return m, func() tea.Msg { return IntroSubmitMsg(selected) }
		}
	}
	return m, nil
}

var candyAscii = `
 ███████ ███████ ██   ██      ██████  █████  ███    ██ ██████  ██    ██
 ██      ██      ██   ██     ██      ██   ██ ████   ██ ██   ██  ██  ██
 ███████ ███████ ███████     ██      ███████ ██ ██  ██ ██   ██   ████
      ██      ██ ██   ██     ██      ██   ██ ██  ██ ██ ██   ██    ██
 ███████ ███████ ██   ██      ██████ ██   ██ ██   ████ ██████     ██
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("201"))

	candyRowStyle = lipgloss.NewStyle().Bold(true)

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("201")).
					Foreground(lipgloss.Color("0"))
)

// candyRow shows one of each ordinary token under the title.
func candyRow() string {
	var parts []string
	for _, k := range board.OrdinaryKinds {
		parts = append(parts, candyRowStyle.Foreground(tokenColor(k, k)).Render(tokenGlyphs[k]))
	}
	return strings.Join(parts, "  ")
}

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(candyAscii))
	sb.WriteString("\n")

	var buttons []string
	for i, label := range introButtons {
		if i == m.selected {
			buttons = append(buttons, introSelectedButtonStyle.Render(label))
		} else {
			buttons = append(buttons, introButtonStyle.Render(label))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		sb.String(),
		candyRow(),
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
