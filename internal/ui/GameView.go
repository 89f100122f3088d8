package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mshel/sshcandy/internal/board"
	"github.com/Mshel/sshcandy/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// --- Internal Game States for GameViewModel ---

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
	StateLeaderboard
)

var (
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	cueStyles = map[game.Cue]lipgloss.Style{
		game.CueSwap:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		game.CueInvalid: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		game.CueMatch:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		game.CueSpecial: lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true).Blink(true),
		game.CueShuffle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	}

	mascotFaces = map[game.Mood]string{
		game.MoodHappy:   "(^‿^)",
		game.MoodNormal:  "(•_•)",
		game.MoodSad:     "(._.)",
		game.MoodNervous: "(°o°;)",
	}

	mascotStyles = map[game.Mood]lipgloss.Style{
		game.MoodHappy:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		game.MoodNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		game.MoodSad:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		game.MoodNervous: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

const (
	statusPanelWidth = 30
	frameInterval    = 50 * time.Millisecond
)

// --- GameViewModel Definition ---

type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int

	gameManager   *game.GameManager
	playerManager *game.PlayerManager
	player        *game.Player // nil when only the leaderboard is shown
	// watching marks a bot demo; keys only navigate.
	watching bool

	cursor        board.Coord
	lastCue       game.Cue
	gameState     GameState
	gameOverState GameOverState
}

func NewGameModel(gm *game.GameManager, pm *game.PlayerManager, player *game.Player, screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		gameManager:   gm,
		playerManager: pm,
		player:        player,
		watching:      player != nil && player.IsBot,
		ScreenWidth:   screenWidth,
		ScreenHeight:  screenHeight,
		gameState:     StatePlaying,
		gameOverState: GameOverState{
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
}

// --- Init/Update/View Methods ---

func (m GameViewModel) Init() tea.Cmd {
	if m.gameManager == nil {
		return nil
	}
	return m.listenForGameUpdates()
}

// QuitGameMsg asks the controller to go back to the intro screen.
type QuitGameMsg struct{}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowLeaderboardMsg:
		m.gameState = StateLeaderboard
		m.gameOverState.Page = 0
		return m, m.loadLeaderboard(0)

	case leaderboardLoadedMsg:
		m.gameOverState.applyLeaderboard(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.gameOverState.ScreenWidth, m.gameOverState.ScreenHeight = msg.Width, msg.Height
		return m, nil

	case tea.MouseMsg:
		if m.gameState != StatePlaying || m.watching || m.gameManager == nil {
			return m, nil
		}
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		w, h := m.gameManager.Size()
		if c, ok := cellAt(msg.X, msg.Y, w, h); ok {
			m.cursor = c
			m.gameManager.Select(c.X, c.Y)
		}
		return m, nil

	case tea.KeyMsg:
		if m.gameState == StateGameOver || m.gameState == StateLeaderboard {
			return m.updateMenus(msg)
		}
		return m.updatePlaying(msg)

	case game.GameTickMsg:
		return m, m.listenForGameUpdates()

	case game.CueMsg:
		m.lastCue = msg.Cue
		return m, m.listenForGameUpdates()

	case game.GameOverMsg:
		if m.watching {
			// the demo keeps going
			m.gameManager.Restart()
			return m, m.listenForGameUpdates()
		}
		m.gameState = StateGameOver
		m.gameOverState.FinalScore = msg.FinalScore
		m.gameOverState.PersonalBest = 0
		m.gameOverState.SelectedButton = 0
		if m.player == nil {
			return m, nil
		}
		// read the best before this round is queued for saving
		loadBest := m.loadPersonalBest()
		m.player.FinalScore = msg.FinalScore
		finished := *m.player
		playerManager := m.playerManager
		log.Info("Round over", "player", finished.Name, "score", finished.FinalScore)
		return m, func() tea.Msg {
			var best tea.Msg = personalBestMsg{}
			if loadBest != nil {
				best = loadBest()
			}
			if playerManager != nil {
				playerManager.SunsetPlayer(&finished)
			}
			return best
		}

	case personalBestMsg:
		m.gameOverState.PersonalBest = msg.best
		return m, nil
	}

	return m, nil
}

func (m GameViewModel) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		return m, func() tea.Msg { return QuitGameMsg{} }
	}
	if m.watching || m.gameManager == nil {
		return m, nil
	}

	w, h := m.gameManager.Size()
	switch msg.String() {
	case "w", "up":
		m.cursor.Y = max(0, m.cursor.Y-1)
	case "s", "down":
		m.cursor.Y = min(h-1, m.cursor.Y+1)
	case "a", "left":
		m.cursor.X = max(0, m.cursor.X-1)
	case "d", "right":
		m.cursor.X = min(w-1, m.cursor.X+1)
	case " ", "enter":
		m.gameManager.Select(m.cursor.X, m.cursor.Y)
	case "h":
		if move, ok := m.gameManager.RequestHint(); ok {
			m.cursor = move.From
		}
	}
	return m, nil
}

func (m GameViewModel) updateMenus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.gameState == StateLeaderboard && m.player != nil && !m.watching {
			m.gameState = StateGameOver
			return m, nil
		}
		return m, func() tea.Msg { return QuitGameMsg{} }
	case "left", "a":
		if m.gameState == StateGameOver {
			m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
		} else if m.gameOverState.Page > 0 {
			m.gameOverState.Page--
			return m, m.loadLeaderboard(m.gameOverState.Page)
		}
	case "right", "d":
		if m.gameState == StateGameOver {
			m.gameOverState.SelectedButton = min(len(gameOverButtons)-1, m.gameOverState.SelectedButton+1)
		} else if m.gameOverState.HasNextPage() {
			m.gameOverState.Page++
			return m, m.loadLeaderboard(m.gameOverState.Page)
		}
	case "enter":
		if m.gameState == StateLeaderboard {
			if m.player != nil && !m.watching {
				m.gameState = StateGameOver
				return m, nil
			}
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
		switch m.gameOverState.SelectedButton {
		case buttonPlayAgain:
			m.gameManager.Restart()
			m.player.FinalScore = 0
			m.gameState = StatePlaying
			m.lastCue = game.CueNone
			return m, m.listenForGameUpdates()
		case buttonLeaderboard:
			m.gameState = StateLeaderboard
			m.gameOverState.Page = 0
			return m, m.loadLeaderboard(0)
		default:
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
	}
	return m, nil
}

func (m GameViewModel) View() string {
	switch m.gameState {
	case StateGameOver:
		return m.gameOverState.RenderGameOverScreen(m.playerName())
	case StateLeaderboard:
		return m.gameOverState.RenderLeaderboardScreen()
	}

	if m.gameManager == nil {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Waiting for game manager...")
	}

	view := m.gameManager.Snapshot()
	var cursor *board.Coord
	if !m.watching {
		cursor = &m.cursor
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Render(renderBoard(view, cursor)),
		statusPanelStyle.Width(statusPanelWidth).Render(m.renderStatusPanel(view)),
	)
}

func (m GameViewModel) playerName() string {
	if m.player == nil {
		return ""
	}
	return m.player.Name
}

// renderStatusPanel draws score, timer and controls.
func (m GameViewModel) renderStatusPanel(view game.BoardView) string {
	var statusContent strings.Builder

	title := "--- Player Stats ---"
	if m.watching {
		title = "--- Bot Demo ---"
	}
	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n")
	statusContent.WriteString(m.playerName() + "\n\n")
	statusContent.WriteString(renderMascot(view.Mood) + "\n\n")

	seconds := int(view.TimeLeft.Round(time.Second) / time.Second)
	statusContent.WriteString(fmt.Sprintf("Score: %d\n", view.Score))
	statusContent.WriteString(fmt.Sprintf("Time:  %d:%02d\n", seconds/60, seconds%60))
	statusContent.WriteString(fmt.Sprintf("Board: %dx%d\n", view.Width, view.Height))
	if view.Reshuffles > 0 {
		statusContent.WriteString(fmt.Sprintf("Shuffles: %d\n", view.Reshuffles))
	}

	if style, ok := cueStyles[m.lastCue]; ok {
		statusContent.WriteString("\n" + style.Render(strings.ToUpper(m.lastCue.String())+"!") + "\n")
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	if !m.watching {
		statusContent.WriteString("WASD / Arrows: Move\n")
		statusContent.WriteString("Space / Enter: Select\n")
		statusContent.WriteString("Mouse: Click to select\n")
		statusContent.WriteString("H: Hint\n")
	}
	statusContent.WriteString("Esc: Back to menu\n")
	statusContent.WriteString("Q / Ctrl+C: Quit\n")

	return statusContent.String()
}

func renderMascot(mood game.Mood) string {
	return mascotStyles[mood].Render(mascotFaces[mood])
}

// listenForGameUpdates drains the session channel once per frame. A game over
// outranks cues, and cues outrank plain ticks.
func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	gm := m.gameManager
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		var result tea.Msg = game.GameTickMsg{}
		for {
			select {
			case msg := <-gm.UpdateChannel:
				switch msg := msg.(type) {
				case game.GameOverMsg:
					return msg
				case game.CueMsg:
					result = msg
				}
			default:
				return result
			}
		}
	})
}
