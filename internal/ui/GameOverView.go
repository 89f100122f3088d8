package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/sshcandy/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	buttonPlayAgain = iota
	buttonLeaderboard
	buttonExit
)

var gameOverButtons = []string{"PLAY AGAIN", "LEADERBOARD", "EXIT"}

// GameOverState holds the data and local state for rendering the game over screens.
type GameOverState struct {
	FinalScore     int
	PersonalBest   int
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int

	Page       int
	Scores     []game.Score
	TotalCount int
	LoadErr    error
}

type leaderboardLoadedMsg struct {
	page   int
	scores []game.Score
	total  int
	err    error
}

func (m GameViewModel) loadLeaderboard(page int) tea.Cmd {
	if m.playerManager == nil || m.playerManager.HighScoreService == nil {
		return nil
	}
	highScores := m.playerManager.HighScoreService
	return func() tea.Msg {
		scores, err := highScores.GetHighScores(game.LeaderboardPageSize, page*game.LeaderboardPageSize)
		if err != nil {
			return leaderboardLoadedMsg{page: page, err: err}
		}
		total, err := highScores.GetTotalScoreCount()
		return leaderboardLoadedMsg{page: page, scores: scores, total: total, err: err}
	}
}

type personalBestMsg struct {
	best int
}

// loadPersonalBest reads the player's previous best on this board size. The
// round that just ended may not be stored yet.
func (m GameViewModel) loadPersonalBest() tea.Cmd {
	if m.player == nil || m.playerManager == nil || m.playerManager.HighScoreService == nil {
		return nil
	}
	highScores := m.playerManager.HighScoreService
	player := *m.player
	return func() tea.Msg {
		best, err := highScores.GetPersonalBest(player.Name, player.Preset.Width, player.Preset.Height)
		if err != nil {
			return personalBestMsg{}
		}
		return personalBestMsg{best: best}
	}
}

func (g *GameOverState) applyLeaderboard(msg leaderboardLoadedMsg) {
	if msg.page != g.Page {
		return
	}
	g.Scores = msg.scores
	g.TotalCount = msg.total
	g.LoadErr = msg.err
}

func (g *GameOverState) HasNextPage() bool {
	return (g.Page+1)*game.LeaderboardPageSize < g.TotalCount
}

// Styles for Game Over/Leaderboard
var (
	GameOverbuttonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = GameOverbuttonStyle.
				Background(lipgloss.Color("201")).
				Foreground(lipgloss.Color("15"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// RenderGameOverScreen draws the final score and buttons.
func (g *GameOverState) RenderGameOverScreen(playerName string) string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("201")).
		Padding(2, 5).
		Align(lipgloss.Center).
		Width(max(g.ScreenWidth-4, 0))

	title := messageStyle.Render("🍬 T I M E   U P 🍬")

	best := max(g.PersonalBest, g.FinalScore)
	stats := fmt.Sprintf("\n%s\nFinal Score: %d\nBest: %d\n", playerName, g.FinalScore, best)
	if g.FinalScore > g.PersonalBest {
		stats += lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Render("New personal best!") + "\n"
	}

	var buttons []string
	for i, label := range gameOverButtons {
		if i == g.SelectedButton {
			buttons = append(buttons, selectedButtonStyle.Render(label))
		} else {
			buttons = append(buttons, GameOverbuttonStyle.Render(label))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// RenderLeaderboardScreen draws the current page of persisted scores.
func (g *GameOverState) RenderLeaderboardScreen() string {
	var tableContent strings.Builder

	nameWidth := 20
	scoreWidth := 10
	boardWidth := 8

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(5).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(scoreWidth).Render("Score"),
		leaderboardHeaderStyle.Width(boardWidth).Render("Board"),
	)
	tableContent.WriteString(header + "\n")

	switch {
	case g.LoadErr != nil:
		tableContent.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("Could not load scores") + "\n")
	case len(g.Scores) == 0:
		tableContent.WriteString(leaderboardRowStyle.Faint(true).Render("No scores yet") + "\n")
	}

	for i, score := range g.Scores {
		rank := g.Page*game.LeaderboardPageSize + i + 1
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(5).Render(strconv.Itoa(rank)),
			leaderboardRowStyle.Width(nameWidth).Render(score.PlayerName),
			leaderboardRowStyle.Width(scoreWidth).Render(strconv.Itoa(score.Score)),
			leaderboardRowStyle.Width(boardWidth).Render(fmt.Sprintf("%dx%d", score.BoardWidth, score.BoardHeight)),
		)
		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	pages := max(1, (g.TotalCount+game.LeaderboardPageSize-1)/game.LeaderboardPageSize)
	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("👑 HIGH SCORES 👑")
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render(
		fmt.Sprintf("Page %d/%d  ←/→ to page, ESC or ENTER to go back.", g.Page+1, pages))

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		instruction,
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
