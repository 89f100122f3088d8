package ui

import (
	"context"

	"github.com/Mshel/sshcandy/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
)

// Messages for state transitions
type IntroSubmitMsg int

type SetupSubmitMsg struct {
	Name   string
	Preset game.BoardPreset
}

type ShowLeaderboardMsg struct{}

type ControllerModel struct {
	CurrentScreen Screen
	PlayerManager *game.PlayerManager
	BotStrategy   game.Strategy

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model

	CurrentUserSession ssh.Session
	ScreenWidth        int
	ScreenHeight       int

	// ctx bounds every game loop this controller starts.
	ctx         context.Context
	stopSession context.CancelFunc
	logger      *log.Logger
}

func NewControllerModel(ctx context.Context, playerManager *game.PlayerManager, botStrategy game.Strategy,
	userSession ssh.Session, screenWidth int, screenHeight int) ControllerModel {
	if botStrategy == nil {
		botStrategy = game.DefaultStrategy{}
	}
	return ControllerModel{
		CurrentScreen: IntroScreen,
		PlayerManager: playerManager,
		BotStrategy:   botStrategy,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(screenWidth, screenHeight),

		CurrentUserSession: userSession,
		ScreenWidth:        screenWidth,
		ScreenHeight:       screenHeight,

		ctx:    ctx,
		logger: log.Default(),
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

// startSession runs a fresh game loop, plus a bot fleet when strategy is set.
func (m *ControllerModel) startSession(preset game.BoardPreset, strategy game.Strategy) *game.GameManager {
	m.endSession()
	ctx, cancel := context.WithCancel(m.ctx)
	m.stopSession = cancel

	gameManager := game.NewGameManager(preset.Width, preset.Height, game.WithLogger(m.logger))
	go gameManager.StartGameLoop(ctx)

	if strategy != nil {
		botMaster := game.NewBotMaster(m.logger)
		botMaster.AddBot(gameManager, strategy)
		go botMaster.StartBotFleet(ctx)
	}
	return gameManager
}

func (m *ControllerModel) endSession() {
	if m.stopSession != nil {
		m.stopSession()
		m.stopSession = nil
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		quit := msg.String() == "ctrl+c" || (msg.String() == "q" && m.CurrentScreen != SetupScreen)
		if quit {
			m.endSession()
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		switch msg {
		case introPlay:
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		case introWatchBot:
			preset := game.BoardPresets[0]
			gameManager := m.startSession(preset, m.BotStrategy)
			bot := game.CreateBotPlayer(m.BotStrategy, preset)
			m.CurrentScreen = GameScreen
			m.GameModel = NewGameModel(gameManager, m.PlayerManager, bot, m.ScreenWidth, m.ScreenHeight)
			return m, m.GameModel.Init()
		case introLeaderboard:
			m.CurrentScreen = GameScreen
			m.GameModel = NewGameModel(nil, m.PlayerManager, nil, m.ScreenWidth, m.ScreenHeight)
			return m, tea.Sequence(m.GameModel.Init(), func() tea.Msg { return ShowLeaderboardMsg{} })
		}

	case SetupSubmitMsg:
		gameManager := m.startSession(msg.Preset, nil)
		player := game.CreateNewPlayer(m.CurrentUserSession, msg.Name, msg.Preset)
		m.logger.Info("Player joined", "name", player.Name, "board", msg.Preset.Name)
		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(gameManager, m.PlayerManager, player, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	case QuitGameMsg:
		m.endSession()
		m.GameModel = nil
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
			cmds = append(cmds, cmd)
		case GameScreen:
			if m.GameModel != nil {
				m.GameModel, cmd = m.GameModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}
