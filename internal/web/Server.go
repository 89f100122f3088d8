package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Mshel/sshcandy/internal/game"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	pushInterval   = 50 * time.Millisecond
	writeTimeout   = 5 * time.Second
	maxMessageSize = 512
)

// StateMessage is what the server pushes to a websocket client.
type StateMessage struct {
	Type       string         `json:"type"`
	Board      game.BoardView `json:"board"`
	FinalScore int            `json:"finalScore,omitempty"`
}

// LeaderboardPage is the body of /api/highscores.
type LeaderboardPage struct {
	Page   int          `json:"page"`
	Total  int          `json:"total"`
	Scores []game.Score `json:"scores"`
}

// Server plays one single-player session per websocket connection.
type Server struct {
	playerManager *game.PlayerManager
	logger        *log.Logger
	upgrader      websocket.Upgrader

	// ctx bounds every session; Close cancels it and waits for them.
	ctx      context.Context
	cancel   context.CancelFunc
	sessions sync.WaitGroup
}

func NewServer(playerManager *game.PlayerManager, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		playerManager: playerManager,
		logger:        logger,
		upgrader:      websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Close ends all running sessions. Hijacked connections are not covered by
// http.Server.Shutdown, so call it before closing the player manager.
func (s *Server) Close() {
	s.cancel()
	s.sessions.Wait()
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleSession)
	mux.HandleFunc("/api/highscores", s.handleHighScores)
	return mux
}

func presetByName(name string) game.BoardPreset {
	for _, preset := range game.BoardPresets {
		if preset.Name == name {
			return preset
		}
	}
	return game.BoardPresets[0]
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	preset := presetByName(r.URL.Query().Get("preset"))
	player := game.CreateNewPlayer(nil, r.URL.Query().Get("name"), preset)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	s.sessions.Add(1)
	defer s.sessions.Done()
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	logger := s.logger.With("player", player.Name, "remote", r.RemoteAddr)
	gameManager := game.NewGameManager(preset.Width, preset.Height, game.WithLogger(logger))
	go gameManager.StartGameLoop(ctx)
	logger.Info("Web session started", "board", preset.Name)

	go s.readCommands(conn, gameManager, cancel)

	if err := s.pushState(ctx, conn, gameManager, player); err != nil {
		logger.Debug("Web session ended", "error", err)
	}
	logger.Info("Web session closed", "score", gameManager.Score())
}

// readCommands applies client commands until the connection fails.
func (s *Server) readCommands(conn *websocket.Conn, gameManager *game.GameManager, cancel context.CancelFunc) {
	defer cancel()
	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg["type"] {
		case "select":
			x, okX := msg["x"].(float64)
			y, okY := msg["y"].(float64)
			if okX && okY {
				gameManager.Select(int(x), int(y))
			}
		case "restart":
			gameManager.Restart()
		case "hint":
			gameManager.RequestHint()
		}
	}
}

// pushState is the only writer on conn. It sends a snapshot whenever the
// session reported activity since the last frame.
func (s *Server) pushState(ctx context.Context, conn *websocket.Conn, gameManager *game.GameManager, player *game.Player) error {
	if err := writeState(conn, StateMessage{Type: "state", Board: gameManager.Snapshot()}); err != nil {
		return err
	}

	ticker := time.NewTicker(pushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		changed := false
		var gameOver *game.GameOverMsg
	drain:
		for {
			select {
			case msg := <-gameManager.UpdateChannel:
				changed = true
				if over, ok := msg.(game.GameOverMsg); ok {
					gameOver = &over
				}
			default:
				break drain
			}
		}
		if !changed {
			continue
		}

		message := StateMessage{Type: "state", Board: gameManager.Snapshot()}
		if gameOver != nil {
			message.Type = "gameOver"
			message.FinalScore = gameOver.FinalScore
			if s.playerManager != nil {
				finished := *player
				finished.FinalScore = gameOver.FinalScore
				s.playerManager.SunsetPlayer(&finished)
			}
		}
		if err := writeState(conn, message); err != nil {
			return err
		}
	}
}

func writeState(conn *websocket.Conn, message StateMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(message)
}

func (s *Server) handleHighScores(w http.ResponseWriter, r *http.Request) {
	if s.playerManager == nil || s.playerManager.HighScoreService == nil {
		http.Error(w, "High scores unavailable", http.StatusServiceUnavailable)
		return
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		page = 0
	}

	highScores := s.playerManager.HighScoreService
	scores, err := highScores.GetHighScores(game.LeaderboardPageSize, page*game.LeaderboardPageSize)
	if err != nil {
		s.logger.Error("Failed to load high scores", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	total, err := highScores.GetTotalScoreCount()
	if err != nil {
		s.logger.Error("Failed to count high scores", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if scores == nil {
		scores = []game.Score{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(LeaderboardPage{Page: page, Total: total, Scores: scores})
}
