package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Mshel/sshcandy/internal/game"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = log.New(io.Discard)

type clientState struct {
	Type  string `json:"type"`
	Board struct {
		Width  int               `json:"width"`
		Height int               `json:"height"`
		Score  int               `json:"score"`
		State  string            `json:"state"`
		Mood   string            `json:"mood"`
		Tokens []json.RawMessage `json:"tokens"`
	} `json:"board"`
}

func newTestServer(t *testing.T) (*httptest.Server, *game.PlayerManager) {
	t.Helper()
	highScores, err := game.NewHighScoreService(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	playerManager := game.NewPlayerManager(highScores, quietLogger)
	webServer := NewServer(playerManager, quietLogger)
	srv := httptest.NewServer(webServer.Handler())
	t.Cleanup(func() {
		srv.Close()
		webServer.Close()
		playerManager.Close()
		highScores.Close()
	})
	return srv, playerManager
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readState(t *testing.T, conn *websocket.Conn) clientState {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var state clientState
	require.NoError(t, conn.ReadJSON(&state))
	return state
}

func TestSessionPushesInitialBoard(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "?name=ann&preset=Wide")

	state := readState(t, conn)
	assert.Equal(t, "state", state.Type)
	assert.Equal(t, 12, state.Board.Width)
	assert.Equal(t, 9, state.Board.Height)
	assert.Len(t, state.Board.Tokens, 12*9)
	assert.Equal(t, "playing", state.Board.State)
	assert.Equal(t, "happy", state.Board.Mood)
	assert.Equal(t, 0, state.Board.Score)
}

func TestSessionKeepsPushingWhileRunning(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "")

	first := readState(t, conn)
	assert.Equal(t, 8, first.Board.Width)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "select", "x": 0, "y": 0}))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "restart"}))

	next := readState(t, conn)
	assert.Equal(t, "state", next.Type)
	assert.Equal(t, 10, next.Board.Height)
}

func TestCloseEndsSessions(t *testing.T) {
	highScores, err := game.NewHighScoreService(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer highScores.Close()
	webServer := NewServer(game.NewPlayerManager(highScores, quietLogger), quietLogger)
	srv := httptest.NewServer(webServer.Handler())
	defer srv.Close()

	conn := dial(t, srv, "")
	readState(t, conn)

	webServer.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var state clientState
		if err := conn.ReadJSON(&state); err != nil {
			break
		}
	}
}

func TestUnknownPresetFallsBackToClassic(t *testing.T) {
	assert.Equal(t, game.BoardPresets[0], presetByName("nope"))
	assert.Equal(t, game.BoardPresets[1], presetByName(game.BoardPresets[1].Name))
}

func TestHighScoresEndpoint(t *testing.T) {
	srv, playerManager := newTestServer(t)
	for i, name := range []string{"ann", "bob", "cid"} {
		require.NoError(t, playerManager.HighScoreService.SavePlayersHighScore(name, (i+1)*100, 8, 10))
	}

	resp, err := http.Get(srv.URL + "/api/highscores")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var page LeaderboardPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Scores, 3)
	assert.Equal(t, "cid", page.Scores[0].PlayerName)
	assert.Equal(t, 300, page.Scores[0].Score)
}

func TestHighScoresEmptyPage(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/highscores?page=4")
	require.NoError(t, err)
	defer resp.Body.Close()

	var page LeaderboardPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 4, page.Page)
	assert.Empty(t, page.Scores)
}

func TestHighScoresUnavailableWithoutStore(t *testing.T) {
	srv := httptest.NewServer(NewServer(nil, quietLogger).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/highscores")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
