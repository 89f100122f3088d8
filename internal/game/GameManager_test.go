package game

import (
	"context"
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Mshel/sshcandy/internal/board"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test fixtures ---

var quietLogger = log.New(io.Discard)

// matchReadyKinds is an 8x10 layout with no match and a single obvious move:
// swapping (3,3) up into (3,2) completes a yellow row at y=2.
func matchReadyKinds() [][]board.TokenKind {
	kinds := make([][]board.TokenKind, 10)
	for y := range kinds {
		kinds[y] = make([]board.TokenKind, 8)
		for x := range kinds[y] {
			kinds[y][x] = board.OrdinaryKinds[(x+y)%3]
		}
	}
	kinds[2][1] = board.Yellow
	kinds[2][2] = board.Yellow
	kinds[3][3] = board.Yellow
	return kinds
}

func newTestManager(t *testing.T) *GameManager {
	t.Helper()
	b := board.NewBoardFromKinds(matchReadyKinds(),
		board.WithRand(rand.New(rand.NewPCG(7, 11))),
		board.WithLogger(quietLogger),
	)
	return NewGameManager(0, 0, WithBoard(b), WithLogger(quietLogger))
}

func drainMessages(gm *GameManager) []tea.Msg {
	var msgs []tea.Msg
	for {
		select {
		case msg := <-gm.UpdateChannel:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

// tickUntilIdle runs frames until the board waits for input again and returns
// every cue seen on the way.
func tickUntilIdle(t *testing.T, gm *GameManager) []Cue {
	t.Helper()
	var cues []Cue
	for i := 0; ; i++ {
		require.Less(t, i, 2_000, "session never went idle")
		gm.Tick(GameTickDuration)
		for _, msg := range drainMessages(gm) {
			if cue, ok := msg.(CueMsg); ok {
				cues = append(cues, cue.Cue)
			}
		}
		if gm.IsIdle() {
			return cues
		}
	}
}

// --- Tests ---

func TestNewGameManagerUsesBoardSize(t *testing.T) {
	gm := newTestManager(t)
	w, h := gm.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 10, h)
	assert.Equal(t, StatePlaying, gm.State())
	assert.True(t, gm.IsIdle())
}

func TestSelectionsScoreThroughTheLoop(t *testing.T) {
	gm := newTestManager(t)

	gm.Select(3, 3)
	gm.Select(3, 2)
	assert.False(t, gm.IsIdle(), "queued clicks keep the session busy")

	cues := tickUntilIdle(t, gm)

	require.NotEmpty(t, cues)
	assert.Equal(t, CueSwap, cues[0])
	assert.Contains(t, cues, CueMatch)
	assert.GreaterOrEqual(t, gm.Score(), 30)

	view := gm.Snapshot()
	assert.False(t, view.Animating)
	assert.Nil(t, view.Selected)
	assert.Equal(t, gm.Score(), view.Score)
}

func TestRejectedSwapCuesInvalid(t *testing.T) {
	gm := newTestManager(t)

	gm.Select(0, 0)
	gm.Select(1, 0)
	cues := tickUntilIdle(t, gm)

	assert.Equal(t, []Cue{CueInvalid}, cues)
	assert.Zero(t, gm.Score())
	assert.Equal(t, matchReadyKinds(), gm.Kinds())
}

func TestRoundEndsWhenTimeRunsOut(t *testing.T) {
	gm := newTestManager(t)

	gm.Tick(RoundDuration)

	assert.Equal(t, StateGameOver, gm.State())
	msgs := drainMessages(gm)
	assert.Contains(t, msgs, tea.Msg(GameOverMsg{FinalScore: 0}))

	gm.Select(3, 3)
	gm.Select(3, 2)
	gm.Tick(GameTickDuration)
	assert.Nil(t, gm.Snapshot().Selected, "input is ignored after the round")
	assert.Zero(t, gm.Snapshot().TimeLeft)
}

func TestRestartResetsRound(t *testing.T) {
	gm := newTestManager(t)
	gm.Select(3, 3)
	gm.Select(3, 2)
	tickUntilIdle(t, gm)
	gm.Tick(RoundDuration)
	require.Equal(t, StateGameOver, gm.State())

	gm.Restart()

	view := gm.Snapshot()
	assert.Equal(t, StatePlaying, view.State)
	assert.Zero(t, view.Score)
	assert.Equal(t, RoundDuration, view.TimeLeft)
	assert.Equal(t, CueNone, view.LastCue)
	assert.Len(t, view.Tokens, 80)
}

func TestBoardWithoutMovesIsReshuffled(t *testing.T) {
	gm := NewGameManager(2, 2, WithLogger(quietLogger))

	gm.Tick(GameTickDuration)

	view := gm.Snapshot()
	assert.Equal(t, 1, view.Reshuffles)
	assert.Equal(t, CueShuffle, view.LastCue)
	assert.Len(t, view.Tokens, 4)
}

func TestSnapshotMirrorsBoard(t *testing.T) {
	gm := newTestManager(t)
	gm.Select(5, 5)
	gm.Tick(GameTickDuration)

	view := gm.Snapshot()
	require.Len(t, view.Tokens, 80)
	require.NotNil(t, view.Selected)
	assert.Equal(t, board.Coord{X: 5, Y: 5}, *view.Selected)

	kinds := matchReadyKinds()
	for _, tv := range view.Tokens {
		assert.Equal(t, kinds[tv.Cell.Y][tv.Cell.X], tv.Kind)
		assert.Equal(t, float64(tv.Cell.X), tv.X)
		assert.Equal(t, float64(tv.Cell.Y), tv.Y)
		assert.Equal(t, tv.Cell == board.Coord{X: 5, Y: 5}, tv.Selected)
	}
}

func TestRequestHintPublishesMove(t *testing.T) {
	gm := newTestManager(t)

	move, ok := gm.RequestHint()

	require.True(t, ok)
	assert.GreaterOrEqual(t, move.Matched, 3)
	require.NotNil(t, gm.Snapshot().Hint)
	assert.Equal(t, move, *gm.Snapshot().Hint)

	gm.Select(move.From.X, move.From.Y)
	gm.Select(move.To.X, move.To.Y)
	gm.Tick(GameTickDuration)
	assert.Nil(t, gm.Snapshot().Hint, "a swap clears the hint")
}

func TestGameLoopStopsWithContext(t *testing.T) {
	gm := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		gm.StartGameLoop(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return gm.Snapshot().TimeLeft < RoundDuration
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("game loop did not stop")
	}
}
