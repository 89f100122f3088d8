package game

import (
	"context"
	"sync"
	"time"

	"github.com/Mshel/sshcandy/internal/board"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
)

func (s GameState) String() string {
	if s == StateGameOver {
		return "game_over"
	}
	return "playing"
}

func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Cue is a sound-worthy event a renderer may react to.
type Cue int

const (
	CueNone Cue = iota
	CueSwap
	CueInvalid
	CueMatch
	CueSpecial
	CueShuffle
)

func (c Cue) String() string {
	switch c {
	case CueSwap:
		return "swap"
	case CueInvalid:
		return "invalid"
	case CueMatch:
		return "match"
	case CueSpecial:
		return "special"
	case CueShuffle:
		return "shuffle"
	}
	return ""
}

func (c Cue) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type GameTickMsg struct{}

type CueMsg struct {
	Cue Cue
}

type GameOverMsg struct {
	FinalScore int
}

// Selection is a click on a board cell.
type Selection struct {
	X, Y int
}

// GameManager drives one board for one session. The loop goroutine is the only
// writer; renderers read through Snapshot.
type GameManager struct {
	mu sync.RWMutex

	board      *board.Board
	score      int
	timeLeft   time.Duration
	state      GameState
	lastCue    Cue
	hint       *board.Move
	reshuffles int
	// dirty is set whenever the board changed since the last dead-end check.
	dirty bool

	UpdateChannel chan tea.Msg
	SelectChannel chan Selection

	width, height int
	boardOpts     []board.Option
	logger        *log.Logger
	isRunning     bool
}

type ManagerOption func(*GameManager)

func WithBoardOptions(opts ...board.Option) ManagerOption {
	return func(gm *GameManager) {
		gm.boardOpts = append(gm.boardOpts, opts...)
	}
}

// WithBoard plays on an already built board instead of a random one.
func WithBoard(b *board.Board) ManagerOption {
	return func(gm *GameManager) {
		gm.board = b
	}
}

func WithLogger(logger *log.Logger) ManagerOption {
	return func(gm *GameManager) {
		gm.logger = logger
	}
}

func NewGameManager(width, height int, opts ...ManagerOption) *GameManager {
	gm := &GameManager{
		timeLeft:      RoundDuration,
		state:         StatePlaying,
		dirty:         true,
		UpdateChannel: make(chan tea.Msg, updateChannelSize),
		SelectChannel: make(chan Selection, selectChannelSize),
		width:         width,
		height:        height,
		logger:        log.Default(),
	}
	for _, opt := range opts {
		opt(gm)
	}
	if gm.board == nil {
		boardOpts := append([]board.Option{board.WithLogger(gm.logger.WithPrefix("board"))}, gm.boardOpts...)
		gm.board = board.NewBoard(width, height, boardOpts...)
	}
	gm.width, gm.height = gm.board.Width(), gm.board.Height()
	return gm
}

// StartGameLoop ticks the session until ctx is done.
func (gm *GameManager) StartGameLoop(ctx context.Context) {
	gm.mu.Lock()
	if gm.isRunning {
		gm.mu.Unlock()
		return
	}
	gm.isRunning = true
	gm.mu.Unlock()

	gm.logger.Debug("Game loop started", "width", gm.width, "height", gm.height)
	ticker := time.NewTicker(GameTickDuration)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			gm.mu.Lock()
			gm.isRunning = false
			gm.mu.Unlock()
			gm.logger.Debug("Game loop stopped", "score", gm.Score())
			return
		case now := <-ticker.C:
			gm.Tick(now.Sub(last))
			last = now
		}
	}
}

// Select queues a cell click for the next tick. Clicks beyond the queue size
// are dropped.
func (gm *GameManager) Select(x, y int) {
	select {
	case gm.SelectChannel <- Selection{X: x, Y: y}:
	default:
	}
}

// Tick advances the session by dt: queued clicks, animations, one pipeline
// step, then the round timer.
func (gm *GameManager) Tick(dt time.Duration) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.state != StatePlaying {
		gm.drainSelections(false)
		return
	}

	gm.drainSelections(true)
	gm.board.Update(dt.Seconds())

	outcome := gm.board.Resolve()
	if !outcome.Busy {
		gm.score += outcome.Score
		switch {
		case outcome.Activated:
			gm.cue(CueSpecial)
		case outcome.Matched:
			gm.cue(CueMatch)
		}
		if !outcome.Settled {
			gm.dirty = true
		} else if gm.dirty {
			gm.dirty = false
			if !gm.board.HasPossibleMove() {
				gm.reshuffle()
			}
		}
	}

	gm.timeLeft -= dt
	if gm.timeLeft <= 0 {
		gm.timeLeft = 0
		gm.state = StateGameOver
		gm.logger.Info("Round finished", "score", gm.score)
		gm.emit(GameOverMsg{FinalScore: gm.score})
		return
	}
	gm.emit(GameTickMsg{})
}

func (gm *GameManager) drainSelections(apply bool) {
	for {
		select {
		case s := <-gm.SelectChannel:
			if apply {
				gm.applySelection(s)
			}
		default:
			return
		}
	}
}

func (gm *GameManager) applySelection(s Selection) {
	result := gm.board.Select(s.X, s.Y)
	if !result.Swapped {
		return
	}
	gm.hint = nil
	gm.dirty = true
	if result.NeedsProcessing {
		gm.cue(CueSwap)
	} else {
		gm.cue(CueInvalid)
	}
}

func (gm *GameManager) reshuffle() {
	gm.board.Initialize(gm.width, gm.height)
	gm.reshuffles++
	gm.dirty = true
	gm.hint = nil
	gm.logger.Info("No moves left, board reshuffled", "reshuffles", gm.reshuffles)
	gm.cue(CueShuffle)
}

func (gm *GameManager) cue(c Cue) {
	gm.lastCue = c
	gm.emit(CueMsg{Cue: c})
}

// emit never blocks the loop; a renderer that falls behind misses messages.
func (gm *GameManager) emit(msg tea.Msg) {
	select {
	case gm.UpdateChannel <- msg:
	default:
	}
}

// Restart starts a fresh round on a fresh board of the same size.
func (gm *GameManager) Restart() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gm.drainSelections(false)
	gm.board.Initialize(gm.width, gm.height)
	gm.score = 0
	gm.timeLeft = RoundDuration
	gm.state = StatePlaying
	gm.lastCue = CueNone
	gm.hint = nil
	gm.reshuffles = 0
	gm.dirty = true
	gm.logger.Debug("Round restarted")
}

// RequestHint picks the most productive move and exposes it in snapshots.
func (gm *GameManager) RequestHint() (board.Move, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.state != StatePlaying || gm.board.IsAnimating() {
		return board.Move{}, false
	}
	move, err := (DefaultStrategy{}).NextMove(nil, gm.board.PossibleMoves())
	if err != nil {
		return board.Move{}, false
	}
	gm.hint = &move
	return move, true
}

// PossibleMoves lists the accepted swaps on the current board.
func (gm *GameManager) PossibleMoves() []board.Move {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.board.PossibleMoves()
}

func (gm *GameManager) Kinds() [][]board.TokenKind {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return gm.board.Kinds()
}

// IsIdle reports whether the board is waiting for input.
func (gm *GameManager) IsIdle() bool {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	_, selected := gm.board.Selected()
	return gm.state == StatePlaying &&
		!selected &&
		!gm.board.IsAnimating() &&
		gm.board.State() == board.IdleStable &&
		len(gm.SelectChannel) == 0
}

func (gm *GameManager) Score() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return gm.score
}

func (gm *GameManager) State() GameState {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return gm.state
}

func (gm *GameManager) Size() (int, int) {
	return gm.width, gm.height
}
