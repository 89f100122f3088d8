package game

import (
	"time"

	"github.com/Mshel/sshcandy/internal/board"
)

// TokenView is a read-only copy of one token for renderers. X and Y are in
// cells and follow the token's animation.
type TokenView struct {
	Kind          board.TokenKind `json:"kind"`
	OriginalColor board.TokenKind `json:"originalColor"`
	Cell          board.Coord     `json:"cell"`
	X             float64         `json:"x"`
	Y             float64         `json:"y"`
	Selected      bool            `json:"selected"`
}

// BoardView is a consistent copy of a session taken under the read lock.
type BoardView struct {
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Tokens     []TokenView   `json:"tokens"`
	Score      int           `json:"score"`
	TimeLeft   time.Duration `json:"timeLeft"`
	Mood       Mood          `json:"mood"`
	State      GameState     `json:"state"`
	Animating  bool          `json:"animating"`
	Selected   *board.Coord  `json:"selected,omitempty"`
	Hint       *board.Move   `json:"hint,omitempty"`
	LastCue    Cue           `json:"lastCue"`
	Reshuffles int           `json:"reshuffles"`
}

func (gm *GameManager) Snapshot() BoardView {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	b := gm.board
	view := BoardView{
		Width:      b.Width(),
		Height:     b.Height(),
		Tokens:     make([]TokenView, 0, b.Width()*b.Height()),
		Score:      gm.score,
		TimeLeft:   gm.timeLeft,
		Mood:       MoodFor(gm.timeLeft),
		State:      gm.state,
		Animating:  b.IsAnimating(),
		LastCue:    gm.lastCue,
		Reshuffles: gm.reshuffles,
	}
	if c, ok := b.Selected(); ok {
		view.Selected = &c
	}
	if gm.hint != nil {
		hint := *gm.hint
		view.Hint = &hint
	}

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			token := b.TokenAt(x, y)
			if token == nil {
				continue
			}
			view.Tokens = append(view.Tokens, TokenView{
				Kind:          token.Kind,
				OriginalColor: token.OriginalColor,
				Cell:          board.Coord{X: x, Y: y},
				X:             token.PosX,
				Y:             token.PosY,
				Selected:      token.Selected,
			})
		}
	}
	return view
}
