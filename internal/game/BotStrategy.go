package game

import (
	"errors"

	"github.com/Mshel/sshcandy/internal/board"
)

var ErrNoMoves = errors.New("no possible moves")

// Strategy picks the next swap from the moves the board would accept. kinds is
// the grid indexed [y][x].
type Strategy interface {
	NextMove(kinds [][]board.TokenKind, moves []board.Move) (board.Move, error)
	Name() string
}
