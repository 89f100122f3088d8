package game

import "github.com/Mshel/sshcandy/internal/board"

// specialMoveBonus ranks a special swap above any plain match.
const specialMoveBonus = 10

// DefaultStrategy greedily takes the move clearing the most cells, preferring
// swaps that fire a special token. Ties go to the first move in row-major order.
type DefaultStrategy struct{}

func (DefaultStrategy) Name() string { return "greedy" }

func (DefaultStrategy) NextMove(_ [][]board.TokenKind, moves []board.Move) (board.Move, error) {
	if len(moves) == 0 {
		return board.Move{}, ErrNoMoves
	}
	best, bestRank := moves[0], rankMove(moves[0])
	for _, m := range moves[1:] {
		if r := rankMove(m); r > bestRank {
			best, bestRank = m, r
		}
	}
	return best, nil
}

func rankMove(m board.Move) int {
	rank := m.Matched
	if m.Special {
		rank += specialMoveBonus
	}
	return rank
}
