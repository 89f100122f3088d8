package board

// Move is a swap the board would accept.
type Move struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
	// Matched counts the cells in match groups the swap creates.
	Matched int `json:"matched"`
	// Special is set when at least one of the swapped tokens is special.
	Special bool `json:"special"`
}

// PossibleMoves lists every accepted orthogonal swap in row-major order,
// checking right before down. The grid is left untouched.
func (b *Board) PossibleMoves() []Move {
	var moves []Move
	g := b.grid
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			from := Coord{X: x, Y: y}
			for _, d := range []Coord{{X: 1, Y: 0}, {X: 0, Y: 1}} {
				to := from.Add(d)
				if move, ok := b.evaluateSwap(from, to); ok {
					moves = append(moves, move)
				}
			}
		}
	}
	return moves
}

func (b *Board) evaluateSwap(from, to Coord) (Move, bool) {
	first, second := b.grid.Get(from), b.grid.Get(to)
	if first == nil || second == nil {
		return Move{}, false
	}

	b.grid.swap(from, to)
	matched := 0
	for _, group := range FindAllMatches(b.grid) {
		matched += len(group)
	}
	b.grid.swap(from, to)

	special := first.IsSpecial() || second.IsSpecial()
	if matched == 0 && !special {
		return Move{}, false
	}
	return Move{From: from, To: to, Matched: matched, Special: special}, true
}

// HasPossibleMove reports whether any swap would be accepted.
func (b *Board) HasPossibleMove() bool {
	return len(b.PossibleMoves()) > 0
}
