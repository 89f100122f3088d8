package board

// FallMove records one token moved by gravity. Spawned tokens start above the
// grid, so their From.Y is negative.
type FallMove struct {
	Token   *Token
	From    Coord
	To      Coord
	Spawned bool
}

// fillEmptySpaces compacts each column downward, keeping the survivors' order,
// then drops fresh random tokens into the vacated top rows.
func (b *Board) fillEmptySpaces() []FallMove {
	var moves []FallMove
	g := b.grid

	for x := 0; x < g.Width; x++ {
		emptyCount := 0
		for y := g.Height - 1; y >= 0; y-- {
			from := Coord{X: x, Y: y}
			token := g.Get(from)
			if token == nil {
				emptyCount++
				continue
			}
			if emptyCount == 0 {
				continue
			}
			to := Coord{X: x, Y: y + emptyCount}
			g.Set(to, token)
			g.Set(from, nil)
			token.beginFall(to)
			moves = append(moves, FallMove{Token: token, From: from, To: to})
		}

		for i := 0; i < emptyCount; i++ {
			from := Coord{X: x, Y: i - emptyCount}
			to := Coord{X: x, Y: i}
			token := NewRandomToken(b.rng, from)
			g.Set(to, token)
			token.beginFall(to)
			moves = append(moves, FallMove{Token: token, From: from, To: to, Spawned: true})
		}
	}
	return moves
}
