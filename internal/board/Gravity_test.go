package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillEmptySpacesKeepsColumnOrder(t *testing.T) {
	b := newTestBoard(baseKinds(4, 5), &scriptedRand{values: []int{3}})
	b.grid.Clear(NewCoordSet(Coord{1, 2}, Coord{1, 3}))

	moves := b.fillEmptySpaces()

	require.Len(t, moves, 4)
	column := make([]TokenKind, 5)
	for y := range column {
		column[y] = b.grid.Get(Coord{1, y}).Kind
	}
	assert.Equal(t, []TokenKind{Yellow, Yellow, Green, Blue, Blue}, column)
	assert.True(t, b.grid.IsFull())

	assert.Equal(t, FallMove{Token: moves[0].Token, From: Coord{1, 1}, To: Coord{1, 3}}, moves[0])
	assert.Equal(t, Coord{1, 0}, moves[1].From)
	assert.Equal(t, Coord{1, 2}, moves[1].To)

	for _, m := range moves[2:] {
		assert.True(t, m.Spawned)
		assert.Negative(t, m.From.Y)
		assert.Equal(t, float64(m.From.Y), m.Token.PosY)
	}
	for _, m := range moves {
		assert.True(t, m.Token.Falling)
	}
}

func TestFillEmptySpacesNoopOnFullGrid(t *testing.T) {
	b := newTestBoard(baseKinds(4, 5), nil)
	before := b.Kinds()
	assert.Empty(t, b.fillEmptySpaces())
	assert.Equal(t, before, b.Kinds())
}

func TestFallAnimationLands(t *testing.T) {
	b := newTestBoard(baseKinds(4, 5), nil)
	b.grid.Clear(NewCoordSet(Coord{0, 4}, Coord{2, 4}))
	b.fillEmptySpaces()

	assert.True(t, b.IsAnimating())
	finishAnimations(t, b)

	b.grid.forEach(func(c Coord, token *Token) {
		assert.Equal(t, float64(c.X), token.PosX)
		assert.Equal(t, float64(c.Y), token.PosY)
	})
}
