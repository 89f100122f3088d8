package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombinationEffectIsSymmetric(t *testing.T) {
	specials := []TokenKind{StripeH, StripeV, Bomb, Rainbow}
	for _, a := range specials {
		for _, b := range specials {
			ab, okAB := CombinationEffect(a, b)
			ba, okBA := CombinationEffect(b, a)
			assert.True(t, okAB, "%s+%s", a, b)
			assert.Equal(t, okAB, okBA)
			assert.Equal(t, ab, ba, "%s+%s", a, b)
		}
	}

	effect, _ := CombinationEffect(StripeH, StripeV)
	assert.Equal(t, EffectRowAndColumn, effect)
	effect, _ = CombinationEffect(Bomb, StripeV)
	assert.Equal(t, EffectBands, effect)
	effect, _ = CombinationEffect(Bomb, Rainbow)
	assert.Equal(t, EffectTransform, effect)

	_, ok := CombinationEffect(Red, Bomb)
	assert.False(t, ok)
}

func TestMostCommonNeighborColorTieBreak(t *testing.T) {
	// Around (1,1): three red, three green, two blue. Green is first seen
	// after red, so it wins the tie.
	g := gridFrom(baseKinds(3, 3))
	color, ok := MostCommonNeighborColor(g, Coord{1, 1})
	assert.True(t, ok)
	assert.Equal(t, Green, color)
}

func TestMostCommonNeighborColorMajority(t *testing.T) {
	g := gridFrom(parseLayout(t,
		"BBR",
		"B@G",
		"YGR",
	))
	color, ok := MostCommonNeighborColor(g, Coord{1, 1})
	assert.True(t, ok)
	assert.Equal(t, Blue, color)
}

func TestRainbowWithoutOrdinaryNeighbors(t *testing.T) {
	g := gridFrom(parseLayout(t,
		"*H*",
		"V@*",
		"**H",
	))
	area := SoloArea(g, Rainbow, Coord{1, 1})
	assert.Equal(t, NewCoordSet(Coord{1, 1}), area)
}

func TestSoloAreaShapes(t *testing.T) {
	g := gridFrom(baseKinds(8, 10))

	assert.Len(t, SoloArea(g, StripeH, Coord{2, 3}), 8)
	assert.Len(t, SoloArea(g, StripeV, Coord{2, 3}), 10)
	assert.Len(t, SoloArea(g, Bomb, Coord{4, 4}), 9)
	assert.Len(t, SoloArea(g, Bomb, Coord{0, 0}), 4, "clipped at the corner")
	assert.Len(t, SoloArea(g, Red, Coord{0, 0}), 1)
}

func TestBandsAreaClipsAtEdge(t *testing.T) {
	g := gridFrom(baseKinds(8, 10))
	// Rows 0..1 and columns 0..1 only.
	assert.Len(t, bandsArea(g, Coord{0, 0}), 2*8+2*10-4)
}
