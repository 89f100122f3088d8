package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyGroup(t *testing.T) {
	cases := []struct {
		name  string
		group MatchGroup
		kind  TokenKind
		ok    bool
	}{
		{"three", MatchGroup{{0, 0}, {1, 0}, {2, 0}}, 0, false},
		{"four horizontal", MatchGroup{{1, 0}, {2, 0}, {3, 0}, {4, 0}}, StripeH, true},
		{"four vertical", MatchGroup{{2, 1}, {2, 2}, {2, 3}, {2, 4}}, StripeV, true},
		{"five straight", MatchGroup{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}, Rainbow, true},
		{"T shape", MatchGroup{{1, 0}, {2, 0}, {3, 0}, {2, 1}, {2, 2}}, Bomb, true},
		{"L shape", MatchGroup{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}}, Bomb, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := ClassifyGroup(tc.group)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.kind, kind)
			}
		})
	}
}

func TestCenterOf(t *testing.T) {
	run := MatchGroup{{1, 0}, {2, 0}, {3, 0}, {4, 0}}
	assert.Equal(t, Coord{3, 0}, CenterOf(run, nil))

	inside := Coord{1, 0}
	assert.Equal(t, inside, CenterOf(run, &inside))

	outside := Coord{7, 7}
	assert.Equal(t, Coord{3, 0}, CenterOf(run, &outside))

	tShape := MatchGroup{{1, 0}, {2, 0}, {3, 0}, {2, 1}, {2, 2}}
	assert.Equal(t, Coord{2, 0}, CenterOf(tShape, nil))

	lShape := MatchGroup{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}}
	assert.Equal(t, Coord{0, 2}, CenterOf(lShape, nil))
}

func TestCreateSpecialTokensTakesGroupColor(t *testing.T) {
	g := gridFrom(baseKinds(8, 10))
	groups := []MatchGroup{
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 3}, {0, 4}, {0, 5}, {0, 6}},
	}

	spawns := CreateSpecialTokens(g, groups, nil)

	require.Len(t, spawns, 1)
	assert.Equal(t, Coord{0, 5}, spawns[0].At)
	assert.Equal(t, StripeV, spawns[0].Token.Kind)
	assert.Equal(t, g.Get(Coord{0, 3}).Kind, spawns[0].Token.OriginalColor)
	assert.False(t, spawns[0].Token.IsAnimating())
}

func TestNewSpecialTokenOriginalColor(t *testing.T) {
	assert.Equal(t, Blue, NewSpecialToken(Bomb, Blue, Coord{}).OriginalColor)
	assert.Equal(t, Bomb, NewSpecialToken(Bomb, StripeH, Coord{}).OriginalColor)
}
