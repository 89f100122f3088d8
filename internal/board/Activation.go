package board

// Effect describes what a special-special swap clears around its destination.
type Effect int

const (
	EffectNone Effect = iota
	EffectRowAndColumn
	EffectBlock9x9
	EffectBands
	EffectClearAll
	EffectTransform
)

func (e Effect) String() string {
	switch e {
	case EffectRowAndColumn:
		return "row+column"
	case EffectBlock9x9:
		return "9x9"
	case EffectBands:
		return "3 rows+3 columns"
	case EffectClearAll:
		return "all"
	case EffectTransform:
		return "transform"
	}
	return "none"
}

type kindClass int

const (
	classStripe kindClass = iota
	classBomb
	classRainbow
)

func classOf(kind TokenKind) (kindClass, bool) {
	switch kind {
	case StripeH, StripeV:
		return classStripe, true
	case Bomb:
		return classBomb, true
	case Rainbow:
		return classRainbow, true
	}
	return 0, false
}

// pairKey is an unordered pair of kind classes, stored with a <= b.
type pairKey struct {
	a, b kindClass
}

func newPairKey(a, b kindClass) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

var combinationTable = map[pairKey]Effect{
	newPairKey(classStripe, classStripe):   EffectRowAndColumn,
	newPairKey(classBomb, classBomb):       EffectBlock9x9,
	newPairKey(classBomb, classStripe):     EffectBands,
	newPairKey(classRainbow, classRainbow): EffectClearAll,
	newPairKey(classRainbow, classStripe):  EffectTransform,
	newPairKey(classRainbow, classBomb):    EffectTransform,
}

// CombinationEffect looks up the effect of swapping two special kinds together.
func CombinationEffect(a, b TokenKind) (Effect, bool) {
	ca, okA := classOf(a)
	cb, okB := classOf(b)
	if !okA || !okB {
		return EffectNone, false
	}
	effect, ok := combinationTable[newPairKey(ca, cb)]
	return effect, ok
}

func rowArea(g *Grid, y int) CoordSet {
	set := make(CoordSet, g.Width)
	if y < 0 || y >= g.Height {
		return set
	}
	for x := 0; x < g.Width; x++ {
		set.Add(Coord{X: x, Y: y})
	}
	return set
}

func columnArea(g *Grid, x int) CoordSet {
	set := make(CoordSet, g.Height)
	if x < 0 || x >= g.Width {
		return set
	}
	for y := 0; y < g.Height; y++ {
		set.Add(Coord{X: x, Y: y})
	}
	return set
}

// blockArea is the (2r+1)² square centered on c, clipped to the grid.
func blockArea(g *Grid, c Coord, radius int) CoordSet {
	set := make(CoordSet)
	for x := max(0, c.X-radius); x < min(g.Width, c.X+radius+1); x++ {
		for y := max(0, c.Y-radius); y < min(g.Height, c.Y+radius+1); y++ {
			set.Add(Coord{X: x, Y: y})
		}
	}
	return set
}

// bandsArea is three full rows and three full columns centered on c.
func bandsArea(g *Grid, c Coord) CoordSet {
	set := make(CoordSet)
	for i := -1; i <= 1; i++ {
		set.AddAll(rowArea(g, c.Y+i))
		set.AddAll(columnArea(g, c.X+i))
	}
	return set
}

func allArea(g *Grid) CoordSet {
	set := make(CoordSet, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			set.Add(Coord{X: x, Y: y})
		}
	}
	return set
}

// colorArea holds every ordinary token of the given color.
func colorArea(g *Grid, color TokenKind) CoordSet {
	set := make(CoordSet)
	g.forEach(func(c Coord, token *Token) {
		if token.Kind == color && !token.IsSpecial() {
			set.Add(c)
		}
	})
	return set
}

// MostCommonNeighborColor returns the most frequent ordinary color among the
// eight cells around c. Ties go to the color first seen last.
func MostCommonNeighborColor(g *Grid, c Coord) (TokenKind, bool) {
	counts := make(map[TokenKind]int)
	var order []TokenKind
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			token := g.Get(Coord{X: c.X + dx, Y: c.Y + dy})
			if token == nil || token.IsSpecial() {
				continue
			}
			if counts[token.Kind] == 0 {
				order = append(order, token.Kind)
			}
			counts[token.Kind]++
		}
	}
	if len(order) == 0 {
		return 0, false
	}
	best := order[0]
	for _, kind := range order[1:] {
		if counts[kind] >= counts[best] {
			best = kind
		}
	}
	return best, true
}

// SoloArea is the set of cells a single special token of kind clears when it
// fires at c, including c itself. A rainbow fired by a match targets the most
// common neighboring color.
func SoloArea(g *Grid, kind TokenKind, c Coord) CoordSet {
	var set CoordSet
	switch kind {
	case StripeH:
		set = rowArea(g, c.Y)
	case StripeV:
		set = columnArea(g, c.X)
	case Bomb:
		set = blockArea(g, c, 1)
	case Rainbow:
		set = make(CoordSet)
		if color, ok := MostCommonNeighborColor(g, c); ok {
			set = colorArea(g, color)
		}
	default:
		set = make(CoordSet)
	}
	set.Add(c)
	return set
}

// swapSoloArea fires special at c after it was swapped with an ordinary token
// of partnerColor. A swapped rainbow targets the partner's color.
func swapSoloArea(g *Grid, special *Token, c Coord, partnerColor TokenKind) CoordSet {
	if special.Kind != Rainbow {
		return SoloArea(g, special.Kind, c)
	}
	set := colorArea(g, partnerColor)
	set.Add(c)
	return set
}

// CombinationArea resolves a special-special swap landing at dest. The two
// swapped cells themselves are not included.
func CombinationArea(g *Grid, first, second *Token, dest Coord) CoordSet {
	effect, ok := CombinationEffect(first.Kind, second.Kind)
	if !ok {
		return make(CoordSet)
	}

	switch effect {
	case EffectRowAndColumn:
		set := rowArea(g, dest.Y)
		set.AddAll(columnArea(g, dest.X))
		return set
	case EffectBlock9x9:
		return blockArea(g, dest, 4)
	case EffectBands:
		return bandsArea(g, dest)
	case EffectClearAll:
		return allArea(g)
	case EffectTransform:
		other := first
		if other.Kind == Rainbow {
			other = second
		}
		return transformArea(g, other.Kind, other.OriginalColor)
	}
	return make(CoordSet)
}

// transformArea turns every ordinary token of color into a copy of kind and
// fires each copy where it stands.
func transformArea(g *Grid, kind TokenKind, color TokenKind) CoordSet {
	set := make(CoordSet)
	for c := range colorArea(g, color) {
		set.AddAll(SoloArea(g, kind, c))
	}
	return set
}
