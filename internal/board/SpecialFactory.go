package board

// SpecialSpawn is a special token the factory decided to place at At.
type SpecialSpawn struct {
	At    Coord
	Token *Token
}

// ClassifyGroup maps a merged match group to the special kind it produces.
//
//	T/L/plus shape, size >= 5 -> Bomb
//	size >= 5                 -> Rainbow
//	size == 4                 -> StripeH (spans several columns) or StripeV
//	size == 3                 -> nothing
func ClassifyGroup(group MatchGroup) (TokenKind, bool) {
	switch {
	case IsTOrLShape(group):
		return Bomb, true
	case len(group) >= 5:
		return Rainbow, true
	case len(group) == 4:
		xs, _ := axisCounts(group)
		if len(xs) > 1 {
			return StripeH, true
		}
		return StripeV, true
	}
	return 0, false
}

// IsTOrLShape reports whether group spans at least three rows and three columns.
func IsTOrLShape(group MatchGroup) bool {
	if len(group) < 5 {
		return false
	}
	xs, ys := axisCounts(group)
	return len(xs) >= 3 && len(ys) >= 3
}

// CenterOf picks where a special token spawns: the swapped-into cell when it is
// part of the group, the crossing cell of a T/L shape, or the middle of a run.
func CenterOf(group MatchGroup, swappedInto *Coord) Coord {
	if swappedInto != nil && group.Contains(*swappedInto) {
		return *swappedInto
	}
	if IsTOrLShape(group) {
		if c, ok := findIntersection(group); ok {
			return c
		}
	}
	return group[len(group)/2]
}

// findIntersection returns the smallest column and the smallest row that hold
// more than one cell of the group.
func findIntersection(group MatchGroup) (Coord, bool) {
	xs, ys := axisCounts(group)
	ix, iy := -1, -1
	for x, n := range xs {
		if n > 1 && (ix < 0 || x < ix) {
			ix = x
		}
	}
	for y, n := range ys {
		if n > 1 && (iy < 0 || y < iy) {
			iy = y
		}
	}
	if ix < 0 || iy < 0 {
		return Coord{}, false
	}
	return Coord{X: ix, Y: iy}, true
}

func axisCounts(group MatchGroup) (map[int]int, map[int]int) {
	xs := make(map[int]int)
	ys := make(map[int]int)
	for _, c := range group {
		xs[c.X]++
		ys[c.Y]++
	}
	return xs, ys
}

// CreateSpecialTokens decides the special tokens produced by groups. Colors are
// read from g, so it must run before any cell of the groups is cleared.
func CreateSpecialTokens(g *Grid, groups []MatchGroup, swappedInto *Coord) []SpecialSpawn {
	var spawns []SpecialSpawn
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		kind, ok := ClassifyGroup(group)
		if !ok {
			continue
		}
		source := g.Get(group[0])
		if source == nil {
			continue
		}
		center := CenterOf(group, swappedInto)
		spawns = append(spawns, SpecialSpawn{
			At:    center,
			Token: NewSpecialToken(kind, source.Kind, center),
		})
	}
	return spawns
}
