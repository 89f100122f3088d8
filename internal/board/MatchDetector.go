package board

import "sort"

// MatchGroup is one connected cluster of same-color ordinary tokens, in the
// order its runs were discovered.
type MatchGroup []Coord

func (m MatchGroup) Set() CoordSet {
	return NewCoordSet(m...)
}

func (m MatchGroup) Contains(c Coord) bool {
	for _, p := range m {
		if p == c {
			return true
		}
	}
	return false
}

// FindAllMatches scans every row and column for runs of three or more and
// merges crossing runs into one group each.
func FindAllMatches(g *Grid) []MatchGroup {
	runs := findLinearMatches(g, true)
	runs = append(runs, findLinearMatches(g, false)...)
	return MergeMatches(runs)
}

func findLinearMatches(g *Grid, horizontal bool) []MatchGroup {
	mainAxis, subAxis := g.Width, g.Height
	if !horizontal {
		mainAxis, subAxis = g.Height, g.Width
	}
	at := func(i, j int) Coord {
		if horizontal {
			return Coord{X: j, Y: i}
		}
		return Coord{X: i, Y: j}
	}

	var runs []MatchGroup
	for i := 0; i < subAxis; i++ {
		for j := 0; j < mainAxis-2; {
			first := g.Get(at(i, j))
			if first == nil || first.IsSpecial() {
				j++
				continue
			}

			run := MatchGroup{at(i, j)}
			for k := j + 1; k < mainAxis; k++ {
				next := g.Get(at(i, k))
				if next == nil || next.IsSpecial() || next.Kind != first.Kind {
					break
				}
				run = append(run, at(i, k))
			}

			if len(run) >= 3 {
				runs = append(runs, run)
				j += len(run)
			} else {
				j++
			}
		}
	}
	return runs
}

// MergeMatches unions runs that share a coordinate, transitively, until no two
// remaining groups intersect. Longer runs seed groups first.
func MergeMatches(runs []MatchGroup) []MatchGroup {
	if len(runs) == 0 {
		return nil
	}
	pending := make([]MatchGroup, len(runs))
	copy(pending, runs)
	sort.SliceStable(pending, func(i, j int) bool {
		return len(pending[i]) > len(pending[j])
	})

	var merged []MatchGroup
	for len(pending) > 0 {
		base := append(MatchGroup(nil), pending[0]...)
		baseSet := base.Set()
		pending = pending[1:]

		for i := 0; i < len(pending); {
			other := pending[i]
			if !baseSet.Intersects(other.Set()) {
				i++
				continue
			}
			for _, c := range other {
				if !baseSet.Has(c) {
					baseSet.Add(c)
					base = append(base, c)
				}
			}
			pending = append(pending[:i], pending[i+1:]...)
			i = 0
		}
		merged = append(merged, base)
	}
	return merged
}
