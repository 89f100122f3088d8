package board

import "sort"

// Coord is a zero-based grid position. X grows rightward, Y grows downward.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// IsAdjacent reports whether a and b share an edge.
func IsAdjacent(a, b Coord) bool {
	return GetManhattanDistance(a, b) == 1
}

func GetManhattanDistance(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CoordSet is an unordered set of grid positions.
type CoordSet map[Coord]struct{}

func NewCoordSet(coords ...Coord) CoordSet {
	set := make(CoordSet, len(coords))
	for _, c := range coords {
		set.Add(c)
	}
	return set
}

func (s CoordSet) Add(c Coord) {
	s[c] = struct{}{}
}

func (s CoordSet) Remove(c Coord) {
	delete(s, c)
}

func (s CoordSet) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

// AddAll merges other into s.
func (s CoordSet) AddAll(other CoordSet) {
	for c := range other {
		s[c] = struct{}{}
	}
}

// Intersects reports whether s and other share at least one coordinate.
func (s CoordSet) Intersects(other CoordSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for c := range small {
		if large.Has(c) {
			return true
		}
	}
	return false
}

// Sorted returns the coordinates in row-major order.
func (s CoordSet) Sorted() []Coord {
	out := make([]Coord, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sortCoords(out)
	return out
}

func sortCoords(coords []Coord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
}
