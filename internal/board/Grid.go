package board

// RandSource is the slice of math/rand/v2.Rand the board needs, abstracted so
// tests can script token colors.
type RandSource interface {
	IntN(n int) int
}

// Grid is a fixed width × height array of optional tokens indexed [y][x].
type Grid struct {
	Width  int
	Height int
	cells  [][]*Token
}

func NewGrid(width, height int) *Grid {
	cells := make([][]*Token, height)
	for y := range cells {
		cells[y] = make([]*Token, width)
	}
	return &Grid{Width: width, Height: height, cells: cells}
}

func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Get returns the token at c, or nil when c is empty or out of range.
func (g *Grid) Get(c Coord) *Token {
	if !g.InBounds(c) {
		return nil
	}
	return g.cells[c.Y][c.X]
}

func (g *Grid) Set(c Coord, token *Token) {
	if g.InBounds(c) {
		g.cells[c.Y][c.X] = token
	}
}

// Clear empties every cell in set and returns how many held a token.
func (g *Grid) Clear(set CoordSet) int {
	cleared := 0
	for c := range set {
		if g.Get(c) != nil {
			g.cells[c.Y][c.X] = nil
			cleared++
		}
	}
	return cleared
}

func (g *Grid) swap(a, b Coord) {
	g.cells[a.Y][a.X], g.cells[b.Y][b.X] = g.cells[b.Y][b.X], g.cells[a.Y][a.X]
}

// Kinds is a copy of every cell's kind; empty cells report -1.
func (g *Grid) Kinds() [][]TokenKind {
	out := make([][]TokenKind, g.Height)
	for y := 0; y < g.Height; y++ {
		out[y] = make([]TokenKind, g.Width)
		for x := 0; x < g.Width; x++ {
			if token := g.cells[y][x]; token != nil {
				out[y][x] = token.Kind
			} else {
				out[y][x] = -1
			}
		}
	}
	return out
}

func (g *Grid) IsFull() bool {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.cells[y][x] == nil {
				return false
			}
		}
	}
	return true
}

// forEach visits every non-empty cell in row-major order.
func (g *Grid) forEach(fn func(c Coord, token *Token)) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if token := g.cells[y][x]; token != nil {
				fn(Coord{X: x, Y: y}, token)
			}
		}
	}
}
