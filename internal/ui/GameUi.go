package ui

import (
	"math"
	"strings"

	"github.com/Mshel/sshcandy/internal/board"
	"github.com/Mshel/sshcandy/internal/game"
	"github.com/charmbracelet/lipgloss"
)

// Each board cell is drawn as a cellWidth × cellHeight block of terminal cells,
// so tokens can be placed between rows while they fall.
const (
	cellWidth  = 4
	cellHeight = 2
)

var (
	voidColor     = lipgloss.Color("234")
	cursorColor   = lipgloss.Color("238")
	selectedColor = lipgloss.Color("244")
	hintColor     = lipgloss.Color("22")

	tokenGlyphs = map[board.TokenKind]string{
		board.Red:     "●",
		board.Green:   "◆",
		board.Blue:    "■",
		board.Yellow:  "★",
		board.StripeH: "═",
		board.StripeV: "║",
		board.Bomb:    "✸",
		board.Rainbow: "✪",
	}

	tokenColors = map[board.TokenKind]lipgloss.Color{
		board.Red:     lipgloss.Color("196"),
		board.Green:   lipgloss.Color("46"),
		board.Blue:    lipgloss.Color("33"),
		board.Yellow:  lipgloss.Color("226"),
		board.Rainbow: lipgloss.Color("201"),
	}
)

// tokenColor paints stripes and bombs in the color of the match that made them.
func tokenColor(kind, originalColor board.TokenKind) lipgloss.Color {
	if c, ok := tokenColors[kind]; ok {
		return c
	}
	if c, ok := tokenColors[originalColor]; ok {
		return c
	}
	return lipgloss.Color("15")
}

type canvasCell struct {
	ch   string
	fg   lipgloss.Color
	bg   lipgloss.Color
	bold bool
}

type boardCanvas struct {
	cells [][]canvasCell
}

func newBoardCanvas(width, height int) *boardCanvas {
	cells := make([][]canvasCell, height*cellHeight)
	for r := range cells {
		cells[r] = make([]canvasCell, width*cellWidth)
		for c := range cells[r] {
			cells[r][c] = canvasCell{ch: " ", bg: voidColor}
		}
	}
	return &boardCanvas{cells: cells}
}

func (bc *boardCanvas) at(row, col int) *canvasCell {
	if row < 0 || row >= len(bc.cells) || col < 0 || col >= len(bc.cells[row]) {
		return nil
	}
	return &bc.cells[row][col]
}

// shade sets the background of a whole board cell.
func (bc *boardCanvas) shade(c board.Coord, bg lipgloss.Color) {
	for r := 0; r < cellHeight; r++ {
		for col := 0; col < cellWidth; col++ {
			if cell := bc.at(c.Y*cellHeight+r, c.X*cellWidth+col); cell != nil {
				cell.bg = bg
			}
		}
	}
}

// drawToken places a token at its interpolated position, clipped to the board.
func (bc *boardCanvas) drawToken(tv game.TokenView) {
	top := int(math.Round(tv.Y * cellHeight))
	left := int(math.Round(tv.X * cellWidth))
	glyph := tokenGlyphs[tv.Kind]
	fg := tokenColor(tv.Kind, tv.OriginalColor)

	for _, col := range []int{left + 1, left + 2} {
		if cell := bc.at(top, col); cell != nil {
			cell.ch = glyph
			cell.fg = fg
			cell.bold = tv.Kind.IsSpecial()
		}
	}
	if tv.Kind.IsStripe() || tv.Kind == board.Rainbow {
		if cell := bc.at(top+1, left+1); cell != nil {
			cell.ch = glyph
			cell.fg = fg
		}
	}
}

func (bc *boardCanvas) String() string {
	var sb strings.Builder
	for r, row := range bc.cells {
		for _, cell := range row {
			style := lipgloss.NewStyle().Foreground(cell.fg).Background(cell.bg).Bold(cell.bold)
			sb.WriteString(style.Render(cell.ch))
		}
		if r < len(bc.cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderBoard draws a snapshot with the cursor, selection and hint highlighted.
func renderBoard(view game.BoardView, cursor *board.Coord) string {
	canvas := newBoardCanvas(view.Width, view.Height)

	if view.Hint != nil {
		canvas.shade(view.Hint.From, hintColor)
		canvas.shade(view.Hint.To, hintColor)
	}
	if cursor != nil {
		canvas.shade(*cursor, cursorColor)
	}
	if view.Selected != nil {
		canvas.shade(*view.Selected, selectedColor)
	}
	for _, tv := range view.Tokens {
		canvas.drawToken(tv)
	}
	return canvas.String()
}

// cellAt maps a mouse position inside the bordered board to a grid cell.
func cellAt(x, y, width, height int) (board.Coord, bool) {
	// one column and one row of border
	x, y = x-1, y-1
	if x < 0 || y < 0 {
		return board.Coord{}, false
	}
	c := board.Coord{X: x / cellWidth, Y: y / cellHeight}
	if c.X >= width || c.Y >= height {
		return board.Coord{}, false
	}
	return c, true
}
