package board

import (
	crand "crypto/rand"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

const (
	DefaultWidth  = 8
	DefaultHeight = 10

	// MatchCellScore is awarded per cell cleared by an ordinary match.
	MatchCellScore = 10
	// SpecialCellScore is awarded per cell cleared by a special activation.
	SpecialCellScore = 20
)

type State int

const (
	IdleStable State = iota
	AwaitingProcessing
)

func (s State) String() string {
	if s == AwaitingProcessing {
		return "awaiting-processing"
	}
	return "idle-stable"
}

// PendingActivation records an accepted swap involving a special token. First
// moved From -> To, Second moved To -> From.
type PendingActivation struct {
	From, To      Coord
	First, Second *Token
}

type SelectResult struct {
	// NeedsProcessing is set when a swap was accepted and animation is pending.
	NeedsProcessing bool
	// Swapped is set whenever a swap was attempted, accepted or not.
	Swapped bool
}

type ActivationResult struct {
	Activated bool
	Score     int
	Cleared   int
}

type MatchResult struct {
	Score            int
	Changed          bool
	Matched          bool
	SpecialActivated bool
}

// TickOutcome is what one Resolve call did.
type TickOutcome struct {
	Score     int
	Activated bool
	Matched   bool
	Busy      bool
	Settled   bool
}

// Board owns the grid and runs selection, swap validation, match and
// activation resolution, and refill. It is not safe for concurrent use.
type Board struct {
	grid   *Grid
	rng    RandSource
	logger *log.Logger

	selected    *Coord
	swappedInto *Coord
	pending     *PendingActivation
	state       State
}

type Option func(*Board)

func WithRand(rng RandSource) Option {
	return func(b *Board) {
		b.rng = rng
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(b *Board) {
		b.logger = logger
	}
}

func newSeededRand() RandSource {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}

func newBoard(opts []Option) *Board {
	b := &Board{}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = newSeededRand()
	}
	if b.logger == nil {
		b.logger = log.Default().WithPrefix("board")
	}
	return b
}

// NewBoard builds a stable width × height board. Non-positive sizes fall back
// to the defaults.
func NewBoard(width, height int, opts ...Option) *Board {
	b := newBoard(opts)
	b.Initialize(width, height)
	return b
}

// NewBoardFromKinds builds a board with exactly the given layout, indexed
// [y][x], without stabilizing it. Special kinds keep themselves as original
// color; cells holding an unknown kind get a random ordinary token.
func NewBoardFromKinds(kinds [][]TokenKind, opts ...Option) *Board {
	b := newBoard(opts)
	height := len(kinds)
	width := 0
	if height > 0 {
		width = len(kinds[0])
	}
	b.grid = NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := Coord{X: x, Y: y}
			if x >= len(kinds[y]) || kinds[y][x] < Red || kinds[y][x] > Rainbow {
				b.grid.Set(c, NewRandomToken(b.rng, c))
				continue
			}
			kind := kinds[y][x]
			b.grid.Set(c, newToken(kind, kind, c))
		}
	}
	b.state = IdleStable
	return b
}

// Initialize fills a fresh grid with random tokens and clears and refills it
// until no match remains.
func (b *Board) Initialize(width, height int) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	b.grid = NewGrid(width, height)
	b.selected = nil
	b.swappedInto = nil
	b.pending = nil
	b.state = IdleStable

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := Coord{X: x, Y: y}
			b.grid.Set(c, NewRandomToken(b.rng, c))
		}
	}

	for passes := 0; ; passes++ {
		matches := FindAllMatches(b.grid)
		if len(matches) == 0 {
			b.logger.Debug("board initialized", "width", width, "height", height, "passes", passes)
			break
		}
		for _, group := range matches {
			b.grid.Clear(group.Set())
		}
		b.fillEmptySpaces()
	}
	b.settle()
}

// settle drops all animation state so every token rests in its cell.
func (b *Board) settle() {
	b.grid.forEach(func(c Coord, token *Token) {
		*token = Token{
			Kind:          token.Kind,
			OriginalColor: token.OriginalColor,
			PosX:          float64(c.X),
			PosY:          float64(c.Y),
			target:        c,
			home:          c,
		}
	})
}

func (b *Board) Width() int  { return b.grid.Width }
func (b *Board) Height() int { return b.grid.Height }
func (b *Board) State() State {
	return b.state
}

// TokenAt returns the token at (x, y), or nil when out of range or empty.
func (b *Board) TokenAt(x, y int) *Token {
	return b.grid.Get(Coord{X: x, Y: y})
}

func (b *Board) KindAt(x, y int) (TokenKind, bool) {
	token := b.TokenAt(x, y)
	if token == nil {
		return 0, false
	}
	return token.Kind, true
}

// Kinds is a snapshot of every cell's kind, indexed [y][x].
func (b *Board) Kinds() [][]TokenKind {
	return b.grid.Kinds()
}

func (b *Board) Selected() (Coord, bool) {
	if b.selected == nil {
		return Coord{}, false
	}
	return *b.selected, true
}

func (b *Board) HasPendingActivation() bool {
	return b.pending != nil
}

func (b *Board) FindAllMatches() []MatchGroup {
	return FindAllMatches(b.grid)
}

// IsStable reports a full grid without any match.
func (b *Board) IsStable() bool {
	return b.grid.IsFull() && len(FindAllMatches(b.grid)) == 0
}

// Select is the input entry point. Clicks are dropped while anything animates.
func (b *Board) Select(x, y int) SelectResult {
	if b.IsAnimating() {
		return SelectResult{}
	}

	at := Coord{X: x, Y: y}
	token := b.grid.Get(at)
	if token == nil {
		return SelectResult{}
	}

	if b.selected == nil {
		token.Selected = true
		b.selected = &at
		return SelectResult{}
	}

	prev := *b.selected
	if prev == at {
		token.Selected = false
		b.selected = nil
		return SelectResult{}
	}

	prevToken := b.grid.Get(prev)
	if !IsAdjacent(prev, at) {
		if prevToken != nil {
			prevToken.Selected = false
		}
		token.Selected = true
		b.selected = &at
		return SelectResult{}
	}

	b.swappedInto = &at
	swapped := b.Swap(prev.X, prev.Y, x, y)
	if prevToken != nil {
		prevToken.Selected = false
	}
	b.selected = nil
	if !swapped {
		b.swappedInto = nil
	}

	return SelectResult{NeedsProcessing: swapped, Swapped: true}
}

// Swap exchanges two orthogonally adjacent cells and keeps the exchange only
// when it forms a match or involves a special token.
func (b *Board) Swap(x1, y1, x2, y2 int) bool {
	from, to := Coord{X: x1, Y: y1}, Coord{X: x2, Y: y2}
	if !IsAdjacent(from, to) {
		return false
	}
	first, second := b.grid.Get(from), b.grid.Get(to)
	if first == nil || second == nil {
		return false
	}

	b.grid.swap(from, to)

	matches := FindAllMatches(b.grid)
	specialSwap := first.IsSpecial() && second.IsSpecial()
	soloActivation := first.IsSpecial() != second.IsSpecial()

	if len(matches) == 0 && !specialSwap && !soloActivation {
		b.grid.swap(from, to)
		first.beginSwapBack(from, to)
		second.beginSwapBack(to, from)
		b.logger.Debug("swap rejected", "from", from, "to", to)
		return false
	}

	first.beginSwap(to)
	second.beginSwap(from)

	if specialSwap || soloActivation {
		b.pending = &PendingActivation{From: from, To: to, First: first, Second: second}
	}
	b.state = AwaitingProcessing
	return true
}

// HandlePendingSpecialActivation fires a deferred special swap, refills, and
// reports its score.
func (b *Board) HandlePendingSpecialActivation() ActivationResult {
	if b.pending == nil {
		return ActivationResult{}
	}
	p := *b.pending
	b.pending = nil

	area := make(CoordSet)
	switch {
	case p.First.IsSpecial() && p.Second.IsSpecial():
		area.Add(p.To)
		area.Add(p.From)
		area.AddAll(CombinationArea(b.grid, p.First, p.Second, p.To))
	case p.First.IsSpecial():
		area.Add(p.From)
		area.AddAll(swapSoloArea(b.grid, p.First, p.To, p.Second.Kind))
	case p.Second.IsSpecial():
		area.Add(p.To)
		area.AddAll(swapSoloArea(b.grid, p.Second, p.From, p.First.Kind))
	default:
		return ActivationResult{}
	}

	cleared := b.grid.Clear(area)
	b.fillEmptySpaces()
	b.state = AwaitingProcessing

	b.logger.Debug("special activated", "first", p.First.Kind, "second", p.Second.Kind, "at", p.To, "cleared", cleared)
	return ActivationResult{Activated: true, Score: cleared * SpecialCellScore, Cleared: cleared}
}

// ProcessMatches clears every current match group, fires specials caught in
// the removal set, spawns new specials and refills.
func (b *Board) ProcessMatches() MatchResult {
	groups := FindAllMatches(b.grid)
	if len(groups) == 0 {
		b.swappedInto = nil
		if b.pending == nil {
			b.state = IdleStable
		}
		return MatchResult{}
	}

	matchCells := make(CoordSet)
	for _, group := range groups {
		matchCells.AddAll(group.Set())
	}

	activationCells, fired := b.chainActivations(matchCells)
	spawns := CreateSpecialTokens(b.grid, groups, b.swappedInto)
	for _, spawn := range spawns {
		matchCells.Remove(spawn.At)
		activationCells.Remove(spawn.At)
	}

	score := len(matchCells)*MatchCellScore + len(activationCells)*SpecialCellScore

	b.grid.Clear(matchCells)
	b.grid.Clear(activationCells)
	for _, spawn := range spawns {
		b.grid.Set(spawn.At, spawn.Token)
	}
	b.fillEmptySpaces()
	b.swappedInto = nil
	b.state = AwaitingProcessing

	return MatchResult{Score: score, Changed: true, Matched: true, SpecialActivated: fired > 0}
}

// chainActivations fires every special token inside removal and, in turn,
// every special token its effect reaches. It returns the cells cleared by
// those effects that were not already in removal.
func (b *Board) chainActivations(removal CoordSet) (CoordSet, int) {
	cleared := make(CoordSet)
	fired := make(CoordSet)
	var queue []Coord
	for _, c := range removal.Sorted() {
		if token := b.grid.Get(c); token != nil && token.IsSpecial() {
			queue = append(queue, c)
		}
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if fired.Has(c) {
			continue
		}
		fired.Add(c)

		token := b.grid.Get(c)
		for _, hit := range SoloArea(b.grid, token.Kind, c).Sorted() {
			if removal.Has(hit) || cleared.Has(hit) {
				continue
			}
			cleared.Add(hit)
			if next := b.grid.Get(hit); next != nil && next.IsSpecial() && !fired.Has(hit) {
				queue = append(queue, hit)
			}
		}
	}
	return cleared, len(fired)
}

// Resolve performs one unit of pipeline work once nothing animates: a pending
// special activation if there is one, otherwise match resolution.
func (b *Board) Resolve() TickOutcome {
	if b.IsAnimating() {
		return TickOutcome{Busy: true}
	}
	if b.pending != nil {
		result := b.HandlePendingSpecialActivation()
		return TickOutcome{Score: result.Score, Activated: result.Activated}
	}
	result := b.ProcessMatches()
	return TickOutcome{
		Score:     result.Score,
		Activated: result.SpecialActivated,
		Matched:   result.Matched,
		Settled:   !result.Matched,
	}
}

// Update advances every token's animation and reports whether any is moving.
func (b *Board) Update(dt float64) bool {
	animating := false
	b.grid.forEach(func(_ Coord, token *Token) {
		if token.Update(dt) {
			animating = true
		}
	})
	return animating
}

func (b *Board) IsAnimating() bool {
	animating := false
	b.grid.forEach(func(_ Coord, token *Token) {
		if token.IsAnimating() {
			animating = true
		}
	})
	return animating
}
