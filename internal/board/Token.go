package board

import "math"

type TokenKind int

const (
	Red TokenKind = iota
	Green
	Blue
	Yellow
	StripeH
	StripeV
	Bomb
	Rainbow
)

// OrdinaryKinds are the interchangeable colors random tokens are drawn from.
var OrdinaryKinds = []TokenKind{Red, Green, Blue, Yellow}

var kindNames = map[TokenKind]string{
	Red:     "RED",
	Green:   "GREEN",
	Blue:    "BLUE",
	Yellow:  "YELLOW",
	StripeH: "STRIPE_H",
	StripeV: "STRIPE_V",
	Bomb:    "BOMB",
	Rainbow: "RAINBOW",
}

func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k TokenKind) IsSpecial() bool {
	return k == StripeH || k == StripeV || k == Bomb || k == Rainbow
}

func (k TokenKind) IsStripe() bool {
	return k == StripeH || k == StripeV
}

// Animation speeds in cells per second (500 and 800 px/s on a 70 px cell).
const (
	SwapSpeed = 500.0 / 70.0
	FallSpeed = 800.0 / 70.0
)

// Token is the occupant of a single grid cell. Besides its kind it carries the
// interpolated position renderers draw it at; the board only mutates that state
// through the Begin* helpers and Update.
type Token struct {
	Kind          TokenKind
	OriginalColor TokenKind

	PosX, PosY float64
	target     Coord
	home       Coord

	Selected     bool
	Swapping     bool
	SwappingBack bool
	Falling      bool
}

// NewRandomToken creates an ordinary token of a uniformly random color resting at cell.
func NewRandomToken(rng RandSource, cell Coord) *Token {
	kind := OrdinaryKinds[rng.IntN(len(OrdinaryKinds))]
	return newToken(kind, kind, cell)
}

// NewSpecialToken creates a special token. An originalColor that is itself
// special defaults to the token's own kind.
func NewSpecialToken(kind TokenKind, originalColor TokenKind, cell Coord) *Token {
	if originalColor.IsSpecial() && originalColor != kind {
		originalColor = kind
	}
	return newToken(kind, originalColor, cell)
}

func newToken(kind, originalColor TokenKind, cell Coord) *Token {
	return &Token{
		Kind:          kind,
		OriginalColor: originalColor,
		PosX:          float64(cell.X),
		PosY:          float64(cell.Y),
		target:        cell,
		home:          cell,
	}
}

func (t *Token) IsSpecial() bool {
	return t.Kind.IsSpecial()
}

// Cell is the grid cell the token is resting at or moving toward.
func (t *Token) Cell() Coord {
	return t.target
}

func (t *Token) IsAnimating() bool {
	return t.Swapping || t.SwappingBack || t.Falling
}

func (t *Token) beginSwap(to Coord) {
	t.target = to
	t.home = to
	t.Swapping = true
}

// beginSwapBack animates toward partner and then back to home without the
// token ever leaving its grid cell.
func (t *Token) beginSwapBack(home, partner Coord) {
	t.home = home
	t.target = partner
	t.SwappingBack = true
}

func (t *Token) beginFall(to Coord) {
	t.target = to
	t.home = to
	t.Falling = true
}

// Update advances in-flight animations by dt seconds and reports whether the
// token is still moving.
func (t *Token) Update(dt float64) bool {
	animating := false

	if t.Swapping || t.SwappingBack {
		step := SwapSpeed * dt
		dx := float64(t.target.X) - t.PosX
		dy := float64(t.target.Y) - t.PosY
		dist := math.Hypot(dx, dy)

		if dist < step {
			t.PosX = float64(t.target.X)
			t.PosY = float64(t.target.Y)
			if t.SwappingBack {
				t.SwappingBack = false
				t.target = t.home
				t.Swapping = t.home.X != int(t.PosX) || t.home.Y != int(t.PosY)
				animating = t.Swapping
			} else {
				t.Swapping = false
			}
		} else {
			t.PosX += dx / dist * step
			t.PosY += dy / dist * step
			animating = true
		}
	}

	if t.Falling {
		t.PosY += FallSpeed * dt
		if t.PosY >= float64(t.target.Y) {
			t.PosY = float64(t.target.Y)
			t.Falling = false
		}
		animating = true
	}

	return animating
}
