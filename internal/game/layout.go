package game

// KeyType distinguishes the two kinds of piano key.
type KeyType int

const (
	White KeyType = iota
	Black
)

// Key is one logical key of the static keyboard layout.
type Key struct {
	Index int
	Type  KeyType
	X     float64
}

// A 12-key octave: W B W B W W B W B W B W.
var keyOrder = [12]KeyType{
	White, Black, White, Black, White, White,
	Black, White, Black, White, Black, White,
}

// Layout is the static keyboard geometry, computed once per session.
type Layout struct {
	Keys []Key
}

// NewLayout builds an n-key layout. White keys advance a running offset by
// one unit each; a black key straddles the preceding white key boundary at
// offset - 0.5.
func NewLayout(n int) Layout {
	keys := make([]Key, n)
	whiteOffset := 0
	for i := 0; i < n; i++ {
		switch keyOrder[i%12] {
		case White:
			keys[i] = Key{Index: i, Type: White, X: float64(whiteOffset)}
			whiteOffset++
		case Black:
			keys[i] = Key{Index: i, Type: Black, X: float64(whiteOffset) - 0.5}
		}
	}
	return Layout{Keys: keys}
}

// Key returns the logical key at index i, or false if i is outside the
// keyboard.
func (l Layout) Key(i int) (Key, bool) {
	if i < 0 || i >= len(l.Keys) {
		return Key{}, false
	}
	return l.Keys[i], true
}

// OctaveOffset converts between logical and device key numbering. A device
// reports keys relative to its octave setting; adding the offset to a
// logical index yields the device key number.
func OctaveOffset(octave int) int {
	return (3 - octave) * 12
}
