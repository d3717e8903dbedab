package midi

// Virtual keyboard mapping for playing without hardware. The home row is
// one octave of white keys starting at middle C, with sharps on the row
// above, the usual virtual-piano arrangement.
var virtualNotes = map[rune]uint8{
	'a': 60, // C4
	'w': 61,
	's': 62,
	'e': 63,
	'd': 64,
	'f': 65,
	't': 66,
	'g': 67,
	'y': 68,
	'h': 69,
	'u': 70,
	'j': 71,
	'k': 72, // C5
	'o': 73,
	'l': 74,
	'p': 75,
	';': 76,
}

// VirtualNote maps a terminal rune to a device key number, if it is part of
// the virtual keyboard.
func VirtualNote(r rune) (uint8, bool) {
	n, ok := virtualNotes[r]
	return n, ok
}
