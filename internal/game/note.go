package game

import "time"

// FallingNote is a live scene entity spawned from a TimelineItem.
type FallingNote struct {
	ID        uint64
	Scheduled time.Duration // the TimelineItem time that spawned it
	Key       int           // logical key at spawn
	Type      KeyType
	X         float64
	PositionY float64
}

// NoteArena holds the live falling notes, keyed by a stable integer id.
// Iteration follows insertion order.
type NoteArena struct {
	nextID uint64
	order  []uint64
	notes  map[uint64]*FallingNote
}

func NewNoteArena() *NoteArena {
	return &NoteArena{notes: make(map[uint64]*FallingNote)}
}

// Spawn inserts a new note at the top of the field and returns it.
func (a *NoteArena) Spawn(scheduled time.Duration, key int, typ KeyType, x, y float64) *FallingNote {
	a.nextID++
	n := &FallingNote{
		ID:        a.nextID,
		Scheduled: scheduled,
		Key:       key,
		Type:      typ,
		X:         x,
		PositionY: y,
	}
	a.order = append(a.order, n.ID)
	a.notes[n.ID] = n
	return n
}

// Remove despawns a note. Unknown ids are a no-op.
func (a *NoteArena) Remove(id uint64) {
	if _, ok := a.notes[id]; !ok {
		return
	}
	delete(a.notes, id)
	for i, oid := range a.order {
		if oid == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// All returns the live notes in insertion order. The slice is rebuilt per
// call; callers may remove notes while iterating it.
func (a *NoteArena) All() []*FallingNote {
	out := make([]*FallingNote, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.notes[id])
	}
	return out
}

func (a *NoteArena) Len() int {
	return len(a.order)
}

// Clear despawns everything. Ids are not reused.
func (a *NoteArena) Clear() {
	a.order = a.order[:0]
	a.notes = make(map[uint64]*FallingNote)
}
