package board

import "slices"

// Boards is the ordered board collection of a project. Methods never modify
// the receiver; they return a new slice.
type Boards []Board

// Find returns the board with the given id.
func (bs Boards) Find(id string) (Board, bool) {
	for _, b := range bs {
		if b.ID == id {
			return b, true
		}
	}
	return Board{}, false
}

// Index returns the position of the board with the given id, or -1.
func (bs Boards) Index(id string) int {
	return slices.IndexFunc(bs, func(b Board) bool { return b.ID == id })
}

// Replace returns a new collection in which the board with the given id is
// replaced by fn's result. It reports false, returning bs unchanged, when no
// board has that id.
func (bs Boards) Replace(id string, fn func(Board) Board) (Boards, bool) {
	i := bs.Index(id)
	if i < 0 {
		return bs, false
	}
	out := slices.Clone(bs)
	next := fn(out[i].Clone())
	next.ID = bs[i].ID
	next.Type = bs[i].Type
	out[i] = next
	return out, true
}

// Update applies p to the board with the given id.
func (bs Boards) Update(id string, p Patch) (Boards, bool) {
	return bs.Replace(id, p.Apply)
}

// Remove returns a new collection without the board with the given id.
func (bs Boards) Remove(id string) (Boards, bool) {
	i := bs.Index(id)
	if i < 0 {
		return bs, false
	}
	out := make(Boards, 0, len(bs)-1)
	out = append(out, bs[:i]...)
	return append(out, bs[i+1:]...), true
}

// Append returns a new collection with b added at the end.
func (bs Boards) Append(b Board) Boards {
	out := make(Boards, len(bs), len(bs)+1)
	copy(out, bs)
	return append(out, b)
}

// Notes flattens the notes of every board accepted by keep, in board order.
func (bs Boards) Notes(keep func(Board) bool) []Note {
	var out []Note
	for _, b := range bs {
		if keep == nil || keep(b) {
			out = append(out, b.Notes...)
		}
	}
	return out
}

// UpdateNote applies p to one note of one board. It reports false when the
// board or note is missing or when the patch would mix note variants.
func (bs Boards) UpdateNote(boardID, noteID string, p NotePatch) (Boards, bool) {
	b, ok := bs.Find(boardID)
	if !ok {
		return bs, false
	}
	i := slices.IndexFunc(b.Notes, func(n Note) bool { return n.ID == noteID })
	if i < 0 {
		return bs, false
	}
	patched, ok := p.Apply(b.Notes[i])
	if !ok {
		return bs, false
	}
	notes := slices.Clone(b.Notes)
	notes[i] = patched
	return bs.Update(boardID, NotesPatch(notes))
}

// RemoveNote drops one note from one board.
func (bs Boards) RemoveNote(boardID, noteID string) (Boards, bool) {
	b, ok := bs.Find(boardID)
	if !ok {
		return bs, false
	}
	notes := slices.DeleteFunc(slices.Clone(b.Notes), func(n Note) bool { return n.ID == noteID })
	if len(notes) == len(b.Notes) {
		return bs, false
	}
	return bs.Update(boardID, NotesPatch(notes))
}

// AppendNote adds n at the end of one board's notes.
func (bs Boards) AppendNote(boardID string, n Note) (Boards, bool) {
	b, ok := bs.Find(boardID)
	if !ok {
		return bs, false
	}
	notes := append(slices.Clone(b.Notes), n)
	return bs.Update(boardID, NotesPatch(notes))
}
