package main

// Snapshot is the serialized object list at one point in time. It is a value:
// restoring it always builds fresh objects, so nothing in the live scene can
// alias history.
type Snapshot []byte

// History is a linear undo/redo list with a cursor. Entries after the cursor
// are redo states.
type History struct {
	entries []Snapshot
	cursor  int
	limit   int
}

func NewHistory() *History {
	return &History{cursor: -1, limit: maxHistory}
}

// Commit drops any redo states, appends snap and moves the cursor onto it.
// When the list grows past the limit the oldest entry is evicted.
func (h *History) Commit(snap Snapshot) {
	if h.cursor < len(h.entries)-1 {
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, snap)
	h.cursor++

	if len(h.entries) > h.limit {
		h.entries = append(h.entries[:0:0], h.entries[1:]...)
		h.cursor--
	}
}

// Undo steps back one entry. It returns false at the first entry.
func (h *History) Undo() (Snapshot, bool) {
	if h.cursor <= 0 {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Redo steps forward one entry. It returns false at the last entry.
func (h *History) Redo() (Snapshot, bool) {
	if h.cursor >= len(h.entries)-1 {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Current is the entry under the cursor, the state the scene was last
// committed in.
func (h *History) Current() (Snapshot, bool) {
	if h.cursor < 0 {
		return nil, false
	}
	return h.entries[h.cursor], true
}

func (h *History) Reset() {
	h.entries = nil
	h.cursor = -1
}

func (h *History) Len() int      { return len(h.entries) }
func (h *History) Cursor() int   { return h.cursor }
func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }
