package diagram

import (
	"encoding/json"
	"fmt"
)

// MaxHistory is the number of snapshots kept before the oldest is evicted.
const MaxHistory = 50

// History is a linear undo/redo list of full document snapshots. Each
// snapshot is stored serialized, so later edits to a live document can
// never reach into it.
type History struct {
	entries [][]byte
	index   int
	limit   int
}

func NewHistory() *History {
	return &History{index: -1, limit: MaxHistory}
}

func (h *History) Len() int   { return len(h.entries) }
func (h *History) Index() int { return h.index }

func (h *History) CanUndo() bool { return h.index > 0 }
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

// Snapshot records doc as the newest entry. Entries after the current index
// are discarded first. When the list outgrows its limit the oldest entry is
// dropped and the index shifts down with it.
func (h *History) Snapshot(doc Document) error {
	data, err := json.Marshal(doc.Clone())
	if err != nil {
		return fmt.Errorf("%w: snapshot: %v", ErrSerialization, err)
	}

	if h.index < len(h.entries)-1 {
		h.entries = h.entries[:h.index+1]
	}
	h.entries = append(h.entries, data)
	h.index++

	if len(h.entries) > h.limit {
		h.entries = h.entries[1:]
		h.index--
	}
	return nil
}

// Undo steps back one snapshot and returns the document it holds. The
// index only moves once the snapshot has been decoded.
func (h *History) Undo() (Document, error) {
	if !h.CanUndo() {
		return Document{}, ErrNothingToUndo
	}
	doc, err := h.decode(h.index - 1)
	if err != nil {
		return Document{}, err
	}
	h.index--
	return doc, nil
}

// Redo steps forward one snapshot and returns the document it holds.
func (h *History) Redo() (Document, error) {
	if !h.CanRedo() {
		return Document{}, ErrNothingToRedo
	}
	doc, err := h.decode(h.index + 1)
	if err != nil {
		return Document{}, err
	}
	h.index++
	return doc, nil
}

// Current returns the snapshot the index points at.
func (h *History) Current() (Document, bool) {
	if h.index < 0 {
		return Document{}, false
	}
	doc, err := h.decode(h.index)
	if err != nil {
		return Document{}, false
	}
	return doc, true
}

func (h *History) decode(i int) (Document, error) {
	doc := NewDocument()
	if err := json.Unmarshal(h.entries[i], &doc); err != nil {
		return Document{}, fmt.Errorf("%w: snapshot %d: %v", ErrSerialization, i, err)
	}
	return doc, nil
}
