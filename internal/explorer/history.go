package explorer

import (
	"errors"
	"sync"
	"time"

	rosetree "github.com/tpoulsen/rose-tree"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// snapshot is one undoable state: the zipper as it was before an edit, plus
// a label describing the edit that replaced it. Zippers are immutable
// values, so a snapshot is an O(1) copy.
type snapshot struct {
	zipper    rosetree.Zipper[any]
	label     string
	timestamp time.Time
}

// EntryInfo describes one history entry.
type EntryInfo struct {
	Label     string
	Timestamp time.Time
}

// History manages undo/redo snapshots of the explorer's zipper.
type History struct {
	mu sync.Mutex

	undoStack []snapshot
	redoStack []snapshot

	maxEntries int
}

// NewHistory creates a new history with the given snapshot cap. A cap of
// zero or less selects the default of 1000.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &History{maxEntries: maxEntries}
}

// Push records the pre-edit zipper under the given label. Any redo state is
// discarded; the oldest entries are dropped past the cap.
func (h *History) Push(label string, z rosetree.Zipper[any]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, snapshot{
		zipper:    z,
		label:     label,
		timestamp: time.Now(),
	})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo trades the current zipper for the most recent snapshot. The current
// state moves onto the redo stack under the undone entry's label.
func (h *History) Undo(current rosetree.Zipper[any]) (rosetree.Zipper[any], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return rosetree.Zipper[any]{}, ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, snapshot{
		zipper:    current,
		label:     entry.label,
		timestamp: entry.timestamp,
	})
	return entry.zipper, nil
}

// Redo trades the current zipper for the most recently undone state.
func (h *History) Redo(current rosetree.Zipper[any]) (rosetree.Zipper[any], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return rosetree.Zipper[any]{}, ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, snapshot{
		zipper:    current,
		label:     entry.label,
		timestamp: entry.timestamp,
	})
	return entry.zipper, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo snapshots available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo snapshots available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// PeekUndo returns info about the next undo entry without removing it.
func (h *History) PeekUndo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return EntryInfo{}, false
	}
	entry := h.undoStack[len(h.undoStack)-1]
	return EntryInfo{Label: entry.label, Timestamp: entry.timestamp}, true
}

// Clear removes all undo/redo history, for example after a document reload.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
