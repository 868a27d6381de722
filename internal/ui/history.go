package ui

import "github.com/piwi3910/WardView/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the hospital state before a status edit.
type Snapshot struct {
	Hospital model.Hospital
	Label    string // Human-readable description (e.g. "Bed bed-0-3 → Cleaning")
}

// History manages undo/redo stacks of hospital snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// This should be called before the edit is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot and pushes current onto the redo
// stack, labelled like the popped one when current has no label. It
// returns false when there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	if current.Label == "" {
		current.Label = last.Label
	}
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	if current.Label == "" {
		current.Label = last.Label
	}
	h.undoStack = append(h.undoStack, current)
	return last, true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// MakeSnapshot captures h with a label. The bed and patient slices are
// copied; updaters never write through them, so element pointers are
// shared safely.
func MakeSnapshot(h model.Hospital, label string) Snapshot {
	return Snapshot{
		Hospital: model.Hospital{
			Floors:   h.Floors,
			Beds:     append([]model.Bed(nil), h.Beds...),
			Patients: append([]model.Patient(nil), h.Patients...),
			Staff:    h.Staff,
		},
		Label: label,
	}
}
