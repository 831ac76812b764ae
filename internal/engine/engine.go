package engine

import (
	"fmt"
	"sync"

	"github.com/dshills/keyedit/internal/engine/buffer"
	"github.com/dshills/keyedit/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Action is one recorded, invertible edit.
	Action = history.Action

	// ActionInfo describes a recorded edit for display.
	ActionInfo = history.ActionInfo
)

// EditBuffer is the editing engine for a single document.
// It owns the text, the cursor, a single-slot clipboard and the undo and
// redo stacks.
//
// Every method takes the same lock, so an EditBuffer may be shared between
// goroutines, but each operation is atomic with respect to all of its state.
type EditBuffer struct {
	mu sync.Mutex

	// Core components
	buf       *buffer.Buffer
	cursor    ByteOffset
	clipboard string
	undo      *history.Stack
	redo      *history.Stack

	// Configuration
	maxUndoEntries int
	undoablePaste  bool

	// Initialization
	initContent string
}

// New creates a new EditBuffer with the given options.
func New(opts ...Option) *EditBuffer {
	e := &EditBuffer{
		maxUndoEntries: DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.initContent != "" {
		e.buf = buffer.NewBufferFromString(e.initContent)
	} else {
		e.buf = buffer.NewBuffer()
	}
	e.initContent = ""

	e.undo = history.NewStack(e.maxUndoEntries)
	e.redo = history.NewStack(0)

	return e
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full document content.
func (e *EditBuffer) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Text()
}

// Len returns the document length in bytes.
func (e *EditBuffer) Len() ByteOffset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Len()
}

// Cursor returns the current cursor offset.
func (e *EditBuffer) Cursor() ByteOffset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Clipboard returns the most recently copied text.
func (e *EditBuffer) Clipboard() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clipboard
}

// Revision returns a counter that changes whenever the content changes.
func (e *EditBuffer) Revision() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Revision()
}

// ============================================================================
// Edit Operations
// ============================================================================

// Insert splices text into the document at the cursor.
// The cursor stays at the start of the inserted text. The edit is recorded
// even when text is empty.
func (e *EditBuffer) Insert(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// The cursor is always within [0, Len], so this cannot fail.
	_, _ = e.buf.Insert(e.cursor, text)
	e.record(history.NewInsertAction(e.cursor, text))
}

// Delete removes length bytes starting at the cursor.
// The cursor does not move.
func (e *EditBuffer) Delete(length int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if length < 0 {
		return ErrInvalidLength
	}
	if length > e.buf.Len()-e.cursor {
		return ErrOffsetOutOfRange
	}

	removed, err := e.buf.Delete(e.cursor, e.cursor+length)
	if err != nil {
		return fmt.Errorf("delete [%d,%d): %w", e.cursor, e.cursor+length, err)
	}
	e.record(history.NewDeleteAction(e.cursor, removed))
	return nil
}

// MoveCursor sets the cursor. Cursor moves are not recorded.
func (e *EditBuffer) MoveCursor(pos ByteOffset) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if pos < 0 || pos > e.buf.Len() {
		return ErrOffsetOutOfRange
	}
	e.cursor = pos
	return nil
}

// Copy places the text between start and end, both inclusive, on the
// clipboard. start must be strictly less than end.
func (e *EditBuffer) Copy(start, end ByteOffset) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if start < 0 || start >= end || end >= e.buf.Len() {
		return ErrRangeInvalid
	}
	text := e.buf.TextRange(start, end+1)
	if text == "" {
		return ErrRangeInvalid
	}
	e.clipboard = text
	return nil
}

// Paste moves the cursor to pos and inserts the clipboard there.
// The cursor stays at the start of the pasted text.
func (e *EditBuffer) Paste(pos ByteOffset) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clipboard == "" {
		return ErrClipboardEmpty
	}
	if pos < 0 || pos > e.buf.Len() {
		return ErrOffsetOutOfRange
	}

	e.cursor = pos
	_, _ = e.buf.Insert(pos, e.clipboard)
	if e.undoablePaste {
		e.record(history.NewInsertAction(pos, e.clipboard))
	}
	return nil
}

// Search returns the start offset of every occurrence of term, in
// ascending order. Matches do not overlap: scanning resumes after the end of
// each match. An empty term matches nothing.
func (e *EditBuffer) Search(term string) []ByteOffset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.searchLocked(term)
}

func (e *EditBuffer) searchLocked(term string) []ByteOffset {
	var positions []ByteOffset
	for i := e.buf.Index(term, 0); i >= 0; i = e.buf.Index(term, i+len(term)) {
		positions = append(positions, i)
	}
	return positions
}

// ReplaceAll replaces every occurrence of term with replacement and returns
// the number of replacements. It is a history checkpoint: the undo and redo
// stacks are cleared whether or not anything matched.
func (e *EditBuffer) ReplaceAll(term, replacement string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	positions := e.searchLocked(term)

	// Rightmost first so earlier offsets stay valid.
	for i := len(positions) - 1; i >= 0; i-- {
		p := positions[i]
		_, _ = e.buf.Replace(p, p+len(term), replacement)
	}

	if e.cursor > e.buf.Len() {
		e.cursor = e.buf.Len()
	}
	e.undo.Clear()
	e.redo.Clear()
	return len(positions)
}

// AppendLoaded appends text read from a file to the end of the document.
// Like ReplaceAll it is a history checkpoint. The cursor does not move.
func (e *EditBuffer) AppendLoaded(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.buf.Append(text)
	e.undo.Clear()
	e.redo.Clear()
}

// record pushes a new edit and invalidates the redo history.
func (e *EditBuffer) record(a history.Action) {
	e.undo.Push(a)
	e.redo.Clear()
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo reverses the most recent recorded edit and moves it to the redo
// stack. The cursor moves to the position of the edit.
//
// If the recorded edit no longer matches the content (an unrecorded paste
// shifted the text underneath it) the entry is dropped from both stacks and
// an error wrapping ErrStaleHistory is returned. The content is left
// untouched.
func (e *EditBuffer) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.undo.Pop()
	if !ok {
		return ErrNothingToUndo
	}

	if err := a.Invert().Apply(e.buf); err != nil {
		return fmt.Errorf("undo: %w: %v", ErrStaleHistory, err)
	}

	e.redo.Push(a)
	e.cursor = a.Position
	return nil
}

// Redo re-applies the most recently undone edit and moves it back to the
// undo stack. The cursor moves to the position of the edit.
//
// A stale entry is dropped from both stacks and an error wrapping
// ErrStaleHistory is returned, as with Undo.
func (e *EditBuffer) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.redo.Pop()
	if !ok {
		return ErrNothingToRedo
	}

	if err := a.Apply(e.buf); err != nil {
		return fmt.Errorf("redo: %w: %v", ErrStaleHistory, err)
	}

	e.undo.Push(a)
	e.cursor = a.Position
	return nil
}

// CanUndo returns true if undo is available.
func (e *EditBuffer) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.undo.IsEmpty()
}

// CanRedo returns true if redo is available.
func (e *EditBuffer) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.redo.IsEmpty()
}

// UndoCount returns the number of undo entries.
func (e *EditBuffer) UndoCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.undo.Len()
}

// RedoCount returns the number of redo entries.
func (e *EditBuffer) RedoCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.redo.Len()
}

// UndoInfo describes the undo entries, newest first.
func (e *EditBuffer) UndoInfo() []ActionInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.undo.Info()
}

// RedoInfo describes the redo entries, newest first.
func (e *EditBuffer) RedoInfo() []ActionInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.redo.Info()
}
