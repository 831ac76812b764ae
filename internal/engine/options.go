package engine

// Default configuration values.
const (
	// DefaultMaxUndoEntries leaves the undo history unbounded.
	DefaultMaxUndoEntries = 0
)

// Option configures an EditBuffer during creation.
type Option func(*EditBuffer)

// WithContent sets the initial content.
// Initial content is not recorded in the undo history.
func WithContent(content string) Option {
	return func(e *EditBuffer) {
		e.initContent = content
	}
}

// WithMaxUndoEntries caps the number of undo history entries.
// Zero means unbounded.
func WithMaxUndoEntries(max int) Option {
	return func(e *EditBuffer) {
		if max >= 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithUndoablePaste records pastes in the undo history as insertions.
// By default pastes are not undoable.
func WithUndoablePaste(enabled bool) Option {
	return func(e *EditBuffer) {
		e.undoablePaste = enabled
	}
}
