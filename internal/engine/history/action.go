package history

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dshills/keyedit/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Kind identifies what an Action did to the buffer.
type Kind uint8

const (
	// KindInsert records text that was inserted.
	KindInsert Kind = iota
	// KindDelete records text that was removed.
	KindDelete
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Action is an immutable record of one invertible edit.
type Action struct {
	Kind     Kind
	Position ByteOffset
	Text     string

	// Timestamp is when the edit happened. It is informational only.
	Timestamp time.Time
}

// NewInsertAction creates an action for an insertion.
func NewInsertAction(pos ByteOffset, text string) Action {
	return Action{
		Kind:      KindInsert,
		Position:  pos,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewDeleteAction creates an action for a deletion.
// text is the content that was removed.
func NewDeleteAction(pos ByteOffset, text string) Action {
	return Action{
		Kind:      KindDelete,
		Position:  pos,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// Range returns the span the text occupies when present in the buffer.
func (a Action) Range() Range {
	return Range{Start: a.Position, End: a.Position + len(a.Text)}
}

// Invert returns the action that reverses this one.
func (a Action) Invert() Action {
	inv := a
	switch a.Kind {
	case KindInsert:
		inv.Kind = KindDelete
	case KindDelete:
		inv.Kind = KindInsert
	}
	return inv
}

// BytesDelta returns the change in document length caused by the action.
func (a Action) BytesDelta() int {
	if a.Kind == KindDelete {
		return -len(a.Text)
	}
	return len(a.Text)
}

// Apply performs the action against buf.
func (a Action) Apply(buf *buffer.Buffer) error {
	switch a.Kind {
	case KindInsert:
		if _, err := buf.Insert(a.Position, a.Text); err != nil {
			return fmt.Errorf("apply %s at %d: %w", a.Kind, a.Position, err)
		}
	case KindDelete:
		r := a.Range()
		if got := buf.TextRange(r.Start, r.End); got != a.Text {
			return fmt.Errorf("apply %s at %s: %w", a.Kind, r, buffer.ErrRangeInvalid)
		}
		if _, err := buf.Delete(r.Start, r.End); err != nil {
			return fmt.Errorf("apply %s at %s: %w", a.Kind, r, err)
		}
	default:
		return fmt.Errorf("apply: unknown action kind %d", a.Kind)
	}
	return nil
}

// Description returns a human-readable description.
func (a Action) Description() string {
	verb := "Insert"
	if a.Kind == KindDelete {
		verb = "Delete"
	}
	if len(a.Text) == 1 {
		if a.Text == "\n" {
			return verb + " newline"
		}
		if a.Text == "\t" {
			return verb + " tab"
		}
	}
	if utf8.RuneCountInString(a.Text) <= 20 {
		return fmt.Sprintf("%s %q", verb, a.Text)
	}
	return fmt.Sprintf("%s %d characters", verb, utf8.RuneCountInString(a.Text))
}

// ActionInfo provides read-only info about an action.
// Used for displaying undo/redo history to users.
type ActionInfo struct {
	Description string    // Human-readable description
	Timestamp   time.Time // When the edit occurred
	BytesDelta  int       // Positive for insertions, negative for deletions
}

// Info returns the display information for the action.
func (a Action) Info() ActionInfo {
	return ActionInfo{
		Description: a.Description(),
		Timestamp:   a.Timestamp,
		BytesDelta:  a.BytesDelta(),
	}
}
