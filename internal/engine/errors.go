package engine

import (
	"errors"

	"github.com/dshills/keyedit/internal/engine/buffer"
)

// Errors returned by engine operations.
//
// Every operation that returns one of these has left the buffer, cursor,
// clipboard and history exactly as they were.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid buffer range.
	ErrOffsetOutOfRange = buffer.ErrOffsetOutOfRange

	// ErrRangeInvalid indicates an invalid copy range.
	ErrRangeInvalid = buffer.ErrRangeInvalid

	// ErrInvalidLength indicates a negative delete length.
	ErrInvalidLength = errors.New("invalid length")

	// ErrClipboardEmpty indicates a paste with nothing copied.
	ErrClipboardEmpty = errors.New("clipboard is empty")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrStaleHistory indicates a history entry no longer matches the content.
	ErrStaleHistory = errors.New("history entry does not match content")
)
