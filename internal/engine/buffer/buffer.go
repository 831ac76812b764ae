package buffer

import (
	"bytes"
	"errors"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Buffer holds the document content as a contiguous byte slice.
type Buffer struct {
	data     []byte
	revision uint64
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string) *Buffer {
	return &Buffer{data: []byte(s)}
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return string(b.data)
}

// TextRange returns text in the given byte range.
// An invalid range yields the empty string.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	if !NewRange(start, end).Within(len(b.data)) {
		return ""
	}
	return string(b.data[start:end])
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	return len(b.data)
}

// Revision returns a counter that increases on every mutation.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// Index returns the offset of the first occurrence of term at or after from,
// or -1 if there is none. An empty term never matches.
func (b *Buffer) Index(term string, from ByteOffset) ByteOffset {
	if term == "" || from < 0 || from > len(b.data) {
		return -1
	}
	i := bytes.Index(b.data[from:], []byte(term))
	if i < 0 {
		return -1
	}
	return from + i
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	if offset < 0 || offset > len(b.data) {
		return 0, ErrOffsetOutOfRange
	}

	b.splice(offset, offset, text)
	return offset + len(text), nil
}

// Delete removes text in the given range and returns what was removed.
func (b *Buffer) Delete(start, end ByteOffset) (string, error) {
	if !NewRange(start, end).Within(len(b.data)) {
		return "", ErrRangeInvalid
	}

	removed := string(b.data[start:end])
	b.splice(start, end, "")
	return removed, nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	if !NewRange(start, end).Within(len(b.data)) {
		return 0, ErrRangeInvalid
	}

	b.splice(start, end, text)
	return start + len(text), nil
}

// Append adds text to the end of the buffer.
func (b *Buffer) Append(text string) {
	b.splice(len(b.data), len(b.data), text)
}

// splice replaces data[start:end] with text. Offsets must already be valid.
func (b *Buffer) splice(start, end ByteOffset, text string) {
	tail := len(b.data) - end
	newLen := start + len(text) + tail

	if newLen > cap(b.data) {
		grown := make([]byte, newLen, newLen+newLen/2)
		copy(grown, b.data[:start])
		copy(grown[start+len(text):], b.data[end:])
		b.data = grown
	} else {
		oldLen := len(b.data)
		b.data = b.data[:newLen]
		// Shift the tail; copy handles overlapping regions.
		if newLen != oldLen {
			copy(b.data[start+len(text):], b.data[end:end+tail])
		}
	}
	copy(b.data[start:], text)
	b.revision++
}
