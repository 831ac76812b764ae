package buffer

import "fmt"

// ByteOffset represents a byte position in the buffer.
type ByteOffset = int

// Range represents a byte range in the buffer.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start ByteOffset // Inclusive start position
	End   ByteOffset // Exclusive end position
}

// NewRange creates a new Range from start and end offsets.
func NewRange(start, end ByteOffset) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// IsValid returns true if the range is valid (Start <= End).
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Within reports whether the range lies inside a buffer of the given length.
func (r Range) Within(length ByteOffset) bool {
	return r.Start >= 0 && r.IsValid() && r.End <= length
}
