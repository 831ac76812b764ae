// Package buffer provides the mutable text storage used by the editor engine.
//
// A Buffer is a flat sequence of bytes addressed by ByteOffset. It knows
// nothing about cursors or history; those live in the engine and history
// packages, which call into the buffer to apply and invert edits.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	// Insert text
//	buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//
//	// Delete text
//	buf.Delete(0, 7) // "Beautiful World!"
//
//	// Find text
//	buf.Index("World", 0) // 10
//
// Offsets count bytes, so a multi-byte UTF-8 character occupies several
// offsets. Callers that accept user offsets are responsible for choosing
// positions that make sense for their text.
//
// Thread Safety:
//
// Buffer is not safe for concurrent use. The engine serialises access to it.
package buffer
