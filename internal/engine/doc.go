// Package engine provides the core text editing engine for keyedit.
//
// The engine package exposes EditBuffer, which combines text storage, a
// single cursor, a one-slot clipboard and linear undo/redo into one API.
// File access and the interactive command loop live elsewhere and call in.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - buffer: flat byte storage with insert, delete, replace and search
//   - history: recorded edits (Action) and the LIFO Stack that holds them
//
// # Basic Usage
//
//	e := engine.New()
//
//	// Insert at the cursor; the cursor stays at the insertion start.
//	e.Insert("hello")       // "hello", cursor 0
//
//	// Delete forward from the cursor.
//	e.Delete(5)             // "", cursor 0
//
//	// Walk the history.
//	e.Undo()                // "hello"
//	e.Redo()                // ""
//
// # Undo Granularity
//
// Insert and Delete are recorded one action each. ReplaceAll and
// AppendLoaded are checkpoints: they clear both stacks. Any recorded edit
// clears the redo stack. Paste is not recorded unless the EditBuffer was
// created with WithUndoablePaste(true).
//
// # Out-of-Range Input
//
// Operations given positions or lengths outside the document return a
// sentinel error (ErrOffsetOutOfRange, ErrRangeInvalid, ErrInvalidLength,
// ErrClipboardEmpty) and change nothing.
//
// # Offsets
//
// Offsets are byte offsets into the UTF-8 content. Copy uses an inclusive
// end offset; everything else uses half-open ranges.
//
// # Thread Safety
//
// All EditBuffer methods take a single mutex. There is no finer-grained
// locking because every operation touches the cursor and content together.
package engine
