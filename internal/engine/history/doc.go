// Package history provides undo/redo bookkeeping for the text editor engine.
//
// # Actions
//
// An Action records one invertible edit: its Kind (insert or delete), the
// Position it happened at, and the Text that was inserted or removed. That is
// enough to reverse the edit or apply it again:
//
//	undo Insert -> remove [Position, Position+len(Text))
//	undo Delete -> reinsert Text at Position
//
// # Stacks
//
// A Stack is a LIFO of actions. The engine keeps two of them:
//
//	undo := history.NewStack(0) // unbounded
//	redo := history.NewStack(0)
//
//	undo.Push(a)
//	redo.Clear() // new edits invalidate redo
//
//	// Undo moves the action across, it is never copied.
//	if a, ok := undo.Pop(); ok {
//	    redo.Push(a)
//	}
//
// Stacks are not synchronised. The engine guards them together with the
// buffer they describe.
package history
