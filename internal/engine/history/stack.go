package history

// Stack is a LIFO of actions backed by a slice.
type Stack struct {
	items      []Action
	maxEntries int
}

// NewStack creates a new stack.
// maxEntries caps the depth; the oldest action is dropped on overflow.
// Zero or a negative value means unbounded.
func NewStack(maxEntries int) *Stack {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Stack{maxEntries: maxEntries}
}

// Push adds an action to the top of the stack.
func (s *Stack) Push(a Action) {
	s.items = append(s.items, a)

	// Enforce max entries
	if s.maxEntries > 0 && len(s.items) > s.maxEntries {
		excess := len(s.items) - s.maxEntries
		s.items = s.items[excess:]
	}
}

// Pop removes and returns the top action.
func (s *Stack) Pop() (Action, bool) {
	if len(s.items) == 0 {
		return Action{}, false
	}

	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = Action{}
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Len returns the number of actions on the stack.
func (s *Stack) Len() int {
	return len(s.items)
}

// IsEmpty returns true if the stack holds no actions.
func (s *Stack) IsEmpty() bool {
	return len(s.items) == 0
}

// Clear removes all actions.
func (s *Stack) Clear() {
	s.items = nil
}

// Info returns display information for every action, newest first.
func (s *Stack) Info() []ActionInfo {
	result := make([]ActionInfo, len(s.items))
	for i, a := range s.items {
		result[len(s.items)-1-i] = a.Info()
	}
	return result
}
