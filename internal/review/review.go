// Package review owns the flashcard and quiz session state machines.
// Sessions are plain in-memory state machines with no locking of their
// own; callers serialize access per lecture.
package review

import "errors"

var (
	// ErrInvalidTransition is a precondition violation: the operation was
	// invoked in a state that forbids it.
	ErrInvalidTransition = errors.New("operation not allowed in current state")
	// ErrRatingOutOfRange is returned for difficulty ratings outside 1..5.
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	// ErrNoSelection is returned when submitting without a pending choice.
	ErrNoSelection = errors.New("no option selected")
	// ErrOptionOutOfRange is returned when selecting an option index that
	// does not exist on the current question.
	ErrOptionOutOfRange = errors.New("option index out of range")
)
