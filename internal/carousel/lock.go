package carousel

// TransitionLock is the single gate shared by every carousel on a screen.
// While one row is sliding, navigation on every row is dropped. Requests are
// never queued.
//
// The lock is driven from the UI event loop and is not safe for concurrent
// use.
type TransitionLock struct {
	locked    bool
	direction Direction
}

// NewTransitionLock creates an unlocked gate
func NewTransitionLock() *TransitionLock {
	return &TransitionLock{}
}

// Begin acquires the lock for a transition in dir. It returns false and
// changes nothing when a transition is already in flight.
func (l *TransitionLock) Begin(dir Direction) bool {
	if l.locked {
		return false
	}
	l.locked = true
	l.direction = dir
	return true
}

// End releases the lock. Calling it while unlocked is a no-op.
func (l *TransitionLock) End() {
	l.locked = false
}

// Locked reports whether a transition is in flight
func (l *TransitionLock) Locked() bool {
	return l.locked
}

// Direction returns the direction of the current or most recent transition
func (l *TransitionLock) Direction() Direction {
	return l.direction
}
