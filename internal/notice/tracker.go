// Package notice keeps track of the last reported condition per failure class,
// so that a long outage produces one log line instead of one per poll.
package notice

// Class identifies a family of recurring conditions
type Class int

const (
	// ClassBus covers session bus availability
	ClassBus Class = iota
	// ClassPlayer covers player discovery
	ClassPlayer
	// ClassPeer covers the presence peer connection
	ClassPeer
	// ClassMetadata covers unusable player metadata
	ClassMetadata
)

func (c Class) String() string {
	switch c {
	case ClassBus:
		return "bus"
	case ClassPlayer:
		return "player"
	case ClassPeer:
		return "peer"
	case ClassMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// Condition is the last observed state of a class
type Condition int

const (
	// Unknown means nothing has been reported yet, or the class was reset
	Unknown Condition = iota
	// OK means the condition cleared
	OK
	// Failing means the failure is ongoing
	Failing
)

func (c Condition) String() string {
	switch c {
	case OK:
		return "ok"
	case Failing:
		return "failing"
	default:
		return "unknown"
	}
}

// Tracker remembers one Condition per Class. The zero value is ready to use.
// Not safe for concurrent use.
type Tracker struct {
	last map[Class]Condition
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{last: make(map[Class]Condition)}
}

// Observe records cond for class and reports whether it is a transition,
// i.e. whether the caller should emit a log line.
func (t *Tracker) Observe(class Class, cond Condition) bool {
	if t.last == nil {
		t.last = make(map[Class]Condition)
	}
	prev := t.last[class]
	t.last[class] = cond
	return prev != cond
}

// Fail is shorthand for Observe(class, Failing)
func (t *Tracker) Fail(class Class) bool {
	return t.Observe(class, Failing)
}

// Recover records OK and reports whether the class was failing before
func (t *Tracker) Recover(class Class) bool {
	prev := t.Last(class)
	t.Observe(class, OK)
	return prev == Failing
}

// Last returns the last recorded condition for class
func (t *Tracker) Last(class Class) Condition {
	return t.last[class]
}

// Reset forgets class, so its next condition is always a transition
func (t *Tracker) Reset(class Class) {
	delete(t.last, class)
}
