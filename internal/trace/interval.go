package trace

// Unset marks the end of an interval that has not been closed yet.
// Time slots parsed from a trace are never negative.
const Unset = -1

// TaskInterval is one contiguous occupancy of a core by one process.
type TaskInterval struct {
	PID   int
	Start int // time slot of the dispatch
	End   int // time slot of the preempt/finish, Unset while open
}

// newInterval opens an interval for pid at the given slot.
// NOTE: End stays Unset until the interval is closed by the parser.
func newInterval(pid, start int) TaskInterval {
	return TaskInterval{
		PID:   pid,
		Start: start,
		End:   Unset,
	}
}

// Open reports whether the interval is still waiting for its end slot.
func (iv TaskInterval) Open() bool { return iv.End == Unset }

// Duration is End - Start for closed intervals and 0 for open ones.
func (iv TaskInterval) Duration() int {
	if iv.Open() {
		return 0
	}
	return iv.End - iv.Start
}

// CoreTimeline lists the intervals of one core in dispatch order.
type CoreTimeline []TaskInterval

// lastOpen returns the index of the most recently appended open interval,
// or -1 if every interval on the core is closed.
func (tl CoreTimeline) lastOpen() int {
	for i := len(tl) - 1; i >= 0; i-- {
		if tl[i].Open() {
			return i
		}
	}
	return -1
}
