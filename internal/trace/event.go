// internal/trace/event.go

package trace

// EventKind represents the type of a recognised trace line.
type EventKind int

const (
	EventTimeSlot EventKind = iota
	EventLoad
	EventDispatch
	EventPreempt
	EventFinish
)

// Event is one recognised line of a simulator trace.
// Only the fields relevant to its Kind are populated.
type Event struct {
	Kind EventKind
	Slot int    // EventTimeSlot
	Core int    // EventDispatch, EventPreempt, EventFinish
	PID  int    // every kind except EventTimeSlot
	Name string // EventLoad, program name under input/proc/
}

func (k EventKind) String() string {
	switch k {
	case EventTimeSlot:
		return "Time slot"
	case EventLoad:
		return "Load"
	case EventDispatch:
		return "Dispatch"
	case EventPreempt:
		return "Preempt"
	case EventFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}

