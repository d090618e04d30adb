package trace

import (
	"regexp"
	"strconv"
	"strings"
)

// Line formats emitted by the simulator. Patterns are anchored and tried in
// order; the first match wins.
var (
	timeSlotRe = regexp.MustCompile(`^Time slot\s*(\d+)$`)
	loadRe     = regexp.MustCompile(`^Loaded a process at input/proc/(\w+), PID:\s(\d+)$`)
	dispatchRe = regexp.MustCompile(`^CPU\s(\d+):\sDispatched\sprocess\s+(\d+)$`)
	preemptRe  = regexp.MustCompile(`^CPU\s(\d+): Put process\s+(\d+) to run queue$`)
	finishRe   = regexp.MustCompile(`^CPU +(\d+): Processed +(\d+) has finished$`)
)

// Match recognises a single trace line. Surrounding whitespace is ignored.
// ok is false for lines that match none of the known formats.
func Match(line string) (ev Event, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Event{}, false
	}

	if m := timeSlotRe.FindStringSubmatch(line); m != nil {
		slot, ok := atoi(m[1])
		return Event{Kind: EventTimeSlot, Slot: slot}, ok
	}
	if m := loadRe.FindStringSubmatch(line); m != nil {
		pid, ok := atoi(m[2])
		return Event{Kind: EventLoad, Name: m[1], PID: pid}, ok
	}

	for _, p := range []struct {
		re   *regexp.Regexp
		kind EventKind
	}{
		{dispatchRe, EventDispatch},
		{preemptRe, EventPreempt},
		{finishRe, EventFinish},
	} {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		core, ok1 := atoi(m[1])
		pid, ok2 := atoi(m[2])
		return Event{Kind: p.kind, Core: core, PID: pid}, ok1 && ok2
	}
	return Event{}, false
}

// atoi fails on values that overflow an int; such lines are treated as noise.
func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
