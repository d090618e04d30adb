package trace

import (
	"errors"
	"fmt"
)

var ErrMalformedTrace = errors.New("malformed trace")

// MalformedTraceError reports a recognised line that cannot be applied to the
// current parse state: a core index outside [0, N), a preempt or finish on a
// core with no open interval, or a time slot lower than the current one.
// Line is 1-based; 0 when the event did not come from a numbered line.
// Core is -1 when the line does not name a core.
type MalformedTraceError struct {
	Line int
	Text string
	Core int
	Msg  string
}

func (e *MalformedTraceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d %q: %s", ErrMalformedTrace, e.Line, e.Text, e.Msg)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedTrace, e.Msg)
}

func (e *MalformedTraceError) Unwrap() error { return ErrMalformedTrace }

func malformedf(core int, format string, args ...any) *MalformedTraceError {
	return &MalformedTraceError{Core: core, Msg: fmt.Sprintf(format, args...)}
}
