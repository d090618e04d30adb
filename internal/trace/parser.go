// internal/trace/parser.go

package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"strings"
)

// DefaultCores is the number of cores of the simulator's default machine.
const DefaultCores = 4

// ParseState is the fold state of a single parse.
type ParseState struct {
	CurrentSlot int
	timelines   *Timelines
	lines       int         // number of lines consumed by Step
	log         *log.Logger // never nil
}

// NewState creates a fresh state for a machine with the given number of cores.
// A nil logger discards diagnostics.
func NewState(cores int, logger *log.Logger) *ParseState {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ParseState{
		timelines: NewTimelines(cores),
		log:       logger,
	}
}

// Step consumes one raw line. Unrecognised lines are ignored.
func (s *ParseState) Step(line string) error {
	s.lines++
	ev, ok := Match(line)
	if !ok {
		return nil
	}

	err := s.Apply(ev)
	var me *MalformedTraceError
	if errors.As(err, &me) {
		me.Line = s.lines
		me.Text = strings.TrimSpace(line)
	}
	return err
}

// Apply updates the state with one recognised event.
func (s *ParseState) Apply(ev Event) error {
	switch ev.Kind {
	case EventTimeSlot:
		// slots only move forward, otherwise start <= end cannot hold
		if ev.Slot < s.CurrentSlot {
			return malformedf(-1, "time slot %d after time slot %d", ev.Slot, s.CurrentSlot)
		}
		s.CurrentSlot = ev.Slot
		s.logf(ev, "")
		return nil

	case EventLoad:
		s.logf(ev, "program %s", ev.Name)
		return nil

	case EventDispatch:
		tl := s.timelines.get(ev.Core)
		if tl == nil {
			return malformedf(ev.Core, "core %d outside [0, %d)", ev.Core, s.timelines.NumCores())
		}
		if i := tl.lastOpen(); i >= 0 {
			s.logf(ev, "warning: core still running pid %d since slot %d", (*tl)[i].PID, (*tl)[i].Start)
		}
		*tl = append(*tl, newInterval(ev.PID, s.CurrentSlot))
		s.logf(ev, "")
		return nil

	case EventPreempt, EventFinish:
		tl := s.timelines.get(ev.Core)
		if tl == nil {
			return malformedf(ev.Core, "core %d outside [0, %d)", ev.Core, s.timelines.NumCores())
		}
		i := tl.lastOpen()
		if i < 0 {
			return malformedf(ev.Core, "%s of pid %d on core %d with no open interval",
				strings.ToLower(ev.Kind.String()), ev.PID, ev.Core)
		}
		iv := &(*tl)[i]
		if iv.PID != ev.PID {
			s.logf(ev, "warning: closing interval of pid %d", iv.PID)
		}
		iv.End = s.CurrentSlot
		s.logf(ev, "ran %d slots", iv.Duration())
		return nil
	}
	return fmt.Errorf("unknown event kind %d", ev.Kind)
}

// Finish closes every interval still open at the last observed time slot and
// returns the timelines. The state must not be used afterwards.
func (s *ParseState) Finish() *Timelines {
	t := s.timelines
	t.Each(func(core int, _ CoreTimeline) {
		tl := t.get(core)
		for i := range *tl {
			if (*tl)[i].Open() {
				(*tl)[i].End = s.CurrentSlot
			}
		}
	})
	s.timelines = nil
	return t
}

func (s *ParseState) logf(ev Event, format string, args ...any) {
	// an auxiliary function to center the event kind in the output
	center := func(str string, width int) string {
		spaces := (width - len(str)) / 2
		return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", width-(spaces+len(str)))
	}

	msg := fmt.Sprintf("slot %07d [%s]", s.CurrentSlot, center(ev.Kind.String(), 12))
	switch ev.Kind {
	case EventLoad:
		msg += fmt.Sprintf(" => PID %d", ev.PID)
	case EventDispatch, EventPreempt, EventFinish:
		msg += fmt.Sprintf(" => CPU %d, PID %d", ev.Core, ev.PID)
	}
	if format != "" {
		msg += ", " + fmt.Sprintf(format, args...)
	}
	s.log.Println(msg)
}

// Parser turns simulator traces into per-core timelines.
type Parser struct {
	Cores int         // DefaultCores when <= 0
	Log   *log.Logger // optional diagnostics
}

func (p Parser) cores() int {
	if p.Cores <= 0 {
		return DefaultCores
	}
	return p.Cores
}

// ParseLines folds a lazy sequence of lines into timelines.
// A malformed line aborts the parse and no timelines are returned.
func (p Parser) ParseLines(lines iter.Seq[string]) (*Timelines, error) {
	s := NewState(p.cores(), p.Log)
	for line := range lines {
		if err := s.Step(line); err != nil {
			return nil, err
		}
	}
	return s.Finish(), nil
}

// Parse reads newline-terminated lines from r until EOF. Lines have no length
// limit; an overlong line of noise is ignored like any other.
func (p Parser) Parse(r io.Reader) (*Timelines, error) {
	br := bufio.NewReader(r)

	var readErr error
	tl, err := p.ParseLines(func(yield func(string) bool) {
		for {
			line, err := br.ReadString('\n')
			if line != "" && !yield(line) {
				return
			}
			if err != nil {
				if err != io.EOF {
					readErr = err
				}
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, fmt.Errorf("read trace: %w", readErr)
	}
	return tl, nil
}

// Parse parses r for a machine with the given number of cores.
func Parse(r io.Reader, cores int) (*Timelines, error) {
	return Parser{Cores: cores}.Parse(r)
}
