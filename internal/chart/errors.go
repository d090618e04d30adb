package chart

import (
	"errors"
	"fmt"
)

var (
	ErrRender      = errors.New("render failed")
	ErrEmptyChart  = errors.New("no task intervals to draw")
	ErrUnknownMode = errors.New("unknown render mode")
)

// RenderError wraps every failure to produce a chart artifact.
// It matches both ErrRender and the underlying cause with errors.Is.
type RenderError struct {
	Mode string
	Err  error
}

func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("render %s: %v", e.Mode, e.Err)
}

func (e *RenderError) Unwrap() []error { return []error{ErrRender, e.Err} }

func renderErrorf(mode string, format string, args ...any) error {
	return &RenderError{Mode: mode, Err: fmt.Errorf(format, args...)}
}
