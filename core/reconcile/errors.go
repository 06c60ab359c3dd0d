package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned when an engine operation needs a manifest and none is loaded.
	ErrNotLoaded = errors.New("no manifest loaded")

	// ErrNotFinalizable is returned by Finalize while discrepancies remain.
	ErrNotFinalizable = errors.New("manifest is not reconciled")
)

// ValidationError reports bad manifest input. The manifest is not loaded.
type ValidationError struct {
	// Index is the position of the offending raw line, or -1 when not line specific.
	Index int
	Field string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid manifest: %s", e.Reason)
	}
	if e.Field == "" {
		return fmt.Sprintf("invalid manifest line %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid manifest line %d: %s %s", e.Index, e.Field, e.Reason)
}

// InvalidEventError reports a malformed scan event. Nothing was applied.
type InvalidEventError struct {
	Label string
	// Index is the offending tuple, or -1 when the event itself is malformed.
	Index  int
	Reason string
}

func (e *InvalidEventError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid scan %q: %s", e.Label, e.Reason)
	}
	return fmt.Sprintf("invalid scan %q: content %d: %s", e.Label, e.Index, e.Reason)
}

// UnresolvedPackError reports that a pack label could not be resolved to contents.
// The label is not consumed and can be retried.
type UnresolvedPackError struct {
	Label string
	Err   error
}

func (e *UnresolvedPackError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("pack %q not recognized", e.Label)
	}
	return fmt.Sprintf("pack %q not recognized: %v", e.Label, e.Err)
}

func (e *UnresolvedPackError) Unwrap() error {
	return e.Err
}

// DuplicatePackError reports that a pack label was already applied.
type DuplicatePackError struct {
	Label string
}

func (e *DuplicatePackError) Error() string {
	return fmt.Sprintf("pack %q already scanned", e.Label)
}
