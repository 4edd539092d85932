package collector

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	// ErrSensorUnavailable means an optional sensor (temperature) is absent,
	// unsupported on this platform, or not readable. It is never returned
	// from Tick.
	ErrSensorUnavailable = errors.New("sensor unavailable")

	// ErrQueryFailed is matched by every QueryError.
	ErrQueryFailed = errors.New("query failed")
)

// gopsutil keeps its not-implemented sentinel in an internal package, so it
// can only be recognised by message.
const notImplementedMsg = "not implemented yet"

// Category names the part of a snapshot a query fills.
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryMemory      Category = "memory"
	CategoryNetwork     Category = "network"
	CategoryConnections Category = "connections"
)

type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindPermissionDenied
	KindUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission denied"
	case KindUnsupported:
		return "unsupported"
	default:
		return "failed"
	}
}

// QueryError is a failed OS query that the caller should see. The tick that
// produced it still returns every other section.
type QueryError struct {
	Category Category
	Kind     ErrorKind
	Err      error
}

func newQueryError(cat Category, err error) *QueryError {
	return &QueryError{Category: cat, Kind: classify(err), Err: err}
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s query %s: %v", e.Category, e.Kind, e.Err)
}

func (e *QueryError) Unwrap() []error {
	return []error{ErrQueryFailed, e.Err}
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, errors.ErrUnsupported),
		strings.Contains(err.Error(), notImplementedMsg):
		return KindUnsupported
	default:
		return KindOther
	}
}

// TickError collects the query failures of one tick.
type TickError struct {
	Failures []*QueryError
}

func (e *TickError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return "tick: " + strings.Join(msgs, "; ")
}

func (e *TickError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Failed reports whether the given section failed during the tick.
func (e *TickError) Failed(cat Category) bool {
	if e == nil {
		return false
	}
	for _, f := range e.Failures {
		if f.Category == cat {
			return true
		}
	}
	return false
}

// FailedSection reports whether err marks cat as failed. A nil error, or one
// that is not a TickError or QueryError, fails nothing.
func FailedSection(err error, cat Category) bool {
	var te *TickError
	if errors.As(err, &te) {
		return te.Failed(cat)
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Category == cat
	}
	return false
}
