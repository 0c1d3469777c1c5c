// Package coreerr implements the core's error taxonomy: a typed
// CoreError carrying the operation and site where it was raised, with
// github.com/pkg/errors doing the stack-trace capture and cause
// wrapping underneath.
package coreerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies what went wrong, for callers that branch on error
// category instead of matching message text.
type Kind string

const (
	Unsatisfiable  Kind = "Unsatisfiable"  // no circuit exists within the given budget
	Malformed      Kind = "Malformed"      // a network/AIG failed its own structural checks
	Precondition   Kind = "Precondition"   // a caller violated a documented API precondition
	BudgetExceeded Kind = "BudgetExceeded" // search or cache budget ran out
	Backend        Kind = "Backend"        // the underlying SAT solver or storage backend failed
)

// Site names the component and operation an error was raised from, the
// coreerr analogue of a source location for code with no source text of
// its own.
type Site struct {
	Package   string
	Operation string
}

func (s Site) String() string {
	return fmt.Sprintf("%s.%s", s.Package, s.Operation)
}

// CoreError is the error type every core package raises for conditions
// a caller might want to branch on or retry.
type CoreError struct {
	Kind    Kind
	Site    Site
	Message string
	cause   error
}

func (e *CoreError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Site, e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Site, e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *CoreError) Unwrap() error { return e.cause }

// New builds a CoreError with a captured stack trace: its cause is a
// pkg/errors error carrying the same message and the stack, which
// Unwrap returns.
func New(kind Kind, site Site, format string, args ...interface{}) *CoreError {
	return &CoreError{
		Kind:    kind,
		Site:    site,
		Message: fmt.Sprintf(format, args...),
		cause:   errors.New(fmt.Sprintf(format, args...)),
	}
}

// Wrap attaches site/kind context to an existing error, preserving it
// as the cause so errors.Is/errors.As still see through to it.
func Wrap(cause error, kind Kind, site Site, format string, args ...interface{}) *CoreError {
	return &CoreError{
		Kind:    kind,
		Site:    site,
		Message: fmt.Sprintf(format, args...),
		cause:   errors.Wrap(cause, fmt.Sprintf(format, args...)),
	}
}

// Is reports whether err is a CoreError of the given kind, looking
// through any wrapping.
func Is(err error, kind Kind) bool {
	var ce *CoreError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Kind == kind
}

// StackTrace returns the pkg/errors-captured frames of the underlying
// cause, or nil if none were recorded.
func StackTrace(err error) errors.StackTrace {
	type tracer interface{ StackTrace() errors.StackTrace }
	var t tracer
	if errors.As(err, &t) {
		return t.StackTrace()
	}
	return nil
}
