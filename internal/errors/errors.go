// internal/errors/errors.go
package errors

import "fmt"

// ParseError is returned when an inbound payload has a recognized shape but
// cannot be turned into an actionable event: the action field is absent or
// unrecognized, or a required timestamp is missing or malformed. Callers
// treat it as "event intentionally ignored", not as a failure.
type ParseError struct {
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("could not parse event: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("could not parse event: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// MalformedPayloadError is returned when the request body is not valid JSON
// or lacks a required top-level key. Unlike ParseError, this is a
// caller-visible failure.
type MalformedPayloadError struct {
	Reason string
	Cause  error
}

func (e *MalformedPayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed payload: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed payload: %s", e.Reason)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Cause }

// PropagationError is returned when a Jira-side operation could not complete:
// a required identifier was missing, the remote rejected the request, or the
// remote was unreachable. The inbound webhook is still acknowledged; retry
// responsibility stays with the upstream sender.
type PropagationError struct {
	Op    string
	Cause error
}

func (e *PropagationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("propagation failed: %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("propagation failed: %s", e.Op)
}

func (e *PropagationError) Unwrap() error { return e.Cause }
