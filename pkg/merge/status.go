package merge

import "fmt"

// Severity of a merge status.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityError
)

// Component is the originating-component identifier carried by failure
// statuses.
const Component = "refhist.merge"

// Status codes.
const (
	CodeOK          = 0
	CodeMergeFailed = 1
)

// Status is the result of a merge. The merger reports failures as status
// values rather than raised errors: callers always receive the full outcome
// (severity, component, code, message, cause) from the merge boundary.
type Status struct {
	Severity  Severity
	Component string
	Code      int
	Message   string
	Cause     error
}

// StatusOK is the successful merge outcome.
var StatusOK = Status{Severity: SeverityOK, Component: Component, Code: CodeOK}

func errorStatus(code int, message string, cause error) Status {
	return Status{
		Severity:  SeverityError,
		Component: Component,
		Code:      code,
		Message:   message,
		Cause:     cause,
	}
}

// IsOK reports whether the merge succeeded.
func (s Status) IsOK() bool {
	return s.Severity == SeverityOK
}

// Err converts the status into an error for callers that propagate errors
// instead of statuses. It returns nil for a successful status.
func (s Status) Err() error {
	if s.IsOK() {
		return nil
	}
	return s
}

// Error makes a failure status usable as an error value.
func (s Status) Error() string {
	if s.Cause != nil {
		return fmt.Sprintf("%s (%s, code %d): %v", s.Message, s.Component, s.Code, s.Cause)
	}
	return fmt.Sprintf("%s (%s, code %d)", s.Message, s.Component, s.Code)
}

// Unwrap exposes the underlying cause.
func (s Status) Unwrap() error {
	return s.Cause
}
