// Package errors defines the typed failures the service can produce.
// Handlers map a DomainError to its HTTP status exactly once at the
// boundary; business logic only returns these values.
package errors

import "fmt"

// DomainError is a terminal, user-caused failure with a stable code and a
// human-readable message. Status is the HTTP status it maps to.
type DomainError struct {
	Code    string
	Status  int
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// PolicyViolation builds a 422 error carrying the reason a password was
// rejected.
func PolicyViolation(reason string) *DomainError {
	return &DomainError{
		Code:    "POLICY_VIOLATION",
		Status:  422,
		Message: reason,
	}
}

// Infra wraps a non-user-caused failure (database or cache unreachable).
// It is surfaced as a 5xx and must never be conflated with bad credentials.
type Infra struct {
	Op  string
	Err error
}

func (e *Infra) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Infra) Unwrap() error {
	return e.Err
}
