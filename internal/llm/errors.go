// File path: internal/llm/errors.go
package llm

import "fmt"

// UpstreamError wraps a transport failure that survived every retry attempt.
type UpstreamError struct {
	Provider  string
	Operation string
	Attempts  int
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm upstream: %s %s failed after %d attempts: %v", e.Provider, e.Operation, e.Attempts, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
