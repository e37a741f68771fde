package scheduling

import "fmt"

// ValidationError reports caller input the engine could not accept.
// The agent layer turns these into clarifying questions rather than
// apologies, so Reason should read well after "because".
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// RemoteError wraps a gateway failure with the operation that hit it.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("calendar %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
