package apiclient

import "fmt"

// NetworkError is returned by every Client operation. Transport failures,
// non-2xx responses and undecodable bodies are not distinguished further; the
// caller's remedy is the same for all of them.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed", e.Op)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
