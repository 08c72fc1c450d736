// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import "fmt"

// NetworkError indicates that no response was received at all: the backend
// was unreachable, the connection dropped, or the request timed out.
// Timeouts are not distinguished from other transport failures.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError indicates a response with a failure status. Detail carries
// the server's human-readable message when one was present; it is intended
// to be shown to the user verbatim.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned HTTP %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned HTTP %d", e.Status)
}
