package client

import (
	"errors"
	"fmt"
)

// NetworkError is a transport failure or an unexpected status on a list call
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NotFoundError means the backend answered a detail fetch with a non-2xx status
type NotFoundError struct {
	Resource   string
	ID         string
	StatusCode int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found (status %d)", e.Resource, e.ID, e.StatusCode)
}

// ValidationError is a job draft rejected locally or by the backend.
// StatusCode is zero for a local rejection.
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "job draft rejected"
	}
	return e.Message
}

// UploadError is a failed resume upload. Message carries the server's body text
// and is empty when the request never got an answer.
type UploadError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UploadError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("upload failed: %v", e.Err)
	default:
		return fmt.Sprintf("upload failed with status %d", e.StatusCode)
	}
}

func (e *UploadError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
