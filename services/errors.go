package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a sync operation did not fully succeed.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFoundLocally   ErrorKind = "not_found_locally"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindRemote            ErrorKind = "remote"
	KindPartialInsert     ErrorKind = "partial_insert"
	KindStorage           ErrorKind = "storage"
	KindOffline           ErrorKind = "offline"
	KindSession           ErrorKind = "session"
)

// SyncError is returned by every SyncService operation that did not fully
// succeed. Reads still hand back an empty (or partial) collection with it.
type SyncError struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *SyncError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func newSyncError(kind ErrorKind, op, message string, err error) *SyncError {
	return &SyncError{Kind: kind, Op: op, Message: message, Err: err}
}

// KindOf returns the kind of the first SyncError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// ErrMalformedResponse marks a remote answer whose data field has the wrong shape.
var ErrMalformedResponse = errors.New("malformed remote response")

// RemoteError is a non-2xx answer from the remote API.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote API returned status %d: %s", e.StatusCode, e.Message)
}

// Result is the envelope of write operations and session calls.
type Result struct {
	Success bool        `json:"success"`
	ID      string      `json:"id,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Err     *SyncError  `json:"-"`
}

func failure(err *SyncError) Result {
	return Result{Success: false, Message: err.Message, Err: err}
}
