package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for catalog and playback operations
var (
	// ErrServerOffline indicates the catalog backend could not be reached
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrUnexpectedStatus indicates the backend answered with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrMalformedPayload indicates the catalog body is not valid JSON
	ErrMalformedPayload = errors.New("malformed catalog payload")

	// ErrPlaybackFault indicates the media surface could not play a stream
	ErrPlaybackFault = errors.New("playback fault")
)

// FailureKind classifies a failed catalog load
type FailureKind int

const (
	FailureTransport FailureKind = iota // non-success status or network error
	FailurePayload                      // body could not be parsed
)

// String returns the failure kind name
func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailurePayload:
		return "payload"
	default:
		return "unknown"
	}
}

// CatalogError is the reason carried by a Failed catalog result.
// Status is the HTTP status code for transport failures that got a
// response, zero otherwise.
type CatalogError struct {
	Kind   FailureKind
	Status int
	Err    error
}

// Error implements the error interface
func (e *CatalogError) Error() string {
	if e.Kind == FailureTransport && e.Status != 0 {
		return fmt.Sprintf("%s failure: status %d", e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failure: %v", e.Kind, e.Err)
	}
	return e.Kind.String() + " failure"
}

// Unwrap returns the underlying error
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// Detail returns the user-facing failure detail: the status code when one
// was received, the underlying error text otherwise.
func (e *CatalogError) Detail() string {
	if e.Status != 0 {
		return strconv.Itoa(e.Status)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

// NewStatusError builds a transport failure for a non-2xx response
func NewStatusError(status int) *CatalogError {
	return &CatalogError{
		Kind:   FailureTransport,
		Status: status,
		Err:    fmt.Errorf("%w: %d", ErrUnexpectedStatus, status),
	}
}

// PlaybackError wraps a media surface error as a playback fault
func PlaybackError(err error) error {
	if err == nil {
		return ErrPlaybackFault
	}
	return fmt.Errorf("%w: %w", ErrPlaybackFault, err)
}
