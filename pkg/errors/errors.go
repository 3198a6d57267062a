// Package errors defines the failure taxonomy shared across the pipeline.
// The resolver and the transcript service never surface anything but these
// typed errors; the orchestrator classifies them into batch report entries.
package errors

import "errors"

// Reason classifies why an item failed.
type Reason string

const (
	ReasonNotFound         Reason = "NotFound"
	ReasonPrivate          Reason = "Private"
	ReasonDisabled         Reason = "Disabled"
	ReasonQuotaExceeded    Reason = "QuotaExceeded"
	ReasonInvalidReference Reason = "InvalidReference"
	ReasonUnknown          Reason = "Unknown"
)

// ErrInvalidReference is returned by the resolver for input that matches no
// known YouTube URL or ID form.
var ErrInvalidReference = errors.New("invalid video or channel reference")

// FetchError is a transcript retrieval failure.
type FetchError struct {
	Reason Reason
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return "transcript fetch: " + string(e.Reason) + ": " + e.Err.Error()
	}
	return "transcript fetch: " + string(e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError wraps err with a fetch failure reason.
func NewFetchError(reason Reason, err error) *FetchError {
	return &FetchError{Reason: reason, Err: err}
}

// UpstreamError is a metadata or listing failure from the Data API.
type UpstreamError struct {
	Reason Reason
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return "upstream: " + string(e.Reason) + ": " + e.Err.Error()
	}
	return "upstream: " + string(e.Reason)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError wraps err with an upstream failure reason.
func NewUpstreamError(reason Reason, err error) *UpstreamError {
	return &UpstreamError{Reason: reason, Err: err}
}

// ReasonOf extracts the failure reason from any error produced by the
// pipeline, falling back to Unknown.
func ReasonOf(err error) Reason {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Reason
	}
	if errors.Is(err, ErrInvalidReference) {
		return ReasonInvalidReference
	}
	return ReasonUnknown
}
