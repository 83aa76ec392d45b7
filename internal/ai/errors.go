package ai

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a pipeline failure for HTTP mapping.
type ErrorKind string

const (
	KindRateLimited    ErrorKind = "rate_limited"
	KindQuotaExceeded  ErrorKind = "quota_exceeded"
	KindUpstreamError  ErrorKind = "upstream_error"
	KindTransportError ErrorKind = "transport_error"
	KindEmptyResponse  ErrorKind = "empty_response"
	KindParseFailure   ErrorKind = "parse_failure"
)

// PipelineError is the single error type the generation pipeline returns.
// UpstreamStatus is the status the gateway answered with; zero when the
// failure happened before any response arrived.
type PipelineError struct {
	Kind           ErrorKind
	UpstreamStatus int
	Err            error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// HTTPStatus maps the failure kind to the status returned to the caller.
// Rate limiting and quota exhaustion keep the gateway's status; everything
// else is an internal error from the caller's point of view.
func (e *PipelineError) HTTPStatus() int {
	switch e.Kind {
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindQuotaExceeded:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// Message is the user-facing error string for the JSON error body. Kept
// generic on purpose; upstream detail goes to the logs, not the caller.
func (e *PipelineError) Message() string {
	switch e.Kind {
	case KindRateLimited:
		return "Rate limit exceeded. Please try again in a moment."
	case KindQuotaExceeded:
		return "Usage limit reached. Please add credits to continue."
	case KindEmptyResponse:
		return "No response from AI"
	case KindParseFailure:
		return "Failed to parse AI response. Please try again."
	default:
		return "Failed to generate website. Please try again."
	}
}
