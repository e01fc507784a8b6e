package oboard

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed operation into the small taxonomy the
// tool layer surfaces to callers. Raw transport errors never escape
// the client boundary — they are wrapped into one of these kinds.
type ErrorKind string

const (
	// KindNotConfigured means the API token or workspace id is missing.
	// Detected before any network access.
	KindNotConfigured ErrorKind = "not_configured"
	// KindAuthFailed maps HTTP 401.
	KindAuthFailed ErrorKind = "authentication_failed"
	// KindForbidden maps HTTP 403.
	KindForbidden ErrorKind = "access_forbidden"
	// KindNotFound maps HTTP 404.
	KindNotFound ErrorKind = "not_found"
	// KindRateLimited maps HTTP 429.
	KindRateLimited ErrorKind = "rate_limited"
	// KindUnavailable means no response was received (network error,
	// timeout, cancelled context).
	KindUnavailable ErrorKind = "upstream_unavailable"
	// KindUpstream covers every other upstream failure; it carries the
	// HTTP status and any message the payload provided.
	KindUpstream ErrorKind = "upstream_error"
)

// Error is the single error type returned by the client. Use errors.As
// to recover the kind, or Error() for the one-line human message.
type Error struct {
	Kind    ErrorKind
	Status  int    // HTTP status, when one was received
	Message string // upstream-provided detail, may be empty
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotConfigured:
		return "Oboard is not configured: set OBOARD_API_TOKEN and OBOARD_WORKSPACE_ID"
	case KindAuthFailed:
		return "authentication failed: the Oboard API token was rejected"
	case KindForbidden:
		return "access forbidden: the token lacks permission for this workspace"
	case KindNotFound:
		return "not found: the requested resource does not exist in this workspace"
	case KindRateLimited:
		return "rate limited by the Oboard API: retry later"
	case KindUnavailable:
		if e.Message != "" {
			return "Oboard API unreachable: " + e.Message
		}
		return "Oboard API unreachable"
	default:
		if e.Message != "" {
			return fmt.Sprintf("Oboard API error (HTTP %d): %s", e.Status, e.Message)
		}
		return fmt.Sprintf("Oboard API error (HTTP %d)", e.Status)
	}
}

// classifyStatus maps a received HTTP status and optional upstream
// message to a tagged error.
func classifyStatus(status int, message string) *Error {
	kind := KindUpstream
	switch status {
	case http.StatusUnauthorized:
		kind = KindAuthFailed
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// unavailable wraps a network-level failure (no response received).
func unavailable(err error) *Error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: KindUnavailable, Message: msg}
}

func notConfigured() *Error {
	return &Error{Kind: KindNotConfigured}
}
