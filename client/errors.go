// ABOUTME: Error taxonomy for the CareTrack API client
// ABOUTME: Normalizes transport, protocol, and domain failures into user-safe errors

package client

import (
	"errors"
	"fmt"
)

// Fixed user-facing copy for transport failures. Higher layers display these
// verbatim and never retry them.
var (
	ErrTimeout = errors.New("Request timeout - please check your connection and try again")
	ErrNetwork = errors.New("Network error - please check your connection")

	// ErrSessionExpired is returned on HTTP 401 after the persisted token has
	// been cleared and the unauthorized hook has fired.
	ErrSessionExpired = errors.New("Session expired - please log in again")
)

// Envelope failure codes the client reacts to. A 403 carrying one of the
// CSRF codes triggers the single refresh-and-retry pass.
const (
	codeCSRFInvalid = "CSRF_TOKEN_INVALID"
	codeCSRFMissing = "CSRF_TOKEN_MISSING"
)

// APIError is a domain or validation failure reported through the envelope.
// The message is the backend's error string, surfaced verbatim.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string { return e.Message }

// errInvalidResponse marks a protocol violation: the body did not match the
// success or failure envelope shape.
func errInvalidResponse(path string) error {
	return fmt.Errorf("Invalid API response from %s", path)
}

// isCSRFRejection reports whether a result is the specific 403 the
// anti-forgery retry path recovers from.
func isCSRFRejection(res *result) bool {
	if res.status != 403 || !res.envOK || !res.env.IsFailure() {
		return false
	}
	return res.env.Code == codeCSRFInvalid || res.env.Code == codeCSRFMissing
}
