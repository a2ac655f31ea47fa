// ABOUTME: Response envelope decoding for the uniform success/failure wire contract
// ABOUTME: Classifies raw bodies as success, failure, or protocol violation

package client

import "encoding/json"

// Envelope is the uniform wrapper every backend response uses:
// {success: true, data: T} or {success: false, error: string, code?: string}.
// Pointer fields distinguish absent from zero so malformed bodies are
// detectable instead of silently defaulting.
type Envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
	Code    string          `json:"code"`
}

// DecodeEnvelope parses a raw body. ok is false when the body is not a JSON
// object at all; a parsed envelope may still be neither success nor failure,
// which callers must treat as a protocol violation.
func DecodeEnvelope(body []byte) (Envelope, bool) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, false
	}
	return env, true
}

// IsSuccess reports whether the envelope is a well-formed success:
// success is exactly true and the data key is present.
func (e Envelope) IsSuccess() bool {
	return e.Success != nil && *e.Success && e.Data != nil
}

// IsFailure reports whether the envelope is a well-formed failure:
// success is exactly false and error is a string.
func (e Envelope) IsFailure() bool {
	return e.Success != nil && !*e.Success && e.Error != nil
}
