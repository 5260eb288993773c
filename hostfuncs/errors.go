package hostfuncs

import (
	"encoding/json"

	"github.com/jvanz/policy-sdk-go/domain/entities"
	"github.com/jvanz/policy-sdk-go/domain/errors"
)

// ErrorResponse is the structured error returned to guests as JSON. Guests
// receive consistent, parseable errors instead of WASM traps.
type ErrorResponse struct {
	// Error is a machine-readable error type identifier
	// (e.g. "MALFORMED_REQUEST", "INTERNAL_ERROR").
	Error string `json:"error"`

	// Message is a human-readable error description.
	Message string `json:"message"`

	// Code is a numeric error code (e.g. 400, 500).
	Code int `json:"code"`

	// Detail carries the structured classification of the underlying host
	// error (type, machine-readable code, timeout flag, wrapped chain).
	// Absent for errors raised by the registry itself, such as NOT_FOUND.
	Detail *entities.ErrorDetail `json:"detail,omitempty"`
}

// ToJSON serializes the ErrorResponse to JSON bytes.
// Returns nil if serialization fails, which cannot happen for this type.
func (e ErrorResponse) ToJSON() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return data
}

// NewNotFoundError creates an error response for unknown operation names.
func NewNotFoundError(name string) ErrorResponse {
	return ErrorResponse{
		Error:   "NOT_FOUND",
		Message: "unknown host function: " + name,
		Code:    404,
	}
}

// NewInternalError creates an error response for unexpected failures.
func NewInternalError(message string) ErrorResponse {
	return ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: message,
		Code:    500,
	}
}

// NewPanicError creates an error response for recovered panics.
func NewPanicError(panicValue any) ErrorResponse {
	var msg string
	if err, ok := panicValue.(error); ok {
		msg = err.Error()
	} else if s, ok := panicValue.(string); ok {
		msg = s
	} else {
		msg = "panic recovered"
	}
	return ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "panic: " + msg,
		Code:    500,
	}
}

// FromError maps a host error to the ErrorResponse returned to the guest.
// The classification comes from errors.ToErrorDetail, so typed errors keep
// their identity across the boundary: guests can tell a request they must
// fix (400s) apart from a host-side failure, and the full detail (including
// the timeout flag on DNS failures) rides along in Detail.
func FromError(err error) ErrorResponse {
	detail := errors.ToErrorDetail(err)
	resp := ErrorResponse{Message: detail.Message, Detail: detail}

	switch detail.Type {
	case "unsupported_version":
		resp.Error, resp.Code = "UNSUPPORTED_VERSION", 400
	case "malformed_request":
		resp.Error, resp.Code = "MALFORMED_REQUEST", 400
	case "registry":
		resp.Error, resp.Code = "REGISTRY_ERROR", 502
	case "network", "timeout":
		resp.Error, resp.Code = "NETWORK_ERROR", 502
	case "verification":
		resp.Error, resp.Code = "VERIFICATION_FAILED", 422
	default:
		resp.Error, resp.Code = "INTERNAL_ERROR", 500
	}
	return resp
}
