// Package errors provides the typed errors of the policy host.
// All error types support unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/jvanz/policy-sdk-go/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for error types that can convert themselves
// to a structured ErrorDetail. New error types only need to implement this
// interface without modifying ToErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// UnsupportedVersionError reports a request version tag this host build does
// not understand. It is terminal for the call that produced it and is never
// retried by the host.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported callback request version: %q", e.Version)
}

// ToErrorDetail implements DetailedError.
func (e *UnsupportedVersionError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "unsupported_version", Code: e.Version}
}

// MalformedRequestError reports a payload that does not match the expected
// shape of a known request version: an unknown variant tag, a missing
// required field, or a mistyped field.
type MalformedRequestError struct {
	Err     error
	Version string
	Variant string
}

func (e *MalformedRequestError) Error() string {
	if e.Variant != "" {
		return fmt.Sprintf("malformed %s request (variant %q): %v", e.Version, e.Variant, e.Err)
	}
	return fmt.Sprintf("malformed %s request: %v", e.Version, e.Err)
}

func (e *MalformedRequestError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *MalformedRequestError) ToErrorDetail() *entities.ErrorDetail {
	code := e.Version
	if e.Variant != "" {
		code = e.Version + "/" + e.Variant
	}
	return &entities.ErrorDetail{Message: e.Error(), Type: "malformed_request", Code: code}
}

// RegistryError represents a failure talking to an OCI registry.
type RegistryError struct {
	Err       error
	Operation string
	Image     string
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("registry %s failed for %s: %v", e.Operation, e.Image, e.Err)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *RegistryError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "registry", Code: e.Operation}
}

// VerificationError represents a failed signature verification.
type VerificationError struct {
	Err   error
	Mode  string // "pub_keys", "keyless", "keyless_prefix", "github_actions"
	Image string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("sigstore %s verification failed for %s: %v", e.Mode, e.Image, e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *VerificationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "verification", Code: e.Mode}
}

// DNSError represents a DNS lookup failure.
type DNSError struct {
	Err  error
	Host string
}

func (e *DNSError) Error() string {
	return fmt.Sprintf("dns lookup for %s failed: %v", e.Host, e.Err)
}

func (e *DNSError) Unwrap() error {
	return e.Err
}

func (e *DNSError) Timeout() bool {
	if t, ok := e.Err.(interface{ Timeout() bool }); ok {
		return t.Timeout()
	}
	return false
}

// ToErrorDetail implements DetailedError.
func (e *DNSError) ToErrorDetail() *entities.ErrorDetail {
	detail := &entities.ErrorDetail{Message: e.Error(), Type: "network", Code: "dns_lookup_host"}
	if e.Timeout() {
		detail.Type = "timeout"
		detail.IsTimeout = true
	}
	return detail
}
