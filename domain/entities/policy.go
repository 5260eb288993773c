package entities

import "encoding/json"

// ValidationResponse is the verdict a policy returns from its `validate`
// export.
type ValidationResponse struct {
	// MutatedObject carries the patched object when the policy mutates
	// the request. nil when the object is accepted as-is or rejected.
	MutatedObject json.RawMessage `json:"mutated_object,omitempty"`

	// Message optionally explains a rejection to the end user.
	Message *string `json:"message,omitempty"`

	// Code optionally carries a machine-readable rejection code.
	Code *uint16 `json:"code,omitempty"`

	// Accepted reports whether the request satisfied the policy.
	Accepted bool `json:"accepted"`
}

// SettingsValidationResponse is the verdict a policy returns from its
// `validate_settings` export.
type SettingsValidationResponse struct {
	// Message optionally explains why the settings were rejected.
	Message *string `json:"message,omitempty"`

	// Valid reports whether the policy accepted its settings.
	Valid bool `json:"valid"`
}
