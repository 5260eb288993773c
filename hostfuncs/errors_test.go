package hostfuncs

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvanz/policy-sdk-go/domain/errors"
)

func TestErrorResponse_ToJSON(t *testing.T) {
	resp := ErrorResponse{Error: "MALFORMED_REQUEST", Message: "bad payload", Code: 400}

	var decoded ErrorResponse
	require.NoError(t, json.Unmarshal(resp.ToJSON(), &decoded))
	assert.Equal(t, resp, decoded)
}

func TestFromError_UnsupportedVersion(t *testing.T) {
	resp := FromError(&errors.UnsupportedVersionError{Version: "v7"})

	assert.Equal(t, "UNSUPPORTED_VERSION", resp.Error)
	assert.Equal(t, 400, resp.Code)
	assert.Contains(t, resp.Message, "v7")
	require.NotNil(t, resp.Detail)
	assert.Equal(t, "unsupported_version", resp.Detail.Type)
	assert.Equal(t, "v7", resp.Detail.Code)
}

func TestFromError_MalformedRequest(t *testing.T) {
	resp := FromError(&errors.MalformedRequestError{
		Err:     fmt.Errorf("missing field"),
		Version: "v2",
		Variant: "SigstorePubKeyVerify",
	})

	assert.Equal(t, "MALFORMED_REQUEST", resp.Error)
	assert.Equal(t, 400, resp.Code)
	assert.Contains(t, resp.Message, "SigstorePubKeyVerify")
}

func TestFromError_WrappedDecodeErrorKeepsIdentity(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", &errors.UnsupportedVersionError{Version: "v0"})

	resp := FromError(wrapped)
	assert.Equal(t, "UNSUPPORTED_VERSION", resp.Error)
}

func TestFromError_RegistryError(t *testing.T) {
	resp := FromError(&errors.RegistryError{
		Err:       fmt.Errorf("connection refused"),
		Operation: "manifest_digest",
		Image:     "reg/busybox:1.0.0",
	})

	assert.Equal(t, "REGISTRY_ERROR", resp.Error)
	assert.Equal(t, 502, resp.Code)
	require.NotNil(t, resp.Detail)
	assert.Equal(t, "registry", resp.Detail.Type)
	assert.Equal(t, "manifest_digest", resp.Detail.Code)
}

func TestFromError_VerificationError(t *testing.T) {
	resp := FromError(&errors.VerificationError{
		Err:   fmt.Errorf("no matching signatures"),
		Mode:  "keyless",
		Image: "reg/app:latest",
	})

	assert.Equal(t, "VERIFICATION_FAILED", resp.Error)
	assert.Equal(t, 422, resp.Code)
	require.NotNil(t, resp.Detail)
	assert.Equal(t, "verification", resp.Detail.Type)
	assert.Equal(t, "keyless", resp.Detail.Code)
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestFromError_DNSFailureKeepsTimeoutFlag(t *testing.T) {
	t.Run("plain failure", func(t *testing.T) {
		resp := FromError(&errors.DNSError{Err: fmt.Errorf("no such host"), Host: "missing.example.com"})

		assert.Equal(t, "NETWORK_ERROR", resp.Error)
		assert.Equal(t, 502, resp.Code)
		require.NotNil(t, resp.Detail)
		assert.Equal(t, "network", resp.Detail.Type)
		assert.False(t, resp.Detail.IsTimeout)
	})

	t.Run("timeout", func(t *testing.T) {
		resp := FromError(&errors.DNSError{Err: timeoutErr{}, Host: "slow.example.com"})

		assert.Equal(t, "NETWORK_ERROR", resp.Error)
		require.NotNil(t, resp.Detail)
		assert.Equal(t, "timeout", resp.Detail.Type)
		assert.True(t, resp.Detail.IsTimeout)
	})
}

func TestFromError_AnythingElseIsInternal(t *testing.T) {
	resp := FromError(fmt.Errorf("registry unreachable"))

	assert.Equal(t, "INTERNAL_ERROR", resp.Error)
	assert.Equal(t, 500, resp.Code)
	assert.Equal(t, "registry unreachable", resp.Message)
	require.NotNil(t, resp.Detail)
	assert.Equal(t, "internal", resp.Detail.Type)
}

func TestNewPanicError(t *testing.T) {
	tests := []struct {
		name       string
		panicValue any
		contains   string
	}{
		{"error value", fmt.Errorf("boom"), "boom"},
		{"string value", "boom", "boom"},
		{"opaque value", 42, "panic recovered"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := NewPanicError(tc.panicValue)
			assert.Equal(t, "INTERNAL_ERROR", resp.Error)
			assert.Equal(t, 500, resp.Code)
			assert.Contains(t, resp.Message, tc.contains)
		})
	}
}
