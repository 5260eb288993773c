package hostfuncs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvanz/policy-sdk-go/domain/errors"
)

func TestNewResolver_Defaults(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, 5*time.Second, r.timeout)
}

func TestWithLookupTimeout(t *testing.T) {
	r := NewResolver(WithLookupTimeout(500 * time.Millisecond))
	assert.Equal(t, 500*time.Millisecond, r.timeout)

	r = NewResolver(WithLookupTimeout(-1 * time.Second))
	assert.Equal(t, 5*time.Second, r.timeout, "non-positive timeouts keep the default")
}

func TestResolver_LookupHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping DNS lookup in short mode")
	}

	r := NewResolver()

	addrs, err := r.LookupHost(context.Background(), "localhost")
	require.NoError(t, err)
	assert.NotEmpty(t, addrs)
}

func TestResolver_LookupHost_FailureIsDNSError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping DNS lookup in short mode")
	}

	r := NewResolver(WithLookupTimeout(2 * time.Second))

	_, err := r.LookupHost(context.Background(), "nonexistent.invalid")
	require.Error(t, err)

	var dnsErr *errors.DNSError
	require.ErrorAs(t, err, &dnsErr)
	assert.Equal(t, "nonexistent.invalid", dnsErr.Host)
}
