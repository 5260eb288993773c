package sigstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvanz/policy-sdk-go/domain/errors"
)

func TestNewVerifier_Defaults(t *testing.T) {
	v := NewVerifier()

	assert.True(t, v.ignoreTlog, "transparency log checks are off by default")
	assert.True(t, v.ignoreSCT, "SCT checks are off by default")
}

func TestVerifierOptions(t *testing.T) {
	v := NewVerifier(
		WithTransparencyLog(true),
		WithSCTVerification(true),
	)

	assert.False(t, v.ignoreTlog)
	assert.False(t, v.ignoreSCT)
}

func TestVerifyPubKeys_InvalidReference(t *testing.T) {
	v := NewVerifier()

	_, err := v.VerifyPubKeys(context.Background(), "NOT A VALID REFERENCE", []string{"PEM"}, nil)
	require.Error(t, err)

	var verErr *errors.VerificationError
	require.ErrorAs(t, err, &verErr)
	assert.Equal(t, "pub_keys", verErr.Mode)
}

func TestVerifyPubKeys_GarbagePEM(t *testing.T) {
	v := NewVerifier()

	_, err := v.VerifyPubKeys(context.Background(), "registry.testing.lan/busybox:1.0.0", []string{"not a pem block"}, nil)
	require.Error(t, err)

	var verErr *errors.VerificationError
	require.ErrorAs(t, err, &verErr)
	assert.Contains(t, verErr.Error(), "cannot load public key")
}

func TestVerifyGithubActions_EmptyOwner(t *testing.T) {
	v := NewVerifier()

	_, err := v.VerifyGithubActions(context.Background(), "registry.testing.lan/app:latest", "", nil, nil)
	require.Error(t, err)

	var verErr *errors.VerificationError
	require.ErrorAs(t, err, &verErr)
	assert.Equal(t, "github_actions", verErr.Mode)
	assert.Contains(t, verErr.Error(), "owner cannot be empty")
}

func TestAnnotationClaims(t *testing.T) {
	assert.Nil(t, annotationClaims(nil), "no annotations means no claim constraint")

	claims := annotationClaims(map[string]string{"env": "prod"})
	assert.Equal(t, map[string]any{"env": "prod"}, claims)

	assert.NotNil(t, annotationClaims(map[string]string{}), "an empty constraint set still constrains")
}
