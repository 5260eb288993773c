package wireformat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvanz/policy-sdk-go/domain/entities"
	"github.com/jvanz/policy-sdk-go/domain/errors"
)

func TestDecode_UnsupportedVersion(t *testing.T) {
	for _, version := range []string{"", "v0", "v3", "V1", "v1.1"} {
		_, err := Decode(version, []byte(`{}`))

		var unsupported *errors.UnsupportedVersionError
		require.ErrorAs(t, err, &unsupported, "version %q", version)
		assert.Equal(t, version, unsupported.Version)
	}
}

func TestDecode_V1PubKeyScenario(t *testing.T) {
	payload := []byte(`{
		"SigstorePubKeyVerify": {
			"image": "reg/busybox:1.0.0",
			"pub_keys": ["PEM1", "PEM2"],
			"annotations": null
		}
	}`)

	req, err := Decode(VersionV1, payload)
	require.NoError(t, err)

	verify, ok := req.(entities.SigstorePubKeyVerify)
	require.True(t, ok, "expected canonical SigstorePubKeyVerify, got %T", req)
	assert.Equal(t, "reg/busybox:1.0.0", verify.Image)
	assert.Equal(t, []string{"PEM1", "PEM2"}, verify.PubKeys, "key order survives conversion")
	assert.Nil(t, verify.Annotations)
}

func TestDecode_V2GithubActionsScenario(t *testing.T) {
	payload := []byte(`{
		"type": "SigstoreGithubActionsVerify",
		"image": "reg/app:latest",
		"owner": "octocat",
		"annotations": {"env": "prod"}
	}`)

	req, err := Decode(VersionV2, payload)
	require.NoError(t, err)

	verify, ok := req.(entities.SigstoreGithubActionsVerify)
	require.True(t, ok, "expected canonical SigstoreGithubActionsVerify, got %T", req)
	assert.Equal(t, "octocat", verify.Owner)
	assert.Nil(t, verify.Repo)
	assert.Equal(t, map[string]string{"env": "prod"}, verify.Annotations)
}

// Every v1 variant must decode under v2 with an identical field set: a new
// generation adds variants, it never alters inherited ones.
func TestSupersetMonotonicity_V1VariantsDecodeUnderV2(t *testing.T) {
	fields := map[string]any{
		"image":       "reg/busybox:1.0.0",
		"pub_keys":    []string{"PEM1", "PEM2"},
		"annotations": map[string]string{"env": "prod"},
	}

	v1Payload, err := json.Marshal(map[string]any{variantPubKeyVerify: fields})
	require.NoError(t, err)

	fields["type"] = variantPubKeyVerify
	v2Payload, err := json.Marshal(fields)
	require.NoError(t, err)

	fromV1, err := Decode(VersionV1, v1Payload)
	require.NoError(t, err)
	fromV2, err := Decode(VersionV2, v2Payload)
	require.NoError(t, err)

	assert.Equal(t, fromV1, fromV2, "the same logical request must yield the same canonical value from both generations")
}

// Converting every variant of every released generation must reach a
// canonical variant with every field intact.
func TestExhaustiveness_AllVariantsConvertLosslessly(t *testing.T) {
	repo := "example-repo"
	annotations := map[string]string{"env": "prod"}

	tests := []struct {
		name string
		in   interface {
			CallbackRequest() entities.CallbackRequest
		}
		want entities.CallbackRequest
	}{
		{
			name: "v1 pub key",
			in:   PubKeyVerifyV1{Image: "img", PubKeys: []string{"PEM1"}, Annotations: annotations},
			want: entities.SigstorePubKeyVerify{Image: "img", PubKeys: []string{"PEM1"}, Annotations: annotations},
		},
		{
			name: "v1 keyless",
			in:   KeylessVerifyV1{Image: "img", Keyless: []entities.KeylessInfo{{Issuer: "i", Subject: "s"}}},
			want: entities.SigstoreKeylessVerify{Image: "img", Keyless: []entities.KeylessInfo{{Issuer: "i", Subject: "s"}}},
		},
		{
			name: "v2 pub key",
			in:   PubKeyVerifyV2{Image: "img", PubKeys: []string{"PEM1"}},
			want: entities.SigstorePubKeyVerify{Image: "img", PubKeys: []string{"PEM1"}},
		},
		{
			name: "v2 keyless",
			in:   KeylessVerifyV2{Image: "img", Keyless: []entities.KeylessInfo{{Issuer: "i", Subject: "s"}}},
			want: entities.SigstoreKeylessVerify{Image: "img", Keyless: []entities.KeylessInfo{{Issuer: "i", Subject: "s"}}},
		},
		{
			name: "v2 keyless prefix",
			in:   KeylessPrefixVerifyV2{Image: "img", KeylessPrefix: []entities.KeylessPrefixInfo{{Issuer: "i", URLPrefix: "u"}}},
			want: entities.SigstoreKeylessPrefixVerify{Image: "img", KeylessPrefix: []entities.KeylessPrefixInfo{{Issuer: "i", URLPrefix: "u"}}},
		},
		{
			name: "v2 github actions",
			in:   GithubActionsVerifyV2{Image: "img", Owner: "o", Repo: &repo, Annotations: annotations},
			want: entities.SigstoreGithubActionsVerify{Image: "img", Owner: "o", Repo: &repo, Annotations: annotations},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.CallbackRequest())
		})
	}
}

// DNSLookupHost exists only at the canonical layer. No versioned variant may
// convert into it: the canonical-only capability is reachable solely through
// its own decode entry point.
func TestAsymmetry_NoVersionedVariantReachesDNSLookup(t *testing.T) {
	repo := "r"
	versioned := []interface {
		CallbackRequest() entities.CallbackRequest
	}{
		PubKeyVerifyV1{Image: "img", PubKeys: []string{"PEM1"}},
		KeylessVerifyV1{Image: "img"},
		PubKeyVerifyV2{Image: "img"},
		KeylessVerifyV2{Image: "img"},
		KeylessPrefixVerifyV2{Image: "img"},
		GithubActionsVerifyV2{Image: "img", Owner: "o", Repo: &repo},
	}

	for _, req := range versioned {
		converted := req.CallbackRequest()
		_, isDNS := converted.(entities.DNSLookupHost)
		assert.False(t, isDNS, "%T must not convert to the canonical DNS variant", req)
		_, isDigest := converted.(entities.OCIManifestDigest)
		assert.False(t, isDigest, "%T must not convert to the canonical manifest digest variant", req)
	}
}

func TestDecodeManifestDigest(t *testing.T) {
	req, err := DecodeManifestDigest([]byte(`"registry.testing.lan/busybox:1.0.0"`))
	require.NoError(t, err)
	assert.Equal(t, entities.OCIManifestDigest{Image: "registry.testing.lan/busybox:1.0.0"}, req)
}

func TestDecodeLookupHost(t *testing.T) {
	req, err := DecodeLookupHost([]byte(`"example.com"`))
	require.NoError(t, err)
	assert.Equal(t, entities.DNSLookupHost{Host: "example.com"}, req)
}

func TestDecodeStringArguments_Malformed(t *testing.T) {
	for _, payload := range []string{`""`, `42`, `{"host": "example.com"}`, `not json`} {
		_, err := DecodeLookupHost([]byte(payload))
		var malformed *errors.MalformedRequestError
		assert.ErrorAs(t, err, &malformed, "payload %s", payload)

		_, err = DecodeManifestDigest([]byte(payload))
		assert.ErrorAs(t, err, &malformed, "payload %s", payload)
	}
}
