package wireformat

import (
	"encoding/json"
	"fmt"

	"github.com/jvanz/policy-sdk-go/domain/entities"
	"github.com/jvanz/policy-sdk-go/domain/errors"
)

// VersionV2 tags the second released verification request generation.
const VersionV2 = "v2"

// VerificationRequestV2 is the closed set of verification request shapes of
// the v2 generation. It carries every v1 variant with an identical field
// set, plus SigstoreKeylessPrefixVerify and SigstoreGithubActionsVerify.
// The generation is frozen; it never gains or loses a variant.
type VerificationRequestV2 interface {
	// CallbackRequest converts the variant into its canonical equivalent.
	// The conversion copies every field verbatim and cannot fail.
	CallbackRequest() entities.CallbackRequest

	isV2()
}

// PubKeyVerifyV2 requests Sigstore verification using public keys mode.
type PubKeyVerifyV2 struct {
	// Image points to the object (e.g. `registry.testing.lan/busybox:1.0.0`).
	Image string `json:"image" validate:"required"`

	// PubKeys is the list of PEM encoded keys that must have been used to
	// sign the OCI object.
	PubKeys []string `json:"pub_keys" validate:"required"`

	// Annotations that must have been provided by all signers. nil means no
	// annotation constraint.
	Annotations map[string]string `json:"annotations"`
}

// KeylessVerifyV2 requests Sigstore verification using keyless mode.
type KeylessVerifyV2 struct {
	// Image points to the object (e.g. `registry.testing.lan/busybox:1.0.0`).
	Image string `json:"image" validate:"required"`

	// Keyless is the list of keyless signatures that must be found.
	Keyless []entities.KeylessInfo `json:"keyless" validate:"required"`

	// Annotations that must have been provided by all signers. nil means no
	// annotation constraint.
	Annotations map[string]string `json:"annotations"`
}

// KeylessPrefixVerifyV2 requests Sigstore verification using keyless mode,
// matching the signing subject by URL prefix.
type KeylessPrefixVerifyV2 struct {
	// Image points to the object (e.g. `registry.testing.lan/busybox:1.0.0`).
	Image string `json:"image" validate:"required"`

	// KeylessPrefix is the list of keyless signatures that must be found.
	KeylessPrefix []entities.KeylessPrefixInfo `json:"keyless_prefix" validate:"required"`

	// Annotations that must have been provided by all signers. nil means no
	// annotation constraint.
	Annotations map[string]string `json:"annotations"`
}

// GithubActionsVerifyV2 requests Sigstore verification of an object signed
// in keyless mode by a GitHub Actions workflow.
type GithubActionsVerifyV2 struct {
	// Image points to the object (e.g. `registry.testing.lan/busybox:1.0.0`).
	Image string `json:"image" validate:"required"`

	// Owner of the repository (e.g. `octocat`).
	Owner string `json:"owner" validate:"required"`

	// Repo of the GitHub Actions workflow that signed the artifact
	// (e.g. `example-repo`). nil accepts any repository of Owner.
	Repo *string `json:"repo"`

	// Annotations that must have been provided by all signers. nil means no
	// annotation constraint.
	Annotations map[string]string `json:"annotations"`
}

func (PubKeyVerifyV2) isV2()        {}
func (KeylessVerifyV2) isV2()       {}
func (KeylessPrefixVerifyV2) isV2() {}
func (GithubActionsVerifyV2) isV2() {}

// CallbackRequest implements VerificationRequestV2.
func (r PubKeyVerifyV2) CallbackRequest() entities.CallbackRequest {
	return entities.SigstorePubKeyVerify{
		Image:       r.Image,
		PubKeys:     r.PubKeys,
		Annotations: r.Annotations,
	}
}

// CallbackRequest implements VerificationRequestV2.
func (r KeylessVerifyV2) CallbackRequest() entities.CallbackRequest {
	return entities.SigstoreKeylessVerify{
		Image:       r.Image,
		Keyless:     r.Keyless,
		Annotations: r.Annotations,
	}
}

// CallbackRequest implements VerificationRequestV2.
func (r KeylessPrefixVerifyV2) CallbackRequest() entities.CallbackRequest {
	return entities.SigstoreKeylessPrefixVerify{
		Image:         r.Image,
		KeylessPrefix: r.KeylessPrefix,
		Annotations:   r.Annotations,
	}
}

// CallbackRequest implements VerificationRequestV2.
func (r GithubActionsVerifyV2) CallbackRequest() entities.CallbackRequest {
	return entities.SigstoreGithubActionsVerify{
		Image:       r.Image,
		Owner:       r.Owner,
		Repo:        r.Repo,
		Annotations: r.Annotations,
	}
}

// DecodeV2 decodes an internally tagged v2 verification request. The variant
// is selected by the "type" field; an unknown or missing tag, or missing or
// mistyped fields, yield a *errors.MalformedRequestError.
func DecodeV2(payload []byte) (VerificationRequestV2, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, &errors.MalformedRequestError{Version: VersionV2, Err: err}
	}
	if envelope.Type == "" {
		return nil, &errors.MalformedRequestError{
			Version: VersionV2,
			Err:     fmt.Errorf("missing %q tag field", "type"),
		}
	}

	switch envelope.Type {
	case variantPubKeyVerify:
		var req PubKeyVerifyV2
		if err := decodeVariant(VersionV2, envelope.Type, payload, &req); err != nil {
			return nil, err
		}
		return req, nil
	case variantKeylessVerify:
		var req KeylessVerifyV2
		if err := decodeVariant(VersionV2, envelope.Type, payload, &req); err != nil {
			return nil, err
		}
		return req, nil
	case variantKeylessPrefixVerify:
		var req KeylessPrefixVerifyV2
		if err := decodeVariant(VersionV2, envelope.Type, payload, &req); err != nil {
			return nil, err
		}
		return req, nil
	case variantGithubActionsVerify:
		var req GithubActionsVerifyV2
		if err := decodeVariant(VersionV2, envelope.Type, payload, &req); err != nil {
			return nil, err
		}
		return req, nil
	default:
		return nil, &errors.MalformedRequestError{Version: VersionV2, Variant: envelope.Type, Err: errUnknownVariant}
	}
}

// EncodeV2 serializes a v2 request using the internal tagging convention.
// It is the encoder guest SDKs must match byte-for-byte.
func EncodeV2(req VerificationRequestV2) ([]byte, error) {
	switch v := req.(type) {
	case PubKeyVerifyV2:
		return json.Marshal(struct {
			Type string `json:"type"`
			PubKeyVerifyV2
		}{variantPubKeyVerify, v})
	case KeylessVerifyV2:
		return json.Marshal(struct {
			Type string `json:"type"`
			KeylessVerifyV2
		}{variantKeylessVerify, v})
	case KeylessPrefixVerifyV2:
		return json.Marshal(struct {
			Type string `json:"type"`
			KeylessPrefixVerifyV2
		}{variantKeylessPrefixVerify, v})
	case GithubActionsVerifyV2:
		return json.Marshal(struct {
			Type string `json:"type"`
			GithubActionsVerifyV2
		}{variantGithubActionsVerify, v})
	default:
		return nil, fmt.Errorf("unknown v2 variant %T", req)
	}
}
