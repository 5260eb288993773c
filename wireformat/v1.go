package wireformat

import (
	"encoding/json"
	"fmt"

	"github.com/jvanz/policy-sdk-go/domain/entities"
	"github.com/jvanz/policy-sdk-go/domain/errors"
)

// VersionV1 tags the first released verification request generation.
const VersionV1 = "v1"

// VerificationRequestV1 is the closed set of verification request shapes of
// the v1 generation: SigstorePubKeyVerify and SigstoreKeylessVerify. The
// generation is frozen; it never gains or loses a variant.
//
// Every variant must implement CallbackRequest, so a variant that cannot be
// converted into the canonical union does not compile.
type VerificationRequestV1 interface {
	// CallbackRequest converts the variant into its canonical equivalent.
	// The conversion copies every field verbatim and cannot fail.
	CallbackRequest() entities.CallbackRequest

	isV1()
}

// PubKeyVerifyV1 requests Sigstore verification using public keys mode.
type PubKeyVerifyV1 struct {
	// Image points to the object (e.g. `registry.testing.lan/busybox:1.0.0`).
	Image string `json:"image" validate:"required"`

	// PubKeys is the list of PEM encoded keys that must have been used to
	// sign the OCI object.
	PubKeys []string `json:"pub_keys" validate:"required"`

	// Annotations that must have been provided by all signers. nil means no
	// annotation constraint; an empty map is a present, empty constraint.
	Annotations map[string]string `json:"annotations"`
}

// KeylessVerifyV1 requests Sigstore verification using keyless mode.
type KeylessVerifyV1 struct {
	// Image points to the object (e.g. `registry.testing.lan/busybox:1.0.0`).
	Image string `json:"image" validate:"required"`

	// Keyless is the list of keyless signatures that must be found.
	Keyless []entities.KeylessInfo `json:"keyless" validate:"required"`

	// Annotations that must have been provided by all signers. nil means no
	// annotation constraint.
	Annotations map[string]string `json:"annotations"`
}

func (PubKeyVerifyV1) isV1()  {}
func (KeylessVerifyV1) isV1() {}

// CallbackRequest implements VerificationRequestV1.
func (r PubKeyVerifyV1) CallbackRequest() entities.CallbackRequest {
	return entities.SigstorePubKeyVerify{
		Image:       r.Image,
		PubKeys:     r.PubKeys,
		Annotations: r.Annotations,
	}
}

// CallbackRequest implements VerificationRequestV1.
func (r KeylessVerifyV1) CallbackRequest() entities.CallbackRequest {
	return entities.SigstoreKeylessVerify{
		Image:       r.Image,
		Keyless:     r.Keyless,
		Annotations: r.Annotations,
	}
}

// DecodeV1 decodes an externally tagged v1 verification request. A payload
// whose variant tag is unknown, or whose fields are missing or mistyped,
// yields a *errors.MalformedRequestError.
func DecodeV1(payload []byte) (VerificationRequestV1, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, &errors.MalformedRequestError{Version: VersionV1, Err: err}
	}
	if len(envelope) != 1 {
		return nil, &errors.MalformedRequestError{
			Version: VersionV1,
			Err:     fmt.Errorf("expected exactly one variant key, got %d", len(envelope)),
		}
	}

	for tag, raw := range envelope {
		switch tag {
		case variantPubKeyVerify:
			var req PubKeyVerifyV1
			if err := decodeVariant(VersionV1, tag, raw, &req); err != nil {
				return nil, err
			}
			return req, nil
		case variantKeylessVerify:
			var req KeylessVerifyV1
			if err := decodeVariant(VersionV1, tag, raw, &req); err != nil {
				return nil, err
			}
			return req, nil
		default:
			return nil, &errors.MalformedRequestError{Version: VersionV1, Variant: tag, Err: errUnknownVariant}
		}
	}

	// Unreachable: the envelope holds exactly one key.
	return nil, &errors.MalformedRequestError{Version: VersionV1, Err: errUnknownVariant}
}

// EncodeV1 serializes a v1 request using the external tagging convention.
// It is the encoder guest SDKs must match byte-for-byte.
func EncodeV1(req VerificationRequestV1) ([]byte, error) {
	switch v := req.(type) {
	case PubKeyVerifyV1:
		return json.Marshal(map[string]PubKeyVerifyV1{variantPubKeyVerify: v})
	case KeylessVerifyV1:
		return json.Marshal(map[string]KeylessVerifyV1{variantKeylessVerify: v})
	default:
		return nil, fmt.Errorf("unknown v1 variant %T", req)
	}
}
