// Package wireformat defines the versioned JSON request schemas a guest
// policy uses to ask the host for capabilities, and their conversion into
// the canonical entities.CallbackRequest union consumed by the dispatcher.
//
// These types are an ABI contract between independently deployed guest and
// host builds. A released generation is frozen: no variant is ever removed
// or reshaped, and new capabilities are only added as new variants of the
// current generation. Every versioned variant converts losslessly into
// exactly one canonical variant via its CallbackRequest method; the sealed
// union interfaces make a missing conversion arm a compile error rather
// than a runtime one.
//
// Tagging conventions (guest and host must agree byte-for-byte):
//   - v1 requests are externally tagged: a wrapper object whose single key
//     is the variant name and whose value is the field struct, e.g.
//     {"SigstorePubKeyVerify": {"image": ..., "pub_keys": [...]}}.
//   - v2 requests are internally tagged through a "type" field, e.g.
//     {"type": "SigstorePubKeyVerify", "image": ..., "pub_keys": [...]}.
//
// Canonical-only capabilities (manifest digest, DNS host lookup) have no
// versioned wrapper at all: their payload is the bare JSON string argument.
package wireformat

import (
	"github.com/go-playground/validator/v10"

	"github.com/jvanz/policy-sdk-go/domain/entities"
)

// validate is a package-level singleton; constructing a validator per decode
// is expensive.
var validate = validator.New()

// Variant names shared by every schema generation that carries them.
const (
	variantPubKeyVerify        = "SigstorePubKeyVerify"
	variantKeylessVerify       = "SigstoreKeylessVerify"
	variantKeylessPrefixVerify = "SigstoreKeylessPrefixVerify"
	variantGithubActionsVerify = "SigstoreGithubActionsVerify"
)

// VerificationResponse is the wire response for every signature
// verification request.
type VerificationResponse struct {
	// IsTrusted reports whether all requested constraints were satisfied.
	IsTrusted bool `json:"is_trusted"`

	// Digest is the checked manifest digest of the verified object.
	Digest string `json:"digest"`
}

// ManifestDigestResponse is the wire response for an OCI manifest digest
// request.
type ManifestDigestResponse struct {
	Digest string `json:"digest"`
}

// LookupHostResponse is the wire response for a DNS host lookup request.
type LookupHostResponse struct {
	// IPs holds the resolved addresses, in resolver order.
	IPs []string `json:"ips"`
}

// VerificationResponseFrom converts a domain verification result into its
// wire representation.
func VerificationResponseFrom(res *entities.VerificationResult) VerificationResponse {
	return VerificationResponse{IsTrusted: res.IsTrusted, Digest: res.Digest}
}
