package entities

// KeylessInfo identifies one accepted keyless signing identity by exact
// match of the OIDC issuer and subject.
type KeylessInfo struct {
	// Issuer is the OIDC issuer that emitted the signing certificate
	// (e.g. `https://github.com/login/oauth`).
	Issuer string `json:"issuer"`

	// Subject is the exact identity the certificate was issued to
	// (e.g. `mail@example.com`).
	Subject string `json:"subject"`
}

// KeylessPrefixInfo identifies one accepted keyless signing identity where
// the subject is matched by URL prefix rather than exact value. This is a
// distinct type from KeylessInfo: prefix matching is a materially different
// guarantee and must not be confusable with exact matching.
type KeylessPrefixInfo struct {
	// Issuer is the OIDC issuer that emitted the signing certificate.
	Issuer string `json:"issuer"`

	// URLPrefix is sanitized by the verifier to prevent typosquatting
	// (a trailing `/` is enforced before matching).
	URLPrefix string `json:"url_prefix"`
}

// VerificationResult is the outcome of a signature verification performed
// by an ImageVerifier collaborator.
type VerificationResult struct {
	// IsTrusted reports whether every requested constraint was satisfied.
	IsTrusted bool `json:"is_trusted"`

	// Digest is the checked manifest digest of the verified object.
	Digest string `json:"digest"`
}
