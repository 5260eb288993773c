// Package sigstore implements the signature verification collaborator over
// cosign. Every verification mode of the callback schema maps onto a cosign
// CheckOpts configuration; the guest-facing semantics (all listed signers
// must match, annotations must have been provided by every signer) are
// enforced here.
package sigstore

import (
	"context"
	"crypto"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/sigstore/cosign/v2/pkg/cosign"
	"github.com/sigstore/cosign/v2/pkg/fulcioroots"
	ociremote "github.com/sigstore/cosign/v2/pkg/oci/remote"
	"github.com/sigstore/sigstore/pkg/cryptoutils"
	sigsignature "github.com/sigstore/sigstore/pkg/signature"

	"github.com/jvanz/policy-sdk-go/domain/entities"
	"github.com/jvanz/policy-sdk-go/domain/errors"
)

// githubActionsIssuer is the OIDC issuer of certificates emitted for
// GitHub Actions workflows.
const githubActionsIssuer = "https://token.actions.githubusercontent.com"

// Verifier checks Sigstore signatures of OCI objects.
// It implements ports.ImageVerifier.
type Verifier struct {
	remoteOpts []ociremote.Option
	ignoreTlog bool
	ignoreSCT  bool
}

// VerifierOption is a functional option for configuring a Verifier.
type VerifierOption func(*Verifier)

// WithRemoteOptions appends registry access options (authentication,
// transport) used when fetching signatures.
func WithRemoteOptions(opts ...ociremote.Option) VerifierOption {
	return func(v *Verifier) {
		v.remoteOpts = append(v.remoteOpts, opts...)
	}
}

// WithTransparencyLog toggles Rekor transparency log checks. Disabled by
// default: air-gapped hosts cannot reach the public log.
func WithTransparencyLog(enabled bool) VerifierOption {
	return func(v *Verifier) {
		v.ignoreTlog = !enabled
	}
}

// WithSCTVerification toggles certificate transparency (SCT) checks for
// keyless certificates. Disabled by default, matching WithTransparencyLog.
func WithSCTVerification(enabled bool) VerifierOption {
	return func(v *Verifier) {
		v.ignoreSCT = !enabled
	}
}

// NewVerifier creates a Verifier with the given options.
func NewVerifier(opts ...VerifierOption) *Verifier {
	v := &Verifier{
		ignoreTlog: true,
		ignoreSCT:  true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifyPubKeys implements ports.ImageVerifier. Every key in pubKeys must
// have produced a valid signature over the object.
func (v *Verifier) VerifyPubKeys(ctx context.Context, image string, pubKeys []string, annotations map[string]string) (*entities.VerificationResult, error) {
	ref, err := name.ParseReference(image)
	if err != nil {
		return nil, &errors.VerificationError{Mode: "pub_keys", Image: image, Err: err}
	}

	for _, pem := range pubKeys {
		pub, err := cryptoutils.UnmarshalPEMToPublicKey([]byte(pem))
		if err != nil {
			return nil, &errors.VerificationError{Mode: "pub_keys", Image: image, Err: fmt.Errorf("cannot load public key: %w", err)}
		}
		sigVerifier, err := sigsignature.LoadVerifier(pub, crypto.SHA256)
		if err != nil {
			return nil, &errors.VerificationError{Mode: "pub_keys", Image: image, Err: err}
		}

		co := v.baseCheckOpts(annotations)
		co.SigVerifier = sigVerifier
		if _, _, err := cosign.VerifyImageSignatures(ctx, ref, co); err != nil {
			return nil, &errors.VerificationError{Mode: "pub_keys", Image: image, Err: err}
		}
	}

	return v.trustedResult(image, ref, "pub_keys")
}

// VerifyKeyless implements ports.ImageVerifier. A valid signature must exist
// for every identity in keyless, matched exactly.
func (v *Verifier) VerifyKeyless(ctx context.Context, image string, keyless []entities.KeylessInfo, annotations map[string]string) (*entities.VerificationResult, error) {
	identities := make([]cosign.Identity, 0, len(keyless))
	for _, k := range keyless {
		identities = append(identities, cosign.Identity{
			Issuer:  k.Issuer,
			Subject: k.Subject,
		})
	}
	return v.verifyKeylessIdentities(ctx, image, "keyless", identities, annotations)
}

// VerifyKeylessPrefix implements ports.ImageVerifier. A valid signature must
// exist for every identity in keylessPrefix, with the subject matched by URL
// prefix. Prefixes are sanitized with a trailing `/` so that
// `https://github.com/acme` cannot match
// `https://github.com/acme-malicious/`.
func (v *Verifier) VerifyKeylessPrefix(ctx context.Context, image string, keylessPrefix []entities.KeylessPrefixInfo, annotations map[string]string) (*entities.VerificationResult, error) {
	identities := make([]cosign.Identity, 0, len(keylessPrefix))
	for _, k := range keylessPrefix {
		prefix := k.URLPrefix
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		identities = append(identities, cosign.Identity{
			Issuer:        k.Issuer,
			SubjectRegExp: "^" + regexp.QuoteMeta(prefix),
		})
	}
	return v.verifyKeylessIdentities(ctx, image, "keyless_prefix", identities, annotations)
}

// VerifyGithubActions implements ports.ImageVerifier. The signing identity
// must be a GitHub Actions workflow of owner; when repo is non-nil the
// workflow must belong to that repository.
func (v *Verifier) VerifyGithubActions(ctx context.Context, image string, owner string, repo *string, annotations map[string]string) (*entities.VerificationResult, error) {
	if owner == "" {
		return nil, &errors.VerificationError{Mode: "github_actions", Image: image, Err: fmt.Errorf("owner cannot be empty")}
	}
	prefix := "https://github.com/" + owner + "/"
	if repo != nil && *repo != "" {
		prefix += *repo + "/"
	}
	identities := []cosign.Identity{{
		Issuer:        githubActionsIssuer,
		SubjectRegExp: "^" + regexp.QuoteMeta(prefix),
	}}
	return v.verifyKeylessIdentities(ctx, image, "github_actions", identities, annotations)
}

// verifyKeylessIdentities runs one cosign verification pass per identity:
// each listed identity must have signed, not just any of them.
func (v *Verifier) verifyKeylessIdentities(ctx context.Context, image, mode string, identities []cosign.Identity, annotations map[string]string) (*entities.VerificationResult, error) {
	ref, err := name.ParseReference(image)
	if err != nil {
		return nil, &errors.VerificationError{Mode: mode, Image: image, Err: err}
	}

	roots, err := fulcioroots.Get()
	if err != nil {
		return nil, &errors.VerificationError{Mode: mode, Image: image, Err: fmt.Errorf("cannot load Fulcio roots: %w", err)}
	}
	intermediates, err := fulcioroots.GetIntermediates()
	if err != nil {
		return nil, &errors.VerificationError{Mode: mode, Image: image, Err: fmt.Errorf("cannot load Fulcio intermediates: %w", err)}
	}

	for _, identity := range identities {
		co := v.baseCheckOpts(annotations)
		co.RootCerts = roots
		co.IntermediateCerts = intermediates
		co.Identities = []cosign.Identity{identity}
		if _, _, err := cosign.VerifyImageSignatures(ctx, ref, co); err != nil {
			return nil, &errors.VerificationError{Mode: mode, Image: image, Err: err}
		}
	}

	return v.trustedResult(image, ref, mode)
}

func (v *Verifier) baseCheckOpts(annotations map[string]string) *cosign.CheckOpts {
	return &cosign.CheckOpts{
		RegistryClientOpts: v.remoteOpts,
		Annotations:        annotationClaims(annotations),
		ClaimVerifier:      cosign.SimpleClaimVerifier,
		IgnoreTlog:         v.ignoreTlog,
		IgnoreSCT:          v.ignoreSCT,
	}
}

func (v *Verifier) trustedResult(image string, ref name.Reference, mode string) (*entities.VerificationResult, error) {
	digest, err := ociremote.ResolveDigest(ref, v.remoteOpts...)
	if err != nil {
		return nil, &errors.VerificationError{Mode: mode, Image: image, Err: fmt.Errorf("cannot resolve digest: %w", err)}
	}
	return &entities.VerificationResult{
		IsTrusted: true,
		Digest:    digest.DigestStr(),
	}, nil
}

// annotationClaims widens the wire annotation constraint into the claim map
// cosign consumes. nil stays nil: no constraint at all.
func annotationClaims(annotations map[string]string) map[string]any {
	if annotations == nil {
		return nil
	}
	claims := make(map[string]any, len(annotations))
	for k, val := range annotations {
		claims[k] = val
	}
	return claims
}
