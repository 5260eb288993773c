package ports

import (
	"context"

	"github.com/jvanz/policy-sdk-go/domain/entities"
)

// ImageVerifier performs Sigstore signature verification of OCI objects.
// One method per trust model; every method checks that all listed signers
// (and, when non-nil, all annotations) are satisfied.
//
// Implementations own the cryptographic material handling. The dispatcher
// never inspects it.
type ImageVerifier interface {
	// VerifyPubKeys checks that the object was signed by every PEM encoded
	// public key in pubKeys.
	VerifyPubKeys(ctx context.Context, image string, pubKeys []string, annotations map[string]string) (*entities.VerificationResult, error)

	// VerifyKeyless checks that a signature exists for every exact-match
	// keyless identity in keyless.
	VerifyKeyless(ctx context.Context, image string, keyless []entities.KeylessInfo, annotations map[string]string) (*entities.VerificationResult, error)

	// VerifyKeylessPrefix checks that a signature exists for every
	// prefix-match keyless identity in keylessPrefix.
	VerifyKeylessPrefix(ctx context.Context, image string, keylessPrefix []entities.KeylessPrefixInfo, annotations map[string]string) (*entities.VerificationResult, error)

	// VerifyGithubActions checks that the object was signed in keyless mode
	// by a GitHub Actions workflow of owner (and, when repo is non-nil, of
	// that specific repository).
	VerifyGithubActions(ctx context.Context, image string, owner string, repo *string, annotations map[string]string) (*entities.VerificationResult, error)
}
