package ports

import "context"

// ManifestDigester computes the manifest digest of an OCI object.
type ManifestDigester interface {
	// ManifestDigest returns the digest (e.g. `sha256:...`) of the manifest
	// the image reference currently points at.
	ManifestDigest(ctx context.Context, image string) (string, error)
}
