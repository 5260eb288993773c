// Package oci implements the manifest digest collaborator over
// go-containerregistry.
package oci

import (
	"context"

	"github.com/google/go-containerregistry/pkg/crane"

	"github.com/jvanz/policy-sdk-go/domain/errors"
)

// Client computes manifest digests against remote OCI registries.
// It implements ports.ManifestDigester.
type Client struct {
	opts []crane.Option
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*Client)

// WithCraneOptions appends registry access options (authentication,
// transport, platform) passed through to crane.
func WithCraneOptions(opts ...crane.Option) ClientOption {
	return func(c *Client) {
		c.opts = append(c.opts, opts...)
	}
}

// NewClient creates a registry client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ManifestDigest implements ports.ManifestDigester. The image reference is
// resolved against the registry it names; no local caching is performed.
func (c *Client) ManifestDigest(ctx context.Context, image string) (string, error) {
	opts := make([]crane.Option, 0, len(c.opts)+1)
	opts = append(opts, c.opts...)
	opts = append(opts, crane.WithContext(ctx))

	digest, err := crane.Digest(image, opts...)
	if err != nil {
		return "", &errors.RegistryError{Operation: "manifest_digest", Image: image, Err: err}
	}
	return digest, nil
}
