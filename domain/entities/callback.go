package entities

// CallbackRequest is the version-independent union of every capability a
// sandboxed policy can ask the host to perform. The host dispatcher pattern
// matches on the concrete variant type; versioned wire requests are converted
// into this union before dispatch.
//
// The union is a superset of every variant ever shipped in a versioned
// schema generation, plus variants that were introduced directly at this
// layer and have no versioned wrapper (DNSLookupHost).
type CallbackRequest interface {
	isCallbackRequest()
}

// OCIManifestDigest requests the computation of the manifest digest of an
// OCI object (an image or anything else stored in an OCI registry).
type OCIManifestDigest struct {
	// Image points to the object (e.g. `registry.testing.lan/busybox:1.0.0`).
	Image string `json:"image"`
}

// SigstorePubKeyVerify requests Sigstore verification of an OCI object using
// public keys mode.
type SigstorePubKeyVerify struct {
	// Image points to the object (e.g. `registry.testing.lan/busybox:1.0.0`).
	Image string `json:"image"`

	// PubKeys is the list of PEM encoded keys that must have been used to
	// sign the OCI object.
	PubKeys []string `json:"pub_keys"`

	// Annotations that must have been provided by all signers when they
	// signed the OCI artifact. A nil map means no annotation constraint,
	// which is distinct from an empty (but present) constraint set.
	Annotations map[string]string `json:"annotations"`
}

// SigstoreKeylessVerify requests Sigstore verification of an OCI object
// using keyless mode.
type SigstoreKeylessVerify struct {
	// Image points to the object (e.g. `registry.testing.lan/busybox:1.0.0`).
	Image string `json:"image"`

	// Keyless is the list of keyless signatures that must be found.
	Keyless []KeylessInfo `json:"keyless"`

	// Annotations that must have been provided by all signers when they
	// signed the OCI artifact. nil means no annotation constraint.
	Annotations map[string]string `json:"annotations"`
}

// SigstoreKeylessPrefixVerify requests Sigstore verification of an OCI
// object using keyless mode, where the subject is matched by URL prefix
// instead of exact value.
type SigstoreKeylessPrefixVerify struct {
	// Image points to the object (e.g. `registry.testing.lan/busybox:1.0.0`).
	Image string `json:"image"`

	// KeylessPrefix is the list of keyless signatures that must be found.
	KeylessPrefix []KeylessPrefixInfo `json:"keyless_prefix"`

	// Annotations that must have been provided by all signers when they
	// signed the OCI artifact. nil means no annotation constraint.
	Annotations map[string]string `json:"annotations"`
}

// SigstoreGithubActionsVerify requests Sigstore verification of an OCI
// object signed in keyless mode by a GitHub Actions workflow.
type SigstoreGithubActionsVerify struct {
	// Image points to the object (e.g. `registry.testing.lan/busybox:1.0.0`).
	Image string `json:"image"`

	// Owner of the repository (e.g. `octocat`).
	Owner string `json:"owner"`

	// Repo of the GitHub Actions workflow that signed the artifact
	// (e.g. `example-repo`). nil accepts any repository of Owner.
	Repo *string `json:"repo"`

	// Annotations that must have been provided by all signers when they
	// signed the OCI artifact. nil means no annotation constraint.
	Annotations map[string]string `json:"annotations"`
}

// DNSLookupHost requests the lookup of the addresses for a hostname.
//
// This variant exists only at the canonical layer: no versioned request
// schema carries it, so guests submit it through its own host function
// rather than through a verification schema generation.
type DNSLookupHost struct {
	// Host is the hostname to resolve (e.g. `example.com`).
	Host string `json:"host"`
}

func (OCIManifestDigest) isCallbackRequest()           {}
func (SigstorePubKeyVerify) isCallbackRequest()        {}
func (SigstoreKeylessVerify) isCallbackRequest()       {}
func (SigstoreKeylessPrefixVerify) isCallbackRequest() {}
func (SigstoreGithubActionsVerify) isCallbackRequest() {}
func (DNSLookupHost) isCallbackRequest()               {}
