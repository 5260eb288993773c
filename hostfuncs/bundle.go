package hostfuncs

import "github.com/jvanz/policy-sdk-go/wireformat"

// Operation names guests invoke. The version prefix is the out-of-band
// version tag of the decode boundary: the payload shape is fixed by the
// operation the guest called, so no version negotiation happens per call.
//
// Manifest digest and DNS host lookup were introduced directly at the
// canonical layer and therefore have a single, unversioned payload shape
// behind their v1 operation names.
const (
	OpVerifyV1       = "v1/verify"
	OpVerifyV2       = "v2/verify"
	OpManifestDigest = "v1/oci_manifest_digest"
	OpLookupHost     = "v1/dns_lookup_host"
)

// CapabilityBundle returns the full set of callback operations served by
// the given dispatcher.
func CapabilityBundle(d *Dispatcher) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			OpVerifyV1:       d.handleVerify(wireformat.VersionV1),
			OpVerifyV2:       d.handleVerify(wireformat.VersionV2),
			OpManifestDigest: d.handleManifestDigest,
			OpLookupHost:     d.handleLookupHost,
		},
	}
}
