package hostfuncs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jvanz/policy-sdk-go/domain/entities"
	"github.com/jvanz/policy-sdk-go/domain/ports"
	"github.com/jvanz/policy-sdk-go/wireformat"
)

// Dispatcher routes canonical callback requests to the collaborators that
// actually perform them. It holds no state beyond the collaborator ports
// and is safe for concurrent use.
type Dispatcher struct {
	digester ports.ManifestDigester
	verifier ports.ImageVerifier
	resolver ports.HostResolver
}

// NewDispatcher creates a Dispatcher over the given collaborators.
func NewDispatcher(digester ports.ManifestDigester, verifier ports.ImageVerifier, resolver ports.HostResolver) *Dispatcher {
	return &Dispatcher{
		digester: digester,
		verifier: verifier,
		resolver: resolver,
	}
}

// Dispatch routes a canonical callback request to its collaborator and
// returns the wire response value. This switch is the only place the host
// pattern-matches on the canonical union; a canonical variant without an
// arm here is a build defect, not a runtime condition.
func (d *Dispatcher) Dispatch(ctx context.Context, req entities.CallbackRequest) (any, error) {
	switch r := req.(type) {
	case entities.OCIManifestDigest:
		if d.digester == nil {
			return nil, fmt.Errorf("manifest digest capability not configured")
		}
		digest, err := d.digester.ManifestDigest(ctx, r.Image)
		if err != nil {
			return nil, err
		}
		return wireformat.ManifestDigestResponse{Digest: digest}, nil

	case entities.SigstorePubKeyVerify:
		if d.verifier == nil {
			return nil, fmt.Errorf("sigstore verification capability not configured")
		}
		res, err := d.verifier.VerifyPubKeys(ctx, r.Image, r.PubKeys, r.Annotations)
		if err != nil {
			return nil, err
		}
		return wireformat.VerificationResponseFrom(res), nil

	case entities.SigstoreKeylessVerify:
		if d.verifier == nil {
			return nil, fmt.Errorf("sigstore verification capability not configured")
		}
		res, err := d.verifier.VerifyKeyless(ctx, r.Image, r.Keyless, r.Annotations)
		if err != nil {
			return nil, err
		}
		return wireformat.VerificationResponseFrom(res), nil

	case entities.SigstoreKeylessPrefixVerify:
		if d.verifier == nil {
			return nil, fmt.Errorf("sigstore verification capability not configured")
		}
		res, err := d.verifier.VerifyKeylessPrefix(ctx, r.Image, r.KeylessPrefix, r.Annotations)
		if err != nil {
			return nil, err
		}
		return wireformat.VerificationResponseFrom(res), nil

	case entities.SigstoreGithubActionsVerify:
		if d.verifier == nil {
			return nil, fmt.Errorf("sigstore verification capability not configured")
		}
		res, err := d.verifier.VerifyGithubActions(ctx, r.Image, r.Owner, r.Repo, r.Annotations)
		if err != nil {
			return nil, err
		}
		return wireformat.VerificationResponseFrom(res), nil

	case entities.DNSLookupHost:
		if d.resolver == nil {
			return nil, fmt.Errorf("dns lookup capability not configured")
		}
		ips, err := d.resolver.LookupHost(ctx, r.Host)
		if err != nil {
			return nil, err
		}
		return wireformat.LookupHostResponse{IPs: ips}, nil

	default:
		return nil, fmt.Errorf("unhandled callback request type %T", req)
	}
}

// handleVerify returns the ByteHandler for one verification schema
// generation: decode the versioned payload, convert to canonical form,
// dispatch. Errors come back to the guest as ErrorResponse JSON, never as
// a trap.
func (d *Dispatcher) handleVerify(version string) ByteHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		req, err := wireformat.Decode(version, payload)
		if err != nil {
			return FromError(err).ToJSON(), nil
		}
		return d.respond(ctx, req)
	}
}

// handleManifestDigest handles the canonical-only manifest digest
// capability.
func (d *Dispatcher) handleManifestDigest(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := wireformat.DecodeManifestDigest(payload)
	if err != nil {
		return FromError(err).ToJSON(), nil
	}
	return d.respond(ctx, req)
}

// handleLookupHost handles the canonical-only DNS host lookup capability.
func (d *Dispatcher) handleLookupHost(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := wireformat.DecodeLookupHost(payload)
	if err != nil {
		return FromError(err).ToJSON(), nil
	}
	return d.respond(ctx, req)
}

func (d *Dispatcher) respond(ctx context.Context, req entities.CallbackRequest) ([]byte, error) {
	resp, err := d.Dispatch(ctx, req)
	if err != nil {
		return FromError(err).ToJSON(), nil
	}
	return json.Marshal(resp)
}
