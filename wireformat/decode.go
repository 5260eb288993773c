package wireformat

import (
	"encoding/json"
	stdErrors "errors"

	"github.com/jvanz/policy-sdk-go/domain/entities"
	"github.com/jvanz/policy-sdk-go/domain/errors"
)

var errUnknownVariant = stdErrors.New("unknown variant name")

// Decode is the host's decode boundary for verification requests. The
// version tag travels out-of-band (it is part of the host function name the
// guest invoked); the payload is decoded into that version's union and
// converted into canonical form.
//
// An unknown version yields *errors.UnsupportedVersionError; a payload that
// does not match the version's shape yields *errors.MalformedRequestError.
// Conversion itself cannot fail.
func Decode(version string, payload []byte) (entities.CallbackRequest, error) {
	switch version {
	case VersionV1:
		req, err := DecodeV1(payload)
		if err != nil {
			return nil, err
		}
		return req.CallbackRequest(), nil
	case VersionV2:
		req, err := DecodeV2(payload)
		if err != nil {
			return nil, err
		}
		return req.CallbackRequest(), nil
	default:
		return nil, &errors.UnsupportedVersionError{Version: version}
	}
}

// DecodeManifestDigest decodes the payload of a manifest digest request.
// The capability has no versioned wrapper: the payload is the bare JSON
// string holding the image reference.
func DecodeManifestDigest(payload []byte) (entities.OCIManifestDigest, error) {
	image, err := decodeStringArgument("OciManifestDigest", payload)
	if err != nil {
		return entities.OCIManifestDigest{}, err
	}
	return entities.OCIManifestDigest{Image: image}, nil
}

// DecodeLookupHost decodes the payload of a DNS host lookup request.
// Like the manifest digest capability, it has no versioned wrapper: the
// payload is the bare JSON string holding the hostname.
func DecodeLookupHost(payload []byte) (entities.DNSLookupHost, error) {
	host, err := decodeStringArgument("DNSLookupHost", payload)
	if err != nil {
		return entities.DNSLookupHost{}, err
	}
	return entities.DNSLookupHost{Host: host}, nil
}

func decodeStringArgument(variant string, payload []byte) (string, error) {
	var arg string
	if err := json.Unmarshal(payload, &arg); err != nil {
		return "", &errors.MalformedRequestError{Version: VersionV1, Variant: variant, Err: err}
	}
	if arg == "" {
		return "", &errors.MalformedRequestError{Version: VersionV1, Variant: variant, Err: stdErrors.New("empty argument")}
	}
	return arg, nil
}

// decodeVariant unmarshals one variant's field struct and checks its
// required fields, mapping both failure modes to MalformedRequestError.
func decodeVariant(version, variant string, raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &errors.MalformedRequestError{Version: version, Variant: variant, Err: err}
	}
	if err := validate.Struct(v); err != nil {
		return &errors.MalformedRequestError{Version: version, Variant: variant, Err: err}
	}
	return nil
}
