package hostfuncs

import (
	"context"
	"encoding/json"
	"fmt"
)

// HostFunc is a generic signature for a typed host function: a context plus
// a typed request, returning a typed response. Host embedders use it with
// WithHandler to expose operations beyond the built-in capability bundle.
type HostFunc[Req any, Resp any] func(context.Context, Req) Resp

// ByteHandler accepts raw JSON bytes and returns raw JSON bytes. It is the
// common shape WASM runtimes shuttle across the guest boundary.
type ByteHandler func(context.Context, []byte) ([]byte, error)

// NewJSONHandler wraps a typed HostFunc into a ByteHandler, owning the JSON
// unmarshalling of the request and marshalling of the response.
func NewJSONHandler[Req any, Resp any](fn HostFunc[Req, Resp]) ByteHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		var req Req
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("failed to unmarshal request: %w", err)
		}

		resp := fn(ctx, req)

		respBytes, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return respBytes, nil
	}
}
