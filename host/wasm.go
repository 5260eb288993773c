package host

import (
	"context"
	"encoding/json"

	"github.com/tetratelabs/wazero/api"
)

// hostModuleName is the import namespace policies link their capability
// calls against.
const hostModuleName = "policy_host"

func (e *Executor) registerHostFunctions(ctx context.Context) error {
	builder := e.runtime.NewHostModuleBuilder(hostModuleName)

	// One export per registered capability operation. The guest passes a
	// packed ptr/len pointing at the request payload and receives a packed
	// ptr/len pointing at the JSON response, or 0 when the guest side of the
	// ABI (memory, allocate export) is unusable.
	for _, name := range e.registry.Names() {
		localName := name
		builder.NewFunctionBuilder().
			WithFunc(func(ctx context.Context, m api.Module, packed uint64) uint64 {
				payload, ok := readGuestPayload(m, packed)
				if !ok {
					return 0
				}
				resp, _ := e.registry.Invoke(ctx, localName, payload)
				return writeGuestResponse(ctx, m, resp)
			}).
			Export(name)
	}

	// Mandatory log_message function: policies cannot write to stderr, so
	// their log records travel through the host logger.
	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, packed uint64) {
			payload, ok := readGuestPayload(m, packed)
			if !ok {
				return
			}

			var logMsg struct {
				Level   string `json:"level"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(payload, &logMsg); err == nil {
				e.logger.Info("policy log", "level", logMsg.Level, "msg", logMsg.Message)
			} else {
				e.logger.Info("policy log (raw)", "payload", string(payload))
			}
		}).
		Export("log_message")

	_, err := builder.Instantiate(ctx)
	return err
}

// readGuestPayload reads the packed ptr/len argument out of guest memory.
func readGuestPayload(m api.Module, packed uint64) ([]byte, bool) {
	mem := m.Memory()
	if mem == nil {
		return nil, false
	}
	return mem.Read(uint32(packed>>32), uint32(packed))
}

// writeGuestResponse allocates guest memory for resp and returns the packed
// ptr/len the guest unpacks. A guest without a usable `allocate` export gets
// a 0 (null response) instead of a trap.
func writeGuestResponse(ctx context.Context, m api.Module, resp []byte) uint64 {
	allocate := m.ExportedFunction("allocate")
	if allocate == nil {
		return 0
	}
	results, err := allocate.Call(ctx, uint64(len(resp)))
	if err != nil || len(results) == 0 {
		return 0
	}
	ptr := uint32(results[0])
	if !m.Memory().Write(ptr, resp) {
		return 0
	}
	return (uint64(ptr) << 32) | uint64(len(resp))
}
