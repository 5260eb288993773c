package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/jvanz/policy-sdk-go/domain/entities"
	"github.com/jvanz/policy-sdk-go/hostfuncs"
)

// Executor manages the lifecycle of sandboxed policy modules.
type Executor struct {
	runtime  wazero.Runtime
	registry *hostfuncs.HandlerRegistry
	logger   *slog.Logger
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	// An empty registry still serves guests; every capability call then
	// answers with a NOT_FOUND error response.
	if e.registry == nil {
		reg, err := hostfuncs.NewRegistry()
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		e.registry = reg
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := e.registerHostFunctions(ctx); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// Close releases resources held by the executor.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// PolicyInstance represents an instantiated policy module.
type PolicyInstance struct {
	module api.Module
}

// LoadPolicy instantiates a policy WASM module.
func (e *Executor) LoadPolicy(ctx context.Context, wasmBytes []byte) (*PolicyInstance, error) {
	mod, err := e.runtime.Instantiate(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	return &PolicyInstance{module: mod}, nil
}

// ValidateSettings calls the policy's `validate_settings` export with the
// serialized policy settings.
func (p *PolicyInstance) ValidateSettings(ctx context.Context, settings []byte) (entities.SettingsValidationResponse, error) {
	var response entities.SettingsValidationResponse
	packed, err := p.callRaw(ctx, "validate_settings", settings)
	if err != nil {
		return response, err
	}
	err = p.unmarshalPacked(packed, &response)
	return response, err
}

// Validate calls the policy's `validate` export with the serialized
// request under evaluation and returns its verdict.
func (p *PolicyInstance) Validate(ctx context.Context, request []byte) (entities.ValidationResponse, error) {
	var response entities.ValidationResponse
	packed, err := p.callRaw(ctx, "validate", request)
	if err != nil {
		return response, err
	}
	err = p.unmarshalPacked(packed, &response)
	return response, err
}

// Close releases the policy instance.
func (p *PolicyInstance) Close(ctx context.Context) error {
	return p.module.Close(ctx)
}

func (p *PolicyInstance) callRaw(ctx context.Context, name string, input []byte) (uint64, error) {
	f := p.module.ExportedFunction(name)
	if f == nil {
		return 0, fmt.Errorf("export %q not found", name)
	}

	var results []uint64
	var err error

	if len(input) == 0 {
		results, err = f.Call(ctx)
	} else {
		allocate := p.module.ExportedFunction("allocate")
		if allocate == nil {
			return 0, fmt.Errorf("guest does not export 'allocate'")
		}
		resAlloc, errAlloc := allocate.Call(ctx, uint64(len(input)))
		if errAlloc != nil {
			return 0, fmt.Errorf("failed to allocate in guest: %w", errAlloc)
		}
		if len(resAlloc) == 0 {
			return 0, fmt.Errorf("allocate returned no results")
		}
		ptr := uint32(resAlloc[0])
		if !p.module.Memory().Write(ptr, input) {
			return 0, fmt.Errorf("failed to write input to guest memory")
		}
		results, err = f.Call(ctx, uint64(ptr), uint64(len(input)))
	}

	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0], nil
}

func (p *PolicyInstance) unmarshalPacked(packed uint64, v any) error {
	ptr := uint32(packed >> 32)
	length := uint32(packed)
	if ptr == 0 || length == 0 {
		return fmt.Errorf("null response from policy")
	}
	data, ok := p.module.Memory().Read(ptr, length)
	if !ok {
		return fmt.Errorf("failed to read response from memory")
	}
	return json.Unmarshal(data, v)
}
