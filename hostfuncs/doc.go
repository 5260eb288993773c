// Package hostfuncs implements the host side of the guest/host capability
// boundary: an immutable registry of named host functions, the handlers for
// every callback operation a policy can invoke (versioned signature
// verification, manifest digest, DNS host lookup), and the dispatcher that
// routes canonical callback requests to their collaborators.
//
// The package has no WASM runtime dependency; the host runtime (package
// host) wires registry entries into guest-visible imports and owns memory
// management and byte shuttling.
package hostfuncs
