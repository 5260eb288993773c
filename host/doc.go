// Package host runs sandboxed policy modules under wazero and exposes the
// registered capability operations to them as host functions. Guests invoke
// a capability by name with a packed ptr/len payload; the host decodes,
// dispatches, and writes the JSON response back into guest memory.
package host
