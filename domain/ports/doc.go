// Package ports defines the collaborator interfaces the capability
// dispatcher depends on. Concrete adapters live under infrastructure/
// and hostfuncs; tests supply fakes.
package ports
