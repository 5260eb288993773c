package ports

import "context"

// HostResolver resolves hostnames to addresses on behalf of a guest.
type HostResolver interface {
	// LookupHost returns the addresses of the given host, in resolver order.
	LookupHost(ctx context.Context, host string) ([]string, error)
}
