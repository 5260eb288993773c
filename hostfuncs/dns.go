package hostfuncs

import (
	"context"
	"net"
	"time"

	"github.com/jvanz/policy-sdk-go/domain/errors"
)

// Resolver performs DNS host lookups on behalf of guests. It implements
// ports.HostResolver over the Go resolver.
type Resolver struct {
	resolver *net.Resolver
	timeout  time.Duration
}

// ResolverOption is a functional option for configuring a Resolver.
type ResolverOption func(*Resolver)

// WithLookupTimeout sets the per-lookup timeout. Values <= 0 keep the
// default of 5s.
func WithLookupTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		resolver: &net.Resolver{PreferGo: true},
		timeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LookupHost implements ports.HostResolver.
func (r *Resolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	addrs, err := r.resolver.LookupHost(ctx, host)
	if err != nil {
		return nil, &errors.DNSError{Host: host, Err: err}
	}
	return addrs, nil
}
