package discovery

import (
	"context"
	"net"

	"github.com/grandcat/zeroconf"
)

// ResolvedHost is a discovered ScreenView Host.
type ResolvedHost struct {
	InstanceName string
	HostName     string
	Port         int
	IPs          []net.IP
	TXT          HostTXT
}

// PreferredIP returns the most preferred address to dial, or nil if
// none were resolved.
func (r *ResolvedHost) PreferredIP() net.IP {
	if len(r.IPs) == 0 {
		return nil
	}
	return r.IPs[0]
}

// MDNSResolver is the interface for mDNS browse/lookup, allowing the
// production zeroconf resolver to be swapped for a fake in tests.
type MDNSResolver interface {
	Browse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error
	Lookup(ctx context.Context, instance, service, domain string, entries chan<- *zeroconf.ServiceEntry) error
}

type zeroconfResolver struct {
	resolver *zeroconf.Resolver
}

func newZeroconfResolver() (*zeroconfResolver, error) {
	r, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, err
	}
	return &zeroconfResolver{resolver: r}, nil
}

func (z *zeroconfResolver) Browse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error {
	return z.resolver.Browse(ctx, service, domain, entries)
}

func (z *zeroconfResolver) Lookup(ctx context.Context, instance, service, domain string, entries chan<- *zeroconf.ServiceEntry) error {
	return z.resolver.Lookup(ctx, instance, service, domain, entries)
}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	// MDNSResolver is the underlying resolver implementation. Nil uses
	// the production zeroconf resolver.
	MDNSResolver MDNSResolver
}

// Resolver discovers ScreenView hosts advertised under ServiceHost.
type Resolver struct {
	resolver MDNSResolver
}

// NewResolver constructs a Resolver.
func NewResolver(config ResolverConfig) (*Resolver, error) {
	resolver := config.MDNSResolver
	if resolver == nil {
		zr, err := newZeroconfResolver()
		if err != nil {
			return nil, err
		}
		resolver = zr
	}
	return &Resolver{resolver: resolver}, nil
}

// BrowseHosts discovers ScreenView hosts on the local network. The
// returned channel closes when ctx is done or DefaultBrowseTimeout
// elapses, whichever comes first.
func (r *Resolver) BrowseHosts(ctx context.Context) (<-chan ResolvedHost, error) {
	cancel := context.CancelFunc(func() {})
	if _, ok := ctx.Deadline(); !ok {
		ctx, cancel = context.WithTimeout(ctx, DefaultBrowseTimeout)
	}

	results := make(chan ResolvedHost)
	entries := make(chan *zeroconf.ServiceEntry)

	go func() {
		defer cancel()
		defer close(results)

		go func() {
			defer close(entries)
			r.resolver.Browse(ctx, ServiceHost, DefaultDomain, entries)
		}()

		for entry := range entries {
			host, err := entryToResolvedHost(entry)
			if err != nil {
				continue
			}
			select {
			case results <- host:
			case <-ctx.Done():
				return
			}
		}
	}()

	return results, nil
}

// Lookup resolves a specific instance name. It blocks until the
// instance answers, the context is cancelled, or DefaultLookupTimeout
// elapses.
func (r *Resolver) Lookup(ctx context.Context, instanceName string) (*ResolvedHost, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultLookupTimeout)
		defer cancel()
	}

	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		defer close(entries)
		r.resolver.Lookup(ctx, instanceName, ServiceHost, DefaultDomain, entries)
	}()

	select {
	case entry, ok := <-entries:
		if !ok || entry == nil {
			return nil, ErrServiceNotFound
		}
		host, err := entryToResolvedHost(entry)
		if err != nil {
			return nil, err
		}
		return &host, nil
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}

func entryToResolvedHost(entry *zeroconf.ServiceEntry) (ResolvedHost, error) {
	var ips []net.IP
	ips = append(ips, entry.AddrIPv6...)
	ips = append(ips, entry.AddrIPv4...)
	ips = SortIPsByPreference(ips)

	txt, err := ParseHostTXT(entry.Text)
	if err != nil {
		return ResolvedHost{}, err
	}

	return ResolvedHost{
		InstanceName: entry.Instance,
		HostName:     entry.HostName,
		Port:         entry.Port,
		IPs:          ips,
		TXT:          *txt,
	}, nil
}
