package discovery

import (
	"context"
	"net"
	"sync"

	"github.com/grandcat/zeroconf"
)

// MockMDNSResolver is an in-memory MDNSResolver for tests, so discovery
// logic can be exercised without real network I/O.
type MockMDNSResolver struct {
	mu      sync.RWMutex
	entries []*zeroconf.ServiceEntry
}

// NewMockMDNSResolver constructs an empty MockMDNSResolver.
func NewMockMDNSResolver() *MockMDNSResolver {
	return &MockMDNSResolver{}
}

// RegisterHost registers a service entry Browse/Lookup will return.
func (m *MockMDNSResolver) RegisterHost(entry *zeroconf.ServiceEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

func (m *MockMDNSResolver) Browse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error {
	m.mu.RLock()
	snapshot := make([]*zeroconf.ServiceEntry, len(m.entries))
	copy(snapshot, m.entries)
	m.mu.RUnlock()

	for _, entry := range snapshot {
		select {
		case entries <- entry:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *MockMDNSResolver) Lookup(ctx context.Context, instance, service, domain string, entries chan<- *zeroconf.ServiceEntry) error {
	m.mu.RLock()
	snapshot := make([]*zeroconf.ServiceEntry, len(m.entries))
	copy(snapshot, m.entries)
	m.mu.RUnlock()

	for _, entry := range snapshot {
		if entry.Instance == instance {
			select {
			case entries <- entry:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		}
	}
	return nil
}

// MockHostEntry builds a fake ServiceHost entry for tests.
func MockHostEntry(instanceName string, port int, ip net.IP, txt HostTXT) *zeroconf.ServiceEntry {
	return &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{
			Instance: instanceName,
			Service:  ServiceHost,
			Domain:   DefaultDomain,
		},
		HostName: instanceName + ".local.",
		Port:     port,
		AddrIPv4: []net.IP{ip},
		Text:     txt.Encode(),
	}
}

// mockServer is a no-op MDNSServer for Advertiser tests.
type mockServer struct {
	shutdowns *int
}

func (s *mockServer) Shutdown() {
	if s.shutdowns != nil {
		*s.shutdowns++
	}
}

// mockServerFactory records the last Register call's arguments.
type mockServerFactory struct {
	mu        sync.Mutex
	instance  string
	service   string
	port      int
	txt       []string
	shutdowns int
}

func (f *mockServerFactory) Register(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (MDNSServer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.instance = instance
	f.service = service
	f.port = port
	f.txt = txt
	return &mockServer{shutdowns: &f.shutdowns}, nil
}
