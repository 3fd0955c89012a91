package discovery

import (
	"net"
	"sync"

	"github.com/grandcat/zeroconf"

	"github.com/screenview/svcore/internal/svlog"

	"github.com/pion/logging"
)

// MDNSServer is the interface for an active mDNS service registration,
// allowing the production zeroconf registration to be swapped for a
// fake in tests.
type MDNSServer interface {
	// Shutdown stops the server.
	Shutdown()
}

// MDNSServerFactory creates MDNSServer instances.
type MDNSServerFactory interface {
	Register(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (MDNSServer, error)
}

type zeroconfServerFactory struct{}

func (zeroconfServerFactory) Register(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (MDNSServer, error) {
	return zeroconf.Register(instance, service, domain, port, txt, ifaces)
}

// AdvertiserConfig configures an Advertiser.
type AdvertiserConfig struct {
	// InstanceName is the mDNS instance name shown to browsers. If
	// empty, HostTXT.Name is used, falling back to "screenview-host".
	InstanceName string

	// Port is the TCP port the Host's reliable channel listens on.
	Port int

	// Interfaces restricts advertising to specific network interfaces.
	// Nil means all interfaces.
	Interfaces []net.Interface

	// ServerFactory creates the underlying mDNS server. Nil uses the
	// production zeroconf factory.
	ServerFactory MDNSServerFactory

	LoggerFactory logging.LoggerFactory
}

// Advertiser publishes a ScreenView Host's presence on the local
// network segment so Direct-mode clients can find it without the user
// typing an address.
type Advertiser struct {
	config  AdvertiserConfig
	factory MDNSServerFactory
	log     logging.LeveledLogger

	mu     sync.Mutex
	server MDNSServer
	closed bool
}

// NewAdvertiser constructs an Advertiser. It does not start advertising
// until Start is called.
func NewAdvertiser(config AdvertiserConfig) (*Advertiser, error) {
	if config.Port <= 0 || config.Port > 65535 {
		return nil, ErrInvalidPort
	}

	factory := config.ServerFactory
	if factory == nil {
		factory = zeroconfServerFactory{}
	}

	return &Advertiser{
		config:  config,
		factory: factory,
		log:     svlog.New(config.LoggerFactory, "discovery"),
	}, nil
}

// Start begins advertising under ServiceHost with the given TXT
// record.
func (a *Advertiser) Start(txt HostTXT) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.server != nil {
		return ErrAlreadyAdvertising
	}

	instance := a.config.InstanceName
	if instance == "" {
		instance = txt.Name
	}
	if instance == "" {
		instance = "screenview-host"
	}

	a.log.Debugf("registering mDNS service: instance=%s service=%s port=%d", instance, ServiceHost, a.config.Port)

	server, err := a.factory.Register(instance, ServiceHost, DefaultDomain, a.config.Port, txt.Encode(), a.config.Interfaces)
	if err != nil {
		return err
	}

	a.server = server
	a.log.Infof("advertising %s as %s", ServiceHost, instance)
	return nil
}

// Stop stops advertising. It is a no-op if nothing is being
// advertised.
func (a *Advertiser) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.server == nil {
		return ErrNotAdvertising
	}

	a.server.Shutdown()
	a.server = nil
	return nil
}

// Close stops advertising and releases the Advertiser.
func (a *Advertiser) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
	a.closed = true
	return nil
}

// IsAdvertising reports whether the Advertiser currently has an active
// registration.
func (a *Advertiser) IsAdvertising() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.server != nil
}
