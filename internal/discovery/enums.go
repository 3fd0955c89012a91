package discovery

import "time"

// ServiceHost is the DNS-SD service type a ScreenView Host advertises
// itself under for LAN discovery by Direct-mode clients.
const ServiceHost = "_screenview._tcp"

// DefaultDomain is the mDNS domain services are advertised and browsed
// in.
const DefaultDomain = "local."

// DefaultBrowseTimeout bounds how long BrowseHosts keeps the returned
// channel open when the caller's context carries no deadline.
const DefaultBrowseTimeout = 10 * time.Second

// DefaultLookupTimeout bounds how long Lookup waits for the named
// instance to answer when the caller's context carries no deadline.
const DefaultLookupTimeout = 5 * time.Second
