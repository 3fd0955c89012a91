package discovery

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestHostTXTEncodeParseRoundTrip(t *testing.T) {
	txt := HostTXT{Version: "screenview1", Name: "Living Room PC", SchemeNoneAllowed: true}

	parsed, err := ParseHostTXT(txt.Encode())
	if err != nil {
		t.Fatalf("ParseHostTXT: %v", err)
	}
	if *parsed != txt {
		t.Fatalf("got %+v, want %+v", *parsed, txt)
	}
}

func TestParseHostTXTRequiresVersion(t *testing.T) {
	if _, err := ParseHostTXT([]string{"N=foo"}); err != ErrInvalidTXTRecord {
		t.Fatalf("got %v, want ErrInvalidTXTRecord", err)
	}
}

func TestHostTXTNameTruncated(t *testing.T) {
	long := make([]byte, MaxHostNameLength+10)
	for i := range long {
		long[i] = 'a'
	}
	txt := HostTXT{Version: "screenview1", Name: string(long)}
	parsed, err := ParseHostTXT(txt.Encode())
	if err != nil {
		t.Fatalf("ParseHostTXT: %v", err)
	}
	if len(parsed.Name) != MaxHostNameLength {
		t.Fatalf("got name length %d, want %d", len(parsed.Name), MaxHostNameLength)
	}
}

func TestSortIPsByPreferencePrefersGlobalOverLinkLocal(t *testing.T) {
	linkLocal := net.ParseIP("fe80::1")
	global := net.ParseIP("2001:db8::1")

	sorted := SortIPsByPreference([]net.IP{linkLocal, global})
	if !sorted[0].Equal(global) {
		t.Fatalf("got %v first, want global address first", sorted[0])
	}
}

func TestFilterIPv4AndIPv6(t *testing.T) {
	v4 := net.ParseIP("192.168.1.5")
	v6 := net.ParseIP("2001:db8::1")
	ips := []net.IP{v4, v6}

	if got := FilterIPv4(ips); len(got) != 1 || !got[0].Equal(v4) {
		t.Fatalf("FilterIPv4 = %v", got)
	}
	if got := FilterIPv6(ips); len(got) != 1 || !got[0].Equal(v6) {
		t.Fatalf("FilterIPv6 = %v", got)
	}
}

func TestAdvertiserStartStop(t *testing.T) {
	factory := &mockServerFactory{}
	adv, err := NewAdvertiser(AdvertiserConfig{Port: 51500, ServerFactory: factory})
	if err != nil {
		t.Fatalf("NewAdvertiser: %v", err)
	}

	txt := HostTXT{Version: "screenview1", Name: "test-host"}
	if err := adv.Start(txt); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !adv.IsAdvertising() {
		t.Fatalf("expected IsAdvertising true after Start")
	}
	if err := adv.Start(txt); err != ErrAlreadyAdvertising {
		t.Fatalf("got %v, want ErrAlreadyAdvertising", err)
	}

	if err := adv.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if adv.IsAdvertising() {
		t.Fatalf("expected IsAdvertising false after Stop")
	}
	if factory.shutdowns != 1 {
		t.Fatalf("got %d shutdowns, want 1", factory.shutdowns)
	}

	if err := adv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := adv.Start(txt); err != ErrClosed {
		t.Fatalf("got %v, want ErrClosed", err)
	}
}

func TestAdvertiserRejectsInvalidPort(t *testing.T) {
	if _, err := NewAdvertiser(AdvertiserConfig{Port: 0}); err != ErrInvalidPort {
		t.Fatalf("got %v, want ErrInvalidPort", err)
	}
}

func TestResolverBrowseHosts(t *testing.T) {
	mock := NewMockMDNSResolver()
	mock.RegisterHost(MockHostEntry("office-pc", 5900, net.ParseIP("10.0.0.5"), HostTXT{
		Version: "screenview1", Name: "Office PC",
	}))

	r, err := NewResolver(ResolverConfig{MDNSResolver: mock})
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	results, err := r.BrowseHosts(ctx)
	if err != nil {
		t.Fatalf("BrowseHosts: %v", err)
	}

	var found []ResolvedHost
	for host := range results {
		found = append(found, host)
	}

	if len(found) != 1 {
		t.Fatalf("got %d hosts, want 1", len(found))
	}
	if found[0].InstanceName != "office-pc" {
		t.Fatalf("got instance %q, want office-pc", found[0].InstanceName)
	}
	if found[0].TXT.Name != "Office PC" {
		t.Fatalf("got TXT name %q, want Office PC", found[0].TXT.Name)
	}
	if found[0].PreferredIP() == nil {
		t.Fatalf("expected a preferred IP")
	}
}

func TestResolverLookupNotFound(t *testing.T) {
	mock := NewMockMDNSResolver()
	r, err := NewResolver(ResolverConfig{MDNSResolver: mock})
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if _, err := r.Lookup(ctx, "nonexistent"); err == nil {
		t.Fatalf("expected an error for unresolved instance")
	}
}

func TestResolverLookupFound(t *testing.T) {
	mock := NewMockMDNSResolver()
	mock.RegisterHost(MockHostEntry("home-theater", 5900, net.ParseIP("10.0.0.9"), HostTXT{
		Version: "screenview1",
	}))

	r, err := NewResolver(ResolverConfig{MDNSResolver: mock})
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	host, err := r.Lookup(ctx, "home-theater")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if host.Port != 5900 {
		t.Fatalf("got port %d, want 5900", host.Port)
	}
}
