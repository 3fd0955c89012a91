// screenview-client is a minimal ScreenView Client example.
//
// It connects to a Host (by address, or via LAN mDNS discovery), runs
// the WPSKKA/RVD handshake, and logs display shares as they arrive.
// Rendering the shared display and forwarding local input are outside
// this module's scope; this binary only exercises the protocol stack.
//
// Usage:
//
//	screenview-client -host <addr> [options]
//	screenview-client -discover [options]
//
// Options:
//
//	-host             host reliable address, host:port
//	-host-unreliable  host unreliable address; defaults to -host
//	-password         password to authenticate with, if required
//	-discover         browse LAN mDNS for a host instead of using -host
package main

import (
	"log"

	"github.com/screenview/svcore/examples/svcommon"
	"github.com/screenview/svcore/examples/svclient"
)

func main() {
	opts := svcommon.ParseClientFlags()

	if !opts.Discover && opts.HostReliableAddr == "" {
		log.Fatal("screenview-client: -host is required unless -discover is set")
	}

	client := svclient.New(svclient.Options{
		HostReliableAddr:   opts.HostReliableAddr,
		HostUnreliableAddr: opts.HostUnreliableAddr,
		Password:           opts.Password,
		Discover:           opts.Discover,
	})

	ctx, cancel := svcommon.WaitForSignal()
	defer cancel()

	if err := client.Run(ctx); err != nil {
		log.Fatalf("screenview-client: %v", err)
	}
}
