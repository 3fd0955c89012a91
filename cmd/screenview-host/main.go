// screenview-host is a minimal ScreenView Host example.
//
// It listens for one Direct-mode client connection, runs the
// WPSKKA/RVD handshake, and shares a single fake monitor once ready.
// Real screen capture and input injection are outside this module's
// scope (see internal/native); this binary stands in a NullPlatform so
// the protocol stack can be exercised end to end.
//
// Usage:
//
//	screenview-host [options]
//
// Options:
//
//	-reliable-addr    TCP listen address (default ":5900")
//	-unreliable-addr  UDP listen address (default ":5900")
//	-password         shared password; empty allows unauthenticated clients
//	-name             host name advertised to clients
//	-advertise        advertise via LAN mDNS (default true)
package main

import (
	"log"

	"github.com/screenview/svcore/examples/svcommon"
	"github.com/screenview/svcore/examples/svhost"
)

func main() {
	opts := svcommon.ParseHostFlags()

	host := svhost.New(svhost.Options{
		ReliableAddr:   opts.ReliableAddr,
		UnreliableAddr: opts.UnreliableAddr,
		Password:       opts.Password,
		DeviceName:     opts.DeviceName,
		Advertise:      opts.Advertise,
		Platform:       svcommon.NullPlatform{},
	})

	ctx, cancel := svcommon.WaitForSignal()
	defer cancel()

	if err := host.Run(ctx); err != nil {
		log.Fatalf("screenview-host: %v", err)
	}
}
