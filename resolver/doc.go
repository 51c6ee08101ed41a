// Package resolver decides which local IPv4 assignment faces the LAN and,
// where one can be found, the gateway behind it.
//
// Resolve runs three phases in order and never fails:
//
//  1. Probe: ask the kernel which local address routes toward a public host.
//     An exact or subnet match against a non-internal candidate wins.
//  2. DHCP: broadcast a DHCPDISCOVER from every candidate at once, wait for
//     all of them to settle, and take the first reply (in candidate order)
//     that matches a candidate.
//  3. Fallback: the top-ranked candidate with no gateway.
//
// When the host reports no IPv4 assignments at all, Resolve returns
// assignment.Default. The Probe, DHCP and Fallback methods run a single phase
// and return an error instead of falling through.
//
// Usage:
//
//	r := resolver.New().
//	    WithProber(probe.New()).
//	    WithDiscoverer(dhcp.New())
//	result := r.Resolve(ctx)
//	if result.IsDefault() {
//	    // nothing could be determined
//	}
package resolver
