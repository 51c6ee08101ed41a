package validate

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"

	"go4.org/netipx"
)

var nonPublic = mustIPSet(
	"0.0.0.0/8",
	"10.0.0.0/8",
	"100.64.0.0/10",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"224.0.0.0/4",
	"240.0.0.0/4",
)

func mustIPSet(prefixes ...string) *netipx.IPSet {
	var b netipx.IPSetBuilder
	for _, p := range prefixes {
		b.AddPrefix(netip.MustParsePrefix(p))
	}
	set, err := b.IPSet()
	if err != nil {
		panic(err)
	}
	return set
}

// ProbeTarget checks that target is an IPv4 literal host:port outside the
// private, loopback, link-local, CGNAT and multicast ranges. A route to such
// an address would not be the default route.
func ProbeTarget(target string) error {
	if target == "" {
		return fmt.Errorf("probe target cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(target)
	if err != nil {
		return fmt.Errorf("probe target must be host:port: %w", err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port in probe target %s", target)
	}
	if err := Port(port); err != nil {
		return err
	}

	addr, err := netip.ParseAddr(host)
	if err != nil || !addr.Is4() {
		return fmt.Errorf("probe target host must be an IPv4 address: %s", host)
	}
	if IsNonPublic(addr) {
		return fmt.Errorf("probe target must be publicly routed: %s", host)
	}
	return nil
}

// IsNonPublic reports whether addr lies in a range that is never reached
// through the default route.
func IsNonPublic(addr netip.Addr) bool {
	return nonPublic.Contains(addr.Unmap())
}

func Port(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got: %d", port)
	}
	return nil
}
