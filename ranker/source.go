package ranker

import (
	"context"
	"net"
	"net/netip"
	"slices"

	"github.com/R167/lannet/assignment"
	gopsnet "github.com/shirou/gopsutil/v4/net"
	"go4.org/netipx"
)

const (
	FamilyIPv6 = "IPv6"

	zeroMAC = "00:00:00:00:00:00"
)

// Record is one raw address binding as reported by the operating system.
type Record struct {
	Address  string
	Netmask  string
	Family   string
	MAC      string
	Internal bool
	CIDR     *string
}

// Source reports interface records keyed by interface name.
type Source interface {
	Interfaces(ctx context.Context) (map[string][]Record, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (map[string][]Record, error)

func (f SourceFunc) Interfaces(ctx context.Context) (map[string][]Record, error) {
	return f(ctx)
}

// SystemSource enumerates the host's interfaces.
type SystemSource struct{}

func (SystemSource) Interfaces(ctx context.Context) (map[string][]Record, error) {
	ifaces, err := gopsnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	records := make(map[string][]Record, len(ifaces))
	for _, iface := range ifaces {
		mac := iface.HardwareAddr
		if mac == "" {
			mac = zeroMAC
		}
		internal := slices.Contains(iface.Flags, "loopback")

		for _, addr := range iface.Addrs {
			record, ok := recordFromCIDR(addr.Addr, mac, internal)
			if !ok {
				continue
			}
			records[iface.Name] = append(records[iface.Name], record)
		}
	}
	return records, nil
}

// recordFromCIDR converts an "address/bits" string into a Record.
func recordFromCIDR(cidr, mac string, internal bool) (Record, bool) {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return Record{}, false
	}

	family := assignment.FamilyIPv4
	addr := prefix.Addr()
	if !addr.Is4() {
		family = FamilyIPv6
	}
	ipNet := netipx.PrefixIPNet(prefix)

	return Record{
		Address:  addr.String(),
		Netmask:  net.IP(ipNet.Mask).String(),
		Family:   family,
		MAC:      mac,
		Internal: internal,
		CIDR:     &cidr,
	}, true
}
