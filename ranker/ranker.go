package ranker

import (
	"cmp"
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/R167/lannet/assignment"
	"github.com/R167/lannet/netaddr"
)

// hyperVOUI is the vendor prefix of Microsoft Hyper-V virtual adapters.
var hyperVOUI = [3]byte{0x00, 0x15, 0x5d}

// Enumerate returns the IPv4 assignments reported by src in ranked order.
func Enumerate(ctx context.Context, src Source) ([]assignment.NetworkAssignment, error) {
	interfaces, err := src.Interfaces(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(interfaces))
	for name := range interfaces {
		names = append(names, name)
	}
	sort.Strings(names)

	var candidates []assignment.NetworkAssignment
	for _, name := range names {
		for _, record := range interfaces[name] {
			if record.Family != assignment.FamilyIPv4 {
				continue
			}
			candidates = append(candidates, assignment.NetworkAssignment{
				IName:    name,
				Address:  record.Address,
				Netmask:  record.Netmask,
				Family:   assignment.FamilyIPv4,
				MAC:      record.MAC,
				Internal: record.Internal,
				CIDR:     record.CIDR,
			})
		}
	}

	Sort(candidates)
	return candidates, nil
}

// Sort orders candidates in place by ranking.
func Sort(candidates []assignment.NetworkAssignment) {
	slices.SortStableFunc(candidates, compare)
}

func compare(a, b assignment.NetworkAssignment) int {
	if c := cmp.Compare(boolInt(IsInternal(a)), boolInt(IsInternal(b))); c != 0 {
		return c
	}
	if c := cmp.Compare(SubnetPriority(b.Address), SubnetPriority(a.Address)); c != 0 {
		return c
	}
	if c := cmp.Compare(rawAddress(b.Address), rawAddress(a.Address)); c != 0 {
		return c
	}
	if c := strings.Compare(a.IName, b.IName); c != 0 {
		return c
	}
	return strings.Compare(a.MAC, b.MAC)
}

// IsInternal reports whether a is loopback or a virtual adapter: the OS flag
// is set, the MAC is zero or a Hyper-V MAC, or the name marks a vEthernet
// adapter. An unparsable MAC counts as internal.
func IsInternal(a assignment.NetworkAssignment) bool {
	if a.Internal {
		return true
	}
	mac, err := netaddr.ParseMAC(a.MAC)
	if err != nil {
		return true
	}
	switch {
	case mac == [netaddr.MACLen]byte{}:
		return true
	case [3]byte(mac[:3]) == hyperVOUI:
		return true
	case strings.Contains(a.IName, "vEthernet"):
		return true
	}
	return false
}

// SubnetPriority scores an address by its leading octet; higher is preferred.
func SubnetPriority(addr string) int {
	switch {
	case strings.HasPrefix(addr, "192."):
		return 5
	case strings.HasPrefix(addr, "172."):
		return 4
	case strings.HasPrefix(addr, "10."):
		return 3
	case strings.HasPrefix(addr, "100."):
		return 2
	case strings.HasPrefix(addr, "127."):
		return 1
	default:
		return 0
	}
}

// rawAddress is the packed address as a signed value, so 128.0.0.0 and above
// sort below 127.255.255.255. Malformed addresses sort last.
func rawAddress(addr string) int64 {
	v, err := netaddr.ParseIPv4(addr)
	if err != nil {
		return -1 << 32
	}
	return int64(int32(v))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
