package assignment

import (
	"github.com/R167/lannet/netaddr"
)

const FamilyIPv4 = "IPv4"

// NetworkAssignment is one IPv4 address bound to one interface.
type NetworkAssignment struct {
	IName    string  `json:"iname" yaml:"iname"`
	Address  string  `json:"address" yaml:"address"`
	Netmask  string  `json:"netmask" yaml:"netmask"`
	Family   string  `json:"family" yaml:"family"`
	MAC      string  `json:"mac" yaml:"mac"`
	Internal bool    `json:"internal" yaml:"internal"`
	CIDR     *string `json:"cidr" yaml:"cidr"`
}

// GatewayAssignment is a NetworkAssignment plus the resolved gateway. A nil
// Gateway means the assignment is itself the chosen route with no separate hop.
type GatewayAssignment struct {
	NetworkAssignment `yaml:",inline"`
	Gateway           *string `json:"gateway" yaml:"gateway"`
}

// WithGateway returns a copy of a carrying gateway. An empty gateway is
// recorded as nil.
func (a NetworkAssignment) WithGateway(gateway string) GatewayAssignment {
	ga := GatewayAssignment{NetworkAssignment: a}
	if a.CIDR != nil {
		cidr := *a.CIDR
		ga.CIDR = &cidr
	}
	if gateway != "" {
		ga.Gateway = &gateway
	}
	return ga
}

func (a NetworkAssignment) Equal(b NetworkAssignment) bool {
	return a.IName == b.IName &&
		a.Address == b.Address &&
		a.Netmask == b.Netmask &&
		a.Family == b.Family &&
		a.MAC == b.MAC &&
		a.Internal == b.Internal &&
		stringPtrEqual(a.CIDR, b.CIDR)
}

func (a GatewayAssignment) Equal(b GatewayAssignment) bool {
	return a.NetworkAssignment.Equal(b.NetworkAssignment) && stringPtrEqual(a.Gateway, b.Gateway)
}

// GatewayString returns the gateway or "" when there is none.
func (a GatewayAssignment) GatewayString() string {
	if a.Gateway == nil {
		return ""
	}
	return *a.Gateway
}

// IsDefault reports whether a is the loopback fallback returned when nothing
// else could be determined.
func (a GatewayAssignment) IsDefault() bool {
	return a.Equal(defaultAssignment)
}

var defaultAssignment = NetworkAssignment{
	IName:    "lo0",
	Address:  "127.0.0.1",
	Netmask:  "255.0.0.0",
	Family:   FamilyIPv4,
	MAC:      "00:00:00:00:00:00",
	Internal: true,
	CIDR:     stringPtr("127.0.0.1/8"),
}.WithGateway("")

// Default returns the loopback sentinel assignment.
func Default() GatewayAssignment {
	return defaultAssignment.NetworkAssignment.WithGateway("")
}

// Match finds the candidate addr belongs to. An exact address match yields a
// nil gateway; otherwise the first candidate whose subnet contains addr is
// returned with addr as its gateway. Candidates are checked in order for both
// tests together, so an earlier subnet match wins over a later exact match.
func Match(candidates []NetworkAssignment, addr string) (GatewayAssignment, bool) {
	rawAddr, err := netaddr.ParseIPv4(addr)
	if err != nil {
		return GatewayAssignment{}, false
	}
	for _, candidate := range candidates {
		candidateAddr, err := netaddr.ParseIPv4(candidate.Address)
		if err != nil {
			continue
		}
		if rawAddr == candidateAddr {
			return candidate.WithGateway(""), true
		}
		mask, err := netaddr.ParseIPv4(candidate.Netmask)
		if err != nil {
			continue
		}
		if rawAddr&mask == candidateAddr&mask {
			return candidate.WithGateway(addr), true
		}
	}
	return GatewayAssignment{}, false
}

func stringPtr(s string) *string {
	return &s
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
