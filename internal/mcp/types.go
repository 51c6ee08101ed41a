package mcp

import "github.com/R167/lannet/assignment"

type ResolveToolInput struct {
	DHCPTimeoutMS int    `json:"dhcp_timeout_ms,omitempty" jsonschema:"milliseconds to wait for a DHCP reply per interface"`
	ProbeTarget   string `json:"probe_target,omitempty" jsonschema:"publicly routed host:port used to find the default route"`
	Debug         bool   `json:"debug,omitempty" jsonschema:"include a step-by-step trace in the report"`
}

type ResolveToolOutput struct {
	Found     bool   `json:"found"`
	Interface string `json:"iname,omitempty"`
	Address   string `json:"address,omitempty"`
	Netmask   string `json:"netmask,omitempty"`
	MAC       string `json:"mac,omitempty"`
	Internal  bool   `json:"internal"`
	CIDR      string `json:"cidr,omitempty"`
	Gateway   string `json:"gateway,omitempty"`
	Summary   string `json:"summary"`
	Report    string `json:"report"`
}

// NewResolveToolOutput flattens a resolved assignment for tool results.
func NewResolveToolOutput(a assignment.GatewayAssignment) *ResolveToolOutput {
	out := &ResolveToolOutput{
		Found:     true,
		Interface: a.IName,
		Address:   a.Address,
		Netmask:   a.Netmask,
		MAC:       a.MAC,
		Internal:  a.Internal,
		Gateway:   a.GatewayString(),
	}
	if a.CIDR != nil {
		out.CIDR = *a.CIDR
	}
	if out.Gateway != "" {
		out.Summary = "Interface " + a.IName + " (" + a.Address + ") via gateway " + out.Gateway
	} else {
		out.Summary = "Interface " + a.IName + " (" + a.Address + ") with no separate gateway"
	}
	return out
}
