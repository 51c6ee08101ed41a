package mode

import (
	"context"

	"github.com/R167/lannet/assignment"
	"github.com/R167/lannet/internal/errs"
	"github.com/R167/lannet/resolver"
)

const (
	Default  = "default"
	Probe    = "probe"
	DHCP     = "dhcp"
	Fallback = "fallback"
)

const noCandidatesMessage = "No available network interface assignments"

// Mode is one way of resolving the LAN assignment.
type Mode struct {
	Name        string
	Shorthand   string
	Description string
	Icon        string
	// Failure is printed when Run returns an error.
	Failure string

	run func(r *resolver.Resolver, ctx context.Context) (assignment.GatewayAssignment, error)
}

func All() []Mode {
	return []Mode{
		{
			Name:        Default,
			Description: "Try probe, dhcp and fallback in order",
			Icon:        "🌐",
			Failure:     "No default gateway, route, or DHCP router",
			run:         (*resolver.Resolver).Default,
		},
		{
			Name:        Probe,
			Shorthand:   "p",
			Description: "Discover gateway via UDP4 socket to publicly routed address",
			Icon:        "🧭",
			Failure:     "No default gateway or route",
			run:         (*resolver.Resolver).Probe,
		},
		{
			Name:        DHCP,
			Shorthand:   "d",
			Description: "Discover gateway via DHCPv4 discover broadcast",
			Icon:        "📡",
			Failure:     "No DHCP router was discoverable",
			run:         (*resolver.Resolver).DHCP,
		},
		{
			Name:        Fallback,
			Shorthand:   "f",
			Description: "Return highest-priority IPv4 network interface assignment",
			Icon:        "🪂",
			Failure:     noCandidatesMessage,
			run:         (*resolver.Resolver).Fallback,
		},
	}
}

func Get(name string) (Mode, bool) {
	for _, m := range All() {
		if m.Name == name {
			return m, true
		}
	}
	return Mode{}, false
}

// Run resolves with r using this mode.
func (m Mode) Run(ctx context.Context, r *resolver.Resolver) (assignment.GatewayAssignment, error) {
	return m.run(r, ctx)
}

// FailureMessage returns the line to report for err.
func (m Mode) FailureMessage(err error) string {
	if m.Name != Default && errs.Is(err, errs.KindNoCandidates) {
		return noCandidatesMessage
	}
	return m.Failure
}
