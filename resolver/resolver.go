package resolver

import (
	"context"

	"github.com/R167/lannet/assignment"
	"github.com/R167/lannet/dhcp"
	"github.com/R167/lannet/internal/errs"
	"github.com/R167/lannet/internal/output"
	"github.com/R167/lannet/internal/parallel"
	"github.com/R167/lannet/probe"
	"github.com/R167/lannet/ranker"
)

// Prober reports the local address the host would use for outbound traffic.
type Prober interface {
	ProbeDefaultRoute(ctx context.Context) (string, error)
}

// Discoverer solicits a DHCP reply on the segment of a and returns the
// replying peer's address.
type Discoverer interface {
	Discover(ctx context.Context, a assignment.NetworkAssignment) (string, error)
}

// Resolver carries the collaborators used during resolution. Build one with
// New and the With* methods:
//
//	r := New().
//	    WithSource(ranker.SystemSource{}).
//	    WithOutput(out)
type Resolver struct {
	source     ranker.Source
	prober     Prober
	discoverer Discoverer
	out        output.Output
}

func New() *Resolver {
	return &Resolver{
		source:     ranker.SystemSource{},
		prober:     probe.New(),
		discoverer: dhcp.New(),
		out:        output.NewNoOpOutput(),
	}
}

func (r *Resolver) WithSource(src ranker.Source) *Resolver {
	r.source = src
	return r
}

func (r *Resolver) WithProber(p Prober) *Resolver {
	r.prober = p
	return r
}

func (r *Resolver) WithDiscoverer(d Discoverer) *Resolver {
	r.discoverer = d
	return r
}

// WithOutput sets the sink for the single-phase methods' debug traces.
// Resolve itself writes nothing.
func (r *Resolver) WithOutput(out output.Output) *Resolver {
	if out == nil {
		out = output.NewNoOpOutput()
	}
	r.out = out
	return r
}

// Candidates returns the host's IPv4 assignments in ranked order.
func (r *Resolver) Candidates(ctx context.Context) ([]assignment.NetworkAssignment, error) {
	return ranker.Enumerate(ctx, r.source)
}

// Resolve returns the best available assignment. It falls back to
// assignment.Default only when the host has no IPv4 assignments.
func (r *Resolver) Resolve(ctx context.Context) assignment.GatewayAssignment {
	candidates, err := r.Candidates(ctx)
	if err != nil || len(candidates) == 0 {
		return assignment.Default()
	}

	if route, err := r.prober.ProbeDefaultRoute(ctx); err == nil {
		if match, ok := assignment.Match(candidates, route); ok && !ranker.IsInternal(match.NetworkAssignment) {
			return match
		}
	}

	if match, ok := r.discoverAll(ctx, candidates); ok {
		return match
	}

	return candidates[0].WithGateway("")
}

// discoverAll runs one discovery per candidate, waits for all of them, and
// returns the first reply in candidate order that matches a candidate.
func (r *Resolver) discoverAll(ctx context.Context, candidates []assignment.NetworkAssignment) (assignment.GatewayAssignment, bool) {
	results := parallel.Settle(ctx, len(candidates), func(ctx context.Context, i int) (string, error) {
		return r.discoverer.Discover(ctx, candidates[i])
	})
	return parallel.First(results, func(peer string) (assignment.GatewayAssignment, bool) {
		if peer == "" {
			return assignment.GatewayAssignment{}, false
		}
		return assignment.Match(candidates, peer)
	})
}

func (r *Resolver) requireCandidates(ctx context.Context, op string) ([]assignment.NetworkAssignment, error) {
	candidates, err := r.Candidates(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindNoCandidates, op, err)
	}
	if len(candidates) == 0 {
		return nil, errs.New(errs.KindNoCandidates, op, "no IPv4 interface assignments")
	}
	r.out.Debug("%s: %d candidate assignment(s), top %s on %s", op, len(candidates), candidates[0].Address, candidates[0].IName)
	return candidates, nil
}

// Probe resolves via the default route alone. Unlike Resolve, a match on an
// internal interface is accepted.
func (r *Resolver) Probe(ctx context.Context) (assignment.GatewayAssignment, error) {
	candidates, err := r.requireCandidates(ctx, "probe")
	if err != nil {
		return assignment.GatewayAssignment{}, err
	}
	route, err := r.prober.ProbeDefaultRoute(ctx)
	if err != nil {
		return assignment.GatewayAssignment{}, err
	}
	match, ok := assignment.Match(candidates, route)
	if !ok || match.IsDefault() {
		return assignment.GatewayAssignment{}, errs.New(errs.KindNoMatch, "probe", "route "+route+" matches no assignment")
	}
	r.out.Debug("probe: route %s matched %s", route, match.IName)
	return match, nil
}

// DHCP resolves via DHCPDISCOVER broadcasts alone.
func (r *Resolver) DHCP(ctx context.Context) (assignment.GatewayAssignment, error) {
	candidates, err := r.requireCandidates(ctx, "dhcp")
	if err != nil {
		return assignment.GatewayAssignment{}, err
	}
	match, ok := r.discoverAll(ctx, candidates)
	if !ok || match.IsDefault() {
		return assignment.GatewayAssignment{}, errs.New(errs.KindNoMatch, "dhcp", "no DHCP reply matched an assignment")
	}
	r.out.Debug("dhcp: router %s matched %s", match.GatewayString(), match.IName)
	return match, nil
}

// Fallback returns the top-ranked candidate without a gateway.
func (r *Resolver) Fallback(ctx context.Context) (assignment.GatewayAssignment, error) {
	candidates, err := r.requireCandidates(ctx, "fallback")
	if err != nil {
		return assignment.GatewayAssignment{}, err
	}
	return candidates[0].WithGateway(""), nil
}

// Default runs Resolve and reports the loopback sentinel as an error.
func (r *Resolver) Default(ctx context.Context) (assignment.GatewayAssignment, error) {
	result := r.Resolve(ctx)
	if result.IsDefault() {
		return assignment.GatewayAssignment{}, errs.New(errs.KindNoMatch, "resolve", "no default gateway, route, or DHCP router")
	}
	return result, nil
}
