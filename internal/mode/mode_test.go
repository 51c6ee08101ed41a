package mode

import (
	"context"
	"testing"

	"github.com/R167/lannet/assignment"
	"github.com/R167/lannet/internal/errs"
	"github.com/R167/lannet/ranker"
	"github.com/R167/lannet/resolver"
)

func TestAll_Unique(t *testing.T) {
	names := make(map[string]bool)
	shorthands := make(map[string]bool)
	for _, m := range All() {
		if names[m.Name] {
			t.Errorf("duplicate mode name %q", m.Name)
		}
		names[m.Name] = true
		if m.Shorthand != "" {
			if shorthands[m.Shorthand] {
				t.Errorf("duplicate shorthand %q", m.Shorthand)
			}
			shorthands[m.Shorthand] = true
		}
		if m.run == nil || m.Description == "" || m.Failure == "" {
			t.Errorf("mode %q is incomplete", m.Name)
		}
	}
	for _, want := range []string{Default, Probe, DHCP, Fallback} {
		if !names[want] {
			t.Errorf("mode %q is not registered", want)
		}
	}
}

func TestGet(t *testing.T) {
	if m, ok := Get(DHCP); !ok || m.Shorthand != "d" {
		t.Errorf("Get(dhcp) = %+v, %v", m, ok)
	}
	if _, ok := Get("help"); ok {
		t.Error("Get(help) should not find a mode")
	}
}

func TestFailureMessage(t *testing.T) {
	noCandidates := errs.New(errs.KindNoCandidates, "probe", "no IPv4 interface assignments")
	noMatch := errs.New(errs.KindNoMatch, "probe", "route matches no assignment")

	tests := []struct {
		mode string
		err  error
		want string
	}{
		{Probe, noCandidates, "No available network interface assignments"},
		{Probe, noMatch, "No default gateway or route"},
		{DHCP, noCandidates, "No available network interface assignments"},
		{DHCP, noMatch, "No DHCP router was discoverable"},
		{Fallback, noCandidates, "No available network interface assignments"},
		{Default, noCandidates, "No default gateway, route, or DHCP router"},
		{Default, noMatch, "No default gateway, route, or DHCP router"},
	}

	for _, tt := range tests {
		m, _ := Get(tt.mode)
		if got := m.FailureMessage(tt.err); got != tt.want {
			t.Errorf("%s.FailureMessage(%v) = %q, want %q", tt.mode, tt.err, got, tt.want)
		}
	}
}

func TestRun_Fallback(t *testing.T) {
	src := ranker.SourceFunc(func(context.Context) (map[string][]ranker.Record, error) {
		return map[string][]ranker.Record{
			"eth0": {{Address: "10.0.0.10", Netmask: "255.0.0.0", Family: assignment.FamilyIPv4, MAC: "02:42:ac:11:00:02"}},
		}, nil
	})
	m, _ := Get(Fallback)

	got, err := m.Run(context.Background(), resolver.New().WithSource(src))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got.IName != "eth0" || got.Gateway != nil {
		t.Errorf("Run() = %+v, want eth0 without gateway", got)
	}
}
