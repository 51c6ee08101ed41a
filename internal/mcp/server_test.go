package mcp

import (
	"context"
	"reflect"
	"testing"

	"github.com/R167/lannet/assignment"
)

func TestToolRegistry(t *testing.T) {
	r := NewToolRegistry()
	noop := func(context.Context, *ResolveToolInput) (*ResolveToolOutput, error) {
		return &ResolveToolOutput{}, nil
	}
	r.Register("resolve_probe", "probe", noop)
	r.Register("resolve_default", "default", noop)
	r.Register("resolve_dhcp", "dhcp", noop)

	want := []string{"resolve_default", "resolve_dhcp", "resolve_probe"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	r.Register("resolve_dhcp", "replaced", noop)
	if len(r.Names()) != 3 {
		t.Errorf("re-registering should replace, got %v", r.Names())
	}
	if r.tools["resolve_dhcp"].description != "replaced" {
		t.Error("description should be replaced")
	}
}

func TestNewServer_RegistersTools(t *testing.T) {
	r := NewToolRegistry()
	r.Register("resolve_fallback", "fallback", func(context.Context, *ResolveToolInput) (*ResolveToolOutput, error) {
		return &ResolveToolOutput{}, nil
	})
	if NewServer(r, "test") == nil {
		t.Fatal("NewServer() returned nil")
	}
}

func TestNewResolveToolOutput(t *testing.T) {
	cidr := "10.0.0.10/8"
	a := assignment.NetworkAssignment{
		IName:   "eth0",
		Address: "10.0.0.10",
		Netmask: "255.0.0.0",
		Family:  assignment.FamilyIPv4,
		MAC:     "02:42:ac:11:00:02",
		CIDR:    &cidr,
	}

	out := NewResolveToolOutput(a.WithGateway("10.0.0.1"))
	if !out.Found || out.Gateway != "10.0.0.1" || out.CIDR != cidr || out.Interface != "eth0" {
		t.Errorf("NewResolveToolOutput() = %+v", out)
	}
	if out.Summary != "Interface eth0 (10.0.0.10) via gateway 10.0.0.1" {
		t.Errorf("Summary = %q", out.Summary)
	}

	out = NewResolveToolOutput(a.WithGateway(""))
	if out.Gateway != "" || out.Summary != "Interface eth0 (10.0.0.10) with no separate gateway" {
		t.Errorf("NewResolveToolOutput() without gateway = %+v", out)
	}
}
