package ranker

import (
	"context"
	"errors"
	"testing"

	"github.com/R167/lannet/assignment"
)

func staticSource(records map[string][]Record) Source {
	return SourceFunc(func(ctx context.Context) (map[string][]Record, error) {
		return records, nil
	})
}

func ipv4(address, netmask, mac string, internal bool) Record {
	cidr := ""
	return Record{
		Address:  address,
		Netmask:  netmask,
		Family:   assignment.FamilyIPv4,
		MAC:      mac,
		Internal: internal,
		CIDR:     &cidr,
	}
}

func names(candidates []assignment.NetworkAssignment) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.IName + "=" + c.Address
	}
	return out
}

func TestEnumerate_SortedList(t *testing.T) {
	src := staticSource(map[string][]Record{
		"lo0":  {ipv4("127.0.0.1", "255.0.0.0", "00:00:00:00:00:00", true)},
		"en1":  {ipv4("10.0.0.10", "255.255.255.0", "a4:83:e7:01:02:03", false)},
		"tun2": {ipv4("100.0.0.11", "255.255.255.0", "00:00:00:00:00:00", true)},
	})

	got, err := Enumerate(context.Background(), src)
	if err != nil {
		t.Fatalf("Enumerate() error: %v", err)
	}

	want := []string{"en1=10.0.0.10", "tun2=100.0.0.11", "lo0=127.0.0.1"}
	gotNames := names(got)
	if len(gotNames) != len(want) {
		t.Fatalf("Enumerate() = %v, want %v", gotNames, want)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Errorf("Enumerate()[%d] = %s, want %s", i, gotNames[i], want[i])
		}
	}

	if got[0].Family != assignment.FamilyIPv4 || got[0].Netmask != "255.255.255.0" {
		t.Errorf("Enumerate()[0] = %+v", got[0])
	}
	if IsInternal(got[0]) || !IsInternal(got[1]) || !IsInternal(got[2]) {
		t.Errorf("want only %s external, got %v", got[0].IName, gotNames)
	}
}

func TestEnumerate_ExternalFirst(t *testing.T) {
	src := staticSource(map[string][]Record{
		"en0":     {ipv4("8.8.4.4", "255.255.255.0", "a4:83:e7:01:02:03", false)},
		"docker0": {ipv4("192.168.5.1", "255.255.255.0", "02:42:ac:11:00:02", true)},
		"en1":     {ipv4("192.168.1.20", "255.255.255.0", "a4:83:e7:01:02:04", false)},
		"en2":     {ipv4("192.168.1.30", "255.255.255.0", "a4:83:e7:01:02:05", false)},
	})

	got, err := Enumerate(context.Background(), src)
	if err != nil {
		t.Fatalf("Enumerate() error: %v", err)
	}

	want := []string{"en2=192.168.1.30", "en1=192.168.1.20", "en0=8.8.4.4", "docker0=192.168.5.1"}
	for i, name := range names(got) {
		if name != want[i] {
			t.Errorf("Enumerate()[%d] = %s, want %s", i, name, want[i])
		}
	}
}

func TestEnumerate_FiltersIPv6(t *testing.T) {
	v6 := Record{Address: "fe80::1", Netmask: "ffff:ffff:ffff:ffff::", Family: FamilyIPv6, MAC: "a4:83:e7:01:02:03"}
	src := staticSource(map[string][]Record{
		"en0": {v6, ipv4("192.168.1.20", "255.255.255.0", "a4:83:e7:01:02:03", false)},
		"gif": {v6},
	})

	got, err := Enumerate(context.Background(), src)
	if err != nil {
		t.Fatalf("Enumerate() error: %v", err)
	}
	if len(got) != 1 || got[0].Address != "192.168.1.20" {
		t.Errorf("Enumerate() = %v, want only the IPv4 record", names(got))
	}
}

func TestEnumerate_Deterministic(t *testing.T) {
	records := map[string][]Record{
		"a": {ipv4("192.168.1.5", "255.255.255.0", "a4:83:e7:01:02:03", false)},
		"b": {ipv4("192.168.1.5", "255.255.255.0", "a4:83:e7:01:02:04", false)},
		"c": {ipv4("192.168.1.5", "255.255.255.0", "a4:83:e7:01:02:05", false)},
		"d": {ipv4("10.1.1.1", "255.0.0.0", "a4:83:e7:01:02:06", false)},
	}

	first, err := Enumerate(context.Background(), staticSource(records))
	if err != nil {
		t.Fatalf("Enumerate() error: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, _ := Enumerate(context.Background(), staticSource(records))
		for j := range first {
			if !first[j].Equal(again[j]) {
				t.Fatalf("run %d: position %d = %s, want %s", i, j, again[j].IName, first[j].IName)
			}
		}
	}
	if first[0].IName != "a" {
		t.Errorf("ties should break by interface name, got %s first", first[0].IName)
	}
}

func TestEnumerate_SourceError(t *testing.T) {
	src := SourceFunc(func(ctx context.Context) (map[string][]Record, error) {
		return nil, errors.New("boom")
	})
	if _, err := Enumerate(context.Background(), src); err == nil {
		t.Error("Enumerate() should propagate source errors")
	}
}

func TestEnumerate_Empty(t *testing.T) {
	got, err := Enumerate(context.Background(), staticSource(nil))
	if err != nil {
		t.Fatalf("Enumerate() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Enumerate() = %v, want empty", names(got))
	}
}

func TestIsInternal(t *testing.T) {
	tests := []struct {
		name string
		a    assignment.NetworkAssignment
		want bool
	}{
		{"flagged", assignment.NetworkAssignment{IName: "lo0", MAC: "a4:83:e7:01:02:03", Internal: true}, true},
		{"zero mac", assignment.NetworkAssignment{IName: "en0", MAC: "00:00:00:00:00:00"}, true},
		{"hyper-v mac", assignment.NetworkAssignment{IName: "eth0", MAC: "00:15:5d:12:34:56"}, true},
		{"hyper-v mac upper", assignment.NetworkAssignment{IName: "eth0", MAC: "00:15:5D:12:34:56"}, true},
		{"vEthernet name", assignment.NetworkAssignment{IName: "vEthernet (WSL)", MAC: "a4:83:e7:01:02:03"}, true},
		{"bad mac", assignment.NetworkAssignment{IName: "en0", MAC: "not-a-mac"}, true},
		{"physical", assignment.NetworkAssignment{IName: "en0", MAC: "a4:83:e7:01:02:03"}, false},
		{"near hyper-v", assignment.NetworkAssignment{IName: "en0", MAC: "00:15:5e:12:34:56"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInternal(tt.a); got != tt.want {
				t.Errorf("IsInternal(%+v) = %v, want %v", tt.a, got, tt.want)
			}
		})
	}
}

func TestSubnetPriority(t *testing.T) {
	tests := []struct {
		addr string
		want int
	}{
		{"192.168.1.1", 5},
		{"192.0.2.1", 5},
		{"172.16.0.1", 4},
		{"10.0.0.1", 3},
		{"100.64.0.1", 2},
		{"127.0.0.1", 1},
		{"8.8.8.8", 0},
		{"1.92.0.1", 0},
	}

	for _, tt := range tests {
		if got := SubnetPriority(tt.addr); got != tt.want {
			t.Errorf("SubnetPriority(%s) = %d, want %d", tt.addr, got, tt.want)
		}
	}
}

func TestSort_SignedAddressTieBreak(t *testing.T) {
	candidates := []assignment.NetworkAssignment{
		{IName: "a", Address: "8.8.8.8", MAC: "a4:83:e7:01:02:03"},
		{IName: "b", Address: "200.1.1.1", MAC: "a4:83:e7:01:02:04"},
		{IName: "c", Address: "50.1.1.1", MAC: "a4:83:e7:01:02:05"},
	}
	Sort(candidates)

	want := []string{"c", "a", "b"}
	for i, c := range candidates {
		if c.IName != want[i] {
			t.Errorf("Sort()[%d] = %s, want %s", i, c.IName, want[i])
		}
	}
}

func TestRecordFromCIDR(t *testing.T) {
	record, ok := recordFromCIDR("192.168.1.20/24", "a4:83:e7:01:02:03", false)
	if !ok {
		t.Fatal("recordFromCIDR() should accept IPv4 CIDR")
	}
	if record.Address != "192.168.1.20" || record.Netmask != "255.255.255.0" || record.Family != assignment.FamilyIPv4 {
		t.Errorf("recordFromCIDR() = %+v", record)
	}
	if record.CIDR == nil || *record.CIDR != "192.168.1.20/24" {
		t.Errorf("CIDR = %v, want passthrough", record.CIDR)
	}

	record, ok = recordFromCIDR("fe80::1/64", "a4:83:e7:01:02:03", false)
	if !ok || record.Family != FamilyIPv6 {
		t.Errorf("recordFromCIDR(v6) = %+v, %v", record, ok)
	}

	if _, ok := recordFromCIDR("garbage", "", false); ok {
		t.Error("recordFromCIDR() should reject malformed CIDR")
	}
}

func TestSystemSource(t *testing.T) {
	records, err := SystemSource{}.Interfaces(context.Background())
	if err != nil {
		t.Skipf("interface enumeration unavailable: %v", err)
	}
	for name, list := range records {
		for _, r := range list {
			if r.Family != assignment.FamilyIPv4 && r.Family != FamilyIPv6 {
				t.Errorf("%s: unexpected family %q", name, r.Family)
			}
			if r.MAC == "" {
				t.Errorf("%s: MAC should default to the zero address", name)
			}
		}
	}
}
