package netaddr

import (
	"strconv"
	"strings"

	"github.com/R167/lannet/internal/errs"
)

const (
	MACLen = 6

	// maxMACSegments bounds how many colon-separated segments are inspected.
	maxMACSegments = 16
)

// ParseMAC parses a colon-separated hex MAC. Only the first six segments
// contribute to the result; missing trailing bytes are zero.
func ParseMAC(macStr string) ([MACLen]byte, error) {
	var mac [MACLen]byte
	segments := strings.Split(macStr, ":")
	if len(segments) > maxMACSegments {
		segments = segments[:maxMACSegments]
	}
	for i, seg := range segments {
		v, err := strconv.ParseUint(seg, 16, 8)
		if err != nil {
			return [MACLen]byte{}, &errs.Error{
				Kind: errs.KindParse,
				Op:   "parse mac",
				Msg:  "invalid segment " + strconv.Quote(seg) + " in " + strconv.Quote(macStr),
			}
		}
		if i < MACLen {
			mac[i] = byte(v)
		}
	}
	return mac, nil
}

func FormatMAC(mac [MACLen]byte) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 0, MACLen*3-1)
	for i, b := range mac {
		if i > 0 {
			buf = append(buf, ':')
		}
		buf = append(buf, hexDigits[b>>4], hexDigits[b&0x0f])
	}
	return string(buf)
}

// ParseIPv4 packs a dotted-quad string into a uint32.
func ParseIPv4(ipStr string) (uint32, error) {
	octets := strings.Split(ipStr, ".")
	if len(octets) != 4 {
		return 0, errs.New(errs.KindParse, "parse ipv4", "expected 4 octets in "+strconv.Quote(ipStr))
	}
	var addr uint32
	for _, octet := range octets {
		v, err := strconv.ParseUint(octet, 10, 8)
		if err != nil {
			return 0, errs.New(errs.KindParse, "parse ipv4", "invalid octet "+strconv.Quote(octet)+" in "+strconv.Quote(ipStr))
		}
		addr = addr<<8 | uint32(v)
	}
	return addr, nil
}

// MustParseIPv4 is like ParseIPv4 but panics on malformed input. It is meant
// for package-level constants.
func MustParseIPv4(ipStr string) uint32 {
	addr, err := ParseIPv4(ipStr)
	if err != nil {
		panic(err)
	}
	return addr
}

func FormatIPv4(addr uint32) string {
	var b strings.Builder
	b.Grow(15)
	b.WriteString(strconv.FormatUint(uint64(addr>>24&0xff), 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(uint64(addr>>16&0xff), 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(uint64(addr>>8&0xff), 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(uint64(addr&0xff), 10))
	return b.String()
}

// SameSubnet reports whether addrA and addrB share a network under netmask.
func SameSubnet(addrA, addrB, netmask string) (bool, error) {
	a, err := ParseIPv4(addrA)
	if err != nil {
		return false, err
	}
	b, err := ParseIPv4(addrB)
	if err != nil {
		return false, err
	}
	mask, err := ParseIPv4(netmask)
	if err != nil {
		return false, err
	}
	return a&mask == b&mask, nil
}

// Broadcast returns the directed broadcast address of addr's network.
func Broadcast(addr, netmask uint32) uint32 {
	return addr | ^netmask
}
