// Package netaddr converts dotted-quad IPv4 strings and colon-separated MAC
// strings to and from their fixed-width forms.
//
// IPv4 addresses are packed big-endian into a uint32, so octet 0 is the most
// significant byte. The packed form is only ever used for equality and
// masking:
//
//	SameSubnet("192.168.1.1", "192.168.1.2", "255.255.255.0") // true
//	FormatIPv4(Broadcast(addr, mask))
package netaddr
