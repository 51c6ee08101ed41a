// Package dhcp solicits a reply from the DHCP server on an interface's
// broadcast segment.
//
// A minimal 244-byte DHCPDISCOVER is broadcast from the client port to the
// server port at the interface's directed broadcast address. The first
// datagram that comes back identifies the replying peer, which is almost
// always the router itself. Reply contents are not interpreted beyond an
// optional debug summary.
package dhcp
