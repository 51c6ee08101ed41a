// Package probe finds the local address the kernel would use for outbound
// traffic.
//
// A UDP socket is associated with a public address, which forces a route
// lookup without sending anything, and the socket's local address is read
// back. An unspecified local address means there is no outbound route.
package probe
