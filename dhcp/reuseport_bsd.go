//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package dhcp

import "golang.org/x/sys/unix"

// BSD stacks only share a wildcard UDP bind between sockets that all set
// SO_REUSEPORT.
func setReusePort(fd int) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
}
