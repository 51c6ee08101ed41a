//go:build unix

package dhcp

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// control lets every concurrent discover bind the client port and send to a
// broadcast address.
func control(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
			sockErr = fmt.Errorf("SO_REUSEADDR: %w", err)
			return
		}
		if err := setReusePort(int(fd)); err != nil {
			sockErr = fmt.Errorf("SO_REUSEPORT: %w", err)
			return
		}
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1); err != nil {
			sockErr = fmt.Errorf("SO_BROADCAST: %w", err)
		}
	})
	if err != nil {
		return err
	}
	return sockErr
}
