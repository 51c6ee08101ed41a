//go:build !unix && !windows

package dhcp

import "syscall"

func control(network, address string, c syscall.RawConn) error {
	return nil
}
