//go:build unix && !(darwin || dragonfly || freebsd || netbsd || openbsd)

package dhcp

func setReusePort(fd int) error {
	return nil
}
