package dhcp

import (
	"crypto/rand"
	"io"

	"github.com/R167/lannet/netaddr"
)

const (
	PacketLen = 244

	opBootRequest  = 1
	hwTypeEthernet = 1
	hwAddrLen      = 6
	flagBroadcast  = 0x80

	offsetXID    = 4
	offsetFlags  = 10
	offsetCHAddr = 28
	offsetCookie = 236
	offsetOpts   = 240
)

var (
	magicCookie = [4]byte{0x63, 0x82, 0x53, 0x63}
	// Message type DISCOVER followed by the end option.
	discoverOptions = [4]byte{0x35, 0x01, 0x01, 0xff}
)

// NewTransactionID reads four random bytes from r, or from crypto/rand when r
// is nil.
func NewTransactionID(r io.Reader) ([4]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	var xid [4]byte
	if _, err := io.ReadFull(r, xid[:]); err != nil {
		return [4]byte{}, err
	}
	return xid, nil
}

// BuildDiscover lays out a DHCPDISCOVER with the broadcast flag set. Fields
// not written here (secs, addresses, sname, file) stay zero.
func BuildDiscover(mac [netaddr.MACLen]byte, xid [4]byte) []byte {
	packet := make([]byte, PacketLen)
	packet[0] = opBootRequest
	packet[1] = hwTypeEthernet
	packet[2] = hwAddrLen
	packet[3] = 0 // hops
	copy(packet[offsetXID:], xid[:])
	packet[offsetFlags] = flagBroadcast
	// chaddr is 16 bytes; only the first six are the MAC.
	copy(packet[offsetCHAddr:], mac[:])
	copy(packet[offsetCookie:], magicCookie[:])
	copy(packet[offsetOpts:], discoverOptions[:])
	return packet
}
