package dhcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/R167/lannet/assignment"
	"github.com/R167/lannet/internal/errs"
	"github.com/R167/lannet/internal/output"
	"github.com/R167/lannet/netaddr"
	"github.com/insomniacslk/dhcp/dhcpv4"
)

const (
	DefaultTimeout = 250 * time.Millisecond
	ClientPort     = 68
	ServerPort     = 67

	maxReplySize = 1500
)

// Discoverer broadcasts a DHCPDISCOVER per assignment. The zero value uses the
// standard ports, DefaultTimeout and crypto/rand.
type Discoverer struct {
	Timeout    time.Duration
	ClientPort int
	ServerPort int
	Rand       io.Reader
	Out        output.Output
}

func New() *Discoverer {
	return &Discoverer{
		Timeout:    DefaultTimeout,
		ClientPort: ClientPort,
		ServerPort: ServerPort,
		Out:        output.NewNoOpOutput(),
	}
}

func (d *Discoverer) timeout() time.Duration {
	if d.Timeout <= 0 {
		return DefaultTimeout
	}
	return d.Timeout
}

func (d *Discoverer) ports() (client, server int) {
	client, server = d.ClientPort, d.ServerPort
	if client == 0 && server == 0 {
		return ClientPort, ServerPort
	}
	return client, server
}

func (d *Discoverer) out() output.Output {
	if d.Out == nil {
		return output.NewNoOpOutput()
	}
	return d.Out
}

// BroadcastAddress returns a's directed broadcast address.
func BroadcastAddress(a assignment.NetworkAssignment) (string, error) {
	addr, err := netaddr.ParseIPv4(a.Address)
	if err != nil {
		return "", err
	}
	mask, err := netaddr.ParseIPv4(a.Netmask)
	if err != nil {
		return "", err
	}
	return netaddr.FormatIPv4(netaddr.Broadcast(addr, mask)), nil
}

// Discover broadcasts a DHCPDISCOVER on a's segment and returns the address of
// the first peer to reply.
func (d *Discoverer) Discover(ctx context.Context, a assignment.NetworkAssignment) (string, error) {
	out := d.out()
	broadcast, err := BroadcastAddress(a)
	if err != nil {
		return "", err
	}
	mac, err := netaddr.ParseMAC(a.MAC)
	if err != nil {
		return "", err
	}
	xid, err := NewTransactionID(d.Rand)
	if err != nil {
		return "", errs.Wrap(errs.KindSocket, "dhcp xid", err)
	}
	packet := BuildDiscover(mac, xid)

	clientPort, serverPort := d.ports()
	conn, err := listen(ctx, clientPort)
	if err != nil {
		out.Debug("DHCP[%s]: bind udp/%d failed: %v", a.IName, clientPort, err)
		return "", errs.Wrap(errs.KindSocket, "dhcp bind", err)
	}
	defer conn.Close()

	timeout := d.timeout()
	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return "", errs.Wrap(errs.KindSocket, "dhcp deadline", err)
	}

	raddr := &net.UDPAddr{IP: net.ParseIP(broadcast), Port: serverPort}
	out.Debug("DHCP[%s]: sending DHCPDISCOVER xid=%x to %s", a.IName, xid, raddr)
	if _, err := conn.WriteTo(packet, raddr); err != nil {
		out.Debug("DHCP[%s]: send failed: %v", a.IName, err)
		return "", errs.Wrap(errs.KindSocket, "dhcp send", err)
	}

	buf := make([]byte, maxReplySize)
	wait := max(time.Until(deadline), 0)
	n, from, err := conn.ReadFrom(buf)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			out.Debug("DHCP[%s]: no reply within %v", a.IName, wait)
			return "", timeoutError(wait)
		}
		return "", errs.Wrap(errs.KindSocket, "dhcp receive", err)
	}

	peer := hostOf(from)
	out.Debug("DHCP[%s]: %d byte reply from %s%s", a.IName, n, peer, describeReply(buf[:n]))
	return peer, nil
}

func timeoutError(wait time.Duration) error {
	return errs.New(errs.KindDHCPTimeout, "dhcp",
		fmt.Sprintf("received no reply to DHCPDISCOVER in %dms", wait.Milliseconds()))
}

func listen(ctx context.Context, port int) (net.PacketConn, error) {
	lc := net.ListenConfig{Control: control}
	return lc.ListenPacket(ctx, "udp4", net.JoinHostPort("0.0.0.0", strconv.Itoa(port)))
}

func hostOf(addr net.Addr) string {
	if udp, ok := addr.(*net.UDPAddr); ok {
		return udp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

// describeReply summarizes a reply for debug traces when it parses as DHCPv4.
func describeReply(data []byte) string {
	if !output.DebugEnabled() {
		return ""
	}
	msg, err := dhcpv4.FromBytes(data)
	if err != nil {
		return " (not a DHCPv4 message)"
	}
	summary := fmt.Sprintf(" (%s", msg.MessageType())
	if serverID := msg.ServerIdentifier(); serverID != nil {
		summary += " server-id=" + serverID.String()
	}
	if routers := msg.Router(); len(routers) > 0 {
		summary += " router=" + routers[0].String()
	}
	return summary + ")"
}
