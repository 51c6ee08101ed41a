package probe

import (
	"context"
	"net"

	"github.com/R167/lannet/internal/errs"
	"github.com/R167/lannet/internal/output"
)

const DefaultTarget = "8.8.8.8:80"

type Prober struct {
	Target string
	Out    output.Output
}

func New() *Prober {
	return &Prober{Target: DefaultTarget, Out: output.NewNoOpOutput()}
}

// ProbeDefaultRoute returns the local address routed toward Target.
func (p *Prober) ProbeDefaultRoute(ctx context.Context) (string, error) {
	out := p.Out
	if out == nil {
		out = output.NewNoOpOutput()
	}
	target := p.Target
	if target == "" {
		target = DefaultTarget
	}

	out.Debug("Probe: associating UDP socket with %s", target)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp4", target)
	if err != nil {
		out.Debug("Probe: association failed: %v", err)
		return "", errs.Wrap(errs.KindSocket, "probe", err)
	}
	defer conn.Close()

	localAddr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || localAddr.IP == nil || localAddr.IP.IsUnspecified() {
		out.Debug("Probe: no local address bound")
		return "", errs.New(errs.KindNoRoute, "probe", "no route to host")
	}

	addr := localAddr.IP.String()
	out.Debug("Probe: kernel selected local address %s", addr)
	return addr, nil
}
