package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/R167/lannet/assignment"
	"github.com/R167/lannet/dhcp"
	"github.com/R167/lannet/internal/mode"
	"github.com/R167/lannet/internal/output"
	"github.com/R167/lannet/internal/validate"
	"github.com/R167/lannet/probe"
	"github.com/R167/lannet/resolver"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrReported is returned by Run after the failure has already been printed.
var ErrReported = errors.New("resolution failed")

type Config struct {
	Output      string
	Debug       bool
	DHCPTimeout time.Duration
	ProbeTarget string
	Sync        bool
	SyncTimeout time.Duration
	MCP         bool

	modes map[string]*bool
}

func NewConfig() *Config {
	return &Config{
		Output:      FormatJSON,
		DHCPTimeout: dhcp.DefaultTimeout,
		ProbeTarget: probe.DefaultTarget,
		SyncTimeout: resolver.SyncTimeout,
		modes:       make(map[string]*bool),
	}
}

// BindFlags registers one flag per mode plus the tuning flags on cmd. Mode
// flags are mutually exclusive.
func (c *Config) BindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	var names []string
	for _, m := range mode.All() {
		selected := new(bool)
		c.modes[m.Name] = selected
		flags.BoolVarP(selected, m.Name, m.Shorthand, false, m.Description)
		names = append(names, m.Name)
	}
	cmd.MarkFlagsMutuallyExclusive(names...)

	flags.StringVarP(&c.Output, "output", "o", c.Output, "Output format: json or yaml")
	flags.BoolVar(&c.Debug, "debug", false, "Trace each resolution step on stderr")
	flags.DurationVar(&c.DHCPTimeout, "dhcp-timeout", c.DHCPTimeout, "How long to wait for a DHCP reply per interface")
	flags.StringVar(&c.ProbeTarget, "probe-target", c.ProbeTarget, "Publicly routed host:port used to find the default route")
	flags.BoolVar(&c.Sync, "sync", false, "Resolve in a child process bounded by --sync-timeout")
	flags.DurationVar(&c.SyncTimeout, "sync-timeout", c.SyncTimeout, "Wall-clock limit for --sync")
	flags.BoolVar(&c.MCP, "mcp", false, "Serve resolution modes as MCP tools over stdio")
}

// Mode returns the selected mode name, mode.Default when none is set.
func (c *Config) Mode() string {
	for _, m := range mode.All() {
		if selected := c.modes[m.Name]; selected != nil && *selected {
			return m.Name
		}
	}
	return mode.Default
}

func (c *Config) Validate() error {
	switch c.Output {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid --output %q: want %s or %s", c.Output, FormatJSON, FormatYAML)
	}
	if c.DHCPTimeout <= 0 {
		return fmt.Errorf("--dhcp-timeout must be positive, got %v", c.DHCPTimeout)
	}
	if err := validate.ProbeTarget(c.ProbeTarget); err != nil {
		return fmt.Errorf("invalid --probe-target: %w", err)
	}
	if c.SyncTimeout <= 0 {
		return fmt.Errorf("--sync-timeout must be positive, got %v", c.SyncTimeout)
	}
	if c.Sync && c.Mode() != mode.Default {
		return fmt.Errorf("--sync only applies to --%s, not --%s", mode.Default, c.Mode())
	}
	return nil
}

// Resolver builds a resolver whose prober and discoverer trace to out.
func (c *Config) Resolver(out output.Output) *resolver.Resolver {
	p := probe.New()
	p.Target = c.ProbeTarget
	p.Out = out

	d := dhcp.New()
	d.Timeout = c.DHCPTimeout
	d.Out = out

	return resolver.New().
		WithProber(p).
		WithDiscoverer(d).
		WithOutput(out)
}

// childArgs are the flags passed to the child process under --sync.
func (c *Config) childArgs() []string {
	return []string{
		resolver.DefaultModeArg,
		"--dhcp-timeout", c.DHCPTimeout.String(),
		"--probe-target", c.ProbeTarget,
	}
}

// Run resolves using the selected mode and writes the result to stdout.
// Failures are printed to out and reported as ErrReported.
func Run(ctx context.Context, c *Config, r *resolver.Resolver, stdout io.Writer, out output.Output) error {
	m, ok := mode.Get(c.Mode())
	if !ok {
		return fmt.Errorf("unknown mode %q", c.Mode())
	}
	out.Debug("%s Mode: %s", m.Icon, m.Name)

	var (
		result assignment.GatewayAssignment
		err    error
	)
	if c.Sync {
		result, err = c.runSync(ctx)
	} else {
		result, err = m.Run(ctx, r)
	}
	if err != nil {
		out.Println(m.FailureMessage(err))
		out.Debug("%v", err)
		return ErrReported
	}

	return Encode(stdout, c.Output, result)
}

func (c *Config) runSync(ctx context.Context) (assignment.GatewayAssignment, error) {
	self, err := os.Executable()
	if err != nil {
		return assignment.GatewayAssignment{}, err
	}
	result := resolver.RunSubprocess(ctx, c.SyncTimeout, self, c.childArgs()...)
	if result.IsDefault() {
		return assignment.GatewayAssignment{}, fmt.Errorf("child process produced no assignment")
	}
	return result, nil
}

// Encode writes a in the given format. JSON is indented by two spaces.
func Encode(w io.Writer, format string, a assignment.GatewayAssignment) error {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(a)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON, "":
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
