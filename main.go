package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/R167/lannet/internal/cli"
	"github.com/R167/lannet/internal/mcp"
	"github.com/R167/lannet/internal/output"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cfg := cli.NewConfig()

	root := &cobra.Command{
		Use:   "lannet",
		Short: "Discover the machine's default gateway and local network IP",
		Long: `Discover the machine's default gateway and local network IP.

With no mode flag, lannet tries --probe, --dhcp and --fallback in order and
prints the first assignment found as JSON.`,
		Example: `  lannet
  lannet --default
  lannet --dhcp --dhcp-timeout 1s
  lannet -o yaml`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			output.SetDebug(cfg.Debug)

			if cfg.MCP {
				return mcp.RunServer(cmd.Context(), newToolRegistry(cfg), version)
			}

			out := output.NewStreamingOutput(cmd.ErrOrStderr())
			return cli.Run(cmd.Context(), cfg, cfg.Resolver(out), cmd.OutOrStdout(), out)
		},
	}
	cfg.BindFlags(root)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
