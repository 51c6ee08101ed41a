package main

import (
	"context"
	"time"

	"github.com/R167/lannet/internal/cli"
	"github.com/R167/lannet/internal/mcp"
	"github.com/R167/lannet/internal/mode"
	"github.com/R167/lannet/internal/output"
	"github.com/R167/lannet/internal/validate"
)

// newToolRegistry exposes every resolution mode as a resolve_<mode> tool.
func newToolRegistry(cfg *cli.Config) *mcp.ToolRegistry {
	registry := mcp.NewToolRegistry()
	for _, m := range mode.All() {
		registry.Register("resolve_"+m.Name, m.Description, adaptMode(cfg, m))
	}
	return registry
}

func adaptMode(base *cli.Config, m mode.Mode) mcp.ToolFunction {
	return func(ctx context.Context, input *mcp.ResolveToolInput) (*mcp.ResolveToolOutput, error) {
		cfg := *base
		if input.DHCPTimeoutMS > 0 {
			cfg.DHCPTimeout = time.Duration(input.DHCPTimeoutMS) * time.Millisecond
		}
		if input.ProbeTarget != "" {
			if err := validate.ProbeTarget(input.ProbeTarget); err != nil {
				return nil, err
			}
			cfg.ProbeTarget = input.ProbeTarget
		}

		trace := output.NewBufferedOutput()
		if input.Debug || output.DebugEnabled() {
			trace = output.NewBufferedOutput().WithDebug(true)
		}
		trace.Section(m.Icon, "Mode: "+m.Name)

		result, err := m.Run(ctx, cfg.Resolver(trace))
		if err != nil {
			trace.Error("%s", m.FailureMessage(err))
			trace.Detail("%v", err)
			return &mcp.ResolveToolOutput{
				Summary: m.FailureMessage(err),
				Report:  trace.String(),
			}, nil
		}

		out := mcp.NewResolveToolOutput(result)
		trace.Success("%s", out.Summary)
		out.Report = trace.String()
		return out, nil
	}
}
