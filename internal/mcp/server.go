package mcp

import (
	"context"
	"log"
	"sort"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type ToolFunction func(ctx context.Context, input *ResolveToolInput) (*ResolveToolOutput, error)

type tool struct {
	description string
	fn          ToolFunction
}

type ToolRegistry struct {
	tools map[string]tool
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]tool),
	}
}

func (r *ToolRegistry) Register(name, description string, fn ToolFunction) {
	r.tools[name] = tool{description: description, fn: fn}
}

// Names returns the registered tool names in sorted order.
func (r *ToolRegistry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewServer returns an MCP server exposing every registered tool.
func NewServer(registry *ToolRegistry, version string) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "lannet",
		Version: version,
	}, nil)

	for _, name := range registry.Names() {
		addTool(server, name, registry.tools[name])
	}
	return server
}

func RunServer(ctx context.Context, registry *ToolRegistry, version string) error {
	if err := NewServer(registry, version).Run(ctx, &mcpsdk.StdioTransport{}); err != nil {
		log.Printf("MCP server failed: %v", err)
		return err
	}
	return nil
}

func addTool(server *mcpsdk.Server, name string, t tool) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        name,
		Description: t.description,
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, input ResolveToolInput) (*mcpsdk.CallToolResult, ResolveToolOutput, error) {
		output, err := t.fn(ctx, &input)
		if err != nil {
			return nil, ResolveToolOutput{}, err
		}

		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{
				&mcpsdk.TextContent{Text: output.Report},
			},
		}, *output, nil
	})
}
