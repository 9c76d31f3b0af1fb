// Package mcptools talks to the external tool-provider process over the MCP
// stdio transport. Every operation spawns a fresh subprocess, performs the
// session handshake, runs exactly one request, and tears the process down —
// there is no session reuse between tool listing and tool invocation.
package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tunescout-poc/server/internal/agent/model"
	errx "github.com/tunescout-poc/server/internal/core/error"
	logx "github.com/tunescout-poc/server/pkg/logger"
)

const clientName = "tunescout"

// emptyPayload is returned when a tool call yields no content items.
const emptyPayload = "[]"

// StdioSession spawns the configured tool-provider command per call.
type StdioSession struct {
	command string
	args    []string
	version string
}

func NewStdioSession(cfg model.ToolServerConfig, version string) *StdioSession {
	if version == "" {
		version = "dev"
	}
	return &StdioSession{command: cfg.Command, args: cfg.Args, version: version}
}

// connect starts the subprocess and performs the protocol handshake. The
// returned client must be closed by the caller.
func (s *StdioSession) connect(ctx context.Context) (*client.Client, error) {
	c, err := client.NewStdioMCPClient(s.command, nil, s.args...)
	if err != nil {
		logx.Error().Err(err).Str("command", s.command).Msg("failed to start tool server")
		return nil, errx.WrapToolServer(fmt.Errorf("start %q: %w", s.command, err))
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: clientName, Version: s.version}

	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		logx.Error().Err(err).Str("command", s.command).Msg("tool server handshake failed")
		return nil, errx.WrapToolServer(fmt.Errorf("initialize: %w", err))
	}
	return c, nil
}

// ListTools fetches the tool catalog. The catalog is never cached; callers get
// a fresh subprocess round trip every time.
func (s *StdioSession) ListTools(ctx context.Context) ([]model.ToolDescriptor, error) {
	c, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	result, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		logx.Error().Err(err).Msg("failed to list tools")
		return nil, errx.WrapToolServer(fmt.Errorf("list tools: %w", err))
	}

	descriptors := make([]model.ToolDescriptor, 0, len(result.Tools))
	for _, t := range result.Tools {
		descriptors = append(descriptors, model.ToolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schemaParams(t.InputSchema.Properties),
		})
	}

	logx.Debug().Int("tool_count", len(descriptors)).Msg("tool catalog fetched")
	return descriptors, nil
}

// CallTool invokes one named tool and returns the first content item's text,
// or a literal empty-array payload when the tool produced no content.
func (s *StdioSession) CallTool(ctx context.Context, name string, arguments map[string]any) (string, error) {
	c, err := s.connect(ctx)
	if err != nil {
		return "", err
	}
	defer c.Close()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = arguments

	result, err := c.CallTool(ctx, req)
	if err != nil {
		logx.Error().Err(err).Str("tool_name", name).Msg("tool invocation failed")
		return "", errx.WrapToolInvocation(fmt.Errorf("call %q: %w", name, err))
	}

	for _, content := range result.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			return tc.Text, nil
		}
	}
	return emptyPayload, nil
}

// schemaParams flattens a JSON-schema properties object into a name→type map.
func schemaParams(properties map[string]any) map[string]string {
	params := make(map[string]string, len(properties))
	for name, raw := range properties {
		paramType := "unknown"
		if prop, ok := raw.(map[string]any); ok {
			if t, ok := prop["type"].(string); ok && t != "" {
				paramType = t
			}
		}
		params[name] = paramType
	}
	return params
}
