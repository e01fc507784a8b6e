package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// CyclesTool handles the list_cycles MCP tool.
type CyclesTool struct {
	client OKRClient
}

// NewCyclesTool creates a CyclesTool backed by the given client.
func NewCyclesTool(client OKRClient) *CyclesTool {
	return &CyclesTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *CyclesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_cycles",
		mcp.WithDescription(
			"List the OKR cycles (time periods like '2024-Q3') in the configured workspace. "+
				"Cycle names can be passed to search_okrs as the cycle filter.",
		),
	)
}

// Handle processes a list_cycles tool call.
func (t *CyclesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cycles, err := t.client.ListCycles(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(formatReferences("Cycles", cycles)), nil
}

// TeamsTool handles the list_teams MCP tool.
type TeamsTool struct {
	client OKRClient
}

// NewTeamsTool creates a TeamsTool backed by the given client.
func NewTeamsTool(client OKRClient) *TeamsTool {
	return &TeamsTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *TeamsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_teams",
		mcp.WithDescription(
			"List the teams in the configured workspace. "+
				"Team names can be passed to search_okrs as the team filter.",
		),
	)
}

// Handle processes a list_teams tool call.
func (t *TeamsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teams, err := t.client.ListTeams(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(formatReferences("Teams", teams)), nil
}
