package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetTool handles the get_okr MCP tool.
type GetTool struct {
	client OKRClient
}

// NewGetTool creates a GetTool backed by the given client.
func NewGetTool(client OKRClient) *GetTool {
	return &GetTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *GetTool) Definition() mcp.Tool {
	return mcp.NewTool("get_okr",
		mcp.WithDescription(
			"Fetch a single OKR by its id, including its key results. "+
				"Use search_okrs first to discover ids.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The objective's id"),
		),
	)
}

// Handle processes a get_okr tool call.
func (t *GetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	obj, err := t.client.GetByID(ctx, id)
	if err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(formatObjective(obj)), nil
}
