package tools

import (
	"context"

	"github.com/don-alberto/oboard-mcp/internal/oboard"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchTool handles the search_okrs MCP tool.
type SearchTool struct {
	client OKRClient
}

// NewSearchTool creates a SearchTool backed by the given client.
func NewSearchTool(client OKRClient) *SearchTool {
	return &SearchTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_okrs",
		mcp.WithDescription(
			"Search OKRs (objectives and their key results) in the configured Oboard workspace. "+
				"All filters are optional; without filters the most recent objectives are listed. "+
				"Cycle accepts 'current', 'previous', 'all', or an exact cycle name like '2024-Q3'. "+
				"Dates accept common formats (e.g. 2024-08-01); unparsable dates are ignored.",
		),
		mcp.WithString("search",
			mcp.Description("Free-text search over objective and key-result titles"),
		),
		mcp.WithString("cycle",
			mcp.Description("Cycle filter: 'current', 'previous', 'all', or a cycle name"),
		),
		mcp.WithString("team",
			mcp.Description("Team display name (exact match, case-insensitive)"),
		),
		mcp.WithString("start_date_from",
			mcp.Description("Only OKRs starting on or after this date"),
		),
		mcp.WithString("start_date_to",
			mcp.Description("Only OKRs starting on or before this date"),
		),
		mcp.WithString("due_date_from",
			mcp.Description("Only OKRs due on or after this date"),
		),
		mcp.WithString("due_date_to",
			mcp.Description("Only OKRs due on or before this date"),
		),
	)
}

// Handle processes a search_okrs tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := oboard.SearchFilter{
		Search:        req.GetString("search", ""),
		Cycle:         req.GetString("cycle", ""),
		Team:          req.GetString("team", ""),
		StartDateFrom: req.GetString("start_date_from", ""),
		StartDateTo:   req.GetString("start_date_to", ""),
		DueDateFrom:   req.GetString("due_date_from", ""),
		DueDateTo:     req.GetString("due_date_to", ""),
	}

	objectives, err := t.client.Search(ctx, filter)
	if err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(formatObjectives(objectives)), nil
}
