// Package server wires the MCP components and creates the server
// instance. This is the composition root: it loads configuration,
// builds the Oboard client, and registers the tools. No business logic
// lives here.
package server

import (
	"fmt"

	"github.com/don-alberto/oboard-mcp/internal/config"
	"github.com/don-alberto/oboard-mcp/internal/oboard"
	"github.com/don-alberto/oboard-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered.
func New() (*server.MCPServer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	client := oboard.NewClient(oboard.Settings{
		BaseURL:     cfg.BaseURL,
		APIToken:    cfg.APIToken,
		WorkspaceID: cfg.WorkspaceID,
		CacheTTL:    cfg.CacheTTL,
		HTTPTimeout: cfg.HTTPTimeout,
	})

	s := server.NewMCPServer(
		"oboard-mcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	searchTool := tools.NewSearchTool(client)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	getTool := tools.NewGetTool(client)
	s.AddTool(getTool.Definition(), getTool.Handle)

	cyclesTool := tools.NewCyclesTool(client)
	s.AddTool(cyclesTool.Definition(), cyclesTool.Handle)

	teamsTool := tools.NewTeamsTool(client)
	s.AddTool(teamsTool.Definition(), teamsTool.Handle)

	return s, nil
}

// serverInstructions tells the AI how to use the OKR tools effectively.
func serverInstructions() string {
	return `You have access to oboard-mcp, a read-only bridge to the team's OKRs
(objectives and key results) tracked in Oboard.

## When to use these tools
- The user asks about goals, objectives, key results, OKRs, or quarterly targets
- The user asks how a team or initiative is progressing
- The user wants to know what a cycle (e.g. "this quarter") contains

## Tools
- search_okrs: the main entry point. Filter by free text, cycle, team, and dates.
  Use cycle="current" for this quarter and cycle="previous" for the last one.
- get_okr: fetch one OKR by id when the user drills into a specific objective.
- list_cycles / list_teams: discover the exact cycle and team names the
  workspace uses. Call these when a team or cycle filter returns nothing —
  the user may have used a name that doesn't match the workspace's spelling.

## Notes
- A team filter requires the exact team name (case-insensitive). If the name
  doesn't exist in the workspace the result is empty, not an error.
- An unknown cycle name is ignored rather than failing the search; verify
  cycle names with list_cycles when results look too broad.
- Statuses are derived from progress: 🟢 On Track (≥70%), 🟡 Behind (≥40%),
  🔴 At Risk (<40%).
- All data is read-only; there are no tools to modify OKRs.`
}
