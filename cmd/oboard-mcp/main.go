// oboard-mcp: a read-only MCP server for Oboard OKRs.
//
// Exposes the objectives, key results, cycles, and teams of one Oboard
// workspace to any MCP-capable AI tool over stdio.
//
// Usage:
//
//	oboard-mcp serve      # Start the MCP server (stdio transport)
//	oboard-mcp version    # Print the version
package main

import (
	"fmt"
	"os"

	"github.com/don-alberto/oboard-mcp/internal/oboard"
	okrserver "github.com/don-alberto/oboard-mcp/internal/server"
	"github.com/don-alberto/oboard-mcp/internal/updater"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
	case "--version", "-v", "version":
		fmt.Printf("oboard-mcp v%s\n", okrserver.Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, err := okrserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Background version check — stderr only, so it can't interfere
	// with the MCP stdio transport on stdout.
	go checkForUpdates()

	return server.ServeStdio(s)
}

// checkForUpdates prints a notice to stderr if a newer release exists.
// Best-effort: network failures are silently ignored.
func checkForUpdates() {
	result := updater.NewChecker().Check(okrserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  Update available: v%s → v%s\n  Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `oboard-mcp v%s — read-only MCP server for Oboard OKRs

Usage:
  oboard-mcp serve      Start the MCP server (stdio transport)
  oboard-mcp version    Print the version

Configuration (environment):
  OBOARD_API_TOKEN      Oboard API token (required)
  OBOARD_WORKSPACE_ID   Workspace id to query (required)
  OBOARD_API_BASE_URL   API endpoint (default %s)
  OBOARD_CACHE_TTL      Cycle/team cache TTL in seconds (default 3600, 0 disables)
  OBOARD_HTTP_TIMEOUT   Upstream request timeout in seconds (default 15)
  OBOARD_CONFIG         Optional YAML config file; env vars take precedence

MCP config example:

  {
    "mcpServers": {
      "oboard": {
        "command": "oboard-mcp",
        "args": ["serve"],
        "env": {
          "OBOARD_API_TOKEN": "...",
          "OBOARD_WORKSPACE_ID": "..."
        }
      }
    }
  }
`, okrserver.Version, oboard.DefaultBaseURL)
}
