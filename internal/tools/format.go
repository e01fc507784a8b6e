// Package tools implements the MCP tools exposed by oboard-mcp.
//
// Each tool is a struct holding its dependencies, with a Definition()
// for registration and a Handle() compatible with mcp-go's
// CallToolRequest signature — one file per tool. Tools depend on the
// OKRClient interface, not the concrete client, so tests can stub the
// engine.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/don-alberto/oboard-mcp/internal/oboard"
	"github.com/mark3labs/mcp-go/mcp"
)

// OKRClient is the query-engine surface the tools consume.
type OKRClient interface {
	Search(ctx context.Context, filter oboard.SearchFilter) ([]oboard.Objective, error)
	GetByID(ctx context.Context, id string) (*oboard.Objective, error)
	ListCycles(ctx context.Context) ([]oboard.ReferenceEntry, error)
	ListTeams(ctx context.Context) ([]oboard.ReferenceEntry, error)
}

// errorResult converts an engine error into a tool-caller-facing
// result. Every error kind renders as its single-line message; raw
// transport details never reach the caller.
func errorResult(err error) *mcp.CallToolResult {
	var apiErr *oboard.Error
	if errors.As(err, &apiErr) {
		return mcp.NewToolResultError(apiErr.Error())
	}
	return mcp.NewToolResultError("unexpected error: " + err.Error())
}

// statusMarker maps a status to its listing marker.
func statusMarker(s oboard.Status) string {
	switch s {
	case oboard.StatusOnTrack:
		return "🟢"
	case oboard.StatusBehind:
		return "🟡"
	default:
		return "🔴"
	}
}

// formatObjectives renders a search result listing.
func formatObjectives(objectives []oboard.Objective) string {
	if len(objectives) == 0 {
		return "No OKRs matched the given filters."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# OKRs (%d)\n", len(objectives))
	for i := range objectives {
		b.WriteString("\n")
		b.WriteString(formatObjective(&objectives[i]))
	}
	return b.String()
}

// formatObjective renders one objective with its key results.
func formatObjective(obj *oboard.Objective) string {
	var b strings.Builder

	title := obj.Title
	if obj.DisplayID != "" {
		title = obj.DisplayID + " " + title
	}
	fmt.Fprintf(&b, "## %s %s\n", statusMarker(obj.Status), title)
	fmt.Fprintf(&b, "- Status: %s (%.0f%%)\n", obj.Status, obj.Grade)
	if obj.CycleName != "" {
		fmt.Fprintf(&b, "- Cycle: %s\n", obj.CycleName)
	}
	if obj.TeamName != "" {
		fmt.Fprintf(&b, "- Team: %s\n", obj.TeamName)
	}
	if obj.LevelName != "" {
		fmt.Fprintf(&b, "- Level: %s\n", obj.LevelName)
	}
	if obj.Description != "" {
		fmt.Fprintf(&b, "- %s\n", obj.Description)
	}

	if len(obj.CustomFields) > 0 {
		names := make([]string, 0, len(obj.CustomFields))
		for name := range obj.CustomFields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- %s: %s\n", name, obj.CustomFields[name])
		}
	}

	if len(obj.KeyResults) > 0 {
		b.WriteString("\nKey results:\n")
		for _, kr := range obj.KeyResults {
			fmt.Fprintf(&b, "- [%3.0f%%] %s\n", kr.ProgressPercent, kr.Title)
		}
	}

	return b.String()
}

// formatReferences renders a cycle or team listing. heading is the
// capitalized plural ("Cycles", "Teams").
func formatReferences(heading string, entries []oboard.ReferenceEntry) string {
	if len(entries) == 0 {
		return "No " + strings.ToLower(heading) + " found in this workspace."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%d)\n\n", heading, len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s (id %s)\n", e.Name, e.ID)
	}
	return b.String()
}
