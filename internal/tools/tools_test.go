package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/don-alberto/oboard-mcp/internal/oboard"
	"github.com/mark3labs/mcp-go/mcp"
)

// stubClient implements OKRClient with canned responses.
type stubClient struct {
	objectives []oboard.Objective
	objective  *oboard.Objective
	cycles     []oboard.ReferenceEntry
	teams      []oboard.ReferenceEntry
	err        error

	lastFilter oboard.SearchFilter
	lastID     string
}

func (s *stubClient) Search(ctx context.Context, filter oboard.SearchFilter) ([]oboard.Objective, error) {
	s.lastFilter = filter
	return s.objectives, s.err
}

func (s *stubClient) GetByID(ctx context.Context, id string) (*oboard.Objective, error) {
	s.lastID = id
	return s.objective, s.err
}

func (s *stubClient) ListCycles(ctx context.Context) ([]oboard.ReferenceEntry, error) {
	return s.cycles, s.err
}

func (s *stubClient) ListTeams(ctx context.Context) ([]oboard.ReferenceEntry, error) {
	return s.teams, s.err
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func sampleObjective() oboard.Objective {
	return oboard.Objective{
		ID:        "101",
		DisplayID: "O-1",
		Title:     "Launch partner portal",
		Status:    oboard.StatusOnTrack,
		Grade:     82,
		CycleName: "2024-Q3",
		TeamName:  "Posolyt",
		KeyResults: []oboard.KeyResult{
			{ID: "201", Title: "Sign 3 partners", ProgressPercent: 66},
		},
	}
}

// --- search_okrs ---

func TestSearchTool_PassesAllFilterFields(t *testing.T) {
	stub := &stubClient{}
	tool := NewSearchTool(stub)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"search":          "portal",
		"cycle":           "current",
		"team":            "Posolyt",
		"start_date_from": "2024-01-01",
		"due_date_to":     "2024-12-31",
	}

	if _, err := tool.Handle(context.Background(), req); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	want := oboard.SearchFilter{
		Search:        "portal",
		Cycle:         "current",
		Team:          "Posolyt",
		StartDateFrom: "2024-01-01",
		DueDateTo:     "2024-12-31",
	}
	if stub.lastFilter != want {
		t.Errorf("filter = %+v, want %+v", stub.lastFilter, want)
	}
}

func TestSearchTool_FormatsObjectives(t *testing.T) {
	stub := &stubClient{objectives: []oboard.Objective{sampleObjective()}}
	tool := NewSearchTool(stub)

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(result))
	}

	text := resultText(result)
	for _, want := range []string{
		"Launch partner portal",
		"On Track",
		"2024-Q3",
		"Posolyt",
		"Sign 3 partners",
		"66%",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestSearchTool_EmptyResultIsFriendly(t *testing.T) {
	tool := NewSearchTool(&stubClient{objectives: []oboard.Objective{}})

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.IsError {
		t.Fatal("empty result set must not be an error result")
	}
	if !strings.Contains(resultText(result), "No OKRs matched") {
		t.Errorf("output = %q", resultText(result))
	}
}

func TestSearchTool_EngineErrorsBecomeErrorResults(t *testing.T) {
	stub := &stubClient{err: &oboard.Error{Kind: oboard.KindNotConfigured}}
	tool := NewSearchTool(stub)

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("engine errors must become error results, got Go error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	text := resultText(result)
	if !strings.Contains(text, "OBOARD_API_TOKEN") {
		t.Errorf("not-configured message should name the missing env vars, got %q", text)
	}
}

func TestSearchTool_RateLimitMessage(t *testing.T) {
	stub := &stubClient{err: &oboard.Error{Kind: oboard.KindRateLimited, Status: 429}}
	tool := NewSearchTool(stub)

	result, _ := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if !result.IsError || !strings.Contains(resultText(result), "rate limited") {
		t.Errorf("result = %q", resultText(result))
	}
}

// --- get_okr ---

func TestGetTool_RequiresID(t *testing.T) {
	tool := NewGetTool(&stubClient{})

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !result.IsError {
		t.Fatal("missing id must be an error result")
	}
}

func TestGetTool_FormatsObjective(t *testing.T) {
	obj := sampleObjective()
	stub := &stubClient{objective: &obj}
	tool := NewGetTool(stub)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"id": "101"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if stub.lastID != "101" {
		t.Errorf("lastID = %q", stub.lastID)
	}
	if !strings.Contains(resultText(result), "O-1 Launch partner portal") {
		t.Errorf("output = %q", resultText(result))
	}
}

func TestGetTool_NotFound(t *testing.T) {
	stub := &stubClient{err: &oboard.Error{Kind: oboard.KindNotFound, Status: 404}}
	tool := NewGetTool(stub)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"id": "999"}

	result, _ := tool.Handle(context.Background(), req)
	if !result.IsError || !strings.Contains(resultText(result), "not found") {
		t.Errorf("result = %q", resultText(result))
	}
}

// --- list_cycles / list_teams ---

func TestCyclesTool_ListsEntries(t *testing.T) {
	stub := &stubClient{cycles: []oboard.ReferenceEntry{
		{ID: "13", Name: "2024-Q3"},
		{ID: "12", Name: "2024-Q2"},
	}}
	tool := NewCyclesTool(stub)

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := resultText(result)
	if !strings.Contains(text, "2024-Q3") || !strings.Contains(text, "2024-Q2") {
		t.Errorf("output = %q", text)
	}
}

func TestTeamsTool_EmptyWorkspace(t *testing.T) {
	tool := NewTeamsTool(&stubClient{teams: []oboard.ReferenceEntry{}})

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.IsError {
		t.Fatal("empty workspace must not be an error result")
	}
	if !strings.Contains(resultText(result), "No teams") {
		t.Errorf("output = %q", resultText(result))
	}
}
