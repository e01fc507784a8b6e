package oboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Oboard API endpoint.
	DefaultBaseURL = "https://backend.okr-api.com/api/v3"
	// DefaultCacheTTL is how long cycles and teams are cached. A TTL
	// of zero is meaningful (refresh on every call), so the default is
	// applied by the configuration layer, not by NewClient.
	DefaultCacheTTL = time.Hour
	// DefaultHTTPTimeout bounds every upstream round trip.
	DefaultHTTPTimeout = 15 * time.Second

	// searchLimit bounds the single page of search results requested.
	searchLimit = 100
)

// Settings configures a Client. A zero BaseURL or HTTPTimeout falls
// back to the defaults above; a zero CacheTTL forces a reference
// refresh on every call. APIToken and WorkspaceID have no defaults and
// queries fail with a not-configured error until both are set.
type Settings struct {
	BaseURL     string
	APIToken    string
	WorkspaceID string
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
}

// Client is the query orchestrator: it warms the reference cache,
// translates a SearchFilter into upstream parameters, dispatches the
// request, normalizes the response, and applies in-memory filtering.
//
// A Client is safe for concurrent use. The reference cache it owns is
// replaced in whole snapshots, never mutated field by field.
type Client struct {
	baseURL     string
	apiToken    string
	workspaceID string
	ttl         time.Duration

	httpc *http.Client
	cache refCache

	// now is the clock, injectable for cache-expiry tests.
	now func() time.Time
}

// NewClient builds a Client from settings, applying defaults for any
// zero-valued field.
func NewClient(s Settings) *Client {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.HTTPTimeout == 0 {
		s.HTTPTimeout = DefaultHTTPTimeout
	}
	return &Client{
		baseURL:     strings.TrimRight(s.BaseURL, "/"),
		apiToken:    s.APIToken,
		workspaceID: s.WorkspaceID,
		ttl:         s.CacheTTL,
		httpc:       &http.Client{Timeout: s.HTTPTimeout},
		now:         time.Now,
	}
}

// Configured reports whether the client has the credentials it needs.
// Unconfigured clients fail fast without touching the network.
func (c *Client) Configured() bool {
	return c.apiToken != "" && c.workspaceID != ""
}

// Search resolves the filter against cached reference data, queries
// /elements, and returns the normalized, team-filtered objectives.
func (c *Client) Search(ctx context.Context, filter SearchFilter) ([]Objective, error) {
	if !c.Configured() {
		return nil, notConfigured()
	}

	snap, err := c.ensure(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("workspaceIds", c.workspaceID)
	query.Set("limit", fmt.Sprint(searchLimit))
	// Both codes requested so that direct key-result matches reach the
	// normalizer's promotion path.
	query.Set("typeIds", fmt.Sprintf("%d,%d", typeObjective, typeKeyResultBare))

	if filter.Search != "" {
		// The parameter name changed across upstream API versions;
		// sending both avoids version sniffing.
		query.Set("search", filter.Search)
		query.Set("searchString", filter.Search)
	}
	if cycleID, ok := resolveCycle(filter.Cycle, snap.cycles); ok {
		query.Set("intervalIds", cycleID)
	}
	if teamID, ok := resolveTeamID(filter.Team, snap.teams); ok && filter.Team != "" {
		// Same versioned-name drift as search/searchString.
		query.Set("teamIds", teamID)
		query.Set("groupIds", teamID)
	}
	setDateParam(query, "startDateFrom", filter.StartDateFrom)
	setDateParam(query, "startDateTo", filter.StartDateTo)
	setDateParam(query, "dueDateFrom", filter.DueDateFrom)
	setDateParam(query, "dueDateTo", filter.DueDateTo)

	body, err := c.get(ctx, "/elements", query)
	if err != nil {
		return nil, err
	}

	objectives := normalizePayload(body)
	return filterByTeam(objectives, filter.Team, snap.teams), nil
}

// GetByID fetches a single objective by its upstream id.
func (c *Client) GetByID(ctx context.Context, id string) (*Objective, error) {
	if !c.Configured() {
		return nil, notConfigured()
	}

	query := url.Values{}
	query.Set("workspaceIds", c.workspaceID)

	body, err := c.get(ctx, "/elements/"+url.PathEscape(id), query)
	if err != nil {
		return nil, err
	}

	el, ok := decodeElement(body)
	if !ok {
		return nil, &Error{Kind: KindNotFound}
	}
	obj := objectiveFromElement(el)
	return &obj, nil
}

// ListCycles returns the cached cycle entries, refreshing if needed.
func (c *Client) ListCycles(ctx context.Context) ([]ReferenceEntry, error) {
	if !c.Configured() {
		return nil, notConfigured()
	}
	snap, err := c.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return append([]ReferenceEntry(nil), snap.cycles...), nil
}

// ListTeams returns the cached team entries, refreshing if needed.
func (c *Client) ListTeams(ctx context.Context) ([]ReferenceEntry, error) {
	if !c.Configured() {
		return nil, notConfigured()
	}
	snap, err := c.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return append([]ReferenceEntry(nil), snap.teams...), nil
}

// ensure warms the reference cache, fetching cycles and teams when the
// snapshot is expired or empty.
func (c *Client) ensure(ctx context.Context) (*refSnapshot, error) {
	return c.cache.ensureFresh(ctx, c.now(), c.ttl, c.fetchReferences)
}

// fetchReferences loads cycles (/intervals) and teams (/groups). The
// lookup endpoints take the singular workspaceId parameter, unlike the
// elements endpoints.
func (c *Client) fetchReferences(ctx context.Context) (cycles, teams []ReferenceEntry, err error) {
	query := url.Values{}
	query.Set("workspaceId", c.workspaceID)

	intervalsBody, err := c.get(ctx, "/intervals", query)
	if err != nil {
		return nil, nil, err
	}
	groupsBody, err := c.get(ctx, "/groups", query)
	if err != nil {
		return nil, nil, err
	}

	return normalizeReferences(intervalsBody), normalizeReferences(groupsBody), nil
}

// get performs one authenticated GET and returns the response body, or
// a classified *Error. Transport failures (including timeouts) map to
// KindUnavailable; non-2xx statuses are classified by code.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, unavailable(err)
	}
	req.Header.Set("API-Token", c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		slog.Debug("oboard: request failed", "path", path, "error", err)
		return nil, unavailable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyStatus(resp.StatusCode, upstreamMessage(body))
	}
	return body, nil
}

// setDateParam formats a free-form date and sets it on the query.
// Unparsable input is silently dropped — the query proceeds without
// that parameter.
func setDateParam(query url.Values, name, raw string) {
	if raw == "" {
		return
	}
	if iso, ok := formatDateParam(raw); ok {
		query.Set(name, iso)
	}
}

// decodeElement decodes a single-element response, tolerating both a
// bare object and a {"data":{...}} envelope.
func decodeElement(payload []byte) (*rawElement, bool) {
	var bare rawElement
	if err := json.Unmarshal(payload, &bare); err == nil && bare.ID != "" {
		return &bare, true
	}

	var envelope struct {
		Data rawElement `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Data.ID != "" {
		return &envelope.Data, true
	}
	return nil, false
}

// upstreamMessage pulls a human-readable detail out of an error
// payload, trying the field names the API has used.
func upstreamMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
