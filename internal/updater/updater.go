// Package updater checks GitHub for a newer oboard-mcp release. The
// check is best-effort: it runs in a goroutine during "serve", prints
// to stderr only, and silently ignores network failures.
package updater

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const (
	githubRepo = "don-alberto/oboard-mcp"
	releaseURL = "https://api.github.com/repos/" + githubRepo + "/releases/latest"

	checkTimeout = 10 * time.Second
)

// Checker queries the GitHub Releases API. The endpoint and HTTP
// client are fields so tests can point it at a fake server.
type Checker struct {
	Endpoint string
	Client   *http.Client
}

// NewChecker creates a Checker against the real GitHub API.
func NewChecker() *Checker {
	return &Checker{
		Endpoint: releaseURL,
		Client:   &http.Client{Timeout: checkTimeout},
	}
}

// Result communicates the outcome of a version check.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

// Check queries GitHub for the latest release and compares it against
// the running version. It never returns an error — any failure yields
// a Result with UpdateAvailable false.
func (c *Checker) Check(currentVersion string) Result {
	result := Result{CurrentVersion: normalizeVersion(currentVersion)}

	req, err := http.NewRequest(http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return result
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "oboard-mcp/"+currentVersion)

	resp, err := c.Client.Do(req)
	if err != nil {
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return result
	}

	var release struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return result
	}

	result.LatestVersion = normalizeVersion(release.TagName)
	result.ReleaseURL = release.HTMLURL
	result.UpdateAvailable = isNewer(result.CurrentVersion, result.LatestVersion)
	return result
}

// normalizeVersion strips the leading "v" from version strings.
func normalizeVersion(v string) string {
	return strings.TrimPrefix(v, "v")
}

// isNewer reports whether latest is a higher semver than current.
// Development builds ("dev") never see updates.
func isNewer(current, latest string) bool {
	if current == "" || latest == "" || current == "dev" {
		return false
	}

	currentParts := strings.Split(current, ".")
	latestParts := strings.Split(latest, ".")
	for len(currentParts) < 3 {
		currentParts = append(currentParts, "0")
	}
	for len(latestParts) < 3 {
		latestParts = append(latestParts, "0")
	}

	for i := 0; i < 3; i++ {
		c := parseIntSafe(currentParts[i])
		l := parseIntSafe(latestParts[i])
		if l != c {
			return l > c
		}
	}
	return false
}

// parseIntSafe converts the leading digits of s to an int, 0 on none.
func parseIntSafe(s string) int {
	n := 0
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			break
		}
		n = n*10 + int(ch-'0')
	}
	return n
}
