package oboard

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Cycle keywords accepted by Search in place of a cycle name.
const (
	CycleCurrent  = "current"
	CyclePrevious = "previous"
	CycleAll      = "all"
)

// quarterPattern matches cycle names like "2024-Q3".
var quarterPattern = regexp.MustCompile(`^(\d{4})-Q(\d)$`)

// sortCyclesDesc orders cycles newest-first by (year, quarter) parsed
// from the name. Names that don't match the YYYY-Q# pattern sort last;
// their relative order is unspecified.
func sortCyclesDesc(cycles []ReferenceEntry) []ReferenceEntry {
	sorted := make([]ReferenceEntry, len(cycles))
	copy(sorted, cycles)

	rank := func(name string) int {
		m := quarterPattern.FindStringSubmatch(name)
		if m == nil {
			return -1
		}
		year, _ := strconv.Atoi(m[1])
		quarter, _ := strconv.Atoi(m[2])
		return year*10 + quarter
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i].Name) > rank(sorted[j].Name)
	})
	return sorted
}

// resolveCycle maps a cycle keyword or name to a concrete cycle id.
// ok=false means "apply no cycle filter": that covers the "all" keyword,
// an empty cache, and — deliberately — a specific name with no match.
// An unmatched name silently drops the filter rather than failing the
// query; upstream cycle naming drifts and the query should survive it.
func resolveCycle(param string, cycles []ReferenceEntry) (id string, ok bool) {
	if param == "" || strings.EqualFold(param, CycleAll) {
		return "", false
	}

	sorted := sortCyclesDesc(cycles)
	switch strings.ToLower(param) {
	case CycleCurrent:
		if len(sorted) == 0 {
			return "", false
		}
		return sorted[0].ID, true
	case CyclePrevious:
		if len(sorted) < 2 {
			return "", false
		}
		return sorted[1].ID, true
	}

	for _, c := range cycles {
		if strings.EqualFold(c.Name, param) {
			return c.ID, true
		}
	}
	return "", false
}

// resolveTeamID maps a team display name to its id by case-insensitive
// exact match. No partial matching.
func resolveTeamID(name string, teams []ReferenceEntry) (id string, ok bool) {
	for _, t := range teams {
		if strings.EqualFold(t.Name, name) {
			return t.ID, true
		}
	}
	return "", false
}

// filterByTeam applies the post-hoc team filter. An unknown team name
// excludes everything (empty result), unlike the cycle resolver's
// permissive miss — the asymmetry is intentional and load-bearing.
func filterByTeam(objectives []Objective, team string, teams []ReferenceEntry) []Objective {
	if team == "" {
		return objectives
	}
	if _, ok := resolveTeamID(team, teams); !ok {
		return []Objective{}
	}
	kept := make([]Objective, 0, len(objectives))
	for _, o := range objectives {
		if strings.EqualFold(o.TeamName, team) {
			kept = append(kept, o)
		}
	}
	return kept
}

// dateLayouts are tried in order by formatDateParam.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// formatDateParam converts a free-form date string to the millisecond
// ISO-8601 UTC instant the upstream expects. ok=false means the input
// didn't parse and the parameter should simply be omitted — date inputs
// are free text, so a bad one never fails the query.
func formatDateParam(raw string) (iso string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return t.UTC().Format("2006-01-02T15:04:05.000Z07:00"), true
	}
	return "", false
}
