// Package oboard implements a read-only client for the Oboard OKR API.
//
// The client resolves human-friendly filters (cycle keywords, team names,
// free-form dates) into the exact parameters the upstream API expects,
// caches slowly-changing reference data, and normalizes the several
// response shapes the API produces into one uniform Objective model.
package oboard

import (
	"encoding/json"
	"strconv"
)

// Status is the health of an objective, derived purely from its grade.
// The upstream status string is never trusted.
type Status string

const (
	StatusOnTrack Status = "On Track"
	StatusBehind  Status = "Behind"
	StatusAtRisk  Status = "At Risk"
)

// statusFromGrade maps a 0–100 grade to a Status.
func statusFromGrade(grade float64) Status {
	switch {
	case grade >= 70:
		return StatusOnTrack
	case grade >= 40:
		return StatusBehind
	default:
		return StatusAtRisk
	}
}

// ReferenceEntry is the uniform shape for both a cycle and a team.
// Entries are immutable once fetched; the cache replaces them wholesale.
type ReferenceEntry struct {
	ID   string
	Name string
}

// KeyResult is a measurable sub-item of an Objective.
type KeyResult struct {
	ID              string
	Title           string
	ProgressPercent float64
}

// Objective is the uniform output type, regardless of which upstream
// payload shape produced it.
type Objective struct {
	ID           string
	DisplayID    string
	Title        string
	Description  string
	Status       Status
	Grade        float64
	CycleName    string
	TeamName     string
	LevelName    string
	CustomFields map[string]string
	KeyResults   []KeyResult
}

// SearchFilter carries the caller's query. All fields are optional;
// an empty field means "no constraint on this dimension".
type SearchFilter struct {
	Search        string
	Cycle         string // keyword ("current", "previous", "all") or cycle name
	Team          string // team display name
	StartDateFrom string // free-form; unparsable values are dropped
	StartDateTo   string
	DueDateFrom   string
	DueDateTo     string
}

// flexID decodes an upstream identifier that arrives as either a JSON
// number or a string, depending on API version.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string { return string(f) }

// rawRef is a nested {id, name} record (interval, group, team, level).
type rawRef struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

// rawElement is the wire shape of an element returned by /elements.
// Field pairs like Groups/Teams and Name/Title exist because both
// spellings occur across upstream API versions.
type rawElement struct {
	ID            flexID                     `json:"id"`
	DisplayID     string                     `json:"displayId"`
	Name          string                     `json:"name"`
	Title         string                     `json:"title"`
	Description   string                     `json:"description"`
	TypeID        int                        `json:"typeId"`
	Grade         float64                    `json:"grade"`
	Interval      *rawRef                    `json:"interval"`
	Groups        []rawRef                   `json:"groups"`
	Teams         []rawRef                   `json:"teams"`
	Level         *rawRef                    `json:"level"`
	CustomFields  map[string]json.RawMessage `json:"customFields"`
	ChildElements []rawElement               `json:"childElements"`
}

// title returns the element's display title, whichever field carried it.
func (e *rawElement) title() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Title
}

// teamName extracts the owning team's name. Prefers groups[0].name,
// falls back to teams[0].name — both occur across API versions.
func (e *rawElement) teamName() string {
	if len(e.Groups) > 0 {
		return e.Groups[0].Name
	}
	if len(e.Teams) > 0 {
		return e.Teams[0].Name
	}
	return ""
}

// cycleName extracts the interval (cycle) name, if present.
func (e *rawElement) cycleName() string {
	if e.Interval != nil {
		return e.Interval.Name
	}
	return ""
}

// customFieldValue renders a raw custom-field value as a display string.
// Empty strings and nulls are dropped by the caller.
func customFieldValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}
