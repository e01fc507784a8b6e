package oboard

import (
	"encoding/json"
	"log/slog"
)

// Element type codes used by the upstream API.
//
// Key results carry two different codes depending on where they appear:
// 2 when nested under an objective's childElements, 4 when returned at
// top level (a search that matched the key result directly). Whether
// that split is deliberate upstream is unverified — both codes are kept
// as-is rather than unified.
const (
	typeObjective       = 1
	typeKeyResultNested = 2
	typeKeyResultBare   = 4
)

// decodeElements decodes the two known payload shapes in priority
// order: a bare array, then a {"data":[...]} envelope. Anything else
// yields nil — a malformed payload degrades to "no results" rather
// than failing the call.
func decodeElements(payload []byte) []rawElement {
	var bare []rawElement
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare
	}

	var envelope struct {
		Data []rawElement `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data
	}

	slog.Warn("oboard: unrecognized elements payload shape, treating as empty",
		"bytes", len(payload))
	return nil
}

// normalizeElements converts raw upstream elements into the uniform
// Objective model.
//
// Recovery rule: when a search matches only key results (typeId 4 at
// top level) and no objectives, each bare key result is promoted to a
// synthetic Objective so the match stays visible to the caller.
func normalizeElements(elements []rawElement) []Objective {
	var objectives []Objective
	var bareKeyResults []rawElement

	for i := range elements {
		el := &elements[i]
		switch el.TypeID {
		case typeObjective:
			objectives = append(objectives, objectiveFromElement(el))
		case typeKeyResultBare:
			bareKeyResults = append(bareKeyResults, elements[i])
		}
	}

	if len(objectives) == 0 && len(bareKeyResults) > 0 {
		objectives = make([]Objective, 0, len(bareKeyResults))
		for i := range bareKeyResults {
			obj := objectiveFromElement(&bareKeyResults[i])
			obj.KeyResults = nil
			objectives = append(objectives, obj)
		}
	}

	if objectives == nil {
		return []Objective{}
	}
	return objectives
}

// normalizePayload is the full decode+normalize pipeline for an
// /elements response body.
func normalizePayload(payload []byte) []Objective {
	return normalizeElements(decodeElements(payload))
}

// objectiveFromElement builds one uniform Objective from a raw element,
// deriving status from the grade and pulling nested key results from
// the child list.
func objectiveFromElement(el *rawElement) Objective {
	obj := Objective{
		ID:          el.ID.String(),
		DisplayID:   el.DisplayID,
		Title:       el.title(),
		Description: el.Description,
		Grade:       el.Grade,
		Status:      statusFromGrade(el.Grade),
		CycleName:   el.cycleName(),
		TeamName:    el.teamName(),
	}
	if el.Level != nil {
		obj.LevelName = el.Level.Name
	}

	for name, raw := range el.CustomFields {
		value := customFieldValue(raw)
		if value == "" {
			continue
		}
		if obj.CustomFields == nil {
			obj.CustomFields = make(map[string]string)
		}
		obj.CustomFields[name] = value
	}

	for i := range el.ChildElements {
		child := &el.ChildElements[i]
		if child.TypeID != typeKeyResultNested {
			continue
		}
		obj.KeyResults = append(obj.KeyResults, KeyResult{
			ID:              child.ID.String(),
			Title:           child.title(),
			ProgressPercent: child.Grade,
		})
	}

	return obj
}

// normalizeReferences decodes an /intervals or /groups response into
// reference entries, tolerating the same bare-array vs envelope drift
// as the elements endpoint.
func normalizeReferences(payload []byte) []ReferenceEntry {
	decode := func(refs []rawRef) []ReferenceEntry {
		entries := make([]ReferenceEntry, 0, len(refs))
		for _, r := range refs {
			entries = append(entries, ReferenceEntry{ID: r.ID.String(), Name: r.Name})
		}
		return entries
	}

	var bare []rawRef
	if err := json.Unmarshal(payload, &bare); err == nil {
		return decode(bare)
	}

	var envelope struct {
		Data []rawRef `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Data != nil {
		return decode(envelope.Data)
	}

	slog.Warn("oboard: unrecognized reference payload shape, treating as empty",
		"bytes", len(payload))
	return []ReferenceEntry{}
}
