package models

import (
	"bytes"
	"encoding/json"
)

// EducationKind tags which shape the education field arrived in
type EducationKind int

const (
	EducationNone EducationKind = iota
	EducationText
	EducationList
	EducationRecord
)

func (k EducationKind) String() string {
	switch k {
	case EducationText:
		return "text"
	case EducationList:
		return "list"
	case EducationRecord:
		return "record"
	default:
		return "none"
	}
}

// EducationEntry is one structured education record
type EducationEntry struct {
	Degree     string `json:"degree,omitempty"`
	Major      string `json:"major,omitempty"`
	University string `json:"university,omitempty"`
}

// Education is the candidate's education, which upstream sends as a string,
// a list of records or a single record.
type Education struct {
	Kind    EducationKind
	Text    string
	Entries []EducationEntry
}

// TextEducation builds a plain string education value
func TextEducation(s string) Education {
	return Education{Kind: EducationText, Text: s}
}

// ListEducation builds a list education value
func ListEducation(entries ...EducationEntry) Education {
	return Education{Kind: EducationList, Entries: entries}
}

// RecordEducation builds a single-record education value
func RecordEducation(e EducationEntry) Education {
	return Education{Kind: EducationRecord, Entries: []EducationEntry{e}}
}

// UnmarshalJSON decodes any of the upstream shapes. Values of other JSON types
// (numbers, booleans, null) decode to EducationNone instead of failing the whole
// candidate.
func (e *Education) UnmarshalJSON(data []byte) error {
	*e = Education{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		e.Kind = EducationText
		e.Text = s
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		e.Kind = EducationList
		e.Entries = make([]EducationEntry, 0, len(raw))
		for _, item := range raw {
			e.Entries = append(e.Entries, decodeEntry(item))
		}
	case '{':
		e.Kind = EducationRecord
		e.Entries = []EducationEntry{decodeEntry(trimmed)}
	}
	return nil
}

// decodeEntry tolerates non-string sub-fields by dropping them
func decodeEntry(data json.RawMessage) EducationEntry {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return EducationEntry{}
	}
	str := func(key string) string {
		var s string
		if raw, ok := fields[key]; ok {
			_ = json.Unmarshal(raw, &s)
		}
		return s
	}
	return EducationEntry{
		Degree:     str("degree"),
		Major:      str("major"),
		University: str("university"),
	}
}

// MarshalJSON writes the value back in the shape it arrived in
func (e Education) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case EducationText:
		return json.Marshal(e.Text)
	case EducationList:
		entries := e.Entries
		if entries == nil {
			entries = []EducationEntry{}
		}
		return json.Marshal(entries)
	case EducationRecord:
		if len(e.Entries) == 0 {
			return []byte("{}"), nil
		}
		return json.Marshal(e.Entries[0])
	default:
		return []byte("null"), nil
	}
}
