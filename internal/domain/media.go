package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// MediaEntry is one playable item of the catalog. Entries carry no identity
// beyond their position in the catalog.
type MediaEntry struct {
	Title    string // Display title
	Year     int    // Release year
	Duration int    // Runtime in minutes
	Poster   string // Poster image URI
	VideoURL string // Opaque stream token, resolved by the backend

	// Issues lists fields that were missing or had an unexpected type.
	// Such entries are kept and rendered with zero values.
	Issues []string
}

// HasIssues reports whether the entry was decoded with missing or mistyped fields
func (m MediaEntry) HasIssues() bool {
	return len(m.Issues) > 0
}

// Label returns the "Title (Year)" heading used in the gallery
func (m MediaEntry) Label() string {
	return fmt.Sprintf("%s (%d)", m.Title, m.Year)
}

// entryJSON mirrors the backend wire shape
type entryJSON struct {
	Title    string `json:"title"`
	Year     int    `json:"year"`
	Duration int    `json:"duration"`
	Poster   string `json:"poster"`
	VideoURL string `json:"videoUrl"`
}

// MarshalJSON encodes the entry in the backend wire shape
func (m MediaEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Title:    m.Title,
		Year:     m.Year,
		Duration: m.Duration,
		Poster:   m.Poster,
		VideoURL: m.VideoURL,
	})
}

// UnmarshalJSON decodes an entry field by field. It never fails on a
// malformed entry: bad fields become zero values and are listed in Issues.
func (m *MediaEntry) UnmarshalJSON(data []byte) error {
	*m = MediaEntry{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		m.Issues = []string{"entry"}
		return nil
	}

	m.Title = m.decodeString(fields, "title")
	m.Year = m.decodeInt(fields, "year")
	m.Duration = m.decodeInt(fields, "duration")
	m.Poster = m.decodeString(fields, "poster")
	m.VideoURL = m.decodeString(fields, "videoUrl")
	return nil
}

func (m *MediaEntry) decodeString(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		m.Issues = append(m.Issues, name)
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		m.Issues = append(m.Issues, name)
		return ""
	}
	return s
}

func (m *MediaEntry) decodeInt(fields map[string]json.RawMessage, name string) int {
	raw, ok := fields[name]
	if !ok {
		m.Issues = append(m.Issues, name)
		return 0
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		m.Issues = append(m.Issues, name)
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	// Fractional values are truncated
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		m.Issues = append(m.Issues, name)
		return 0
	}
	return int(f)
}
