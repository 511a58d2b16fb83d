package project

import (
	"encoding/json"
	"time"
)

// Date/timestamp layouts used throughout the persisted data.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Priority is the project priority level.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank orders priorities for sorting. Unknown values sort after Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Completion is a percentage in [0,100]. Older data files sometimes carry
// float values; decoding truncates them to integers.
type Completion int

func (c *Completion) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = Completion(int(f))
	return nil
}

// Project is one tracked project. Name is the unique, case-sensitive key.
type Project struct {
	Name         string     `json:"name"`
	Language     string     `json:"language"`
	Priority     Priority   `json:"priority"`
	Deadline     string     `json:"deadline,omitempty"`
	Completion   Completion `json:"completion"`
	Description  string     `json:"description,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty"`
	CreatedDate  string     `json:"created_date"`
	LastUpdated  string     `json:"last_updated"`
}

// Clone returns a deep copy.
func (p Project) Clone() Project {
	out := p
	if p.Dependencies != nil {
		out.Dependencies = append([]string(nil), p.Dependencies...)
	}
	return out
}

// DeadlineDate parses the deadline as a calendar date. An absent or
// unparseable deadline reports ok=false; it is never an error.
func (p Project) DeadlineDate() (time.Time, bool) {
	return parseDate(p.Deadline)
}

// LastUpdatedDate parses the date portion of the last-updated timestamp.
func (p Project) LastUpdatedDate() (time.Time, bool) {
	s := p.LastUpdated
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return parseDate(s)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateOf truncates a wall-clock time to its calendar date in UTC, so that
// subtracting two dates yields whole days.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}
