// Package filter implements the pure filtering and sorting engine over
// project snapshots. Nothing here mutates its input or keeps state; every
// caller passes the store snapshot and the current time explicitly.
package filter

import (
	"strings"
	"time"

	"github.com/faridfgx/projectorganizer/internal/domain/project"
)

// Smart identifies one of the named smart filters.
type Smart string

const (
	SmartAll             Smart = "all"
	SmartDueToday        Smart = "due_today"
	SmartDueThisWeek     Smart = "due_this_week"
	SmartOverdue         Smart = "overdue"
	SmartHighPriority    Smart = "high_priority"
	SmartRecentlyUpdated Smart = "recently_updated"
	SmartStalled         Smart = "stalled"
	SmartNearlyComplete  Smart = "nearly_complete"
	SmartNoProgress      Smart = "no_progress"
	SmartCompleted       Smart = "completed"
)

// Smarts lists all smart filters in display order.
var Smarts = []Smart{
	SmartAll,
	SmartDueToday,
	SmartDueThisWeek,
	SmartOverdue,
	SmartHighPriority,
	SmartRecentlyUpdated,
	SmartStalled,
	SmartNearlyComplete,
	SmartNoProgress,
	SmartCompleted,
}

// Valid reports whether s names a known smart filter. The empty string is
// accepted as "no smart filter".
func (s Smart) Valid() bool {
	if s == "" {
		return true
	}
	for _, known := range Smarts {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable name of the filter.
func (s Smart) Label() string {
	switch s {
	case SmartAll:
		return "All Projects"
	case SmartDueToday:
		return "Due Today"
	case SmartDueThisWeek:
		return "Due This Week"
	case SmartOverdue:
		return "Overdue"
	case SmartHighPriority:
		return "High Priority"
	case SmartRecentlyUpdated:
		return "Recently Updated"
	case SmartStalled:
		return "Stalled"
	case SmartNearlyComplete:
		return "Nearly Complete"
	case SmartNoProgress:
		return "No Progress"
	case SmartCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Criteria are the conjunctive filter inputs. Zero values mean "any".
type Criteria struct {
	Priority string
	Language string
	Search   string
	Smart    Smart
}

// Apply filters records by the smart predicate first, then priority and
// language equality, then a case-insensitive substring search over name and
// description. The result is a new slice preserving input order.
func Apply(records []project.Project, c Criteria, now time.Time) []project.Project {
	pred := predicate(c.Smart, now)
	search := strings.ToLower(c.Search)

	out := make([]project.Project, 0, len(records))
	for _, rec := range records {
		if !pred(rec) {
			continue
		}
		if c.Priority != "" && c.Priority != "All" && string(rec.Priority) != c.Priority {
			continue
		}
		if c.Language != "" && c.Language != "All" && rec.Language != c.Language {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.Name), search) &&
			!strings.Contains(strings.ToLower(rec.Description), search) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Counts returns the number of records each smart filter would match.
func Counts(records []project.Project, now time.Time) map[Smart]int {
	out := make(map[Smart]int, len(Smarts))
	for _, s := range Smarts {
		pred := predicate(s, now)
		n := 0
		for _, rec := range records {
			if pred(rec) {
				n++
			}
		}
		out[s] = n
	}
	return out
}

// predicate builds the pure predicate for a smart filter. Records missing a
// field the predicate needs (for example a deadline) are excluded rather
// than treated as errors.
func predicate(s Smart, now time.Time) func(project.Project) bool {
	today := project.DateOf(now)

	switch s {
	case SmartDueToday:
		return func(p project.Project) bool {
			d, ok := p.DeadlineDate()
			return ok && d.Equal(today)
		}
	case SmartDueThisWeek:
		weekEnd := today.AddDate(0, 0, 7)
		return func(p project.Project) bool {
			d, ok := p.DeadlineDate()
			return ok && !d.Before(today) && !d.After(weekEnd)
		}
	case SmartOverdue:
		return func(p project.Project) bool {
			d, ok := p.DeadlineDate()
			return ok && d.Before(today) && p.Completion < 100
		}
	case SmartHighPriority:
		return func(p project.Project) bool {
			return p.Priority == project.PriorityHigh
		}
	case SmartRecentlyUpdated:
		cutoff := today.AddDate(0, 0, -3)
		return func(p project.Project) bool {
			d, ok := p.LastUpdatedDate()
			return ok && !d.Before(cutoff)
		}
	case SmartStalled:
		cutoff := today.AddDate(0, 0, -14)
		return func(p project.Project) bool {
			d, ok := p.LastUpdatedDate()
			return ok && d.Before(cutoff) && p.Completion < 100
		}
	case SmartNearlyComplete:
		return func(p project.Project) bool {
			return p.Completion >= 75 && p.Completion < 100
		}
	case SmartNoProgress:
		return func(p project.Project) bool {
			return p.Completion == 0
		}
	case SmartCompleted:
		return func(p project.Project) bool {
			return p.Completion == 100
		}
	default: // SmartAll and ""
		return func(project.Project) bool { return true }
	}
}
