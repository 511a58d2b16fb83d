package filter

import (
	"sort"
	"strings"

	"github.com/faridfgx/projectorganizer/internal/domain/project"
)

// SortKey selects the ordering applied to a filtered view.
type SortKey string

const (
	SortDateAdded  SortKey = "date_added"
	SortPriority   SortKey = "priority"
	SortDeadline   SortKey = "deadline"
	SortCompletion SortKey = "completion"
	SortName       SortKey = "name"
)

// deadlineSentinel sorts records without a parseable deadline last.
const deadlineSentinel = "9999-99-99"

// Valid reports whether k names a known sort key. Empty means date added.
func (k SortKey) Valid() bool {
	switch k {
	case "", SortDateAdded, SortPriority, SortDeadline, SortCompletion, SortName:
		return true
	}
	return false
}

// Sort returns a sorted copy of records. Sorts are stable: records with
// equal keys keep their input (canonical) order. DateAdded is the input
// order itself and copies unchanged.
func Sort(records []project.Project, key SortKey) []project.Project {
	out := append([]project.Project(nil), records...)

	switch key {
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	case SortDeadline:
		sort.SliceStable(out, func(i, j int) bool {
			return deadlineKey(out[i]) < deadlineKey(out[j])
		})
	case SortCompletion:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Completion > out[j].Completion
		})
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

func deadlineKey(p project.Project) string {
	if _, ok := p.DeadlineDate(); !ok {
		return deadlineSentinel
	}
	return p.Deadline
}
