package filter_test

import (
	"testing"

	"github.com/faridfgx/projectorganizer/internal/domain/filter"
	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestSortPriority(t *testing.T) {
	records := []project.Project{
		{Name: "a", Priority: project.PriorityLow},
		{Name: "b", Priority: project.PriorityHigh},
		{Name: "c", Priority: "Weird"},
		{Name: "d", Priority: project.PriorityMedium},
		{Name: "e", Priority: project.PriorityHigh},
	}

	got := filter.Sort(records, filter.SortPriority)
	require.Equal(t, []string{"b", "e", "d", "a", "c"}, names(got))
}

func TestSortDeadlineMissingLast(t *testing.T) {
	records := []project.Project{
		{Name: "none"},
		{Name: "late", Deadline: "2026-06-01"},
		{Name: "invalid", Deadline: "soonish"},
		{Name: "early", Deadline: "2026-01-15"},
	}

	got := filter.Sort(records, filter.SortDeadline)
	require.Equal(t, []string{"early", "late", "none", "invalid"}, names(got))
}

func TestSortCompletionDescending(t *testing.T) {
	records := []project.Project{
		{Name: "a", Completion: 20},
		{Name: "b", Completion: 100},
		{Name: "c", Completion: 20},
		{Name: "d", Completion: 0},
	}

	got := filter.Sort(records, filter.SortCompletion)
	require.Equal(t, []string{"b", "a", "c", "d"}, names(got))
}

func TestSortNameCaseInsensitive(t *testing.T) {
	records := []project.Project{
		{Name: "banana"},
		{Name: "Apple"},
		{Name: "cherry"},
	}

	got := filter.Sort(records, filter.SortName)
	require.Equal(t, []string{"Apple", "banana", "cherry"}, names(got))
}

func TestSortDateAddedKeepsInputOrder(t *testing.T) {
	records := []project.Project{{Name: "z"}, {Name: "a"}, {Name: "m"}}

	got := filter.Sort(records, filter.SortDateAdded)
	require.Equal(t, []string{"z", "a", "m"}, names(got))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	records := []project.Project{{Name: "b"}, {Name: "a"}}

	_ = filter.Sort(records, filter.SortName)
	require.Equal(t, []string{"b", "a"}, names(records))
}

func TestSortKeyValid(t *testing.T) {
	require.True(t, filter.SortKey("").Valid())
	require.True(t, filter.SortDeadline.Valid())
	require.False(t, filter.SortKey("bogus").Valid())
}
