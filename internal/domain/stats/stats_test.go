package stats_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/faridfgx/projectorganizer/internal/domain/stats"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func day(offset int) string {
	return now.AddDate(0, 0, offset).Format(project.DateLayout)
}

func TestBuildOverview(t *testing.T) {
	records := []project.Project{
		{Name: "a", Completion: 100, Priority: project.PriorityHigh},
		{Name: "b", Completion: 100},
		{Name: "c", Deadline: day(3), Completion: 50},
		{Name: "d", Deadline: day(-2), Completion: 10},
	}

	o := stats.BuildOverview(records, now)
	require.Equal(t, 4, o.Total)
	require.Equal(t, 2, o.Completed)
	require.Equal(t, 1, o.HighPriority)
	require.Equal(t, 1, o.DueThisWeek)
	require.Equal(t, 1, o.Overdue)
	require.Equal(t, 50, o.CompletionRate)
}

func TestBuildOverviewEmpty(t *testing.T) {
	o := stats.BuildOverview(nil, now)
	require.Equal(t, stats.Overview{}, o)
}

func TestPriorityDistributionAlwaysThreeBuckets(t *testing.T) {
	records := []project.Project{
		{Name: "a", Priority: project.PriorityHigh},
		{Name: "b", Priority: project.PriorityHigh},
		{Name: "c", Priority: project.PriorityLow},
	}

	got := stats.PriorityDistribution(records)
	require.Equal(t, []stats.Bucket{
		{Label: "High", Count: 2},
		{Label: "Medium", Count: 0},
		{Label: "Low", Count: 1},
	}, got)
}

func TestCompletionHistogramBoundaries(t *testing.T) {
	records := []project.Project{
		{Completion: 0},
		{Completion: 1},
		{Completion: 25},
		{Completion: 26},
		{Completion: 50},
		{Completion: 75},
		{Completion: 76},
		{Completion: 99},
		{Completion: 100},
	}

	got := stats.CompletionHistogram(records)
	require.Equal(t, []stats.Bucket{
		{Label: "0%", Count: 1},
		{Label: "1-25%", Count: 2},
		{Label: "26-50%", Count: 2},
		{Label: "51-75%", Count: 1},
		{Label: "76-99%", Count: 2},
		{Label: "100%", Count: 1},
	}, got)
}

func TestLanguageDistributionCollapsesToOther(t *testing.T) {
	var records []project.Project
	// Nine distinct languages with descending counts.
	for i := 0; i < 9; i++ {
		lang := fmt.Sprintf("lang%d", i)
		for j := 0; j < 9-i; j++ {
			records = append(records, project.Project{Language: lang})
		}
	}

	got := stats.LanguageDistribution(records)
	require.Len(t, got, 8)
	require.Equal(t, stats.Bucket{Label: "lang0", Count: 9}, got[0])
	require.Equal(t, stats.Bucket{Label: "lang6", Count: 3}, got[6])
	require.Equal(t, stats.Bucket{Label: "Other", Count: 3}, got[7]) // lang7 + lang8
}

func TestLanguageDistributionEightOrFewerKept(t *testing.T) {
	records := []project.Project{
		{Language: "Go"},
		{Language: "Go"},
		{Language: "Python"},
	}

	got := stats.LanguageDistribution(records)
	require.Equal(t, []stats.Bucket{
		{Label: "Go", Count: 2},
		{Label: "Python", Count: 1},
	}, got)
}

func TestBuildTimelineRange(t *testing.T) {
	records := []project.Project{
		{Name: "a", Deadline: day(2), Priority: project.PriorityHigh},
		{Name: "b", Deadline: day(-1), Priority: project.PriorityLow},
		{Name: "c", Deadline: day(2), Priority: project.PriorityMedium},
		{Name: "d", Deadline: "junk"},
	}

	tl := stats.BuildTimeline(records, now)
	// [today-1-3, today+2+3] spans 10 days.
	require.Len(t, tl.Days, 10)
	require.Equal(t, day(-4), tl.Days[0].Date)
	require.Equal(t, day(5), tl.Days[len(tl.Days)-1].Date)
	require.Equal(t, 4, tl.TodayIndex)

	require.Equal(t, 1, tl.Days[3].Low)
	require.Equal(t, 1, tl.Days[6].High)
	require.Equal(t, 1, tl.Days[6].Medium)
}

func TestBuildTimelineEmpty(t *testing.T) {
	tl := stats.BuildTimeline([]project.Project{{Name: "a"}}, now)
	require.Empty(t, tl.Days)
	require.Equal(t, -1, tl.TodayIndex)
}

func TestRecentlyUpdated(t *testing.T) {
	records := []project.Project{
		{Name: "old", LastUpdated: "2026-01-01 09:00:00"},
		{Name: "new", LastUpdated: "2026-03-09 18:00:00"},
		{Name: "mid", LastUpdated: "2026-02-15 12:00:00"},
		{Name: "never"},
	}

	got := stats.RecentlyUpdated(records, 2)
	require.Len(t, got, 2)
	require.Equal(t, "new", got[0].Name)
	require.Equal(t, "mid", got[1].Name)
}

func TestUpcomingDeadlines(t *testing.T) {
	records := []project.Project{
		{Name: "past", Deadline: day(-1)},
		{Name: "soon", Deadline: day(1), Completion: 50},
		{Name: "today", Deadline: day(0)},
		{Name: "done", Deadline: day(1), Completion: 100},
		{Name: "far", Deadline: day(20)},
	}

	got := stats.UpcomingDeadlines(records, now, 2)
	require.Len(t, got, 2)
	require.Equal(t, "today", got[0].Project.Name)
	require.Equal(t, 0, got[0].DaysLeft)
	require.Equal(t, "soon", got[1].Project.Name)
	require.Equal(t, 1, got[1].DaysLeft)
}
