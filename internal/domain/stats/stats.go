// Package stats derives the dashboard metrics from a project snapshot.
// Everything is recomputed on demand; there is no incremental state.
package stats

import (
	"sort"
	"time"

	"github.com/faridfgx/projectorganizer/internal/domain/filter"
	"github.com/faridfgx/projectorganizer/internal/domain/project"
)

// Overview holds the summary card counts.
type Overview struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	HighPriority   int `json:"high_priority"`
	DueThisWeek    int `json:"due_this_week"`
	Overdue        int `json:"overdue"`
	Stalled        int `json:"stalled"`
	CompletionRate int `json:"completion_rate"`
}

// Bucket is one labeled count in a distribution.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TimelineDay is one day of the deadline timeline, split by priority.
type TimelineDay struct {
	Date   string `json:"date"`
	High   int    `json:"high"`
	Medium int    `json:"medium"`
	Low    int    `json:"low"`
}

// Timeline covers every day from three days before the earliest relevant
// date to three days after the latest. TodayIndex is -1 when the timeline
// is empty.
type Timeline struct {
	Days       []TimelineDay `json:"days"`
	TodayIndex int           `json:"today_index"`
}

// BuildOverview computes the summary counts. An empty snapshot yields all
// zeroes; the completion rate never divides by zero.
func BuildOverview(records []project.Project, now time.Time) Overview {
	counts := filter.Counts(records, now)
	o := Overview{
		Total:        len(records),
		Completed:    counts[filter.SmartCompleted],
		HighPriority: counts[filter.SmartHighPriority],
		DueThisWeek:  counts[filter.SmartDueThisWeek],
		Overdue:      counts[filter.SmartOverdue],
		Stalled:      counts[filter.SmartStalled],
	}
	if o.Total > 0 {
		o.CompletionRate = o.Completed * 100 / o.Total
	}
	return o
}

// PriorityDistribution counts records per priority level, always returning
// the three enumerated buckets in High, Medium, Low order.
func PriorityDistribution(records []project.Project) []Bucket {
	counts := map[project.Priority]int{}
	for _, p := range records {
		counts[p.Priority]++
	}
	return []Bucket{
		{Label: string(project.PriorityHigh), Count: counts[project.PriorityHigh]},
		{Label: string(project.PriorityMedium), Count: counts[project.PriorityMedium]},
		{Label: string(project.PriorityLow), Count: counts[project.PriorityLow]},
	}
}

// CompletionHistogram groups records into the fixed completion buckets.
func CompletionHistogram(records []project.Project) []Bucket {
	buckets := []Bucket{
		{Label: "0%"},
		{Label: "1-25%"},
		{Label: "26-50%"},
		{Label: "51-75%"},
		{Label: "76-99%"},
		{Label: "100%"},
	}
	for _, p := range records {
		c := p.Completion
		switch {
		case c == 0:
			buckets[0].Count++
		case c <= 25:
			buckets[1].Count++
		case c <= 50:
			buckets[2].Count++
		case c <= 75:
			buckets[3].Count++
		case c < 100:
			buckets[4].Count++
		default:
			buckets[5].Count++
		}
	}
	return buckets
}

// LanguageDistribution counts records per language, descending. When more
// than eight languages exist, the top seven are kept and the rest collapse
// into an "Other" bucket.
func LanguageDistribution(records []project.Project) []Bucket {
	counts := map[string]int{}
	for _, p := range records {
		counts[p.Language]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for lang, n := range counts {
		buckets = append(buckets, Bucket{Label: lang, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})

	if len(buckets) > 8 {
		other := 0
		for _, b := range buckets[7:] {
			other += b.Count
		}
		buckets = append(buckets[:7], Bucket{Label: "Other", Count: other})
	}
	return buckets
}

// BuildTimeline produces per-day deadline counts split by priority over
// [min(today, earliest)-3d, max(today, latest)+3d]. Records without a
// parseable deadline contribute nothing; with none at all the timeline is
// empty.
func BuildTimeline(records []project.Project, now time.Time) Timeline {
	today := project.DateOf(now)

	var earliest, latest time.Time
	found := false
	for _, p := range records {
		d, ok := p.DeadlineDate()
		if !ok {
			continue
		}
		if !found || d.Before(earliest) {
			earliest = d
		}
		if !found || d.After(latest) {
			latest = d
		}
		found = true
	}
	if !found {
		return Timeline{TodayIndex: -1}
	}

	start := earliest
	if today.Before(start) {
		start = today
	}
	end := latest
	if today.After(end) {
		end = today
	}
	start = start.AddDate(0, 0, -3)
	end = end.AddDate(0, 0, 3)

	span := project.DaysBetween(start, end) + 1
	days := make([]TimelineDay, span)
	for i := range days {
		days[i].Date = start.AddDate(0, 0, i).Format(project.DateLayout)
	}

	for _, p := range records {
		d, ok := p.DeadlineDate()
		if !ok {
			continue
		}
		idx := project.DaysBetween(start, d)
		if idx < 0 || idx >= span {
			continue
		}
		switch p.Priority {
		case project.PriorityHigh:
			days[idx].High++
		case project.PriorityMedium:
			days[idx].Medium++
		default:
			days[idx].Low++
		}
	}

	todayIdx := project.DaysBetween(start, today)
	if todayIdx < 0 || todayIdx >= span {
		todayIdx = -1
	}
	return Timeline{Days: days, TodayIndex: todayIdx}
}

// RecentlyUpdated returns up to limit records ordered by last-updated
// timestamp, newest first.
func RecentlyUpdated(records []project.Project, limit int) []project.Project {
	out := make([]project.Project, 0, len(records))
	for _, p := range records {
		if p.LastUpdated != "" {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUpdated > out[j].LastUpdated
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// UpcomingDeadline pairs a record with its days-left count.
type UpcomingDeadline struct {
	Project  project.Project `json:"project"`
	DaysLeft int             `json:"days_left"`
}

// UpcomingDeadlines returns incomplete records whose deadline is today or
// later, nearest first, capped at limit when limit > 0.
func UpcomingDeadlines(records []project.Project, now time.Time, limit int) []UpcomingDeadline {
	today := project.DateOf(now)

	out := make([]UpcomingDeadline, 0, len(records))
	for _, p := range records {
		d, ok := p.DeadlineDate()
		if !ok || d.Before(today) || p.Completion == 100 {
			continue
		}
		out = append(out, UpcomingDeadline{Project: p, DaysLeft: project.DaysBetween(today, d)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysLeft < out[j].DaysLeft
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
