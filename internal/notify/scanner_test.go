package notify_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/faridfgx/projectorganizer/internal/notify"
	"github.com/faridfgx/projectorganizer/internal/sqlite"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func day(offset int) string {
	return now.AddDate(0, 0, offset).Format(project.DateLayout)
}

func snapshotOf(records []project.Project) notify.Snapshot {
	return func(ctx context.Context) []project.Project { return records }
}

func newScanner(t *testing.T, records []project.Project) (*notify.Scanner, *notify.Journal, *sqlite.SettingsStore) {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	settings := sqlite.NewSettingsStore(db)

	journal := notify.NewJournal(0)
	scanner := notify.NewScanner(snapshotOf(records), settings, journal, nil)
	scanner.SetClock(func() time.Time { return now })
	return scanner, journal, settings
}

func TestScannerNotifiesDueToday(t *testing.T) {
	ctx := context.Background()
	scanner, journal, _ := newScanner(t, []project.Project{
		{Name: "alpha", Deadline: day(0), Priority: project.PriorityHigh, Completion: 50},
	})

	scanner.Run(ctx)

	got := journal.Recent()
	require.Len(t, got, 1)
	require.Equal(t, notify.KindDeadline, got[0].Kind)
	require.Equal(t, "Project Due Today", got[0].Title)
	require.Equal(t, "Project 'alpha' is due today!\nThis is a high priority project!", got[0].Message)
	require.NotEmpty(t, got[0].ID)
}

func TestScannerNotifiesWithinRemindWindow(t *testing.T) {
	ctx := context.Background()
	scanner, journal, settings := newScanner(t, []project.Project{
		{Name: "alpha", Deadline: day(3)},
		{Name: "beta", Deadline: day(4)},
	})
	require.NoError(t, settings.SetInt(ctx, notify.SettingsSection, notify.KeyRemindDays, 3))

	scanner.Run(ctx)

	got := journal.Recent()
	require.Len(t, got, 1)
	require.Equal(t, "Upcoming Project Deadline", got[0].Title)
	require.Equal(t, "Project 'alpha' is due in 3 days!", got[0].Message)
}

func TestScannerSkipsCompletedAndInvalid(t *testing.T) {
	ctx := context.Background()
	scanner, journal, _ := newScanner(t, []project.Project{
		{Name: "done", Deadline: day(0), Completion: 100},
		{Name: "junk", Deadline: "whenever"},
		{Name: "past", Deadline: day(-1)},
	})

	scanner.Run(ctx)
	require.Empty(t, journal.Recent())
}

func TestScannerDeduplicates(t *testing.T) {
	ctx := context.Background()
	scanner, journal, _ := newScanner(t, []project.Project{
		{Name: "alpha", Deadline: day(0)},
	})

	scanner.Run(ctx)
	scanner.Run(ctx)
	require.Len(t, journal.Recent(), 1)

	scanner.ClearSeen()
	scanner.Run(ctx)
	require.Len(t, journal.Recent(), 2)
}

func TestScannerDisabled(t *testing.T) {
	ctx := context.Background()
	scanner, journal, settings := newScanner(t, []project.Project{
		{Name: "alpha", Deadline: day(0)},
	})
	require.NoError(t, settings.SetBool(ctx, notify.SettingsSection, notify.KeyEnabled, false))

	scanner.Run(ctx)
	require.Empty(t, journal.Recent())
}

func TestScannerDailySummaryMinuteGate(t *testing.T) {
	ctx := context.Background()
	scanner, journal, settings := newScanner(t, []project.Project{
		{Name: "alpha", Deadline: day(2), Priority: project.PriorityHigh},
		{Name: "beta", Deadline: day(0)},
	})
	require.NoError(t, settings.SetString(ctx, notify.SettingsSection, notify.KeyNotifyTime, "14:31"))

	// 14:30 tick does not match the configured 14:31.
	scanner.Run(ctx)
	for _, n := range journal.Recent() {
		require.NotEqual(t, notify.KindSummary, n.Kind)
	}

	require.NoError(t, settings.SetString(ctx, notify.SettingsSection, notify.KeyNotifyTime, "14:30"))
	scanner.Run(ctx)

	var summary notify.Notification
	found := false
	for _, n := range journal.Recent() {
		if n.Kind == notify.KindSummary {
			summary, found = n, true
			break
		}
	}
	require.True(t, found)
	require.Equal(t, "Upcoming Project Deadlines", summary.Title)
	require.Contains(t, summary.Message, "You have 2 projects due soon:")
	require.Contains(t, summary.Message, "- beta - Due TODAY")
	require.Contains(t, summary.Message, "- alpha - Due in 2 days (High Priority)")
}

func TestScannerDailySummaryEmptyWeek(t *testing.T) {
	ctx := context.Background()
	scanner, journal, settings := newScanner(t, nil)
	require.NoError(t, settings.SetString(ctx, notify.SettingsSection, notify.KeyNotifyTime, "14:30"))

	scanner.Run(ctx)

	got := journal.Recent()
	require.Len(t, got, 1)
	require.Equal(t, notify.KindSummary, got[0].Kind)
	require.Equal(t, "No upcoming deadlines for the next week.", got[0].Message)
}

func TestScannerDailySummaryDisabled(t *testing.T) {
	ctx := context.Background()
	scanner, journal, settings := newScanner(t, nil)
	require.NoError(t, settings.SetString(ctx, notify.SettingsSection, notify.KeyNotifyTime, "14:30"))
	require.NoError(t, settings.SetBool(ctx, notify.SettingsSection, notify.KeyDailySummary, false))

	scanner.Run(ctx)
	require.Empty(t, journal.Recent())
}

func TestUpcomingWeek(t *testing.T) {
	ctx := context.Background()
	scanner, _, _ := newScanner(t, []project.Project{
		{Name: "far", Deadline: day(8)},
		{Name: "soon", Deadline: day(2), Priority: project.PriorityHigh},
		{Name: "today", Deadline: day(0)},
		{Name: "done", Deadline: day(1), Completion: 100},
		{Name: "past", Deadline: day(-1)},
	})

	got := scanner.UpcomingWeek(ctx)
	require.Len(t, got, 2)
	require.Equal(t, notify.Upcoming{Name: "today", Deadline: day(0), DaysLeft: 0}, got[0])
	require.Equal(t, notify.Upcoming{Name: "soon", Deadline: day(2), Priority: project.PriorityHigh, DaysLeft: 2}, got[1])
}

func TestJournalCapsEntries(t *testing.T) {
	journal := notify.NewJournal(2)
	for i := 0; i < 3; i++ {
		journal.Notify(notify.Notification{ID: string(rune('a' + i))})
	}

	got := journal.Recent()
	require.Len(t, got, 2)
	require.Equal(t, "c", got[0].ID)
	require.Equal(t, "b", got[1].ID)
}
