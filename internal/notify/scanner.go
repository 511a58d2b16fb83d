package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/faridfgx/projectorganizer/internal/repository"
)

// Settings keys, section "notifications".
const (
	SettingsSection    = "notifications"
	KeyEnabled         = "notifications_enabled"
	KeyRemindDays      = "remind_days_before"
	KeyIntervalMinutes = "check_interval"
	KeyNotifyTime      = "notify_time"
	KeyDailySummary    = "daily_summary"
)

// Defaults for the notification settings.
const (
	DefaultEnabled         = true
	DefaultRemindDays      = 1
	DefaultIntervalMinutes = 60
	DefaultNotifyTime      = "09:00"
	DefaultDailySummary    = true
)

// Snapshot supplies the current project list.
type Snapshot func(ctx context.Context) []project.Project

// Scanner performs the periodic deadline check. Notifications for the same
// (name, deadline) pair are emitted at most once per process run, tracked
// by the seen-set.
type Scanner struct {
	snapshot Snapshot
	settings repository.Settings
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewScanner creates a deadline scanner.
func NewScanner(snapshot Snapshot, settings repository.Settings, notifier Notifier, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		snapshot: snapshot,
		settings: settings,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		seen:     make(map[string]struct{}),
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *Scanner) SetClock(now func() time.Time) {
	s.now = now
}

// Run performs one scan tick: the daily summary when the wall clock matches
// the configured time exactly, then per-project deadline alerts. It is
// best-effort and never returns an error.
func (s *Scanner) Run(ctx context.Context) {
	enabled, _ := s.settings.GetBool(ctx, SettingsSection, KeyEnabled, DefaultEnabled)
	if !enabled {
		return
	}

	now := s.now()
	records := s.snapshot(ctx)

	s.maybeDailySummary(ctx, records, now)

	remindDays, _ := s.settings.GetInt(ctx, SettingsSection, KeyRemindDays, DefaultRemindDays)
	today := project.DateOf(now)

	for _, p := range records {
		if p.Completion == 100 {
			continue
		}
		deadline, ok := p.DeadlineDate()
		if !ok {
			if p.Deadline != "" {
				s.logger.Debug("skipping unparseable deadline", "project", p.Name, "deadline", p.Deadline)
			}
			continue
		}

		daysLeft := project.DaysBetween(today, deadline)
		if daysLeft < 0 || daysLeft > remindDays {
			continue
		}

		key := p.Name + "_" + p.Deadline
		if !s.markSeen(key) {
			continue
		}
		s.notifier.Notify(deadlineNotification(p, daysLeft, now))
	}
}

// ClearSeen forgets every notification already shown, forcing the next scan
// to re-notify.
func (s *Scanner) ClearSeen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[string]struct{})
}

// markSeen records key and reports whether it was new.
func (s *Scanner) markSeen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// maybeDailySummary emits the upcoming-week summary when enabled and the
// tick's HH:mm equals the configured time. A check interval that never
// lands on that minute simply skips the summary for the day.
func (s *Scanner) maybeDailySummary(ctx context.Context, records []project.Project, now time.Time) {
	wantSummary, _ := s.settings.GetBool(ctx, SettingsSection, KeyDailySummary, DefaultDailySummary)
	if !wantSummary {
		return
	}
	notifyAt, _ := s.settings.GetString(ctx, SettingsSection, KeyNotifyTime, DefaultNotifyTime)
	target, err := time.Parse("15:04", notifyAt)
	if err != nil {
		s.logger.Warn("invalid daily notification time", "value", notifyAt)
		return
	}
	if now.Hour() != target.Hour() || now.Minute() != target.Minute() {
		return
	}
	s.notifier.Notify(s.summaryNotification(records, now))
}

// Upcoming pairs a project with the days left until its deadline.
type Upcoming struct {
	Name     string           `json:"name"`
	Deadline string           `json:"deadline"`
	Priority project.Priority `json:"priority"`
	DaysLeft int              `json:"days_left"`
}

// UpcomingWeek returns incomplete projects due within the next 7 days,
// soonest first.
func (s *Scanner) UpcomingWeek(ctx context.Context) []Upcoming {
	return upcomingWeek(s.snapshot(ctx), s.now())
}

func upcomingWeek(records []project.Project, now time.Time) []Upcoming {
	today := project.DateOf(now)

	out := make([]Upcoming, 0, len(records))
	for _, p := range records {
		if p.Completion == 100 {
			continue
		}
		deadline, ok := p.DeadlineDate()
		if !ok {
			continue
		}
		daysLeft := project.DaysBetween(today, deadline)
		if daysLeft < 0 || daysLeft > 7 {
			continue
		}
		out = append(out, Upcoming{
			Name:     p.Name,
			Deadline: p.Deadline,
			Priority: p.Priority,
			DaysLeft: daysLeft,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysLeft < out[j].DaysLeft
	})
	return out
}

func deadlineNotification(p project.Project, daysLeft int, at time.Time) Notification {
	var title, message string
	if daysLeft == 0 {
		title = "Project Due Today"
		message = fmt.Sprintf("Project '%s' is due today!", p.Name)
	} else {
		title = "Upcoming Project Deadline"
		message = fmt.Sprintf("Project '%s' is due in %d %s!", p.Name, daysLeft, pluralDays(daysLeft))
	}
	if p.Priority == project.PriorityHigh {
		message += "\nThis is a high priority project!"
	}
	return newNotification(KindDeadline, title, message, at)
}

func (s *Scanner) summaryNotification(records []project.Project, now time.Time) Notification {
	upcoming := upcomingWeek(records, now)

	if len(upcoming) == 0 {
		return newNotification(KindSummary, "Daily Project Summary",
			"No upcoming deadlines for the next week.", now)
	}

	noun := "projects"
	if len(upcoming) == 1 {
		noun = "project"
	}
	message := fmt.Sprintf("You have %d %s due soon:\n\n", len(upcoming), noun)
	for _, u := range upcoming {
		if u.DaysLeft == 0 {
			message += fmt.Sprintf("- %s - Due TODAY", u.Name)
		} else {
			message += fmt.Sprintf("- %s - Due in %d %s", u.Name, u.DaysLeft, pluralDays(u.DaysLeft))
		}
		if u.Priority == project.PriorityHigh {
			message += " (High Priority)"
		}
		message += "\n"
	}
	return newNotification(KindSummary, "Upcoming Project Deadlines", message, now)
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
