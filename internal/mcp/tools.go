package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/faridfgx/projectorganizer/internal/backup"
	"github.com/faridfgx/projectorganizer/internal/domain/export"
	"github.com/faridfgx/projectorganizer/internal/domain/filter"
	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/faridfgx/projectorganizer/internal/domain/stats"
	"github.com/faridfgx/projectorganizer/internal/notify"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const sideListLimit = 5

func registerTools(server *sdkmcp.Server, cfg Config) {
	svcs := cfg.Services

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_project",
		Description: "Add a new project. The name must be unique (case-sensitive).",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AddProjectParams) (*sdkmcp.CallToolResult, project.Project, error) {
		created, err := svcs.Store.Add(ctx, in.toProject())
		if err != nil {
			return nil, project.Project{}, MapError(err)
		}
		return nil, *created, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Replace the project stored under name. The created date is preserved; renaming is allowed when the new name is free.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in UpdateProjectParams) (*sdkmcp.CallToolResult, project.Project, error) {
		updated, err := svcs.Store.Update(ctx, in.Name, in.Project.toProject())
		if err != nil {
			return nil, project.Project{}, MapError(err)
		}
		return nil, *updated, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_project",
		Description: "Delete a project by name.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in RemoveProjectParams) (*sdkmcp.CallToolResult, RemoveProjectResult, error) {
		if err := svcs.Store.Remove(ctx, in.Name); err != nil {
			return nil, RemoveProjectResult{}, MapError(err)
		}
		return nil, RemoveProjectResult{Removed: in.Name}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_completion",
		Description: "Update a project's completion percentage (clamped to 0-100).",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in SetCompletionParams) (*sdkmcp.CallToolResult, project.Project, error) {
		updated, err := svcs.Store.SetCompletion(ctx, in.Name, in.Completion)
		if err != nil {
			return nil, project.Project{}, MapError(err)
		}
		return nil, *updated, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a single project by its exact name.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, project.Project, error) {
		proj, err := svcs.Store.Get(ctx, in.Name)
		if err != nil {
			return nil, project.Project{}, MapError(err)
		}
		return nil, *proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List projects, optionally filtered (priority, language, search text, smart_filter) and sorted (date_added, priority, deadline, completion, name). Filters are conjunctive.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListProjectsParams) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
		smart := filter.Smart(in.SmartFilter)
		if !smart.Valid() {
			return nil, ListProjectsResult{}, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("unknown smart filter %q", in.SmartFilter)}
		}
		sortKey := filter.SortKey(in.SortBy)
		if !sortKey.Valid() {
			return nil, ListProjectsResult{}, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("unknown sort key %q", in.SortBy)}
		}

		records := svcs.Store.List(ctx)
		filtered := filter.Apply(records, filter.Criteria{
			Priority: in.Priority,
			Language: in.Language,
			Search:   in.Search,
			Smart:    smart,
		}, time.Now())
		ordered := filter.Sort(filtered, sortKey)

		return nil, ListProjectsResult{Projects: ordered, Total: len(records)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_smart_filters",
		Description: "List the smart filters with the number of projects each would match right now.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, ListSmartFiltersResult, error) {
		records := svcs.Store.List(ctx)
		counts := filter.Counts(records, time.Now())

		out := ListSmartFiltersResult{Filters: make([]SmartFilterInfo, 0, len(filter.Smarts))}
		for _, s := range filter.Smarts {
			out.Filters = append(out.Filters, SmartFilterInfo{
				ID:    string(s),
				Label: s.Label(),
				Count: counts[s],
			})
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_dashboard",
		Description: "Get the dashboard: summary counts, priority and language distributions, completion histogram, deadline timeline, and recent/upcoming side lists.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, DashboardResult, error) {
		records := svcs.Store.List(ctx)
		now := time.Now()

		return nil, DashboardResult{
			Overview:            stats.BuildOverview(records, now),
			PriorityBreakdown:   stats.PriorityDistribution(records),
			CompletionHistogram: stats.CompletionHistogram(records),
			Languages:           stats.LanguageDistribution(records),
			Timeline:            stats.BuildTimeline(records, now),
			RecentlyUpdated:     stats.RecentlyUpdated(records, sideListLimit),
			UpcomingDeadlines:   stats.UpcomingDeadlines(records, now, sideListLimit),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_projects",
		Description: "Render all projects as JSON, CSV (fixed column subset) or a plain-text report.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ExportProjectsParams) (*sdkmcp.CallToolResult, ExportProjectsResult, error) {
		format := export.Format(in.Format)
		if !format.Valid() {
			return nil, ExportProjectsResult{}, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("unknown export format %q", in.Format), RecoveryHint: "Use json, csv or text"}
		}
		result, err := export.Render(svcs.Store.List(ctx), format, time.Now())
		if err != nil {
			return nil, ExportProjectsResult{}, MapError(err)
		}
		return nil, ExportProjectsResult{Filename: result.Filename, Content: result.Content}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_backup",
		Description: "Create a manual backup of the data file. Old backups beyond the retention limit are deleted.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, CreateBackupResult, error) {
		name, err := svcs.Backups.Create(ctx, true)
		if err != nil {
			return nil, CreateBackupResult{}, MapError(err)
		}
		return nil, CreateBackupResult{File: name}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_backups",
		Description: "List existing backups, newest first.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, ListBackupsResult, error) {
		backups, err := svcs.Backups.List()
		if err != nil {
			return nil, ListBackupsResult{}, MapError(err)
		}
		if backups == nil {
			backups = []backup.Info{}
		}
		return nil, ListBackupsResult{Backups: backups}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "restore_backup",
		Description: "Restore the data file from a backup. The backup is validated first and the current data is backed up before being replaced.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in RestoreBackupParams) (*sdkmcp.CallToolResult, RestoreBackupResult, error) {
		if err := svcs.Backups.Restore(ctx, in.Name); err != nil {
			return nil, RestoreBackupResult{}, MapError(err)
		}
		if err := svcs.Store.Reload(ctx); err != nil {
			return nil, RestoreBackupResult{}, MapError(err)
		}
		return nil, RestoreBackupResult{Restored: in.Name, Projects: svcs.Store.Count()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_settings",
		Description: "Get the backup and notification settings.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, SettingsSnapshot, error) {
		snap, err := loadSettings(ctx, svcs)
		if err != nil {
			return nil, SettingsSnapshot{}, MapError(err)
		}
		return nil, snap, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_settings",
		Description: "Update backup/notification settings. Only supplied fields change; background timers are restarted with the new values.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in UpdateSettingsParams) (*sdkmcp.CallToolResult, SettingsSnapshot, error) {
		if err := applySettings(ctx, svcs, in); err != nil {
			return nil, SettingsSnapshot{}, err
		}
		if cfg.OnSettingsChanged != nil {
			cfg.OnSettingsChanged()
		}
		snap, err := loadSettings(ctx, svcs)
		if err != nil {
			return nil, SettingsSnapshot{}, MapError(err)
		}
		return nil, snap, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_notifications",
		Description: "Get recently emitted notifications, newest first.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, NotificationsResult, error) {
		items := svcs.Journal.Recent()
		if items == nil {
			items = []notify.Notification{}
		}
		return nil, NotificationsResult{Notifications: items}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_upcoming_deadlines",
		Description: "List incomplete projects due within the next 7 days, soonest first.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, UpcomingDeadlinesResult, error) {
		deadlines := svcs.Scanner.UpcomingWeek(ctx)
		if deadlines == nil {
			deadlines = []notify.Upcoming{}
		}
		return nil, UpcomingDeadlinesResult{Deadlines: deadlines}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_notification_state",
		Description: "Forget which deadline notifications were already shown, forcing re-notification on the next check.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, ClearNotificationStateResult, error) {
		svcs.Scanner.ClearSeen()
		return nil, ClearNotificationStateResult{Cleared: true}, nil
	})
}

func loadSettings(ctx context.Context, svcs Services) (SettingsSnapshot, error) {
	var snap SettingsSnapshot
	var err error

	if snap.AutoBackupEnabled, err = svcs.Settings.GetBool(ctx, backup.SettingsSection, backup.KeyAutoEnabled, backup.DefaultAutoEnabled); err != nil {
		return snap, err
	}
	if snap.BackupIntervalMinutes, err = svcs.Settings.GetInt(ctx, backup.SettingsSection, backup.KeyIntervalMinutes, backup.DefaultIntervalMinutes); err != nil {
		return snap, err
	}
	if snap.MaxBackups, err = svcs.Settings.GetInt(ctx, backup.SettingsSection, backup.KeyMaxBackups, backup.DefaultMaxBackups); err != nil {
		return snap, err
	}
	if snap.NotificationsEnabled, err = svcs.Settings.GetBool(ctx, notify.SettingsSection, notify.KeyEnabled, notify.DefaultEnabled); err != nil {
		return snap, err
	}
	if snap.RemindDaysBefore, err = svcs.Settings.GetInt(ctx, notify.SettingsSection, notify.KeyRemindDays, notify.DefaultRemindDays); err != nil {
		return snap, err
	}
	if snap.CheckIntervalMinutes, err = svcs.Settings.GetInt(ctx, notify.SettingsSection, notify.KeyIntervalMinutes, notify.DefaultIntervalMinutes); err != nil {
		return snap, err
	}
	if snap.NotifyTime, err = svcs.Settings.GetString(ctx, notify.SettingsSection, notify.KeyNotifyTime, notify.DefaultNotifyTime); err != nil {
		return snap, err
	}
	if snap.DailySummaryEnabled, err = svcs.Settings.GetBool(ctx, notify.SettingsSection, notify.KeyDailySummary, notify.DefaultDailySummary); err != nil {
		return snap, err
	}
	return snap, nil
}

func applySettings(ctx context.Context, svcs Services, in UpdateSettingsParams) error {
	if in.BackupIntervalMinutes != nil && *in.BackupIntervalMinutes <= 0 {
		return &APIError{Code: "INVALID_INPUT", Message: "backup_interval_minutes must be positive"}
	}
	if in.CheckIntervalMinutes != nil && *in.CheckIntervalMinutes <= 0 {
		return &APIError{Code: "INVALID_INPUT", Message: "check_interval_minutes must be positive"}
	}
	if in.MaxBackups != nil && *in.MaxBackups <= 0 {
		return &APIError{Code: "INVALID_INPUT", Message: "max_backups must be positive"}
	}
	if in.RemindDaysBefore != nil && *in.RemindDaysBefore < 0 {
		return &APIError{Code: "INVALID_INPUT", Message: "remind_days_before must not be negative"}
	}
	if in.NotifyTime != nil {
		if _, err := time.Parse("15:04", *in.NotifyTime); err != nil {
			return &APIError{Code: "INVALID_INPUT", Message: "notify_time must be HH:mm"}
		}
	}

	set := svcs.Settings
	if in.AutoBackupEnabled != nil {
		if err := set.SetBool(ctx, backup.SettingsSection, backup.KeyAutoEnabled, *in.AutoBackupEnabled); err != nil {
			return MapError(err)
		}
	}
	if in.BackupIntervalMinutes != nil {
		if err := set.SetInt(ctx, backup.SettingsSection, backup.KeyIntervalMinutes, *in.BackupIntervalMinutes); err != nil {
			return MapError(err)
		}
	}
	if in.MaxBackups != nil {
		if err := set.SetInt(ctx, backup.SettingsSection, backup.KeyMaxBackups, *in.MaxBackups); err != nil {
			return MapError(err)
		}
	}
	if in.NotificationsEnabled != nil {
		if err := set.SetBool(ctx, notify.SettingsSection, notify.KeyEnabled, *in.NotificationsEnabled); err != nil {
			return MapError(err)
		}
	}
	if in.RemindDaysBefore != nil {
		if err := set.SetInt(ctx, notify.SettingsSection, notify.KeyRemindDays, *in.RemindDaysBefore); err != nil {
			return MapError(err)
		}
	}
	if in.CheckIntervalMinutes != nil {
		if err := set.SetInt(ctx, notify.SettingsSection, notify.KeyIntervalMinutes, *in.CheckIntervalMinutes); err != nil {
			return MapError(err)
		}
	}
	if in.NotifyTime != nil {
		if err := set.SetString(ctx, notify.SettingsSection, notify.KeyNotifyTime, *in.NotifyTime); err != nil {
			return MapError(err)
		}
	}
	if in.DailySummaryEnabled != nil {
		if err := set.SetBool(ctx, notify.SettingsSection, notify.KeyDailySummary, *in.DailySummaryEnabled); err != nil {
			return MapError(err)
		}
	}
	return nil
}
