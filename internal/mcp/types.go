package mcp

import (
	"github.com/faridfgx/projectorganizer/internal/backup"
	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/faridfgx/projectorganizer/internal/domain/stats"
	"github.com/faridfgx/projectorganizer/internal/notify"
)

// ProjectInput carries the editable fields of a project.
type ProjectInput struct {
	Name         string   `json:"name"`
	Language     string   `json:"language,omitempty"`
	Priority     string   `json:"priority,omitempty"`
	Deadline     string   `json:"deadline,omitempty"`
	Completion   int      `json:"completion,omitempty"`
	Description  string   `json:"description,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

func (in ProjectInput) toProject() project.Project {
	return project.Project{
		Name:         in.Name,
		Language:     in.Language,
		Priority:     project.Priority(in.Priority),
		Deadline:     in.Deadline,
		Completion:   project.Completion(in.Completion),
		Description:  in.Description,
		Notes:        in.Notes,
		Dependencies: in.Dependencies,
	}
}

type AddProjectParams struct {
	ProjectInput
}

type UpdateProjectParams struct {
	// Name is the current (key) name of the project to update.
	Name    string       `json:"name"`
	Project ProjectInput `json:"project"`
}

type RemoveProjectParams struct {
	Name string `json:"name"`
}

type SetCompletionParams struct {
	Name       string `json:"name"`
	Completion int    `json:"completion"`
}

type GetProjectParams struct {
	Name string `json:"name"`
}

type ListProjectsParams struct {
	Priority    string `json:"priority,omitempty"`
	Language    string `json:"language,omitempty"`
	Search      string `json:"search,omitempty"`
	SmartFilter string `json:"smart_filter,omitempty"`
	SortBy      string `json:"sort_by,omitempty"`
}

type ListProjectsResult struct {
	Projects []project.Project `json:"projects"`
	Total    int               `json:"total"`
}

type SmartFilterInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ListSmartFiltersResult struct {
	Filters []SmartFilterInfo `json:"filters"`
}

type DashboardResult struct {
	Overview            stats.Overview           `json:"overview"`
	PriorityBreakdown   []stats.Bucket           `json:"priority_breakdown"`
	CompletionHistogram []stats.Bucket           `json:"completion_histogram"`
	Languages           []stats.Bucket           `json:"languages"`
	Timeline            stats.Timeline           `json:"timeline"`
	RecentlyUpdated     []project.Project        `json:"recently_updated"`
	UpcomingDeadlines   []stats.UpcomingDeadline `json:"upcoming_deadlines"`
}

type ExportProjectsParams struct {
	// Format is one of json, csv, text.
	Format string `json:"format"`
}

type ExportProjectsResult struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type CreateBackupResult struct {
	File string `json:"file"`
}

type ListBackupsResult struct {
	Backups []backup.Info `json:"backups"`
}

type RestoreBackupParams struct {
	// Name is the backup file name as reported by list_backups.
	Name string `json:"name"`
}

type RestoreBackupResult struct {
	Restored string `json:"restored"`
	Projects int    `json:"projects"`
}

// SettingsSnapshot is the full settings state across feature sections.
type SettingsSnapshot struct {
	AutoBackupEnabled     bool   `json:"auto_backup_enabled"`
	BackupIntervalMinutes int    `json:"backup_interval_minutes"`
	MaxBackups            int    `json:"max_backups"`
	NotificationsEnabled  bool   `json:"notifications_enabled"`
	RemindDaysBefore      int    `json:"remind_days_before"`
	CheckIntervalMinutes  int    `json:"check_interval_minutes"`
	NotifyTime            string `json:"notify_time"`
	DailySummaryEnabled   bool   `json:"daily_summary_enabled"`
}

// UpdateSettingsParams updates only the fields that are present.
type UpdateSettingsParams struct {
	AutoBackupEnabled     *bool   `json:"auto_backup_enabled,omitempty"`
	BackupIntervalMinutes *int    `json:"backup_interval_minutes,omitempty"`
	MaxBackups            *int    `json:"max_backups,omitempty"`
	NotificationsEnabled  *bool   `json:"notifications_enabled,omitempty"`
	RemindDaysBefore      *int    `json:"remind_days_before,omitempty"`
	CheckIntervalMinutes  *int    `json:"check_interval_minutes,omitempty"`
	NotifyTime            *string `json:"notify_time,omitempty"`
	DailySummaryEnabled   *bool   `json:"daily_summary_enabled,omitempty"`
}

type NotificationsResult struct {
	Notifications []notify.Notification `json:"notifications"`
}

type UpcomingDeadlinesResult struct {
	Deadlines []notify.Upcoming `json:"deadlines"`
}

type RemoveProjectResult struct {
	Removed string `json:"removed"`
}

type ClearNotificationStateResult struct {
	Cleared bool `json:"cleared"`
}

type EmptyParams struct{}
