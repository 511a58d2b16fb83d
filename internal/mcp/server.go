// Package mcp exposes the project organizer over the Model Context
// Protocol. It is the replacement for the desktop front end: every
// operation the GUI offered is a tool here.
package mcp

import (
	"log/slog"

	"github.com/faridfgx/projectorganizer/internal/backup"
	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/faridfgx/projectorganizer/internal/notify"
	"github.com/faridfgx/projectorganizer/internal/repository"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `projectorganizer tracks personal software projects in a single local JSON file.

Workflow:
1) Browse: list_projects (filters: priority, language, search, smart_filter, sort_by); list_smart_filters shows per-filter counts.
2) Mutate: add_project / update_project / remove_project / set_completion. Names are unique, case-sensitive keys.
3) Review: get_dashboard for counts, distributions and the deadline timeline; get_upcoming_deadlines for the next 7 days.
4) Safeguard: create_backup / list_backups / restore_backup; export_projects renders JSON, CSV or a text report.
5) Tune: get_settings / update_settings (backup and notification timers restart on change); get_notifications shows recent alerts; clear_notification_state forces re-notification.

Deadlines use YYYY-MM-DD; an unparseable deadline is treated as "no deadline" everywhere, never as an error.`

// Services bundles everything the tool handlers need.
type Services struct {
	Store    *project.Service
	Backups  *backup.Manager
	Scanner  *notify.Scanner
	Journal  *notify.Journal
	Settings repository.Settings
}

// Config contains server configuration.
type Config struct {
	Services Services
	// OnSettingsChanged restarts the background timers after a settings
	// update. Optional.
	OnSettingsChanged func()
	Logger            *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "projectorganizer",
		Version: "1.0.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg)

	return server
}
