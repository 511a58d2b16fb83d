// Package backup copies the data file into a retained backup directory,
// on a timer, on demand, and on count-changing saves.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/faridfgx/projectorganizer/internal/jsonfile"
	"github.com/faridfgx/projectorganizer/internal/repository"
)

// Settings keys, section "backup".
const (
	SettingsSection     = "backup"
	KeyAutoEnabled      = "auto_backup_enabled"
	KeyIntervalMinutes  = "backup_interval"
	KeyMaxBackups       = "max_backups"
	KeyLastProjectCount = "last_project_count"
)

// Defaults for the backup settings.
const (
	DefaultAutoEnabled     = false
	DefaultIntervalMinutes = 60
	DefaultMaxBackups      = 10
)

const filePrefix = "projectdata_backup_"

var (
	// ErrNoDataFile indicates there is no data file to back up yet.
	ErrNoDataFile = errors.New("no data file found to backup")
	// ErrInvalidBackup indicates a restore source that is not a valid
	// project document.
	ErrInvalidBackup = errors.New("invalid backup file format")
)

// Info describes one backup file, for listing.
type Info struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Manual   bool      `json:"manual"`
}

// Manager owns the backup directory and retention policy.
type Manager struct {
	dataFile string
	dir      string
	settings repository.Settings
	logger   *slog.Logger
	now      func() time.Time
}

// NewManager creates a backup manager. The backup directory is created on
// first use.
func NewManager(dataFile, dir string, settings repository.Settings, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		dataFile: dataFile,
		dir:      dir,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Create copies the data file into the backup directory under a tagged,
// timestamped name, then applies retention. Returns the backup file name.
func (m *Manager) Create(ctx context.Context, manual bool) (string, error) {
	tag := "auto"
	if manual {
		tag = "manual"
	}
	name := fmt.Sprintf("%s%s_%s.json", filePrefix, tag, m.now().Format("20060102_150405"))

	if _, err := os.Stat(m.dataFile); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoDataFile
		}
		return "", fmt.Errorf("stat data file: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	if err := copyFile(m.dataFile, filepath.Join(m.dir, name)); err != nil {
		return "", fmt.Errorf("copy data file: %w", err)
	}

	if err := m.applyRetention(ctx); err != nil {
		// Retention failure doesn't invalidate the backup just written.
		m.logger.Warn("backup retention sweep failed", "error", err)
	}
	return name, nil
}

// RunAuto is the interval task body: create an auto backup when enabled,
// logging the outcome either way. It never returns an error.
func (m *Manager) RunAuto(ctx context.Context) {
	enabled, _ := m.settings.GetBool(ctx, SettingsSection, KeyAutoEnabled, DefaultAutoEnabled)
	if !enabled {
		return
	}
	name, err := m.Create(ctx, false)
	if err != nil {
		m.logger.Warn("auto backup failed", "error", err)
		return
	}
	m.logger.Info("auto backup created", "file", name)
}

// OnStoreMutation is registered as a store mutation hook. It creates an
// auto backup only when the project count changed since the last one.
// Field-only edits never trigger a save-path backup; the interval timer
// covers those.
func (m *Manager) OnStoreMutation(ev project.MutationEvent) {
	ctx := context.Background()

	enabled, _ := m.settings.GetBool(ctx, SettingsSection, KeyAutoEnabled, DefaultAutoEnabled)
	if !enabled {
		return
	}
	last, _ := m.settings.GetInt(ctx, SettingsSection, KeyLastProjectCount, 0)
	if ev.Count == last {
		return
	}

	name, err := m.Create(ctx, false)
	if err != nil {
		m.logger.Warn("save-triggered backup failed", "error", err)
		return
	}
	if err := m.settings.SetInt(ctx, SettingsSection, KeyLastProjectCount, ev.Count); err != nil {
		m.logger.Warn("failed to record backup project count", "error", err)
	}
	m.logger.Info("save-triggered backup created", "file", name, "count", ev.Count)
}

// List returns the existing backups, newest first by modification time.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	infos := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), filePrefix) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Name:     entry.Name(),
			Path:     filepath.Join(m.dir, entry.Name()),
			Size:     fi.Size(),
			Modified: fi.ModTime(),
			Manual:   strings.HasPrefix(entry.Name(), filePrefix+"manual_"),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Modified.After(infos[j].Modified)
	})
	return infos, nil
}

// Restore replaces the data file with the named backup. The backup is
// validated first and a safety backup of the current data is taken; a
// malformed backup aborts with the current data untouched. The caller is
// responsible for reloading the store afterwards.
func (m *Manager) Restore(ctx context.Context, name string) error {
	path := filepath.Join(m.dir, filepath.Base(name))

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}
	if _, err := jsonfile.Decode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	if _, err := m.Create(ctx, false); err != nil && !errors.Is(err, ErrNoDataFile) {
		return fmt.Errorf("safety backup before restore: %w", err)
	}
	if err := copyFile(path, m.dataFile); err != nil {
		return fmt.Errorf("restore data file: %w", err)
	}
	return nil
}

// applyRetention deletes the oldest backups beyond the configured maximum.
func (m *Manager) applyRetention(ctx context.Context) error {
	max, _ := m.settings.GetInt(ctx, SettingsSection, KeyMaxBackups, DefaultMaxBackups)
	if max <= 0 {
		return nil
	}

	infos, err := m.List()
	if err != nil {
		return err
	}
	for _, info := range infos[min(max, len(infos)):] {
		if err := os.Remove(info.Path); err != nil {
			m.logger.Warn("failed to delete old backup", "file", info.Name, "error", err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
