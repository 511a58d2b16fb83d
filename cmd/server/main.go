package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/faridfgx/projectorganizer/internal/backup"
	"github.com/faridfgx/projectorganizer/internal/config"
	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/faridfgx/projectorganizer/internal/jsonfile"
	"github.com/faridfgx/projectorganizer/internal/mcp"
	"github.com/faridfgx/projectorganizer/internal/notify"
	"github.com/faridfgx/projectorganizer/internal/scheduler"
	"github.com/faridfgx/projectorganizer/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const journalSize = 50

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Server.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if logPath := os.Getenv("ORGANIZER_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureFileDir(cfg.Data.SettingsDB); err != nil {
		logger.Error("failed to prepare settings database path", "error", err)
		os.Exit(1)
	}
	db, err := sqlite.New(cfg.Data.SettingsDB)
	if err != nil {
		logger.Error("failed to open settings database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	settings := sqlite.NewSettingsStore(db)

	ctx := context.Background()

	store := project.NewService(ctx, jsonfile.New(cfg.Data.File), logger)
	backups := backup.NewManager(cfg.Data.File, cfg.Data.BackupDir, settings, logger)
	store.OnMutation(backups.OnStoreMutation)

	journal := notify.NewJournal(journalSize)
	sink := notify.Fanout{&notify.LogNotifier{Logger: logger}, journal}
	scanner := notify.NewScanner(store.List, settings, sink, logger)

	sched := scheduler.New(logger)
	restartTasks := func() {
		sched.Start(ctx, buildTasks(ctx, settings, backups, scanner))
	}
	restartTasks()
	defer sched.Stop()

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Store:    store,
			Backups:  backups,
			Scanner:  scanner,
			Journal:  journal,
			Settings: settings,
		},
		OnSettingsChanged: restartTasks,
		Logger:            logger,
	})

	if cfg.Server.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
	} else {
		runHTTPMode(logger, mcpServer, cfg.Server.Host, cfg.Server.Port)
	}
}

// buildTasks assembles the periodic jobs from the current settings. Called
// again, via the scheduler restart closure, whenever settings change.
func buildTasks(ctx context.Context, settings *sqlite.SettingsStore, backups *backup.Manager, scanner *notify.Scanner) []scheduler.Task {
	backupMinutes, _ := settings.GetInt(ctx, backup.SettingsSection, backup.KeyIntervalMinutes, backup.DefaultIntervalMinutes)
	checkMinutes, _ := settings.GetInt(ctx, notify.SettingsSection, notify.KeyIntervalMinutes, notify.DefaultIntervalMinutes)

	return []scheduler.Task{
		{
			Name:     "auto-backup",
			Interval: time.Duration(backupMinutes) * time.Minute,
			Run:      backups.RunAuto,
		},
		{
			Name:         "deadline-check",
			Interval:     time.Duration(checkMinutes) * time.Minute,
			InitialDelay: 5 * time.Second,
			Run:          scanner.Run,
		},
	}
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	transport := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled.
	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureFileDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

type logFileWriter struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if err := ensureFileDir(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{path: path, file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		return nil, nil, err
	}
	return writer, file, nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	if _, err := w.file.Seek(size-keepLogSizeBytes, io.SeekStart); err != nil {
		return err
	}
	n, err := w.file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}
