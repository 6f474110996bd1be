package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ganot/taskboard/internal/config"
	"github.com/ganot/taskboard/internal/domain/access"
	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/identity"
	"github.com/ganot/taskboard/internal/insights"
	"github.com/ganot/taskboard/internal/sqlite"
	"github.com/ganot/taskboard/internal/storage"
	"github.com/ganot/taskboard/internal/transport"
)

const defaultTokenTTL = 24 * time.Hour

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if cfg.Auth.Secret == "" {
		logger.Error("auth secret is required, set TASKBOARD_AUTH_SECRET")
		os.Exit(1)
	}
	tokenTTL, err := parseTokenTTL(cfg.Auth.TokenTTL)
	if err != nil {
		logger.Error("invalid token ttl", "error", err)
		os.Exit(1)
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	files, err := storage.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		logger.Error("failed to prepare uploads dir", "error", err)
		os.Exit(1)
	}

	userRepo := sqlite.NewUserRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	columnRepo := sqlite.NewColumnRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	labelRepo := sqlite.NewLabelRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	guard := access.NewGuard(projectRepo)

	identitySvc := identity.NewService(userRepo, []byte(cfg.Auth.Secret), tokenTTL, logger)
	projectSvc := project.NewService(projectRepo, identitySvc, guard, activityRepo, logger)
	activitySvc := activity.NewService(activityRepo, logger)
	taskSvc := task.NewService(taskRepo, labelRepo, projectRepo, guard, files, activityRepo, logger)
	boardSvc := board.NewService(columnRepo, taskRepo, labelRepo, projectRepo, guard, activityRepo, logger)
	insightsSvc := insights.NewService(projectRepo, columnRepo, taskRepo, labelRepo, guard, nil,
		cfg.Insights.Endpoint, cfg.Insights.APIKey, logger)

	router := transport.NewServer(transport.Services{
		Identity: identitySvc,
		Projects: projectSvc,
		Board:    boardSvc,
		Tasks:    taskSvc,
		Activity: activitySvc,
		Insights: insightsSvc,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
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

func parseTokenTTL(value string) (time.Duration, error) {
	if value == "" {
		return defaultTokenTTL, nil
	}
	ttl, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse token ttl: %w", err)
	}
	return ttl, nil
}

func ensureDBDir(path string) error {
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
