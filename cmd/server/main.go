package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/catalogcms/backend/internal/config"
	"github.com/catalogcms/backend/internal/handler"
	"github.com/catalogcms/backend/internal/logging"
	"github.com/catalogcms/backend/internal/repository"
	"github.com/catalogcms/backend/internal/service"
	"github.com/catalogcms/backend/internal/storage"
	"github.com/catalogcms/backend/internal/view"
	"github.com/catalogcms/backend/pkg/auth"
)

// loginAttemptsPerMinute throttles POST /admin/login per client IP.
const loginAttemptsPerMinute = 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	for _, key := range cfg.InsecureDefaults() {
		slog.Warn("insecure default in use, set it in the environment", "key", key)
	}

	ctx := context.Background()

	dbPath, err := repository.ResolvePath(repository.PathOptions{
		Explicit:   cfg.DBPath,
		SiteDir:    cfg.SiteDir,
		RuntimeDir: cfg.RuntimeDir,
	})
	if err != nil {
		logging.Fatal("resolve database path failed", "error", err)
	}
	store, err := repository.Open(ctx, dbPath)
	if err != nil {
		logging.Fatal("failed to open database", "path", dbPath, "error", err)
	}
	defer store.Close()
	if err := repository.Bootstrap(ctx, store); err != nil {
		logging.Fatal("schema bootstrap failed", "error", err)
	}
	slog.Info("database ready", "path", dbPath)

	softwareRepo := repository.NewSqliteSoftwareRepository(store)
	releaseRepo := repository.NewSqliteReleaseNoteRepository(store)
	issueRepo := repository.NewSqliteKnownIssueRepository(store)
	clientRepo := repository.NewSqliteClientRepository(store)
	sessionRepo := repository.NewSqliteSessionRepository(store)

	uploadsDir := filepath.Join(cfg.SiteDir, "assets", "uploads")
	uploader := storage.NewUploader(storage.NewLocalStorage(uploadsDir, "/assets/uploads"))

	softwareService := service.NewSoftwareService(softwareRepo, uploader)
	releaseService := service.NewReleaseNoteService(releaseRepo)
	issueService := service.NewKnownIssueService(issueRepo)
	clientService := service.NewClientService(clientRepo, uploader)

	creds, err := service.NewAdminCredentials(cfg.AdminUser, cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		logging.Fatal("admin credentials failed", "error", err)
	}
	adminAuthService := service.NewAdminAuthService(sessionRepo, creds, cfg.SessionTTL)

	views, err := view.New()
	if err != nil {
		logging.Fatal("parse templates failed", "error", err)
	}
	secret := auth.SessionSecretBytes(cfg.SecretKey)

	router := handler.NewRouter(handler.Router{
		Health:   handler.New(store, cfg.CORSOrigin),
		API:      handler.NewAPIHandler(softwareService, releaseService, issueService, clientService),
		Auth:     handler.NewAdminAuthHandler(adminAuthService, views, secret, cfg.SecureCookie),
		Software: handler.NewSoftwareHandler(softwareService, views),
		Releases: handler.NewReleaseHandler(releaseService, softwareService, views),
		Issues:   handler.NewIssueHandler(issueService, views),
		Clients:  handler.NewClientHandler(clientService, views),
		Public:   handler.NewPublicHandler(releaseService, views),

		Sessions:     adminAuthService,
		Secret:       secret,
		LoginLimiter: handler.NewRateLimiter(loginAttemptsPerMinute),

		UploadsDir:  uploadsDir,
		AdminAssets: view.Static(),
		SiteDir:     cfg.SiteDir,
		ServeStatic: cfg.ServeStatic,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "serve_static", cfg.ServeStatic)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
