package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamelibrary/webapp/internal/auth"
	"gamelibrary/webapp/internal/config"
	"gamelibrary/webapp/internal/database"
	"gamelibrary/webapp/internal/importer"
	"gamelibrary/webapp/internal/logger"
	"gamelibrary/webapp/internal/metrics"
	"gamelibrary/webapp/internal/repository"
	"gamelibrary/webapp/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Swagger imports
	_ "gamelibrary/webapp/docs" // This is important for swag to find the generated docs
)

const shutdownTimeout = 10 * time.Second

// @title           Game Library API
// @version         1.0
// @description     JSON API of the game library web application.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:          "gamelibrary",
		Short:        "Game library web application",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding the .env file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configDir)
		},
	}

	var (
		dataPath string
		reset    bool
	)
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Merge the CSV dataset into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(configDir, dataPath, reset)
		},
	}
	importCmd.Flags().StringVar(&dataPath, "path", "", "CSV dataset to import (defaults to DATA_PATH)")
	importCmd.Flags().BoolVar(&reset, "reset", false, "delete every row before importing")

	root.AddCommand(serveCmd, importCmd)
	root.RunE = serveCmd.RunE
	return root
}

func setup(configDir string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel, ServiceName: "gamelibrary"})
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return cfg, log, nil
}

func runServe(ctx context.Context, configDir string) error {
	cfg, log, err := setup(configDir)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	m := metrics.New()
	store, closeStore, err := openStore(cfg, log, m)
	if err != nil {
		log.Error("failed to open repository", zap.Error(err))
		return err
	}
	defer closeStore()

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		log.Warn("JWT_SECRET is empty, generating a random one; sessions will not survive a restart")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("generate secret: %w", err)
		}
	}
	sessions := auth.NewSessions(secret, cfg.SessionTTL, cfg.CookieSecure, log)

	engine, err := router.New(router.Deps{Store: store, Sessions: sessions, Logger: log, Metrics: m})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server is running",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("repository", cfg.Repository),
			zap.String("swagger", "/swagger/index.html"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

// openStore builds the configured repository and fills the catalog when it is
// empty or REPOPULATE is set.
func openStore(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (repository.Store, func(), error) {
	if cfg.Repository == config.RepositoryMemory {
		repo := repository.NewMemoryRepository(log)
		if err := populate(repo, cfg.DataPath, log, m); err != nil {
			return nil, nil, err
		}
		return repository.NewMemoryStore(repo), func() {}, nil
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := m.RegisterDB(cfg.DatabaseDriver, sqlDB); err != nil {
			log.Warn("failed to register database metrics", zap.Error(err))
		}
	}

	store := repository.NewGormStore(db, log)
	if err := seedDatabase(db, store.Repository(), cfg, log, m); err != nil {
		closeDB()
		return nil, nil, err
	}
	return store, closeDB, nil
}

func seedDatabase(db *gorm.DB, repo repository.Repository, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) error {
	if cfg.Repopulate {
		log.Info("REPOPULATE is set, clearing the database")
		if err := database.Reset(db); err != nil {
			return err
		}
		return populate(repo, cfg.DataPath, log, m)
	}
	n, err := repo.GetNumberOfGames()
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("catalog already populated", zap.Int64("games", n))
		return nil
	}
	return populate(repo, cfg.DataPath, log, m)
}

func populate(repo repository.Repository, path string, log *zap.Logger, m *metrics.Metrics) error {
	stats, err := importer.Populate(repo, path, log)
	if err != nil {
		return fmt.Errorf("populate catalog from %s: %w", path, err)
	}
	if m != nil {
		m.RecordImport(stats.Games, stats.Genres, stats.Publishers)
	}
	return nil
}

func runImport(configDir, dataPath string, reset bool) error {
	cfg, log, err := setup(configDir)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Repository != config.RepositoryDatabase {
		return errors.New("import needs REPOSITORY=database")
	}
	if dataPath == "" {
		dataPath = cfg.DataPath
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if reset {
		if err := database.Reset(db); err != nil {
			return err
		}
	}
	return populate(repository.NewGormStore(db, log).Repository(), dataPath, log, nil)
}
