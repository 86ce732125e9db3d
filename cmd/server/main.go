package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"

	favorites "github.com/goliatone/go-favorites"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := newSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger favorites.Logger) error {
	cfg, err := favorites.LoadConfig()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	repo := favorites.NewRepositoryManager(db)
	repo.MustValidate()

	provider := favorites.NewUserProvider(repo.Users()).WithLogger(logger)
	auther := favorites.NewAuthenticator(provider, cfg).WithLogger(logger)
	guard := favorites.NewSessionGuard(provider, auther.TokenService()).WithLogger(logger)

	app := fiber.New(fiber.Config{
		AppName:               "go-favorites",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	controller := favorites.NewHTTPController(repo, auther, guard, cfg).WithLogger(logger)
	controller.RegisterRoutes(app)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		errCh <- app.Listen(cfg.ListenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
		return app.ShutdownWithTimeout(shutdownTimeout)
	}
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	migrationFiles, err := fs.Sub(favorites.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	migrations := migrate.NewMigrations()
	if err := migrations.Discover(migrationFiles); err != nil {
		return err
	}

	migrator := migrate.NewMigrator(db, migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}

	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}

	return nil
}

type slogAdapter struct {
	l *slog.Logger
}

func newSlogAdapter(l *slog.Logger) slogAdapter {
	return slogAdapter{l: l}
}

func (s slogAdapter) Debug(format string, args ...any) { s.l.Debug(format, args...) }
func (s slogAdapter) Info(format string, args ...any)  { s.l.Info(format, args...) }
func (s slogAdapter) Warn(format string, args ...any)  { s.l.Warn(format, args...) }
func (s slogAdapter) Error(format string, args ...any) { s.l.Error(format, args...) }
