package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"backend-sparnet/internal/config"
	"backend-sparnet/internal/db"
	"backend-sparnet/internal/identity"
	"backend-sparnet/internal/kv"
	"backend-sparnet/internal/profile"
	"backend-sparnet/internal/profilesync"
	"backend-sparnet/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig      func() config.Config
	connectPostgres func(config.Config) (*pgxpool.Pool, error)
	connectRedis    func(config.Config) *redis.Client
	notify          func(chan<- os.Signal, ...os.Signal)
	run             func(context.Context, config.Config, *pgxpool.Pool, *redis.Client, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:      config.Load,
		connectPostgres: db.ConnectPostgres,
		connectRedis:    db.ConnectRedis,
		notify:          signal.Notify,
		run:             Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	pg, err := deps.connectPostgres(cfg)
	if err != nil {
		log.Printf("postgres connection failed: %v", err)
	}

	rdb := deps.connectRedis(cfg)

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, pg, rdb, signals, nil); err != nil {
		log.Printf("server exited with error: %v", err)
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// openSlot picks the key-value slot backing: redis when connected,
// a sqlite file under DataDir otherwise, memory as the last resort.
func openSlot(cfg config.Config, rdb *redis.Client) kv.Store {
	if rdb != nil {
		return kv.NewRedis(rdb)
	}
	slot, err := kv.OpenSQLite(filepath.Join(cfg.DataDir, "sparnet.db"))
	if err != nil {
		log.Printf("sqlite slot unavailable, using memory: %v", err)
		return kv.NewMemory()
	}
	return slot
}

func buildIdentity(cfg config.Config) identity.Provider {
	if cfg.SupabaseURL != "" {
		return identity.NewSupabase(cfg.SupabaseURL, cfg.SupabaseServiceRole, cfg.SupabaseAnonKey)
	}
	return identity.NewLocal(cfg.JWTSecret)
}

func buildProfiles(cfg config.Config, pg *pgxpool.Pool, slot kv.Store) profile.Store {
	if pg != nil {
		return profile.NewPostgresStore(pg)
	}
	if cfg.SupabaseURL != "" {
		return profile.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceRole)
	}
	return profile.NewSlotStore(slot)
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, pg *pgxpool.Pool, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	slot := openSlot(cfg, rdb)
	profilesync.NewFlags(slot).EnsureVersion(ctx)

	srv := server.NewServer(cfg, server.Deps{
		DB:       pg,
		Redis:    rdb,
		Slot:     slot,
		Identity: buildIdentity(cfg),
		Profiles: buildProfiles(cfg, pg, slot),
	})

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	if closer, ok := slot.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if pg != nil {
		pg.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
