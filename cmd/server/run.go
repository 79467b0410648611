package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/smartcity/prizedash/internal/aggregate"
	"github.com/smartcity/prizedash/internal/config"
	"github.com/smartcity/prizedash/internal/delivery/http"
	"github.com/smartcity/prizedash/internal/domain"
	"github.com/smartcity/prizedash/internal/repository/csvdir"
	"github.com/smartcity/prizedash/internal/repository/memory"
	"github.com/smartcity/prizedash/internal/repository/postgres"
	"github.com/smartcity/prizedash/internal/repository/sqlite"
	"github.com/smartcity/prizedash/internal/repository/tables"
	"github.com/smartcity/prizedash/internal/service"
)

func runServe() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	params, err := config.LoadParams(cfg.ParamsFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	source, store, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	// Dependency Injection: Services
	registry, err := service.NewRegistry(ctx, source, aggregate.New(params), cfg.ResultCacheSize)
	if err != nil {
		return err
	}
	dashboardSvc := service.NewDashboardService(registry, store)

	app := http.NewApp(dashboardSvc, cfg.AllowedOrigins, !cfg.IsProduction())

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
	return nil
}

// openSource connects the configured scenario source. store is nil for
// sources without persistence.
func openSource(ctx context.Context, cfg *config.Config) (domain.ScenarioSource, domain.ScenarioStore, func(), error) {
	noop := func() {}

	switch cfg.Source {
	case config.SourceCSV:
		log.Printf("Loading scenarios from %s", cfg.DataDir)
		return csvdir.NewSource(cfg.DataDir), nil, noop, nil

	case config.SourceSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, noop, err
		}
		return store, store, func() { store.Close() }, nil

	case config.SourcePostgres:
		repo, closeRepo, err := openPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Could not connect to database: %v", err)
			log.Println("Running with demo scenarios only")
			demo := memory.NewDemoSource()
			return demo, demo, noop, nil
		}
		return repo, repo, closeRepo, nil
	}

	demo := memory.NewDemoSource()
	return demo, demo, noop, nil
}

func openPostgres(ctx context.Context, url string) (*postgres.PostgresRepository, func(), error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Println("Connected to PostgreSQL")

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool.Close, nil
}

func openStore(ctx context.Context, cfg *config.Config, target string) (domain.ScenarioStore, func(), error) {
	switch target {
	case config.SourceSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case config.SourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL is required to import into postgres")
		}
		return openPostgres(ctx, cfg.DatabaseURL)
	}
	return nil, nil, fmt.Errorf("unknown import target %q", target)
}

// scenarioDirs resolves an import path to named scenario directories. A
// directory holding input tables is one scenario; otherwise each of its
// sub-directories is.
func scenarioDirs(ctx context.Context, dir, name string) (map[string]string, error) {
	for _, t := range tables.Names {
		if _, err := os.Stat(filepath.Join(dir, tables.File(t))); err == nil {
			if name == "" {
				name = filepath.Base(filepath.Clean(dir))
			}
			return map[string]string{name: dir}, nil
		}
	}

	names, err := csvdir.NewSource(dir).List(ctx)
	if err != nil {
		return nil, err
	}
	dirs := make(map[string]string, len(names))
	for _, n := range names {
		dirs[n] = filepath.Join(dir, n)
	}
	return dirs, nil
}

func runImport(dir, target, name string) error {
	cfg := config.Load()
	ctx := context.Background()

	dirs, err := scenarioDirs(ctx, dir, name)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no scenarios found in %s", dir)
	}

	store, closeStore, err := openStore(ctx, cfg, target)
	if err != nil {
		return err
	}
	defer closeStore()

	bar := pb.StartNew(len(dirs))
	var failed []string
	for scenario, path := range dirs {
		raw, err := csvdir.ReadDir(ctx, path)
		if err == nil {
			// reject malformed scenarios before they reach the store
			_, err = tables.Decode(scenario, raw)
		}
		if err == nil {
			var id string
			id, err = store.Import(ctx, scenario, raw)
			if err == nil {
				log.Printf("Imported %s (%d tables, import %s)", scenario, len(raw), id)
			}
		}
		if err != nil {
			log.Printf("Failed to import %s: %v", scenario, err)
			failed = append(failed, scenario)
		}
		bar.Increment()
	}
	bar.Finish()

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d scenarios failed to import: %v", len(failed), len(dirs), failed)
	}
	return nil
}

func runExport(name, table string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	params, err := config.LoadParams(cfg.ParamsFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	source, _, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	data, err := source.Load(ctx, name)
	if err != nil {
		return err
	}
	rs := aggregate.New(params).Build(name, data)

	var output any = rs
	if table != "" {
		t, ok := rs.Table(table)
		if !ok {
			return fmt.Errorf("unknown result table %q", table)
		}
		output = t
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
