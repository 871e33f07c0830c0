package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/pfennig/pfennig/internal/config"
	"github.com/pfennig/pfennig/internal/database"
	"github.com/pfennig/pfennig/internal/database/repository"
	"github.com/pfennig/pfennig/internal/logger"
	"github.com/pfennig/pfennig/internal/service"
)

// app bundles the wired-up services every subcommand needs. Construction
// runs the full startup sequence: config, migrations, seed, repositories,
// services.
type app struct {
	cfg config.Config
	log zerolog.Logger
	db  *sql.DB

	transactions *repository.TransactionRepo
	categories   *repository.CategoryRepo
	cache        *service.CategoryCache

	ingest   *service.IngestService
	assign   *service.AssignService
	backfill *service.BackfillService
	taxonomy *service.CategoryService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log := logger.FromContext(ctx)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.RunMigrationsWithDB(db, cfg.Database.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedTaxonomy(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed taxonomy: %w", err)
	}

	txRepo := repository.NewTransactionRepo(db)
	catRepo := repository.NewCategoryRepo(db)
	cache := &service.CategoryCache{Repo: catRepo}

	return &app{
		cfg:          cfg,
		log:          log,
		db:           db,
		transactions: txRepo,
		categories:   catRepo,
		cache:        cache,
		ingest:       &service.IngestService{Transactions: txRepo, Categories: cache, Preassign: cfg.Ingest.Preassign, Log: log},
		assign:       &service.AssignService{Transactions: txRepo, Categories: catRepo, Cache: cache, Policy: cfg.Learning.Policy, Log: log},
		backfill:     &service.BackfillService{Transactions: txRepo, Categories: cache, Log: log},
		taxonomy:     &service.CategoryService{Categories: catRepo, Cache: cache, Log: log},
	}, nil
}

func (a *app) close() {
	_ = a.db.Close()
}

// resolveCategory accepts either a category value (the stable slug shown
// in listings) or a raw id.
func (a *app) resolveCategory(ctx context.Context, ref string) (*repository.Category, error) {
	cat, err := a.categories.GetByValue(ctx, ref)
	if err != nil {
		return nil, err
	}
	if cat != nil {
		return cat, nil
	}
	cat, err = a.categories.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("unknown category %q", ref)
	}
	return cat, nil
}
