package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pfennig/pfennig/internal/database"
	"github.com/pfennig/pfennig/internal/database/repository"
	"github.com/pfennig/pfennig/internal/rules"
)

type testEnv struct {
	ctx     context.Context
	db      *sql.DB
	txRepo  *repository.TransactionRepo
	catRepo *repository.CategoryRepo
	cache   *CategoryCache
}

func setupServiceTest(t *testing.T) *testEnv {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	catRepo := repository.NewCategoryRepo(db)
	return &testEnv{
		ctx:     ctx,
		db:      db,
		txRepo:  repository.NewTransactionRepo(db),
		catRepo: catRepo,
		cache:   &CategoryCache{Repo: catRepo},
	}
}

func (e *testEnv) seedCategory(t *testing.T, name, value string, priority int, patterns ...string) repository.Category {
	t.Helper()
	ps, err := rules.NewPatternSet(patterns...)
	require.NoError(t, err)
	cat := repository.Category{
		ID:       uuid.NewString(),
		Name:     name,
		Value:    value,
		Patterns: ps,
		Priority: priority,
	}
	require.NoError(t, e.catRepo.Create(e.ctx, cat))
	e.cache.Invalidate()
	return cat
}

func (e *testEnv) insertTx(t *testing.T, description string, categoryID *string) repository.Transaction {
	t.Helper()
	tx := repository.Transaction{
		ID:                uuid.NewString(),
		Date:              "01.01.2024",
		Description:       description,
		Amount:            decimal.RequireFromString("-10.00"),
		AccountHolderName: "Jane",
		BankName:          "commerzbank",
		CategoryID:        categoryID,
	}
	require.NoError(t, e.txRepo.InsertBatch(e.ctx, []repository.Transaction{tx}))
	return tx
}

func nopLogger() zerolog.Logger { return zerolog.Nop() }
