package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pfennig/pfennig/internal/database/repository"
)

func TestSeedTaxonomy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(dbPath, migrations))

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, SeedTaxonomy(ctx, db))

	catRepo := repository.NewCategoryRepo(db)
	cats, err := catRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, len(defaultTaxonomy))
	for i, c := range cats {
		require.Equal(t, i+1, c.Priority, "match order follows declaration order")
		require.Positive(t, c.Patterns.Len())
	}

	// rerun is a no-op, user edits survive restarts
	require.NoError(t, SeedTaxonomy(ctx, db))
	again, err := catRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, again, len(defaultTaxonomy))
}
