package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pfennig/pfennig/internal/database"
	. "github.com/pfennig/pfennig/internal/database/repository"
	"github.com/pfennig/pfennig/internal/rules"
)

func setupRepoTest(t *testing.T) (context.Context, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return context.Background(), db
}

func mustPatternSet(t *testing.T, patterns ...string) rules.PatternSet {
	t.Helper()
	ps, err := rules.NewPatternSet(patterns...)
	require.NoError(t, err)
	return ps
}

func TestCategoryListOrder(t *testing.T) {
	t.Parallel()
	ctx, db := setupRepoTest(t)
	repo := NewCategoryRepo(db)

	for i, value := range []string{"third", "first", "second"} {
		prio := []int{3, 1, 2}[i]
		require.NoError(t, repo.Create(ctx, Category{
			ID:       uuid.NewString(),
			Name:     value,
			Value:    value,
			Patterns: mustPatternSet(t),
			Priority: prio,
		}))
	}

	cats, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	require.Equal(t, "first", cats[0].Value)
	require.Equal(t, "second", cats[1].Value)
	require.Equal(t, "third", cats[2].Value)
}

func TestAppendPattern(t *testing.T) {
	t.Parallel()
	ctx, db := setupRepoTest(t)
	repo := NewCategoryRepo(db)

	id := uuid.NewString()
	require.NoError(t, repo.Create(ctx, Category{
		ID:       id,
		Name:     "Groceries",
		Value:    "groceries",
		Patterns: mustPatternSet(t, "%rewe%"),
		Priority: 1,
	}))

	added, err := repo.AppendPattern(ctx, id, "%aldi%")
	require.NoError(t, err)
	require.True(t, added)

	// duplicate in any casing is a no-op
	added, err = repo.AppendPattern(ctx, id, "%ALDI%")
	require.NoError(t, err)
	require.False(t, added)

	cat, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"%rewe%", "%aldi%"}, cat.Patterns.Items())
}

func TestAppendPatternUnknownCategory(t *testing.T) {
	t.Parallel()
	ctx, db := setupRepoTest(t)
	repo := NewCategoryRepo(db)

	_, err := repo.AppendPattern(ctx, "missing", "%aldi%")
	require.Error(t, err)
}

func TestGetByValue(t *testing.T) {
	t.Parallel()
	ctx, db := setupRepoTest(t)
	repo := NewCategoryRepo(db)

	id := uuid.NewString()
	require.NoError(t, repo.Create(ctx, Category{
		ID: id, Name: "Rent", Value: "rent", Patterns: mustPatternSet(t), Priority: 1,
	}))

	cat, err := repo.GetByValue(ctx, "rent")
	require.NoError(t, err)
	require.NotNil(t, cat)
	require.Equal(t, id, cat.ID)

	cat, err = repo.GetByValue(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, cat)
}
