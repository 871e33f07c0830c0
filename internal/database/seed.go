package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/pfennig/pfennig/internal/database/repository"
	"github.com/pfennig/pfennig/internal/rules"
)

// defaultTaxonomy is the static category seed, priorities ascending in
// declaration order. Patterns follow the wildcard dialect of the
// matcher.
var defaultTaxonomy = []struct {
	name     string
	value    string
	patterns []string
}{
	{"Groceries", "groceries", []string{"%rewe%", "%aldi%", "%lidl%", "%edeka%", "%penny%", "%netto%"}},
	{"Restaurants", "restaurants", []string{"%restaurant%", "%lieferando%", "%mcdonald%", "%burger%king%"}},
	{"Transport", "transport", []string{"%db%vertrieb%", "%bvg%", "%uber%", "%shell%", "%aral%"}},
	{"Rent", "rent", []string{"%miete%"}},
	{"Utilities", "utilities", []string{"%vattenfall%", "%stadtwerke%", "%telekom%", "%vodafone%"}},
	{"Entertainment", "entertainment", []string{"%netflix%", "%spotify%", "%steam%", "%kino%"}},
	{"Shopping", "shopping", []string{"%amazon%", "%zalando%", "%ikea%"}},
	{"Health", "health", []string{"%apotheke%", "%drogerie%"}},
	{"Salary", "salary", []string{"%gehalt%", "%lohn%"}},
}

// SeedTaxonomy creates the default categories for a fresh database.
// It is idempotent: when any category exists the seed is a no-op, so
// user-grown rule sets are never clobbered on startup.
func SeedTaxonomy(ctx context.Context, db *sql.DB) error {
	catRepo := repository.NewCategoryRepo(db)
	existing, err := catRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for idx, entry := range defaultTaxonomy {
		ps, err := rules.NewPatternSet(entry.patterns...)
		if err != nil {
			return err
		}
		cat := repository.Category{
			ID:       uuid.NewString(),
			Name:     entry.name,
			Value:    entry.value,
			Patterns: ps,
			Priority: idx + 1,
		}
		if err := catRepo.Create(ctx, cat); err != nil {
			return err
		}
	}
	return nil
}
