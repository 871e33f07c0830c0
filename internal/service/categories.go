package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pfennig/pfennig/internal/database/repository"
	"github.com/pfennig/pfennig/internal/rules"
)

// CategoryService manages the user-editable category taxonomy.
type CategoryService struct {
	Categories *repository.CategoryRepo
	Cache      *CategoryCache
	Log        zerolog.Logger
}

// Create adds a category with an optional initial pattern. New
// categories match after all existing ones (priority appends to the
// current maximum), so adding one never changes the outcome for
// descriptions already covered by earlier rules.
func (s *CategoryService) Create(ctx context.Context, name, value, initialPattern string) (repository.Category, error) {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" {
		return repository.Category{}, &ValidationError{Msg: "category name is required"}
	}
	if value == "" {
		return repository.Category{}, &ValidationError{Msg: "category value is required"}
	}

	existing, err := s.Categories.GetByValue(ctx, value)
	if err != nil {
		return repository.Category{}, &StoreError{Op: "lookup category value", Err: err}
	}
	if existing != nil {
		return repository.Category{}, &ValidationError{Msg: "category value " + value + " already exists"}
	}

	var ps rules.PatternSet
	if strings.TrimSpace(initialPattern) != "" {
		if _, err := ps.Add(initialPattern); err != nil {
			return repository.Category{}, &ValidationError{Msg: err.Error()}
		}
	}

	max, err := s.Categories.MaxPriority(ctx)
	if err != nil {
		return repository.Category{}, &StoreError{Op: "max priority", Err: err}
	}

	cat := repository.Category{
		ID:       uuid.NewString(),
		Name:     name,
		Value:    value,
		Patterns: ps,
		Priority: max + 1,
	}
	if err := s.Categories.Create(ctx, cat); err != nil {
		return repository.Category{}, &StoreError{Op: "create category", Err: err}
	}
	if s.Cache != nil {
		s.Cache.Invalidate()
	}
	s.Log.Info().Str("value", value).Int("priority", cat.Priority).Msg("category created")
	return cat, nil
}

// List returns all categories in match order.
func (s *CategoryService) List(ctx context.Context) ([]repository.Category, error) {
	cats, err := s.Categories.List(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list categories", Err: err}
	}
	return cats, nil
}
