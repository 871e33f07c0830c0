package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pfennig/pfennig/internal/rules"
)

// CategoryRepo handles categories.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, c Category) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO categories(id, name, value, patterns, priority, created_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, c.ID, c.Name, c.Value, c.Patterns.Encode(), c.Priority)
	return err
}

// List returns categories in match order: explicit priority first,
// creation order as the tiebreak. The matcher walks this order and the
// first matching category wins, so the ordering here is load-bearing.
func (r *CategoryRepo) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, value, patterns, priority, created_at
	FROM categories ORDER BY priority, created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) Get(ctx context.Context, id string) (*Category, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, value, patterns, priority, created_at
	FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) GetByValue(ctx context.Context, value string) (*Category, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, value, patterns, priority, created_at
	FROM categories WHERE value = ?`, value)
	c, err := scanCategory(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// MaxPriority returns the highest priority in use, 0 when no categories exist.
func (r *CategoryRepo) MaxPriority(ctx context.Context) (int, error) {
	var max sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(priority) FROM categories`).Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64), nil
}

// AppendPattern merges a pattern into a category's set if it is novel.
// The read-modify-write runs inside one SQL transaction so two
// concurrent learners cannot lose each other's appends. Reports whether
// the set grew.
func (r *CategoryRepo) AppendPattern(ctx context.Context, id, pattern string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var encoded string
	if err := tx.QueryRowContext(ctx, `SELECT patterns FROM categories WHERE id = ?`, id).Scan(&encoded); err != nil {
		if err == sql.ErrNoRows {
			return false, fmt.Errorf("category %s: %w", id, sql.ErrNoRows)
		}
		return false, err
	}

	ps := rules.DecodePatternSet(encoded)
	added, err := ps.Add(pattern)
	if err != nil {
		return false, err
	}
	if !added {
		return false, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, `UPDATE categories SET patterns = ? WHERE id = ?`, ps.Encode(), id); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCategory(row scanner) (Category, error) {
	var c Category
	var encoded string
	if err := row.Scan(&c.ID, &c.Name, &c.Value, &encoded, &c.Priority, &c.CreatedAt); err != nil {
		return Category{}, err
	}
	c.Patterns = rules.DecodePatternSet(encoded)
	return c, nil
}
