package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionFilters defines list filters.
type TransactionFilters struct {
	CategoryID    string
	Uncategorized bool
	Search        string
	Limit         int
	Offset        int
}

// TransactionRepo handles transactions.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

const txColumns = `id, date, description, amount, account_holder_name, bank_name, category_id, created_at, updated_at`

// InsertBatch persists an upload as a single transaction: either every
// row lands or none do.
func (r *TransactionRepo) InsertBatch(ctx context.Context, txs []Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = dbtx.Rollback() }()

	stmt, err := dbtx.PrepareContext(ctx, `
	INSERT INTO transactions(id, date, description, amount, account_holder_name, bank_name, category_id, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range txs {
		if _, err := stmt.ExecContext(ctx, t.ID, t.Date, t.Description, t.Amount.String(),
			t.AccountHolderName, t.BankName, t.CategoryID); err != nil {
			return err
		}
	}
	return dbtx.Commit()
}

func (r *TransactionRepo) Get(ctx context.Context, id string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+txColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepo) UpdateCategory(ctx context.Context, id string, categoryID *string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE transactions SET category_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, categoryID, id)
	return err
}

// AssignWhereUncategorized sets the category on the listed transactions,
// skipping any row that was categorized since the caller read it. The
// write-time recheck keeps a stale propagation snapshot from clobbering
// a meanwhile-categorized record.
func (r *TransactionRepo) AssignWhereUncategorized(ctx context.Context, ids []string, categoryID string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, categoryID)
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := r.db.ExecContext(ctx, `
	UPDATE transactions SET category_id = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id IN (`+placeholders+`) AND category_id IS NULL`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListUncategorized returns every transaction with no category, oldest first.
func (r *TransactionRepo) ListUncategorized(ctx context.Context) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+txColumns+` FROM transactions WHERE category_id IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// SearchUncategorizedLike returns uncategorized transactions whose
// description matches the given LIKE expression (caller-escaped with
// backslash).
func (r *TransactionRepo) SearchUncategorizedLike(ctx context.Context, likeExpr string) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+txColumns+` FROM transactions
	WHERE category_id IS NULL AND description LIKE ? ESCAPE '\'
	ORDER BY created_at, id`, likeExpr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *TransactionRepo) List(ctx context.Context, f TransactionFilters) ([]Transaction, error) {
	var where []string
	var args []interface{}

	if f.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Uncategorized {
		where = append(where, "category_id IS NULL")
	}
	if f.Search != "" {
		where = append(where, "description LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := `SELECT ` + txColumns + ` FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *TransactionRepo) Count(ctx context.Context, f TransactionFilters) (int, error) {
	var where []string
	var args []interface{}
	if f.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Uncategorized {
		where = append(where, "category_id IS NULL")
	}
	query := `SELECT COUNT(*) FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CategoryTotal is a per-category amount sum for the summary view.
type CategoryTotal struct {
	CategoryID string // empty for uncategorized
	Total      decimal.Decimal
	Count      int
}

func (r *TransactionRepo) SumByCategory(ctx context.Context) ([]CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT COALESCE(category_id, ''), COALESCE(SUM(CAST(amount AS REAL)), 0), COUNT(*)
	FROM transactions
	GROUP BY category_id
	ORDER BY 2 ASC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		var total float64
		if err := rows.Scan(&ct.CategoryID, &total, &ct.Count); err != nil {
			return nil, err
		}
		ct.Total = decimal.NewFromFloat(total)
		out = append(out, ct)
	}
	return out, rows.Err()
}

func collectTransactions(rows *sql.Rows) ([]Transaction, error) {
	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// scanTransaction handles nullable fields for both Row and Rows.
func scanTransaction(row scanner) (Transaction, error) {
	var t Transaction
	var amount string
	var category sql.NullString
	if err := row.Scan(&t.ID, &t.Date, &t.Description, &amount, &t.AccountHolderName,
		&t.BankName, &category, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Transaction{}, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Transaction{}, err
	}
	t.Amount = d
	if category.Valid {
		t.CategoryID = &category.String
	}
	return t, nil
}
