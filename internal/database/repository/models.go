package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pfennig/pfennig/internal/rules"
)

// Transaction represents a transaction row. Dates are kept in the
// bank-native string format they were received in; everything except
// CategoryID is immutable once created.
type Transaction struct {
	ID                string
	Date              string
	Description       string
	Amount            decimal.Decimal
	AccountHolderName string
	BankName          string
	CategoryID        *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Category represents a category row. Value is a stable slug used as a
// lookup key independent of display renaming. Priority is the explicit
// match order: lower wins first.
type Category struct {
	ID        string
	Name      string
	Value     string
	Patterns  rules.PatternSet
	Priority  int
	CreatedAt time.Time
}
