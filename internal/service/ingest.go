package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pfennig/pfennig/internal/bank"
	"github.com/pfennig/pfennig/internal/database/repository"
	"github.com/pfennig/pfennig/internal/rules"
)

// IngestService turns a raw CSV export into persisted transactions:
// parse, normalize per bank adapter, pre-assign categories from the
// current rule sets, insert as one atomic batch.
type IngestService struct {
	Transactions *repository.TransactionRepo
	Categories   *CategoryCache

	// Preassign controls whether existing rules are applied during
	// upload. Pre-assignment is a UX optimization; new uploads inherit
	// existing rules immediately instead of waiting for a backfill.
	Preassign bool
	Log       zerolog.Logger
}

// Ingest parses csvData (header row required), dispatches rows to the
// adapter for bankType and persists the batch. mapping is required for
// bank.TypeOthers and ignored otherwise. Returns the inserted batch.
//
// Failure semantics: atomicity is per upload, not per row. An unknown
// bank type or malformed CSV aborts the whole batch with nothing
// persisted; there is no per-row skip-and-continue.
func (s *IngestService) Ingest(ctx context.Context, csvData string, bankType bank.Type, accountHolderName string, mapping *bank.ColumnMapping) ([]repository.Transaction, error) {
	if strings.TrimSpace(accountHolderName) == "" {
		return nil, &ValidationError{Msg: "account holder name is required"}
	}

	adapt, err := bank.AdapterFor(bankType, mapping)
	if err != nil {
		return nil, &UnsupportedFormatError{Err: err}
	}

	csvRows, err := parseHeaderCSV(strings.NewReader(csvData))
	if err != nil {
		return nil, &UnsupportedFormatError{Err: err}
	}

	var matcher *rules.Matcher
	if s.Preassign {
		cats, err := s.Categories.Categories(ctx)
		if err != nil {
			return nil, &StoreError{Op: "load categories", Err: err}
		}
		matcher = matcherFor(cats)
	}

	txs := make([]repository.Transaction, 0, len(csvRows))
	preassigned := 0
	for _, row := range csvRows {
		payload := adapt(row, accountHolderName)
		t := repository.Transaction{
			ID:                uuid.NewString(),
			Date:              payload.Date,
			Description:       payload.Description,
			Amount:            payload.Amount,
			AccountHolderName: payload.AccountHolderName,
			BankName:          payload.BankName,
		}
		if matcher != nil {
			if catID, ok := matcher.Match(payload.Description); ok {
				id := catID
				t.CategoryID = &id
				preassigned++
			}
		}
		txs = append(txs, t)
	}

	if err := s.Transactions.InsertBatch(ctx, txs); err != nil {
		return nil, &StoreError{Op: "insert batch", Err: err}
	}

	s.Log.Info().
		Str("bank", string(bankType)).
		Int("rows", len(txs)).
		Int("preassigned", preassigned).
		Msg("ingested batch")
	return txs, nil
}

// parseHeaderCSV reads a CSV with a header row into header-keyed rows.
// Rows with no non-blank cell are dropped (trailing newlines in
// exports); ragged rows keep whatever columns they have.
func parseHeaderCSV(r io.Reader) ([]bank.Row, error) {
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []bank.Row
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := bank.Row{}
		blank := true
		for i, cell := range rec {
			if i >= len(header) {
				break
			}
			row[header[i]] = cell
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// matcherFor builds a matcher from categories already in match order.
func matcherFor(cats []repository.Category) *rules.Matcher {
	rs := make([]rules.Rule, 0, len(cats))
	for _, c := range cats {
		rs = append(rs, rules.Rule{CategoryID: c.ID, Patterns: c.Patterns})
	}
	return rules.NewMatcher(rs)
}
