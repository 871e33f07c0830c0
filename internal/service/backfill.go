package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pfennig/pfennig/internal/database/repository"
)

// BackfillService re-scans all uncategorized transactions against the
// current category rule sets and assigns categories in bulk. It is the
// batch-mode counterpart to single assignment and is safe to rerun: a
// sweep only ever touches rows that are still uncategorized.
type BackfillService struct {
	Transactions *repository.TransactionRepo
	Categories   *CategoryCache
	Log          zerolog.Logger
}

// BackfillResult reports what a sweep did.
type BackfillResult struct {
	Scanned int
	Updated int
	Skipped int
}

// Backfill runs one maintenance pass. Per-row store failures are logged
// and skipped so a single bad row never aborts the sweep; only failures
// to read the inputs are terminal.
func (s *BackfillService) Backfill(ctx context.Context) (BackfillResult, error) {
	var res BackfillResult

	cats, err := s.Categories.Categories(ctx)
	if err != nil {
		return res, &StoreError{Op: "load categories", Err: err}
	}
	matcher := matcherFor(cats)

	txs, err := s.Transactions.ListUncategorized(ctx)
	if err != nil {
		return res, &StoreError{Op: "list uncategorized", Err: err}
	}

	for _, tx := range txs {
		res.Scanned++
		catID, ok := matcher.Match(tx.Description)
		if !ok {
			continue
		}
		id := catID
		if err := s.Transactions.UpdateCategory(ctx, tx.ID, &id); err != nil {
			res.Skipped++
			s.Log.Warn().Err(err).Str("transaction", tx.ID).Msg("backfill update failed; row skipped")
			continue
		}
		res.Updated++
	}

	s.Log.Info().
		Int("scanned", res.Scanned).
		Int("updated", res.Updated).
		Int("skipped", res.Skipped).
		Msg("backfill sweep complete")
	return res, nil
}
