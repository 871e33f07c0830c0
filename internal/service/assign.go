package service

import (
	"context"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"github.com/pfennig/pfennig/internal/config"
	"github.com/pfennig/pfennig/internal/database/repository"
	"github.com/pfennig/pfennig/internal/rules"
)

// AssignService handles explicit "set category C for transaction T"
// actions: the durable recategorization, pattern learning, and the
// propagation scan that surfaces similar uncategorized transactions for
// human confirmation.
type AssignService struct {
	Transactions *repository.TransactionRepo
	Categories   *repository.CategoryRepo
	Cache        *CategoryCache

	// Policy decides what happens when learning or propagation fails
	// after the primary category update already persisted. Lenient
	// (the default) logs and returns an empty candidate list; strict
	// surfaces the error. The update from step 2 is never rolled back
	// either way.
	Policy string
	Log    zerolog.Logger
}

// AssignCategory recategorizes one transaction, learns a pattern from
// its description, and (when propagate is set) returns uncategorized
// transactions matching the category's rules as candidates for bulk
// confirmation. It never mass-mutates on its own; callers confirm
// candidates through AssignCategoryBulk.
func (s *AssignService) AssignCategory(ctx context.Context, txID, categoryID string, propagate bool) ([]repository.Transaction, error) {
	cat, err := s.Categories.Get(ctx, categoryID)
	if err != nil {
		return nil, &StoreError{Op: "get category", Err: err}
	}
	if cat == nil {
		return nil, &NotFoundError{Kind: "category", ID: categoryID}
	}

	tx, err := s.Transactions.Get(ctx, txID)
	if err != nil {
		return nil, &StoreError{Op: "get transaction", Err: err}
	}
	if tx == nil {
		return nil, &NotFoundError{Kind: "transaction", ID: txID}
	}

	// The user's immediate intent: this update is durable regardless of
	// what the learning steps below do.
	if err := s.Transactions.UpdateCategory(ctx, txID, &categoryID); err != nil {
		return nil, &StoreError{Op: "update category", Err: err}
	}

	candidates, err := s.learnAndPropagate(ctx, tx, cat, propagate)
	if err != nil {
		if s.Policy == config.PolicyStrict {
			return nil, err
		}
		s.Log.Warn().Err(err).
			Str("transaction", txID).
			Str("category", categoryID).
			Msg("pattern learning degraded; recategorization kept")
		return []repository.Transaction{}, nil
	}
	return candidates, nil
}

func (s *AssignService) learnAndPropagate(ctx context.Context, tx *repository.Transaction, cat *repository.Category, propagate bool) ([]repository.Transaction, error) {
	if pattern := rules.DerivePattern(tx.Description); pattern != "" {
		added, err := s.Categories.AppendPattern(ctx, cat.ID, pattern)
		if err != nil {
			return nil, &StoreError{Op: "append pattern", Err: err}
		}
		if added && s.Cache != nil {
			s.Cache.Invalidate()
		}
	}

	if !propagate {
		return []repository.Transaction{}, nil
	}

	// Re-read so the scan sees the pattern set including the one just
	// learned.
	fresh, err := s.Categories.Get(ctx, cat.ID)
	if err != nil {
		return nil, &StoreError{Op: "reload category", Err: err}
	}
	if fresh == nil {
		return nil, &NotFoundError{Kind: "category", ID: cat.ID}
	}

	// The scan runs the category's full post-update rule set, so it
	// doubles as a human-confirmed backfill for this one category. A
	// transaction matching several patterns is collected once.
	seen := map[string]struct{}{tx.ID: {}}
	var candidates []repository.Transaction
	for _, p := range fresh.Patterns.Items() {
		for _, expr := range rules.LikeExprs(p) {
			matches, err := s.Transactions.SearchUncategorizedLike(ctx, expr)
			if err != nil {
				return nil, &StoreError{Op: "scan candidates", Err: err}
			}
			for _, m := range matches {
				if _, dup := seen[m.ID]; dup {
					continue
				}
				seen[m.ID] = struct{}{}
				candidates = append(candidates, m)
			}
		}
	}

	rankBySimilarity(candidates, tx.Description)
	return candidates, nil
}

// rankBySimilarity orders candidates by edit distance to the source
// description so the confirmation list leads with the closest rows.
func rankBySimilarity(candidates []repository.Transaction, source string) {
	ref := rules.Normalize(source)
	sort.SliceStable(candidates, func(i, j int) bool {
		di := levenshtein.ComputeDistance(ref, rules.Normalize(candidates[i].Description))
		dj := levenshtein.ComputeDistance(ref, rules.Normalize(candidates[j].Description))
		return di < dj
	})
}

// AssignCategoryBulk is the terminal step of a propagation round: it
// sets the category on each listed transaction that is still
// uncategorized and does no further learning or propagation, which
// prevents runaway chains. Rows categorized since the propagation read
// are left untouched. Returns the number of rows updated.
func (s *AssignService) AssignCategoryBulk(ctx context.Context, txIDs []string, categoryID string) (int, error) {
	if len(txIDs) == 0 {
		return 0, nil
	}
	cat, err := s.Categories.Get(ctx, categoryID)
	if err != nil {
		return 0, &StoreError{Op: "get category", Err: err}
	}
	if cat == nil {
		return 0, &NotFoundError{Kind: "category", ID: categoryID}
	}
	n, err := s.Transactions.AssignWhereUncategorized(ctx, txIDs, categoryID)
	if err != nil {
		return 0, &StoreError{Op: "bulk assign", Err: err}
	}
	s.Log.Info().Int64("updated", n).Str("category", categoryID).Msg("bulk assignment applied")
	return int(n), nil
}
