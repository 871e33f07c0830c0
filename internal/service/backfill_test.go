package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBackfillAssignsByCurrentRules(t *testing.T) {
	t.Parallel()
	env := setupServiceTest(t)
	groceries := env.seedCategory(t, "Groceries", "groceries", 1, "%rewe%", "%aldi%")
	transport := env.seedCategory(t, "Transport", "transport", 2, "%bvg%")

	a := env.insertTx(t, "REWE SAGT DANKE", nil)
	b := env.insertTx(t, "BVG Monatskarte", nil)
	c := env.insertTx(t, "Unknown Merchant", nil)
	preset := env.insertTx(t, "REWE CITY", &transport.ID)

	svc := &BackfillService{Transactions: env.txRepo, Categories: env.cache, Log: nopLogger()}
	res, err := svc.Backfill(env.ctx)
	require.NoError(t, err)
	require.Equal(t, 3, res.Scanned, "only uncategorized rows are scanned")
	require.Equal(t, 2, res.Updated)
	require.Equal(t, 0, res.Skipped)

	gotA, _ := env.txRepo.Get(env.ctx, a.ID)
	require.Equal(t, groceries.ID, *gotA.CategoryID)
	gotB, _ := env.txRepo.Get(env.ctx, b.ID)
	require.Equal(t, transport.ID, *gotB.CategoryID)
	gotC, _ := env.txRepo.Get(env.ctx, c.ID)
	require.Nil(t, gotC.CategoryID, "unmatched rows stay uncategorized")
	gotPreset, _ := env.txRepo.Get(env.ctx, preset.ID)
	require.Equal(t, transport.ID, *gotPreset.CategoryID, "categorized rows are never reclassified")
}

func TestBackfillIsIdempotent(t *testing.T) {
	t.Parallel()
	env := setupServiceTest(t)
	env.seedCategory(t, "Groceries", "groceries", 1, "%rewe%")
	env.insertTx(t, "REWE SAGT DANKE", nil)

	svc := &BackfillService{Transactions: env.txRepo, Categories: env.cache, Log: nopLogger()}

	res, err := svc.Backfill(env.ctx)
	require.NoError(t, err)
	require.Equal(t, 1, res.Updated)

	res, err = svc.Backfill(env.ctx)
	require.NoError(t, err)
	require.Equal(t, 0, res.Scanned)
	require.Equal(t, 0, res.Updated)
}

func TestBackfillFirstMatchOrderIsPriority(t *testing.T) {
	t.Parallel()
	env := setupServiceTest(t)
	// both match "%rewe%"; the lower priority must win
	first := env.seedCategory(t, "Groceries", "groceries", 1, "%rewe%")
	env.seedCategory(t, "Misc", "misc", 2, "%rewe%")

	tx := env.insertTx(t, "REWE SAGT DANKE", nil)

	svc := &BackfillService{Transactions: env.txRepo, Categories: env.cache, Log: nopLogger()}
	_, err := svc.Backfill(env.ctx)
	require.NoError(t, err)

	got, err := env.txRepo.Get(env.ctx, tx.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, *got.CategoryID)
}
