package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"AlphaPlan/pkg/logger"
)

func TestFilePlanStoreSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans", "trade_plan.txt")
	store := NewFilePlanStore(path, logger.Nop())

	plan := samplePlan()
	require.NoError(t, store.Save(context.Background(), plan))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, EncodePlan(plan), got)

	// no leftover temp file
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestFilePlanStoreOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade_plan.txt")
	store := NewFilePlanStore(path, logger.Nop())

	first := samplePlan()
	require.NoError(t, store.Save(context.Background(), first))

	second := samplePlan()
	second.GeneratedAt = second.GeneratedAt.Add(time.Hour)
	second.Positions = second.Positions[:1]
	require.NoError(t, store.Save(context.Background(), second))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, EncodePlan(second), got) // full replacement, not append
}

func TestFilePlanStoreCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade_plan.txt")
	store := NewFilePlanStore(path, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, store.Save(ctx, samplePlan()))

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestMultiPlanStoreFanOut(t *testing.T) {
	dir := t.TempDir()
	a := NewFilePlanStore(filepath.Join(dir, "a.txt"), logger.Nop())
	b := NewFilePlanStore(filepath.Join(dir, "b.txt"), logger.Nop())
	multi := NewMultiPlanStore(a, b)

	plan := samplePlan()
	require.NoError(t, multi.Save(context.Background(), plan))

	for _, name := range []string{"a.txt", "b.txt"} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		require.Equal(t, EncodePlan(plan), got)
	}
	require.NoError(t, multi.Close())
}
