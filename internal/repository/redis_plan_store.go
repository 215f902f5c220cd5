package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"AlphaPlan/internal/domain/models"
	domrepo "AlphaPlan/internal/domain/repository"
)

// RedisPlanStore mirrors the latest plan into Redis for a downstream
// execution agent: the same bytes as the file artifact, stored under a single
// key with no expiry (latest-plan semantics).
type RedisPlanStore struct {
	client *redis.Client
	key    string
}

func NewRedisPlanStore(client *redis.Client, key string) *RedisPlanStore {
	return &RedisPlanStore{client: client, key: key}
}

func (s *RedisPlanStore) Save(ctx context.Context, plan *models.TradePlan) error {
	if err := s.client.Set(ctx, s.key, EncodePlan(plan), 0).Err(); err != nil {
		return fmt.Errorf("redis set plan: %w", err)
	}
	return nil
}

func (s *RedisPlanStore) Close() error {
	return s.client.Close()
}

var _ domrepo.PlanStore = (*RedisPlanStore)(nil)

// MultiPlanStore fans a plan out to several stores; the first failure wins.
type MultiPlanStore struct {
	stores []domrepo.PlanStore
}

func NewMultiPlanStore(stores ...domrepo.PlanStore) *MultiPlanStore {
	return &MultiPlanStore{stores: stores}
}

func (s *MultiPlanStore) Save(ctx context.Context, plan *models.TradePlan) error {
	for _, st := range s.stores {
		if err := st.Save(ctx, plan); err != nil {
			return err
		}
	}
	return nil
}

func (s *MultiPlanStore) Close() error {
	var first error
	for _, st := range s.stores {
		if err := st.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var _ domrepo.PlanStore = (*MultiPlanStore)(nil)
