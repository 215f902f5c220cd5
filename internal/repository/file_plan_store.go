package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"AlphaPlan/internal/domain/models"
	domrepo "AlphaPlan/internal/domain/repository"
	"AlphaPlan/pkg/logger"
)

// FilePlanStore writes the plan artifact to a well-known path, atomically
// replacing the previous plan. Readers always see a complete snapshot, never
// a half-written one.
type FilePlanStore struct {
	path string
	log  *logger.Logger
}

func NewFilePlanStore(path string, log *logger.Logger) *FilePlanStore {
	return &FilePlanStore{path: path, log: log}
}

func (s *FilePlanStore) Save(ctx context.Context, plan *models.TradePlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("artifact dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, EncodePlan(plan), 0o644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace plan: %w", err)
	}

	s.log.Info("trade plan written",
		logger.String("path", s.path), logger.Int("assets", len(plan.Positions)))
	return nil
}

func (s *FilePlanStore) Close() error { return nil }

var _ domrepo.PlanStore = (*FilePlanStore)(nil)
