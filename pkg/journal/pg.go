package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the journal store
func NewStore(db *bun.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) CreateWorkflow(ctx context.Context, wf *Workflow) error {
	now := time.Now().UTC()
	if wf.CreatedAt.IsZero() {
		wf.CreatedAt = now
	}
	wf.UpdatedAt = wf.CreatedAt

	_, err := s.db.NewInsert().
		Model(toWorkflowDao(wf)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create workflow: %w", err)
	}
	return nil
}

func (s *pgStore) UpdateWorkflow(ctx context.Context, wf *Workflow) error {
	wf.UpdatedAt = time.Now().UTC()
	dao := toWorkflowDao(wf)

	res, err := s.db.NewUpdate().
		Model(dao).
		Column("token_id", "state", "registration_tx", "asset_tx", "error", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update workflow: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrWorkflowNotFound
	}
	return nil
}

func (s *pgStore) RecordMint(ctx context.Context, m *Mint) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.NewInsert().
		Model(toMintDao(m)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record mint: %w", err)
	}
	return nil
}

func (s *pgStore) GetWorkflow(ctx context.Context, id string) (*Workflow, error) {
	dao := new(WorkflowDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}
	return toWorkflow(dao), nil
}

func (s *pgStore) ListMints(ctx context.Context, workflowID string) ([]*Mint, error) {
	var daos []MintDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("workflow_id = ?", workflowID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mints: %w", err)
	}

	mints := make([]*Mint, len(daos))
	for i := range daos {
		mints[i] = toMint(&daos[i])
	}
	return mints, nil
}
