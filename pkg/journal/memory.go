package journal

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu        sync.RWMutex
	workflows map[string]*Workflow
	mints     map[string][]*Mint
}

// NewMemoryStore returns a process-local store, used when no database is configured.
func NewMemoryStore() Store {
	return &memoryStore{
		workflows: make(map[string]*Workflow),
		mints:     make(map[string][]*Mint),
	}
}

func (s *memoryStore) CreateWorkflow(_ context.Context, wf *Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wf.CreatedAt.IsZero() {
		wf.CreatedAt = time.Now().UTC()
	}
	wf.UpdatedAt = wf.CreatedAt
	cp := *wf
	s.workflows[wf.ID] = &cp
	return nil
}

func (s *memoryStore) UpdateWorkflow(_ context.Context, wf *Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workflows[wf.ID]; !ok {
		return ErrWorkflowNotFound
	}
	wf.UpdatedAt = time.Now().UTC()
	cp := *wf
	s.workflows[wf.ID] = &cp
	return nil
}

func (s *memoryStore) RecordMint(_ context.Context, m *Mint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	cp := *m
	s.mints[m.WorkflowID] = append(s.mints[m.WorkflowID], &cp)
	return nil
}

func (s *memoryStore) GetWorkflow(_ context.Context, id string) (*Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wf, ok := s.workflows[id]
	if !ok {
		return nil, ErrWorkflowNotFound
	}
	cp := *wf
	return &cp, nil
}

func (s *memoryStore) ListMints(_ context.Context, workflowID string) ([]*Mint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Mint, 0, len(s.mints[workflowID]))
	for _, m := range s.mints[workflowID] {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}
