package service

import (
	"context"

	"github.com/impactchain/npo-governance/pkg/governance"
	"github.com/impactchain/npo-governance/pkg/journal"
	"github.com/impactchain/npo-governance/pkg/registry"
)

// MockCoordinator is a mock implementation of Coordinator
type MockCoordinator struct {
	RegisterNPOFunc      func(ctx context.Context, req governance.RegisterRequest) (*governance.RegistrationResult, error)
	GetNPODetailsFunc    func(ctx context.Context, owner string) (*registry.NPO, error)
	GetTokenMetadataFunc func(ctx context.Context, tokenID uint32) (*registry.TokenMetadata, error)
	GetNPOCountFunc      func(ctx context.Context) (uint32, error)
	GetBalanceFunc       func(ctx context.Context, tokenID uint32, address string) ([]byte, error)
	WorkflowFunc         func(ctx context.Context, id string) (*journal.Workflow, []*journal.Mint, error)

	RegisterCalls int
}

func (m *MockCoordinator) RegisterNPO(ctx context.Context, req governance.RegisterRequest) (*governance.RegistrationResult, error) {
	m.RegisterCalls++
	if m.RegisterNPOFunc != nil {
		return m.RegisterNPOFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockCoordinator) GetNPODetails(ctx context.Context, owner string) (*registry.NPO, error) {
	if m.GetNPODetailsFunc != nil {
		return m.GetNPODetailsFunc(ctx, owner)
	}
	return nil, registry.ErrNotFound
}

func (m *MockCoordinator) GetTokenMetadata(ctx context.Context, tokenID uint32) (*registry.TokenMetadata, error) {
	if m.GetTokenMetadataFunc != nil {
		return m.GetTokenMetadataFunc(ctx, tokenID)
	}
	return nil, registry.ErrNotFound
}

func (m *MockCoordinator) GetNPOCount(ctx context.Context) (uint32, error) {
	if m.GetNPOCountFunc != nil {
		return m.GetNPOCountFunc(ctx)
	}
	return 0, nil
}

func (m *MockCoordinator) GetBalance(ctx context.Context, tokenID uint32, address string) ([]byte, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, tokenID, address)
	}
	return nil, nil
}

func (m *MockCoordinator) Workflow(ctx context.Context, id string) (*journal.Workflow, []*journal.Mint, error) {
	if m.WorkflowFunc != nil {
		return m.WorkflowFunc(ctx, id)
	}
	return nil, nil, journal.ErrWorkflowNotFound
}

func (m *MockCoordinator) Tokenomics() governance.Tokenomics {
	return governance.DefaultTokenomics()
}
