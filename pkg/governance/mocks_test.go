package governance

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/impactchain/npo-governance/pkg/assethub"
	"github.com/impactchain/npo-governance/pkg/registry"
)

// MockLedger is a fake Ledger that counts calls.
type MockLedger struct {
	mu sync.Mutex

	ConnectFunc     func(ctx context.Context, endpoint string) error
	CreateAssetFunc func(ctx context.Context, id uint32, admin string, minBalance *big.Int, md assethub.AssetMetadata) (string, error)
	MintTokensFunc  func(ctx context.Context, id uint32, recipient string, amount *big.Int) (string, error)
	GetBalanceFunc  func(ctx context.Context, id uint32, address string) ([]byte, error)

	Account      assethub.Account
	ConnectCalls int
	CreateCalls  int
	MintCalls    []mintCall
	Closed       bool
}

type mintCall struct {
	ID        uint32
	Recipient string
	Amount    *big.Int
}

func (m *MockLedger) Connect(ctx context.Context, endpoint string) error {
	m.mu.Lock()
	m.ConnectCalls++
	m.mu.Unlock()
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx, endpoint)
	}
	return nil
}

func (m *MockLedger) SetAccount(account assethub.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Account = account
}

func (m *MockLedger) CreateAsset(
	ctx context.Context,
	id uint32,
	admin string,
	minBalance *big.Int,
	md assethub.AssetMetadata,
) (string, error) {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()
	if m.CreateAssetFunc != nil {
		return m.CreateAssetFunc(ctx, id, admin, minBalance, md)
	}
	return "0xasset", nil
}

func (m *MockLedger) MintTokens(ctx context.Context, id uint32, recipient string, amount *big.Int) (string, error) {
	m.mu.Lock()
	m.MintCalls = append(m.MintCalls, mintCall{ID: id, Recipient: recipient, Amount: new(big.Int).Set(amount)})
	m.mu.Unlock()
	if m.MintTokensFunc != nil {
		return m.MintTokensFunc(ctx, id, recipient, amount)
	}
	return "0xmint-" + recipient, nil
}

func (m *MockLedger) GetBalance(ctx context.Context, id uint32, address string) ([]byte, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, id, address)
	}
	return nil, nil
}

func (m *MockLedger) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// MockRegistry is a fake Registry.
type MockRegistry struct {
	SimulateRegisterFunc func(ctx context.Context, caller common.Address, reg registry.Registration) (uint32, error)
	RegisterNpoFunc      func(ctx context.Context, caller registry.Caller, reg registry.Registration, fallbackID uint32) (*registry.Receipt, error)
	GetNpoFunc           func(ctx context.Context, owner common.Address) (*registry.NPO, error)
	GetTokenMetadataFunc func(ctx context.Context, tokenID uint32) (*registry.TokenMetadata, error)
	GetNpoCountFunc      func(ctx context.Context) (uint32, error)
	IsRegisteredNpoFunc  func(ctx context.Context, account common.Address) (bool, error)

	RegisterCalls int
	Closed        bool
}

func (m *MockRegistry) SimulateRegister(ctx context.Context, caller common.Address, reg registry.Registration) (uint32, error) {
	if m.SimulateRegisterFunc != nil {
		return m.SimulateRegisterFunc(ctx, caller, reg)
	}
	return 1, nil
}

func (m *MockRegistry) RegisterNpo(
	ctx context.Context,
	caller registry.Caller,
	reg registry.Registration,
	fallbackID uint32,
) (*registry.Receipt, error) {
	m.RegisterCalls++
	if m.RegisterNpoFunc != nil {
		return m.RegisterNpoFunc(ctx, caller, reg, fallbackID)
	}
	return &registry.Receipt{TokenID: fallbackID, TxHash: common.HexToHash("0x01"), BlockNumber: 1}, nil
}

func (m *MockRegistry) GetNpo(ctx context.Context, owner common.Address) (*registry.NPO, error) {
	if m.GetNpoFunc != nil {
		return m.GetNpoFunc(ctx, owner)
	}
	return nil, registry.ErrNotFound
}

func (m *MockRegistry) GetTokenMetadata(ctx context.Context, tokenID uint32) (*registry.TokenMetadata, error) {
	if m.GetTokenMetadataFunc != nil {
		return m.GetTokenMetadataFunc(ctx, tokenID)
	}
	return nil, registry.ErrNotFound
}

func (m *MockRegistry) GetNpoCount(ctx context.Context) (uint32, error) {
	if m.GetNpoCountFunc != nil {
		return m.GetNpoCountFunc(ctx)
	}
	return 0, nil
}

func (m *MockRegistry) IsRegisteredNpo(ctx context.Context, account common.Address) (bool, error) {
	if m.IsRegisteredNpoFunc != nil {
		return m.IsRegisteredNpoFunc(ctx, account)
	}
	return false, nil
}

func (m *MockRegistry) Close() {
	m.Closed = true
}

// MockVerifiers is a VerifierSource returning a fixed result.
type MockVerifiers struct {
	List  []string
	Err   error
	Calls int
}

func (m *MockVerifiers) Verifiers(context.Context) ([]string, error) {
	m.Calls++
	return m.List, m.Err
}

type nopSigner struct{}

func (nopSigner) SignExtrinsic(context.Context, string, *assethub.Call) (string, error) {
	return "0x00", nil
}

func nopContractSigner(_ common.Address, tx *types.Transaction) (*types.Transaction, error) {
	return tx, nil
}
