// Package governance sequences NPO registration across the registry contract
// and the asset ledger, and distributes the governance token supply.
//
// A registration runs INIT -> CONTRACT_REGISTERED -> ASSET_CREATED ->
// TOKENS_DISTRIBUTED; any failing step ends in FAILED. Nothing is retried or
// rolled back. One Coordinator runs at most one workflow at a time.
package governance

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/impactchain/npo-governance/internal/metrics"
	"github.com/impactchain/npo-governance/pkg/assethub"
	"github.com/impactchain/npo-governance/pkg/journal"
	"github.com/impactchain/npo-governance/pkg/registry"
)

// Ledger is the asset ledger surface used by the coordinator.
// *assethub.Client satisfies it.
type Ledger interface {
	Connect(ctx context.Context, endpoint string) error
	SetAccount(account assethub.Account)
	CreateAsset(ctx context.Context, id uint32, admin string, minBalance *big.Int, metadata assethub.AssetMetadata) (string, error)
	MintTokens(ctx context.Context, id uint32, recipient string, amount *big.Int) (string, error)
	GetBalance(ctx context.Context, id uint32, address string) ([]byte, error)
	Close() error
}

// Registry is the registry contract surface used by the coordinator.
// *registry.Contract satisfies it.
type Registry interface {
	SimulateRegister(ctx context.Context, caller common.Address, reg registry.Registration) (uint32, error)
	RegisterNpo(ctx context.Context, caller registry.Caller, reg registry.Registration, fallbackID uint32) (*registry.Receipt, error)
	GetNpo(ctx context.Context, owner common.Address) (*registry.NPO, error)
	GetTokenMetadata(ctx context.Context, tokenID uint32) (*registry.TokenMetadata, error)
	GetNpoCount(ctx context.Context) (uint32, error)
	IsRegisteredNpo(ctx context.Context, account common.Address) (bool, error)
	Close()
}

// Account is the signing identity used on both chains.
type Account struct {
	// Address is the SS58 ledger address; it administers created assets and
	// receives the organization share.
	Address string
	Signer  assethub.Signer
	// Contract signs registry transactions.
	Contract registry.Caller
}

// InitParams locate both chains and the registry contract.
type InitParams struct {
	ContractEndpoint string
	AssetEndpoint    string
	ContractAddress  string
	// ContractABI is the registry ABI JSON; empty selects registry.DefaultABI.
	ContractABI string
}

// RegisterRequest carries the organization and governance token fields.
type RegisterRequest struct {
	Name             string
	DescriptionCID   string
	LegalID          string
	Categories       []string
	Country          string
	TokenName        string
	TokenSymbol      string
	TokenDescription string
	TokenIconCID     string
}

// RegistrationResult is the outcome of a completed registration.
type RegistrationResult struct {
	NPORegistered  bool          `json:"npo_registered"`
	TokenID        uint32        `json:"token_id"`
	TokenCreated   bool          `json:"token_created"`
	WorkflowID     string        `json:"workflow_id"`
	RegistrationTx string        `json:"registration_tx"`
	AssetTx        string        `json:"asset_tx"`
	Distribution   Distribution  `json:"distribution"`
	Mints          []MintReceipt `json:"mints"`
}

// Coordinator owns one contract session, one ledger session and one signing
// account.
type Coordinator struct {
	mu        sync.RWMutex
	busy      bool
	registry  Registry
	verifiers VerifierSource
	account   *Account
	issued    map[uint32]struct{}

	ledger     Ledger
	dial       RegistryDialer
	newSource  VerifierFactory
	journal    journal.Store
	tokenomics Tokenomics
	logger     *zap.Logger
}

// New creates an uninitialized coordinator.
func New(opts ...Option) (*Coordinator, error) {
	s := applyOptions(opts)
	if err := s.tokenomics.validate(); err != nil {
		return nil, fmt.Errorf("invalid tokenomics: %w", err)
	}
	return &Coordinator{
		issued:     make(map[uint32]struct{}),
		ledger:     s.ledger,
		dial:       s.dial,
		newSource:  s.verifiers,
		journal:    s.journal,
		tokenomics: s.tokenomics,
		logger:     s.logger,
	}, nil
}

// Initialize connects to the contract chain, binds the registry contract and
// connects the asset ledger. On failure no new session is retained; on success
// previous sessions are closed.
func (c *Coordinator) Initialize(ctx context.Context, p InitParams) error {
	if !common.IsHexAddress(p.ContractAddress) {
		return fmt.Errorf("invalid registry contract address %q", p.ContractAddress)
	}
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	reg, err := c.dial(ctx, p.ContractEndpoint, common.HexToAddress(p.ContractAddress), p.ContractABI)
	if err != nil {
		return fmt.Errorf("failed to initialize registry: %w", err)
	}

	verifiers, err := c.newSource(reg)
	if err != nil {
		reg.Close()
		return fmt.Errorf("failed to initialize verifier source: %w", err)
	}

	if err := c.ledger.Connect(ctx, p.AssetEndpoint); err != nil {
		reg.Close()
		return fmt.Errorf("failed to initialize asset ledger: %w", err)
	}

	c.mu.Lock()
	prev := c.registry
	c.registry = reg
	c.verifiers = verifiers
	c.mu.Unlock()

	if prev != nil {
		prev.Close()
	}

	c.logger.Info("NPO governance coordinator initialized",
		zap.String("contract_endpoint", p.ContractEndpoint),
		zap.String("asset_endpoint", p.AssetEndpoint),
		zap.String("registry", p.ContractAddress))
	return nil
}

// SetAccount binds account on both the contract path and the ledger.
func (c *Coordinator) SetAccount(account Account) error {
	if _, _, err := assethub.DecodeAddress(account.Address); err != nil {
		return fmt.Errorf("invalid ledger address: %w", err)
	}
	if account.Signer == nil {
		return errors.New("account has no ledger signer")
	}
	if account.Contract.Signer == nil {
		return errors.New("account has no contract signer")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		metrics.BusyRejections.Inc()
		return ErrBusy
	}

	c.account = &account
	c.ledger.SetAccount(assethub.Account{Address: account.Address, Signer: account.Signer})

	c.logger.Info("Signing account set",
		zap.String("address", account.Address),
		zap.String("contract_address", account.Contract.From.Hex()))
	return nil
}

// Close closes both sessions. It fails with ErrBusy while a workflow runs.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		metrics.BusyRejections.Inc()
		return ErrBusy
	}
	reg := c.registry
	c.registry = nil
	c.verifiers = nil
	c.mu.Unlock()

	if reg != nil {
		reg.Close()
	}
	return c.ledger.Close()
}

// RegisterNPO registers the organization, creates its governance token and
// distributes the supply. A reverted registration returns ErrRegistrationFailed
// and an unreachable contract chain ErrContractUnavailable, both before any
// ledger call; a failed mint returns *DistributionError.
func (c *Coordinator) RegisterNPO(ctx context.Context, req RegisterRequest) (*RegistrationResult, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.release()

	reg, verifiers, account, err := c.session()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	id := uuid.NewString()
	run := &workflowRun{
		c: c,
		wf: &journal.Workflow{
			ID:           id,
			Organization: account.Address,
			Name:         req.Name,
			State:        journal.StateInit,
		},
		logger: c.logger.With(zap.String("workflow_id", id), zap.String("npo", req.Name)),
	}
	run.record(ctx, func(ctx context.Context) error { return c.journal.CreateWorkflow(ctx, run.wf) })

	result, err := run.execute(ctx, reg, verifiers, account, req)
	metrics.RegistrationDuration.WithLabelValues(string(run.wf.State)).Observe(time.Since(start).Seconds())
	if err != nil {
		run.fail(ctx, err)
		return nil, err
	}
	return result, nil
}

// GetNPODetails returns the organization registered for owner.
func (c *Coordinator) GetNPODetails(ctx context.Context, owner string) (*registry.NPO, error) {
	reg, err := c.registryHandle()
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(owner) {
		return nil, fmt.Errorf("invalid contract address %q", owner)
	}
	return reg.GetNpo(ctx, common.HexToAddress(owner))
}

// GetTokenMetadata returns the governance token descriptor for tokenID.
func (c *Coordinator) GetTokenMetadata(ctx context.Context, tokenID uint32) (*registry.TokenMetadata, error) {
	reg, err := c.registryHandle()
	if err != nil {
		return nil, err
	}
	return reg.GetTokenMetadata(ctx, tokenID)
}

// GetNPOCount returns the number of registered organizations.
func (c *Coordinator) GetNPOCount(ctx context.Context) (uint32, error) {
	reg, err := c.registryHandle()
	if err != nil {
		return 0, err
	}
	return reg.GetNpoCount(ctx)
}

// IsRegisteredNPO reports whether account has registered an organization.
func (c *Coordinator) IsRegisteredNPO(ctx context.Context, account string) (bool, error) {
	reg, err := c.registryHandle()
	if err != nil {
		return false, err
	}
	if !common.IsHexAddress(account) {
		return false, fmt.Errorf("invalid contract address %q", account)
	}
	return reg.IsRegisteredNpo(ctx, common.HexToAddress(account))
}

// GetBalance returns the raw asset account record of address for tokenID.
func (c *Coordinator) GetBalance(ctx context.Context, tokenID uint32, address string) ([]byte, error) {
	raw, err := c.ledger.GetBalance(ctx, tokenID, address)
	if errors.Is(err, assethub.ErrUninitialized) {
		return nil, fmt.Errorf("%w: %w", ErrNotInitialized, err)
	}
	return raw, err
}

// Workflow returns the journal record of a registration run with its mints.
func (c *Coordinator) Workflow(ctx context.Context, id string) (*journal.Workflow, []*journal.Mint, error) {
	wf, err := c.journal.GetWorkflow(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	mints, err := c.journal.ListMints(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return wf, mints, nil
}

// Ready reports whether both sessions and the signing account are in place.
func (c *Coordinator) Ready() bool {
	_, _, _, err := c.session()
	return err == nil
}

// Tokenomics returns the supply constants in use.
func (c *Coordinator) Tokenomics() Tokenomics {
	return c.tokenomics
}

func (c *Coordinator) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		metrics.BusyRejections.Inc()
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *Coordinator) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *Coordinator) session() (Registry, VerifierSource, *Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.registry == nil {
		return nil, nil, nil, fmt.Errorf("%w: contract session not established", ErrNotInitialized)
	}
	if c.account == nil {
		return nil, nil, nil, fmt.Errorf("%w: no signing account", ErrNotInitialized)
	}
	return c.registry, c.verifiers, c.account, nil
}

func (c *Coordinator) registryHandle() (Registry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.registry == nil {
		return nil, fmt.Errorf("%w: contract session not established", ErrNotInitialized)
	}
	return c.registry, nil
}

// claimTokenID marks id as issued, failing if it was issued before.
func (c *Coordinator) claimTokenID(id uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.issued[id]; ok {
		return fmt.Errorf("%w: %d", ErrTokenIDReused, id)
	}
	c.issued[id] = struct{}{}
	return nil
}
