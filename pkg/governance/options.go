package governance

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/impactchain/npo-governance/pkg/assethub"
	"github.com/impactchain/npo-governance/pkg/journal"
	"github.com/impactchain/npo-governance/pkg/registry"
)

const (
	// DefaultOrganizationPercent is the organization's share of the supply.
	DefaultOrganizationPercent = 75
	// DefaultTokenDecimals is the fixed governance token precision.
	DefaultTokenDecimals = 18
)

var (
	// DefaultTotalSupply is 1,000,000 whole tokens in base units.
	DefaultTotalSupply = new(big.Int).Mul(big.NewInt(1_000_000), new(big.Int).Exp(big.NewInt(10), big.NewInt(DefaultTokenDecimals), nil))
	// DefaultMinBalance is the asset's minimum balance, in base units.
	DefaultMinBalance = big.NewInt(1_000_000)
)

// Tokenomics are the named supply constants of every governance token.
type Tokenomics struct {
	// TotalSupply is in base units.
	TotalSupply         *big.Int
	OrganizationPercent uint
	Decimals            uint8
	MinBalance          *big.Int
}

// DefaultTokenomics returns the standard supply constants.
func DefaultTokenomics() Tokenomics {
	return Tokenomics{
		TotalSupply:         new(big.Int).Set(DefaultTotalSupply),
		OrganizationPercent: DefaultOrganizationPercent,
		Decimals:            DefaultTokenDecimals,
		MinBalance:          new(big.Int).Set(DefaultMinBalance),
	}
}

func (t Tokenomics) validate() error {
	if t.TotalSupply == nil || t.TotalSupply.Sign() <= 0 {
		return fmt.Errorf("total supply must be positive")
	}
	if t.OrganizationPercent > 100 {
		return fmt.Errorf("organization percent %d exceeds 100", t.OrganizationPercent)
	}
	if t.MinBalance == nil || t.MinBalance.Sign() <= 0 {
		return fmt.Errorf("min balance must be positive")
	}
	return nil
}

// RegistryDialer opens a contract chain session and binds the registry contract.
type RegistryDialer func(ctx context.Context, endpoint string, address common.Address, contractABI string) (Registry, error)

// DialRegistry is the default RegistryDialer: an ethclient session bound with registry.New.
func DialRegistry(opts ...registry.Option) RegistryDialer {
	return func(ctx context.Context, endpoint string, address common.Address, contractABI string) (Registry, error) {
		client, err := ethclient.DialContext(ctx, endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to contract chain: %w", err)
		}
		contract, err := registry.New(client, address, contractABI, opts...)
		if err != nil {
			client.Close()
			return nil, err
		}
		return contract, nil
	}
}

// Option configures the Coordinator.
type Option func(*settings)

type settings struct {
	logger     *zap.Logger
	ledger     Ledger
	dial       RegistryDialer
	verifiers  VerifierFactory
	journal    journal.Store
	tokenomics Tokenomics
}

// WithLogger sets a custom logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithLedger replaces the asset ledger client.
func WithLedger(l Ledger) Option {
	return func(s *settings) { s.ledger = l }
}

// WithRegistryDialer replaces how the registry contract session is opened.
func WithRegistryDialer(d RegistryDialer) Option {
	return func(s *settings) { s.dial = d }
}

// WithVerifiers sets how the verifier set is resolved.
func WithVerifiers(f VerifierFactory) Option {
	return func(s *settings) { s.verifiers = f }
}

// WithJournal records workflows in store.
func WithJournal(store journal.Store) Option {
	return func(s *settings) { s.journal = store }
}

// WithTokenomics overrides the supply constants.
func WithTokenomics(t Tokenomics) Option {
	return func(s *settings) { s.tokenomics = t }
}

func applyOptions(opts []Option) settings {
	s := settings{
		logger:     zap.NewNop(),
		dial:       DialRegistry(),
		verifiers:  FixedVerifiers(StaticVerifiers(nil)),
		journal:    journal.NewMemoryStore(),
		tokenomics: DefaultTokenomics(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.ledger == nil {
		s.ledger = assethub.New(assethub.WithLogger(s.logger))
	}
	return s
}
