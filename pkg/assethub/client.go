// Package assethub implements the asset ledger access layer.
//
// It keeps a single JSON-RPC session to one ledger endpoint and exposes the
// fungible asset lifecycle: create, mint, transfer, delegated transfers and
// raw balance queries. Extrinsics are encoded and signed by an external
// Signer; this package never holds key material.
package assethub

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/impactchain/npo-governance/internal/metrics"
)

// ErrUninitialized is returned when an operation runs before Connect and SetAccount.
var ErrUninitialized = errors.New("API or account not initialized")

const (
	rpcSubmitExtrinsic = "author_submitExtrinsic"
	rpcGetStorage      = "state_getStorage"
)

// Signer encodes and signs a runtime call on behalf of address and returns
// the hex-encoded signed extrinsic ready for submission.
type Signer interface {
	SignExtrinsic(ctx context.Context, address string, call *Call) (string, error)
}

// Account is the signing identity bound to the client.
type Account struct {
	Address string
	Signer  Signer
}

// Client is the asset ledger client. It holds at most one session and one
// bound account; both are replaced, not merged, by later calls.
type Client struct {
	mu       sync.RWMutex
	rpc      *rpc.Client
	endpoint string
	account  *Account

	pallet string
	dial   DialFunc
	logger *zap.Logger
}

// New creates a disconnected ledger client.
func New(opts ...Option) *Client {
	s := applyOptions(opts)
	return &Client{
		pallet: s.pallet,
		dial:   s.dial,
		logger: s.logger,
	}
}

// Connect opens a session to endpoint. A previous session is closed once the
// new one is established.
func (c *Client) Connect(ctx context.Context, endpoint string) error {
	conn, err := c.dial(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("failed to connect to asset ledger: %w", err)
	}

	c.mu.Lock()
	prev := c.rpc
	c.rpc = conn
	c.endpoint = endpoint
	c.mu.Unlock()

	if prev != nil {
		prev.Close()
	}

	c.logger.Info("Connected to asset ledger", zap.String("endpoint", endpoint))
	return nil
}

// SetAccount binds the signing identity used for all subsequent mutating calls.
func (c *Client) SetAccount(account Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.account = &account
}

// Close closes the current session, if any.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rpc != nil {
		c.rpc.Close()
		c.rpc = nil
	}
	return nil
}

// CreateAsset creates asset id and sets its metadata in one batch_all extrinsic.
func (c *Client) CreateAsset(
	ctx context.Context,
	id uint32,
	admin string,
	minBalance *big.Int,
	metadata AssetMetadata,
) (string, error) {
	if _, _, err := c.session(); err != nil {
		return "", err
	}
	if err := validateAddresses(admin); err != nil {
		return "", err
	}

	batch := batchAll(
		c.assetCall(methodCreate, id, admin, amountArg(minBalance)),
		c.assetCall(methodSetMetadata, id, metadata.Name, metadata.Symbol, metadata.Decimals),
	)
	hash, err := c.submit(ctx, "create_asset", batch)
	if err != nil {
		return "", fmt.Errorf("create asset %d: %w", id, err)
	}

	c.logger.Info("Asset creation submitted",
		zap.Uint32("asset_id", id),
		zap.String("admin", admin),
		zap.String("symbol", metadata.Symbol),
		zap.String("tx_hash", hash))
	return hash, nil
}

// MintTokens mints amount of asset id to recipient. Supply caps are the caller's concern.
func (c *Client) MintTokens(ctx context.Context, id uint32, recipient string, amount *big.Int) (string, error) {
	if _, _, err := c.session(); err != nil {
		return "", err
	}
	if err := validateAddresses(recipient); err != nil {
		return "", err
	}

	hash, err := c.submit(ctx, "mint", c.assetCall(methodMint, id, recipient, amountArg(amount)))
	if err != nil {
		return "", fmt.Errorf("mint tokens: %w", err)
	}

	c.logger.Info("Mint submitted",
		zap.Uint32("asset_id", id),
		zap.String("recipient", recipient),
		zap.String("amount", amountArg(amount)),
		zap.String("tx_hash", hash))
	return hash, nil
}

// TransferTokens transfers amount of asset id from the bound account to target.
func (c *Client) TransferTokens(ctx context.Context, id uint32, target string, amount *big.Int) (string, error) {
	if _, _, err := c.session(); err != nil {
		return "", err
	}
	if err := validateAddresses(target); err != nil {
		return "", err
	}

	hash, err := c.submit(ctx, "transfer", c.assetCall(methodTransfer, id, target, amountArg(amount)))
	if err != nil {
		return "", fmt.Errorf("transfer tokens: %w", err)
	}
	return hash, nil
}

// ApproveTransfer lets delegate move up to amount of asset id on behalf of the bound account.
func (c *Client) ApproveTransfer(ctx context.Context, id uint32, delegate string, amount *big.Int) (string, error) {
	if _, _, err := c.session(); err != nil {
		return "", err
	}
	if err := validateAddresses(delegate); err != nil {
		return "", err
	}

	hash, err := c.submit(ctx, "approve_transfer", c.assetCall(methodApproveTransfer, id, delegate, amountArg(amount)))
	if err != nil {
		return "", fmt.Errorf("approve transfer: %w", err)
	}
	return hash, nil
}

// TransferApproved moves amount of asset id from owner to destination using an
// approval previously granted to the bound account.
func (c *Client) TransferApproved(
	ctx context.Context,
	id uint32,
	owner string,
	destination string,
	amount *big.Int,
) (string, error) {
	if _, _, err := c.session(); err != nil {
		return "", err
	}
	if err := validateAddresses(owner, destination); err != nil {
		return "", err
	}

	hash, err := c.submit(ctx, "transfer_approved",
		c.assetCall(methodTransferApproved, id, owner, destination, amountArg(amount)))
	if err != nil {
		return "", fmt.Errorf("transfer approved tokens: %w", err)
	}
	return hash, nil
}

// GetBalance returns the raw SCALE-encoded asset account record of address for
// asset id, or nil when the account holds none. Decoding is left to the caller
// (see DecodeBalance). Only a session is required.
func (c *Client) GetBalance(ctx context.Context, id uint32, address string) ([]byte, error) {
	c.mu.RLock()
	conn := c.rpc
	c.mu.RUnlock()
	if conn == nil {
		return nil, ErrUninitialized
	}

	accountID, err := AccountID(address)
	if err != nil {
		return nil, err
	}
	key, err := AccountStorageKey(c.pallet, id, accountID)
	if err != nil {
		return nil, err
	}

	var raw *string
	err = conn.CallContext(ctx, &raw, rpcGetStorage, hexutil.Encode(key))
	metrics.LedgerCalls.WithLabelValues("get_balance", metrics.Status(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	decoded, err := hexutil.Decode(*raw)
	if err != nil {
		return nil, fmt.Errorf("get balance: decode storage value: %w", err)
	}
	return decoded, nil
}

func (c *Client) session() (*rpc.Client, *Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rpc == nil || c.account == nil || c.account.Signer == nil {
		return nil, nil, ErrUninitialized
	}
	return c.rpc, c.account, nil
}

// submit signs call with the bound account and submits it. The returned hash
// is the submission hash; inclusion is not awaited.
func (c *Client) submit(ctx context.Context, op string, call *Call) (hash string, err error) {
	defer func() {
		metrics.LedgerCalls.WithLabelValues(op, metrics.Status(err)).Inc()
	}()

	conn, account, err := c.session()
	if err != nil {
		return "", err
	}

	extrinsic, err := account.Signer.SignExtrinsic(ctx, account.Address, call)
	if err != nil {
		return "", fmt.Errorf("sign extrinsic: %w", err)
	}

	if err := conn.CallContext(ctx, &hash, rpcSubmitExtrinsic, extrinsic); err != nil {
		return "", err
	}
	return hash, nil
}

func validateAddresses(addrs ...string) error {
	for _, a := range addrs {
		if _, _, err := DecodeAddress(a); err != nil {
			return fmt.Errorf("address %q: %w", a, err)
		}
	}
	return nil
}
