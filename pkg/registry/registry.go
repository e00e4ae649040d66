// Package registry is a typed client for the NPO registry contract on the contract chain.
package registry

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/impactchain/npo-governance/internal/metrics"
)

var (
	// ErrContractReverted is returned when the contract rejects a call or transaction.
	ErrContractReverted = errors.New("contract call reverted")
	// ErrNotFound is returned when the contract holds no record for the requested key.
	ErrNotFound = errors.New("not found")
)

// Backend is the subset of the contract chain client used by the registry.
// *ethclient.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	Close()
}

// Contract is a bound NPO registry contract. Every call and transaction runs
// under the same fixed gas ceiling.
type Contract struct {
	backend Backend
	address common.Address
	abi     abi.ABI

	gasLimit       uint64
	receiptTimeout time.Duration
	pollInterval   time.Duration
	logger         *zap.Logger
}

// New binds the registry contract at address. An empty contractABI selects DefaultABI.
func New(backend Backend, address common.Address, contractABI string, opts ...Option) (*Contract, error) {
	if contractABI == "" {
		contractABI = DefaultABI
	}
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse registry ABI: %w", err)
	}
	for _, m := range []string{methodRegisterNpo, methodGetNpo, methodGetTokenMetadata} {
		if _, ok := parsed.Methods[m]; !ok {
			return nil, fmt.Errorf("registry ABI is missing method %q", m)
		}
	}
	if err := checkOutputs(parsed); err != nil {
		return nil, err
	}

	s := applyOptions(opts)
	return &Contract{
		backend:        backend,
		address:        address,
		abi:            parsed,
		gasLimit:       s.gasLimit,
		receiptTimeout: s.receiptTimeout,
		pollInterval:   s.pollInterval,
		logger:         s.logger,
	}, nil
}

// Address returns the bound contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// GasLimit returns the gas ceiling applied to every call.
func (c *Contract) GasLimit() uint64 {
	return c.gasLimit
}

// Close closes the underlying contract chain session.
func (c *Contract) Close() {
	c.backend.Close()
}

// SimulateRegister dry-runs registerNpo as caller and returns the token id the
// contract would assign.
func (c *Contract) SimulateRegister(ctx context.Context, caller common.Address, reg Registration) (uint32, error) {
	out, err := c.call(ctx, caller, methodRegisterNpo, reg.args()...)
	if err != nil {
		return 0, err
	}
	return decodeResult[uint32](methodRegisterNpo, out)
}

// RegisterNpo submits registerNpo as a legacy transaction and waits for its receipt.
// The token id is read from the NpoRegistered event; fallbackID is used when the
// receipt carries no such event.
func (c *Contract) RegisterNpo(ctx context.Context, caller Caller, reg Registration, fallbackID uint32) (*Receipt, error) {
	if caller.Signer == nil {
		return nil, errors.New("registry: caller has no signer")
	}

	input, err := c.abi.Pack(methodRegisterNpo, reg.args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", methodRegisterNpo, err)
	}

	receipt, err := c.transact(ctx, caller, methodRegisterNpo, input)
	if err != nil {
		return nil, err
	}

	tokenID, ok := c.registeredTokenID(receipt.Logs)
	if !ok {
		c.logger.Warn("NpoRegistered event not found in receipt, using simulated token id",
			zap.String("tx_hash", receipt.TxHash.Hex()),
			zap.Uint32("token_id", fallbackID))
		tokenID = fallbackID
	}

	out := &Receipt{TokenID: tokenID, TxHash: receipt.TxHash}
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return out, nil
}

// GetNpo returns the organization registered for owner.
func (c *Contract) GetNpo(ctx context.Context, owner common.Address) (*NPO, error) {
	out, err := c.call(ctx, common.Address{}, methodGetNpo, owner)
	if err != nil {
		return nil, err
	}
	t, err := decodeResult[npoTuple](methodGetNpo, out)
	if err != nil {
		return nil, err
	}
	if t.Owner == (common.Address{}) {
		return nil, fmt.Errorf("npo %s: %w", owner.Hex(), ErrNotFound)
	}
	return t.toNPO(), nil
}

// GetTokenMetadata returns the governance token descriptor for tokenID.
func (c *Contract) GetTokenMetadata(ctx context.Context, tokenID uint32) (*TokenMetadata, error) {
	out, err := c.call(ctx, common.Address{}, methodGetTokenMetadata, tokenID)
	if err != nil {
		return nil, err
	}
	t, err := decodeResult[tokenMetadataTuple](methodGetTokenMetadata, out)
	if err != nil {
		return nil, err
	}
	if t.Name == "" && t.Symbol == "" {
		return nil, fmt.Errorf("token %d: %w", tokenID, ErrNotFound)
	}
	return t.toMetadata(), nil
}

// GetAuditorRegistry returns the address of the auditor registry contract.
func (c *Contract) GetAuditorRegistry(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, common.Address{}, methodGetAuditorRegistry)
	if err != nil {
		return common.Address{}, err
	}
	return decodeResult[common.Address](methodGetAuditorRegistry, out)
}

// GetNpoCount returns the number of registered organizations.
func (c *Contract) GetNpoCount(ctx context.Context) (uint32, error) {
	out, err := c.call(ctx, common.Address{}, methodGetNpoCount)
	if err != nil {
		return 0, err
	}
	return decodeResult[uint32](methodGetNpoCount, out)
}

// IsRegisteredNpo reports whether account has registered an organization.
func (c *Contract) IsRegisteredNpo(ctx context.Context, account common.Address) (bool, error) {
	out, err := c.call(ctx, common.Address{}, methodIsRegisteredNpo, account)
	if err != nil {
		return false, err
	}
	return decodeResult[bool](methodIsRegisteredNpo, out)
}

func (c *Contract) call(ctx context.Context, from common.Address, method string, args ...any) (out []any, err error) {
	defer func() {
		metrics.ContractCalls.WithLabelValues(method, metrics.Status(err)).Inc()
	}()

	if _, ok := c.abi.Methods[method]; !ok {
		return nil, fmt.Errorf("registry ABI has no method %q", method)
	}
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	to := c.address
	raw, err := c.backend.CallContract(ctx, ethereum.CallMsg{
		From: from,
		To:   &to,
		Gas:  c.gasLimit,
		Data: input,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, classifyCallError(err))
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w: empty return data", method, ErrContractReverted)
	}

	out, err = c.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no return values", method)
	}
	return out, nil
}

func (c *Contract) transact(ctx context.Context, caller Caller, method string, input []byte) (receipt *types.Receipt, err error) {
	defer func() {
		metrics.ContractCalls.WithLabelValues(method+"_tx", metrics.Status(err)).Inc()
	}()

	nonce, err := c.backend.PendingNonceAt(ctx, caller.From)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas price: %w", err)
	}

	to := c.address
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      c.gasLimit,
		To:       &to,
		Value:    new(big.Int),
		Data:     input,
	})
	signed, err := caller.Signer(caller.From, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s transaction: %w", method, err)
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send %s transaction: %w", method, classifyCallError(err))
	}

	c.logger.Info("Registry transaction submitted",
		zap.String("method", method),
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.Uint64("nonce", nonce))

	receipt, err = c.waitReceipt(ctx, signed.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s transaction %s: %w", method, signed.Hash().Hex(), ErrContractReverted)
	}
	return receipt, nil
}

func (c *Contract) waitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.receiptTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get receipt for %s: %w", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for receipt of %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Contract) registeredTokenID(logs []*types.Log) (uint32, bool) {
	event, ok := c.abi.Events[eventNpoRegistered]
	if !ok {
		return 0, false
	}
	for _, l := range logs {
		if l.Address != c.address || len(l.Topics) < 3 || l.Topics[0] != event.ID {
			continue
		}
		return uint32(new(big.Int).SetBytes(l.Topics[2].Bytes()).Uint64()), true
	}
	return 0, false
}

// checkOutputs rejects an ABI whose methods return types other than the ones
// DefaultABI declares for them. Methods absent from the ABI are not checked.
func checkOutputs(parsed abi.ABI) error {
	want, err := abi.JSON(strings.NewReader(DefaultABI))
	if err != nil {
		return fmt.Errorf("failed to parse default registry ABI: %w", err)
	}
	for name, expected := range want.Methods {
		got, ok := parsed.Methods[name]
		if !ok {
			continue
		}
		if g, w := outputSignature(got), outputSignature(expected); g != w {
			return fmt.Errorf("registry ABI method %q returns %s, want %s", name, g, w)
		}
	}
	return nil
}

func outputSignature(m abi.Method) string {
	types := make([]string, len(m.Outputs))
	for i, o := range m.Outputs {
		types[i] = o.Type.String()
	}
	return "(" + strings.Join(types, ",") + ")"
}

// decodeResult converts the first unpacked value of method into T.
func decodeResult[T any](method string, out []any) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to decode %s result: %v", method, r)
		}
	}()
	converted, ok := abi.ConvertType(out[0], new(T)).(*T)
	if !ok {
		return v, fmt.Errorf("failed to decode %s result as %T", method, v)
	}
	return *converted, nil
}

func (r Registration) args() []any {
	categories := r.Categories
	if categories == nil {
		categories = []string{}
	}
	return []any{
		r.Name,
		r.DescriptionCID,
		r.LegalID,
		categories,
		r.Country,
		r.TokenName,
		r.TokenSymbol,
		r.TokenDescription,
		r.TokenIconCID,
	}
}

// classifyCallError maps node-side revert errors onto ErrContractReverted,
// decoding the revert reason when the node returns one.
func classifyCallError(err error) error {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if s, ok := dataErr.ErrorData().(string); ok {
			if data, decErr := hexutil.Decode(s); decErr == nil {
				if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
					return fmt.Errorf("%w: %s", ErrContractReverted, reason)
				}
			}
		}
		return fmt.Errorf("%w: %v", ErrContractReverted, err)
	}
	if strings.Contains(err.Error(), "execution reverted") {
		return fmt.Errorf("%w: %v", ErrContractReverted, err)
	}
	return err
}
