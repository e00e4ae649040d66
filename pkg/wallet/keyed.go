package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/impactchain/npo-governance/pkg/registry"
)

// NewContractCaller builds the contract-chain identity from a hex-encoded
// secp256k1 private key (with or without 0x prefix).
func NewContractCaller(hexKey string, chainID int64) (registry.Caller, error) {
	key, err := parseKey(hexKey)
	if err != nil {
		return registry.Caller{}, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(chainID))
	if err != nil {
		return registry.Caller{}, fmt.Errorf("failed to create transactor: %w", err)
	}
	return registry.Caller{From: opts.From, Signer: opts.Signer}, nil
}

func parseKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, fmt.Errorf("contract key is empty")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}
	return key, nil
}
