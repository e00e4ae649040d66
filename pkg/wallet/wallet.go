package wallet

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/impactchain/npo-governance/pkg/assethub"
	"github.com/impactchain/npo-governance/pkg/config"
	"github.com/impactchain/npo-governance/pkg/governance"
)

// LoadAccount assembles the coordinator's signing account. Secrets are read
// from the environment variables the config names, never from the file.
func LoadAccount(cfg *config.WalletConfig, chainID int64, logger *zap.Logger) (governance.Account, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, _, err := assethub.DecodeAddress(cfg.Address); err != nil {
		return governance.Account{}, fmt.Errorf("invalid wallet address: %w", err)
	}

	keyHex, err := contractKey(cfg)
	if err != nil {
		return governance.Account{}, err
	}
	caller, err := NewContractCaller(keyHex, chainID)
	if err != nil {
		return governance.Account{}, err
	}

	token := os.Getenv(cfg.SignerTokenEnv)
	if token == "" {
		logger.Warn("Signer token not set, signing requests are unauthenticated",
			zap.String("env", cfg.SignerTokenEnv))
	}

	logger.Info("Wallet loaded",
		zap.String("address", cfg.Address),
		zap.String("contract_address", caller.From.Hex()),
		zap.String("signer_url", cfg.SignerURL))

	return governance.Account{
		Address:  cfg.Address,
		Signer:   NewRemoteSigner(cfg.SignerURL, token, cfg.SignerTimeout, logger),
		Contract: caller,
	}, nil
}

func contractKey(cfg *config.WalletConfig) (string, error) {
	if cfg.SealedKeyFile == "" {
		keyHex := os.Getenv(cfg.ContractKeyEnv)
		if keyHex == "" {
			return "", fmt.Errorf("contract key env %s is not set", cfg.ContractKeyEnv)
		}
		return keyHex, nil
	}

	sealed, err := os.ReadFile(cfg.SealedKeyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read sealed key: %w", err)
	}
	passphrase := os.Getenv(cfg.PassphraseEnv)
	if passphrase == "" {
		return "", fmt.Errorf("passphrase env %s is not set", cfg.PassphraseEnv)
	}
	key, err := OpenKey(strings.TrimSpace(string(sealed)), []byte(passphrase))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}
