package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the governor service configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Contracts  ContractsConfig  `yaml:"contracts"`
	AssetHub   AssetHubConfig   `yaml:"asset_hub"`
	Governance GovernanceConfig `yaml:"governance"`
	Wallet     WalletConfig     `yaml:"wallet"`
	Auth       AuthConfig       `yaml:"auth"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"5m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
	// RequestTimeout bounds a single API request, including a full registration workflow.
	RequestTimeout time.Duration `yaml:"request_timeout" default:"4m"`
}

// DatabaseConfig contains the workflow journal database settings.
// The journal is disabled when Enabled is false.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host" default:"localhost" validate:"required_if=Enabled true"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"governor"`
	SSLMode  string `yaml:"ssl_mode" default:"disable" validate:"oneof=disable require verify-full"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Path    string `yaml:"path" default:"/metrics"`
}

// ContractsConfig contains the contract chain settings
type ContractsConfig struct {
	RPCURL          string `yaml:"rpc_url" validate:"required"`
	ChainID         int64  `yaml:"chain_id" validate:"required,min=1"`
	RegistryAddress string `yaml:"registry_address" validate:"required,eth_addr"`
	// ABIFile is optional; the built-in registry ABI is used when empty.
	ABIFile string `yaml:"abi_file"`
	// GasLimit is the fixed ceiling applied to every registry call and transaction.
	// It is deliberately over-provisioned instead of estimated.
	GasLimit            uint64        `yaml:"gas_limit" default:"30000000" validate:"min=21000"`
	ReceiptTimeout      time.Duration `yaml:"receipt_timeout" default:"2m"`
	ReceiptPollInterval time.Duration `yaml:"receipt_poll_interval" default:"2s"`
}

// AssetHubConfig contains the asset ledger settings
type AssetHubConfig struct {
	RPCURL     string `yaml:"rpc_url" default:"wss://rococo-asset-hub-rpc.polkadot.io" validate:"required"`
	Pallet     string `yaml:"pallet" default:"Assets"`
	SS58Prefix uint16 `yaml:"ss58_prefix" default:"42" validate:"max=16383"`
}

// GovernanceConfig contains the token distribution constants
type GovernanceConfig struct {
	// TotalSupply is expressed in whole tokens and scaled by 10^TokenDecimals.
	TotalSupply           string          `yaml:"total_supply" default:"1000000" validate:"required,numeric"`
	OrganizationPercent   uint            `yaml:"organization_percent" default:"75" validate:"max=100"`
	TokenDecimals         uint8           `yaml:"token_decimals" default:"18"`
	MinBalance            string          `yaml:"min_balance" default:"1000000" validate:"required,numeric"`
	Verifiers             VerifiersConfig `yaml:"verifiers"`
	AuditorRegistryMethod string          `yaml:"auditor_registry_method" default:"getAllAuditors"`
}

// VerifiersConfig selects where the verifier set comes from
type VerifiersConfig struct {
	Source    string   `yaml:"source" default:"registry" validate:"oneof=registry static"`
	Addresses []string `yaml:"addresses" validate:"required_if=Source static"`
}

// WalletConfig describes the external signing identity the service acts as
type WalletConfig struct {
	// Address is the organization's SS58 address on the asset ledger.
	Address string `yaml:"address" validate:"required"`
	// SignerURL is the remote signing service used for ledger extrinsics.
	SignerURL string `yaml:"signer_url" validate:"required,url"`
	// SignerTokenEnv names the env var holding the signer bearer token.
	SignerTokenEnv string `yaml:"signer_token_env" default:"GOVERNOR_SIGNER_TOKEN"`
	// ContractKeyEnv names the env var holding the hex private key for the contract chain.
	ContractKeyEnv string `yaml:"contract_key_env" default:"GOVERNOR_CONTRACT_KEY"`
	// SealedKeyFile, when set, holds the contract key sealed with wallet.SealKey
	// and takes precedence over ContractKeyEnv.
	SealedKeyFile string `yaml:"sealed_key_file"`
	// PassphraseEnv names the env var holding the passphrase for SealedKeyFile.
	PassphraseEnv string        `yaml:"passphrase_env" default:"GOVERNOR_KEY_PASSPHRASE"`
	SignerTimeout time.Duration `yaml:"signer_timeout" default:"30s"`
}

// AuthConfig contains API authentication settings
type AuthConfig struct {
	Enabled      bool   `yaml:"enabled" default:"true"`
	JWTSecretEnv string `yaml:"jwt_secret_env" default:"GOVERNOR_JWT_SECRET"`
	Issuer       string `yaml:"issuer"`
}

// RateLimitConfig throttles mutating API calls per client
type RateLimitConfig struct {
	Enabled bool          `yaml:"enabled" default:"true"`
	RPS     float64       `yaml:"rps" default:"1"`
	Burst   int           `yaml:"burst" default:"3"`
	IdleTTL time.Duration `yaml:"idle_ttl" default:"10m"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the YAML file at configPath, expands ${ENV} references,
// applies defaults and validates the result.
func Load(configPath string) (*Config, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes configuration from YAML bytes.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(raw)))))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}
