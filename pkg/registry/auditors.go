package registry

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"

	"github.com/impactchain/npo-governance/internal/metrics"
	"github.com/impactchain/npo-governance/pkg/assethub"
)

// AuditorSource enumerates the current verifier set from the auditor registry
// the NPO registry points at. Auditor account ids are returned as SS58 ledger
// addresses.
type AuditorSource struct {
	contract *Contract
	method   abi.Method
	prefix   uint16
	logger   *zap.Logger
}

// NewAuditorSource builds a verifier source calling method (bytes32[] return,
// no inputs) on the auditor registry. An empty method selects DefaultAuditorMethod.
func NewAuditorSource(contract *Contract, method string, ss58Prefix uint16, logger *zap.Logger) (*AuditorSource, error) {
	if method == "" {
		method = DefaultAuditorMethod
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	idsType, err := abi.NewType("bytes32[]", "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build auditor return type: %w", err)
	}
	m := abi.NewMethod(method, method, abi.Function, "view", true, false, nil, abi.Arguments{{Type: idsType}})

	return &AuditorSource{
		contract: contract,
		method:   m,
		prefix:   ss58Prefix,
		logger:   logger,
	}, nil
}

// Verifiers returns the auditor addresses in registry order.
func (s *AuditorSource) Verifiers(ctx context.Context) (_ []string, err error) {
	defer func() {
		metrics.ContractCalls.WithLabelValues(s.method.Name, metrics.Status(err)).Inc()
	}()

	registryAddr, err := s.contract.GetAuditorRegistry(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve auditor registry: %w", err)
	}

	raw, err := s.contract.backend.CallContract(ctx, ethereum.CallMsg{
		To:   &registryAddr,
		Gas:  s.contract.gasLimit,
		Data: s.method.ID,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.method.Name, classifyCallError(err))
	}

	out, err := s.method.Outputs.Unpack(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", s.method.Name, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no return values", s.method.Name)
	}
	ids, err := decodeResult[[][32]byte](s.method.Name, out)
	if err != nil {
		return nil, err
	}

	addrs := make([]string, 0, len(ids))
	for _, id := range ids {
		addr, err := assethub.EncodeAddress(id[:], s.prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to encode auditor %x: %w", id, err)
		}
		addrs = append(addrs, addr)
	}

	s.logger.Debug("Resolved auditor set",
		zap.String("registry", registryAddr.Hex()),
		zap.Int("count", len(addrs)))
	return addrs, nil
}
