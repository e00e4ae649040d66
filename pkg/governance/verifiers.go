package governance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/impactchain/npo-governance/pkg/registry"
)

// VerifierSource resolves the current verifier (auditor) set as ledger addresses.
type VerifierSource interface {
	Verifiers(ctx context.Context) ([]string, error)
}

// StaticVerifiers is a fixed verifier set.
type StaticVerifiers []string

// Verifiers implements VerifierSource.
func (s StaticVerifiers) Verifiers(context.Context) ([]string, error) {
	out := make([]string, len(s))
	copy(out, s)
	return out, nil
}

// VerifierFactory builds the verifier source once the registry session exists.
type VerifierFactory func(Registry) (VerifierSource, error)

// FixedVerifiers returns a factory that ignores the registry and always uses src.
func FixedVerifiers(src VerifierSource) VerifierFactory {
	return func(Registry) (VerifierSource, error) { return src, nil }
}

// AuditorVerifiers returns a factory that enumerates the auditor registry the
// NPO registry contract points at.
func AuditorVerifiers(method string, ss58Prefix uint16, logger *zap.Logger) VerifierFactory {
	return func(r Registry) (VerifierSource, error) {
		contract, ok := r.(*registry.Contract)
		if !ok {
			return nil, fmt.Errorf("auditor verifiers need a registry contract client, got %T", r)
		}
		return registry.NewAuditorSource(contract, method, ss58Prefix, logger)
	}
}
