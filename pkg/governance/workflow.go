package governance

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/impactchain/npo-governance/internal/metrics"
	"github.com/impactchain/npo-governance/pkg/assethub"
	"github.com/impactchain/npo-governance/pkg/journal"
	"github.com/impactchain/npo-governance/pkg/registry"
)

// workflowRun carries one RegisterNPO invocation through its states.
type workflowRun struct {
	c      *Coordinator
	wf     *journal.Workflow
	logger *zap.Logger
}

func (r *workflowRun) execute(
	ctx context.Context,
	reg Registry,
	verifiers VerifierSource,
	account *Account,
	req RegisterRequest,
) (*RegistrationResult, error) {
	registration := registry.Registration{
		Name:             req.Name,
		DescriptionCID:   req.DescriptionCID,
		LegalID:          req.LegalID,
		Categories:       req.Categories,
		Country:          req.Country,
		TokenName:        req.TokenName,
		TokenSymbol:      req.TokenSymbol,
		TokenDescription: req.TokenDescription,
		TokenIconCID:     req.TokenIconCID,
	}

	simulated, err := reg.SimulateRegister(ctx, account.Contract.From, registration)
	if err != nil {
		return nil, contractError(err)
	}

	receipt, err := reg.RegisterNpo(ctx, account.Contract, registration, simulated)
	if err != nil {
		return nil, contractError(err)
	}
	tokenID := receipt.TokenID
	r.wf.TokenID = &tokenID
	r.wf.RegistrationTx = receipt.TxHash.Hex()

	if err := r.c.claimTokenID(tokenID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	r.advance(ctx, journal.StateContractRegistered)
	r.logger.Info("NPO registered in contract",
		zap.Uint32("token_id", tokenID),
		zap.String("tx_hash", r.wf.RegistrationTx),
		zap.Uint64("block", receipt.BlockNumber))

	tk := r.c.tokenomics
	assetTx, err := r.c.ledger.CreateAsset(ctx, tokenID, account.Address, tk.MinBalance, assethub.AssetMetadata{
		Name:     req.TokenName,
		Symbol:   req.TokenSymbol,
		Decimals: tk.Decimals,
		IsFrozen: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create governance token %d: %w", tokenID, err)
	}
	r.wf.AssetTx = assetTx
	r.advance(ctx, journal.StateAssetCreated)
	r.logger.Info("Governance token created", zap.Uint32("token_id", tokenID), zap.String("tx_hash", assetTx))

	dist, mints, err := r.distribute(ctx, verifiers, account.Address, tokenID)
	if err != nil {
		return nil, err
	}
	r.advance(ctx, journal.StateTokensDistributed)
	metrics.RegistrationsTotal.WithLabelValues(string(journal.StateTokensDistributed)).Inc()

	r.logger.Info("Governance tokens distributed",
		zap.Uint32("token_id", tokenID),
		zap.Int("verifiers", dist.VerifierCount),
		zap.String("organization_share", dist.Organization.String()),
		zap.String("per_verifier", dist.PerVerifier.String()),
		zap.String("unminted", dist.Remainder.String()))

	return &RegistrationResult{
		NPORegistered:  true,
		TokenID:        tokenID,
		TokenCreated:   true,
		WorkflowID:     r.wf.ID,
		RegistrationTx: r.wf.RegistrationTx,
		AssetTx:        assetTx,
		Distribution:   dist,
		Mints:          mints,
	}, nil
}

func (r *workflowRun) distribute(
	ctx context.Context,
	source VerifierSource,
	organization string,
	tokenID uint32,
) (Distribution, []MintReceipt, error) {
	var verifiers []string
	if source != nil {
		var err error
		verifiers, err = source.Verifiers(ctx)
		if err != nil {
			return Distribution{}, nil, fmt.Errorf("%w: %w", ErrVerifiersUnavailable, err)
		}
	}
	metrics.VerifierCount.Set(float64(len(verifiers)))

	dist, err := ComputeDistribution(r.c.tokenomics.TotalSupply, r.c.tokenomics.OrganizationPercent, len(verifiers))
	if err != nil {
		return Distribution{}, nil, err
	}

	completed := make([]MintReceipt, 0, len(verifiers)+1)
	mint := func(recipient string, role journal.Role, amount *big.Int) error {
		hash, err := r.c.ledger.MintTokens(ctx, tokenID, recipient, amount)
		r.recordMint(ctx, recipient, role, amount, hash, err)
		metrics.MintsTotal.WithLabelValues(string(role), metrics.Status(err)).Inc()
		if err != nil {
			return &DistributionError{
				TokenID:   tokenID,
				Completed: completed,
				Recipient: recipient,
				Role:      role,
				Amount:    new(big.Int).Set(amount),
				Err:       err,
			}
		}
		completed = append(completed, MintReceipt{
			Recipient: recipient,
			Role:      role,
			Amount:    new(big.Int).Set(amount),
			TxHash:    hash,
		})
		return nil
	}

	if err := mint(organization, journal.RoleOrganization, dist.Organization); err != nil {
		return dist, nil, err
	}
	for _, v := range verifiers {
		if err := mint(v, journal.RoleVerifier, dist.PerVerifier); err != nil {
			return dist, nil, err
		}
	}
	return dist, completed, nil
}

func (r *workflowRun) advance(ctx context.Context, state journal.State) {
	r.wf.State = state
	r.record(ctx, func(ctx context.Context) error { return r.c.journal.UpdateWorkflow(ctx, r.wf) })
}

func (r *workflowRun) fail(ctx context.Context, err error) {
	reached := r.wf.State
	r.wf.State = journal.StateFailed
	r.wf.Error = err.Error()
	r.record(ctx, func(ctx context.Context) error { return r.c.journal.UpdateWorkflow(ctx, r.wf) })
	metrics.RegistrationsTotal.WithLabelValues(string(journal.StateFailed)).Inc()

	var distErr *DistributionError
	if errors.As(err, &distErr) {
		r.logger.Error("Governance token distribution stopped",
			zap.Uint32("token_id", distErr.TokenID),
			zap.String("recipient", distErr.Recipient),
			zap.Int("completed_mints", len(distErr.Completed)),
			zap.Error(err))
		return
	}
	r.logger.Error("NPO registration failed", zap.String("reached", string(reached)), zap.Error(err))
}

func (r *workflowRun) recordMint(ctx context.Context, recipient string, role journal.Role, amount *big.Int, hash string, err error) {
	m := &journal.Mint{
		WorkflowID: r.wf.ID,
		Recipient:  recipient,
		Role:       role,
		Amount:     amount.String(),
		TxHash:     hash,
		Status:     journal.MintSubmitted,
	}
	if err != nil {
		m.Status = journal.MintFailed
		m.Error = err.Error()
	}
	r.record(ctx, func(ctx context.Context) error { return r.c.journal.RecordMint(ctx, m) })
}

// record runs a journal write; journal failures never fail the workflow.
func (r *workflowRun) record(ctx context.Context, write func(context.Context) error) {
	if err := write(context.WithoutCancel(ctx)); err != nil {
		metrics.ErrorsTotal.WithLabelValues("journal", "write").Inc()
		r.logger.Warn("Failed to record workflow journal entry",
			zap.String("state", string(r.wf.State)),
			zap.Error(err))
	}
}

// contractError separates a registration the contract rejected from a contract
// chain that could not be reached or did not confirm in time.
func contractError(err error) error {
	if errors.Is(err, registry.ErrContractReverted) {
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	return fmt.Errorf("%w: %w", ErrContractUnavailable, err)
}
