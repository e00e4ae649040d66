package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/impactchain/npo-governance/pkg/app/errors"
	"github.com/impactchain/npo-governance/pkg/assethub"
	"github.com/impactchain/npo-governance/pkg/governance"
	"github.com/impactchain/npo-governance/pkg/journal"
	"github.com/impactchain/npo-governance/pkg/npo"
	"github.com/impactchain/npo-governance/pkg/registry"
	"github.com/impactchain/npo-governance/pkg/token"
)

// Coordinator is the narrow governance surface the API needs.
// *governance.Coordinator satisfies it.
type Coordinator interface {
	RegisterNPO(ctx context.Context, req governance.RegisterRequest) (*governance.RegistrationResult, error)
	GetNPODetails(ctx context.Context, owner string) (*registry.NPO, error)
	GetTokenMetadata(ctx context.Context, tokenID uint32) (*registry.TokenMetadata, error)
	GetNPOCount(ctx context.Context) (uint32, error)
	GetBalance(ctx context.Context, tokenID uint32, address string) ([]byte, error)
	Workflow(ctx context.Context, id string) (*journal.Workflow, []*journal.Mint, error)
	Tokenomics() governance.Tokenomics
}

// Service defines the NPO governance API operations
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	RegisterNPO(ctx context.Context, req *npo.RegisterRequest) (*npo.RegisterResponse, error)
	GetNPO(ctx context.Context, owner string) (*npo.Organization, error)
	GetNPOCount(ctx context.Context) (*npo.CountResponse, error)
	GetToken(ctx context.Context, tokenID uint32) (*npo.Token, error)
	GetBalance(ctx context.Context, tokenID uint32, address string) (*npo.Balance, error)
	GetWorkflow(ctx context.Context, id string) (*npo.Workflow, error)
}

type npoService struct {
	coordinator Coordinator
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewService creates the API service over coordinator.
func NewService(coordinator Coordinator, logger *zap.Logger) Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &npoService{
		coordinator: coordinator,
		validate:    v,
		logger:      logger,
	}
}

// RegisterNPO validates the request and runs a registration workflow.
func (s *npoService) RegisterNPO(ctx context.Context, req *npo.RegisterRequest) (*npo.RegisterResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.BadRequestError(err, validationMessage(err))
	}

	res, err := s.coordinator.RegisterNPO(ctx, governance.RegisterRequest{
		Name:             req.Name,
		DescriptionCID:   req.DescriptionCID,
		LegalID:          req.LegalID,
		Categories:       req.Categories,
		Country:          req.Country,
		TokenName:        req.TokenName,
		TokenSymbol:      req.TokenSymbol,
		TokenDescription: req.TokenDescription,
		TokenIconCID:     req.TokenIconCID,
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	decimals := s.coordinator.Tokenomics().Decimals
	mints := make([]npo.Mint, 0, len(res.Mints))
	for _, m := range res.Mints {
		mints = append(mints, npo.Mint{
			Recipient: m.Recipient,
			Role:      string(m.Role),
			Amount:    m.Amount.String(),
			Tokens:    token.FromBaseUnits(m.Amount, decimals),
			TxHash:    m.TxHash,
			Status:    string(journal.MintSubmitted),
		})
	}

	d := res.Distribution
	return &npo.RegisterResponse{
		WorkflowID:     res.WorkflowID,
		NPORegistered:  res.NPORegistered,
		TokenID:        res.TokenID,
		TokenCreated:   res.TokenCreated,
		RegistrationTx: res.RegistrationTx,
		AssetTx:        res.AssetTx,
		Distribution: npo.Distribution{
			Total:             d.Total.String(),
			OrganizationShare: d.Organization.String(),
			VerifierCount:     d.VerifierCount,
			PerVerifier:       d.PerVerifier.String(),
			Unminted:          d.Remainder.String(),
		},
		Mints: mints,
	}, nil
}

// GetNPO returns the organization registered by owner.
func (s *npoService) GetNPO(ctx context.Context, owner string) (*npo.Organization, error) {
	if !common.IsHexAddress(owner) {
		return nil, apperrors.BadRequestError(nil, "invalid owner address")
	}
	rec, err := s.coordinator.GetNPODetails(ctx, owner)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &npo.Organization{
		Owner:             rec.Owner.Hex(),
		Name:              rec.Name,
		DescriptionCID:    rec.DescriptionCID,
		LegalID:           rec.LegalID,
		Categories:        rec.Categories,
		Country:           rec.Country,
		GovernanceTokenID: rec.GovernanceTokenID,
		RegisteredAt:      rec.RegisteredAt,
	}, nil
}

// GetNPOCount returns the number of registered organizations.
func (s *npoService) GetNPOCount(ctx context.Context) (*npo.CountResponse, error) {
	n, err := s.coordinator.GetNPOCount(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &npo.CountResponse{Count: n}, nil
}

// GetToken returns the governance token descriptor.
func (s *npoService) GetToken(ctx context.Context, tokenID uint32) (*npo.Token, error) {
	md, err := s.coordinator.GetTokenMetadata(ctx, tokenID)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &npo.Token{
		ID:          tokenID,
		Name:        md.Name,
		Symbol:      md.Symbol,
		Decimals:    md.Decimals,
		Description: md.Description,
		IconCID:     md.IconCID,
	}, nil
}

// GetBalance reads the ledger balance of address for tokenID.
func (s *npoService) GetBalance(ctx context.Context, tokenID uint32, address string) (*npo.Balance, error) {
	if _, _, err := assethub.DecodeAddress(address); err != nil {
		return nil, apperrors.BadRequestError(err, "invalid ledger address")
	}
	raw, err := s.coordinator.GetBalance(ctx, tokenID, address)
	if err != nil {
		return nil, s.mapError(err)
	}

	out := &npo.Balance{TokenID: tokenID, Address: address, Amount: "0", Tokens: "0"}
	if raw == nil {
		return out, nil
	}
	amount, err := assethub.DecodeBalance(raw)
	if err != nil {
		return nil, apperrors.DependencyError(err, "unreadable ledger balance")
	}
	out.Exists = true
	out.Amount = amount.String()
	out.Tokens = token.FromBaseUnits(amount, s.coordinator.Tokenomics().Decimals)
	return out, nil
}

// GetWorkflow returns the journal record of a registration run.
func (s *npoService) GetWorkflow(ctx context.Context, id string) (*npo.Workflow, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.BadRequestError(err, "invalid workflow id")
	}
	wf, mints, err := s.coordinator.Workflow(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	decimals := s.coordinator.Tokenomics().Decimals
	out := &npo.Workflow{
		ID:             wf.ID,
		Organization:   wf.Organization,
		Name:           wf.Name,
		TokenID:        wf.TokenID,
		State:          string(wf.State),
		RegistrationTx: wf.RegistrationTx,
		AssetTx:        wf.AssetTx,
		Error:          wf.Error,
		CreatedAt:      wf.CreatedAt,
		UpdatedAt:      wf.UpdatedAt,
		Mints:          make([]npo.Mint, 0, len(mints)),
	}
	for _, m := range mints {
		tokens := m.Amount
		if amount, ok := new(big.Int).SetString(m.Amount, 10); ok {
			tokens = token.FromBaseUnits(amount, decimals)
		}
		out.Mints = append(out.Mints, npo.Mint{
			Recipient: m.Recipient,
			Role:      string(m.Role),
			Amount:    m.Amount,
			Tokens:    tokens,
			TxHash:    m.TxHash,
			Status:    string(m.Status),
			Error:     m.Error,
		})
	}
	return out, nil
}

// mapError converts coordinator errors into service errors.
func (s *npoService) mapError(err error) error {
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		return err
	}

	var distErr *governance.DistributionError
	switch {
	case errors.Is(err, governance.ErrBusy):
		return apperrors.LockedError(err, "a registration workflow is in progress")
	case errors.Is(err, governance.ErrNotInitialized), errors.Is(err, assethub.ErrUninitialized):
		return apperrors.UnavailableError(err, "governance service not initialized")
	case errors.Is(err, governance.ErrRegistrationFailed):
		return apperrors.BadRequestError(err, registrationMessage(err))
	case errors.Is(err, governance.ErrContractUnavailable):
		s.logger.Warn("Registry call failed", zap.Error(err))
		return apperrors.DependencyError(err, "contract chain call failed, registration outcome unknown")
	case errors.Is(err, registry.ErrNotFound):
		return apperrors.ResourceNotFoundError(err, "not found")
	case errors.Is(err, journal.ErrWorkflowNotFound):
		return apperrors.ResourceNotFoundError(err, "workflow not found")
	case errors.As(err, &distErr):
		return apperrors.DependencyError(err, fmt.Sprintf(
			"token distribution stopped at %s after %d mints", distErr.Recipient, len(distErr.Completed)))
	case errors.Is(err, governance.ErrVerifiersUnavailable):
		return apperrors.DependencyError(err, "verifier set unavailable")
	default:
		s.logger.Warn("Chain call failed", zap.Error(err))
		return apperrors.DependencyError(err, "ledger or contract call failed")
	}
}

func registrationMessage(err error) string {
	if errors.Is(err, governance.ErrTokenIDReused) {
		return "registry returned a token id that was already issued"
	}
	return governance.ErrRegistrationFailed.Error()
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("invalid field %s: %s", fe.Field(), fe.Tag())
	}
	return "invalid request"
}
