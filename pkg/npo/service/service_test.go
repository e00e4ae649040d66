package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	apperrors "github.com/impactchain/npo-governance/pkg/app/errors"
	"github.com/impactchain/npo-governance/pkg/governance"
	"github.com/impactchain/npo-governance/pkg/journal"
	"github.com/impactchain/npo-governance/pkg/npo"
	"github.com/impactchain/npo-governance/pkg/registry"
)

const (
	alice = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	bob   = "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"
	owner = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func validRequest() *npo.RegisterRequest {
	return &npo.RegisterRequest{
		Name:           "Clean Water Fund",
		DescriptionCID: "bafy-description",
		Categories:     []string{"water"},
		Country:        "KE",
		TokenName:      "Clean Water Governance",
		TokenSymbol:    "CWG",
	}
}

func newTestService(c *MockCoordinator) Service {
	return NewLog(NewService(c, zap.NewNop()), zap.NewNop())
}

func assertCategory(t *testing.T, err error, cat apperrors.Category) {
	t.Helper()
	if !apperrors.Is(err, cat) {
		t.Fatalf("expected %s, got %v", cat, err)
	}
}

func TestRegisterNPO_Success(t *testing.T) {
	d, err := governance.ComputeDistribution(governance.DefaultTotalSupply, 75, 1)
	if err != nil {
		t.Fatalf("ComputeDistribution failed: %v", err)
	}

	c := &MockCoordinator{
		RegisterNPOFunc: func(_ context.Context, req governance.RegisterRequest) (*governance.RegistrationResult, error) {
			if req.TokenSymbol != "CWG" {
				t.Errorf("token symbol = %q, want CWG", req.TokenSymbol)
			}
			if !reflect.DeepEqual(req.Categories, []string{"water"}) {
				t.Errorf("categories = %v, want [water]", req.Categories)
			}
			return &governance.RegistrationResult{
				NPORegistered: true,
				TokenID:       9,
				TokenCreated:  true,
				WorkflowID:    "wf-1",
				Distribution:  d,
				Mints: []governance.MintReceipt{
					{Recipient: alice, Role: journal.RoleOrganization, Amount: d.Organization, TxHash: "0x01"},
					{Recipient: bob, Role: journal.RoleVerifier, Amount: d.PerVerifier, TxHash: "0x02"},
				},
			}, nil
		},
	}

	resp, err := newTestService(c).RegisterNPO(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("RegisterNPO failed: %v", err)
	}
	if resp.TokenID != 9 || resp.WorkflowID != "wf-1" {
		t.Fatalf("token id %d workflow %q, want 9 wf-1", resp.TokenID, resp.WorkflowID)
	}
	if len(resp.Mints) != 2 {
		t.Fatalf("expected 2 mints, got %d", len(resp.Mints))
	}
	if resp.Mints[0].Tokens != "750000" || resp.Mints[1].Tokens != "250000" {
		t.Fatalf("mint tokens = %s, %s", resp.Mints[0].Tokens, resp.Mints[1].Tokens)
	}
	if resp.Distribution.Unminted != "0" {
		t.Fatalf("unminted = %s, want 0", resp.Distribution.Unminted)
	}
	if resp.Distribution.VerifierCount != 1 {
		t.Fatalf("verifier count = %d, want 1", resp.Distribution.VerifierCount)
	}
}

func TestRegisterNPO_ValidationRejectedBeforeCoordinator(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*npo.RegisterRequest)
		field  string
	}{
		{"missing name", func(r *npo.RegisterRequest) { r.Name = "" }, "name"},
		{"missing symbol", func(r *npo.RegisterRequest) { r.TokenSymbol = "" }, "token_symbol"},
		{"long symbol", func(r *npo.RegisterRequest) { r.TokenSymbol = "ABCDEFGHIJKLMNOPQ" }, "token_symbol"},
		{"empty category", func(r *npo.RegisterRequest) { r.Categories = []string{""} }, "categories[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &MockCoordinator{}
			req := validRequest()
			tt.mutate(req)

			_, err := newTestService(c).RegisterNPO(context.Background(), req)
			assertCategory(t, err, apperrors.CategoryDataError)
			var svcErr *apperrors.ServiceError
			if !errors.As(err, &svcErr) || !strings.Contains(svcErr.Message, tt.field) {
				t.Fatalf("expected message naming %q, got %v", tt.field, err)
			}
			if c.RegisterCalls != 0 {
				t.Fatalf("coordinator called %d times", c.RegisterCalls)
			}
		})
	}
}

func TestRegisterNPO_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		cat  apperrors.Category
	}{
		{"busy", governance.ErrBusy, apperrors.CategoryLocked},
		{"not initialized", governance.ErrNotInitialized, apperrors.CategoryRecovering},
		{"contract rejected", errors.Join(governance.ErrRegistrationFailed, registry.ErrContractReverted), apperrors.CategoryDataError},
		{
			"receipt timeout",
			fmt.Errorf("%w: %w", governance.ErrContractUnavailable, context.DeadlineExceeded),
			apperrors.CategoryDependencyFailure,
		},
		{
			"contract rpc down",
			fmt.Errorf("%w: %w", governance.ErrContractUnavailable, errors.New("connection refused")),
			apperrors.CategoryDependencyFailure,
		},
		{"verifiers", governance.ErrVerifiersUnavailable, apperrors.CategoryDependencyFailure},
		{"ledger", errors.New("assets.InUse"), apperrors.CategoryDependencyFailure},
		{
			"partial distribution",
			&governance.DistributionError{TokenID: 1, Recipient: bob, Role: journal.RoleVerifier, Err: errors.New("boom")},
			apperrors.CategoryDependencyFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &MockCoordinator{
				RegisterNPOFunc: func(context.Context, governance.RegisterRequest) (*governance.RegistrationResult, error) {
					return nil, tt.err
				},
			}
			_, err := newTestService(c).RegisterNPO(context.Background(), validRequest())
			assertCategory(t, err, tt.cat)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v in chain, got %v", tt.err, err)
			}
		})
	}
}

func TestRegisterNPO_ContractUnavailableIsNotBadRequest(t *testing.T) {
	c := &MockCoordinator{
		RegisterNPOFunc: func(context.Context, governance.RegisterRequest) (*governance.RegistrationResult, error) {
			return nil, fmt.Errorf("%w: %w", governance.ErrContractUnavailable, context.DeadlineExceeded)
		},
	}
	_, err := newTestService(c).RegisterNPO(context.Background(), validRequest())
	if apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("receipt timeout reported as client error: %v", err)
	}
	var svcErr *apperrors.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %T", err)
	}
	if !strings.Contains(svcErr.Message, "outcome unknown") {
		t.Fatalf("message = %q", svcErr.Message)
	}
}

func TestGetNPO(t *testing.T) {
	registered := time.UnixMilli(1_700_000_000_000).UTC()
	c := &MockCoordinator{
		GetNPODetailsFunc: func(_ context.Context, addr string) (*registry.NPO, error) {
			if addr != owner {
				return nil, registry.ErrNotFound
			}
			return &registry.NPO{
				Owner:             common.HexToAddress(owner),
				Name:              "Clean Water Fund",
				GovernanceTokenID: 9,
				RegisteredAt:      registered,
			}, nil
		},
	}
	svc := newTestService(c)

	got, err := svc.GetNPO(context.Background(), owner)
	if err != nil {
		t.Fatalf("GetNPO failed: %v", err)
	}
	if got.Owner != owner || got.GovernanceTokenID != 9 {
		t.Fatalf("got owner %s token %d", got.Owner, got.GovernanceTokenID)
	}
	if !got.RegisteredAt.Equal(registered) {
		t.Fatalf("registered at = %v, want %v", got.RegisteredAt, registered)
	}

	_, err = svc.GetNPO(context.Background(), "0x0000000000000000000000000000000000000001")
	assertCategory(t, err, apperrors.CategoryResourceNotFound)

	_, err = svc.GetNPO(context.Background(), "not-an-address")
	assertCategory(t, err, apperrors.CategoryDataError)
}

func TestGetBalance(t *testing.T) {
	record := make([]byte, 18)
	big.NewInt(1500).FillBytes(record[:16])
	// little-endian u128
	for i, j := 0, 15; i < j; i, j = i+1, j-1 {
		record[i], record[j] = record[j], record[i]
	}

	c := &MockCoordinator{
		GetBalanceFunc: func(_ context.Context, _ uint32, address string) ([]byte, error) {
			if address == alice {
				return record, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(c)

	got, err := svc.GetBalance(context.Background(), 9, alice)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if !got.Exists || got.Amount != "1500" || got.Tokens != "0.0000000000000015" {
		t.Fatalf("unexpected balance %+v", got)
	}

	got, err = svc.GetBalance(context.Background(), 9, bob)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if got.Exists || got.Amount != "0" {
		t.Fatalf("expected empty balance, got %+v", got)
	}

	_, err = svc.GetBalance(context.Background(), 9, owner)
	assertCategory(t, err, apperrors.CategoryDataError)
}

func TestGetWorkflow(t *testing.T) {
	id := "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	tokenID := uint32(9)
	c := &MockCoordinator{
		WorkflowFunc: func(_ context.Context, got string) (*journal.Workflow, []*journal.Mint, error) {
			if got != id {
				return nil, nil, journal.ErrWorkflowNotFound
			}
			return &journal.Workflow{ID: id, TokenID: &tokenID, State: journal.StateFailed, Error: "ledger down"},
				[]*journal.Mint{{Recipient: alice, Role: journal.RoleOrganization, Amount: "750000000000000000000000", Status: journal.MintSubmitted}},
				nil
		},
	}
	svc := newTestService(c)

	wf, err := svc.GetWorkflow(context.Background(), id)
	if err != nil {
		t.Fatalf("GetWorkflow failed: %v", err)
	}
	if wf.State != "FAILED" {
		t.Fatalf("state = %s, want FAILED", wf.State)
	}
	if len(wf.Mints) != 1 || wf.Mints[0].Tokens != "750000" {
		t.Fatalf("unexpected mints %+v", wf.Mints)
	}

	_, err = svc.GetWorkflow(context.Background(), "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assertCategory(t, err, apperrors.CategoryResourceNotFound)

	_, err = svc.GetWorkflow(context.Background(), "nope")
	assertCategory(t, err, apperrors.CategoryDataError)
}

func TestGetTokenAndCount(t *testing.T) {
	c := &MockCoordinator{
		GetTokenMetadataFunc: func(_ context.Context, id uint32) (*registry.TokenMetadata, error) {
			return &registry.TokenMetadata{Name: "Clean Water Governance", Symbol: "CWG", Decimals: 18}, nil
		},
		GetNPOCountFunc: func(context.Context) (uint32, error) { return 0, governance.ErrNotInitialized },
	}
	svc := newTestService(c)

	tok, err := svc.GetToken(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if tok.ID != 9 || tok.Symbol != "CWG" {
		t.Fatalf("unexpected token %+v", tok)
	}

	_, err = svc.GetNPOCount(context.Background())
	assertCategory(t, err, apperrors.CategoryRecovering)
}
