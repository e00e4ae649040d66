package governance

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/impactchain/npo-governance/pkg/journal"
)

var (
	// ErrNotInitialized is returned when a session or the signing account is missing.
	ErrNotInitialized = errors.New("service not properly initialized")
	// ErrBusy is returned when a workflow is already running on the coordinator.
	ErrBusy = errors.New("coordinator busy: a registration workflow is in progress")
	// ErrRegistrationFailed is returned when the registry contract reverts the registration.
	ErrRegistrationFailed = errors.New("failed to register NPO in contract")
	// ErrContractUnavailable is returned when a registration call fails for a
	// reason other than a contract revert: transport, signing or receipt timeout.
	// A submitted transaction may still be mined.
	ErrContractUnavailable = errors.New("contract chain unavailable")
	// ErrTokenIDReused is returned when the contract hands out a token id this coordinator already issued.
	ErrTokenIDReused = errors.New("token id already issued")
	// ErrVerifiersUnavailable is returned when the verifier set cannot be resolved.
	ErrVerifiersUnavailable = errors.New("verifier set unavailable")
)

// MintReceipt is a submitted mint.
type MintReceipt struct {
	Recipient string       `json:"recipient"`
	Role      journal.Role `json:"role"`
	Amount    *big.Int     `json:"amount"`
	TxHash    string       `json:"tx_hash"`
}

// DistributionError reports a mint that failed part way through distribution.
// Completed mints stay applied; later recipients were never attempted.
type DistributionError struct {
	TokenID   uint32
	Completed []MintReceipt
	Recipient string
	Role      journal.Role
	Amount    *big.Int
	Err       error
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("distribution of token %d stopped at %s %s after %d mints: %v",
		e.TokenID, e.Role, e.Recipient, len(e.Completed), e.Err)
}

func (e *DistributionError) Unwrap() error {
	return e.Err
}
