// Package journal records registration workflows and their mint receipts.
//
// The journal is append-mostly and informational: it lets an operator see which
// step a workflow reached and which mints landed. Nothing reads it back to
// resume or compensate a workflow.
package journal

import (
	"context"
	"errors"
	"time"
)

// ErrWorkflowNotFound is returned when a workflow lookup finds no record.
var ErrWorkflowNotFound = errors.New("workflow not found")

// State is a registration workflow state.
type State string

const (
	StateInit               State = "INIT"
	StateContractRegistered State = "CONTRACT_REGISTERED"
	StateAssetCreated       State = "ASSET_CREATED"
	StateTokensDistributed  State = "TOKENS_DISTRIBUTED"
	StateFailed             State = "FAILED"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateTokensDistributed || s == StateFailed
}

// Role identifies who a mint was made for.
type Role string

const (
	RoleOrganization Role = "organization"
	RoleVerifier     Role = "verifier"
)

// MintStatus is the outcome of a single mint submission.
type MintStatus string

const (
	MintSubmitted MintStatus = "submitted"
	MintFailed    MintStatus = "failed"
)

// Workflow is one registerNPO run.
type Workflow struct {
	ID             string
	Organization   string
	Name           string
	TokenID        *uint32
	State          State
	RegistrationTx string
	AssetTx        string
	Error          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Mint is one mint submission within a workflow.
type Mint struct {
	WorkflowID string
	Recipient  string
	Role       Role
	Amount     string
	TxHash     string
	Status     MintStatus
	Error      string
	CreatedAt  time.Time
}

// Store persists workflows and mints.
type Store interface {
	CreateWorkflow(ctx context.Context, wf *Workflow) error
	UpdateWorkflow(ctx context.Context, wf *Workflow) error
	RecordMint(ctx context.Context, m *Mint) error
	GetWorkflow(ctx context.Context, id string) (*Workflow, error)
	ListMints(ctx context.Context, workflowID string) ([]*Mint, error)
}
