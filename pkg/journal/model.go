package journal

import (
	"time"

	"github.com/uptrace/bun"
)

// WorkflowDao is a data access object that maps directly to the 'workflows' table in PostgreSQL.
type WorkflowDao struct {
	bun.BaseModel  `bun:"table:workflows,alias:wf"`
	ID             string    `bun:"id,pk,type:uuid"`
	Organization   string    `bun:"organization,notnull,type:varchar(64)"`
	Name           string    `bun:"name,notnull,type:varchar(255)"`
	TokenID        *int64    `bun:"token_id"`
	State          string    `bun:"state,notnull,type:varchar(32)"`
	RegistrationTx *string   `bun:"registration_tx,type:varchar(66)"`
	AssetTx        *string   `bun:"asset_tx,type:varchar(66)"`
	Error          *string   `bun:"error,type:text"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// MintDao is a data access object that maps directly to the 'workflow_mints' table in PostgreSQL.
type MintDao struct {
	bun.BaseModel `bun:"table:workflow_mints,alias:wm"`
	ID            int64     `bun:"id,pk,autoincrement"`
	WorkflowID    string    `bun:"workflow_id,notnull,type:uuid"`
	Recipient     string    `bun:"recipient,notnull,type:varchar(64)"`
	Role          string    `bun:"role,notnull,type:varchar(16)"`
	Amount        string    `bun:"amount,notnull,type:numeric(78,0)"`
	TxHash        *string   `bun:"tx_hash,type:varchar(66)"`
	Status        string    `bun:"status,notnull,type:varchar(16)"`
	Error         *string   `bun:"error,type:text"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toWorkflowDao(wf *Workflow) *WorkflowDao {
	dao := &WorkflowDao{
		ID:             wf.ID,
		Organization:   wf.Organization,
		Name:           wf.Name,
		State:          string(wf.State),
		RegistrationTx: optional(wf.RegistrationTx),
		AssetTx:        optional(wf.AssetTx),
		Error:          optional(wf.Error),
		CreatedAt:      wf.CreatedAt,
		UpdatedAt:      wf.UpdatedAt,
	}
	if wf.TokenID != nil {
		id := int64(*wf.TokenID)
		dao.TokenID = &id
	}
	return dao
}

func toWorkflow(dao *WorkflowDao) *Workflow {
	wf := &Workflow{
		ID:             dao.ID,
		Organization:   dao.Organization,
		Name:           dao.Name,
		State:          State(dao.State),
		RegistrationTx: deref(dao.RegistrationTx),
		AssetTx:        deref(dao.AssetTx),
		Error:          deref(dao.Error),
		CreatedAt:      dao.CreatedAt,
		UpdatedAt:      dao.UpdatedAt,
	}
	if dao.TokenID != nil {
		id := uint32(*dao.TokenID)
		wf.TokenID = &id
	}
	return wf
}

func toMintDao(m *Mint) *MintDao {
	return &MintDao{
		WorkflowID: m.WorkflowID,
		Recipient:  m.Recipient,
		Role:       string(m.Role),
		Amount:     m.Amount,
		TxHash:     optional(m.TxHash),
		Status:     string(m.Status),
		Error:      optional(m.Error),
		CreatedAt:  m.CreatedAt,
	}
}

func toMint(dao *MintDao) *Mint {
	return &Mint{
		WorkflowID: dao.WorkflowID,
		Recipient:  dao.Recipient,
		Role:       Role(dao.Role),
		Amount:     dao.Amount,
		TxHash:     deref(dao.TxHash),
		Status:     MintStatus(dao.Status),
		Error:      deref(dao.Error),
		CreatedAt:  dao.CreatedAt,
	}
}
