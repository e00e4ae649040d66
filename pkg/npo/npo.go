// Package npo holds the API-facing request and response types of the governor.
package npo

import "time"

// RegisterRequest is the body of POST /v1/npos.
type RegisterRequest struct {
	Name             string   `json:"name" validate:"required,max=128"`
	DescriptionCID   string   `json:"description_cid" validate:"required,max=128"`
	LegalID          string   `json:"legal_id,omitzero" validate:"max=64"`
	Categories       []string `json:"categories" validate:"max=16,dive,required,max=64"`
	Country          string   `json:"country" validate:"required,max=64"`
	TokenName        string   `json:"token_name" validate:"required,max=64"`
	TokenSymbol      string   `json:"token_symbol" validate:"required,max=16"`
	TokenDescription string   `json:"token_description,omitzero" validate:"max=512"`
	TokenIconCID     string   `json:"token_icon_cid,omitzero" validate:"max=128"`
}

// Mint is one submitted governance token mint. Amount is in base units.
type Mint struct {
	Recipient string `json:"recipient"`
	Role      string `json:"role"`
	Amount    string `json:"amount"`
	Tokens    string `json:"tokens"`
	TxHash    string `json:"tx_hash,omitzero"`
	Status    string `json:"status,omitzero"`
	Error     string `json:"error,omitzero"`
}

// Distribution summarizes how the supply was split. Amounts are in base units.
type Distribution struct {
	Total             string `json:"total"`
	OrganizationShare string `json:"organization_share"`
	VerifierCount     int    `json:"verifier_count"`
	PerVerifier       string `json:"per_verifier"`
	Unminted          string `json:"unminted"`
}

// RegisterResponse is returned for a completed registration.
type RegisterResponse struct {
	WorkflowID     string       `json:"workflow_id"`
	NPORegistered  bool         `json:"npo_registered"`
	TokenID        uint32       `json:"token_id"`
	TokenCreated   bool         `json:"token_created"`
	RegistrationTx string       `json:"registration_tx"`
	AssetTx        string       `json:"asset_tx"`
	Distribution   Distribution `json:"distribution"`
	Mints          []Mint       `json:"mints"`
}

// Organization is a registered NPO as stored by the registry contract.
type Organization struct {
	Owner             string    `json:"owner"`
	Name              string    `json:"name"`
	DescriptionCID    string    `json:"description_cid"`
	LegalID           string    `json:"legal_id,omitzero"`
	Categories        []string  `json:"categories"`
	Country           string    `json:"country"`
	GovernanceTokenID uint32    `json:"governance_token_id"`
	RegisteredAt      time.Time `json:"registered_at"`
}

// CountResponse is returned by GET /v1/npos/count.
type CountResponse struct {
	Count uint32 `json:"count"`
}

// Token is a governance token descriptor.
type Token struct {
	ID          uint32 `json:"id"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	Description string `json:"description,omitzero"`
	IconCID     string `json:"icon_cid,omitzero"`
}

// Balance is an account's holding of a governance token.
type Balance struct {
	TokenID uint32 `json:"token_id"`
	Address string `json:"address"`
	Amount  string `json:"amount"`
	Tokens  string `json:"tokens"`
	// Exists is false when the ledger has no account record for the address.
	Exists bool `json:"exists"`
}

// Workflow is the journal view of one registration run.
type Workflow struct {
	ID             string    `json:"id"`
	Organization   string    `json:"organization"`
	Name           string    `json:"name"`
	TokenID        *uint32   `json:"token_id,omitempty"`
	State          string    `json:"state"`
	RegistrationTx string    `json:"registration_tx,omitzero"`
	AssetTx        string    `json:"asset_tx,omitzero"`
	Error          string    `json:"error,omitzero"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Mints          []Mint    `json:"mints"`
}
