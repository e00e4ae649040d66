package registry

import (
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// NPO is an organization record as stored by the registry contract.
type NPO struct {
	Owner          common.Address `json:"owner"`
	Name           string         `json:"name"`
	DescriptionCID string         `json:"description_cid"`
	LegalID        string         `json:"legal_id,omitempty"`
	Categories     []string       `json:"categories"`
	Country        string         `json:"country"`
	// GovernanceTokenID is 0 when no token was issued.
	GovernanceTokenID uint32    `json:"governance_token_id"`
	RegisteredAt      time.Time `json:"registered_at"`
}

// TokenMetadata is the governance token descriptor kept by the registry contract.
type TokenMetadata struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	Description string `json:"description"`
	IconCID     string `json:"icon_cid,omitempty"`
}

// Registration holds the organization and token fields passed to registerNpo.
// Empty optional strings are sent as empty strings.
type Registration struct {
	Name             string
	DescriptionCID   string
	LegalID          string
	Categories       []string
	Country          string
	TokenName        string
	TokenSymbol      string
	TokenDescription string
	TokenIconCID     string
}

// Receipt is the confirmed outcome of a registerNpo transaction.
type Receipt struct {
	TokenID     uint32
	TxHash      common.Hash
	BlockNumber uint64
}

// Caller is the contract-chain identity that sends registry transactions.
type Caller struct {
	From   common.Address
	Signer bind.SignerFn
}

// abi tuple layouts; field names must match the ABI component names
type npoTuple struct {
	Owner             common.Address
	GovernanceTokenId uint32
	RegisteredAt      uint64
	DescriptionCid    string
	Name              string
	LegalId           string
	Categories        []string
	Country           string
}

type tokenMetadataTuple struct {
	Name        string
	Symbol      string
	Decimals    uint8
	Description string
	IconCid     string
}

func (t npoTuple) toNPO() *NPO {
	n := &NPO{
		Owner:             t.Owner,
		Name:              t.Name,
		DescriptionCID:    t.DescriptionCid,
		LegalID:           t.LegalId,
		Categories:        t.Categories,
		Country:           t.Country,
		GovernanceTokenID: t.GovernanceTokenId,
	}
	if t.RegisteredAt > 0 {
		n.RegisteredAt = time.UnixMilli(int64(t.RegisteredAt)).UTC()
	}
	return n
}

func (t tokenMetadataTuple) toMetadata() *TokenMetadata {
	return &TokenMetadata{
		Name:        t.Name,
		Symbol:      t.Symbol,
		Decimals:    t.Decimals,
		Description: t.Description,
		IconCID:     t.IconCid,
	}
}
