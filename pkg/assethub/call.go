package assethub

import "math/big"

const (
	palletUtility = "Utility"

	methodCreate           = "create"
	methodSetMetadata      = "set_metadata"
	methodMint             = "mint"
	methodTransfer         = "transfer"
	methodApproveTransfer  = "approve_transfer"
	methodTransferApproved = "transfer_approved"
	methodBatchAll         = "batch_all"
)

// Call is a runtime call handed to the signer for encoding and signing.
// Amounts are carried as base-10 strings so that u128 values survive JSON.
type Call struct {
	Pallet string `json:"pallet"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// AssetMetadata is the descriptive metadata attached to an asset at creation.
type AssetMetadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	IsFrozen bool   `json:"is_frozen"`
}

func amountArg(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func (c *Client) assetCall(method string, args ...any) *Call {
	return &Call{Pallet: c.pallet, Method: method, Args: args}
}

func batchAll(calls ...*Call) *Call {
	return &Call{Pallet: palletUtility, Method: methodBatchAll, Args: []any{calls}}
}
