// Package token converts governance token amounts between whole-token decimal
// strings and integer base units.
package token

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToBaseUnits parses a whole-token amount ("1000000", "12.5") into base units
// for the given decimals. Fractions finer than one base unit are rejected.
func ToBaseUnits(amount string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid token amount %q: %w", amount, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("token amount %q is negative", amount)
	}

	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("token amount %q has more than %d decimals", amount, decimals)
	}
	return scaled.BigInt(), nil
}

// FromBaseUnits renders base units as a whole-token decimal string without
// trailing zeros.
func FromBaseUnits(units *big.Int, decimals uint8) string {
	if units == nil {
		return "0"
	}
	return decimal.NewFromBigInt(units, -int32(decimals)).String()
}
