package governance

import (
	"fmt"
	"math/big"
)

// Distribution is the split of a token supply between the organization and N verifiers.
//
//	Organization = floor(Total * percent / 100)
//	Pool         = Total - Organization
//	PerVerifier  = floor(Pool / N)
//	Remainder    = Pool mod N, or Pool when N = 0
//
// The remainder is never minted.
type Distribution struct {
	Total         *big.Int `json:"total"`
	Organization  *big.Int `json:"organization"`
	VerifierPool  *big.Int `json:"verifier_pool"`
	VerifierCount int      `json:"verifier_count"`
	PerVerifier   *big.Int `json:"per_verifier"`
	Remainder     *big.Int `json:"remainder"`
}

// Minted returns the amount actually minted: Organization + N * PerVerifier.
func (d Distribution) Minted() *big.Int {
	out := new(big.Int).Mul(d.PerVerifier, big.NewInt(int64(d.VerifierCount)))
	return out.Add(out, d.Organization)
}

// ComputeDistribution splits total between the organization (percent) and n verifiers.
func ComputeDistribution(total *big.Int, percent uint, n int) (Distribution, error) {
	if total == nil || total.Sign() < 0 {
		return Distribution{}, fmt.Errorf("total supply must be non-negative")
	}
	if percent > 100 {
		return Distribution{}, fmt.Errorf("organization percent %d exceeds 100", percent)
	}
	if n < 0 {
		return Distribution{}, fmt.Errorf("verifier count must be non-negative")
	}

	org := new(big.Int).Mul(total, new(big.Int).SetUint64(uint64(percent)))
	org.Quo(org, big.NewInt(100))
	pool := new(big.Int).Sub(total, org)

	d := Distribution{
		Total:         new(big.Int).Set(total),
		Organization:  org,
		VerifierPool:  pool,
		VerifierCount: n,
		PerVerifier:   new(big.Int),
		Remainder:     new(big.Int).Set(pool),
	}
	if n > 0 {
		d.PerVerifier, d.Remainder = new(big.Int).QuoRem(pool, big.NewInt(int64(n)), new(big.Int))
	}
	return d, nil
}
