package assethub

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

const (
	storageItemAccount = "Account"
	u128Len            = 16
)

// twox128 is the non-cryptographic hasher used for pallet and storage item prefixes.
func twox128(data []byte) []byte {
	out := make([]byte, 16)
	for i := 0; i < 2; i++ {
		d := xxhash.NewWithSeed(uint64(i))
		_, _ = d.Write(data)
		binary.LittleEndian.PutUint64(out[i*8:], d.Sum64())
	}
	return out
}

func blake2128Concat(data []byte) ([]byte, error) {
	h, err := blake2b.New(16, nil)
	if err != nil {
		return nil, fmt.Errorf("init blake2b-128: %w", err)
	}
	h.Write(data)
	return append(h.Sum(nil), data...), nil
}

// AccountStorageKey derives the storage key of <pallet>.Account(assetID, accountID),
// a double map hashed with Blake2_128Concat on both keys.
func AccountStorageKey(pallet string, assetID uint32, accountID []byte) ([]byte, error) {
	if len(accountID) != accountIDLen {
		return nil, fmt.Errorf("account id must be %d bytes, got %d", accountIDLen, len(accountID))
	}

	idBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(idBytes, assetID)

	key1, err := blake2128Concat(idBytes)
	if err != nil {
		return nil, err
	}
	key2, err := blake2128Concat(accountID)
	if err != nil {
		return nil, err
	}

	key := make([]byte, 0, 32+len(key1)+len(key2))
	key = append(key, twox128([]byte(pallet))...)
	key = append(key, twox128([]byte(storageItemAccount))...)
	key = append(key, key1...)
	key = append(key, key2...)
	return key, nil
}

// DecodeBalance extracts the free balance from a raw asset account record.
// The balance is the record's leading little-endian u128. An empty record is a zero balance.
func DecodeBalance(raw []byte) (*big.Int, error) {
	if len(raw) == 0 {
		return new(big.Int), nil
	}
	if len(raw) < u128Len {
		return nil, fmt.Errorf("asset account record too short: %d bytes", len(raw))
	}

	be := make([]byte, u128Len)
	for i := 0; i < u128Len; i++ {
		be[i] = raw[u128Len-1-i]
	}
	return new(big.Int).SetBytes(be), nil
}
