package assethub

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"
)

func TestTwox128_KnownPrefixes(t *testing.T) {
	tests := map[string]string{
		"System":  "26aa394eea5630e07c48ae0c9558cef7",
		"Account": "b99d880ec681799c0cf30e8886371da9",
	}
	for in, want := range tests {
		if got := hex.EncodeToString(twox128([]byte(in))); got != want {
			t.Errorf("twox128(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestAccountStorageKey(t *testing.T) {
	accountID, _ := hex.DecodeString(alicePubKey)

	key, err := AccountStorageKey("Assets", 7, accountID)
	if err != nil {
		t.Fatalf("AccountStorageKey: %v", err)
	}

	// 16 + 16 + (16 + 4) + (16 + 32)
	if len(key) != 100 {
		t.Fatalf("key length = %d, want 100", len(key))
	}
	if !bytes.Equal(key[:16], twox128([]byte("Assets"))) {
		t.Fatal("pallet prefix mismatch")
	}
	if !bytes.Equal(key[16:32], twox128([]byte("Account"))) {
		t.Fatal("storage item prefix mismatch")
	}
	if !bytes.Equal(key[48:52], []byte{7, 0, 0, 0}) {
		t.Fatalf("asset id not concatenated little-endian: %x", key[48:52])
	}
	if !bytes.Equal(key[68:], accountID) {
		t.Fatal("account id not concatenated")
	}

	other, _ := AccountStorageKey("Assets", 8, accountID)
	if bytes.Equal(key, other) {
		t.Fatal("different asset ids produced the same key")
	}
}

func TestAccountStorageKey_BadAccount(t *testing.T) {
	if _, err := AccountStorageKey("Assets", 1, []byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for short account id")
	}
}

func TestDecodeBalance(t *testing.T) {
	// balance 1_000_000 (0x0f4240) followed by status and reason bytes
	raw := make([]byte, 18)
	raw[0], raw[1], raw[2] = 0x40, 0x42, 0x0f

	got, err := DecodeBalance(raw)
	if err != nil {
		t.Fatalf("DecodeBalance: %v", err)
	}
	if got.Cmp(big.NewInt(1_000_000)) != 0 {
		t.Fatalf("balance = %s, want 1000000", got)
	}

	zero, err := DecodeBalance(nil)
	if err != nil || zero.Sign() != 0 {
		t.Fatalf("DecodeBalance(nil) = %v, %v", zero, err)
	}

	if _, err := DecodeBalance([]byte{1, 2}); err == nil {
		t.Fatal("expected error for short record")
	}
}
