package assethub

import (
	"encoding/hex"
	"errors"
	"testing"
)

const (
	aliceAddress = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	bobAddress   = "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"
	alicePubKey  = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
)

func TestDecodeAddress(t *testing.T) {
	prefix, id, err := DecodeAddress(aliceAddress)
	if err != nil {
		t.Fatalf("DecodeAddress: %v", err)
	}
	if prefix != 42 {
		t.Fatalf("prefix = %d, want 42", prefix)
	}
	if got := hex.EncodeToString(id); got != alicePubKey {
		t.Fatalf("account id = %s, want %s", got, alicePubKey)
	}
}

func TestDecodeAddress_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		address string
	}{
		{"empty", ""},
		{"not base58", "0xd43593c715fdd31c61141abd04a99fd6"},
		{"bad checksum", aliceAddress[:len(aliceAddress)-1] + "Z"},
		{"truncated", aliceAddress[:20]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeAddress(tt.address)
			if !errors.Is(err, ErrInvalidAddress) {
				t.Fatalf("expected ErrInvalidAddress, got %v", err)
			}
		})
	}
}

func TestEncodeAddress_RoundTrip(t *testing.T) {
	id, _ := hex.DecodeString(alicePubKey)

	got, err := EncodeAddress(id, 42)
	if err != nil {
		t.Fatalf("EncodeAddress: %v", err)
	}
	if got != aliceAddress {
		t.Fatalf("EncodeAddress = %s, want %s", got, aliceAddress)
	}

	// two-byte prefix form
	for _, prefix := range []uint16{64, 1284, maxSS58Prefix} {
		addr, err := EncodeAddress(id, prefix)
		if err != nil {
			t.Fatalf("EncodeAddress(%d): %v", prefix, err)
		}
		p, decoded, err := DecodeAddress(addr)
		if err != nil {
			t.Fatalf("DecodeAddress(%s): %v", addr, err)
		}
		if p != prefix || hex.EncodeToString(decoded) != alicePubKey {
			t.Fatalf("round trip for prefix %d gave prefix %d id %x", prefix, p, decoded)
		}
	}
}

func TestEncodeAddress_Invalid(t *testing.T) {
	if _, err := EncodeAddress(make([]byte, 20), 42); err == nil {
		t.Fatal("expected error for short account id")
	}
	if _, err := EncodeAddress(make([]byte, 32), maxSS58Prefix+1); err == nil {
		t.Fatal("expected error for out of range prefix")
	}
}
