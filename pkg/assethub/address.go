package assethub

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// ErrInvalidAddress is returned when an SS58 address cannot be decoded.
var ErrInvalidAddress = errors.New("invalid ss58 address")

const (
	accountIDLen   = 32
	checksumLen    = 2
	maxSS58Prefix  = 16383
	simplePrefixUB = 64
)

var ss58Context = []byte("SS58PRE")

// DecodeAddress decodes an SS58 address into its network prefix and 32-byte account id.
func DecodeAddress(address string) (uint16, []byte, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) < 1 {
		return 0, nil, ErrInvalidAddress
	}

	var (
		prefix    uint16
		prefixLen int
	)
	switch {
	case raw[0] < simplePrefixUB:
		prefix, prefixLen = uint16(raw[0]), 1
	case raw[0] < 128:
		if len(raw) < 2 {
			return 0, nil, ErrInvalidAddress
		}
		lower := (raw[0] << 2) | (raw[1] >> 6)
		upper := raw[1] & 0x3f
		prefix, prefixLen = uint16(lower)|uint16(upper)<<8, 2
	default:
		return 0, nil, fmt.Errorf("%w: reserved prefix byte %d", ErrInvalidAddress, raw[0])
	}

	if len(raw) != prefixLen+accountIDLen+checksumLen {
		return 0, nil, fmt.Errorf("%w: unexpected length %d", ErrInvalidAddress, len(raw))
	}

	body := raw[:prefixLen+accountIDLen]
	sum, err := ss58Checksum(body)
	if err != nil {
		return 0, nil, err
	}
	if !bytes.Equal(sum, raw[prefixLen+accountIDLen:]) {
		return 0, nil, fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
	}

	accountID := make([]byte, accountIDLen)
	copy(accountID, raw[prefixLen:prefixLen+accountIDLen])
	return prefix, accountID, nil
}

// EncodeAddress encodes a 32-byte account id as an SS58 address for the given network prefix.
func EncodeAddress(accountID []byte, prefix uint16) (string, error) {
	if len(accountID) != accountIDLen {
		return "", fmt.Errorf("account id must be %d bytes, got %d", accountIDLen, len(accountID))
	}
	if prefix > maxSS58Prefix {
		return "", fmt.Errorf("ss58 prefix %d out of range", prefix)
	}

	var body []byte
	if prefix < simplePrefixUB {
		body = append(body, byte(prefix))
	} else {
		first := byte((prefix&0x00fc)>>2) | 0x40
		second := byte(prefix>>8) | byte((prefix&0x0003)<<6)
		body = append(body, first, second)
	}
	body = append(body, accountID...)

	sum, err := ss58Checksum(body)
	if err != nil {
		return "", err
	}
	return base58.Encode(append(body, sum...)), nil
}

// AccountID returns the raw account id behind an SS58 address.
func AccountID(address string) ([]byte, error) {
	_, id, err := DecodeAddress(address)
	return id, err
}

func ss58Checksum(body []byte) ([]byte, error) {
	h, err := blake2b.New512(nil)
	if err != nil {
		return nil, fmt.Errorf("init blake2b: %w", err)
	}
	h.Write(ss58Context)
	h.Write(body)
	return h.Sum(nil)[:checksumLen], nil
}
