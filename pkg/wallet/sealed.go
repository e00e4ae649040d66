package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const sealInfo = "npo-governor-contract-key"

// SealKey encrypts a 32-byte secp256k1 private key with AES-256-GCM under a
// key derived from passphrase. The result is base64(nonce || ciphertext || tag).
func SealKey(privateKey, passphrase []byte) (string, error) {
	if len(privateKey) != 32 {
		return "", fmt.Errorf("private key must be 32 bytes, got %d", len(privateKey))
	}
	gcm, err := newGCM(passphrase)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return base64.StdEncoding.EncodeToString(gcm.Seal(nonce, nonce, privateKey, nil)), nil
}

// OpenKey reverses SealKey.
func OpenKey(sealed string, passphrase []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sealed key: %w", err)
	}
	gcm, err := newGCM(passphrase)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(raw) < nonceSize {
		return nil, errors.New("sealed key too short")
	}
	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]

	key, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt sealed key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("decrypted key has wrong size: got %d, want 32", len(key))
	}
	return key, nil
}

func newGCM(passphrase []byte) (cipher.AEAD, error) {
	if len(passphrase) < 16 {
		return nil, errors.New("passphrase must be at least 16 bytes")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, passphrase, nil, []byte(sealInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive sealing key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
