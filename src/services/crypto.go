package services

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

// tokenSealerInfo separates the sealing key from the signing key
const tokenSealerInfo = "jwt-auth-web session api-token v1"

// errSealedTokenMalformed is returned for sealed values that fail to open
var errSealedTokenMalformed = errors.New("sealed token malformed")

// TokenSealer encrypts the upstream API token carried inside the session
// JWT with AES-256-GCM. The JWT is only signed, so without sealing the
// token would be readable by anyone holding the cookie value.
type TokenSealer struct {
	gcm cipher.AEAD
}

// NewTokenSealer derives a 32-byte AES key from secret with HKDF-SHA256
func NewTokenSealer(secret []byte) (*TokenSealer, error) {
	if len(secret) == 0 {
		return nil, ErrSecretNotConfigured
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(tokenSealerInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive sealing key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &TokenSealer{gcm: gcm}, nil
}

// Seal encrypts plaintext and returns base64url(nonce || ciphertext).
// An empty plaintext seals to an empty string.
func (s *TokenSealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := s.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal
func (s *TokenSealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errSealedTokenMalformed, err)
	}

	nonceSize := s.gcm.NonceSize()
	if len(raw) < nonceSize+s.gcm.Overhead() {
		return "", errSealedTokenMalformed
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := s.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errSealedTokenMalformed, err)
	}

	return string(plaintext), nil
}
