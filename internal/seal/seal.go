// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package seal obfuscates the API credential before it leaves the process.
//
// Every outbound request payload carries the credential in sealed form:
// AES-256-GCM over the trimmed raw key, with the AES key derived from a
// process-wide static secret via PBKDF2-SHA-256. The backend holds the same
// secret and unseals on arrival.
//
// This is obfuscation in transit, NOT access control: anyone with a copy of
// the client binary can recover the static secret and therefore the raw key.
// Genuine secret handling belongs on the server side.
package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// SealedPrefix marks a value as sealed (format: ENC:base64(salt|nonce|ciphertext|tag))
const SealedPrefix = "ENC:"

// NonceSize is the size of the nonce/IV for AES-GCM (12 bytes / 96 bits)
const NonceSize = 12

// KeySize is the size of the AES-256 key (32 bytes / 256 bits)
const KeySize = 32

// SaltSize is the size of the salt for key derivation (16 bytes)
const SaltSize = 16

// PBKDF2Iterations is the number of iterations for PBKDF2-SHA-256 key
// derivation. The derived key guards nothing the binary does not already
// contain, so the count is kept low enough to seal on every keystroke-free
// request without noticeable latency.
const PBKDF2Iterations = 10000

// DefaultSecret is the baked-in static secret used when configuration does
// not supply one. Matches the secret compiled into the backend.
const DefaultSecret = "aistudio-static-transit-secret"

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyCredential indicates there was nothing to seal.
	ErrEmptyCredential = errors.New("credential is empty")
	// ErrInvalidSealed indicates the sealed format is invalid.
	ErrInvalidSealed = errors.New("invalid sealed credential format")
	// ErrUnsealFailed indicates unsealing failed (wrong secret or tampered data).
	ErrUnsealFailed = errors.New("unseal failed: authentication tag mismatch")
)

// ZeroBytes securely zeros sensitive byte slices to prevent memory disclosure.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// =============================================================================
// SEALER
// =============================================================================

// Sealer seals credentials with a fixed process-wide secret.
type Sealer struct {
	secret string
}

// New creates a Sealer for the given static secret. An empty secret falls
// back to the baked-in default.
func New(secret string) *Sealer {
	if secret == "" {
		secret = DefaultSecret
	}
	return &Sealer{secret: secret}
}

// deriveKey derives the AES key from the static secret and a per-seal salt
// using PBKDF2-SHA-256.
func (s *Sealer) deriveKey(salt []byte) []byte {
	return pbkdf2.Key([]byte(s.secret), salt, PBKDF2Iterations, KeySize, sha256.New)
}

// Seal encrypts the trimmed raw credential and returns the wire form
// "ENC:" + base64(salt | nonce | ciphertext+tag).
func (s *Sealer) Seal(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyCredential
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := s.deriveKey(salt)
	defer ZeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, []byte(raw), nil)

	buf := make([]byte, 0, SaltSize+NonceSize+len(ciphertext))
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, ciphertext...)

	return SealedPrefix + base64.StdEncoding.EncodeToString(buf), nil
}

// Open reverses Seal. The client never needs this in normal operation (the
// backend unseals); it exists for symmetry and tests.
func (s *Sealer) Open(sealed string) (string, error) {
	if !strings.HasPrefix(sealed, SealedPrefix) {
		return "", ErrInvalidSealed
	}

	buf, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sealed, SealedPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSealed, err)
	}
	if len(buf) < SaltSize+NonceSize+1 {
		return "", ErrInvalidSealed
	}

	salt := buf[:SaltSize]
	nonce := buf[SaltSize : SaltSize+NonceSize]
	ciphertext := buf[SaltSize+NonceSize:]

	key := s.deriveKey(salt)
	defer ZeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrUnsealFailed
	}
	return string(plaintext), nil
}

// IsSealed reports whether a value is already in sealed wire form.
func IsSealed(v string) bool {
	return strings.HasPrefix(v, SealedPrefix)
}
