// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package seal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealRoundTrip(t *testing.T) {
	s := New("test-secret")

	sealed, err := s.Seal("sk-live-abc123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, SealedPrefix))

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "sk-live-abc123", opened)
}

func TestSealTrimsWhitespace(t *testing.T) {
	s := New("test-secret")

	sealed, err := s.Seal("  sk-live-abc123\n")
	require.NoError(t, err)

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "sk-live-abc123", opened)
}

func TestSealEmptyCredential(t *testing.T) {
	s := New("test-secret")

	_, err := s.Seal("")
	assert.ErrorIs(t, err, ErrEmptyCredential)

	_, err = s.Seal("   \t ")
	assert.ErrorIs(t, err, ErrEmptyCredential)
}

func TestSealNondeterministic(t *testing.T) {
	// Fresh salt and nonce per seal: the same input never produces the same
	// wire form twice.
	s := New("test-secret")

	a, err := s.Seal("sk-live-abc123")
	require.NoError(t, err)
	b, err := s.Seal("sk-live-abc123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestOpenWrongSecret(t *testing.T) {
	sealed, err := New("secret-one").Seal("sk-live-abc123")
	require.NoError(t, err)

	_, err = New("secret-two").Open(sealed)
	assert.ErrorIs(t, err, ErrUnsealFailed)
}

func TestOpenMalformed(t *testing.T) {
	s := New("test-secret")

	for name, input := range map[string]string{
		"no prefix":    "not-sealed",
		"bad base64":   SealedPrefix + "!!!not-base64!!!",
		"too short":    SealedPrefix + "AAAA",
		"empty suffix": SealedPrefix,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Open(input)
			assert.ErrorIs(t, err, ErrInvalidSealed)
		})
	}
}

func TestOpenTampered(t *testing.T) {
	s := New("test-secret")
	sealed, err := s.Seal("sk-live-abc123")
	require.NoError(t, err)

	// Flip a character in the payload body.
	body := []byte(sealed)
	last := len(body) - 2
	if body[last] == 'A' {
		body[last] = 'B'
	} else {
		body[last] = 'A'
	}
	_, err = s.Open(string(body))
	assert.Error(t, err)
}

func TestEmptySecretUsesDefault(t *testing.T) {
	sealed, err := New("").Seal("sk-live-abc123")
	require.NoError(t, err)

	opened, err := New(DefaultSecret).Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "sk-live-abc123", opened)
}

func TestIsSealed(t *testing.T) {
	assert.True(t, IsSealed("ENC:abcd"))
	assert.False(t, IsSealed("sk-live-abc123"))
}
