// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package imagestore

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(s.RevokeAll)
	return s
}

func TestDecodeWritesFile(t *testing.T) {
	s := newTestStore(t)
	payload := base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))

	h, err := s.Decode(payload, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	data, err := os.ReadFile(h.Location())
	if err != nil {
		t.Fatalf("reading handle location failed: %v", err)
	}
	if string(data) != "fake-png-bytes" {
		t.Errorf("decoded content = %q", data)
	}
	if s.LiveCount() != 1 {
		t.Errorf("LiveCount = %d, want 1", s.LiveCount())
	}
}

func TestDecodeRemoteURLOnly(t *testing.T) {
	s := newTestStore(t)

	h, err := s.Decode("", "https://img.example/a.png")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if h.Location() != "https://img.example/a.png" {
		t.Errorf("Location = %q", h.Location())
	}

	// Remote handles have no bytes to save.
	if err := s.SaveTo(h, filepath.Join(t.TempDir(), "out.png")); err == nil {
		t.Error("SaveTo on remote handle should fail")
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Decode("", ""); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestDecodeBadBase64(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Decode("!!!not-base64!!!", ""); err == nil {
		t.Error("expected decode error")
	}
	if s.LiveCount() != 0 {
		t.Errorf("failed decode leaked a handle: LiveCount = %d", s.LiveCount())
	}
}

func TestRevokeRemovesFileAndForgets(t *testing.T) {
	s := newTestStore(t)
	payload := base64.StdEncoding.EncodeToString([]byte("bytes"))
	h, err := s.Decode(payload, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	path := h.Path

	h.Revoke()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("backing file still exists after revoke")
	}
	if s.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0", s.LiveCount())
	}

	// Revoke is idempotent.
	h.Revoke()
}

func TestSaveToKeepsHandleLive(t *testing.T) {
	s := newTestStore(t)
	payload := base64.StdEncoding.EncodeToString([]byte("png"))
	h, _ := s.Decode(payload, "")

	dest := filepath.Join(t.TempDir(), "saved.png")
	if err := s.SaveTo(h, dest); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	saved, _ := os.ReadFile(dest)
	if string(saved) != "png" {
		t.Errorf("saved content = %q", saved)
	}
	// Download does not revoke: the record is still displayed.
	if s.LiveCount() != 1 {
		t.Errorf("LiveCount = %d, want 1", s.LiveCount())
	}
}

func TestRevokeAll(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	payload := base64.StdEncoding.EncodeToString([]byte("x"))
	a, _ := s.Decode(payload, "")
	b, _ := s.Decode(payload, "")

	s.RevokeAll()
	if s.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0", s.LiveCount())
	}
	for _, h := range []*Handle{a, b} {
		if _, err := os.Stat(h.Path); !os.IsNotExist(err) {
			t.Errorf("file %s survived RevokeAll", h.Path)
		}
	}
}
