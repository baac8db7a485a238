// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package imagestore owns the locally-allocated display handles behind
// generated images.
//
// Each base64 image payload from the backend is decoded into a temp file
// under a per-process session directory and wrapped in a Handle. A handle is
// session-scoped: it must be revoked when its record is removed, when the
// session clears, or at teardown, otherwise live handles grow without bound.
// RevokeAll at shutdown removes the whole session directory.
package imagestore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/aistudio-tui/internal/util"
)

// ErrEmptyPayload indicates an image payload with neither inline data nor a URL.
var ErrEmptyPayload = errors.New("image payload is empty")

// Handle is one displayable image resource. Either Path points at a decoded
// temp file, or URL references a remote image that was never materialized
// locally.
type Handle struct {
	ID   string
	Path string
	URL  string

	store *Store
	once  sync.Once
}

// Location returns where the image can be displayed from: the local path
// when one exists, otherwise the remote URL.
func (h *Handle) Location() string {
	if h.Path != "" {
		return h.Path
	}
	return h.URL
}

// Revoke releases the handle, deleting the backing temp file. Safe to call
// more than once.
func (h *Handle) Revoke() {
	h.once.Do(func() {
		if h.Path != "" {
			os.Remove(h.Path)
		}
		if h.store != nil {
			h.store.forget(h.ID)
		}
	})
}

// Store allocates and tracks live handles for one process.
type Store struct {
	mu   sync.Mutex
	dir  string
	live map[string]*Handle
}

// New creates a store backed by a fresh temp directory.
func New() (*Store, error) {
	dir, err := os.MkdirTemp("", "aistudio-images-")
	if err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &Store{dir: dir, live: make(map[string]*Handle)}, nil
}

// Decode materializes one base64 payload into a temp file and returns its
// handle. When b64 is empty but url is set, the handle references the remote
// image without local bytes.
func (s *Store) Decode(b64, url string) (*Handle, error) {
	if b64 == "" && url == "" {
		return nil, ErrEmptyPayload
	}

	h := &Handle{ID: uuid.NewString(), URL: url, store: s}

	if b64 != "" {
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image payload: %w", err)
		}
		path := filepath.Join(s.dir, h.ID+".png")
		if err := os.WriteFile(path, data, 0600); err != nil {
			return nil, fmt.Errorf("failed to write image file: %w", err)
		}
		h.Path = path
	}

	s.mu.Lock()
	s.live[h.ID] = h
	s.mu.Unlock()
	return h, nil
}

// SaveTo copies a handle's bytes to the user's chosen path. This is the
// download action: the handle itself stays live because its record is still
// displayed.
func (s *Store) SaveTo(h *Handle, path string) error {
	if h.Path == "" {
		return fmt.Errorf("image has no local bytes (remote URL: %s)", h.URL)
	}
	data, err := os.ReadFile(h.Path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	return util.AtomicWriteFile(path, data, 0644)
}

// LiveCount returns the number of unrevoked handles.
func (s *Store) LiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// RevokeAll revokes every live handle and removes the session directory.
// Called at component teardown.
func (s *Store) RevokeAll() {
	s.mu.Lock()
	handles := make([]*Handle, 0, len(s.live))
	for _, h := range s.live {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	for _, h := range handles {
		h.Revoke()
	}
	os.RemoveAll(s.dir)
}

func (s *Store) forget(id string) {
	s.mu.Lock()
	delete(s.live, id)
	s.mu.Unlock()
}
