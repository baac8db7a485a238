// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// Image holds the image-generation session: a newest-first, append-only log
// of image records. Each record owns a locally-allocated display handle that
// is revoked when the record is removed, when the session clears, or at
// teardown. No handle outlives its record.
type Image struct {
	records []ImageRecord
	gate    Gate
}

// NewImage creates an empty image session.
func NewImage() *Image {
	return &Image{}
}

// PrependBatch adds a batch of records at the head of the log, preserving
// the order they arrived in from the backend.
func (s *Image) PrependBatch(recs []ImageRecord) {
	if len(recs) == 0 {
		return
	}
	s.records = append(append([]ImageRecord{}, recs...), s.records...)
}

// Records returns a copy of the log, newest first.
func (s *Image) Records() []ImageRecord {
	out := make([]ImageRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given identifier.
func (s *Image) Get(id string) (ImageRecord, bool) {
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return ImageRecord{}, false
}

// Len returns the number of records.
func (s *Image) Len() int {
	return len(s.records)
}

// IsEmpty reports whether the session has no records.
func (s *Image) IsEmpty() bool {
	return len(s.records) == 0
}

// Remove deletes a record and revokes its handle. Returns false if the
// record did not exist.
func (s *Image) Remove(id string) bool {
	for i, rec := range s.records {
		if rec.ID == id {
			if rec.Handle != nil {
				rec.Handle.Revoke()
			}
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the log, revoking every handle. Triggered by the broadcast
// new-session signal and by component teardown.
func (s *Image) Clear() {
	for _, rec := range s.records {
		if rec.Handle != nil {
			rec.Handle.Revoke()
		}
	}
	s.records = nil
}

// Gate returns the session's single-in-flight generation gate.
func (s *Image) Gate() *Gate {
	return &s.gate
}
