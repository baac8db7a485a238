// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// Gate enforces at most one in-flight generation per mode instance. A second
// generation is never attempted while one is outstanding; the controls that
// would trigger it stay disabled until the gate clears.
type Gate struct {
	busy bool
}

// TryAcquire marks the gate busy and returns true, or returns false if a
// generation is already in flight.
func (g *Gate) TryAcquire() bool {
	if g.busy {
		return false
	}
	g.busy = true
	return true
}

// Release clears the gate. Always called on completion, success or failure.
func (g *Gate) Release() {
	g.busy = false
}

// Busy reports whether a generation is in flight.
func (g *Gate) Busy() bool {
	return g.busy
}
