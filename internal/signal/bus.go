// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package signal is the in-process broadcast channel between the shell and
// the mounted mode panel.
//
// The shell cannot hold a direct handle to the active panel because panels
// are mounted and unmounted as the user switches tabs. Instead it publishes
// named signals on a Bus; the currently-mounted panel subscribes on
// activation and cancels on deactivation. Delivery is fire-and-forget:
// a panel that is not subscribed when a signal fires never sees it.
package signal

import "sync"

// Kind names a broadcast signal.
type Kind int

const (
	// NewSession clears the active mode's session.
	NewSession Kind = iota
	// Export triggers the active mode's transcript export.
	Export
)

// String returns the signal name.
func (k Kind) String() string {
	switch k {
	case NewSession:
		return "new-session"
	case Export:
		return "export"
	default:
		return "unknown"
	}
}

// Subscription is one observer's registration on the bus.
type Subscription struct {
	// C delivers signals published while the subscription is active.
	C <-chan Kind

	bus  *Bus
	ch   chan Kind
	once sync.Once
}

// Cancel removes the subscription and closes C, unblocking any pending
// receive. Signals published afterwards are not delivered. Safe to call more
// than once. Publishers send under the bus mutex, so once remove returns no
// send can race the close.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.bus.remove(s)
		close(s.ch)
	})
}

// Bus is an explicit observer registry. Safe for concurrent use.
type Bus struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers an observer and returns its subscription.
func (b *Bus) Subscribe() *Subscription {
	ch := make(chan Kind, 4)
	sub := &Subscription{C: ch, ch: ch, bus: b}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Publish broadcasts a signal to every active subscription. Delivery is
// non-blocking: a subscriber that has fallen behind misses the signal rather
// than stalling the publisher.
func (b *Bus) Publish(k Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.ch <- k:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}
