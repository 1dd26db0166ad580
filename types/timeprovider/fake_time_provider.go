/**
 * Copyright (C) Couchbase, Inc 2025 - All Rights Reserved
 * Unauthorized copying of this file, via any medium is strictly prohibited
 * Proprietary and confidential
 */
package timeprovider

import (
	"sync"
	"time"
)

// FakeTimeProvider implements 'TimeProvider' where waiting never blocks; each call to 'After' immediately advances the
// clock by the requested duration and records it.
type FakeTimeProvider struct {
	lock   sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

var _ TimeProvider = &FakeTimeProvider{}

func NewFakeTimeProvider(start time.Time) *FakeTimeProvider {
	return &FakeTimeProvider{now: start}
}

func (f *FakeTimeProvider) Now() time.Time {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.now
}

func (f *FakeTimeProvider) After(d time.Duration) <-chan time.Time {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.now = f.now.Add(d)
	f.sleeps = append(f.sleeps, d)

	ch := make(chan time.Time, 1)
	ch <- f.now

	return ch
}

// AdvanceTimeBy advances the time by 'd' without recording a wait.
func (f *FakeTimeProvider) AdvanceTimeBy(d time.Duration) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.now = f.now.Add(d)
}

// Sleeps returns every duration waited for through 'After', in order.
func (f *FakeTimeProvider) Sleeps() []time.Duration {
	f.lock.Lock()
	defer f.lock.Unlock()

	return append([]time.Duration(nil), f.sleeps...)
}
