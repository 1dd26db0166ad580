// Package timeprovider allows components which wait on the clock to be driven by a fake clock in tests.
package timeprovider

import "time"

// TimeProvider is the clock used by components which need to wait, e.g. between polls.
type TimeProvider interface {
	Now() time.Time

	// After waits for the duration to elapse and then sends the current time on the returned channel.
	After(d time.Duration) <-chan time.Time
}

type CurrentTimeProvider struct{}

var _ TimeProvider = (*CurrentTimeProvider)(nil)

func (tp CurrentTimeProvider) Now() time.Time {
	return time.Now()
}

func (tp CurrentTimeProvider) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
