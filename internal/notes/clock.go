package notes

import (
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// stamp normalizes a timestamp to the persisted precision.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// nextUpdate returns an updatedAt strictly after prev.
func nextUpdate(prev, now time.Time) time.Time {
	now = stamp(now)
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

// NewID returns a time-ordered unique note id (UUIDv7).
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
