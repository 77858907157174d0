package timeutil

import "time"

// Clock supplies the current instant. Window and activity computations take
// their "now" from a Clock rather than the ambient system time so the
// selection logic stays deterministic under test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
