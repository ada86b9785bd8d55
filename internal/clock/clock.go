package clock

import "time"

// Clock supplies the current instant. Injected so the scheduler and the
// analytics use cases stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
