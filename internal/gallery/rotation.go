package gallery

import (
	"fmt"
	"time"
)

// Rotation holds the skill gallery's timer settings.
type Rotation struct {
	Narrow time.Duration
	Wide   time.Duration
}

// DefaultRotation returns the stock intervals.
func DefaultRotation() Rotation {
	return Rotation{Narrow: DefaultNarrowRotation, Wide: DefaultWideRotation}
}

// Validate checks that both intervals are positive and that narrow screens,
// which show one bucket at a time, dwell longer than wide ones.
func (r Rotation) Validate() error {
	if r.Narrow <= 0 || r.Wide <= 0 {
		return fmt.Errorf("rotation intervals must be positive (narrow %s, wide %s)", r.Narrow, r.Wide)
	}
	if r.Narrow <= r.Wide {
		return fmt.Errorf("narrow rotation %s must be longer than wide rotation %s", r.Narrow, r.Wide)
	}
	return nil
}

// Interval picks the timer period for a viewport.
func (r Rotation) Interval(v Viewport) time.Duration {
	if v.NarrowSkills() {
		return r.Narrow
	}
	return r.Wide
}

// Active resolves a requested bucket position to one that holds skills.
// An empty bucket resolves to the next non-empty one in display order.
// It returns -1 when every bucket is empty.
func (b Buckets) Active(requested int) int {
	n := len(b.Buckets)
	if n == 0 {
		return -1
	}
	start := wrap(requested, n)
	for step := 0; step < n; step++ {
		i := (start + step) % n
		if !b.Buckets[i].Empty() {
			return i
		}
	}
	return -1
}

// Advance moves from the current active bucket to the next non-empty one,
// wrapping past the end. It returns -1 when every bucket is empty.
func (b Buckets) Advance(current int) int {
	if len(b.Buckets) == 0 {
		return -1
	}
	return b.Active(current + 1)
}
