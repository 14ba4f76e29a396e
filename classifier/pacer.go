package classifier

import "time"

// DefaultPacing is the delay inserted between consecutive model calls to
// stay under upstream rate limits.
const DefaultPacing = 400 * time.Millisecond

// Pacer spaces out consecutive model calls. A pause is never inserted after
// the last message of a batch.
type Pacer interface {
	Pause()
}

// FixedDelayPacer pauses for a constant duration. The pause itself is not
// interruptible; cancellation is checked between messages instead.
type FixedDelayPacer struct {
	Delay time.Duration
}

func (p FixedDelayPacer) Pause() {
	time.Sleep(p.Delay)
}
