package progress

import "time"

// maxSamples bounds the moving window used for rate estimation so a long
// backfill doesn't let stale early samples skew the current rate.
const maxSamples = 20

type sample struct {
	at    time.Time
	block uint64
}

// Tracker estimates a chain's processing rate from recent (timestamp,
// blockNumber) samples, the same shape as the teacher's blocksBehind gauge
// math in internal/syncer.syncToHead/runBackfill, generalized into a
// reusable ETA estimator instead of one inline gauge update.
type Tracker struct {
	samples []sample
	target  uint64
}

// NewTracker starts a tracker aiming for targetBlock (the chain's latest
// known head at tracker creation; call SetTarget as the head advances).
func NewTracker(targetBlock uint64) *Tracker {
	return &Tracker{target: targetBlock}
}

// SetTarget updates the block the tracker is estimating completion against
// (the chain's current head), called each time the realtime sync service
// observes a new one.
func (t *Tracker) SetTarget(blockNumber uint64) {
	t.target = blockNumber
}

// Observe records that blockNumber was processed at time at.
func (t *Tracker) Observe(at time.Time, blockNumber uint64) {
	t.samples = append(t.samples, sample{at: at, block: blockNumber})
	if len(t.samples) > maxSamples {
		t.samples = t.samples[len(t.samples)-maxSamples:]
	}
}

// BlocksBehind reports how far the most recent observation trails target.
func (t *Tracker) BlocksBehind() uint64 {
	if len(t.samples) == 0 {
		return t.target
	}
	current := t.samples[len(t.samples)-1].block
	if current >= t.target {
		return 0
	}
	return t.target - current
}

// RatePerSecond returns the blocks/second rate across the sample window, or
// 0 if there aren't at least two samples spanning positive wall-clock time.
func (t *Tracker) RatePerSecond() float64 {
	if len(t.samples) < 2 {
		return 0
	}
	first := t.samples[0]
	last := t.samples[len(t.samples)-1]
	elapsed := last.at.Sub(first.at).Seconds()
	if elapsed <= 0 || last.block <= first.block {
		return 0
	}
	return float64(last.block-first.block) / elapsed
}

// ETA estimates the remaining wall-clock duration to reach target, or false
// if the rate can't yet be estimated (too few samples) or backfill is
// already complete.
func (t *Tracker) ETA() (time.Duration, bool) {
	behind := t.BlocksBehind()
	if behind == 0 {
		return 0, false
	}
	rate := t.RatePerSecond()
	if rate <= 0 {
		return 0, false
	}
	seconds := float64(behind) / rate
	return time.Duration(seconds * float64(time.Second)), true
}
