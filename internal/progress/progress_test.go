package progress_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/progress"
)

func TestClassifyRetryable(t *testing.T) {
	err := &progress.RetryableError{Err: errors.New("rpc timeout")}
	require.Equal(t, progress.Retryable, progress.Classify(err))
	require.Equal(t, progress.Retryable, progress.Classify(fmt.Errorf("wrapped: %w", err)))
}

func TestClassifyFatal(t *testing.T) {
	err := &progress.FatalError{Reason: "unrecoverable reorg beyond finalized block 100"}
	require.Equal(t, progress.Fatal, progress.Classify(err))
}

func TestClassifyUnknownForBareError(t *testing.T) {
	require.Equal(t, progress.Unknown, progress.Classify(errors.New("boom")))
	require.Equal(t, progress.Unknown, progress.Classify(nil))
}

func TestTrackerBlocksBehindAndRate(t *testing.T) {
	tr := progress.NewTracker(1000)
	base := time.Unix(0, 0)
	tr.Observe(base, 800)
	tr.Observe(base.Add(10*time.Second), 900)

	require.Equal(t, uint64(100), tr.BlocksBehind())
	require.InDelta(t, 10.0, tr.RatePerSecond(), 0.001)

	eta, ok := tr.ETA()
	require.True(t, ok)
	require.Equal(t, 10*time.Second, eta)
}

func TestTrackerETAFalseWhenComplete(t *testing.T) {
	tr := progress.NewTracker(100)
	tr.Observe(time.Unix(0, 0), 100)
	_, ok := tr.ETA()
	require.False(t, ok)
}

func TestTrackerETAFalseWithoutEnoughSamples(t *testing.T) {
	tr := progress.NewTracker(1000)
	tr.Observe(time.Unix(0, 0), 1)
	_, ok := tr.ETA()
	require.False(t, ok)
}

func innerFrame() []progress.Frame {
	return progress.CaptureUserStack("/root/module/internal/progress", 0)
}

func TestCaptureUserStackKeepsOnlyUserFrames(t *testing.T) {
	frames := innerFrame()
	require.NotEmpty(t, frames)
	for _, f := range frames {
		require.Contains(t, f.File, "/root/module/internal/progress")
	}
}

func TestHandlerErrorKilledMessage(t *testing.T) {
	err := &progress.HandlerError{
		Meta:   progress.EventMeta{HandlerName: "Pool:Swap", BlockNumber: 42},
		Killed: true,
	}
	require.Contains(t, err.Error(), "killed")
}
