package state

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerConcurrentTicks(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(true)

	var wg sync.WaitGroup
	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				tracker.Tick()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(5000), tracker.APICalls())
}

func TestTrackerRepoDoneQuiet(t *testing.T) {
	t.Parallel()

	// Quiet trackers still count, they just don't print.
	tracker := NewTracker(true)
	tracker.RepoDone("o/r", nil)
	tracker.RepoDone("o/broken", errors.New("boom"))
	tracker.Summary()

	assert.Equal(t, int64(0), tracker.APICalls())
}
