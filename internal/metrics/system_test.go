package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnitConversions(t *testing.T) {
	assert.Equal(t, 1.0, bytesToGB(1<<30))
	assert.Equal(t, 0.5, bytesToGB(1<<29))
	assert.Equal(t, 1.0, bytesToMB(1<<20))
	assert.Equal(t, 0.0, bytesToGB(0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 42.35, round2(42.345001))
	assert.Equal(t, 42.34, round2(42.344))
	assert.Equal(t, 0.0, round2(0))
}

func TestProviderConcurrentSnapshots(t *testing.T) {
	p := NewSystemProvider(10 * time.Millisecond)
	defer p.Close()

	// Snapshots arrive from both tick loops and web handlers at once; the
	// lazy window connection must stay race-free under that load.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, _ = p.Snapshot()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = p.Close()
	}()
	wg.Wait()

	assert.NoError(t, p.Close())
}

func TestInputCounterInactiveStats(t *testing.T) {
	c := newInputCounter(10 * time.Millisecond)

	keys, clicks, moves := c.Stats()
	assert.Zero(t, keys)
	assert.Zero(t, clicks)
	assert.Zero(t, moves)

	// Stop before Start is harmless.
	c.Stop()
	keys, _, _ = c.Stats()
	assert.Zero(t, keys)
}
