package metrics

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	defaultInputPollInterval = 80 * time.Millisecond

	// Cursor jitter below this many pixels does not count as a move.
	moveThresholdPx = 3
)

// inputCounter polls the X server for keyboard and mouse activity on its own
// cadence and accumulates counters. Counters are read by sampling ticks
// without any rendezvous; eventual visibility is all that is promised.
type inputCounter struct {
	interval time.Duration

	mu       sync.Mutex
	active   bool
	stopChan chan struct{}

	keys   atomic.Int64
	clicks atomic.Int64
	moves  atomic.Int64
}

func newInputCounter(interval time.Duration) *inputCounter {
	if interval <= 0 {
		interval = defaultInputPollInterval
	}
	return &inputCounter{interval: interval}
}

// Start begins polling. Calling Start while already active is a no-op.
func (c *inputCounter) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return
	}
	c.active = true
	c.stopChan = make(chan struct{})

	go c.run(c.stopChan)
}

// Stop cancels polling. Calling Stop while inactive is a no-op.
func (c *inputCounter) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return
	}
	c.active = false
	close(c.stopChan)
}

// Stats returns the accumulated counters. Zeros while monitoring is off.
func (c *inputCounter) Stats() (keys, clicks, moves int64) {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	if !active {
		return 0, 0, 0
	}
	return c.keys.Load(), c.clicks.Load(), c.moves.Load()
}

type pointerState struct {
	keymap  [32]byte
	buttons uint16
	x, y    int16
	primed  bool
}

func (c *inputCounter) run(stop chan struct{}) {
	conn, err := xgb.NewConn()
	if err != nil {
		log.Printf("input monitoring unavailable: %v", err)
		return
	}
	defer conn.Close()

	root := xproto.Setup(conn).DefaultScreen(conn).Root

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	var state pointerState
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.poll(conn, root, &state)
		}
	}
}

func (c *inputCounter) poll(conn *xgb.Conn, root xproto.Window, state *pointerState) {
	if reply, err := xproto.QueryKeymap(conn).Reply(); err == nil {
		var keymap [32]byte
		copy(keymap[:], reply.Keys)

		if state.primed {
			pressed := 0
			for i := range keymap {
				// Keys down now that were up on the previous poll.
				newBits := keymap[i] &^ state.keymap[i]
				for ; newBits != 0; newBits &= newBits - 1 {
					pressed++
				}
			}
			if pressed > 0 {
				c.keys.Add(int64(pressed))
			}
		}
		state.keymap = keymap
	}

	reply, err := xproto.QueryPointer(conn, root).Reply()
	if err != nil {
		return
	}

	if state.primed {
		buttonMasks := []uint16{xproto.ButtonMask1, xproto.ButtonMask3}
		for _, mask := range buttonMasks {
			if reply.Mask&mask != 0 && state.buttons&mask == 0 {
				c.clicks.Add(1)
			}
		}

		dx := int(reply.RootX) - int(state.x)
		dy := int(reply.RootY) - int(state.y)
		if dx > moveThresholdPx || dx < -moveThresholdPx || dy > moveThresholdPx || dy < -moveThresholdPx {
			c.moves.Add(1)
		}
	}

	state.buttons = reply.Mask
	state.x = reply.RootX
	state.y = reply.RootY
	state.primed = true
}
