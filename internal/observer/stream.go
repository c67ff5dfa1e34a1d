package observer

import (
	"time"

	channerics "github.com/niceyeti/channerics/channels"

	"github.com/evocore/ecosim/internal/ecosim"
)

// StateStream fans a timer pulse at the configured update rate out to any
// number of subscribers, which then read the wrapped Coordinator through
// Snapshot. The pulse is not tied to simulation tick completion. Grounded on
// original_source/src/server/state_stream.rs's single-reader StateStream
// widened to multiple websocket clients via
// _examples/niceyeti-tabular/server/fastview/fastview.go's channerics-based
// broadcast.
type StateStream struct {
	coord *ecosim.Coordinator
	ticks <-chan time.Time
	done  chan struct{}

	subscribe   chan chan struct{}
	unsubscribe chan chan struct{}
}

// NewStateStream wraps coord, sampling it at the given rate once Run is
// called.
func NewStateStream(coord *ecosim.Coordinator, updateRateHz uint64) *StateStream {
	if updateRateHz == 0 {
		updateRateHz = 1
	}
	period := time.Duration(1000/updateRateHz) * time.Millisecond
	return &StateStream{
		coord:       coord,
		ticks:       time.NewTicker(period).C,
		done:        make(chan struct{}),
		subscribe:   make(chan chan struct{}),
		unsubscribe: make(chan chan struct{}),
	}
}

// Run fans out each timer pulse to every subscriber until Stop is
// called. Must run in its own goroutine.
func (ss *StateStream) Run() {
	subscribers := make(map[chan struct{}]struct{})
	tickCh := channerics.OrDone[time.Time](ss.done, ss.ticks)

	for {
		select {
		case <-ss.done:
			for ch := range subscribers {
				close(ch)
			}
			return
		case ch := <-ss.subscribe:
			subscribers[ch] = struct{}{}
		case ch := <-ss.unsubscribe:
			delete(subscribers, ch)
		case _, ok := <-tickCh:
			if !ok {
				continue
			}
			for ch := range subscribers {
				select {
				case ch <- struct{}{}:
				default:
					// Slow subscriber: drop this pulse rather than block the stream.
				}
			}
		}
	}
}

// Subscribe registers a new pulse channel; the caller must Unsubscribe
// when done.
func (ss *StateStream) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	select {
	case ss.subscribe <- ch:
	case <-ss.done:
	}
	return ch
}

// Unsubscribe deregisters a channel previously returned by Subscribe.
func (ss *StateStream) Unsubscribe(ch chan struct{}) {
	select {
	case ss.unsubscribe <- ch:
	case <-ss.done:
	}
}

// Stop shuts the stream down, closing every subscriber channel.
func (ss *StateStream) Stop() {
	close(ss.done)
}

// Snapshot runs fn on the wrapped state under the Coordinator's reader
// lock, used by a subscriber after waking on a pulse.
func (ss *StateStream) Snapshot(fn func(*ecosim.SimulationState)) {
	ss.coord.Read(fn)
}
