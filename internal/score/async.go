package score

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// AsyncStore wraps a Store so Save hands the value to a background writer
// and returns at once. Saves that arrive while a write is in flight are
// coalesced into one write of the latest value.
type AsyncStore struct {
	inner Store
	log   *log.Logger

	mu      sync.Mutex
	latest  int
	written bool // latest has been passed to Save at least once
	dirty   bool // latest not yet handed to inner
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewAsyncStore starts the writer goroutine. Call Close to flush and stop it.
func NewAsyncStore(inner Store, logger *log.Logger) *AsyncStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &AsyncStore{
		inner: inner,
		log:   logger,
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go a.writeLoop()
	return a
}

// Load reads the wrapped store, but never returns less than a value still
// waiting to be written.
func (a *AsyncStore) Load() (int, error) {
	a.mu.Lock()
	latest, written := a.latest, a.written
	a.mu.Unlock()

	v, err := a.inner.Load()
	if written && (err != nil || latest > v) {
		return latest, nil
	}
	return v, err
}

// Save queues score for writing. Write errors are logged by the writer.
// After Close it writes synchronously.
func (a *AsyncStore) Save(score int) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return a.inner.Save(score)
	}
	a.latest, a.written, a.dirty = score, true, true
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
	return nil
}

// Close writes any queued score and waits for the writer to exit.
func (a *AsyncStore) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		<-a.done
		return
	}
	a.closed = true
	a.mu.Unlock()

	close(a.stop)
	<-a.done
}

func (a *AsyncStore) writeLoop() {
	defer close(a.done)
	for {
		select {
		case <-a.wake:
			a.flush()
		case <-a.stop:
			a.flush()
			return
		}
	}
}

func (a *AsyncStore) flush() {
	a.mu.Lock()
	v, dirty := a.latest, a.dirty
	a.dirty = false
	a.mu.Unlock()
	if !dirty {
		return
	}
	if err := a.inner.Save(v); err != nil {
		a.log.Warn("Failed to save high score", "score", v, "err", err)
	}
}
