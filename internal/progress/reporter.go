package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultInterval is the reporter's polling cadence.
const DefaultInterval = 250 * time.Millisecond

// Sink receives status emissions from a Reporter.
type Sink interface {
	Emit(done, max int64)
}

// WriterSink renders a status line to w, rewriting it in place and
// terminating it once done reaches max.
type WriterSink struct {
	W io.Writer
}

// Emit implements Sink.
func (s WriterSink) Emit(done, max int64) {
	if done >= max {
		fmt.Fprintf(s.W, "\rfetched %d/%d segments\n", done, max)
		return
	}
	fmt.Fprintf(s.W, "\rfetched %d/%d segments", done, max)
}

// Reporter polls a shared Counter at a fixed cadence on a background
// goroutine and emits a status line whenever the observed value changed.
// It terminates itself once the value reaches max; Stop is idempotent
// and triggers a final emission.
type Reporter struct {
	counter  *Counter
	max      int64
	interval time.Duration
	sink     Sink

	stop     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

// NewReporter returns a Reporter over counter that finishes at max.
// A non-positive interval falls back to DefaultInterval.
func NewReporter(counter *Counter, max int64, interval time.Duration, sink Sink) *Reporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reporter{
		counter:  counter,
		max:      max,
		interval: interval,
		sink:     sink,
		stop:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start launches the background loop. Call it once per Reporter.
func (r *Reporter) Start() {
	go r.loop()
}

// Stop halts the reporter, emitting a final status line, and waits for
// the background loop to exit. Safe to call more than once, and a no-op
// emission-wise if the loop already finished on its own.
func (r *Reporter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.finished
}

func (r *Reporter) loop() {
	defer close(r.finished)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := int64(-1)
	for {
		select {
		case <-r.stop:
			r.sink.Emit(r.counter.Done(), r.max)
			return
		case <-ticker.C:
			v := r.counter.Done()
			if v != last {
				r.sink.Emit(v, r.max)
				last = v
			}
			if v >= r.max {
				return
			}
		}
	}
}
