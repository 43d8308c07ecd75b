package billing

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce matches the input debounce window observed in production:
// rapid seat/cycle changes coalesce into one engine call every 300ms.
const DefaultDebounce = 300 * time.Millisecond

// ComputeFunc produces a preview for a (seats, cycle) pair. In production
// this is the billing service's engine-with-fallback path.
type ComputeFunc func(ctx context.Context, seats int, cycle Cycle) Preview

// PreviewFetcher serializes rapid preview requests: inputs inside the
// debounce window collapse into a single computation, and when a newer
// request is issued before an older one resolves the older result is
// discarded (last-request-wins) so a stale preview can never overwrite a
// fresher one.
type PreviewFetcher struct {
	compute  ComputeFunc
	debounce time.Duration
	results  chan Preview

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	seats  int
	cycle  Cycle
	closed bool
}

func NewPreviewFetcher(compute ComputeFunc, debounce time.Duration) *PreviewFetcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &PreviewFetcher{
		compute:  compute,
		debounce: debounce,
		results:  make(chan Preview, 1),
	}
}

// Results delivers at most the latest preview; consumers range over it.
func (f *PreviewFetcher) Results() <-chan Preview { return f.results }

// Request schedules a preview for (seats, cycle). Calls within the debounce
// window replace the pending input and restart the window; the computation
// itself runs off the caller's goroutine so input handling never blocks.
func (f *PreviewFetcher) Request(ctx context.Context, seats int, cycle Cycle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.seq++
	mySeq := f.seq
	f.seats, f.cycle = seats, cycle

	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.debounce, func() {
		f.fire(ctx, mySeq)
	})
}

func (f *PreviewFetcher) fire(ctx context.Context, mySeq uint64) {
	f.mu.Lock()
	if f.closed || f.seq != mySeq {
		f.mu.Unlock()
		return
	}
	seats, cycle := f.seats, f.cycle
	f.mu.Unlock()

	preview := f.compute(ctx, seats, cycle)

	f.mu.Lock()
	defer f.mu.Unlock()
	// Re-check: a newer request may have been issued while computing, or the
	// fetcher may have been closed (unmount) — both make this result stale.
	if f.closed || f.seq != mySeq {
		return
	}
	// Drop an unconsumed older preview so the channel always holds the latest.
	select {
	case <-f.results:
	default:
	}
	f.results <- preview
}

// Close stops the fetcher; pending timers are cancelled and in-flight
// computations are suppressed rather than delivered.
func (f *PreviewFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
	}
	close(f.results)
}
