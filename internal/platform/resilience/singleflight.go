package resilience

import "sync"

// SingleFlight collapses concurrent calls that share a key into one
// execution. Overlapping refresh cycles hit each upstream page at most once;
// latecomers block until the in-flight call finishes and receive its result.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightResult
}

type flightResult struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time. The bool reports whether the result was
// shared from a call started by another goroutine.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, bool, error) {
	g.mu.Lock()
	if r, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-r.done
		return r.val, true, r.err
	}

	r := &flightResult{done: make(chan struct{})}
	if g.inflight == nil {
		g.inflight = map[string]*flightResult{}
	}
	g.inflight[key] = r
	g.mu.Unlock()

	r.val, r.err = fn()

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()
	close(r.done)

	return r.val, false, r.err
}
