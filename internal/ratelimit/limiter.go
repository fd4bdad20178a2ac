// Package ratelimit implements a per-client sliding-window request limiter
// over two windows: a minute budget and an hour budget.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultPerMinute is the per-client minute budget.
	DefaultPerMinute = 30
	// DefaultPerHour is the per-client hour budget.
	DefaultPerHour = 500

	// sweepInterval is how often stale client records are evicted; the sweep
	// is triggered opportunistically on request arrival.
	sweepInterval = 5 * time.Minute
	// staleAfter is the idle period after which a client record is evicted.
	staleAfter = 2 * time.Hour
	// retention is how long individual request timestamps are kept.
	retention = time.Hour
)

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed    bool
	Limit      int    // minute budget, for the X-RateLimit-Limit header
	Remaining  int    // remaining minute budget, floored at zero
	RetryAfter int    // seconds, set when the request is rejected
	Message    string // human-readable rejection reason
}

type clientRecord struct {
	mu       sync.Mutex
	requests []time.Time
}

// Limiter admits or rejects requests per client key using a sliding window.
// Each client record carries its own lock so distinct clients never block
// each other; the table lock is held only for map access and sweeping.
type Limiter struct {
	mu        sync.Mutex
	clients   map[string]*clientRecord
	lastSweep time.Time

	perMinute int
	perHour   int
	now       func() time.Time
}

// New creates a limiter with the given minute and hour budgets. Non-positive
// budgets fall back to the defaults.
func New(perMinute, perHour int) *Limiter {
	if perMinute <= 0 {
		perMinute = DefaultPerMinute
	}
	if perHour <= 0 {
		perHour = DefaultPerHour
	}
	return &Limiter{
		clients:   make(map[string]*clientRecord),
		perMinute: perMinute,
		perHour:   perHour,
		now:       time.Now,
	}
}

// Allow runs the admission check for one request from the given client key.
// The prune-count-decide-append sequence is serialized per record.
func (l *Limiter) Allow(key string) Decision {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) > sweepInterval {
		l.sweep(now)
		l.lastSweep = now
	}
	record, ok := l.clients[key]
	if !ok {
		record = &clientRecord{}
		l.clients[key] = record
	}
	l.mu.Unlock()

	record.mu.Lock()
	defer record.mu.Unlock()

	record.prune(now)

	lastMinute := 0
	for _, ts := range record.requests {
		if now.Sub(ts) < time.Minute {
			lastMinute++
		}
	}
	lastHour := len(record.requests)

	if lastMinute >= l.perMinute {
		return Decision{
			Limit:      l.perMinute,
			RetryAfter: 60,
			Message:    fmt.Sprintf("rate limit exceeded: at most %d requests per minute", l.perMinute),
		}
	}
	if lastHour >= l.perHour {
		return Decision{
			Limit:      l.perMinute,
			RetryAfter: 3600,
			Message:    fmt.Sprintf("hourly rate limit exceeded: at most %d requests per hour", l.perHour),
		}
	}

	record.requests = append(record.requests, now)

	remaining := l.perMinute - lastMinute
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   true,
		Limit:     l.perMinute,
		Remaining: remaining,
	}
}

// prune drops timestamps older than the retention window. Requests are
// appended in order, so the slice stays sorted and a cut point suffices.
func (r *clientRecord) prune(now time.Time) {
	cut := 0
	for cut < len(r.requests) && now.Sub(r.requests[cut]) > retention {
		cut++
	}
	if cut > 0 {
		r.requests = append(r.requests[:0:0], r.requests[cut:]...)
	}
}

// sweep removes records whose most recent request is older than staleAfter.
// Caller holds l.mu.
func (l *Limiter) sweep(now time.Time) {
	for key, record := range l.clients {
		record.mu.Lock()
		// An empty record belongs to a request that is still between map
		// insertion and its first append; it must survive the sweep.
		stale := len(record.requests) > 0 &&
			now.Sub(record.requests[len(record.requests)-1]) > staleAfter
		record.mu.Unlock()
		if stale {
			delete(l.clients, key)
		}
	}
}
