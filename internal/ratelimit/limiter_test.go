package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// newTestLimiter returns a limiter driven by a controllable clock.
func newTestLimiter(perMinute, perHour int) (*Limiter, *time.Time) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(perMinute, perHour)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_MinuteBudget(t *testing.T) {
	l, now := newTestLimiter(30, 500)

	for i := 0; i < 30; i++ {
		d := l.Allow("1.2.3.4")
		if !d.Allowed {
			t.Fatalf("request %d should be admitted", i+1)
		}
		*now = now.Add(time.Second)
	}

	d := l.Allow("1.2.3.4")
	if d.Allowed {
		t.Fatal("31st request within the minute must be rejected")
	}
	if d.RetryAfter != 60 {
		t.Errorf("RetryAfter = %d, want 60", d.RetryAfter)
	}

	// After the window slides past the oldest requests, admission resumes.
	*now = now.Add(61 * time.Second)
	if d := l.Allow("1.2.3.4"); !d.Allowed {
		t.Error("request after 61s must be admitted again")
	}
}

func TestLimiter_RemainingBudget(t *testing.T) {
	l, _ := newTestLimiter(30, 500)

	d := l.Allow("key")
	if d.Remaining != 30 {
		t.Errorf("first decision Remaining = %d, want 30", d.Remaining)
	}
	if d.Limit != 30 {
		t.Errorf("Limit = %d, want 30", d.Limit)
	}

	d = l.Allow("key")
	if d.Remaining != 29 {
		t.Errorf("second decision Remaining = %d, want 29", d.Remaining)
	}
}

func TestLimiter_HourBudget(t *testing.T) {
	l, now := newTestLimiter(30, 500)

	// Spread 500 requests over the hour so the minute budget never trips.
	for i := 0; i < 500; i++ {
		d := l.Allow("key")
		if !d.Allowed {
			t.Fatalf("request %d should be admitted", i+1)
		}
		*now = now.Add(7 * time.Second)
	}

	d := l.Allow("key")
	if d.Allowed {
		t.Fatal("501st request within the hour must be rejected")
	}
	if d.RetryAfter != 3600 {
		t.Errorf("RetryAfter = %d, want 3600", d.RetryAfter)
	}
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(30, 500)

	for i := 0; i < 30; i++ {
		l.Allow("saturated")
	}
	if d := l.Allow("saturated"); d.Allowed {
		t.Fatal("saturated key must be rejected")
	}
	if d := l.Allow("other"); !d.Allowed {
		t.Error("an unrelated key must not be affected")
	}
}

func TestLimiter_SweepEvictsStaleClients(t *testing.T) {
	l, now := newTestLimiter(30, 500)

	l.Allow("stale")
	*now = now.Add(3 * time.Hour)
	l.Allow("fresh")

	l.mu.Lock()
	_, staleKept := l.clients["stale"]
	_, freshKept := l.clients["fresh"]
	l.mu.Unlock()

	if staleKept {
		t.Error("record idle for 3h must be evicted")
	}
	if !freshKept {
		t.Error("active record must be kept")
	}
}

func TestLimiter_SweepKeepsRecordsAwaitingFirstAppend(t *testing.T) {
	l, now := newTestLimiter(30, 500)

	l.Allow("seed")

	// A record sits empty in the map while its creating request is between
	// the table lock and the record lock. A sweep running in that window
	// must not evict it.
	l.mu.Lock()
	l.clients["in-flight"] = &clientRecord{}
	l.mu.Unlock()

	*now = now.Add(sweepInterval + time.Second)
	l.Allow("trigger")

	l.mu.Lock()
	_, kept := l.clients["in-flight"]
	l.mu.Unlock()

	if !kept {
		t.Error("empty record must survive the sweep")
	}
	if d := l.Allow("in-flight"); !d.Allowed {
		t.Error("the in-flight request must still be admitted")
	}
}

func TestLimiter_ConcurrentSameKey(t *testing.T) {
	l := New(30, 500)

	var wg sync.WaitGroup
	admitted := make(chan struct{}, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared").Allowed {
				admitted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(admitted)

	count := 0
	for range admitted {
		count++
	}
	if count != 30 {
		t.Errorf("admitted %d concurrent requests, want exactly 30", count)
	}
}

func TestLimiter_ConcurrentDistinctKeys(t *testing.T) {
	l := New(30, 500)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("10.0.0.%d", n)
			for j := 0; j < 10; j++ {
				if d := l.Allow(key); !d.Allowed {
					t.Errorf("key %s request %d unexpectedly rejected", key, j)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
