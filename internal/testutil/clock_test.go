package testutil

import (
	"sync"
	"testing"
	"time"
)

func TestClock_StrictlyIncreasing(t *testing.T) {
	c := NewDefaultClock()

	prev := c.Now()
	for i := 0; i < 10; i++ {
		next := c.Now()
		if !next.After(prev) {
			t.Fatalf("Now() not strictly increasing: %v then %v", prev, next)
		}
		prev = next
	}
}

func TestClock_DeterministicSequence(t *testing.T) {
	a := NewClock(Epoch, time.Minute)
	b := NewClock(Epoch, time.Minute)

	for i := 0; i < 5; i++ {
		if got, want := a.Now(), b.Now(); !got.Equal(want) {
			t.Fatalf("clocks diverged at step %d: %v vs %v", i, got, want)
		}
	}
}

func TestClock_Reset(t *testing.T) {
	c := NewDefaultClock()
	c.Now()
	c.Now()

	c.Reset(Epoch)
	if got := c.Now(); !got.Equal(Epoch) {
		t.Errorf("after Reset, Now() = %v, want %v", got, Epoch)
	}
}

func TestClock_ConcurrentUse(t *testing.T) {
	c := NewDefaultClock()

	const goroutines = 8
	const calls = 50

	var mu sync.Mutex
	seen := make(map[time.Time]bool)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < calls; i++ {
				now := c.Now()
				mu.Lock()
				if seen[now] {
					t.Errorf("duplicate instant %v", now)
				}
				seen[now] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}
