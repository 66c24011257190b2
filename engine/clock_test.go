package engine

import (
	"sync"
	"testing"
	"time"
)

func TestMockTimeProvider_AdvanceAndSet(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	mock.Advance(90 * time.Minute)
	if want := start.Add(90 * time.Minute); !mock.Now().Equal(want) {
		t.Errorf("Expected %v, got %v", want, mock.Now())
	}

	later := start.Add(24 * time.Hour)
	mock.SetTime(later)
	if !mock.Now().Equal(later) {
		t.Errorf("Expected %v after SetTime, got %v", later, mock.Now())
	}
}

func TestMockTimeProvider_ConcurrentAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				mock.Advance(time.Millisecond)
				_ = mock.Now()
			}
		}()
	}
	wg.Wait()

	if want := start.Add(250 * time.Millisecond); !mock.Now().Equal(want) {
		t.Errorf("Expected %v after concurrent advances, got %v", want, mock.Now())
	}
}

func TestPausableClock_ExcludesPauses(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	clock := NewPausableClock(mock)

	mock.Advance(2 * time.Second)
	if !clock.Toggle() || !clock.IsPaused() {
		t.Fatal("Expected Toggle to pause")
	}
	mock.Advance(5 * time.Second)
	if got := clock.Elapsed(); got != 2*time.Second {
		t.Errorf("Expected elapsed frozen at 2s, got %v", got)
	}
	if got := clock.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("Expected 5s of active pause, got %v", got)
	}

	if clock.Toggle() {
		t.Fatal("Expected Toggle to resume")
	}
	mock.Advance(time.Second)
	if got := clock.Elapsed(); got != 3*time.Second {
		t.Errorf("Expected 3s elapsed, got %v", got)
	}
	if got := clock.RealTime().Sub(mock.Now()); got != 0 {
		t.Errorf("Expected real time to follow the provider, off by %v", got)
	}
}

func TestPausableClock_RepeatedPauseIsNoop(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	clock := NewPausableClock(mock)

	clock.Pause()
	mock.Advance(time.Second)
	clock.Pause()
	mock.Advance(time.Second)
	clock.Resume()
	clock.Resume()

	if got := clock.TotalPauseDuration(); got != 2*time.Second {
		t.Errorf("Expected one 2s pause, got %v", got)
	}
	if got := clock.Elapsed(); got != 0 {
		t.Errorf("Expected no game time, got %v", got)
	}
}

func TestMonotonicTimeProvider(t *testing.T) {
	var p TimeProvider = NewMonotonicTimeProvider()
	a := p.Now()
	time.Sleep(time.Millisecond)
	if b := p.Now(); !b.After(a) {
		t.Errorf("Expected time to advance, got %v then %v", a, b)
	}
}
