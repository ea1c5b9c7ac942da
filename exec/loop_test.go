package exec

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func stopLoop(t *testing.T, l *Loop) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
}

func TestLoop_StartStop(t *testing.T) {
	l := NewLoop()

	if err := l.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !l.IsRunning() {
		t.Error("expected loop to be running after Start()")
	}

	if err := l.Start(); err != ErrAlreadyRunning {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}

	stopLoop(t, l)
	if l.IsRunning() {
		t.Error("expected loop to not be running after Stop()")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Stop(ctx); err != ErrNotRunning {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
}

func TestLoop_FIFO(t *testing.T) {
	l := NewLoop()
	if err := l.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	const n = 100
	var mu sync.Mutex
	var order []int
	for i := 0; i < n; i++ {
		i := i
		if !l.Submit(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}) {
			t.Fatalf("Submit(%d) rejected", i)
		}
	}

	// Stop drains the queue before returning.
	stopLoop(t, l)

	if len(order) != n {
		t.Fatalf("expected %d tasks executed, got %d", n, len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("expected task %d at position %d, got %d", i, i, v)
		}
	}
}

func TestLoop_IsCurrent(t *testing.T) {
	l := NewLoop()
	if err := l.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer stopLoop(t, l)

	if l.IsCurrent() {
		t.Error("expected IsCurrent to be false off the loop goroutine")
	}

	inside := make(chan bool, 1)
	l.Submit(func() { inside <- l.IsCurrent() })

	select {
	case got := <-inside:
		if !got {
			t.Error("expected IsCurrent to be true on the loop goroutine")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for task")
	}
}

func TestLoop_SubmitWhenStopped(t *testing.T) {
	l := NewLoop()
	if l.Submit(func() {}) {
		t.Error("expected Submit to reject before Start()")
	}

	if err := l.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	stopLoop(t, l)

	if l.Submit(func() {}) {
		t.Error("expected Submit to reject after Stop()")
	}
}

func TestLoop_QueueFull(t *testing.T) {
	l := NewLoop(WithQueueSize(1))
	if err := l.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// Hold the worker so the queue backs up.
	gate := make(chan struct{})
	l.Submit(func() { <-gate })

	// Fill the single queue slot, then overflow it.
	accepted := 0
	for i := 0; i < 3; i++ {
		if l.Submit(func() {}) {
			accepted++
		}
	}
	if accepted == 3 {
		t.Error("expected at least one rejection with a full queue")
	}
	if l.Stats().Dropped == 0 {
		t.Error("expected dropped tasks to be counted")
	}

	close(gate)
	stopLoop(t, l)
}

func TestLoop_PanicDoesNotKillLoop(t *testing.T) {
	var handled int
	l := NewLoop(WithLoopPanicHandler(func(any, []byte) { handled++ }))
	if err := l.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	l.Submit(func() { panic("task panic") })

	survived := make(chan struct{})
	l.Submit(func() { close(survived) })

	select {
	case <-survived:
	case <-time.After(time.Second):
		t.Fatal("loop did not survive a panicking task")
	}

	stopLoop(t, l)

	if handled != 1 {
		t.Errorf("expected 1 panic handled, got %d", handled)
	}
	if got := l.Stats().Panicked; got != 1 {
		t.Errorf("expected 1 panic counted, got %d", got)
	}
}

func TestLoop_Stats(t *testing.T) {
	l := NewLoop()
	if err := l.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		l.Submit(func() {})
	}
	stopLoop(t, l)

	s := l.Stats()
	if s.Submitted != 5 {
		t.Errorf("expected 5 submitted, got %d", s.Submitted)
	}
	if s.Executed != 5 {
		t.Errorf("expected 5 executed, got %d", s.Executed)
	}
	if s.Dropped != 0 {
		t.Errorf("expected 0 dropped, got %d", s.Dropped)
	}
}

func TestLoop_ConcurrentSubmitters(t *testing.T) {
	l := NewLoop(WithQueueSize(4096))
	if err := l.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	const (
		goroutines = 8
		perSender  = 100
	)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perSender; j++ {
				for !l.Submit(func() {}) {
					time.Sleep(time.Millisecond)
				}
			}
		}()
	}
	wg.Wait()
	stopLoop(t, l)

	if got := l.Stats().Executed; got != goroutines*perSender {
		t.Errorf("expected %d executed, got %d", goroutines*perSender, got)
	}
}
